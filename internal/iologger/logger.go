// Package iologger sets up the process-wide slog logger for gnbirds.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/gnbirds/pkg/config"
)

// LogFile is the name of the log file in the log directory.
const LogFile = "gnbirds.log"

// Init replaces the default slog logger according to cfg. The "file"
// destination writes to LogFile inside logDir, truncating it unless append
// is set. Every record carries the app name.
func Init(logDir string, cfg config.LogConfig, append bool) error {
	w, err := output(logDir, cfg.Destination, append)
	if err != nil {
		return err
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	var h slog.Handler
	if cfg.Format == "text" || cfg.Format == "tint" {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	slog.SetDefault(slog.New(h).With("app", "gnbirds"))
	return nil
}

func output(logDir, dest string, append bool) (io.Writer, error) {
	switch dest {
	case "stdout":
		return os.Stdout, nil
	case "file":
	default:
		return os.Stderr, nil
	}

	path := filepath.Join(logDir, LogFile)
	flag := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if append {
		flag = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	f, err := os.OpenFile(path, flag, 0644)
	if err != nil {
		return nil, CreateLogFileError(path, err)
	}
	return f, nil
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
