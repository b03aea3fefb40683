// Package ioimport implements lifecycle.Importer. It reads standardized
// taxonomy CSV files and saves them to any taxonomy.Store.
package ioimport

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnbirds/internal/iocsv"
	"github.com/gnames/gnbirds/pkg/lifecycle"
	"github.com/gnames/gnbirds/pkg/parserpool"
	"github.com/gnames/gnbirds/pkg/taxonomy"
	"github.com/gnames/gnfmt"
	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"
)

const (
	sciNameCol = "scientific_name"
	genusCol   = "genus"
)

type importer struct {
	store taxonomy.Store
	jobs  int

	// saving goes one table at a time, stores are not required to
	// support concurrent writes.
	mu sync.Mutex
}

// New creates an Importer that saves tables to store. Files are read
// and parsed by jobs workers.
func New(store taxonomy.Store, jobs int) lifecycle.Importer {
	if jobs <= 0 {
		jobs = 1
	}
	return &importer{store: store, jobs: jobs}
}

func (im *importer) Import(ctx context.Context, dir string) (lifecycle.Report, error) {
	var res lifecycle.Report
	start := time.Now()

	paths, err := iocsv.FindTables(dir)
	if err != nil {
		return res, err
	}
	if len(paths) == 0 {
		return res, NoTablesError(dir)
	}
	gn.Info("Importing <em>%d</em> taxonomy files from %s", len(paths), dir)

	pool := parserpool.NewPool(im.jobs)
	defer pool.Close()

	bar := newProgressBar(len(paths))
	defer func() {
		if bar != nil {
			bar.Finish()
		}
	}()

	var mu sync.Mutex
	var firstErr error
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(im.jobs)
	for _, path := range paths {
		g.Go(func() error {
			rows, err := im.importFile(gCtx, pool, path)
			if gCtx.Err() != nil {
				return gCtx.Err()
			}

			mu.Lock()
			defer mu.Unlock()
			if bar != nil {
				bar.Increment()
			}
			if err != nil {
				res.Failed++
				if firstErr == nil {
					firstErr = err
				}
				slog.Error("Failed to import taxonomy file",
					"path", path, "error", err)
				return nil
			}
			res.Imported++
			res.Rows += rows
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return res, err
	}

	res.Duration = time.Since(start)
	dur := gnfmt.TimeString(res.Duration.Seconds())
	slog.Info("Import complete",
		"imported", res.Imported,
		"failed", res.Failed,
		"rows", res.Rows,
		"duration", dur,
	)
	gn.Info(`Import complete
Tables imported: %d, failed: %d, rows: %s.
Elapsed time: <em>%s</em>`,
		res.Imported, res.Failed, humanize.Comma(int64(res.Rows)), dur,
	)

	if res.Imported == 0 {
		return res, TableError(paths[0], firstErr)
	}
	if res.Failed > 0 {
		gn.Warn("<em>%d</em> taxonomy files were not imported, see the log",
			res.Failed)
	}
	return res, nil
}

func (im *importer) importFile(
	ctx context.Context,
	pool parserpool.Pool,
	path string,
) (int, error) {
	t, err := iocsv.ReadTable(ctx, path)
	if err != nil {
		return 0, err
	}
	if t, err = withGenus(t, pool); err != nil {
		return 0, err
	}

	im.mu.Lock()
	defer im.mu.Unlock()
	if err = im.store.SaveTable(ctx, t); err != nil {
		return 0, err
	}
	key := t.Key()
	slog.Info("Taxonomy imported",
		"authority", key.Authority, "year", key.Year,
		"rows", t.Len(), "types", fmt.Sprint(t.Types()),
	)
	return t.Len(), nil
}

// withGenus adds a genus column derived from scientific names, unless
// the table has a genus already or has no scientific names.
func withGenus(t *taxonomy.Table, pool parserpool.Pool) (*taxonomy.Table, error) {
	sciNames, ok := t.Column(sciNameCol)
	if !ok || t.HasColumn(genusCol) {
		return t, nil
	}

	cols := append(t.Columns(), genusCol)
	rows := make([][]string, t.Len())
	for i := range rows {
		rows[i] = append(t.Row(i), pool.Genus(sciNames[i]))
	}
	key := t.Key()
	return taxonomy.NewTable(key.Authority, key.Year, cols, rows)
}

// newProgressBar returns nil when stderr is not a terminal.
func newProgressBar(total int) *pb.ProgressBar {
	fd := os.Stderr.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return nil
	}
	bar := pb.Full.Start(total)
	bar.Set("prefix", "Importing taxonomies: ")
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
