// Package ionames reads lists of names and writes results of conversion
// and detection for the command line.
package ionames

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gnames/gnbirds/pkg/convert"
	"github.com/gnames/gnbirds/pkg/detect"
	"github.com/gnames/gnfmt"
)

// Format is the output format.
type Format int

const (
	Text Format = iota
	CSV
	TSV
	JSON
)

var formats = map[string]Format{
	"text": Text,
	"csv":  CSV,
	"tsv":  TSV,
	"json": JSON,
}

// NewFormat converts a token to Format.
func NewFormat(s string) (Format, error) {
	if res, ok := formats[strings.ToLower(strings.TrimSpace(s))]; ok {
		return res, nil
	}
	return Text, UnknownFormatError(s)
}

// FormatTokens returns tokens of all formats.
func FormatTokens() []string {
	return []string{"text", "csv", "tsv", "json"}
}

// Read returns names from a file if path is given, from args if there are
// any, and from stdin otherwise. Every line of a file or stdin is one
// name, empty lines are kept so the output lines up with the input.
func Read(args []string, path string, stdin io.Reader) ([]string, error) {
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, ReadError(path, err)
		}
		defer f.Close()
		return readLines(f, path)
	}
	if len(args) > 0 {
		return args, nil
	}
	if stdin == nil {
		return nil, nil
	}
	return readLines(stdin, "STDIN")
}

func readLines(r io.Reader, src string) ([]string, error) {
	var res []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		res = append(res, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, ReadError(src, err)
	}
	return res, nil
}

type jsonResult struct {
	Input string  `json:"input"`
	Value *string `json:"value"`
	Fuzzy bool    `json:"fuzzy,omitempty"`
}

// WriteResults writes conversion results in input order. Absent values
// are empty lines or cells in text, CSV and TSV, and null in JSON.
func WriteResults(w io.Writer, f Format, res []convert.Result) error {
	switch f {
	case JSON:
		out := make([]jsonResult, len(res))
		for i, v := range res {
			out[i] = jsonResult{Input: v.Input, Fuzzy: v.Fuzzy}
			if v.Found {
				out[i].Value = &v.Value
			}
		}
		return writeJSON(w, out)
	case CSV, TSV:
		sep := sepFor(f)
		lines := make([]string, 0, len(res)+1)
		lines = append(lines, gnfmt.ToCSV([]string{"Input", "Value", "Fuzzy"}, sep))
		for _, v := range res {
			lines = append(lines, gnfmt.ToCSV(
				[]string{v.Input, v.Value, strconv.FormatBool(v.Fuzzy)}, sep,
			))
		}
		return writeLines(w, lines)
	default:
		lines := make([]string, len(res))
		for i, v := range res {
			lines[i] = v.Value
		}
		return writeLines(w, lines)
	}
}

type jsonScheme struct {
	detect.Scheme
	Unmatched []string `json:"unmatched"`
}

// WriteScheme writes a detected scheme and the names that do not belong
// to it.
func WriteScheme(
	w io.Writer,
	f Format,
	s detect.Scheme,
	unmatched []string,
) error {
	if unmatched == nil {
		unmatched = []string{}
	}
	switch f {
	case JSON:
		return writeJSON(w, jsonScheme{Scheme: s, Unmatched: unmatched})
	case CSV, TSV:
		sep := sepFor(f)
		lines := []string{
			gnfmt.ToCSV([]string{"NameType", "Authority", "Year", "Unmatched"}, sep),
			gnfmt.ToCSV([]string{
				s.NameType.String(), s.Authority, strconv.Itoa(s.Year),
				strconv.Itoa(len(unmatched)),
			}, sep),
		}
		return writeLines(w, lines)
	default:
		lines := []string{
			fmt.Sprintf("name type: %s", s.NameType),
			fmt.Sprintf("authority: %s", s.Authority),
			fmt.Sprintf("year:      %d", s.Year),
			fmt.Sprintf("unmatched: %d", len(unmatched)),
		}
		for _, v := range unmatched {
			lines = append(lines, "  "+v)
		}
		return writeLines(w, lines)
	}
}

func sepFor(f Format) rune {
	if f == TSV {
		return '\t'
	}
	return ','
}

func writeJSON(w io.Writer, v any) error {
	enc := gnfmt.GNjson{Pretty: true}
	bs, err := enc.Encode(v)
	if err != nil {
		return WriteError(err)
	}
	return writeLines(w, []string{string(bs)})
}

func writeLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, v := range lines {
		if _, err := bw.WriteString(v + "\n"); err != nil {
			return WriteError(err)
		}
	}
	if err := bw.Flush(); err != nil {
		return WriteError(err)
	}
	return nil
}
