package ionames

import (
	"io"
	"os"
	"strconv"

	"github.com/gnames/gnbirds/pkg/catalog"
	"github.com/gnames/gnbirds/pkg/ent/nametype"
	"github.com/gnames/gnfmt"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

type jsonEntry struct {
	Authority string              `json:"authority"`
	Year      int                 `json:"year"`
	Entries   int                 `json:"entries"`
	Types     []nametype.NameType `json:"types"`
}

// WriteCatalog writes available taxonomies with their name types. The
// text format is a table on a terminal and TSV otherwise.
func WriteCatalog(w io.Writer, f Format, cat *catalog.Catalog) error {
	if f == JSON {
		out := make([]jsonEntry, 0, cat.Len())
		for _, e := range cat.Entries() {
			out = append(out, jsonEntry{
				Authority: e.Authority,
				Year:      e.Year,
				Entries:   e.Entries,
				Types:     e.Types,
			})
		}
		return writeJSON(w, out)
	}

	pretty := f == Text && isTerminal(w)
	if f == Text && !pretty {
		f = TSV
	}

	header := []string{"Authority", "Year", "Entries"}
	for _, v := range nametype.All() {
		header = append(header, v.String())
	}
	var rows [][]string
	for _, e := range cat.Entries() {
		row := []string{e.Authority, strconv.Itoa(e.Year), strconv.Itoa(e.Entries)}
		for _, v := range nametype.All() {
			row = append(row, mark(e.Supports(v), pretty))
		}
		rows = append(rows, row)
	}

	if pretty {
		return writeLines(w, []string{renderTable(header, rows)})
	}

	sep := sepFor(f)
	lines := []string{gnfmt.ToCSV(header, sep)}
	for _, v := range rows {
		lines = append(lines, gnfmt.ToCSV(v, sep))
	}
	return writeLines(w, lines)
}

func mark(ok, pretty bool) string {
	if pretty {
		if ok {
			return "✓"
		}
		return ""
	}
	return strconv.FormatBool(ok)
}

func renderTable(header []string, rows [][]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	hr := make(table.Row, len(header))
	for i, v := range header {
		hr[i] = v
	}
	tw.AppendHeader(hr)

	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, v := range row {
			r[i] = v
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(header))
	for i := range header {
		align := text.AlignCenter
		if i < 3 {
			align = text.AlignLeft
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
