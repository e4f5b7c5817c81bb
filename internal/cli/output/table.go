package output

import (
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/yndnr/libros-go/internal/core/domain"
)

// TableFormatter formats data as an aligned text table.
type TableFormatter struct {
	Wide      bool
	NoHeaders bool
}

// Format formats data as a table.
// Supports *Table, books (single, pointer or slice) and map[string]string;
// anything else falls back to JSON.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	var t *Table
	switch v := data.(type) {
	case nil:
		return nil
	case *Table:
		t = v
	case Table:
		t = &v
	case []domain.Book:
		t = BookTable(v, f.Wide)
	case domain.Book:
		t = BookDetail(v)
	case *domain.Book:
		if v == nil {
			return nil
		}
		t = BookDetail(*v)
	case map[string]string:
		t = KeyValueTable(v)
	default:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	}
	return t.RenderWithOptions(w, f.NoHeaders)
}

// BookTable lists books one per row. Wide mode adds year and page count.
func BookTable(books []domain.Book, wide bool) *Table {
	t := &Table{Headers: []string{"CODIGO", "TITULO", "AUTOR", "CATEGORIA"}}
	if wide {
		t.Headers = append(t.Headers, "ANIO", "NUM_PAGINAS")
	}

	for _, b := range books {
		row := []string{cell(b.Code), cell(b.Title), cell(b.Author), cell(b.Category)}
		if wide {
			row = append(row, strconv.Itoa(b.Year), strconv.Itoa(b.PageCount))
		}
		t.AddRow(row...)
	}
	return t
}

// BookDetail shows every field of one book, one per row.
func BookDetail(b domain.Book) *Table {
	t := &Table{Headers: []string{"FIELD", "VALUE"}}
	t.AddRow("codigo", cell(b.Code))
	t.AddRow("titulo", cell(b.Title))
	t.AddRow("autor", cell(b.Author))
	t.AddRow("anio", strconv.Itoa(b.Year))
	t.AddRow("categoria", cell(b.Category))
	t.AddRow("numPaginas", strconv.Itoa(b.PageCount))
	return t
}

// KeyValueTable renders a map sorted by key.
func KeyValueTable(m map[string]string) *Table {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := &Table{Headers: []string{"KEY", "VALUE"}}
	for _, k := range keys {
		t.AddRow(k, cell(m[k]))
	}
	return t
}

func cell(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Table represents tabular data.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Render renders the table to the writer.
func (t *Table) Render(w io.Writer) error {
	return t.RenderWithOptions(w, false)
}

// RenderWithOptions renders the table with options. A table without rows
// prints nothing.
func (t *Table) RenderWithOptions(w io.Writer, noHeaders bool) error {
	if len(t.Rows) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if !noHeaders && len(t.Headers) > 0 {
		writeRow(tw, t.Headers)
	}
	for _, row := range t.Rows {
		writeRow(tw, row)
	}
	return tw.Flush()
}

func writeRow(w io.Writer, cells []string) {
	for i, c := range cells {
		if i > 0 {
			io.WriteString(w, "\t")
		}
		io.WriteString(w, c)
	}
	io.WriteString(w, "\n")
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// SetHeaders sets the table headers.
func (t *Table) SetHeaders(headers ...string) {
	t.Headers = headers
}
