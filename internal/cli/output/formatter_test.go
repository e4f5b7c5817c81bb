package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yndnr/libros-go/internal/core/domain"
)

var sampleBooks = []domain.Book{
	{Code: "L1", Title: "Rayuela", Author: "Julio Cortázar", Year: 1963, Category: "novela", PageCount: 600},
	{Code: "L2", Title: "Ficciones", Author: "Jorge Luis Borges", Year: 1944, Category: "cuento", PageCount: 203},
}

func TestNewFormatter(t *testing.T) {
	if _, ok := NewFormatter(FormatJSON, false).(*JSONFormatter); !ok {
		t.Error("expected JSONFormatter")
	}
	if _, ok := NewFormatter(FormatYAML, false).(*YAMLFormatter); !ok {
		t.Error("expected YAMLFormatter")
	}
	tf, ok := NewFormatter(FormatTable, true).(*TableFormatter)
	if !ok || !tf.Wide {
		t.Error("expected wide TableFormatter")
	}
	if _, ok := NewFormatter("unknown", false).(*TableFormatter); !ok {
		t.Error("unknown format should default to table")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"", FormatTable, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q, err=%v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestJSONFormatter_WireNames(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Format(&buf, sampleBooks[0]); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	out := buf.String()
	for _, key := range []string{`"codigo": "L1"`, `"numPaginas": 600`, `"anio": 1963`} {
		if !strings.Contains(out, key) {
			t.Errorf("output missing %s:\n%s", key, out)
		}
	}
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&YAMLFormatter{}).Format(&buf, sampleBooks); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	out := buf.String()
	for _, line := range []string{"- codigo: L1", "  titulo: Rayuela", "  numPaginas: 203"} {
		if !strings.Contains(out, line) {
			t.Errorf("output missing %q:\n%s", line, out)
		}
	}
}
