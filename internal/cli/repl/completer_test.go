package repl

import (
	"reflect"
	"testing"
)

func TestCompleter_Complete(t *testing.T) {
	c := NewCompleter()

	tests := []struct {
		prefix string
		want   []string
	}{
		{"log", []string{"login", "logout"}},
		{"book s", []string{"book search"}},
		{"config ", []string{"config init", "config show", "config validate"}},
		{"zzz", nil},
	}

	for _, tt := range tests {
		if got := c.Complete(tt.prefix); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Complete(%q) = %v, want %v", tt.prefix, got, tt.want)
		}
	}
}

func TestCompleter_KnownAndAdd(t *testing.T) {
	c := NewCompleter()

	if !c.Known("book") {
		t.Error("book should be known")
	}
	if !c.Known("-o") {
		t.Error("leading flags should be passed through")
	}
	if c.Known("boo") {
		t.Error("prefixes are not commands")
	}

	c.Add("metrics")
	c.Add("metrics")
	if !c.Known("metrics") {
		t.Error("added command should be known")
	}
	if got := c.Complete("metr"); len(got) != 1 {
		t.Errorf("Complete(metr) = %v, Add should not duplicate", got)
	}
}
