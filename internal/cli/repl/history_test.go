package repl

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestHistory_Add(t *testing.T) {
	h := NewHistory("")

	h.Add("book list")
	h.Add("book list")
	h.Add("status")

	want := []string{"book list", "status"}
	if got := h.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("Entries() = %v, want %v (consecutive duplicates collapsed)", got, want)
	}
}

func TestHistory_Add_SkipsLogin(t *testing.T) {
	h := NewHistory("")
	h.Add("login --email ana@example.com --password-file /tmp/pw")

	if len(h.Entries()) != 0 {
		t.Error("login lines should not be recorded")
	}
}

func TestHistory_Add_MaxSize(t *testing.T) {
	h := NewHistory("")
	h.maxSize = 3

	for i := 0; i < 5; i++ {
		h.Add(fmt.Sprintf("book get L%d", i))
	}

	want := []string{"book get L2", "book get L3", "book get L4"}
	if got := h.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
}

func TestHistory_Get(t *testing.T) {
	h := NewHistory("")
	h.Add("first")
	h.Add("second")

	if got := h.Get(0); got != "second" {
		t.Errorf("Get(0) = %q, want second", got)
	}
	if got := h.Get(1); got != "first" {
		t.Errorf("Get(1) = %q, want first", got)
	}
	if got := h.Get(2); got != "" {
		t.Errorf("Get(2) = %q, want empty", got)
	}
	if got := h.Get(-1); got != "" {
		t.Errorf("Get(-1) = %q, want empty", got)
	}
}

func TestHistory_SaveLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "history")

	h := NewHistory(file)
	h.Add("book list")
	h.Add("book get L1")
	if err := h.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(file)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("perm = %o, want 0600", perm)
	}

	loaded := NewHistory(file)
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := loaded.Entries(); !reflect.DeepEqual(got, h.Entries()) {
		t.Errorf("loaded = %v, want %v", got, h.Entries())
	}
}

func TestHistory_Load_NonexistentFile(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "missing"))
	if err := h.Load(); err != nil {
		t.Errorf("Load() error = %v", err)
	}
}

func TestHistory_InMemoryOnly(t *testing.T) {
	h := NewHistory("")
	h.Add("status")
	if err := h.Save(); err != nil {
		t.Errorf("Save() error = %v", err)
	}
	if err := h.Load(); err != nil {
		t.Errorf("Load() error = %v", err)
	}
}

func TestDefaultHistoryFile(t *testing.T) {
	if f := DefaultHistoryFile(); !strings.HasSuffix(f, filepath.Join(".libros", "history")) {
		t.Errorf("DefaultHistoryFile() = %q", f)
	}
}
