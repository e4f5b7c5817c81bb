package command

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/yndnr/libros-go/internal/catalogtest"
	"github.com/yndnr/libros-go/internal/core/domain"
)

func TestBookList(t *testing.T) {
	env := newTestEnv(t)
	env.login()

	out := env.mustRun("", "book", "list")
	for _, want := range []string{"CODIGO", "L1", "Rayuela"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "NUM_PAGINAS") {
		t.Error("narrow table should not show page count")
	}

	wide := env.mustRun("", "--wide", "book", "list")
	if !strings.Contains(wide, "NUM_PAGINAS") || !strings.Contains(wide, "600") {
		t.Errorf("wide output:\n%s", wide)
	}

	for _, req := range env.server.Requests() {
		if req.Path == "/libros" && req.Authorization != "Bearer "+testToken {
			t.Errorf("GET /libros Authorization = %q", req.Authorization)
		}
	}
}

func TestBookList_JSON(t *testing.T) {
	env := newTestEnv(t)
	env.login()

	var books []domain.Book
	out := env.mustRun("", "-o", "json", "book", "list")
	if err := json.Unmarshal([]byte(out), &books); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(books) != 1 || books[0] != seedBook {
		t.Errorf("books = %+v", books)
	}
}

func TestBookList_UnauthorizedClearsSession(t *testing.T) {
	env := newTestEnv(t)
	env.login()
	env.server.RevokeTokens()

	_, _, err := env.run("", "book", "list")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("error = %v, want ErrUnauthorized", err)
	}
	if !strings.Contains(err.Error(), "session cleared, run 'login' again") {
		t.Errorf("error should report the cleared session: %v", err)
	}
	if _, ok := env.storedToken(); ok {
		t.Error("token should be cleared after a 401")
	}
}

func TestBookList_Anonymous(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run("", "book", "list")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("error = %v, want ErrUnauthorized", err)
	}
	if strings.Contains(err.Error(), "session cleared") {
		t.Errorf("no session was held, none can be cleared: %v", err)
	}
	if !strings.Contains(err.Error(), "run 'login' first") {
		t.Errorf("error should tell the user to log in: %v", err)
	}

	_, _, err = env.run("", "book", "delete", "L1", "--force")
	if !errors.Is(err, domain.ErrUnauthorized) || strings.Contains(err.Error(), "session cleared") {
		t.Errorf("anonymous delete error = %v", err)
	}
	for _, req := range env.server.Requests() {
		if req.Authorization != "" {
			t.Errorf("%s %s sent Authorization without a session", req.Method, req.Path)
		}
	}
}

func TestBookGet(t *testing.T) {
	env := newTestEnv(t)
	env.login()

	out := env.mustRun("", "book", "get", "L1")
	if !strings.Contains(out, "Julio Cortazar") {
		t.Errorf("output:\n%s", out)
	}

	_, _, err := env.run("", "book", "get", "NOPE")
	if !errors.Is(err, domain.ErrBookNotFound) {
		t.Errorf("error = %v, want ErrBookNotFound", err)
	}

	_, _, err = env.run("", "book", "get")
	if !errors.Is(err, domain.ErrMissingArgument) {
		t.Errorf("error = %v, want ErrMissingArgument", err)
	}
}

func TestBookSearch(t *testing.T) {
	env := newTestEnv(t, catalogtest.WithBooks(domain.Book{Code: "L2", Title: "Ficciones", Author: "Borges", Year: 1944, Category: "cuento", PageCount: 200}))
	env.login()

	tests := []struct {
		name    string
		args    []string
		want    string
		notWant string
	}{
		{"by category", []string{"book", "search", "--category", "cuento"}, "Ficciones", "Rayuela"},
		{"by code", []string{"book", "search", "--code", "L1"}, "Rayuela", "Ficciones"},
		{"empty category", []string{"book", "search", "--category", "poesia"}, "No books in category", "Rayuela"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := env.mustRun("", tt.args...)
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
			if strings.Contains(out, tt.notWant) {
				t.Errorf("output should not contain %q:\n%s", tt.notWant, out)
			}
		})
	}

	for _, args := range [][]string{
		{"book", "search"},
		{"book", "search", "--code", "L1", "--category", "cuento"},
	} {
		if _, _, err := env.run("", args...); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("%v: error = %v, want ErrInvalidArgument", args, err)
		}
	}
}

func TestBookCreate(t *testing.T) {
	env := newTestEnv(t, catalogtest.WithCodes("L9"))
	env.login()

	out := env.mustRun("", "book", "create",
		"--title", "Pedro Paramo", "--author", "Juan Rulfo",
		"--year", "1955", "--category", "novela", "--pages", "124")
	if !strings.Contains(out, "Created book L9.") {
		t.Errorf("output:\n%s", out)
	}

	got, ok := env.server.Book("L9")
	want := domain.Book{Code: "L9", Title: "Pedro Paramo", Author: "Juan Rulfo", Year: 1955, Category: "novela", PageCount: 124}
	if !ok || got != want {
		t.Errorf("server book = %+v, %v; want %+v", got, ok, want)
	}
}

func TestBookCreate_LocalErrors(t *testing.T) {
	env := newTestEnv(t)
	env.login()

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"bad year", []string{"--title", "X", "--author", "Y", "--year", "abc", "--category", "c", "--pages", "1"}, domain.ErrInvalidArgument},
		{"bad pages", []string{"--title", "X", "--author", "Y", "--year", "2000", "--category", "c", "--pages", "1.5"}, domain.ErrInvalidArgument},
		{"missing field", []string{"--title", "X", "--author", "Y", "--year", "2000", "--pages", "10"}, domain.ErrMissingArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := env.run("", append([]string{"book", "create"}, tt.args...)...)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}

	for _, req := range env.server.Requests() {
		if req.Method == http.MethodPost && req.Path == "/libros" {
			t.Error("invalid input should not reach the server")
		}
	}
}

func TestBookUpdate_KeepsUnsetFields(t *testing.T) {
	env := newTestEnv(t)
	env.login()

	out := env.mustRun("", "book", "update", "L1", "--pages", "736")
	if !strings.Contains(out, "Updated book L1.") {
		t.Errorf("output:\n%s", out)
	}

	want := seedBook
	want.PageCount = 736
	if got, _ := env.server.Book("L1"); got != want {
		t.Errorf("server book = %+v, want %+v", got, want)
	}

	_, _, err := env.run("", "book", "update", "NOPE", "--pages", "1")
	if !errors.Is(err, domain.ErrBookNotFound) {
		t.Errorf("error = %v, want ErrBookNotFound", err)
	}
}

func TestBookUpdate_FlagPlacement(t *testing.T) {
	env := newTestEnv(t)
	env.login()

	env.mustRun("", "book", "update", "--title", "Rayuela (ed. 2)", "L1")
	env.mustRun("", "book", "update", "L1", "--autor", "J. Cortazar", "--anio=1964")

	out := env.mustRun("", "book", "update", "L1", "--pages", "700", "-o", "json")
	if !strings.Contains(out, `"numPaginas"`) || !strings.Contains(out, "700") {
		t.Errorf("trailing -o json not applied:\n%s", out)
	}

	want := seedBook
	want.Title = "Rayuela (ed. 2)"
	want.Author = "J. Cortazar"
	want.Year = 1964
	want.PageCount = 700
	if got, _ := env.server.Book("L1"); got != want {
		t.Errorf("server book = %+v, want %+v", got, want)
	}

	_, _, err := env.run("", "book", "update", "L1", "--pages", "many")
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("error = %v, want ErrInvalidArgument", err)
	}
	_, _, err = env.run("", "book", "update", "L1", "--no-such-flag", "x")
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("error = %v, want ErrInvalidArgument", err)
	}
	_, _, err = env.run("", "book", "update", "L1", "L2", "--pages", "1")
	if !errors.Is(err, domain.ErrMissingArgument) {
		t.Errorf("error = %v, want ErrMissingArgument", err)
	}
}

func TestBookDelete(t *testing.T) {
	env := newTestEnv(t)
	env.login()

	out := env.mustRun("n\n", "book", "delete", "L1")
	if !strings.Contains(out, "Cancelled.") {
		t.Errorf("output:\n%s", out)
	}
	if _, ok := env.server.Book("L1"); !ok {
		t.Fatal("declined delete should keep the book")
	}

	out = env.mustRun("y\n", "book", "delete", "L1")
	if !strings.Contains(out, "Deleted book L1.") {
		t.Errorf("output:\n%s", out)
	}
	if _, ok := env.server.Book("L1"); ok {
		t.Error("book should be gone")
	}

	_, _, err := env.run("", "book", "delete", "--force", "L1")
	if !errors.Is(err, domain.ErrBookNotFound) {
		t.Errorf("error = %v, want ErrBookNotFound", err)
	}
}

func TestBookDelete_ForceAfterCode(t *testing.T) {
	env := newTestEnv(t)
	env.login()

	out := env.mustRun("", "book", "delete", "L1", "--force")
	if !strings.Contains(out, "Deleted book L1.") {
		t.Errorf("output:\n%s", out)
	}
	if strings.Contains(out, "Delete book 'L1'?") {
		t.Errorf("--force after CODE should skip the prompt:\n%s", out)
	}
	if _, ok := env.server.Book("L1"); ok {
		t.Error("book should be gone")
	}

	_, _, err := env.run("", "book", "rm", "L1", "-f")
	if !errors.Is(err, domain.ErrBookNotFound) {
		t.Errorf("error = %v, want ErrBookNotFound", err)
	}
}
