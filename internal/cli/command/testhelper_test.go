package command

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/libros-go/internal/catalogtest"
	"github.com/yndnr/libros-go/internal/core/domain"
)

const (
	testEmail    = "ana@example.com"
	testPassword = "s3cret"
	testToken    = "T1"
)

var seedBook = domain.Book{
	Code:      "L1",
	Title:     "Rayuela",
	Author:    "Julio Cortazar",
	Year:      1963,
	Category:  "novela",
	PageCount: 600,
}

// testEnv runs the CLI against a fake catalog with its state under a
// temporary directory.
type testEnv struct {
	t            *testing.T
	server       *catalogtest.Server
	url          string
	dir          string
	configPath   string
	tokenPath    string
	passwordFile string
}

func newTestEnv(t *testing.T, opts ...catalogtest.Option) *testEnv {
	t.Helper()

	opts = append([]catalogtest.Option{
		catalogtest.WithUser(testEmail, testPassword),
		catalogtest.WithTokens(testToken),
		catalogtest.WithBooks(seedBook),
	}, opts...)
	srv := catalogtest.New(opts...)
	url := srv.Start(t)

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	env := &testEnv{
		t:            t,
		server:       srv,
		url:          url,
		dir:          dir,
		configPath:   filepath.Join(dir, "cli.yaml"),
		tokenPath:    filepath.Join(dir, "token"),
		passwordFile: filepath.Join(dir, "password"),
	}

	cfg := fmt.Sprintf("server: %s\nsession:\n  backend: file\n  path: %s\n", url, env.tokenPath)
	if err := os.WriteFile(env.configPath, []byte(cfg), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.WriteFile(env.passwordFile, []byte(testPassword+"\n"), 0600); err != nil {
		t.Fatalf("write password file: %v", err)
	}
	return env
}

// run executes one CLI invocation and returns what it printed.
func (e *testEnv) run(stdin string, args ...string) (string, string, error) {
	e.t.Helper()

	var stdout, stderr bytes.Buffer
	app := App(WithIO(strings.NewReader(stdin), &stdout, &stderr))
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.Run(append([]string{AppName, "--config", e.configPath}, args...))
	if rt := RuntimeOf(app); rt != nil {
		if shutdownErr := rt.Shutdown.Shutdown(); shutdownErr != nil {
			e.t.Errorf("shutdown: %v", shutdownErr)
		}
	}
	return stdout.String(), stderr.String(), err
}

// mustRun fails the test when the invocation returns an error.
func (e *testEnv) mustRun(stdin string, args ...string) string {
	e.t.Helper()
	stdout, stderr, err := e.run(stdin, args...)
	if err != nil {
		e.t.Fatalf("%v: %v\nstderr: %s", args, err, stderr)
	}
	return stdout
}

func (e *testEnv) login() {
	e.t.Helper()
	e.mustRun("", "login", "--email", testEmail, "--password-file", e.passwordFile)
}

// storedToken reads the token file directly.
func (e *testEnv) storedToken() (string, bool) {
	e.t.Helper()
	data, err := os.ReadFile(e.tokenPath)
	if os.IsNotExist(err) {
		return "", false
	}
	if err != nil {
		e.t.Fatalf("read token file: %v", err)
	}
	return strings.TrimSpace(string(data)), true
}
