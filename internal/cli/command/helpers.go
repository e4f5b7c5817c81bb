package command

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/yndnr/libros-go/internal/cli/output"
	"github.com/yndnr/libros-go/internal/core/domain"
)

// printResult writes data in the selected output format.
func printResult(c *cli.Context, data any) error {
	return printAs(c, ParseGlobalFlags(c).Output, data)
}

// printAs writes data in the named format.
func printAs(c *cli.Context, name string, data any) error {
	format, err := output.ParseFormat(name)
	if err != nil {
		return err
	}
	return output.NewFormatter(format, c.Bool("wide")).Format(c.App.Writer, data)
}

// printMessage writes a status line, suppressed for machine-readable formats.
func printMessage(c *cli.Context, format string, args ...any) {
	if f, _ := output.ParseFormat(ParseGlobalFlags(c).Output); f != output.FormatTable {
		return
	}
	fmt.Fprintf(c.App.Writer, format+"\n", args...)
}

// withSpinner runs fn with a spinner on stderr when it is a terminal.
func withSpinner(c *cli.Context, message string, fn func() error) error {
	s := output.NewSpinner(c.App.ErrWriter, message)
	s.Start()
	err := fn()
	s.Stop()
	return err
}

// explain adds the user-facing hint for errors the user can act on.
func explain(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrUnauthorized) && !errors.Is(err, domain.ErrLoginFailed) {
		var se *domain.ServerError
		if errors.As(err, &se) && se.SessionCleared {
			return fmt.Errorf("%w (session cleared, run 'login' again)", err)
		}
		return fmt.Errorf("%w (run 'login' first)", err)
	}
	return err
}

// lineReader reads prompted answers from the application input.
type lineReader struct {
	in  io.Reader
	buf *bufio.Reader
	out io.Writer
}

func newLineReader(c *cli.Context) *lineReader {
	return &lineReader{
		in:  c.App.Reader,
		buf: bufio.NewReader(c.App.Reader),
		out: c.App.ErrWriter,
	}
}

// Prompt prints prompt and returns the trimmed answer.
func (r *lineReader) Prompt(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	line, err := r.buf.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Secret reads a value without echo when the input is a terminal.
func (r *lineReader) Secret(prompt string) (string, error) {
	f, ok := r.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return r.Prompt(prompt)
	}

	fmt.Fprint(r.out, prompt)
	b, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(r.out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

// Confirm asks a yes/no question; only "y" or "yes" confirm.
func (r *lineReader) Confirm(prompt string) bool {
	answer, err := r.Prompt(prompt + " [y/N]: ")
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}
