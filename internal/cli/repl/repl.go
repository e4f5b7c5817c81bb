package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Executor runs one command given as arguments (without the program name).
type Executor func(ctx context.Context, args []string) error

// Builtin is a shell-only command.
type Builtin func(ctx context.Context, w io.Writer, args []string) error

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	input     io.Reader
	output    io.Writer
	prompt    func() string
	exec      Executor
	builtins  map[string]Builtin
	completer *Completer
	history   *History
	notices   chan string
}

// Option configures a REPL.
type Option func(*REPL)

// WithIO sets the input and output streams.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(r *REPL) {
		r.input = in
		r.output = out
	}
}

// WithPrompt sets a function producing the prompt before each line.
func WithPrompt(prompt func() string) Option {
	return func(r *REPL) {
		r.prompt = prompt
	}
}

// WithHistory sets the history store.
func WithHistory(h *History) Option {
	return func(r *REPL) {
		r.history = h
	}
}

// WithCompleter sets the completer used for suggestions.
func WithCompleter(c *Completer) Option {
	return func(r *REPL) {
		r.completer = c
	}
}

// WithBuiltin registers a shell-only command.
func WithBuiltin(name string, fn Builtin) Option {
	return func(r *REPL) {
		r.builtins[name] = fn
	}
}

// New creates a new REPL instance running lines through exec.
func New(exec Executor, opts ...Option) *REPL {
	r := &REPL{
		input:     os.Stdin,
		output:    os.Stdout,
		prompt:    func() string { return "libros> " },
		exec:      exec,
		builtins:  make(map[string]Builtin),
		completer: NewCompleter(),
		history:   NewHistory(DefaultHistoryFile()),
		notices:   make(chan string, 16),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.builtins["history"] = r.printHistory
	for name := range r.builtins {
		r.completer.Add(name)
	}
	return r
}

// History returns the history store.
func (r *REPL) History() *History {
	return r.history
}

// Notify queues a message printed before the next prompt. It never blocks;
// messages beyond the queue size are dropped.
func (r *REPL) Notify(msg string) {
	select {
	case r.notices <- msg:
	default:
	}
}

// Run starts the REPL loop. It returns nil on exit, quit, EOF or when ctx
// is canceled.
func (r *REPL) Run(ctx context.Context) error {
	reader := bufio.NewReader(r.input)

	for {
		if ctx.Err() != nil {
			return nil
		}
		r.flushNotices()
		fmt.Fprint(r.output, r.prompt())

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := errors.Is(err, io.EOF)

		line = strings.TrimSpace(line)
		if line == "" {
			if eof {
				fmt.Fprintln(r.output)
				return nil
			}
			continue
		}

		r.history.Add(line)

		if line == "exit" || line == "quit" {
			return nil
		}

		if err := r.execute(ctx, line); err != nil {
			fmt.Fprintf(r.output, "Error: %v\n", err)
		}

		if eof {
			return nil
		}
	}
}

func (r *REPL) execute(ctx context.Context, line string) error {
	args, err := SplitArgs(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}

	if fn, ok := r.builtins[args[0]]; ok {
		return fn(ctx, r.output, args[1:])
	}

	if !r.completer.Known(args[0]) {
		msg := fmt.Sprintf("unknown command %q", args[0])
		if s := r.completer.Complete(args[0]); len(s) > 0 {
			msg += ", did you mean: " + strings.Join(s, ", ")
		}
		return errors.New(msg)
	}

	return r.exec(ctx, args)
}

func (r *REPL) flushNotices() {
	for {
		select {
		case msg := <-r.notices:
			fmt.Fprintf(r.output, "* %s\n", msg)
		default:
			return
		}
	}
}

func (r *REPL) printHistory(_ context.Context, w io.Writer, _ []string) error {
	entries := r.history.Entries()
	for i, e := range entries {
		fmt.Fprintf(w, "%4d  %s\n", i+1, e)
	}
	return nil
}

// Builtins returns the names of shell-only commands, sorted.
func (r *REPL) Builtins() []string {
	names := make([]string, 0, len(r.builtins))
	for name := range r.builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
