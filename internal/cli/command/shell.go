package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/libros-go/internal/cli/repl"
	"github.com/yndnr/libros-go/internal/cli/session"
	"github.com/yndnr/libros-go/internal/telemetry/logger"
)

// ShellCommand returns the interactive shell command.
func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "Start an interactive session",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "history-file",
				Usage: "Command history file (default ~/.libros/history)",
			},
		},
		Action: runShell,
	}
}

func runShell(c *cli.Context) error {
	rt, err := mustRuntime(c)
	if err != nil {
		return err
	}

	historyFile := c.String("history-file")
	if historyFile == "" {
		historyFile = repl.DefaultHistoryFile()
	}
	history := repl.NewHistory(historyFile)
	if err := history.Load(); err != nil {
		rt.Logger.Debug("load history", "file", historyFile, "error", err)
	}
	rt.Shutdown.OnShutdown(func(context.Context) error {
		return history.Save()
	})

	// known is the session state after the last shell command; busy
	// suppresses watcher notices for changes the shell itself makes.
	var known, busy atomic.Bool
	known.Store(rt.Sessions.IsAuthenticated(c.Context))

	exec := func(ctx context.Context, args []string) error {
		busy.Store(true)
		defer func() {
			known.Store(rt.Sessions.IsAuthenticated(ctx))
			busy.Store(false)
		}()

		app := App(WithRuntime(rt), WithIO(c.App.Reader, c.App.Writer, c.App.ErrWriter))
		app.ExitErrHandler = func(*cli.Context, error) {}
		argv := []string{AppName}
		if rt.ConfigPath != "" {
			argv = append(argv, "--config", rt.ConfigPath)
		}
		return app.RunContext(ctx, append(argv, args...))
	}

	shell := repl.New(exec,
		repl.WithIO(c.App.Reader, c.App.Writer),
		repl.WithHistory(history),
		repl.WithPrompt(func() string {
			if known.Load() {
				return "libros> "
			}
			return "libros (anonymous)> "
		}),
		repl.WithBuiltin("metrics", func(_ context.Context, w io.Writer, _ []string) error {
			return rt.Metrics.WriteText(w)
		}),
	)

	if fs, ok := rt.Store.(*session.FileStore); ok {
		// The watcher needs the directory before the first login creates it.
		if err := os.MkdirAll(filepath.Dir(fs.Path()), 0700); err != nil {
			rt.Logger.Debug("create session directory", "dir", filepath.Dir(fs.Path()), "error", err)
		}
		w, err := session.NewWatcher(fs.Path(), session.WithWatcherLogger(logger.AsSlog(rt.Logger)))
		if err != nil {
			rt.Logger.Debug("session watcher disabled", "error", err)
		} else {
			w.OnChange(func(present bool) {
				if busy.Load() || present == known.Load() {
					return
				}
				known.Store(present)
				if present {
					shell.Notify("a session was started in another process")
				} else {
					shell.Notify("the session was ended in another process")
				}
			})
			w.StartAsync()
			defer w.Stop()
		}
	}

	fmt.Fprintf(c.App.Writer, "%s shell. Type 'help' for commands, 'exit' to quit.\n", AppName)
	return shell.Run(c.Context)
}
