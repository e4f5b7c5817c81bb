package main

import (
	"context"
	"os"
	"time"

	"github.com/yndnr/libros-go/internal/cli/command"
	"github.com/yndnr/libros-go/internal/infra/shutdown"
)

func main() {
	os.Exit(run())
}

func run() int {
	sh := shutdown.NewHandler(5 * time.Second)
	ctx, stop := sh.NotifyContext(context.Background())
	defer stop()

	app := command.App(command.WithShutdown(sh))
	err := app.RunContext(ctx, os.Args)

	// Close the session store and save shell history on every exit path.
	if shutdownErr := sh.Shutdown(); shutdownErr != nil && err == nil {
		err = shutdownErr
	}
	if err != nil {
		command.PrintError(os.Stderr, err)
		return 1
	}
	return 0
}
