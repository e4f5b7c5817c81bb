package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/libros-go/internal/cli/config"
	"github.com/yndnr/libros-go/internal/cli/connection"
	"github.com/yndnr/libros-go/internal/cli/session"
	"github.com/yndnr/libros-go/internal/core/service"
	"github.com/yndnr/libros-go/internal/infra/buildinfo"
	"github.com/yndnr/libros-go/internal/infra/shutdown"
	"github.com/yndnr/libros-go/internal/infra/tlsroots"
	"github.com/yndnr/libros-go/internal/telemetry/logger"
	"github.com/yndnr/libros-go/internal/telemetry/metric"
)

// AppName is the program name used in help output and the User-Agent.
const AppName = "libros-cli"

const runtimeKey = "runtime"

// Runtime is everything a command needs, built once per process from
// configuration and shared by every shell line.
type Runtime struct {
	Config     *config.CLIConfig
	ConfigPath string
	Store      session.Store
	Gateway    *connection.HTTPClient
	Catalog    *service.CatalogService
	Sessions   *service.SessionService
	Metrics    *metric.Registry
	Logger     logger.Logger
	Shutdown   *shutdown.Handler
}

// Option configures App.
type Option func(*cli.App)

// WithShutdown registers runtime cleanup on h instead of a private handler.
func WithShutdown(h *shutdown.Handler) Option {
	return func(app *cli.App) {
		app.Metadata[shutdownKey] = h
	}
}

// WithIO sets the streams commands read from and write to.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(app *cli.App) {
		app.Reader = in
		app.Writer = out
		app.ErrWriter = errOut
	}
}

// WithRuntime reuses an existing runtime, skipping configuration loading.
func WithRuntime(rt *Runtime) Option {
	return func(app *cli.App) {
		app.Metadata[runtimeKey] = rt
	}
}

const shutdownKey = "shutdown"

// App creates the CLI application.
func App(opts ...Option) *cli.App {
	app := &cli.App{
		Name:                 AppName,
		Usage:                "Book catalog command-line client",
		Version:              buildinfo.String(),
		Flags:                globalFlags(),
		EnableBashCompletion: true,
		Reader:               os.Stdin,
		Writer:               os.Stdout,
		ErrWriter:            os.Stderr,
		Metadata:             map[string]any{},
		Commands: []*cli.Command{
			LoginCommand(),
			LogoutCommand(),
			StatusCommand(),
			BookCommand(),
			ConfigCommand(),
			VersionCommand(),
			ShellCommand(),
		},
		Before: setup,
	}

	for _, opt := range opts {
		opt(app)
	}
	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "Catalog server address (e.g., localhost:8000 or unix:///run/libros.sock)",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Config file (default ~/.libros/cli.yaml)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable debug logging",
		},
		&cli.StringFlag{
			Name:  "session-backend",
			Usage: "Session store: file, badger, memory",
		},
		&cli.BoolFlag{
			Name:  "ephemeral",
			Usage: "Keep the session in memory for this process only",
		},
	}
}

// GlobalFlags holds the per-invocation presentation flags.
type GlobalFlags struct {
	Output  string
	Wide    bool
	Verbose bool
}

// ParseGlobalFlags extracts global flags from context, falling back to
// the configured output format.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	flags := &GlobalFlags{
		Output:  c.String("output"),
		Wide:    c.Bool("wide"),
		Verbose: c.Bool("verbose"),
	}
	if flags.Output == "" {
		if rt := runtimeFrom(c); rt != nil {
			flags.Output = rt.Config.Output
		}
	}
	return flags
}

// flagOverrides maps explicitly set flags to config keys.
func flagOverrides(c *cli.Context) map[string]any {
	overrides := map[string]any{}
	if c.IsSet("server") {
		overrides["server"] = c.String("server")
	}
	if c.IsSet("output") {
		overrides["output"] = c.String("output")
	}
	if c.IsSet("session-backend") {
		overrides["session.backend"] = c.String("session-backend")
	}
	if c.Bool("ephemeral") {
		overrides["session.backend"] = config.BackendMemory
	}
	if c.Bool("verbose") {
		overrides["log.level"] = "debug"
	}
	return overrides
}

// setup builds the runtime unless one is already attached.
func setup(c *cli.Context) error {
	if runtimeFrom(c) != nil || !needsRuntime(c) {
		return nil
	}

	rt, err := NewRuntime(c)
	if err != nil {
		return err
	}
	c.App.Metadata[runtimeKey] = rt
	return nil
}

// needsRuntime reports whether the invoked command talks to the catalog
// or the session store. config and version work without either.
func needsRuntime(c *cli.Context) bool {
	switch c.Args().First() {
	case "", "config", "version", "help", "h":
		return false
	}
	return true
}

// NewRuntime loads configuration and wires store, gateway and services.
func NewRuntime(c *cli.Context) (*Runtime, error) {
	cfgPath := c.String("config")
	cfg, err := config.Load(cfgPath, flagOverrides(c))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logCfg := logger.CLIConfig(c.Bool("verbose"))
	logCfg.Level = cfg.Log.Level
	logCfg.Format = cfg.Log.Format
	logCfg.Output = c.App.ErrWriter
	log, err := logger.New(logCfg)
	if err != nil {
		return nil, err
	}

	tlsConfig, err := tlsroots.ClientConfig(cfg.Request.CAFile)
	if err != nil {
		return nil, err
	}

	store, err := session.Open(session.Options{
		Backend: cfg.Session.Backend,
		Path:    cfg.Session.Path,
		Logger:  logger.AsSlog(log),
	})
	if err != nil {
		return nil, err
	}

	sh, _ := c.App.Metadata[shutdownKey].(*shutdown.Handler)
	if sh == nil {
		sh = shutdown.NewHandler(5 * time.Second)
	}
	sh.OnShutdown(func(context.Context) error {
		return store.Close()
	})

	reg := metric.NewRegistry()
	gw := connection.NewHTTPClient(cfg.Server, store,
		connection.WithTLSConfig(tlsConfig),
		connection.WithTimeout(cfg.Request.Timeout),
		connection.WithRateLimit(cfg.Request.Rate, cfg.Request.Burst),
		connection.WithMetrics(reg),
		connection.WithLogger(log),
		connection.WithUserAgent(buildinfo.UserAgent(AppName)),
	)
	sessions := service.NewSessionService(gw, store,
		service.WithSessionMetrics(reg),
		service.WithSessionLogger(log),
	)
	catalog := service.NewCatalogService(gw,
		service.WithUnauthorizedHandler(sessions),
		service.WithCatalogLogger(log),
	)
	if err := reg.Register(metric.NewSessionCollector(func() bool {
		return sessions.IsAuthenticated(context.Background())
	})); err != nil {
		return nil, err
	}

	return &Runtime{
		Config:     cfg,
		ConfigPath: cfgPath,
		Store:      store,
		Gateway:    gw,
		Catalog:    catalog,
		Sessions:   sessions,
		Metrics:    reg,
		Logger:     log,
		Shutdown:   sh,
	}, nil
}

// runtimeFrom returns the runtime attached to the application.
func runtimeFrom(c *cli.Context) *Runtime {
	rt, _ := c.App.Metadata[runtimeKey].(*Runtime)
	return rt
}

// RuntimeOf returns the runtime built by the last run of app, if any.
func RuntimeOf(app *cli.App) *Runtime {
	rt, _ := app.Metadata[runtimeKey].(*Runtime)
	return rt
}

// mustRuntime returns the runtime or an error for commands run without setup.
func mustRuntime(c *cli.Context) (*Runtime, error) {
	if rt := runtimeFrom(c); rt != nil {
		return rt, nil
	}
	return nil, fmt.Errorf("%s: not initialized", c.Command.Name)
}

// requestContext derives the context for one command's requests.
func requestContext(c *cli.Context, rt *Runtime) (context.Context, context.CancelFunc) {
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if d := rt.Config.Request.Timeout; d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}

// PrintError prints an error message to stderr.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)
}
