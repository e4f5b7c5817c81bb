package command

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/libros-go/internal/cli/config"
)

// ConfigCommand returns the config command.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect the CLI configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: runConfigShow,
			},
			{
				Name:   "validate",
				Usage:  "Check the configuration for errors",
				Action: runConfigValidate,
			},
			{
				Name:  "init",
				Usage: "Write the effective configuration to the config file",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Usage:   "Overwrite an existing file",
					},
				},
				Action: runConfigInit,
			},
		},
	}
}

// loadConfig loads configuration honouring the global flags.
func loadConfig(c *cli.Context) (*config.CLIConfig, string, error) {
	path := c.String("config")
	cfg, err := config.Load(path, flagOverrides(c))
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		path = config.DefaultConfigPath()
	}
	return cfg, path, nil
}

func runConfigShow(c *cli.Context) error {
	cfg, path, err := loadConfig(c)
	if err != nil {
		return err
	}

	if cfg.Output == "json" || cfg.Output == "yaml" {
		return printAs(c, cfg.Output, cfg)
	}

	rows := configRows(cfg)
	rows["config_file"] = path
	return printAs(c, cfg.Output, rows)
}

func runConfigValidate(c *cli.Context) error {
	cfg, path, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fmt.Fprintln(c.App.Writer, "Configuration is valid.")
	return nil
}

func runConfigInit(c *cli.Context) error {
	cfg, path, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if !c.Bool("force") {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	if err := config.Save(cfg, path); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Wrote %s.\n", path)
	return nil
}

// configRows flattens cfg into dotted keys for table output.
func configRows(cfg *config.CLIConfig) map[string]string {
	return map[string]string{
		"server":          cfg.Server,
		"output":          cfg.Output,
		"session.backend": cfg.Session.Backend,
		"session.path":    cfg.Session.Path,
		"request.timeout": cfg.Request.Timeout.String(),
		"request.rate":    strconv.FormatFloat(cfg.Request.Rate, 'g', -1, 64),
		"request.burst":   strconv.Itoa(cfg.Request.Burst),
		"request.ca_file": cfg.Request.CAFile,
		"log.level":       cfg.Log.Level,
		"log.format":      cfg.Log.Format,
	}
}
