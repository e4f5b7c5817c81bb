package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/libros-go/internal/infra/buildinfo"
)

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show build information",
		Action: func(c *cli.Context) error {
			info := buildinfo.Get()
			switch ParseGlobalFlags(c).Output {
			case "json", "yaml":
				return printResult(c, info)
			}
			fmt.Fprintf(c.App.Writer, "%s %s\n", AppName, buildinfo.String())
			fmt.Fprintf(c.App.Writer, "go: %s\n", info.GoVersion)
			return nil
		},
	}
}
