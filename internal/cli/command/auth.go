package command

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/libros-go/internal/cli/config"
	"github.com/yndnr/libros-go/internal/core/domain"
)

// LoginCommand returns the login command.
func LoginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Log in and store a session token",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "email",
				Aliases: []string{"e"},
				Usage:   "Account email (prompted when omitted)",
			},
			&cli.StringFlag{
				Name:  "password-file",
				Usage: "Read the password from a file instead of prompting",
			},
		},
		Action: runLogin,
	}
}

// LogoutCommand returns the logout command.
func LogoutCommand() *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "Discard the stored session token",
		Action: runLogout,
	}
}

// StatusCommand returns the status command.
func StatusCommand() *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show the server and session state",
		Action: runStatus,
	}
}

func runLogin(c *cli.Context) error {
	rt, err := mustRuntime(c)
	if err != nil {
		return err
	}

	in := newLineReader(c)
	email := c.String("email")
	if email == "" {
		if email, err = in.Prompt("Email: "); err != nil {
			return err
		}
	}
	if email == "" {
		return domain.ErrMissingArgument.WithDetails("email is required")
	}

	var password string
	if path := c.String("password-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read password file: %w", err)
		}
		password = strings.TrimRight(string(data), "\r\n")
	} else if password, err = in.Secret("Password: "); err != nil {
		return err
	}

	ctx, cancel := requestContext(c, rt)
	defer cancel()

	var ok bool
	err = withSpinner(c, "Logging in...", func() error {
		var loginErr error
		ok, loginErr = rt.Sessions.Login(ctx, domain.Credentials{Email: email, Password: password})
		return loginErr
	})
	if !ok {
		return err
	}

	printMessage(c, "Logged in as %s.", email)
	return nil
}

func runLogout(c *cli.Context) error {
	rt, err := mustRuntime(c)
	if err != nil {
		return err
	}

	if err := rt.Sessions.Logout(c.Context); err != nil {
		return err
	}
	printMessage(c, "Logged out.")
	return nil
}

func runStatus(c *cli.Context) error {
	rt, err := mustRuntime(c)
	if err != nil {
		return err
	}

	return printResult(c, map[string]string{
		"server":          rt.Gateway.BaseURL(),
		"authenticated":   strconv.FormatBool(rt.Sessions.IsAuthenticated(c.Context)),
		"session_backend": rt.Config.Session.Backend,
		"session_path":    sessionPath(rt),
	})
}

// sessionPath returns the configured store location, or "-" in memory.
func sessionPath(rt *Runtime) string {
	if rt.Config.Session.Backend == config.BackendMemory {
		return "-"
	}
	return rt.Config.Session.Path
}
