// Package cli implements the interactive command-line client for the
// session service.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/api"
	"github.com/dmitrijs2005/sessionkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// API is the part of the server the CLI talks to.
type API interface {
	Signup(ctx context.Context, email, name, password string) (*api.User, error)
	Login(ctx context.Context, email, password string) (*api.Token, error)
	Logout(ctx context.Context, tokenValue string) error
	Validate(ctx context.Context, tokenValue string) (*api.User, error)
}

// App bundles the CLI's dependencies: an input reader, an output writer, and
// the API client.
type App struct {
	reader *bufio.Reader
	out    io.Writer
	api    API
}

func NewApp(client API, in io.Reader, out io.Writer) *App {
	return &App{reader: bufio.NewReader(in), out: out, api: client}
}

// Run dispatches one command. args holds the command name and its
// positional arguments.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return common.ErrValidation
	}

	switch args[0] {
	case "signup":
		return a.Signup(ctx)
	case "login":
		return a.Login(ctx)
	case "logout":
		return a.Logout(ctx, args[1:])
	case "validate":
		return a.Validate(ctx, args[1:])
	default:
		a.usage()
		return common.ErrValidation
	}
}

func (a *App) usage() {
	fmt.Fprintln(a.out, "usage: cli [flags] signup|login|logout <token>|validate <token>")
}

// Signup prompts for an email, display name, and password and creates a new
// account. The password byte slice is wiped before returning.
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.api.Signup(ctx, email, name, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered: %s\n", user.Email)
	return nil
}

// Login prompts for credentials and prints the issued session token. This is
// the only place the token value is ever shown.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	token, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Token: %s\nExpires: %s\n", token.Token, token.ExpiresAt)
	return nil
}

// Logout revokes the token given as an argument (or prompted for).
func (a *App) Logout(ctx context.Context, args []string) error {
	value, err := a.tokenArg(args)
	if err != nil {
		return err
	}
	if err := a.api.Logout(ctx, value); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Validate resolves the token given as an argument (or prompted for) to its
// owning user.
func (a *App) Validate(ctx context.Context, args []string) error {
	value, err := a.tokenArg(args)
	if err != nil {
		return err
	}
	user, err := a.api.Validate(ctx, value)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Valid for: %s\n", user.Email)
	return nil
}

func (a *App) tokenArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return getSimpleText(a.reader, "Enter token", a.out)
}

// Main is the real entrypoint behind cmd/cli.
func Main() {
	serverURL := "http://127.0.0.1:8080"
	args := os.Args[1:]
	if len(args) >= 2 && args[0] == "-s" {
		serverURL = args[1]
		args = args[2:]
	}

	app := NewApp(api.NewClient(serverURL), os.Stdin, os.Stdout)
	if err := app.Run(context.Background(), args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
