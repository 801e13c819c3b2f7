package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"todoapp/internal/config"
	"todoapp/internal/logger"
	"todoapp/pkg/api"
	"todoapp/pkg/session"
	"todoapp/pkg/tasklist"
)

var (
	// errSignedOut ends a protected command after the user was sent to signin.
	errSignedOut = errors.New("not signed in")
	// errReported means the failure was already shown to the user.
	errReported = errors.New("reported")
)

type app struct {
	stdin  io.Reader
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	log    *slog.Logger
	gate   *session.Gate
	client *api.Client
	tasks  *tasklist.Controller
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{
		stdin:  in,
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
	}

	root := &cobra.Command{
		Use:           "todo",
		Short:         "Manage your tasks from the terminal",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.home(cmd)
		},
	}

	root.AddCommand(
		a.signupCmd(),
		a.signinCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.listCmd(),
		a.addCmd(),
		a.showCmd(),
		a.editCmd(),
		a.toggleCmd(),
		a.rmCmd(),
	)
	return root
}

func (a *app) load() error {
	cfg, err := config.LoadClient()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	a.log = logger.New(a.errOut, cfg.LogLevel)
	a.gate = session.NewGate(session.NewFileStore(cfg.TokenFile), session.NavigatorFunc(a.navigate), a.log)
	a.client = api.New(cfg.APIURL, &http.Client{Timeout: cfg.Timeout}, a.gate, a.log)
	a.tasks = tasklist.NewController(a.client, a.log)
	return nil
}

// home mirrors the landing page: signed-in users get their list, everyone
// else is sent to signin.
func (a *app) home(cmd *cobra.Command) error {
	if !a.gate.IsAuthenticated() {
		a.navigate(session.RouteSignin)
		return nil
	}
	return a.runList(cmd, tasklist.All)
}

func (a *app) navigate(route session.Route) {
	switch route {
	case session.RouteSignin:
		fmt.Fprintln(a.out, "Sign in with `todo signin` to continue.")
	case session.RouteSignup:
		fmt.Fprintln(a.out, "Create an account with `todo signup`.")
	case session.RouteTasks:
		fmt.Fprintln(a.out, "Run `todo list` to see your tasks.")
	default:
		a.log.Debug("navigate", "route", string(route))
	}
}

// protect is called first by every command that needs a session.
func (a *app) protect() (session.Identity, error) {
	id, err := a.gate.EnforceProtected()
	if err != nil {
		a.log.Debug("session rejected", logger.Err(err))
		return session.Identity{}, errSignedOut
	}
	return id, nil
}

// fail shows err to the user. A session that went bad mid-command is handled
// like any other protected-view check.
func (a *app) fail(err error, fallback string) error {
	if errors.Is(err, session.ErrMissing) || errors.Is(err, session.ErrMalformed) || errors.Is(err, session.ErrExpired) {
		_, _ = a.protect()
		return errSignedOut
	}
	if errors.Is(err, api.ErrUnauthorized) {
		a.gate.Invalidate(err)
		return errSignedOut
	}
	if errors.Is(err, tasklist.ErrNotAuthorized) {
		a.navigate(session.RouteSignin)
		return errSignedOut
	}

	a.log.Debug("command failed", logger.Err(err))
	fmt.Fprintln(a.out, "Error:", api.Message(err, fallback))
	return errReported
}

func (a *app) confirm(prompt string) bool {
	answer, err := a.ask(prompt + " [y/N]: ")
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func (a *app) ask(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)
	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// askSecret reads without echo when stdin is a terminal and falls back to a
// plain line otherwise.
func (a *app) askSecret(prompt string) (string, error) {
	f, ok := a.stdin.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return a.ask(prompt)
	}

	fmt.Fprint(a.out, prompt)
	secret, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(a.out)
	if err != nil {
		return "", err
	}
	return string(secret), nil
}
