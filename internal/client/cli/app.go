package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/watchlist/internal/client/client"
	"github.com/dmitrijs2005/watchlist/internal/client/config"
)

// ErrUsage is returned for an unknown or incomplete command.
var ErrUsage = errors.New("usage: watchlist [flags] register | login | (favourites|history) (get | add <id> | remove <id>)")

// App runs one CLI command.
type App struct {
	config *config.Config
	client *client.Client
	in     *bufio.Reader
	out    io.Writer
}

func NewApp(cfg *config.Config, c *client.Client, in io.Reader, out io.Writer) *App {
	c.SetToken(cfg.Token)
	return &App{config: cfg, client: c, in: bufio.NewReader(in), out: out}
}

// Run dispatches args to the matching command.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	switch args[0] {
	case "register":
		return a.register(ctx)
	case "login":
		return a.login(ctx)
	case "favourites", "history":
		return a.list(ctx, args[0], args[1:])
	default:
		return ErrUsage
	}
}

// withTimeout bounds ctx by the request timeout; zero or less means none.
func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

func (a *App) credentials(confirm bool) (user, pw, pw2 string, err error) {
	user = a.config.UserName
	if user == "" {
		if user, err = GetSimpleText(a.in, "User name", a.out); err != nil {
			return "", "", "", err
		}
	}

	pw = a.config.Password
	if pw != "" {
		return user, pw, "", nil
	}
	if pw, err = GetPassword("Password", a.out); err != nil {
		return "", "", "", err
	}
	if confirm {
		if pw2, err = GetPassword("Repeat password", a.out); err != nil {
			return "", "", "", err
		}
	}
	return user, pw, pw2, nil
}

func (a *App) register(ctx context.Context) error {
	user, pw, pw2, err := a.credentials(true)
	if err != nil {
		return err
	}
	msg, err := a.client.Register(ctx, user, pw, pw2)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) login(ctx context.Context) error {
	user, pw, _, err := a.credentials(false)
	if err != nil {
		return err
	}
	token, err := a.client.Login(ctx, user, pw)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, token)
	return nil
}

func (a *App) list(ctx context.Context, list string, args []string) error {
	if a.config.Token == "" {
		return errors.New("no session token: run login and pass it with -token or WATCHLIST_TOKEN")
	}
	if len(args) == 0 {
		return ErrUsage
	}

	var (
		items []string
		err   error
	)
	switch {
	case args[0] == "get" && len(args) == 1:
		items, err = a.client.GetList(ctx, list)
	case args[0] == "add" && len(args) == 2:
		items, err = a.client.AddItem(ctx, list, args[1])
	case args[0] == "remove" && len(args) == 2:
		items, err = a.client.RemoveItem(ctx, list, args[1])
	default:
		return ErrUsage
	}
	if err != nil {
		return err
	}

	if len(items) == 0 {
		fmt.Fprintf(a.out, "%s is empty\n", list)
		return nil
	}
	fmt.Fprintln(a.out, strings.Join(items, "\n"))
	return nil
}
