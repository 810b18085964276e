package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/watchlist/internal/client/cli"
	"github.com/dmitrijs2005/watchlist/internal/client/client"
	"github.com/dmitrijs2005/watchlist/internal/client/config"
)

func main() {
	cfg, args, err := config.LoadConfig(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp(cfg, client.New(cfg.ServerURL, cfg.AuthScheme, nil), os.Stdin, os.Stdout)
	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
