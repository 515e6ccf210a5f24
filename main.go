// Command textray walks the level on the local terminal, without a network
// server. It accepts the same flags as cmd/textray; only --level matters.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/KazDragon/textray/internal/config"
	"github.com/KazDragon/textray/internal/level"
	"github.com/KazDragon/textray/internal/server"

	"github.com/gdamore/tcell/v2"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:], ".env")
	if err != nil {
		return err
	}
	lvl := level.MustDefault()
	if cfg.Level != "" {
		if lvl, err = level.Load(cfg.Level); err != nil {
			return err
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// The terminal belongs to the view; logs would tear it.
	srv := server.New(lvl, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return srv.Serve(ctx, os.Getenv("USER"), screen)
}
