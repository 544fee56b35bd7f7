package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/jotter/internal/apperr"
	"github.com/starford/jotter/internal/mcpserver"
)

// RunMCP serves the MCP tools on stdio for the user named username.
// Stdout carries the protocol, so logs go to stderr.
func RunMCP(ctx context.Context, username string, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	level := new(slog.LevelVar)
	level.Set(cfg.App.LogLevel)
	logger := newLogger(os.Stderr, level)

	svc, err := newServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer svc.store.Close()

	user, err := svc.auth.UserByUsername(ctx, username)
	if errors.Is(err, apperr.ErrNotFound) {
		return fmt.Errorf("user %q does not exist", username)
	}
	if err != nil {
		return fmt.Errorf("look up user: %w", err)
	}

	logger.Info("MCP server starting", slog.String("username", user.Username), slog.String("store_driver", cfg.Store.Driver))
	return mcpserver.New(svc.notes, svc.assistant, user.ID).ServeStdio()
}
