//go:build !js && !wasm
// +build !js,!wasm

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/himanishpuri/SacraMusic/internal/config"
	"github.com/himanishpuri/SacraMusic/internal/session"
	"github.com/himanishpuri/SacraMusic/pkg/sacramusic"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("sacramusic-server", pflag.ContinueOnError)
	cfgFile := flags.String("config", "", "Path to config file (default: ./sacramusic.yaml)")
	flags.Int("port", config.DefaultPort, "HTTP server port")
	flags.String("db", config.DefaultDBPath, "Path to SQLite database")
	flags.StringSlice("allowed-origins", nil, "Allowed CORS origins")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", "text", "Log format (text, json)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*cfgFile, flags)
	if err != nil {
		return err
	}
	if err := cfg.ValidateServer(); err != nil {
		return err
	}

	log := cfg.Logger()
	if cfg.FileUsed != "" {
		log.Infof("Using config file %s", cfg.FileUsed)
	}

	service, err := sacramusic.NewService(
		sacramusic.WithDBPath(cfg.DBPath),
		sacramusic.WithRenderCacheSize(cfg.RenderCacheSize),
		sacramusic.WithLogger(log),
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	defer service.Close()

	store := session.NewCookieStore([]byte(cfg.SessionSecret), false)
	server := NewServer(service, cfg, session.NewProvider(store), log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Serve(ctx)
}
