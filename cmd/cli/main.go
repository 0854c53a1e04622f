//go:build !js && !wasm
// +build !js,!wasm

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/himanishpuri/SacraMusic/internal/config"
	"github.com/himanishpuri/SacraMusic/pkg/sacramusic"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

type configKey struct{}

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// NewRootCmd creates the sacramusic command tree.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "sacramusic",
		Short: "SacraMusic - songs, setlists and schedules for liturgical music ministries",
		Long: `SacraMusic manages a shared song library with lyrics and chord sheets,
Mass and custom setlists, and the ministry's musician schedule.

The chord engine transposes chord sheets while keeping their alignment.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./sacramusic.yaml)")
	rootCmd.PersistentFlags().String("db", config.DefaultDBPath, "Path to SQLite database (env: SACRAMUSIC_DB_PATH)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newSongsCmd())
	rootCmd.AddCommand(newPerformCmd())
	rootCmd.AddCommand(newTransposeCmd())
	rootCmd.AddCommand(newSetlistsCmd())
	rootCmd.AddCommand(newSchedulesCmd())
	rootCmd.AddCommand(newMinistryCmd())

	return rootCmd
}

func configFrom(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return &config.Config{DBPath: config.DefaultDBPath, LogLevel: "info"}
}

// openService opens the database named by the loaded config. Logs go to
// stderr so they never mix with command output.
func openService(cmd *cobra.Command) (sacramusic.Service, func(), error) {
	cfg := configFrom(cmd)

	log := cfg.Logger()
	log.SetOutput(cmd.ErrOrStderr())

	svc, err := sacramusic.NewService(
		sacramusic.WithDBPath(cfg.DBPath),
		sacramusic.WithRenderCacheSize(cfg.RenderCacheSize),
		sacramusic.WithLogger(log),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create service: %w", err)
	}
	return svc, func() { svc.Close() }, nil
}
