package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bolt-foundry/gambit/internal/daemon"
	"github.com/bolt-foundry/gambit/internal/logging"
	"github.com/bolt-foundry/gambit/internal/settings"
	"github.com/bolt-foundry/gambit/internal/version"
)

func main() {
	var settingsPath string

	root := &cobra.Command{
		Use:     "gambitd",
		Short:   "Gambit routing daemon",
		Version: version.Full(),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := settings.Load(settingsPath)
			if err != nil {
				return err
			}

			logger, err := logging.NewLogger(set.Logging.Level, set.Logging.Format)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck // best-effort

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server, err := daemon.NewServer(set, logger)
			if err != nil {
				return err
			}
			return server.Run(ctx)
		},
	}

	root.Flags().StringVar(&settingsPath, "settings", "", "Path to settings file (default: gambitd.yaml in . or configs/)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
