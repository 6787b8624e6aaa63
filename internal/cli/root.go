package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bolt-foundry/gambit/internal/version"
)

// Options holds global CLI options.
type Options struct {
	// Target is the path the config walk starts from; empty means the
	// working directory.
	Target string
	// Fallback names the provider for unprefixed models; empty leaves them
	// unresolved.
	Fallback string
}

// NewRootCmd constructs the base CLI command tree.
func NewRootCmd() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:           "gambit",
		Short:         "Gambit – model resolution and provider routing",
		Version:       version.Full(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Target, "target", "", "Start path for the gambit.toml walk (default: working directory)")
	cmd.PersistentFlags().StringVar(&opts.Fallback, "fallback", "", "Fallback provider for unprefixed models (openai, google, ollama, codex)")

	cmd.AddCommand(NewResolveCmd(opts))
	cmd.AddCommand(NewDoctorCmd(opts))
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
