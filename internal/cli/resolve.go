package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bolt-foundry/gambit/internal/config"
	"github.com/bolt-foundry/gambit/internal/model"
	"github.com/bolt-foundry/gambit/internal/router"
)

// NewResolveCmd resolves a model identifier against the nearest gambit.toml
// and prints the provider classification.
func NewResolveCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <model>",
		Short: "Resolve a model alias and classify its provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fallback, ok := model.ParseProviderKey(opts.Fallback)
			if !ok {
				return fmt.Errorf("unknown fallback provider %q", opts.Fallback)
			}

			svc := router.New(config.NewStore(), fallback, nil, nil)
			res, err := svc.Resolve(cmd.Context(), opts.Target, args[0], "")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.ConfigPath != "" {
				fmt.Fprintf(out, "Config: %s\n", res.ConfigPath)
			} else {
				fmt.Fprintln(out, "Config: none (no gambit.toml on ancestor chain)")
			}

			if res.Resolution.Applied {
				fmt.Fprintf(out, "Alias:  %s -> %s\n", res.Resolution.Alias, res.Resolution.Model)
			} else {
				fmt.Fprintf(out, "Model:  %s\n", res.Resolution.Model)
			}
			if res.Resolution.MissingAlias {
				fmt.Fprintln(out, "Warning: input has no provider prefix and matches no alias; possible typo")
			}
			if len(res.Resolution.Params) > 0 {
				if data, err := json.MarshalIndent(res.Resolution.Params, "", "  "); err == nil {
					fmt.Fprintf(out, "Params: %s\n", string(data))
				}
			}

			if !res.Resolved {
				return fmt.Errorf("model %q matches no provider and no fallback provider is set", res.Resolution.Model)
			}

			fmt.Fprintf(out, "Provider: %s\n", res.Provider)
			return nil
		},
	}
}
