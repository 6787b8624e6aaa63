package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bolt-foundry/gambit/internal/config"
	"github.com/bolt-foundry/gambit/internal/model"
)

// NewDoctorCmd returns a health-check command inspecting config discovery and
// the alias table.
func NewDoctorCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Inspect config discovery and alias-table health",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			pc, err := config.NewStore().Load(cmd.Context(), opts.Target)
			if err != nil {
				return err
			}
			if pc == nil {
				fmt.Fprintln(out, "No gambit.toml found on the ancestor chain")
				return nil
			}

			fmt.Fprintf(out, "Config OK. Root: %s\n", pc.Root)

			table, skipped := model.BuildAliasTable(pc)
			fmt.Fprintf(out, "Aliases: %d usable, %d skipped\n", table.Len(), len(skipped))
			for _, name := range table.Names() {
				line := fmt.Sprintf("  %s -> %s", name, table.Resolve(name).Model)
				if desc := table.Describe(name); desc != "" {
					line += " (" + desc + ")"
				}
				fmt.Fprintln(out, line)
			}
			for _, s := range skipped {
				fmt.Fprintf(out, "  skipped %q: %s\n", s.Name, s.Reason)
			}

			if ws := pc.Config.Workspace; ws != nil {
				fmt.Fprintf(out, "Workspace: decks=%q actions=%q graders=%q tests=%q schemas=%q\n",
					ws.Decks, ws.Actions, ws.Graders, ws.Tests, ws.Schemas)
			}
			return nil
		},
	}
}
