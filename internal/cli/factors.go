package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yungbote/ecotrack-backend/internal/footprint"
)

// newFactorsCmd prints the emission factor sets EMISSION_FACTOR_SET can name.
func newFactorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "factors",
		Short: "List the configured emission factor sets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SET\tELECTRICITY\tGAS\tWATER")
			for _, name := range footprint.Names() {
				f, err := footprint.Lookup(name)
				if err != nil {
					return err
				}
				water := "excluded"
				if f.IncludeWater {
					water = fmt.Sprintf("%g", f.Water)
				}
				fmt.Fprintf(w, "%s\t%g\t%g\t%s\n", name, f.Electricity, f.Gas, water)
			}
			return w.Flush()
		},
	}
}
