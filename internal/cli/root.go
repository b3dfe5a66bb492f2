package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the ecotrack command tree.
func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ecotrack",
		Short:         "Household utility consumption and CO2 tracking API",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newServeCmd(), newMigrateCmd(), newFactorsCmd())
	return cmd
}
