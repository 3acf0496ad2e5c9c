package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := a.backend(cmd.Context())
			if err != nil {
				return err
			}
			defer b.close()

			version, err := b.migrate()
			if err != nil {
				return fmt.Errorf("database migration error: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrations applied, schema version %d\n", version)
			return nil
		},
	}
}
