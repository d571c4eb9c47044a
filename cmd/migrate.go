package cmd

import (
	"context"
	"fmt"

	"tenant-booking/pkg/database"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			rt, err := openRuntime(ctx, false)
			if err != nil {
				return err
			}
			defer rt.close()

			// buckets are created when the bolt file is opened
			if rt.pg == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "bolt store ready, nothing to migrate")
				return nil
			}
			if err := database.Migrate(ctx, rt.pg, rt.logger); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}
