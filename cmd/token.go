package cmd

import (
	"fmt"
	"time"

	"tenant-booking/pkg/utils"

	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var subject, tenantID string
	var roles []string

	c := &cobra.Command{
		Use:   "token",
		Short: "Mint a signed bearer token for local testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, _, err := loadConfigAndLogger()
			if err != nil {
				return err
			}

			token, expiresAt, err := utils.GenerateToken(config.JWT, subject, tenantID, roles)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expiresAt.Format(time.RFC3339))
			return nil
		},
	}

	c.Flags().StringVar(&subject, "sub", "", "user id placed in the subject claim")
	c.Flags().StringVar(&tenantID, "tenant", "", "tenant id claim")
	c.Flags().StringSliceVar(&roles, "roles", nil, "comma-separated roles (member, admin, super_admin)")
	_ = c.MarkFlagRequired("sub")
	return c
}
