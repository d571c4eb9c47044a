package cmd

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"tenant-booking/internal/data/entity"
	"tenant-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}
	cmd.AddCommand(newUserAddCmd())
	return cmd
}

func newUserAddCmd() *cobra.Command {
	var email, password, displayName, tenantID, role string

	c := &cobra.Command{
		Use:   "add",
		Short: "Add a user directly to the store (bootstraps the first super admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			userRole := entity.UserRole(role)
			if !slices.Contains([]entity.UserRole{entity.RoleMember, entity.RoleAdmin, entity.RoleSuperAdmin}, userRole) {
				return fmt.Errorf("unknown role %q", role)
			}
			if userRole != entity.RoleSuperAdmin && tenantID == "" {
				return fmt.Errorf("--tenant is required for role %s", role)
			}

			ctx := context.Background()
			rt, err := openRuntime(ctx, false)
			if err != nil {
				return err
			}
			defer rt.close()

			email = strings.ToLower(email)
			existing, err := rt.repo.User.FindByEmail(ctx, email)
			if err != nil {
				return err
			}
			if existing != nil {
				return fmt.Errorf("email %s already registered", email)
			}

			hash, err := utils.HashPassword(password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}

			now := time.Now().UTC()
			user := &entity.User{
				Base:         entity.Base{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
				TenantID:     tenantID,
				Email:        email,
				DisplayName:  displayName,
				PasswordHash: hash,
				Role:         userRole,
				IsActive:     true,
			}
			if err := rt.repo.User.Create(ctx, user); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %q (%s)\n", email, user.ID)
			return nil
		},
	}

	c.Flags().StringVar(&email, "email", "", "login email")
	c.Flags().StringVar(&password, "password", "", "password")
	c.Flags().StringVar(&displayName, "name", "", "display name")
	c.Flags().StringVar(&tenantID, "tenant", "", "tenant id (empty for super_admin)")
	c.Flags().StringVar(&role, "role", string(entity.RoleSuperAdmin), "member, admin or super_admin")
	_ = c.MarkFlagRequired("email")
	_ = c.MarkFlagRequired("password")
	return c
}
