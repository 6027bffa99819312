package cli

import (
	"fmt"

	"github.com/dedatech/workplan/internal/cli/formatter"
	"github.com/dedatech/workplan/internal/domain"
	"github.com/spf13/cobra"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage the user directory",
	}

	cmd.AddCommand(
		newUserAddCmd(app),
		newUserShowCmd(app),
	)

	return cmd
}

func newUserAddCmd(app *App) *cobra.Command {
	var name, department string

	cmd := &cobra.Command{
		Use:   "add <user-id>",
		Short: "Register a user, or update an existing display name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u := &domain.User{ID: args[0], DisplayName: name, DepartmentID: department}
			if err := app.Users.Register(cmd.Context(), u); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s as %s\n", u.ID, u.DisplayName)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&department, "department", "", "Department ID")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newUserShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <user-id>",
		Short: "Show a registered user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := app.Users.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n",
				formatter.Dim(u.ID), formatter.Bold(u.DisplayName), u.DepartmentID)
			return nil
		},
	}
}
