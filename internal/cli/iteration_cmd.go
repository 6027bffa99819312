package cli

import (
	"fmt"

	"github.com/dedatech/workplan/internal/cli/formatter"
	"github.com/dedatech/workplan/internal/domain"
	"github.com/spf13/cobra"
)

func newIterationCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "iteration",
		Aliases: []string{"iter"},
		Short:   "Manage iterations",
	}

	cmd.AddCommand(
		newIterationAddCmd(app),
		newIterationListCmd(app),
		newIterationRemoveCmd(app),
	)

	return cmd
}

func newIterationAddCmd(app *App) *cobra.Command {
	var project, name, start, end string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an iteration in a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := resolveProjectID(cmd.Context(), app, project)
			if err != nil {
				return err
			}

			it := &domain.Iteration{ProjectID: projectID, Name: name}
			if it.PlannedStart, err = parseDateFlag(start, "start"); err != nil {
				return err
			}
			if it.PlannedEnd, err = parseDateFlag(end, "end"); err != nil {
				return err
			}

			if err := app.Iterations.Create(cmd.Context(), it); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created iteration %s\n", it.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	cmd.Flags().StringVar(&name, "name", "", "Iteration name")
	cmd.Flags().StringVar(&start, "start", "", "Planned start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Planned end (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newIterationListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's iterations",
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := resolveProjectID(cmd.Context(), app, project)
			if err != nil {
				return err
			}
			iterations, err := app.Iterations.ListByProject(cmd.Context(), projectID)
			if err != nil {
				return err
			}
			if len(iterations) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No iterations."))
				return nil
			}
			for _, it := range iterations {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s → %s\n",
					formatter.Bold(it.Name), string(it.Status),
					formatter.FormatDate(it.PlannedStart), formatter.FormatDate(it.PlannedEnd))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newIterationRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <iteration-id>",
		Short: "Delete an iteration (its tasks survive unassigned)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Iterations.Delete(cmd.Context(), args[0])
		},
	}
}
