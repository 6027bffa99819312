package cli

import (
	"fmt"

	"github.com/dedatech/workplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	var project, from, to string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show a project's schedule tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := resolveProjectID(cmd.Context(), app, project)
			if err != nil {
				return err
			}
			rangeStart, err := parseDateFlag(from, "from")
			if err != nil {
				return err
			}
			rangeEnd, err := parseDateFlag(to, "to")
			if err != nil {
				return err
			}

			root, err := app.Schedule.GetScheduleTree(cmd.Context(), app.UserID, projectID, rangeStart, rangeEnd)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderScheduleTree(root))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	cmd.Flags().StringVar(&from, "from", "", "Range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Range end (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}
