package cli

import (
	"fmt"

	"github.com/dedatech/workplan/internal/cli/formatter"
	"github.com/dedatech/workplan/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks and their hierarchy",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskMoveCmd(app),
		newTaskRescheduleCmd(app),
		newTaskStatusCmd(app),
		newTaskLinkCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var project, title, taskType, priority, assignee, iteration, parent, start, end string
	var estimate float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := resolveProjectID(cmd.Context(), app, project)
			if err != nil {
				return err
			}

			t := &domain.Task{
				ProjectID:      projectID,
				Title:          title,
				Type:           taskType,
				Priority:       domain.Priority(priority),
				AssigneeID:     assignee,
				EstimatedHours: estimate,
			}
			if iteration != "" {
				t.IterationID = &iteration
			}
			if parent != "" {
				t.ParentID = &parent
			}
			if t.PlannedStart, err = parseDateFlag(start, "start"); err != nil {
				return err
			}
			if t.PlannedEnd, err = parseDateFlag(end, "end"); err != nil {
				return err
			}

			if err := app.Tasks.Create(cmd.Context(), t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s\n", t.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&taskType, "type", "", "Task type (feature, bug, chore, research, design, task)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (HIGH, MEDIUM, LOW)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee user ID")
	cmd.Flags().StringVar(&iteration, "iteration", "", "Iteration ID")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent task ID")
	cmd.Flags().StringVar(&start, "start", "", "Planned start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Planned end (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&estimate, "estimate", 0, "Estimated hours")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := resolveProjectID(cmd.Context(), app, project)
			if err != nil {
				return err
			}
			tasks, err := app.Tasks.ListByProject(cmd.Context(), projectID)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No tasks."))
				return nil
			}
			for _, t := range tasks {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s  %s\n",
					formatter.Dim(shortID(t.ID)), formatter.Bold(t.Title),
					string(t.Status), formatter.PriorityBadge(t.Priority))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newTaskMoveCmd(app *App) *cobra.Command {
	var parent string
	var toTop bool

	cmd := &cobra.Command{
		Use:   "move <task-id>",
		Short: "Move a task under a new parent, or to top level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var newParent *string
			switch {
			case toTop:
				newParent = nil
			case parent != "":
				newParent = &parent
			default:
				return fmt.Errorf("either --parent or --top is required")
			}
			if err := app.Schedule.ReparentTask(cmd.Context(), app.UserID, args[0], newParent); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Moved.")
			return nil
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "New parent task ID")
	cmd.Flags().BoolVar(&toTop, "top", false, "Move to top level")
	return cmd
}

func newTaskRescheduleCmd(app *App) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "reschedule <task-id>",
		Short: "Set a task's planned date range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := parseDate(start, "start")
			if err != nil {
				return err
			}
			endDate, err := parseDate(end, "end")
			if err != nil {
				return err
			}
			if err := app.Schedule.RescheduleTask(cmd.Context(), app.UserID, args[0], startDate, endDate); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Rescheduled.")
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Planned start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Planned end (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func newTaskStatusCmd(app *App) *cobra.Command {
	var actualStart, actualEnd string

	cmd := &cobra.Command{
		Use:   "status <task-id> <status>",
		Short: "Change a task's status (TODO, IN_PROGRESS, DONE)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrideStart, err := parseDateFlag(actualStart, "actual-start")
			if err != nil {
				return err
			}
			overrideEnd, err := parseDateFlag(actualEnd, "actual-end")
			if err != nil {
				return err
			}
			updated, err := app.Schedule.TransitionTaskStatus(cmd.Context(), app.UserID,
				args[0], domain.TaskStatus(args[1]), overrideStart, overrideEnd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s (actual %s → %s)\n",
				updated.Title, string(updated.Status),
				formatter.FormatDate(updated.ActualStart), formatter.FormatDate(updated.ActualEnd))
			return nil
		},
	}

	cmd.Flags().StringVar(&actualStart, "actual-start", "", "Override actual start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&actualEnd, "actual-end", "", "Override actual end (YYYY-MM-DD)")
	return cmd
}

func newTaskLinkCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Manage task dependencies",
	}

	var kind string
	add := &cobra.Command{
		Use:   "add <predecessor> <successor>",
		Short: "Add a dependency edge between two tasks",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Schedule.CreateTaskLink(cmd.Context(), app.UserID, &domain.TaskLink{
				PredecessorID: args[0],
				SuccessorID:   args[1],
				Kind:          domain.LinkKind(kind),
			})
		},
	}
	add.Flags().StringVar(&kind, "kind", "", "Link kind (finish_to_start, start_to_start, finish_to_finish)")

	remove := &cobra.Command{
		Use:   "remove <predecessor> <successor>",
		Short: "Remove a dependency edge",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Schedule.DeleteTaskLink(cmd.Context(), app.UserID, args[0], args[1])
		},
	}

	list := &cobra.Command{
		Use:   "list <task-id>",
		Short: "List a task's dependency edges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			preds, succs, err := app.Schedule.ListTaskLinks(cmd.Context(), app.UserID, args[0])
			if err != nil {
				return err
			}
			if len(preds) == 0 && len(succs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No links."))
				return nil
			}
			for _, l := range preds {
				fmt.Fprintf(cmd.OutOrStdout(), "after   %s  %s\n",
					formatter.Dim(shortID(l.PredecessorID)), string(l.Kind))
			}
			for _, l := range succs {
				fmt.Fprintf(cmd.OutOrStdout(), "before  %s  %s\n",
					formatter.Dim(shortID(l.SuccessorID)), string(l.Kind))
			}
			return nil
		},
	}

	cmd.AddCommand(add, remove, list)
	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <task-id>",
		Short: "Delete a task (children are promoted to top level)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Tasks.Delete(cmd.Context(), args[0])
		},
	}
}

func shortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
