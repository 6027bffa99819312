package cli

import (
	"github.com/dedatech/workplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands, plus
// the identity commands act as.
type App struct {
	Projects   service.ProjectService
	Iterations service.IterationService
	Tasks      service.TaskService
	Schedule   service.ScheduleService
	Import     service.ImportService
	Users      service.UserService

	// UserID identifies the acting user for schedule operations. The
	// single-user CLI fills it from the environment.
	UserID string
}

// NewRootCmd creates the top-level "workplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "workplan",
		Short: "Hierarchical work-item planner and scheduler",
	}

	root.AddCommand(
		newProjectCmd(app),
		newIterationCmd(app),
		newTaskCmd(app),
		newScheduleCmd(app),
		newUserCmd(app),
	)

	return root
}
