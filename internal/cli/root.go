package cli

import (
	"github.com/spf13/cobra"

	"github.com/akulinich/ballast/internal/config"
	"github.com/akulinich/ballast/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Plans      service.PlanService
	Containers service.ContainerService
	Items      service.WorkItemService
	Board      service.BoardService
	Optimize   service.OptimizeService
	Workload   service.WorkloadService
	Import     service.ImportService

	Config config.Config

	// IsInteractive reports whether stdin is a terminal; the interactive
	// board and confirmation prompts require one.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "ballast" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "ballast",
		Short: "Capacity planning board and workload balancer",
	}

	root.AddCommand(
		newPlanCmd(app),
		newSprintCmd(app),
		newPersonCmd(app),
		newItemCmd(app),
		newBoardCmd(app),
		newMoveCmd(app),
		newOptimizeCmd(app),
		newWorkloadCmd(app),
	)

	return root
}
