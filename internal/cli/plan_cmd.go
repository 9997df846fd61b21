package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akulinich/ballast/internal/cli/formatter"
	"github.com/akulinich/ballast/internal/domain"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage planning boards",
	}

	cmd.AddCommand(
		newPlanAddCmd(app),
		newPlanListCmd(app),
		newPlanImportCmd(app),
		newPlanRemoveCmd(app),
	)

	return cmd
}

func newPlanAddCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Plan{Name: name}
			if err := app.Plans.Create(context.Background(), p); err != nil {
				return err
			}
			fmt.Printf("Created plan %s (%s)\n", p.Name, shortID(p.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Plan name")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPlanListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.Plans.List(context.Background())
			if err != nil {
				return err
			}
			if len(plans) == 0 {
				fmt.Println("No plans found.")
				return nil
			}

			headers := []string{"Plan", "ID", "Created"}
			rows := make([][]string, 0, len(plans))
			for _, p := range plans {
				rows = append(rows, []string{
					p.Name,
					formatter.Dim(shortID(p.ID)),
					p.CreatedAt.Format("2006-01-02"),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newPlanImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a plan from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			imported, err := app.Import.ImportPlan(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Imported plan %s (%s): %d containers, %d items, %d dependencies\n",
				imported.Plan.Name, shortID(imported.Plan.ID),
				len(imported.Containers), len(imported.Items), len(imported.Dependencies))
			return nil
		},
	}
}

func newPlanRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PLAN",
		Short: "Remove a plan and everything on it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Plans.Delete(ctx, planID); err != nil {
				return err
			}
			fmt.Printf("Removed plan %s\n", shortID(planID))
			return nil
		},
	}
}

// shortID trims a UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
