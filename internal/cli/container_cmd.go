package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/akulinich/ballast/internal/cli/formatter"
	"github.com/akulinich/ballast/internal/domain"
)

func newSprintCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sprint",
		Short: "Manage sprint lanes",
	}

	cmd.AddCommand(
		newContainerAddCmd(app, domain.ContainerSprint),
		newContainerListCmd(app, domain.ContainerSprint),
		newContainerUpdateCmd(app),
		newContainerRemoveCmd(app),
	)

	return cmd
}

func newPersonCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "person",
		Short: "Manage people",
	}

	cmd.AddCommand(
		newContainerAddCmd(app, domain.ContainerPerson),
		newContainerListCmd(app, domain.ContainerPerson),
		newContainerUpdateCmd(app),
		newContainerRemoveCmd(app),
	)

	return cmd
}

func newContainerAddCmd(app *App, kind domain.ContainerKind) *cobra.Command {
	var plan, name, start, end string
	var capacityPts float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: fmt.Sprintf("Create a %s", string(kind)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}

			c := &domain.Container{PlanID: planID, Name: name, Kind: kind, Capacity: capacityPts}
			if start != "" {
				t, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
				c.StartDate = &t
			}
			if end != "" {
				t, err := time.Parse("2006-01-02", end)
				if err != nil {
					return fmt.Errorf("invalid end date %q: %w", end, err)
				}
				c.EndDate = &t
			}

			if err := app.Containers.Create(ctx, c); err != nil {
				return err
			}
			fmt.Printf("Created %s %s (%s)\n", string(kind), c.Name, shortID(c.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan name or ID")
	cmd.Flags().StringVar(&name, "name", "", "Name")
	cmd.Flags().Float64Var(&capacityPts, "capacity", 0, "Capacity in points")
	cmd.Flags().StringVar(&start, "start", "", "Window start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Window end (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("capacity")

	return cmd
}

func newContainerListCmd(app *App, kind domain.ContainerKind) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %ss", string(kind)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			containers, err := app.Containers.ListByPlan(ctx, planID)
			if err != nil {
				return err
			}

			headers := []string{"Name", "ID", "Capacity", "Window"}
			var rows [][]string
			for _, c := range containers {
				if c.Kind != kind {
					continue
				}
				window := ""
				if c.StartDate != nil && c.EndDate != nil {
					window = fmt.Sprintf("%s → %s",
						c.StartDate.Format("2006-01-02"), c.EndDate.Format("2006-01-02"))
				}
				rows = append(rows, []string{
					c.Name,
					formatter.Dim(shortID(c.ID)),
					formatter.Points(c.Capacity),
					window,
				})
			}
			if len(rows) == 0 {
				fmt.Printf("No %ss found.\n", string(kind))
				return nil
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan name or ID")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newContainerUpdateCmd(app *App) *cobra.Command {
	var plan, name, start, end string
	var capacityPts float64

	cmd := &cobra.Command{
		Use:   "update NAME",
		Short: "Update capacity, name, or window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			id, err := resolveContainerID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}
			c, err := app.Containers.GetByID(ctx, id)
			if err != nil {
				return err
			}

			if !anyChanged(cmd.Flags(), "name", "capacity", "start", "end") {
				return fmt.Errorf("nothing to update")
			}

			if cmd.Flags().Changed("name") {
				c.Name = name
			}
			if cmd.Flags().Changed("capacity") {
				c.Capacity = capacityPts
			}
			if cmd.Flags().Changed("start") {
				t, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
				c.StartDate = &t
			}
			if cmd.Flags().Changed("end") {
				t, err := time.Parse("2006-01-02", end)
				if err != nil {
					return fmt.Errorf("invalid end date %q: %w", end, err)
				}
				c.EndDate = &t
			}

			if err := app.Containers.Update(ctx, c); err != nil {
				return err
			}
			fmt.Printf("Updated %s\n", c.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan name or ID")
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().Float64Var(&capacityPts, "capacity", 0, "Capacity in points")
	cmd.Flags().StringVar(&start, "start", "", "Window start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Window end (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newContainerRemoveCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove a lane; its items return to the pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			id, err := resolveContainerID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}
			if err := app.Containers.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Removed %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan name or ID")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}
