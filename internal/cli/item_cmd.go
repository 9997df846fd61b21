package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akulinich/ballast/internal/cli/formatter"
	"github.com/akulinich/ballast/internal/domain"
)

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage work items",
	}

	cmd.AddCommand(
		newItemAddCmd(app),
		newItemListCmd(app),
		newItemUpdateCmd(app),
		newItemDoneCmd(app),
		newItemRemoveCmd(app),
		newItemDepCmd(app),
	)

	return cmd
}

func newItemAddCmd(app *App) *cobra.Command {
	var plan, title, kind, priority, project string
	var points float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a work item in the unassigned pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			if kind != "" && !domain.ValidItemKinds[kind] {
				return fmt.Errorf("invalid kind %q (feature|story|task)", kind)
			}
			if priority != "" && !domain.ValidPriorities[priority] {
				return fmt.Errorf("invalid priority %q (critical|high|medium|low)", priority)
			}

			w := &domain.WorkItem{
				PlanID:   planID,
				Title:    title,
				Kind:     domain.ItemKind(kind),
				Priority: domain.Priority(priority),
				Points:   points,
				Project:  project,
			}
			if err := app.Items.Create(ctx, w); err != nil {
				return err
			}
			fmt.Printf("Created item %s (%s)\n", w.Title, shortID(w.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan name or ID")
	cmd.Flags().StringVar(&title, "title", "", "Item title")
	cmd.Flags().Float64Var(&points, "points", 0, "Story points")
	cmd.Flags().StringVar(&kind, "kind", "", "Kind (feature|story|task)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (critical|high|medium|low)")
	cmd.Flags().StringVar(&project, "project", "", "Project label")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newItemListCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List work items in a plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			items, err := app.Items.ListByPlan(ctx, planID)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("No items found.")
				return nil
			}

			headers := []string{"Title", "ID", "Pts", "Priority", "Status", "Project"}
			rows := make([][]string, 0, len(items))
			for _, w := range items {
				rows = append(rows, []string{
					w.Title,
					formatter.Dim(shortID(w.ID)),
					formatter.Points(w.Points),
					string(w.Priority),
					string(w.Status),
					w.Project,
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan name or ID")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newItemUpdateCmd(app *App) *cobra.Command {
	var plan, title, kind, priority, status, project string
	var points float64

	cmd := &cobra.Command{
		Use:   "update ITEM",
		Short: "Update a work item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			id, err := resolveItemID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}
			w, err := app.Items.GetByID(ctx, id)
			if err != nil {
				return err
			}

			if !anyChanged(cmd.Flags(), "title", "points", "kind", "priority", "status", "project") {
				return fmt.Errorf("nothing to update")
			}

			if cmd.Flags().Changed("title") {
				w.Title = title
			}
			if cmd.Flags().Changed("points") {
				w.Points = points
			}
			if cmd.Flags().Changed("kind") {
				if !domain.ValidItemKinds[kind] {
					return fmt.Errorf("invalid kind %q (feature|story|task)", kind)
				}
				w.Kind = domain.ItemKind(kind)
			}
			if cmd.Flags().Changed("priority") {
				if !domain.ValidPriorities[priority] {
					return fmt.Errorf("invalid priority %q (critical|high|medium|low)", priority)
				}
				w.Priority = domain.Priority(priority)
			}
			if cmd.Flags().Changed("status") {
				w.Status = domain.ItemStatus(status)
			}
			if cmd.Flags().Changed("project") {
				w.Project = project
			}

			if err := app.Items.Update(ctx, w); err != nil {
				return err
			}
			fmt.Printf("Updated %s\n", w.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan name or ID")
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().Float64Var(&points, "points", 0, "Story points")
	cmd.Flags().StringVar(&kind, "kind", "", "Kind (feature|story|task)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (critical|high|medium|low)")
	cmd.Flags().StringVar(&status, "status", "", "Status (todo|in_progress|done)")
	cmd.Flags().StringVar(&project, "project", "", "Project label")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newItemDoneCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "done ITEM",
		Short: "Mark a work item done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			id, err := resolveItemID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}
			if err := app.Items.MarkDone(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Done: %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan name or ID")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newItemRemoveCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "remove ITEM",
		Short: "Remove a work item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			id, err := resolveItemID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}
			if err := app.Items.Delete(ctx, id); err != nil {
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

func newItemDepCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dep",
		Short: "Manage item dependencies",
	}

	var plan string

	add := &cobra.Command{
		Use:   "add ITEM DEPENDS_ON",
		Short: "Record that ITEM depends on DEPENDS_ON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			itemID, err := resolveItemID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}
			depID, err := resolveItemID(ctx, app, planID, args[1])
			if err != nil {
				return err
			}
			if err := app.Items.AddDependency(ctx, itemID, depID); err != nil {
				return err
			}
			fmt.Printf("%s now depends on %s\n", args[0], args[1])
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove ITEM DEPENDS_ON",
		Short: "Remove a dependency",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			itemID, err := resolveItemID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}
			depID, err := resolveItemID(ctx, app, planID, args[1])
			if err != nil {
				return err
			}
			if err := app.Items.RemoveDependency(ctx, itemID, depID); err != nil {
				return err
			}
			fmt.Printf("%s no longer depends on %s\n", args[0], args[1])
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&plan, "plan", "", "Plan name or ID")
	_ = cmd.MarkPersistentFlagRequired("plan")
	cmd.AddCommand(add, remove)

	return cmd
}
