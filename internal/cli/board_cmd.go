package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/akulinich/ballast/internal/cli/formatter"
	"github.com/akulinich/ballast/internal/contract"
)

func newBoardCmd(app *App) *cobra.Command {
	var hideDone, interactive bool

	cmd := &cobra.Command{
		Use:   "board PLAN",
		Short: "Show the planning board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if interactive {
				if app.IsInteractive != nil && !app.IsInteractive() {
					return fmt.Errorf("interactive board requires a terminal")
				}
				model := newBoardModel(app, planID)
				_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
				return err
			}

			req := contract.NewBoardRequest(planID)
			req.IncludeDone = !hideDone
			view, err := app.Board.GetBoard(ctx, req)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatBoard(view))
			return nil
		},
	}

	cmd.Flags().BoolVar(&hideDone, "hide-done", false, "Hide completed items")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Open the interactive board")

	return cmd
}

func newMoveCmd(app *App) *cobra.Command {
	var plan string
	var index int

	cmd := &cobra.Command{
		Use:   "move ITEM CONTAINER",
		Short: "Move an item onto a lane, a person, or back to the pool",
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
			containerID, err := resolveContainerID(ctx, app, planID, args[1])
			if err != nil {
				return err
			}

			req := contract.NewMoveRequest(planID, itemID, containerID)
			if cmd.Flags().Changed("index") {
				req.Index = index
			}
			view, err := app.Board.MoveItem(ctx, req)
			if err != nil {
				return err
			}

			fmt.Printf("Moved %s to %s\n", args[0], args[1])
			if len(view.Warnings) > 0 {
				fmt.Print(formatter.FormatWarnings(view.Warnings))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan name or ID")
	cmd.Flags().IntVar(&index, "index", -1, "Position within the target lane (default: append)")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}
