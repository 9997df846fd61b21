package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/akulinich/ballast/internal/cli/formatter"
	"github.com/akulinich/ballast/internal/contract"
)

func newOptimizeCmd(app *App) *cobra.Command {
	var dryRun, yes bool

	cmd := &cobra.Command{
		Use:   "optimize PLAN",
		Short: "Compute and apply a rebalanced assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}

			req := contract.NewOptimizeRequest(planID)
			req.DryRun = dryRun
			outcome, err := app.Optimize.Optimize(ctx, req)
			if err != nil {
				return err
			}

			names, err := containerNames(ctx, app, planID)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatOptimizeOutcome(outcome, names))

			if dryRun || len(outcome.Moves) == 0 {
				return nil
			}

			if !yes {
				if app.IsInteractive != nil && !app.IsInteractive() {
					return fmt.Errorf("refusing to apply without --yes on a non-interactive terminal")
				}
				var confirmed bool
				form := confirmForm(fmt.Sprintf("Apply %d moves?", len(outcome.Moves)), &confirmed)
				if err := form.Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Println(formatter.Dim("Discarded."))
					return nil
				}
			}

			if err := app.Optimize.Accept(ctx, contract.AcceptRequest{
				PlanID:    planID,
				Token:     outcome.Token,
				Candidate: outcome.Candidate,
			}); err != nil {
				return err
			}
			fmt.Println("Applied.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the candidate without applying")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Apply without confirmation")

	return cmd
}

func containerNames(ctx context.Context, app *App, planID string) (map[string]string, error) {
	containers, err := app.Containers.ListByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(containers))
	for _, c := range containers {
		names[c.ID] = c.Name
	}
	return names, nil
}

// confirmForm creates a huh form for a yes/no confirmation.
func confirmForm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Apply").
				Negative("Discard").
				Value(result),
		),
	).WithTheme(ballastHuhTheme()).WithShowHelp(false)
}

// ballastHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func ballastHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}
