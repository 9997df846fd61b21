package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akulinich/ballast/internal/cli/formatter"
	"github.com/akulinich/ballast/internal/contract"
)

func newWorkloadCmd(app *App) *cobra.Command {
	var plan string
	var suggest int

	cmd := &cobra.Command{
		Use:   "workload PERSON",
		Short: "Show a person's workload meter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			personID, err := resolveContainerID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}

			req := contract.NewWorkloadRequest(planID, personID)
			if cmd.Flags().Changed("suggest") {
				req.MaxSuggestions = suggest
			}
			view, err := app.Workload.GetWorkload(ctx, req)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatWorkload(view))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan name or ID")
	cmd.Flags().IntVar(&suggest, "suggest", 0, "Max suggested pick-ups")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}
