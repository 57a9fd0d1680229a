package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"options-backtester/pkg/utils"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored backtest runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				output.Warning("Store not initialized. No run history available.")
				return nil
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			runs, err := app.Store.ListRuns(ctx, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				output.Info("No runs stored yet.")
				return nil
			}

			if output.IsJSON() {
				return output.JSON(runs)
			}

			output.Bold("%-5s %-20s %-5s %-7s %-14s %-14s %s", "ID", "Created", "Side", "MA Lag", "Initial", "Final", "Days")
			for _, r := range runs {
				output.Printf("%-5d %-20s %-5s %-7d %-14s %-14s %d\n",
					r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Side,
					r.MovingAverageLag, utils.FormatMoney(r.InitialCash), utils.FormatMoney(r.FinalValue), r.Days)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to list")
	return cmd
}
