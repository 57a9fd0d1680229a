package cli

import (
	"context"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"options-backtester/internal/logging"
	"options-backtester/internal/market"
	"options-backtester/internal/models"
	"options-backtester/internal/report"
	"options-backtester/internal/signal"
	"options-backtester/internal/store"
	"options-backtester/internal/trading"
)

func newRunCmd(app *App) *cobra.Command {
	var (
		sideFlag string
		maLag    int
		length   int
		seed     int64
		csvPath  string
		noStore  bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a backtest over a simulated price path",
		Long: `Simulate an Ornstein-Uhlenbeck price path, derive moving-average
crossover signals for one option side, and run the day-by-day backtest.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			cfg := app.Config

			side, err := models.ParseSide(sideFlag)
			if err != nil {
				return err
			}
			if seed == 0 {
				seed = cfg.Simulation.Seed
			}
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			logger := logging.WithSide(app.Logger, string(side))

			params := market.OUParams{
				S0:     cfg.Simulation.StartPrice,
				Alpha:  cfg.Simulation.MeanLevel,
				Beta:   cfg.Simulation.Reversion,
				Sigma:  cfg.Simulation.Sigma,
				Length: length,
			}
			rng := rand.New(rand.NewSource(seed))
			series, schedule, err := market.SimulateSeries(params, time.Now(), rng)
			if err != nil {
				return err
			}
			logger.Info().Int64("seed", seed).Int("days", len(series)).Msg("price path simulated")

			btCfg := trading.BacktestConfig{
				Side: side,
				Signal: signal.Config{
					MovingAverageLag: maLag,
					VolatilityWindow: cfg.Backtest.VolatilityWindow,
					MinDaysToExpiry:  cfg.Backtest.MinDaysToExpiry,
					StrikeSpacing:    cfg.Backtest.StrikeSpacing,
					StrikesAway:      cfg.Backtest.StrikesAway,
				},
				InitialCash:  cfg.Backtest.InitialCash,
				CashReserve:  cfg.Backtest.CashReserve,
				RiskFreeRate: cfg.Backtest.RiskFreeRate,
			}

			bt, err := trading.NewBacktest(btCfg, series, schedule, logger)
			if err != nil {
				return err
			}
			res, err := bt.Run()
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(res)
			}
			report.PrintSummary(res)

			if csvPath != "" {
				if err := report.WriteJournalCSV(csvPath, res.Journal); err != nil {
					return err
				}
				output.Success("Journal written to %s", csvPath)
			}

			if app.Store != nil && !noStore {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				runID, err := app.Store.SaveRun(ctx, store.RunRecord{
					CreatedAt:        time.Now(),
					Side:             string(side),
					MovingAverageLag: maLag,
					InitialCash:      res.InitialCash,
					FinalValue:       res.FinalValue,
					Days:             res.Days,
				}, res.Journal)
				if err != nil {
					output.Warning("Failed to store run: %v", err)
				} else {
					output.Dim("Stored as run #%d", runID)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sideFlag, "side", app.Config.Backtest.Side, "option side to trade (call or put)")
	cmd.Flags().IntVar(&maLag, "ma-lag", app.Config.Backtest.MovingAverageLag, "moving average lag in trading days")
	cmd.Flags().IntVar(&length, "length", app.Config.Simulation.Length, "number of trading days to simulate")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses config, then the clock)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "write the trade journal to this CSV file")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "skip persisting the run")

	return cmd
}
