package report

import (
	"github.com/fatih/color"

	"options-backtester/internal/trading"
	"options-backtester/pkg/utils"
)

// PrintSummary writes a colored run summary to stdout.
func PrintSummary(res *trading.Result) {
	color.Cyan("Backtest Summary")
	color.White("  Trading days:   %d", res.Days)
	color.White("  Entries:        %d", res.Entries)
	color.White("  Exits:          %d", res.Exits)
	color.White("  Initial cash:   %s", utils.FormatMoney(res.InitialCash))

	pnl := res.FinalValue - res.InitialCash
	ret := pnl / res.InitialCash * 100
	color.White("  Final value:    %s", utils.FormatMoney(res.FinalValue))
	if pnl >= 0 {
		color.Green("  P&L:            %s (%s)", utils.FormatPnL(pnl), utils.FormatPercent(ret))
	} else {
		color.Red("  P&L:            %s (%s)", utils.FormatPnL(pnl), utils.FormatPercent(ret))
	}
}
