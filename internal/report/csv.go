// Package report exports backtest results: the trade journal as CSV and a
// colored terminal summary.
package report

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"options-backtester/internal/models"
)

// journalRow is the CSV shape of one journal entry. AssetValue is a
// string so flat days serialize as an empty cell rather than zero.
type journalRow struct {
	Date            string  `csv:"date"`
	UnderlyingValue float64 `csv:"underlying_value"`
	AssetValue      string  `csv:"asset_value"`
	CashValue       float64 `csv:"cash_value"`
	PortfolioValue  float64 `csv:"portfolio_value"`
}

// WriteJournalCSV writes the journal to path, one row per trading day in
// chronological order.
func WriteJournalCSV(path string, journal []models.TradeJournalEntry) error {
	rows := make([]journalRow, len(journal))
	for i, e := range journal {
		row := journalRow{
			Date:            e.Date.Format("2006-01-02"),
			UnderlyingValue: e.UnderlyingValue,
			CashValue:       e.CashValue,
			PortfolioValue:  e.PortfolioValue,
		}
		if e.AssetValue != nil {
			row.AssetValue = fmt.Sprintf("%.6f", *e.AssetValue)
		}
		rows[i] = row
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("write journal csv: %w", err)
	}
	return nil
}
