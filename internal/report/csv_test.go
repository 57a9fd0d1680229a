package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"options-backtester/internal/models"
)

func TestWriteJournalCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.csv")
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	asset := 900.25
	journal := []models.TradeJournalEntry{
		{Date: day, UnderlyingValue: 100.5, AssetValue: nil, CashValue: 50000, PortfolioValue: 50000},
		{Date: day.AddDate(0, 0, 1), UnderlyingValue: 101, AssetValue: &asset, CashValue: 49099.75, PortfolioValue: 50000},
	}

	if err := WriteJournalCSV(path, journal); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header + 2 rows", len(lines))
	}
	if lines[0] != "date,underlying_value,asset_value,cash_value,portfolio_value" {
		t.Errorf("header = %q", lines[0])
	}
	// A flat day serializes with an empty asset cell, not a zero.
	if !strings.HasPrefix(lines[1], "2024-01-02,100.5,,") {
		t.Errorf("flat row = %q, want empty asset_value cell", lines[1])
	}
	if !strings.Contains(lines[2], "900.250000") {
		t.Errorf("held row = %q, want asset value 900.250000", lines[2])
	}
}

func TestWriteJournalCSVBadPath(t *testing.T) {
	err := WriteJournalCSV(filepath.Join(t.TempDir(), "missing", "journal.csv"), nil)
	if err == nil {
		t.Error("expected an error for an uncreatable path")
	}
}
