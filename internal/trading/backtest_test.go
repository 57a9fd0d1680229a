package trading

import (
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"options-backtester/internal/market"
	"options-backtester/internal/models"
	"options-backtester/internal/signal"
)

var seriesEnd = time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)

// crossingPath declines below its moving average, then climbs steadily so
// that the price crosses above it exactly once and never comes back.
func crossingPath(declineDays, climbDays int) ([]models.PricePoint, []time.Time) {
	prices := make([]float64, 0, declineDays+climbDays)
	for i := 0; i < declineDays; i++ {
		w := 0.2
		if i%2 == 1 {
			w = -0.2
		}
		prices = append(prices, 100-0.1*float64(i)+w)
	}
	last := prices[len(prices)-1]
	for i := 1; i <= climbDays; i++ {
		prices = append(prices, last+float64(i))
	}

	dates := market.TradingDays(seriesEnd, len(prices))
	series := make([]models.PricePoint, len(prices))
	for i, p := range prices {
		series[i] = models.PricePoint{Date: dates[i], Price: p}
	}
	return series, market.ThirdFridays(dates)
}

func testBacktestConfig() BacktestConfig {
	return BacktestConfig{
		Side: models.SideCall,
		Signal: signal.Config{
			MovingAverageLag: 20,
			VolatilityWindow: 20,
			MinDaysToExpiry:  10,
			StrikeSpacing:    2.5,
			StrikesAway:      1,
		},
		InitialCash:  50000,
		CashReserve:  0.9,
		RiskFreeRate: 0.03,
	}
}

func TestBacktestSingleEntryScenario(t *testing.T) {
	series, schedule := crossingPath(60, 300)

	bt, err := NewBacktest(testBacktestConfig(), series, schedule, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	res, err := bt.Run()
	if err != nil {
		t.Fatal(err)
	}

	if want := len(series) - 20 - 20; res.Days != want || len(res.Journal) != want {
		t.Fatalf("journal length = %d (days %d), want %d", len(res.Journal), res.Days, want)
	}
	if res.Entries != 1 {
		t.Errorf("entries = %d, want exactly 1", res.Entries)
	}
	if res.Exits != 0 {
		t.Errorf("exits = %d, want 0 (no bear cross occurs)", res.Exits)
	}

	// The journal is flat until the entry day, holding from then on, with
	// cash dropping exactly once.
	entryIdx := -1
	for i, e := range res.Journal {
		if e.AssetValue != nil {
			entryIdx = i
			break
		}
	}
	if entryIdx <= 0 {
		t.Fatalf("entry index = %d, want a held position after a flat prefix", entryIdx)
	}
	for i, e := range res.Journal {
		if i < entryIdx && e.AssetValue != nil {
			t.Fatalf("journal holds a position at %d before the entry day %d", i, entryIdx)
		}
		if i >= entryIdx && e.AssetValue == nil {
			t.Fatalf("journal flat at %d after the entry day %d", i, entryIdx)
		}
	}

	cashBefore := res.Journal[entryIdx-1].CashValue
	if got := res.Journal[entryIdx].CashValue; got >= cashBefore {
		t.Errorf("cash = %v on entry day, want strictly below %v", got, cashBefore)
	}
	// Cash never moves again without an exit.
	for i := entryIdx + 1; i < len(res.Journal); i++ {
		if res.Journal[i].CashValue != res.Journal[entryIdx].CashValue {
			t.Fatalf("cash moved on hold day %d without an exit", i)
		}
	}
}

func TestBacktestJournalConsistency(t *testing.T) {
	series, schedule := crossingPath(60, 300)

	bt, err := NewBacktest(testBacktestConfig(), series, schedule, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	res, err := bt.Run()
	if err != nil {
		t.Fatal(err)
	}

	prev := time.Time{}
	for i, e := range res.Journal {
		if !e.Date.After(prev) {
			t.Fatalf("journal dates out of order at %d", i)
		}
		prev = e.Date

		want := e.CashValue
		if e.AssetValue != nil {
			want += *e.AssetValue
		}
		if math.Abs(e.PortfolioValue-want) > 1e-9 {
			t.Fatalf("portfolio value %v != cash+asset %v at %d", e.PortfolioValue, want, i)
		}
	}
	if res.FinalValue != res.Journal[len(res.Journal)-1].PortfolioValue {
		t.Errorf("final value %v != last journal total %v", res.FinalValue, res.Journal[len(res.Journal)-1].PortfolioValue)
	}
}

func TestNewBacktestValidation(t *testing.T) {
	series, schedule := crossingPath(60, 300)

	tests := []struct {
		name   string
		mutate func(*BacktestConfig)
	}{
		{"bad side", func(c *BacktestConfig) { c.Side = "straddle" }},
		{"zero cash", func(c *BacktestConfig) { c.InitialCash = 0 }},
		{"reserve above one", func(c *BacktestConfig) { c.CashReserve = 1.5 }},
		{"negative lag", func(c *BacktestConfig) { c.Signal.MovingAverageLag = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testBacktestConfig()
			tt.mutate(&cfg)
			if _, err := NewBacktest(cfg, series, schedule, zerolog.Nop()); err == nil {
				t.Error("expected a configuration error")
			}
		})
	}
}
