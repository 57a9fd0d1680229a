// Package trading runs the day-by-day options-strategy backtest: the trade
// state machine, the position sizing policy, and the orchestrator that
// folds them over an annotated price series.
package trading

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"options-backtester/internal/account"
	"options-backtester/internal/models"
	"options-backtester/internal/signal"
)

// BacktestConfig wires together everything a run needs. Signal parameters
// are validated by the signal engine; the remaining fields here.
type BacktestConfig struct {
	Side         models.Side
	Signal       signal.Config
	InitialCash  float64
	CashReserve  float64
	RiskFreeRate float64
}

// Validate checks the run-level parameters.
func (c BacktestConfig) Validate() error {
	if _, err := models.ParseSide(string(c.Side)); err != nil {
		return err
	}
	if c.InitialCash <= 0 {
		return fmt.Errorf("initial cash must be positive, got %v", c.InitialCash)
	}
	if c.CashReserve < 0 || c.CashReserve > 1 {
		return fmt.Errorf("cash reserve must be within [0,1], got %v", c.CashReserve)
	}
	return nil
}

// Backtest owns the ledger, the state machine, and the annotated series
// for a single run.
type Backtest struct {
	cfg     BacktestConfig
	days    []models.AnnotatedDay
	ledger  *account.Ledger
	machine *StateMachine
	log     zerolog.Logger
}

// Result is the output of a completed run: the per-day journal plus a few
// aggregates for reporting.
type Result struct {
	Journal     []models.TradeJournalEntry
	InitialCash float64
	FinalValue  float64
	Days        int
	Entries     int
	Exits       int
}

// NewBacktest expands the price series through the signal engine and sets
// up a fresh account and state machine. Configuration problems surface
// here, before the loop starts.
func NewBacktest(cfg BacktestConfig, series []models.PricePoint, schedule []time.Time, log zerolog.Logger) (*Backtest, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("backtest config: %w", err)
	}
	engine, err := signal.NewEngine(cfg.Signal)
	if err != nil {
		return nil, err
	}
	days, err := engine.Expand(series, cfg.Side, schedule)
	if err != nil {
		return nil, fmt.Errorf("expanding market data: %w", err)
	}
	sizer, err := NewReserveSizer(cfg.CashReserve)
	if err != nil {
		return nil, err
	}

	ledger := account.NewLedger(cfg.InitialCash)
	return &Backtest{
		cfg:     cfg,
		days:    days,
		ledger:  ledger,
		machine: NewStateMachine(cfg.Side, cfg.RiskFreeRate, sizer, ledger, log),
		log:     log,
	}, nil
}

// Days exposes the annotated series the run will iterate, mainly for
// reporting and tests.
func (b *Backtest) Days() []models.AnnotatedDay {
	return b.days
}

// Run folds the state machine over the series in date order, journaling
// the post-transition account state each day. Any transition error aborts
// the run; resuming a sequence-dependent state mid-series is not defined.
func (b *Backtest) Run() (*Result, error) {
	res := &Result{
		Journal:     make([]models.TradeJournalEntry, 0, len(b.days)),
		InitialCash: b.cfg.InitialCash,
		Days:        len(b.days),
	}

	b.log.Info().
		Str("side", string(b.cfg.Side)).
		Int("days", len(b.days)).
		Float64("initial_cash", b.cfg.InitialCash).
		Msg("backtest started")

	for _, day := range b.days {
		held := b.machine.Position() != nil
		if err := b.machine.Step(day); err != nil {
			return nil, fmt.Errorf("backtest aborted: %w", err)
		}
		res.Journal = append(res.Journal, b.journalEntry(day))

		// Count actual transitions, not raw signal flags; an exit cross
		// with nothing held is a no-op.
		switch nowHeld := b.machine.Position() != nil; {
		case !held && nowHeld:
			res.Entries++
		case held && !nowHeld:
			res.Exits++
		}
	}

	res.FinalValue = b.ledger.TotalValue()
	b.log.Info().
		Float64("final_value", res.FinalValue).
		Int("entries", res.Entries).
		Int("exits", res.Exits).
		Msg("backtest finished")
	return res, nil
}

func (b *Backtest) journalEntry(day models.AnnotatedDay) models.TradeJournalEntry {
	entry := models.TradeJournalEntry{
		Date:            day.Date,
		UnderlyingValue: day.Price,
		CashValue:       b.ledger.Cash(),
		PortfolioValue:  b.ledger.TotalValue(),
	}
	if asset, held := b.ledger.AssetValue(); held {
		v := asset
		entry.AssetValue = &v
	}
	return entry
}
