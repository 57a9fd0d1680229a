// Package models defines the core data types shared across the backtester.
package models

import "time"

// PricePoint is a single observation of the underlying asset price.
type PricePoint struct {
	Date  time.Time
	Price float64
}

// AnnotatedDay is one trading day of the expanded market data: the raw
// price enriched with the indicator values and option selections the
// trade logic consumes. MovingAverage and Volatility are NaN until their
// trailing windows fill; rows carrying NaN never survive the warm-up trim.
type AnnotatedDay struct {
	Date          time.Time
	Price         float64
	MovingAverage float64
	MonthIndex    int
	OptimalExpiry time.Time // zero when no schedule date is far enough out
	OptimalStrike float64
	Volatility    float64
	Entry         bool
	Exit          bool
	InTrade       bool
}

// HasExpiry reports whether a viable expiration date was found for this day.
func (d AnnotatedDay) HasExpiry() bool {
	return !d.OptimalExpiry.IsZero()
}

// TradeJournalEntry records the account snapshot for one trading day.
// AssetValue is nil while no option position is held.
type TradeJournalEntry struct {
	Date            time.Time
	UnderlyingValue float64
	AssetValue      *float64
	CashValue       float64
	PortfolioValue  float64
}
