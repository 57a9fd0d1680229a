package models

import "time"

// DefaultRiskFreeRate is the annualized rate used when none is configured.
const DefaultRiskFreeRate = 0.03

// OptionContract describes a single listed option. It is immutable once
// constructed; the engine creates a fresh contract on every entry signal.
type OptionContract struct {
	Expiry       time.Time
	Strike       float64
	RiskFreeRate float64
	Side         Side
}

// TimeToExpiry returns the annualized time remaining until expiration as of
// the given date, floored at zero once the contract has expired.
func (c OptionContract) TimeToExpiry(asOf time.Time) float64 {
	days := c.Expiry.Sub(asOf).Hours() / 24
	if days <= 0 {
		return 0
	}
	return days / 365
}
