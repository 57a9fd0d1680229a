package trading

import (
	"fmt"
	"math"
)

// SizingPolicy determines how many contracts to buy on an entry signal,
// given the option price and the cash currently available. Implementations
// must return a count >= 0; the state machine passes whatever comes back
// straight to the ledger, including zero.
type SizingPolicy interface {
	Contracts(optionPrice, cash float64) int
}

// DefaultCashReserve is the fraction of cash kept un-deployed by the
// default sizing policy.
const DefaultCashReserve = 0.9

// ReserveSizer deploys a fixed fraction of available cash:
//
//	count = floor((1 - reserve) * cash / optionPrice)
type ReserveSizer struct {
	Reserve float64
}

// NewReserveSizer creates a sizer, validating the reserve fraction.
func NewReserveSizer(reserve float64) (ReserveSizer, error) {
	if reserve < 0 || reserve > 1 {
		return ReserveSizer{}, fmt.Errorf("cash reserve must be within [0,1], got %v", reserve)
	}
	return ReserveSizer{Reserve: reserve}, nil
}

// Contracts implements SizingPolicy. The count is clamped at zero so that
// a depleted account or an unpriceable option never produces a negative
// position.
func (s ReserveSizer) Contracts(optionPrice, cash float64) int {
	if optionPrice <= 0 {
		return 0
	}
	n := int(math.Floor((1 - s.Reserve) * cash / optionPrice))
	if n < 0 {
		return 0
	}
	return n
}
