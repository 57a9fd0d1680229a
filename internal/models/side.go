package models

import "fmt"

// Side identifies which single option side a strategy trades.
type Side string

const (
	SideCall Side = "call"
	SidePut  Side = "put"
)

// ParseSide converts a configuration string into a Side.
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case SideCall, SidePut:
		return Side(s), nil
	}
	return "", fmt.Errorf("invalid option side %q (want %q or %q)", s, SideCall, SidePut)
}

// EntryCross reports whether today's price/moving-average pair relative to
// yesterday's constitutes an entry crossover for this side: a bull cross
// opens calls, a bear cross opens puts. Comparisons against NaN moving
// averages are false, so unwarmed rows never signal.
func (s Side) EntryCross(price, prevPrice, ma, prevMA float64) bool {
	if s == SidePut {
		return bearCross(price, prevPrice, ma, prevMA)
	}
	return bullCross(price, prevPrice, ma, prevMA)
}

// ExitCross is the mirror of EntryCross: a bear cross closes calls, a bull
// cross closes puts.
func (s Side) ExitCross(price, prevPrice, ma, prevMA float64) bool {
	if s == SidePut {
		return bullCross(price, prevPrice, ma, prevMA)
	}
	return bearCross(price, prevPrice, ma, prevMA)
}

// InMarket reports the directional condition for this side: price above the
// moving average for calls, below it for puts.
func (s Side) InMarket(price, ma float64) bool {
	if s == SidePut {
		return price < ma
	}
	return price > ma
}

// StrikeSteps returns the signed grid-step count used when selecting the
// optimal strike: positive (below price) for puts, negative for calls.
func (s Side) StrikeSteps(strikesAway int) int {
	if s == SidePut {
		return strikesAway
	}
	return -strikesAway
}

// bullCross reports whether line p crossed from at-or-below line m to above it.
func bullCross(p1, p0, m1, m0 float64) bool {
	return p0 <= m0 && p1 > m1
}

// bearCross reports whether line p crossed from at-or-above line m to below it.
func bearCross(p1, p0, m1, m0 float64) bool {
	return p0 >= m0 && p1 < m1
}
