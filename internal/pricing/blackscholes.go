// Package pricing implements the closed-form option pricing model the
// backtester consumes as a black box.
package pricing

import (
	"math"
	"time"

	"options-backtester/internal/models"
)

// Price calculates the Black-Scholes price of a European option.
//
// Parameters:
//   - side: the option side (call or put)
//   - S: spot price of the underlying asset
//   - K: strike price
//   - T: time to expiry in years
//   - r: annualized risk-free rate
//   - sigma: annualized volatility as a decimal
//
// With T <= 0 (or a degenerate sigma) the model's internals would divide by
// zero, so the intrinsic value is returned instead: max(S-K, 0) for a call
// and, via put-call parity at the boundary, max(K-S, 0) for a put.
func Price(side models.Side, S, K, T, r, sigma float64) float64 {
	if T <= 0 || sigma <= 0 {
		if side == models.SidePut {
			return math.Max(0, K-S)
		}
		return math.Max(0, S-K)
	}

	d1 := (math.Log(S/K) + (r+0.5*sigma*sigma)*T) / (sigma * math.Sqrt(T))
	d2 := d1 - sigma*math.Sqrt(T)
	pvStrike := K * math.Exp(-r*T)

	call := S*normCDF(d1) - pvStrike*normCDF(d2)
	if side == models.SidePut {
		// Put-call parity.
		return pvStrike - S + call
	}
	return call
}

// ContractValue prices a contract against the given spot and volatility as
// of a date, deriving the annualized time to expiry from the contract.
func ContractValue(c models.OptionContract, spot, volatility float64, asOf time.Time) float64 {
	return Price(c.Side, spot, c.Strike, c.TimeToExpiry(asOf), c.RiskFreeRate, volatility)
}

// normCDF computes the standard normal cumulative distribution function
// using the error function.
func normCDF(x float64) float64 {
	return 0.5 * (1.0 + math.Erf(x/math.Sqrt2))
}
