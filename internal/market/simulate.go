// Package market supplies the backtester's price data: a synthetic
// Ornstein-Uhlenbeck path sampler, the weekday trading calendar it is
// dated on, and the option expiration schedule derived from that calendar.
package market

import (
	"fmt"
	"math/rand"
	"time"

	"options-backtester/internal/models"
)

// OUParams parameterizes the mean-reverting Ornstein-Uhlenbeck process
// used to simulate an underlying price path.
type OUParams struct {
	S0     float64 // starting price
	Alpha  float64 // long-run mean level
	Beta   float64 // mean-reversion speed
	Sigma  float64 // noise scale
	Length int     // number of trading days to sample
}

// DefaultOUParams returns the sampler defaults.
func DefaultOUParams() OUParams {
	return OUParams{S0: 30, Alpha: 50, Beta: 0.01, Sigma: 0.5, Length: 2000}
}

// Validate checks the sampler parameters.
func (p OUParams) Validate() error {
	if p.Length < 2 {
		return fmt.Errorf("simulation length must be at least 2, got %d", p.Length)
	}
	if p.Sigma < 0 {
		return fmt.Errorf("simulation sigma must be non-negative, got %v", p.Sigma)
	}
	return nil
}

// SimulateOU samples a discrete Ornstein-Uhlenbeck path:
//
//	S[t+1] = S[t] - beta*(S[t]-alpha) + sigma*dW
//
// with dW drawn from a standard normal.
func SimulateOU(p OUParams, rng *rand.Rand) []float64 {
	prices := make([]float64, p.Length)
	prices[0] = p.S0
	for i := 1; i < p.Length; i++ {
		s := prices[i-1]
		prices[i] = s - p.Beta*(s-p.Alpha) + p.Sigma*rng.NormFloat64()
	}
	return prices
}

// SimulateSeries samples an OU path and dates it on the weekday calendar
// ending at end, returning the price series together with the third-Friday
// expiration schedule falling inside it.
func SimulateSeries(p OUParams, end time.Time, rng *rand.Rand) ([]models.PricePoint, []time.Time, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	prices := SimulateOU(p, rng)
	dates := TradingDays(end, p.Length)

	series := make([]models.PricePoint, p.Length)
	for i, price := range prices {
		series[i] = models.PricePoint{Date: dates[i], Price: price}
	}
	return series, ThirdFridays(dates), nil
}
