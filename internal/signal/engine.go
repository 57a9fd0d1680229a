// Package signal transforms a raw dated price series into the annotated
// market data the trade logic consumes: moving average, realized
// volatility, optimal strike and expiry, and entry/exit/in-trade flags for
// one option side.
package signal

import (
	"fmt"
	"math"
	"time"

	"options-backtester/internal/models"
)

// Annualization factor for daily realized volatility.
const tradingDaysPerYear = 252

// Config holds the signal engine parameters. It is immutable after
// construction; NewEngine validates it.
type Config struct {
	MovingAverageLag int     // trailing window for the simple moving average
	VolatilityWindow int     // trailing window for realized volatility
	MinDaysToExpiry  int     // minimum calendar-day horizon for the optimal expiry
	StrikeSpacing    float64 // strike grid increment
	StrikesAway      int     // grid steps the optimal strike sits out-of-the-money
}

// DefaultConfig returns the standard engine parameters.
func DefaultConfig() Config {
	return Config{
		MovingAverageLag: 200,
		VolatilityWindow: 20,
		MinDaysToExpiry:  90,
		StrikeSpacing:    2.5,
		StrikesAway:      1,
	}
}

// Validate checks the parameter ranges.
func (c Config) Validate() error {
	if c.MovingAverageLag <= 0 {
		return fmt.Errorf("moving average lag must be positive, got %d", c.MovingAverageLag)
	}
	if c.VolatilityWindow < 2 {
		return fmt.Errorf("volatility window must be at least 2, got %d", c.VolatilityWindow)
	}
	if c.MinDaysToExpiry <= 0 {
		return fmt.Errorf("min days to expiry must be positive, got %d", c.MinDaysToExpiry)
	}
	if c.StrikeSpacing <= 0 {
		return fmt.Errorf("strike spacing must be positive, got %v", c.StrikeSpacing)
	}
	if c.StrikesAway < 1 {
		return fmt.Errorf("strikes away must be at least 1, got %d", c.StrikesAway)
	}
	return nil
}

// WarmupLength is the number of leading rows lacking indicator data.
func (c Config) WarmupLength() int {
	if c.MovingAverageLag > c.VolatilityWindow {
		return c.MovingAverageLag
	}
	return c.VolatilityWindow
}

// TailLength is the number of trailing rows trimmed so that a position
// opened late in the series still has room to be exited before data ends.
func (c Config) TailLength() int {
	return 2 * c.MinDaysToExpiry
}

// Engine derives trading signals from a price series.
type Engine struct {
	cfg Config
}

// NewEngine creates a signal engine, failing fast on invalid configuration.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("signal config: %w", err)
	}
	return &Engine{cfg: cfg}, nil
}

// Expand annotates the price series for the given option side against the
// expiration schedule, then trims the warm-up head and the no-new-trade
// tail. The schedule must be sorted ascending, the series chronological
// with strictly increasing dates.
//
// The trim window is sized so that no undefined moving average or
// volatility value survives into the returned rows. Callers overriding the
// parameters such that the tail overlaps the warm-up get whatever is left;
// that configuration is their obligation to avoid.
func (e *Engine) Expand(series []models.PricePoint, side models.Side, schedule []time.Time) ([]models.AnnotatedDay, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("empty price series")
	}
	for i := 1; i < len(series); i++ {
		if !series[i].Date.After(series[i-1].Date) {
			return nil, fmt.Errorf("price series dates must be strictly increasing at index %d (%s)",
				i, series[i].Date.Format("2006-01-02"))
		}
	}

	cfg := e.cfg
	mas := rollingMean(series, cfg.MovingAverageLag)
	vols := rollingVolatility(series, cfg.VolatilityWindow)
	baseYear := series[0].Date.Year()

	days := make([]models.AnnotatedDay, len(series))
	for i, p := range series {
		day := models.AnnotatedDay{
			Date:          p.Date,
			Price:         p.Price,
			MovingAverage: mas[i],
			Volatility:    vols[i],
			MonthIndex:    12*(p.Date.Year()-baseYear) + int(p.Date.Month()),
			OptimalStrike: e.optimalStrike(p.Price, side),
			OptimalExpiry: e.optimalExpiry(p.Date, schedule),
		}

		// First day has no previous row: treated as no-cross.
		if i > 0 {
			prev := series[i-1]
			day.Entry = side.EntryCross(p.Price, prev.Price, mas[i], mas[i-1])
			day.Exit = side.ExitCross(p.Price, prev.Price, mas[i], mas[i-1])
		}
		day.InTrade = day.Entry || day.Exit || side.InMarket(p.Price, mas[i])

		days[i] = day
	}

	head := cfg.WarmupLength()
	tail := cfg.TailLength()
	if len(days) <= head+tail {
		return nil, fmt.Errorf("price series too short: %d days leaves nothing after %d warm-up and %d tail rows",
			len(days), head, tail)
	}
	return days[head : len(days)-tail], nil
}

// optimalStrike rounds the price onto the strike grid and steps it
// out-of-the-money by the configured number of grid increments; the step
// direction comes from the side.
func (e *Engine) optimalStrike(price float64, side models.Side) float64 {
	steps := side.StrikeSteps(e.cfg.StrikesAway)
	return (math.Floor(price/e.cfg.StrikeSpacing) - float64(steps-1)) * e.cfg.StrikeSpacing
}

// optimalExpiry returns the earliest schedule date strictly more than
// MinDaysToExpiry days past the given day, or the zero time if the
// schedule is exhausted.
func (e *Engine) optimalExpiry(day time.Time, schedule []time.Time) time.Time {
	for _, exp := range schedule {
		if int(exp.Sub(day).Hours()/24) > e.cfg.MinDaysToExpiry {
			return exp
		}
	}
	return time.Time{}
}

// rollingMean computes the trailing simple moving average, NaN until the
// window fills.
func rollingMean(series []models.PricePoint, window int) []float64 {
	out := make([]float64, len(series))
	var sum float64
	for i, p := range series {
		sum += p.Price
		if i >= window {
			sum -= series[i-window].Price
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// rollingVolatility computes the trailing sample standard deviation of
// daily percent returns, annualized by sqrt(252). The first defined value
// sits at index window (the return series itself starts one day late).
func rollingVolatility(series []models.PricePoint, window int) []float64 {
	out := make([]float64, len(series))
	returns := make([]float64, len(series))
	returns[0] = math.NaN()
	for i := 1; i < len(series); i++ {
		returns[i] = series[i].Price/series[i-1].Price - 1
	}

	for i := range series {
		if i < window {
			out[i] = math.NaN()
			continue
		}
		out[i] = sampleStd(returns[i-window+1:i+1]) * math.Sqrt(tradingDaysPerYear)
	}
	return out
}

// sampleStd is the ddof=1 standard deviation.
func sampleStd(xs []float64) float64 {
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	variance := 0.0
	for _, x := range xs {
		variance += (x - mean) * (x - mean)
	}
	return math.Sqrt(variance / float64(len(xs)-1))
}
