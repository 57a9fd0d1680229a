package trading

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"options-backtester/internal/account"
	"options-backtester/internal/models"
	"options-backtester/internal/pricing"
)

// ErrNoExpiry reports an entry signal on a day whose expiration schedule is
// exhausted. Constructing a contract without an expiry would be a silent
// logic error, so the run is aborted instead.
var ErrNoExpiry = errors.New("no viable expiration date")

// StateMachine consumes one annotated day at a time, maintaining the
// flat/holding position state and mutating the account ledger as positions
// are opened, marked and closed.
type StateMachine struct {
	side   models.Side
	rate   float64
	sizer  SizingPolicy
	ledger *account.Ledger
	pos    *Position
	log    zerolog.Logger
}

// NewStateMachine creates a state machine starting flat.
func NewStateMachine(side models.Side, riskFreeRate float64, sizer SizingPolicy, ledger *account.Ledger, log zerolog.Logger) *StateMachine {
	return &StateMachine{
		side:   side,
		rate:   riskFreeRate,
		sizer:  sizer,
		ledger: ledger,
		log:    log,
	}
}

// Position returns the currently held position, nil when flat.
func (m *StateMachine) Position() *Position {
	return m.pos
}

// Step applies one day's transition:
//
//   - not in-trade: no-op (the engine never force-closes on losing the
//     directional condition, only on an exit cross);
//   - entry: open a fresh contract at the day's optimal strike/expiry,
//     sized against current cash (entry is checked before exit, so if both
//     were somehow set, entry wins);
//   - holding: re-price the contract, then either exit (credit cash, go
//     flat) or mark to market;
//   - in-trade but flat with no entry: no-op, the signal fired before the
//     window started.
func (m *StateMachine) Step(day models.AnnotatedDay) error {
	if !day.InTrade {
		return nil
	}

	if day.Entry {
		if !day.HasExpiry() {
			return fmt.Errorf("entry on %s: %w", day.Date.Format("2006-01-02"), ErrNoExpiry)
		}
		contract := models.OptionContract{
			Expiry:       day.OptimalExpiry,
			Strike:       day.OptimalStrike,
			RiskFreeRate: m.rate,
			Side:         m.side,
		}
		price := pricing.ContractValue(contract, day.Price, day.Volatility, day.Date)
		contracts := m.sizer.Contracts(price, m.ledger.Cash())
		if contracts == 0 {
			// Preserved behavior: a zero-contract position is still opened.
			m.log.Debug().Time("date", day.Date).Float64("option_price", price).
				Msg("sizing produced zero contracts on entry")
		}
		m.ledger.EnterPosition(price, contracts)
		m.pos = &Position{Contract: contract, Contracts: contracts}

		m.log.Info().Time("date", day.Date).
			Str("side", string(m.side)).
			Float64("strike", contract.Strike).
			Time("expiry", contract.Expiry).
			Float64("option_price", price).
			Int("contracts", contracts).
			Msg("position opened")
		return nil
	}

	if m.pos == nil {
		return nil
	}

	price := pricing.ContractValue(m.pos.Contract, day.Price, day.Volatility, day.Date)
	if day.Exit {
		m.ledger.ExitPosition(price, m.pos.Contracts)
		m.log.Info().Time("date", day.Date).
			Float64("option_price", price).
			Int("contracts", m.pos.Contracts).
			Float64("cash", m.ledger.Cash()).
			Msg("position closed")
		m.pos = nil
		return nil
	}
	m.ledger.UpdatePosition(price, m.pos.Contracts)
	return nil
}
