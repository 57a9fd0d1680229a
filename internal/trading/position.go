package trading

import "options-backtester/internal/models"

// Position is an open option holding: the contract and the number of
// contracts, which always travel together. A nil *Position means flat, so
// "holding with no contract" is unrepresentable.
type Position struct {
	Contract  models.OptionContract
	Contracts int
}
