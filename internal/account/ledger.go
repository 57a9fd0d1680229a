// Package account tracks the cash and position value of the backtest account.
package account

// Ledger holds the account balances and adjusts them as positions are
// opened, marked and closed. It is pure bookkeeping: operations perform no
// validation, and callers must respect the enter -> (update)* -> exit
// ordering. Sizing is assumed never to over-allocate; cash is not checked
// for going negative.
type Ledger struct {
	cash    float64
	asset   float64
	holding bool
}

// NewLedger creates a ledger with the given starting cash balance.
func NewLedger(initialCash float64) *Ledger {
	return &Ledger{cash: initialCash}
}

// EnterPosition debits cash by price*contracts and books that amount as the
// held asset value.
func (l *Ledger) EnterPosition(price float64, contracts int) {
	value := price * float64(contracts)
	l.cash -= value
	l.asset = value
	l.holding = true
}

// UpdatePosition re-marks the held asset value at the current price. Cash
// is untouched.
func (l *Ledger) UpdatePosition(price float64, contracts int) {
	l.asset = price * float64(contracts)
}

// ExitPosition credits cash with price*contracts and flattens the account.
func (l *Ledger) ExitPosition(price float64, contracts int) {
	l.cash += price * float64(contracts)
	l.asset = 0
	l.holding = false
}

// Cash returns the current cash balance.
func (l *Ledger) Cash() float64 {
	return l.cash
}

// AssetValue returns the marked value of the held position. The second
// return is false while the account is flat.
func (l *Ledger) AssetValue() (float64, bool) {
	return l.asset, l.holding
}

// TotalValue returns cash plus the held asset value, if any.
func (l *Ledger) TotalValue() float64 {
	if l.holding {
		return l.cash + l.asset
	}
	return l.cash
}
