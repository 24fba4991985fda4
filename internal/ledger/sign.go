package ledger

import "github.com/shopspring/decimal"

// Position is a balance stored the way it is persisted: a non-negative
// magnitude paired with a direction.
//
// The signed convention used everywhere in this package is
// positive = payable (business owes the contact),
// negative = receivable (the contact owes the business).
type Position struct {
	Amount    decimal.Decimal `json:"amount"`
	Direction BalanceType     `json:"direction"`
}

// NewPosition builds a Position from a magnitude and direction, normalising
// negative magnitudes and zero.
func NewPosition(amount decimal.Decimal, dir BalanceType) Position {
	if !dir.Valid() {
		dir = Payable
	}
	return FromSigned(ToSigned(Position{Amount: amount, Direction: dir}))
}

// ToSigned converts a position to the signed convention.
func ToSigned(p Position) decimal.Decimal {
	if p.Direction == Receivable {
		return p.Amount.Abs().Neg()
	}
	return p.Amount.Abs()
}

// FromSigned converts a signed amount back to a position. An overshoot past
// zero flips the direction; exactly zero is always payable.
func FromSigned(signed decimal.Decimal) Position {
	switch {
	case signed.IsPositive():
		return Position{Amount: signed, Direction: Payable}
	case signed.IsNegative():
		return Position{Amount: signed.Abs(), Direction: Receivable}
	default:
		return Position{Amount: decimal.Zero, Direction: Payable}
	}
}

// Signed returns p in the signed convention.
func (p Position) Signed() decimal.Decimal {
	return ToSigned(p)
}

// Equal compares magnitude and direction.
func (p Position) Equal(o Position) bool {
	return p.Amount.Equal(o.Amount) && p.Direction == o.Direction
}

// Settle moves the position by a settled allocation. A receivable allocation
// is money received from the contact and moves the signed balance up; a
// payable allocation is money paid to the contact and moves it down.
func (p Position) Settle(dir BalanceType, amount decimal.Decimal) Position {
	return FromSigned(ToSigned(p).Add(settleDelta(dir, amount)))
}

// Unsettle is the exact inverse of Settle.
func (p Position) Unsettle(dir BalanceType, amount decimal.Decimal) Position {
	return FromSigned(ToSigned(p).Sub(settleDelta(dir, amount)))
}

func settleDelta(dir BalanceType, amount decimal.Decimal) decimal.Decimal {
	if dir == Payable {
		return amount.Neg()
	}
	return amount
}
