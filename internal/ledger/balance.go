package ledger

import "github.com/shopspring/decimal"

// PendingTotals holds the summed remaining amounts of a contact's pending
// transactions, one total per kind.
type PendingTotals struct {
	Sales     decimal.Decimal `json:"sales"`
	Purchases decimal.Decimal `json:"purchases"`
	Expenses  decimal.Decimal `json:"expenses"`
	Incomes   decimal.Decimal `json:"incomes"`
}

// Add accumulates a remaining amount under its kind.
func (t *PendingTotals) Add(kind Kind, remaining decimal.Decimal) {
	switch kind {
	case KindSale:
		t.Sales = t.Sales.Add(remaining)
	case KindPurchase:
		t.Purchases = t.Purchases.Add(remaining)
	case KindExpense:
		t.Expenses = t.Expenses.Add(remaining)
	case KindIncome:
		t.Incomes = t.Incomes.Add(remaining)
	}
}

// Breakdown explains how a contact balance was derived.
type Breakdown struct {
	Baseline Position        `json:"baseline"`
	Pending  PendingTotals   `json:"pending"`
	Signed   decimal.Decimal `json:"signed"`
}

// Balance is a contact's net position plus its derivation.
type Balance struct {
	Amount    decimal.Decimal `json:"amount"`
	Direction BalanceType     `json:"direction"`
	Breakdown Breakdown       `json:"breakdown"`
}

// Position returns the balance without its breakdown.
func (b Balance) Position() Position {
	return Position{Amount: b.Amount, Direction: b.Direction}
}

// IsZero reports whether nothing is owed either way.
func (b Balance) IsZero() bool {
	return b.Amount.IsZero()
}

// ComputeBalance derives a contact's net balance from its stored baseline and
// the remaining amounts of its pending transactions. Pending purchases and
// expenses add to what the business owes; pending sales and incomes subtract.
func ComputeBalance(baseline Position, pending PendingTotals) Balance {
	signed := ToSigned(baseline).
		Add(pending.Purchases).
		Add(pending.Expenses).
		Sub(pending.Sales).
		Sub(pending.Incomes)

	pos := FromSigned(signed)
	return Balance{
		Amount:    pos.Amount,
		Direction: pos.Direction,
		Breakdown: Breakdown{
			Baseline: baseline,
			Pending:  pending,
			Signed:   signed,
		},
	}
}
