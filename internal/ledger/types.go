// Package ledger holds the pure settlement arithmetic of the bookkeeping
// service: signed balances, the contact balance calculator, the payment
// allocation planner and its exact reversal.
//
// Nothing in this package touches the database. Services lock and load the
// rows a payment touches into a State, run BuildPlan/Apply or Reverse on it,
// and write the resulting changes back inside the same transaction.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BalanceType is the direction of an obligation between the business and a contact.
type BalanceType string

const (
	// Payable means the business owes the contact.
	Payable BalanceType = "payable"
	// Receivable means the contact owes the business.
	Receivable BalanceType = "receivable"
)

// Valid reports whether b is a known direction.
func (b BalanceType) Valid() bool {
	return b == Payable || b == Receivable
}

// Opposite returns the other direction.
func (b BalanceType) Opposite() BalanceType {
	if b == Receivable {
		return Payable
	}
	return Receivable
}

// Kind identifies what an allocation settles.
type Kind string

const (
	KindSale           Kind = "sale"
	KindPurchase       Kind = "purchase"
	KindExpense        Kind = "expense"
	KindIncome         Kind = "income"
	KindCurrentBalance Kind = "current-balance"
)

// CurrentBalanceID is the transaction id clients send for a current-balance allocation.
const CurrentBalanceID = "current-balance"

// ObligationKinds lists the transaction kinds in the order their rows are locked.
var ObligationKinds = []Kind{KindSale, KindPurchase, KindExpense, KindIncome}

// Valid reports whether k is a known allocation kind.
func (k Kind) Valid() bool {
	switch k {
	case KindSale, KindPurchase, KindExpense, KindIncome, KindCurrentBalance:
		return true
	}
	return false
}

// IsObligation reports whether k refers to a transaction row.
func (k Kind) IsObligation() bool {
	return k.Valid() && k != KindCurrentBalance
}

// Direction returns the fixed direction of a transaction kind. Sales and
// incomes are receivable, purchases and expenses payable. The current balance
// has no fixed direction.
func (k Kind) Direction() BalanceType {
	switch k {
	case KindSale, KindIncome:
		return Receivable
	case KindPurchase, KindExpense:
		return Payable
	}
	return ""
}

// Target is the tagged allocation target: a transaction of some kind, or the
// contact's current balance (ID empty).
type Target struct {
	Kind Kind
	ID   string
}

// CurrentBalance returns the current-balance target.
func CurrentBalance() Target {
	return Target{Kind: KindCurrentBalance}
}

// IsCurrentBalance reports whether t is the current-balance target.
func (t Target) IsCurrentBalance() bool {
	return t.Kind == KindCurrentBalance
}

func (t Target) String() string {
	if t.IsCurrentBalance() {
		return CurrentBalanceID
	}
	return fmt.Sprintf("%s %s", t.Kind, t.ID)
}

// Status is the settlement status of a transaction.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// StatusFor returns paid when nothing remains outstanding.
func StatusFor(remaining decimal.Decimal) Status {
	if remaining.LessThanOrEqual(decimal.Zero) {
		return StatusPaid
	}
	return StatusPending
}

// PaymentType tells whether money left (payment) or entered (receipt) the bank.
type PaymentType string

const (
	PaymentTypePayment PaymentType = "payment"
	PaymentTypeReceipt PaymentType = "receipt"
)

// PaymentTypeFor derives the payment type from the net of receivable minus
// payable allocations. This is the only place the rule lives.
func PaymentTypeFor(net decimal.Decimal) PaymentType {
	if net.IsNegative() {
		return PaymentTypePayment
	}
	return PaymentTypeReceipt
}

// Sign returns +1 for receipts and -1 for payments.
func (p PaymentType) Sign() decimal.Decimal {
	if p == PaymentTypePayment {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromInt(1)
}

// Valid reports whether p is a known payment type.
func (p PaymentType) Valid() bool {
	return p == PaymentTypePayment || p == PaymentTypeReceipt
}
