package models

import (
	"github.com/shopspring/decimal"

	"khata/internal/ledger"
)

// PaymentAllocation is the part of a payment applied to one sale, purchase,
// expense or income, or to the contact's current balance. At most one of the
// target columns is set; none is set for a current-balance allocation.
// Rows are never updated: a changed payment gets a fresh set.
type PaymentAllocation struct {
	Base
	PaymentID      string             `gorm:"type:uuid;not null;index" json:"payment_id"`
	AllocationType ledger.Kind        `gorm:"not null" json:"allocation_type"`
	SaleID         *string            `gorm:"type:uuid;index" json:"sale_id,omitempty"`
	PurchaseID     *string            `gorm:"type:uuid;index" json:"purchase_id,omitempty"`
	ExpenseID      *string            `gorm:"type:uuid;index" json:"expense_id,omitempty"`
	IncomeID       *string            `gorm:"type:uuid;index" json:"income_id,omitempty"`
	BalanceType    ledger.BalanceType `gorm:"not null" json:"balance_type"`
	Amount         decimal.Decimal    `gorm:"type:decimal(18,2);not null" json:"amount"`
	PaidAmount     decimal.Decimal    `gorm:"type:decimal(18,2);not null" json:"paid_amount"`
}

// Target maps the target columns back to a tagged target.
func (a *PaymentAllocation) Target() ledger.Target {
	var id *string
	switch a.AllocationType {
	case ledger.KindSale:
		id = a.SaleID
	case ledger.KindPurchase:
		id = a.PurchaseID
	case ledger.KindExpense:
		id = a.ExpenseID
	case ledger.KindIncome:
		id = a.IncomeID
	default:
		return ledger.CurrentBalance()
	}
	t := ledger.Target{Kind: a.AllocationType}
	if id != nil {
		t.ID = *id
	}
	return t
}

// SetTarget stores t in the matching target column and clears the others.
func (a *PaymentAllocation) SetTarget(t ledger.Target) {
	a.AllocationType = t.Kind
	a.SaleID, a.PurchaseID, a.ExpenseID, a.IncomeID = nil, nil, nil, nil
	if t.IsCurrentBalance() {
		return
	}
	id := t.ID
	switch t.Kind {
	case ledger.KindSale:
		a.SaleID = &id
	case ledger.KindPurchase:
		a.PurchaseID = &id
	case ledger.KindExpense:
		a.ExpenseID = &id
	case ledger.KindIncome:
		a.IncomeID = &id
	}
}

// Allocation returns the row as a ledger allocation.
func (a *PaymentAllocation) Allocation() ledger.Allocation {
	return ledger.Allocation{
		Target:     a.Target(),
		Direction:  a.BalanceType,
		Amount:     a.Amount,
		PaidAmount: a.PaidAmount,
	}
}

// NewPaymentAllocation builds an allocation row for a planned allocation.
func NewPaymentAllocation(paymentID string, a ledger.Allocation) PaymentAllocation {
	row := PaymentAllocation{
		PaymentID:   paymentID,
		BalanceType: a.Direction,
		Amount:      a.Amount,
		PaidAmount:  a.PaidAmount,
	}
	row.SetTarget(a.Target)
	return row
}
