package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"khata/internal/ledger"
)

// Payment is money paid to or received from a contact through a bank
// account. Amount is always the original, pre-adjustment magnitude.
type Payment struct {
	Base
	CompanyID       string                `gorm:"type:uuid;not null;index" json:"company_id"`
	ContactID       string                `gorm:"type:uuid;not null;index" json:"contact_id"`
	BankAccountID   string                `gorm:"type:uuid;not null;index" json:"bank_account_id"`
	Date            time.Time             `gorm:"not null" json:"date"`
	Amount          decimal.Decimal       `gorm:"type:decimal(18,2);not null" json:"amount"`
	PaymentType     ledger.PaymentType    `gorm:"not null" json:"payment_type"`
	AdjustmentType  ledger.AdjustmentType `gorm:"not null;default:'none'" json:"adjustment_type"`
	AdjustmentValue decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0" json:"adjustment_value"`
	Description     string                `json:"description,omitempty"`
	DeletedAt       gorm.DeletedAt        `gorm:"index" json:"deleted_at,omitempty"`

	// Relationships
	Allocations []PaymentAllocation `gorm:"foreignKey:PaymentID;constraint:OnDelete:CASCADE" json:"allocations"`
}

// Adjustment returns the stored adjustment.
func (p *Payment) Adjustment() ledger.Adjustment {
	return ledger.Adjustment{Type: p.AdjustmentType, Value: p.AdjustmentValue}
}

// Settled returns the payment in the form the reversal works on.
func (p *Payment) Settled() ledger.Settled {
	allocs := make([]ledger.Allocation, 0, len(p.Allocations))
	for i := range p.Allocations {
		allocs = append(allocs, p.Allocations[i].Allocation())
	}
	return ledger.Settled{
		ContactID:     p.ContactID,
		BankAccountID: p.BankAccountID,
		PaymentType:   p.PaymentType,
		Amount:        p.Amount,
		Adjustment:    p.Adjustment(),
		Allocations:   allocs,
	}
}
