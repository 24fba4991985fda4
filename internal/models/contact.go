package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"khata/internal/ledger"
)

// ContactType says whether a contact buys from, sells to, or does both with the company.
type ContactType string

const (
	ContactTypeCustomer ContactType = "customer"
	ContactTypeVendor   ContactType = "vendor"
	ContactTypeBoth     ContactType = "both"
)

// Contact is a customer or vendor.
//
// OpeningBalance/OpeningBalanceType is the stored baseline the balance
// calculator starts from; settlements against the current balance move it.
// CurrentBalance/CurrentBalanceType is only a snapshot written after each
// settlement or reversal.
type Contact struct {
	Base
	CompanyID          string             `gorm:"type:uuid;not null;index" json:"company_id"`
	Name               string             `gorm:"not null" json:"name"`
	Type               ContactType        `gorm:"not null;default:'customer'" json:"type"`
	Email              string             `json:"email,omitempty"`
	Phone              string             `json:"phone,omitempty"`
	OpeningBalance     decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0" json:"opening_balance"`
	OpeningBalanceType ledger.BalanceType `gorm:"not null;default:'payable'" json:"opening_balance_type"`
	CurrentBalance     decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0" json:"current_balance"`
	CurrentBalanceType ledger.BalanceType `gorm:"not null;default:'payable'" json:"current_balance_type"`
	DeletedAt          gorm.DeletedAt     `gorm:"index" json:"deleted_at,omitempty"`
}

// Baseline returns the stored baseline as a ledger position.
func (c *Contact) Baseline() ledger.Position {
	return ledger.NewPosition(c.OpeningBalance, c.OpeningBalanceType)
}
