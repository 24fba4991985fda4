package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BankAccount is a company bank or cash account. CurrentBalance is signed and
// only ever moves by additive deltas.
type BankAccount struct {
	Base
	CompanyID      string          `gorm:"type:uuid;not null;index" json:"company_id"`
	Name           string          `gorm:"not null" json:"name"`
	AccountNumber  string          `json:"account_number,omitempty"`
	IFSC           string          `gorm:"column:ifsc" json:"ifsc,omitempty"`
	Currency       string          `gorm:"not null;default:'INR'" json:"currency"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"opening_balance"`
	CurrentBalance decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"current_balance"`
	IsActive       bool            `gorm:"default:true" json:"is_active"`
}

// BankTransfer moves money between two bank accounts of the same company.
type BankTransfer struct {
	Base
	CompanyID         string          `gorm:"type:uuid;not null;index" json:"company_id"`
	FromBankAccountID string          `gorm:"type:uuid;not null;index" json:"from_bank_account_id"`
	ToBankAccountID   string          `gorm:"type:uuid;not null;index" json:"to_bank_account_id"`
	Amount            decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Date              time.Time       `gorm:"not null" json:"date"`
	Description       string          `json:"description,omitempty"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`
}
