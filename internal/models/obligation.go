package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"khata/internal/ledger"
)

// Sale is an invoice raised to a customer. It is receivable.
type Sale struct {
	Base
	CompanyID       string          `gorm:"type:uuid;not null;index" json:"company_id"`
	ContactID       string          `gorm:"type:uuid;not null;index" json:"contact_id"`
	InvoiceNumber   string          `gorm:"not null" json:"invoice_number"`
	Date            time.Time       `gorm:"not null" json:"date"`
	NetReceivable   decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"net_receivable"`
	PaidAmount      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"paid_amount"`
	RemainingAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"remaining_amount"`
	Status          ledger.Status   `gorm:"not null;default:'pending';index" json:"status"`
	BankAccountID   *string         `gorm:"type:uuid" json:"bank_account_id,omitempty"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`
}

// Purchase is a bill received from a vendor. It is payable.
type Purchase struct {
	Base
	CompanyID       string          `gorm:"type:uuid;not null;index" json:"company_id"`
	ContactID       string          `gorm:"type:uuid;not null;index" json:"contact_id"`
	BillNumber      string          `gorm:"not null" json:"bill_number"`
	Date            time.Time       `gorm:"not null" json:"date"`
	NetPayable      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"net_payable"`
	PaidAmount      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"paid_amount"`
	RemainingAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"remaining_amount"`
	Status          ledger.Status   `gorm:"not null;default:'pending';index" json:"status"`
	BankAccountID   *string         `gorm:"type:uuid" json:"bank_account_id,omitempty"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`
}

// Expense is money the company owes for a cost. The contact is optional.
type Expense struct {
	Base
	CompanyID       string          `gorm:"type:uuid;not null;index" json:"company_id"`
	ContactID       *string         `gorm:"type:uuid;index" json:"contact_id,omitempty"`
	Reference       string          `json:"reference,omitempty"`
	Date            time.Time       `gorm:"not null" json:"date"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	PaidAmount      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"paid_amount"`
	RemainingAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"remaining_amount"`
	Status          ledger.Status   `gorm:"not null;default:'pending';index" json:"status"`
	BankAccountID   *string         `gorm:"type:uuid" json:"bank_account_id,omitempty"`
}

// Income is money owed to the company outside of sales. Incomes without a
// contact are booked straight into a bank account.
type Income struct {
	Base
	CompanyID       string          `gorm:"type:uuid;not null;index" json:"company_id"`
	ContactID       *string         `gorm:"type:uuid;index" json:"contact_id,omitempty"`
	Reference       string          `json:"reference,omitempty"`
	Date            time.Time       `gorm:"not null" json:"date"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	PaidAmount      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"paid_amount"`
	RemainingAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"remaining_amount"`
	Status          ledger.Status   `gorm:"not null;default:'pending';index" json:"status"`
	BankAccountID   *string         `gorm:"type:uuid" json:"bank_account_id,omitempty"`
}

// BeforeCreate fills remaining amount and status for new rows that only
// carry a total, so the conservation rule holds from the first write.
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	s.RemainingAmount, s.Status = openAmounts(s.NetReceivable, s.PaidAmount, s.RemainingAmount)
	return s.Base.BeforeCreate(tx)
}

// BeforeCreate see Sale.BeforeCreate.
func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	p.RemainingAmount, p.Status = openAmounts(p.NetPayable, p.PaidAmount, p.RemainingAmount)
	return p.Base.BeforeCreate(tx)
}

// BeforeCreate see Sale.BeforeCreate.
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	e.RemainingAmount, e.Status = openAmounts(e.Amount, e.PaidAmount, e.RemainingAmount)
	return e.Base.BeforeCreate(tx)
}

// BeforeCreate see Sale.BeforeCreate.
func (i *Income) BeforeCreate(tx *gorm.DB) error {
	i.RemainingAmount, i.Status = openAmounts(i.Amount, i.PaidAmount, i.RemainingAmount)
	return i.Base.BeforeCreate(tx)
}

func openAmounts(total, paid, remaining decimal.Decimal) (decimal.Decimal, ledger.Status) {
	if remaining.IsZero() {
		remaining = decimal.Max(decimal.Zero, total.Sub(paid))
	}
	return remaining, ledger.StatusFor(remaining)
}
