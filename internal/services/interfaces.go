package services

import (
	"time"

	"github.com/shopspring/decimal"

	"khata/internal/ledger"
	"khata/internal/models"
	"khata/internal/pagination"
)

// ContactInput holds the fields for creating a contact.
type ContactInput struct {
	Name               string
	Type               models.ContactType
	Email              string
	Phone              string
	OpeningBalance     decimal.Decimal
	OpeningBalanceType ledger.BalanceType
}

// PendingTransaction is one settleable target of a contact: a pending sale,
// purchase, expense or income, or the synthetic current-balance entry.
type PendingTransaction struct {
	TransactionID   string             `json:"transaction_id"`
	TransactionType ledger.Kind        `json:"transaction_type"`
	Type            ledger.BalanceType `json:"type"`
	Reference       string             `json:"reference,omitempty"`
	Date            *time.Time         `json:"date,omitempty"`
	Amount          decimal.Decimal    `json:"amount"`
	PaidAmount      decimal.Decimal    `json:"paid_amount"`
	PendingAmount   decimal.Decimal    `json:"pending_amount"`
}

// ContactServicer defines the contract for contacts and their balances.
type ContactServicer interface {
	CreateContact(companyID string, in ContactInput) (*models.Contact, error)
	GetContactByID(companyID, contactID string) (*models.Contact, error)
	GetCompanyContacts(companyID string, page pagination.PageRequest, contactType *models.ContactType) (*pagination.PageResponse[models.Contact], error)
	GetContactBalance(companyID, contactID string) (*ledger.Balance, error)
	GetPendingTransactions(companyID, contactID string) ([]PendingTransaction, error)
}

// BankAccountUpdateFields holds optional fields for updating a bank account.
// Balances are never updated directly.
type BankAccountUpdateFields struct {
	Name          *string
	AccountNumber *string
	IFSC          *string
	IsActive      *bool
}

// BankAccountServicer defines the contract for bank accounts and transfers.
type BankAccountServicer interface {
	CreateBankAccount(companyID, name, accountNumber, ifsc, currency string, openingBalance decimal.Decimal) (*models.BankAccount, error)
	GetCompanyBankAccounts(companyID string, page pagination.PageRequest) (*pagination.PageResponse[models.BankAccount], error)
	GetBankAccountByID(companyID, bankAccountID string) (*models.BankAccount, error)
	UpdateBankAccount(companyID, bankAccountID string, fields BankAccountUpdateFields) (*models.BankAccount, error)
	CreateTransfer(companyID, fromBankAccountID, toBankAccountID string, amount decimal.Decimal, description string, date time.Time) (*models.BankTransfer, error)
	DeleteTransfer(companyID, transferID string) error
}

// AllocationInput is one requested allocation of a payment.
type AllocationInput struct {
	TransactionID   string
	TransactionType ledger.Kind
	Type            ledger.BalanceType
	PaidAmount      decimal.Decimal
	// Amount is optional; the target's total is stored instead for
	// transactions, and the contact's computed balance (baseline plus pending
	// transactions, as listed by GetPendingTransactions) for the current
	// balance.
	Amount decimal.Decimal
}

// PaymentInput holds the fields for creating or updating a payment.
type PaymentInput struct {
	ContactID       string
	BankAccountID   string
	Date            time.Time
	Allocations     []AllocationInput
	AdjustmentType  string
	AdjustmentValue decimal.Decimal
	Description     string
}

// PaymentFilter holds optional filter parameters for listing payments.
type PaymentFilter struct {
	ContactID     *string
	BankAccountID *string
	PaymentType   *ledger.PaymentType
	FromDate      *time.Time
	ToDate        *time.Time
}

// PaymentServicer defines the contract for the payment lifecycle.
type PaymentServicer interface {
	CreatePayment(companyID string, in PaymentInput) (*models.Payment, error)
	UpdatePayment(companyID, paymentID string, in PaymentInput) (*models.Payment, error)
	DeletePayment(companyID, paymentID string) (*models.Payment, error)
	GetPaymentByID(companyID, paymentID string) (*models.Payment, error)
	GetCompanyPayments(companyID string, page pagination.PageRequest, filter PaymentFilter) (*pagination.PageResponse[models.Payment], error)
}

// PaymentEvent names a committed payment lifecycle step.
type PaymentEvent string

const (
	PaymentCreated PaymentEvent = "created"
	PaymentUpdated PaymentEvent = "updated"
	PaymentDeleted PaymentEvent = "deleted"
)

// PaymentObserver is notified after a payment change has been committed.
// Observers run outside the ledger transaction; their failures never undo
// committed state.
type PaymentObserver interface {
	PaymentCommitted(event PaymentEvent, payment *models.Payment) error
}

// PaymentOptions tunes the payment service.
type PaymentOptions struct {
	// LockTimeout bounds how long a payment waits for row locks on Postgres.
	// Zero leaves the server default.
	LockTimeout time.Duration
	// AllowOverdraft lets payments push a bank balance below zero.
	AllowOverdraft bool
	Observers      []PaymentObserver
}

// AuditFilter narrows an audit trail listing. Empty fields match everything.
type AuditFilter struct {
	ResourceType string
	ResourceID   string
	Action       string
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(companyID, userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
	GetCompanyAuditLogs(companyID string, page pagination.PageRequest, filter AuditFilter) (*pagination.PageResponse[models.AuditLog], error)
}
