package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "khata/internal/errors"
	"khata/internal/ledger"
	"khata/internal/models"
	"khata/internal/pagination"
	"khata/internal/uuid"
)

// contactService handles contacts and the balance calculator.
type contactService struct {
	db *gorm.DB
}

// NewContactService creates a new ContactServicer.
func NewContactService(db *gorm.DB) ContactServicer {
	return &contactService{db: db}
}

// ensureCompany checks that the tenant exists and is active.
func ensureCompany(db *gorm.DB, companyID string) error {
	if !uuid.IsValid(companyID) {
		return apperrors.ErrCompanyNotFound
	}
	var count int64
	if err := db.Model(&models.Company{}).Where("id = ? AND is_active = ?", companyID, true).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrCompanyNotFound
	}
	return nil
}

// CreateContact creates a contact with its opening balance as the baseline.
func (s *contactService) CreateContact(companyID string, in ContactInput) (*models.Contact, error) {
	if in.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "contact name is required")
	}
	if in.OpeningBalance.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "opening balance cannot be negative")
	}
	if err := ledger.CheckScale("opening balance", in.OpeningBalance); err != nil {
		return nil, err
	}
	if in.Type == "" {
		in.Type = models.ContactTypeCustomer
	}
	if in.OpeningBalanceType == "" {
		in.OpeningBalanceType = ledger.Payable
	}
	if !in.OpeningBalanceType.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "opening balance type must be payable or receivable")
	}
	if err := ensureCompany(s.db, companyID); err != nil {
		return nil, err
	}

	baseline := ledger.NewPosition(in.OpeningBalance, in.OpeningBalanceType)
	contact := &models.Contact{
		CompanyID:          companyID,
		Name:               in.Name,
		Type:               in.Type,
		Email:              in.Email,
		Phone:              in.Phone,
		OpeningBalance:     baseline.Amount,
		OpeningBalanceType: baseline.Direction,
		CurrentBalance:     baseline.Amount,
		CurrentBalanceType: baseline.Direction,
	}
	if err := s.db.Create(contact).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return contact, nil
}

// GetContactByID retrieves a contact of the company.
func (s *contactService) GetContactByID(companyID, contactID string) (*models.Contact, error) {
	if !uuid.IsValid(contactID) {
		return nil, apperrors.ErrContactNotFound
	}
	var contact models.Contact
	if err := s.db.Where("id = ? AND company_id = ?", contactID, companyID).First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrContactNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &contact, nil
}

// GetCompanyContacts retrieves a paginated list of contacts.
func (s *contactService) GetCompanyContacts(companyID string, page pagination.PageRequest, contactType *models.ContactType) (*pagination.PageResponse[models.Contact], error) {
	base := s.db.Model(&models.Contact{}).Where("company_id = ?", companyID)
	if contactType != nil {
		base = base.Where("type = ?", *contactType)
	}

	result, err := pagination.Fetch[models.Contact](base, page, pagination.OrderBy("name ASC", "id ASC"))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return result, nil
}

// GetContactBalance computes the contact's balance from its baseline and
// every pending transaction. It only reads.
func (s *contactService) GetContactBalance(companyID, contactID string) (*ledger.Balance, error) {
	contact, err := s.GetContactByID(companyID, contactID)
	if err != nil {
		return nil, err
	}
	return contactBalance(s.db, companyID, contact)
}

type pendingRow struct {
	ID              string
	Reference       string
	Date            time.Time
	Total           decimal.Decimal
	PaidAmount      decimal.Decimal
	RemainingAmount decimal.Decimal
}

// pendingColumns selects what the pending list shows for each kind.
var pendingColumns = map[ledger.Kind]string{
	ledger.KindSale:     "id, invoice_number AS reference, date, net_receivable AS total, paid_amount, remaining_amount",
	ledger.KindPurchase: "id, bill_number AS reference, date, net_payable AS total, paid_amount, remaining_amount",
	ledger.KindExpense:  "id, reference, date, amount AS total, paid_amount, remaining_amount",
	ledger.KindIncome:   "id, reference, date, amount AS total, paid_amount, remaining_amount",
}

// GetPendingTransactions lists every target a payment for this contact can
// settle, oldest first per kind. A synthetic current-balance entry carrying
// the computed balance comes first whenever that balance is not zero.
func (s *contactService) GetPendingTransactions(companyID, contactID string) ([]PendingTransaction, error) {
	contact, err := s.GetContactByID(companyID, contactID)
	if err != nil {
		return nil, err
	}

	var out []PendingTransaction

	balance, err := contactBalance(s.db, companyID, contact)
	if err != nil {
		return nil, err
	}
	if !balance.IsZero() {
		out = append(out, PendingTransaction{
			TransactionID:   ledger.CurrentBalanceID,
			TransactionType: ledger.KindCurrentBalance,
			Type:            balance.Direction,
			Reference:       "Current balance",
			Amount:          balance.Amount,
			PaidAmount:      decimal.Zero,
			PendingAmount:   balance.Amount,
		})
	}

	for _, kind := range ledger.ObligationKinds {
		t := obligationTables[kind]
		q := s.db.Table(t.table).
			Select(pendingColumns[kind]).
			Where("company_id = ? AND contact_id = ? AND status = ?", companyID, contact.ID, ledger.StatusPending).
			Where("remaining_amount > 0")
		if t.softDelete {
			q = q.Where("deleted_at IS NULL")
		}
		var rows []pendingRow
		if err := q.Order("date ASC").Order("id ASC").Scan(&rows).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		for _, r := range rows {
			date := r.Date
			out = append(out, PendingTransaction{
				TransactionID:   r.ID,
				TransactionType: kind,
				Type:            kind.Direction(),
				Reference:       r.Reference,
				Date:            &date,
				Amount:          r.Total,
				PaidAmount:      r.PaidAmount,
				PendingAmount:   r.RemainingAmount,
			})
		}
	}

	if out == nil {
		out = []PendingTransaction{}
	}
	return out, nil
}
