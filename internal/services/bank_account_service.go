package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "khata/internal/errors"
	"khata/internal/ledger"
	"khata/internal/models"
	"khata/internal/pagination"
	"khata/internal/uuid"
)

// bankAccountService handles bank accounts and transfers between them.
type bankAccountService struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

// NewBankAccountService creates a new BankAccountServicer.
func NewBankAccountService(db *gorm.DB, lockTimeout time.Duration) BankAccountServicer {
	return &bankAccountService{db: db, lockTimeout: lockTimeout}
}

// CreateBankAccount creates a bank account whose current balance starts at
// the opening balance.
func (s *bankAccountService) CreateBankAccount(companyID, name, accountNumber, ifsc, currency string, openingBalance decimal.Decimal) (*models.BankAccount, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "bank account name is required")
	}
	if err := ledger.CheckScale("opening balance", openingBalance); err != nil {
		return nil, err
	}
	if currency == "" {
		currency = "INR"
	}
	if err := ensureCompany(s.db, companyID); err != nil {
		return nil, err
	}

	account := &models.BankAccount{
		CompanyID:      companyID,
		Name:           name,
		AccountNumber:  accountNumber,
		IFSC:           strings.ToUpper(ifsc),
		Currency:       strings.ToUpper(currency),
		OpeningBalance: openingBalance,
		CurrentBalance: openingBalance,
		IsActive:       true,
	}
	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// GetCompanyBankAccounts retrieves a paginated list of active bank accounts.
func (s *bankAccountService) GetCompanyBankAccounts(companyID string, page pagination.PageRequest) (*pagination.PageResponse[models.BankAccount], error) {
	base := s.db.Model(&models.BankAccount{}).Where("company_id = ? AND is_active = ?", companyID, true)
	result, err := pagination.Fetch[models.BankAccount](base, page, pagination.OrderBy("name ASC", "id ASC"))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return result, nil
}

// GetBankAccountByID retrieves a bank account of the company.
func (s *bankAccountService) GetBankAccountByID(companyID, bankAccountID string) (*models.BankAccount, error) {
	if !uuid.IsValid(bankAccountID) {
		return nil, apperrors.ErrBankAccountNotFound
	}
	var account models.BankAccount
	if err := s.db.Where("id = ? AND company_id = ?", bankAccountID, companyID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBankAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// UpdateBankAccount updates descriptive fields of a bank account.
func (s *bankAccountService) UpdateBankAccount(companyID, bankAccountID string, fields BankAccountUpdateFields) (*models.BankAccount, error) {
	account, err := s.GetBankAccountByID(companyID, bankAccountID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fields.Name != nil && *fields.Name != "" {
		updates["name"] = *fields.Name
	}
	if fields.AccountNumber != nil {
		updates["account_number"] = *fields.AccountNumber
	}
	if fields.IFSC != nil {
		updates["ifsc"] = strings.ToUpper(*fields.IFSC)
	}
	if fields.IsActive != nil {
		updates["is_active"] = *fields.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(account).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		// Reload to get fresh data
		if err := s.db.Where("id = ?", account.ID).First(account).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return account, nil
}

// CreateTransfer moves money between two bank accounts of the company.
func (s *bankAccountService) CreateTransfer(companyID, fromBankAccountID, toBankAccountID string, amount decimal.Decimal, description string, date time.Time) (*models.BankTransfer, error) {
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if err := ledger.CheckScale("amount", amount); err != nil {
		return nil, err
	}
	if fromBankAccountID == toBankAccountID {
		return nil, apperrors.ErrSameAccountTransfer
	}
	if !uuid.AllValid(fromBankAccountID, toBankAccountID) {
		return nil, apperrors.ErrBankAccountNotFound
	}
	if date.IsZero() {
		date = time.Now()
	}

	transfer := &models.BankTransfer{
		CompanyID:         companyID,
		FromBankAccountID: fromBankAccountID,
		ToBankAccountID:   toBankAccountID,
		Amount:            amount,
		Date:              date,
		Description:       description,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		store := newLedgerStore(tx, companyID)
		if err := store.setLockTimeout(s.lockTimeout); err != nil {
			return err
		}
		st, res, err := store.load(nil, []string{fromBankAccountID, toBankAccountID}, nil)
		if err != nil {
			return err
		}
		if err := res.checkActiveBanks(fromBankAccountID, toBankAccountID); err != nil {
			return err
		}
		if err := ledger.Transfer(st, fromBankAccountID, toBankAccountID, amount); err != nil {
			return err
		}
		if err := store.flush(st); err != nil {
			return err
		}
		if err := tx.Create(transfer).Error; err != nil {
			return dbError(err)
		}
		return nil
	})
	if err != nil {
		return nil, dbError(err)
	}
	return transfer, nil
}

// DeleteTransfer reverses a transfer and soft-deletes it.
func (s *bankAccountService) DeleteTransfer(companyID, transferID string) error {
	if !uuid.IsValid(transferID) {
		return apperrors.ErrTransferNotFound
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		store := newLedgerStore(tx, companyID)
		if err := store.setLockTimeout(s.lockTimeout); err != nil {
			return err
		}

		var transfer models.BankTransfer
		err := store.forUpdate().Where("id = ? AND company_id = ?", transferID, companyID).First(&transfer).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTransferNotFound
			}
			return dbError(err)
		}
		st, _, err := store.load(nil, []string{transfer.FromBankAccountID, transfer.ToBankAccountID}, nil)
		if err != nil {
			return err
		}
		if err := ledger.UndoTransfer(st, transfer.FromBankAccountID, transfer.ToBankAccountID, transfer.Amount); err != nil {
			return err
		}
		if err := store.flush(st); err != nil {
			return err
		}
		if err := tx.Delete(&transfer).Error; err != nil {
			return dbError(err)
		}
		return nil
	})
	return dbError(err)
}
