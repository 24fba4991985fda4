package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"khata/internal/ledger"
	"khata/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// D parses a decimal literal and panics on malformed input.
func D(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func create(t *testing.T, db *gorm.DB, what string, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("failed to create test %s: %v", what, err)
	}
}

// CreateTestCompany creates an active company.
func CreateTestCompany(t *testing.T, db *gorm.DB) *models.Company {
	t.Helper()

	company := &models.Company{
		Name:     fmt.Sprintf("Test Company %d", nextID()),
		IsActive: true,
	}
	create(t, db, "company", company)
	return company
}

// CreateTestContact creates a contact with a zero baseline.
func CreateTestContact(t *testing.T, db *gorm.DB, companyID string) *models.Contact {
	t.Helper()
	return CreateTestContactWithBalance(t, db, companyID, "0", ledger.Payable)
}

// CreateTestContactWithBalance creates a contact with the given baseline.
func CreateTestContactWithBalance(t *testing.T, db *gorm.DB, companyID, amount string, dir ledger.BalanceType) *models.Contact {
	t.Helper()

	contact := &models.Contact{
		CompanyID:          companyID,
		Name:               fmt.Sprintf("Test Contact %d", nextID()),
		Type:               models.ContactTypeBoth,
		OpeningBalance:     D(amount),
		OpeningBalanceType: dir,
		CurrentBalance:     D(amount),
		CurrentBalanceType: dir,
	}
	create(t, db, "contact", contact)
	return contact
}

// CreateTestBankAccount creates a bank account with the given balance.
func CreateTestBankAccount(t *testing.T, db *gorm.DB, companyID, balance string) *models.BankAccount {
	t.Helper()

	account := &models.BankAccount{
		CompanyID:      companyID,
		Name:           fmt.Sprintf("Test Bank %d", nextID()),
		Currency:       "INR",
		OpeningBalance: D(balance),
		CurrentBalance: D(balance),
		IsActive:       true,
	}
	create(t, db, "bank account", account)
	return account
}

// CreateTestSale creates an unpaid sale.
func CreateTestSale(t *testing.T, db *gorm.DB, companyID, contactID, total string) *models.Sale {
	t.Helper()

	sale := &models.Sale{
		CompanyID:     companyID,
		ContactID:     contactID,
		InvoiceNumber: fmt.Sprintf("INV-%d", nextID()),
		Date:          time.Now(),
		NetReceivable: D(total),
	}
	create(t, db, "sale", sale)
	return sale
}

// CreateTestPurchase creates an unpaid purchase.
func CreateTestPurchase(t *testing.T, db *gorm.DB, companyID, contactID, total string) *models.Purchase {
	t.Helper()

	purchase := &models.Purchase{
		CompanyID:  companyID,
		ContactID:  contactID,
		BillNumber: fmt.Sprintf("BILL-%d", nextID()),
		Date:       time.Now(),
		NetPayable: D(total),
	}
	create(t, db, "purchase", purchase)
	return purchase
}

// CreateTestExpense creates an unpaid expense. contactID may be nil.
func CreateTestExpense(t *testing.T, db *gorm.DB, companyID string, contactID *string, amount string) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		CompanyID: companyID,
		ContactID: contactID,
		Reference: fmt.Sprintf("EXP-%d", nextID()),
		Date:      time.Now(),
		Amount:    D(amount),
	}
	create(t, db, "expense", expense)
	return expense
}

// CreateTestIncome creates an unpaid income. contactID may be nil.
func CreateTestIncome(t *testing.T, db *gorm.DB, companyID string, contactID *string, amount string) *models.Income {
	t.Helper()

	income := &models.Income{
		CompanyID: companyID,
		ContactID: contactID,
		Reference: fmt.Sprintf("INC-%d", nextID()),
		Date:      time.Now(),
		Amount:    D(amount),
	}
	create(t, db, "income", income)
	return income
}

// ReloadBankBalance reads a bank account's current balance.
func ReloadBankBalance(t *testing.T, db *gorm.DB, id string) decimal.Decimal {
	t.Helper()

	var account models.BankAccount
	if err := db.Where("id = ?", id).First(&account).Error; err != nil {
		t.Fatalf("failed to reload bank account: %v", err)
	}
	return account.CurrentBalance
}

// ReloadContact reads a contact, including soft-deleted ones.
func ReloadContact(t *testing.T, db *gorm.DB, id string) *models.Contact {
	t.Helper()

	var contact models.Contact
	if err := db.Unscoped().Where("id = ?", id).First(&contact).Error; err != nil {
		t.Fatalf("failed to reload contact: %v", err)
	}
	return &contact
}

// ReloadSale reads a sale, including soft-deleted ones.
func ReloadSale(t *testing.T, db *gorm.DB, id string) *models.Sale {
	t.Helper()

	var sale models.Sale
	if err := db.Unscoped().Where("id = ?", id).First(&sale).Error; err != nil {
		t.Fatalf("failed to reload sale: %v", err)
	}
	return &sale
}

// ReloadPurchase reads a purchase, including soft-deleted ones.
func ReloadPurchase(t *testing.T, db *gorm.DB, id string) *models.Purchase {
	t.Helper()

	var purchase models.Purchase
	if err := db.Unscoped().Where("id = ?", id).First(&purchase).Error; err != nil {
		t.Fatalf("failed to reload purchase: %v", err)
	}
	return &purchase
}

// ReloadIncome reads an income.
func ReloadIncome(t *testing.T, db *gorm.DB, id string) *models.Income {
	t.Helper()

	var income models.Income
	if err := db.Where("id = ?", id).First(&income).Error; err != nil {
		t.Fatalf("failed to reload income: %v", err)
	}
	return &income
}
