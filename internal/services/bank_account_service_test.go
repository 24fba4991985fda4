package services

import (
	"testing"
	"time"

	"khata/internal/models"
	"khata/internal/pagination"
	"khata/internal/testutil"
	"khata/internal/uuid"
)

func TestCreateBankAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	company := testutil.CreateTestCompany(t, db)
	svc := NewBankAccountService(db, 0)

	account, err := svc.CreateBankAccount(company.ID, "Current A/c", "001234", "hdfc0000123", "", testutil.D("5000"))
	testutil.AssertNoError(t, err)
	if account.Currency != "INR" {
		t.Errorf("expected default currency INR, got %s", account.Currency)
	}
	if account.IFSC != "HDFC0000123" {
		t.Errorf("expected upper-cased IFSC, got %s", account.IFSC)
	}
	testutil.AssertDecimal(t, "current balance", account.CurrentBalance, "5000")

	_, err = svc.CreateBankAccount(company.ID, "", "", "", "", testutil.D("0"))
	testutil.AssertAppError(t, err, "INVALID_INPUT")

	_, err = svc.CreateBankAccount(company.ID, "Petty cash", "", "", "", testutil.D("1.001"))
	testutil.AssertAppError(t, err, "INVALID_INPUT")

	_, err = svc.CreateBankAccount(uuid.New(), "Ghost", "", "", "", testutil.D("0"))
	testutil.AssertAppError(t, err, "COMPANY_NOT_FOUND")
}

func TestBankAccountQueries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	company := testutil.CreateTestCompany(t, db)
	svc := NewBankAccountService(db, 0)

	a := testutil.CreateTestBankAccount(t, db, company.ID, "10")
	b := testutil.CreateTestBankAccount(t, db, company.ID, "20")

	inactive := false
	_, err := svc.UpdateBankAccount(company.ID, b.ID, BankAccountUpdateFields{IsActive: &inactive})
	testutil.AssertNoError(t, err)

	list, err := svc.GetCompanyBankAccounts(company.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if list.TotalItems != 1 || list.Data[0].ID != a.ID {
		t.Errorf("expected only the active account, got %d", list.TotalItems)
	}

	name := "Renamed"
	ifsc := "sbin0001"
	updated, err := svc.UpdateBankAccount(company.ID, a.ID, BankAccountUpdateFields{Name: &name, IFSC: &ifsc})
	testutil.AssertNoError(t, err)
	if updated.Name != "Renamed" || updated.IFSC != "SBIN0001" {
		t.Errorf("unexpected update result: %s %s", updated.Name, updated.IFSC)
	}
	testutil.AssertDecimal(t, "balance untouched", updated.CurrentBalance, "10")

	_, err = svc.GetBankAccountByID(company.ID, uuid.New())
	testutil.AssertAppError(t, err, "BANK_ACCOUNT_NOT_FOUND")

	other := testutil.CreateTestCompany(t, db)
	_, err = svc.GetBankAccountByID(other.ID, a.ID)
	testutil.AssertAppError(t, err, "BANK_ACCOUNT_NOT_FOUND")
}

func TestTransfers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	company := testutil.CreateTestCompany(t, db)
	svc := NewBankAccountService(db, 0)

	from := testutil.CreateTestBankAccount(t, db, company.ID, "1000")
	to := testutil.CreateTestBankAccount(t, db, company.ID, "50")

	t.Run("moves_money_and_reverses", func(t *testing.T) {
		transfer, err := svc.CreateTransfer(company.ID, from.ID, to.ID, testutil.D("400"), "sweep", time.Time{})
		testutil.AssertNoError(t, err)
		if transfer.Date.IsZero() {
			t.Error("expected a default date")
		}
		testutil.AssertDecimal(t, "from", testutil.ReloadBankBalance(t, db, from.ID), "600")
		testutil.AssertDecimal(t, "to", testutil.ReloadBankBalance(t, db, to.ID), "450")

		testutil.AssertNoError(t, svc.DeleteTransfer(company.ID, transfer.ID))
		testutil.AssertDecimal(t, "from", testutil.ReloadBankBalance(t, db, from.ID), "1000")
		testutil.AssertDecimal(t, "to", testutil.ReloadBankBalance(t, db, to.ID), "50")

		// A second delete finds nothing to reverse.
		testutil.AssertAppError(t, svc.DeleteTransfer(company.ID, transfer.ID), "TRANSFER_NOT_FOUND")
		testutil.AssertDecimal(t, "from", testutil.ReloadBankBalance(t, db, from.ID), "1000")

		var stored models.BankTransfer
		if err := db.Unscoped().Where("id = ?", transfer.ID).First(&stored).Error; err != nil {
			t.Fatalf("expected soft-deleted transfer: %v", err)
		}
		if !stored.DeletedAt.Valid {
			t.Error("expected transfer to be soft-deleted")
		}
	})

	t.Run("errors", func(t *testing.T) {
		otherCompany := testutil.CreateTestCompany(t, db)
		foreign := testutil.CreateTestBankAccount(t, db, otherCompany.ID, "1000")

		tests := []struct {
			name     string
			from, to string
			amount   string
			code     string
		}{
			{"zero_amount", from.ID, to.ID, "0", "INVALID_INPUT"},
			{"negative_amount", from.ID, to.ID, "-5", "INVALID_INPUT"},
			{"sub_paisa_amount", from.ID, to.ID, "10.005", "INVALID_INPUT"},
			{"same_account", from.ID, from.ID, "10", "SAME_ACCOUNT_TRANSFER"},
			{"insufficient_balance", to.ID, from.ID, "50.01", "INSUFFICIENT_BALANCE"},
			{"unknown_account", from.ID, uuid.New(), "10", "BANK_ACCOUNT_NOT_FOUND"},
			{"malformed_account", from.ID, "savings", "10", "BANK_ACCOUNT_NOT_FOUND"},
			{"other_company_account", foreign.ID, to.ID, "10", "BANK_ACCOUNT_NOT_FOUND"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.CreateTransfer(company.ID, tt.from, tt.to, testutil.D(tt.amount), "", time.Now())
				testutil.AssertAppError(t, err, tt.code)
			})
		}

		testutil.AssertDecimal(t, "from", testutil.ReloadBankBalance(t, db, from.ID), "1000")
		testutil.AssertDecimal(t, "to", testutil.ReloadBankBalance(t, db, to.ID), "50")
		testutil.AssertDecimal(t, "foreign", testutil.ReloadBankBalance(t, db, foreign.ID), "1000")
	})

	t.Run("exact_balance_allowed", func(t *testing.T) {
		_, err := svc.CreateTransfer(company.ID, to.ID, from.ID, testutil.D("50"), "", time.Now())
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, "to", testutil.ReloadBankBalance(t, db, to.ID), "0")
	})

	t.Run("inactive_account", func(t *testing.T) {
		closing := testutil.CreateTestBankAccount(t, db, company.ID, "100")
		earlier, err := svc.CreateTransfer(company.ID, closing.ID, from.ID, testutil.D("30"), "", time.Now())
		testutil.AssertNoError(t, err)

		inactive := false
		_, err = svc.UpdateBankAccount(company.ID, closing.ID, BankAccountUpdateFields{IsActive: &inactive})
		testutil.AssertNoError(t, err)

		_, err = svc.CreateTransfer(company.ID, from.ID, closing.ID, testutil.D("10"), "", time.Now())
		testutil.AssertAppError(t, err, "BANK_ACCOUNT_NOT_FOUND")
		_, err = svc.CreateTransfer(company.ID, closing.ID, from.ID, testutil.D("10"), "", time.Now())
		testutil.AssertAppError(t, err, "BANK_ACCOUNT_NOT_FOUND")
		testutil.AssertDecimal(t, "closing", testutil.ReloadBankBalance(t, db, closing.ID), "70")

		// Undoing an earlier transfer still works on a closed account.
		testutil.AssertNoError(t, svc.DeleteTransfer(company.ID, earlier.ID))
		testutil.AssertDecimal(t, "closing", testutil.ReloadBankBalance(t, db, closing.ID), "100")
	})

	t.Run("delete_unknown", func(t *testing.T) {
		testutil.AssertAppError(t, svc.DeleteTransfer(company.ID, uuid.New()), "TRANSFER_NOT_FOUND")
		testutil.AssertAppError(t, svc.DeleteTransfer(company.ID, "7"), "TRANSFER_NOT_FOUND")
	})
}
