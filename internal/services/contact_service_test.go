package services

import (
	"testing"

	"khata/internal/ledger"
	"khata/internal/models"
	"khata/internal/pagination"
	"khata/internal/testutil"
	"khata/internal/uuid"
)

func TestCreateContact(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	company := testutil.CreateTestCompany(t, db)
	svc := NewContactService(db)

	t.Run("defaults", func(t *testing.T) {
		contact, err := svc.CreateContact(company.ID, ContactInput{Name: "Asha Traders"})
		testutil.AssertNoError(t, err)
		if contact.Type != models.ContactTypeCustomer {
			t.Errorf("expected customer, got %s", contact.Type)
		}
		if contact.OpeningBalanceType != ledger.Payable {
			t.Errorf("expected payable baseline, got %s", contact.OpeningBalanceType)
		}
		testutil.AssertDecimal(t, "opening balance", contact.OpeningBalance, "0")
	})

	t.Run("opening_balance_becomes_snapshot", func(t *testing.T) {
		contact, err := svc.CreateContact(company.ID, ContactInput{
			Name:               "Bharat Steel",
			Type:               models.ContactTypeVendor,
			OpeningBalance:     testutil.D("2500"),
			OpeningBalanceType: ledger.Receivable,
		})
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, "snapshot", contact.CurrentBalance, "2500")
		if contact.CurrentBalanceType != ledger.Receivable {
			t.Errorf("expected receivable snapshot, got %s", contact.CurrentBalanceType)
		}
	})

	t.Run("zero_receivable_normalises_to_payable", func(t *testing.T) {
		contact, err := svc.CreateContact(company.ID, ContactInput{
			Name:               "Chetan",
			OpeningBalanceType: ledger.Receivable,
		})
		testutil.AssertNoError(t, err)
		if contact.OpeningBalanceType != ledger.Payable {
			t.Errorf("expected zero baseline to be payable, got %s", contact.OpeningBalanceType)
		}
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			name      string
			companyID string
			in        ContactInput
			code      string
		}{
			{"missing_name", company.ID, ContactInput{}, "INVALID_INPUT"},
			{"negative_opening_balance", company.ID, ContactInput{Name: "x", OpeningBalance: testutil.D("-1")}, "INVALID_INPUT"},
			{"sub_paisa_opening_balance", company.ID, ContactInput{Name: "x", OpeningBalance: testutil.D("0.125")}, "INVALID_INPUT"},
			{"bad_direction", company.ID, ContactInput{Name: "x", OpeningBalanceType: "sideways"}, "INVALID_INPUT"},
			{"unknown_company", uuid.New(), ContactInput{Name: "x"}, "COMPANY_NOT_FOUND"},
			{"malformed_company", "acme", ContactInput{Name: "x"}, "COMPANY_NOT_FOUND"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.CreateContact(tt.companyID, tt.in)
				testutil.AssertAppError(t, err, tt.code)
			})
		}
	})
}

func TestGetCompanyContacts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	company := testutil.CreateTestCompany(t, db)
	other := testutil.CreateTestCompany(t, db)
	svc := NewContactService(db)

	for _, in := range []ContactInput{
		{Name: "Zeta", Type: models.ContactTypeVendor},
		{Name: "Alpha", Type: models.ContactTypeCustomer},
		{Name: "Mid", Type: models.ContactTypeCustomer},
	} {
		_, err := svc.CreateContact(company.ID, in)
		testutil.AssertNoError(t, err)
	}
	_, err := svc.CreateContact(other.ID, ContactInput{Name: "Elsewhere"})
	testutil.AssertNoError(t, err)

	all, err := svc.GetCompanyContacts(company.ID, pagination.PageRequest{}, nil)
	testutil.AssertNoError(t, err)
	if all.TotalItems != 3 {
		t.Fatalf("expected 3 contacts, got %d", all.TotalItems)
	}
	if all.Data[0].Name != "Alpha" || all.Data[2].Name != "Zeta" {
		t.Errorf("expected contacts ordered by name, got %s..%s", all.Data[0].Name, all.Data[2].Name)
	}

	customer := models.ContactTypeCustomer
	customers, err := svc.GetCompanyContacts(company.ID, pagination.PageRequest{}, &customer)
	testutil.AssertNoError(t, err)
	if customers.TotalItems != 2 {
		t.Errorf("expected 2 customers, got %d", customers.TotalItems)
	}
}

func TestGetContactBalance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	company := testutil.CreateTestCompany(t, db)
	contact := testutil.CreateTestContactWithBalance(t, db, company.ID, "1000", ledger.Payable)
	svc := NewContactService(db)

	testutil.CreateTestSale(t, db, company.ID, contact.ID, "3000")
	testutil.CreateTestPurchase(t, db, company.ID, contact.ID, "500")
	contactID := contact.ID
	testutil.CreateTestExpense(t, db, company.ID, &contactID, "200")
	testutil.CreateTestIncome(t, db, company.ID, &contactID, "100")

	// Neither a deleted sale nor a paid purchase counts.
	deleted := testutil.CreateTestSale(t, db, company.ID, contact.ID, "999")
	db.Delete(&models.Sale{}, "id = ?", deleted.ID)
	paid := testutil.CreateTestPurchase(t, db, company.ID, contact.ID, "777")
	db.Model(&models.Purchase{}).Where("id = ?", paid.ID).Updates(map[string]interface{}{
		"paid_amount": testutil.D("777"), "remaining_amount": testutil.D("0"), "status": ledger.StatusPaid,
	})

	// Another contact's sale never leaks in.
	stranger := testutil.CreateTestContact(t, db, company.ID)
	testutil.CreateTestSale(t, db, company.ID, stranger.ID, "5000")

	balance, err := svc.GetContactBalance(company.ID, contact.ID)
	testutil.AssertNoError(t, err)

	// 1000 + 500 + 200 - 3000 - 100 = -1400
	testutil.AssertDecimal(t, "amount", balance.Amount, "1400")
	if balance.Direction != ledger.Receivable {
		t.Errorf("expected receivable, got %s", balance.Direction)
	}
	testutil.AssertDecimal(t, "signed", balance.Breakdown.Signed, "-1400")
	testutil.AssertDecimal(t, "pending sales", balance.Breakdown.Pending.Sales, "3000")
	testutil.AssertDecimal(t, "pending purchases", balance.Breakdown.Pending.Purchases, "500")

	again, err := svc.GetContactBalance(company.ID, contact.ID)
	testutil.AssertNoError(t, err)
	if !again.Position().Equal(balance.Position()) {
		t.Error("expected balance computation to be deterministic")
	}

	_, err = svc.GetContactBalance(company.ID, uuid.New())
	testutil.AssertAppError(t, err, "CONTACT_NOT_FOUND")

	otherCompany := testutil.CreateTestCompany(t, db)
	_, err = svc.GetContactBalance(otherCompany.ID, contact.ID)
	testutil.AssertAppError(t, err, "CONTACT_NOT_FOUND")
}

func TestGetPendingTransactions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	company := testutil.CreateTestCompany(t, db)
	svc := NewContactService(db)

	t.Run("settled_contact_has_nothing_pending", func(t *testing.T) {
		contact := testutil.CreateTestContact(t, db, company.ID)
		pending, err := svc.GetPendingTransactions(company.ID, contact.ID)
		testutil.AssertNoError(t, err)
		if pending == nil || len(pending) != 0 {
			t.Errorf("expected an empty list, got %v", pending)
		}
	})

	t.Run("current_balance_first", func(t *testing.T) {
		contact := testutil.CreateTestContactWithBalance(t, db, company.ID, "250", ledger.Receivable)
		sale := testutil.CreateTestSale(t, db, company.ID, contact.ID, "1000")
		purchase := testutil.CreateTestPurchase(t, db, company.ID, contact.ID, "300")
		db.Model(&models.Purchase{}).Where("id = ?", purchase.ID).Updates(map[string]interface{}{
			"paid_amount": testutil.D("100"), "remaining_amount": testutil.D("200"),
		})

		pending, err := svc.GetPendingTransactions(company.ID, contact.ID)
		testutil.AssertNoError(t, err)
		if len(pending) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(pending))
		}

		cb := pending[0]
		if cb.TransactionType != ledger.KindCurrentBalance || cb.TransactionID != ledger.CurrentBalanceID {
			t.Errorf("expected current-balance entry first, got %s %s", cb.TransactionType, cb.TransactionID)
		}
		// -250 - 1000 + 200 = -1050
		testutil.AssertDecimal(t, "current balance", cb.PendingAmount, "1050")
		if cb.Type != ledger.Receivable {
			t.Errorf("expected receivable current balance, got %s", cb.Type)
		}
		if cb.Date != nil {
			t.Error("expected no date on the current-balance entry")
		}

		if pending[1].TransactionID != sale.ID || pending[1].Type != ledger.Receivable {
			t.Errorf("expected the sale second, got %+v", pending[1])
		}
		testutil.AssertDecimal(t, "sale pending", pending[1].PendingAmount, "1000")

		p := pending[2]
		if p.TransactionID != purchase.ID || p.Type != ledger.Payable {
			t.Errorf("expected the purchase third, got %+v", p)
		}
		testutil.AssertDecimal(t, "purchase total", p.Amount, "300")
		testutil.AssertDecimal(t, "purchase paid", p.PaidAmount, "100")
		testutil.AssertDecimal(t, "purchase pending", p.PendingAmount, "200")
	})

	t.Run("unknown_contact", func(t *testing.T) {
		_, err := svc.GetPendingTransactions(company.ID, uuid.New())
		testutil.AssertAppError(t, err, "CONTACT_NOT_FOUND")
	})
}
