package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	apperrors "khata/internal/errors"
	"khata/internal/ledger"
	"khata/internal/testutil"
)

func TestDBError(t *testing.T) {
	if dbError(nil) != nil {
		t.Fatal("expected nil for nil")
	}

	tests := []struct {
		name string
		err  error
		code string
	}{
		{"app_error_passes_through", apperrors.ErrPaymentDeleted, "PAYMENT_DELETED"},
		{"lock_timeout", &pgconn.PgError{Code: "55P03"}, "CONCURRENCY_CONFLICT"},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, "CONCURRENCY_CONFLICT"},
		{"serialization", fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40001"}), "CONCURRENCY_CONFLICT"},
		{"other_rollback", &pgconn.PgError{Code: "40002"}, "CONCURRENCY_CONFLICT"},
		{"unique_violation", &pgconn.PgError{Code: "23505"}, "INTERNAL_ERROR"},
		{"plain", errors.New("connection reset"), "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertAppError(t, dbError(tt.err), tt.code)
		})
	}

	appErr, _ := apperrors.As(dbError(&pgconn.PgError{Code: "55P03"}))
	if !appErr.Retryable {
		t.Error("expected lock conflicts to be retryable")
	}
}

func TestLedgerStoreLoad(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	company := testutil.CreateTestCompany(t, db)
	contact := testutil.CreateTestContactWithBalance(t, db, company.ID, "75", ledger.Receivable)
	bank := testutil.CreateTestBankAccount(t, db, company.ID, "300")
	sale := testutil.CreateTestSale(t, db, company.ID, contact.ID, "120")
	income := testutil.CreateTestIncome(t, db, company.ID, nil, "40")

	other := testutil.CreateTestCompany(t, db)
	foreignBank := testutil.CreateTestBankAccount(t, db, other.ID, "1")

	store := newLedgerStore(db, company.ID)
	testutil.AssertNoError(t, store.setLockTimeout(0))

	st, res, err := store.load(
		[]string{contact.ID, contact.ID},
		[]string{bank.ID, foreignBank.ID},
		[]ledger.Target{
			{Kind: ledger.KindSale, ID: sale.ID},
			{Kind: ledger.KindIncome, ID: income.ID},
			ledger.CurrentBalance(),
		},
	)
	testutil.AssertNoError(t, err)

	baseline, ok := st.Contact(contact.ID)
	if !ok || !baseline.Equal(contact.Baseline()) {
		t.Errorf("expected contact baseline loaded, got %+v", baseline)
	}
	if _, ok := st.Bank(foreignBank.ID); ok {
		t.Error("expected another company's bank to stay unloaded")
	}
	balance, _ := st.Bank(bank.ID)
	testutil.AssertDecimal(t, "bank", balance, "300")

	o, ok := st.Obligation(ledger.Target{Kind: ledger.KindSale, ID: sale.ID})
	if !ok {
		t.Fatal("expected sale loaded")
	}
	testutil.AssertDecimal(t, "sale total", o.Total, "120")
	if o.Deleted || !o.HasContact {
		t.Errorf("unexpected sale flags: deleted=%v hasContact=%v", o.Deleted, o.HasContact)
	}

	if !res.ownedBy(ledger.Target{Kind: ledger.KindSale, ID: sale.ID}, contact.ID) {
		t.Error("expected sale owned by its contact")
	}
	if res.ownedBy(ledger.Target{Kind: ledger.KindSale, ID: sale.ID}, "someone-else") {
		t.Error("expected sale not owned by another contact")
	}
	if !res.ownedBy(ledger.Target{Kind: ledger.KindIncome, ID: income.ID}, "anyone") {
		t.Error("expected contactless income to be settleable by anyone")
	}
}

func TestUniqueSorted(t *testing.T) {
	got := uniqueSorted([]string{"c", "", "a", "c", "b"})
	want := []string{"a", "b", "c"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
