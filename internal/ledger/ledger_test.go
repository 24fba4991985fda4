package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "khata/internal/errors"
	"khata/internal/ledger"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pos(amount string, dir ledger.BalanceType) ledger.Position {
	return ledger.Position{Amount: d(amount), Direction: dir}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok, "expected *AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}

func TestSignedConversion(t *testing.T) {
	assert.True(t, ledger.ToSigned(pos("500", ledger.Payable)).Equal(d("500")))
	assert.True(t, ledger.ToSigned(pos("500", ledger.Receivable)).Equal(d("-500")))

	assert.True(t, ledger.FromSigned(d("200")).Equal(pos("200", ledger.Payable)))
	assert.True(t, ledger.FromSigned(d("-200")).Equal(pos("200", ledger.Receivable)))
	assert.True(t, ledger.FromSigned(decimal.Zero).Equal(pos("0", ledger.Payable)), "zero is payable by convention")

	// A zero receivable baseline normalises to payable.
	assert.True(t, ledger.NewPosition(decimal.Zero, ledger.Receivable).Equal(pos("0", ledger.Payable)))
}

func TestPositionSettle(t *testing.T) {
	t.Run("overshoot flips direction", func(t *testing.T) {
		got := pos("500", ledger.Receivable).Settle(ledger.Receivable, d("700"))
		assert.True(t, got.Equal(pos("200", ledger.Payable)), "got %+v", got)
	})

	t.Run("exact settlement lands on payable zero", func(t *testing.T) {
		got := pos("500", ledger.Receivable).Settle(ledger.Receivable, d("500"))
		assert.True(t, got.Equal(pos("0", ledger.Payable)), "got %+v", got)
	})

	t.Run("payable allocation reduces what the business owes", func(t *testing.T) {
		got := pos("800", ledger.Payable).Settle(ledger.Payable, d("300"))
		assert.True(t, got.Equal(pos("500", ledger.Payable)), "got %+v", got)
	})

	t.Run("unsettle restores the original", func(t *testing.T) {
		start := pos("500", ledger.Receivable)
		got := start.Settle(ledger.Receivable, d("700")).Unsettle(ledger.Receivable, d("700"))
		assert.True(t, got.Equal(start), "got %+v", got)
	})
}

func TestComputeBalance(t *testing.T) {
	pending := ledger.PendingTotals{}
	pending.Add(ledger.KindPurchase, d("5000"))
	pending.Add(ledger.KindExpense, d("250.50"))
	pending.Add(ledger.KindSale, d("1000"))
	pending.Add(ledger.KindSale, d("200"))
	pending.Add(ledger.KindIncome, d("50.50"))

	bal := ledger.ComputeBalance(pos("1000", ledger.Receivable), pending)

	// -1000 + 5000 + 250.50 - 1200 - 50.50 = 3000
	assert.True(t, bal.Amount.Equal(d("3000")), "amount %s", bal.Amount)
	assert.Equal(t, ledger.Payable, bal.Direction)
	assert.True(t, bal.Breakdown.Signed.Equal(d("3000")))
	assert.True(t, bal.Breakdown.Pending.Sales.Equal(d("1200")))

	again := ledger.ComputeBalance(pos("1000", ledger.Receivable), pending)
	assert.Equal(t, bal, again, "balance must be deterministic")

	zero := ledger.ComputeBalance(pos("0", ledger.Payable), ledger.PendingTotals{})
	assert.True(t, zero.IsZero())
	assert.Equal(t, ledger.Payable, zero.Direction)

	receivable := ledger.ComputeBalance(pos("0", ledger.Payable), ledger.PendingTotals{Sales: d("10")})
	assert.Equal(t, ledger.Receivable, receivable.Direction)
	assert.True(t, receivable.Amount.Equal(d("10")))
}

func TestComputeAmounts(t *testing.T) {
	tests := []struct {
		name        string
		net         string
		adj         ledger.Adjustment
		paymentType ledger.PaymentType
		original    string
		adjusted    string
		bankImpact  string
	}{
		{"no adjustment receipt", "1000", ledger.Adjustment{}, ledger.PaymentTypeReceipt, "1000", "1000", "1000"},
		{"no adjustment payment", "-1000", ledger.Adjustment{Type: ledger.AdjustmentNone}, ledger.PaymentTypePayment, "1000", "1000", "-1000"},
		{"discount on payment", "-1000", ledger.Adjustment{Type: ledger.AdjustmentDiscount, Value: d("100")}, ledger.PaymentTypePayment, "1000", "900", "-900"},
		{"discount floors at zero", "300", ledger.Adjustment{Type: ledger.AdjustmentDiscount, Value: d("500")}, ledger.PaymentTypeReceipt, "300", "0", "0"},
		{"extra receipt", "1000", ledger.Adjustment{Type: ledger.AdjustmentExtraReceipt, Value: d("50")}, ledger.PaymentTypeReceipt, "1050", "1000", "1050"},
		{"surcharge on payment", "-400", ledger.Adjustment{Type: ledger.AdjustmentSurcharge, Value: d("20")}, ledger.PaymentTypePayment, "420", "400", "-420"},
		{"zero net is a receipt", "0", ledger.Adjustment{}, ledger.PaymentTypeReceipt, "0", "0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ledger.ComputeAmounts(d(tt.net), tt.adj)
			require.NoError(t, err)
			assert.Equal(t, tt.paymentType, got.PaymentType)
			assert.True(t, got.Original.Equal(d(tt.original)), "original %s", got.Original)
			assert.True(t, got.Adjusted.Equal(d(tt.adjusted)), "adjusted %s", got.Adjusted)
			assert.True(t, got.BankImpact.Equal(d(tt.bankImpact)), "bank impact %s", got.BankImpact)

			// The stored form must reproduce the same bank impact.
			stored, err := ledger.StoredAmounts(got.PaymentType, got.Original, tt.adj)
			require.NoError(t, err)
			assert.True(t, stored.BankImpact.Equal(got.BankImpact), "stored bank impact %s", stored.BankImpact)
			assert.True(t, stored.Adjusted.Equal(got.Adjusted), "stored adjusted %s", stored.Adjusted)
		})
	}

	t.Run("unknown adjustment", func(t *testing.T) {
		_, err := ledger.ComputeAmounts(d("10"), ledger.Adjustment{Type: "cashback"})
		assertCode(t, err, "INVALID_ADJUSTMENT_TYPE")
	})

	t.Run("negative adjustment value", func(t *testing.T) {
		_, err := ledger.ComputeAmounts(d("10"), ledger.Adjustment{Type: ledger.AdjustmentDiscount, Value: d("-1")})
		assertCode(t, err, "INVALID_INPUT")
	})
}

func TestParseAdjustmentType(t *testing.T) {
	got, err := ledger.ParseAdjustmentType("")
	require.NoError(t, err)
	assert.Equal(t, ledger.AdjustmentNone, got)

	got, err = ledger.ParseAdjustmentType("surcharge")
	require.NoError(t, err)
	assert.Equal(t, ledger.AdjustmentSurcharge, got)

	_, err = ledger.ParseAdjustmentType("rebate")
	assertCode(t, err, "INVALID_ADJUSTMENT_TYPE")
}

// --- planner and reversal ---

const (
	contactID = "contact-1"
	bankID    = "bank-1"
)

func sale(id, total, paid string) ledger.Obligation {
	return obligation(ledger.KindSale, id, total, paid, true)
}

func purchase(id, total, paid string) ledger.Obligation {
	return obligation(ledger.KindPurchase, id, total, paid, true)
}

func obligation(kind ledger.Kind, id, total, paid string, hasContact bool) ledger.Obligation {
	remaining := d(total).Sub(d(paid))
	return ledger.Obligation{
		Target:     ledger.Target{Kind: kind, ID: id},
		Total:      d(total),
		Paid:       d(paid),
		Remaining:  remaining,
		Status:     ledger.StatusFor(remaining),
		HasContact: hasContact,
	}
}

func newState(baseline ledger.Position, bank string, obligations ...ledger.Obligation) *ledger.State {
	st := ledger.NewState()
	st.AddContact(contactID, baseline)
	st.AddBank(bankID, d(bank))
	for _, o := range obligations {
		st.AddObligation(o)
	}
	return st
}

func alloc(kind ledger.Kind, id string, dir ledger.BalanceType, paid string) ledger.Allocation {
	return ledger.Allocation{Target: ledger.Target{Kind: kind, ID: id}, Direction: dir, PaidAmount: d(paid)}
}

func settle(t *testing.T, st *ledger.State, req ledger.Request) *ledger.Plan {
	t.Helper()
	plan, err := ledger.BuildPlan(req, st)
	require.NoError(t, err)
	require.NoError(t, plan.Apply(st))
	return plan
}

func settledFrom(plan *ledger.Plan) ledger.Settled {
	return ledger.Settled{
		ContactID:     plan.ContactID,
		BankAccountID: plan.BankAccountID,
		PaymentType:   plan.Amounts.PaymentType,
		Amount:        plan.Amounts.Original,
		Adjustment:    plan.Adjustment,
		Allocations:   plan.Allocations,
	}
}

func assertConserved(t *testing.T, o ledger.Obligation) {
	t.Helper()
	assert.True(t, o.Paid.Add(o.Remaining).Equal(o.Total), "%s: paid %s + remaining %s != total %s", o.Target, o.Paid, o.Remaining, o.Total)
	assert.Equal(t, ledger.StatusFor(o.Remaining), o.Status, "%s status", o.Target)
}

func TestBuildPlan_FullSalePayment(t *testing.T) {
	st := newState(pos("0", ledger.Payable), "10000", sale("s1", "1000", "0"))

	plan := settle(t, st, ledger.Request{
		ContactID:     contactID,
		BankAccountID: bankID,
		Allocations:   []ledger.Allocation{alloc(ledger.KindSale, "s1", ledger.Receivable, "1000")},
	})

	assert.Equal(t, ledger.PaymentTypeReceipt, plan.Amounts.PaymentType)
	assert.True(t, plan.Allocations[0].Amount.Equal(d("1000")), "reference amount is the sale total")

	o, ok := st.Obligation(ledger.Target{Kind: ledger.KindSale, ID: "s1"})
	require.True(t, ok)
	assert.True(t, o.Remaining.IsZero())
	assert.Equal(t, ledger.StatusPaid, o.Status)
	require.NotNil(t, o.BankAccountID)
	assert.Equal(t, bankID, *o.BankAccountID)
	assertConserved(t, o)

	bank, _ := st.Bank(bankID)
	assert.True(t, bank.Equal(d("11000")), "bank %s", bank)
}

func TestBuildPlan_PartialPurchasePayments(t *testing.T) {
	st := newState(pos("0", ledger.Payable), "10000", purchase("p1", "5000", "0"))
	target := ledger.Target{Kind: ledger.KindPurchase, ID: "p1"}

	settle(t, st, ledger.Request{
		ContactID:     contactID,
		BankAccountID: bankID,
		Allocations:   []ledger.Allocation{alloc(ledger.KindPurchase, "p1", ledger.Payable, "2000")},
	})
	o, _ := st.Obligation(target)
	assert.True(t, o.Paid.Equal(d("2000")))
	assert.True(t, o.Remaining.Equal(d("3000")))
	assert.Equal(t, ledger.StatusPending, o.Status)
	assert.Nil(t, o.BankAccountID, "partially paid transactions carry no bank reference")
	assertConserved(t, o)

	settle(t, st, ledger.Request{
		ContactID:     contactID,
		BankAccountID: bankID,
		Allocations:   []ledger.Allocation{alloc(ledger.KindPurchase, "p1", ledger.Payable, "3000")},
	})
	o, _ = st.Obligation(target)
	assert.True(t, o.Remaining.IsZero())
	assert.Equal(t, ledger.StatusPaid, o.Status)
	assertConserved(t, o)

	bank, _ := st.Bank(bankID)
	assert.True(t, bank.Equal(d("5000")), "bank %s", bank)
}

func TestBuildPlan_DiscountOnPayableNet(t *testing.T) {
	st := newState(pos("0", ledger.Payable), "5000", purchase("p1", "1000", "0"))

	plan := settle(t, st, ledger.Request{
		ContactID:     contactID,
		BankAccountID: bankID,
		Allocations:   []ledger.Allocation{alloc(ledger.KindPurchase, "p1", ledger.Payable, "1000")},
		Adjustment:    ledger.Adjustment{Type: ledger.AdjustmentDiscount, Value: d("100")},
	})

	assert.Equal(t, ledger.PaymentTypePayment, plan.Amounts.PaymentType)
	assert.True(t, plan.Amounts.Original.Equal(d("1000")))
	assert.True(t, plan.Amounts.Adjusted.Equal(d("900")))
	assert.True(t, plan.Amounts.BankImpact.Equal(d("-900")))

	bank, _ := st.Bank(bankID)
	assert.True(t, bank.Equal(d("4100")), "bank %s", bank)
}

func TestBuildPlan_CurrentBalanceOvershoot(t *testing.T) {
	st := newState(pos("500", ledger.Receivable), "0")

	plan := settle(t, st, ledger.Request{
		ContactID:     contactID,
		BankAccountID: bankID,
		Allocations: []ledger.Allocation{{
			Target:     ledger.CurrentBalance(),
			Direction:  ledger.Receivable,
			PaidAmount: d("700"),
		}},
	})

	require.NotNil(t, plan.Baseline)
	baseline, _ := st.Contact(contactID)
	assert.True(t, baseline.Equal(pos("200", ledger.Payable)), "baseline %+v", baseline)
	assert.True(t, plan.Allocations[0].Amount.Equal(d("500")), "reference amount is the baseline at allocation time")
}

func TestBuildPlan_MixedDirectionsNet(t *testing.T) {
	st := newState(pos("0", ledger.Payable), "1000",
		sale("s1", "1500", "0"),
		purchase("p1", "400", "0"),
	)

	plan := settle(t, st, ledger.Request{
		ContactID:     contactID,
		BankAccountID: bankID,
		Allocations: []ledger.Allocation{
			alloc(ledger.KindSale, "s1", ledger.Receivable, "1500"),
			alloc(ledger.KindPurchase, "p1", ledger.Payable, "400"),
		},
	})

	assert.Equal(t, ledger.PaymentTypeReceipt, plan.Amounts.PaymentType)
	assert.True(t, plan.Amounts.BankImpact.Equal(d("1100")))
	assert.Len(t, plan.Updates, 2)
}

func TestBuildPlan_IncomeWithoutContactKeepsBank(t *testing.T) {
	direct := obligation(ledger.KindIncome, "i1", "800", "0", false)
	other := "bank-direct"
	direct.BankAccountID = &other
	st := newState(pos("0", ledger.Payable), "0", direct)

	settle(t, st, ledger.Request{
		ContactID:     contactID,
		BankAccountID: bankID,
		Allocations:   []ledger.Allocation{alloc(ledger.KindIncome, "i1", ledger.Receivable, "300")},
	})

	o, _ := st.Obligation(ledger.Target{Kind: ledger.KindIncome, ID: "i1"})
	require.NotNil(t, o.BankAccountID)
	assert.Equal(t, other, *o.BankAccountID)
	assert.Equal(t, ledger.StatusPending, o.Status)
}

func TestBuildPlan_Errors(t *testing.T) {
	base := func() *ledger.State {
		deleted := purchase("gone", "100", "0")
		deleted.Deleted = true
		return newState(pos("0", ledger.Payable), "100", sale("s1", "1000", "0"), deleted)
	}

	tests := []struct {
		name string
		req  ledger.Request
		code string
	}{
		{
			name: "no allocations",
			req:  ledger.Request{ContactID: contactID, BankAccountID: bankID},
			code: "INVALID_ALLOCATION",
		},
		{
			name: "missing bank",
			req:  ledger.Request{ContactID: contactID, Allocations: []ledger.Allocation{alloc(ledger.KindSale, "s1", ledger.Receivable, "1")}},
			code: "INVALID_INPUT",
		},
		{
			name: "paid amount beyond two decimals",
			req: ledger.Request{
				ContactID: contactID, BankAccountID: bankID,
				Allocations: []ledger.Allocation{alloc(ledger.KindSale, "s1", ledger.Receivable, "333.335")},
			},
			code: "INVALID_INPUT",
		},
		{
			name: "adjustment value beyond two decimals",
			req: ledger.Request{
				ContactID: contactID, BankAccountID: bankID,
				Allocations: []ledger.Allocation{alloc(ledger.KindSale, "s1", ledger.Receivable, "1")},
				Adjustment:  ledger.Adjustment{Type: ledger.AdjustmentDiscount, Value: d("0.001")},
			},
			code: "INVALID_INPUT",
		},
		{
			name: "unknown adjustment",
			req: ledger.Request{
				ContactID: contactID, BankAccountID: bankID,
				Allocations: []ledger.Allocation{alloc(ledger.KindSale, "s1", ledger.Receivable, "1")},
				Adjustment:  ledger.Adjustment{Type: "bonus"},
			},
			code: "INVALID_ADJUSTMENT_TYPE",
		},
		{
			name: "zero paid amount",
			req: ledger.Request{
				ContactID: contactID, BankAccountID: bankID,
				Allocations: []ledger.Allocation{alloc(ledger.KindSale, "s1", ledger.Receivable, "0")},
			},
			code: "INVALID_ALLOCATION",
		},
		{
			name: "direction mismatch",
			req: ledger.Request{
				ContactID: contactID, BankAccountID: bankID,
				Allocations: []ledger.Allocation{alloc(ledger.KindSale, "s1", ledger.Payable, "10")},
			},
			code: "INVALID_ALLOCATION",
		},
		{
			name: "duplicate target",
			req: ledger.Request{
				ContactID: contactID, BankAccountID: bankID,
				Allocations: []ledger.Allocation{
					alloc(ledger.KindSale, "s1", ledger.Receivable, "10"),
					alloc(ledger.KindSale, "s1", ledger.Receivable, "10"),
				},
			},
			code: "INVALID_ALLOCATION",
		},
		{
			name: "two current-balance allocations",
			req: ledger.Request{
				ContactID: contactID, BankAccountID: bankID,
				Allocations: []ledger.Allocation{
					{Target: ledger.CurrentBalance(), Direction: ledger.Payable, PaidAmount: d("1")},
					{Target: ledger.CurrentBalance(), Direction: ledger.Payable, PaidAmount: d("2")},
				},
			},
			code: "INVALID_ALLOCATION",
		},
		{
			name: "unknown target",
			req: ledger.Request{
				ContactID: contactID, BankAccountID: bankID,
				Allocations: []ledger.Allocation{alloc(ledger.KindSale, "nope", ledger.Receivable, "10")},
			},
			code: "TRANSACTION_NOT_FOUND",
		},
		{
			name: "deleted target",
			req: ledger.Request{
				ContactID: contactID, BankAccountID: bankID,
				Allocations: []ledger.Allocation{alloc(ledger.KindPurchase, "gone", ledger.Payable, "10")},
			},
			code: "TRANSACTION_NOT_FOUND",
		},
		{
			name: "exceeds outstanding",
			req: ledger.Request{
				ContactID: contactID, BankAccountID: bankID,
				Allocations: []ledger.Allocation{alloc(ledger.KindSale, "s1", ledger.Receivable, "1000.01")},
			},
			code: "ALLOCATION_EXCEEDS_OUTSTANDING",
		},
		{
			name: "unknown contact",
			req: ledger.Request{
				ContactID: "someone-else", BankAccountID: bankID,
				Allocations: []ledger.Allocation{alloc(ledger.KindSale, "s1", ledger.Receivable, "10")},
			},
			code: "CONTACT_NOT_FOUND",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := base()
			_, err := ledger.BuildPlan(tt.req, st)
			assertCode(t, err, tt.code)

			o, _ := st.Obligation(ledger.Target{Kind: ledger.KindSale, ID: "s1"})
			assert.True(t, o.Paid.IsZero(), "a rejected plan must not touch state")
			assert.Empty(t, st.Changes().Obligations)
		})
	}
}

func TestReverse_InverseLaw(t *testing.T) {
	tests := []struct {
		name     string
		baseline ledger.Position
		allocs   []ledger.Allocation
		adj      ledger.Adjustment
	}{
		{
			name:     "single sale",
			baseline: pos("0", ledger.Payable),
			allocs:   []ledger.Allocation{alloc(ledger.KindSale, "s1", ledger.Receivable, "1000")},
		},
		{
			name:     "partial purchase with discount",
			baseline: pos("0", ledger.Payable),
			allocs:   []ledger.Allocation{alloc(ledger.KindPurchase, "p1", ledger.Payable, "1200")},
			adj:      ledger.Adjustment{Type: ledger.AdjustmentDiscount, Value: d("150")},
		},
		{
			name:     "mixed with surcharge and current balance",
			baseline: pos("500", ledger.Receivable),
			allocs: []ledger.Allocation{
				alloc(ledger.KindSale, "s1", ledger.Receivable, "250.75"),
				alloc(ledger.KindExpense, "e1", ledger.Payable, "99.25"),
				{Target: ledger.CurrentBalance(), Direction: ledger.Receivable, PaidAmount: d("700")},
			},
			adj: ledger.Adjustment{Type: ledger.AdjustmentSurcharge, Value: d("12.5")},
		},
		{
			name:     "extra receipt on a partially paid sale",
			baseline: pos("300", ledger.Payable),
			allocs:   []ledger.Allocation{alloc(ledger.KindSale, "s2", ledger.Receivable, "100")},
			adj:      ledger.Adjustment{Type: ledger.AdjustmentExtraReceipt, Value: d("40")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newState(tt.baseline, "2500",
				sale("s1", "1000", "0"),
				sale("s2", "600", "200"),
				purchase("p1", "5000", "1000"),
				obligation(ledger.KindExpense, "e1", "99.25", "0", true),
			)
			snapshot := func() (ledger.Position, decimal.Decimal, map[ledger.Target]ledger.Obligation) {
				c, _ := st.Contact(contactID)
				b, _ := st.Bank(bankID)
				obs := map[ledger.Target]ledger.Obligation{}
				for _, a := range tt.allocs {
					if !a.Target.IsCurrentBalance() {
						obs[a.Target], _ = st.Obligation(a.Target)
					}
				}
				return c, b, obs
			}
			contactBefore, bankBefore, obsBefore := snapshot()

			plan := settle(t, st, ledger.Request{
				ContactID:     contactID,
				BankAccountID: bankID,
				Allocations:   tt.allocs,
				Adjustment:    tt.adj,
			})
			for target := range obsBefore {
				o, _ := st.Obligation(target)
				assertConserved(t, o)
			}

			amounts, err := ledger.Reverse(settledFrom(plan), st)
			require.NoError(t, err)
			assert.True(t, amounts.BankImpact.Equal(plan.Amounts.BankImpact))

			contactAfter, bankAfter, obsAfter := snapshot()
			assert.True(t, contactAfter.Equal(contactBefore), "contact %+v != %+v", contactAfter, contactBefore)
			assert.True(t, bankAfter.Equal(bankBefore), "bank %s != %s", bankAfter, bankBefore)
			for target, before := range obsBefore {
				after := obsAfter[target]
				assert.True(t, after.Paid.Equal(before.Paid), "%s paid %s != %s", target, after.Paid, before.Paid)
				assert.True(t, after.Remaining.Equal(before.Remaining), "%s remaining %s != %s", target, after.Remaining, before.Remaining)
				assert.Equal(t, before.Status, after.Status, "%s status", target)
				assertConserved(t, after)
			}
		})
	}
}

func TestReverse_MissingTarget(t *testing.T) {
	st := newState(pos("0", ledger.Payable), "0")
	_, err := ledger.Reverse(ledger.Settled{
		ContactID:     contactID,
		BankAccountID: bankID,
		PaymentType:   ledger.PaymentTypeReceipt,
		Amount:        d("10"),
		Allocations:   []ledger.Allocation{alloc(ledger.KindSale, "s9", ledger.Receivable, "10")},
	}, st)
	assertCode(t, err, "TRANSACTION_NOT_FOUND")

	bank, _ := st.Bank(bankID)
	assert.True(t, bank.IsZero(), "failed reversal must not move the bank")
}

func TestStateChanges(t *testing.T) {
	st := newState(pos("0", ledger.Payable), "0", sale("s1", "10", "0"), sale("s0", "10", "0"))
	assert.Empty(t, st.Changes().Banks)

	settle(t, st, ledger.Request{
		ContactID:     contactID,
		BankAccountID: bankID,
		Allocations: []ledger.Allocation{
			alloc(ledger.KindSale, "s1", ledger.Receivable, "5"),
			alloc(ledger.KindSale, "s0", ledger.Receivable, "5"),
		},
	})

	changes := st.Changes()
	assert.Equal(t, []string{bankID}, changes.BankIDs())
	assert.Empty(t, changes.ContactIDs(), "no current-balance allocation, no baseline write")
	require.Len(t, changes.Obligations, 2)
	assert.Equal(t, "s0", changes.Obligations[0].Target.ID)
}

func TestTransfer(t *testing.T) {
	newState := func() *ledger.State {
		st := ledger.NewState()
		st.AddBank("from", d("100"))
		st.AddBank("to", d("5"))
		return st
	}

	t.Run("moves_and_undoes", func(t *testing.T) {
		st := newState()
		require.NoError(t, ledger.Transfer(st, "from", "to", d("100")))

		from, _ := st.Bank("from")
		to, _ := st.Bank("to")
		assert.True(t, from.IsZero(), "got %s", from)
		assert.True(t, to.Equal(d("105")), "got %s", to)
		assert.Equal(t, []string{"from", "to"}, st.Changes().BankIDs())

		require.NoError(t, ledger.UndoTransfer(st, "from", "to", d("100")))
		from, _ = st.Bank("from")
		to, _ = st.Bank("to")
		assert.True(t, from.Equal(d("100")))
		assert.True(t, to.Equal(d("5")))
	})

	tests := []struct {
		name     string
		from, to string
		amount   string
		code     string
	}{
		{"zero", "from", "to", "0", "INVALID_INPUT"},
		{"same_account", "from", "from", "1", "SAME_ACCOUNT_TRANSFER"},
		{"missing_source", "nope", "to", "1", "BANK_ACCOUNT_NOT_FOUND"},
		{"missing_destination", "from", "nope", "1", "BANK_ACCOUNT_NOT_FOUND"},
		{"insufficient", "to", "from", "5.01", "INSUFFICIENT_BALANCE"},
		{"three_decimals", "from", "to", "1.005", "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newState()
			assertCode(t, ledger.Transfer(st, tt.from, tt.to, d(tt.amount)), tt.code)
			assert.Empty(t, st.Changes().BankIDs())
		})
	}
}

func TestCheckScale(t *testing.T) {
	for _, ok := range []string{"0", "1000", "333.33", "0.5", "12.300", "-4.10"} {
		assert.NoError(t, ledger.CheckScale("amount", d(ok)), ok)
	}
	for _, bad := range []string{"333.335", "0.001", "-1.999"} {
		assertCode(t, ledger.CheckScale("amount", d(bad)), "INVALID_INPUT")
	}
}
