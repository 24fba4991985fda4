package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "khata/internal/errors"
)

// Settled is a payment as it was persisted, with its allocation rows.
type Settled struct {
	ContactID     string
	BankAccountID string
	PaymentType   PaymentType
	// Amount is the stored original (pre-adjustment) amount.
	Amount      decimal.Decimal
	Adjustment  Adjustment
	Allocations []Allocation
}

// Reverse undoes a settled payment in st: the stored bank impact is taken back
// out of the bank, every target loses the paid amount that was allocated to
// it, and a current-balance allocation is moved back out of the contact
// baseline. Calling it twice for the same payment double-reverses; callers
// must guarantee it runs once per update or delete.
func Reverse(s Settled, st *State) (Amounts, error) {
	amounts, err := StoredAmounts(s.PaymentType, s.Amount, s.Adjustment)
	if err != nil {
		return Amounts{}, err
	}

	if _, ok := st.Bank(s.BankAccountID); !ok {
		return Amounts{}, apperrors.ErrBankAccountNotFound
	}
	baseline, ok := st.Contact(s.ContactID)
	if !ok {
		return Amounts{}, apperrors.ErrContactNotFound
	}
	for _, a := range s.Allocations {
		if a.Target.IsCurrentBalance() {
			continue
		}
		if _, ok := st.obligations[a.Target]; !ok {
			return Amounts{}, apperrors.WithMessage(apperrors.ErrTransactionNotFound,
				fmt.Sprintf("allocated %s no longer exists", a.Target))
		}
	}

	st.moveBank(s.BankAccountID, amounts.BankImpact.Neg())

	for _, a := range s.Allocations {
		if a.Target.IsCurrentBalance() {
			baseline = baseline.Unsettle(a.Direction, a.PaidAmount)
			st.setContact(s.ContactID, baseline)
			continue
		}
		o := st.obligations[a.Target]
		paid := decimal.Max(decimal.Zero, o.Paid.Sub(a.PaidAmount))
		o.setPaid(paid, s.BankAccountID)
		st.touch(a.Target)
	}

	return amounts, nil
}
