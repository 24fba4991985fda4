package ledger

import (
	"github.com/shopspring/decimal"

	apperrors "khata/internal/errors"
)

// Transfer moves amount between two bank accounts loaded in st. The source
// account may not go below zero.
func Transfer(st *State, fromID, toID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if err := CheckScale("amount", amount); err != nil {
		return err
	}
	if fromID == toID {
		return apperrors.ErrSameAccountTransfer
	}
	from, ok := st.Bank(fromID)
	if !ok {
		return apperrors.ErrBankAccountNotFound
	}
	if _, ok := st.Bank(toID); !ok {
		return apperrors.ErrBankAccountNotFound
	}
	if from.LessThan(amount) {
		return apperrors.ErrInsufficientBalance
	}

	st.moveBank(fromID, amount.Neg())
	st.moveBank(toID, amount)
	return nil
}

// UndoTransfer is the exact inverse of Transfer. It never fails on balance:
// undoing restores what was there before.
func UndoTransfer(st *State, fromID, toID string, amount decimal.Decimal) error {
	if _, ok := st.Bank(fromID); !ok {
		return apperrors.ErrBankAccountNotFound
	}
	if _, ok := st.Bank(toID); !ok {
		return apperrors.ErrBankAccountNotFound
	}
	st.moveBank(fromID, amount)
	st.moveBank(toID, amount.Neg())
	return nil
}
