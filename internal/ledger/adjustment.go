package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "khata/internal/errors"
)

// AdjustmentType changes how much money actually moves through the bank
// relative to what is settled against the contact.
type AdjustmentType string

const (
	AdjustmentNone         AdjustmentType = "none"
	AdjustmentDiscount     AdjustmentType = "discount"
	AdjustmentExtraReceipt AdjustmentType = "extra_receipt"
	AdjustmentSurcharge    AdjustmentType = "surcharge"
)

// ParseAdjustmentType accepts the empty string as none.
func ParseAdjustmentType(s string) (AdjustmentType, error) {
	t := AdjustmentType(s)
	if s == "" {
		t = AdjustmentNone
	}
	if !t.Valid() {
		return "", apperrors.WithMessage(apperrors.ErrInvalidAdjustmentType,
			fmt.Sprintf("unsupported adjustment type %q", s))
	}
	return t, nil
}

// Valid reports whether t is a known adjustment type.
func (t AdjustmentType) Valid() bool {
	switch t {
	case AdjustmentNone, AdjustmentDiscount, AdjustmentExtraReceipt, AdjustmentSurcharge:
		return true
	}
	return false
}

// Adjustment is an adjustment type with its value.
type Adjustment struct {
	Type  AdjustmentType
	Value decimal.Decimal
}

func (a Adjustment) normalized() (Adjustment, error) {
	if a.Type == "" {
		a.Type = AdjustmentNone
	}
	if !a.Type.Valid() {
		return a, apperrors.WithMessage(apperrors.ErrInvalidAdjustmentType,
			fmt.Sprintf("unsupported adjustment type %q", a.Type))
	}
	if a.Value.IsNegative() {
		return a, apperrors.WithMessage(apperrors.ErrInvalidInput, "adjustment value cannot be negative")
	}
	return a, nil
}

// Amounts are the money figures of one settled payment.
type Amounts struct {
	PaymentType PaymentType     `json:"payment_type"`
	Net         decimal.Decimal `json:"net"`
	Original    decimal.Decimal `json:"original"`
	Adjusted    decimal.Decimal `json:"adjusted"`
	BankImpact  decimal.Decimal `json:"bank_impact"`
}

// ComputeAmounts applies an adjustment to the net of receivable minus payable
// allocations.
//
//	discount:                adjusted = max(0, |net| - value), original = |net|, bank moves adjusted
//	extra_receipt/surcharge: original = |net| + value, adjusted = |net|,         bank moves original
//	none:                    both |net|,                                           bank moves |net|
//
// The bank impact is negative for payments and positive for receipts.
func ComputeAmounts(net decimal.Decimal, adj Adjustment) (Amounts, error) {
	adj, err := adj.normalized()
	if err != nil {
		return Amounts{}, err
	}

	paymentType := PaymentTypeFor(net)
	abs := net.Abs()

	out := Amounts{PaymentType: paymentType, Net: net}
	switch adj.Type {
	case AdjustmentDiscount:
		out.Original = abs
		out.Adjusted = decimal.Max(decimal.Zero, abs.Sub(adj.Value))
		out.BankImpact = out.Adjusted
	case AdjustmentExtraReceipt, AdjustmentSurcharge:
		out.Original = abs.Add(adj.Value)
		out.Adjusted = abs
		out.BankImpact = out.Original
	default:
		out.Original = abs
		out.Adjusted = abs
		out.BankImpact = abs
	}
	out.BankImpact = out.BankImpact.Mul(paymentType.Sign())
	return out, nil
}

// StoredAmounts recomputes the figures of an already settled payment from its
// persisted fields. original is the payment's stored amount.
func StoredAmounts(paymentType PaymentType, original decimal.Decimal, adj Adjustment) (Amounts, error) {
	adj, err := adj.normalized()
	if err != nil {
		return Amounts{}, err
	}
	if !paymentType.Valid() {
		return Amounts{}, apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("unsupported payment type %q", paymentType))
	}

	out := Amounts{PaymentType: paymentType, Original: original}
	switch adj.Type {
	case AdjustmentDiscount:
		out.Adjusted = decimal.Max(decimal.Zero, original.Sub(adj.Value))
		out.BankImpact = out.Adjusted
		out.Net = original
	case AdjustmentExtraReceipt, AdjustmentSurcharge:
		out.Adjusted = original.Sub(adj.Value)
		out.BankImpact = original
		out.Net = out.Adjusted
	default:
		out.Adjusted = original
		out.BankImpact = original
		out.Net = original
	}
	out.BankImpact = out.BankImpact.Mul(paymentType.Sign())
	if paymentType == PaymentTypePayment {
		out.Net = out.Net.Neg()
	}
	return out, nil
}
