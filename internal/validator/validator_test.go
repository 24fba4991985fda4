package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type sample struct {
	Currency string          `validate:"omitempty,iso4217"`
	IFSC     string          `validate:"omitempty,ifsc"`
	Balance  string          `validate:"omitempty,balance_type"`
	Kind     string          `validate:"omitempty,allocation_type"`
	Contact  string          `validate:"omitempty,contact_type"`
	Amount   decimal.Decimal `validate:"gt=0"`
}

func newValidate() *validator.Validate {
	v := validator.New()
	RegisterOn(v)
	return v
}

func TestCustomValidators(t *testing.T) {
	v := newValidate()
	one := decimal.RequireFromString("0.01")

	tests := []struct {
		name  string
		in    sample
		valid bool
	}{
		{"minimal", sample{Amount: one}, true},
		{"currency", sample{Currency: "INR", Amount: one}, true},
		{"bad_currency", sample{Currency: "RUPEE", Amount: one}, false},
		{"ifsc", sample{IFSC: "HDFC0001234", Amount: one}, true},
		{"ifsc_lower", sample{IFSC: "sbin0abc123", Amount: one}, true},
		{"bad_ifsc", sample{IFSC: "HDFC1001234", Amount: one}, false},
		{"payable", sample{Balance: "payable", Amount: one}, true},
		{"bad_balance", sample{Balance: "owed", Amount: one}, false},
		{"current_balance_kind", sample{Kind: "current-balance", Amount: one}, true},
		{"bad_kind", sample{Kind: "invoice", Amount: one}, false},
		{"vendor", sample{Contact: "vendor", Amount: one}, true},
		{"bad_contact", sample{Contact: "supplier", Amount: one}, false},
		{"zero_amount", sample{}, false},
		{"negative_amount", sample{Amount: decimal.RequireFromString("-5")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if tt.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
