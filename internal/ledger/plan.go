package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "khata/internal/errors"
)

// Allocation is the part of a payment applied to one target.
type Allocation struct {
	Target    Target
	Direction BalanceType
	// Amount is the target's reference total at allocation time.
	Amount     decimal.Decimal
	PaidAmount decimal.Decimal
}

// Request is everything the planner needs to settle one payment.
type Request struct {
	ContactID     string
	BankAccountID string
	Allocations   []Allocation
	Adjustment    Adjustment
}

// Validate checks the request shape. It needs no stored state, so callers run
// it before opening a transaction.
func (r Request) Validate() error {
	if r.ContactID == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "contact ID is required")
	}
	if r.BankAccountID == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "bank account ID is required")
	}
	if err := CheckScale("adjustment value", r.Adjustment.Value); err != nil {
		return err
	}
	if _, err := r.Adjustment.normalized(); err != nil {
		return err
	}
	if len(r.Allocations) == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidAllocation, "at least one allocation is required")
	}

	seen := make(map[Target]struct{}, len(r.Allocations))
	for i, a := range r.Allocations {
		if err := CheckScale(fmt.Sprintf("allocation %d paid amount", i), a.PaidAmount); err != nil {
			return err
		}
		if err := CheckScale(fmt.Sprintf("allocation %d amount", i), a.Amount); err != nil {
			return err
		}
		if err := a.validate(); err != nil {
			return apperrors.WithMessage(apperrors.ErrInvalidAllocation,
				fmt.Sprintf("allocation %d: %s", i, err.Error()))
		}
		if _, dup := seen[a.Target]; dup {
			if a.Target.IsCurrentBalance() {
				return apperrors.WithMessage(apperrors.ErrInvalidAllocation, "only one current-balance allocation is allowed")
			}
			return apperrors.WithMessage(apperrors.ErrInvalidAllocation,
				fmt.Sprintf("%s is allocated more than once", a.Target))
		}
		seen[a.Target] = struct{}{}
	}
	return nil
}

func (a Allocation) validate() error {
	if !a.Target.Kind.Valid() {
		return fmt.Errorf("unsupported transaction type %q", a.Target.Kind)
	}
	if !a.Direction.Valid() {
		return fmt.Errorf("unsupported balance type %q", a.Direction)
	}
	if !a.PaidAmount.IsPositive() {
		return fmt.Errorf("paid amount must be greater than zero")
	}
	if a.Target.IsCurrentBalance() {
		if a.Target.ID != "" {
			return fmt.Errorf("current-balance allocation cannot reference a transaction")
		}
		return nil
	}
	if a.Target.ID == "" {
		return fmt.Errorf("transaction ID is required for %s allocations", a.Target.Kind)
	}
	if a.Direction != a.Target.Kind.Direction() {
		return fmt.Errorf("%s allocations are %s, got %s", a.Target.Kind, a.Target.Kind.Direction(), a.Direction)
	}
	return nil
}

// TargetUpdate is the planned new state of one transaction.
type TargetUpdate struct {
	Target        Target
	PaidBefore    decimal.Decimal
	Paid          decimal.Decimal
	Remaining     decimal.Decimal
	Status        Status
	BankAccountID *string
}

// Plan is a fully computed settlement that has not been applied yet.
type Plan struct {
	ContactID     string
	BankAccountID string
	Adjustment    Adjustment
	Amounts       Amounts
	// Allocations carry the reference Amount filled in from the targets.
	Allocations []Allocation
	Updates     []TargetUpdate
	// Baseline is the contact's new stored baseline; nil when no
	// current-balance allocation is present.
	Baseline *Position
}

// BuildPlan computes the settlement of req against the locked state st. It
// does not modify st.
func BuildPlan(req Request, st *State) (*Plan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	adj, _ := req.Adjustment.normalized()

	baseline, ok := st.Contact(req.ContactID)
	if !ok {
		return nil, apperrors.ErrContactNotFound
	}
	if _, ok := st.Bank(req.BankAccountID); !ok {
		return nil, apperrors.ErrBankAccountNotFound
	}

	receivable, payable := decimal.Zero, decimal.Zero
	for _, a := range req.Allocations {
		if a.Direction == Receivable {
			receivable = receivable.Add(a.PaidAmount)
		} else {
			payable = payable.Add(a.PaidAmount)
		}
	}

	amounts, err := ComputeAmounts(receivable.Sub(payable), adj)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		ContactID:     req.ContactID,
		BankAccountID: req.BankAccountID,
		Adjustment:    adj,
		Amounts:       amounts,
		Allocations:   make([]Allocation, 0, len(req.Allocations)),
	}

	for _, a := range req.Allocations {
		if a.Target.IsCurrentBalance() {
			// Callers with access to pending transactions fill in the
			// computed balance; the stored baseline is the fallback.
			if a.Amount.IsZero() {
				a.Amount = baseline.Amount
			}
			next := baseline.Settle(a.Direction, a.PaidAmount)
			plan.Baseline = &next
			plan.Allocations = append(plan.Allocations, a)
			continue
		}

		o, ok := st.Obligation(a.Target)
		if !ok || o.Deleted {
			return nil, apperrors.WithMessage(apperrors.ErrTransactionNotFound,
				fmt.Sprintf("%s not found", a.Target))
		}
		if a.PaidAmount.GreaterThan(o.Remaining) {
			return nil, apperrors.WithMessage(apperrors.ErrAllocationExceedsOutstanding,
				fmt.Sprintf("%s has %s outstanding, cannot allocate %s", a.Target, o.Remaining, a.PaidAmount))
		}

		before := o.Paid
		o.setPaid(o.Paid.Add(a.PaidAmount), req.BankAccountID)
		plan.Updates = append(plan.Updates, TargetUpdate{
			Target:        a.Target,
			PaidBefore:    before,
			Paid:          o.Paid,
			Remaining:     o.Remaining,
			Status:        o.Status,
			BankAccountID: o.BankAccountID,
		})

		a.Amount = o.Total
		plan.Allocations = append(plan.Allocations, a)
	}

	return plan, nil
}

// Apply writes the plan into st: the bank balance moves by the bank impact,
// the contact baseline is replaced when a current-balance allocation exists,
// and every target takes its planned paid/remaining/status/bank reference.
func (p *Plan) Apply(st *State) error {
	if _, ok := st.Bank(p.BankAccountID); !ok {
		return apperrors.ErrBankAccountNotFound
	}
	if p.Baseline != nil {
		if _, ok := st.Contact(p.ContactID); !ok {
			return apperrors.ErrContactNotFound
		}
	}
	for _, u := range p.Updates {
		if _, ok := st.obligations[u.Target]; !ok {
			return apperrors.WithMessage(apperrors.ErrTransactionNotFound,
				fmt.Sprintf("%s not found", u.Target))
		}
	}

	st.moveBank(p.BankAccountID, p.Amounts.BankImpact)
	if p.Baseline != nil {
		st.setContact(p.ContactID, *p.Baseline)
	}
	for _, u := range p.Updates {
		o := st.obligations[u.Target]
		o.Paid = u.Paid
		o.Remaining = u.Remaining
		o.Status = u.Status
		o.BankAccountID = u.BankAccountID
		st.touch(u.Target)
	}
	return nil
}
