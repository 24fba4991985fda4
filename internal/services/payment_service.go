package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "khata/internal/errors"
	"khata/internal/ledger"
	"khata/internal/logger"
	"khata/internal/models"
	"khata/internal/pagination"
	"khata/internal/uuid"
)

// paymentService runs the payment lifecycle: every create, update and delete
// settles or reverses the ledger inside one database transaction.
type paymentService struct {
	db   *gorm.DB
	opts PaymentOptions
}

// NewPaymentService creates a new PaymentServicer.
func NewPaymentService(db *gorm.DB, opts PaymentOptions) PaymentServicer {
	return &paymentService{db: db, opts: opts}
}

// request turns the input into a validated ledger request. Nothing here needs
// the database, so bad input is rejected before any lock is taken.
func (in PaymentInput) request() (ledger.Request, error) {
	adjType, err := ledger.ParseAdjustmentType(in.AdjustmentType)
	if err != nil {
		return ledger.Request{}, err
	}

	req := ledger.Request{
		ContactID:     in.ContactID,
		BankAccountID: in.BankAccountID,
		Adjustment:    ledger.Adjustment{Type: adjType, Value: in.AdjustmentValue},
		Allocations:   make([]ledger.Allocation, 0, len(in.Allocations)),
	}
	for i, a := range in.Allocations {
		target, err := allocationTarget(a)
		if err != nil {
			return ledger.Request{}, apperrors.WithMessage(apperrors.ErrInvalidAllocation,
				fmt.Sprintf("allocation %d: %s", i, err.Error()))
		}
		req.Allocations = append(req.Allocations, ledger.Allocation{
			Target:     target,
			Direction:  a.Type,
			Amount:     a.Amount,
			PaidAmount: a.PaidAmount,
		})
	}

	if err := req.Validate(); err != nil {
		return ledger.Request{}, err
	}

	// Non-UUID ids can never match a row.
	if !uuid.IsValid(req.ContactID) {
		return ledger.Request{}, apperrors.ErrContactNotFound
	}
	if !uuid.IsValid(req.BankAccountID) {
		return ledger.Request{}, apperrors.ErrBankAccountNotFound
	}
	for _, a := range req.Allocations {
		if !a.Target.IsCurrentBalance() && !uuid.IsValid(a.Target.ID) {
			return ledger.Request{}, apperrors.WithMessage(apperrors.ErrTransactionNotFound,
				fmt.Sprintf("%s not found", a.Target))
		}
	}
	return req, nil
}

// allocationTarget reads the tagged target of one allocation. Clients name
// the current balance either by type or by the "current-balance" id.
func allocationTarget(a AllocationInput) (ledger.Target, error) {
	kind := a.TransactionType
	if kind == "" && a.TransactionID == ledger.CurrentBalanceID {
		kind = ledger.KindCurrentBalance
	}
	if kind == ledger.KindCurrentBalance {
		if a.TransactionID != "" && a.TransactionID != ledger.CurrentBalanceID {
			return ledger.Target{}, fmt.Errorf("current-balance allocation cannot reference transaction %s", a.TransactionID)
		}
		return ledger.CurrentBalance(), nil
	}
	if a.TransactionID == ledger.CurrentBalanceID {
		return ledger.Target{}, fmt.Errorf("transaction type %q cannot target the current balance", kind)
	}
	return ledger.Target{Kind: kind, ID: a.TransactionID}, nil
}

func requestTargets(req ledger.Request) []ledger.Target {
	targets := make([]ledger.Target, 0, len(req.Allocations))
	for _, a := range req.Allocations {
		targets = append(targets, a.Target)
	}
	return targets
}

// checkOwnership rejects settling a deleted contact or another contact's
// transactions.
func checkOwnership(req ledger.Request, res loadResult) error {
	if res.deletedContacts[req.ContactID] {
		return apperrors.ErrContactNotFound
	}
	for _, a := range req.Allocations {
		if a.Target.IsCurrentBalance() {
			continue
		}
		if !res.ownedBy(a.Target, req.ContactID) {
			return apperrors.WithMessage(apperrors.ErrTransactionNotFound,
				fmt.Sprintf("%s does not belong to the contact", a.Target))
		}
	}
	return nil
}

// bankBalances snapshots the balances of the given accounts.
func bankBalances(st *ledger.State, ids ...string) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(ids))
	for _, id := range ids {
		if b, ok := st.Bank(id); ok {
			out[id] = b
		}
	}
	return out
}

// checkOverdraft fails when overdrafts are disabled and a bank account was
// pushed below zero. Accounts that were already negative may still move up.
func (s *paymentService) checkOverdraft(st *ledger.State, before map[string]decimal.Decimal) error {
	if s.opts.AllowOverdraft {
		return nil
	}
	changes := st.Changes()
	for _, id := range changes.BankIDs() {
		after := changes.Banks[id]
		if after.IsNegative() && after.LessThan(before[id]) {
			return apperrors.WithMessage(apperrors.ErrInsufficientBalance,
				fmt.Sprintf("bank account balance would drop to %s", after.StringFixed(2)))
		}
	}
	return nil
}

// settle plans req against st, applies it and builds the allocation rows
// for paymentID.
func (s *paymentService) settle(st *ledger.State, req ledger.Request, paymentID string) (*ledger.Plan, []models.PaymentAllocation, error) {
	plan, err := ledger.BuildPlan(req, st)
	if err != nil {
		return nil, nil, err
	}
	if err := plan.Apply(st); err != nil {
		return nil, nil, err
	}

	rows := make([]models.PaymentAllocation, 0, len(plan.Allocations))
	for _, a := range plan.Allocations {
		rows = append(rows, models.NewPaymentAllocation(paymentID, a))
	}
	return plan, rows, nil
}

// CreatePayment settles a new payment.
func (s *paymentService) CreatePayment(companyID string, in PaymentInput) (*models.Payment, error) {
	req, err := in.request()
	if err != nil {
		return nil, err
	}
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	payment := &models.Payment{
		Base:          models.Base{ID: uuid.New()},
		CompanyID:     companyID,
		ContactID:     req.ContactID,
		BankAccountID: req.BankAccountID,
		Date:          date,
		Description:   in.Description,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		store := newLedgerStore(tx, companyID)
		if err := store.setLockTimeout(s.opts.LockTimeout); err != nil {
			return err
		}

		st, res, err := store.load([]string{req.ContactID}, []string{req.BankAccountID}, requestTargets(req))
		if err != nil {
			return err
		}
		if err := checkOwnership(req, res); err != nil {
			return err
		}
		if err := res.checkActiveBanks(req.BankAccountID); err != nil {
			return err
		}
		if err := store.fillCurrentBalanceAmounts(req); err != nil {
			return err
		}
		before := bankBalances(st, req.BankAccountID)

		plan, rows, err := s.settle(st, req, payment.ID)
		if err != nil {
			return err
		}
		if err := s.checkOverdraft(st, before); err != nil {
			return err
		}
		if err := store.flush(st); err != nil {
			return err
		}

		payment.Amount = plan.Amounts.Original
		payment.PaymentType = plan.Amounts.PaymentType
		payment.AdjustmentType = plan.Adjustment.Type
		payment.AdjustmentValue = plan.Adjustment.Value
		if err := tx.Omit("Allocations").Create(payment).Error; err != nil {
			return dbError(err)
		}
		if err := tx.Create(&rows).Error; err != nil {
			return dbError(err)
		}
		payment.Allocations = rows

		return store.refreshSnapshots([]string{req.ContactID})
	})
	if err != nil {
		return nil, dbError(err)
	}

	s.notify(PaymentCreated, payment)
	return payment, nil
}

// UpdatePayment reverses a payment's old settlement and settles the new
// input in its place.
func (s *paymentService) UpdatePayment(companyID, paymentID string, in PaymentInput) (*models.Payment, error) {
	if !uuid.IsValid(paymentID) {
		return nil, apperrors.ErrPaymentNotFound
	}
	req, err := in.request()
	if err != nil {
		return nil, err
	}

	var payment *models.Payment
	err = s.db.Transaction(func(tx *gorm.DB) error {
		store := newLedgerStore(tx, companyID)
		if err := store.setLockTimeout(s.opts.LockTimeout); err != nil {
			return err
		}

		old, err := store.lockPayment(paymentID)
		if err != nil {
			return err
		}
		settled := old.Settled()

		targets := requestTargets(req)
		for _, a := range settled.Allocations {
			targets = append(targets, a.Target)
		}
		st, res, err := store.load(
			[]string{old.ContactID, req.ContactID},
			[]string{old.BankAccountID, req.BankAccountID},
			targets,
		)
		if err != nil {
			return err
		}
		if err := store.fillCurrentBalanceAmounts(req); err != nil {
			return err
		}
		before := bankBalances(st, old.BankAccountID, req.BankAccountID)

		if _, err := ledger.Reverse(settled, st); err != nil {
			return err
		}
		if err := tx.Where("payment_id = ?", old.ID).Delete(&models.PaymentAllocation{}).Error; err != nil {
			return dbError(err)
		}

		if err := checkOwnership(req, res); err != nil {
			return err
		}
		if err := res.checkActiveBanks(req.BankAccountID); err != nil {
			return err
		}
		plan, rows, err := s.settle(st, req, old.ID)
		if err != nil {
			return err
		}
		if err := s.checkOverdraft(st, before); err != nil {
			return err
		}
		if err := store.flush(st); err != nil {
			return err
		}

		date := in.Date
		if date.IsZero() {
			date = old.Date
		}
		err = tx.Model(old).Omit("Allocations").Updates(map[string]interface{}{
			"contact_id":       req.ContactID,
			"bank_account_id":  req.BankAccountID,
			"date":             date,
			"amount":           plan.Amounts.Original,
			"payment_type":     plan.Amounts.PaymentType,
			"adjustment_type":  plan.Adjustment.Type,
			"adjustment_value": plan.Adjustment.Value,
			"description":      in.Description,
		}).Error
		if err != nil {
			return dbError(err)
		}
		if err := tx.Create(&rows).Error; err != nil {
			return dbError(err)
		}

		if err := store.refreshSnapshots([]string{old.ContactID, req.ContactID}); err != nil {
			return err
		}

		payment = &models.Payment{}
		if err := tx.Preload("Allocations", orderByID).Where("id = ?", old.ID).First(payment).Error; err != nil {
			return dbError(err)
		}
		return nil
	})
	if err != nil {
		return nil, dbError(err)
	}

	s.notify(PaymentUpdated, payment)
	return payment, nil
}

// DeletePayment reverses a payment and soft-deletes it. The returned payment
// carries the allocations that were reversed.
func (s *paymentService) DeletePayment(companyID, paymentID string) (*models.Payment, error) {
	if !uuid.IsValid(paymentID) {
		return nil, apperrors.ErrPaymentNotFound
	}

	var payment *models.Payment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		store := newLedgerStore(tx, companyID)
		if err := store.setLockTimeout(s.opts.LockTimeout); err != nil {
			return err
		}

		old, err := store.lockPayment(paymentID)
		if err != nil {
			return err
		}
		settled := old.Settled()

		targets := make([]ledger.Target, 0, len(settled.Allocations))
		for _, a := range settled.Allocations {
			targets = append(targets, a.Target)
		}
		st, _, err := store.load([]string{old.ContactID}, []string{old.BankAccountID}, targets)
		if err != nil {
			return err
		}

		if _, err := ledger.Reverse(settled, st); err != nil {
			return err
		}
		if err := store.flush(st); err != nil {
			return err
		}
		if err := tx.Where("payment_id = ?", old.ID).Delete(&models.PaymentAllocation{}).Error; err != nil {
			return dbError(err)
		}
		if err := tx.Omit("Allocations").Delete(old).Error; err != nil {
			return dbError(err)
		}
		if err := store.refreshSnapshots([]string{old.ContactID}); err != nil {
			return err
		}

		payment = old
		return nil
	})
	if err != nil {
		return nil, dbError(err)
	}

	s.notify(PaymentDeleted, payment)
	return payment, nil
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

// GetPaymentByID retrieves an active payment with its allocations.
func (s *paymentService) GetPaymentByID(companyID, paymentID string) (*models.Payment, error) {
	if !uuid.IsValid(paymentID) {
		return nil, apperrors.ErrPaymentNotFound
	}

	var payment models.Payment
	err := s.db.Preload("Allocations", orderByID).
		Where("id = ? AND company_id = ?", paymentID, companyID).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &payment, nil
}

// GetCompanyPayments retrieves a paginated, filtered list of active payments.
func (s *paymentService) GetCompanyPayments(companyID string, page pagination.PageRequest, filter PaymentFilter) (*pagination.PageResponse[models.Payment], error) {
	base := s.db.Model(&models.Payment{}).Where("company_id = ?", companyID)
	base = applyPaymentFilters(base, filter)

	result, err := pagination.Fetch[models.Payment](base, page,
		pagination.OrderBy("date DESC", "id DESC"),
		func(q *gorm.DB) *gorm.DB { return q.Preload("Allocations", orderByID) },
	)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return result, nil
}

func applyPaymentFilters(q *gorm.DB, f PaymentFilter) *gorm.DB {
	if f.ContactID != nil {
		q = q.Where("contact_id = ?", *f.ContactID)
	}
	if f.BankAccountID != nil {
		q = q.Where("bank_account_id = ?", *f.BankAccountID)
	}
	if f.PaymentType != nil {
		q = q.Where("payment_type = ?", *f.PaymentType)
	}
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}
	return q
}

// notify hands a committed payment to every observer on its own goroutine.
// A failing or panicking observer is logged and otherwise ignored.
func (s *paymentService) notify(event PaymentEvent, payment *models.Payment) {
	for _, o := range s.opts.Observers {
		go func(o PaymentObserver) {
			defer func() {
				if r := recover(); r != nil {
					logger.Get().Errorw("payment observer panicked",
						"event", event,
						"payment_id", payment.ID,
						"panic", r,
					)
				}
			}()
			if err := o.PaymentCommitted(event, payment); err != nil {
				logger.Get().Errorw("payment observer failed",
					"event", event,
					"payment_id", payment.ID,
					"error", err,
				)
			}
		}(o)
	}
}
