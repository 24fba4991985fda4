package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "khata/internal/errors"
	"khata/internal/ledger"
	"khata/internal/models"
)

// obligationTable describes where one obligation kind is stored.
type obligationTable struct {
	table       string
	totalColumn string
	softDelete  bool
}

var obligationTables = map[ledger.Kind]obligationTable{
	ledger.KindSale:     {table: "sales", totalColumn: "net_receivable", softDelete: true},
	ledger.KindPurchase: {table: "purchases", totalColumn: "net_payable", softDelete: true},
	ledger.KindExpense:  {table: "expenses", totalColumn: "amount"},
	ledger.KindIncome:   {table: "incomes", totalColumn: "amount"},
}

// SQLSTATE codes Postgres reports for lock waits that gave up, deadlocks and
// serialization failures.
const (
	pgLockNotAvailable       = "55P03"
	pgDeadlockDetected       = "40P01"
	pgSerializationFailure   = "40001"
	pgTransactionRollbackCls = "40"
)

// dbError classifies a database error. AppErrors pass through, lock
// conflicts become retryable conflicts and everything else is internal.
func dbError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgLockNotAvailable, pgDeadlockDetected, pgSerializationFailure:
			return apperrors.Wrap(apperrors.ErrConcurrencyConflict, err)
		}
		if len(pgErr.Code) == 5 && pgErr.Code[:2] == pgTransactionRollbackCls {
			return apperrors.Wrap(apperrors.ErrConcurrencyConflict, err)
		}
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}

// ledgerStore locks, loads and writes back the rows one ledger operation
// touches. It only lives inside a single database transaction.
//
// Locks are always taken in the same order: payment, contacts, bank
// accounts, then obligation rows kind by kind. Within each group rows are
// locked in id order.
type ledgerStore struct {
	tx        *gorm.DB
	companyID string
}

func newLedgerStore(tx *gorm.DB, companyID string) *ledgerStore {
	return &ledgerStore{tx: tx, companyID: companyID}
}

// setLockTimeout bounds lock waits for the rest of the transaction. Only
// Postgres understands it; other dialects are left alone.
func (s *ledgerStore) setLockTimeout(d time.Duration) error {
	if d <= 0 || s.tx.Dialector.Name() != "postgres" {
		return nil
	}
	stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", d.Milliseconds())
	if err := s.tx.Exec(stmt).Error; err != nil {
		return dbError(err)
	}
	return nil
}

func (s *ledgerStore) forUpdate() *gorm.DB {
	return s.tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// lockPayment locks a payment row, deleted or not, and loads its allocations.
func (s *ledgerStore) lockPayment(paymentID string) (*models.Payment, error) {
	var payment models.Payment
	err := s.forUpdate().Unscoped().
		Where("id = ? AND company_id = ?", paymentID, s.companyID).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, dbError(err)
	}
	if payment.DeletedAt.Valid {
		return nil, apperrors.ErrPaymentDeleted
	}

	if err := s.tx.Where("payment_id = ?", payment.ID).Order("id").Find(&payment.Allocations).Error; err != nil {
		return nil, dbError(err)
	}
	return &payment, nil
}

// loadResult carries what the ledger.State cannot: who owns each loaded
// obligation, which contacts are soft-deleted and which bank accounts are
// closed.
type loadResult struct {
	owners          map[ledger.Target]string
	deletedContacts map[string]bool
	inactiveBanks   map[string]bool
}

// checkActiveBanks rejects new bookings through closed bank accounts.
// Reversals skip this check so money booked earlier can always be undone.
func (r loadResult) checkActiveBanks(ids ...string) error {
	for _, id := range ids {
		if r.inactiveBanks[id] {
			return apperrors.WithMessage(apperrors.ErrBankAccountNotFound,
				fmt.Sprintf("bank account %s is inactive", id))
		}
	}
	return nil
}

// ownedBy reports whether the obligation belongs to contactID. Rows booked
// without a contact belong to nobody and can be settled by anyone.
func (r loadResult) ownedBy(t ledger.Target, contactID string) bool {
	owner, ok := r.owners[t]
	return !ok || owner == contactID
}

type obligationRow struct {
	ID              string
	ContactID       *string
	Total           decimal.Decimal
	PaidAmount      decimal.Decimal
	RemainingAmount decimal.Decimal
	Status          ledger.Status
	BankAccountID   *string
	Deleted         bool
}

// load locks and reads every contact, bank account and obligation a ledger
// operation needs. Missing rows are simply absent from the state, so the
// planner reports them with its own errors. Soft-deleted rows are loaded
// too; reversals must be able to undo settlements against them.
func (s *ledgerStore) load(contactIDs, bankIDs []string, targets []ledger.Target) (*ledger.State, loadResult, error) {
	st := ledger.NewState()
	res := loadResult{
		owners:          make(map[ledger.Target]string),
		deletedContacts: make(map[string]bool),
		inactiveBanks:   make(map[string]bool),
	}

	if ids := uniqueSorted(contactIDs); len(ids) > 0 {
		var contacts []models.Contact
		err := s.forUpdate().Unscoped().
			Where("company_id = ? AND id IN ?", s.companyID, ids).
			Order("id").
			Find(&contacts).Error
		if err != nil {
			return nil, res, dbError(err)
		}
		for i := range contacts {
			st.AddContact(contacts[i].ID, contacts[i].Baseline())
			if contacts[i].DeletedAt.Valid {
				res.deletedContacts[contacts[i].ID] = true
			}
		}
	}

	if ids := uniqueSorted(bankIDs); len(ids) > 0 {
		var banks []models.BankAccount
		err := s.forUpdate().
			Where("company_id = ? AND id IN ?", s.companyID, ids).
			Order("id").
			Find(&banks).Error
		if err != nil {
			return nil, res, dbError(err)
		}
		for i := range banks {
			st.AddBank(banks[i].ID, banks[i].CurrentBalance)
			if !banks[i].IsActive {
				res.inactiveBanks[banks[i].ID] = true
			}
		}
	}

	byKind := make(map[ledger.Kind][]string)
	for _, t := range targets {
		if t.Kind.IsObligation() {
			byKind[t.Kind] = append(byKind[t.Kind], t.ID)
		}
	}
	for _, kind := range ledger.ObligationKinds {
		ids := uniqueSorted(byKind[kind])
		if len(ids) == 0 {
			continue
		}
		rows, err := s.lockObligations(kind, ids)
		if err != nil {
			return nil, res, err
		}
		for _, r := range rows {
			target := ledger.Target{Kind: kind, ID: r.ID}
			st.AddObligation(ledger.Obligation{
				Target:        target,
				Total:         r.Total,
				Paid:          r.PaidAmount,
				Remaining:     r.RemainingAmount,
				Status:        r.Status,
				BankAccountID: r.BankAccountID,
				HasContact:    r.ContactID != nil && *r.ContactID != "",
				Deleted:       r.Deleted,
			})
			if r.ContactID != nil && *r.ContactID != "" {
				res.owners[target] = *r.ContactID
			}
		}
	}

	return st, res, nil
}

// lockObligations locks all rows of one kind with a single query.
func (s *ledgerStore) lockObligations(kind ledger.Kind, ids []string) ([]obligationRow, error) {
	t := obligationTables[kind]
	cols := fmt.Sprintf("id, contact_id, %s AS total, paid_amount, remaining_amount, status, bank_account_id", t.totalColumn)
	if t.softDelete {
		cols += ", deleted_at IS NOT NULL AS deleted"
	}

	var rows []obligationRow
	err := s.forUpdate().
		Table(t.table).
		Select(cols).
		Where("company_id = ? AND id IN ?", s.companyID, ids).
		Order("id").
		Scan(&rows).Error
	if err != nil {
		return nil, dbError(err)
	}
	return rows, nil
}

// flush writes every changed entry of st back.
func (s *ledgerStore) flush(st *ledger.State) error {
	changes := st.Changes()
	now := time.Now()

	for _, id := range changes.ContactIDs() {
		p := changes.Contacts[id]
		err := s.tx.Model(&models.Contact{}).Unscoped().
			Where("id = ? AND company_id = ?", id, s.companyID).
			Updates(map[string]interface{}{
				"opening_balance":      p.Amount,
				"opening_balance_type": p.Direction,
				"updated_at":           now,
			}).Error
		if err != nil {
			return dbError(err)
		}
	}

	for _, id := range changes.BankIDs() {
		err := s.tx.Model(&models.BankAccount{}).
			Where("id = ? AND company_id = ?", id, s.companyID).
			Updates(map[string]interface{}{
				"current_balance": changes.Banks[id],
				"updated_at":      now,
			}).Error
		if err != nil {
			return dbError(err)
		}
	}

	for _, o := range changes.Obligations {
		t := obligationTables[o.Target.Kind]
		err := s.tx.Table(t.table).
			Where("id = ? AND company_id = ?", o.Target.ID, s.companyID).
			Updates(map[string]interface{}{
				"paid_amount":      o.Paid,
				"remaining_amount": o.Remaining,
				"status":           o.Status,
				"bank_account_id":  o.BankAccountID,
				"updated_at":       now,
			}).Error
		if err != nil {
			return dbError(err)
		}
	}
	return nil
}

// refreshSnapshots recomputes the cached current balance of each contact.
// It reads through the transaction so it sees the writes just flushed.
func (s *ledgerStore) refreshSnapshots(contactIDs []string) error {
	for _, id := range uniqueSorted(contactIDs) {
		var contact models.Contact
		err := s.tx.Unscoped().Where("id = ? AND company_id = ?", id, s.companyID).First(&contact).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return dbError(err)
		}
		bal, err := contactBalance(s.tx, s.companyID, &contact)
		if err != nil {
			return err
		}
		err = s.tx.Model(&models.Contact{}).Unscoped().
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"current_balance":      bal.Amount,
				"current_balance_type": bal.Direction,
			}).Error
		if err != nil {
			return dbError(err)
		}
	}
	return nil
}

// fillCurrentBalanceAmounts stores the contact's computed balance as the
// reference amount of every current-balance allocation that names none. It
// must run before anything is flushed so the figure matches the pending
// transactions list.
func (s *ledgerStore) fillCurrentBalanceAmounts(req ledger.Request) error {
	for i, a := range req.Allocations {
		if !a.Target.IsCurrentBalance() || !a.Amount.IsZero() {
			continue
		}
		var contact models.Contact
		err := s.tx.Unscoped().Where("id = ? AND company_id = ?", req.ContactID, s.companyID).First(&contact).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return dbError(err)
		}
		bal, err := contactBalance(s.tx, s.companyID, &contact)
		if err != nil {
			return err
		}
		req.Allocations[i].Amount = bal.Amount
	}
	return nil
}

// contactBalance runs the balance calculator for one contact against db.
func contactBalance(db *gorm.DB, companyID string, contact *models.Contact) (*ledger.Balance, error) {
	var pending ledger.PendingTotals
	for _, kind := range ledger.ObligationKinds {
		t := obligationTables[kind]
		q := db.Table(t.table).
			Where("company_id = ? AND contact_id = ? AND status = ?", companyID, contact.ID, ledger.StatusPending)
		if t.softDelete {
			q = q.Where("deleted_at IS NULL")
		}
		var remaining []decimal.Decimal
		if err := q.Pluck("remaining_amount", &remaining).Error; err != nil {
			return nil, dbError(err)
		}
		for _, r := range remaining {
			pending.Add(kind, r)
		}
	}
	bal := ledger.ComputeBalance(contact.Baseline(), pending)
	return &bal, nil
}

func uniqueSorted(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
