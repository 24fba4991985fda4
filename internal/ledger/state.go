package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Obligation is the settleable view of a sale, purchase, expense or income.
type Obligation struct {
	Target        Target
	Total         decimal.Decimal
	Paid          decimal.Decimal
	Remaining     decimal.Decimal
	Status        Status
	BankAccountID *string
	// HasContact is false for incomes recorded directly against a bank.
	HasContact bool
	// Deleted rows can still be reversed but never newly settled.
	Deleted bool
}

// setPaid re-derives remaining, status and the bank reference from a new
// paid amount.
func (o *Obligation) setPaid(paid decimal.Decimal, bankAccountID string) {
	o.Paid = paid
	o.Remaining = o.Total.Sub(paid)
	if o.Remaining.IsNegative() {
		o.Remaining = decimal.Zero
	}
	o.Status = StatusFor(o.Remaining)
	o.deriveBankRef(bankAccountID)
}

// deriveBankRef keeps the invariant "bank reference present iff fully paid
// through that bank". Incomes without a contact were booked straight into a
// bank and keep whatever reference they have.
func (o *Obligation) deriveBankRef(bankAccountID string) {
	if o.Target.Kind == KindIncome && !o.HasContact {
		return
	}
	if o.Status == StatusPaid {
		id := bankAccountID
		o.BankAccountID = &id
		return
	}
	o.BankAccountID = nil
}

// State is the locked slice of the ledger one payment operation works on:
// contact baselines, bank balances and the referenced transactions. It
// records which entries changed so only those are written back.
type State struct {
	contacts    map[string]Position
	banks       map[string]decimal.Decimal
	obligations map[Target]*Obligation

	dirtyContacts    map[string]struct{}
	dirtyBanks       map[string]struct{}
	dirtyObligations map[Target]struct{}
}

// NewState returns an empty State.
func NewState() *State {
	return &State{
		contacts:         make(map[string]Position),
		banks:            make(map[string]decimal.Decimal),
		obligations:      make(map[Target]*Obligation),
		dirtyContacts:    make(map[string]struct{}),
		dirtyBanks:       make(map[string]struct{}),
		dirtyObligations: make(map[Target]struct{}),
	}
}

// AddContact loads a contact's stored baseline.
func (s *State) AddContact(id string, baseline Position) {
	s.contacts[id] = baseline
}

// AddBank loads a bank account's current balance.
func (s *State) AddBank(id string, balance decimal.Decimal) {
	s.banks[id] = balance
}

// AddObligation loads a transaction.
func (s *State) AddObligation(o Obligation) {
	cp := o
	s.obligations[o.Target] = &cp
}

// Contact returns a contact's baseline.
func (s *State) Contact(id string) (Position, bool) {
	p, ok := s.contacts[id]
	return p, ok
}

// Bank returns a bank account's balance.
func (s *State) Bank(id string) (decimal.Decimal, bool) {
	b, ok := s.banks[id]
	return b, ok
}

// Obligation returns a copy of a loaded transaction.
func (s *State) Obligation(t Target) (Obligation, bool) {
	o, ok := s.obligations[t]
	if !ok {
		return Obligation{}, false
	}
	return *o, true
}

func (s *State) setContact(id string, p Position) {
	s.contacts[id] = p
	s.dirtyContacts[id] = struct{}{}
}

func (s *State) moveBank(id string, delta decimal.Decimal) {
	s.banks[id] = s.banks[id].Add(delta)
	s.dirtyBanks[id] = struct{}{}
}

func (s *State) touch(t Target) {
	s.dirtyObligations[t] = struct{}{}
}

// Changes lists every entry modified since the State was loaded, in id order.
type Changes struct {
	Contacts    map[string]Position
	Banks       map[string]decimal.Decimal
	Obligations []Obligation
}

// ContactIDs returns the changed contact ids sorted.
func (c Changes) ContactIDs() []string {
	return sortedKeys(c.Contacts)
}

// BankIDs returns the changed bank account ids sorted.
func (c Changes) BankIDs() []string {
	return sortedKeys(c.Banks)
}

// Changes returns the modified entries.
func (s *State) Changes() Changes {
	out := Changes{
		Contacts: make(map[string]Position, len(s.dirtyContacts)),
		Banks:    make(map[string]decimal.Decimal, len(s.dirtyBanks)),
	}
	for id := range s.dirtyContacts {
		out.Contacts[id] = s.contacts[id]
	}
	for id := range s.dirtyBanks {
		out.Banks[id] = s.banks[id]
	}
	for t := range s.dirtyObligations {
		out.Obligations = append(out.Obligations, *s.obligations[t])
	}
	sort.Slice(out.Obligations, func(i, j int) bool {
		a, b := out.Obligations[i].Target, out.Obligations[j].Target
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.ID < b.ID
	})
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
