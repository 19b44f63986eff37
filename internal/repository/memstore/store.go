// Package memstore is an in-process implementation of every store the
// services depend on. It backs the "memory" database driver and the test
// suites, and mirrors the Postgres repositories' conditional-update rules.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pesio-ai/be-ops-workflow/internal/repository"
	"github.com/pesio-ai/be-ops-workflow/pkg/errors"
	"github.com/pesio-ai/be-ops-workflow/pkg/logger"
)

// Store holds all tables behind one mutex.
type Store struct {
	mu       sync.RWMutex
	records  map[string]*repository.FinancialRecord
	products map[string]*repository.Product
	history  map[string][]*repository.StageHistoryEntry
	activity []*repository.ActivityEntry
	users    map[string]*repository.UserProfile
	sessions map[string]*repository.Session
	vendors  map[string]*repository.Vendor

	feed *repository.ChangeFeed
	now  func() time.Time
}

// New creates an empty store.
func New(log *logger.Logger) *Store {
	return &Store{
		records:  make(map[string]*repository.FinancialRecord),
		products: make(map[string]*repository.Product),
		history:  make(map[string][]*repository.StageHistoryEntry),
		users:    make(map[string]*repository.UserProfile),
		sessions: make(map[string]*repository.Session),
		vendors:  make(map[string]*repository.Vendor),
		feed:     repository.NewChangeFeed(nil, log),
		now:      time.Now,
	}
}

// Records returns the financial record table.
func (s *Store) Records() *RecordStore { return &RecordStore{s} }

// Products returns the product and stage history tables.
func (s *Store) Products() *ProductStore { return &ProductStore{s} }

// Activity returns the activity feed.
func (s *Store) Activity() *ActivityLog { return &ActivityLog{s} }

// Users returns the user profile table.
func (s *Store) Users() *UserStore { return &UserStore{s} }

// Sessions returns the session table.
func (s *Store) Sessions() *SessionStore { return &SessionStore{s} }

// Vendors returns the vendor table.
func (s *Store) Vendors() *VendorStore { return &VendorStore{s} }

// Subscribe implements the change feed.
func (s *Store) Subscribe(ctx context.Context, f repository.ChangeFilter) (<-chan repository.ChangeEvent, error) {
	return s.feed.Subscribe(ctx, f)
}

func (s *Store) emit(table, op, id string) {
	s.feed.Publish(repository.ChangeEvent{Table: table, Operation: op, RowID: id, At: s.now().UTC()})
}

func newID() string { return uuid.NewString() }

func page[T any](items []T, limit, offset int) []T {
	if offset > len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// ── Financial records ────────────────────────────────────────────────────────

// RecordStore is the in-memory financial record table.
type RecordStore struct{ s *Store }

func cloneRecord(r *repository.FinancialRecord) *repository.FinancialRecord {
	c := *r
	return &c
}

func (r *RecordStore) Create(_ context.Context, rec *repository.FinancialRecord) error {
	if rec.AmountMinor <= 0 {
		return errors.InvalidInput("amount", "amount must be positive")
	}
	if _, err := time.Parse(time.DateOnly, rec.TransactionDate); err != nil {
		return errors.InvalidInput("transaction_date", "invalid date")
	}

	r.s.mu.Lock()
	if rec.VendorID != nil {
		if _, ok := r.s.vendors[*rec.VendorID]; !ok {
			r.s.mu.Unlock()
			return errors.InvalidInput("vendor_id", "unknown vendor")
		}
	}
	now := r.s.now()
	rec.ID = newID()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	r.s.records[rec.ID] = cloneRecord(rec)
	r.s.mu.Unlock()

	r.s.emit(repository.TableFinancialRecords, repository.OpInsert, rec.ID)
	return nil
}

func (r *RecordStore) GetByID(_ context.Context, id string) (*repository.FinancialRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.records[id]
	if !ok {
		return nil, errors.NotFound("financial_record", id)
	}
	return cloneRecord(rec), nil
}

func (r *RecordStore) List(_ context.Context, f repository.RecordFilter) ([]*repository.FinancialRecord, int64, error) {
	r.s.mu.RLock()
	matched := make([]*repository.FinancialRecord, 0)
	for _, rec := range r.s.records {
		if f.Kind != nil && rec.Kind != *f.Kind {
			continue
		}
		if f.Status != nil && rec.Status != *f.Status {
			continue
		}
		if f.SubmittedBy != nil && rec.SubmittedBy != *f.SubmittedBy {
			continue
		}
		// ISO dates compare lexically
		if f.FromDate != nil && rec.TransactionDate < *f.FromDate {
			continue
		}
		if f.ToDate != nil && rec.TransactionDate > *f.ToDate {
			continue
		}
		matched = append(matched, cloneRecord(rec))
	}
	r.s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].TransactionDate != matched[j].TransactionDate {
			return matched[i].TransactionDate > matched[j].TransactionDate
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return page(matched, f.Limit, f.Offset), int64(len(matched)), nil
}

func (r *RecordStore) Decide(_ context.Context, id string, d repository.RecordDecision) (*repository.FinancialRecord, error) {
	if d.Status == repository.RecordStatusRejected && (d.RejectionReason == nil || strings.TrimSpace(*d.RejectionReason) == "") {
		return nil, errors.InvalidInput("rejection_reason", "rejected records need a reason")
	}

	r.s.mu.Lock()
	rec, ok := r.s.records[id]
	if !ok {
		r.s.mu.Unlock()
		return nil, errors.NotFound("financial_record", id)
	}
	if rec.Status != repository.RecordStatusPending {
		status := rec.Status
		r.s.mu.Unlock()
		return nil, errors.New(errors.ErrCodeInvalidState, "financial record is already "+status)
	}

	decidedAt := d.DecidedAt
	decidedBy := d.DecidedBy
	rec.Status = d.Status
	rec.ApprovedBy = &decidedBy
	rec.ApprovalComment = d.Comment
	rec.RejectionReason = d.RejectionReason
	rec.DecidedAt = &decidedAt
	rec.UpdatedAt = decidedAt
	out := cloneRecord(rec)
	r.s.mu.Unlock()

	r.s.emit(repository.TableFinancialRecords, repository.OpUpdate, id)
	return out, nil
}

func (r *RecordStore) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	if _, ok := r.s.records[id]; !ok {
		r.s.mu.Unlock()
		return errors.NotFound("financial_record", id)
	}
	delete(r.s.records, id)
	r.s.mu.Unlock()

	r.s.emit(repository.TableFinancialRecords, repository.OpDelete, id)
	return nil
}

// ── Products ─────────────────────────────────────────────────────────────────

// ProductStore is the in-memory product and stage history table pair.
type ProductStore struct{ s *Store }

func cloneProduct(p *repository.Product) *repository.Product {
	c := *p
	c.AssignedTo = append([]string{}, p.AssignedTo...)
	return &c
}

func cloneEntry(e *repository.StageHistoryEntry) *repository.StageHistoryEntry {
	c := *e
	return &c
}

func (ps *ProductStore) Create(_ context.Context, p *repository.Product, opening *repository.StageHistoryEntry) error {
	ps.s.mu.Lock()
	p.ID = newID()
	p.CreatedAt = p.StageEnteredAt
	p.UpdatedAt = p.StageEnteredAt
	if p.AssignedTo == nil {
		p.AssignedTo = []string{}
	}
	opening.ID = newID()
	opening.ProductID = p.ID

	ps.s.products[p.ID] = cloneProduct(p)
	ps.s.history[p.ID] = []*repository.StageHistoryEntry{cloneEntry(opening)}
	ps.s.mu.Unlock()

	ps.s.emit(repository.TableProducts, repository.OpInsert, p.ID)
	ps.s.emit(repository.TableStageHistory, repository.OpInsert, opening.ID)
	return nil
}

func (ps *ProductStore) GetByID(_ context.Context, id string) (*repository.Product, error) {
	ps.s.mu.RLock()
	defer ps.s.mu.RUnlock()

	p, ok := ps.s.products[id]
	if !ok {
		return nil, errors.NotFound("product", id)
	}
	return cloneProduct(p), nil
}

var priorityRank = map[string]int{
	repository.PriorityHigh:   0,
	repository.PriorityMedium: 1,
	repository.PriorityLow:    2,
}

func (ps *ProductStore) List(_ context.Context, f repository.ProductFilter) ([]*repository.Product, int64, error) {
	ps.s.mu.RLock()
	matched := make([]*repository.Product, 0)
	for _, p := range ps.s.products {
		if f.Stage != nil && p.Stage != *f.Stage {
			continue
		}
		if f.Priority != nil && p.Priority != *f.Priority {
			continue
		}
		if f.AssignedTo != nil && !contains(p.AssignedTo, *f.AssignedTo) {
			continue
		}
		matched = append(matched, cloneProduct(p))
	}
	ps.s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		ri, rj := priorityRank[matched[i].Priority], priorityRank[matched[j].Priority]
		if ri != rj {
			return ri < rj
		}
		return matched[i].StageEnteredAt.After(matched[j].StageEnteredAt)
	})
	return page(matched, f.Limit, f.Offset), int64(len(matched)), nil
}

func (ps *ProductStore) Advance(_ context.Context, t repository.StageTransition) (*repository.Product, error) {
	ps.s.mu.Lock()
	p, ok := ps.s.products[t.ProductID]
	if !ok {
		ps.s.mu.Unlock()
		return nil, errors.NotFound("product", t.ProductID)
	}
	if p.Stage != t.FromStage {
		stage := p.Stage
		ps.s.mu.Unlock()
		return nil, errors.New(errors.ErrCodeInvalidState, "product moved to '"+stage+"' concurrently")
	}

	p.Stage = t.ToStage
	p.Progress = t.Progress
	p.StageEnteredAt = t.At
	p.UpdatedAt = t.At

	var closed []string
	for _, e := range ps.s.history[t.ProductID] {
		if e.ExitedAt == nil {
			at := t.At
			e.ExitedAt = &at
			closed = append(closed, e.ID)
		}
	}
	opened := &repository.StageHistoryEntry{
		ID:        newID(),
		ProductID: t.ProductID,
		Stage:     t.ToStage,
		EnteredAt: t.At,
		MovedBy:   t.MovedBy,
	}
	ps.s.history[t.ProductID] = append(ps.s.history[t.ProductID], opened)
	out := cloneProduct(p)
	ps.s.mu.Unlock()

	ps.s.emit(repository.TableProducts, repository.OpUpdate, t.ProductID)
	for _, id := range closed {
		ps.s.emit(repository.TableStageHistory, repository.OpUpdate, id)
	}
	ps.s.emit(repository.TableStageHistory, repository.OpInsert, opened.ID)
	return out, nil
}

func (ps *ProductStore) ApplyOverride(_ context.Context, id string, o repository.ProductOverride) (*repository.Product, error) {
	ps.s.mu.Lock()
	p, ok := ps.s.products[id]
	if !ok {
		ps.s.mu.Unlock()
		return nil, errors.NotFound("product", id)
	}

	if o.Name != nil {
		p.Name = *o.Name
	}
	if o.Category != nil {
		p.Category = *o.Category
	}
	if o.Priority != nil {
		p.Priority = *o.Priority
	}
	if o.Stage != nil && *o.Stage != p.Stage {
		p.Stage = *o.Stage
		p.StageEnteredAt = o.At
	}
	if o.Progress != nil {
		p.Progress = *o.Progress
	}
	if o.AssignedTo != nil {
		p.AssignedTo = append([]string{}, o.AssignedTo...)
	}
	p.UpdatedAt = o.At
	out := cloneProduct(p)
	ps.s.mu.Unlock()

	ps.s.emit(repository.TableProducts, repository.OpUpdate, id)
	return out, nil
}

func (ps *ProductStore) History(_ context.Context, productID string) ([]*repository.StageHistoryEntry, error) {
	ps.s.mu.RLock()
	defer ps.s.mu.RUnlock()

	entries := make([]*repository.StageHistoryEntry, 0, len(ps.s.history[productID]))
	for _, e := range ps.s.history[productID] {
		entries = append(entries, cloneEntry(e))
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].EnteredAt.Before(entries[j].EnteredAt)
	})
	return entries, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// ── Activity feed ────────────────────────────────────────────────────────────

// ActivityLog is the in-memory activity feed.
type ActivityLog struct{ s *Store }

func (a *ActivityLog) Append(_ context.Context, entry *repository.ActivityEntry) error {
	a.s.mu.Lock()
	entry.ID = newID()
	entry.CreatedAt = a.s.now()
	c := *entry
	a.s.activity = append(a.s.activity, &c)
	a.s.mu.Unlock()

	a.s.emit(repository.TableActivity, repository.OpInsert, entry.ID)
	return nil
}

func (a *ActivityLog) List(_ context.Context, f repository.ActivityFilter) ([]*repository.ActivityEntry, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}

	a.s.mu.RLock()
	defer a.s.mu.RUnlock()

	entries := make([]*repository.ActivityEntry, 0)
	for i := len(a.s.activity) - 1; i >= 0 && len(entries) < limit; i-- {
		e := a.s.activity[i]
		if f.ResourceType != nil && e.ResourceType != *f.ResourceType {
			continue
		}
		if f.ResourceID != nil && e.ResourceID != *f.ResourceID {
			continue
		}
		c := *e
		entries = append(entries, &c)
	}
	return entries, nil
}

// ── Users and sessions ───────────────────────────────────────────────────────

// UserStore is the in-memory user profile table.
type UserStore struct{ s *Store }

func (u *UserStore) Create(_ context.Context, p *repository.UserProfile) error {
	u.s.mu.Lock()
	for _, existing := range u.s.users {
		if existing.Email == p.Email {
			u.s.mu.Unlock()
			return errors.New(errors.ErrCodeConflict, "email already registered")
		}
	}
	now := u.s.now()
	p.ID = newID()
	p.CreatedAt = now
	p.UpdatedAt = now
	c := *p
	u.s.users[p.ID] = &c
	u.s.mu.Unlock()

	u.s.emit(repository.TableUsers, repository.OpInsert, p.ID)
	return nil
}

func (u *UserStore) GetByID(_ context.Context, id string) (*repository.UserProfile, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	p, ok := u.s.users[id]
	if !ok {
		return nil, errors.NotFound("user", id)
	}
	c := *p
	return &c, nil
}

func (u *UserStore) GetByEmail(_ context.Context, email string) (*repository.UserProfile, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	for _, p := range u.s.users {
		if p.Email == email {
			c := *p
			return &c, nil
		}
	}
	return nil, errors.NotFound("user", email)
}

func (u *UserStore) List(_ context.Context, f repository.UserFilter) ([]*repository.UserProfile, error) {
	u.s.mu.RLock()
	users := make([]*repository.UserProfile, 0, len(u.s.users))
	for _, p := range u.s.users {
		if f.Role != nil && p.Role != *f.Role {
			continue
		}
		if f.ApprovalStatus != nil && p.ApprovalStatus != *f.ApprovalStatus {
			continue
		}
		c := *p
		users = append(users, &c)
	}
	u.s.mu.RUnlock()

	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func (u *UserStore) UpdateApprovalStatus(_ context.Context, id, status string) error {
	return u.update(id, func(p *repository.UserProfile) { p.ApprovalStatus = status })
}

func (u *UserStore) UpdateRole(_ context.Context, id, role string) error {
	return u.update(id, func(p *repository.UserProfile) { p.Role = role })
}

func (u *UserStore) update(id string, fn func(*repository.UserProfile)) error {
	u.s.mu.Lock()
	p, ok := u.s.users[id]
	if !ok {
		u.s.mu.Unlock()
		return errors.NotFound("user", id)
	}
	fn(p)
	p.UpdatedAt = u.s.now()
	u.s.mu.Unlock()

	u.s.emit(repository.TableUsers, repository.OpUpdate, id)
	return nil
}

// SessionStore is the in-memory session table.
type SessionStore struct{ s *Store }

func (ss *SessionStore) Create(_ context.Context, sess *repository.Session) error {
	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()

	if _, ok := ss.s.sessions[sess.ID]; ok {
		return errors.New(errors.ErrCodeConflict, "session already exists")
	}
	c := *sess
	ss.s.sessions[sess.ID] = &c
	return nil
}

func (ss *SessionStore) GetByID(_ context.Context, id string) (*repository.Session, error) {
	ss.s.mu.RLock()
	defer ss.s.mu.RUnlock()

	sess, ok := ss.s.sessions[id]
	if !ok {
		return nil, errors.NotFound("session", id)
	}
	c := *sess
	return &c, nil
}

func (ss *SessionStore) Revoke(_ context.Context, id string, at time.Time) error {
	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()

	sess, ok := ss.s.sessions[id]
	if !ok {
		return errors.NotFound("session", id)
	}
	if sess.RevokedAt == nil {
		sess.RevokedAt = &at
	}
	return nil
}

// ── Vendors ──────────────────────────────────────────────────────────────────

// VendorStore is the in-memory vendor table.
type VendorStore struct{ s *Store }

func (vs *VendorStore) Create(_ context.Context, v *repository.Vendor) error {
	vs.s.mu.Lock()
	now := vs.s.now()
	v.ID = newID()
	v.CreatedAt = now
	v.UpdatedAt = now
	c := *v
	vs.s.vendors[v.ID] = &c
	vs.s.mu.Unlock()

	vs.s.emit(repository.TableVendors, repository.OpInsert, v.ID)
	return nil
}

func (vs *VendorStore) GetByID(_ context.Context, id string) (*repository.Vendor, error) {
	vs.s.mu.RLock()
	defer vs.s.mu.RUnlock()

	v, ok := vs.s.vendors[id]
	if !ok {
		return nil, errors.NotFound("vendor", id)
	}
	c := *v
	return &c, nil
}

func (vs *VendorStore) List(_ context.Context, f repository.VendorFilter) ([]*repository.Vendor, int64, error) {
	var search string
	if f.Search != nil {
		search = strings.ToLower(*f.Search)
	}

	vs.s.mu.RLock()
	matched := make([]*repository.Vendor, 0)
	for _, v := range vs.s.vendors {
		if f.Category != nil && v.Category != *f.Category {
			continue
		}
		if search != "" {
			contact := ""
			if v.ContactName != nil {
				contact = *v.ContactName
			}
			if !strings.Contains(strings.ToLower(v.Name), search) && !strings.Contains(strings.ToLower(contact), search) {
				continue
			}
		}
		c := *v
		matched = append(matched, &c)
	}
	vs.s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return page(matched, f.Limit, f.Offset), int64(len(matched)), nil
}

func (vs *VendorStore) Update(_ context.Context, v *repository.Vendor) error {
	vs.s.mu.Lock()
	existing, ok := vs.s.vendors[v.ID]
	if !ok {
		vs.s.mu.Unlock()
		return errors.NotFound("vendor", v.ID)
	}
	v.CreatedBy = existing.CreatedBy
	v.CreatedAt = existing.CreatedAt
	v.UpdatedAt = vs.s.now()
	c := *v
	vs.s.vendors[v.ID] = &c
	vs.s.mu.Unlock()

	vs.s.emit(repository.TableVendors, repository.OpUpdate, v.ID)
	return nil
}

func (vs *VendorStore) Delete(_ context.Context, id string) error {
	vs.s.mu.Lock()
	if _, ok := vs.s.vendors[id]; !ok {
		vs.s.mu.Unlock()
		return errors.NotFound("vendor", id)
	}
	delete(vs.s.vendors, id)
	for _, rec := range vs.s.records {
		if rec.VendorID != nil && *rec.VendorID == id {
			rec.VendorID = nil
		}
	}
	vs.s.mu.Unlock()

	vs.s.emit(repository.TableVendors, repository.OpDelete, id)
	return nil
}
