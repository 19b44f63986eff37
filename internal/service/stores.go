package service

import (
	"context"
	"io"
	"time"

	"github.com/pesio-ai/be-ops-workflow/internal/repository"
)

// RecordStore persists financial records. Decide must apply only while the
// record is pending and report INVALID_STATE_TRANSITION otherwise.
type RecordStore interface {
	Create(ctx context.Context, rec *repository.FinancialRecord) error
	GetByID(ctx context.Context, id string) (*repository.FinancialRecord, error)
	List(ctx context.Context, f repository.RecordFilter) ([]*repository.FinancialRecord, int64, error)
	Decide(ctx context.Context, id string, d repository.RecordDecision) (*repository.FinancialRecord, error)
	Delete(ctx context.Context, id string) error
}

// ProductStore persists products and stage history. Create and Advance
// write both atomically; Advance applies only while the product is still at
// the transition's FromStage.
type ProductStore interface {
	Create(ctx context.Context, p *repository.Product, opening *repository.StageHistoryEntry) error
	GetByID(ctx context.Context, id string) (*repository.Product, error)
	List(ctx context.Context, f repository.ProductFilter) ([]*repository.Product, int64, error)
	Advance(ctx context.Context, t repository.StageTransition) (*repository.Product, error)
	ApplyOverride(ctx context.Context, id string, o repository.ProductOverride) (*repository.Product, error)
	History(ctx context.Context, productID string) ([]*repository.StageHistoryEntry, error)
}

// ActivityLog is the append-only activity feed.
type ActivityLog interface {
	Append(ctx context.Context, entry *repository.ActivityEntry) error
	List(ctx context.Context, f repository.ActivityFilter) ([]*repository.ActivityEntry, error)
}

// UserStore persists user profiles.
type UserStore interface {
	Create(ctx context.Context, u *repository.UserProfile) error
	GetByID(ctx context.Context, id string) (*repository.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*repository.UserProfile, error)
	List(ctx context.Context, f repository.UserFilter) ([]*repository.UserProfile, error)
	UpdateApprovalStatus(ctx context.Context, id, status string) error
	UpdateRole(ctx context.Context, id, role string) error
}

// SessionStore persists sign-in sessions.
type SessionStore interface {
	Create(ctx context.Context, s *repository.Session) error
	GetByID(ctx context.Context, id string) (*repository.Session, error)
	Revoke(ctx context.Context, id string, at time.Time) error
}

// VendorStore persists vendors.
type VendorStore interface {
	Create(ctx context.Context, v *repository.Vendor) error
	GetByID(ctx context.Context, id string) (*repository.Vendor, error)
	List(ctx context.Context, f repository.VendorFilter) ([]*repository.Vendor, int64, error)
	Update(ctx context.Context, v *repository.Vendor) error
	Delete(ctx context.Context, id string) error
}

// ChangeSource delivers row change events until ctx is done.
type ChangeSource interface {
	Subscribe(ctx context.Context, f repository.ChangeFilter) (<-chan repository.ChangeEvent, error)
}

// Notifier delivers user notifications. Implementations must not block the
// caller on delivery failures.
type Notifier interface {
	Notify(ctx context.Context, eventType, resourceType, resourceID, actorID string, recipients []string, payload map[string]interface{})
}

// BlobStore stores uploaded files under a path and serves them by URL.
type BlobStore interface {
	Upload(ctx context.Context, path string, body io.Reader, size int64, contentType string) error
	PublicURL(path string) string
}

var (
	_ RecordStore  = (*repository.FinancialRecordRepository)(nil)
	_ ProductStore = (*repository.ProductRepository)(nil)
	_ ActivityLog  = (*repository.ActivityRepository)(nil)
	_ UserStore    = (*repository.UserRepository)(nil)
	_ SessionStore = (*repository.SessionRepository)(nil)
	_ VendorStore  = (*repository.VendorRepository)(nil)
	_ ChangeSource = (*repository.ChangeFeed)(nil)
)

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, string, string, string, string, []string, map[string]interface{}) {
}
