package repository

import "time"

// ── Financial records ────────────────────────────────────────────────────────

const (
	RecordKindExpense    = "expense"
	RecordKindInvestment = "investment"

	RecordStatusPending  = "pending"
	RecordStatusApproved = "approved"
	RecordStatusRejected = "rejected"
)

// FinancialRecord is a claimed expense or investment awaiting or past an
// approval decision. Amounts are minor units (cents).
type FinancialRecord struct {
	ID              string     `json:"id"`
	Kind            string     `json:"kind"`
	AmountMinor     int64      `json:"amount_minor"`
	TransactionDate string     `json:"transaction_date"`
	Category        string     `json:"category"`
	VendorID        *string    `json:"vendor_id,omitempty"`
	ProofURL        *string    `json:"proof_url,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	Status          string     `json:"status"`
	SubmittedBy     string     `json:"submitted_by"`
	ApprovedBy      *string    `json:"approved_by"`
	ApprovalComment *string    `json:"approval_comment,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	DecidedAt       *time.Time `json:"decided_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// RecordDecision is the patch applied by a pending → decided transition.
type RecordDecision struct {
	Status          string
	DecidedBy       string
	Comment         *string
	RejectionReason *string
	DecidedAt       time.Time
}

// RecordFilter narrows a record listing. Nil fields are ignored.
type RecordFilter struct {
	Kind        *string
	Status      *string
	SubmittedBy *string
	FromDate    *string
	ToDate      *string
	Limit       int
	Offset      int
}

// ── Products ─────────────────────────────────────────────────────────────────

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Product is an item moving through the development pipeline.
type Product struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Priority       string    `json:"priority"`
	Stage          string    `json:"stage"`
	Progress       int       `json:"progress"`
	StageEnteredAt time.Time `json:"stage_entered_at"`
	CreatedBy      string    `json:"created_by"`
	AssignedTo     []string  `json:"assigned_to"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// StageHistoryEntry is one interval a product spent in one stage. A nil
// ExitedAt marks the current interval.
type StageHistoryEntry struct {
	ID        string     `json:"id"`
	ProductID string     `json:"product_id"`
	Stage     string     `json:"stage"`
	EnteredAt time.Time  `json:"entered_at"`
	ExitedAt  *time.Time `json:"exited_at"`
	MovedBy   string     `json:"moved_by"`
}

// StageTransition moves a product from FromStage to ToStage. The store
// applies it only if the product is still at FromStage.
type StageTransition struct {
	ProductID string
	FromStage string
	ToStage   string
	Progress  int
	MovedBy   string
	At        time.Time
}

// ProductOverride is an administrative edit. Nil fields are left unchanged;
// a nil AssignedTo keeps the current team.
type ProductOverride struct {
	Name       *string
	Category   *string
	Priority   *string
	Stage      *string
	Progress   *int
	AssignedTo []string
	At         time.Time
}

// ProductFilter narrows a product listing.
type ProductFilter struct {
	Stage      *string
	Priority   *string
	AssignedTo *string
	Limit      int
	Offset     int
}

// ── Activity feed ────────────────────────────────────────────────────────────

// ActivityEntry is one immutable line in the activity feed.
type ActivityEntry struct {
	ID           string                 `json:"id"`
	ActorID      string                 `json:"actor_id"`
	Action       string                 `json:"action"`
	ResourceType string                 `json:"resource_type"`
	ResourceID   string                 `json:"resource_id"`
	Message      string                 `json:"message"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

// ActivityFilter narrows an activity listing.
type ActivityFilter struct {
	ResourceType *string
	ResourceID   *string
	Limit        int
}

// ── Users and sessions ───────────────────────────────────────────────────────

const (
	RoleAdmin   = "admin"
	RolePartner = "partner"

	AccountPending  = "pending"
	AccountApproved = "approved"
	AccountRejected = "rejected"
)

// UserProfile is the application profile layered on an identity.
type UserProfile struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	ApprovalStatus string    `json:"approval_status"`
	PasswordHash   string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsApprovedAdmin reports whether the profile holds elevated privilege.
func (u *UserProfile) IsApprovedAdmin() bool {
	return u != nil && u.Role == RoleAdmin && u.ApprovalStatus == AccountApproved
}

// UserFilter narrows a user listing.
type UserFilter struct {
	Role           *string
	ApprovalStatus *string
}

// Session is a signed-in session; the token id equals the session id.
type Session struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	IssuedAt  time.Time  `json:"issued_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

// Active reports whether the session is usable at t.
func (s *Session) Active(t time.Time) bool {
	return s.RevokedAt == nil && t.Before(s.ExpiresAt)
}

// ── Vendors ──────────────────────────────────────────────────────────────────

// Vendor is a supplier the company buys from.
type Vendor struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContactName *string   `json:"contact_name,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Category    string    `json:"category"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// VendorFilter narrows a vendor listing.
type VendorFilter struct {
	Category *string
	Search   *string
	Limit    int
	Offset   int
}

// ── Change feed ──────────────────────────────────────────────────────────────

const (
	TableFinancialRecords = "financial_records"
	TableProducts         = "products"
	TableStageHistory     = "product_stage_history"
	TableVendors          = "vendors"
	TableActivity         = "activity_log"
	TableUsers            = "users"

	OpInsert = "INSERT"
	OpUpdate = "UPDATE"
	OpDelete = "DELETE"
)

// ChangeEvent announces that a row changed. It carries ids only; consumers
// re-fetch the row.
type ChangeEvent struct {
	Table     string    `json:"table"`
	Operation string    `json:"op"`
	RowID     string    `json:"id"`
	At        time.Time `json:"at"`
}

// ChangeFilter selects events by table and optionally by row.
type ChangeFilter struct {
	Table string
	RowID string
}

// Matches reports whether ev passes the filter. Empty fields match anything.
func (f ChangeFilter) Matches(ev ChangeEvent) bool {
	if f.Table != "" && f.Table != ev.Table {
		return false
	}
	if f.RowID != "" && f.RowID != ev.RowID {
		return false
	}
	return true
}
