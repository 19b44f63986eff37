package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pesio-ai/be-ops-workflow/internal/repository"
	"github.com/pesio-ai/be-ops-workflow/pkg/errors"
	"github.com/pesio-ai/be-ops-workflow/pkg/logger"
)

// Named approval failures. Callers compare with errors.Is from the standard
// library; transports read the code.
var (
	ErrMissingRejectionReason = &errors.Error{
		Code:    errors.ErrCodeValidation,
		Message: "a rejection reason is required",
		Field:   "rejection_reason",
	}
	ErrAlreadyDecided = &errors.Error{
		Code:    errors.ErrCodeInvalidState,
		Message: "financial record has already been decided",
	}
)

// Decisions accepted by Decide.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

const maxRecordPageSize = 500

// ApprovalService mediates the pending → approved | rejected transition of
// financial records.
type ApprovalService struct {
	records  RecordStore
	users    UserStore
	activity ActivityLog
	notifier Notifier
	log      *logger.Logger
	now      func() time.Time
}

// NewApprovalService creates a new approval service. A nil notifier disables
// notifications.
func NewApprovalService(
	records RecordStore,
	users UserStore,
	activity ActivityLog,
	notifier Notifier,
	log *logger.Logger,
) *ApprovalService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &ApprovalService{
		records:  records,
		users:    users,
		activity: activity,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// SubmitRecordRequest represents a new expense or investment claim.
type SubmitRecordRequest struct {
	Kind            string
	Amount          decimal.Decimal
	TransactionDate string
	Category        string
	VendorID        *string
	ProofURL        *string
	Notes           *string
	SubmittedBy     string
}

// DecideRequest represents an approval decision.
type DecideRequest struct {
	RecordID        string
	Decision        string
	ActingUserID    string
	Comment         *string
	RejectionReason *string
}

// Submit validates and stores a new pending record.
func (s *ApprovalService) Submit(ctx context.Context, req *SubmitRecordRequest) (*repository.FinancialRecord, error) {
	if req.SubmittedBy == "" {
		return nil, errors.Unauthenticated("no acting user")
	}
	if req.Kind != repository.RecordKindExpense && req.Kind != repository.RecordKindInvestment {
		return nil, errors.InvalidInput("kind", "kind must be expense or investment")
	}
	amount, err := ToMinorUnits(req.Amount)
	if err != nil {
		return nil, err
	}
	category := trim(req.Category)
	if category == "" {
		return nil, errors.InvalidInput("category", "category is required")
	}
	// Any calendar date is accepted, including future ones.
	if _, err := time.Parse(time.DateOnly, req.TransactionDate); err != nil {
		return nil, errors.InvalidInput("transaction_date", "transaction date must be YYYY-MM-DD")
	}

	rec := &repository.FinancialRecord{
		Kind:            req.Kind,
		AmountMinor:     amount,
		TransactionDate: req.TransactionDate,
		Category:        category,
		VendorID:        optionalString(req.VendorID),
		ProofURL:        optionalString(req.ProofURL),
		Notes:           optionalString(req.Notes),
		Status:          repository.RecordStatusPending,
		SubmittedBy:     req.SubmittedBy,
	}
	if err := s.records.Create(ctx, rec); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("record_id", rec.ID).
		Str("kind", rec.Kind).
		Int64("amount_minor", rec.AmountMinor).
		Str("submitted_by", rec.SubmittedBy).
		Msg("Financial record submitted")

	actor := displayName(ctx, s.users, req.SubmittedBy)
	appendActivity(ctx, s.activity, s.log, &repository.ActivityEntry{
		ActorID:      req.SubmittedBy,
		Action:       "record_submitted",
		ResourceType: repository.TableFinancialRecords,
		ResourceID:   rec.ID,
		Message:      describeRecord(actor, "submitted", rec),
		Metadata:     map[string]interface{}{"kind": rec.Kind, "amount_minor": rec.AmountMinor},
	})
	s.notifier.Notify(ctx, "record_submitted", "financial_record", rec.ID, req.SubmittedBy,
		adminIDs(ctx, s.users), map[string]interface{}{
			"kind":     rec.Kind,
			"amount":   FormatAmount(rec.AmountMinor),
			"category": rec.Category,
		})

	return rec, nil
}

// Decide approves or rejects a pending record. The actor must be an approved
// admin, a rejection needs a reason, and only pending records can be decided.
// Of two concurrent decisions exactly one succeeds; the other gets
// ErrAlreadyDecided.
func (s *ApprovalService) Decide(ctx context.Context, req *DecideRequest) (*repository.FinancialRecord, error) {
	var status string
	switch req.Decision {
	case DecisionApprove:
		status = repository.RecordStatusApproved
	case DecisionReject:
		status = repository.RecordStatusRejected
	default:
		return nil, errors.InvalidInput("decision", "decision must be approve or reject")
	}

	actor, err := requireAdmin(ctx, s.users, req.ActingUserID)
	if err != nil {
		return nil, err
	}

	reason := optionalString(req.RejectionReason)
	if status == repository.RecordStatusRejected && reason == nil {
		return nil, ErrMissingRejectionReason
	}
	if status == repository.RecordStatusApproved {
		reason = nil
	}

	current, err := s.records.GetByID(ctx, req.RecordID)
	if err != nil {
		return nil, err
	}
	if current.Status != repository.RecordStatusPending {
		return nil, ErrAlreadyDecided
	}

	rec, err := s.records.Decide(ctx, req.RecordID, repository.RecordDecision{
		Status:          status,
		DecidedBy:       actor.ID,
		Comment:         optionalString(req.Comment),
		RejectionReason: reason,
		DecidedAt:       s.now().UTC(),
	})
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeInvalidState) {
			return nil, ErrAlreadyDecided
		}
		return nil, err
	}

	s.log.Info().
		Str("record_id", rec.ID).
		Str("status", rec.Status).
		Str("decided_by", actor.ID).
		Msg("Financial record decided")

	appendActivity(ctx, s.activity, s.log, &repository.ActivityEntry{
		ActorID:      actor.ID,
		Action:       "record_" + rec.Status,
		ResourceType: repository.TableFinancialRecords,
		ResourceID:   rec.ID,
		Message:      describeRecord(actor.Name, rec.Status, rec),
		Metadata:     map[string]interface{}{"status": rec.Status},
	})

	payload := map[string]interface{}{
		"kind":     rec.Kind,
		"amount":   FormatAmount(rec.AmountMinor),
		"category": rec.Category,
	}
	if rec.RejectionReason != nil {
		payload["rejection_reason"] = *rec.RejectionReason
	}
	s.notifier.Notify(ctx, "record_"+rec.Status, "financial_record", rec.ID, actor.ID,
		[]string{rec.SubmittedBy}, payload)

	return rec, nil
}

// Delete permanently removes a record in any status. Admin only.
func (s *ApprovalService) Delete(ctx context.Context, recordID, actingUserID string) error {
	actor, err := requireAdmin(ctx, s.users, actingUserID)
	if err != nil {
		return err
	}

	rec, err := s.records.GetByID(ctx, recordID)
	if err != nil {
		return err
	}
	if err := s.records.Delete(ctx, recordID); err != nil {
		return err
	}

	s.log.Info().
		Str("record_id", recordID).
		Str("status", rec.Status).
		Str("deleted_by", actor.ID).
		Msg("Financial record deleted")

	appendActivity(ctx, s.activity, s.log, &repository.ActivityEntry{
		ActorID:      actor.ID,
		Action:       "record_deleted",
		ResourceType: repository.TableFinancialRecords,
		ResourceID:   recordID,
		Message:      describeRecord(actor.Name, "deleted", rec),
	})
	return nil
}

// Get retrieves a record by ID.
func (s *ApprovalService) Get(ctx context.Context, id string) (*repository.FinancialRecord, error) {
	return s.records.GetByID(ctx, id)
}

// List retrieves records matching the filter.
func (s *ApprovalService) List(ctx context.Context, f repository.RecordFilter) ([]*repository.FinancialRecord, int64, error) {
	if f.Limit < 0 || f.Limit > maxRecordPageSize {
		f.Limit = maxRecordPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.Status != nil {
		switch *f.Status {
		case repository.RecordStatusPending, repository.RecordStatusApproved, repository.RecordStatusRejected:
		default:
			return nil, 0, errors.InvalidInput("status", "unknown status")
		}
	}
	return s.records.List(ctx, f)
}

// describeRecord renders "{actor} {verb} {kind}: {amount} for {category}".
func describeRecord(actor, verb string, rec *repository.FinancialRecord) string {
	return fmt.Sprintf("%s %s %s: %s for %s", actor, verb, rec.Kind, FormatAmount(rec.AmountMinor), rec.Category)
}
