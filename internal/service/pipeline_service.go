package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pesio-ai/be-ops-workflow/internal/repository"
	"github.com/pesio-ai/be-ops-workflow/pkg/errors"
	"github.com/pesio-ai/be-ops-workflow/pkg/logger"
)

// ErrAlreadyTerminal is returned when advancing a launched product.
var ErrAlreadyTerminal = &errors.Error{
	Code:    errors.ErrCodeInvalidState,
	Message: "product is already launched",
}

// PipelineService moves products through the fixed stage order one step at
// a time and keeps the stage history ledger.
type PipelineService struct {
	products ProductStore
	users    UserStore
	activity ActivityLog
	notifier Notifier
	log      *logger.Logger
	now      func() time.Time
}

// NewPipelineService creates a new pipeline service.
func NewPipelineService(
	products ProductStore,
	users UserStore,
	activity ActivityLog,
	notifier Notifier,
	log *logger.Logger,
) *PipelineService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &PipelineService{
		products: products,
		users:    users,
		activity: activity,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// CreateProductRequest represents a new product idea.
type CreateProductRequest struct {
	Name       string
	Category   string
	Priority   string
	CreatedBy  string
	AssignedTo []string
}

// OverrideProductRequest is an administrative edit. Nil fields are kept.
type OverrideProductRequest struct {
	ProductID    string
	ActingUserID string
	Name         *string
	Category     *string
	Priority     *string
	Stage        *string
	Progress     *int
	AssignedTo   []string
}

// Create stores a product at the first stage with progress 0 and opens its
// first history entry.
func (s *PipelineService) Create(ctx context.Context, req *CreateProductRequest) (*repository.Product, error) {
	if req.CreatedBy == "" {
		return nil, errors.Unauthenticated("no acting user")
	}
	name := trim(req.Name)
	if name == "" {
		return nil, errors.InvalidInput("name", "name is required")
	}
	priority := req.Priority
	if priority == "" {
		priority = repository.PriorityMedium
	}
	if !isValidPriority(priority) {
		return nil, errors.InvalidInput("priority", "priority must be high, medium or low")
	}

	now := s.now().UTC()
	p := &repository.Product{
		Name:           name,
		Category:       trim(req.Category),
		Priority:       priority,
		Stage:          StageIdea,
		Progress:       0,
		StageEnteredAt: now,
		CreatedBy:      req.CreatedBy,
		AssignedTo:     dedupe(req.AssignedTo),
	}
	opening := &repository.StageHistoryEntry{
		Stage:     StageIdea,
		EnteredAt: now,
		MovedBy:   req.CreatedBy,
	}
	if err := s.products.Create(ctx, p, opening); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("product_id", p.ID).
		Str("name", p.Name).
		Str("created_by", p.CreatedBy).
		Msg("Product created")

	appendActivity(ctx, s.activity, s.log, &repository.ActivityEntry{
		ActorID:      req.CreatedBy,
		Action:       "product_created",
		ResourceType: repository.TableProducts,
		ResourceID:   p.ID,
		Message:      fmt.Sprintf("%s created product %s", displayName(ctx, s.users, req.CreatedBy), p.Name),
	})
	return p, nil
}

// Advance moves a product to the next stage. Progress becomes 100 on launch
// and is otherwise unchanged. The previous history entry is closed and the
// new one opened at the same instant. Launch confirmation is the caller's
// responsibility; see LaunchConfirmationRequired.
func (s *PipelineService) Advance(ctx context.Context, productID, actingUserID string) (*repository.Product, error) {
	if actingUserID == "" {
		return nil, errors.Unauthenticated("no acting user")
	}

	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if IsTerminal(p.Stage) {
		return nil, ErrAlreadyTerminal
	}
	next, ok := NextStage(p.Stage)
	if !ok {
		// reachable only after an override wrote an unknown stage
		return nil, errors.New(errors.ErrCodeInvalidState, fmt.Sprintf("product is at unknown stage '%s'", p.Stage))
	}

	progress := p.Progress
	if next == StageLaunched {
		progress = 100
	}

	moved, err := s.products.Advance(ctx, repository.StageTransition{
		ProductID: p.ID,
		FromStage: p.Stage,
		ToStage:   next,
		Progress:  progress,
		MovedBy:   actingUserID,
		At:        s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("product_id", moved.ID).
		Str("from", p.Stage).
		Str("to", moved.Stage).
		Str("moved_by", actingUserID).
		Msg("Product advanced")

	actor := displayName(ctx, s.users, actingUserID)
	appendActivity(ctx, s.activity, s.log, &repository.ActivityEntry{
		ActorID:      actingUserID,
		Action:       "product_advanced",
		ResourceType: repository.TableProducts,
		ResourceID:   moved.ID,
		Message:      fmt.Sprintf("%s moved %s from %s to %s", actor, moved.Name, p.Stage, moved.Stage),
		Metadata:     map[string]interface{}{"from": p.Stage, "to": moved.Stage},
	})

	recipients := make([]string, 0, len(moved.AssignedTo))
	for _, id := range moved.AssignedTo {
		if id != actingUserID {
			recipients = append(recipients, id)
		}
	}
	s.notifier.Notify(ctx, "product_advanced", "product", moved.ID, actingUserID, recipients,
		map[string]interface{}{"name": moved.Name, "from": p.Stage, "to": moved.Stage})

	return moved, nil
}

// Override applies an administrative edit that may set any field, including
// stage and progress, without a pipeline transition. Stage history is left
// untouched. Admin only.
func (s *PipelineService) Override(ctx context.Context, req *OverrideProductRequest) (*repository.Product, error) {
	actor, err := requireAdmin(ctx, s.users, req.ActingUserID)
	if err != nil {
		return nil, err
	}

	o := repository.ProductOverride{At: s.now().UTC()}
	changed := map[string]interface{}{}

	if req.Name != nil {
		name := trim(*req.Name)
		if name == "" {
			return nil, errors.InvalidInput("name", "name cannot be empty")
		}
		o.Name = &name
		changed["name"] = name
	}
	if req.Category != nil {
		category := trim(*req.Category)
		o.Category = &category
		changed["category"] = category
	}
	if req.Priority != nil {
		if !isValidPriority(*req.Priority) {
			return nil, errors.InvalidInput("priority", "priority must be high, medium or low")
		}
		o.Priority = req.Priority
		changed["priority"] = *req.Priority
	}
	if req.Stage != nil {
		if !IsValidStage(*req.Stage) {
			return nil, errors.InvalidInput("stage", fmt.Sprintf("unknown stage '%s'", *req.Stage))
		}
		o.Stage = req.Stage
		changed["stage"] = *req.Stage
	}
	if req.Progress != nil {
		if *req.Progress < 0 || *req.Progress > 100 {
			return nil, errors.InvalidInput("progress", "progress must be between 0 and 100")
		}
		o.Progress = req.Progress
		changed["progress"] = *req.Progress
	}
	if req.AssignedTo != nil {
		o.AssignedTo = dedupe(req.AssignedTo)
		changed["assigned_to"] = o.AssignedTo
	}
	if len(changed) == 0 {
		return nil, errors.InvalidInput("", "no fields to update")
	}

	p, err := s.products.ApplyOverride(ctx, req.ProductID, o)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("product_id", p.ID).
		Str("actor", actor.ID).
		Interface("fields", changed).
		Msg("Product overridden")

	appendActivity(ctx, s.activity, s.log, &repository.ActivityEntry{
		ActorID:      actor.ID,
		Action:       "product_overridden",
		ResourceType: repository.TableProducts,
		ResourceID:   p.ID,
		Message:      fmt.Sprintf("%s edited product %s", actor.Name, p.Name),
		Metadata:     changed,
	})
	return p, nil
}

// Get retrieves a product by ID.
func (s *PipelineService) Get(ctx context.Context, id string) (*repository.Product, error) {
	return s.products.GetByID(ctx, id)
}

// List retrieves products matching the filter.
func (s *PipelineService) List(ctx context.Context, f repository.ProductFilter) ([]*repository.Product, int64, error) {
	if f.Stage != nil && !IsValidStage(*f.Stage) {
		return nil, 0, errors.InvalidInput("stage", "unknown stage")
	}
	if f.Priority != nil && !isValidPriority(*f.Priority) {
		return nil, 0, errors.InvalidInput("priority", "unknown priority")
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.products.List(ctx, f)
}

// History returns the stage intervals of a product in entry order.
func (s *PipelineService) History(ctx context.Context, productID string) ([]*repository.StageHistoryEntry, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.products.History(ctx, productID)
}

func isValidPriority(p string) bool {
	switch p {
	case repository.PriorityHigh, repository.PriorityMedium, repository.PriorityLow:
		return true
	}
	return false
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = trim(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
