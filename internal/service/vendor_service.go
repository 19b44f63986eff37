package service

import (
	"context"
	"fmt"

	"github.com/pesio-ai/be-ops-workflow/internal/repository"
	"github.com/pesio-ai/be-ops-workflow/pkg/errors"
	"github.com/pesio-ai/be-ops-workflow/pkg/logger"
)

// VendorService manages the supplier directory.
type VendorService struct {
	vendors  VendorStore
	users    UserStore
	activity ActivityLog
	log      *logger.Logger
}

// NewVendorService creates a new vendor service.
func NewVendorService(vendors VendorStore, users UserStore, activity ActivityLog, log *logger.Logger) *VendorService {
	return &VendorService{vendors: vendors, users: users, activity: activity, log: log}
}

// VendorRequest carries the editable vendor fields.
type VendorRequest struct {
	Name        string
	ContactName *string
	Email       *string
	Phone       *string
	Category    string
	Notes       *string
}

func (req *VendorRequest) validate() (*repository.Vendor, error) {
	name := trim(req.Name)
	if name == "" {
		return nil, errors.InvalidInput("name", "name is required")
	}
	v := &repository.Vendor{
		Name:        name,
		ContactName: optionalString(req.ContactName),
		Phone:       optionalString(req.Phone),
		Category:    trim(req.Category),
		Notes:       optionalString(req.Notes),
	}
	if email := optionalString(req.Email); email != nil {
		normalized, err := normalizeEmail(*email)
		if err != nil {
			return nil, err
		}
		v.Email = &normalized
	}
	return v, nil
}

// Create adds a vendor.
func (s *VendorService) Create(ctx context.Context, req *VendorRequest, actorID string) (*repository.Vendor, error) {
	v, err := req.validate()
	if err != nil {
		return nil, err
	}
	v.CreatedBy = actorID
	if err := s.vendors.Create(ctx, v); err != nil {
		return nil, err
	}

	s.log.Info().Str("vendor_id", v.ID).Str("name", v.Name).Msg("Vendor created")
	appendActivity(ctx, s.activity, s.log, &repository.ActivityEntry{
		ActorID:      actorID,
		Action:       "vendor_created",
		ResourceType: repository.TableVendors,
		ResourceID:   v.ID,
		Message:      fmt.Sprintf("%s added vendor %s", displayName(ctx, s.users, actorID), v.Name),
	})
	return v, nil
}

// Update overwrites a vendor's editable fields.
func (s *VendorService) Update(ctx context.Context, id string, req *VendorRequest, actorID string) (*repository.Vendor, error) {
	v, err := req.validate()
	if err != nil {
		return nil, err
	}
	v.ID = id
	if err := s.vendors.Update(ctx, v); err != nil {
		return nil, err
	}

	s.log.Info().Str("vendor_id", v.ID).Msg("Vendor updated")
	appendActivity(ctx, s.activity, s.log, &repository.ActivityEntry{
		ActorID:      actorID,
		Action:       "vendor_updated",
		ResourceType: repository.TableVendors,
		ResourceID:   v.ID,
		Message:      fmt.Sprintf("%s updated vendor %s", displayName(ctx, s.users, actorID), v.Name),
	})
	return v, nil
}

// Delete removes a vendor. Admin only.
func (s *VendorService) Delete(ctx context.Context, id, actorID string) error {
	actor, err := requireAdmin(ctx, s.users, actorID)
	if err != nil {
		return err
	}
	v, err := s.vendors.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.vendors.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("vendor_id", id).Str("deleted_by", actorID).Msg("Vendor deleted")
	appendActivity(ctx, s.activity, s.log, &repository.ActivityEntry{
		ActorID:      actorID,
		Action:       "vendor_deleted",
		ResourceType: repository.TableVendors,
		ResourceID:   id,
		Message:      fmt.Sprintf("%s removed vendor %s", actor.Name, v.Name),
	})
	return nil
}

// Get retrieves a vendor by ID.
func (s *VendorService) Get(ctx context.Context, id string) (*repository.Vendor, error) {
	return s.vendors.GetByID(ctx, id)
}

// List retrieves vendors matching the filter.
func (s *VendorService) List(ctx context.Context, f repository.VendorFilter) ([]*repository.Vendor, int64, error) {
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.vendors.List(ctx, f)
}
