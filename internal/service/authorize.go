package service

import (
	"context"

	"github.com/pesio-ai/be-ops-workflow/internal/repository"
	"github.com/pesio-ai/be-ops-workflow/pkg/errors"
)

// requireAdmin loads the acting user and fails with AUTHORIZATION_ERROR
// unless they are an approved admin. Store failures pass through.
func requireAdmin(ctx context.Context, users UserStore, actorID string) (*repository.UserProfile, error) {
	if actorID == "" {
		return nil, errors.Unauthenticated("no acting user")
	}
	actor, err := users.GetByID(ctx, actorID)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeNotFound) {
			return nil, errors.Forbidden("admin privileges required")
		}
		return nil, err
	}
	if !actor.IsApprovedAdmin() {
		return nil, errors.Forbidden("admin privileges required")
	}
	return actor, nil
}

// displayName resolves a user id to a human name for activity messages,
// falling back to the id.
func displayName(ctx context.Context, users UserStore, id string) string {
	u, err := users.GetByID(ctx, id)
	if err != nil || u.Name == "" {
		return id
	}
	return u.Name
}

// adminIDs returns the ids of all approved admins.
func adminIDs(ctx context.Context, users UserStore) []string {
	role, status := repository.RoleAdmin, repository.AccountApproved
	admins, err := users.List(ctx, repository.UserFilter{Role: &role, ApprovalStatus: &status})
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(admins))
	for _, a := range admins {
		ids = append(ids, a.ID)
	}
	return ids
}

func optionalString(s *string) *string {
	if s == nil {
		return nil
	}
	v := trim(*s)
	if v == "" {
		return nil
	}
	return &v
}
