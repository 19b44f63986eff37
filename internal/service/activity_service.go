package service

import (
	"context"
	"strings"

	"github.com/pesio-ai/be-ops-workflow/internal/repository"
	"github.com/pesio-ai/be-ops-workflow/pkg/logger"
)

const maxActivityLimit = 200

// ActivityService serves the activity feed.
type ActivityService struct {
	activity ActivityLog
	log      *logger.Logger
}

// NewActivityService creates a new activity service.
func NewActivityService(activity ActivityLog, log *logger.Logger) *ActivityService {
	return &ActivityService{activity: activity, log: log}
}

// List returns recent entries, newest first.
func (s *ActivityService) List(ctx context.Context, f repository.ActivityFilter) ([]*repository.ActivityEntry, error) {
	if f.Limit <= 0 || f.Limit > maxActivityLimit {
		f.Limit = 50
	}
	return s.activity.List(ctx, f)
}

// appendActivity writes an activity entry. Failures are logged and never
// fail the calling operation.
func appendActivity(ctx context.Context, activity ActivityLog, log *logger.Logger, entry *repository.ActivityEntry) {
	if err := activity.Append(ctx, entry); err != nil {
		log.Warn().Err(err).
			Str("action", entry.Action).
			Str("resource_id", entry.ResourceID).
			Msg("Failed to append activity entry")
	}
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
