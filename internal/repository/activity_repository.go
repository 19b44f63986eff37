package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pesio-ai/be-ops-workflow/pkg/database"
	"github.com/pesio-ai/be-ops-workflow/pkg/errors"
)

// ActivityRepository appends and reads the activity feed.
type ActivityRepository struct {
	db *database.DB
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(db *database.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Append inserts one entry. The table rejects updates and deletes, so this
// is the only mutation exposed.
func (r *ActivityRepository) Append(ctx context.Context, entry *ActivityEntry) error {
	var metadataJSON []byte
	if entry.Metadata != nil {
		var err error
		metadataJSON, err = json.Marshal(entry.Metadata)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeInternal, "failed to marshal activity metadata")
		}
	}

	query := `
		INSERT INTO activity_log (actor_id, action, resource_type, resource_id, message, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		entry.ActorID,
		entry.Action,
		entry.ResourceType,
		entry.ResourceID,
		entry.Message,
		metadataJSON,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return database.WrapError(err, "failed to append activity entry")
	}
	return nil
}

// List returns entries newest first.
func (r *ActivityRepository) List(ctx context.Context, f ActivityFilter) ([]*ActivityEntry, error) {
	query := `
		SELECT id, actor_id, action, resource_type, resource_id, message, metadata, created_at
		FROM activity_log
		WHERE TRUE
	`
	args := []interface{}{}
	argCount := 1

	if f.ResourceType != nil {
		query += fmt.Sprintf(" AND resource_type = $%d", argCount)
		args = append(args, *f.ResourceType)
		argCount++
	}
	if f.ResourceID != nil {
		query += fmt.Sprintf(" AND resource_id = $%d", argCount)
		args = append(args, *f.ResourceID)
		argCount++
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argCount)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, database.WrapError(err, "failed to list activity")
	}
	defer rows.Close()

	return r.scanRows(rows)
}

// ── scan helpers ──────────────────────────────────────────────────────────────

func (r *ActivityRepository) scanRows(rows pgx.Rows) ([]*ActivityEntry, error) {
	entries := make([]*ActivityEntry, 0)
	for rows.Next() {
		entry := &ActivityEntry{}
		var metadataJSON []byte

		err := rows.Scan(
			&entry.ID,
			&entry.ActorID,
			&entry.Action,
			&entry.ResourceType,
			&entry.ResourceID,
			&entry.Message,
			&metadataJSON,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to scan activity entry")
		}

		if metadataJSON != nil {
			if err := json.Unmarshal(metadataJSON, &entry.Metadata); err != nil {
				return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to unmarshal activity metadata")
			}
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, database.WrapError(err, "failed to list activity")
	}
	return entries, nil
}
