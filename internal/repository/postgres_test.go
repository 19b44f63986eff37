package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pesio-ai/be-ops-workflow/pkg/database"
	"github.com/pesio-ai/be-ops-workflow/pkg/errors"
)

var (
	recordColumnNames = []string{
		"id", "kind", "amount_minor", "transaction_date", "category",
		"vendor_id", "proof_url", "notes", "status",
		"submitted_by", "approved_by", "approval_comment", "rejection_reason",
		"created_at", "decided_at", "updated_at",
	}
	productColumnNames = []string{
		"id", "name", "category", "priority", "current_stage", "progress", "stage_entered_at",
		"created_by", "assigned_to", "created_at", "updated_at",
	}

	created = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	decided = time.Date(2024, 5, 2, 14, 30, 0, 0, time.UTC)
)

func newMockDB(t *testing.T) (*database.DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return database.NewFromPool(mock), mock
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func recordRow(status string, approvedBy, reason *string, decidedAt *time.Time) *pgxmock.Rows {
	return pgxmock.NewRows(recordColumnNames).AddRow(
		"rec-1", RecordKindExpense, int64(500000), "2024-05-01", "Raw Materials",
		(*string)(nil), (*string)(nil), (*string)(nil), status,
		"partner-1", approvedBy, (*string)(nil), reason,
		created, decidedAt, created,
	)
}

func productRow(stage string, progress int, entered time.Time) *pgxmock.Rows {
	return pgxmock.NewRows(productColumnNames).AddRow(
		"prod-1", "Clay Mask", "Skincare", PriorityMedium, stage, progress, entered,
		"partner-1", []string{}, created, entered,
	)
}

func TestFinancialRecordRepository_DecideGuardsOnPending(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFinancialRecordRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE financial_records SET status = $2, approved_by = $3, approval_comment = $4, " +
			"rejection_reason = $5, decided_at = $6, updated_at = $6 " +
			"WHERE id = $1 AND status = 'pending' RETURNING")).
		WithArgs("rec-1", RecordStatusApproved, "admin-1", strPtr("ok"), (*string)(nil), decided).
		WillReturnRows(recordRow(RecordStatusApproved, strPtr("admin-1"), nil, &decided))

	rec, err := repo.Decide(context.Background(), "rec-1", RecordDecision{
		Status:    RecordStatusApproved,
		DecidedBy: "admin-1",
		Comment:   strPtr("ok"),
		DecidedAt: decided,
	})
	require.NoError(t, err)
	assert.Equal(t, RecordStatusApproved, rec.Status)
	require.NotNil(t, rec.ApprovedBy)
	assert.Equal(t, "admin-1", *rec.ApprovedBy)
	require.NotNil(t, rec.DecidedAt)
	assert.True(t, decided.Equal(*rec.DecidedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinancialRecordRepository_DecideAlreadyDecided(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFinancialRecordRepository(db)

	// The guarded update matches nothing, so the repository reads the row back
	// to tell a decided record from a missing one.
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND status = 'pending'")).
		WithArgs("rec-1", RecordStatusRejected, "admin-2", (*string)(nil), strPtr("duplicate"), decided).
		WillReturnRows(pgxmock.NewRows(recordColumnNames))
	mock.ExpectQuery(regexp.QuoteMeta("FROM financial_records WHERE id = $1")).
		WithArgs("rec-1").
		WillReturnRows(recordRow(RecordStatusApproved, strPtr("admin-1"), nil, &decided))

	_, err := repo.Decide(context.Background(), "rec-1", RecordDecision{
		Status:          RecordStatusRejected,
		DecidedBy:       "admin-2",
		RejectionReason: strPtr("duplicate"),
		DecidedAt:       decided,
	})
	assert.Equal(t, errors.ErrCodeInvalidState, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "already approved")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinancialRecordRepository_DecideMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFinancialRecordRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND status = 'pending'")).
		WithArgs("gone", RecordStatusApproved, "admin-1", (*string)(nil), (*string)(nil), decided).
		WillReturnRows(pgxmock.NewRows(recordColumnNames))
	mock.ExpectQuery(regexp.QuoteMeta("FROM financial_records WHERE id = $1")).
		WithArgs("gone").
		WillReturnRows(pgxmock.NewRows(recordColumnNames))

	_, err := repo.Decide(context.Background(), "gone", RecordDecision{
		Status:    RecordStatusApproved,
		DecidedBy: "admin-1",
		DecidedAt: decided,
	})
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinancialRecordRepository_DeleteMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFinancialRecordRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM financial_records WHERE id = $1")).
		WithArgs("gone").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "gone")
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_AdvanceInOneTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE products SET current_stage = $3, progress = $4, stage_entered_at = $5, updated_at = $5 " +
			"WHERE id = $1 AND current_stage = $2 RETURNING")).
		WithArgs("prod-1", "idea", "research", 0, decided).
		WillReturnRows(productRow("research", 0, decided))
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE product_stage_history SET exited_at = $2 WHERE product_id = $1 AND exited_at IS NULL")).
		WithArgs("prod-1", decided).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO product_stage_history (product_id, stage, entered_at, moved_by)")).
		WithArgs("prod-1", "research", decided, "partner-2").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("hist-2"))
	mock.ExpectCommit()

	p, err := repo.Advance(context.Background(), StageTransition{
		ProductID: "prod-1",
		FromStage: "idea",
		ToStage:   "research",
		Progress:  0,
		MovedBy:   "partner-2",
		At:        decided,
	})
	require.NoError(t, err)
	assert.Equal(t, "research", p.Stage)
	assert.True(t, decided.Equal(p.StageEnteredAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_AdvanceLostRaceRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND current_stage = $2")).
		WithArgs("prod-1", "idea", "research", 0, decided).
		WillReturnRows(pgxmock.NewRows(productColumnNames))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT current_stage FROM products WHERE id = $1")).
		WithArgs("prod-1").
		WillReturnRows(pgxmock.NewRows([]string{"current_stage"}).AddRow("research"))
	mock.ExpectRollback()

	_, err := repo.Advance(context.Background(), StageTransition{
		ProductID: "prod-1",
		FromStage: "idea",
		ToStage:   "research",
		MovedBy:   "partner-2",
		At:        decided,
	})
	assert.Equal(t, errors.ErrCodeInvalidState, errors.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_AdvanceMissingProduct(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND current_stage = $2")).
		WithArgs("gone", "idea", "research", 0, decided).
		WillReturnRows(pgxmock.NewRows(productColumnNames))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT current_stage FROM products WHERE id = $1")).
		WithArgs("gone").
		WillReturnRows(pgxmock.NewRows([]string{"current_stage"}))
	mock.ExpectRollback()

	_, err := repo.Advance(context.Background(), StageTransition{
		ProductID: "gone",
		FromStage: "idea",
		ToStage:   "research",
		MovedBy:   "partner-2",
		At:        decided,
	})
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ApplyOverridePlaceholders(t *testing.T) {
	tests := []struct {
		name     string
		override ProductOverride
		sql      string
		args     []interface{}
	}{
		{
			name:     "stage only",
			override: ProductOverride{Stage: strPtr("testing"), At: decided},
			sql: "UPDATE products SET updated_at = $2, current_stage = $3, " +
				"stage_entered_at = CASE WHEN current_stage IS DISTINCT FROM $3 THEN $2 ELSE stage_entered_at END " +
				"WHERE id = $1 RETURNING",
			args: []interface{}{"prod-1", decided, "testing"},
		},
		{
			name: "name, stage, progress and team",
			override: ProductOverride{
				Name:       strPtr("Clay Mask v2"),
				Stage:      strPtr("launched"),
				Progress:   intPtr(100),
				AssignedTo: []string{"partner-3"},
				At:         decided,
			},
			sql: "UPDATE products SET updated_at = $2, name = $3, current_stage = $4, " +
				"stage_entered_at = CASE WHEN current_stage IS DISTINCT FROM $4 THEN $2 ELSE stage_entered_at END, " +
				"progress = $5, assigned_to = $6::text[]::uuid[] WHERE id = $1 RETURNING",
			args: []interface{}{"prod-1", decided, "Clay Mask v2", "launched", 100, []string{"partner-3"}},
		},
		{
			name:     "priority and progress without stage",
			override: ProductOverride{Priority: strPtr(PriorityHigh), Progress: intPtr(40), At: decided},
			sql:      "UPDATE products SET updated_at = $2, priority = $3, progress = $4 WHERE id = $1 RETURNING",
			args:     []interface{}{"prod-1", decided, PriorityHigh, 40},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewProductRepository(db)

			mock.ExpectQuery(regexp.QuoteMeta(tt.sql)).
				WithArgs(tt.args...).
				WillReturnRows(productRow("testing", 40, decided))

			_, err := repo.ApplyOverride(context.Background(), "prod-1", tt.override)
			require.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProductRepository_ApplyOverrideMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE products SET updated_at = $2, name = $3 WHERE id = $1")).
		WithArgs("gone", decided, "X").
		WillReturnRows(pgxmock.NewRows(productColumnNames))

	_, err := repo.ApplyOverride(context.Background(), "gone", ProductOverride{Name: strPtr("X"), At: decided})
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListenNeedsRealPool(t *testing.T) {
	db, _ := newMockDB(t)
	err := db.Listen(context.Background(), "ops_changes", nil)
	assert.Error(t, err)
}
