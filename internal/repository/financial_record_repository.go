package repository

import (
	"context"
	"fmt"

	"github.com/pesio-ai/be-ops-workflow/pkg/database"
	"github.com/pesio-ai/be-ops-workflow/pkg/errors"
)

const recordColumns = `
	id, kind, amount_minor, transaction_date::text, category,
	vendor_id, proof_url, notes, status,
	submitted_by, approved_by, approval_comment, rejection_reason,
	created_at, decided_at, updated_at
`

// FinancialRecordRepository persists expenses and investments.
type FinancialRecordRepository struct {
	db *database.DB
}

// NewFinancialRecordRepository creates a new FinancialRecordRepository.
func NewFinancialRecordRepository(db *database.DB) *FinancialRecordRepository {
	return &FinancialRecordRepository{db: db}
}

// Create inserts a new record and fills in its generated fields.
func (r *FinancialRecordRepository) Create(ctx context.Context, rec *FinancialRecord) error {
	query := `
		INSERT INTO financial_records (kind, amount_minor, transaction_date, category,
		                               vendor_id, proof_url, notes, status, submitted_by)
		VALUES ($1, $2, $3::text::date, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		rec.Kind,
		rec.AmountMinor,
		rec.TransactionDate,
		rec.Category,
		rec.VendorID,
		rec.ProofURL,
		rec.Notes,
		rec.Status,
		rec.SubmittedBy,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return database.WrapError(err, "failed to create financial record")
	}
	return nil
}

// GetByID retrieves a record by ID.
func (r *FinancialRecordRepository) GetByID(ctx context.Context, id string) (*FinancialRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM financial_records WHERE id = $1`

	rec, err := scanRecord(r.db.QueryRow(ctx, query, id))
	if database.IsNoRows(err) {
		return nil, errors.NotFound("financial_record", id)
	}
	if err != nil {
		return nil, database.WrapError(err, "failed to get financial record")
	}
	return rec, nil
}

// List retrieves records with filtering and pagination, newest transaction first.
func (r *FinancialRecordRepository) List(ctx context.Context, f RecordFilter) ([]*FinancialRecord, int64, error) {
	query := `SELECT ` + recordColumns + ` FROM financial_records WHERE TRUE`
	countQuery := `SELECT COUNT(*) FROM financial_records WHERE TRUE`

	args := []interface{}{}
	argCount := 1

	addFilter := func(clause string, value interface{}) {
		cond := fmt.Sprintf(" AND "+clause, argCount)
		query += cond
		countQuery += cond
		args = append(args, value)
		argCount++
	}

	if f.Kind != nil {
		addFilter("kind = $%d", *f.Kind)
	}
	if f.Status != nil {
		addFilter("status = $%d", *f.Status)
	}
	if f.SubmittedBy != nil {
		addFilter("submitted_by = $%d", *f.SubmittedBy)
	}
	if f.FromDate != nil {
		addFilter("transaction_date >= $%d::text::date", *f.FromDate)
	}
	if f.ToDate != nil {
		addFilter("transaction_date <= $%d::text::date", *f.ToDate)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, database.WrapError(err, "failed to count financial records")
	}

	query += " ORDER BY transaction_date DESC, created_at DESC"
	queryArgs := args
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1)
		queryArgs = append(queryArgs, f.Limit, f.Offset)
	}

	rows, err := r.db.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, 0, database.WrapError(err, "failed to list financial records")
	}
	defer rows.Close()

	records := make([]*FinancialRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, errors.Wrap(err, errors.ErrCodeInternal, "failed to scan financial record")
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, database.WrapError(err, "failed to list financial records")
	}

	return records, total, nil
}

// Decide applies a decision only while the record is still pending. A record
// that exists but was already decided yields INVALID_STATE_TRANSITION, which
// is also how a lost race between two deciders surfaces.
func (r *FinancialRecordRepository) Decide(ctx context.Context, id string, d RecordDecision) (*FinancialRecord, error) {
	query := `
		UPDATE financial_records
		SET status           = $2,
		    approved_by      = $3,
		    approval_comment = $4,
		    rejection_reason = $5,
		    decided_at       = $6,
		    updated_at       = $6
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + recordColumns

	rec, err := scanRecord(r.db.QueryRow(ctx, query,
		id,
		d.Status,
		d.DecidedBy,
		d.Comment,
		d.RejectionReason,
		d.DecidedAt,
	))
	if database.IsNoRows(err) {
		current, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		return nil, errors.New(errors.ErrCodeInvalidState,
			fmt.Sprintf("financial record is already %s", current.Status))
	}
	if err != nil {
		return nil, database.WrapError(err, "failed to decide financial record")
	}
	return rec, nil
}

// Delete removes a record regardless of status.
func (r *FinancialRecordRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM financial_records WHERE id = $1`, id)
	if err != nil {
		return database.WrapError(err, "failed to delete financial record")
	}
	if tag.RowsAffected() == 0 {
		return errors.NotFound("financial_record", id)
	}
	return nil
}

// ── scan helpers ──────────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*FinancialRecord, error) {
	rec := &FinancialRecord{}
	err := row.Scan(
		&rec.ID,
		&rec.Kind,
		&rec.AmountMinor,
		&rec.TransactionDate,
		&rec.Category,
		&rec.VendorID,
		&rec.ProofURL,
		&rec.Notes,
		&rec.Status,
		&rec.SubmittedBy,
		&rec.ApprovedBy,
		&rec.ApprovalComment,
		&rec.RejectionReason,
		&rec.CreatedAt,
		&rec.DecidedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}
