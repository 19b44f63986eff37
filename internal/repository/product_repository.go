package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pesio-ai/be-ops-workflow/pkg/database"
	"github.com/pesio-ai/be-ops-workflow/pkg/errors"
)

const productColumns = `
	id, name, category, priority, current_stage, progress, stage_entered_at,
	created_by, assigned_to::text[], created_at, updated_at
`

// ProductRepository persists products and their stage history. Every write
// that touches both tables runs in one transaction.
type ProductRepository struct {
	db *database.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *database.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a product together with its opening history entry.
func (r *ProductRepository) Create(ctx context.Context, p *Product, opening *StageHistoryEntry) error {
	return r.db.InTransaction(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO products (name, category, priority, current_stage, progress,
			                      stage_entered_at, created_by, assigned_to, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8::text[]::uuid[], $6, $6)
			RETURNING id, created_at, updated_at
		`

		assigned := p.AssignedTo
		if assigned == nil {
			assigned = []string{}
		}

		err := tx.QueryRow(ctx, query,
			p.Name,
			p.Category,
			p.Priority,
			p.Stage,
			p.Progress,
			p.StageEnteredAt,
			p.CreatedBy,
			assigned,
		).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return database.WrapError(err, "failed to create product")
		}

		opening.ProductID = p.ID
		return insertHistory(ctx, tx, opening)
	})
}

// GetByID retrieves a product by ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if database.IsNoRows(err) {
		return nil, errors.NotFound("product", id)
	}
	if err != nil {
		return nil, database.WrapError(err, "failed to get product")
	}
	return p, nil
}

// List retrieves products, highest priority and most recently moved first.
func (r *ProductRepository) List(ctx context.Context, f ProductFilter) ([]*Product, int64, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE TRUE`
	countQuery := `SELECT COUNT(*) FROM products WHERE TRUE`

	args := []interface{}{}
	argCount := 1

	addFilter := func(clause string, value interface{}) {
		cond := fmt.Sprintf(" AND "+clause, argCount)
		query += cond
		countQuery += cond
		args = append(args, value)
		argCount++
	}

	if f.Stage != nil {
		addFilter("current_stage = $%d", *f.Stage)
	}
	if f.Priority != nil {
		addFilter("priority = $%d", *f.Priority)
	}
	if f.AssignedTo != nil {
		addFilter("$%d::text::uuid = ANY (assigned_to)", *f.AssignedTo)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, database.WrapError(err, "failed to count products")
	}

	query += ` ORDER BY CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END,
	           stage_entered_at DESC`
	queryArgs := args
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1)
		queryArgs = append(queryArgs, f.Limit, f.Offset)
	}

	rows, err := r.db.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, 0, database.WrapError(err, "failed to list products")
	}
	defer rows.Close()

	products := make([]*Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, errors.Wrap(err, errors.ErrCodeInternal, "failed to scan product")
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, database.WrapError(err, "failed to list products")
	}

	return products, total, nil
}

// Advance applies a stage transition atomically: the product row moves only
// if it is still at FromStage, the open history entry is closed at t.At and
// a new one is opened at the same instant.
func (r *ProductRepository) Advance(ctx context.Context, t StageTransition) (*Product, error) {
	var product *Product

	err := r.db.InTransaction(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE products
			SET current_stage    = $3,
			    progress         = $4,
			    stage_entered_at = $5,
			    updated_at       = $5
			WHERE id = $1 AND current_stage = $2
			RETURNING ` + productColumns

		p, err := scanProduct(tx.QueryRow(ctx, query,
			t.ProductID, t.FromStage, t.ToStage, t.Progress, t.At))
		if database.IsNoRows(err) {
			var stage string
			err := tx.QueryRow(ctx, `SELECT current_stage FROM products WHERE id = $1`, t.ProductID).Scan(&stage)
			if database.IsNoRows(err) {
				return errors.NotFound("product", t.ProductID)
			}
			if err != nil {
				return database.WrapError(err, "failed to read product stage")
			}
			return errors.New(errors.ErrCodeInvalidState,
				fmt.Sprintf("product moved to '%s' concurrently", stage))
		}
		if err != nil {
			return database.WrapError(err, "failed to advance product")
		}

		// An interrupted legacy write may have left no open entry; closing
		// zero rows is tolerated.
		_, err = tx.Exec(ctx, `
			UPDATE product_stage_history
			SET exited_at = $2
			WHERE product_id = $1 AND exited_at IS NULL
		`, t.ProductID, t.At)
		if err != nil {
			return database.WrapError(err, "failed to close stage history entry")
		}

		if err := insertHistory(ctx, tx, &StageHistoryEntry{
			ProductID: t.ProductID,
			Stage:     t.ToStage,
			EnteredAt: t.At,
			MovedBy:   t.MovedBy,
		}); err != nil {
			return err
		}

		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// ApplyOverride writes an administrative edit. Stage history is not touched.
func (r *ProductRepository) ApplyOverride(ctx context.Context, id string, o ProductOverride) (*Product, error) {
	sets := "updated_at = $2"
	args := []interface{}{id, o.At}
	argCount := 3

	set := func(column string, value interface{}) {
		sets += fmt.Sprintf(", %s = $%d", column, argCount)
		args = append(args, value)
		argCount++
	}

	if o.Name != nil {
		set("name", *o.Name)
	}
	if o.Category != nil {
		set("category", *o.Category)
	}
	if o.Priority != nil {
		set("priority", *o.Priority)
	}
	if o.Stage != nil {
		set("current_stage", *o.Stage)
		sets += ", stage_entered_at = CASE WHEN current_stage IS DISTINCT FROM " +
			fmt.Sprintf("$%d", argCount-1) + " THEN $2 ELSE stage_entered_at END"
	}
	if o.Progress != nil {
		set("progress", *o.Progress)
	}
	if o.AssignedTo != nil {
		sets += fmt.Sprintf(", assigned_to = $%d::text[]::uuid[]", argCount)
		args = append(args, o.AssignedTo)
		argCount++
	}

	query := `UPDATE products SET ` + sets + ` WHERE id = $1 RETURNING ` + productColumns

	p, err := scanProduct(r.db.QueryRow(ctx, query, args...))
	if database.IsNoRows(err) {
		return nil, errors.NotFound("product", id)
	}
	if err != nil {
		return nil, database.WrapError(err, "failed to update product")
	}
	return p, nil
}

// History returns a product's stage intervals ordered by entry time.
func (r *ProductRepository) History(ctx context.Context, productID string) ([]*StageHistoryEntry, error) {
	query := `
		SELECT id, product_id, stage, entered_at, exited_at, moved_by
		FROM product_stage_history
		WHERE product_id = $1
		ORDER BY entered_at ASC, exited_at ASC NULLS LAST
	`

	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, database.WrapError(err, "failed to get stage history")
	}
	defer rows.Close()

	entries := make([]*StageHistoryEntry, 0)
	for rows.Next() {
		e := &StageHistoryEntry{}
		if err := rows.Scan(&e.ID, &e.ProductID, &e.Stage, &e.EnteredAt, &e.ExitedAt, &e.MovedBy); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to scan stage history entry")
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, database.WrapError(err, "failed to get stage history")
	}
	return entries, nil
}

func insertHistory(ctx context.Context, tx pgx.Tx, e *StageHistoryEntry) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO product_stage_history (product_id, stage, entered_at, moved_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, e.ProductID, e.Stage, e.EnteredAt, e.MovedBy).Scan(&e.ID)
	if err != nil {
		return database.WrapError(err, "failed to open stage history entry")
	}
	return nil
}

func scanProduct(row rowScanner) (*Product, error) {
	p := &Product{}
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Category,
		&p.Priority,
		&p.Stage,
		&p.Progress,
		&p.StageEnteredAt,
		&p.CreatedBy,
		&p.AssignedTo,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}
