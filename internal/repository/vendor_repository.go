package repository

import (
	"context"
	"fmt"

	"github.com/pesio-ai/be-ops-workflow/pkg/database"
	"github.com/pesio-ai/be-ops-workflow/pkg/errors"
)

const vendorColumns = `id, name, contact_name, email, phone, category, notes, created_by, created_at, updated_at`

// VendorRepository persists vendors.
type VendorRepository struct {
	db *database.DB
}

// NewVendorRepository creates a new VendorRepository.
func NewVendorRepository(db *database.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

// Create inserts a vendor.
func (r *VendorRepository) Create(ctx context.Context, v *Vendor) error {
	query := `
		INSERT INTO vendors (name, contact_name, email, phone, category, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		v.Name, v.ContactName, v.Email, v.Phone, v.Category, v.Notes, v.CreatedBy,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return database.WrapError(err, "failed to create vendor")
	}
	return nil
}

// GetByID retrieves a vendor by ID.
func (r *VendorRepository) GetByID(ctx context.Context, id string) (*Vendor, error) {
	v, err := scanVendor(r.db.QueryRow(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE id = $1`, id))
	if database.IsNoRows(err) {
		return nil, errors.NotFound("vendor", id)
	}
	if err != nil {
		return nil, database.WrapError(err, "failed to get vendor")
	}
	return v, nil
}

// List retrieves vendors by name with optional category and search filters.
func (r *VendorRepository) List(ctx context.Context, f VendorFilter) ([]*Vendor, int64, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE TRUE`
	countQuery := `SELECT COUNT(*) FROM vendors WHERE TRUE`
	args := []interface{}{}
	argCount := 1

	if f.Category != nil {
		cond := fmt.Sprintf(" AND category = $%d", argCount)
		query += cond
		countQuery += cond
		args = append(args, *f.Category)
		argCount++
	}
	if f.Search != nil {
		cond := fmt.Sprintf(" AND (name ILIKE $%d OR contact_name ILIKE $%d)", argCount, argCount)
		query += cond
		countQuery += cond
		args = append(args, "%"+*f.Search+"%")
		argCount++
	}

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, database.WrapError(err, "failed to count vendors")
	}

	query += " ORDER BY name ASC"
	queryArgs := args
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1)
		queryArgs = append(queryArgs, f.Limit, f.Offset)
	}

	rows, err := r.db.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, 0, database.WrapError(err, "failed to list vendors")
	}
	defer rows.Close()

	vendors := make([]*Vendor, 0)
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, 0, errors.Wrap(err, errors.ErrCodeInternal, "failed to scan vendor")
		}
		vendors = append(vendors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, database.WrapError(err, "failed to list vendors")
	}
	return vendors, total, nil
}

// Update overwrites a vendor's editable fields.
func (r *VendorRepository) Update(ctx context.Context, v *Vendor) error {
	query := `
		UPDATE vendors
		SET name = $2, contact_name = $3, email = $4, phone = $5,
		    category = $6, notes = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING created_by, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		v.ID, v.Name, v.ContactName, v.Email, v.Phone, v.Category, v.Notes,
	).Scan(&v.CreatedBy, &v.CreatedAt, &v.UpdatedAt)
	if database.IsNoRows(err) {
		return errors.NotFound("vendor", v.ID)
	}
	if err != nil {
		return database.WrapError(err, "failed to update vendor")
	}
	return nil
}

// Delete removes a vendor. Records referencing it keep a null vendor_id.
func (r *VendorRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		return database.WrapError(err, "failed to delete vendor")
	}
	if tag.RowsAffected() == 0 {
		return errors.NotFound("vendor", id)
	}
	return nil
}

func scanVendor(row rowScanner) (*Vendor, error) {
	v := &Vendor{}
	err := row.Scan(
		&v.ID,
		&v.Name,
		&v.ContactName,
		&v.Email,
		&v.Phone,
		&v.Category,
		&v.Notes,
		&v.CreatedBy,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return v, nil
}
