package districts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jishnuMgit/hoardlinks-backend/internal/models"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/apperr"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/database"
)

const columns = `id, state_id, district_code, district_name, contact_person, contact_phone, contact_email, status, created_at, updated_at`

// Repository handles district committee persistence.
type Repository struct {
	pool database.Pool
}

// NewRepository creates a districts repository.
func NewRepository(pool database.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanDistrict(row pgx.Row) (*models.DistrictCommittee, error) {
	var d models.DistrictCommittee
	err := row.Scan(&d.ID, &d.StateID, &d.DistrictCode, &d.DistrictName, &d.ContactPerson, &d.ContactPhone, &d.ContactEmail, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// StateExists reports whether a state committee with the ID exists.
func (r *Repository) StateExists(ctx context.Context, stateID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM state_committees WHERE id = $1)`, stateID).Scan(&exists)
	return exists, err
}

// Create inserts a district committee under its parent state.
func (r *Repository) Create(ctx context.Context, d *models.DistrictCommittee) error {
	const q = `INSERT INTO district_committees (state_id, district_code, district_name, contact_person, contact_phone, contact_email, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, q, d.StateID, d.DistrictCode, d.DistrictName, d.ContactPerson, d.ContactPhone, d.ContactEmail, d.Status).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if database.IsUniqueViolation(err) {
		return apperr.Wrap(apperr.Conflict, "district with this code already exists", err)
	}
	return err
}

// GetByID returns a district committee by ID.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.DistrictCommittee, error) {
	d, err := scanDistrict(r.pool.QueryRow(ctx, `SELECT `+columns+` FROM district_committees WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.Wrap(apperr.NotFound, "district not found", err)
	}
	return d, err
}

// List returns district committees, optionally restricted to one state.
func (r *Repository) List(ctx context.Context, stateID *int64) ([]models.DistrictCommittee, error) {
	q := `SELECT ` + columns + ` FROM district_committees`
	args := []any{}
	if stateID != nil {
		q += ` WHERE state_id = $1`
		args = append(args, *stateID)
	}
	q += ` ORDER BY id`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]models.DistrictCommittee, 0)
	for rows.Next() {
		var d models.DistrictCommittee
		if err := rows.Scan(&d.ID, &d.StateID, &d.DistrictCode, &d.DistrictName, &d.ContactPerson, &d.ContactPhone, &d.ContactEmail, &d.Status, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Update patches a district committee; nil fields keep existing values.
func (r *Repository) Update(ctx context.Context, id int64, code, name, person, phone, email, status *string) (*models.DistrictCommittee, error) {
	const q = `UPDATE district_committees SET
		district_code = COALESCE($1, district_code),
		district_name = COALESCE($2, district_name),
		contact_person = COALESCE($3, contact_person),
		contact_phone = COALESCE($4, contact_phone),
		contact_email = COALESCE($5, contact_email),
		status = COALESCE($6, status),
		updated_at = NOW()
		WHERE id = $7
		RETURNING ` + columns
	d, err := scanDistrict(r.pool.QueryRow(ctx, q, code, name, person, phone, email, status, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.Wrap(apperr.NotFound, "district not found", err)
	}
	if database.IsUniqueViolation(err) {
		return nil, apperr.Wrap(apperr.Conflict, "district with this code already exists", err)
	}
	return d, err
}
