package states

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jishnuMgit/hoardlinks-backend/internal/models"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/apperr"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/database"
)

const columns = `id, state_code, state_name, contact_person, contact_phone, contact_email, status, created_at, updated_at`

// Repository handles state committee persistence.
type Repository struct {
	pool database.Pool
}

// NewRepository creates a states repository.
func NewRepository(pool database.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a state committee; duplicate codes surface as Conflict.
func (r *Repository) Create(ctx context.Context, s *models.StateCommittee) error {
	const q = `INSERT INTO state_committees (state_code, state_name, contact_person, contact_phone, contact_email, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, q, s.StateCode, s.StateName, s.ContactPerson, s.ContactPhone, s.ContactEmail, s.Status).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if database.IsUniqueViolation(err) {
		return apperr.Wrap(apperr.Conflict, "state with this code already exists", err)
	}
	return err
}

// GetByID returns a state committee by ID.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.StateCommittee, error) {
	var s models.StateCommittee
	err := r.pool.QueryRow(ctx, `SELECT `+columns+` FROM state_committees WHERE id = $1`, id).
		Scan(&s.ID, &s.StateCode, &s.StateName, &s.ContactPerson, &s.ContactPhone, &s.ContactEmail, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.Wrap(apperr.NotFound, "state not found", err)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns all state committees.
func (r *Repository) List(ctx context.Context) ([]models.StateCommittee, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+columns+` FROM state_committees ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]models.StateCommittee, 0)
	for rows.Next() {
		var s models.StateCommittee
		if err := rows.Scan(&s.ID, &s.StateCode, &s.StateName, &s.ContactPerson, &s.ContactPhone, &s.ContactEmail, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Update patches a state committee; nil fields keep existing values.
func (r *Repository) Update(ctx context.Context, id int64, code, name, person, phone, email, status *string) (*models.StateCommittee, error) {
	const q = `UPDATE state_committees SET
		state_code = COALESCE($1, state_code),
		state_name = COALESCE($2, state_name),
		contact_person = COALESCE($3, contact_person),
		contact_phone = COALESCE($4, contact_phone),
		contact_email = COALESCE($5, contact_email),
		status = COALESCE($6, status),
		updated_at = NOW()
		WHERE id = $7
		RETURNING ` + columns
	var s models.StateCommittee
	err := r.pool.QueryRow(ctx, q, code, name, person, phone, email, status, id).
		Scan(&s.ID, &s.StateCode, &s.StateName, &s.ContactPerson, &s.ContactPhone, &s.ContactEmail, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.Wrap(apperr.NotFound, "state not found", err)
	}
	if database.IsUniqueViolation(err) {
		return nil, apperr.Wrap(apperr.Conflict, "state with this code already exists", err)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
