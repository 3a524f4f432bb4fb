package uploads

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jishnuMgit/hoardlinks-backend/internal/models"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/apperr"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/database"
)

// Repository handles payment records backing proof-image uploads.
type Repository struct {
	pool database.Pool
}

// NewRepository creates an uploads repository.
func NewRepository(pool database.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreatePayment inserts a payment row carrying the proof image URL.
func (r *Repository) CreatePayment(ctx context.Context, p *models.ChittyPayment) error {
	const q = `INSERT INTO chitty_payments (chitty_id, member_id, amount, url, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, p.ChittyID, p.MemberID, p.Amount, p.URL, p.Status).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetPayment returns a payment record by ID.
func (r *Repository) GetPayment(ctx context.Context, id int64) (*models.ChittyPayment, error) {
	const q = `SELECT id, chitty_id, member_id, amount, url, status, created_at, updated_at
		FROM chitty_payments WHERE id = $1`
	var p models.ChittyPayment
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.ChittyID, &p.MemberID, &p.Amount, &p.URL, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.Wrap(apperr.NotFound, "payment not found", err)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// MemberExists checks that a member slot belongs to the given scheme.
func (r *Repository) MemberExists(ctx context.Context, chittyID, memberID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM chitty_members WHERE id = $1 AND chitty_id = $2)`, memberID, chittyID).Scan(&exists)
	return exists, err
}
