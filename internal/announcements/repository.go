package announcements

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jishnuMgit/hoardlinks-backend/internal/models"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/apperr"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/database"
)

const columns = `id, level, state_id, district_id, title, message, valid_from, valid_to,
	created_by_user, updated_by_user, created_at, updated_at`

// Scope restricts which announcements a caller can see. All overrides the
// org filters; otherwise STATE rows match StateID and DISTRICT rows match
// DistrictID.
type Scope struct {
	All        bool
	StateID    *int64
	DistrictID *int64
}

// Repository handles announcement persistence.
type Repository struct {
	pool database.Pool
}

// NewRepository creates an announcements repository.
func NewRepository(pool database.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanAnnouncement(row pgx.Row) (*models.Announcement, error) {
	var a models.Announcement
	err := row.Scan(&a.ID, &a.Level, &a.StateID, &a.DistrictID, &a.Title, &a.Message, &a.ValidFrom, &a.ValidTo,
		&a.CreatedByUser, &a.UpdatedByUser, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts an announcement.
func (r *Repository) Create(ctx context.Context, a *models.Announcement) error {
	const q = `INSERT INTO announcements (level, state_id, district_id, title, message, valid_from, valid_to, created_by_user)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, a.Level, a.StateID, a.DistrictID, a.Title, a.Message, a.ValidFrom, a.ValidTo, a.CreatedByUser).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

// GetByID returns one announcement.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.Announcement, error) {
	a, err := scanAnnouncement(r.pool.QueryRow(ctx, `SELECT `+columns+` FROM announcements WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.Wrap(apperr.NotFound, "announcement not found", err)
	}
	return a, err
}

// List returns announcements visible inside the scope, newest first. Only
// currently valid notices are returned when activeOnly is set.
func (r *Repository) List(ctx context.Context, scope Scope, activeOnly bool, now time.Time) ([]models.Announcement, error) {
	q := `SELECT ` + columns + ` FROM announcements`
	var conds []string
	var args []any

	if !scope.All {
		var orgConds []string
		if scope.StateID != nil {
			args = append(args, *scope.StateID)
			orgConds = append(orgConds, fmt.Sprintf(`(level = 'STATE' AND state_id = $%d)`, len(args)))
		}
		if scope.DistrictID != nil {
			args = append(args, *scope.DistrictID)
			orgConds = append(orgConds, fmt.Sprintf(`(level = 'DISTRICT' AND district_id = $%d)`, len(args)))
		}
		if len(orgConds) == 0 {
			return []models.Announcement{}, nil
		}
		conds = append(conds, `(`+strings.Join(orgConds, " OR ")+`)`)
	}
	if activeOnly {
		args = append(args, now)
		conds = append(conds, fmt.Sprintf(`valid_from <= $%d AND (valid_to IS NULL OR valid_to >= $%d)`, len(args), len(args)))
	}
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, " AND ")
	}
	q += ` ORDER BY valid_from DESC, id DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]models.Announcement, 0)
	for rows.Next() {
		var a models.Announcement
		if err := rows.Scan(&a.ID, &a.Level, &a.StateID, &a.DistrictID, &a.Title, &a.Message, &a.ValidFrom, &a.ValidTo,
			&a.CreatedByUser, &a.UpdatedByUser, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Update patches title, message and validity window; nil fields keep values.
func (r *Repository) Update(ctx context.Context, id, updatedBy int64, title, message *string, validFrom, validTo *time.Time) (*models.Announcement, error) {
	const q = `UPDATE announcements SET
		title = COALESCE($1, title),
		message = COALESCE($2, message),
		valid_from = COALESCE($3, valid_from),
		valid_to = COALESCE($4, valid_to),
		updated_by_user = $5,
		updated_at = NOW()
		WHERE id = $6
		RETURNING ` + columns
	a, err := scanAnnouncement(r.pool.QueryRow(ctx, q, title, message, validFrom, validTo, updatedBy, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.Wrap(apperr.NotFound, "announcement not found", err)
	}
	return a, err
}

// Delete removes an announcement.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "announcement not found")
	}
	return nil
}
