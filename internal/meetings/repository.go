package meetings

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

const columns = `id, level, state_id, district_id, title, description, meeting_datetime, venue,
	created_by_user, updated_by_user, created_at, updated_at`

// Scope restricts which meetings a caller can see, mirroring announcement
// visibility.
type Scope struct {
	All        bool
	StateID    *int64
	DistrictID *int64
}

// Repository handles meeting schedule persistence.
type Repository struct {
	pool database.Pool
}

// NewRepository creates a meetings repository.
func NewRepository(pool database.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanMeeting(row pgx.Row) (*models.MeetingSchedule, error) {
	var m models.MeetingSchedule
	err := row.Scan(&m.ID, &m.Level, &m.StateID, &m.DistrictID, &m.Title, &m.Description, &m.MeetingDatetime, &m.Venue,
		&m.CreatedByUser, &m.UpdatedByUser, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a meeting schedule.
func (r *Repository) Create(ctx context.Context, m *models.MeetingSchedule) error {
	const q = `INSERT INTO meeting_schedules (level, state_id, district_id, title, description, meeting_datetime, venue, created_by_user)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, m.Level, m.StateID, m.DistrictID, m.Title, m.Description, m.MeetingDatetime, m.Venue, m.CreatedByUser).
		Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

// GetByID returns one meeting schedule.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.MeetingSchedule, error) {
	m, err := scanMeeting(r.pool.QueryRow(ctx, `SELECT `+columns+` FROM meeting_schedules WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.Wrap(apperr.NotFound, "meeting not found", err)
	}
	return m, err
}

// List returns meetings visible inside the scope, soonest first. With
// upcomingOnly set, past meetings are dropped.
func (r *Repository) List(ctx context.Context, scope Scope, upcomingOnly bool, now time.Time) ([]models.MeetingSchedule, error) {
	q := `SELECT ` + columns + ` FROM meeting_schedules`
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
			return []models.MeetingSchedule{}, nil
		}
		conds = append(conds, `(`+strings.Join(orgConds, " OR ")+`)`)
	}
	if upcomingOnly {
		args = append(args, now)
		conds = append(conds, fmt.Sprintf(`meeting_datetime >= $%d`, len(args)))
	}
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, " AND ")
	}
	q += ` ORDER BY meeting_datetime ASC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]models.MeetingSchedule, 0)
	for rows.Next() {
		var m models.MeetingSchedule
		if err := rows.Scan(&m.ID, &m.Level, &m.StateID, &m.DistrictID, &m.Title, &m.Description, &m.MeetingDatetime, &m.Venue,
			&m.CreatedByUser, &m.UpdatedByUser, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Update patches meeting details; nil fields keep existing values.
func (r *Repository) Update(ctx context.Context, id, updatedBy int64, title, description, venue *string, meetingAt *time.Time) (*models.MeetingSchedule, error) {
	const q = `UPDATE meeting_schedules SET
		title = COALESCE($1, title),
		description = COALESCE($2, description),
		venue = COALESCE($3, venue),
		meeting_datetime = COALESCE($4, meeting_datetime),
		updated_by_user = $5,
		updated_at = NOW()
		WHERE id = $6
		RETURNING ` + columns
	m, err := scanMeeting(r.pool.QueryRow(ctx, q, title, description, venue, meetingAt, updatedBy, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.Wrap(apperr.NotFound, "meeting not found", err)
	}
	return m, err
}

// Delete removes a meeting schedule.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM meeting_schedules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "meeting not found")
	}
	return nil
}
