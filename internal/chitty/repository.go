package chitty

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

const schemeColumns = `id, chitty_code, chitty_name, level, state_id, district_id,
	status, chitty_amount, duration_months, lot_time, created_at, updated_at`

const bidColumns = `id, auction_id, chitty_id, cycle_id, month_index, member_id,
	bid_amount, bid_time, is_winning_bid`

// Repository handles chitty scheme, cycle, member and bid persistence.
type Repository struct {
	pool database.Pool
}

// NewRepository creates a chitty repository.
func NewRepository(pool database.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanScheme(row pgx.Row) (*models.ChittyScheme, error) {
	var s models.ChittyScheme
	err := row.Scan(&s.ID, &s.ChittyCode, &s.ChittyName, &s.Level, &s.StateID, &s.DistrictID,
		&s.Status, &s.ChittyAmount, &s.DurationMonths, &s.LotTime, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetScheme returns a scheme by ID.
func (r *Repository) GetScheme(ctx context.Context, id int64) (*models.ChittyScheme, error) {
	s, err := scanScheme(r.pool.QueryRow(ctx, `SELECT `+schemeColumns+` FROM chitty_schemes WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.Wrap(apperr.NotFound, "chitty not found", err)
	}
	return s, err
}

// ListByStatus returns schemes in one status bucket, restricted by the
// visibility filter. RUNNING/CLOSED buckets additionally require an APPROVED
// membership of the filter's agency; OPEN schemes stay browsable.
func (r *Repository) ListByStatus(ctx context.Context, status models.ChittyStatus, f SchemeFilter) ([]models.ChittyScheme, error) {
	q := `SELECT ` + schemeColumns + ` FROM chitty_schemes c WHERE c.status = $1`
	args := []any{status}

	if !f.All {
		var conds []string
		if f.AllStateLevel {
			conds = append(conds, `c.level = 'STATE'`)
		} else if f.StateID != nil {
			args = append(args, *f.StateID)
			conds = append(conds, fmt.Sprintf(`(c.level = 'STATE' AND c.state_id = $%d)`, len(args)))
		}
		if f.AllDistrictLevel {
			conds = append(conds, `c.level = 'DISTRICT'`)
		} else if f.DistrictID != nil {
			args = append(args, *f.DistrictID)
			conds = append(conds, fmt.Sprintf(`(c.level = 'DISTRICT' AND c.district_id = $%d)`, len(args)))
		}
		if len(conds) == 0 {
			return nil, apperr.New(apperr.Unauthorized, "no visible scheme scope")
		}
		q += ` AND (` + strings.Join(conds, " OR ") + `)`
	}

	if status != models.ChittyOpen && f.MemberAgencyID != nil {
		args = append(args, *f.MemberAgencyID)
		q += fmt.Sprintf(` AND EXISTS (SELECT 1 FROM chitty_members m
			WHERE m.chitty_id = c.id AND m.agency_id = $%d AND m.join_status = 'APPROVED')`, len(args))
	}

	q += ` ORDER BY c.id DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]models.ChittyScheme, 0)
	for rows.Next() {
		var s models.ChittyScheme
		if err := rows.Scan(&s.ID, &s.ChittyCode, &s.ChittyName, &s.Level, &s.StateID, &s.DistrictID,
			&s.Status, &s.ChittyAmount, &s.DurationMonths, &s.LotTime, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// ListCycles returns a scheme's cycles ordered by cycle_no ascending.
func (r *Repository) ListCycles(ctx context.Context, chittyID int64) ([]models.ChittyCycle, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, chitty_id, cycle_no, status, start_date, created_at, updated_at
		FROM chitty_cycles WHERE chitty_id = $1 ORDER BY cycle_no ASC`, chittyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]models.ChittyCycle, 0)
	for rows.Next() {
		var cy models.ChittyCycle
		if err := rows.Scan(&cy.ID, &cy.ChittyID, &cy.CycleNo, &cy.Status, &cy.StartDate, &cy.CreatedAt, &cy.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, cy)
	}
	return list, rows.Err()
}

// GetMemberForAgency returns the agency's first enrollment slot in a scheme,
// or nil when the agency holds none.
func (r *Repository) GetMemberForAgency(ctx context.Context, chittyID, agencyID int64) (*models.ChittyMember, error) {
	const q = `SELECT id, chitty_id, agency_id, member_no, join_status, remarks, join_date, exit_date, created_at, updated_at
		FROM chitty_members WHERE chitty_id = $1 AND agency_id = $2 ORDER BY member_no ASC LIMIT 1`
	var m models.ChittyMember
	err := r.pool.QueryRow(ctx, q, chittyID, agencyID).Scan(&m.ID, &m.ChittyID, &m.AgencyID, &m.MemberNo,
		&m.JoinStatus, &m.Remarks, &m.JoinDate, &m.ExitDate, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// EnrollResult reports the member_no range allocated by one enrollment.
type EnrollResult struct {
	StartNo  int `json:"start_member_no"`
	EndNo    int `json:"end_member_no"`
	Inserted int `json:"inserted"`
}

// Enroll allocates count sequential member numbers for an agency in one
// transaction. The scheme row is locked first so concurrent enrollments
// serialize on the read-max-then-insert sequence; allocation stays gapless
// and unique under any interleaving.
func (r *Repository) Enroll(ctx context.Context, chittyID, agencyID int64, count int, remarks *string, joinDate, exitDate *time.Time) (*EnrollResult, error) {
	if count <= 0 {
		return nil, apperr.New(apperr.InvalidInput, "number_of_req must be a positive integer")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin enroll tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var schemeID int64
	err = tx.QueryRow(ctx, `SELECT id FROM chitty_schemes WHERE id = $1 FOR UPDATE`, chittyID).Scan(&schemeID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.Wrap(apperr.NotFound, "chitty not found", err)
	}
	if err != nil {
		return nil, err
	}

	var maxNo int
	if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(member_no), 0) FROM chitty_members WHERE chitty_id = $1`, chittyID).Scan(&maxNo); err != nil {
		return nil, err
	}

	startNo := maxNo + 1
	endNo := maxNo + count
	tag, err := tx.Exec(ctx, `INSERT INTO chitty_members (chitty_id, agency_id, member_no, join_status, remarks, join_date, exit_date)
		SELECT $1, $2, gs, 'REQUESTED', $3, $4, $5 FROM generate_series($6::int, $7::int) AS gs`,
		chittyID, agencyID, remarks, joinDate, exitDate, startNo, endNo)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.Wrap(apperr.Conflict, "member number already allocated", err)
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit enroll tx: %w", err)
	}
	return &EnrollResult{StartNo: startNo, EndNo: endNo, Inserted: int(tag.RowsAffected())}, nil
}

// InsertBid appends one bid row. Multiple bids per member and month are
// allowed; ranking happens at read time.
func (r *Repository) InsertBid(ctx context.Context, b *models.AuctionBid) error {
	const q = `INSERT INTO auction_bids (auction_id, chitty_id, cycle_id, month_index, member_id, bid_amount)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, bid_time, is_winning_bid`
	return r.pool.QueryRow(ctx, q, b.AuctionID, b.ChittyID, b.CycleID, b.MonthIndex, b.MemberID, b.BidAmount).
		Scan(&b.ID, &b.BidTime, &b.IsWinningBid)
}

// LeadingBids returns every bid matching the scheme's maximum amount, ordered
// by ascending bid_time (earliest highest bidder first). Zero bids yield a
// nil amount and an empty slice, not an error.
func (r *Repository) LeadingBids(ctx context.Context, chittyID int64) (*int64, []models.AuctionBid, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+bidColumns+` FROM auction_bids
		WHERE chitty_id = $1
		  AND bid_amount = (SELECT MAX(bid_amount) FROM auction_bids WHERE chitty_id = $1)
		ORDER BY bid_time ASC`, chittyID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	list := make([]models.AuctionBid, 0)
	for rows.Next() {
		var b models.AuctionBid
		if err := rows.Scan(&b.ID, &b.AuctionID, &b.ChittyID, &b.CycleID, &b.MonthIndex, &b.MemberID,
			&b.BidAmount, &b.BidTime, &b.IsWinningBid); err != nil {
			return nil, nil, err
		}
		list = append(list, b)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	if len(list) == 0 {
		return nil, list, nil
	}
	amount := list[0].BidAmount
	return &amount, list, nil
}

// LeadingBidForCycle returns the single leading bid of one cycle, or nil when
// the cycle has no bids.
func (r *Repository) LeadingBidForCycle(ctx context.Context, chittyID, cycleID int64) (*models.AuctionBid, error) {
	const q = `SELECT ` + bidColumns + ` FROM auction_bids
		WHERE chitty_id = $1 AND cycle_id = $2
		ORDER BY bid_amount DESC, bid_time ASC LIMIT 1`
	var b models.AuctionBid
	err := r.pool.QueryRow(ctx, q, chittyID, cycleID).Scan(&b.ID, &b.AuctionID, &b.ChittyID, &b.CycleID,
		&b.MonthIndex, &b.MemberID, &b.BidAmount, &b.BidTime, &b.IsWinningBid)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
