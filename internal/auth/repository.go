package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jishnuMgit/hoardlinks-backend/internal/models"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/apperr"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/database"
)

const userColumns = `id, login_id, password_hash, mobile_number, role_type,
	state_id, district_id, agency_id, fcm_token, device_type, img_url,
	is_active, last_login_at, created_at, updated_at`

// Repository handles user account persistence.
type Repository struct {
	pool database.Pool
}

// NewRepository creates an auth repository.
func NewRepository(pool database.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanUser(row pgx.Row) (*models.UserAccount, error) {
	var u models.UserAccount
	err := row.Scan(&u.ID, &u.LoginID, &u.PasswordHash, &u.MobileNumber, &u.RoleType,
		&u.StateID, &u.DistrictID, &u.AgencyID, &u.FCMToken, &u.DeviceType, &u.ImgURL,
		&u.IsActive, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID returns an account by ID.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.UserAccount, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM user_accounts WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.Wrap(apperr.NotFound, "user not found", err)
	}
	return u, err
}

// GetByLoginID returns an account by login_id.
func (r *Repository) GetByLoginID(ctx context.Context, loginID string) (*models.UserAccount, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM user_accounts WHERE login_id = $1`, loginID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.Wrap(apperr.NotFound, "user not found", err)
	}
	return u, err
}

// MobileNumberExists reports whether any account uses the mobile number.
func (r *Repository) MobileNumberExists(ctx context.Context, mobile string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM user_accounts WHERE mobile_number = $1)`, mobile).Scan(&exists)
	return exists, err
}

// Create inserts a new account. Unique violations on login_id or mobile_number
// surface as Conflict.
func (r *Repository) Create(ctx context.Context, u *models.UserAccount) error {
	const q = `INSERT INTO user_accounts
		(login_id, password_hash, mobile_number, role_type, state_id, district_id, agency_id, fcm_token, device_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, is_active, created_at, updated_at`
	err := r.pool.QueryRow(ctx, q, u.LoginID, u.PasswordHash, u.MobileNumber, u.RoleType,
		u.StateID, u.DistrictID, u.AgencyID, u.FCMToken, u.DeviceType).
		Scan(&u.ID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if database.IsUniqueViolation(err) {
		return apperr.Wrap(apperr.Conflict, "login_id or mobile_number already exists", err)
	}
	return err
}

// TouchLogin records a successful login: device type and last_login_at.
func (r *Repository) TouchLogin(ctx context.Context, id int64, deviceType string, at time.Time) error {
	const q = `UPDATE user_accounts SET device_type = $1, last_login_at = $2, updated_at = NOW() WHERE id = $3`
	_, err := r.pool.Exec(ctx, q, deviceType, at, id)
	return err
}

// UpdateImageURL sets the profile image URL for an account.
func (r *Repository) UpdateImageURL(ctx context.Context, id int64, url string) error {
	const q = `UPDATE user_accounts SET img_url = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.pool.Exec(ctx, q, url, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "user not found")
	}
	return nil
}

// ResolveActor loads the actor descriptor for an account. AGENCY actors get
// their owning district resolved so visibility rules can apply.
func (r *Repository) ResolveActor(ctx context.Context, userID int64) (models.Actor, error) {
	u, err := r.GetByID(ctx, userID)
	if err != nil {
		return models.Actor{}, err
	}
	actor := models.ActorFromUser(u)
	if actor.Role == models.RoleAgency && actor.AgencyID != nil {
		var districtID int64
		err := r.pool.QueryRow(ctx, `SELECT district_id FROM agency_members WHERE id = $1`, *actor.AgencyID).Scan(&districtID)
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Actor{}, apperr.Wrap(apperr.NotFound, "agency not found", err)
		}
		if err != nil {
			return models.Actor{}, err
		}
		actor.DistrictID = &districtID
	}
	return actor, nil
}

// OrgSummary is the joined org node shown on the profile.
type OrgSummary struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Profile is the account joined with its org node for GET /profile.
type Profile struct {
	models.UserAccount
	State    *OrgSummary `json:"state_committee,omitempty"`
	District *OrgSummary `json:"district_committee,omitempty"`
	Agency   *OrgSummary `json:"agency_member,omitempty"`
}

// GetProfile returns the account with its owning org node resolved.
func (r *Repository) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	u, err := r.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	p := &Profile{UserAccount: *u}
	switch {
	case u.StateID != nil:
		var s OrgSummary
		if err := r.pool.QueryRow(ctx, `SELECT id, state_code, state_name FROM state_committees WHERE id = $1`, *u.StateID).
			Scan(&s.ID, &s.Code, &s.Name); err == nil {
			p.State = &s
		}
	case u.DistrictID != nil:
		var d OrgSummary
		if err := r.pool.QueryRow(ctx, `SELECT id, district_code, district_name FROM district_committees WHERE id = $1`, *u.DistrictID).
			Scan(&d.ID, &d.Code, &d.Name); err == nil {
			p.District = &d
		}
	case u.AgencyID != nil:
		var a OrgSummary
		if err := r.pool.QueryRow(ctx, `SELECT id, agency_code, legal_name FROM agency_members WHERE id = $1`, *u.AgencyID).
			Scan(&a.ID, &a.Code, &a.Name); err == nil {
			p.Agency = &a
		}
	}
	return p, nil
}
