package agencies

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jishnuMgit/hoardlinks-backend/internal/models"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/apperr"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/database"
)

const columns = `id, district_id, agency_code, legal_name, trade_name, contact_person, contact_phone,
	contact_email, address_line1, address_line2, city, pincode, gst_number, membership_status, created_at, updated_at`

// Repository handles agency member persistence.
type Repository struct {
	pool database.Pool
}

// NewRepository creates an agencies repository.
func NewRepository(pool database.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanAgency(row pgx.Row) (*models.AgencyMember, error) {
	var a models.AgencyMember
	err := row.Scan(&a.ID, &a.DistrictID, &a.AgencyCode, &a.LegalName, &a.TradeName, &a.ContactPerson, &a.ContactPhone,
		&a.ContactEmail, &a.AddressLine1, &a.AddressLine2, &a.City, &a.Pincode, &a.GSTNumber, &a.MembershipStatus, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// DistrictExists reports whether a district committee with the ID exists.
func (r *Repository) DistrictExists(ctx context.Context, districtID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM district_committees WHERE id = $1)`, districtID).Scan(&exists)
	return exists, err
}

// Create inserts an agency member under its parent district.
func (r *Repository) Create(ctx context.Context, a *models.AgencyMember) error {
	const q = `INSERT INTO agency_members (district_id, agency_code, legal_name, trade_name, contact_person, contact_phone,
		contact_email, address_line1, address_line2, city, pincode, gst_number, membership_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, q, a.DistrictID, a.AgencyCode, a.LegalName, a.TradeName, a.ContactPerson, a.ContactPhone,
		a.ContactEmail, a.AddressLine1, a.AddressLine2, a.City, a.Pincode, a.GSTNumber, a.MembershipStatus).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if database.IsUniqueViolation(err) {
		return apperr.Wrap(apperr.Conflict, "agency with this code already exists", err)
	}
	return err
}

// GetByID returns an agency member by ID.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.AgencyMember, error) {
	a, err := scanAgency(r.pool.QueryRow(ctx, `SELECT `+columns+` FROM agency_members WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.Wrap(apperr.NotFound, "agency not found", err)
	}
	return a, err
}

// List returns agency members, optionally restricted to one district.
func (r *Repository) List(ctx context.Context, districtID *int64) ([]models.AgencyMember, error) {
	q := `SELECT ` + columns + ` FROM agency_members`
	args := []any{}
	if districtID != nil {
		q += ` WHERE district_id = $1`
		args = append(args, *districtID)
	}
	q += ` ORDER BY id`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]models.AgencyMember, 0)
	for rows.Next() {
		var a models.AgencyMember
		if err := rows.Scan(&a.ID, &a.DistrictID, &a.AgencyCode, &a.LegalName, &a.TradeName, &a.ContactPerson, &a.ContactPhone,
			&a.ContactEmail, &a.AddressLine1, &a.AddressLine2, &a.City, &a.Pincode, &a.GSTNumber, &a.MembershipStatus, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// UpdateFields carries optional patch values for an agency member.
type UpdateFields struct {
	AgencyCode       *string
	LegalName        *string
	TradeName        *string
	ContactPerson    *string
	ContactPhone     *string
	ContactEmail     *string
	AddressLine1     *string
	AddressLine2     *string
	City             *string
	Pincode          *string
	GSTNumber        *string
	MembershipStatus *string
}

// Update patches an agency member; nil fields keep existing values.
func (r *Repository) Update(ctx context.Context, id int64, f UpdateFields) (*models.AgencyMember, error) {
	const q = `UPDATE agency_members SET
		agency_code = COALESCE($1, agency_code),
		legal_name = COALESCE($2, legal_name),
		trade_name = COALESCE($3, trade_name),
		contact_person = COALESCE($4, contact_person),
		contact_phone = COALESCE($5, contact_phone),
		contact_email = COALESCE($6, contact_email),
		address_line1 = COALESCE($7, address_line1),
		address_line2 = COALESCE($8, address_line2),
		city = COALESCE($9, city),
		pincode = COALESCE($10, pincode),
		gst_number = COALESCE($11, gst_number),
		membership_status = COALESCE($12, membership_status),
		updated_at = NOW()
		WHERE id = $13
		RETURNING ` + columns
	a, err := scanAgency(r.pool.QueryRow(ctx, q, f.AgencyCode, f.LegalName, f.TradeName, f.ContactPerson, f.ContactPhone,
		f.ContactEmail, f.AddressLine1, f.AddressLine2, f.City, f.Pincode, f.GSTNumber, f.MembershipStatus, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.Wrap(apperr.NotFound, "agency not found", err)
	}
	if database.IsUniqueViolation(err) {
		return nil, apperr.Wrap(apperr.Conflict, "agency with this code already exists", err)
	}
	return a, err
}
