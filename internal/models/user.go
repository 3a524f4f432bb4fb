package models

import (
	"time"
)

// RoleType represents the organizational role of a user account.
type RoleType string

const (
	RoleAdmin    RoleType = "ADMIN"
	RoleState    RoleType = "STATE"
	RoleDistrict RoleType = "DISTRICT"
	RoleAgency   RoleType = "AGENCY"
)

// Valid reports whether r is a known role.
func (r RoleType) Valid() bool {
	switch r {
	case RoleAdmin, RoleState, RoleDistrict, RoleAgency:
		return true
	}
	return false
}

// UserAccount represents a login account tied to exactly one org node
// matching its role (ADMIN has none).
type UserAccount struct {
	ID           int64      `json:"id"`
	LoginID      string     `json:"login_id"`
	PasswordHash string     `json:"-"`
	MobileNumber string     `json:"mobile_number"`
	RoleType     RoleType   `json:"role_type"`
	StateID      *int64     `json:"state_id,omitempty"`
	DistrictID   *int64     `json:"district_id,omitempty"`
	AgencyID     *int64     `json:"agency_id,omitempty"`
	FCMToken     *string    `json:"fcm_token,omitempty"`
	DeviceType   *string    `json:"device_type,omitempty"`
	ImgURL       *string    `json:"img_url,omitempty"`
	IsActive     bool       `json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Actor is the authenticated caller descriptor passed explicitly into core
// functions. Org references come from the account row; for AGENCY actors
// DistrictID carries the owning district of the agency once resolved.
type Actor struct {
	ID         int64
	Role       RoleType
	StateID    *int64
	DistrictID *int64
	AgencyID   *int64
}

// ActorFromUser builds an Actor from a user account row.
func ActorFromUser(u *UserAccount) Actor {
	return Actor{
		ID:         u.ID,
		Role:       u.RoleType,
		StateID:    u.StateID,
		DistrictID: u.DistrictID,
		AgencyID:   u.AgencyID,
	}
}
