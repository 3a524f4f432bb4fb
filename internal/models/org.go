package models

import "time"

// OrgStatus is the lifecycle status of a state or district committee.
type OrgStatus string

const (
	OrgActive   OrgStatus = "ACTIVE"
	OrgInactive OrgStatus = "INACTIVE"
)

// MembershipStatus is the approval status of an agency member.
type MembershipStatus string

const (
	MembershipPending   MembershipStatus = "PENDING"
	MembershipActive    MembershipStatus = "ACTIVE"
	MembershipSuspended MembershipStatus = "SUSPENDED"
)

// StateCommittee is the top level of the organizational tree.
type StateCommittee struct {
	ID            int64     `json:"id"`
	StateCode     string    `json:"state_code"`
	StateName     string    `json:"state_name"`
	ContactPerson *string   `json:"contact_person,omitempty"`
	ContactPhone  *string   `json:"contact_phone,omitempty"`
	ContactEmail  *string   `json:"contact_email,omitempty"`
	Status        OrgStatus `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DistrictCommittee belongs to exactly one state.
type DistrictCommittee struct {
	ID            int64     `json:"id"`
	StateID       int64     `json:"state_id"`
	DistrictCode  string    `json:"district_code"`
	DistrictName  string    `json:"district_name"`
	ContactPerson *string   `json:"contact_person,omitempty"`
	ContactPhone  *string   `json:"contact_phone,omitempty"`
	ContactEmail  *string   `json:"contact_email,omitempty"`
	Status        OrgStatus `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AgencyMember belongs to exactly one district.
type AgencyMember struct {
	ID               int64            `json:"id"`
	DistrictID       int64            `json:"district_id"`
	AgencyCode       string           `json:"agency_code"`
	LegalName        string           `json:"legal_name"`
	TradeName        *string          `json:"trade_name,omitempty"`
	ContactPerson    string           `json:"contact_person"`
	ContactPhone     string           `json:"contact_phone"`
	ContactEmail     *string          `json:"contact_email,omitempty"`
	AddressLine1     *string          `json:"address_line1,omitempty"`
	AddressLine2     *string          `json:"address_line2,omitempty"`
	City             *string          `json:"city,omitempty"`
	Pincode          *string          `json:"pincode,omitempty"`
	GSTNumber        *string          `json:"gst_number,omitempty"`
	MembershipStatus MembershipStatus `json:"membership_status"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}
