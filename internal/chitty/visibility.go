package chitty

import (
	"github.com/jishnuMgit/hoardlinks-backend/internal/models"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/apperr"
)

// SchemeFilter is the pure output of visibility resolution. The repository
// translates it into SQL; an empty filter never reaches the datastore.
type SchemeFilter struct {
	// All disables filtering entirely (ADMIN).
	All bool
	// AllStateLevel includes every STATE-level scheme.
	AllStateLevel bool
	// StateID includes STATE-level schemes owned by this state.
	StateID *int64
	// AllDistrictLevel includes every DISTRICT-level scheme.
	AllDistrictLevel bool
	// DistrictID includes DISTRICT-level schemes owned by this district.
	DistrictID *int64
	// MemberAgencyID, when set, restricts RUNNING/CLOSED buckets to schemes
	// with an APPROVED member of this agency.
	MemberAgencyID *int64
}

// ResolveVisibility computes which schemes an actor may see:
//
//	AGENCY:   all STATE-level schemes + DISTRICT-level schemes of its district
//	DISTRICT: DISTRICT-level schemes of its own district only
//	STATE:    all DISTRICT-level schemes + STATE-level schemes of its state
//	ADMIN:    unrestricted
//
// Pure; fails Unauthorized when the actor has no resolvable org reference.
func ResolveVisibility(actor models.Actor) (SchemeFilter, error) {
	switch actor.Role {
	case models.RoleAdmin:
		return SchemeFilter{All: true}, nil
	case models.RoleAgency:
		if actor.AgencyID == nil || actor.DistrictID == nil {
			return SchemeFilter{}, apperr.New(apperr.Unauthorized, "no agency linked to this user")
		}
		return SchemeFilter{
			AllStateLevel:  true,
			DistrictID:     actor.DistrictID,
			MemberAgencyID: actor.AgencyID,
		}, nil
	case models.RoleDistrict:
		if actor.DistrictID == nil {
			return SchemeFilter{}, apperr.New(apperr.Unauthorized, "no district linked to this user")
		}
		return SchemeFilter{DistrictID: actor.DistrictID}, nil
	case models.RoleState:
		if actor.StateID == nil {
			return SchemeFilter{}, apperr.New(apperr.Unauthorized, "no state linked to this user")
		}
		return SchemeFilter{AllDistrictLevel: true, StateID: actor.StateID}, nil
	}
	return SchemeFilter{}, apperr.New(apperr.Unauthorized, "unknown role")
}
