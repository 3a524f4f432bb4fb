package chitty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jishnuMgit/hoardlinks-backend/internal/chitty"
	"github.com/jishnuMgit/hoardlinks-backend/internal/models"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/apperr"
)

func ptr(v int64) *int64 { return &v }

func TestResolveVisibility(t *testing.T) {
	tests := []struct {
		name     string
		actor    models.Actor
		expected chitty.SchemeFilter
	}{
		{
			name:     "admin sees everything",
			actor:    models.Actor{ID: 1, Role: models.RoleAdmin},
			expected: chitty.SchemeFilter{All: true},
		},
		{
			name:  "agency sees all state level plus own district",
			actor: models.Actor{ID: 2, Role: models.RoleAgency, AgencyID: ptr(40), DistrictID: ptr(7)},
			expected: chitty.SchemeFilter{
				AllStateLevel:  true,
				DistrictID:     ptr(7),
				MemberAgencyID: ptr(40),
			},
		},
		{
			name:     "district sees only its own district",
			actor:    models.Actor{ID: 3, Role: models.RoleDistrict, DistrictID: ptr(7)},
			expected: chitty.SchemeFilter{DistrictID: ptr(7)},
		},
		{
			name:     "state sees all district level plus its own state",
			actor:    models.Actor{ID: 4, Role: models.RoleState, StateID: ptr(1)},
			expected: chitty.SchemeFilter{AllDistrictLevel: true, StateID: ptr(1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := chitty.ResolveVisibility(tt.actor)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, filter)
		})
	}
}

func TestResolveVisibilityMissingOrgRef(t *testing.T) {
	tests := []struct {
		name  string
		actor models.Actor
	}{
		{"agency without agency ref", models.Actor{ID: 1, Role: models.RoleAgency, DistrictID: ptr(7)}},
		{"agency without resolved district", models.Actor{ID: 1, Role: models.RoleAgency, AgencyID: ptr(40)}},
		{"district without district ref", models.Actor{ID: 2, Role: models.RoleDistrict}},
		{"state without state ref", models.Actor{ID: 3, Role: models.RoleState}},
		{"unknown role", models.Actor{ID: 4, Role: models.RoleType("GUEST")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := chitty.ResolveVisibility(tt.actor)
			require.Error(t, err)
			assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
		})
	}
}
