package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jishnuMgit/hoardlinks-backend/internal/auth"
	"github.com/jishnuMgit/hoardlinks-backend/internal/models"
)

func TestCanCreateRole(t *testing.T) {
	tests := []struct {
		creator models.RoleType
		target  models.RoleType
		allowed bool
	}{
		{models.RoleAdmin, models.RoleAdmin, true},
		{models.RoleAdmin, models.RoleState, true},
		{models.RoleAdmin, models.RoleDistrict, true},
		{models.RoleAdmin, models.RoleAgency, true},

		{models.RoleState, models.RoleState, true},
		{models.RoleState, models.RoleDistrict, true},
		{models.RoleState, models.RoleAgency, true},
		{models.RoleState, models.RoleAdmin, false},

		{models.RoleDistrict, models.RoleDistrict, true},
		{models.RoleDistrict, models.RoleAgency, true},
		{models.RoleDistrict, models.RoleState, false},
		{models.RoleDistrict, models.RoleAdmin, false},

		{models.RoleAgency, models.RoleAgency, true},
		{models.RoleAgency, models.RoleDistrict, false},
		{models.RoleAgency, models.RoleState, false},
		{models.RoleAgency, models.RoleAdmin, false},
	}

	for _, tt := range tests {
		got := auth.CanCreateRole(tt.creator, tt.target)
		assert.Equal(t, tt.allowed, got, "%s creating %s", tt.creator, tt.target)
	}
}

func TestCanCreateRoleUnknownCreator(t *testing.T) {
	assert.False(t, auth.CanCreateRole(models.RoleType("GUEST"), models.RoleAgency))
}
