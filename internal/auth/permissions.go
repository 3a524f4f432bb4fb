package auth

import "github.com/jishnuMgit/hoardlinks-backend/internal/models"

// creatableRoles is the static capability matrix: which role_types each role
// may create accounts for. Kept as pure data rather than scattered branches.
var creatableRoles = map[models.RoleType][]models.RoleType{
	models.RoleAdmin:    {models.RoleAdmin, models.RoleState, models.RoleDistrict, models.RoleAgency},
	models.RoleState:    {models.RoleState, models.RoleDistrict, models.RoleAgency},
	models.RoleDistrict: {models.RoleDistrict, models.RoleAgency},
	models.RoleAgency:   {models.RoleAgency},
}

// CanCreateRole reports whether an account with creator role may register an
// account with the target role.
func CanCreateRole(creator, target models.RoleType) bool {
	for _, r := range creatableRoles[creator] {
		if r == target {
			return true
		}
	}
	return false
}
