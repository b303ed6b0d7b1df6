package constants

import userModel "okoce_backend/internals/features/users/user/model"

const (
	RoleUser    = userModel.RoleUser
	RolePanitia = userModel.RolePanitia
	RoleAdmin   = userModel.RoleAdmin
)

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles   = []string{RoleUser, RolePanitia, RoleAdmin}
	StaffRoles = []string{RoleAdmin, RolePanitia}
	AdminOnly  = []string{RoleAdmin}
)
