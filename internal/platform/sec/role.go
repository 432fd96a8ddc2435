// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to a marketplace account.
type UserRole string

const (
	// Full catalogue and operations access
	RoleAdmin UserRole = "admin"

	// Can review guide listings and verification requests
	RoleModerator UserRole = "moderator"

	// A registered tour guide managing their own listing
	RoleGuide UserRole = "guide"

	// Default role for travellers browsing and booking guides
	RoleTraveler UserRole = "traveler"
)

// Roles lists every known role, highest first.
var Roles = []UserRole{RoleAdmin, RoleModerator, RoleGuide, RoleTraveler}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// IsValid reports whether r is one of [Roles].
func (r UserRole) IsValid() bool {
	return r.level() > 0
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 40
	case RoleModerator:
		return 30
	case RoleGuide:
		return 20
	case RoleTraveler:
		return 10
	default:
		return 0
	}
}
