// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # Roles

// UserRole is the authorization level carried in a token.
type UserRole string

const (
	RoleAdmin UserRole = "admin"

	// Can delete documents uploaded by anyone.
	RoleModerator UserRole = "moderator"

	// Can upload, merge and patch documents.
	RoleCharter UserRole = "charter"

	// Read-only.
	RoleMember UserRole = "member"
)

// AtLeast reports whether r meets or exceeds target.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 40
	case RoleModerator:
		return 30
	case RoleCharter:
		return 20
	case RoleMember:
		return 10
	default:
		return 0
	}
}
