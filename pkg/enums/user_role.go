package enums

import "fmt"

// UserRole represents an app-level permissions role.
type UserRole string

const (
	UserRoleMember    UserRole = "member"
	UserRoleAdmin     UserRole = "admin"
	UserRoleModerator UserRole = "moderator"
)

var validUserRoles = []UserRole{
	UserRoleMember,
	UserRoleAdmin,
	UserRoleModerator,
}

// String implements fmt.Stringer.
func (r UserRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known UserRole.
func (r UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// IsApprover reports whether the role may approve swaps and manage content.
func (r UserRole) IsApprover() bool {
	return r == UserRoleAdmin || r == UserRoleModerator
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
