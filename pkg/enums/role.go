package enums

import "fmt"

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleCustodian Role = "Custodian"
)

var validRoles = []Role{
	RoleAdmin,
	RoleCustodian,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value matches the canonical role enum.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the role grants administrative capabilities.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// ParseRole converts the raw string to Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
