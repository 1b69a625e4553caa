package access

import (
	"fmt"
	"strings"
)

const (
	RegularUser Role = 10
	JuniorAdmin Role = 1_000
	SuperAdmin  Role = 10_000
)

type Role int64

func (r Role) ToString() string {
	switch r {
	case SuperAdmin:
		return "super_admin"
	case JuniorAdmin:
		return "admin"
	default:
		return "user"
	}
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.ToString()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	role, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = role
	return nil
}

func ParseRole(s string) (Role, error) {
	switch s {
	case "super_admin":
		return SuperAdmin, nil
	case "admin":
		return JuniorAdmin, nil
	case "user":
		return RegularUser, nil
	}
	return RegularUser, fmt.Errorf("unknown role %q", s)
}

// NormalizeEmail lowercases and trims an email the same way at registration,
// login and super admin comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ResolveRole picks the effective role for an identity: the configured super
// admin email always wins, then the persisted assignment, then RegularUser.
// A persisted SuperAdmin on any other email is not honored.
func ResolveRole(email, superAdminEmail string, persisted *Role) Role {
	if superAdminEmail != "" && NormalizeEmail(email) == NormalizeEmail(superAdminEmail) {
		return SuperAdmin
	}
	if persisted == nil || *persisted == SuperAdmin {
		return RegularUser
	}
	switch *persisted {
	case JuniorAdmin, RegularUser:
		return *persisted
	}
	return RegularUser
}
