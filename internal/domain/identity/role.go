package identity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"slices"
)

// PortalRole is an access tier granted to a portal user
type PortalRole string

const (
	RolePortalUser       PortalRole = "ROLE_PORTAL_USER"
	RolePortalAdmin      PortalRole = "ROLE_PORTAL_ADMIN"
	RolePortalSuperAdmin PortalRole = "ROLE_PORTAL_SUPERADMIN"
)

// IsValid reports whether the role is one of the known tiers
func (r PortalRole) IsValid() bool {
	switch r {
	case RolePortalUser, RolePortalAdmin, RolePortalSuperAdmin:
		return true
	}
	return false
}

// String implements fmt.Stringer
func (r PortalRole) String() string {
	return string(r)
}

// RoleSet is the set of roles held by a user. It is persisted as a JSON array.
type RoleSet []PortalRole

// NewRoleSet builds a deduplicated role set, preserving first-seen order
func NewRoleSet(roles ...PortalRole) RoleSet {
	set := make(RoleSet, 0, len(roles))
	for _, r := range roles {
		if !slices.Contains(set, r) {
			set = append(set, r)
		}
	}
	return set
}

// Has reports whether the set contains the role
func (s RoleSet) Has(role PortalRole) bool {
	return slices.Contains(s, role)
}

// With returns a copy of the set with the role added
func (s RoleSet) With(role PortalRole) RoleSet {
	if s.Has(role) {
		return slices.Clone(s)
	}
	return append(slices.Clone(s), role)
}

// Without returns a copy of the set with the role removed
func (s RoleSet) Without(role PortalRole) RoleSet {
	out := make(RoleSet, 0, len(s))
	for _, r := range s {
		if r != role {
			out = append(out, r)
		}
	}
	return out
}

// Strings returns the roles as plain strings
func (s RoleSet) Strings() []string {
	out := make([]string, len(s))
	for i, r := range s {
		out[i] = string(r)
	}
	return out
}

// Value implements driver.Valuer
func (s RoleSet) Value() (driver.Value, error) {
	if s == nil {
		s = RoleSet{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (s *RoleSet) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*s = RoleSet{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into RoleSet", value)
	}
	var roles RoleSet
	if err := json.Unmarshal(raw, &roles); err != nil {
		return err
	}
	*s = roles
	return nil
}

// ParseRoles converts raw role names into a RoleSet, ignoring unknown values
func ParseRoles(raw []string) RoleSet {
	roles := make([]PortalRole, 0, len(raw))
	for _, r := range raw {
		role := PortalRole(r)
		if role.IsValid() {
			roles = append(roles, role)
		}
	}
	return NewRoleSet(roles...)
}
