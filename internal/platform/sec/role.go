// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/taibuivan/folio/pkg/slice"
)

// # Roles

// Role represents an authorization level granted to an account.
type Role string

const (
	// Default role for registered readers
	RoleUser Role = "USER"

	// Can curate comments written by other readers
	RoleModerator Role = "MODERATOR"

	// Manages the catalog (authors, books, genres)
	RoleAdmin Role = "ADMIN"

	// Manages accounts
	RoleSuperAdmin Role = "SUPER_ADMIN"

	// Escape hatch that owns every comment and account.
	// It sits outside the chain and is the only role allowed to change role sets.
	RoleRoot Role = "ROOT"
)

// ParseRole converts an upper-case role name into a [Role].
func ParseRole(name string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(name)))
	if !role.Valid() {
		return "", fmt.Errorf("sec: unknown role %q", name)
	}
	return role, nil
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	return r == RoleRoot || r.level() > 0
}

// String implements fmt.Stringer.
func (r Role) String() string { return string(r) }

// # Role Hierarchy

// AtLeast reports whether a held role meets the required one.
//
// The chain USER < MODERATOR < ADMIN < SUPER_ADMIN is totally ordered.
// ROOT is incomparable to the chain and only satisfies itself.
func AtLeast(held, required Role) bool {
	if held == RoleRoot || required == RoleRoot {
		return held == required
	}
	if held.level() == 0 || required.level() == 0 {
		return false
	}
	return held.level() >= required.level()
}

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return AtLeast(r, target)
}

// level maps a chain role to a numeric hierarchy level for comparison logic.
func (r Role) level() int {
	switch r {
	case RoleSuperAdmin:
		return 40
	case RoleAdmin:
		return 30
	case RoleModerator:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}

// # Role Sets

// RoleSet is the collection of roles held by one principal.
type RoleSet []Role

// DefaultRoles is the role set given to new accounts.
func DefaultRoles() RoleSet { return RoleSet{RoleUser} }

// AtLeast reports whether any held role meets required.
func (set RoleSet) AtLeast(required Role) bool {
	for _, held := range set {
		if AtLeast(held, required) {
			return true
		}
	}
	return false
}

// Has reports whether the exact role is present.
func (set RoleSet) Has(role Role) bool {
	return slices.Contains(set, role)
}

// Highest returns the highest chain role held, or "" if the set holds none.
// ROOT is ignored because it has no place on the chain.
func (set RoleSet) Highest() Role {
	var best Role
	for _, held := range set {
		if held.level() > best.level() {
			best = held
		}
	}
	return best
}

// Normalize returns a sorted copy without duplicates.
func (set RoleSet) Normalize() RoleSet {
	if set == nil {
		return nil
	}
	out := slices.Clone(set)
	slices.SortFunc(out, func(a, b Role) int {
		if a.level() != b.level() {
			return a.level() - b.level()
		}
		return strings.Compare(string(a), string(b))
	})
	return slices.Compact(out)
}

// Equal reports whether both sets hold the same roles, ignoring order and duplicates.
func (set RoleSet) Equal(other RoleSet) bool {
	return slices.Equal(set.Normalize(), other.Normalize())
}

// Strings returns the role names for storage.
func (set RoleSet) Strings() []string {
	return slice.OrEmpty(slice.Map(set, Role.String))
}

// ParseRoleSet builds a set from stored names.
func ParseRoleSet(names []string) (RoleSet, error) {
	set := make(RoleSet, 0, len(names))
	for _, name := range names {
		role, err := ParseRole(name)
		if err != nil {
			return nil, err
		}
		set = append(set, role)
	}
	return set, nil
}

// UnmarshalJSON rejects unknown role names.
func (r *Role) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	role, err := ParseRole(name)
	if err != nil {
		return err
	}
	*r = role
	return nil
}
