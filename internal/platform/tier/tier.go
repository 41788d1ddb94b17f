// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package tier describes the role-scoped API surfaces.

The same resource handler is mounted once per tier. A tier only changes the
role gate in front of the routes and the view used to render responses; every
tier calls the same service methods.
*/
package tier

import (
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/platform/view"
)

// Tier is one API surface.
type Tier struct {
	Name   string
	Prefix string
	// Role gates every route of the tier. Empty means no gate.
	Role sec.Role
	View view.View
}

var (
	Public     = Tier{Name: "public", Prefix: "/api", View: view.Public}
	User       = Tier{Name: "user", Prefix: "/api/user", Role: sec.RoleUser, View: view.User}
	Moderator  = Tier{Name: "moderator", Prefix: "/api/moderator", Role: sec.RoleModerator, View: view.Moderator}
	Admin      = Tier{Name: "admin", Prefix: "/api/admin", Role: sec.RoleAdmin, View: view.Admin}
	SuperAdmin = Tier{Name: "super_admin", Prefix: "/api/super-admin", Role: sec.RoleSuperAdmin, View: view.SuperAdmin}
)

// All lists the tiers from least to most privileged.
func All() []Tier {
	return []Tier{Public, User, Moderator, Admin, SuperAdmin}
}

// # Capabilities

// Ops is the set of route groups a tier exposes for one resource.
type Ops uint16

const (
	// OpsRead covers list, get, related collections, count and search.
	OpsRead Ops = 1 << iota
	OpsCreate
	// OpsUpdate covers full (PUT) and partial (PATCH) updates.
	OpsUpdate
	OpsDelete
	// OpsText is the comment text-only update.
	OpsText
	// OpsSubFields are the account password, username and email updates.
	OpsSubFields
	// OpsRoles exposes an account's role set.
	OpsRoles
)

// OpsWrite is create, update and delete.
const OpsWrite = OpsCreate | OpsUpdate | OpsDelete

// Has reports whether every capability in want is present.
func (ops Ops) Has(want Ops) bool {
	return ops&want == want
}
