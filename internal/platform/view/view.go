// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package view decides which fields of a resource a caller may see.

Every resource declares its fields in order, each tagged with the lowest [View]
that reveals it. Projecting at a view keeps the fields whose tag is at or below
that view and drops the rest. Fields tagged [None] never leave the process.
*/
package view

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/pkg/slice"
)

// # Views

// View is a visibility level. Higher views reveal a superset of lower ones.
type View int

const (
	// None marks write-only fields such as password digests.
	None View = iota
	Public
	User
	Moderator
	Admin
	SuperAdmin
)

// String implements fmt.Stringer.
func (v View) String() string {
	switch v {
	case None:
		return "none"
	case Public:
		return "public"
	case User:
		return "user"
	case Moderator:
		return "moderator"
	case Admin:
		return "admin"
	case SuperAdmin:
		return "super_admin"
	default:
		return fmt.Sprintf("view(%d)", int(v))
	}
}

// Reveals reports whether a field tagged with field is visible at v.
func (v View) Reveals(field View) bool {
	return field != None && field <= v
}

// For returns the view of the highest chain role in roles.
// Callers without a chain role (anonymous, or holding only ROOT) see [Public].
func For(roles sec.RoleSet) View {
	switch roles.Highest() {
	case sec.RoleSuperAdmin:
		return SuperAdmin
	case sec.RoleAdmin:
		return Admin
	case sec.RoleModerator:
		return Moderator
	case sec.RoleUser:
		return User
	default:
		return Public
	}
}

// # Fields

// Field is one named, view-tagged value of a resource.
// Value is marshalled with encoding/json; nil pointers render as null.
type Field struct {
	Name  string
	View  View
	Value any
}

// Source is anything that can describe itself as an ordered field list.
type Source interface {
	Fields() []Field
}

// # Projection

// Projection is the visible subset of a [Source], in declaration order.
// A Projection is itself a Source, so projecting it again yields the same fields.
type Projection struct {
	fields []Field
}

// ProjectAt keeps the fields of src visible at v.
func ProjectAt(src Source, v View) Projection {
	all := src.Fields()
	kept := make([]Field, 0, len(all))
	for _, field := range all {
		if v.Reveals(field.View) {
			kept = append(kept, field)
		}
	}
	return Projection{fields: kept}
}

// Project keeps the fields of src visible to a caller holding roles.
func Project(src Source, roles sec.RoleSet) Projection {
	return ProjectAt(src, For(roles))
}

// ProjectAll projects every element of items independently.
func ProjectAll[T Source](items []T, v View) []Projection {
	out := make([]Projection, len(items))
	for i, item := range items {
		out[i] = ProjectAt(item, v)
	}
	return out
}

// Fields implements [Source].
func (projection Projection) Fields() []Field {
	return projection.fields
}

// Names returns the visible field names in order.
func (projection Projection) Names() []string {
	return slice.Map(projection.fields, func(field Field) string { return field.Name })
}

// Has reports whether the named field is visible.
func (projection Projection) Has(name string) bool {
	_, ok := projection.Get(name)
	return ok
}

// Get returns the value of a visible field.
func (projection Projection) Get(name string) (any, bool) {
	for _, field := range projection.fields {
		if field.Name == name {
			return field.Value, true
		}
	}
	return nil, false
}

// MarshalJSON writes the visible fields as one object, keeping declaration order.
func (projection Projection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range projection.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(field.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(field.Value)
		if err != nil {
			return nil, fmt.Errorf("view: field %s: %w", field.Name, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
