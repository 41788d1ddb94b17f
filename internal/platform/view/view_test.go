// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/platform/view"
)

type account struct {
	id       int64
	name     string
	email    *string
	comments []int64
	digest   string
}

func (a account) Fields() []view.Field {
	return []view.Field{
		{Name: "id", View: view.Public, Value: a.id},
		{Name: "username", View: view.Public, Value: a.name},
		{Name: "comments", View: view.User, Value: a.comments},
		{Name: "email", View: view.SuperAdmin, Value: a.email},
		{Name: "password", View: view.None, Value: a.digest},
	}
}

var sample = account{id: 7, name: "alice", comments: []int64{1, 2}, digest: "$2a$secret"}

/*
TestProjectAt_Levels checks which fields survive at each view.
*/
func TestProjectAt_Levels(t *testing.T) {
	tests := []struct {
		view view.View
		want []string
	}{
		{view.Public, []string{"id", "username"}},
		{view.User, []string{"id", "username", "comments"}},
		{view.Moderator, []string{"id", "username", "comments"}},
		{view.Admin, []string{"id", "username", "comments"}},
		{view.SuperAdmin, []string{"id", "username", "comments", "email"}},
	}

	for _, tt := range tests {
		t.Run(tt.view.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, view.ProjectAt(sample, tt.view).Names())
		})
	}
}

/*
TestProjectAt_Monotonic verifies that a higher view never hides what a lower one shows.
*/
func TestProjectAt_Monotonic(t *testing.T) {
	views := []view.View{view.Public, view.User, view.Moderator, view.Admin, view.SuperAdmin}

	for i := 1; i < len(views); i++ {
		lower := view.ProjectAt(sample, views[i-1])
		higher := view.ProjectAt(sample, views[i])
		for _, name := range lower.Names() {
			assert.True(t, higher.Has(name), "%s hidden at %s", name, views[i])
		}
	}
}

func TestProject_Idempotent(t *testing.T) {
	roles := sec.RoleSet{sec.RoleAdmin}

	once := view.Project(sample, roles)
	twice := view.Project(once, roles)

	assert.Equal(t, once, twice)
}

/*
TestProject_NeverLeaksPassword encodes the projection at every view and
looks for the digest in the output.
*/
func TestProject_NeverLeaksPassword(t *testing.T) {
	for _, v := range []view.View{view.None, view.Public, view.User, view.Admin, view.SuperAdmin} {
		raw, err := json.Marshal(view.ProjectAt(sample, v))
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "password")
		assert.NotContains(t, string(raw), sample.digest)
	}
}

func TestProjection_MarshalJSON(t *testing.T) {
	raw, err := json.Marshal(view.ProjectAt(sample, view.SuperAdmin))
	require.NoError(t, err)

	// Declaration order is kept and a nil pointer renders as null.
	assert.Equal(t, `{"id":7,"username":"alice","comments":[1,2],"email":null}`, string(raw))
}

func TestFor(t *testing.T) {
	assert.Equal(t, view.Public, view.For(nil))
	assert.Equal(t, view.Public, view.For(sec.RoleSet{sec.RoleRoot}))
	assert.Equal(t, view.User, view.For(sec.RoleSet{sec.RoleUser, sec.RoleRoot}))
	assert.Equal(t, view.Moderator, view.For(sec.RoleSet{sec.RoleModerator}))
	assert.Equal(t, view.SuperAdmin, view.For(sec.RoleSet{sec.RoleUser, sec.RoleSuperAdmin}))
}

func TestProjectAll(t *testing.T) {
	other := account{id: 8, name: "bob"}
	out := view.ProjectAll([]account{sample, other}, view.Public)

	require.Len(t, out, 2)
	got, _ := out[1].Get("username")
	assert.Equal(t, "bob", got)
}
