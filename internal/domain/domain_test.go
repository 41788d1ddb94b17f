// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/domain"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/platform/view"
	"github.com/taibuivan/folio/pkg/pointer"
)

func sampleUser() *domain.User {
	return &domain.User{
		ID:           3,
		Username:     pointer.To("alice"),
		Email:        pointer.To("alice@example.com"),
		PasswordHash: "$2a$10$digest",
		Active:       pointer.To(true),
		Roles:        sec.DefaultRoles(),
		CommentIDs:   []int64{9},
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

/*
TestUser_Views pins the field table of accounts at each tier view.
*/
func TestUser_Views(t *testing.T) {
	user := sampleUser()

	assert.Equal(t, []string{"id", "username"}, view.ProjectAt(user, view.Public).Names())
	assert.Equal(t, []string{"id", "username", "comments"}, view.ProjectAt(user, view.User).Names())
	assert.Equal(t, []string{"id", "username", "comments", "createdAt", "lastModifiedAt"},
		view.ProjectAt(user, view.Admin).Names())
	assert.Equal(t,
		[]string{"id", "username", "comments", "createdAt", "lastModifiedAt", "email", "active", "roles"},
		view.ProjectAt(user, view.SuperAdmin).Names())
}

func TestUser_DigestNeverSerialized(t *testing.T) {
	user := sampleUser()

	raw, err := json.Marshal(view.ProjectAt(user, view.SuperAdmin))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), user.PasswordHash)

	// The plain struct encoding drops the digest as well.
	raw, err = json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), user.PasswordHash)
}

func TestComment_Views(t *testing.T) {
	comment := &domain.Comment{ID: 1, Text: pointer.To("Great"), Rating: pointer.To(int64(4)), UserID: 2, BookID: 5}

	assert.Equal(t, []string{"id", "text", "rating"}, view.ProjectAt(comment, view.Public).Names())
	assert.Equal(t, []string{"id", "text", "rating", "user", "book"}, view.ProjectAt(comment, view.Moderator).Names())
}

func TestBook_HiddenVersusAbsent(t *testing.T) {
	book := &domain.Book{ID: 4, Name: pointer.To("Dune")}

	raw, err := json.Marshal(view.ProjectAt(book, view.Public))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	// Unset fields the caller may see are present as null; hidden fields are omitted.
	assert.Contains(t, decoded, "avatar")
	assert.Nil(t, decoded["avatar"])
	assert.NotContains(t, decoded, "authors")
}

func TestClone_IsDeep(t *testing.T) {
	author := &domain.Author{ID: 1, FirstName: pointer.To("Ursula"), GenreIDs: []int64{1}}
	copied := author.Clone()

	*copied.FirstName = "Frank"
	copied.GenreIDs[0] = 7

	assert.Equal(t, "Ursula", *author.FirstName)
	assert.Equal(t, []int64{1}, author.GenreIDs)
}

func TestSortedIDs(t *testing.T) {
	assert.Nil(t, domain.SortedIDs(nil))
	assert.Equal(t, []int64{1, 2, 5}, domain.SortedIDs([]int64{5, 1, 2, 5}))
}
