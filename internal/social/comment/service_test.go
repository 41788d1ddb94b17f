package comment_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/domain"
	"github.com/taibuivan/folio/internal/platform/access"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/social/comment"
	"github.com/taibuivan/folio/internal/storage/memory"
	"github.com/taibuivan/folio/pkg/pointer"
)

type fixture struct {
	service       *comment.Service
	store         domain.Store
	bookID        int64
	alice, bob    *access.Principal
	root          *access.Principal
	moderatorOnly *access.Principal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.New().Repositories()

	account := func(name string, roles ...sec.Role) *access.Principal {
		user := &domain.User{
			Username: pointer.To(name), Email: pointer.To(name + "@example.com"),
			PasswordHash: "digest", Active: pointer.To(true), Roles: roles,
		}
		require.NoError(t, store.Users.Save(ctx, user))
		return &access.Principal{UserID: user.ID, Username: name, Roles: roles}
	}

	book := &domain.Book{Name: pointer.To("Dune")}
	require.NoError(t, store.Books.Save(ctx, book))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &fixture{
		service:       comment.NewService(store, access.NewGuard(nil), logger),
		store:         store,
		bookID:        book.ID,
		alice:         account("alice", sec.RoleUser),
		bob:           account("bob", sec.RoleUser),
		root:          account("root", sec.RoleUser, sec.RoleRoot),
		moderatorOnly: account("mod", sec.RoleModerator),
	}
}

func (f *fixture) post(t *testing.T, author *access.Principal, text string) *domain.Comment {
	t.Helper()
	created, err := f.service.Create(context.Background(), author, &domain.Comment{Text: pointer.To(text), BookID: f.bookID})
	require.NoError(t, err)
	return created
}

func TestService_Create_ForcesOwnerAndRating(t *testing.T) {
	f := newFixture(t)

	created, err := f.service.Create(context.Background(), f.alice, &domain.Comment{
		Text:   pointer.To("Great"),
		Rating: pointer.To(int64(5)),
		UserID: f.bob.UserID,
		BookID: f.bookID,
	})

	require.NoError(t, err)
	assert.Equal(t, f.alice.UserID, created.UserID)
	assert.Equal(t, int64(0), pointer.Val(created.Rating))

	owner, err := f.service.User(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", pointer.Val(owner.Username))
}

func TestService_Create_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Create(ctx, nil, &domain.Comment{Text: pointer.To("x"), BookID: f.bookID})
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))

	_, err = f.service.Create(ctx, f.alice, &domain.Comment{Text: pointer.To(strings.Repeat("é", domain.MaxCommentLength+1)), BookID: f.bookID})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	_, err = f.service.Create(ctx, f.alice, &domain.Comment{Text: pointer.To(strings.Repeat("é", domain.MaxCommentLength)), BookID: f.bookID})
	assert.NoError(t, err)

	_, err = f.service.Create(ctx, f.alice, &domain.Comment{Text: pointer.To(" "), BookID: f.bookID})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	_, err = f.service.Create(ctx, f.alice, &domain.Comment{Text: pointer.To("x")})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	_, err = f.service.Create(ctx, f.alice, &domain.Comment{Text: pointer.To("x"), BookID: 404})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
}

func TestService_Ownership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	note := f.post(t, f.alice, "first")

	tests := []struct {
		name      string
		principal *access.Principal
		code      string
	}{
		{"owner", f.alice, ""},
		{"stranger", f.bob, apperr.CodeForbidden},
		{"root", f.root, ""},
		{"moderator not owner", f.moderatorOnly, apperr.CodeForbidden},
		{"anonymous", nil, apperr.CodeUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.UpdateText(ctx, tt.principal, note.ID, pointer.To("edited by "+tt.name))
			if tt.code == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperr.Is(err, tt.code), "got %v", err)
			}
		})
	}

	stored, err := f.service.Get(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited by root", pointer.Val(stored.Text))
	assert.Equal(t, f.alice.UserID, stored.UserID)
}

func TestService_Update_KeepsOwnerAndBook(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	note := f.post(t, f.alice, "first")

	updated, err := f.service.Update(ctx, f.alice, note.ID, &domain.Comment{
		Text: pointer.To("second"), Rating: pointer.To(int64(3)), UserID: f.bob.UserID, BookID: 999,
	})
	require.NoError(t, err)
	assert.Equal(t, f.alice.UserID, updated.UserID)
	assert.Equal(t, f.bookID, updated.BookID)
	assert.Equal(t, int64(3), pointer.Val(updated.Rating))

	_, err = f.service.Update(ctx, f.alice, note.ID, &domain.Comment{Text: pointer.To("third")})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	patched, err := f.service.Patch(ctx, f.alice, note.ID, &domain.Comment{Text: pointer.To("third")})
	require.NoError(t, err)
	assert.Equal(t, int64(3), pointer.Val(patched.Rating))
}

func TestService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	note := f.post(t, f.alice, "first")

	assert.True(t, apperr.Is(f.service.Delete(ctx, f.bob, note.ID), apperr.CodeForbidden))
	require.NoError(t, f.service.Delete(ctx, f.alice, note.ID))
	assert.True(t, apperr.IsNotFound(f.service.Delete(ctx, f.alice, note.ID)))
}
