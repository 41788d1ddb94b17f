package book_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/core/book"
	"github.com/taibuivan/folio/internal/domain"
	"github.com/taibuivan/folio/internal/platform/access"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/storage/memory"
	"github.com/taibuivan/folio/pkg/pointer"
)

var admin = &access.Principal{UserID: 1, Roles: sec.RoleSet{sec.RoleAdmin}}

func newTestService(t *testing.T) (*book.Service, domain.Store) {
	t.Helper()
	store := memory.New().Repositories()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return book.NewService(store, access.NewGuard(nil), logger), store
}

func warAndPeace() *domain.Book {
	return &domain.Book{
		Name:             pointer.To("War and Peace"),
		PagesCount:       pointer.To(1225),
		Avatar:           pointer.To(""),
		PublicationYear:  pointer.To(1869),
		ShortDescription: pointer.To("Napoleonic wars"),
		Rating:           pointer.To(int64(9)),
	}
}

func TestService_Create_ForcesRating(t *testing.T) {
	service, _ := newTestService(t)

	created, err := service.Create(context.Background(), admin, warAndPeace())

	require.NoError(t, err)
	assert.Equal(t, int64(0), pointer.Val(created.Rating))
	assert.Equal(t, []int64{}, created.AuthorIDs)
	assert.Equal(t, []int64{}, created.CommentIDs)
}

func TestService_Create_Validation(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.Create(ctx, admin, &domain.Book{})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Len(t, appErr.Details, 5)

	negative := warAndPeace()
	negative.PagesCount = pointer.To(-1)
	_, err = service.Create(ctx, admin, negative)
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	blank := warAndPeace()
	blank.Name = pointer.To("  ")
	_, err = service.Create(ctx, admin, blank)
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
}

func TestService_Create_DanglingAuthor(t *testing.T) {
	service, _ := newTestService(t)

	input := warAndPeace()
	input.AuthorIDs = []int64{404}
	_, err := service.Create(context.Background(), admin, input)

	assert.True(t, apperr.Is(err, apperr.CodeValidation))
}

func TestService_Relations(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()

	tolstoy := &domain.Author{FirstName: pointer.To("Leo"), LastName: pointer.To("Tolstoy")}
	require.NoError(t, store.Authors.Save(ctx, tolstoy))

	input := warAndPeace()
	input.AuthorIDs = []int64{tolstoy.ID}
	created, err := service.Create(ctx, admin, input)
	require.NoError(t, err)

	reader := &domain.User{Username: pointer.To("reader"), Email: pointer.To("r@example.com"), PasswordHash: "x", Active: pointer.To(true), Roles: sec.DefaultRoles()}
	require.NoError(t, store.Users.Save(ctx, reader))
	comment := &domain.Comment{Text: pointer.To("Long"), Rating: pointer.To(int64(0)), UserID: reader.ID, BookID: created.ID}
	require.NoError(t, store.Comments.Save(ctx, comment))

	authors, err := service.Authors(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, tolstoy.ID, authors[0].ID)

	comments, err := service.Comments(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)

	// PUT keeps the comments attached.
	replacement := warAndPeace()
	replacement.AuthorIDs = []int64{}
	replacement.GenreIDs = []int64{}
	updated, err := service.Update(ctx, admin, created.ID, replacement)
	require.NoError(t, err)
	assert.Equal(t, []int64{comment.ID}, updated.CommentIDs)
	assert.Empty(t, updated.AuthorIDs)

	require.NoError(t, service.Delete(ctx, admin, created.ID))
	_, err = store.Comments.FindByID(ctx, comment.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestService_Patch(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, admin, warAndPeace())
	require.NoError(t, err)

	patched, err := service.Patch(ctx, admin, created.ID, &domain.Book{Rating: pointer.To(int64(7))})
	require.NoError(t, err)
	assert.Equal(t, int64(7), pointer.Val(patched.Rating))
	assert.Equal(t, "War and Peace", pointer.Val(patched.Name))

	_, err = service.Patch(ctx, nil, created.ID, &domain.Book{})
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))
}
