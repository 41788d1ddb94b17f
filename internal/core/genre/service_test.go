package genre_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/core/genre"
	"github.com/taibuivan/folio/internal/domain"
	"github.com/taibuivan/folio/internal/platform/access"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/storage/memory"
	"github.com/taibuivan/folio/pkg/pointer"
)

var admin = &access.Principal{UserID: 1, Roles: sec.RoleSet{sec.RoleAdmin}}

func newTestService(t *testing.T) (*genre.Service, domain.Store) {
	t.Helper()
	store := memory.New().Repositories()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return genre.NewService(store, access.NewGuard(nil), logger), store
}

func named(name string) *domain.Genre {
	return &domain.Genre{Name: pointer.To(name)}
}

func TestService_Create_UniqueIgnoringCase(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.Create(ctx, admin, named("Poetry"))
	require.NoError(t, err)

	_, err = service.Create(ctx, admin, named("POETRY"))
	assert.True(t, apperr.Is(err, apperr.CodeConflict))

	_, err = service.Create(ctx, admin, named("   "))
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	_, err = service.Create(ctx, admin, &domain.Genre{})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
}

func TestService_Update(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	poetry, err := service.Create(ctx, admin, named("Poetry"))
	require.NoError(t, err)
	drama, err := service.Create(ctx, admin, named("Drama"))
	require.NoError(t, err)

	// Keeping its own name is not a conflict.
	same, err := service.Update(ctx, admin, poetry.ID, named("poetry"))
	require.NoError(t, err)
	assert.Equal(t, "poetry", pointer.Val(same.Name))

	_, err = service.Patch(ctx, admin, drama.ID, named("Poetry"))
	assert.True(t, apperr.Is(err, apperr.CodeConflict))

	_, err = service.Update(ctx, admin, drama.ID, &domain.Genre{})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	kept, err := service.Patch(ctx, admin, drama.ID, &domain.Genre{})
	require.NoError(t, err)
	assert.Equal(t, "Drama", pointer.Val(kept.Name))
}

func TestService_Search(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"Poetry", "Politics", "Drama"} {
		_, err := service.Create(ctx, admin, named(name))
		require.NoError(t, err)
	}

	found, err := service.Search(ctx, "po")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	all, err := service.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestService_Delete_DetachesBooks(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()

	poetry, err := service.Create(ctx, admin, named("Poetry"))
	require.NoError(t, err)

	book := &domain.Book{Name: pointer.To("Odes"), GenreIDs: []int64{poetry.ID}}
	require.NoError(t, store.Books.Save(ctx, book))

	books, err := service.Books(ctx, poetry.ID)
	require.NoError(t, err)
	require.Len(t, books, 1)

	user := &access.Principal{UserID: 2, Roles: sec.RoleSet{sec.RoleModerator}}
	assert.True(t, apperr.Is(service.Delete(ctx, user, poetry.ID), apperr.CodeForbidden))
	require.NoError(t, service.Delete(ctx, admin, poetry.ID))

	stored, err := store.Books.FindByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.GenreIDs)
}
