package author_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/core/author"
	"github.com/taibuivan/folio/internal/domain"
	"github.com/taibuivan/folio/internal/platform/access"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/storage/memory"
	"github.com/taibuivan/folio/pkg/pointer"
)

var (
	admin = &access.Principal{UserID: 1, Roles: sec.RoleSet{sec.RoleAdmin}}
	user  = &access.Principal{UserID: 2, Roles: sec.RoleSet{sec.RoleUser}}
)

func newTestService(t *testing.T) (*author.Service, domain.Store) {
	t.Helper()
	store := memory.New().Repositories()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return author.NewService(store, access.NewGuard(nil), logger), store
}

func tolstoy() *domain.Author {
	return &domain.Author{
		FirstName:  pointer.To("Leo"),
		MiddleName: pointer.To(""),
		LastName:   pointer.To("Tolstoy"),
	}
}

func TestService_Create(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, admin, tolstoy())
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, []int64{}, created.BookIDs)
	assert.Equal(t, []int64{}, created.GenreIDs)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = service.Create(ctx, user, tolstoy())
	assert.True(t, apperr.Is(err, apperr.CodeForbidden))

	_, err = service.Create(ctx, nil, tolstoy())
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))
}

func TestService_Create_ReportsEveryMissingField(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Create(context.Background(), admin, &domain.Author{})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeValidation, appErr.Code)

	fields := make([]string, 0, len(appErr.Details))
	for _, detail := range appErr.Details {
		fields = append(fields, detail.Field)
	}
	assert.ElementsMatch(t, []string{domain.FieldFirstName, domain.FieldMiddleName, domain.FieldLastName}, fields)
}

func TestService_Create_RejectsPlaceholder(t *testing.T) {
	service, _ := newTestService(t)

	blank := &domain.Author{FirstName: pointer.To(" "), MiddleName: pointer.To("X"), LastName: pointer.To("")}
	_, err := service.Create(context.Background(), admin, blank)

	assert.True(t, apperr.Is(err, apperr.CodeValidation))
}

func TestService_Patch(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, admin, tolstoy())
	require.NoError(t, err)

	genre := &domain.Genre{Name: pointer.To("Novel")}
	require.NoError(t, store.Genres.Save(ctx, genre))

	patched, err := service.Patch(ctx, admin, created.ID, &domain.Author{MiddleName: pointer.To("Nikolayevich"), GenreIDs: []int64{genre.ID}})
	require.NoError(t, err)
	assert.Equal(t, "Leo", pointer.Val(patched.FirstName))
	assert.Equal(t, "Nikolayevich", pointer.Val(patched.MiddleName))
	assert.Equal(t, []int64{genre.ID}, patched.GenreIDs)
	assert.Equal(t, created.CreatedAt, patched.CreatedAt)

	genres, err := service.Genres(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, genres, 1)
	assert.Equal(t, "Novel", pointer.Val(genres[0].Name))

	_, err = service.Patch(ctx, user, created.ID, &domain.Author{})
	assert.True(t, apperr.Is(err, apperr.CodeForbidden))

	_, err = service.Patch(ctx, admin, 999, &domain.Author{})
	assert.True(t, apperr.IsNotFound(err))
}

func TestService_Update_RequiresEveryField(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, admin, tolstoy())
	require.NoError(t, err)

	_, err = service.Update(ctx, admin, created.ID, &domain.Author{FirstName: pointer.To("Lev")})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	replacement := tolstoy()
	replacement.FirstName = pointer.To("Lev")
	replacement.GenreIDs = []int64{}
	updated, err := service.Update(ctx, admin, created.ID, replacement)
	require.NoError(t, err)
	assert.Equal(t, "Lev", pointer.Val(updated.FirstName))
}

func TestService_Delete(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, admin, tolstoy())
	require.NoError(t, err)

	assert.True(t, apperr.Is(service.Delete(ctx, user, created.ID), apperr.CodeForbidden))
	require.NoError(t, service.Delete(ctx, admin, created.ID))
	assert.True(t, apperr.IsNotFound(service.Delete(ctx, admin, created.ID)))

	total, err := service.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)
}
