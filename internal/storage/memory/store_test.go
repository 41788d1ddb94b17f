// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/domain"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/storage/memory"
	"github.com/taibuivan/folio/pkg/pointer"
)

func newUser(name string) *domain.User {
	return &domain.User{
		Username:     pointer.To(name),
		Email:        pointer.To(name + "@example.com"),
		PasswordHash: "digest",
		Active:       pointer.To(true),
		Roles:        sec.DefaultRoles(),
	}
}

/*
TestUsers_ConcurrentUniqueCreate races many saves of one username and expects
exactly one winner.
*/
func TestUsers_ConcurrentUniqueCreate(t *testing.T) {
	users := memory.New().Repositories().Users
	ctx := context.Background()

	const attempts = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := users.Save(ctx, newUser("Alice"))

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if apperr.Is(err, apperr.CodeConflict) {
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)

	count, err := users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUsers_UniqueIgnoresCase(t *testing.T) {
	users := memory.New().Repositories().Users
	ctx := context.Background()

	alice := newUser("alice")
	require.NoError(t, users.Save(ctx, alice))

	taken, err := users.ExistsByUsername(ctx, "ALICE", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = users.ExistsByUsername(ctx, "ALICE", alice.ID)
	require.NoError(t, err)
	assert.False(t, taken, "own row is excluded")

	err = users.Save(ctx, newUser("ALICE"))
	assert.True(t, apperr.Is(err, apperr.CodeConflict))

	// Renaming frees the old username; the email still belongs to the renamed row.
	alice.Username = pointer.To("alicia")
	require.NoError(t, users.Save(ctx, alice))

	impostor := newUser("alice")
	err = users.Save(ctx, impostor)
	assert.True(t, apperr.Is(err, apperr.CodeConflict), "email is still claimed")

	impostor.Email = pointer.To("second.alice@example.com")
	require.NoError(t, users.Save(ctx, impostor))
	assert.NotEqual(t, alice.ID, impostor.ID)

	found, err := users.FindByUsername(ctx, "AliciA")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.ID)

	reclaimed, err := users.FindByUsername(ctx, "ALICE")
	require.NoError(t, err)
	assert.Equal(t, impostor.ID, reclaimed.ID)
}

/*
TestStore_DerivedAndCascade checks derived collections and delete cascades.
*/
func TestStore_DerivedAndCascade(t *testing.T) {
	repos := memory.New().Repositories()
	ctx := context.Background()

	genre := &domain.Genre{Name: pointer.To("Fantasy")}
	require.NoError(t, repos.Genres.Save(ctx, genre))

	author := &domain.Author{FirstName: pointer.To("Ursula"), GenreIDs: []int64{genre.ID}}
	require.NoError(t, repos.Authors.Save(ctx, author))

	book := &domain.Book{Name: pointer.To("Earthsea"), AuthorIDs: []int64{author.ID}, GenreIDs: []int64{genre.ID}}
	require.NoError(t, repos.Books.Save(ctx, book))

	reader := newUser("reader")
	require.NoError(t, repos.Users.Save(ctx, reader))

	comment := &domain.Comment{Text: pointer.To("Classic"), Rating: pointer.To(int64(0)), UserID: reader.ID, BookID: book.ID}
	require.NoError(t, repos.Comments.Save(ctx, comment))

	storedAuthor, err := repos.Authors.FindByID(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{book.ID}, storedAuthor.BookIDs)

	storedGenre, err := repos.Genres.FindByID(ctx, genre.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{book.ID}, storedGenre.BookIDs)
	assert.Equal(t, []int64{author.ID}, storedGenre.AuthorIDs)

	storedUser, err := repos.Users.FindByID(ctx, reader.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{comment.ID}, storedUser.CommentIDs)

	// Removing the book removes its comments.
	require.NoError(t, repos.Books.DeleteByID(ctx, book.ID))
	_, err = repos.Comments.FindByID(ctx, comment.ID)
	assert.True(t, apperr.IsNotFound(err))

	// Removing the genre detaches it from authors.
	require.NoError(t, repos.Genres.DeleteByID(ctx, genre.ID))
	storedAuthor, err = repos.Authors.FindByID(ctx, author.ID)
	require.NoError(t, err)
	assert.Empty(t, storedAuthor.GenreIDs)
}

func TestStore_References(t *testing.T) {
	repos := memory.New().Repositories()
	ctx := context.Background()

	err := repos.Books.Save(ctx, &domain.Book{Name: pointer.To("Orphan"), AuthorIDs: []int64{42}})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	err = repos.Comments.Save(ctx, &domain.Comment{Text: pointer.To("x"), UserID: 1, BookID: 1})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
}

func TestStore_MissingRows(t *testing.T) {
	repos := memory.New().Repositories()
	ctx := context.Background()

	assert.True(t, apperr.IsNotFound(repos.Authors.DeleteByID(ctx, 9)))
	assert.True(t, apperr.IsNotFound(repos.Genres.Save(ctx, &domain.Genre{ID: 9, Name: pointer.To("x")})))

	_, err := repos.Books.FindByID(ctx, 9)
	assert.True(t, apperr.IsNotFound(err))

	found, err := repos.Genres.FindByIDs(ctx, []int64{9, 10})
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestStore_ClonesOnWrite(t *testing.T) {
	repos := memory.New().Repositories()
	ctx := context.Background()

	genre := &domain.Genre{Name: pointer.To("Horror")}
	require.NoError(t, repos.Genres.Save(ctx, genre))
	*genre.Name = "Changed"

	stored, err := repos.Genres.FindByID(ctx, genre.ID)
	require.NoError(t, err)
	assert.Equal(t, "Horror", *stored.Name)
}

func TestSearch(t *testing.T) {
	repos := memory.New().Repositories()
	ctx := context.Background()

	for _, name := range []string{"Science Fiction", "Satire", "Romance"} {
		require.NoError(t, repos.Genres.Save(ctx, &domain.Genre{Name: pointer.To(name)}))
	}
	genres, err := repos.Genres.SearchByPrefix(ctx, "s")
	require.NoError(t, err)
	assert.Len(t, genres, 2)

	require.NoError(t, repos.Authors.Save(ctx, &domain.Author{FirstName: pointer.To("Isaac"), LastName: pointer.To("Asimov")}))
	require.NoError(t, repos.Authors.Save(ctx, &domain.Author{FirstName: pointer.To("Iain"), LastName: pointer.To("Banks")}))

	authors, err := repos.Authors.Search(ctx, domain.AuthorFilter{FirstName: "i", LastName: "AS"})
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, "Asimov", *authors[0].LastName)
}

/*
TestGenres_UniqueMatchesLower pins the key to lower-casing rather than full case
folding, as the SQL lower() indexes do.
*/
func TestGenres_UniqueMatchesLower(t *testing.T) {
	genres := memory.New().Repositories().Genres
	ctx := context.Background()

	require.NoError(t, genres.Save(ctx, &domain.Genre{Name: pointer.To("Straße")}))

	taken, err := genres.ExistsByName(ctx, "STRAßE", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = genres.ExistsByName(ctx, "STRASSE", 0)
	require.NoError(t, err)
	assert.False(t, taken)
	require.NoError(t, genres.Save(ctx, &domain.Genre{Name: pointer.To("Strasse")}))
}
