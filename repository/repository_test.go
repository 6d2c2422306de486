/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */


package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/comicshelf/database"
	"github.com/tomoncle/comicshelf/models"
	"github.com/tomoncle/comicshelf/repository"
	"github.com/tomoncle/comicshelf/types"
	"github.com/uptrace/bun"
)

func connect(t *testing.T) *bun.DB {
	t.Helper()
	ctx := context.Background()
	manager := database.NewDatabaseManager(&database.ConnectionConfig{Type: "sqlite", DBName: ":memory:"})
	require.NoError(t, manager.Connect(ctx))
	t.Cleanup(func() { _ = manager.Disconnect() })
	return manager.GetDB()
}

func openCatalog(t *testing.T) *bun.DB {
	t.Helper()
	db := connect(t)
	require.NoError(t, database.NewMigrationManager(db, nil, nil).RunMigrations(context.Background()))
	return db
}

type fixture struct {
	series    *models.Series
	artist    *models.Artist
	penciller *models.Role
	writer    *models.Role
	comicBook *models.ComicBook
}

func seed(t *testing.T, db bun.IDB) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{
		series:    &models.Series{Title: "The Amazing Spider-Man", Description: "Friendly neighbourhood"},
		artist:    &models.Artist{Name: "Steve Ditko"},
		penciller: &models.Role{Name: "Penciller"},
		writer:    &models.Role{Name: "Writer"},
	}
	require.NoError(t, repository.NewSeriesRepository(db).Add(ctx, f.series))
	require.NoError(t, repository.NewArtistRepository(db).Add(ctx, f.artist))
	roles := repository.NewRoleRepository(db)
	require.NoError(t, roles.Add(ctx, f.penciller))
	require.NoError(t, roles.Add(ctx, f.writer))

	f.comicBook = &models.ComicBook{
		SeriesID:    f.series.ID,
		IssueNumber: 1,
		Description: "Spider-Man vs. the Chameleon",
		PublishedOn: time.Date(1963, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repository.NewComicBookRepository(db).Add(ctx, f.comicBook))
	return f
}

func TestComicBookArtistAddAndGet(t *testing.T) {
	ctx := context.Background()
	db := openCatalog(t)
	f := seed(t, db)
	repo := repository.NewComicBookArtistRepository(db)

	credit := &models.ComicBookArtist{ComicBookID: f.comicBook.ID, ArtistID: f.artist.ID, RoleID: f.penciller.ID}
	require.NoError(t, repo.Add(ctx, credit))
	require.NotZero(t, credit.ID)

	got, err := repo.Get(ctx, credit.ID, false)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, credit.ID, got.ID)
	assert.Equal(t, f.comicBook.ID, got.ComicBookID)
	assert.Equal(t, f.artist.ID, got.ArtistID)
	assert.Equal(t, f.penciller.ID, got.RoleID)
	assert.Nil(t, got.Artist)
	assert.Nil(t, got.Role)
	assert.Nil(t, got.ComicBook)
}

func TestComicBookArtistGetIncludesRelatedEntities(t *testing.T) {
	ctx := context.Background()
	db := openCatalog(t)
	f := seed(t, db)
	repo := repository.NewComicBookArtistRepository(db)

	credit := &models.ComicBookArtist{ComicBookID: f.comicBook.ID, ArtistID: f.artist.ID, RoleID: f.penciller.ID}
	require.NoError(t, repo.Add(ctx, credit))

	got, err := repo.Get(ctx, credit.ID, true)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.Artist)
	require.NotNil(t, got.Role)
	require.NotNil(t, got.ComicBook)
	require.NotNil(t, got.ComicBook.Series)
	assert.Equal(t, "Steve Ditko", got.Artist.Name)
	assert.Equal(t, "Penciller", got.Role.Name)
	assert.Equal(t, 1, got.ComicBook.IssueNumber)
	assert.Equal(t, "The Amazing Spider-Man", got.ComicBook.Series.Title)
	assert.Equal(t, "The Amazing Spider-Man #1", got.ComicBook.DisplayText())
}

func TestGetMissingReturnsNil(t *testing.T) {
	db := openCatalog(t)
	got, err := repository.NewComicBookArtistRepository(db).Get(context.Background(), 42, true)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateOverwritesRow(t *testing.T) {
	ctx := context.Background()
	db := openCatalog(t)
	f := seed(t, db)
	repo := repository.NewComicBookArtistRepository(db)

	credit := &models.ComicBookArtist{ComicBookID: f.comicBook.ID, ArtistID: f.artist.ID, RoleID: f.penciller.ID}
	require.NoError(t, repo.Add(ctx, credit))

	credit.RoleID = f.writer.ID
	require.NoError(t, repo.Update(ctx, credit))

	got, err := repo.Get(ctx, credit.ID, true)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, f.writer.ID, got.RoleID)
	assert.Equal(t, "Writer", got.Role.Name)
}

func TestUpdateRewritesEveryColumn(t *testing.T) {
	ctx := context.Background()
	db := openCatalog(t)
	f := seed(t, db)
	repo := repository.NewComicBookRepository(db)

	rating := 4.5
	replacement := &models.ComicBook{
		ID:            f.comicBook.ID,
		SeriesID:      f.series.ID,
		IssueNumber:   2,
		PublishedOn:   time.Date(1963, time.May, 1, 0, 0, 0, 0, time.UTC),
		AverageRating: &rating,
	}
	require.NoError(t, repo.Update(ctx, replacement))

	got, err := repo.Get(ctx, f.comicBook.ID, false)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.IssueNumber)
	assert.Empty(t, got.Description)
	assert.True(t, replacement.PublishedOn.Equal(got.PublishedOn))
	require.NotNil(t, got.AverageRating)
	assert.InDelta(t, 4.5, *got.AverageRating, 0.0001)
}

func TestDeleteRemovesRow(t *testing.T) {
	ctx := context.Background()
	db := openCatalog(t)
	f := seed(t, db)
	repo := repository.NewComicBookArtistRepository(db)

	first := &models.ComicBookArtist{ComicBookID: f.comicBook.ID, ArtistID: f.artist.ID, RoleID: f.penciller.ID}
	second := &models.ComicBookArtist{ComicBookID: f.comicBook.ID, ArtistID: f.artist.ID, RoleID: f.writer.ID}
	require.NoError(t, repo.Add(ctx, first))
	require.NoError(t, repo.Add(ctx, second))

	require.NoError(t, repo.Delete(ctx, first.ID))

	got, err := repo.Get(ctx, first.ID, false)
	require.NoError(t, err)
	assert.Nil(t, got)

	kept, err := repo.Get(ctx, second.ID, false)
	require.NoError(t, err)
	assert.NotNil(t, kept)
}

func TestMissingIdentifierReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	db := openCatalog(t)
	f := seed(t, db)
	repo := repository.NewComicBookArtistRepository(db)

	credit := &models.ComicBookArtist{ComicBookID: f.comicBook.ID, ArtistID: f.artist.ID, RoleID: f.penciller.ID}
	require.NoError(t, repo.Add(ctx, credit))

	err := repo.Delete(ctx, credit.ID+100)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = repo.Update(ctx, &models.ComicBookArtist{ID: credit.ID + 100, ComicBookID: f.comicBook.ID, ArtistID: f.artist.ID, RoleID: f.writer.ID})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got, err := repo.Get(ctx, credit.ID, false)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, f.penciller.ID, got.RoleID)
}

func TestNilEntity(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewRoleRepository(openCatalog(t))
	assert.ErrorIs(t, repo.Add(ctx, nil), repository.ErrNilEntity)
	assert.ErrorIs(t, repo.Update(ctx, nil), repository.ErrNilEntity)
}

func TestGetDuplicatedIdentifier(t *testing.T) {
	ctx := context.Background()
	db := connect(t)
	_, err := db.ExecContext(ctx, `CREATE TABLE comic_book_artist (id INTEGER, comic_book_id INTEGER, artist_id INTEGER, role_id INTEGER)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO comic_book_artist (id, comic_book_id, artist_id, role_id) VALUES (1, 1, 1, 1), (1, 2, 2, 2)`)
	require.NoError(t, err)

	got, err := repository.NewComicBookArtistRepository(db).Get(ctx, 1, false)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, repository.ErrMultipleRows)
}

func TestComicBookArtistListNotSupported(t *testing.T) {
	repo := repository.NewComicBookArtistRepository(openCatalog(t))
	_, err := repository.ListOf[models.ComicBookArtist](context.Background(), repo)
	assert.True(t, errors.Is(err, repository.ErrNotSupported))
}

func TestListOfDelegatesToLister(t *testing.T) {
	ctx := context.Background()
	db := openCatalog(t)
	seed(t, db)

	roles, err := repository.ListOf[models.Role](ctx, repository.NewRoleRepository(db))
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, "Penciller", roles[0].Name)
	assert.Equal(t, "Writer", roles[1].Name)
}

func TestTransactionBatchesCalls(t *testing.T) {
	ctx := context.Background()
	db := openCatalog(t)
	f := seed(t, db)

	errRollback := errors.New("rollback")
	err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		repo := repository.NewComicBookArtistRepository(tx)
		if err := repo.Add(ctx, &models.ComicBookArtist{ComicBookID: f.comicBook.ID, ArtistID: f.artist.ID, RoleID: f.penciller.ID}); err != nil {
			return err
		}
		if err := repo.Add(ctx, &models.ComicBookArtist{ComicBookID: f.comicBook.ID, ArtistID: f.artist.ID, RoleID: f.writer.ID}); err != nil {
			return err
		}
		return errRollback
	})
	require.ErrorIs(t, err, errRollback)

	count, err := db.NewSelect().Model((*models.ComicBookArtist)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestComicBookGetIncludesCredits(t *testing.T) {
	ctx := context.Background()
	db := openCatalog(t)
	f := seed(t, db)
	credits := repository.NewComicBookArtistRepository(db)
	require.NoError(t, credits.Add(ctx, &models.ComicBookArtist{ComicBookID: f.comicBook.ID, ArtistID: f.artist.ID, RoleID: f.writer.ID}))
	require.NoError(t, credits.Add(ctx, &models.ComicBookArtist{ComicBookID: f.comicBook.ID, ArtistID: f.artist.ID, RoleID: f.penciller.ID}))

	got, err := repository.NewComicBookRepository(db).Get(ctx, f.comicBook.ID, true)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.Series)
	require.Len(t, got.Artists, 2)
	assert.Equal(t, "Penciller", got.Artists[0].Role.Name)
	assert.Equal(t, "Writer", got.Artists[1].Role.Name)
	assert.Equal(t, "Steve Ditko", got.Artists[0].Artist.Name)
}

func TestComicBookListAndPage(t *testing.T) {
	ctx := context.Background()
	db := openCatalog(t)
	f := seed(t, db)
	repo := repository.NewComicBookRepository(db)

	for _, issue := range []int{3, 2} {
		require.NoError(t, repo.Add(ctx, &models.ComicBook{
			SeriesID:    f.series.ID,
			IssueNumber: issue,
			PublishedOn: time.Date(1963, time.Month(issue+2), 1, 0, 0, 0, 0, time.UTC),
		}))
	}

	all, err := repo.GetList(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, cb := range all {
		assert.Equal(t, i+1, cb.IssueNumber)
		require.NotNil(t, cb.Series)
	}

	page, err := repo.Page(ctx, types.NewPageRequest(2, 2))
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages())
	require.Len(t, page.Items, 1)
	assert.Equal(t, 3, page.Items[0].IssueNumber)
}

func TestComicBookDuplicateChecks(t *testing.T) {
	ctx := context.Background()
	db := openCatalog(t)
	f := seed(t, db)
	repo := repository.NewComicBookRepository(db)

	taken, err := repo.SeriesHasIssueNumber(ctx, 0, f.series.ID, 1)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.SeriesHasIssueNumber(ctx, f.comicBook.ID, f.series.ID, 1)
	require.NoError(t, err)
	assert.False(t, taken)

	require.NoError(t, repository.NewComicBookArtistRepository(db).Add(ctx,
		&models.ComicBookArtist{ComicBookID: f.comicBook.ID, ArtistID: f.artist.ID, RoleID: f.penciller.ID}))

	credited, err := repo.HasArtistRoleCombination(ctx, f.comicBook.ID, f.artist.ID, f.penciller.ID)
	require.NoError(t, err)
	assert.True(t, credited)

	credited, err = repo.HasArtistRoleCombination(ctx, f.comicBook.ID, f.artist.ID, f.writer.ID)
	require.NoError(t, err)
	assert.False(t, credited)
}

func TestSeriesAndArtistIncludes(t *testing.T) {
	ctx := context.Background()
	db := openCatalog(t)
	f := seed(t, db)
	require.NoError(t, repository.NewComicBookArtistRepository(db).Add(ctx,
		&models.ComicBookArtist{ComicBookID: f.comicBook.ID, ArtistID: f.artist.ID, RoleID: f.penciller.ID}))

	series, err := repository.NewSeriesRepository(db).Get(ctx, f.series.ID, true)
	require.NoError(t, err)
	require.NotNil(t, series)
	require.Len(t, series.ComicBooks, 1)
	assert.Equal(t, 1, series.ComicBooks[0].IssueNumber)

	artist, err := repository.NewArtistRepository(db).Get(ctx, f.artist.ID, true)
	require.NoError(t, err)
	require.NotNil(t, artist)
	require.Len(t, artist.ComicBooks, 1)
	credit := artist.ComicBooks[0]
	require.NotNil(t, credit.Role)
	require.NotNil(t, credit.ComicBook)
	require.NotNil(t, credit.ComicBook.Series)
	assert.Equal(t, "Penciller", credit.Role.Name)
	assert.Equal(t, "The Amazing Spider-Man #1", credit.ComicBook.DisplayText())

	plain, err := repository.NewArtistRepository(db).Get(ctx, f.artist.ID, false)
	require.NoError(t, err)
	require.NotNil(t, plain)
	assert.Empty(t, plain.ComicBooks)
}
