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


package comicshelf

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/comicshelf/database"
	"github.com/tomoncle/comicshelf/models"
	"github.com/tomoncle/comicshelf/repository"
)

func openService(t *testing.T) *Service {
	t.Helper()
	svc, err := Open(context.Background(), &database.Config{
		Connection: database.ConnectionConfig{Type: "sqlite", DBName: ":memory:"},
		Migrate:    database.MigrateConfig{EnableMigrateOnStartup: true},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestServiceRunInTxCommits(t *testing.T) {
	ctx := context.Background()
	svc := openService(t)

	var credit models.ComicBookArtist
	err := svc.RunInTx(ctx, func(ctx context.Context, tx *Service) error {
		series := &models.Series{Title: "Hellboy"}
		if err := tx.Series().Add(ctx, series); err != nil {
			return err
		}
		comicBook := &models.ComicBook{SeriesID: series.ID, IssueNumber: 1}
		if err := tx.ComicBooks().Add(ctx, comicBook); err != nil {
			return err
		}
		artist := &models.Artist{Name: "Mike Mignola"}
		if err := tx.Artists().Add(ctx, artist); err != nil {
			return err
		}
		role := &models.Role{Name: "Penciller"}
		if err := tx.Roles().Add(ctx, role); err != nil {
			return err
		}
		credit = models.ComicBookArtist{ComicBookID: comicBook.ID, ArtistID: artist.ID, RoleID: role.ID}
		return tx.ComicBookArtists().Add(ctx, &credit)
	})
	require.NoError(t, err)

	got, err := svc.ComicBookArtists().Get(ctx, credit.ID, true)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Mike Mignola", got.Artist.Name)
	assert.Equal(t, "Penciller", got.Role.Name)
	assert.Equal(t, "Hellboy", got.ComicBook.Series.Title)
}

func TestServiceRunInTxRollsBack(t *testing.T) {
	ctx := context.Background()
	svc := openService(t)

	errAbort := errors.New("abort")
	err := svc.RunInTx(ctx, func(ctx context.Context, tx *Service) error {
		if err := tx.Roles().Add(ctx, &models.Role{Name: "Inker"}); err != nil {
			return err
		}
		// A nested call joins the running transaction.
		return tx.RunInTx(ctx, func(ctx context.Context, inner *Service) error {
			if err := inner.Roles().Add(ctx, &models.Role{Name: "Colorist"}); err != nil {
				return err
			}
			return errAbort
		})
	})
	require.ErrorIs(t, err, errAbort)

	roles, err := svc.Roles().GetList(ctx)
	require.NoError(t, err)
	assert.Empty(t, roles)
}

func TestServiceListSupport(t *testing.T) {
	svc := openService(t)
	_, err := repository.ListOf[models.ComicBookArtist](context.Background(), svc.ComicBookArtists())
	assert.ErrorIs(t, err, repository.ErrNotSupported)
}

func TestServiceHealth(t *testing.T) {
	svc := openService(t)
	assert.True(t, svc.Health(context.Background()).Healthy)

	borrowed := New(svc.DB())
	assert.False(t, borrowed.Health(context.Background()).Healthy)
	assert.NoError(t, borrowed.Close())
	assert.True(t, svc.Health(context.Background()).Healthy)
}
