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


package repository

import (
	"context"
	"fmt"

	"github.com/tomoncle/comicshelf/models"
	"github.com/uptrace/bun"
)

type ArtistRepository struct {
	baseRepository[models.Artist]
}

var (
	_ Repository[models.Artist] = (*ArtistRepository)(nil)
	_ Lister[models.Artist]     = (*ArtistRepository)(nil)
)

func NewArtistRepository(db bun.IDB) *ArtistRepository {
	return &ArtistRepository{
		baseRepository: newBaseRepository[models.Artist](db, "artist", "a"),
	}
}

// Get returns the artist with the given id. With includeRelatedEntities it
// also loads the artist's credits with their role and comic book, including
// the comic book's series.
func (r *ArtistRepository) Get(ctx context.Context, id int64, includeRelatedEntities bool) (*models.Artist, error) {
	return r.getSingle(ctx, id, func(q *bun.SelectQuery) *bun.SelectQuery {
		if !includeRelatedEntities {
			return q
		}
		return q.
			Relation("ComicBooks", func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.Order("cba.comic_book_id ASC", "cba.role_id ASC")
			}).
			Relation("ComicBooks.Role").
			Relation("ComicBooks.ComicBook").
			Relation("ComicBooks.ComicBook.Series")
	})
}

// GetList returns every artist ordered by name.
func (r *ArtistRepository) GetList(ctx context.Context) ([]*models.Artist, error) {
	var artists []*models.Artist
	if err := r.db.NewSelect().Model(&artists).Order("a.name ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list artist: %w", err)
	}
	return artists, nil
}
