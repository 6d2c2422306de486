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

	"github.com/tomoncle/comicshelf/models"
	"github.com/uptrace/bun"
)

// ComicBookArtistRepository stores the credits linking an artist and a role
// to a comic book. It does not implement Lister.
type ComicBookArtistRepository struct {
	baseRepository[models.ComicBookArtist]
}

var _ Repository[models.ComicBookArtist] = (*ComicBookArtistRepository)(nil)

func NewComicBookArtistRepository(db bun.IDB) *ComicBookArtistRepository {
	return &ComicBookArtistRepository{
		baseRepository: newBaseRepository[models.ComicBookArtist](db, "comic_book_artist", "cba"),
	}
}

// Get returns the credit with the given id. With includeRelatedEntities it
// also loads the artist, the role, the comic book and the comic book's
// series; otherwise those references are nil.
func (r *ComicBookArtistRepository) Get(ctx context.Context, id int64, includeRelatedEntities bool) (*models.ComicBookArtist, error) {
	return r.getSingle(ctx, id, func(q *bun.SelectQuery) *bun.SelectQuery {
		if !includeRelatedEntities {
			return q
		}
		return q.
			Relation("Artist").
			Relation("Role").
			Relation("ComicBook").
			Relation("ComicBook.Series")
	})
}
