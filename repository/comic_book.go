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
	"github.com/tomoncle/comicshelf/types"
	"github.com/uptrace/bun"
)

var comicBookDefaultOrder = []string{"series.title ASC", "cb.issue_number ASC"}

type ComicBookRepository struct {
	baseRepository[models.ComicBook]
}

var (
	_ Repository[models.ComicBook] = (*ComicBookRepository)(nil)
	_ Lister[models.ComicBook]     = (*ComicBookRepository)(nil)
)

func NewComicBookRepository(db bun.IDB) *ComicBookRepository {
	return &ComicBookRepository{
		baseRepository: newBaseRepository[models.ComicBook](db, "comic_book", "cb"),
	}
}

// Get returns the comic book with the given id. With includeRelatedEntities
// it also loads the series and the credits, each with its artist and role,
// ordered by role.
func (r *ComicBookRepository) Get(ctx context.Context, id int64, includeRelatedEntities bool) (*models.ComicBook, error) {
	return r.getSingle(ctx, id, func(q *bun.SelectQuery) *bun.SelectQuery {
		if !includeRelatedEntities {
			return q
		}
		return q.
			Relation("Series").
			Relation("Artists", func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.Order("cba.role_id ASC", "cba.id ASC")
			}).
			Relation("Artists.Artist").
			Relation("Artists.Role")
	})
}

// GetList returns every comic book with its series, ordered by series title
// and issue number.
func (r *ComicBookRepository) GetList(ctx context.Context) ([]*models.ComicBook, error) {
	var comicBooks []*models.ComicBook
	err := r.db.NewSelect().
		Model(&comicBooks).
		Relation("Series").
		Order(comicBookDefaultOrder...).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list comic_book: %w", err)
	}
	return comicBooks, nil
}

// Page returns one page of comic books with their series. Without explicit
// orders the GetList ordering applies.
func (r *ComicBookRepository) Page(ctx context.Context, req *types.PageRequest) (*types.Pagination[models.ComicBook], error) {
	if req == nil {
		req = types.NewPageRequest(types.DefaultPage, types.DefaultPageSize)
	}
	orders := req.GetOrders()
	if len(orders) == 0 {
		orders = comicBookDefaultOrder
	}
	var comicBooks []*models.ComicBook
	total, err := r.db.NewSelect().
		Model(&comicBooks).
		Relation("Series").
		Order(orders...).
		Offset(req.GetOffset()).
		Limit(req.GetPageSize()).
		ScanAndCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("page comic_book: %w", err)
	}
	pagination := types.NewPagination[models.ComicBook](req)
	pagination.Total = total
	if len(comicBooks) > 0 {
		pagination.Items = comicBooks
	}
	return pagination, nil
}

// SeriesHasIssueNumber reports whether a comic book other than comicBookID
// already has issueNumber in the series. Pass 0 as comicBookID for a comic
// book that is not stored yet.
func (r *ComicBookRepository) SeriesHasIssueNumber(ctx context.Context, comicBookID, seriesID int64, issueNumber int) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*models.ComicBook)(nil)).
		Where("cb.id != ?", comicBookID).
		Where("cb.series_id = ?", seriesID).
		Where("cb.issue_number = ?", issueNumber).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("check issue number: %w", err)
	}
	return exists, nil
}

// HasArtistRoleCombination reports whether the comic book already credits
// the artist with the role.
func (r *ComicBookRepository) HasArtistRoleCombination(ctx context.Context, comicBookID, artistID, roleID int64) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*models.ComicBookArtist)(nil)).
		Where("cba.comic_book_id = ?", comicBookID).
		Where("cba.artist_id = ?", artistID).
		Where("cba.role_id = ?", roleID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("check artist role combination: %w", err)
	}
	return exists, nil
}
