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

type SeriesRepository struct {
	baseRepository[models.Series]
}

var (
	_ Repository[models.Series] = (*SeriesRepository)(nil)
	_ Lister[models.Series]     = (*SeriesRepository)(nil)
)

func NewSeriesRepository(db bun.IDB) *SeriesRepository {
	return &SeriesRepository{
		baseRepository: newBaseRepository[models.Series](db, "series", "s"),
	}
}

// Get returns the series with the given id, with its comic books ordered by
// issue number when includeRelatedEntities is set.
func (r *SeriesRepository) Get(ctx context.Context, id int64, includeRelatedEntities bool) (*models.Series, error) {
	return r.getSingle(ctx, id, func(q *bun.SelectQuery) *bun.SelectQuery {
		if !includeRelatedEntities {
			return q
		}
		return q.Relation("ComicBooks", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("cb.issue_number ASC")
		})
	})
}

// GetList returns every series ordered by title.
func (r *SeriesRepository) GetList(ctx context.Context) ([]*models.Series, error) {
	var series []*models.Series
	if err := r.db.NewSelect().Model(&series).Order("s.title ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	return series, nil
}
