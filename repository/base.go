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
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
)

// baseRepository implements the mutating half of Repository for one table.
// Concrete repositories embed it and add their own Get.
type baseRepository[T any] struct {
	db    bun.IDB
	table string
	alias string
}

func newBaseRepository[T any](db bun.IDB, table, alias string) baseRepository[T] {
	return baseRepository[T]{db: db, table: table, alias: alias}
}

// DB returns the session the repository is bound to.
func (r *baseRepository[T]) DB() bun.IDB { return r.db }

func (r *baseRepository[T]) Add(ctx context.Context, entity *T) error {
	if entity == nil {
		return fmt.Errorf("add %s: %w", r.table, ErrNilEntity)
	}
	if _, err := r.db.NewInsert().Model(entity).Exec(ctx); err != nil {
		return fmt.Errorf("add %s: %w", r.table, err)
	}
	return nil
}

func (r *baseRepository[T]) Update(ctx context.Context, entity *T) error {
	if entity == nil {
		return fmt.Errorf("update %s: %w", r.table, ErrNilEntity)
	}
	res, err := r.db.NewUpdate().Model(entity).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("update %s %d: %w", r.table, idOf(entity), err)
	}
	return r.expectAffected(res, "update", idOf(entity))
}

func (r *baseRepository[T]) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().Model((*T)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", r.table, id, err)
	}
	return r.expectAffected(res, "delete", id)
}

func (r *baseRepository[T]) expectAffected(res sql.Result, op string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %s %d: %w", op, r.table, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s %d: %w", op, r.table, id, ErrNotFound)
	}
	return nil
}

// getSingle selects the row with the given id, letting include add
// relations. It fetches up to two rows so a duplicated identifier is
// reported as ErrMultipleRows rather than silently picking one.
func (r *baseRepository[T]) getSingle(ctx context.Context, id int64, include func(q *bun.SelectQuery) *bun.SelectQuery) (*T, error) {
	var rows []*T
	q := r.db.NewSelect().
		Model(&rows).
		Where("?.id = ?", bun.Ident(r.alias), id).
		Limit(2)
	if include != nil {
		q = include(q)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("get %s %d: %w", r.table, id, err)
	}
	switch len(rows) {
	case 0:
		return nil, nil
	case 1:
		return rows[0], nil
	default:
		return nil, fmt.Errorf("get %s %d: %w", r.table, id, ErrMultipleRows)
	}
}

func idOf(entity interface{}) int64 {
	if e, ok := entity.(Entity); ok {
		return e.GetID()
	}
	return 0
}
