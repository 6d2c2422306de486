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
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Update and Delete when no row has the id.
	ErrNotFound = errors.New("entity not found")
	// ErrMultipleRows means an identifier matched more than one row, which
	// the primary key should make impossible.
	ErrMultipleRows = errors.New("identifier matched more than one row")
	// ErrNotSupported is returned for operations a repository does not offer.
	ErrNotSupported = errors.New("operation not supported")
	// ErrNilEntity is returned by Add and Update when given a nil entity.
	ErrNilEntity = errors.New("entity is nil")
)

// Entity is a model with a stable integer identity.
type Entity interface {
	GetID() int64
}

// Repository is the CRUD surface shared by every catalog repository.
//
// Add, Update and Delete each issue one statement. Bound to a *bun.DB the
// statement commits before the call returns; bound to a bun.Tx it becomes
// part of the caller's transaction. A repository is as safe for concurrent
// use as the bun.IDB it wraps: a *bun.DB may be shared, a bun.Tx may not.
type Repository[T any] interface {
	// Get returns the entity with the given id, or nil when there is none.
	// includeRelatedEntities eagerly loads the references the concrete
	// repository knows about.
	Get(ctx context.Context, id int64, includeRelatedEntities bool) (*T, error)

	// Add inserts entity and stores the generated id in it.
	Add(ctx context.Context, entity *T) error

	// Update overwrites every column of the row with entity's primary key.
	Update(ctx context.Context, entity *T) error

	// Delete removes the row with the given id.
	Delete(ctx context.Context, id int64) error
}

// Lister is implemented by repositories that can list all their entities.
type Lister[T any] interface {
	GetList(ctx context.Context) ([]*T, error)
}

// ListOf lists the entities of repo when it implements Lister[T] and returns
// ErrNotSupported otherwise.
func ListOf[T any](ctx context.Context, repo interface{}) ([]*T, error) {
	lister, ok := repo.(Lister[T])
	if !ok {
		return nil, fmt.Errorf("GetList on %T: %w", repo, ErrNotSupported)
	}
	return lister.GetList(ctx)
}
