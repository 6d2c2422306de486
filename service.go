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


// Package comicshelf wires the comic book catalog repositories to a database
// session.
package comicshelf

import (
	"context"
	"fmt"

	"github.com/tomoncle/comicshelf/database"
	"github.com/tomoncle/comicshelf/repository"
	"github.com/uptrace/bun"
)

// Service hands out catalog repositories bound to one session. A Service
// built on a *bun.DB may be shared between goroutines; one built on a
// bun.Tx belongs to the goroutine running that transaction.
type Service struct {
	db      bun.IDB
	factory *database.BaseDatabaseFactory
	logger  database.Logger

	comicBooks       *repository.ComicBookRepository
	comicBookArtists *repository.ComicBookArtistRepository
	series           *repository.SeriesRepository
	artists          *repository.ArtistRepository
	roles            *repository.RoleRepository
}

// New returns a Service on a session owned by the caller.
func New(db bun.IDB) *Service {
	return &Service{
		db:               db,
		logger:           database.GetLogger(),
		comicBooks:       repository.NewComicBookRepository(db),
		comicBookArtists: repository.NewComicBookArtistRepository(db),
		series:           repository.NewSeriesRepository(db),
		artists:          repository.NewArtistRepository(db),
		roles:            repository.NewRoleRepository(db),
	}
}

// Open connects to the database described by cfg, running the configured
// startup migrations. Close releases the connection.
func Open(ctx context.Context, cfg *database.Config) (*Service, error) {
	factory, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s := New(factory.GetDB())
	s.factory = factory
	return s, nil
}

func (s *Service) ComicBooks() *repository.ComicBookRepository { return s.comicBooks }

func (s *Service) ComicBookArtists() *repository.ComicBookArtistRepository {
	return s.comicBookArtists
}

func (s *Service) Series() *repository.SeriesRepository { return s.series }

func (s *Service) Artists() *repository.ArtistRepository { return s.artists }

func (s *Service) Roles() *repository.RoleRepository { return s.roles }

// DB returns the session the repositories are bound to.
func (s *Service) DB() bun.IDB { return s.db }

// RunInTx runs fn with a Service whose repositories share one transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
// Called on a Service that is already bound to a transaction, fn joins it.
func (s *Service) RunInTx(ctx context.Context, fn func(ctx context.Context, tx *Service) error) error {
	switch db := s.db.(type) {
	case *bun.DB:
		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			return fn(ctx, New(tx))
		})
	case bun.Tx:
		return fn(ctx, s)
	default:
		return fmt.Errorf("transactions are not supported on %T", s.db)
	}
}

// Health reports the database health when the Service opened the connection.
func (s *Service) Health(ctx context.Context) *database.HealthStatus {
	if s.factory == nil {
		return &database.HealthStatus{LastError: "connection not owned by service"}
	}
	return s.factory.GetHealthStatus(ctx)
}

// Close closes the connection if Open created it; a session passed to New is
// left to its owner.
func (s *Service) Close() error {
	if s.factory == nil {
		return nil
	}
	if err := s.factory.Close(); err != nil {
		s.logger.Error("Failed to close catalog service", "error", err)
		return err
	}
	return nil
}
