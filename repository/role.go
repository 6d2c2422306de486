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

type RoleRepository struct {
	baseRepository[models.Role]
}

var (
	_ Repository[models.Role] = (*RoleRepository)(nil)
	_ Lister[models.Role]     = (*RoleRepository)(nil)
)

func NewRoleRepository(db bun.IDB) *RoleRepository {
	return &RoleRepository{
		baseRepository: newBaseRepository[models.Role](db, "role", "r"),
	}
}

// Get returns the role with the given id. Roles have no relations to load.
func (r *RoleRepository) Get(ctx context.Context, id int64, _ bool) (*models.Role, error) {
	return r.getSingle(ctx, id, nil)
}

func (r *RoleRepository) GetList(ctx context.Context) ([]*models.Role, error) {
	var roles []*models.Role
	if err := r.db.NewSelect().Model(&roles).Order("r.name ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list role: %w", err)
	}
	return roles, nil
}
