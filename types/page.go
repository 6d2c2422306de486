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


// Package types holds query and paging value types shared by repositories.
package types

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest describes a 1-based page and optional ordering such as
// "s.title ASC" or "cb.issue_number DESC".
type PageRequest struct {
	page     int
	pageSize int
	orders   []string
}

func NewPageRequest(page int, pageSize int, orders ...string) *PageRequest {
	return &PageRequest{page: page, pageSize: pageSize, orders: orders}
}

// GetPage returns the requested page, at least DefaultPage.
func (p *PageRequest) GetPage() int {
	if p.page < 1 {
		return DefaultPage
	}
	return p.page
}

// GetPageSize returns the page size clamped to [1, MaxPageSize]; zero or
// negative sizes mean DefaultPageSize.
func (p *PageRequest) GetPageSize() int {
	switch {
	case p.pageSize < 1:
		return DefaultPageSize
	case p.pageSize > MaxPageSize:
		return MaxPageSize
	}
	return p.pageSize
}

func (p *PageRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

func (p *PageRequest) GetOrders() []string {
	return p.orders
}

// Pagination is one page of items with the total row count.
type Pagination[T any] struct {
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	Total    int  `json:"total"`
	Items    []*T `json:"items"`
}

func NewPagination[T any](req *PageRequest) *Pagination[T] {
	return &Pagination[T]{
		Page:     req.GetPage(),
		PageSize: req.GetPageSize(),
		Items:    make([]*T, 0),
	}
}

func (p *Pagination[T]) TotalPages() int {
	if p.PageSize < 1 || p.Total == 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}
