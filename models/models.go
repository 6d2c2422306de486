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


package models

import (
	"fmt"
	"time"

	"github.com/tomoncle/comicshelf/database"
	"github.com/uptrace/bun"
)

// Table creation order; referenced tables come first.
const (
	priorityLookup = iota * 10
	priorityComicBook
	priorityComicBookArtist
)

func init() {
	database.RegisteredModel(database.NewModelAdapter((*Series)(nil), priorityLookup))
	database.RegisteredModel(database.NewModelAdapter((*Artist)(nil), priorityLookup))
	database.RegisteredModel(database.NewModelAdapter((*Role)(nil), priorityLookup))
	database.RegisteredModel(database.NewModelAdapter((*ComicBook)(nil), priorityComicBook))
	database.RegisteredModel(database.NewModelAdapter((*ComicBookArtist)(nil), priorityComicBookArtist))
}

type Series struct {
	bun.BaseModel `bun:"table:series,alias:s"`

	ID          int64        `bun:"id,pk,autoincrement" json:"id"`
	Title       string       `bun:"title,notnull" json:"title"`
	Description string       `bun:"description" json:"description"`
	ComicBooks  []*ComicBook `bun:"rel:has-many,join:id=series_id" json:"comic_books,omitempty"`
}

func (s *Series) GetID() int64 { return s.ID }

type Artist struct {
	bun.BaseModel `bun:"table:artist,alias:a"`

	ID         int64              `bun:"id,pk,autoincrement" json:"id"`
	Name       string             `bun:"name,notnull" json:"name"`
	ComicBooks []*ComicBookArtist `bun:"rel:has-many,join:id=artist_id" json:"comic_books,omitempty"`
}

func (a *Artist) GetID() int64 { return a.ID }

// Role is the kind of contribution an artist made to a comic book,
// e.g. "Script", "Pencils" or "Inks".
type Role struct {
	bun.BaseModel `bun:"table:role,alias:r"`

	ID   int64  `bun:"id,pk,autoincrement" json:"id"`
	Name string `bun:"name,notnull,unique" json:"name"`
}

func (r *Role) GetID() int64 { return r.ID }

// ComicBook is a single issue of a series.
type ComicBook struct {
	bun.BaseModel `bun:"table:comic_book,alias:cb"`

	ID            int64              `bun:"id,pk,autoincrement" json:"id"`
	SeriesID      int64              `bun:"series_id,notnull" json:"series_id"`
	Series        *Series            `bun:"rel:belongs-to,join:series_id=id" json:"series,omitempty"`
	IssueNumber   int                `bun:"issue_number,notnull" json:"issue_number"`
	Description   string             `bun:"description" json:"description"`
	PublishedOn   time.Time          `bun:"published_on,notnull" json:"published_on"`
	AverageRating *float64           `bun:"average_rating" json:"average_rating,omitempty"`
	Artists       []*ComicBookArtist `bun:"rel:has-many,join:id=comic_book_id" json:"artists,omitempty"`
}

func (c *ComicBook) GetID() int64 { return c.ID }

// DisplayText renders the comic book as "<series title> #<issue number>".
// The series title is omitted when the series has not been loaded.
func (c *ComicBook) DisplayText() string {
	if c.Series == nil {
		return fmt.Sprintf("#%d", c.IssueNumber)
	}
	return fmt.Sprintf("%s #%d", c.Series.Title, c.IssueNumber)
}

// ComicBookArtist records that an artist performed a role on a comic book.
type ComicBookArtist struct {
	bun.BaseModel `bun:"table:comic_book_artist,alias:cba"`

	ID          int64      `bun:"id,pk,autoincrement" json:"id"`
	ComicBookID int64      `bun:"comic_book_id,notnull" json:"comic_book_id"`
	ComicBook   *ComicBook `bun:"rel:belongs-to,join:comic_book_id=id" json:"comic_book,omitempty"`
	ArtistID    int64      `bun:"artist_id,notnull" json:"artist_id"`
	Artist      *Artist    `bun:"rel:belongs-to,join:artist_id=id" json:"artist,omitempty"`
	RoleID      int64      `bun:"role_id,notnull" json:"role_id"`
	Role        *Role      `bun:"rel:belongs-to,join:role_id=id" json:"role,omitempty"`
}

func (c *ComicBookArtist) GetID() int64 { return c.ID }
