// Package database opens Bun connections to MySQL, PostgreSQL or SQLite and
// prepares the catalog schema: table migrations, foreign keys and seed SQL.
package database
