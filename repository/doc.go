// Package repository provides the comic book catalog repositories: a generic
// Bun-backed base with Add, Update and Delete, and per-entity Get and GetList
// queries with optional eager loading of related entities.
package repository
