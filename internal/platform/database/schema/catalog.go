// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns of the PostgreSQL schema so
// queries never spell them out by hand.
package schema

import "strings"

// CatalogAuthorTable represents the 'catalog.author' table
type CatalogAuthorTable struct {
	Table      string
	ID         string
	FirstName  string
	MiddleName string
	LastName   string
	CreatedAt  string
	UpdatedAt  string
}

// CatalogAuthor is the schema definition for catalog.author
var CatalogAuthor = CatalogAuthorTable{
	Table:      "catalog.author",
	ID:         "id",
	FirstName:  "firstname",
	MiddleName: "middlename",
	LastName:   "lastname",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

// Columns returns all standard column names
func (t CatalogAuthorTable) Columns() []string {
	return []string{t.ID, t.FirstName, t.MiddleName, t.LastName, t.CreatedAt, t.UpdatedAt}
}

// CatalogBookTable represents the 'catalog.book' table
type CatalogBookTable struct {
	Table            string
	ID               string
	Name             string
	PagesCount       string
	Avatar           string
	PublicationYear  string
	ShortDescription string
	Rating           string
	CreatedAt        string
	UpdatedAt        string
}

// CatalogBook is the schema definition for catalog.book
var CatalogBook = CatalogBookTable{
	Table:            "catalog.book",
	ID:               "id",
	Name:             "name",
	PagesCount:       "pagescount",
	Avatar:           "avatar",
	PublicationYear:  "publicationyear",
	ShortDescription: "shortdescription",
	Rating:           "rating",
	CreatedAt:        "createdat",
	UpdatedAt:        "updatedat",
}

// Columns returns all standard column names
func (t CatalogBookTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.PagesCount, t.Avatar, t.PublicationYear,
		t.ShortDescription, t.Rating, t.CreatedAt, t.UpdatedAt,
	}
}

// CatalogGenreTable represents the 'catalog.genre' table
type CatalogGenreTable struct {
	Table     string
	ID        string
	Name      string
	CreatedAt string
	UpdatedAt string
}

// CatalogGenre is the schema definition for catalog.genre
var CatalogGenre = CatalogGenreTable{
	Table:     "catalog.genre",
	ID:        "id",
	Name:      "name",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t CatalogGenreTable) Columns() []string {
	return []string{t.ID, t.Name, t.CreatedAt, t.UpdatedAt}
}

// # Join tables

// JoinTable is a two-column many-to-many link.
type JoinTable struct {
	Table string
	// Owner is the column of the side that owns the link.
	Owner string
	// Target is the column of the linked side.
	Target string
}

var (
	// CatalogAuthorGenre links authors to their genres (owned by the author).
	CatalogAuthorGenre = JoinTable{Table: "catalog.authorgenre", Owner: "authorid", Target: "genreid"}
	// CatalogBookAuthor links books to their authors (owned by the book).
	CatalogBookAuthor = JoinTable{Table: "catalog.bookauthor", Owner: "bookid", Target: "authorid"}
	// CatalogBookGenre links books to their genres (owned by the book).
	CatalogBookGenre = JoinTable{Table: "catalog.bookgenre", Owner: "bookid", Target: "genreid"}
)

// List joins column names for a SELECT or INSERT list.
func List(columns []string) string {
	return strings.Join(columns, ", ")
}
