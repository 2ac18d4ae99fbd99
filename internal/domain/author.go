// Package domain contains core business entities and rules.
package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// AuthorID is the opaque handle identifying a registered author.
// Identity is by handle: two authors with the same name and email are
// different entities when their IDs differ.
type AuthorID uuid.UUID

// NewAuthorID returns a fresh random author handle.
func NewAuthorID() AuthorID {
	return AuthorID(uuid.New())
}

// String returns the canonical UUID form of the handle.
func (id AuthorID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether the handle was never assigned.
func (id AuthorID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

// Author is a writer known to a library.
// This is a domain entity - it is created by the registry and never mutated.
type Author struct {
	// ID is assigned by the registry when the author is added.
	ID AuthorID

	// Name is the author's display name.
	Name string

	// Email is the author's contact address.
	Email string
}

// String renders the author the way it appears on the console.
func (a Author) String() string {
	return fmt.Sprintf("Author: %s, Email: %s", a.Name, a.Email)
}
