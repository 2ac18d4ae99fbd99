// Package ports defines the interfaces the entry point and tests depend on,
// so they can be driven by any registry implementation.
//
// Port Design Principles:
//   - Context as first parameter for tracing and logger propagation
//   - Return domain types only
//   - Expected outcomes (a missing title) are values, faults are errors
package ports

import (
	"context"

	"github.com/jsamuelsen/go-library-registry/internal/domain"
)

// Catalog is the contract of a library registry.
type Catalog interface {
	// AddAuthor registers a new author and returns it with its assigned handle.
	// Never fails; equal name/email pairs still produce distinct authors.
	AddAuthor(ctx context.Context, name, email string) domain.Author

	// AddBook registers a book by an already registered author.
	// Returns a *domain.UnregisteredAuthorError when the author is unknown;
	// the registry is left unchanged in that case.
	AddBook(ctx context.Context, title string, author domain.Author, year int) (domain.Book, error)

	// FindBookByTitle returns the earliest added book whose title matches exactly.
	// The boolean is false when no book matches.
	FindBookByTitle(ctx context.Context, title string) (domain.Book, bool)

	// ListBooks writes one console line per book in insertion order.
	ListBooks(ctx context.Context) error
}
