// Package domain contains business logic types and errors.
// Domain errors represent business-level failures and are infrastructure-agnostic.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrUnregisteredAuthor indicates a book referenced an author the library does not know.
	ErrUnregisteredAuthor = errors.New("author not registered")
)

// UnregisteredAuthorError provides context for a rejected book.
type UnregisteredAuthorError struct {
	Author Author
	Title  string
}

// Error implements the error interface.
func (e *UnregisteredAuthorError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("cannot add %q: author %q is not registered", e.Title, e.Author.Name)
	}

	return fmt.Sprintf("author %q is not registered", e.Author.Name)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnregisteredAuthorError) Unwrap() error {
	return ErrUnregisteredAuthor
}

// NewUnregisteredAuthorError creates an unregistered author error with context.
func NewUnregisteredAuthorError(author Author, title string) error {
	return &UnregisteredAuthorError{Author: author, Title: title}
}

// IsUnregisteredAuthor checks if an error is an unregistered author error.
func IsUnregisteredAuthor(err error) bool {
	return errors.Is(err, ErrUnregisteredAuthor)
}
