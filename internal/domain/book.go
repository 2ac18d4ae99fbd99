package domain

import "fmt"

// Book is a title held by a library.
// Author is the registered author value, carrying its handle; the book
// never owns or modifies it.
type Book struct {
	Title           string
	Author          Author
	PublicationYear int
}

// String renders the book the way it appears on the console.
func (b Book) String() string {
	return fmt.Sprintf("Title: %s, Author: %s, Year: %d", b.Title, b.Author, b.PublicationYear)
}
