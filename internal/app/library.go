// Package app contains application services that orchestrate use cases.
//
// Library is the single component of this repository: an in-memory
// registry of authors and books with insertion-ordered storage.
// It is meant for single-owner use and does no locking.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/jsamuelsen/go-library-registry/internal/domain"
	"github.com/jsamuelsen/go-library-registry/internal/platform/logging"
	"github.com/jsamuelsen/go-library-registry/internal/ports"
)

const tracerName = "github.com/jsamuelsen/go-library-registry/internal/app"

var _ ports.Catalog = (*Library)(nil)

// Library owns the ordered author and book sequences.
type Library struct {
	authors []domain.Author
	books   []domain.Book

	console io.Writer
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *Metrics
}

// LibraryConfig contains the optional dependencies of a Library.
type LibraryConfig struct {
	// Console receives the human-readable output. Defaults to os.Stdout.
	Console io.Writer

	// Logger is used when the context carries no logger. Defaults to slog.Default().
	Logger *slog.Logger

	// TracerProvider defaults to a noop provider.
	TracerProvider trace.TracerProvider

	// Metrics may be nil.
	Metrics *Metrics
}

// NewLibrary creates an empty library.
func NewLibrary(cfg LibraryConfig) *Library {
	console := cfg.Console
	if console == nil {
		console = os.Stdout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tp := cfg.TracerProvider
	if tp == nil {
		tp = noop.NewTracerProvider()
	}

	return &Library{
		authors: make([]domain.Author, 0),
		books:   make([]domain.Book, 0),
		console: console,
		logger:  logger.With(slog.String("component", "app.Library")),
		tracer:  tp.Tracer(tracerName),
		metrics: cfg.Metrics,
	}
}

// AddAuthor registers a new author and returns it.
func (l *Library) AddAuthor(ctx context.Context, name, email string) domain.Author {
	ctx, span := l.startSpan(ctx, "AddAuthor")
	defer span.End()

	author := domain.Author{
		ID:    domain.NewAuthorID(),
		Name:  name,
		Email: email,
	}
	l.authors = append(l.authors, author)
	l.metrics.authorRegistered(ctx)

	span.SetAttributes(attribute.String("author.id", author.ID.String()))
	l.loggerFor(ctx).InfoContext(ctx, "author registered",
		slog.String("author_id", author.ID.String()),
		slog.String("author_name", author.Name),
		slog.Int("authors", len(l.authors)),
	)

	return author
}

// AddBook registers a book if its author is registered with this library.
// An unknown author leaves the library unchanged, prints a rejection line
// naming the author on the console and returns *domain.UnregisteredAuthorError.
func (l *Library) AddBook(ctx context.Context, title string, author domain.Author, year int) (domain.Book, error) {
	ctx, span := l.startSpan(ctx, "AddBook")
	defer span.End()

	span.SetAttributes(
		attribute.String("book.title", title),
		attribute.String("author.id", author.ID.String()),
		attribute.Int("book.year", year),
	)

	registered, ok := l.lookupAuthor(author.ID)
	if !ok {
		err := domain.NewUnregisteredAuthorError(author, title)

		if _, werr := fmt.Fprintf(l.console, "Author '%s' is not registered.\n", author); werr != nil {
			l.loggerFor(ctx).ErrorContext(ctx, "console write failed", slog.Any("error", werr))
		}

		l.metrics.bookRejected(ctx)
		span.RecordError(err)
		span.SetStatus(codes.Error, "author not registered")
		l.loggerFor(ctx).WarnContext(ctx, "book rejected",
			slog.String("title", title),
			slog.String("author_id", author.ID.String()),
			slog.String("author_name", author.Name),
		)

		return domain.Book{}, err
	}

	book := domain.Book{
		Title:           title,
		Author:          registered,
		PublicationYear: year,
	}
	l.books = append(l.books, book)
	l.metrics.bookAdded(ctx)

	l.loggerFor(ctx).InfoContext(ctx, "book added",
		slog.String("title", title),
		slog.String("author_id", registered.ID.String()),
		slog.Int("year", year),
		slog.Int("books", len(l.books)),
	)

	return book, nil
}

// FindBookByTitle scans books in insertion order and returns the first one
// whose title equals title exactly. The boolean is false when none match.
func (l *Library) FindBookByTitle(ctx context.Context, title string) (domain.Book, bool) {
	ctx, span := l.startSpan(ctx, "FindBookByTitle")
	defer span.End()

	span.SetAttributes(attribute.String("book.title", title))

	idx := slices.IndexFunc(l.books, func(b domain.Book) bool {
		return b.Title == title
	})
	found := idx >= 0

	span.SetAttributes(attribute.Bool("lookup.found", found))
	l.metrics.lookup(ctx, found)
	l.loggerFor(ctx).DebugContext(ctx, "book lookup",
		slog.String("title", title),
		slog.Bool("found", found),
	)

	if !found {
		return domain.Book{}, false
	}

	return l.books[idx], true
}

// ListBooks writes one line per book, in insertion order, to the console.
func (l *Library) ListBooks(ctx context.Context) error {
	ctx, span := l.startSpan(ctx, "ListBooks")
	defer span.End()

	span.SetAttributes(attribute.Int("books", len(l.books)))

	for _, book := range l.books {
		if _, err := fmt.Fprintln(l.console, book); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "console write failed")
			return fmt.Errorf("listing books: %w", err)
		}
	}

	l.loggerFor(ctx).DebugContext(ctx, "books listed", slog.Int("books", len(l.books)))

	return nil
}

// Authors returns a copy of the registered authors in insertion order.
func (l *Library) Authors() []domain.Author {
	return slices.Clone(l.authors)
}

// Books returns a copy of the registered books in insertion order.
func (l *Library) Books() []domain.Book {
	return slices.Clone(l.books)
}

func (l *Library) lookupAuthor(id domain.AuthorID) (domain.Author, bool) {
	for _, a := range l.authors {
		if a.ID == id {
			return a, true
		}
	}

	return domain.Author{}, false
}

// startSpan opens a span for op and, when it is recording a real trace,
// attaches the trace ID to the context logger.
func (l *Library) startSpan(ctx context.Context, op string) (context.Context, trace.Span) {
	ctx, span := l.tracer.Start(ctx, "library."+op)

	if sc := span.SpanContext(); sc.IsValid() {
		if !logging.HasLogger(ctx) {
			ctx = logging.WithContext(ctx, l.logger)
		}
		ctx = logging.WithTraceID(ctx, sc.TraceID().String())
	}

	return ctx, span
}

func (l *Library) loggerFor(ctx context.Context) *slog.Logger {
	if logging.HasLogger(ctx) {
		return logging.FromContext(ctx)
	}

	return l.logger
}
