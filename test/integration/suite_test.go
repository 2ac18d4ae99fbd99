//go:build integration

package integration

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/jsamuelsen/go-library-registry/internal/app"
	"github.com/jsamuelsen/go-library-registry/internal/domain"
)

// testContext holds state shared across step definitions within a scenario.
type testContext struct {
	library  *app.Library
	console  *bytes.Buffer
	authors  map[string]domain.Author
	listings []string
	found    *domain.Book
	err      error
}

// reset gives the scenario a fresh library and forgets previous results.
func (tc *testContext) reset() {
	tc.console = &bytes.Buffer{}
	tc.library = app.NewLibrary(app.LibraryConfig{
		Console: tc.console,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	tc.authors = make(map[string]domain.Author)
	tc.listings = nil
	tc.found = nil
	tc.err = nil
}

// InitializeScenario registers step definitions for each scenario.
func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &testContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^an empty library$`, tc.anEmptyLibrary)
	ctx.Step(`^an author "([^"]*)" with email "([^"]*)" is registered$`, tc.anAuthorIsRegistered)
	ctx.Step(`^an unregistered author "([^"]*)" with email "([^"]*)"$`, tc.anUnregisteredAuthor)
	ctx.Step(`^I add the book "([^"]*)" by "([^"]*)" published in (\d+)$`, tc.iAddTheBook)
	ctx.Step(`^I list the books$`, tc.iListTheBooks)
	ctx.Step(`^I look up the title "([^"]*)"$`, tc.iLookUpTheTitle)
	ctx.Step(`^the library should hold (\d+) books$`, tc.theLibraryShouldHoldBooks)
	ctx.Step(`^the library should hold (\d+) authors$`, tc.theLibraryShouldHoldAuthors)
	ctx.Step(`^the console should show:$`, tc.theConsoleShouldShow)
	ctx.Step(`^the book "([^"]*)" by "([^"]*)" published in (\d+) should be found$`, tc.theBookShouldBeFound)
	ctx.Step(`^no book should be found$`, tc.noBookShouldBeFound)
	ctx.Step(`^the book should be rejected$`, tc.theBookShouldBeRejected)
	ctx.Step(`^both listings should be identical$`, tc.bothListingsShouldBeIdentical)
}

func (tc *testContext) anEmptyLibrary() error {
	if n := len(tc.library.Books()) + len(tc.library.Authors()); n != 0 {
		return fmt.Errorf("expected an empty library, found %d entities", n)
	}
	return nil
}

func (tc *testContext) anAuthorIsRegistered(name, email string) error {
	tc.authors[name] = tc.library.AddAuthor(context.Background(), name, email)
	return nil
}

// anUnregisteredAuthor creates an author that only another library knows.
func (tc *testContext) anUnregisteredAuthor(name, email string) error {
	other := app.NewLibrary(app.LibraryConfig{
		Console: io.Discard,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	tc.authors[name] = other.AddAuthor(context.Background(), name, email)
	return nil
}

func (tc *testContext) iAddTheBook(title, authorName string, year int) error {
	author, ok := tc.authors[authorName]
	if !ok {
		return fmt.Errorf("no author named %q in this scenario", authorName)
	}

	_, tc.err = tc.library.AddBook(context.Background(), title, author, year)
	return nil
}

func (tc *testContext) iListTheBooks() error {
	tc.console.Reset()
	if err := tc.library.ListBooks(context.Background()); err != nil {
		return err
	}

	tc.listings = append(tc.listings, tc.console.String())
	return nil
}

func (tc *testContext) iLookUpTheTitle(title string) error {
	tc.found = nil
	if book, ok := tc.library.FindBookByTitle(context.Background(), title); ok {
		tc.found = &book
	}
	return nil
}

func (tc *testContext) theLibraryShouldHoldBooks(n int) error {
	if got := len(tc.library.Books()); got != n {
		return fmt.Errorf("expected %d books, got %d", n, got)
	}
	return nil
}

func (tc *testContext) theLibraryShouldHoldAuthors(n int) error {
	if got := len(tc.library.Authors()); got != n {
		return fmt.Errorf("expected %d authors, got %d", n, got)
	}
	return nil
}

func (tc *testContext) theConsoleShouldShow(doc *godog.DocString) error {
	want := strings.TrimSpace(doc.Content)
	got := strings.TrimSpace(tc.console.String())

	if got != want {
		return fmt.Errorf("console mismatch.\nwant:\n%s\ngot:\n%s", want, got)
	}
	return nil
}

func (tc *testContext) theBookShouldBeFound(title, authorName string, year int) error {
	if tc.found == nil {
		return errors.New("expected a book, got not found")
	}

	if tc.found.Title != title || tc.found.PublicationYear != year {
		return fmt.Errorf("expected %q (%d), got %s", title, year, tc.found)
	}

	if want := tc.authors[authorName]; tc.found.Author.ID != want.ID {
		return fmt.Errorf("expected author %s, got %s", want, tc.found.Author)
	}
	return nil
}

func (tc *testContext) noBookShouldBeFound() error {
	if tc.found != nil {
		return fmt.Errorf("expected not found, got %s", tc.found)
	}
	return nil
}

func (tc *testContext) theBookShouldBeRejected() error {
	if !domain.IsUnregisteredAuthor(tc.err) {
		return fmt.Errorf("expected an unregistered author error, got %v", tc.err)
	}
	return nil
}

func (tc *testContext) bothListingsShouldBeIdentical() error {
	if len(tc.listings) != 2 {
		return fmt.Errorf("expected 2 listings, got %d", len(tc.listings))
	}
	if tc.listings[0] != tc.listings[1] {
		return fmt.Errorf("listings differ:\n%s\n---\n%s", tc.listings[0], tc.listings[1])
	}
	return nil
}

// TestFeatures runs the GoDog BDD test suite.
func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			TestingT: t,
			Tags:     os.Getenv("GODOG_TAGS"),
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
