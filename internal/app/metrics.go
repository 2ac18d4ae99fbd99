package app

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MeterName is the instrumentation scope of the registry instruments.
const MeterName = "github.com/jsamuelsen/go-library-registry/internal/app"

// Lookup result attribute values.
const (
	lookupFound    = "found"
	lookupNotFound = "not_found"
)

var (
	lookupFoundAttrs    = metric.WithAttributes(attribute.String("result", lookupFound))
	lookupNotFoundAttrs = metric.WithAttributes(attribute.String("result", lookupNotFound))
)

// Metrics holds the OpenTelemetry instruments updated by a Library.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	authorsRegistered metric.Int64Counter
	booksAdded        metric.Int64Counter
	booksRejected     metric.Int64Counter
	lookups           metric.Int64Counter
}

// NewMetrics creates the registry instruments from meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	authorsRegistered, err := meter.Int64Counter(
		"authors.registered",
		metric.WithDescription("Number of authors added to the library"),
	)
	if err != nil {
		return nil, err
	}

	booksAdded, err := meter.Int64Counter(
		"books.added",
		metric.WithDescription("Number of books added to the library"),
	)
	if err != nil {
		return nil, err
	}

	booksRejected, err := meter.Int64Counter(
		"books.rejected",
		metric.WithDescription("Number of books rejected because their author was not registered"),
	)
	if err != nil {
		return nil, err
	}

	lookups, err := meter.Int64Counter(
		"book.lookups",
		metric.WithDescription("Number of title lookups by result"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		authorsRegistered: authorsRegistered,
		booksAdded:        booksAdded,
		booksRejected:     booksRejected,
		lookups:           lookups,
	}, nil
}

func (m *Metrics) authorRegistered(ctx context.Context) {
	if m != nil {
		m.authorsRegistered.Add(ctx, 1)
	}
}

func (m *Metrics) bookAdded(ctx context.Context) {
	if m != nil {
		m.booksAdded.Add(ctx, 1)
	}
}

func (m *Metrics) bookRejected(ctx context.Context) {
	if m != nil {
		m.booksRejected.Add(ctx, 1)
	}
}

func (m *Metrics) lookup(ctx context.Context, found bool) {
	if m == nil {
		return
	}

	if found {
		m.lookups.Add(ctx, 1, lookupFoundAttrs)
		return
	}
	m.lookups.Add(ctx, 1, lookupNotFoundAttrs)
}
