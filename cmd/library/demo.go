package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/jsamuelsen/go-library-registry/internal/platform/logging"
	"github.com/jsamuelsen/go-library-registry/internal/ports"
)

const demoLookupTitle = "Python for Beginners"

// runDemo plays the fixed demonstration sequence against catalog.
func runDemo(ctx context.Context, catalog ports.Catalog, console io.Writer) error {
	john := catalog.AddAuthor(ctx, "John Doe", "johndoe@example.com")
	jane := catalog.AddAuthor(ctx, "Jane Smith", "janesmith@example.com")

	if _, err := catalog.AddBook(ctx, "The Great Adventure", john, 2020); err != nil {
		return fmt.Errorf("adding book: %w", err)
	}
	if _, err := catalog.AddBook(ctx, "Python for Beginners", jane, 2019); err != nil {
		return fmt.Errorf("adding book: %w", err)
	}

	if _, err := fmt.Fprintln(console, "Books in the library:"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := catalog.ListBooks(ctx); err != nil {
		return err
	}

	var err error
	if book, ok := catalog.FindBookByTitle(ctx, demoLookupTitle); ok {
		_, err = fmt.Fprintln(console, "Found book:", book)
	} else {
		_, err = fmt.Fprintln(console, "Book not found.")
	}
	if err != nil {
		return fmt.Errorf("writing lookup result: %w", err)
	}

	return nil
}

// logMetrics logs every counter gathered from g as one summary record per
// series, leaving out the instrumentation scope labels.
func logMetrics(ctx context.Context, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}

	logger := logging.FromContext(ctx)
	for _, mf := range families {
		if mf.GetType() != dto.MetricType_COUNTER {
			continue
		}

		for _, m := range mf.GetMetric() {
			attrs := []any{
				slog.String("metric", mf.GetName()),
				slog.Float64("value", m.GetCounter().GetValue()),
			}
			for _, lp := range m.GetLabel() {
				if strings.HasPrefix(lp.GetName(), "otel_scope_") {
					continue
				}
				attrs = append(attrs, slog.String(lp.GetName(), lp.GetValue()))
			}

			logger.InfoContext(ctx, "metrics summary", attrs...)
		}
	}

	return nil
}
