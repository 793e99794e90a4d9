// Package enricher appends nearby points of interest to a weather report
// using a generative-text provider.
//
// The provider's answer is untrusted free text. Only the block between two
// Sentinel markers is kept; postal-code matching of the suggested places is
// requested in the prompt but never verified.
package enricher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"weatherbot/observability"
)

const placesHeader = "\nHere are some places to visit:\n\n"

var ErrMissingSentinel = errors.New("generated text has no " + Sentinel + " block")

// Generator sends a single prompt to a generative-text provider.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Enricher struct {
	generator Generator
	logger    *slog.Logger
	metrics   *observability.Metrics
}

func New(generator Generator, logger *slog.Logger, metrics *observability.Metrics) *Enricher {
	return &Enricher{
		generator: generator,
		logger:    logger,
		metrics:   metrics,
	}
}

// Enrich returns report followed by the places block for postalCode.
// On any failure it returns the bare report together with the error, so the
// result is always safe to send.
func (e *Enricher) Enrich(ctx context.Context, report, postalCode string) (string, error) {
	ctx, span := otel.Tracer("weatherbot/enricher").Start(ctx, "Enrich", trace.WithAttributes(
		attribute.String("postal_code", postalCode),
	))
	defer span.End()

	text, err := e.generator.Generate(ctx, Prompt(postalCode))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generate failed")
		e.count("error")
		return report, fmt.Errorf("generate places: %w", err)
	}

	block, ok := Extract(text)
	if !ok {
		span.SetStatus(codes.Error, "missing sentinel")
		e.count("missing_sentinel")
		e.logger.DebugContext(ctx, "generated text without places block", "postal_code", postalCode, "length", len(text))
		return report, ErrMissingSentinel
	}

	span.SetAttributes(attribute.Int("places.length", len(block)))
	span.SetStatus(codes.Ok, "")
	e.count("success")
	return report + placesHeader + block, nil
}

func (e *Enricher) count(outcome string) {
	if e.metrics == nil {
		return
	}
	e.metrics.Enrichments.WithLabelValues(outcome).Inc()
}
