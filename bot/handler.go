package bot

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"weatherbot/manager"
	"weatherbot/observability"
)

const unavailableMessage = "Sorry, the weather service is unavailable right now. Please try again later"

// Enricher appends extra content to a rendered report. It returns a usable
// text even when it also returns an error.
type Enricher interface {
	Enrich(ctx context.Context, report, postalCode string) (string, error)
}

// Messages are the fixed texts of one deployment variant.
type Messages struct {
	Greeting    string
	NotFound    string
	Unavailable string
}

// MessagesFor returns the texts for the lookup mode, with or without places enrichment.
func MessagesFor(mode manager.Mode, enriched bool) Messages {
	if mode == manager.ModePostalCode {
		greeting := "Welcome to Weather Bot!!!\nThis bot will provide you with current weather data\n\nSource : OpenWeather\n\nEnter the ZIP code of your area to get weather report"
		if enriched {
			greeting = "Welcome to Weather Bot!!!\nThis bot will provide you with current weather data\n\nSource : OpenWeather and Gemini\n\nEnter the ZIP code of your area to get weather report and nearby places.\n\n[Note that Gemini may provide inaccurate results. Try generating multiple times to get better results]"
		}
		return Messages{
			Greeting:    greeting,
			NotFound:    "Invalid ZIP code or not found in our database. Please try again",
			Unavailable: unavailableMessage,
		}
	}

	return Messages{
		Greeting:    "Welcome to Weather Bot!!!\nThis bot will provide you with current weather data\n\nSource : OpenWeather\n\nEnter the name of a city to get weather report",
		NotFound:    "Sorry, the city you entered does not exist",
		Unavailable: unavailableMessage,
	}
}

// Handler turns one inbound text into one reply. It never fails: lookup and
// enrichment errors become user-facing text.
type Handler struct {
	lookup   manager.Lookup
	enricher Enricher
	messages Messages
	timeout  time.Duration
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewHandler wires the lookup stage. Pass a nil enricher to reply with the bare report.
func NewHandler(lookup manager.Lookup, enricher Enricher, messages Messages, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Handler {
	return &Handler{
		lookup:   lookup,
		enricher: enricher,
		messages: messages,
		timeout:  timeout,
		logger:   logger,
		metrics:  metrics,
	}
}

func (h *Handler) Start() string {
	h.count("start")
	return h.messages.Greeting
}

func (h *Handler) Reply(ctx context.Context, text string) string {
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	report, err := h.lookup.Resolve(ctx, text)
	if errors.Is(err, manager.ErrNotFound) {
		h.logger.InfoContext(ctx, "location not found", "query", text)
		h.count("not_found")
		return h.messages.NotFound
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "weather lookup failed", "query", text, "error", err)
		h.count("provider_error")
		return h.messages.Unavailable
	}

	reply := report.String()
	if h.enricher != nil {
		enriched, err := h.enricher.Enrich(ctx, reply, report.Query)
		if err != nil {
			h.logger.WarnContext(ctx, "enrichment skipped, sending bare report", "query", report.Query, "error", err)
		}
		if enriched != "" {
			reply = enriched
		}
	}

	h.count("ok")
	return reply
}

func (h *Handler) count(outcome string) {
	if h.metrics == nil {
		return
	}
	h.metrics.MessagesHandled.WithLabelValues(outcome).Inc()
}
