package ics

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

const (
	fetchTimeout  = 30 * time.Second
	maxFeedBytes  = 10 << 20
	breakerName   = "ics-feed"
	failThreshold = 3
)

// FeedFetcher downloads an ICS feed over HTTP. Repeated failures trip a
// circuit breaker so a dead remote does not stall every sync.
type FeedFetcher struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	logger  *slog.Logger
}

// NewFeedFetcher creates a fetcher with circuit breaker protection.
func NewFeedFetcher(logger *slog.Logger) *FeedFetcher {
	if logger == nil {
		logger = slog.Default()
	}
	settings := gobreaker.Settings{
		Name:    breakerName,
		Timeout: time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"feed", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}
	return &FeedFetcher{
		client:  &http.Client{Timeout: fetchTimeout},
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
		logger:  logger,
	}
}

// Fetch downloads the feed body.
func (f *FeedFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	body, err := f.breaker.Execute(func() ([]byte, error) {
		return f.fetch(ctx, url)
	})
	if err == gobreaker.ErrOpenState {
		return nil, fmt.Errorf("ics feed unavailable, retries suspended: %w", err)
	}
	return body, err
}

func (f *FeedFetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ics fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ics fetch returned status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
}
