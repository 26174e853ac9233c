package httpx

import (
	"context"
	"fmt"
	"time"
)

const (
	DefaultUserAgent = "warlords-bot/1.0"
	DefaultTimeout   = 10 * time.Second

	TransportColly = "colly"
	TransportResty = "resty"
)

// Fetcher retrieves the raw bytes of a single page. Every failure is
// reported as a *FetchError.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

type FetchError struct {
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch error (status %d)", e.Status)
	}
	return fmt.Sprintf("fetch error (status %d): %v", e.Status, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetcher returns the fetcher for the named transport.
func NewFetcher(transport, userAgent string, timeout time.Duration) (Fetcher, error) {
	switch transport {
	case "", TransportColly:
		return NewCollyFetcher(userAgent, timeout), nil
	case TransportResty:
		return NewRestyFetcher(userAgent, timeout), nil
	default:
		return nil, fmt.Errorf("unknown transport %q", transport)
	}
}
