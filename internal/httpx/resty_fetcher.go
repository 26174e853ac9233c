package httpx

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyFetcher is a plain HTTP GET transport without robots.txt handling.
type RestyFetcher struct {
	client *resty.Client
}

func NewRestyFetcher(userAgent string, timeout time.Duration) *RestyFetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent)
	return &RestyFetcher{client: client}
}

func (f *RestyFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	target, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, &FetchError{Err: err}
	}

	res, err := f.client.R().
		SetContext(ctx).
		Get(target)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	if res.IsError() {
		return nil, &FetchError{Status: res.StatusCode(), Err: fmt.Errorf("status %d", res.StatusCode())}
	}
	return res.Body(), nil
}
