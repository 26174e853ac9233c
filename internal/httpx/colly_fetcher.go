package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"golang.org/x/time/rate"
)

// CollyFetcher wraps Colly for polite single-page HTML fetching.
type CollyFetcher struct {
	userAgent    string
	timeout      time.Duration
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
	hosts        map[string]*rate.Limiter
}

func NewCollyFetcher(userAgent string, timeout time.Duration) *CollyFetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &CollyFetcher{
		userAgent:    userAgent,
		timeout:      timeout,
		defaultRate:  rate.Every(time.Second),
		defaultBurst: 1,
		hosts:        make(map[string]*rate.Limiter),
	}
}

// SetHostLimit replaces the limiter used for host.
func (f *CollyFetcher) SetHostLimit(host string, per time.Duration, burst int) {
	if host == "" || per <= 0 || burst <= 0 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hosts[normalizeHost(host)] = rate.NewLimiter(rate.Every(per), burst)
}

func (f *CollyFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	target, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	if err := f.limiterFor(hostKey(target)).Wait(ctx); err != nil {
		return nil, &FetchError{Err: err}
	}

	var body []byte
	status, err := f.fetchOnce(ctx, target, func(c *colly.Collector) {
		c.OnResponse(func(r *colly.Response) {
			body = append([]byte(nil), r.Body...)
		})
	})
	if err != nil {
		return nil, &FetchError{Status: status, Err: err}
	}
	return body, nil
}

func (f *CollyFetcher) fetchOnce(ctx context.Context, target string, register func(*colly.Collector)) (int, error) {
	c := f.newCollector(ctx)
	if register != nil {
		register(c)
	}

	status := 0
	var reqErr error
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
		reqErr = err
	})

	if err := c.Request(http.MethodGet, target, nil, nil, nil); err != nil {
		if ctx.Err() != nil {
			return status, ctx.Err()
		}
		return status, err
	}
	if reqErr != nil {
		return status, reqErr
	}
	if status >= 400 {
		return status, fmt.Errorf("status %d", status)
	}
	if status == 0 {
		status = http.StatusOK
	}
	return status, nil
}

// newCollector binds ctx to every request, so cancellation also stops a
// request that is already in flight.
func (f *CollyFetcher) newCollector(ctx context.Context) *colly.Collector {
	c := colly.NewCollector(
		colly.UserAgent(f.userAgent),
		colly.StdlibContext(ctx),
	)
	c.IgnoreRobotsTxt = false
	c.SetRequestTimeout(f.timeout)
	return c
}

func (f *CollyFetcher) limiterFor(host string) *rate.Limiter {
	if host == "" {
		host = "default"
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if l, ok := f.hosts[host]; ok {
		return l
	}
	l := rate.NewLimiter(f.defaultRate, f.defaultBurst)
	f.hosts[host] = l
	return l
}

// NormalizeURL defaults a missing scheme to https and requires a host.
func NormalizeURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", errors.New("empty url")
	}
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", errors.New("missing host")
	}
	return u.String(), nil
}

func normalizeHost(host string) string {
	host = strings.ToLower(host)
	host = strings.TrimPrefix(host, "www.")
	return host
}

func hostKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "default"
	}
	return normalizeHost(u.Hostname())
}
