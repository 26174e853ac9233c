package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const page = "<html><body><h2>War status</h2></body></html>"

func newTestServer(t testing.TB) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/news/war", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "test-agent" {
			http.Error(w, "bad agent", http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=UTF-8")
		w.Write([]byte(page))
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func transports(timeout time.Duration) map[string]func() Fetcher {
	return map[string]func() Fetcher{
		TransportColly: func() Fetcher { return NewCollyFetcher("test-agent", timeout) },
		TransportResty: func() Fetcher { return NewRestyFetcher("test-agent", timeout) },
	}
}

func TestFetch(t *testing.T) {
	srv := newTestServer(t)

	for name, newFetcher := range transports(5 * time.Second) {
		t.Run(name, func(t *testing.T) {
			body, err := newFetcher().Fetch(context.Background(), srv.URL+"/news/war")
			require.NoError(t, err)
			require.Equal(t, page, string(body))
		})
	}
}

func TestFetchErrorStatus(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		path   string
		status int
	}{
		{path: "/missing", status: http.StatusNotFound},
		{path: "/broken", status: http.StatusInternalServerError},
	}

	for name, newFetcher := range transports(5 * time.Second) {
		for _, test := range cases {
			t.Run(name+test.path, func(t *testing.T) {
				body, err := newFetcher().Fetch(context.Background(), srv.URL+test.path)
				require.Nil(t, body)

				var fe *FetchError
				require.ErrorAs(t, err, &fe)
				require.Equal(t, test.status, fe.Status)
			})
		}
	}
}

func TestFetchTimeout(t *testing.T) {
	srv := newTestServer(t)

	for name, newFetcher := range transports(100 * time.Millisecond) {
		t.Run(name, func(t *testing.T) {
			_, err := newFetcher().Fetch(context.Background(), srv.URL+"/slow")
			var fe *FetchError
			require.ErrorAs(t, err, &fe)
		})
	}
}

func TestFetchCanceled(t *testing.T) {
	srv := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for name, newFetcher := range transports(time.Second) {
		t.Run(name, func(t *testing.T) {
			_, err := newFetcher().Fetch(ctx, srv.URL+"/news/war")
			var fe *FetchError
			require.ErrorAs(t, err, &fe)
			require.True(t, errors.Is(err, context.Canceled), err)
		})
	}
}

func TestFetchCanceledInFlight(t *testing.T) {
	srv := newTestServer(t)

	for name, newFetcher := range transports(5 * time.Second) {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			timer := time.AfterFunc(100*time.Millisecond, cancel)
			defer timer.Stop()

			start := time.Now()
			_, err := newFetcher().Fetch(ctx, srv.URL+"/slow")
			var fe *FetchError
			require.ErrorAs(t, err, &fe)
			require.True(t, errors.Is(err, context.Canceled), err)
			require.Less(t, time.Since(start), time.Second)
		})
	}
}

func TestFetchInvalidURL(t *testing.T) {
	for name, newFetcher := range transports(time.Second) {
		t.Run(name, func(t *testing.T) {
			_, err := newFetcher().Fetch(context.Background(), "")
			var fe *FetchError
			require.ErrorAs(t, err, &fe)
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		raw      string
		expected string
		err      bool
	}{
		{raw: "https://mume.org/news/war", expected: "https://mume.org/news/war"},
		{raw: "mume.org/news/war", expected: "https://mume.org/news/war"},
		{raw: "http://127.0.0.1:8080/news/war", expected: "http://127.0.0.1:8080/news/war"},
		{raw: "", err: true},
		{raw: "https://", err: true},
		{raw: "not a url", err: true},
	}

	for _, test := range cases {
		t.Run(test.raw, func(t *testing.T) {
			got, err := NormalizeURL(test.raw)
			if test.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.expected, got)
		})
	}
}

func TestNewFetcher(t *testing.T) {
	f, err := NewFetcher("", "", 0)
	require.NoError(t, err)
	require.IsType(t, &CollyFetcher{}, f)

	f, err = NewFetcher(TransportResty, "", 0)
	require.NoError(t, err)
	require.IsType(t, &RestyFetcher{}, f)

	_, err = NewFetcher("carrier-pigeon", "", 0)
	require.Error(t, err)
}

func TestCollyFetcherHostLimit(t *testing.T) {
	srv := newTestServer(t)
	f := NewCollyFetcher("test-agent", time.Second)
	f.SetHostLimit("127.0.0.1", time.Millisecond, 5)

	for i := 0; i < 3; i++ {
		_, err := f.Fetch(context.Background(), srv.URL+"/news/war")
		require.NoError(t, err)
	}
}
