package observability

import (
	"context"
	"errors"
	"io/fs"
	"net/http"

	"github.com/baxromumarov/warlords/internal/httpx"
	"github.com/baxromumarov/warlords/internal/schema"
	"github.com/baxromumarov/warlords/internal/scraper"
)

const (
	ErrorNetwork   = "network"
	ErrorRateLimit = "rate_limit"
	ErrorStructure = "structure"
	ErrorFormat    = "format"
	ErrorSchema    = "schema"
	ErrorStore     = "store"
	ErrorUnknown   = "unknown"
)

func ClassifyFetchError(err error) string {
	if err == nil {
		return ErrorUnknown
	}
	var fe *httpx.FetchError
	if errors.As(err, &fe) {
		if fe.Status == http.StatusTooManyRequests {
			return ErrorRateLimit
		}
		return ErrorNetwork
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorNetwork
	}
	return ErrorUnknown
}

// ClassifyRunError maps a pipeline failure to a metrics category.
func ClassifyRunError(err error) string {
	if err == nil {
		return ErrorUnknown
	}
	if kind := ClassifyFetchError(err); kind != ErrorUnknown {
		return kind
	}

	var extractErr *scraper.ExtractionError
	var schemaErr *schema.SchemaError
	var pathErr *fs.PathError
	switch {
	case errors.As(err, &extractErr):
		return ErrorStructure
	case errors.Is(err, scraper.ErrInvalidTimestamp):
		return ErrorFormat
	case errors.As(err, &schemaErr):
		return ErrorSchema
	case errors.As(err, &pathErr), errors.Is(err, fs.ErrNotExist):
		return ErrorStore
	}
	return ErrorUnknown
}
