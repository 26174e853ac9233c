package core

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/baxromumarov/warlords/internal/httpx"
	"github.com/baxromumarov/warlords/internal/observability"
	"github.com/baxromumarov/warlords/internal/schema"
	"github.com/baxromumarov/warlords/internal/scraper"
	"github.com/baxromumarov/warlords/internal/store"
)

type PipelineOptions struct {
	URL        string
	OutputPath string
	SchemaPath string
}

// Pipeline runs one fetch, extract, validate and write cycle. Concurrent
// calls to Run are serialized.
type Pipeline struct {
	mu      sync.Mutex
	fetcher httpx.Fetcher
	gate    *schema.Gate
	writer  store.Writer
	opts    PipelineOptions
}

func NewPipeline(fetcher httpx.Fetcher, gate *schema.Gate, writer store.Writer, opts PipelineOptions) *Pipeline {
	return &Pipeline{
		fetcher: fetcher,
		gate:    gate,
		writer:  writer,
		opts:    opts,
	}
}

func (p *Pipeline) Run(ctx context.Context) (*scraper.Document, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	start := time.Now()
	doc, err := p.run(ctx)
	observability.ObserveRun(time.Since(start), err)
	if err != nil {
		observability.IncError(observability.ClassifyRunError(err), "pipeline")
		return nil, err
	}
	return doc, nil
}

func (p *Pipeline) run(ctx context.Context) (*scraper.Document, error) {
	body, err := p.fetcher.Fetch(ctx, p.opts.URL)
	if err != nil {
		return nil, err
	}
	observability.IncPagesFetched()
	slog.Debug("fetched status page", "url", p.opts.URL, "bytes", len(body))

	root, err := scraper.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	doc, err := scraper.Extract(root)
	if err != nil {
		return nil, err
	}

	data, err := store.Encode(doc)
	if err != nil {
		return nil, err
	}
	if err := p.gate.ValidateJSON(data, p.opts.SchemaPath); err != nil {
		return nil, err
	}

	// The write is abandoned if the caller gave up during validation.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.writer.Write(p.opts.OutputPath, data); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}
	observability.ObserveWrite(doc.Generated)

	slog.Info("saved war status",
		"path", p.opts.OutputPath,
		"generated", doc.Generated,
		"sides", len(doc.Warlords),
		"rows", len(doc.Warlords[0].Characters),
	)
	return doc, nil
}
