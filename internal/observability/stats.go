package observability

import (
	"sync"
	"sync/atomic"
	"time"
)

type StatsSnapshot struct {
	RunsTotal         uint64            `json:"runs_total"`
	RunsFailed        uint64            `json:"runs_failed"`
	PagesFetched      uint64            `json:"pages_fetched"`
	DocumentsWritten  uint64            `json:"documents_written"`
	ErrorsTotal       uint64            `json:"errors_total"`
	RunSecondsAvg     float64           `json:"run_seconds_avg"`
	LastSuccessAt     *time.Time        `json:"last_success_at,omitempty"`
	LastGenerated     string            `json:"last_generated,omitempty"`
	ErrorsByType      map[string]uint64 `json:"errors_by_type,omitempty"`
	ErrorsByComponent map[string]uint64 `json:"errors_by_component,omitempty"`
}

var (
	runsTotal        uint64
	runsFailed       uint64
	pagesFetched     uint64
	documentsWritten uint64
	errorsTotal      uint64

	runCount uint64
	runNanos uint64

	statsMu           sync.Mutex
	lastSuccessAt     time.Time
	lastGenerated     string
	errorsByType      = map[string]uint64{}
	errorsByComponent = map[string]uint64{}
)

func IncPagesFetched() {
	atomic.AddUint64(&pagesFetched, 1)
}

// ObserveRun records the outcome of one pipeline run.
func ObserveRun(d time.Duration, err error) {
	atomic.AddUint64(&runsTotal, 1)
	if err != nil {
		atomic.AddUint64(&runsFailed, 1)
	}
	if d <= 0 {
		return
	}
	atomic.AddUint64(&runCount, 1)
	atomic.AddUint64(&runNanos, uint64(d.Nanoseconds()))
}

func ObserveWrite(generated string) {
	atomic.AddUint64(&documentsWritten, 1)
	statsMu.Lock()
	lastSuccessAt = time.Now().UTC()
	lastGenerated = generated
	statsMu.Unlock()
}

func IncError(errType, component string) {
	if errType == "" {
		errType = "unknown"
	}
	if component == "" {
		component = "unknown"
	}
	atomic.AddUint64(&errorsTotal, 1)
	statsMu.Lock()
	errorsByType[errType]++
	errorsByComponent[component]++
	statsMu.Unlock()
}

func Snapshot() StatsSnapshot {
	statsMu.Lock()
	errorsTypeCopy := copyMap(errorsByType)
	errorsComponentCopy := copyMap(errorsByComponent)
	var successAt *time.Time
	if !lastSuccessAt.IsZero() {
		t := lastSuccessAt
		successAt = &t
	}
	generated := lastGenerated
	statsMu.Unlock()

	count := atomic.LoadUint64(&runCount)
	avg := 0.0
	if count > 0 {
		avg = float64(atomic.LoadUint64(&runNanos)) / float64(count) / 1e9
	}

	return StatsSnapshot{
		RunsTotal:         atomic.LoadUint64(&runsTotal),
		RunsFailed:        atomic.LoadUint64(&runsFailed),
		PagesFetched:      atomic.LoadUint64(&pagesFetched),
		DocumentsWritten:  atomic.LoadUint64(&documentsWritten),
		ErrorsTotal:       atomic.LoadUint64(&errorsTotal),
		RunSecondsAvg:     avg,
		LastSuccessAt:     successAt,
		LastGenerated:     generated,
		ErrorsByType:      errorsTypeCopy,
		ErrorsByComponent: errorsComponentCopy,
	}
}

func copyMap(src map[string]uint64) map[string]uint64 {
	if len(src) == 0 {
		return map[string]uint64{}
	}
	out := make(map[string]uint64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
