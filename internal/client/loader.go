package client

import (
	"context"
	"sync"

	"hydroponics/internal/measurement"
	"hydroponics/internal/models"
)

// ViewState is what a dashboard renders after a load settles.
type ViewState struct {
	Generation   uint64
	Filter       *measurement.Filter
	Measurements []models.Measurement
	Chart        *measurement.ChartSeriesBundle // nil when there is nothing to draw
	Err          error
}

type fetchFunc func(ctx context.Context, systemID int, f *measurement.Filter) ([]models.Measurement, error)

// ChartLoader refetches and reassembles a system's chart whenever the
// filter changes. Each Load cancels the fetch in flight, and only the most
// recent load may publish. On error the previous chart is left to the
// consumer, which receives only Err.
type ChartLoader struct {
	fetch    fetchFunc
	systemID int
	opts     measurement.ChartOptions
	publish  func(ViewState)

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	closed bool
	wg     sync.WaitGroup

	pubMu sync.Mutex
}

// NewChartLoader returns a loader for systemID. publish runs on a worker
// goroutine, one call at a time.
func NewChartLoader(c *Client, systemID int, opts measurement.ChartOptions, publish func(ViewState)) *ChartLoader {
	fetch := func(ctx context.Context, id int, f *measurement.Filter) ([]models.Measurement, error) {
		return c.ListMeasurements(ctx, id, f, ListOptions{SortBy: "timestamp", SortOrder: "asc"})
	}
	return newChartLoader(fetch, systemID, opts, publish)
}

func newChartLoader(fetch fetchFunc, systemID int, opts measurement.ChartOptions, publish func(ViewState)) *ChartLoader {
	return &ChartLoader{fetch: fetch, systemID: systemID, opts: opts, publish: publish}
}

// Load starts a fetch for f and supersedes any earlier one. It returns the
// generation of the new load, or 0 after Close.
func (l *ChartLoader) Load(f *measurement.Filter) uint64 {
	if f == nil {
		f = measurement.NewFilter()
	}
	snapshot := f.Clone()

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return 0
	}
	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.gen++
	gen := l.gen
	l.wg.Add(1)
	l.mu.Unlock()

	go l.run(ctx, cancel, gen, snapshot)
	return gen
}

func (l *ChartLoader) run(ctx context.Context, cancel context.CancelFunc, gen uint64, f *measurement.Filter) {
	defer l.wg.Done()
	defer cancel()

	ms, err := l.fetch(ctx, l.systemID, f)
	state := ViewState{Generation: gen, Filter: f, Err: err}
	if err == nil {
		state.Measurements = ms
		state.Chart = measurement.Assemble(ms, l.opts)
	}

	l.pubMu.Lock()
	defer l.pubMu.Unlock()
	if !l.isCurrent(gen) {
		return
	}
	l.publish(state)
}

func (l *ChartLoader) isCurrent(gen uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.closed && gen == l.gen
}

// Generation returns the generation of the latest Load.
func (l *ChartLoader) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen
}

// Close cancels the fetch in flight and waits for workers to exit.
// Nothing is published after Close returns.
func (l *ChartLoader) Close() {
	l.mu.Lock()
	l.closed = true
	if l.cancel != nil {
		l.cancel()
	}
	l.mu.Unlock()
	l.wg.Wait()
}
