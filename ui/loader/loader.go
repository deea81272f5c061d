// Package loader decides when a windowed list should request the next batch
// of records and guarantees that at most one request is in flight.
//
// The loader is a three-state machine:
//
//	Idle ──(window end within threshold of loaded count)──▶ Requesting
//	Requesting ──(batch arrives, more remain)──▶ Idle
//	Requesting ──(batch arrives, nothing remains)──▶ Exhausted
//	Requesting ──(batch fails)──▶ Idle, error surfaced, no retry
//
// Replacing the collection (Reset) starts a new generation: the in-flight
// request's context is cancelled and any result it still produces is
// reported as stale and ignored.
package loader

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

const (
	// DefaultThreshold is the percentage of the loaded collection the render
	// window must reach before the next batch is requested.
	DefaultThreshold = 90

	// DefaultBatchSize is the number of records requested per batch.
	DefaultBatchSize = 50

	// UnknownTotal marks a collection whose size the source has not reported.
	UnknownTotal = -1
)

// ErrStale is returned in an Outcome whose result belongs to a superseded
// generation.
var ErrStale = errors.New("loader: stale result")

// State is the loader's position in its state machine.
type State int

const (
	Idle State = iota
	Requesting
	Exhausted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Requesting:
		return "requesting"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Request describes one batch to fetch. Context is cancelled when the
// collection is replaced while the request is in flight.
type Request struct {
	Context    context.Context
	Generation uint64
	Offset     int
	Limit      int
}

// Result is the caller's fulfilment of a Request.
type Result struct {
	Generation uint64
	// Count is the number of records actually returned.
	Count int
	// Total is the collection size reported by the source, or UnknownTotal
	// to keep the current value.
	Total int
	Err   error
}

// Outcome reports how a Result was applied.
type Outcome struct {
	Result
	State State
	Stale bool
}

// Snapshot is a consistent copy of the load state.
type Snapshot struct {
	LoadedCount   int
	TotalCount    int
	IsLoadingMore bool
	State         State
	Generation    uint64
	LastErr       error
}

// FetchFunc retrieves up to limit records starting at offset. It returns the
// number of records obtained and the collection total, or UnknownTotal.
type FetchFunc func(ctx context.Context, offset, limit int) (count, total int, err error)

// Option configures a Loader.
type Option func(*Loader)

// WithThreshold sets the trigger percentage, clamped to [1, 100].
func WithThreshold(pct int) Option {
	return func(l *Loader) {
		switch {
		case pct < 1:
			pct = 1
		case pct > 100:
			pct = 100
		}
		l.threshold = pct
	}
}

// WithBatchSize sets the number of records requested per batch.
func WithBatchSize(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.batch = n
		}
	}
}

// WithLogger sets the logger used for state transitions.
func WithLogger(log *zap.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// WithOnError registers a callback invoked with every failed batch.
func WithOnError(fn func(error)) Option {
	return func(l *Loader) { l.onError = fn }
}

// Loader tracks load state for one collection. All methods are safe for
// concurrent use.
type Loader struct {
	mu sync.Mutex

	threshold int
	batch     int
	log       *zap.Logger
	onError   func(error)

	loaded  int
	total   int
	state   State
	gen     uint64
	cancel  context.CancelFunc
	lastErr error
}

// New creates a Loader for an empty collection of unknown size.
func New(opts ...Option) *Loader {
	l := &Loader{
		threshold: DefaultThreshold,
		batch:     DefaultBatchSize,
		log:       zap.NewNop(),
		total:     UnknownTotal,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Threshold returns the trigger percentage.
func (l *Loader) Threshold() int { return l.threshold }

// BatchSize returns the number of records requested per batch.
func (l *Loader) BatchSize() int { return l.batch }

// Reset replaces the collection: loaded records and total are taken from the
// caller, any in-flight request is cancelled and its eventual result will be
// stale. It returns the new generation.
func (l *Loader) Reset(loaded, total int) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	if loaded < 0 {
		loaded = 0
	}
	if total >= 0 && loaded > total {
		loaded = total
	}
	l.gen++
	l.loaded = loaded
	l.total = total
	l.lastErr = nil
	l.state = Idle
	if l.exhausted() {
		l.state = Exhausted
	}
	l.log.Debug("loader reset",
		zap.Uint64("generation", l.gen),
		zap.Int("loaded", l.loaded),
		zap.Int("total", l.total),
		zap.Stringer("state", l.state),
	)
	return l.gen
}

// ShouldLoad reports whether Begin would issue a request for endIndex.
func (l *Loader) ShouldLoad(endIndex int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.shouldLoad(endIndex)
}

// Begin performs the Idle -> Requesting transition when the render window
// ending at endIndex has reached the threshold. The returned request must be
// settled with Complete; until then Begin returns false.
func (l *Loader) Begin(parent context.Context, endIndex int) (Request, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.shouldLoad(endIndex) {
		return Request{}, false
	}
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	l.cancel = cancel
	l.state = Requesting
	l.lastErr = nil

	limit := l.batch
	if l.total >= 0 && l.total-l.loaded < limit {
		limit = l.total - l.loaded
	}
	req := Request{
		Context:    ctx,
		Generation: l.gen,
		Offset:     l.loaded,
		Limit:      limit,
	}
	l.log.Debug("load requested",
		zap.Uint64("generation", req.Generation),
		zap.Int("offset", req.Offset),
		zap.Int("limit", req.Limit),
		zap.Int("end_index", endIndex),
	)
	return req, true
}

// Complete settles the in-flight request. Results from an older generation,
// or arriving when nothing is in flight, are reported stale and change
// nothing.
func (l *Loader) Complete(res Result) Outcome {
	l.mu.Lock()

	if res.Generation != l.gen || l.state != Requesting {
		state := l.state
		l.mu.Unlock()
		l.log.Debug("stale load result dropped",
			zap.Uint64("generation", res.Generation),
			zap.Stringer("state", state),
		)
		return Outcome{Result: res, State: state, Stale: true}
	}

	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}

	if res.Err != nil {
		l.state = Idle
		l.lastErr = res.Err
		onError := l.onError
		l.mu.Unlock()

		l.log.Warn("load failed", zap.Uint64("generation", res.Generation), zap.Error(res.Err))
		if onError != nil {
			onError(res.Err)
		}
		return Outcome{Result: res, State: Idle}
	}

	count := res.Count
	if count < 0 {
		count = 0
	}
	l.loaded += count
	if res.Total >= 0 {
		l.total = res.Total
	}
	switch {
	case count == 0:
		// An empty batch means the source has nothing further.
		l.total = l.loaded
	case l.total >= 0 && l.loaded > l.total:
		l.total = l.loaded
	}
	l.state = Idle
	if l.exhausted() {
		l.state = Exhausted
	}
	out := Outcome{Result: res, State: l.state}
	l.log.Debug("load completed",
		zap.Uint64("generation", res.Generation),
		zap.Int("count", count),
		zap.Int("loaded", l.loaded),
		zap.Int("total", l.total),
		zap.Stringer("state", l.state),
	)
	l.mu.Unlock()
	return out
}

// Dispatch runs Begin and, when a request is issued, calls fetch on a new
// goroutine and completes the request with its result. The returned channel
// yields exactly one Outcome and is then closed. It returns nil when no
// request was issued.
func (l *Loader) Dispatch(ctx context.Context, endIndex int, fetch FetchFunc) <-chan Outcome {
	req, ok := l.Begin(ctx, endIndex)
	if !ok {
		return nil
	}
	out := make(chan Outcome, 1)
	go func() {
		defer close(out)
		count, total, err := fetch(req.Context, req.Offset, req.Limit)
		if err != nil {
			err = fmt.Errorf("fetch offset %d: %w", req.Offset, err)
		}
		out <- l.Complete(Result{
			Generation: req.Generation,
			Count:      count,
			Total:      total,
			Err:        err,
		})
	}()
	return out
}

// Snapshot returns the current load state.
func (l *Loader) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Snapshot{
		LoadedCount:   l.loaded,
		TotalCount:    l.total,
		IsLoadingMore: l.state == Requesting,
		State:         l.state,
		Generation:    l.gen,
		LastErr:       l.lastErr,
	}
}

// State returns the current state.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Loader) exhausted() bool {
	return l.total >= 0 && l.loaded >= l.total
}

func (l *Loader) shouldLoad(endIndex int) bool {
	if l.state != Idle || l.exhausted() {
		return false
	}
	// Nothing materialized yet: the first batch is always due.
	if l.loaded == 0 {
		return true
	}
	// Reaching the last loaded item always counts, so small batches and a
	// threshold of 100 still make progress.
	return endIndex*100 >= l.loaded*l.threshold || endIndex >= l.loaded-1
}
