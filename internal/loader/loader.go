// Package loader reads the statistics snapshot for a page activation.
//
// Each activation starts in StateLoading, issues exactly one fetch and then
// settles in StateReady with the parsed snapshot or in StateError. Failures
// are not classified: a transport error, a non-2xx response and malformed
// JSON all end in the same StateError. There is no retry and no backoff.
package loader

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"aging-dashboard/internal/metrics"
	"aging-dashboard/internal/model"
)

type State int

const (
	StateLoading State = iota
	StateError
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

type Loader struct {
	fetcher Fetcher
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func New(fetcher Fetcher, logger *zap.Logger, m *metrics.Metrics) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{fetcher: fetcher, logger: logger, metrics: m}
}

// NewActivation returns an activation in StateLoading. Nothing is fetched
// until Run is called.
func (l *Loader) NewActivation() *Activation {
	return &Activation{
		id:     uuid.New().String(),
		loader: l,
		state:  StateLoading,
	}
}

func (l *Loader) Activate(ctx context.Context) *Activation {
	a := l.NewActivation()
	a.Run(ctx)
	return a
}

type Activation struct {
	id     string
	loader *Loader
	once   sync.Once

	mu       sync.RWMutex
	state    State
	snapshot *model.Snapshot
}

func (a *Activation) ID() string {
	return a.id
}

func (a *Activation) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// Snapshot returns the parsed snapshot; it is nil unless State is StateReady.
func (a *Activation) Snapshot() *model.Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snapshot
}

// Run performs the activation's single fetch and returns the settled state.
// Later calls do not fetch again. If ctx ends before the fetch resolves the
// result is discarded and the activation settles in StateError.
func (a *Activation) Run(ctx context.Context) State {
	a.once.Do(func() {
		start := time.Now()
		snapshot, err := a.fetch(ctx)
		if err == nil && ctx.Err() != nil {
			err = ctx.Err()
			snapshot = nil
		}

		a.mu.Lock()
		if err != nil {
			a.state = StateError
		} else {
			a.state = StateReady
			a.snapshot = snapshot
		}
		state := a.state
		a.mu.Unlock()

		a.loader.metrics.ObserveLoad(state.String(), start)
		if err != nil {
			a.loader.logger.Error("error loading data",
				zap.String("activation_id", a.id),
				zap.Error(err),
			)
			return
		}
		a.loader.logger.Debug("snapshot loaded",
			zap.String("activation_id", a.id),
			zap.Duration("duration", time.Since(start)),
		)
	})
	return a.State()
}

func (a *Activation) fetch(ctx context.Context) (*model.Snapshot, error) {
	body, err := a.loader.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return model.DecodeSnapshot(body)
}
