package bench

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sync/atomic"

	"github.com/MixinNetwork/sigbench/config"
	"github.com/MixinNetwork/sigbench/crypto"
	"github.com/MixinNetwork/sigbench/logger"
	"github.com/MixinNetwork/sigbench/util"
	"github.com/dustin/go-humanize"
	"github.com/gofrs/uuid"
)

type State int

const (
	StateIdle State = iota
	StateRunning
	StateReporting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateReporting:
		return "reporting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

var errAborted = errors.New("bench: aborted after an earlier failure")

// Harness runs the benchmark matrix. It is driven from a single goroutine,
// only the dispatch units of pooled cells run elsewhere.
type Harness struct {
	custom   *config.Custom
	provider crypto.SignatureProvider
	fixture  *Fixture
	out      io.Writer
	runId    string

	pool  *util.WorkerPool
	state State
}

func NewHarness(custom *config.Custom, provider crypto.SignatureProvider, out io.Writer) (*Harness, error) {
	if err := custom.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	fixture, err := NewFixture(provider, custom.Bench.MessageSize)
	if err != nil {
		return nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	return &Harness{
		custom:   custom,
		provider: provider,
		fixture:  fixture,
		out:      out,
		runId:    id.String(),
		state:    StateIdle,
	}, nil
}

func (h *Harness) RunId() string {
	return h.runId
}

func (h *Harness) State() State {
	return h.state
}

// Run executes every cell in matrix order and stops at the first failure,
// in which case no samples are returned.
func (h *Harness) Run() ([]*TimingSample, error) {
	cells, err := Matrix(h.custom)
	if err != nil {
		h.state = StateFailed
		return nil, err
	}
	logger.Printf("bench run %s provider %s with %d cells", h.runId, h.provider.Name(), len(cells))

	var mode Mode
	samples := make([]*TimingSample, 0, len(cells))
	for _, cell := range cells {
		if cell.Mode != mode {
			mode = cell.Mode
			logger.Printf("bench run %s mode %s", h.runId, mode)
		}
		s, err := h.RunCell(cell)
		if err != nil {
			logger.Errorf("bench run %s aborted at %s: %v", h.runId, cell.Label(), err)
			return nil, err
		}
		samples = append(samples, s)
	}
	h.state = StateDone
	return samples, nil
}

func (h *Harness) RunCell(cell Cell) (*TimingSample, error) {
	if h.state == StateDone || h.state == StateFailed {
		return nil, fmt.Errorf("%w: harness %s", ErrInvalidConfig, h.state)
	}
	units := cell.Units()
	if units == 0 {
		h.state = StateFailed
		return nil, fmt.Errorf("%w: %s has no dispatch unit", ErrInvalidConfig, cell.Label())
	}
	unit, err := h.fixture.Unit(cell)
	if err != nil {
		h.state = StateFailed
		return nil, err
	}

	h.state = StateRunning
	logger.Debugf("bench %s start with %d units", cell.Label(), units)
	sw := util.NewStopwatch()
	sw.Start()
	switch cell.Mode {
	case ModeInline:
		err = runInline(units, unit)
	case ModePooled:
		err = h.runPooled(cell, unit)
	default:
		err = fmt.Errorf("%w: mode %s", ErrInvalidConfig, cell.Mode)
	}
	elapsed := sw.Stop()
	if err != nil {
		h.state = StateFailed
		return nil, fmt.Errorf("bench %s: %w", cell.Label(), err)
	}

	h.state = StateReporting
	sample, err := newTimingSample(h.runId, h.provider.Name(), cell, elapsed)
	if err != nil {
		h.state = StateFailed
		return nil, err
	}
	err = sample.WriteReport(h.out)
	if err != nil {
		h.state = StateFailed
		return nil, err
	}
	logger.Verbosef("bench %s %s signatures in %s, %s signatures/sec", cell.Label(),
		humanize.Comma(int64(cell.Executed())), elapsed, humanize.Commaf(math.Round(sample.OpsPerSecond)))
	h.state = StateIdle
	return sample, nil
}

// Close waits for the worker pool to drain, the harness is unusable after.
func (h *Harness) Close() {
	if h.pool != nil {
		h.pool.Shutdown()
		h.pool = nil
	}
	if h.state != StateFailed {
		h.state = StateDone
	}
}

func (h *Harness) workerPool() *util.WorkerPool {
	if h.pool == nil {
		h.pool = util.NewWorkerPool(h.custom.Pool.Workers, h.custom.Pool.QueueLimit)
		logger.Verbosef("bench run %s worker pool with %d threads", h.runId, h.pool.Threads())
	}
	return h.pool
}

func runInline(units int, unit func() error) error {
	for i := 0; i < units; i++ {
		if err := unit(); err != nil {
			return err
		}
	}
	return nil
}

// runPooled returns only after every spawned item signaled completion, even
// when spawning fails half way.
func (h *Harness) runPooled(cell Cell, unit func() error) error {
	pool := h.workerPool()
	units, key := cell.Units(), h.runId+" "+cell.Label()

	var failed int32
	work := func() error {
		if atomic.LoadInt32(&failed) != 0 {
			return errAborted
		}
		err := unit()
		if err != nil {
			atomic.StoreInt32(&failed, 1)
			logger.Limitf(key, "bench %s unit failed: %v", cell.Label(), err)
		}
		return err
	}

	var spawnErr error
	items := make([]*util.WorkItem, 0, units)
	if h.custom.Bench.Signals == config.SignalsTask {
		signals := make([]*util.CompletionSignal, 0, units)
		for i := 0; i < units; i++ {
			signal := util.NewCompletionSignal()
			item := util.NewWorkItem(work, signal)
			if spawnErr = pool.Spawn(item); spawnErr != nil {
				break
			}
			signals = append(signals, signal)
			items = append(items, item)
		}
		for _, s := range signals {
			s.Wait()
		}
	} else {
		group := util.NewCompletionGroup()
		for i := 0; i < units; i++ {
			item := util.NewWorkItem(work, group)
			group.Add(1)
			if spawnErr = pool.Spawn(item); spawnErr != nil {
				group.Set()
				break
			}
			items = append(items, item)
		}
		group.Wait()
	}

	if spawnErr != nil {
		return spawnErr
	}
	for _, item := range items {
		if err := item.Err(); err != nil && err != errAborted {
			return err
		}
	}
	return nil
}
