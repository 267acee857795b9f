package execution

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ctr/internal/casetable"
	"ctr/internal/domain"
	"ctr/internal/suite"
)

// State is the lifecycle position of a Controller.
type State int

const (
	StateReady State = iota
	StateRunning
	StateCompleted
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateAborted:
		return "aborted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ControllerOptions configures a Controller.
type ControllerOptions struct {
	Suite    string
	File     string
	Operator string

	// Persist writes the table to its result path.
	Persist func(*casetable.Table) error
	// PersistOnAbort also persists the table when a case mismatches.
	PersistOnAbort bool

	Clock  func() time.Time
	Logger *zap.Logger
}

// Controller replays the cases of one table in order. Each case runs exactly
// once; the first mismatch ends the run.
type Controller struct {
	opts     ControllerOptions
	table    *casetable.Table
	cases    []suite.Case
	cursor   suite.Cursor
	invoker  suite.Invoker
	recorder *suite.Recorder
	logger   *zap.Logger

	state     State
	executed  int
	passed    int
	persisted bool
}

// NewController prepares a run over table. It fails if layout does not fit
// the table.
func NewController(table *casetable.Table, layout suite.Layout, invoker suite.Invoker, opts ControllerOptions) (*Controller, error) {
	cases, cursor, err := suite.Translate(table, layout)
	if err != nil {
		return nil, err
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Persist == nil {
		opts.Persist = func(*casetable.Table) error { return nil }
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Controller{
		opts:     opts,
		table:    table,
		cases:    cases,
		cursor:   cursor,
		invoker:  invoker,
		recorder: suite.NewRecorder(table, layout),
		logger:   logger.With(zap.String("suite", opts.Suite)),
		state:    StateReady,
	}, nil
}

// State returns the controller's current state.
func (c *Controller) State() State { return c.state }

// Total returns the number of cases in the table.
func (c *Controller) Total() int { return len(c.cases) }

// Executed returns the number of cases invoked so far.
func (c *Controller) Executed() int { return c.executed }

// Passed returns the number of cases whose output matched.
func (c *Controller) Passed() int { return c.passed }

// Persisted reports whether the table has been written.
func (c *Controller) Persisted() bool { return c.persisted }

// Run executes the remaining cases. It returns nil when every case passed,
// a *domain.CaseFailure on the first mismatch, or the error that stopped
// the run.
func (c *Controller) Run(ctx context.Context) error {
	if c.state != StateReady {
		return fmt.Errorf("controller for suite %s is %s", c.opts.Suite, c.state)
	}
	c.state = StateRunning
	c.logger.Info("suite started", zap.String("file", c.opts.File), zap.Int("cases", len(c.cases)))

	if len(c.cases) == 0 {
		return c.complete()
	}

	for {
		if err := ctx.Err(); err != nil {
			return c.abort(err)
		}

		cs := c.cases[c.cursor.Index-1]
		out := c.invoker.Invoke(ctx, cs)
		c.executed++

		if err := c.recorder.Record(cs.Row, out.Output, c.opts.Clock(), c.opts.Operator); err != nil {
			return c.abort(err)
		}

		passed := out.Output == cs.Expected
		if err := c.recorder.MarkResult(cs.Row, passed); err != nil {
			return c.abort(err)
		}

		if !passed {
			failure := &domain.CaseFailure{
				Suite:    c.opts.Suite,
				File:     c.opts.File,
				Row:      cs.Row,
				Expected: cs.Expected,
				Actual:   out.Output,
				Kind:     out.Kind.String(),
			}
			c.logger.Warn("case failed",
				zap.Int("row", cs.Row),
				zap.String("expected", cs.Expected),
				zap.String("actual", out.Output),
				zap.Stringer("kind", out.Kind))
			return c.abort(failure)
		}

		c.passed++
		c.logger.Debug("case passed", zap.Int("row", cs.Row), zap.String("output", out.Output))

		if c.cursor.Last() {
			return c.complete()
		}
		c.cursor.Index++
	}
}

func (c *Controller) complete() error {
	if err := c.persist(); err != nil {
		c.state = StateAborted
		return err
	}
	c.state = StateCompleted
	c.logger.Info("suite completed", zap.Int("passed", c.passed))
	return nil
}

func (c *Controller) abort(cause error) error {
	c.state = StateAborted
	if !c.opts.PersistOnAbort {
		return cause
	}
	if err := c.persist(); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

func (c *Controller) persist() error {
	if err := c.opts.Persist(c.table); err != nil {
		return fmt.Errorf("persist suite %s: %w", c.opts.Suite, err)
	}
	c.persisted = true
	return nil
}
