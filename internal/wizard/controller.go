package wizard

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/career-wizard/internal/hierarchy"
)

// State represents the controller lifecycle state.
type State string

const (
	// StateActive means the wizard is collecting step data
	StateActive State = "active"
	// StateSubmitting means a submit is in flight
	StateSubmitting State = "submitting"
	// StateSucceeded is the terminal success state
	StateSucceeded State = "succeeded"
	// StateCancelled means the session was cancelled and its data discarded
	StateCancelled State = "cancelled"
)

// ErrSubmitInFlight is returned when Next is called while a submit is pending.
// Re-entrant submits must not create duplicate update records.
var ErrSubmitInFlight = errors.New("submit already in flight")

// ErrSessionClosed is returned when the session has already succeeded or been cancelled.
var ErrSessionClosed = errors.New("wizard session is closed")

// ErrNoSelection is returned when the activity selection step is confirmed
// with no activity chosen and no notes.
var ErrNoSelection = errors.New("select at least one activity or add notes")

// Result carries the identifiers exposed after a successful submit.
type Result struct {
	UpdateID uuid.UUID `json:"update_id"`
	NodeID   uuid.UUID `json:"node_id"`
}

// Snapshot is a read-only view of the controller state.
type Snapshot struct {
	State       State   `json:"state"`
	CurrentStep int     `json:"current_step"`
	Steps       []Step  `json:"steps"`
	Data        Data    `json:"data"`
	Result      *Result `json:"result,omitempty"`
}

// Controller owns the wizard session: the current step index, the evolving
// data aggregate, and the derived step list. The selection gate is enforced
// here; per-entry payload validation is the caller's job before patching.
type Controller struct {
	mu      sync.Mutex
	nodeID  uuid.UUID
	data    Data
	steps   []Step
	current int
	state   State
	result  *Result

	nodes   hierarchy.NodeAPI
	updates hierarchy.UpdatesAPI
}

// NewController creates a wizard session against the given career transition node.
func NewController(nodeID uuid.UUID, nodes hierarchy.NodeAPI, updates hierarchy.UpdatesAPI) *Controller {
	return &Controller{
		nodeID:  nodeID,
		steps:   DeriveSteps(Data{}),
		state:   StateActive,
		nodes:   nodes,
		updates: updates,
	}
}

// Next merges the patch from the active step, recomputes the step list from
// the updated aggregate, and either advances or, when the session is on the
// final step, submits. The step list is derived after the merge so a flag
// change made mid-wizard resizes the remaining steps.
//
// Returns a non-nil Result exactly once, when the submit succeeds. A failed
// submit leaves the session on the final step so the user can retry.
func (c *Controller) Next(ctx context.Context, patch Patch) (*Result, error) {
	c.mu.Lock()
	switch c.state {
	case StateSubmitting:
		c.mu.Unlock()
		return nil, ErrSubmitInFlight
	case StateSucceeded, StateCancelled:
		c.mu.Unlock()
		return nil, ErrSessionClosed
	}

	c.data.Apply(patch)
	c.steps = DeriveSteps(c.data)
	c.current = clampStep(c.current, c.steps)

	if c.steps[c.current] == StepActivitySelection && !c.data.HasSelection() {
		c.mu.Unlock()
		return nil, ErrNoSelection
	}

	if c.current < len(c.steps)-1 {
		c.current++
		c.mu.Unlock()
		return nil, nil
	}

	// Final step: submit. The lock is released during network calls so the
	// in-flight state stays observable and re-entrant Next calls are rejected.
	c.state = StateSubmitting
	data := c.data
	c.mu.Unlock()

	result, err := c.submit(ctx, data)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateActive
		return nil, err
	}
	c.state = StateSucceeded
	c.result = result
	return result, nil
}

// Back moves to the previous step. Data entered on the step being left is
// retained so moving forward again re-shows the prior values. No-op on the
// first step or once the session is closed.
func (c *Controller) Back() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateActive {
		return
	}
	if c.current > 0 {
		c.current--
	}
}

// Cancel discards the in-memory aggregate and closes the session.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSucceeded {
		return
	}
	c.state = StateCancelled
	c.data = Data{}
}

// Snapshot returns a copy of the current session state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	steps := make([]Step, len(c.steps))
	copy(steps, c.steps)
	return Snapshot{
		State:       c.state,
		CurrentStep: c.current,
		Steps:       steps,
		Data:        c.data,
		Result:      c.result,
	}
}

// NodeID returns the career transition node this session records against.
func (c *Controller) NodeID() uuid.UUID {
	return c.nodeID
}
