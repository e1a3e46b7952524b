// Package lifecycle provides the state machine shared by long-lived
// components: init, start, stop, suspend and destroy with one hook each.
package lifecycle

import (
	"errors"
	"fmt"
)

// ErrIllegalState is returned when an operation is not allowed in the current state.
var ErrIllegalState = errors.New("illegal state")

type State int

const (
	Created State = iota
	Initializing
	Initialized
	Starting
	Started
	Stopping
	Stopped
	Suspending
	Suspended
	Destroying
	Destroyed
	Error
)

var stateNames = [...]string{
	Created: "created", Initializing: "initializing", Initialized: "initialized",
	Starting: "starting", Started: "started", Stopping: "stopping", Stopped: "stopped",
	Suspending: "suspending", Suspended: "suspended", Destroying: "destroying",
	Destroyed: "destroyed", Error: "error",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool { return s == Destroyed || s == Error }

// StateError reports an operation attempted in the wrong state.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %v in state %s", e.Op, ErrIllegalState, e.State)
}

func (e *StateError) Unwrap() error { return ErrIllegalState }

// Hooks are the component specific halves of each transition. Nil hooks
// succeed.
type Hooks struct {
	Init    func() error
	Start   func() error
	Stop    func() error
	Suspend func() error
	Destroy func() error
}

// Listener observes every state change.
type Listener func(from, to State)

// Machine is not safe for concurrent use; callers serialise access the same
// way they serialise the component itself.
type Machine struct {
	state     State
	hooks     Hooks
	listeners []Listener
}

func New(hooks Hooks) *Machine {
	return &Machine{state: Created, hooks: hooks}
}

func (m *Machine) State() State { return m.state }

// Started reports whether the component is starting or running.
func (m *Machine) Started() bool { return m.state == Starting || m.state == Started }

func (m *Machine) AddListener(l Listener) { m.listeners = append(m.listeners, l) }

func (m *Machine) set(s State) {
	from := m.state
	m.state = s
	for _, l := range m.listeners {
		l(from, s)
	}
}

// transition moves through the intermediate state into the final one. A
// failing hook leaves the machine in Error.
func (m *Machine) transition(op string, via, to State, hook func() error) error {
	m.set(via)
	if hook != nil {
		if err := hook(); err != nil {
			m.set(Error)
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	m.set(to)
	return nil
}

func (m *Machine) Init() error {
	switch m.state {
	case Initialized:
		return nil
	case Created:
		return m.transition("init", Initializing, Initialized, m.hooks.Init)
	}
	return &StateError{Op: "init", State: m.state}
}

// Start initialises the component first if needed.
func (m *Machine) Start() error {
	switch m.state {
	case Started:
		return nil
	case Created:
		if err := m.Init(); err != nil {
			return err
		}
	case Initialized, Stopped, Suspended:
	default:
		return &StateError{Op: "start", State: m.state}
	}
	return m.transition("start", Starting, Started, m.hooks.Start)
}

func (m *Machine) Stop() error {
	switch m.state {
	case Stopped:
		return nil
	case Started, Suspended:
		return m.transition("stop", Stopping, Stopped, m.hooks.Stop)
	}
	return &StateError{Op: "stop", State: m.state}
}

func (m *Machine) Suspend() error {
	switch m.state {
	case Suspended:
		return nil
	case Started:
		return m.transition("suspend", Suspending, Suspended, m.hooks.Suspend)
	}
	return &StateError{Op: "suspend", State: m.state}
}

// Destroy stops a running component before releasing it.
func (m *Machine) Destroy() error {
	switch m.state {
	case Destroyed:
		return nil
	case Started, Suspended:
		if err := m.Stop(); err != nil {
			return err
		}
	case Created, Initialized, Stopped:
	default:
		return &StateError{Op: "destroy", State: m.state}
	}
	return m.transition("destroy", Destroying, Destroyed, m.hooks.Destroy)
}
