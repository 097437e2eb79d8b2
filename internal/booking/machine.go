package booking

import (
	"errors"
	"sync"
)

// Phase is the form's lifecycle.
type Phase int

const (
	Idle Phase = iota
	Loading
	Submitted
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Submitted:
		return "submitted"
	}
	return "idle"
}

var (
	// ErrBusy rejects a submission while another one is in flight.
	ErrBusy = errors.New("booking: submission already in progress")
	// ErrSubmitted rejects a submission while a confirmation is shown.
	ErrSubmitted = errors.New("booking: already submitted")
)

// Machine tracks one visitor's form.  Loaded is the ticket-types sub-state
// and is independent of the phase.
type Machine struct {
	mu     sync.Mutex
	phase  Phase
	loaded bool
}

func (m *Machine) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

func (m *Machine) Loaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded
}

func (m *Machine) SetLoaded(v bool) {
	m.mu.Lock()
	m.loaded = v
	m.mu.Unlock()
}

// Begin moves Idle to Loading.
func (m *Machine) Begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.phase {
	case Loading:
		return ErrBusy
	case Submitted:
		return ErrSubmitted
	}
	m.phase = Loading
	return nil
}

// Succeed moves Loading to Submitted.
func (m *Machine) Succeed() { m.set(Loading, Submitted) }

// Fail moves Loading back to Idle.
func (m *Machine) Fail() { m.set(Loading, Idle) }

// Restore jumps straight to Submitted; a persisted confirmation was found.
func (m *Machine) Restore() {
	m.mu.Lock()
	m.phase = Submitted
	m.mu.Unlock()
}

// Reset moves Submitted to Idle ("book again").
func (m *Machine) Reset() { m.set(Submitted, Idle) }

func (m *Machine) set(from, to Phase) {
	m.mu.Lock()
	if m.phase == from {
		m.phase = to
	}
	m.mu.Unlock()
}
