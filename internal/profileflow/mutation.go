// Package profileflow applies the optimistic-update discipline to profile
// mutations: the local value changes first, the backend confirms or the
// change rolls back. The backend stays authoritative either way.
package profileflow

import (
	"sync"
)

// MutationState is the lifecycle of one optimistic mutation.
type MutationState int

const (
	// Pending: the local value already changed, the remote call is in flight
	Pending MutationState = iota

	// Committed: the backend confirmed, no further local change
	Committed

	// RolledBack: the backend rejected, the prior local value was restored
	RolledBack
)

func (s MutationState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Committed:
		return "committed"
	case RolledBack:
		return "rolled-back"
	default:
		return "unknown"
	}
}

// Result tracks one mutation from optimistic apply to settlement. No retry
// is attempted on rollback; the user re-triggers the action.
type Result struct {
	mu    sync.Mutex
	state MutationState
	err   error
}

func newPending() *Result {
	return &Result{state: Pending}
}

func (r *Result) commit() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = Committed
}

func (r *Result) rollback(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = RolledBack
	r.err = err
}

func (r *Result) State() MutationState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Err returns the failure that caused a rollback, nil otherwise.
func (r *Result) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
