// Package scope tracks the ambient context stack attached to log
// records.
//
// A Provider holds the scopes currently active for one logging
// pipeline. Push adds a frame and returns the function that removes it,
// so call sites pair the two with defer. Snapshot copies the live stack
// at the moment a record fires; the copy is immutable afterwards, which
// lets asynchronous handlers serialize it long after the scopes
// themselves have been popped. Both Provider and Snapshot implement
// core.ScopeWalker, yielding frames outermost first.
package scope

import (
	"sync"

	"github.com/alefranz/logwire/core"
)

// Provider is a mutex-guarded stack of scope frames shared by the
// loggers of one pipeline.
type Provider struct {
	mu     sync.Mutex
	frames []core.State
}

// NewProvider creates an empty scope provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Push enters a new scope and returns the function that exits it.
// Scopes nest: exiting truncates the stack back to the depth recorded
// at entry, so an out-of-order exit also drops any deeper frames that
// were never popped.
func (p *Provider) Push(s core.State) (pop func()) {
	p.mu.Lock()
	p.frames = append(p.frames, s)
	depth := len(p.frames)
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		if len(p.frames) >= depth {
			p.frames = p.frames[:depth-1]
		}
		p.mu.Unlock()
	}
}

// Snapshot copies the currently active frames, outermost first.
// A nil return means no scopes are active.
func (p *Provider) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.frames) == 0 {
		return nil
	}
	snap := make(Snapshot, len(p.frames))
	copy(snap, p.frames)
	return snap
}

// WalkScopes invokes fn once per active frame, outermost first. It
// walks a snapshot so fn runs without holding the provider lock.
func (p *Provider) WalkScopes(fn func(core.State)) {
	p.Snapshot().WalkScopes(fn)
}

// Snapshot is an immutable copy of the scope stack captured when a
// record fired, outermost first.
type Snapshot []core.State

// WalkScopes invokes fn once per captured frame, outermost first.
func (s Snapshot) WalkScopes(fn func(core.State)) {
	for _, frame := range s {
		fn(frame)
	}
}
