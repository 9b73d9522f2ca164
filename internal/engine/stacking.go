package engine

import (
	"sync/atomic"

	"github.com/panelspace/panelspace/internal/workspace"
)

// DefaultZOrderBase keeps assigned z-orders clear of legacy zero values.
const DefaultZOrderBase int64 = 1000

// Stacker hands out strictly increasing z-order values. A value is never
// reused, so the most recently touched panel is always topmost, even across
// unrelated panel sets that share the same Stacker.
type Stacker struct {
	last atomic.Int64
}

// NewStacker returns a Stacker whose first value is base+1.
func NewStacker(base int64) *Stacker {
	s := &Stacker{}
	s.last.Store(base)
	return s
}

var defaultStacker = NewStacker(DefaultZOrderBase)

// DefaultStacker returns the process-wide Stacker. It is initialized once and
// never reset; tests that need deterministic values create their own.
func DefaultStacker() *Stacker {
	return defaultStacker
}

// AssignInitial returns a fresh z-order value.
func (s *Stacker) AssignInitial() int64 {
	return s.last.Add(1)
}

// BringToFront assigns p a new z-order above every value handed out so far.
func (s *Stacker) BringToFront(p *workspace.Panel) int64 {
	z := s.AssignInitial()
	p.ZOrder = z
	return z
}

// Observe raises the counter to at least z so values loaded from a snapshot
// are never handed out again.
func (s *Stacker) Observe(z int64) {
	for {
		cur := s.last.Load()
		if z <= cur || s.last.CompareAndSwap(cur, z) {
			return
		}
	}
}

// Last returns the most recently assigned value.
func (s *Stacker) Last() int64 {
	return s.last.Load()
}
