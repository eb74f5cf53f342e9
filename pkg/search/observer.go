package search

import (
	"github.com/rectfree/rectfree/pkg/grid"
	"github.com/rectfree/rectfree/pkg/scan"
)

// Frame is a point-in-time view of the search handed to observers:
// the iteration index, a read-only grid snapshot, the violation list
// from the scan of that snapshot, and the best count seen so far.
// The violation slice must be treated as read-only.
type Frame struct {
	Iteration  int
	Grid       grid.Snapshot
	Violations []scan.Violation
	Best       int
}

// Observer receives events from a running search. Implementations must
// not mutate anything they are handed and should return quickly: the
// loop blocks on every call. The search core is fully functional with a
// nil observer.
type Observer interface {
	// OnFrame is called once per iteration after the scan, and a final
	// time with the terminal grid state.
	OnFrame(f Frame)

	// OnProgress is called whenever the violation count drops strictly
	// below the best count seen so far.
	OnProgress(iteration, violations int)
}

// FrameFunc adapts a function to the Observer interface, ignoring
// progress events. Useful for recorders that only want frames.
type FrameFunc func(f Frame)

// OnFrame calls the wrapped function.
func (fn FrameFunc) OnFrame(f Frame) { fn(f) }

// OnProgress is a no-op.
func (FrameFunc) OnProgress(int, int) {}

// Observers fans events out to several observers in order.
func Observers(obs ...Observer) Observer {
	return multiObserver(obs)
}

type multiObserver []Observer

func (m multiObserver) OnFrame(f Frame) {
	for _, o := range m {
		if o != nil {
			o.OnFrame(f)
		}
	}
}

func (m multiObserver) OnProgress(iteration, violations int) {
	for _, o := range m {
		if o != nil {
			o.OnProgress(iteration, violations)
		}
	}
}
