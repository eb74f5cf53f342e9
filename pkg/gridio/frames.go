package gridio

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/rectfree/rectfree/pkg/scan"
	"github.com/rectfree/rectfree/pkg/search"
)

// frameJSON is one line of a frame log.
type frameJSON struct {
	RunID      string           `json:"run_id,omitempty"`
	Iteration  int              `json:"iteration"`
	Best       int              `json:"best"`
	Violations []scan.Violation `json:"violations"`
	Grid       gridJSON         `json:"grid"`
}

// FrameWriter records search frames as JSON lines. It implements
// [search.Observer]; attach it via search.Options.Observer to capture
// the full trajectory of a run.
//
// Writes are serialized with a mutex so a FrameWriter can be shared
// with other observers running on the TUI goroutine, but a single
// search run calls it from one goroutine only.
type FrameWriter struct {
	mu    sync.Mutex
	w     io.Writer
	runID string
	err   error
}

// NewFrameWriter creates a frame writer that appends to w. runID is
// stamped on every line; it may be empty.
func NewFrameWriter(w io.Writer, runID string) *FrameWriter {
	return &FrameWriter{w: w, runID: runID}
}

// OnFrame writes one JSONL record for the frame. Encoding errors are
// sticky and reported by [FrameWriter.Err]; later frames are dropped.
func (fw *FrameWriter) OnFrame(f search.Frame) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.err != nil {
		return
	}

	violations := f.Violations
	if violations == nil {
		violations = []scan.Violation{}
	}
	rec := frameJSON{
		RunID:      fw.runID,
		Iteration:  f.Iteration,
		Best:       f.Best,
		Violations: violations,
		Grid:       toGridJSON(f.Grid.Rows(), f.Grid.Cols(), f.Grid.Colors(), f.Grid.At),
	}
	fw.err = json.NewEncoder(fw.w).Encode(rec)
}

// OnProgress is a no-op; progress is derivable from the frames.
func (fw *FrameWriter) OnProgress(int, int) {}

// Err returns the first write error, if any.
func (fw *FrameWriter) Err() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return fw.err
}

// ReadFrames decodes every frame record from r. Intended for replay
// tools and tests; large logs should be streamed instead.
func ReadFrames(r io.Reader) ([]search.Frame, error) {
	dec := json.NewDecoder(r)
	var frames []search.Frame
	for {
		var rec frameJSON
		if err := dec.Decode(&rec); err == io.EOF {
			return frames, nil
		} else if err != nil {
			return nil, err
		}
		g, err := fromGridJSON(rec.Grid)
		if err != nil {
			return nil, err
		}
		frames = append(frames, search.Frame{
			Iteration:  rec.Iteration,
			Best:       rec.Best,
			Violations: rec.Violations,
			Grid:       g.Snapshot(),
		})
	}
}
