package ui

import (
	"io"
	"sync"

	"github.com/muesli/termenv"

	"stride/internal/session"
)

// Bell plays step cues as the terminal bell.
type Bell struct {
	mu  sync.Mutex
	out *termenv.Output
}

// NewBell writes cues to w. Pass termenv options to pin the profile in tests.
func NewBell(w io.Writer, opts ...termenv.OutputOption) *Bell {
	return &Bell{out: termenv.NewOutput(w, opts...)}
}

// Play rings the bell for a step cue and ignores cues it does not know.
func (b *Bell) Play(cue session.Cue) error {
	if cue != session.CueStep {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := b.out.WriteString("\a")
	return err
}

var _ session.Feedback = (*Bell)(nil)
