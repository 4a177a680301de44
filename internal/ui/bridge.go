package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"stride/internal/session"
)

// SnapshotMsg carries a session update into the program.
type SnapshotMsg session.Snapshot

// GoalMsg is sent once per run segment when the goal is crossed.
type GoalMsg session.Snapshot

// Bridge is a session.Listener that forwards callbacks to the TUI.
// Sends never block the producer; a full buffer drops the message and the
// next refresh tick catches up.
type Bridge struct {
	ch chan tea.Msg
}

// NewBridge creates a bridge with room for size pending messages.
func NewBridge(size int) *Bridge {
	if size < 1 {
		size = 1
	}
	return &Bridge{ch: make(chan tea.Msg, size)}
}

func (b *Bridge) Update(s session.Snapshot) {
	b.send(SnapshotMsg(s))
}

func (b *Bridge) GoalReached(s session.Snapshot) {
	b.send(GoalMsg(s))
}

func (b *Bridge) send(msg tea.Msg) {
	select {
	case b.ch <- msg:
	default:
	}
}

// listen waits for the next forwarded message.
func (b *Bridge) listen() tea.Cmd {
	return func() tea.Msg {
		return <-b.ch
	}
}

var _ session.Listener = (*Bridge)(nil)
