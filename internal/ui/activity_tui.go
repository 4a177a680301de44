package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stride/internal/session"
)

// RefreshInterval is how often the model re-reads the controller snapshot.
const RefreshInterval = 500 * time.Millisecond

// Controls is the part of the session controller the TUI drives.
type Controls interface {
	Start(ctx context.Context) error
	Pause() error
	Snapshot() session.Snapshot
}

type refreshMsg time.Time

// controlResultMsg reports the outcome of a Start or Pause issued from the keyboard.
type controlResultMsg struct{ err error }

// FinishedMsg tells the model the input recording has run out.
type FinishedMsg struct{}

// ActivityModel renders one live session with start and pause controls.
type ActivityModel struct {
	ctrl      Controls
	bridge    *Bridge
	autoStart bool

	Snapshot session.Snapshot
	Err      error
	Finished bool
	Quitting bool

	// UI Components
	progress progress.Model
	width    int
	height   int
}

// NewActivityModel creates the model. With autoStart the session starts as soon as the program runs.
func NewActivityModel(ctrl Controls, bridge *Bridge, autoStart bool) ActivityModel {
	return ActivityModel{
		ctrl:      ctrl,
		bridge:    bridge,
		autoStart: autoStart,
		Snapshot:  ctrl.Snapshot(),
		progress:  progress.New(progress.WithDefaultGradient()),
	}
}

func (m ActivityModel) Init() tea.Cmd {
	cmds := []tea.Cmd{refreshCmd(), m.listen()}
	if m.autoStart {
		cmds = append(cmds, m.startCmd())
	}
	return tea.Batch(cmds...)
}

func (m ActivityModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.Quitting = true
			return m, tea.Quit
		case " ":
			if m.Snapshot.State == session.Running {
				return m, m.pauseCmd()
			}
			return m, m.startCmd()
		case "s":
			return m, m.startCmd()
		case "p":
			return m, m.pauseCmd()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 10
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		return m, nil

	case SnapshotMsg:
		m.Snapshot = session.Snapshot(msg)
		return m, m.listen()

	case GoalMsg:
		m.Snapshot = session.Snapshot(msg)
		return m, m.listen()

	case refreshMsg:
		m.Snapshot = m.ctrl.Snapshot()
		return m, refreshCmd()

	case controlResultMsg:
		m.Err = msg.err
		m.Snapshot = m.ctrl.Snapshot()
		return m, nil

	case FinishedMsg:
		m.Finished = true
		return m, nil
	}

	return m, nil
}

func (m ActivityModel) listen() tea.Cmd {
	if m.bridge == nil {
		return nil
	}
	return m.bridge.listen()
}

func (m ActivityModel) startCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return controlResultMsg{err: ctrl.Start(context.Background())}
	}
}

func (m ActivityModel) pauseCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return controlResultMsg{err: ctrl.Pause()}
	}
}

func (m ActivityModel) View() string {
	if m.Quitting {
		return ""
	}

	snap := m.Snapshot
	var s strings.Builder

	title := "STRIDE " + strings.ToUpper(snap.Mode.Name)
	state := snap.State.String()
	s.WriteString(titleStyle.Render(title) + " " + stateStyles[state].Render(strings.ToUpper(state)) + "\n\n")

	s.WriteString(metricStyle.Render(FormatMetric(snap)) + "\n")
	s.WriteString(m.progress.ViewAs(snap.ProgressRatio) + "\n")

	if !snap.Mode.UsesLocation() {
		s.WriteString(statsStyle.Render(fmt.Sprintf("%.2f km · %.2f kcal", snap.Stats.DistanceKm, snap.Stats.Calories)) + "\n")
	}

	if snap.GoalReached {
		s.WriteString("\n" + goalStyle.Render("Goal reached!") + "\n")
	}

	if snap.State == session.Blocked && snap.Err != nil {
		s.WriteString("\n" + errorStyle.Render(blockedReason(snap.Err)) + "\n")
	} else if m.Err != nil {
		s.WriteString("\n" + errorStyle.Render(m.Err.Error()) + "\n")
	}

	if m.Finished {
		s.WriteString("\n" + statsStyle.Render("Recording finished.") + "\n")
	}

	s.WriteString(helpStyle.Render("(space) start/pause • (q) quit"))

	if m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, s.String())
	}

	return s.String()
}

// FormatMetric renders "metric / goal unit" for the snapshot's mode.
func FormatMetric(snap session.Snapshot) string {
	if snap.Mode.UsesLocation() {
		return fmt.Sprintf("%.2f / %.2f %s", snap.Metric, snap.Goal, snap.Mode.Unit())
	}
	return fmt.Sprintf("%d / %g %s", snap.Steps, snap.Goal, snap.Mode.Unit())
}

func blockedReason(err error) string {
	if errors.Is(err, session.ErrLocationPermissionDenied) {
		return "Location permission denied. Grant access and press space to retry."
	}
	return err.Error()
}

func refreshCmd() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}
