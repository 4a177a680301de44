package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stride/internal/activity"
	"stride/internal/session"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

type fakeControls struct {
	mu       sync.Mutex
	snap     session.Snapshot
	starts   int
	pauses   int
	startErr error
}

func (f *fakeControls) Start(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts++
	if f.startErr != nil {
		f.snap.State = session.Blocked
		f.snap.Err = f.startErr
		return f.startErr
	}
	f.snap.State = session.Running
	return nil
}

func (f *fakeControls) Pause() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pauses++
	f.snap.State = session.Paused
	return nil
}

func (f *fakeControls) Snapshot() session.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func newWalkControls(t *testing.T) *fakeControls {
	t.Helper()
	walk, err := activity.Lookup(activity.Walk)
	require.NoError(t, err)
	return &fakeControls{snap: session.Snapshot{Mode: walk, Goal: walk.Goal}}
}

func space() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}}
}

func TestActivityModel_Init(t *testing.T) {
	ctrl := newWalkControls(t)
	m := NewActivityModel(ctrl, NewBridge(4), false)
	assert.NotNil(t, m.Init())
	assert.Equal(t, session.Idle, m.Snapshot.State)
}

func TestActivityModel_SpaceTogglesStartAndPause(t *testing.T) {
	ctrl := newWalkControls(t)
	m := NewActivityModel(ctrl, NewBridge(4), false)

	newModel, cmd := m.Update(space())
	require.NotNil(t, cmd)
	newModel, _ = newModel.Update(cmd())
	m2 := newModel.(ActivityModel)
	assert.Equal(t, 1, ctrl.starts)
	assert.Equal(t, session.Running, m2.Snapshot.State)

	newModel, cmd = m2.Update(space())
	require.NotNil(t, cmd)
	newModel, _ = newModel.Update(cmd())
	m3 := newModel.(ActivityModel)
	assert.Equal(t, 1, ctrl.pauses)
	assert.Equal(t, session.Paused, m3.Snapshot.State)
}

func TestActivityModel_StartErrorIsShown(t *testing.T) {
	cycle, err := activity.Lookup(activity.Cycle)
	require.NoError(t, err)
	ctrl := &fakeControls{
		snap:     session.Snapshot{Mode: cycle, Goal: cycle.Goal},
		startErr: session.ErrLocationPermissionDenied,
	}
	m := NewActivityModel(ctrl, nil, false)

	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	newModel, _ = newModel.Update(cmd())
	m2 := newModel.(ActivityModel)

	assert.True(t, errors.Is(m2.Err, session.ErrLocationPermissionDenied))
	assert.Contains(t, m2.View(), "Location permission denied")
	assert.Contains(t, m2.View(), "BLOCKED")
}

func TestActivityModel_BridgeMessages(t *testing.T) {
	ctrl := newWalkControls(t)
	bridge := NewBridge(4)
	m := NewActivityModel(ctrl, bridge, false)

	snap := ctrl.Snapshot()
	snap.State = session.Running
	snap.Steps = 5
	snap.Metric = 5
	snap.ProgressRatio = 1
	snap.GoalReached = true

	bridge.GoalReached(snap)
	msg := bridge.listen()()
	require.IsType(t, GoalMsg{}, msg)

	newModel, cmd := m.Update(msg)
	assert.NotNil(t, cmd)
	view := newModel.(ActivityModel).View()
	assert.Contains(t, view, "5 / 5 steps")
	assert.Contains(t, view, "Goal reached!")
}

func TestBridge_NeverBlocks(t *testing.T) {
	bridge := NewBridge(1)
	bridge.Update(session.Snapshot{Metric: 1})
	bridge.Update(session.Snapshot{Metric: 2})

	msg := bridge.listen()()
	assert.Equal(t, 1.0, session.Snapshot(msg.(SnapshotMsg)).Metric)
}

func TestActivityModel_RefreshReadsController(t *testing.T) {
	ctrl := newWalkControls(t)
	m := NewActivityModel(ctrl, nil, false)

	ctrl.mu.Lock()
	ctrl.snap.Steps = 3
	ctrl.mu.Unlock()

	newModel, cmd := m.Update(refreshMsg{})
	assert.NotNil(t, cmd)
	assert.Equal(t, 3, newModel.(ActivityModel).Snapshot.Steps)
}

func TestActivityModel_Finished(t *testing.T) {
	m := NewActivityModel(newWalkControls(t), nil, false)
	newModel, _ := m.Update(FinishedMsg{})
	assert.Contains(t, newModel.(ActivityModel).View(), "Recording finished.")
}

func TestActivityModel_Quit(t *testing.T) {
	m := NewActivityModel(newWalkControls(t), nil, false)

	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m2 := newModel.(ActivityModel)

	assert.True(t, m2.Quitting)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m2.View())
}

func TestActivityModel_View(t *testing.T) {
	ctrl := newWalkControls(t)
	m := NewActivityModel(ctrl, nil, false)
	m.width = 80
	m.height = 24

	view := m.View()
	assert.Contains(t, view, "STRIDE WALK")
	assert.Contains(t, view, "IDLE")
	assert.Contains(t, view, "0 / 5 steps")
	assert.Contains(t, view, "(space) start/pause")
	assert.False(t, strings.Contains(view, "Goal reached!"))
}

func TestFormatMetric(t *testing.T) {
	cycle, err := activity.Lookup(activity.Cycle)
	require.NoError(t, err)
	assert.Equal(t, "1.57 / 15.00 km", FormatMetric(session.Snapshot{Mode: cycle, Metric: 1.5725, Goal: 15}))

	run, err := activity.Lookup(activity.Run)
	require.NoError(t, err)
	assert.Equal(t, "7 / 10 steps", FormatMetric(session.Snapshot{Mode: run, Steps: 7, Goal: 10}))
}
