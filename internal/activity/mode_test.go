package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsFor(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		interval  time.Duration
	}{
		{"walk", 1.0, 400 * time.Millisecond},
		{"Run", 1.3, 250 * time.Millisecond},
		{" WALK ", 1.0, 400 * time.Millisecond},
		{"hike", 1.0, 300 * time.Millisecond},
		{"", 1.0, 300 * time.Millisecond},
		{"cycle", 1.0, 300 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParamsFor(tt.name)
			assert.Equal(t, tt.threshold, p.Threshold)
			assert.Equal(t, tt.interval, p.MinInterval)
			assert.False(t, p.CrossAxisGate)
		})
	}
}

func TestLookup(t *testing.T) {
	m, err := Lookup("walk")
	require.NoError(t, err)
	assert.Equal(t, 5.0, m.Goal)
	assert.Equal(t, UnitSteps, m.Unit())
	assert.False(t, m.UsesLocation())

	m, err = Lookup("Cycle")
	require.NoError(t, err)
	assert.Equal(t, 15.0, m.Goal)
	assert.Equal(t, UnitKilometers, m.Unit())
	assert.True(t, m.UsesLocation())

	_, err = Lookup("swim")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestCatalogOrder(t *testing.T) {
	modes := Catalog()
	require.Len(t, modes, 3)
	assert.Equal(t, []string{Walk, Run, Cycle}, []string{modes[0].Name, modes[1].Name, modes[2].Name})
	assert.Equal(t, "Run", modes[1].Title())
}

func TestWithGoal(t *testing.T) {
	m, _ := Lookup(Run)
	m2, err := m.WithGoal(42)
	require.NoError(t, err)
	assert.Equal(t, 42.0, m2.Goal)
	assert.Equal(t, 10.0, m.Goal)

	_, err = m.WithGoal(0)
	assert.ErrorIs(t, err, ErrInvalidGoal)
	_, err = m.WithGoal(-3)
	assert.ErrorIs(t, err, ErrInvalidGoal)
}

func TestDeriveStats(t *testing.T) {
	s := DeriveStats(1000)
	assert.InDelta(t, 0.8, s.DistanceKm, 1e-12)
	assert.InDelta(t, 40.0, s.Calories, 1e-12)
	assert.Equal(t, Stats{}, DeriveStats(0))
	assert.Equal(t, Stats{}, DeriveStats(-1))
}
