package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"stride/internal/recording"
)

func executeCommand(root *cobra.Command, args ...string) (string, error) {
	resetFlags(root)
	// Mock exit
	oldExit := exit
	exit = func(code int) {
		if code != 0 {
			panic(fmt.Sprintf("exit-%d", code))
		}
	}
	defer func() { exit = oldExit }()
	defer func() {
		if r := recover(); r != nil {
			if s, ok := r.(string); ok && strings.HasPrefix(s, "exit-") {
				return
			}
			panic(r)
		}
	}()
	root.SetArgs(args)
	b := new(bytes.Buffer)
	root.SetOut(b)
	root.SetErr(b)
	// Avoid hanging on interactive prompts
	root.SetIn(bytes.NewBufferString(""))
	err := root.Execute()
	return b.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Changed {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// writeWalkCSV writes a recording with one peak every 500ms.
func writeWalkCSV(t *testing.T, steps int) string {
	t.Helper()
	samples, err := synthesizeSteps(steps, 500*time.Millisecond, 100*time.Millisecond, 1.5)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "walk.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, recording.WriteMotionCSV(f, samples))
	return path
}

// writeCycleGPX writes three fixes along the equator, about 1.11 km apart.
func writeCycleGPX(t *testing.T) string {
	t.Helper()
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="stride-test">
  <trk><trkseg>
    <trkpt lat="0" lon="0"><time>2026-05-01T08:00:00Z</time></trkpt>
    <trkpt lat="0" lon="0.01"><time>2026-05-01T08:00:01Z</time></trkpt>
    <trkpt lat="0" lon="0.02"><time>2026-05-01T08:00:02Z</time></trkpt>
  </trkseg></trk>
</gpx>`
	path := filepath.Join(t.TempDir(), "ride.gpx")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}
