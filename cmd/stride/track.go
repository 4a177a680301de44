package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"stride/internal/activity"
	"stride/internal/config"
	"stride/internal/metrics"
	"stride/internal/notify"
	"stride/internal/recording"
	"stride/internal/sensor"
	"stride/internal/session"
	"stride/internal/telemetry"
	"stride/internal/ui"
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Track a walk, run or cycle session from a recording",
	Long: `Replays a recording through the session pipeline and reports progress
toward the mode's goal. Walk and run read a motion CSV (timestamp_ms,x,y,z);
cycle reads a GPX track.`,
	Args: cobra.NoArgs,
	RunE: runTrack,
}

// Wrapper for running the TUI to allow mocking in tests
var runProgram = func(ctx context.Context, m tea.Model, finished <-chan struct{}) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	go func() {
		select {
		case <-finished:
			p.Send(ui.FinishedMsg{})
		case <-ctx.Done():
		}
	}()
	_, err := p.Run()
	return err
}

func init() {
	f := trackCmd.Flags()
	f.String("mode", "", "Activity mode: walk, run or cycle")
	f.Bool("pick", false, "Choose the mode interactively")
	f.StringP("input", "i", "", "Recording to replay (motion CSV for walk/run, GPX for cycle)")
	f.Float64("goal", 0, "Override the mode's goal")
	f.Float64("speed", 1, "Replay speed multiplier")
	f.Bool("deny-location", false, "Answer the location permission request with denied")
	f.Bool("cross-axis-gate", false, "Also require |x| and |y| below 1.0 for a step")
	f.Bool("metrics", false, "Serve Prometheus metrics on metrics_port")
	f.Bool("no-tui", false, "Run without the TUI and print a summary")
	f.Bool("bell", false, "Ring the terminal bell on every step")
	_ = trackCmd.MarkFlagRequired("input")

	bindFlags(f, map[string]string{
		"mode":                     "mode",
		"goal":                     "goal",
		"replay.speed":             "speed",
		"detector.cross_axis_gate": "cross-axis-gate",
		"metrics.enabled":          "metrics",
	})

	rootCmd.AddCommand(trackCmd)
}

func runTrack(cmd *cobra.Command, args []string) error {
	settings, err := config.Current()
	if err != nil {
		return err
	}

	modeName := settings.Mode
	if pick, _ := cmd.Flags().GetBool("pick"); pick {
		if modeName, err = pickMode(); err != nil {
			return err
		}
	}
	mode, err := resolveMode(modeName, settings)
	if err != nil {
		return err
	}

	input, _ := cmd.Flags().GetString("input")
	deny, _ := cmd.Flags().GetBool("deny-location")
	if deny {
		settings.Location.Permission = "denied"
	}
	src, err := openSource(mode, input, settings)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.Default()

	m := metrics.NewMetrics()
	if settings.Metrics.Enabled {
		addr := fmt.Sprintf(":%d", settings.MetricsPort)
		go func() {
			if err := telemetry.StartMetricsServer(ctx, addr, m.Registry()); err != nil {
				logger.Warn("Failed to start metrics server", "addr", addr, "error", err)
			}
		}()
	}

	notifier := notify.NewManager(settings.Notifications, logger)
	defer notifier.Wait()

	out := cmd.OutOrStdout()
	listeners := session.Listeners{notifier.Listener()}

	noTUI, _ := cmd.Flags().GetBool("no-tui")
	var bridge *ui.Bridge
	if noTUI {
		listeners = append(listeners, session.ListenerFuncs{
			OnUpdate: func(s session.Snapshot) {
				if s.State == session.Running {
					fmt.Fprintln(out, ui.FormatMetric(s))
				}
			},
			OnGoalReached: func(s session.Snapshot) {
				fmt.Fprintln(out, notify.GoalMessage(s))
			},
		})
	} else {
		bridge = ui.NewBridge(64)
		listeners = append(listeners, bridge)
	}

	opts := []session.Option{
		session.WithListener(listeners),
		session.WithRecorder(m),
		session.WithLogger(logger),
		session.WithUpdateInterval(settings.Sensor.UpdateInterval),
		session.WithWatchOptions(sensor.WatchOptions{
			HighAccuracy:     settings.Location.HighAccuracy,
			TimeInterval:     settings.Location.TimeInterval,
			DistanceInterval: settings.Location.DistanceInterval,
		}),
	}
	if bell, _ := cmd.Flags().GetBool("bell"); bell {
		opts = append(opts, session.WithFeedback(ui.NewBell(os.Stderr)))
	}

	ctrl, err := session.New(mode, src.sources, opts...)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	if noTUI {
		err = runHeadless(ctx, ctrl, src.finished)
	} else {
		err = runTUI(ctx, ctrl, bridge, src.finished)
	}

	if pauseErr := ctrl.Pause(); pauseErr != nil && !errors.Is(pauseErr, session.ErrClosed) {
		logger.Warn("Failed to pause session", "error", pauseErr)
	}
	printSummary(out, ctrl.Snapshot())
	return err
}

// resolveMode applies the goal override and detector settings to a catalog mode.
func resolveMode(name string, settings config.Settings) (activity.Mode, error) {
	mode, err := activity.Lookup(name)
	if err != nil {
		return activity.Mode{}, err
	}
	if settings.Goal > 0 {
		if mode, err = mode.WithGoal(settings.Goal); err != nil {
			return activity.Mode{}, err
		}
	}
	mode.Params.CrossAxisGate = settings.Detector.CrossAxisGate
	return mode, nil
}

type replaySource struct {
	sources  session.Sources
	finished <-chan struct{}
}

// openSource loads the recording matching the mode's producer.
func openSource(mode activity.Mode, path string, settings config.Settings) (replaySource, error) {
	f, err := os.Open(path)
	if err != nil {
		return replaySource{}, fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()

	if mode.UsesLocation() {
		fixes, err := recording.ReadGPX(f)
		if err != nil {
			return replaySource{}, err
		}
		perm := sensor.PermissionGranted
		if strings.EqualFold(settings.Location.Permission, "denied") {
			perm = sensor.PermissionDenied
		}
		r := sensor.NewLocationReplay(fixes, perm)
		r.SetSpeed(settings.Replay.Speed)
		return replaySource{sources: session.Sources{Location: r}, finished: r.Finished()}, nil
	}

	samples, skipped, err := recording.ReadMotionCSV(f)
	if err != nil {
		return replaySource{}, err
	}
	if skipped > 0 {
		slog.Warn("Skipped malformed rows", "path", path, "count", skipped)
	}
	r := sensor.NewMotionReplay(samples)
	r.SetSpeed(settings.Replay.Speed)
	return replaySource{sources: session.Sources{Accelerometer: r}, finished: r.Finished()}, nil
}

func runHeadless(ctx context.Context, ctrl *session.Controller, finished <-chan struct{}) error {
	if err := ctrl.Start(ctx); err != nil {
		return err
	}
	select {
	case <-finished:
	case <-ctx.Done():
	}
	return nil
}

func runTUI(ctx context.Context, ctrl *session.Controller, bridge *ui.Bridge, finished <-chan struct{}) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := ui.NewActivityModel(ctrl, bridge, true)
	if err := runProgram(ctx, model, finished); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running activity view: %w", err)
	}
	return nil
}

func printSummary(w io.Writer, snap session.Snapshot) {
	out, err := ui.RenderSummary(snap, "")
	if err != nil {
		fmt.Fprint(w, ui.SummaryMarkdown(snap))
		return
	}
	fmt.Fprint(w, out)
}
