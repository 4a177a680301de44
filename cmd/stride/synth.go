package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"stride/internal/recording"
	"stride/internal/sensor"
)

var synthCmd = &cobra.Command{
	Use:   "synth",
	Short: "Generate a synthetic motion recording",
	Long: `Writes a motion CSV with one vertical peak per step on a quiet baseline.
Useful for trying the walk and run modes without a device.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _ := cmd.Flags().GetInt("steps")
		cadence, _ := cmd.Flags().GetDuration("cadence")
		rate, _ := cmd.Flags().GetDuration("rate")
		peak, _ := cmd.Flags().GetFloat64("peak")
		output, _ := cmd.Flags().GetString("output")

		samples, err := synthesizeSteps(steps, cadence, rate, peak)
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if output != "" && output != "-" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer f.Close()
			w = f
		}
		return recording.WriteMotionCSV(w, samples)
	},
}

func init() {
	f := synthCmd.Flags()
	f.Int("steps", 10, "Number of steps to generate")
	f.Duration("cadence", 500*time.Millisecond, "Time between steps")
	f.Duration("rate", sensor.DefaultMotionInterval, "Sample period")
	f.Float64("peak", 1.5, "Vertical acceleration at each step")
	f.StringP("output", "o", "-", "Output file, - for stdout")
	rootCmd.AddCommand(synthCmd)
}

const baselineZ = 0.2

// synthesizeSteps places a peak every cadence, sampled every rate.
func synthesizeSteps(steps int, cadence, rate time.Duration, peak float64) ([]sensor.MotionSample, error) {
	if steps < 0 {
		return nil, fmt.Errorf("steps must not be negative, got: %d", steps)
	}
	if rate <= 0 || cadence < rate || cadence%rate != 0 {
		return nil, fmt.Errorf("cadence (%s) must be a positive multiple of rate (%s)", cadence, rate)
	}

	total := time.Duration(steps) * cadence
	samples := make([]sensor.MotionSample, 0, int(total/rate))
	for ts := time.Duration(0); ts < total; ts += rate {
		z := baselineZ
		if ts%cadence == 0 {
			z = peak
		}
		samples = append(samples, sensor.MotionSample{X: 0.05, Y: -0.05, Z: z, Timestamp: ts})
	}
	return samples, nil
}
