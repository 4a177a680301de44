package recording

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"stride/internal/sensor"
)

// MotionHeader is the column layout of motion recordings.
var MotionHeader = []string{"timestamp_ms", "x", "y", "z"}

// ReadMotionCSV reads accelerometer samples. The header row is optional.
// Rows with missing or unparsable fields are skipped and counted in skipped.
func ReadMotionCSV(r io.Reader) (samples []sensor.MotionSample, skipped int, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	first := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skipped++
				continue
			}
			return nil, skipped, fmt.Errorf("read motion csv: %w", err)
		}

		if first {
			first = false
			if len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), MotionHeader[0]) {
				continue
			}
		}

		s, ok := parseMotionRow(rec)
		if !ok {
			skipped++
			continue
		}
		samples = append(samples, s)
	}
	return samples, skipped, nil
}

func parseMotionRow(rec []string) (sensor.MotionSample, bool) {
	if len(rec) < len(MotionHeader) {
		return sensor.MotionSample{}, false
	}
	var vals [4]float64
	for i := range vals {
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
		if err != nil {
			return sensor.MotionSample{}, false
		}
		vals[i] = v
	}
	s := sensor.MotionSample{
		Timestamp: time.Duration(vals[0] * float64(time.Millisecond)),
		X:         vals[1],
		Y:         vals[2],
		Z:         vals[3],
	}
	if !s.Valid() {
		return sensor.MotionSample{}, false
	}
	return s, true
}

// WriteMotionCSV writes samples in the layout ReadMotionCSV accepts.
func WriteMotionCSV(w io.Writer, samples []sensor.MotionSample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(MotionHeader); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.FormatInt(s.Timestamp.Milliseconds(), 10),
			strconv.FormatFloat(s.X, 'f', 4, 64),
			strconv.FormatFloat(s.Y, 'f', 4, 64),
			strconv.FormatFloat(s.Z, 'f', 4, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
