package sim

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/ropeclimb/internal/game"
)

var traceHeader = []string{
	"tick", "angle", "angular_velocity", "length", "bob_x", "bob_y",
	"energy", "gravity", "cut", "status",
}

// WriteCSV writes one row per traced tick of r.
func WriteCSV(w io.Writer, r *Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(traceHeader); err != nil {
		return err
	}

	for _, s := range r.Trace {
		row := []string{
			strconv.Itoa(s.Tick),
			formatFloat(s.Angle),
			formatFloat(s.AngularVelocity),
			formatFloat(s.Length),
			formatFloat(s.BobX),
			formatFloat(s.BobY),
			formatFloat(s.Energy),
			formatFloat(s.Gravity),
			strconv.Itoa(s.Cut),
			s.Status.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ReadCSV parses a trace written by WriteCSV.
func ReadCSV(r io.Reader) ([]Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(traceHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []Sample{}, nil
	}

	samples := make([]Sample, 0, len(records)-1)
	for i, rec := range records[1:] {
		s, err := parseSample(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		samples = append(samples, s)
	}
	return samples, nil
}

func parseSample(rec []string) (Sample, error) {
	var (
		s    Sample
		err  error
		errs []error
	)
	parse := func(v string) float64 {
		f, perr := strconv.ParseFloat(v, 64)
		if perr != nil {
			errs = append(errs, perr)
		}
		return f
	}

	if s.Tick, err = strconv.Atoi(rec[0]); err != nil {
		return s, err
	}
	s.Angle = parse(rec[1])
	s.AngularVelocity = parse(rec[2])
	s.Length = parse(rec[3])
	s.BobX = parse(rec[4])
	s.BobY = parse(rec[5])
	s.Energy = parse(rec[6])
	s.Gravity = parse(rec[7])
	if len(errs) > 0 {
		return s, errs[0]
	}
	if s.Cut, err = strconv.Atoi(rec[8]); err != nil {
		return s, err
	}
	if s.Status, err = parseStatus(rec[9]); err != nil {
		return s, err
	}
	return s, nil
}

func parseStatus(v string) (game.Status, error) {
	for _, st := range []game.Status{game.StatusIdle, game.StatusClimbing, game.StatusWon} {
		if st.String() == v {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown status %q", v)
}
