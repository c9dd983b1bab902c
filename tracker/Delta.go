package tracker

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/samuelfneumann/gridmdp/sweep"
)

// Trace is the history of the value changes of a single solver run
type Trace struct {
	Procedure sweep.Procedure
	Round     int
	Deltas    []float64
	Converged bool
}

// Delta tracks and saves the largest value change of each sweep. A new
// Trace is started for every solver run, so that policy iteration
// produces one Trace per evaluation round.
type Delta struct {
	traces   []Trace
	open     bool
	filename string
}

// NewDelta creates and returns a new *Delta Tracker which saves to
// filename
func NewDelta(filename string) *Delta {
	return &Delta{filename: filename}
}

// Track records the value change of a sweep
func (d *Delta) Track(s sweep.Sweep) {
	if !d.open || s.First() {
		d.traces = append(d.traces, Trace{Procedure: s.Procedure,
			Round: s.Round})
		d.open = true
	}

	current := &d.traces[len(d.traces)-1]
	current.Deltas = append(current.Deltas, s.Delta)

	if s.Last() {
		current.Converged = s.Converged
		d.open = false
	}
}

// Traces returns the traces recorded so far
func (d *Delta) Traces() []Trace {
	return d.traces
}

// Save saves the traces tracked by the Delta Tracker to disk
func (d *Delta) Save() error {
	file, err := os.Create(d.filename)
	if err != nil {
		return fmt.Errorf("save: could not open save file: %w", err)
	}
	defer file.Close()

	en := gob.NewEncoder(file)
	if err = en.Encode(d.traces); err != nil {
		return fmt.Errorf("save: could not encode traces: %w", err)
	}
	return nil
}

// LoadData loads and returns the traces saved by a Delta Tracker
func LoadData(filename string) ([]Trace, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loadData: could not open data file: %w", err)
	}
	defer file.Close()

	dec := gob.NewDecoder(file)
	var data []Trace
	if err = dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("loadData: could not decode data: %w", err)
	}
	return data, nil
}
