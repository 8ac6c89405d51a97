// Package train evaluates a fixed chain of lever and gear stages and
// renders the resulting forces.
package train

import (
	"errors"
	"fmt"

	"github.com/talgya/waterwheel/internal/mechanics"
)

// InputLabel names the applied force every chain starts from.
const InputLabel = "Fa"

// Kind selects which relation a stage applies.
type Kind uint8

const (
	Lever Kind = iota
	Gear
)

// KindName returns a human-readable stage kind.
func KindName(k Kind) string {
	switch k {
	case Lever:
		return "lever"
	case Gear:
		return "gear"
	default:
		return "unknown"
	}
}

// Stage is one application of a force relation.
// For a lever, A is the effort arm and B the load arm.
// For a gear, A is the driven tooth count and B the driving tooth count.
type Stage struct {
	Label string
	Kind  Kind
	From  string // label of the stage whose output is the input force
	A, B  float64
	Note  string
}

// Apply computes the stage output for the given input force.
func (s Stage) Apply(fa float64) float64 {
	if s.Kind == Gear {
		return mechanics.GearForce(fa, s.A, s.B)
	}
	return mechanics.LeverForce(fa, s.A, s.B)
}

// Reading is one computed quantity.
type Reading struct {
	Label string
	Value float64
	Note  string
}

var (
	ErrUnknownSource  = errors.New("unknown source stage")
	ErrDuplicateLabel = errors.New("label already assigned")
)

// forces tracks every value assigned so far. A label is assigned once.
type forces map[string]float64

func (f forces) assign(label string, v float64) error {
	if _, ok := f[label]; ok {
		return fmt.Errorf("%s: %w", label, ErrDuplicateLabel)
	}
	f[label] = v
	return nil
}

func (f forces) run(stages []Stage) ([]Reading, error) {
	readings := make([]Reading, 0, len(stages))
	for _, s := range stages {
		in, ok := f[s.From]
		if !ok {
			return nil, fmt.Errorf("stage %s from %s: %w", s.Label, s.From, ErrUnknownSource)
		}
		out := s.Apply(in)
		if err := f.assign(s.Label, out); err != nil {
			return nil, fmt.Errorf("stage %s: %w", s.Label, err)
		}
		readings = append(readings, Reading{Label: s.Label, Value: out, Note: s.Note})
	}
	return readings, nil
}
