package train

import (
	"fmt"
	"log/slog"

	"github.com/talgya/waterwheel/internal/mechanics"
)

// Chain is a fixed sequence of stages driven by a single applied force.
// Before holds the direct-drive comparison, After the geared train.
type Chain struct {
	Input  float64
	Before []Stage
	After  []Stage
}

// WaterWheel returns the water-wheel train with its measured geometry.
func WaterWheel() Chain {
	const (
		wheel  = mechanics.WaterWheelRadius
		driver = mechanics.DriverGearRadius
		tiny   = mechanics.TinyGearRadius
		medium = mechanics.MediumGearRadius
		tinyT  = mechanics.TinyGearTeeth
		medT   = mechanics.MediumGearTeeth
	)

	return Chain{
		Input: mechanics.AppliedForce,
		Before: []Stage{
			{Label: "Fb", Kind: Lever, From: InputLabel, A: wheel, B: driver, Note: "water wheel straight to driver gear"},
		},
		After: []Stage{
			{Label: "Fb1", Kind: Lever, From: InputLabel, A: wheel, B: tiny, Note: "output from water wheel small gear"},
			{Label: "Fb2", Kind: Gear, From: "Fb1", A: medT, B: tinyT, Note: "water wheel small gear to middle gear"},
			{Label: "Fb2f", Kind: Lever, From: "Fb2", A: medium, B: driver, Note: "middle gear output at driver radius"},
			{Label: "Fb3", Kind: Lever, From: "Fb2", A: medium, B: tiny, Note: "middle gear to small gear"},
			{Label: "Fb4", Kind: Gear, From: "Fb3", A: medT, B: tinyT, Note: "small gear to middle gear"},
			{Label: "Fb5", Kind: Lever, From: "Fb4", A: medium, B: tiny, Note: "middle gear to small gear"},
			{Label: "Fb6", Kind: Gear, From: "Fb5", A: medT, B: tinyT, Note: "small gear to middle gear"},
			{Label: "Fb6f", Kind: Lever, From: "Fb6", A: medium, B: driver, Note: "final middle gear output at driver radius"},
		},
	}
}

// Evaluate runs every stage in order and returns the resulting report.
func Evaluate(c Chain) (*Report, error) {
	f := forces{}
	if err := f.assign(InputLabel, c.Input); err != nil {
		return nil, err
	}

	before, err := f.run(c.Before)
	if err != nil {
		return nil, fmt.Errorf("before: %w", err)
	}
	after, err := f.run(c.After)
	if err != nil {
		return nil, fmt.Errorf("after: %w", err)
	}

	report := &Report{Input: c.Input, Before: before, After: after}
	for _, r := range report.Readings() {
		slog.Debug("stage evaluated", "stage", r.Label, "force", r.Value, "link", r.Note)
	}
	return report, nil
}
