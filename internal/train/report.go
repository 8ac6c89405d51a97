package train

import (
	"bufio"
	"io"
	"strconv"
)

// Separator is printed between the before and after sections.
const Separator = "-"

// Report holds the readings of one evaluated chain.
type Report struct {
	Input  float64
	Before []Reading
	After  []Reading
}

// Readings returns the applied force followed by every stage reading, in
// evaluation order.
func (r *Report) Readings() []Reading {
	out := make([]Reading, 0, 1+len(r.Before)+len(r.After))
	out = append(out, Reading{Label: InputLabel, Value: r.Input, Note: "applied force"})
	out = append(out, r.Before...)
	return append(out, r.After...)
}

// Advantage returns the overall mechanical advantage of the geared train:
// the last after-stage force divided by the applied force.
func (r *Report) Advantage() float64 {
	if len(r.After) == 0 {
		return 1
	}
	return r.After[len(r.After)-1].Value / r.Input
}

// FormatForce renders a force with the shortest representation that
// round-trips.
func FormatForce(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteTo writes one "<label>: <value>" line per reading, with the
// separator between the two sections.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64

	line := func(s string) {
		m, _ := bw.WriteString(s)
		n += int64(m)
		bw.WriteByte('\n')
		n++
	}

	line(InputLabel + ": " + FormatForce(r.Input))
	for _, rd := range r.Before {
		line(rd.Label + ": " + FormatForce(rd.Value))
	}
	line(Separator)
	for _, rd := range r.After {
		line(rd.Label + ": " + FormatForce(rd.Value))
	}

	if err := bw.Flush(); err != nil {
		return n, err
	}
	return n, nil
}
