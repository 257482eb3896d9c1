package models

import (
	"fmt"
	"strconv"
	"strings"
)

// TrimKind distinguishes the two trim variants.
type TrimKind int

const (
	// TrimRange keeps [Start, Start+Duration) of the normalized clip.
	TrimRange TrimKind = iota
	// TrimLast keeps the final Seconds of the clip when the clip is longer,
	// otherwise leaves the clip untouched.
	TrimLast
)

// TrimSpec shortens a segment's contribution to a fixed sub-range before
// concatenation. Trims are keyed by segment label, at most one per label,
// and apply after per-segment normalization so trim points are in
// normalized time.
type TrimSpec struct {
	Kind     TrimKind
	Start    float64 // TrimRange only
	Duration float64 // TrimRange only
	Seconds  float64 // TrimLast only
}

// ParseTrimSpec parses a trim string into a TrimSpec.
//
// Two forms are accepted:
//
//	"start:duration"  range trim, e.g. "0:3" or "1.5:2.5"
//	"last:seconds"    tail trim, e.g. "last:2"
//
// Invalid values (negative start, non-positive duration or seconds) are
// rejected here, at configuration time, so a bad trim never reaches the
// render phase.
func ParseTrimSpec(spec string) (TrimSpec, error) {
	parts := strings.SplitN(strings.TrimSpace(spec), ":", 2)
	if len(parts) != 2 {
		return TrimSpec{}, fmt.Errorf("invalid trim %q: expected \"start:duration\" or \"last:seconds\"", spec)
	}

	if strings.EqualFold(parts[0], "last") {
		seconds, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return TrimSpec{}, fmt.Errorf("invalid trim %q: bad seconds value: %w", spec, err)
		}
		if seconds <= 0 {
			return TrimSpec{}, fmt.Errorf("invalid trim %q: seconds must be positive", spec)
		}
		return TrimSpec{Kind: TrimLast, Seconds: seconds}, nil
	}

	start, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return TrimSpec{}, fmt.Errorf("invalid trim %q: bad start value: %w", spec, err)
	}
	duration, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return TrimSpec{}, fmt.Errorf("invalid trim %q: bad duration value: %w", spec, err)
	}
	if start < 0 {
		return TrimSpec{}, fmt.Errorf("invalid trim %q: start cannot be negative", spec)
	}
	if duration <= 0 {
		return TrimSpec{}, fmt.Errorf("invalid trim %q: duration must be positive", spec)
	}
	return TrimSpec{Kind: TrimRange, Start: start, Duration: duration}, nil
}

// String renders the spec back into its configuration form.
func (t TrimSpec) String() string {
	if t.Kind == TrimLast {
		return fmt.Sprintf("last:%g", t.Seconds)
	}
	return fmt.Sprintf("%g:%g", t.Start, t.Duration)
}
