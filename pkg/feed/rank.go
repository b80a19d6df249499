package feed

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	api "github.com/etesami/earthquake-feed/api"
)

// ErrRankFallback is wrapped by Rank when it returns rows in their
// original order instead of ranking them.
var ErrRankFallback = errors.New("ranking skipped, rows left in feed order")

// Selector chooses the composite key rows are ranked by. Every component
// of the key is compared in descending order.
type Selector int

const (
	// SelectMagnitude ranks by (magnitude, alert).
	SelectMagnitude Selector = iota
	// SelectIntensity ranks by (mmi, magnitude, alert).
	SelectIntensity
)

func (s Selector) String() string {
	switch s {
	case SelectMagnitude:
		return "magnitude"
	case SelectIntensity:
		return "intensity"
	default:
		return fmt.Sprintf("Selector(%d)", int(s))
	}
}

func ParseSelector(name string) (Selector, error) {
	switch name {
	case "", "magnitude", "mag":
		return SelectMagnitude, nil
	case "intensity", "mmi", "shake":
		return SelectIntensity, nil
	default:
		return SelectMagnitude, fmt.Errorf("unknown rank key %q", name)
	}
}

// compare orders a and b ascending by the selector's key tuple.
func (s Selector) compare(a, b api.EventRecord) int {
	if s == SelectIntensity {
		if c := cmp.Compare(a.MMI, b.MMI); c != 0 {
			return c
		}
	}
	if c := cmp.Compare(a.Magnitude, b.Magnitude); c != 0 {
		return c
	}
	return cmp.Compare(a.Alert, b.Alert)
}

func (s Selector) validate(r api.EventRecord) error {
	if s == SelectIntensity && math.IsNaN(r.MMI) {
		return fmt.Errorf("event %s has no comparable intensity", r.ID)
	}
	if math.IsNaN(r.Magnitude) {
		return fmt.Errorf("event %s has no comparable magnitude", r.ID)
	}
	return nil
}

// Rank returns a new slice holding rows in descending key order. Rows with
// equal keys keep their relative order. If any row cannot be compared the
// rows are returned unsorted together with an error wrapping
// ErrRankFallback. rows itself is never modified.
func Rank(rows []api.EventRecord, sel Selector) ([]api.EventRecord, error) {
	out := slices.Clone(rows)
	if out == nil {
		out = []api.EventRecord{}
	}
	if sel != SelectMagnitude && sel != SelectIntensity {
		return out, fmt.Errorf("%w: unknown selector %v", ErrRankFallback, sel)
	}
	for _, r := range rows {
		if err := sel.validate(r); err != nil {
			return out, fmt.Errorf("%w: %v", ErrRankFallback, err)
		}
	}
	slices.SortStableFunc(out, func(a, b api.EventRecord) int {
		return sel.compare(b, a)
	})
	return out, nil
}
