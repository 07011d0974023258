package export

import "github.com/seqtools/edl-agent/internal/timeline"

type curveKey struct {
	element  string
	property timeline.Property
}

// curveIndex resolves (element, property) pairs to curves. It is built
// once per export pass. The host editor can hold duplicate curves for
// the same pair; fade detection has always resolved duplicates to the
// last curve in collection order while volume resolution takes the
// first, and both behaviors are kept as-is.
type curveIndex struct {
	first map[curveKey]*timeline.Curve
	last  map[curveKey]*timeline.Curve
}

func indexCurves(an *timeline.Animation) *curveIndex {
	if an == nil || len(an.Curves) == 0 {
		return nil
	}
	idx := &curveIndex{
		first: make(map[curveKey]*timeline.Curve, len(an.Curves)),
		last:  make(map[curveKey]*timeline.Curve, len(an.Curves)),
	}
	for i := range an.Curves {
		c := &an.Curves[i]
		key := curveKey{element: c.Element, property: c.Property}
		if _, ok := idx.first[key]; !ok {
			idx.first[key] = c
		}
		idx.last[key] = c
	}
	return idx
}
