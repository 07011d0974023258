package export

import (
	"math"

	"github.com/seqtools/edl-agent/internal/timeline"
)

// FadeDirection selects which clip boundary the detector inspects.
type FadeDirection string

const (
	FadeIn  FadeDirection = "in"
	FadeOut FadeDirection = "out"
)

// DetectFade inspects the project's animation curves for a fade at the
// given boundary of el and returns its length in frames, or 0 when no
// fade is found.
//
// A fade is not a first-class concept in the animation model, so this is
// a shape heuristic: the boundary keyframe must sit exactly on the
// element's trimmed start (or end), its value must be zero, and the
// neighboring keyframe must be higher. An authored curve that merely
// starts at zero is indistinguishable from a fade and is reported as
// one; the destination tools depend on that reading, so it stays.
func DetectFade(p *timeline.Project, el *timeline.Element, dir FadeDirection) float64 {
	return detectFade(indexCurves(p.Animation), el, dir)
}

func detectFade(idx *curveIndex, el *timeline.Element, dir FadeDirection) float64 {
	if idx == nil {
		return 0
	}

	prop := timeline.PropBlendAlpha
	if el.Kind == timeline.KindAudio {
		prop = timeline.PropVolume
	}

	// Duplicate curves for the same element/property resolve to the last
	// one in collection order.
	curve := idx.last[curveKey{element: el.Name, property: prop}]
	if curve == nil {
		return 0
	}

	keys := curve.Keyframes
	if len(keys) < 2 {
		// A fade needs at least the zero point and the ramp target.
		return 0
	}

	var low, high timeline.Keyframe
	var boundary int
	if dir == FadeIn {
		low, high = keys[0], keys[1]
		boundary = el.FinalStart
	} else {
		low, high = keys[len(keys)-1], keys[len(keys)-2]
		boundary = el.FinalEnd
	}

	if low.Value == 0 && low.Frame == float64(boundary) && high.Value > low.Value {
		return math.Abs(high.Frame - low.Frame)
	}
	return 0
}
