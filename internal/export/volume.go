package export

import (
	"math"

	"github.com/seqtools/edl-agent/internal/timeline"
)

// silenceFloorDB is the decibel floor both formats use for zero or
// near-zero volumes.
const silenceFloorDB = -150.0

// ResolveVolume derives the effective sustained playback volume of an
// audio element from its animation, falling back to the element's static
// volume field. Non-audio elements resolve to unity gain.
func ResolveVolume(p *timeline.Project, el *timeline.Element) float64 {
	return resolveVolume(indexCurves(p.Animation), el)
}

func resolveVolume(idx *curveIndex, el *timeline.Element) float64 {
	base := el.BaseVolume()
	if el.Kind != timeline.KindAudio || idx == nil {
		return base
	}

	// Volume resolution resolves duplicate curves to the first match,
	// unlike fade detection.
	curve := idx.first[curveKey{element: el.Name, property: timeline.PropVolume}]
	if curve == nil {
		return base
	}
	keys := curve.Keyframes
	if len(keys) < 2 {
		return base
	}

	// A fade-in ramp means the sustained level is the post-ramp value,
	// not the average.
	low, high := keys[0], keys[1]
	if low.Value == 0 && low.Frame == float64(el.FinalStart) && high.Value > low.Value {
		return high.Value
	}

	// Otherwise average the keyframe values, skipping a keyframe sitting
	// exactly on the trimmed end: it is presumed to be a fade-out point
	// and would drag the sustained estimate down.
	count := len(keys)
	total := 0.0
	for _, key := range keys {
		if key.Frame == float64(el.FinalEnd) {
			count--
		} else {
			total += key.Value
		}
	}
	if count <= 0 {
		return base
	}
	return total / float64(count)
}

// ToDB converts a linear volume (1.0 = unity gain) to decibels, clamped
// to the -150 silence floor.
func ToDB(volume float64) float64 {
	if volume > 0 {
		db := 20 * math.Log10(volume)
		if db > silenceFloorDB {
			return db
		}
	}
	return silenceFloorDB
}
