package export

import (
	"math"

	"github.com/seqtools/edl-agent/internal/timeline"
)

// Clock converts project frame positions to the time units the two
// output formats need. Rate is the effective frames per second
// (fps / fps_base), SampleRate the project audio rate in hertz.
type Clock struct {
	Rate       float64
	SampleRate int
}

// NewClock builds a Clock from the project's settings.
func NewClock(p *timeline.Project) Clock {
	return Clock{Rate: p.FrameRate(), SampleRate: p.SampleRate.Hz()}
}

// Seconds converts a frame count to seconds.
func (c Clock) Seconds(frame float64) float64 {
	return frame / c.Rate
}

// Milliseconds converts a frame count to milliseconds.
func (c Clock) Milliseconds(frame float64) float64 {
	return 1000 * c.Seconds(frame)
}

// Samples converts a frame count to a rounded audio sample count.
func (c Clock) Samples(frame float64) int {
	return int(math.Round(float64(c.SampleRate) * c.Seconds(frame)))
}

// Frames converts milliseconds back to a frame count.
func (c Clock) Frames(ms float64) float64 {
	return ms * c.Rate / 1000
}
