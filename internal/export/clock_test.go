package export

import (
	"math"
	"testing"

	"github.com/seqtools/edl-agent/internal/timeline"
)

func TestClock_Milliseconds(t *testing.T) {
	tests := []struct {
		name    string
		fps     int
		fpsBase float64
		frame   float64
		want    float64
	}{
		{name: "24fps one second", fps: 24, fpsBase: 1, frame: 24, want: 1000},
		{name: "24fps half second", fps: 24, fpsBase: 1, frame: 12, want: 500},
		{name: "zero", fps: 30, fpsBase: 1, frame: 0, want: 0},
		{name: "ntsc base", fps: 30, fpsBase: 1.001, frame: 30, want: 1001},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := &timeline.Project{FPS: tc.fps, FPSBase: tc.fpsBase}
			clock := NewClock(p)
			got := clock.Milliseconds(tc.frame)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("Milliseconds(%v) = %v, want %v", tc.frame, got, tc.want)
			}
		})
	}
}

func TestClock_FramesInvertsMilliseconds(t *testing.T) {
	clock := Clock{Rate: 30.0 / 1.001, SampleRate: 48000}
	for _, frame := range []float64{0, 1, 17, 240, 86400} {
		ms := clock.Milliseconds(frame)
		got := clock.Frames(ms)
		if math.Abs(got-frame) > 1e-6 {
			t.Fatalf("Frames(Milliseconds(%v)) = %v, want %v", frame, got, frame)
		}
	}
}

func TestClock_Samples(t *testing.T) {
	tests := []struct {
		name       string
		rate       float64
		sampleRate int
		frame      float64
		want       int
	}{
		{name: "one second at 48k", rate: 24, sampleRate: 48000, frame: 24, want: 48000},
		{name: "single frame at 44.1k", rate: 30, sampleRate: 44100, frame: 1, want: 1470},
		{name: "rounds to nearest", rate: 24, sampleRate: 44100, frame: 1, want: 1838},
		{name: "zero", rate: 24, sampleRate: 48000, frame: 0, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clock := Clock{Rate: tc.rate, SampleRate: tc.sampleRate}
			got := clock.Samples(tc.frame)
			if got != tc.want {
				t.Fatalf("Samples(%v) = %d, want %d", tc.frame, got, tc.want)
			}
		})
	}
}

func TestNewClock_SampleRateFallback(t *testing.T) {
	p := &timeline.Project{FPS: 24, FPSBase: 1}
	clock := NewClock(p)
	if clock.SampleRate != 44100 {
		t.Fatalf("SampleRate = %d, want fallback 44100", clock.SampleRate)
	}
}
