package timeline

import (
	"math"
	"testing"
)

func TestFrameRate(t *testing.T) {
	tests := []struct {
		name string
		fps  int
		base float64
		want float64
	}{
		{name: "film", fps: 24, base: 1, want: 24},
		{name: "ntsc", fps: 30, base: 1.001, want: 29.97002997002997},
		{name: "zero base falls back to 1", fps: 25, base: 0, want: 25},
		{name: "negative base falls back to 1", fps: 25, base: -2, want: 25},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := &Project{FPS: tc.fps, FPSBase: tc.base}
			if got := p.FrameRate(); math.Abs(got-tc.want) > 1e-12 {
				t.Fatalf("FrameRate() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSampleRateHz(t *testing.T) {
	for _, rate := range []SampleRate{Rate44100, Rate48000, Rate96000, Rate192000} {
		if rate.Hz() != int(rate) {
			t.Errorf("Hz() = %d, want %d", rate.Hz(), int(rate))
		}
	}
	if got := SampleRate(12345).Hz(); got != 44100 {
		t.Errorf("unsupported rate Hz() = %d, want 44100 fallback", got)
	}
}

func TestAllElements_FlattensGroups(t *testing.T) {
	inner := &Element{Kind: KindAudio, Name: "inner", Channel: 1}
	deep := &Element{Kind: KindVideo, Name: "deep", Channel: 1}
	nested := &Element{Kind: KindGroup, Name: "nested", Children: []*Element{deep}}
	group := &Element{Kind: KindGroup, Name: "group", Children: []*Element{inner, nested}}
	top := &Element{Kind: KindAudio, Name: "top", Channel: 2}

	p := &Project{Elements: []*Element{top, group}}

	all := p.AllElements()
	names := make([]string, len(all))
	for i, el := range all {
		names[i] = el.Name
	}

	want := []string{"top", "group", "inner", "nested", "deep"}
	if len(names) != len(want) {
		t.Fatalf("AllElements() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("AllElements() = %v, want %v", names, want)
		}
	}
}

func TestSourcePath(t *testing.T) {
	audio := &Element{Kind: KindAudio, Audio: &AudioClip{Filepath: "/a.wav"}}
	video := &Element{Kind: KindVideo, Video: &VideoClip{Filepath: "/v.mp4"}}
	group := &Element{Kind: KindGroup}
	broken := &Element{Kind: KindAudio}

	if audio.SourcePath() != "/a.wav" || video.SourcePath() != "/v.mp4" {
		t.Fatalf("SourcePath() wrong for media elements")
	}
	if group.SourcePath() != "" || broken.SourcePath() != "" {
		t.Fatalf("SourcePath() should be empty without clip data")
	}
}

func TestFinalDuration(t *testing.T) {
	el := &Element{FinalStart: 10, FinalEnd: 34}
	if got := el.FinalDuration(); got != 24 {
		t.Fatalf("FinalDuration() = %d, want 24", got)
	}
}

func TestValidKind(t *testing.T) {
	for _, k := range []Kind{KindAudio, KindVideo, KindImage, KindGroup, KindScene, KindEffect} {
		if !ValidKind(k) {
			t.Errorf("ValidKind(%q) = false", k)
		}
	}
	if ValidKind("hologram") {
		t.Errorf("ValidKind accepted unknown kind")
	}
}
