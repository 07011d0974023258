package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seqtools/edl-agent/internal/timeline"
)

func vegasTestProject() *timeline.Project {
	audio := &timeline.Element{
		Kind:        timeline.KindAudio,
		Name:        "Song",
		Channel:     1,
		FinalStart:  24,
		FinalEnd:    48,
		OffsetStart: 12,
		Lock:        true,
		Audio:       &timeline.AudioClip{Filepath: "/media/song.wav", Volume: 0.5},
	}
	video := &timeline.Element{
		Kind:       timeline.KindVideo,
		Name:       "Clip",
		Channel:    2,
		FinalStart: 48,
		FinalEnd:   96,
		Video:      &timeline.VideoClip{Filepath: "/media/clip.mp4", BlendAlpha: 1},
	}
	return &timeline.Project{
		Name:       "My Project",
		FPS:        24,
		FPSBase:    1,
		FrameStart: 1,
		FrameEnd:   250,
		SampleRate: timeline.Rate48000,
		Elements:   []*timeline.Element{audio, video},
	}
}

func TestVegasEncoder_Encode(t *testing.T) {
	var buf bytes.Buffer
	enc := NewVegasEncoder(&buf)
	if err := enc.Encode(vegasTestProject(), Options{Videos: VideosAll}); err != nil {
		t.Fatalf("Encode error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 rows:\n%s", len(lines), buf.String())
	}

	if lines[0] != vegasHeader {
		t.Fatalf("header mismatch:\n got %q\nwant %q", lines[0], vegasHeader)
	}

	wantAudio := "1;\t0;\t1000;\t1000;\t1.000000;\tTRUE;\tFALSE;\t0;\tTRUE;\tFALSE;\tAUDIO;\t\"/media/song.wav\";\t0;\t500;\t1000;\t0;\t0;\t0.5;\t2;\t0.000000;\t-2;\t0.000000;\t0;\t-1;\t0;\t0;\t0.000000;\tFALSE;"
	if lines[1] != wantAudio {
		t.Fatalf("audio row mismatch:\n got %q\nwant %q", lines[1], wantAudio)
	}

	wantVideo := "2;\t1;\t2000;\t2000;\t1.000000;\tFALSE;\tFALSE;\t0;\tTRUE;\tFALSE;\tVIDEO;\t\"/media/clip.mp4\";\t0;\t0;\t2000;\t0;\t0;\t1;\t2;\t0.000000;\t-2;\t0.000000;\t0;\t-1;\t0;\t0;\t0.000000;\tFALSE;"
	if lines[2] != wantVideo {
		t.Fatalf("video row mismatch:\n got %q\nwant %q", lines[2], wantVideo)
	}
}

func TestVegasEncoder_FadesAndSustain(t *testing.T) {
	p := vegasTestProject()
	p.Animation = &timeline.Animation{Curves: []timeline.Curve{
		volumeCurve("Song", kf(24, 0), kf(36, 1), kf(42, 1), kf(48, 0)),
	}}

	var buf bytes.Buffer
	if err := NewVegasEncoder(&buf).Encode(p, Options{}); err != nil {
		t.Fatalf("Encode error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	// 12 fade frames at 24fps = 500ms in, 6 frames = 250ms out; the
	// sustained volume is the post-fade-in level, not the base 0.5.
	want := "1;\t0;\t1000;\t1000;\t1.000000;\tTRUE;\tFALSE;\t0;\tTRUE;\tFALSE;\tAUDIO;\t\"/media/song.wav\";\t0;\t500;\t1000;\t500;\t250;\t1;\t2;\t0.000000;\t-2;\t0.000000;\t0;\t-1;\t0;\t0;\t0.000000;\tFALSE;"
	if lines[1] != want {
		t.Fatalf("row mismatch:\n got %q\nwant %q", lines[1], want)
	}
}

func TestVegasEncoder_PathsAreNotEscaped(t *testing.T) {
	p := vegasTestProject()
	p.Elements[0].Audio.Filepath = `/media/odd;"name.wav`

	var buf bytes.Buffer
	if err := NewVegasEncoder(&buf).Encode(p, Options{}); err != nil {
		t.Fatalf("Encode error = %v", err)
	}
	if !strings.Contains(buf.String(), "\"/media/odd;\"name.wav\"") {
		t.Fatalf("expected raw unescaped path, got:\n%s", buf.String())
	}
}

func TestWriteFile_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	if err := WriteFile(path, FormatVegas, vegasTestProject(), Options{}, nil); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.HasPrefix(string(data), `"ID";`) {
		t.Fatalf("file was not overwritten with EDL content: %q", string(data)[:20])
	}
}

func TestParseFormat(t *testing.T) {
	if _, err := ParseFormat("vegas"); err != nil {
		t.Fatalf("ParseFormat(vegas) error = %v", err)
	}
	if _, err := ParseFormat("samplitude"); err != nil {
		t.Fatalf("ParseFormat(samplitude) error = %v", err)
	}
	if _, err := ParseFormat("cmx3600"); err == nil {
		t.Fatalf("ParseFormat accepted unknown format")
	}
}
