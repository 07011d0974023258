package export

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/seqtools/edl-agent/internal/timeline"
)

const samplitudeFormatVersion = "Samplitude EDL File Format Version 1.5"

// outputChannels is fixed: the timeline model carries no output bus
// configuration, and the destination tool expects stereo.
const outputChannels = 2

// SamplitudeEncoder writes a timeline to the Samplitude section-based
// EDL format: a header, a source table listing every exported media file
// by index, one block per track, and placeholder per-track volume/pan
// sections. Positions are integer sample counts.
type SamplitudeEncoder struct {
	w      io.Writer
	logger *slog.Logger
}

// NewSamplitudeEncoder returns an encoder writing to w.
func NewSamplitudeEncoder(w io.Writer) *SamplitudeEncoder {
	return &SamplitudeEncoder{w: w}
}

// SetLogger attaches a logger for per-element skip warnings.
func (e *SamplitudeEncoder) SetLogger(logger *slog.Logger) {
	e.logger = logger
}

// Encode renders the exportable subset of p as one complete file.
func (e *SamplitudeEncoder) Encode(p *timeline.Project, opts Options) error {
	clock := NewClock(p)
	idx := indexCurves(p.Animation)
	elements := collectExportable(p, opts, e.logger)
	tracks := BuildTracks(elements)

	title := p.Name
	if title == "" {
		title = "Timeline Export"
	}

	var b strings.Builder
	b.WriteString(samplitudeFormatVersion + "\n")
	b.WriteString(`Title: "` + title + `"` + "\n")
	b.WriteString("Sample Rate: " + strconv.Itoa(clock.SampleRate) + "\n")
	b.WriteString("Output Channels: " + strconv.Itoa(outputChannels) + "\n")
	b.WriteString("\n\n")

	b.WriteString("Source Table Entries: " + strconv.Itoa(len(elements)) + "\n")
	for i, el := range elements {
		b.WriteString(fmt.Sprintf("   %d \"%s\"\n", i+1, el.SourcePath()))
	}
	b.WriteString("\n")

	for i, track := range tracks {
		n := i + 1
		b.WriteString(fmt.Sprintf("Track %d: \"Track %d\" Solo: 0 Mute: 0\n", n, n))
		for _, entry := range track {
			b.WriteString(e.entryLine(clock, idx, n, entry))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// The timeline has no per-track volume or pan model, so fixed
	// placeholders keep the sections present for the importer.
	for i := range tracks {
		n := i + 1
		b.WriteString(fmt.Sprintf("Volume for Track %d:\n   0 0.000\n\n", n))
		b.WriteString(fmt.Sprintf("Pan for Track %d:\n   0 1.00000\n\n", n))
	}

	if _, err := io.WriteString(e.w, b.String()); err != nil {
		return fmt.Errorf("write edl: %w", err)
	}
	return nil
}

func (e *SamplitudeEncoder) entryLine(clock Clock, idx *curveIndex, trackNum int, entry Entry) string {
	el := entry.Element

	volume := 1.0
	if el.Kind == timeline.KindAudio {
		volume = resolveVolume(idx, el)
	}

	fields := []string{
		strconv.Itoa(entry.Source),
		strconv.Itoa(trackNum),
		strconv.Itoa(clock.Samples(float64(el.FinalStart))),
		strconv.Itoa(clock.Samples(float64(el.FinalEnd))),
		strconv.Itoa(clock.Samples(float64(el.OffsetStart))),
		strconv.Itoa(clock.Samples(float64(el.OffsetEnd))),
		num(ToDB(volume)),
		boolDigit(el.Mute),
		boolDigit(el.Lock),
		strconv.Itoa(clock.Samples(detectFade(idx, el, FadeIn))),
		"0",
		`"*default"`,
		strconv.Itoa(clock.Samples(detectFade(idx, el, FadeOut))),
		"0",
		`"*default"`,
		`"` + el.Name + `"`,
	}
	return strings.Join(fields, "  ") + "\n"
}

func boolDigit(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
