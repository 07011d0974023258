package export

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/seqtools/edl-agent/internal/timeline"
)

// vegasHeader is the fixed column header of the tabular format. The
// colon between "CurveOutR" and "PlayPitch" is what the destination tool
// accepts, so it is reproduced verbatim.
const vegasHeader = `"ID";"Track";"StartTime";"Length";"PlayRate";"Locked";"Normalized";"StretchMethod";"Looped";"OnRuler";"MediaType";"FileName";"Stream";"StreamStart";"StreamLength";"FadeTimeIn";"FadeTimeOut";"SustainGain";"CurveIn";"GainIn";"CurveOut";"GainOut";"Layer";"Color";"CurveInR";"CurveOutR":"PlayPitch";"LockPitch"`

// VegasEncoder writes a timeline to the Vegas tabular EDL format: one
// quoted header line, then one semicolon-and-tab delimited row per track
// entry. Times are in milliseconds.
type VegasEncoder struct {
	w      io.Writer
	logger *slog.Logger
}

// NewVegasEncoder returns an encoder writing to w.
func NewVegasEncoder(w io.Writer) *VegasEncoder {
	return &VegasEncoder{w: w}
}

// SetLogger attaches a logger for per-element skip warnings.
func (e *VegasEncoder) SetLogger(logger *slog.Logger) {
	e.logger = logger
}

// Encode renders the exportable subset of p as one complete file.
func (e *VegasEncoder) Encode(p *timeline.Project, opts Options) error {
	clock := NewClock(p)
	idx := indexCurves(p.Animation)
	elements := collectExportable(p, opts, e.logger)
	tracks := BuildTracks(elements)

	if _, err := fmt.Fprintln(e.w, vegasHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := 0
	for trackIndex, track := range tracks {
		for _, entry := range track {
			row++
			el := entry.Element

			mediaType := "VIDEO"
			volume := 1.0
			if el.Kind == timeline.KindAudio {
				mediaType = "AUDIO"
				volume = resolveVolume(idx, el)
			}
			length := clock.Milliseconds(float64(el.FinalDuration()))

			// Paths and names are written raw: the format has no escaping
			// for embedded quotes or semicolons.
			fields := []string{
				strconv.Itoa(row),
				strconv.Itoa(trackIndex),
				num(clock.Milliseconds(float64(el.FinalStart))),
				num(length),
				"1.000000",
				boolUpper(el.Lock),
				"FALSE",
				"0",
				"TRUE",
				"FALSE",
				mediaType,
				`"` + el.SourcePath() + `"`,
				"0",
				num(clock.Milliseconds(float64(el.OffsetStart))),
				num(length),
				num(clock.Milliseconds(detectFade(idx, el, FadeIn))),
				num(clock.Milliseconds(detectFade(idx, el, FadeOut))),
				num(volume),
				"2",
				"0.000000",
				"-2",
				"0.000000",
				"0",
				"-1",
				"0",
				"0",
				"0.000000",
				"FALSE",
			}
			if _, err := fmt.Fprintln(e.w, strings.Join(fields, ";\t")+";"); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}
	return nil
}

// num formats a float the shortest way that round-trips.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func boolUpper(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}
