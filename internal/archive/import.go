package archive

import (
	"fmt"
	"strings"

	"github.com/seqtools/edl-agent/internal/timeline"
)

// Mode selects how a loaded archive is applied to a timeline.
type Mode string

const (
	// ModeNew builds a fresh timeline from the archive.
	ModeNew Mode = "new"
	// ModeAppend adds the archive's elements to the existing timeline.
	ModeAppend Mode = "append"
	// ModeReplace drops the existing elements first.
	ModeReplace Mode = "replace"
)

// ParseMode maps a caller-supplied string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return ModeAppend, nil
	case ModeNew, ModeAppend, ModeReplace:
		return Mode(strings.ToLower(s)), nil
	}
	return "", fmt.Errorf("unknown import mode %q", s)
}

// Apply merges the loaded archive src into dst according to mode,
// shifting elements by frameOffset horizontally and channelOffset
// vertically. It returns the resulting timeline and a report of
// per-element problems; individual failures never abort the import.
//
// Project settings and markers always come from the archive (markers
// replace same-frame existing markers). Animation curves are not
// applied: rebuilding host keyframes on import is unimplemented, so the
// archive's animation is dropped here even though Load preserves it.
func Apply(dst *timeline.Project, src *timeline.Project, mode Mode, frameOffset, channelOffset int) (*timeline.Project, []string) {
	var report []string

	result := dst
	switch mode {
	case ModeNew:
		result = &timeline.Project{}
	case ModeReplace:
		if result == nil {
			result = &timeline.Project{}
		}
		result.Elements = nil
	default:
		if result == nil {
			result = &timeline.Project{}
		}
	}

	result.Name = src.Name
	result.FrameStart = src.FrameStart
	result.FrameEnd = src.FrameEnd
	result.FPS = src.FPS
	result.FPSBase = src.FPSBase
	result.ResolutionX = src.ResolutionX
	result.ResolutionY = src.ResolutionY
	result.PixelAspectX = src.PixelAspectX
	result.PixelAspectY = src.PixelAspectY
	result.SampleRate = src.SampleRate

	for _, m := range src.Markers {
		placed := false
		for i := range result.Markers {
			if result.Markers[i].Frame == m.Frame {
				result.Markers[i].Name = m.Name
				placed = true
				break
			}
		}
		if !placed {
			result.Markers = append(result.Markers, m)
		}
	}

	for _, el := range src.Elements {
		added, err := importElement(el, frameOffset, channelOffset, &report)
		if err != nil {
			report = append(report, err.Error())
			continue
		}
		result.Elements = append(result.Elements, added)
	}

	return result, report
}

func importElement(el *timeline.Element, frameOffset, channelOffset int, report *[]string) (*timeline.Element, error) {
	if el.Name == "" {
		return nil, fmt.Errorf("unable to add element without a name")
	}
	if !timeline.ValidKind(el.Kind) {
		return nil, fmt.Errorf("unable to add element %q: unknown kind %q", el.Name, el.Kind)
	}
	switch el.Kind {
	case timeline.KindAudio:
		if el.Audio == nil {
			return nil, fmt.Errorf("unable to add audio element %q: missing clip data", el.Name)
		}
	case timeline.KindVideo:
		if el.Video == nil {
			return nil, fmt.Errorf("unable to add video element %q: missing clip data", el.Name)
		}
	}

	out := *el
	out.FrameStart += frameOffset
	out.FinalStart += frameOffset
	out.FinalEnd += frameOffset
	out.Channel += channelOffset
	if out.Channel < 1 {
		out.Channel = 1
	}
	if el.Audio != nil {
		audio := *el.Audio
		out.Audio = &audio
	}
	if el.Video != nil {
		video := *el.Video
		out.Video = &video
	}

	out.Children = nil
	for _, child := range el.Children {
		added, err := importElement(child, frameOffset, channelOffset, report)
		if err != nil {
			// Groups tolerate missing members; only the child is lost.
			*report = append(*report, err.Error())
			continue
		}
		out.Children = append(out.Children, added)
	}
	return &out, nil
}
