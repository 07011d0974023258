package export

import (
	"log/slog"

	"github.com/seqtools/edl-agent/internal/timeline"
)

// Collect filters the project's elements down to the exportable set.
// Audio elements always pass; video elements pass per the policy, and a
// video is suppressed when an audio element in the candidate pool
// references the same media file (the audio already represents it).
// All other kinds are skipped. Output preserves encounter order.
//
// The duplicate-media scan runs against the raw iteration pool, not the
// range-filtered one, matching the behavior the destination tools were
// validated against.
func Collect(p *timeline.Project, opts Options) []*timeline.Element {
	var pool []*timeline.Element
	if opts.IncludeNested {
		pool = p.AllElements()
	} else {
		pool = p.Elements
	}

	var out []*timeline.Element
	for _, el := range pool {
		if opts.LimitToRange && !(el.FinalStart <= p.FrameEnd && el.FinalEnd > p.FrameStart) {
			continue
		}
		switch el.Kind {
		case timeline.KindAudio:
			out = append(out, el)
		case timeline.KindVideo:
			if opts.Videos == VideosAll || (opts.Videos == VideosSelected && el.Selected) {
				if !audioCoversFile(pool, el.SourcePath()) {
					out = append(out, el)
				}
			}
		}
	}
	return out
}

func audioCoversFile(pool []*timeline.Element, path string) bool {
	for _, el := range pool {
		if el.Kind == timeline.KindAudio && el.Audio != nil && el.Audio.Filepath == path {
			return true
		}
	}
	return false
}

// collectExportable runs Collect and drops elements without a resolvable
// media path. Missing media is a per-element condition: it is logged and
// the element skipped, never fatal for the batch.
func collectExportable(p *timeline.Project, opts Options, logger *slog.Logger) []*timeline.Element {
	elements := Collect(p, opts)
	kept := elements[:0]
	for _, el := range elements {
		if el.SourcePath() == "" {
			if logger != nil {
				logger.Warn("skipping element without media reference",
					"element", el.Name, "kind", string(el.Kind))
			}
			continue
		}
		kept = append(kept, el)
	}
	return kept
}
