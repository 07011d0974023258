package timeline

// SampleRate is the project-wide audio sample rate setting.
type SampleRate int

const (
	Rate44100  SampleRate = 44100
	Rate48000  SampleRate = 48000
	Rate96000  SampleRate = 96000
	Rate192000 SampleRate = 192000
)

// Hz returns the sample rate in hertz. Unknown values fall back to 44100,
// matching the host editor's default.
func (r SampleRate) Hz() int {
	switch r {
	case Rate48000, Rate96000, Rate192000:
		return int(r)
	default:
		return 44100
	}
}

// Marker is a named position on the timeline.
type Marker struct {
	Name  string `json:"name"`
	Frame int    `json:"frame"`
}

// Project is a complete snapshot of a timeline: global settings, the
// element tree and the keyframe animation attached to it. The export
// engine reads it; the import path builds or extends it.
type Project struct {
	Name         string     `json:"name"`
	FrameStart   int        `json:"frame_start"`
	FrameEnd     int        `json:"frame_end"`
	FPS          int        `json:"fps"`
	FPSBase      float64    `json:"fps_base"`
	ResolutionX  int        `json:"resolution_x,omitempty"`
	ResolutionY  int        `json:"resolution_y,omitempty"`
	PixelAspectX float64    `json:"pixel_aspect_x,omitempty"`
	PixelAspectY float64    `json:"pixel_aspect_y,omitempty"`
	SampleRate   SampleRate `json:"sample_rate"`
	Markers      []Marker   `json:"markers,omitempty"`
	Elements     []*Element `json:"elements"`
	Animation    *Animation `json:"animation,omitempty"`
}

// FrameRate returns the effective frames-per-second (fps / fps_base).
func (p *Project) FrameRate() float64 {
	base := p.FPSBase
	if base <= 0 {
		base = 1
	}
	return float64(p.FPS) / base
}

// AllElements returns the fully flattened element list: every top-level
// element in order, with group contents inserted depth-first after their
// container.
func (p *Project) AllElements() []*Element {
	var out []*Element
	var walk func(els []*Element)
	walk = func(els []*Element) {
		for _, el := range els {
			out = append(out, el)
			if len(el.Children) > 0 {
				walk(el.Children)
			}
		}
	}
	walk(p.Elements)
	return out
}
