package timeline

// Kind identifies what a timeline element contains.
type Kind string

const (
	KindAudio  Kind = "audio"
	KindVideo  Kind = "video"
	KindImage  Kind = "image"
	KindGroup  Kind = "group"
	KindScene  Kind = "scene"
	KindEffect Kind = "effect"
)

// ValidKind reports whether k is one of the known element kinds.
func ValidKind(k Kind) bool {
	switch k {
	case KindAudio, KindVideo, KindImage, KindGroup, KindScene, KindEffect:
		return true
	}
	return false
}

// AudioClip holds the audio-specific fields of an element.
type AudioClip struct {
	Filepath string  `json:"filepath"`
	Volume   float64 `json:"volume"`
	Pan      float64 `json:"pan"`
	Pitch    float64 `json:"pitch"`
}

// VideoClip holds the video-specific fields of an element.
type VideoClip struct {
	Filepath   string  `json:"filepath"`
	BlendAlpha float64 `json:"blend_alpha"`
}

// Element is a single placed clip or container on the timeline.
// FinalStart/FinalEnd are post-trim project-frame positions; FrameStart
// is the raw placement frame. OffsetStart/OffsetEnd are the trim offsets
// into the source media, in frames.
type Element struct {
	Kind        Kind       `json:"kind"`
	Name        string     `json:"name"`
	Channel     int        `json:"channel"`
	FrameStart  int        `json:"frame_start"`
	FinalStart  int        `json:"final_start"`
	FinalEnd    int        `json:"final_end"`
	OffsetStart int        `json:"offset_start"`
	OffsetEnd   int        `json:"offset_end"`
	Mute        bool       `json:"mute,omitempty"`
	Lock        bool       `json:"lock,omitempty"`
	Selected    bool       `json:"selected,omitempty"`
	Audio       *AudioClip `json:"audio,omitempty"`
	Video       *VideoClip `json:"video,omitempty"`
	Children    []*Element `json:"children,omitempty"`
}

// FinalDuration returns the trimmed length of the element in frames.
func (e *Element) FinalDuration() int {
	return e.FinalEnd - e.FinalStart
}

// SourcePath returns the media file backing the element, or "" when the
// element has no media reference (groups, scenes, effects, or a clip
// whose payload is missing).
func (e *Element) SourcePath() string {
	switch e.Kind {
	case KindAudio:
		if e.Audio != nil {
			return e.Audio.Filepath
		}
	case KindVideo:
		if e.Video != nil {
			return e.Video.Filepath
		}
	}
	return ""
}

// BaseVolume returns the static volume field of an audio element, or
// unity gain for everything else.
func (e *Element) BaseVolume() float64 {
	if e.Kind == KindAudio && e.Audio != nil {
		return e.Audio.Volume
	}
	return 1.0
}
