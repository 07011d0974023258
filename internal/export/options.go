// Package export translates a timeline snapshot into the two DAW
// interchange formats: the Vegas tabular text format and the Samplitude
// section-based EDL format. Both exports are lossy: timing, volume and
// boundary fades survive, effects and animation curves do not.
package export

import (
	"fmt"
	"strings"
)

// VideoPolicy controls which video elements are exported alongside audio.
type VideoPolicy string

const (
	VideosNone     VideoPolicy = "NONE"
	VideosSelected VideoPolicy = "SELECTED"
	VideosAll      VideoPolicy = "ALL"
)

// ParseVideoPolicy maps a caller-supplied string to a VideoPolicy.
// Empty input means no videos.
func ParseVideoPolicy(s string) (VideoPolicy, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NONE":
		return VideosNone, nil
	case "SELECTED":
		return VideosSelected, nil
	case "ALL":
		return VideosAll, nil
	}
	return VideosNone, fmt.Errorf("unknown video policy %q", s)
}

// Options are the caller-configurable export settings, shared by both
// format encoders.
type Options struct {
	// LimitToRange drops elements that do not overlap the project's
	// configured frame range.
	LimitToRange bool `json:"limit_to_range"`
	// IncludeNested iterates the fully flattened element set, including
	// clips inside group containers.
	IncludeNested bool `json:"include_nested"`
	// Videos selects the video inclusion policy.
	Videos VideoPolicy `json:"videos"`
}
