package timeline

// Property names an animatable element property.
type Property string

const (
	PropVolume     Property = "volume"
	PropBlendAlpha Property = "blend_alpha"
)

// Keyframe is one control point on a curve. Frame positions are stored
// as float64 because the host editor allows subframe keys.
type Keyframe struct {
	Frame         float64 `json:"frame"`
	Value         float64 `json:"value"`
	Interpolation string  `json:"interpolation,omitempty"`
}

// Curve is the keyframe sequence driving one property of one element.
// Keyframes are time-ordered: index 0 is the earliest.
type Curve struct {
	Element       string     `json:"element"`
	Property      Property   `json:"property"`
	Extrapolation string     `json:"extrapolation,omitempty"`
	Keyframes     []Keyframe `json:"keyframes"`
}

// Animation is the project-wide ordered collection of curves. The order
// is significant: the host editor can hold several curves for the same
// element/property pair, and lookups resolve duplicates by position.
type Animation struct {
	Curves []Curve `json:"curves"`
}
