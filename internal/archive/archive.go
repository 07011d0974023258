// Package archive saves and restores complete timeline snapshots as an
// XML document. Unlike the two EDL exports this format is lossless:
// markers, nested groups and animation curves all survive a round trip.
package archive

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/seqtools/edl-agent/internal/timeline"
)

type document struct {
	XMLName      xml.Name      `xml:"timeline"`
	Name         string        `xml:"name,attr"`
	FrameStart   int           `xml:"frame_start,attr"`
	FrameEnd     int           `xml:"frame_end,attr"`
	FPS          int           `xml:"fps,attr"`
	FPSBase      float64       `xml:"fps_base,attr"`
	ResolutionX  int           `xml:"resolution_x,attr,omitempty"`
	ResolutionY  int           `xml:"resolution_y,attr,omitempty"`
	PixelAspectX float64       `xml:"pixel_aspect_x,attr,omitempty"`
	PixelAspectY float64       `xml:"pixel_aspect_y,attr,omitempty"`
	SampleRate   int           `xml:"sample_rate,attr"`
	Markers      []markerNode  `xml:"markers>marker"`
	Elements     []elementNode `xml:"elements>element"`
	Curves       []curveNode   `xml:"animation>curve"`
}

type markerNode struct {
	Name  string `xml:"name,attr"`
	Frame int    `xml:"frame,attr"`
}

type elementNode struct {
	Kind        string        `xml:"kind,attr"`
	Name        string        `xml:"name,attr"`
	Channel     int           `xml:"channel,attr"`
	FrameStart  int           `xml:"frame_start,attr"`
	FinalStart  int           `xml:"final_start,attr"`
	FinalEnd    int           `xml:"final_end,attr"`
	OffsetStart int           `xml:"offset_start,attr,omitempty"`
	OffsetEnd   int           `xml:"offset_end,attr,omitempty"`
	Mute        bool          `xml:"mute,attr,omitempty"`
	Lock        bool          `xml:"lock,attr,omitempty"`
	Selected    bool          `xml:"selected,attr,omitempty"`
	Audio       *audioNode    `xml:"audio,omitempty"`
	Video       *videoNode    `xml:"video,omitempty"`
	Children    []elementNode `xml:"children>element,omitempty"`
}

type audioNode struct {
	Filepath string  `xml:"filepath,attr"`
	Volume   float64 `xml:"volume,attr"`
	Pan      float64 `xml:"pan,attr,omitempty"`
	Pitch    float64 `xml:"pitch,attr,omitempty"`
}

type videoNode struct {
	Filepath   string  `xml:"filepath,attr"`
	BlendAlpha float64 `xml:"blend_alpha,attr"`
}

type curveNode struct {
	Element       string         `xml:"element,attr"`
	Property      string         `xml:"property,attr"`
	Extrapolation string         `xml:"extrapolation,attr,omitempty"`
	Keyframes     []keyframeNode `xml:"keyframe"`
}

type keyframeNode struct {
	Frame         float64 `xml:"frame,attr"`
	Value         float64 `xml:"value,attr"`
	Interpolation string  `xml:"interpolation,attr,omitempty"`
}

// Save writes p to w as an indented XML document.
func Save(w io.Writer, p *timeline.Project) error {
	doc := toDocument(p)

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write xml header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode timeline archive: %w", err)
	}
	return nil
}

// Load reads an archive document from r and rebuilds the timeline
// snapshot it describes.
func Load(r io.Reader) (*timeline.Project, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode timeline archive: %w", err)
	}
	return fromDocument(&doc)
}

func toDocument(p *timeline.Project) *document {
	doc := &document{
		Name:         p.Name,
		FrameStart:   p.FrameStart,
		FrameEnd:     p.FrameEnd,
		FPS:          p.FPS,
		FPSBase:      p.FPSBase,
		ResolutionX:  p.ResolutionX,
		ResolutionY:  p.ResolutionY,
		PixelAspectX: p.PixelAspectX,
		PixelAspectY: p.PixelAspectY,
		SampleRate:   int(p.SampleRate),
	}
	for _, m := range p.Markers {
		doc.Markers = append(doc.Markers, markerNode{Name: m.Name, Frame: m.Frame})
	}
	for _, el := range p.Elements {
		doc.Elements = append(doc.Elements, toElementNode(el))
	}
	if p.Animation != nil {
		for _, c := range p.Animation.Curves {
			node := curveNode{
				Element:       c.Element,
				Property:      string(c.Property),
				Extrapolation: c.Extrapolation,
			}
			for _, k := range c.Keyframes {
				node.Keyframes = append(node.Keyframes, keyframeNode(k))
			}
			doc.Curves = append(doc.Curves, node)
		}
	}
	return doc
}

func toElementNode(el *timeline.Element) elementNode {
	node := elementNode{
		Kind:        string(el.Kind),
		Name:        el.Name,
		Channel:     el.Channel,
		FrameStart:  el.FrameStart,
		FinalStart:  el.FinalStart,
		FinalEnd:    el.FinalEnd,
		OffsetStart: el.OffsetStart,
		OffsetEnd:   el.OffsetEnd,
		Mute:        el.Mute,
		Lock:        el.Lock,
		Selected:    el.Selected,
	}
	if el.Audio != nil {
		node.Audio = &audioNode{
			Filepath: el.Audio.Filepath,
			Volume:   el.Audio.Volume,
			Pan:      el.Audio.Pan,
			Pitch:    el.Audio.Pitch,
		}
	}
	if el.Video != nil {
		node.Video = &videoNode{
			Filepath:   el.Video.Filepath,
			BlendAlpha: el.Video.BlendAlpha,
		}
	}
	for _, child := range el.Children {
		node.Children = append(node.Children, toElementNode(child))
	}
	return node
}

func fromDocument(doc *document) (*timeline.Project, error) {
	p := &timeline.Project{
		Name:         doc.Name,
		FrameStart:   doc.FrameStart,
		FrameEnd:     doc.FrameEnd,
		FPS:          doc.FPS,
		FPSBase:      doc.FPSBase,
		ResolutionX:  doc.ResolutionX,
		ResolutionY:  doc.ResolutionY,
		PixelAspectX: doc.PixelAspectX,
		PixelAspectY: doc.PixelAspectY,
		SampleRate:   timeline.SampleRate(doc.SampleRate),
	}
	for _, m := range doc.Markers {
		p.Markers = append(p.Markers, timeline.Marker{Name: m.Name, Frame: m.Frame})
	}
	for i := range doc.Elements {
		el, err := fromElementNode(&doc.Elements[i])
		if err != nil {
			return nil, err
		}
		p.Elements = append(p.Elements, el)
	}
	if len(doc.Curves) > 0 {
		an := &timeline.Animation{}
		for _, c := range doc.Curves {
			curve := timeline.Curve{
				Element:       c.Element,
				Property:      timeline.Property(c.Property),
				Extrapolation: c.Extrapolation,
			}
			for _, k := range c.Keyframes {
				curve.Keyframes = append(curve.Keyframes, timeline.Keyframe(k))
			}
			an.Curves = append(an.Curves, curve)
		}
		p.Animation = an
	}
	return p, nil
}

func fromElementNode(node *elementNode) (*timeline.Element, error) {
	kind := timeline.Kind(node.Kind)
	if !timeline.ValidKind(kind) {
		return nil, fmt.Errorf("element %q: unknown kind %q", node.Name, node.Kind)
	}
	el := &timeline.Element{
		Kind:        kind,
		Name:        node.Name,
		Channel:     node.Channel,
		FrameStart:  node.FrameStart,
		FinalStart:  node.FinalStart,
		FinalEnd:    node.FinalEnd,
		OffsetStart: node.OffsetStart,
		OffsetEnd:   node.OffsetEnd,
		Mute:        node.Mute,
		Lock:        node.Lock,
		Selected:    node.Selected,
	}
	if node.Audio != nil {
		el.Audio = &timeline.AudioClip{
			Filepath: node.Audio.Filepath,
			Volume:   node.Audio.Volume,
			Pan:      node.Audio.Pan,
			Pitch:    node.Audio.Pitch,
		}
	}
	if node.Video != nil {
		el.Video = &timeline.VideoClip{
			Filepath:   node.Video.Filepath,
			BlendAlpha: node.Video.BlendAlpha,
		}
	}
	for i := range node.Children {
		child, err := fromElementNode(&node.Children[i])
		if err != nil {
			return nil, err
		}
		el.Children = append(el.Children, child)
	}
	return el, nil
}
