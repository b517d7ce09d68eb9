package composition

import "strings"

// WordTiming is a single transcribed token with its offsets in the audio track
type WordTiming struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// ClipWindow is the portion of the background video used for one output
type ClipWindow struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Duration returns the length of the window in seconds
func (w ClipWindow) Duration() float64 {
	return w.End - w.Start
}

// WrappedText holds a title broken into lines that fit a pixel width
type WrappedText struct {
	Lines     []string `json:"lines"`
	LineCount int      `json:"line_count"`
}

// String joins the wrapped lines with newlines
func (w WrappedText) String() string {
	return strings.Join(w.Lines, "\n")
}

// Coord is one axis of an overlay position: either centered or a fixed value
type Coord struct {
	Center bool    `json:"center,omitempty"`
	Value  float64 `json:"value,omitempty"`
}

// Centered returns a coordinate centered on its axis
func Centered() Coord { return Coord{Center: true} }

// At returns a coordinate at v (pixels, or a fraction when the position is relative)
func At(v float64) Coord { return Coord{Value: v} }

// Position places an overlay on the frame. When Relative is set, non-centered
// values are fractions of the frame size instead of pixels.
type Position struct {
	X        Coord `json:"x"`
	Y        Coord `json:"y"`
	Relative bool  `json:"relative,omitempty"`
}

// TextStyle describes how an overlay's text is drawn
type TextStyle struct {
	Font        string  `json:"font"`
	FontSize    int     `json:"font_size"`
	Color       string  `json:"color"`
	StrokeColor string  `json:"stroke_color"`
	StrokeWidth float64 `json:"stroke_width"`
	Interline   int     `json:"interline"`
}

// ThumbnailLayout is the title card configuration chosen for a wrapped title
type ThumbnailLayout struct {
	// TemplateID names the background template image; empty when no image is used
	TemplateID    string    `json:"template_id,omitempty"`
	Text          TextStyle `json:"text"`
	Position      Position  `json:"position"`
	ImagePosition Position  `json:"image_position"`
	Duration      float64   `json:"duration"`
	FadeOut       float64   `json:"fade_out"`
}

// OverlayKind identifies what an overlay instruction draws
type OverlayKind string

const (
	OverlayTitle     OverlayKind = "title"
	OverlayThumbnail OverlayKind = "thumbnail"
	OverlaySubtitle  OverlayKind = "subtitle"
)

// OverlayInstruction is a timed, positioned piece of text or image content
type OverlayInstruction struct {
	Kind        OverlayKind `json:"kind"`
	Text        string      `json:"text,omitempty"`
	ImagePath   string      `json:"image_path,omitempty"`
	StartOffset float64     `json:"start_offset"`
	Duration    float64     `json:"duration"`
	Position    Position    `json:"position"`
	Style       TextStyle   `json:"style"`
	FadeOut     float64     `json:"fade_out,omitempty"`
}

// End returns the absolute time the overlay stops being shown
func (o OverlayInstruction) End() float64 {
	return o.StartOffset + o.Duration
}

// LayerKind identifies a layer in the composition stack
type LayerKind string

const (
	LayerBackground LayerKind = "background"
	LayerThumbnail  LayerKind = "thumbnail"
	LayerTitle      LayerKind = "title"
	LayerSubtitle   LayerKind = "subtitle"
)

// BackgroundLayer is the bottom layer: a window of the background video with
// the narration audio laid over it
type BackgroundLayer struct {
	VideoPath     string     `json:"video_path"`
	AudioPath     string     `json:"audio_path"`
	Window        ClipWindow `json:"window"`
	AudioDuration float64    `json:"audio_duration"`
}

// Layer is one entry of the composition stack. Exactly one of Background or
// Overlay is set.
type Layer struct {
	Kind       LayerKind           `json:"kind"`
	Background *BackgroundLayer    `json:"background,omitempty"`
	Overlay    *OverlayInstruction `json:"overlay,omitempty"`
}

// CompositionPlan is the complete, renderer-agnostic description of one video
type CompositionPlan struct {
	Title    string      `json:"title"`
	BaseName string      `json:"base_name"`
	Wrapped  WrappedText `json:"wrapped_title"`
	Window   ClipWindow  `json:"window"`
	Layers   []Layer     `json:"layers"`
}

// Background returns the plan's background layer, or nil if it has none
func (p *CompositionPlan) Background() *BackgroundLayer {
	for _, l := range p.Layers {
		if l.Kind == LayerBackground {
			return l.Background
		}
	}
	return nil
}

// Overlays returns the overlay instructions of the given kind in stack order
func (p *CompositionPlan) Overlays(kind OverlayKind) []OverlayInstruction {
	var out []OverlayInstruction
	for _, l := range p.Layers {
		if l.Overlay != nil && l.Overlay.Kind == kind {
			out = append(out, *l.Overlay)
		}
	}
	return out
}
