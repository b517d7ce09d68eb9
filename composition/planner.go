package composition

import "path/filepath"

// Defaults used when Options leaves a field unset
const (
	DefaultTitleMeasureSize = 60.0
	DefaultMaxTitleWidth    = 1100
	TemplateImageExt        = ".png"
)

// Options controls how titles are prepared and laid out
type Options struct {
	ForceQuestionMark        bool
	UseCustomThumbnailImages bool
	// TitleFont is the font titles are measured with while wrapping
	TitleFont FontRef
	// MaxTitleWidth is the widest a title line may render, in pixels
	MaxTitleWidth int
}

func (o Options) withDefaults() Options {
	if o.TitleFont.Name == "" {
		o.TitleFont.Name = TitleFontName
	}
	if o.TitleFont.Size <= 0 {
		o.TitleFont.Size = DefaultTitleMeasureSize
	}
	if o.MaxTitleWidth <= 0 {
		o.MaxTitleWidth = DefaultMaxTitleWidth
	}
	return o
}

// Assets are the files a plan refers to. The planner never opens them.
type Assets struct {
	BackgroundVideo string `json:"background_video"`
	Audio           string `json:"audio"`
	// TemplateDir holds the Template_N.png thumbnail images
	TemplateDir string `json:"template_dir"`
}

// PlanRequest is everything needed to plan one video
type PlanRequest struct {
	Title         string       `json:"title"`
	Words         []WordTiming `json:"words"`
	AudioDuration float64      `json:"audio_duration"`
	VideoDuration float64      `json:"video_duration"`
	Assets        Assets       `json:"assets"`
}

// Planner assembles composition plans. A Planner carries no per-plan state,
// so one instance can serve many requests, concurrently or not.
type Planner struct {
	opts     Options
	selector *ClipSelector
	measurer Measurer
}

// NewPlanner creates a planner using rng for clip selection and m for text measurement
func NewPlanner(opts Options, rng RandomSource, m Measurer) *Planner {
	return &Planner{
		opts:     opts.withDefaults(),
		selector: NewClipSelector(rng),
		measurer: m,
	}
}

// Plan builds the layer stack for one video:
// background window with narration, optional thumbnail image, title card, then
// one caption per word.
func (p *Planner) Plan(req PlanRequest) (*CompositionPlan, error) {
	window, err := p.selector.Select(req.VideoDuration, req.AudioDuration)
	if err != nil {
		return nil, err
	}

	title := NormalizeTitle(req.Title, p.opts.ForceQuestionMark)

	wrapped, err := Wrap(title, p.opts.TitleFont, p.opts.MaxTitleWidth, p.measurer)
	if err != nil {
		return nil, err
	}
	layout := ChooseLayout(wrapped.LineCount, p.opts.UseCustomThumbnailImages)

	captions := BuildTimeline(req.Words)
	layers := make([]Layer, 0, len(captions)+3)

	layers = append(layers, Layer{
		Kind: LayerBackground,
		Background: &BackgroundLayer{
			VideoPath:     req.Assets.BackgroundVideo,
			AudioPath:     req.Assets.Audio,
			Window:        window,
			AudioDuration: req.AudioDuration,
		},
	})

	// The image goes under the title text so the text stays readable
	if layout.TemplateID != "" {
		layers = append(layers, Layer{
			Kind: LayerThumbnail,
			Overlay: &OverlayInstruction{
				Kind:      OverlayThumbnail,
				ImagePath: filepath.Join(req.Assets.TemplateDir, layout.TemplateID+TemplateImageExt),
				Duration:  layout.Duration,
				Position:  layout.ImagePosition,
				FadeOut:   layout.FadeOut,
			},
		})
	}

	layers = append(layers, Layer{
		Kind: LayerTitle,
		Overlay: &OverlayInstruction{
			Kind:     OverlayTitle,
			Text:     wrapped.String(),
			Duration: layout.Duration,
			Position: layout.Position,
			Style:    layout.Text,
			FadeOut:  layout.FadeOut,
		},
	})

	for i := range captions {
		layers = append(layers, Layer{Kind: LayerSubtitle, Overlay: &captions[i]})
	}

	return &CompositionPlan{
		Title:    title,
		BaseName: OutputBaseName(title),
		Wrapped:  wrapped,
		Window:   window,
		Layers:   layers,
	}, nil
}
