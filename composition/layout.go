package composition

// Title card timing shared by both layouts
const (
	TitleCardDuration = 6.0
	TitleCardFadeOut  = 1.0
)

// TitleFontName is the font the title card is drawn in
const TitleFontName = "Reddit"

// templateBuckets maps a wrapped line count to the template image sized for it.
// Index 0 covers one and two lines; counts past the end use the last entry.
var templateBuckets = []string{
	"Template_1", // 1-2 lines
	"Template_2", // 3
	"Template_3", // 4
	"Template_4", // 5
	"Template_5", // 6
	"Template_6", // 7+
}

// TemplateFor returns the template image ID for a title of lineCount lines
func TemplateFor(lineCount int) string {
	idx := lineCount - 2
	if idx < 0 {
		idx = 0
	}
	if idx >= len(templateBuckets) {
		idx = len(templateBuckets) - 1
	}
	return templateBuckets[idx]
}

// ChooseLayout returns the title card layout for a title of lineCount lines.
// Without custom images the title is large white text on the video itself;
// with them it is smaller dark text laid over a template image picked by line count.
func ChooseLayout(lineCount int, useCustomImages bool) ThumbnailLayout {
	if !useCustomImages {
		return ThumbnailLayout{
			Text: TextStyle{
				Font:        TitleFontName,
				FontSize:    80,
				Color:       "white",
				StrokeColor: "white",
				StrokeWidth: 6,
				Interline:   -22,
			},
			Position: Position{X: Centered(), Y: At(0.25), Relative: true},
			Duration: TitleCardDuration,
			FadeOut:  TitleCardFadeOut,
		}
	}

	return ThumbnailLayout{
		TemplateID: TemplateFor(lineCount),
		Text: TextStyle{
			Font:        TitleFontName,
			FontSize:    45,
			Color:       "black",
			StrokeColor: "black",
			StrokeWidth: 2.3,
			Interline:   -7,
		},
		Position:      Position{X: At(140), Y: At(485)},
		ImagePosition: Position{X: Centered(), Y: At(320)},
		Duration:      TitleCardDuration,
		FadeOut:       TitleCardFadeOut,
	}
}
