package video

import (
	"fmt"
	"math"
	"strings"

	"storyreel/composition"
)

// Style names used in generated scripts
const (
	titleStyle   = "Title"
	captionStyle = "Caption"
)

var namedColors = map[string]string{
	"white":  "FFFFFF",
	"black":  "000000",
	"red":    "FF0000",
	"green":  "00FF00",
	"blue":   "0000FF",
	"yellow": "FFFF00",
}

// assColor converts a color name or #RRGGBB value to ASS &H00BBGGRR form.
// Unknown colors render white.
func assColor(color string) string {
	rgb, ok := namedColors[strings.ToLower(color)]
	if !ok {
		hex := strings.TrimPrefix(color, "#")
		if len(hex) == 6 {
			rgb = strings.ToUpper(hex)
		} else {
			rgb = namedColors["white"]
		}
	}
	return fmt.Sprintf("&H00%s%s%s", rgb[4:6], rgb[2:4], rgb[0:2])
}

// fontFace splits names like "Tahoma-Bold" into family and weight
func fontFace(name string) (family string, bold bool) {
	if base, ok := strings.CutSuffix(name, "-Bold"); ok {
		return base, true
	}
	return name, false
}

func assStyle(name string, s composition.TextStyle) string {
	family, bold := fontFace(s.Font)
	boldFlag := 0
	if bold {
		boldFlag = -1
	}
	return fmt.Sprintf("Style: %s,%s,%d,%s,%s,%s,&H00000000,%d,0,0,0,100,100,0,0,1,%s,0,7,0,0,0,1",
		name, family, s.FontSize,
		assColor(s.Color), assColor(s.Color), assColor(s.StrokeColor),
		boldFlag, trimFloat(s.StrokeWidth))
}

// positionTag places text with an alignment anchor so that centered axes stay
// centered however wide the text renders
func positionTag(p composition.Position, width, height int) string {
	x, y := 0.0, 0.0
	col, row := 0, 0 // 0 left/top, 1 center

	if p.X.Center {
		x, col = float64(width)/2, 1
	} else if p.Relative {
		x = p.X.Value * float64(width)
	} else {
		x = p.X.Value
	}

	if p.Y.Center {
		y, row = float64(height)/2, 1
	} else if p.Relative {
		y = p.Y.Value * float64(height)
	} else {
		y = p.Y.Value
	}

	// numpad layout: 7 8 top, 4 5 middle
	align := 7 + col
	if row == 1 {
		align = 4 + col
	}
	return fmt.Sprintf(`\an%d\pos(%s,%s)`, align, trimFloat(x), trimFloat(y))
}

func escapeASSText(text string) string {
	text = strings.NewReplacer("{", "(", "}", ")", "\r\n", `\N`, "\n", `\N`).Replace(text)
	return text
}

// BuildASS renders the text overlays of plan as an ASS subtitle script for a
// width x height frame. Times are relative to the start of the clip window.
func BuildASS(plan *composition.CompositionPlan, width, height int) string {
	var b strings.Builder

	fmt.Fprintln(&b, "[Script Info]")
	fmt.Fprintf(&b, "Title: %s\n", escapeASSText(plan.BaseName))
	fmt.Fprintln(&b, "ScriptType: v4.00+")
	fmt.Fprintf(&b, "PlayResX: %d\n", width)
	fmt.Fprintf(&b, "PlayResY: %d\n", height)
	fmt.Fprintln(&b, "WrapStyle: 2")
	fmt.Fprintln(&b)

	titles := plan.Overlays(composition.OverlayTitle)
	captions := plan.Overlays(composition.OverlaySubtitle)

	fmt.Fprintln(&b, "[V4+ Styles]")
	fmt.Fprintln(&b, "Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding")
	if len(titles) > 0 {
		fmt.Fprintln(&b, assStyle(titleStyle, titles[0].Style))
	}
	if len(captions) > 0 {
		fmt.Fprintln(&b, assStyle(captionStyle, captions[0].Style))
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "[Events]")
	fmt.Fprintln(&b, "Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text")

	for _, o := range titles {
		tags := positionTag(o.Position, width, height)
		if o.FadeOut > 0 {
			tags += fmt.Sprintf(`\fad(0,%d)`, int(math.Round(o.FadeOut*1000)))
		}
		fmt.Fprintf(&b, "Dialogue: 1,%s,%s,%s,,0,0,0,,{%s}%s\n",
			formatASSTimestamp(o.StartOffset), formatASSTimestamp(o.End()),
			titleStyle, tags, escapeASSText(o.Text))
	}

	for _, o := range captions {
		fmt.Fprintf(&b, "Dialogue: 2,%s,%s,%s,,0,0,0,,{%s}%s\n",
			formatASSTimestamp(o.StartOffset), formatASSTimestamp(o.End()),
			captionStyle, positionTag(o.Position, width, height), escapeASSText(o.Text))
	}

	return b.String()
}

// formatASSTimestamp converts seconds to ASS timestamp format (h:mm:ss.cc)
func formatASSTimestamp(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int64(math.Round(seconds * 100))
	centisecs := total % 100
	secs := (total / 100) % 60
	minutes := (total / 6000) % 60
	hours := total / 360000

	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, secs, centisecs)
}

func trimFloat(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
