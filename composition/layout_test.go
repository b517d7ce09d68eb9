package composition

import "testing"

func TestChooseLayoutBuckets(t *testing.T) {
	cases := []struct {
		lines int
		want  string
	}{
		{0, "Template_1"},
		{1, "Template_1"},
		{2, "Template_1"},
		{3, "Template_2"},
		{4, "Template_3"},
		{5, "Template_4"},
		{6, "Template_5"},
		{7, "Template_6"},
		{1000, "Template_6"},
		{-3, "Template_1"},
	}

	for _, c := range cases {
		got := ChooseLayout(c.lines, true)
		if got.TemplateID != c.want {
			t.Fatalf("ChooseLayout(%d, true).TemplateID = %q; want %q", c.lines, got.TemplateID, c.want)
		}
		if got.Text.FontSize != 45 || got.Text.Color != "black" {
			t.Fatalf("ChooseLayout(%d, true) text style = %+v", c.lines, got.Text)
		}
		if got.Duration != TitleCardDuration || got.FadeOut != TitleCardFadeOut {
			t.Fatalf("ChooseLayout(%d, true) timing = %v/%v", c.lines, got.Duration, got.FadeOut)
		}
		if got.Position.Relative {
			t.Fatalf("custom image layout should be absolutely positioned")
		}
	}
}

func TestChooseLayoutWithoutImages(t *testing.T) {
	for _, lines := range []int{0, 1, 3, 7, 1000} {
		got := ChooseLayout(lines, false)
		if got.TemplateID != "" {
			t.Fatalf("ChooseLayout(%d, false) template = %q; want none", lines, got.TemplateID)
		}
		if got.Text.FontSize != 80 || got.Text.Color != "white" || got.Text.StrokeWidth != 6 {
			t.Fatalf("ChooseLayout(%d, false) text style = %+v", lines, got.Text)
		}
		want := Position{X: Centered(), Y: At(0.25), Relative: true}
		if got.Position != want {
			t.Fatalf("ChooseLayout(%d, false) position = %+v; want %+v", lines, got.Position, want)
		}
	}
}
