package config

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	s, err := FromEnv(envMap(nil))
	if err != nil {
		t.Fatalf("FromEnv error: %v", err)
	}
	if s.Subreddit != "AmItheAsshole" || s.Limit != 5 || s.TimeFilter != TimeWeek {
		t.Fatalf("unexpected source defaults: %+v", s)
	}
	if s.BackgroundVideo != filepath.Join(DefaultAssetsPath, BackgroundVideoName) {
		t.Fatalf("BackgroundVideo = %q", s.BackgroundVideo)
	}
	if s.TitleFontFile != filepath.Join(DefaultAssetsPath, TitleFontFileName) {
		t.Fatalf("TitleFontFile = %q", s.TitleFontFile)
	}
	if !reflect.DeepEqual(s.KafkaBrokers, []string{"localhost:9093"}) {
		t.Fatalf("KafkaBrokers = %v", s.KafkaBrokers)
	}
	if s.ForceQuestionMark || s.UseCustomThumbnailImages {
		t.Fatalf("composition flags should default off")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	s, err := FromEnv(envMap(map[string]string{
		"USE_CUSTOM_TEXT":             "true",
		"CUSTOM_TITLE":                "Am I wrong",
		"CUSTOM_BODY":                 "Long story.",
		"FORCE_QUESTION_MARK":         "1",
		"USE_CUSTOM_THUMBNAIL_IMAGES": "TRUE",
		"ASSETS_PATH":                 "/data/assets",
		"TIME_FILTER":                 "Month",
		"KAFKA_BOOTSTRAP_SERVERS":     "k1:9092, k2:9092,",
		"OPENAI_ORG_ID":               "org-42",
	}))
	if err != nil {
		t.Fatalf("FromEnv error: %v", err)
	}
	if !s.UseCustomText || s.CustomTitle != "Am I wrong" || !s.ForceQuestionMark || !s.UseCustomThumbnailImages {
		t.Fatalf("overrides not applied: %+v", s)
	}
	if s.TimeFilter != TimeMonth {
		t.Fatalf("TimeFilter = %q", s.TimeFilter)
	}
	if s.BackgroundVideo != filepath.Join("/data/assets", BackgroundVideoName) {
		t.Fatalf("BackgroundVideo = %q", s.BackgroundVideo)
	}
	if !reflect.DeepEqual(s.KafkaBrokers, []string{"k1:9092", "k2:9092"}) {
		t.Fatalf("KafkaBrokers = %v", s.KafkaBrokers)
	}
	if s.OpenAIOrgID != "org-42" {
		t.Fatalf("OpenAIOrgID = %q", s.OpenAIOrgID)
	}
}

func TestFromEnvErrors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"bad bool", map[string]string{"SINGLE_LINK": "maybe"}, "SINGLE_LINK"},
		{"bad int", map[string]string{"LIMIT": "ten"}, "LIMIT"},
		{"bad time filter", map[string]string{"TIME_FILTER": "decade"}, "time filter"},
		{"custom text without title", map[string]string{"USE_CUSTOM_TEXT": "true"}, "CUSTOM_TITLE"},
		{"single link without link", map[string]string{"SINGLE_LINK": "true"}, "POST_LINK"},
		{"zero limit", map[string]string{"LIMIT": "0"}, "LIMIT"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := FromEnv(envMap(c.env))
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Fatalf("FromEnv err = %v; want mention of %q", err, c.want)
			}
		})
	}
}
