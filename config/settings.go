package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// TimeFilter limits ranked post listings to a period
type TimeFilter string

const (
	TimeHour  TimeFilter = "hour"
	TimeDay   TimeFilter = "day"
	TimeWeek  TimeFilter = "week"
	TimeMonth TimeFilter = "month"
	TimeYear  TimeFilter = "year"
	TimeAll   TimeFilter = "all"
)

// ParseTimeFilter validates a time filter name
func ParseTimeFilter(s string) (TimeFilter, error) {
	switch tf := TimeFilter(strings.ToLower(strings.TrimSpace(s))); tf {
	case TimeHour, TimeDay, TimeWeek, TimeMonth, TimeYear, TimeAll:
		return tf, nil
	}
	return "", fmt.Errorf("invalid time filter %q (want hour, day, week, month, year or all)", s)
}

// Settings is the full runtime configuration. It is loaded once at startup and
// passed to each component explicitly.
type Settings struct {
	// Text source
	UseCustomText bool
	SingleLink    bool
	Subreddit     string
	Limit         int
	TimeFilter    TimeFilter
	PostLink      string
	CustomTitle   string
	CustomBody    string
	UserAgent     string

	// Composition
	ForceQuestionMark        bool
	UseCustomThumbnailImages bool

	// Storage
	AssetsPath      string
	ResultsPath     string
	BackgroundVideo string
	TitleFontFile   string

	// VerticalOutput center-crops and scales renders to VideoWidth x VideoHeight
	VerticalOutput bool

	// Speech synthesis (AWS Polly)
	AWSRegion    string
	AWSProfile   string
	PollyVoiceID string

	// Transcription
	OpenAIAPIKey       string
	OpenAIOrgID        string
	TranscriptionModel string

	// TimingsFile holds precomputed word timings and replaces the API call
	TimingsFile string

	// Optional S3 copy of results. Disabled when S3Bucket is empty.
	S3Bucket       string
	S3Prefix       string
	S3UsePathStyle bool

	// Optional Redis history of produced posts. Disabled when RedisAddr is empty.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Kafka consumer mode
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string

	// Optional YouTube upload. Disabled when the credentials file is empty.
	YouTubeCredentialsFile string
}

// TemplateDir returns the directory holding thumbnail template images
func (s Settings) TemplateDir() string {
	return s.AssetsPath
}

// Load reads a .env file if present and builds Settings from the environment
func Load() (Settings, error) {
	// Missing .env is fine; real environment variables still apply
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds Settings from a lookup function
func FromEnv(getenv func(string) string) (Settings, error) {
	env := envReader{get: getenv}

	s := Settings{
		UseCustomText: env.bool("USE_CUSTOM_TEXT", false),
		SingleLink:    env.bool("SINGLE_LINK", false),
		Subreddit:     env.str("SUBREDDIT", "AmItheAsshole"),
		Limit:         env.int("LIMIT", 5),
		PostLink:      env.str("POST_LINK", ""),
		CustomTitle:   env.str("CUSTOM_TITLE", ""),
		CustomBody:    env.str("CUSTOM_BODY", ""),
		UserAgent:     env.str("REDDIT_USER_AGENT", "storyreel/1.0"),

		ForceQuestionMark:        env.bool("FORCE_QUESTION_MARK", false),
		UseCustomThumbnailImages: env.bool("USE_CUSTOM_THUMBNAIL_IMAGES", false),

		AssetsPath:  env.str("ASSETS_PATH", DefaultAssetsPath),
		ResultsPath: env.str("RESULTS_PATH", DefaultResultsPath),

		VerticalOutput: env.bool("VERTICAL_OUTPUT", false),

		AWSRegion:    env.str("AWS_REGION", "us-east-1"),
		AWSProfile:   env.str("AWS_PROFILE", ""),
		PollyVoiceID: env.str("POLLY_VOICE_ID", "Matthew"),

		OpenAIAPIKey:       env.str("OPENAI_API_KEY", ""),
		OpenAIOrgID:        env.str("OPENAI_ORG_ID", ""),
		TranscriptionModel: env.str("TRANSCRIPTION_MODEL", "whisper-1"),
		TimingsFile:        env.str("TIMINGS_FILE", ""),

		S3Bucket:       env.str("S3_BUCKET", ""),
		S3Prefix:       env.str("S3_PREFIX", ""),
		S3UsePathStyle: env.bool("S3_USE_PATH_STYLE", false),

		RedisAddr:     env.str("REDIS_ADDR", ""),
		RedisPassword: env.str("REDIS_PASS", ""),
		RedisDB:       env.int("REDIS_DB", 0),

		KafkaBrokers: env.list("KAFKA_BOOTSTRAP_SERVERS", "localhost:9093"),
		KafkaTopic:   env.str("KAFKA_TOPIC_VIDEO_REQUESTS", "video-requests"),
		KafkaGroupID: env.str("KAFKA_CONSUMER_GROUP_ID", "storyreel-consumer-group"),

		YouTubeCredentialsFile: env.str("YOUTUBE_CREDENTIALS_FILE", ""),
	}

	s.BackgroundVideo = env.str("BACKGROUND_VIDEO", filepath.Join(s.AssetsPath, BackgroundVideoName))
	s.TitleFontFile = env.str("TITLE_FONT_FILE", filepath.Join(s.AssetsPath, TitleFontFileName))

	tf, err := ParseTimeFilter(env.str("TIME_FILTER", string(TimeWeek)))
	if err != nil {
		return Settings{}, err
	}
	s.TimeFilter = tf

	if env.err != nil {
		return Settings{}, env.err
	}
	return s, s.Validate()
}

// Validate checks that the selected text source has what it needs
func (s Settings) Validate() error {
	switch {
	case s.UseCustomText:
		if strings.TrimSpace(s.CustomTitle) == "" {
			return fmt.Errorf("CUSTOM_TITLE is required when USE_CUSTOM_TEXT is set")
		}
	case s.SingleLink:
		if strings.TrimSpace(s.PostLink) == "" {
			return fmt.Errorf("POST_LINK is required when SINGLE_LINK is set")
		}
	default:
		if strings.TrimSpace(s.Subreddit) == "" {
			return fmt.Errorf("SUBREDDIT is required")
		}
		if s.Limit <= 0 {
			return fmt.Errorf("LIMIT must be positive, got %d", s.Limit)
		}
	}
	return nil
}

// envReader collects the first parse error so FromEnv can report it once
type envReader struct {
	get func(string) string
	err error
}

func (e *envReader) str(key, def string) string {
	if v := strings.TrimSpace(e.get(key)); v != "" {
		return v
	}
	return def
}

func (e *envReader) bool(key string, def bool) bool {
	v := strings.TrimSpace(e.get(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(fmt.Errorf("invalid %s %q: %w", key, v, err))
		return def
	}
	return b
}

func (e *envReader) int(key string, def int) int {
	v := strings.TrimSpace(e.get(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(fmt.Errorf("invalid %s %q: %w", key, v, err))
		return def
	}
	return n
}

func (e *envReader) list(key, def string) []string {
	var out []string
	for _, part := range strings.Split(e.str(key, def), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (e *envReader) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}
