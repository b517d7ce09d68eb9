package config

import "time"

// Video Processing Constants
const (
	// MaxConcurrentVideos limits the number of posts rendered simultaneously
	MaxConcurrentVideos = 2

	// RenderTimeout bounds a single ffmpeg render
	RenderTimeout = 20 * time.Minute

	// CollaboratorTimeout bounds each call to a remote service (feed, TTS, transcription, upload)
	CollaboratorTimeout = 2 * time.Minute
)

// Video Output Constants
const (
	// VideoWidth and VideoHeight are the vertical output size used when VERTICAL_OUTPUT is set
	VideoWidth  = 1080
	VideoHeight = 1920

	// VideoCodec is the video encoding codec
	VideoCodec = "libx264"

	// AudioCodec is the audio encoding codec
	AudioCodec = "aac"

	// AudioBitrate is the audio quality bitrate
	AudioBitrate = "192k"

	// VideoPreset is the ffmpeg encoding speed preset
	VideoPreset = "fast"

	// OutputExt is the container extension of rendered videos
	OutputExt = ".mp4"
)

// Title Constants
const (
	// TitleFontSize is the point size titles are measured at while wrapping
	TitleFontSize = 60.0

	// MaxTitleWidth is the widest a title line may render, in pixels
	MaxTitleWidth = 1100
)

// Text Acquisition Constants
const (
	// MaxBodyLength skips posts whose body would not fit in one TTS request
	MaxBodyLength = 2950

	// MaxSpeechChars is the most text sent to the speech synthesizer
	MaxSpeechChars = 2998
)

// Directory Constants
const (
	// DefaultAssetsPath holds background.mp4, fonts and thumbnail templates
	DefaultAssetsPath = "assets"

	// DefaultResultsPath is the directory for generated videos
	DefaultResultsPath = "results"

	// BackgroundVideoName is the background video file inside the assets directory
	BackgroundVideoName = "background.mp4"

	// TitleFontFileName is the TrueType font titles are measured with
	TitleFontFileName = "Reddit.ttf"
)

// YouTube Constants
const (
	// YouTubeCategoryID for Entertainment
	YouTubeCategoryID = "24"

	// YouTubePrivacyStatus sets video visibility
	YouTubePrivacyStatus = "private"
)
