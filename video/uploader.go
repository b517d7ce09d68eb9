package video

import (
	"context"
	"fmt"
	"log"
	"os"
	"unicode/utf8"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"storyreel/config"
	"storyreel/types"
)

// maxYouTubeTitle is the longest title YouTube accepts
const maxYouTubeTitle = 100

// Metadata describes an uploaded video
type Metadata struct {
	Title       string
	Description string
	Tags        []string
	CategoryID  string
}

type Uploader struct {
	service *youtube.Service
}

func NewUploader(ctx context.Context, serviceAccountFile string) (*Uploader, error) {
	data, err := os.ReadFile(serviceAccountFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account file: %w", err)
	}

	jwt, err := google.JWTConfigFromJSON(data, youtube.YoutubeUploadScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account: %w", err)
	}

	service, err := youtube.NewService(ctx, option.WithHTTPClient(jwt.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create YouTube service: %w", err)
	}

	return &Uploader{service: service}, nil
}

func (u *Uploader) Upload(ctx context.Context, videoPath string, metadata Metadata) (string, error) {
	file, err := os.Open(videoPath)
	if err != nil {
		return "", fmt.Errorf("failed to open video file: %w", err)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat video file: %w", err)
	}

	log.Printf("📤 Uploading: %s (%.2f MB)", videoPath, float64(fileInfo.Size())/(1024*1024))

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       metadata.Title,
			Description: metadata.Description,
			Tags:        metadata.Tags,
			CategoryId:  metadata.CategoryID,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus:           config.YouTubePrivacyStatus,
			SelfDeclaredMadeForKids: false,
		},
	}

	response, err := u.service.Videos.Insert([]string{"snippet", "status"}, video).
		Media(file).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload video: %w", err)
	}

	log.Printf("✅ Uploaded! https://youtube.com/shorts/%s", response.Id)
	return response.Id, nil
}

// MetadataFor builds upload metadata for a post rendered under title
func MetadataFor(post types.Post, title string) Metadata {
	if utf8.RuneCountInString(title) > maxYouTubeTitle {
		title = string([]rune(title)[:maxYouTubeTitle-3]) + "..."
	}

	description := title
	if post.URL != "" {
		description += fmt.Sprintf("\n\n🔗 Source: %s", post.URL)
	}
	description += "\n\n#reddit #stories #shorts"

	return Metadata{
		Title:       title,
		Description: description,
		Tags:        []string{"reddit", "reddit stories", "storytime", "shorts"},
		CategoryID:  config.YouTubeCategoryID,
	}
}
