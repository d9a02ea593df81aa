package publish

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"shortsfactory/config"
	"shortsfactory/types"
)

// Uploader publishes finished videos to YouTube.
type Uploader struct {
	service *youtube.Service
}

func NewUploader(ctx context.Context, serviceAccountFile string) (*Uploader, error) {
	data, err := os.ReadFile(serviceAccountFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account file: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(data, youtube.YoutubeUploadScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account: %w", err)
	}

	service, err := youtube.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create YouTube service: %w", err)
	}
	return &Uploader{service: service}, nil
}

// UploadVideo inserts the video with its metadata and returns the watch URL.
// Transient failures are retried with exponential backoff.
func (u *Uploader) UploadVideo(ctx context.Context, videoPath string, metadata types.VideoMetadata) (string, error) {
	privacy := metadata.PrivacyStatus
	if privacy == "" {
		privacy = config.YouTubePrivacyStatus
	}
	categoryID := metadata.CategoryID
	if categoryID == "" {
		categoryID = config.YouTubeCategoryID
	}

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       metadata.Title,
			Description: metadata.Description,
			Tags:        metadata.Tags,
			CategoryId:  categoryID,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus:           privacy,
			SelfDeclaredMadeForKids: false,
		},
	}

	var videoID string
	err := withRetries(ctx, func() error {
		file, err := os.Open(videoPath)
		if err != nil {
			return fmt.Errorf("failed to open video file: %w", err)
		}
		defer file.Close()

		info, err := file.Stat()
		if err != nil {
			return fmt.Errorf("failed to stat video file: %w", err)
		}
		log.Printf("Uploading %s (%.2f MB)", videoPath, float64(info.Size())/(1024*1024))

		response, err := u.service.Videos.Insert([]string{"snippet", "status"}, video).
			Media(file).
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("failed to upload video: %w", err)
		}
		videoID = response.Id
		return nil
	})
	if err != nil {
		return "", err
	}

	if metadata.ThumbnailPath != "" {
		if err := u.setThumbnail(ctx, videoID, metadata.ThumbnailPath); err != nil {
			// the video is live, a missing thumbnail is not worth failing for
			log.Printf("Warning: thumbnail upload failed: %v", err)
		}
	}

	url := fmt.Sprintf("https://youtube.com/shorts/%s", videoID)
	log.Printf("Uploaded %s", url)
	return url, nil
}

func (u *Uploader) setThumbnail(ctx context.Context, videoID, thumbnailPath string) error {
	return withRetries(ctx, func() error {
		file, err := os.Open(thumbnailPath)
		if err != nil {
			return fmt.Errorf("failed to open thumbnail: %w", err)
		}
		defer file.Close()

		_, err = u.service.Thumbnails.Set(videoID).Media(file).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("failed to set thumbnail: %w", err)
		}
		return nil
	})
}

// withRetries runs fn, retrying rate limits and server errors with
// exponential backoff up to the configured cap.
func withRetries(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt <= config.UploadMaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * 2 * time.Second
			log.Printf("Retrying upload call in %s (attempt %d/%d)", backoff, attempt, config.UploadMaxRetries)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err = fn(); err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
	}
	return err
}

func isRetryable(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == 429 || apiErr.Code >= 500
	}
	return false
}
