// Package download acquires remote videos for the pipeline.
package download

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	youtube "github.com/kkdai/youtube/v2"

	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/errs"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/logger"
)

var youtubePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?youtube\.com/watch\?v=[\w-]+`),
	regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?youtu\.be/[\w-]+`),
	regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?youtube\.com/embed/[\w-]+`),
	regexp.MustCompile(`(?i)^(?:https?://)?(?:m\.)?youtube\.com/watch\?v=[\w-]+`),
	regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?youtube\.com/shorts/[\w-]+`),
}

// IsYouTubeURL reports whether the input looks like a supported YouTube URL
// rather than a local file path.
func IsYouTubeURL(input string) bool {
	for _, p := range youtubePatterns {
		if p.MatchString(input) {
			return true
		}
	}
	return false
}

var unsafeFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeTitle makes a video title safe to use as a filename.
func SanitizeTitle(title string) string {
	safe := unsafeFilenameChars.ReplaceAllString(title, "_")
	safe = strings.TrimSpace(safe)
	if safe == "" {
		safe = "video"
	}
	return safe
}

// YouTubeDownloader fetches videos with the native YouTube client.
type YouTubeDownloader struct {
	client    youtube.Client
	outputDir string
}

// NewYouTubeDownloader creates a downloader that writes into outputDir.
// An empty outputDir falls back to the system temp directory.
func NewYouTubeDownloader(outputDir string) *YouTubeDownloader {
	if outputDir == "" {
		outputDir = os.TempDir()
	}
	return &YouTubeDownloader{outputDir: outputDir}
}

// Download fetches the video and returns the local file path.
func (d *YouTubeDownloader) Download(ctx context.Context, url string) (string, error) {
	logger.Info("Download: fetching %s", url)

	video, err := d.client.GetVideoContext(ctx, url)
	if err != nil {
		return "", &errs.DownloadError{URL: url, Err: err}
	}

	format, err := pickFormat(video)
	if err != nil {
		return "", &errs.DownloadError{URL: url, Err: err}
	}

	stream, _, err := d.client.GetStreamContext(ctx, video, format)
	if err != nil {
		return "", &errs.DownloadError{URL: url, Err: err}
	}
	defer stream.Close()

	if err := os.MkdirAll(d.outputDir, 0755); err != nil {
		return "", &errs.DownloadError{URL: url, Err: err}
	}

	outputPath := filepath.Join(d.outputDir, SanitizeTitle(video.Title)+".mp4")
	out, err := os.Create(outputPath)
	if err != nil {
		return "", &errs.DownloadError{URL: url, Err: err}
	}
	defer out.Close()

	if _, err := io.Copy(out, stream); err != nil {
		os.Remove(outputPath)
		return "", &errs.DownloadError{URL: url, Err: err}
	}

	logger.Info("Download: saved %s", filepath.Base(outputPath))
	return outputPath, nil
}

// pickFormat selects a muxed format: mp4 with audio preferred, any format
// with audio as fallback.
func pickFormat(video *youtube.Video) (*youtube.Format, error) {
	withAudio := video.Formats.WithAudioChannels()
	if len(withAudio) == 0 {
		return nil, fmt.Errorf("no format with audio channels found")
	}

	for i := range withAudio {
		if strings.Contains(withAudio[i].MimeType, "video/mp4") {
			return &withAudio[i], nil
		}
	}
	return &withAudio[0], nil
}
