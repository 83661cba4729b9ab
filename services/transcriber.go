package services

import (
	"fmt"
	"os"
	"path/filepath"

	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/config"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/errs"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/httpx"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/logger"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/text"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/models"
)

// WhisperService transcribes audio with the OpenAI Whisper API.
type WhisperService struct {
	client *openai.Client
	model  string
}

func NewWhisperService(client *openai.Client) *WhisperService {
	return &WhisperService{
		client: client,
		model:  config.TranscriptionModel,
	}
}

// Transcribe sends the audio file to the speech-to-text service and returns
// the transcript text. Files over the API upload cap are rejected before any
// bytes are sent.
func (s *WhisperService) Transcribe(ctx context.Context, track models.AudioTrack, language string) (models.Transcript, error) {
	logger.Info("Whisper: transcribing %s (lang=%s)", filepath.Base(track.Path), language)

	info, err := os.Stat(track.Path)
	if err != nil {
		return models.Transcript{}, &errs.MediaReadError{Path: track.Path, Err: err}
	}
	if info.Size() > config.MaxTranscriptionUploadSize {
		return models.Transcript{}, &errs.InvalidParameterError{
			Param:  "audio file",
			Reason: fmt.Sprintf("%d bytes exceeds the %d byte transcription upload limit", info.Size(), config.MaxTranscriptionUploadSize),
		}
	}

	req := openai.AudioRequest{
		Model:    s.model,
		FilePath: track.Path,
		Language: text.NormalizeCode(language),
	}

	var resp openai.AudioResponse
	err = httpx.Retry(ctx, httpx.DefaultRetryConfig(), isRetryableRemoteError, func(ctx context.Context) error {
		var callErr error
		resp, callErr = s.client.CreateTranscription(ctx, req)
		return callErr
	})
	if err != nil {
		return models.Transcript{}, classifyRemoteError("transcription", err)
	}

	logger.Info("Whisper: transcription complete (%d characters)", len(resp.Text))
	return models.Transcript{Text: resp.Text, Language: language}, nil
}
