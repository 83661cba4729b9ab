package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	openai "github.com/sashabaranov/go-openai"

	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/config"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/errs"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/httpx"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/logger"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/models"
)

// Voices lists the supported synthesis voices with descriptions.
var Voices = map[string]string{
	"alloy":   "Alloy (Neutral, balanced)",
	"echo":    "Echo (Male, warm)",
	"fable":   "Fable (British, expressive)",
	"onyx":    "Onyx (Male, deep)",
	"nova":    "Nova (Female, friendly)",
	"shimmer": "Shimmer (Female, soft)",
}

// VoiceIDs returns the supported voice identifiers in sorted order.
func VoiceIDs() []string {
	ids := make([]string, 0, len(Voices))
	for id := range Voices {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IsValidVoice reports whether the voice identifier is supported.
func IsValidVoice(voice string) bool {
	_, ok := Voices[voice]
	return ok
}

// SpeechService renders text as speech with the OpenAI TTS API.
type SpeechService struct {
	client *openai.Client
	model  string
}

func NewSpeechService(client *openai.Client) *SpeechService {
	return &SpeechService{
		client: client,
		model:  config.SpeechModel,
	}
}

// Synthesize generates an MP3 file at outputPath from the translated text.
func (s *SpeechService) Synthesize(ctx context.Context, translation models.Translation, voice, outputPath string) error {
	if translation.Text == "" {
		return &errs.InvalidParameterError{Param: "translation", Reason: "must not be empty"}
	}
	if !IsValidVoice(voice) {
		return &errs.InvalidParameterError{
			Param:  "voice",
			Reason: fmt.Sprintf("%q is not one of %v", voice, VoiceIDs()),
		}
	}

	logger.Info("TTS: synthesizing %d characters (voice=%s)", len(translation.Text), voice)

	req := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(s.model),
		Input:          translation.Text,
		Voice:          openai.SpeechVoice(voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	}

	var audio []byte
	err := httpx.Retry(ctx, httpx.DefaultRetryConfig(), isRetryableRemoteError, func(ctx context.Context) error {
		stream, callErr := s.client.CreateSpeech(ctx, req)
		if callErr != nil {
			return callErr
		}
		defer stream.Close()

		audio, callErr = io.ReadAll(stream)
		return callErr
	})
	if err != nil {
		return classifyRemoteError("speech synthesis", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return &errs.MediaWriteError{Path: outputPath, Err: err}
	}
	if err := os.WriteFile(outputPath, audio, 0644); err != nil {
		return &errs.MediaWriteError{Path: outputPath, Err: err}
	}

	logger.Info("TTS: wrote %s (%d bytes)", filepath.Base(outputPath), len(audio))
	return nil
}
