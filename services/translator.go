package services

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/config"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/errs"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/httpx"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/logger"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/text"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/models"
)

// TranslatorService translates transcripts with an OpenAI chat model.
type TranslatorService struct {
	client *openai.Client
	model  string
}

func NewTranslatorService(client *openai.Client) *TranslatorService {
	return &TranslatorService{
		client: client,
		model:  config.TranslationModel,
	}
}

func translationPrompt(sourceLang, targetLang string) string {
	return fmt.Sprintf(
		"You are a professional translator. Translate the following %s text to %s. "+
			"Maintain the original meaning, tone, and context. "+
			"Return only the translated text without any additional comments.",
		text.EnglishName(sourceLang), text.EnglishName(targetLang))
}

// Translate sends the whole transcript in one completion, matching the
// plain-text pipeline (no segment batching).
func (s *TranslatorService) Translate(ctx context.Context, transcript models.Transcript, targetLang string) (models.Translation, error) {
	if transcript.Text == "" {
		return models.Translation{}, &errs.InvalidParameterError{Param: "transcript", Reason: "must not be empty"}
	}

	logger.Info("Translator: %s -> %s (%d characters)", transcript.Language, targetLang, len(transcript.Text))

	req := openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: config.TranslationTemperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: translationPrompt(transcript.Language, targetLang),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: transcript.Text,
			},
		},
	}

	var resp openai.ChatCompletionResponse
	err := httpx.Retry(ctx, httpx.DefaultRetryConfig(), isRetryableRemoteError, func(ctx context.Context) error {
		var callErr error
		resp, callErr = s.client.CreateChatCompletion(ctx, req)
		return callErr
	})
	if err != nil {
		return models.Translation{}, classifyRemoteError("translation", err)
	}

	if len(resp.Choices) == 0 {
		return models.Translation{}, &errs.RemoteServiceError{
			Service: "translation",
			Kind:    errs.RemoteGeneric,
			Err:     fmt.Errorf("empty completion response"),
		}
	}

	translated := resp.Choices[0].Message.Content
	logger.Info("Translator: translation complete (%d characters)", len(translated))
	return models.Translation{Text: translated, Language: targetLang}, nil
}
