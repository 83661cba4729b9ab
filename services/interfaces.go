package services

import (
	"context"

	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/media"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/models"
)

// ProgressCallback reports pipeline progress: the stage name, overall
// percent complete (0-100), and a short human-readable message.
type ProgressCallback func(stage string, percent int, message string)

// Downloader acquires a remote video and returns the local file path.
type Downloader interface {
	Download(ctx context.Context, url string) (string, error)
}

// Transcriber converts an audio track to text in the source language.
type Transcriber interface {
	Transcribe(ctx context.Context, track models.AudioTrack, language string) (models.Transcript, error)
}

// Translator converts a transcript to the target language.
type Translator interface {
	Translate(ctx context.Context, transcript models.Transcript, targetLang string) (models.Translation, error)
}

// Synthesizer renders translated text as speech audio at outputPath.
type Synthesizer interface {
	Synthesize(ctx context.Context, translation models.Translation, voice, outputPath string) error
}

// MediaProcessor covers the external media tool invocations the pipeline
// needs: probing, extraction, tempo matching, and muxing.
type MediaProcessor interface {
	CheckInstalled() error
	Probe(ctx context.Context, path string) (media.ProbeResult, error)
	Duration(ctx context.Context, path string) (float64, error)
	ExtractAudio(ctx context.Context, videoPath, outputPath string) error
	MatchDuration(ctx context.Context, inputPath, outputPath string, targetDuration float64) error
	ReplaceAudio(ctx context.Context, videoPath, audioPath, outputPath string) error
	MixAudio(ctx context.Context, videoPath, audioPath, outputPath string, backgroundVolume, speechVolume float64) error
}
