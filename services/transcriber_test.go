package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/errs"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/models"
)

func TestTranscribe_MissingFile(t *testing.T) {
	svc := NewWhisperService(NewOpenAIClient("sk-test"))
	track := models.AudioTrack{Path: "/no/such/audio.wav"}

	_, err := svc.Transcribe(context.Background(), track, "en")
	var readErr *errs.MediaReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("Transcribe() error = %v, want MediaReadError", err)
	}
	if readErr.Path != track.Path {
		t.Errorf("Path = %q, want %q", readErr.Path, track.Path)
	}
}

func TestTranscribe_OversizedUpload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	// A sparse file over the 25 MB upload limit.
	if err := f.Truncate(26 << 20); err != nil {
		t.Fatal(err)
	}
	f.Close()

	svc := NewWhisperService(NewOpenAIClient("sk-test"))
	_, err = svc.Transcribe(context.Background(), models.AudioTrack{Path: path}, "en")

	var invalid *errs.InvalidParameterError
	if !errors.As(err, &invalid) {
		t.Fatalf("Transcribe() error = %v, want InvalidParameterError", err)
	}
}
