package models

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/config"
)

type JobStatus string

const (
	StatusPending      JobStatus = "pending"
	StatusDownloading  JobStatus = "downloading"
	StatusProbing      JobStatus = "probing"
	StatusExtracting   JobStatus = "extracting"
	StatusTranscribing JobStatus = "transcribing"
	StatusTranslating  JobStatus = "translating"
	StatusSynthesizing JobStatus = "synthesizing"
	StatusAdjusting    JobStatus = "adjusting"
	StatusMuxing       JobStatus = "muxing"
	StatusCompleted    JobStatus = "completed"
	StatusFailed       JobStatus = "failed"
)

// TranslationJob tracks one video through the pipeline.
type TranslationJob struct {
	ID           string
	InputSource  string // local path or YouTube URL
	InputPath    string // resolved local path after acquisition
	OutputPath   string
	Status       JobStatus
	Progress     int // 0-100
	CurrentStage string
	Error        error
	CreatedAt    time.Time
	CompletedAt  *time.Time

	// Translation settings
	SourceLang string
	TargetLang string
	Voice      string

	// Mixing settings
	MixBackground    bool
	BackgroundVolume float64
	SpeechVolume     float64

	// Intermediate files (retained with keep-temp)
	AudioPath       string
	TranscriptPath  string
	TranslationPath string
	DubbedAudioPath string
}

func NewTranslationJob(inputSource string) *TranslationJob {
	return &TranslationJob{
		ID:               uuid.New().String(),
		InputSource:      inputSource,
		Status:           StatusPending,
		Progress:         0,
		CreatedAt:        time.Now(),
		SourceLang:       config.DefaultSourceLang,
		TargetLang:       config.DefaultTargetLang,
		Voice:            config.DefaultVoice,
		BackgroundVolume: config.DefaultBackgroundVolume,
		SpeechVolume:     config.DefaultSpeechVolume,
	}
}

// FileName returns a display name for the job's input.
func (j *TranslationJob) FileName() string {
	if j.InputPath != "" {
		return filepath.Base(j.InputPath)
	}
	return j.InputSource
}

func (j *TranslationJob) SetStatus(status JobStatus, stage string, progress int) {
	j.Status = status
	j.CurrentStage = stage
	j.Progress = progress
}

func (j *TranslationJob) Complete(outputPath string) {
	j.Status = StatusCompleted
	j.OutputPath = outputPath
	j.Progress = 100
	now := time.Now()
	j.CompletedAt = &now
}

func (j *TranslationJob) Fail(err error) {
	j.Status = StatusFailed
	j.Error = err
	j.CurrentStage = "Failed"
}

func (j *TranslationJob) StatusText() string {
	switch j.Status {
	case StatusPending:
		return "Ready to translate"
	case StatusDownloading:
		return "Downloading video..."
	case StatusProbing:
		return "Reading media info..."
	case StatusExtracting:
		return "Extracting audio..."
	case StatusTranscribing:
		return "Transcribing..."
	case StatusTranslating:
		return "Translating..."
	case StatusSynthesizing:
		return "Generating speech..."
	case StatusAdjusting:
		return "Matching duration..."
	case StatusMuxing:
		return "Creating video..."
	case StatusCompleted:
		return "Completed!"
	case StatusFailed:
		if j.Error != nil {
			return "Failed: " + j.Error.Error()
		}
		return "Failed"
	default:
		return string(j.Status)
	}
}
