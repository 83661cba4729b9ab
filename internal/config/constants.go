// Package config provides centralized configuration and constants for the video-translator application.
package config

import "time"

// Progress stage boundaries (0-100%)
const (
	ProgressDownloadStart   = 0
	ProgressDownloadEnd     = 10
	ProgressProbeStart      = 10
	ProgressProbeEnd        = 12
	ProgressExtractStart    = 12
	ProgressExtractEnd      = 20
	ProgressTranscribeStart = 20
	ProgressTranscribeEnd   = 45
	ProgressTranslateStart  = 45
	ProgressTranslateEnd    = 60
	ProgressSynthesizeStart = 60
	ProgressSynthesizeEnd   = 80
	ProgressAdjustStart     = 80
	ProgressAdjustEnd       = 88
	ProgressMuxStart        = 88
	ProgressMuxEnd          = 100
)

// Tempo scaling bounds for the atempo filter.
// A single pass is reliable in [0.5, 2.0]; two chained passes extend the
// usable range to [0.25, 4.0]. Factors beyond that are clipped and the
// residual duration mismatch is logged as a warning.
const (
	TempoSinglePassMin = 0.5
	TempoSinglePassMax = 2.0
	TempoChainMin      = 0.25
	TempoChainMax      = 4.0
)

// Audio settings
const (
	AudioSampleRate16k     = 16000 // Whisper requirement
	AudioDurationTolerance = 50 * time.Millisecond
	MixOutputBitrate       = "192k"
)

// OpenAI Whisper API upload limit
const MaxTranscriptionUploadSize = 25 * 1024 * 1024

// Retry settings
const (
	DefaultMaxRetries     = 3
	DefaultRetryDelayBase = time.Second
)

// HTTP client settings
const (
	HTTPTimeout             = 2 * time.Minute
	HTTPMaxIdleConns        = 10
	HTTPMaxIdleConnsPerHost = 10
	HTTPIdleConnTimeout     = 90 * time.Second
)

// Exec command timeouts (for os/exec calls)
const (
	ExecTimeoutProbe  = 30 * time.Second
	ExecTimeoutFFmpeg = 10 * time.Minute
)

// API models
const (
	TranscriptionModel = "whisper-1"
	TranslationModel   = "gpt-4o"
	SpeechModel        = "tts-1"
)

// Temperature for translation calls
const TranslationTemperature = 0.3

// Defaults
const (
	DefaultVoice      = "alloy"
	DefaultSourceLang = "en"
	DefaultTargetLang = "hi"
)

// Audio mixing defaults
const (
	DefaultBackgroundVolume = 0.3
	DefaultSpeechVolume     = 1.0
)
