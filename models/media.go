package models

import "github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/errs"

// MediaAsset describes a probed media file. It is created by the source
// acquirer or the prober and read-only afterwards.
type MediaAsset struct {
	Path     string
	Duration float64 // seconds
	Format   string  // container tag from ffprobe
}

// AudioTrack is a standalone audio file produced by extraction, synthesis,
// or duration matching.
type AudioTrack struct {
	Path     string
	Duration float64 // seconds
}

// Transcript is the speech-to-text output in the source language.
type Transcript struct {
	Text     string
	Language string
}

// Translation is the translated text in the target language.
type Translation struct {
	Text     string
	Language string
}

// MixParameters controls how the original and synthesized audio tracks are
// combined into the output container.
type MixParameters struct {
	BackgroundVolume float64 // gain for the original track, 0.0-1.0
	SpeechVolume     float64 // gain for the synthesized track, 0.0-1.0
	TargetDuration   float64 // seconds, the source video duration
}

// Validate range-checks the parameters before any mixing call runs.
func (p MixParameters) Validate() error {
	if p.BackgroundVolume < 0 || p.BackgroundVolume > 1 {
		return &errs.InvalidParameterError{Param: "background volume", Reason: "must be between 0.0 and 1.0"}
	}
	if p.SpeechVolume < 0 || p.SpeechVolume > 1 {
		return &errs.InvalidParameterError{Param: "speech volume", Reason: "must be between 0.0 and 1.0"}
	}
	if p.TargetDuration <= 0 {
		return &errs.InvalidParameterError{Param: "target duration", Reason: "must be greater than zero"}
	}
	return nil
}
