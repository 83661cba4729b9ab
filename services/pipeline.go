package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/config"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/download"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/errs"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/logger"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/media"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/models"
)

// Pipeline sequences the translation stages. Control flow is strictly
// linear: each stage runs to completion before the next starts, and the
// first failure aborts the rest.
type Pipeline struct {
	config *models.Config

	ffmpeg      MediaProcessor
	downloader  Downloader
	transcriber Transcriber
	translator  Translator
	synthesizer Synthesizer

	onProgress ProgressCallback
	tempDir    string
}

func NewPipeline(cfg *models.Config) *Pipeline {
	tempDir := filepath.Join(os.TempDir(), "video-translator")
	os.MkdirAll(tempDir, 0755)

	var ffmpeg *media.FFmpegService
	if cfg.FFmpegPath != "" {
		ffmpeg = media.NewFFmpegServiceWithPath(cfg.FFmpegPath)
	} else {
		ffmpeg = media.NewFFmpegService()
	}

	client := NewOpenAIClient(cfg.OpenAIKey)

	return &Pipeline{
		config:      cfg,
		ffmpeg:      ffmpeg,
		downloader:  download.NewYouTubeDownloader(cfg.YouTubeDownloadDir),
		transcriber: NewWhisperService(client),
		translator:  NewTranslatorService(client),
		synthesizer: NewSpeechService(client),
		tempDir:     tempDir,
	}
}

func (p *Pipeline) SetProgressCallback(cb ProgressCallback) {
	p.onProgress = cb
}

// Process runs the full translation pipeline using the default progress callback.
func (p *Pipeline) Process(ctx context.Context, job *models.TranslationJob) error {
	return p.ProcessWithCallback(ctx, job, p.onProgress)
}

// ProcessWithCallback runs the full translation pipeline with a custom
// progress callback. Cancellation is cooperative: the context is checked
// between stages and passed into every subprocess and API call.
func (p *Pipeline) ProcessWithCallback(ctx context.Context, job *models.TranslationJob, onProgress ProgressCallback) error {
	reportProgress := func(stage string, percent int, message string) {
		if onProgress != nil {
			onProgress(stage, percent, message)
		}
	}

	// Fill job settings from config where unset.
	if job.SourceLang == "" {
		job.SourceLang = p.config.DefaultSourceLang
	}
	if job.TargetLang == "" {
		job.TargetLang = p.config.DefaultTargetLang
	}
	if job.Voice == "" {
		job.Voice = p.config.DefaultVoice
	}

	// Validate caller-supplied parameters before any subprocess or API call.
	if !IsValidVoice(job.Voice) {
		err := &errs.InvalidParameterError{
			Param:  "voice",
			Reason: fmt.Sprintf("%q is not one of %v", job.Voice, VoiceIDs()),
		}
		job.Fail(err)
		return err
	}
	if job.MixBackground {
		params := models.MixParameters{
			BackgroundVolume: job.BackgroundVolume,
			SpeechVolume:     job.SpeechVolume,
			TargetDuration:   1, // real target known only after probing
		}
		if err := params.Validate(); err != nil {
			job.Fail(err)
			return err
		}
	}

	jobTempDir := filepath.Join(p.tempDir, job.ID)
	if err := os.MkdirAll(jobTempDir, 0755); err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(jobTempDir)

	// Stage 1: Acquire source
	if download.IsYouTubeURL(job.InputSource) {
		logger.Info("Pipeline: Stage 1/8 - Downloading %s", job.InputSource)
		reportProgress("Downloading", config.ProgressDownloadStart, "Downloading video...")
		job.SetStatus(models.StatusDownloading, "Downloading video", config.ProgressDownloadStart)

		localPath, err := p.downloader.Download(ctx, job.InputSource)
		if err != nil {
			job.Fail(err)
			return fmt.Errorf("download failed: %w", err)
		}
		job.InputPath = localPath
	} else {
		logger.Info("Pipeline: Stage 1/8 - Using local file %s", job.InputSource)
		if _, err := os.Stat(job.InputSource); err != nil {
			invalid := &errs.InvalidParameterError{
				Param:  "input",
				Reason: fmt.Sprintf("file not found: %s", job.InputSource),
			}
			job.Fail(invalid)
			return invalid
		}
		job.InputPath = job.InputSource
	}
	reportProgress("Downloading", config.ProgressDownloadEnd, "Source ready")

	if err := ctx.Err(); err != nil {
		job.Fail(err)
		return err
	}

	// Stage 2: Probe
	logger.Info("Pipeline: Stage 2/8 - Probing %s", filepath.Base(job.InputPath))
	reportProgress("Probing", config.ProgressProbeStart, "Reading media info...")
	job.SetStatus(models.StatusProbing, "Reading media info", config.ProgressProbeStart)

	probe, err := p.ffmpeg.Probe(ctx, job.InputPath)
	if err != nil {
		job.Fail(err)
		return fmt.Errorf("probing failed: %w", err)
	}
	asset := models.MediaAsset{Path: job.InputPath, Duration: probe.Duration, Format: probe.Format}
	logger.Info("Pipeline: source duration %.2fs, format %s", asset.Duration, asset.Format)
	reportProgress("Probing", config.ProgressProbeEnd, fmt.Sprintf("Duration: %.1fs", asset.Duration))

	if err := ctx.Err(); err != nil {
		job.Fail(err)
		return err
	}

	// Stage 3: Extract audio
	logger.Info("Pipeline: Stage 3/8 - Extracting audio")
	reportProgress("Extracting", config.ProgressExtractStart, "Extracting audio from video...")
	job.SetStatus(models.StatusExtracting, "Extracting audio", config.ProgressExtractStart)

	audioPath := filepath.Join(jobTempDir, "audio.wav")
	if err := p.ffmpeg.ExtractAudio(ctx, job.InputPath, audioPath); err != nil {
		job.Fail(err)
		return fmt.Errorf("audio extraction failed: %w", err)
	}
	job.AudioPath = audioPath
	extracted := models.AudioTrack{Path: audioPath, Duration: asset.Duration}
	reportProgress("Extracting", config.ProgressExtractEnd, "Audio extracted")

	if err := ctx.Err(); err != nil {
		job.Fail(err)
		return err
	}

	// Stage 4: Transcribe
	logger.Info("Pipeline: Stage 4/8 - Transcribing (lang=%s)", job.SourceLang)
	reportProgress("Transcribing", config.ProgressTranscribeStart, "Transcribing audio...")
	job.SetStatus(models.StatusTranscribing, "Transcribing audio", config.ProgressTranscribeStart)

	transcript, err := p.transcriber.Transcribe(ctx, extracted, job.SourceLang)
	if err != nil {
		job.Fail(err)
		return fmt.Errorf("transcription failed: %w", err)
	}
	if strings.TrimSpace(transcript.Text) == "" {
		err := fmt.Errorf("no speech detected in audio")
		job.Fail(err)
		return err
	}
	job.TranscriptPath = filepath.Join(jobTempDir, fmt.Sprintf("%s_transcript.txt", job.SourceLang))
	if err := os.WriteFile(job.TranscriptPath, []byte(transcript.Text), 0644); err != nil {
		logger.Warn("Pipeline: failed to save transcript: %v", err)
	}
	reportProgress("Transcribing", config.ProgressTranscribeEnd, fmt.Sprintf("Transcribed %d characters", len(transcript.Text)))

	if err := ctx.Err(); err != nil {
		job.Fail(err)
		return err
	}

	// Stage 5: Translate
	logger.Info("Pipeline: Stage 5/8 - Translating (%s -> %s)", job.SourceLang, job.TargetLang)
	reportProgress("Translating", config.ProgressTranslateStart, "Translating text...")
	job.SetStatus(models.StatusTranslating, "Translating text", config.ProgressTranslateStart)

	translation, err := p.translator.Translate(ctx, transcript, job.TargetLang)
	if err != nil {
		job.Fail(err)
		return fmt.Errorf("translation failed: %w", err)
	}
	job.TranslationPath = filepath.Join(jobTempDir, fmt.Sprintf("%s_translation.txt", job.TargetLang))
	if err := os.WriteFile(job.TranslationPath, []byte(translation.Text), 0644); err != nil {
		logger.Warn("Pipeline: failed to save translation: %v", err)
	}
	reportProgress("Translating", config.ProgressTranslateEnd, "Translation complete")

	if err := ctx.Err(); err != nil {
		job.Fail(err)
		return err
	}

	// Stage 6: Synthesize speech
	logger.Info("Pipeline: Stage 6/8 - Synthesizing speech (voice=%s)", job.Voice)
	reportProgress("Synthesizing", config.ProgressSynthesizeStart, "Generating speech...")
	job.SetStatus(models.StatusSynthesizing, "Generating dubbed audio", config.ProgressSynthesizeStart)

	speechPath := filepath.Join(jobTempDir, "speech.mp3")
	if err := p.synthesizer.Synthesize(ctx, translation, job.Voice, speechPath); err != nil {
		job.Fail(err)
		return fmt.Errorf("speech synthesis failed: %w", err)
	}
	reportProgress("Synthesizing", config.ProgressSynthesizeEnd, "Speech synthesis complete")

	if err := ctx.Err(); err != nil {
		job.Fail(err)
		return err
	}

	// Stage 7: Match duration. The synthesized audio is stretched or
	// compressed to the source duration, never the reverse.
	logger.Info("Pipeline: Stage 7/8 - Matching audio duration to %.2fs", asset.Duration)
	reportProgress("Adjusting", config.ProgressAdjustStart, "Matching audio duration...")
	job.SetStatus(models.StatusAdjusting, "Matching audio duration", config.ProgressAdjustStart)

	dubbedPath := filepath.Join(jobTempDir, "dubbed.mp3")
	if err := p.ffmpeg.MatchDuration(ctx, speechPath, dubbedPath, asset.Duration); err != nil {
		job.Fail(err)
		return fmt.Errorf("duration matching failed: %w", err)
	}
	job.DubbedAudioPath = dubbedPath
	reportProgress("Adjusting", config.ProgressAdjustEnd, "Audio duration matched")

	if err := ctx.Err(); err != nil {
		job.Fail(err)
		return err
	}

	// Stage 8: Mux
	outputPath := job.OutputPath
	if outputPath == "" {
		outputPath = p.generateOutputPath(job.InputPath)
	}

	mode := "replace"
	if job.MixBackground {
		mode = "mix"
	}
	logger.Info("Pipeline: Stage 8/8 - Muxing final video (%s mode)", mode)
	reportProgress("Muxing", config.ProgressMuxStart, "Creating final video...")
	job.SetStatus(models.StatusMuxing, "Creating final video", config.ProgressMuxStart)

	if job.MixBackground {
		err = p.ffmpeg.MixAudio(ctx, job.InputPath, dubbedPath, outputPath, job.BackgroundVolume, job.SpeechVolume)
	} else {
		err = p.ffmpeg.ReplaceAudio(ctx, job.InputPath, dubbedPath, outputPath)
	}
	if err != nil {
		// Never leave a partially written output behind.
		os.Remove(outputPath)
		job.Fail(err)
		return fmt.Errorf("video muxing failed: %w", err)
	}

	if p.config.KeepTempFiles {
		p.keepIntermediates(job, outputPath)
	}

	job.Complete(outputPath)
	logger.Info("Pipeline: Complete! Output: %s", outputPath)
	reportProgress("Complete", config.ProgressMuxEnd, "Translation complete!")

	return nil
}

// keepIntermediates copies the stage outputs next to the final video for
// debugging.
func (p *Pipeline) keepIntermediates(job *models.TranslationJob, outputPath string) {
	outputDir := filepath.Dir(outputPath)

	for _, src := range []string{job.AudioPath, job.DubbedAudioPath, job.TranscriptPath, job.TranslationPath} {
		if src == "" {
			continue
		}
		dst := filepath.Join(outputDir, filepath.Base(src))
		if err := copyFile(src, dst); err != nil {
			logger.Warn("Pipeline: failed to keep %s: %v", filepath.Base(src), err)
		}
	}
	logger.Info("Pipeline: intermediate files saved to %s", outputDir)
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}

// generateOutputPath creates the output file path beside the input (or in
// the configured output directory).
func (p *Pipeline) generateOutputPath(inputPath string) string {
	dir := p.config.OutputDirectory
	if dir == "" {
		dir = filepath.Dir(inputPath)
	}

	if strings.HasPrefix(dir, "~") {
		homeDir, _ := os.UserHomeDir()
		dir = filepath.Join(homeDir, dir[1:])
	}

	os.MkdirAll(dir, 0755)

	baseName := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	ext := filepath.Ext(inputPath)
	if ext == "" {
		ext = ".mp4"
	}
	return filepath.Join(dir, fmt.Sprintf("%s_translated%s", baseName, ext))
}

// ValidateJob checks if a job can be processed before any stage runs.
func (p *Pipeline) ValidateJob(job *models.TranslationJob) error {
	if !download.IsYouTubeURL(job.InputSource) {
		if _, err := os.Stat(job.InputSource); os.IsNotExist(err) {
			return &errs.InvalidParameterError{
				Param:  "input",
				Reason: fmt.Sprintf("file not found: %s", job.InputSource),
			}
		}
	}

	if err := p.ffmpeg.CheckInstalled(); err != nil {
		return err
	}

	if p.config.OpenAIKey == "" {
		return &errs.InvalidParameterError{
			Param:  "api-key",
			Reason: "OpenAI API key is required (flag, config file, or OPENAI_API_KEY)",
		}
	}

	if job.Voice != "" && !IsValidVoice(job.Voice) {
		return &errs.InvalidParameterError{
			Param:  "voice",
			Reason: fmt.Sprintf("%q is not one of %v", job.Voice, VoiceIDs()),
		}
	}

	return nil
}

// CheckDependencies verifies the external collaborators are reachable
// before the pipeline starts.
func (p *Pipeline) CheckDependencies() map[string]error {
	results := make(map[string]error)

	results["ffmpeg"] = p.ffmpeg.CheckInstalled()

	if p.config.OpenAIKey == "" {
		results["openai"] = fmt.Errorf("OPENAI_API_KEY not set")
	} else {
		results["openai"] = nil
	}

	return results
}

// Cleanup removes all temporary files.
func (p *Pipeline) Cleanup() error {
	return os.RemoveAll(p.tempDir)
}
