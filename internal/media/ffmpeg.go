// Package media wraps the external FFmpeg tools for probing, audio
// extraction, tempo scaling, and muxing.
package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/config"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/errs"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/logger"
)

// ProbeResult holds the metadata returned by ffprobe.
type ProbeResult struct {
	Duration float64 // seconds
	Format   string  // container tag, e.g. "mov,mp4,m4a,3gp,3g2,mj2"
}

// FFmpegService wraps FFmpeg commands for audio/video processing.
type FFmpegService struct {
	ffmpegPath  string
	ffprobePath string
	cache       *probeCache
}

// NewFFmpegService creates a new FFmpeg service with auto-detected paths.
func NewFFmpegService() *FFmpegService {
	paths := []string{
		"/opt/homebrew/bin/ffmpeg",
		"/usr/local/bin/ffmpeg",
		"/usr/bin/ffmpeg",
		"ffmpeg",
	}

	ffmpegPath := "ffmpeg"
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			ffmpegPath = p
			break
		}
	}

	return NewFFmpegServiceWithPath(ffmpegPath)
}

// NewFFmpegServiceWithPath creates a new FFmpeg service with a custom path.
func NewFFmpegServiceWithPath(path string) *FFmpegService {
	return &FFmpegService{
		ffmpegPath:  path,
		ffprobePath: strings.Replace(path, "ffmpeg", "ffprobe", 1),
		cache:       newProbeCache(),
	}
}

// CheckInstalled verifies ffmpeg and ffprobe are available.
func (s *FFmpegService) CheckInstalled() error {
	if err := exec.Command(s.ffmpegPath, "-version").Run(); err != nil {
		return fmt.Errorf("ffmpeg not found at %s: %w", s.ffmpegPath, err)
	}
	if err := exec.Command(s.ffprobePath, "-version").Run(); err != nil {
		return fmt.Errorf("ffprobe not found at %s: %w", s.ffprobePath, err)
	}
	return nil
}

// GetPath returns the ffmpeg executable path.
func (s *FFmpegService) GetPath() string {
	return s.ffmpegPath
}

// Probe returns duration and container format of a media file.
func (s *FFmpegService) Probe(ctx context.Context, path string) (ProbeResult, error) {
	if r, ok := s.cache.get(path); ok {
		return r, nil
	}

	probeCtx, cancel := context.WithTimeout(ctx, config.ExecTimeoutProbe)
	defer cancel()

	args := []string{
		"-v", "error",
		"-show_entries", "format=duration,format_name",
		"-of", "default=noprint_wrappers=1",
		path,
	}

	out, err := exec.CommandContext(probeCtx, s.ffprobePath, args...).Output()
	if err != nil {
		return ProbeResult{}, &errs.MediaReadError{Path: path, Err: fmt.Errorf("ffprobe: %w", err)}
	}

	result, err := parseProbeOutput(string(out))
	if err != nil {
		return ProbeResult{}, &errs.MediaReadError{Path: path, Err: err}
	}

	s.cache.set(path, result)
	return result, nil
}

func parseProbeOutput(out string) (ProbeResult, error) {
	var result ProbeResult
	var haveDuration bool

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		switch key {
		case "duration":
			d, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return ProbeResult{}, fmt.Errorf("failed to parse duration %q: %w", value, err)
			}
			result.Duration = d
			haveDuration = true
		case "format_name":
			result.Format = value
		}
	}

	if !haveDuration {
		return ProbeResult{}, fmt.Errorf("ffprobe output missing duration")
	}
	return result, nil
}

// Duration returns the duration of a media file in seconds.
func (s *FFmpegService) Duration(ctx context.Context, path string) (float64, error) {
	r, err := s.Probe(ctx, path)
	if err != nil {
		return 0, err
	}
	return r.Duration, nil
}

// ExtractAudio demuxes the audio track to WAV (16kHz mono, the Whisper input format).
func (s *FFmpegService) ExtractAudio(ctx context.Context, videoPath, outputPath string) error {
	logger.Info("FFmpeg: extracting audio from %s", filepath.Base(videoPath))

	if err := ensureDir(outputPath); err != nil {
		return &errs.MediaWriteError{Path: outputPath, Err: err}
	}

	args := []string{
		"-i", videoPath,
		"-vn",
		"-ar", strconv.Itoa(config.AudioSampleRate16k),
		"-ac", "1",
		"-acodec", "pcm_s16le",
		"-y",
		outputPath,
	}

	if err := s.run(ctx, args); err != nil {
		return &errs.MediaReadError{Path: videoPath, Err: err}
	}
	return nil
}

// MatchDuration stretches or compresses audio to targetDuration using the
// atempo filter, preserving pitch. Factors outside the chainable range are
// clipped to the nearest bound; the residual mismatch is logged as a warning
// rather than treated as an error.
func (s *FFmpegService) MatchDuration(ctx context.Context, inputPath, outputPath string, targetDuration float64) error {
	if targetDuration <= 0 {
		return &errs.InvalidParameterError{Param: "target duration", Reason: "must be greater than zero"}
	}

	actual, err := s.Duration(ctx, inputPath)
	if err != nil {
		return err
	}

	if err := ensureDir(outputPath); err != nil {
		return &errs.MediaWriteError{Path: outputPath, Err: err}
	}

	// Close enough already: copy instead of resampling.
	if diff := actual - targetDuration; diff < config.AudioDurationTolerance.Seconds() && diff > -config.AudioDurationTolerance.Seconds() {
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return &errs.MediaReadError{Path: inputPath, Err: err}
		}
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return &errs.MediaWriteError{Path: outputPath, Err: err}
		}
		return nil
	}

	factor := TempoFactor(actual, targetDuration)
	passes, clipped := TempoChain(factor)
	if clipped {
		logger.Warn("FFmpeg: tempo factor %.3f outside supported range [%.2f, %.2f], clipping; output will not exactly match %.2fs",
			factor, config.TempoChainMin, config.TempoChainMax, targetDuration)
	}

	logger.Info("FFmpeg: adjusting audio %.2fs -> %.2fs (tempo %.4f)", actual, targetDuration, factor)

	args := []string{
		"-i", inputPath,
		"-filter:a", atempoFilter(passes),
		"-y",
		outputPath,
	}

	if err := s.run(ctx, args); err != nil {
		return &errs.MediaWriteError{Path: outputPath, Err: err}
	}
	s.cache.invalidate(outputPath)
	return nil
}

// ReplaceAudio muxes the video stream with the new audio track, discarding
// the original audio. The video stream is copied without re-encoding.
func (s *FFmpegService) ReplaceAudio(ctx context.Context, videoPath, audioPath, outputPath string) error {
	logger.Info("FFmpeg: replacing audio in %s", filepath.Base(videoPath))

	if err := ensureDir(outputPath); err != nil {
		return &errs.MediaWriteError{Path: outputPath, Err: err}
	}

	args := []string{
		"-i", videoPath,
		"-i", audioPath,
		"-c:v", "copy",
		"-c:a", "aac",
		"-map", "0:v",
		"-map", "1:a",
		"-shortest",
		"-y",
		outputPath,
	}

	if err := s.run(ctx, args); err != nil {
		return &errs.MediaWriteError{Path: outputPath, Err: err}
	}
	return nil
}

// MixAudio blends the original audio with the synthesized speech track at
// the supplied gains and muxes the result with the video stream. Gains are
// validated before any subprocess runs.
func (s *FFmpegService) MixAudio(ctx context.Context, videoPath, audioPath, outputPath string, backgroundVolume, speechVolume float64) error {
	if backgroundVolume < 0 || backgroundVolume > 1 {
		return &errs.InvalidParameterError{Param: "background volume", Reason: "must be between 0.0 and 1.0"}
	}
	if speechVolume < 0 || speechVolume > 1 {
		return &errs.InvalidParameterError{Param: "speech volume", Reason: "must be between 0.0 and 1.0"}
	}

	logger.Info("FFmpeg: mixing audio (background %.2f, speech %.2f)", backgroundVolume, speechVolume)

	if err := ensureDir(outputPath); err != nil {
		return &errs.MediaWriteError{Path: outputPath, Err: err}
	}

	args := []string{
		"-i", videoPath,
		"-i", audioPath,
		"-filter_complex", buildMixFilter(backgroundVolume, speechVolume),
		"-map", "0:v",
		"-map", "[aout]",
		"-c:v", "copy",
		"-c:a", "aac",
		"-b:a", config.MixOutputBitrate,
		"-y",
		outputPath,
	}

	if err := s.run(ctx, args); err != nil {
		return &errs.MediaWriteError{Path: outputPath, Err: err}
	}
	return nil
}

// buildMixFilter produces the filter graph that applies both gains and mixes
// the tracks sample-aligned from time zero, clipped to the shorter input.
func buildMixFilter(backgroundVolume, speechVolume float64) string {
	return fmt.Sprintf(
		"[0:a]volume=%.2f[a0];[1:a]volume=%.2f[a1];[a0][a1]amix=inputs=2:duration=shortest[aout]",
		backgroundVolume, speechVolume)
}

func (s *FFmpegService) run(ctx context.Context, args []string) error {
	runCtx, cancel := context.WithTimeout(ctx, config.ExecTimeoutFFmpeg)
	defer cancel()

	cmd := exec.CommandContext(runCtx, s.ffmpegPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg failed: %w\noutput: %s", err, string(output))
	}
	return nil
}

func ensureDir(outputPath string) error {
	return os.MkdirAll(filepath.Dir(outputPath), 0755)
}
