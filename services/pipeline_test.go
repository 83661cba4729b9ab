package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/errs"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/media"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/models"
)

// Stubbed collaborators. Each records its call count so tests can assert
// that a failed stage short-circuits everything after it.

type stubMedia struct {
	checkErr   error
	probe      media.ProbeResult
	probeErr   error
	probeCalls int

	extractErr   error
	extractCalls int

	matchErr    error
	matchCalls  int
	matchTarget float64

	replaceErr   error
	replaceCalls int
	mixErr       error
	mixCalls     int
	mixBackground, mixSpeech float64
}

func (m *stubMedia) CheckInstalled() error { return m.checkErr }

func (m *stubMedia) Probe(ctx context.Context, path string) (media.ProbeResult, error) {
	m.probeCalls++
	return m.probe, m.probeErr
}

func (m *stubMedia) Duration(ctx context.Context, path string) (float64, error) {
	r, err := m.Probe(ctx, path)
	return r.Duration, err
}

func (m *stubMedia) ExtractAudio(ctx context.Context, videoPath, outputPath string) error {
	m.extractCalls++
	if m.extractErr != nil {
		return m.extractErr
	}
	return os.WriteFile(outputPath, []byte("wav"), 0644)
}

func (m *stubMedia) MatchDuration(ctx context.Context, inputPath, outputPath string, targetDuration float64) error {
	m.matchCalls++
	m.matchTarget = targetDuration
	if m.matchErr != nil {
		return m.matchErr
	}
	return os.WriteFile(outputPath, []byte("dubbed"), 0644)
}

func (m *stubMedia) ReplaceAudio(ctx context.Context, videoPath, audioPath, outputPath string) error {
	m.replaceCalls++
	if m.replaceErr != nil {
		// Simulate a partially written container before the failure.
		os.WriteFile(outputPath, []byte("partial"), 0644)
		return m.replaceErr
	}
	return os.WriteFile(outputPath, []byte("video"), 0644)
}

func (m *stubMedia) MixAudio(ctx context.Context, videoPath, audioPath, outputPath string, backgroundVolume, speechVolume float64) error {
	m.mixCalls++
	m.mixBackground = backgroundVolume
	m.mixSpeech = speechVolume
	if m.mixErr != nil {
		return m.mixErr
	}
	return os.WriteFile(outputPath, []byte("video"), 0644)
}

type stubDownloader struct {
	calls int
	path  string
	err   error
}

func (d *stubDownloader) Download(ctx context.Context, url string) (string, error) {
	d.calls++
	return d.path, d.err
}

type stubTranscriber struct {
	calls  int
	text   string
	err    error
	onCall func()
}

func (s *stubTranscriber) Transcribe(ctx context.Context, track models.AudioTrack, language string) (models.Transcript, error) {
	s.calls++
	if s.onCall != nil {
		s.onCall()
	}
	return models.Transcript{Text: s.text, Language: language}, s.err
}

type stubTranslator struct {
	calls int
	text  string
	err   error
}

func (s *stubTranslator) Translate(ctx context.Context, transcript models.Transcript, targetLang string) (models.Translation, error) {
	s.calls++
	return models.Translation{Text: s.text, Language: targetLang}, s.err
}

type stubSynthesizer struct {
	calls int
	err   error
}

func (s *stubSynthesizer) Synthesize(ctx context.Context, translation models.Translation, voice, outputPath string) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	return os.WriteFile(outputPath, []byte("mp3"), 0644)
}

type testEnv struct {
	pipeline    *Pipeline
	media       *stubMedia
	downloader  *stubDownloader
	transcriber *stubTranscriber
	translator  *stubTranslator
	synthesizer *stubSynthesizer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		media:       &stubMedia{probe: media.ProbeResult{Duration: 65.0, Format: "mp4"}},
		downloader:  &stubDownloader{},
		transcriber: &stubTranscriber{text: "hello world"},
		translator:  &stubTranslator{text: "namaste duniya"},
		synthesizer: &stubSynthesizer{},
	}
	env.pipeline = &Pipeline{
		config:      models.DefaultConfig(),
		ffmpeg:      env.media,
		downloader:  env.downloader,
		transcriber: env.transcriber,
		translator:  env.translator,
		synthesizer: env.synthesizer,
		tempDir:     t.TempDir(),
	}
	return env
}

func writeInputVideo(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.mp4")
	if err := os.WriteFile(path, []byte("video"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewPipeline(t *testing.T) {
	p := NewPipeline(models.DefaultConfig())
	if p == nil {
		t.Fatal("NewPipeline() returned nil")
	}
	if p.ffmpeg == nil {
		t.Error("ffmpeg service should not be nil")
	}
	if p.downloader == nil {
		t.Error("downloader should not be nil")
	}
	if p.transcriber == nil {
		t.Error("transcriber should not be nil")
	}
	if p.translator == nil {
		t.Error("translator should not be nil")
	}
	if p.synthesizer == nil {
		t.Error("synthesizer should not be nil")
	}
	if p.tempDir == "" {
		t.Error("tempDir should not be empty")
	}
}

func TestPipeline_ReplaceMode(t *testing.T) {
	env := newTestEnv(t)
	job := models.NewTranslationJob(writeInputVideo(t))

	if err := env.pipeline.Process(context.Background(), job); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if job.Status != models.StatusCompleted {
		t.Errorf("Status = %q, want completed", job.Status)
	}
	if env.media.replaceCalls != 1 {
		t.Errorf("ReplaceAudio called %d times, want 1", env.media.replaceCalls)
	}
	if env.media.mixCalls != 0 {
		t.Errorf("MixAudio called %d times, want 0 in replace mode", env.media.mixCalls)
	}
	if env.media.matchTarget != 65.0 {
		t.Errorf("MatchDuration target = %f, want source duration 65.0", env.media.matchTarget)
	}
	if !strings.HasSuffix(job.OutputPath, "_translated.mp4") {
		t.Errorf("OutputPath = %q, want *_translated.mp4", job.OutputPath)
	}
	if _, err := os.Stat(job.OutputPath); err != nil {
		t.Errorf("output file should exist: %v", err)
	}
}

func TestPipeline_MixMode(t *testing.T) {
	env := newTestEnv(t)
	job := models.NewTranslationJob(writeInputVideo(t))
	job.MixBackground = true
	job.BackgroundVolume = 0.3
	job.SpeechVolume = 1.0

	if err := env.pipeline.Process(context.Background(), job); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if env.media.mixCalls != 1 {
		t.Errorf("MixAudio called %d times, want 1", env.media.mixCalls)
	}
	if env.media.replaceCalls != 0 {
		t.Errorf("ReplaceAudio called %d times, want 0 in mix mode", env.media.replaceCalls)
	}
	if env.media.mixBackground != 0.3 || env.media.mixSpeech != 1.0 {
		t.Errorf("mix gains = (%.2f, %.2f), want (0.30, 1.00)", env.media.mixBackground, env.media.mixSpeech)
	}
}

func TestPipeline_AbortsAfterTranscriptionFailure(t *testing.T) {
	env := newTestEnv(t)
	env.transcriber.err = errors.New("service unavailable")
	job := models.NewTranslationJob(writeInputVideo(t))

	err := env.pipeline.Process(context.Background(), job)
	if err == nil {
		t.Fatal("Process() should fail when transcription fails")
	}
	if !strings.Contains(err.Error(), "transcription failed") {
		t.Errorf("error = %v, should name the failing stage", err)
	}

	if env.translator.calls != 0 {
		t.Errorf("Translate called %d times after transcription failure, want 0", env.translator.calls)
	}
	if env.synthesizer.calls != 0 {
		t.Errorf("Synthesize called %d times after transcription failure, want 0", env.synthesizer.calls)
	}
	if env.media.matchCalls != 0 {
		t.Errorf("MatchDuration called %d times after transcription failure, want 0", env.media.matchCalls)
	}
	if job.Status != models.StatusFailed {
		t.Errorf("Status = %q, want failed", job.Status)
	}
}

func TestPipeline_InvalidGainFailsBeforeAnyStage(t *testing.T) {
	env := newTestEnv(t)
	job := models.NewTranslationJob(writeInputVideo(t))
	job.MixBackground = true
	job.BackgroundVolume = 1.5

	err := env.pipeline.Process(context.Background(), job)
	var invalid *errs.InvalidParameterError
	if !errors.As(err, &invalid) {
		t.Fatalf("Process() error = %v, want InvalidParameterError", err)
	}

	if env.media.probeCalls != 0 || env.media.extractCalls != 0 {
		t.Error("no media subprocess should run for invalid gains")
	}
	if env.transcriber.calls != 0 {
		t.Error("no remote service should be called for invalid gains")
	}
}

func TestPipeline_InvalidVoiceFailsBeforeAnyStage(t *testing.T) {
	env := newTestEnv(t)
	job := models.NewTranslationJob(writeInputVideo(t))
	job.Voice = "darth-vader"

	err := env.pipeline.Process(context.Background(), job)
	var invalid *errs.InvalidParameterError
	if !errors.As(err, &invalid) {
		t.Fatalf("Process() error = %v, want InvalidParameterError", err)
	}
	if env.media.probeCalls != 0 {
		t.Error("no media subprocess should run for an invalid voice")
	}
}

func TestPipeline_MissingInputFile(t *testing.T) {
	env := newTestEnv(t)
	job := models.NewTranslationJob("/no/such/video.mp4")

	err := env.pipeline.Process(context.Background(), job)
	var invalid *errs.InvalidParameterError
	if !errors.As(err, &invalid) {
		t.Fatalf("Process() error = %v, want InvalidParameterError", err)
	}
}

func TestPipeline_DownloadsRemoteSource(t *testing.T) {
	env := newTestEnv(t)
	localPath := writeInputVideo(t)
	env.downloader.path = localPath
	job := models.NewTranslationJob("https://www.youtube.com/watch?v=dQw4w9WgXcQ")

	if err := env.pipeline.Process(context.Background(), job); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if env.downloader.calls != 1 {
		t.Errorf("Download called %d times, want 1", env.downloader.calls)
	}
	if job.InputPath != localPath {
		t.Errorf("InputPath = %q, want downloaded path %q", job.InputPath, localPath)
	}
}

func TestPipeline_DownloadFailureAborts(t *testing.T) {
	env := newTestEnv(t)
	env.downloader.err = &errs.DownloadError{URL: "https://youtu.be/x", Err: errors.New("video unavailable")}
	job := models.NewTranslationJob("https://youtu.be/x")

	err := env.pipeline.Process(context.Background(), job)
	var dlErr *errs.DownloadError
	if !errors.As(err, &dlErr) {
		t.Fatalf("Process() error = %v, want DownloadError", err)
	}
	if env.media.probeCalls != 0 {
		t.Error("probe should not run after a failed download")
	}
}

func TestPipeline_EmptyTranscriptFails(t *testing.T) {
	env := newTestEnv(t)
	env.transcriber.text = "   \n"
	job := models.NewTranslationJob(writeInputVideo(t))

	err := env.pipeline.Process(context.Background(), job)
	if err == nil || !strings.Contains(err.Error(), "no speech detected") {
		t.Fatalf("Process() error = %v, want 'no speech detected'", err)
	}
	if env.translator.calls != 0 {
		t.Error("Translate should not be called for an empty transcript")
	}
}

func TestPipeline_CancellationBetweenStages(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	env.transcriber.onCall = cancel

	job := models.NewTranslationJob(writeInputVideo(t))
	err := env.pipeline.Process(ctx, job)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Process() error = %v, want context.Canceled", err)
	}
	if env.translator.calls != 0 {
		t.Error("Translate should not run after cancellation")
	}
	if job.Status != models.StatusFailed {
		t.Errorf("Status = %q, want failed", job.Status)
	}
}

func TestPipeline_MuxFailureRemovesPartialOutput(t *testing.T) {
	env := newTestEnv(t)
	env.media.replaceErr = errors.New("disk full")
	job := models.NewTranslationJob(writeInputVideo(t))

	err := env.pipeline.Process(context.Background(), job)
	if err == nil {
		t.Fatal("Process() should fail when muxing fails")
	}

	partial := env.pipeline.generateOutputPath(job.InputPath)
	if _, statErr := os.Stat(partial); !os.IsNotExist(statErr) {
		t.Errorf("partial output %s should have been removed", partial)
	}
}

func TestPipeline_KeepTempFiles(t *testing.T) {
	env := newTestEnv(t)
	env.pipeline.config.KeepTempFiles = true
	job := models.NewTranslationJob(writeInputVideo(t))

	if err := env.pipeline.Process(context.Background(), job); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	outputDir := filepath.Dir(job.OutputPath)
	for _, name := range []string{"audio.wav", "dubbed.mp3", "en_transcript.txt", "hi_translation.txt"} {
		if _, err := os.Stat(filepath.Join(outputDir, name)); err != nil {
			t.Errorf("intermediate %s should be kept next to the output: %v", name, err)
		}
	}
}

func TestPipeline_ProgressReachesCompletion(t *testing.T) {
	env := newTestEnv(t)

	var stages []string
	lastPercent := -1
	env.pipeline.SetProgressCallback(func(stage string, percent int, message string) {
		stages = append(stages, stage)
		if percent < lastPercent {
			t.Errorf("progress went backwards: %d after %d (%s)", percent, lastPercent, stage)
		}
		lastPercent = percent
	})

	job := models.NewTranslationJob(writeInputVideo(t))
	if err := env.pipeline.Process(context.Background(), job); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if lastPercent != 100 {
		t.Errorf("final progress = %d, want 100", lastPercent)
	}
	joined := strings.Join(stages, ",")
	for _, want := range []string{"Probing", "Extracting", "Transcribing", "Translating", "Synthesizing", "Adjusting", "Muxing", "Complete"} {
		if !strings.Contains(joined, want) {
			t.Errorf("progress stages %q missing %q", joined, want)
		}
	}
}

func TestPipeline_ValidateJob(t *testing.T) {
	env := newTestEnv(t)
	env.pipeline.config.OpenAIKey = "sk-test"

	job := models.NewTranslationJob(writeInputVideo(t))
	if err := env.pipeline.ValidateJob(job); err != nil {
		t.Errorf("ValidateJob() error = %v, want nil", err)
	}

	env.pipeline.config.OpenAIKey = ""
	if err := env.pipeline.ValidateJob(job); err == nil {
		t.Error("ValidateJob() should fail without an API key")
	}
	env.pipeline.config.OpenAIKey = "sk-test"

	job.Voice = "nonexistent"
	if err := env.pipeline.ValidateJob(job); err == nil {
		t.Error("ValidateJob() should reject an unsupported voice")
	}
}

func TestPipeline_CheckDependencies(t *testing.T) {
	env := newTestEnv(t)
	env.pipeline.config.OpenAIKey = "sk-test"

	results := env.pipeline.CheckDependencies()
	if err := results["ffmpeg"]; err != nil {
		t.Errorf("ffmpeg check = %v, want nil from stub", err)
	}
	if err := results["openai"]; err != nil {
		t.Errorf("openai check = %v, want nil with key set", err)
	}

	env.pipeline.config.OpenAIKey = ""
	results = env.pipeline.CheckDependencies()
	if results["openai"] == nil {
		t.Error("openai check should fail without a key")
	}
}

func TestPipeline_GenerateOutputPath(t *testing.T) {
	env := newTestEnv(t)

	got := env.pipeline.generateOutputPath("/videos/talk.mp4")
	if got != "/videos/talk_translated.mp4" {
		t.Errorf("generateOutputPath = %q", got)
	}

	env.pipeline.config.OutputDirectory = t.TempDir()
	got = env.pipeline.generateOutputPath("/videos/talk.mkv")
	want := filepath.Join(env.pipeline.config.OutputDirectory, "talk_translated.mkv")
	if got != want {
		t.Errorf("generateOutputPath = %q, want %q", got, want)
	}
}

func TestPipeline_FailureReportsStage(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(*testEnv)
		wantStage string
	}{
		{"probe", func(e *testEnv) { e.media.probeErr = errors.New("corrupt") }, "probing failed"},
		{"extract", func(e *testEnv) { e.media.extractErr = errors.New("no audio") }, "audio extraction failed"},
		{"translate", func(e *testEnv) { e.translator.err = errors.New("quota") }, "translation failed"},
		{"synthesize", func(e *testEnv) { e.synthesizer.err = errors.New("bad voice") }, "speech synthesis failed"},
		{"match", func(e *testEnv) { e.media.matchErr = errors.New("filter error") }, "duration matching failed"},
		{"mux", func(e *testEnv) { e.media.replaceErr = errors.New("disk full") }, "video muxing failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			tt.setup(env)
			job := models.NewTranslationJob(writeInputVideo(t))

			err := env.pipeline.Process(context.Background(), job)
			if err == nil {
				t.Fatal("Process() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantStage) {
				t.Errorf("error = %v, want stage %q named", err, tt.wantStage)
			}
			if job.Status != models.StatusFailed {
				t.Errorf("Status = %q, want failed", job.Status)
			}
		})
	}
}

func TestPipeline_Cleanup(t *testing.T) {
	env := newTestEnv(t)
	marker := filepath.Join(env.pipeline.tempDir, "leftover")
	if err := os.WriteFile(marker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := env.pipeline.Cleanup(); err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	if _, err := os.Stat(marker); !os.IsNotExist(err) {
		t.Error("Cleanup() should remove the temp directory")
	}
}
