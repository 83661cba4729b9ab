package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/logger"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/models"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/services"
)

var (
	flagSourceLang string
	flagLanguage   string
	flagVoice      string
	flagAPIKey     string
	flagYouTubeDir string
	flagKeepTemp   bool
	flagMix        bool
	flagBGVolume   float64
	flagSpeechVol  float64
	flagVerbose    bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "video-translator <input> [output]",
		Short: "Translate a video's speech into another language",
		Long: `video-translator takes a local video file or a YouTube URL, transcribes
its audio, translates the transcript, synthesizes speech in the target
language, and muxes the dubbed audio back into the video.

By default the original audio track is replaced. With --mix-background the
original track is kept underneath the dubbed speech at a reduced volume.`,
		Example: `  video-translator talk.mp4 --language hi
  video-translator https://youtu.be/dQw4w9WgXcQ --language es --voice nova
  video-translator talk.mp4 dubbed.mp4 --mix-background --background-volume 0.2`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(flagVerbose)
		},
		RunE: runTranslate,
	}

	cmd.Flags().StringVarP(&flagSourceLang, "source-language", "s", "", "spoken language of the input video (ISO code)")
	cmd.Flags().StringVarP(&flagLanguage, "language", "l", "", "target language to translate into (ISO code)")
	cmd.Flags().StringVar(&flagVoice, "voice", "", fmt.Sprintf("synthesis voice, one of %v", services.VoiceIDs()))
	cmd.Flags().StringVar(&flagAPIKey, "api-key", "", "OpenAI API key (overrides config and OPENAI_API_KEY)")
	cmd.Flags().StringVar(&flagYouTubeDir, "youtube-dir", "", "directory for downloaded YouTube videos")
	cmd.Flags().BoolVar(&flagKeepTemp, "keep-temp", false, "keep intermediate audio and text files next to the output")
	cmd.Flags().BoolVar(&flagMix, "mix-background", false, "mix dubbed speech over the original audio instead of replacing it")
	cmd.Flags().Float64Var(&flagBGVolume, "background-volume", 0, "original audio gain in mix mode (0.0-1.0)")
	cmd.Flags().Float64Var(&flagSpeechVol, "speech-volume", 0, "dubbed speech gain in mix mode (0.0-1.0)")
	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newCheckCmd())

	return cmd
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that ffmpeg and the OpenAI API key are available",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			pipeline := services.NewPipeline(cfg)

			failed := false
			for _, name := range []string{"ffmpeg", "openai"} {
				if err := pipeline.CheckDependencies()[name]; err != nil {
					fmt.Printf("✗ %s: %v\n", name, err)
					failed = true
				} else {
					fmt.Printf("✓ %s\n", name)
				}
			}
			if failed {
				return fmt.Errorf("missing dependencies")
			}
			return nil
		},
	}
}

func loadConfig() *models.Config {
	cfg, err := models.LoadConfig()
	if err != nil {
		cfg = models.DefaultConfig()
	}
	if flagAPIKey != "" {
		cfg.OpenAIKey = flagAPIKey
	}
	if flagYouTubeDir != "" {
		cfg.YouTubeDownloadDir = flagYouTubeDir
	}
	return cfg
}

func runTranslate(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if flagKeepTemp {
		cfg.KeepTempFiles = true
	}

	job := models.NewTranslationJob(args[0])
	if len(args) == 2 {
		job.OutputPath = args[1]
	}
	if flagSourceLang != "" {
		job.SourceLang = flagSourceLang
	} else if cfg.DefaultSourceLang != "" {
		job.SourceLang = cfg.DefaultSourceLang
	}
	if flagLanguage != "" {
		job.TargetLang = flagLanguage
	} else if cfg.DefaultTargetLang != "" {
		job.TargetLang = cfg.DefaultTargetLang
	}
	if flagVoice != "" {
		job.Voice = flagVoice
	} else if cfg.DefaultVoice != "" {
		job.Voice = cfg.DefaultVoice
	}
	job.MixBackground = flagMix || cfg.MixBackgroundAudio
	if job.MixBackground {
		job.BackgroundVolume = cfg.BackgroundAudioVolume
		job.SpeechVolume = cfg.SpeechAudioVolume
		if cmd.Flags().Changed("background-volume") {
			job.BackgroundVolume = flagBGVolume
		}
		if cmd.Flags().Changed("speech-volume") {
			job.SpeechVolume = flagSpeechVol
		}
	}

	pipeline := services.NewPipeline(cfg)
	if err := pipeline.ValidateJob(job); err != nil {
		return err
	}

	pipeline.SetProgressCallback(func(stage string, percent int, message string) {
		fmt.Printf("[%3d%%] %-13s %s\n", percent, stage, message)
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := pipeline.Process(ctx, job); err != nil {
		return err
	}

	fmt.Printf("\nDone: %s\n", job.OutputPath)
	return nil
}

func main() {
	godotenv.Load()

	defer logger.Sync()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
