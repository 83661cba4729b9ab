package models

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/config"
)

// Config holds application settings persisted between runs.
type Config struct {
	// Basic settings
	DefaultSourceLang string `json:"default_source_lang"`
	DefaultTargetLang string `json:"default_target_lang"`
	DefaultVoice      string `json:"default_voice"`
	OutputDirectory   string `json:"output_directory"`

	// Tool paths
	FFmpegPath string `json:"ffmpeg_path"`

	// YouTube downloads (empty means temp directory)
	YouTubeDownloadDir string `json:"youtube_download_dir"`

	// OpenAI API settings
	OpenAIKey string `json:"openai_key"`

	// Audio mixing settings (keep background music/sounds)
	MixBackgroundAudio    bool    `json:"mix_background_audio"`
	BackgroundAudioVolume float64 `json:"background_audio_volume"` // 0.0-1.0
	SpeechAudioVolume     float64 `json:"speech_audio_volume"`     // 0.0-1.0

	// Keep intermediate files next to the output for debugging
	KeepTempFiles bool `json:"keep_temp_files"`
}

func DefaultConfig() *Config {
	return &Config{
		DefaultSourceLang: config.DefaultSourceLang,
		DefaultTargetLang: config.DefaultTargetLang,
		DefaultVoice:      config.DefaultVoice,
		OutputDirectory:   "",

		FFmpegPath: "",

		YouTubeDownloadDir: "",

		OpenAIKey: os.Getenv("OPENAI_API_KEY"),

		MixBackgroundAudio:    false,
		BackgroundAudioVolume: config.DefaultBackgroundVolume,
		SpeechAudioVolume:     config.DefaultSpeechVolume,

		KeepTempFiles: false,
	}
}

func (c *Config) ConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "video-translator", "config.json")
}

func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(cfg.ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// The environment wins over a stale key in the config file.
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.OpenAIKey = key
	}

	return cfg, nil
}

func (c *Config) Save() error {
	configPath := c.ConfigPath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600) // User-only permissions for security
}
