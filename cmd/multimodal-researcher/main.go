// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the multimodal-researcher CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/multimodal-researcher/internal/secrets"
	"github.com/pdiddy/multimodal-researcher/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds key files loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the multimodal-researcher CLI.
var rootCmd = &cobra.Command{
	Use:   "multimodal-researcher",
	Short: "Research a topic and publish a report and a podcast episode",
	Long: `multimodal-researcher researches a topic with search-grounded Gemini
calls, optionally analyzes a video, synthesizes a Bengali research report,
writes a two-speaker podcast script, and narrates it to a WAVE file.

Credentials come from GEMINI_API_KEY, a .env file, or .secrets/gemini-api-key.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(viper.GetBool("verbose"))

		if err := secrets.LoadDotenv(".env"); err != nil {
			return err
		}
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./multimodal-researcher.yaml or ~/.config/multimodal-researcher/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("output-dir", "", "directory for artifacts and run history (default \"output\")")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("output_dir", rootCmd.PersistentFlags().Lookup("output-dir"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("multimodal-researcher")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "multimodal-researcher"))
		}
	}

	setConfigDefaults(viper.GetViper(), types.DefaultConfig())

	viper.SetEnvPrefix("MMR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setConfigDefaults registers every Config field with v so that env
// variables and config files can override each one.
func setConfigDefaults(v *viper.Viper, d types.Config) {
	v.SetDefault("search_model", d.SearchModel)
	v.SetDefault("search_temperature", d.SearchTemperature)
	v.SetDefault("video_model", d.VideoModel)
	v.SetDefault("synthesis_model", d.SynthesisModel)
	v.SetDefault("synthesis_temperature", d.SynthesisTemperature)
	v.SetDefault("podcast_script_temperature", d.PodcastScriptTemperature)
	v.SetDefault("tts_model", d.TTSModel)
	v.SetDefault("voice_name", d.VoiceName)
	v.SetDefault("audio.channels", d.Audio.Channels)
	v.SetDefault("audio.sample_rate", d.Audio.SampleRate)
	v.SetDefault("audio.sample_width", d.Audio.SampleWidth)
	v.SetDefault("output_dir", d.OutputDir)
}

// loadConfig builds the run configuration from v.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
