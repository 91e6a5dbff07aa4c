// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// AudioFormat describes the PCM layout of synthesized speech.
type AudioFormat struct {
	// Channels is the number of interleaved channels (default 1).
	Channels int `json:"channels" yaml:"channels" mapstructure:"channels"`

	// SampleRate is the number of frames per second (default 24000).
	SampleRate int `json:"sample_rate" yaml:"sample_rate" mapstructure:"sample_rate"`

	// SampleWidth is the size of one sample in bytes (default 2).
	SampleWidth int `json:"sample_width" yaml:"sample_width" mapstructure:"sample_width"`
}

// Validate reports whether the format can be written to a PCM WAVE container.
func (f AudioFormat) Validate() error {
	if f.Channels < 1 {
		return fmt.Errorf("audio channels must be positive, got %d", f.Channels)
	}
	if f.SampleRate < 1 {
		return fmt.Errorf("audio sample rate must be positive, got %d", f.SampleRate)
	}
	if f.SampleWidth < 1 || f.SampleWidth > 4 {
		return fmt.Errorf("audio sample width must be 1-4 bytes, got %d", f.SampleWidth)
	}
	return nil
}

// Config holds the static settings for one research run. It is built once at
// startup and treated as read-only afterwards.
type Config struct {
	// SearchModel is the model used for search-grounded topic research.
	SearchModel string `json:"search_model" yaml:"search_model" mapstructure:"search_model"`

	// SearchTemperature is the sampling temperature for the search stage.
	SearchTemperature float32 `json:"search_temperature" yaml:"search_temperature" mapstructure:"search_temperature"`

	// VideoModel is the model used to analyze the optional source video.
	VideoModel string `json:"video_model" yaml:"video_model" mapstructure:"video_model"`

	// SynthesisModel is the model used for the report and the podcast script.
	SynthesisModel string `json:"synthesis_model" yaml:"synthesis_model" mapstructure:"synthesis_model"`

	// SynthesisTemperature is the sampling temperature for report synthesis.
	SynthesisTemperature float32 `json:"synthesis_temperature" yaml:"synthesis_temperature" mapstructure:"synthesis_temperature"`

	// PodcastScriptTemperature is the sampling temperature for the dialogue script.
	PodcastScriptTemperature float32 `json:"podcast_script_temperature" yaml:"podcast_script_temperature" mapstructure:"podcast_script_temperature"`

	// TTSModel is the speech-generation model.
	TTSModel string `json:"tts_model" yaml:"tts_model" mapstructure:"tts_model"`

	// VoiceName is the prebuilt voice used for the whole episode. The speech
	// endpoint renders both speakers with this one voice.
	VoiceName string `json:"voice_name" yaml:"voice_name" mapstructure:"voice_name"`

	// Audio is the PCM layout of the speech payload.
	Audio AudioFormat `json:"audio" yaml:"audio" mapstructure:"audio"`

	// OutputDir receives the report, script, audio, manifest, and history database.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`
}

// DefaultConfig returns the settings used when no config file, environment
// variable, or flag overrides them.
func DefaultConfig() Config {
	return Config{
		SearchModel:              "gemini-2.5-flash",
		SearchTemperature:        0.0,
		VideoModel:               "gemini-2.5-flash",
		SynthesisModel:           "gemini-2.5-flash",
		SynthesisTemperature:     0.3,
		PodcastScriptTemperature: 0.4,
		TTSModel:                 "gemini-2.5-flash-preview-tts",
		VoiceName:                "Kore",
		Audio: AudioFormat{
			Channels:    1,
			SampleRate:  24000,
			SampleWidth: 2,
		},
		OutputDir: "output",
	}
}

// Validate checks the fields every stage depends on.
func (c Config) Validate() error {
	if c.SynthesisModel == "" {
		return fmt.Errorf("synthesis model is required")
	}
	if c.TTSModel == "" {
		return fmt.Errorf("tts model is required")
	}
	if c.VoiceName == "" {
		return fmt.Errorf("voice name is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	return c.Audio.Validate()
}
