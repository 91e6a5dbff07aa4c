// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Source is one web page cited by a search-grounded response.
type Source struct {
	// Index is the 1-based position used in rendered citations.
	Index int `json:"index" yaml:"index"`

	Title string `json:"title" yaml:"title"`
	URI   string `json:"uri" yaml:"uri"`
}

// Support links a segment of generated text to the sources backing it.
type Support struct {
	// Text is the supported segment as returned by the API.
	Text string `json:"text" yaml:"text"`

	// SourceIndices are 1-based indexes into the run's Source list.
	SourceIndices []int `json:"source_indices" yaml:"source_indices"`
}

// ResearchInput is the material both synthesizers work from.
type ResearchInput struct {
	Topic             string
	SearchText        string
	VideoText         string
	SearchSourcesText string
	VideoURL          string
}

// SynthesisResult is the output of report synthesis. It is created once per
// run and never mutated.
type SynthesisResult struct {
	// SynthesisText is the prose returned by the model.
	SynthesisText string `json:"synthesis_text" yaml:"synthesis_text"`

	// Report is SynthesisText wrapped in the fixed markdown layout.
	Report string `json:"report" yaml:"report"`
}

// PodcastScript is the generated two-speaker dialogue. Downstream stages
// treat it as opaque text.
type PodcastScript string

// AudioArtifact describes a persisted WAVE file.
type AudioArtifact struct {
	Filename    string `json:"filename" yaml:"filename"`
	Channels    int    `json:"channels" yaml:"channels"`
	SampleRate  int    `json:"sample_rate" yaml:"sample_rate"`
	SampleWidth int    `json:"sample_width" yaml:"sample_width"`

	// Bytes is the length of the PCM payload, excluding the header.
	Bytes int `json:"bytes" yaml:"bytes"`
}

// RunStatus is the outcome of a pipeline run.
type RunStatus string

const (
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// Manifest is the structured record of a run written next to its artifacts.
type Manifest struct {
	RunID      string    `json:"run_id" yaml:"run_id"`
	Topic      string    `json:"topic" yaml:"topic"`
	VideoURL   string    `json:"video_url,omitempty" yaml:"video_url,omitempty"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`

	SynthesisModel string `json:"synthesis_model" yaml:"synthesis_model"`
	TTSModel       string `json:"tts_model" yaml:"tts_model"`
	VoiceName      string `json:"voice_name" yaml:"voice_name"`

	ReportPath string        `json:"report_path" yaml:"report_path"`
	ScriptPath string        `json:"script_path" yaml:"script_path"`
	Audio      AudioArtifact `json:"audio" yaml:"audio"`

	// SpeakerTurns is the number of labeled lines found in the script.
	SpeakerTurns int `json:"speaker_turns" yaml:"speaker_turns"`

	Sources  []Source  `json:"sources,omitempty" yaml:"sources,omitempty"`
	Supports []Support `json:"supports,omitempty" yaml:"supports,omitempty"`
}

// RunResult is what a successful pipeline run returns to its caller.
type RunResult struct {
	Manifest  Manifest
	Synthesis SynthesisResult
	Script    PodcastScript
}

// RunRecord is one row of run history.
type RunRecord struct {
	ID         string    `json:"id" yaml:"id"`
	Topic      string    `json:"topic" yaml:"topic"`
	VideoURL   string    `json:"video_url,omitempty" yaml:"video_url,omitempty"`
	Status     RunStatus `json:"status" yaml:"status"`
	Error      string    `json:"error,omitempty" yaml:"error,omitempty"`
	ReportPath string    `json:"report_path,omitempty" yaml:"report_path,omitempty"`
	ScriptPath string    `json:"script_path,omitempty" yaml:"script_path,omitempty"`
	AudioPath  string    `json:"audio_path,omitempty" yaml:"audio_path,omitempty"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
}
