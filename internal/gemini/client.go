// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gemini wraps the Google Gen AI client behind the narrow interface
// the pipeline stages depend on, and validates response shapes in one place.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Generator is the subset of the Gen AI models service used by every stage.
// *genai.Models satisfies it; tests supply a fake.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// NewClient constructs the Gemini API client once at process startup and
// returns its models service for injection into the stages.
func NewClient(ctx context.Context, apiKey string) (Generator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return client.Models, nil
}

// TextConfig returns a generation config carrying only a temperature.
func TextConfig(temperature float32) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
	}
}

// SpeechConfig returns a generation config requesting audio output rendered
// with a single prebuilt voice.
func SpeechConfig(voice string) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: voice,
				},
			},
		},
	}
}
