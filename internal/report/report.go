// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report synthesizes search results and video analysis into a
// markdown research report.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/pdiddy/multimodal-researcher/internal/gemini"
	"github.com/pdiddy/multimodal-researcher/pkg/types"
)

// ErrSynthesis reports a failed or malformed synthesis call.
var ErrSynthesis = errors.New("research synthesis failed")

// Synthesize sends one synthesis request and wraps the returned prose in the
// report layout. It makes no retries and writes no files.
func Synthesize(ctx context.Context, gen gemini.Generator, in types.ResearchInput, cfg types.Config, log *slog.Logger) (types.SynthesisResult, error) {
	if log == nil {
		log = slog.Default()
	}

	prompt, err := Prompt(in)
	if err != nil {
		return types.SynthesisResult{}, fmt.Errorf("%w: rendering prompt: %w", ErrSynthesis, err)
	}

	log.Debug("synthesizing report",
		slog.String("model", cfg.SynthesisModel),
		slog.Int("prompt_bytes", len(prompt)))

	resp, err := gen.GenerateContent(ctx, cfg.SynthesisModel, genai.Text(prompt), gemini.TextConfig(cfg.SynthesisTemperature))
	if err != nil {
		return types.SynthesisResult{}, fmt.Errorf("%w: %w", ErrSynthesis, err)
	}
	text, err := gemini.Text(resp)
	if err != nil {
		return types.SynthesisResult{}, fmt.Errorf("%w: %w", ErrSynthesis, err)
	}

	doc, err := Format(in, text)
	if err != nil {
		return types.SynthesisResult{}, fmt.Errorf("%w: formatting report: %w", ErrSynthesis, err)
	}

	log.Info("report synthesized", slog.Int("synthesis_bytes", len(text)))
	return types.SynthesisResult{SynthesisText: text, Report: doc}, nil
}
