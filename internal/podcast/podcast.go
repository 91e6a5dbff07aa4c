// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package podcast turns research material into a two-speaker dialogue script
// and a narrated WAVE file.
//
// The speech endpoint is called with one prebuilt voice, so both speakers are
// narrated in the same voice. This is a constraint of the API as used here,
// not something the package tries to work around.
package podcast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/pdiddy/multimodal-researcher/internal/audio"
	"github.com/pdiddy/multimodal-researcher/internal/gemini"
	"github.com/pdiddy/multimodal-researcher/pkg/types"
)

// DefaultFilename is used when the caller passes an empty filename.
const DefaultFilename = "research_podcast.wav"

var (
	// ErrScriptGeneration reports a failed or malformed dialogue call.
	ErrScriptGeneration = errors.New("podcast script generation failed")

	// ErrAudioGeneration reports a speech response without a usable payload.
	ErrAudioGeneration = errors.New("podcast audio generation failed")
)

// Result is the output of Synthesize.
type Result struct {
	Script types.PodcastScript
	Audio  types.AudioArtifact
}

// Synthesize generates the dialogue script, narrates it, and writes the audio
// to filename. A failure in a later stage leaves files from earlier stages
// in place. Write failures wrap audio.ErrFileSystem.
func Synthesize(ctx context.Context, gen gemini.Generator, in types.ResearchInput, filename string, cfg types.Config, log *slog.Logger) (Result, error) {
	if log == nil {
		log = slog.Default()
	}
	if filename == "" {
		filename = DefaultFilename
	}

	script, err := GenerateScript(ctx, gen, in, cfg, log)
	if err != nil {
		return Result{}, err
	}

	pcm, err := GenerateSpeech(ctx, gen, script, cfg, log)
	if err != nil {
		return Result{Script: script}, err
	}

	f := cfg.Audio
	if err := audio.WriteWave(filename, pcm, f.Channels, f.SampleRate, f.SampleWidth); err != nil {
		if errors.Is(err, audio.ErrInvalidPCM) {
			return Result{Script: script}, fmt.Errorf("%w: %w", ErrAudioGeneration, err)
		}
		return Result{Script: script}, err
	}

	log.Info("podcast saved", slog.String("file", filename), slog.Int("pcm_bytes", len(pcm)))
	return Result{Script: script, Audio: audio.Artifact(filename, pcm, f)}, nil
}

// GenerateScript asks the text endpoint for the dialogue.
func GenerateScript(ctx context.Context, gen gemini.Generator, in types.ResearchInput, cfg types.Config, log *slog.Logger) (types.PodcastScript, error) {
	if log == nil {
		log = slog.Default()
	}
	prompt, err := ScriptPrompt(in)
	if err != nil {
		return "", fmt.Errorf("%w: rendering prompt: %w", ErrScriptGeneration, err)
	}

	resp, err := gen.GenerateContent(ctx, cfg.SynthesisModel, genai.Text(prompt), gemini.TextConfig(cfg.PodcastScriptTemperature))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrScriptGeneration, err)
	}
	text, err := gemini.Text(resp)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrScriptGeneration, err)
	}

	script := types.PodcastScript(text)
	log.Info("podcast script generated", slog.Int("speaker_turns", len(SpeakerTurns(script))))
	return script, nil
}

// GenerateSpeech narrates script with the configured voice and returns the
// raw PCM payload.
func GenerateSpeech(ctx context.Context, gen gemini.Generator, script types.PodcastScript, cfg types.Config, log *slog.Logger) ([]byte, error) {
	if log == nil {
		log = slog.Default()
	}
	prompt, err := SpeechPrompt(script)
	if err != nil {
		return nil, fmt.Errorf("%w: rendering prompt: %w", ErrAudioGeneration, err)
	}

	log.Debug("synthesizing speech",
		slog.String("model", cfg.TTSModel),
		slog.String("voice", cfg.VoiceName))

	resp, err := gen.GenerateContent(ctx, cfg.TTSModel, genai.Text(prompt), gemini.SpeechConfig(cfg.VoiceName))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAudioGeneration, err)
	}
	blob, err := gemini.InlineData(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAudioGeneration, err)
	}
	return blob.Data, nil
}
