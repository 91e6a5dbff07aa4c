// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the research workflow end to end: web search, video
// analysis, report synthesis, podcast script, narration, and artifact
// persistence. Stages run one after another; the first failure aborts the
// rest and files already written are left in place.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/multimodal-researcher/internal/audio"
	"github.com/pdiddy/multimodal-researcher/internal/gemini"
	"github.com/pdiddy/multimodal-researcher/internal/podcast"
	"github.com/pdiddy/multimodal-researcher/internal/render"
	"github.com/pdiddy/multimodal-researcher/internal/report"
	"github.com/pdiddy/multimodal-researcher/internal/research"
	"github.com/pdiddy/multimodal-researcher/pkg/types"
)

// Artifact filenames inside the output directory.
const (
	ReportFile   = "research_report.md"
	ScriptFile   = "podcast_script.txt"
	AudioFile    = podcast.DefaultFilename
	ManifestFile = "manifest.yaml"
)

// Stage names a pipeline step.
type Stage string

const (
	StageSearch   Stage = "search"
	StageVideo    Stage = "video"
	StageReport   Stage = "report"
	StagePodcast  Stage = "podcast"
	StageArtifact Stage = "artifacts"
)

// StageError tags an error with the stage that produced it.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Recorder persists run history. *history.Store implements it.
type Recorder interface {
	Record(ctx context.Context, rec types.RunRecord) error
}

// Deps are the collaborators a run needs. Generator and Config are required.
type Deps struct {
	Generator gemini.Generator
	Config    types.Config
	Renderer  render.Renderer

	// Out receives rendered responses and progress lines. Nil discards them.
	Out io.Writer

	// History, when set, receives one record per run.
	History Recorder

	Logger *slog.Logger

	// Now and NewID are overridable for tests.
	Now   func() time.Time
	NewID func() string
}

// Input is what the caller supplies per run.
type Input struct {
	Topic    string
	VideoURL string
}

// Run executes every stage in order and writes the report, script, audio,
// and manifest into Config.OutputDir.
func Run(ctx context.Context, deps Deps, in Input) (types.RunResult, error) {
	deps = withDefaults(deps)
	log := deps.Logger
	cfg := deps.Config

	if in.Topic == "" {
		return types.RunResult{}, fmt.Errorf("topic is required")
	}
	if deps.Generator == nil {
		return types.RunResult{}, fmt.Errorf("generator is required")
	}
	if err := cfg.Validate(); err != nil {
		return types.RunResult{}, fmt.Errorf("invalid config: %w", err)
	}

	m := types.Manifest{
		RunID:          deps.NewID(),
		Topic:          in.Topic,
		VideoURL:       in.VideoURL,
		StartedAt:      deps.Now(),
		SynthesisModel: cfg.SynthesisModel,
		TTSModel:       cfg.TTSModel,
		VoiceName:      cfg.VoiceName,
	}
	log = log.With(slog.String("run_id", m.RunID))

	result, err := run(ctx, deps, log, in, &m)
	m.FinishedAt = deps.Now()
	deps.record(ctx, log, m, err)
	if err != nil {
		log.Error("run failed", slog.Any("error", err))
		return types.RunResult{}, err
	}

	log.Info("run complete",
		slog.String("report", m.ReportPath),
		slog.String("script", m.ScriptPath),
		slog.String("audio", m.Audio.Filename))
	return result, nil
}

func run(ctx context.Context, deps Deps, log *slog.Logger, in Input, m *types.Manifest) (types.RunResult, error) {
	cfg := deps.Config
	w := deps.Out

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return types.RunResult{}, stageErr(StageArtifact, fmt.Errorf("%w: creating output directory: %w", audio.ErrFileSystem, err))
	}

	fmt.Fprintf(w, "researching %q\n", in.Topic)
	search, err := research.Search(ctx, deps.Generator, deps.Renderer, in.Topic, cfg, w, log)
	if err != nil {
		return types.RunResult{}, stageErr(StageSearch, err)
	}
	m.Sources = search.Sources
	m.Supports = search.Supports

	video, err := research.AnalyzeVideo(ctx, deps.Generator, deps.Renderer, in.Topic, in.VideoURL, cfg, w, log)
	if err != nil {
		return types.RunResult{}, stageErr(StageVideo, err)
	}

	material := types.ResearchInput{
		Topic:             in.Topic,
		SearchText:        search.Text,
		VideoText:         video,
		SearchSourcesText: search.SourcesText,
		VideoURL:          in.VideoURL,
	}

	synthesis, err := report.Synthesize(ctx, deps.Generator, material, cfg, log)
	if err != nil {
		return types.RunResult{}, stageErr(StageReport, err)
	}
	reportPath := filepath.Join(cfg.OutputDir, ReportFile)
	if err := writeText(reportPath, synthesis.Report); err != nil {
		return types.RunResult{}, stageErr(StageArtifact, err)
	}
	m.ReportPath = reportPath
	fmt.Fprintf(w, "report saved to %s\n", reportPath)

	audioPath := filepath.Join(cfg.OutputDir, AudioFile)
	episode, err := podcast.Synthesize(ctx, deps.Generator, material, audioPath, cfg, log)
	if episode.Script != "" {
		// The script is kept even when narration fails.
		scriptPath := filepath.Join(cfg.OutputDir, ScriptFile)
		if werr := writeText(scriptPath, string(episode.Script)); werr != nil {
			return types.RunResult{}, stageErr(StageArtifact, errors.Join(err, werr))
		}
		m.ScriptPath = scriptPath
		m.SpeakerTurns = len(podcast.SpeakerTurns(episode.Script))
		fmt.Fprintf(w, "script saved to %s\n", scriptPath)
	}
	if err != nil {
		return types.RunResult{}, stageErr(StagePodcast, err)
	}
	m.Audio = episode.Audio
	fmt.Fprintf(w, "podcast audio saved to %s\n", audioPath)

	m.FinishedAt = deps.Now()
	if err := WriteManifest(filepath.Join(cfg.OutputDir, ManifestFile), *m); err != nil {
		return types.RunResult{}, stageErr(StageArtifact, err)
	}

	return types.RunResult{
		Manifest:  *m,
		Synthesis: synthesis,
		Script:    episode.Script,
	}, nil
}

// WriteManifest marshals m to a YAML file at path.
func WriteManifest(path string, m types.Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	return writeText(path, string(data))
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (types.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Manifest{}, fmt.Errorf("%w: reading manifest: %w", audio.ErrFileSystem, err)
	}
	var m types.Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return types.Manifest{}, fmt.Errorf("parsing manifest: %w", err)
	}
	return m, nil
}

func writeText(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %w", audio.ErrFileSystem, path, err)
	}
	return nil
}

func stageErr(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}

func (d Deps) record(ctx context.Context, log *slog.Logger, m types.Manifest, runErr error) {
	if d.History == nil {
		return
	}
	rec := types.RunRecord{
		ID:         m.RunID,
		Topic:      m.Topic,
		VideoURL:   m.VideoURL,
		Status:     types.RunSucceeded,
		ReportPath: m.ReportPath,
		ScriptPath: m.ScriptPath,
		AudioPath:  m.Audio.Filename,
		StartedAt:  m.StartedAt,
		FinishedAt: m.FinishedAt,
	}
	if runErr != nil {
		rec.Status = types.RunFailed
		rec.Error = runErr.Error()
	}
	// A cancelled run is still recorded.
	if err := d.History.Record(context.WithoutCancel(ctx), rec); err != nil {
		log.Warn("recording run history failed", slog.Any("error", err))
	}
}

func withDefaults(d Deps) Deps {
	if d.Out == nil {
		d.Out = io.Discard
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.NewID == nil {
		d.NewID = uuid.NewString
	}
	return d
}
