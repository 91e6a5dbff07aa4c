// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/multimodal-researcher/internal/gemini"
	"github.com/pdiddy/multimodal-researcher/internal/history"
	"github.com/pdiddy/multimodal-researcher/internal/pipeline"
	"github.com/pdiddy/multimodal-researcher/internal/render"
	"github.com/pdiddy/multimodal-researcher/internal/secrets"
)

var runCmd = &cobra.Command{
	Use:   "run [topic]",
	Short: "Research a topic and produce a report, script, and podcast audio",
	Long: `Run executes the full workflow for one topic: search-grounded research,
optional video analysis, report synthesis, podcast script generation, and
speech synthesis. Artifacts are written to the output directory:

  research_report.md   markdown report with sources
  podcast_script.txt   two-speaker dialogue
  research_podcast.wav narrated episode (single voice for both speakers)
  manifest.yaml        run metadata and structured citations

Any stage failure aborts the run; files already written are kept.`,
	Args: cobra.ArbitraryArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("video-url", "", "video to analyze alongside the web search (e.g. a YouTube URL)")
	runCmd.Flags().String("style", "", "markdown style for console output: dark, light, notty (default: detect)")
	runCmd.Flags().Bool("no-history", false, "do not record the run in the history database")
	runCmd.Flags().String("voice", "", "prebuilt TTS voice name")
	runCmd.Flags().String("synthesis-model", "", "model for the report and script")
	runCmd.Flags().String("tts-model", "", "model for speech synthesis")

	viper.BindPFlag("voice_name", runCmd.Flags().Lookup("voice"))
	viper.BindPFlag("synthesis_model", runCmd.Flags().Lookup("synthesis-model"))
	viper.BindPFlag("tts_model", runCmd.Flags().Lookup("tts-model"))

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	topic := strings.TrimSpace(strings.Join(args, " "))
	if topic == "" {
		return fmt.Errorf("provide a research topic")
	}
	videoURL, _ := cmd.Flags().GetString("video-url")
	style, _ := cmd.Flags().GetString("style")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	apiKey, err := secrets.APIKey(loadedSecrets)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	gen, err := gemini.NewClient(ctx, apiKey)
	if err != nil {
		return err
	}

	deps := pipeline.Deps{
		Generator: gen,
		Config:    cfg,
		Renderer:  render.Renderer{Style: style, WordWrap: 100},
		Out:       os.Stdout,
		Logger:    slog.Default(),
	}

	if !noHistory {
		store, err := history.Open(cfg.OutputDir)
		if err != nil {
			return err
		}
		defer store.Close()
		deps.History = store
	}

	result, err := pipeline.Run(ctx, deps, pipeline.Input{Topic: topic, VideoURL: videoURL})
	if err != nil {
		return err
	}

	m := result.Manifest
	fmt.Fprintf(os.Stdout, "\nrun %s complete\n", m.RunID)
	fmt.Fprintf(os.Stdout, "  report: %s\n", m.ReportPath)
	fmt.Fprintf(os.Stdout, "  script: %s (%d speaker turns)\n", m.ScriptPath, m.SpeakerTurns)
	fmt.Fprintf(os.Stdout, "  audio:  %s\n", m.Audio.Filename)
	return nil
}
