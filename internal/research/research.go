// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package research gathers the two source texts the synthesizers work from:
// a search-grounded overview of the topic and an analysis of a video.
package research

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"text/template"

	"google.golang.org/genai"

	"github.com/pdiddy/multimodal-researcher/internal/gemini"
	"github.com/pdiddy/multimodal-researcher/internal/render"
	"github.com/pdiddy/multimodal-researcher/pkg/types"
)

var (
	ErrSearch        = errors.New("web search failed")
	ErrVideoAnalysis = errors.New("video analysis failed")
)

var searchPromptTmpl = template.Must(template.New("search").Parse(
	`"{{.Topic}}" বিষয়ে সাম্প্রতিক ও নির্ভরযোগ্য তথ্য অনুসন্ধান করুন এবং বাংলায় একটি বিস্তারিত সংক্ষিপ্তসার দিন। মূল তথ্য, পরিসংখ্যান ও সাম্প্রতিক ঘটনাবলি অন্তর্ভুক্ত করুন।`))

var videoPromptTmpl = template.Must(template.New("video").Parse(
	`ভিডিওটি বিশ্লেষণ করুন এবং "{{.Topic}}" বিষয়ের সাথে সম্পর্কিত মূল বিষয়, যুক্তি ও অন্তর্দৃষ্টিগুলো বাংলায় সংক্ষেপে তুলে ধরুন।`))

// SearchResult is the output of the search stage.
type SearchResult struct {
	Text        string
	SourcesText string
	Sources     []types.Source
	Supports    []types.Support
}

// Search asks the model to research topic with the Google Search tool
// enabled, renders the answer to w, and returns its text and citations.
func Search(ctx context.Context, gen gemini.Generator, r render.Renderer, topic string, cfg types.Config, w io.Writer, log *slog.Logger) (SearchResult, error) {
	if log == nil {
		log = slog.Default()
	}
	prompt, err := execute(searchPromptTmpl, topic)
	if err != nil {
		return SearchResult{}, fmt.Errorf("%w: rendering prompt: %w", ErrSearch, err)
	}

	conf := gemini.TextConfig(cfg.SearchTemperature)
	conf.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}

	log.Debug("searching", slog.String("model", cfg.SearchModel), slog.String("topic", topic))
	resp, err := gen.GenerateContent(ctx, cfg.SearchModel, genai.Text(prompt), conf)
	if err != nil {
		return SearchResult{}, fmt.Errorf("%w: %w", ErrSearch, err)
	}

	out, err := r.Render(resp, w)
	if err != nil {
		return SearchResult{}, fmt.Errorf("%w: %w", ErrSearch, err)
	}

	log.Info("search complete", slog.Int("sources", len(out.Sources)))
	return SearchResult{
		Text:        out.Text,
		SourcesText: out.SourcesText,
		Sources:     out.Sources,
		Supports:    out.Supports,
	}, nil
}

// AnalyzeVideo sends the video at videoURL together with an analysis prompt.
// An empty videoURL skips the call and returns empty text.
func AnalyzeVideo(ctx context.Context, gen gemini.Generator, r render.Renderer, topic, videoURL string, cfg types.Config, w io.Writer, log *slog.Logger) (string, error) {
	if log == nil {
		log = slog.Default()
	}
	if videoURL == "" {
		log.Info("no video url, skipping video analysis")
		return "", nil
	}

	prompt, err := execute(videoPromptTmpl, topic)
	if err != nil {
		return "", fmt.Errorf("%w: rendering prompt: %w", ErrVideoAnalysis, err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			{FileData: &genai.FileData{FileURI: videoURL}},
			{Text: prompt},
		}, genai.RoleUser),
	}

	log.Debug("analyzing video", slog.String("model", cfg.VideoModel), slog.String("url", videoURL))
	resp, err := gen.GenerateContent(ctx, cfg.VideoModel, contents, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrVideoAnalysis, err)
	}

	out, err := r.Render(resp, w)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrVideoAnalysis, err)
	}

	log.Info("video analysis complete", slog.Int("text_bytes", len(out.Text)))
	return out.Text, nil
}

func execute(tmpl *template.Template, topic string) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Topic string }{Topic: topic}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
