// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render displays a Gemini response on the terminal and extracts its
// text and citation metadata.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"google.golang.org/genai"

	"github.com/pdiddy/multimodal-researcher/internal/gemini"
	"github.com/pdiddy/multimodal-researcher/pkg/types"
)

const (
	// maxSupports is the number of supported segments printed per response.
	maxSupports = 5

	// maxSnippet is the rune length at which printed segments are cut.
	maxSnippet = 100

	noTitle = "No title"
	noURI   = "No URI"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	boldStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// Rendered is the data extracted from one response.
type Rendered struct {
	// Text is the primary text of the first candidate.
	Text string

	// SourcesText is the numbered "N. title\n   uri" block, empty when the
	// response carried no web sources.
	SourcesText string

	Sources  []types.Source
	Supports []types.Support
}

// Renderer prints responses as terminal markdown.
type Renderer struct {
	// Style is a glamour standard style name ("dark", "light", "notty", ...).
	// Empty selects a style from the terminal.
	Style string

	// WordWrap is the markdown wrap width; 0 uses glamour's default.
	WordWrap int
}

// Render extracts text and grounding metadata from resp and writes a
// human-readable view to w. Only a missing primary text is an error; absent
// grounding metadata yields empty sources.
func (r Renderer) Render(resp *genai.GenerateContentResponse, w io.Writer) (Rendered, error) {
	text, err := gemini.Text(resp)
	if err != nil {
		return Rendered{}, err
	}
	out := Extract(resp.Candidates[0], text)

	if w == nil {
		return out, nil
	}

	fmt.Fprintln(w, r.markdown(text))

	if resp.Candidates[0].GroundingMetadata == nil {
		return out, nil
	}

	rule := strings.Repeat("=", 50)
	fmt.Fprintln(w, "\n"+rule)
	fmt.Fprintln(w, headingStyle.Render("References & Sources"))
	fmt.Fprintln(w, rule)

	if len(out.Sources) > 0 {
		fmt.Fprintln(w, "\n"+boldStyle.Render(fmt.Sprintf("Sources (%d):", len(out.Sources))))
		for _, s := range out.Sources {
			fmt.Fprintf(w, "%d. %s\n", s.Index, s.Title)
			fmt.Fprintf(w, "   %s\n", dimStyle.Render(s.URI))
		}
	}

	if len(out.Supports) > 0 {
		fmt.Fprintln(w, "\n"+boldStyle.Render("Text segments with source backing:"))
		for i, s := range out.Supports {
			if i == maxSupports {
				break
			}
			fmt.Fprintf(w, "• \"%s\" %s\n", Snippet(s.Text), dimStyle.Render("(sources: "+joinInts(s.SourceIndices)+")"))
		}
	}

	return out, nil
}

func (r Renderer) markdown(text string) string {
	opts := []glamour.TermRendererOption{}
	if r.Style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(r.Style))
	}
	if r.WordWrap > 0 {
		opts = append(opts, glamour.WithWordWrap(r.WordWrap))
	}

	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return text
	}
	md, err := tr.Render(text)
	if err != nil {
		return text
	}
	return md
}

// Extract collects sources and supports from a candidate's grounding
// metadata. Chunks without web data keep their position in the numbering
// but are not listed, so support indices stay aligned with the API's chunk
// indices.
func Extract(cand *genai.Candidate, text string) Rendered {
	out := Rendered{Text: text}
	if cand == nil || cand.GroundingMetadata == nil {
		return out
	}
	md := cand.GroundingMetadata

	var lines []string
	for i, chunk := range md.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		src := types.Source{
			Index: i + 1,
			Title: orDefault(chunk.Web.Title, noTitle),
			URI:   orDefault(chunk.Web.URI, noURI),
		}
		out.Sources = append(out.Sources, src)
		lines = append(lines, fmt.Sprintf("%d. %s\n   %s", src.Index, src.Title, src.URI))
	}
	out.SourcesText = strings.Join(lines, "\n")

	for _, sup := range md.GroundingSupports {
		if sup == nil || sup.Segment == nil {
			continue
		}
		indices := make([]int, 0, len(sup.GroundingChunkIndices))
		for _, idx := range sup.GroundingChunkIndices {
			indices = append(indices, int(idx)+1)
		}
		out.Supports = append(out.Supports, types.Support{
			Text:          sup.Segment.Text,
			SourceIndices: indices,
		})
	}

	return out
}

// Snippet cuts s to maxSnippet runes, appending "..." when it was longer.
func Snippet(s string) string {
	runes := []rune(s)
	if len(runes) <= maxSnippet {
		return s
	}
	return string(runes[:maxSnippet]) + "..."
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
