// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/pdiddy/multimodal-researcher/internal/gemini"
	"github.com/pdiddy/multimodal-researcher/internal/gemini/geminitest"
	"github.com/pdiddy/multimodal-researcher/pkg/types"
)

func TestRenderPlainText(t *testing.T) {
	var buf bytes.Buffer
	got, err := Renderer{Style: "notty"}.Render(geminitest.TextResponse("Monsoon rainfall is shifting."), &buf)
	require.NoError(t, err)

	assert.Equal(t, "Monsoon rainfall is shifting.", got.Text)
	assert.Empty(t, got.SourcesText)
	assert.Empty(t, got.Sources)
	assert.Contains(t, buf.String(), "Monsoon rainfall")
	assert.NotContains(t, buf.String(), "References & Sources")
}

func TestRenderGrounded(t *testing.T) {
	resp := geminitest.GroundedResponse("Sea levels rise.",
		[][2]string{
			{"IPCC report", "https://ipcc.example/ar6"},
			{"", ""},
		},
		[]*genai.GroundingSupport{
			{Segment: &genai.Segment{Text: "Sea levels rise."}, GroundingChunkIndices: []int32{0, 1}},
			{Segment: nil, GroundingChunkIndices: []int32{0}},
		},
	)

	var buf bytes.Buffer
	got, err := Renderer{Style: "notty"}.Render(resp, &buf)
	require.NoError(t, err)

	assert.Equal(t, []types.Source{
		{Index: 1, Title: "IPCC report", URI: "https://ipcc.example/ar6"},
		{Index: 2, Title: "No title", URI: "No URI"},
	}, got.Sources)
	assert.Equal(t, "1. IPCC report\n   https://ipcc.example/ar6\n2. No title\n   No URI", got.SourcesText)
	assert.Equal(t, []types.Support{{Text: "Sea levels rise.", SourceIndices: []int{1, 2}}}, got.Supports)

	out := buf.String()
	assert.Contains(t, out, "References & Sources")
	assert.Contains(t, out, "Sources (2):")
	assert.Contains(t, out, "1. IPCC report")
	assert.Contains(t, out, "https://ipcc.example/ar6")
	assert.Contains(t, out, "1, 2")
}

func TestRenderSkipsNonWebChunks(t *testing.T) {
	resp := geminitest.TextResponse("text")
	resp.Candidates[0].GroundingMetadata = &genai.GroundingMetadata{
		GroundingChunks: []*genai.GroundingChunk{
			{},
			{Web: &genai.GroundingChunkWeb{Title: "Second", URI: "https://b.example"}},
		},
	}

	got, err := Renderer{}.Render(resp, nil)
	require.NoError(t, err)
	assert.Equal(t, []types.Source{{Index: 2, Title: "Second", URI: "https://b.example"}}, got.Sources)
	assert.Equal(t, "2. Second\n   https://b.example", got.SourcesText)
}

func TestRenderLimitsSupports(t *testing.T) {
	var supports []*genai.GroundingSupport
	for i := 0; i < 8; i++ {
		supports = append(supports, &genai.GroundingSupport{
			Segment:               &genai.Segment{Text: "segment-" + string(rune('a'+i))},
			GroundingChunkIndices: []int32{0},
		})
	}
	resp := geminitest.GroundedResponse("body", [][2]string{{"T", "https://t.example"}}, supports)

	var buf bytes.Buffer
	got, err := Renderer{Style: "notty"}.Render(resp, &buf)
	require.NoError(t, err)

	assert.Len(t, got.Supports, 8, "all supports are returned as data")
	assert.Equal(t, 5, strings.Count(buf.String(), "segment-"), "only five are printed")
}

func TestRenderMissingText(t *testing.T) {
	_, err := Renderer{}.Render(geminitest.EmptyResponse(), nil)
	require.ErrorIs(t, err, gemini.ErrNoCandidates)
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "short", Snippet("short"))

	long := strings.Repeat("জ", 120)
	got := Snippet(long)
	assert.Equal(t, strings.Repeat("জ", 100)+"...", got, "cuts on runes, not bytes")
}

func TestRenderPrintsSegmentsVerbatim(t *testing.T) {
	segment := "বাংলাদেশে \"বন্যা\" র‍যাব"
	resp := geminitest.GroundedResponse(segment,
		[][2]string{{"Report", "https://example.org"}},
		[]*genai.GroundingSupport{
			{Segment: &genai.Segment{Text: segment}, GroundingChunkIndices: []int32{0}},
		},
	)

	var buf bytes.Buffer
	_, err := Renderer{Style: "notty"}.Render(resp, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "• \""+segment+"\"")
	assert.NotContains(t, out, `\"`)
	assert.NotContains(t, out, `\u200d`)
}
