// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package geminitest provides a scripted gemini.Generator for tests.
package geminitest

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Call records one GenerateContent invocation.
type Call struct {
	Model  string
	Prompt string
	Parts  []*genai.Part
	Config *genai.GenerateContentConfig
}

// Fake returns Responses in order, one per call. Err, when set, is returned
// from every call instead.
type Fake struct {
	Responses []*genai.GenerateContentResponse
	Err       error
	Calls     []Call
}

// GenerateContent implements gemini.Generator.
func (f *Fake) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	call := Call{Model: model, Config: config}
	for _, c := range contents {
		if c == nil {
			continue
		}
		for _, p := range c.Parts {
			call.Parts = append(call.Parts, p)
			if p != nil && p.Text != "" {
				call.Prompt += p.Text
			}
		}
	}
	f.Calls = append(f.Calls, call)

	if f.Err != nil {
		return nil, f.Err
	}
	if len(f.Calls) > len(f.Responses) {
		return nil, fmt.Errorf("geminitest: unexpected call %d", len(f.Calls))
	}
	return f.Responses[len(f.Calls)-1], nil
}

// TextResponse builds a single-candidate response whose first part is text.
func TextResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

// AudioResponse builds a single-candidate response carrying inline PCM.
func AudioResponse(pcm []byte) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{
				InlineData: &genai.Blob{Data: pcm, MIMEType: "audio/L16;codec=pcm;rate=24000"},
			}}},
		}},
	}
}

// EmptyResponse builds a response with no candidates.
func EmptyResponse() *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{}
}

// GroundedResponse builds a text response carrying grounding metadata. Each
// source is a {title, uri} pair.
func GroundedResponse(text string, sources [][2]string, supports []*genai.GroundingSupport) *genai.GenerateContentResponse {
	resp := TextResponse(text)
	md := &genai.GroundingMetadata{GroundingSupports: supports}
	for _, s := range sources {
		md.GroundingChunks = append(md.GroundingChunks, &genai.GroundingChunk{
			Web: &genai.GroundingChunkWeb{Title: s[0], URI: s[1]},
		})
	}
	resp.Candidates[0].GroundingMetadata = md
	return resp
}
