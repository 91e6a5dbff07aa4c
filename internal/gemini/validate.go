// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gemini

import (
	"errors"

	"google.golang.org/genai"
)

// Response shape errors. Each names the first level that was missing.
var (
	ErrNilResponse  = errors.New("response is nil")
	ErrNoCandidates = errors.New("response has no candidates")
	ErrNoContent    = errors.New("first candidate has no content")
	ErrNoParts      = errors.New("candidate content has no parts")
	ErrNoText       = errors.New("first part has no text")
	ErrNoInlineData = errors.New("first part has no inline data")
)

// FirstPart validates the candidate → content → parts chain and returns the
// first part together with its candidate.
func FirstPart(resp *genai.GenerateContentResponse) (*genai.Candidate, *genai.Part, error) {
	if resp == nil {
		return nil, nil, ErrNilResponse
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil, nil, ErrNoCandidates
	}
	cand := resp.Candidates[0]
	if cand.Content == nil {
		return cand, nil, ErrNoContent
	}
	if len(cand.Content.Parts) == 0 || cand.Content.Parts[0] == nil {
		return cand, nil, ErrNoParts
	}
	return cand, cand.Content.Parts[0], nil
}

// Text returns the text of the first part of the first candidate.
func Text(resp *genai.GenerateContentResponse) (string, error) {
	_, part, err := FirstPart(resp)
	if err != nil {
		return "", err
	}
	if part.Text == "" {
		return "", ErrNoText
	}
	return part.Text, nil
}

// InlineData returns the inline binary payload of the first part of the
// first candidate.
func InlineData(resp *genai.GenerateContentResponse) (*genai.Blob, error) {
	_, part, err := FirstPart(resp)
	if err != nil {
		return nil, err
	}
	if part.InlineData == nil || len(part.InlineData.Data) == 0 {
		return nil, ErrNoInlineData
	}
	return part.InlineData, nil
}
