// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestText(t *testing.T) {
	tests := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		want    string
		wantErr error
	}{
		{
			name:    "nil response",
			resp:    nil,
			wantErr: ErrNilResponse,
		},
		{
			name:    "no candidates",
			resp:    &genai.GenerateContentResponse{},
			wantErr: ErrNoCandidates,
		},
		{
			name:    "nil candidate",
			resp:    &genai.GenerateContentResponse{Candidates: []*genai.Candidate{nil}},
			wantErr: ErrNoCandidates,
		},
		{
			name:    "no content",
			resp:    &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}},
			wantErr: ErrNoContent,
		},
		{
			name: "no parts",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{},
			}}},
			wantErr: ErrNoParts,
		},
		{
			name: "empty text",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{{}}},
			}}},
			wantErr: ErrNoText,
		},
		{
			name: "text",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{{Text: "hello"}, {Text: "ignored"}}},
			}}},
			want: "hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Text(tt.resp)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInlineData(t *testing.T) {
	withPart := func(p *genai.Part) *genai.GenerateContentResponse {
		return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{p}},
		}}}
	}

	_, err := InlineData(&genai.GenerateContentResponse{})
	require.ErrorIs(t, err, ErrNoCandidates)

	_, err = InlineData(withPart(&genai.Part{Text: "not audio"}))
	require.ErrorIs(t, err, ErrNoInlineData)

	_, err = InlineData(withPart(&genai.Part{InlineData: &genai.Blob{}}))
	require.ErrorIs(t, err, ErrNoInlineData)

	blob, err := InlineData(withPart(&genai.Part{InlineData: &genai.Blob{Data: []byte{1, 2}}}))
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, blob.Data)
}

func TestSpeechConfig(t *testing.T) {
	cfg := SpeechConfig("Kore")
	assert.Equal(t, []string{"AUDIO"}, cfg.ResponseModalities)
	require.NotNil(t, cfg.SpeechConfig)
	assert.Equal(t, "Kore", cfg.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName)
}

func TestTextConfig(t *testing.T) {
	cfg := TextConfig(0.3)
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.3, *cfg.Temperature, 1e-6)
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(t.Context(), "")
	require.Error(t, err)
}
