// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/multimodal-researcher/pkg/types"
)

func pcmRamp(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(i * 37)
	}
	return out
}

func TestWriteWaveRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		format types.AudioFormat
		bytes  int
	}{
		{"mono 8-bit 8kHz", types.AudioFormat{Channels: 1, SampleRate: 8000, SampleWidth: 1}, 256},
		{"stereo 24-bit 48kHz", types.AudioFormat{Channels: 2, SampleRate: 48000, SampleWidth: 3}, 1200},
		{"mono 16-bit 24kHz", types.AudioFormat{Channels: 1, SampleRate: 24000, SampleWidth: 2}, 4800},
		{"stereo 16-bit 44.1kHz", types.AudioFormat{Channels: 2, SampleRate: 44100, SampleWidth: 2}, 4000},
		{"mono 32-bit 16kHz", types.AudioFormat{Channels: 1, SampleRate: 16000, SampleWidth: 4}, 800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.wav")
			pcm := pcmRamp(tt.bytes)

			require.NoError(t, WriteWave(path, pcm, tt.format.Channels, tt.format.SampleRate, tt.format.SampleWidth))

			got, err := ReadWave(path)
			require.NoError(t, err)
			assert.Equal(t, tt.format, got.Format)
			assert.Equal(t, pcm, got.PCM)
		})
	}
}

func TestWriteWaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	stale := make([]byte, 512)
	require.NoError(t, os.WriteFile(path, stale, 0o644))

	pcm := pcmRamp(8)
	require.NoError(t, WriteWave(path, pcm, 1, 24000, 2))

	got, err := ReadWave(path)
	require.NoError(t, err)
	assert.Equal(t, pcm, got.PCM)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(len(stale)), "existing file should be truncated")
}

func TestWriteWavePartialFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")

	err := WriteWave(path, []byte{1, 2, 3}, 1, 24000, 2)
	require.ErrorIs(t, err, ErrInvalidPCM)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file should be created for a rejected payload")
}

func TestWriteWaveBadFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	err := WriteWave(path, pcmRamp(4), 0, 24000, 2)
	require.ErrorIs(t, err, ErrInvalidPCM)
}

func TestWriteWaveMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.wav")
	err := WriteWave(path, pcmRamp(4), 1, 24000, 2)
	require.ErrorIs(t, err, ErrFileSystem)
}

func TestReadWaveRejectsNonWave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("this is not audio"), 0o644))

	_, err := ReadWave(path)
	require.Error(t, err)
}

func TestSampleCodec(t *testing.T) {
	for _, width := range []int{1, 2, 3, 4} {
		pcm := pcmRamp(width * 16)
		assert.Equal(t, pcm, encodeSamples(decodeSamples(pcm, width), width), "width %d", width)
	}

	// Sign extension for 24-bit samples.
	assert.Equal(t, []int{-1}, decodeSamples([]byte{0xff, 0xff, 0xff}, 3))
	assert.Equal(t, []int{-32768}, decodeSamples([]byte{0x00, 0x80}, 2))
}

func TestArtifact(t *testing.T) {
	a := Artifact("x.wav", make([]byte, 10), types.AudioFormat{Channels: 1, SampleRate: 24000, SampleWidth: 2})
	assert.Equal(t, types.AudioArtifact{Filename: "x.wav", Channels: 1, SampleRate: 24000, SampleWidth: 2, Bytes: 10}, a)
}
