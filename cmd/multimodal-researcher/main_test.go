// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/multimodal-researcher/pkg/types"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	setConfigDefaults(v, types.DefaultConfig())
	v.SetEnvPrefix("MMR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(newTestViper())
	require.NoError(t, err)
	assert.Equal(t, types.DefaultConfig(), cfg)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("MMR_VOICE_NAME", "Puck")
	t.Setenv("MMR_AUDIO_SAMPLE_RATE", "48000")
	t.Setenv("MMR_SYNTHESIS_TEMPERATURE", "0.7")

	cfg, err := loadConfig(newTestViper())
	require.NoError(t, err)
	assert.Equal(t, "Puck", cfg.VoiceName)
	assert.Equal(t, 48000, cfg.Audio.SampleRate)
	assert.InDelta(t, 0.7, cfg.SynthesisTemperature, 1e-6)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "multimodal-researcher.yaml")
	content := "tts_model: custom-tts\naudio:\n  channels: 2\noutput_dir: runs\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v := newTestViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "custom-tts", cfg.TTSModel)
	assert.Equal(t, 2, cfg.Audio.Channels)
	assert.Equal(t, 24000, cfg.Audio.SampleRate)
	assert.Equal(t, "runs", cfg.OutputDir)
}

func TestLoadConfigInvalid(t *testing.T) {
	v := newTestViper()
	v.Set("audio.sample_width", 7)

	_, err := loadConfig(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sample width")
}

func TestFormatHistory(t *testing.T) {
	var buf bytes.Buffer
	formatHistory(&buf, nil)
	assert.Equal(t, "No runs recorded.\n", buf.String())

	buf.Reset()
	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	formatHistory(&buf, []types.RunRecord{
		{ID: "run-1", Status: types.RunSucceeded, Topic: "বাংলাদেশের জলবায়ু পরিবর্তন ও উপকূলীয় কৃষি", StartedAt: started},
		{ID: "run-2", Status: types.RunFailed, Topic: "short", StartedAt: started},
	})
	out := buf.String()
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "...")
	assert.Contains(t, out, "2 runs")
}
