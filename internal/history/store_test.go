// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/multimodal-researcher/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "output"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func run(id string, started time.Time, status types.RunStatus) types.RunRecord {
	return types.RunRecord{
		ID:         id,
		Topic:      "topic " + id,
		Status:     status,
		ReportPath: "output/research_report.md",
		StartedAt:  started,
		FinishedAt: started.Add(time.Minute),
	}
}

func TestRecordAndGet(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	rec := run("a", started, types.RunSucceeded)
	rec.VideoURL = "https://v.example"
	require.NoError(t, s.Record(ctx, rec))

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestRecordUpdatesExistingRun(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	rec := run("a", started, types.RunFailed)
	rec.Error = "podcast: no inline data"
	require.NoError(t, s.Record(ctx, rec))

	rec.Status = types.RunSucceeded
	rec.Error = ""
	require.NoError(t, s.Record(ctx, rec))

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, types.RunSucceeded, got.Status)
	assert.Empty(t, got.Error)
}

func TestGetNotFound(t *testing.T) {
	s := testStore(t)
	_, err := s.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.Record(ctx, run("old", base, types.RunSucceeded)))
	require.NoError(t, s.Record(ctx, run("new", base.Add(500*time.Millisecond), types.RunFailed)))
	require.NoError(t, s.Record(ctx, run("mid", base.Add(time.Nanosecond), types.RunSucceeded)))

	got, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{got[0].ID, got[1].ID, got[2].ID})

	limited, err := s.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "new", limited[0].ID)
}

func TestExportYAML(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	require.NoError(t, s.Record(ctx, run("a", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), types.RunSucceeded)))

	var buf bytes.Buffer
	require.NoError(t, s.ExportYAML(ctx, &buf, 10))

	var runs []types.RunRecord
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, "a", runs[0].ID)
	assert.Equal(t, types.RunSucceeded, runs[0].Status)
}

func TestOpenReusesDatabase(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s1, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s1.Record(ctx, run("a", time.Now(), types.RunSucceeded)))
	require.NoError(t, s1.Close())

	s2, err := Open(dir)
	require.NoError(t, err)
	defer s2.Close()
	got, err := s2.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
