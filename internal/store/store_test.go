package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/xxh3"

	"github.com/hazzzi/maenggu-run/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "app", "save.json"))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	want := models.SaveState{
		Version: 1,
		Snacks:  42,
		Stats: models.SaveStats{
			TotalClicks:     100,
			TotalFeedings:   58,
			PeakSnacks:      77,
			SessionPlaytime: 3600,
		},
	}
	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSaveUsesCamelCaseKeys(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(models.SaveState{Snacks: 3, Stats: models.SaveStats{PeakSnacks: 3}}))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.EqualValues(t, 1, doc["version"], "version is always written as 1")
	assert.EqualValues(t, 3, doc["snacks"])

	stats, ok := doc["stats"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"totalClicks", "totalFeedings", "peakSnacks", "sessionPlaytime"} {
		assert.Contains(t, stats, key)
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadCorruptFileIsMovedAside(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))

	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "{{{ nope"},
		{name: "negative snacks", content: `{"version":1,"snacks":-3,"stats":{}}`},
		{name: "wrong type", content: `{"version":1,"snacks":"many"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, os.WriteFile(s.Path(), []byte(tt.content), 0o644))

			_, err := s.Load()
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrNotFound)

			backup, readErr := os.ReadFile(s.Path() + ".corrupt.bak")
			require.NoError(t, readErr)
			assert.Equal(t, tt.content, string(backup))
			assert.NoFileExists(t, s.Path())
		})
	}
}

func TestUnmovableCorruptFileBlocksSave(t *testing.T) {
	s := newTestStore(t)
	backupDir := s.Path() + ".corrupt.bak"
	require.NoError(t, os.MkdirAll(backupDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(backupDir, "keep"), []byte("x"), 0o644))

	content := "{{{ nope"
	require.NoError(t, os.WriteFile(s.Path(), []byte(content), 0o644))

	_, err := s.Load()
	require.ErrorIs(t, err, ErrPreserved)
	assert.ErrorContains(t, err, "failed to parse save file")

	assert.ErrorIs(t, s.Save(models.SaveState{Snacks: 1}), ErrPreserved)
	data, readErr := os.ReadFile(s.Path())
	require.NoError(t, readErr)
	assert.Equal(t, content, string(data), "unreadable file must not be overwritten")

	// Once the move succeeds, saving resumes.
	require.NoError(t, os.RemoveAll(backupDir))
	require.NoError(t, s.Save(models.SaveState{Snacks: 1}))

	backup, readErr := os.ReadFile(backupDir)
	require.NoError(t, readErr)
	assert.Equal(t, content, string(backup))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), got.Snacks)
}

func TestLoadVersionHandling(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))

	t.Run("missing version is upgraded", func(t *testing.T) {
		require.NoError(t, os.WriteFile(s.Path(), []byte(`{"snacks":5,"stats":{"peakSnacks":5}}`), 0o644))

		got, err := s.Load()
		require.NoError(t, err)
		assert.Equal(t, uint8(1), got.Version)
		assert.Equal(t, uint32(5), got.Snacks)
	})

	t.Run("future version is rejected and preserved", func(t *testing.T) {
		content := `{"version":2,"snacks":9,"stats":{}}`
		require.NoError(t, os.WriteFile(s.Path(), []byte(content), 0o644))

		_, err := s.Load()
		assert.ErrorIs(t, err, ErrUnsupportedVersion)

		backup, readErr := os.ReadFile(s.Path() + ".v2.bak")
		require.NoError(t, readErr)
		assert.Equal(t, content, string(backup))
	})
}

func TestSaveCreatesDirectoryAndOverwrites(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(models.SaveState{Snacks: 1}))
	require.NoError(t, s.Save(models.SaveState{Snacks: 2}))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), got.Snacks)
}

func TestSaveFailureIsReturned(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	// Parent path is a regular file, so the directory cannot be created
	s := New(filepath.Join(blocker, "save.json"))
	assert.Error(t, s.Save(models.NewSaveState()))
	assert.Zero(t, s.LastWrittenHash())
}

func TestHashes(t *testing.T) {
	s := newTestStore(t)
	assert.Zero(t, s.LastWrittenHash())

	_, err := s.Hash()
	assert.Error(t, err)

	require.NoError(t, s.Save(models.SaveState{Snacks: 8}))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	onDisk, err := s.Hash()
	require.NoError(t, err)
	assert.Equal(t, xxh3.Hash(data), onDisk)
	assert.Equal(t, onDisk, s.LastWrittenHash())
}
