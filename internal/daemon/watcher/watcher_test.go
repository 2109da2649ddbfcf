package watcher

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazzzi/maenggu-run/internal/models"
	"github.com/hazzzi/maenggu-run/internal/snack"
	"github.com/hazzzi/maenggu-run/internal/store"
)

func setup(t *testing.T) (*store.Store, *snack.Manager, *Watcher) {
	t.Helper()

	st := store.New(filepath.Join(t.TempDir(), "save.json"))
	mgr := snack.NewManager(st)
	mgr.Load()

	w, err := New(st, mgr, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	t.Cleanup(w.Stop)

	return st, mgr, w
}

func TestExternalEditTriggersReload(t *testing.T) {
	st, mgr, w := setup(t)

	doc := `{"version":1,"snacks":42,"stats":{"totalClicks":7,"totalFeedings":3,"peakSnacks":50,"sessionPlaytime":0}}`
	require.NoError(t, os.WriteFile(st.Path(), []byte(doc), 0o644))

	select {
	case state := <-w.Reloads():
		assert.Equal(t, uint32(42), state.Snacks)
		assert.Equal(t, uint32(7), state.Stats.TotalClicks)
	case <-time.After(3 * time.Second):
		t.Fatal("external edit was not reloaded")
	}

	assert.Equal(t, uint32(42), mgr.Snapshot().Snacks)
}

func TestCorruptExternalEditKeepsProgress(t *testing.T) {
	st, mgr, w := setup(t)
	mgr.Add(500)

	require.NoError(t, os.WriteFile(st.Path(), []byte(`{"version":1,"snacks":`), 0o644))

	// The rejected document is moved aside by the reload attempt.
	require.Eventually(t, func() bool {
		_, err := os.Stat(st.Path() + ".corrupt.bak")
		return err == nil
	}, 3*time.Second, 25*time.Millisecond)

	assert.Never(t, func() bool {
		return len(w.Reloads()) > 0
	}, 300*time.Millisecond, 25*time.Millisecond)
	assert.Equal(t, uint32(500), mgr.Snapshot().Snacks)

	mgr.Add(1)

	data, err := os.ReadFile(st.Path())
	require.NoError(t, err)
	var onDisk models.SaveState
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, uint32(501), onDisk.Snacks)
	assert.Equal(t, uint32(501), onDisk.Stats.PeakSnacks)
}

func TestOwnWritesAreIgnored(t *testing.T) {
	_, mgr, w := setup(t)

	mgr.Add(5)
	mgr.Add(1)

	assert.Never(t, func() bool {
		return len(w.Reloads()) > 0
	}, 500*time.Millisecond, 25*time.Millisecond)
	assert.Equal(t, uint32(6), mgr.Snapshot().Snacks)
}

func TestOtherFilesAreIgnored(t *testing.T) {
	st, _, w := setup(t)

	other := filepath.Join(filepath.Dir(st.Path()), "settings.yaml")
	require.NoError(t, os.WriteFile(other, []byte("log_level: debug\n"), 0o644))

	assert.Never(t, func() bool {
		return len(w.Reloads()) > 0
	}, 400*time.Millisecond, 25*time.Millisecond)
}

func TestStopIsIdempotent(t *testing.T) {
	_, _, w := setup(t)
	w.Stop()
	w.Stop()
}
