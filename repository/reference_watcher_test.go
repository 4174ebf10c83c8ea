package repository

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"frt-offers/data"
)

type countingReloader struct {
	calls atomic.Int32
}

func (c *countingReloader) Reload(context.Context) (*Catalog, error) {
	c.calls.Add(1)
	return nil, nil
}

func writeDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range DataFiles {
		blob, err := fs.ReadFile(data.Files, name)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), blob, 0o644))
	}
	return dir
}

func appendTo(t *testing.T, path, text string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(text)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func TestReferenceWatcher_ReloadsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := writeDataDir(t)
	store, err := NewReferenceStore(os.DirFS(dir), zaptest.NewLogger(t))
	require.NoError(t, err)
	before := store.Current().Version()

	w, err := NewReferenceWatcher(dir, store, 20*time.Millisecond, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	appendTo(t, filepath.Join(dir, CargoesFile), "\n# new season\n")

	require.Eventually(t, func() bool {
		return store.Current().Version() != before
	}, 2*time.Second, 10*time.Millisecond)
}

func TestReferenceWatcher_InvalidEditKeepsSnapshot(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := writeDataDir(t)
	store, err := NewReferenceStore(os.DirFS(dir), zaptest.NewLogger(t))
	require.NoError(t, err)
	before := store.Current()

	w, err := NewReferenceWatcher(dir, store, 20*time.Millisecond, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, PortsFile), []byte("load: [broken\n"), 0o644))

	assert.Never(t, func() bool {
		return store.Current() != before
	}, 200*time.Millisecond, 20*time.Millisecond)
}

func TestReferenceWatcher_DebouncesBursts(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := writeDataDir(t)
	reloader := &countingReloader{}
	w, err := NewReferenceWatcher(dir, reloader, 100*time.Millisecond, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	for _, name := range DataFiles {
		appendTo(t, filepath.Join(dir, name), "\n")
	}

	require.Eventually(t, func() bool { return reloader.calls.Load() > 0 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, int32(1), reloader.calls.Load())
}

func TestReferenceWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := writeDataDir(t)
	reloader := &countingReloader{}
	w, err := NewReferenceWatcher(dir, reloader, 10*time.Millisecond, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("draft"), 0o644))

	assert.Never(t, func() bool { return reloader.calls.Load() > 0 }, 150*time.Millisecond, 10*time.Millisecond)
}

func TestReferenceWatcher_StopWithoutStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := NewReferenceWatcher(t.TempDir(), &countingReloader{}, 0, nil)
	require.NoError(t, err)

	w.Stop()
	w.Stop()
}
