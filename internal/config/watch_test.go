package config

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestFileWatcherReportsYAMLChanges(t *testing.T) {
	defer goleak.VerifyNone(t)

	base := t.TempDir()
	path := writeCurve(t, base, "c", "curve:\n  n: 3\n")
	dir := filepath.Dir(path)

	changed := make(chan string, 16)
	w := NewFileWatcher(dir, func(p string) { changed <- p }, zaptest.NewLogger(t))
	require.NoError(t, w.Start(context.Background()))

	writeCurve(t, base, "c", "curve:\n  n: 4\n")

	select {
	case p := <-changed:
		require.Equal(t, ".yaml", filepath.Ext(p))
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
	w.Stop()
	w.Stop() // idempotent
}

func TestFileWatcherMissingDir(t *testing.T) {
	w := NewFileWatcher(filepath.Join(t.TempDir(), "nope"), nil, nil)
	require.Error(t, w.Start(context.Background()))
	w.Stop()
}
