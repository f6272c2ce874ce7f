package checks

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grovehealth/appaudit/internal/snapshot"
)

// captureTree writes the given files under a temp root and captures a
// snapshot of it with the default options.
func captureTree(t *testing.T, files map[string]string) *snapshot.Snapshot {
	t.Helper()
	dir, err := os.MkdirTemp("", "checks-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	snap, err := snapshot.Capture(context.Background(), dir, snapshot.DefaultOptions())
	require.NoError(t, err)
	return snap
}
