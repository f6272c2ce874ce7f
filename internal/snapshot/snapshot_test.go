package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "snapshot-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func TestCapture_PatternsAndExcludes(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"client/src/App.tsx":           "export default function App() {}",
		"server/routes.ts":             "app.get('/api/users')",
		"styles/main.css":              "body {}",
		"package.json":                 "{}",
		"vite.config.ts":               "export default {}",
		"node_modules/react/index.js":  "module.exports = {}",
		"node_modules/react/pkg.json":  "{}",
		"docs/guide.md":                "# Guide",
	})

	snap, err := Capture(context.Background(), dir, DefaultOptions())
	require.NoError(t, err)

	files := snap.Files()
	assert.Contains(t, files, "client/src/App.tsx")
	assert.Contains(t, files, "server/routes.ts")
	assert.Contains(t, files, "styles/main.css")
	assert.Contains(t, files, "package.json")
	assert.Contains(t, files, "vite.config.ts")

	for _, rel := range files {
		assert.NotContains(t, rel, "node_modules", "excluded dirs are pruned")
	}
	assert.NotContains(t, files, "docs/guide.md", "non-matching files carry no content")

	// But non-matching files are still visible for existence queries.
	assert.True(t, snap.Exists("docs/guide.md"))
	assert.True(t, snap.IsDir("client/src"))
	assert.False(t, snap.Exists("node_modules/react/index.js"))
}

func TestCapture_ReadAndMatch(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"client/src/Home.tsx":  "home",
		"client/src/util.ts":   "util",
		"server/index.ts":      "server",
	})

	snap, err := Capture(context.Background(), dir, DefaultOptions())
	require.NoError(t, err)

	content, ok := snap.Read("client/src/Home.tsx")
	assert.True(t, ok)
	assert.Equal(t, "home", content)

	_, ok = snap.Read("missing.ts")
	assert.False(t, ok)

	assert.Equal(t, []string{"client/src/Home.tsx"}, snap.Match("*.tsx"))
	assert.Equal(t, []string{"client/src/Home.tsx"}, snap.Under("client/src", "*.tsx"))
	assert.Empty(t, snap.Under("server", "*.tsx"))
}

func TestCapture_RootMatches(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"README.md":       "# readme",
		"docs/README.txt": "nested readme ignored",
		"main.ts":         "code",
	})

	snap, err := Capture(context.Background(), dir, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"README.md"}, snap.RootMatches("README*"))
}

func TestCapture_MissingRoot(t *testing.T) {
	_, err := Capture(context.Background(), "/does/not/exist", DefaultOptions())
	assert.Error(t, err)
}
