package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testpilot/internal/safeio"
)

func writeTree(t *testing.T, files map[string]string) *safeio.SafeFS {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	fsys, err := safeio.NewSafeFS(root)
	require.NoError(t, err)
	return fsys
}

func TestNewIndex_EnumeratesSourceFiles(t *testing.T) {
	fsys := writeTree(t, map[string]string{
		"src/main/java/com/app/App.java":         "class App {}",
		"src/main/java/com/app/UserService.java": "class UserService {}",
		"src/main/java/com/app/notes.txt":        "not java",
		"src/test/java/com/app/AppTest.java":     "outside the source root",
	})

	idx, err := NewIndex(fsys, "src/main/java", ".java", Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, idx.Len())
	assert.True(t, idx.Contains("src/main/java/com/app/App.java"))
	assert.False(t, idx.Contains("src/main/java/com/app/notes.txt"))
	assert.False(t, idx.Contains("src/test/java/com/app/AppTest.java"))

	files := idx.Files()
	require.Len(t, files, 2)
	assert.Equal(t, "App", files[0].ClassName)
	assert.Equal(t, "UserService", files[1].ClassName)
}

func TestNewIndex_IgnoresConfiguredDirs(t *testing.T) {
	fsys := writeTree(t, map[string]string{
		"src/main/java/com/app/App.java":       "class App {}",
		"src/main/java/target/Generated.java":  "class Generated {}",
		"src/main/java/.git/Hook.java":         "class Hook {}",
		"src/main/java/legacy/Old.java":        "class Old {}",
		"src/main/java/com/legacy/Nested.java": "class Nested {}",
	})

	idx, err := NewIndex(fsys, "src/main/java", ".java", Options{IgnoreDirs: []string{".git", "target", "legacy"}})
	require.NoError(t, err)

	assert.True(t, idx.Contains("src/main/java/com/app/App.java"))
	assert.False(t, idx.Contains("src/main/java/target/Generated.java"))
	assert.False(t, idx.Contains("src/main/java/.git/Hook.java"))
	assert.False(t, idx.Contains("src/main/java/legacy/Old.java"))
	assert.False(t, idx.Contains("src/main/java/com/legacy/Nested.java"), "ignore matches at any depth")
}

func TestIndex_FrozenAgainstLaterWrites(t *testing.T) {
	fsys := writeTree(t, map[string]string{
		"src/main/java/App.java": "class App {}",
	})
	idx, err := NewIndex(fsys, "src/main/java", ".java", Options{})
	require.NoError(t, err)

	// A file created after the walk must not appear as a source unit.
	require.NoError(t, fsys.WriteFile("src/main/java/Late.java", []byte("class Late {}")))
	assert.Equal(t, 1, idx.Len())
	assert.False(t, idx.Contains("src/main/java/Late.java"))
}

func TestIndex_ContentReadsAndCaches(t *testing.T) {
	fsys := writeTree(t, map[string]string{
		"src/main/java/App.java": "class App {}",
	})
	idx, err := NewIndex(fsys, "src/main/java", ".java", Options{})
	require.NoError(t, err)

	b, err := idx.Content("src/main/java/App.java")
	require.NoError(t, err)
	assert.Equal(t, "class App {}", string(b))

	// The cache pins the first read even if the file changes underneath.
	require.NoError(t, fsys.WriteFile("src/main/java/App.java", []byte("class App { int x; }")))
	b, err = idx.Content("src/main/java/App.java")
	require.NoError(t, err)
	assert.Equal(t, "class App {}", string(b))

	_, err = idx.Content("src/main/java/Missing.java")
	assert.Error(t, err)
}

func TestNewIndex_MissingRootIsEmpty(t *testing.T) {
	fsys := writeTree(t, map[string]string{"README.md": "x"})
	idx, err := NewIndex(fsys, "src/main/java", ".java", Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len())
}

func TestClassName(t *testing.T) {
	assert.Equal(t, "UserService", ClassName("src/main/java/com/app/UserService.java"))
	assert.Equal(t, "App", ClassName("App.java"))
}
