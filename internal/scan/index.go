package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"testpilot/internal/safeio"
)

const contentCacheSize = 256

// Options controls index traversal.
type Options struct {
	// IgnoreDirs are directory basenames skipped during the walk.
	IgnoreDirs []string
}

// DefaultIgnoreDirs covers VCS, dependency, and build output directories.
func DefaultIgnoreDirs() []string {
	return []string{".git", ".hg", ".svn", "node_modules", "vendor", "target", "build"}
}

// SourceFile is one enumerated source unit.
type SourceFile struct {
	// Path is repo-relative with forward slashes (e.g. "src/main/java/App.java"),
	// matching the paths git diff reports.
	Path string
	// ClassName is the file basename without its extension.
	ClassName string
}

// Index is a frozen enumeration of the source files beneath one root,
// taken once at process start. Later queries stay consistent even when the
// run writes new files (generated tests must never show up as source units).
type Index struct {
	fs     *safeio.SafeFS
	ext    string
	files  []SourceFile
	byPath map[string]int
	cache  *lru.Cache[string, []byte]
}

// NewIndex walks sourceRoot (relative to fsys's root) and freezes every file
// with the given extension, in walk order.
func NewIndex(fsys *safeio.SafeFS, sourceRoot, ext string, opts Options) (*Index, error) {
	if fsys == nil {
		return nil, fmt.Errorf("scan: filesystem is nil")
	}
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	ignore := opts.IgnoreDirs
	if ignore == nil {
		ignore = DefaultIgnoreDirs()
	}
	skip := make(map[string]struct{}, len(ignore))
	for _, d := range ignore {
		skip[d] = struct{}{}
	}

	cache, err := lru.New[string, []byte](contentCacheSize)
	if err != nil {
		return nil, err
	}
	x := &Index{fs: fsys, ext: ext, byPath: map[string]int{}, cache: cache}

	absRoot := filepath.Join(fsys.Root(), filepath.FromSlash(sourceRoot))
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if _, ok := skip[filepath.Base(path)]; ok {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.ToLower(filepath.Ext(path)) != ext {
			return nil
		}
		rel, err := filepath.Rel(fsys.Root(), path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		x.byPath[rel] = len(x.files)
		x.files = append(x.files, SourceFile{Path: rel, ClassName: ClassName(rel)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return x, nil
}

// Files returns the frozen enumeration in walk order.
func (x *Index) Files() []SourceFile {
	out := make([]SourceFile, len(x.files))
	copy(out, x.files)
	return out
}

// Len reports the number of enumerated files.
func (x *Index) Len() int { return len(x.files) }

// Contains reports whether path was present when the index was taken.
func (x *Index) Contains(path string) bool {
	_, ok := x.byPath[filepath.ToSlash(path)]
	return ok
}

// Content reads a file's bytes through the LRU cache. The same files are
// rescanned once per changed class, so the cache keeps dependent lookups
// from re-reading the tree.
func (x *Index) Content(path string) ([]byte, error) {
	path = filepath.ToSlash(path)
	if b, ok := x.cache.Get(path); ok {
		return b, nil
	}
	b, err := x.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	x.cache.Add(path, b)
	return b, nil
}

// ClassName derives the class name from a file path: the basename with the
// extension stripped.
func ClassName(path string) string {
	base := filepath.Base(filepath.FromSlash(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
