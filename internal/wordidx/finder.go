package wordidx

import (
	"path/filepath"
	"strings"

	"testpilot/internal/scan"
)

// Finder locates files whose text contains a whole-word occurrence of a
// class name. This is a conservative textual approximation of a reference
// graph: no import resolution, no scope awareness. Over-matching is
// accepted because dependents only ever become regression targets.
type Finder struct {
	idx   *scan.Index
	cache map[string]*Index
}

// NewFinder wraps a frozen source index.
func NewFinder(idx *scan.Index) *Finder {
	return &Finder{idx: idx, cache: make(map[string]*Index)}
}

// Dependents returns the paths referencing className, in index enumeration
// order, unsorted and undeduplicated. The originating path is excluded, as
// is any path whose own basename contains the class name (a class must not
// match its generated companions). Unreadable files are skipped.
func (f *Finder) Dependents(className, originPath string) []string {
	if className == "" {
		return nil
	}
	var out []string
	for _, sf := range f.idx.Files() {
		if sf.Path == originPath {
			continue
		}
		if strings.Contains(filepath.Base(sf.Path), className) {
			continue
		}
		w := f.fileIndex(sf.Path)
		if w.Has(className) {
			out = append(out, sf.Path)
		}
	}
	return out
}

func (f *Finder) fileIndex(path string) *Index {
	if w, ok := f.cache[path]; ok {
		return w
	}
	data, err := f.idx.Content(path)
	if err != nil {
		data = nil
	}
	w := Build(data)
	f.cache[path] = w
	return w
}
