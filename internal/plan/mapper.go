package plan

import (
	"path"
	"strings"
)

// Mapper converts between source paths and their target test paths. The
// mapping is reversible: TestPath followed by SourcePath recovers the
// original for any path under the source root.
type Mapper struct {
	SourceRoot string // e.g. "src/main/java"
	TestRoot   string // e.g. "src/test/java"
	Suffix     string // inserted before the extension, e.g. "Test"
}

// TestPath maps src/main/java/pkg/Foo.java to src/test/java/pkg/FooTest.java.
func (m Mapper) TestPath(src string) string {
	p := swapRoot(src, m.SourceRoot, m.TestRoot)
	ext := path.Ext(p)
	return strings.TrimSuffix(p, ext) + m.Suffix + ext
}

// SourcePath reverses TestPath. ok is false when the path is not under the
// test root or lacks the suffix.
func (m Mapper) SourcePath(test string) (string, bool) {
	root := strings.TrimSuffix(m.TestRoot, "/") + "/"
	if !strings.HasPrefix(test, root) {
		return "", false
	}
	ext := path.Ext(test)
	stem := strings.TrimSuffix(test, ext)
	if !strings.HasSuffix(stem, m.Suffix) {
		return "", false
	}
	p := strings.TrimSuffix(stem, m.Suffix) + ext
	return swapRoot(p, m.TestRoot, m.SourceRoot), true
}

func swapRoot(p, from, to string) string {
	from = strings.TrimSuffix(from, "/") + "/"
	to = strings.TrimSuffix(to, "/") + "/"
	if strings.HasPrefix(p, from) {
		return to + strings.TrimPrefix(p, from)
	}
	return p
}
