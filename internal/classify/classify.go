// Package classify assigns a component role to a source unit by sniffing
// its content and filename. The heuristics are ordered: the first matching
// rule wins, even when several markers appear in the same file.
package classify

import (
	"bytes"
	"path/filepath"
	"strings"

	"testpilot/internal/types"
)

type rule struct {
	typ   types.ComponentType
	match func(path string, content []byte) bool
}

// precedence is the fixed rule order. DELETED is handled by the caller via
// the exists flag before these rules apply.
var precedence = []rule{
	{types.ComponentController, func(_ string, c []byte) bool {
		return bytes.Contains(c, []byte("@RestController")) || bytes.Contains(c, []byte("@Controller"))
	}},
	{types.ComponentService, func(_ string, c []byte) bool {
		return bytes.Contains(c, []byte("@Service"))
	}},
	{types.ComponentRepository, func(_ string, c []byte) bool {
		return bytes.Contains(c, []byte("@Repository"))
	}},
	{types.ComponentEntity, func(_ string, c []byte) bool {
		return bytes.Contains(c, []byte("@Entity"))
	}},
	{types.ComponentDTO, func(p string, _ []byte) bool {
		base := filepath.Base(filepath.FromSlash(p))
		return strings.Contains(base, "DTO") || strings.Contains(base, "Dto")
	}},
}

// Classify is a pure function of the path, the content read at index time,
// and whether the file still exists.
func Classify(path string, content []byte, exists bool) types.ComponentType {
	if !exists {
		return types.ComponentDeleted
	}
	for _, r := range precedence {
		if r.match(path, content) {
			return r.typ
		}
	}
	return types.ComponentGeneric
}
