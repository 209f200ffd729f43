package wordidx

import (
	"hash/fnv"
	"unicode"
	"unicode/utf8"
)

/*
Package wordidx is a word-only index used to approximate "references".

Rules:
- Keep only ident-like words: start with Unicode letter or '_' and continue
  with letter/digit/'_'.
- Numbers and symbols are delimiters; so are quotes.
- Matching a full token gives whole-word semantics: a class name never
  matches inside a longer identifier.
*/

// Index holds the distinct ident-like words of a single file, keyed by a
// hash-based posting map.
type Index struct {
	post map[uint64][]string
}

// Build parses file content and collects its distinct words.
func Build(src []byte) *Index {
	idx := &Index{post: make(map[uint64][]string)}

	isStart := func(r rune) bool { return r == '_' || unicode.IsLetter(r) }
	isCont := func(r rune) bool { return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) }

	i := 0
	for i < len(src) {
		r, w := utf8.DecodeRune(src[i:])
		if r == utf8.RuneError && w == 1 {
			// Invalid bytes act as delimiters.
			i++
			continue
		}
		if !isStart(r) {
			i += w
			continue
		}
		start := i
		i += w
		for i < len(src) {
			rc, wc := utf8.DecodeRune(src[i:])
			if !isCont(rc) {
				break
			}
			i += wc
		}
		idx.add(string(src[start:i]))
	}
	return idx
}

// Has reports whether word occurs in the file as a whole token.
func (x *Index) Has(word string) bool {
	if x == nil || x.post == nil {
		return false
	}
	for _, w := range x.post[hashWord(word)] {
		if w == word {
			return true
		}
	}
	return false
}

func (x *Index) add(word string) {
	key := hashWord(word)
	for _, w := range x.post[key] {
		if w == word {
			return
		}
	}
	x.post[key] = append(x.post[key], word)
}

func hashWord(word string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(word))
	return h.Sum64()
}
