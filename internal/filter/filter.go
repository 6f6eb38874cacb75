package filter

import (
	"strings"
	"unicode"
)

// Result reports one filtering pass. It is immutable once returned.
type Result struct {
	Original string
	Filtered string
	Modified bool
}

// Filter turns caption text into its filtered form. listID selects a
// word list and statsKind labels the invocation for counters; both may
// be ignored by implementations with a single list.
type Filter interface {
	Replace(text string, listID int, statsKind string) Result
}

// WordList is a case-insensitive whole-word filter.
type WordList struct {
	words  map[string]struct{}
	censor string
}

// NewWordList builds a filter over the given words. The censor string
// replaces every matched word; it defaults to "***".
func NewWordList(words []string, censor string) *WordList {
	if censor == "" {
		censor = "***"
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return &WordList{words: set, censor: censor}
}

// Replace implements Filter.
func (f *WordList) Replace(text string, listID int, statsKind string) Result {
	if len(f.words) == 0 || text == "" {
		return Result{Original: text, Filtered: text}
	}

	var b strings.Builder
	modified := false
	start := -1
	flush := func(end int) {
		word := text[start:end]
		if _, ok := f.words[strings.ToLower(word)]; ok {
			b.WriteString(f.censor)
			modified = true
		} else {
			b.WriteString(word)
		}
		start = -1
	}
	for i, r := range text {
		if unicode.IsLetter(r) || r == '\'' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			flush(i)
		}
		b.WriteRune(r)
	}
	if start >= 0 {
		flush(len(text))
	}

	return Result{Original: text, Filtered: b.String(), Modified: modified}
}
