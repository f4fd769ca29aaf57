package fuzzy

import (
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
	"github.com/xrash/smetrics"
)

// windowDistance is the best normalized edit distance between q and any run
// of consecutive words in text with the same word count as q.
func windowDistance(q string, qWords []string, text string) float64 {
	words := strings.Fields(text)
	if len(words) > maxWindowWords {
		words = words[:maxWindowWords]
	}
	n := len(qWords)
	if n == 0 || len(words) == 0 {
		return 1
	}
	if n > len(words) {
		n = len(words)
	}

	best := 1.0
	for start := 0; start+n <= len(words); start++ {
		window := strings.Join(words[start:start+n], " ")
		if d := editDistance(q, window); d < best {
			best = d
			if best == 0 {
				break
			}
		}
	}
	return best
}

// editDistance is Levenshtein distance over runes normalized by the longer input.
func editDistance(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 0
	}
	return float64(runeWagnerFischer(ra, rb)) / float64(longest)
}

// runeWagnerFischer runs smetrics.WagnerFischer over rune strings. Each rune is
// mapped to one byte code in a shared alphabet, so a multi-byte syllable costs one edit.
func runeWagnerFischer(a, b []rune) int {
	codes := make(map[rune]byte, len(a)+len(b))
	encode := func(rs []rune) (string, bool) {
		buf := make([]byte, len(rs))
		for i, r := range rs {
			c, ok := codes[r]
			if !ok {
				if len(codes) > 255 {
					return "", false
				}
				c = byte(len(codes))
				codes[r] = c
			}
			buf[i] = c
		}
		return string(buf), true
	}
	ea, okA := encode(a)
	eb, okB := encode(b)
	if !okA || !okB {
		return levenshtein(a, b)
	}
	return smetrics.WagnerFischer(ea, eb, 1, 1, 1)
}

// levenshtein is the rune fallback for inputs with more than 256 distinct runes.
func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// single adapts one string to fuzzy.Source.
type single string

func (s single) String(int) string { return string(s) }
func (single) Len() int            { return 1 }

// subsequenceDistance measures how tightly q's runes appear in order within text:
// 0 for a contiguous run, approaching 1 as the matched runes spread out.
func subsequenceDistance(q, text string) float64 {
	matches := fuzzy.FindFrom(q, single(text))
	if len(matches) == 0 {
		return 1
	}
	idx := matches[0].MatchedIndexes
	if len(idx) == 0 {
		return 1
	}
	first, last := idx[0], idx[len(idx)-1]
	_, lastSize := utf8.DecodeRuneInString(text[last:])
	span := utf8.RuneCountInString(text[first : last+lastSize])
	if span == 0 {
		return 1
	}
	return 1 - float64(len(idx))/float64(span)
}

func splitWords(s string) []string { return strings.Fields(s) }
