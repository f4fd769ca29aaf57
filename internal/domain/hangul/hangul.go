// Package hangul implements jamo-aware matching for Korean text.
//
// A precomposed Hangul syllable is an ordered triple of a leading consonant,
// a vowel and an optional trailing consonant. Users often type a syllable
// partially (no trailing consonant yet) or search by initials only
// ("ㄱㅊ" for "김치"), neither of which survives plain substring matching.
package hangul

import (
	"strings"
	"unicode/utf8"
)

// Unicode layout of the Hangul Syllables block.
const (
	syllableBase  = 0xAC00
	syllableLast  = 0xD7A3
	vowelCount    = 21
	trailingCount = 28
	// syllables per leading consonant
	leadingStride = vowelCount * trailingCount
)

// Similarity channel weights. Channels are additive, so a strong match exceeds 100.
const (
	LiteralScore    = 100.0
	DecomposedScore = 80.0
	LeadingScore    = 60.0
	PartialScore    = 40.0
)

// leading is the fixed ordered table of the 19 leading consonants (compatibility jamo).
var leading = [19]rune{
	'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ', 'ㅅ',
	'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

var vowels = [vowelCount]rune{
	'ㅏ', 'ㅐ', 'ㅑ', 'ㅒ', 'ㅓ', 'ㅔ', 'ㅕ', 'ㅖ', 'ㅗ', 'ㅘ', 'ㅙ',
	'ㅚ', 'ㅛ', 'ㅜ', 'ㅝ', 'ㅞ', 'ㅟ', 'ㅠ', 'ㅡ', 'ㅢ', 'ㅣ',
}

// trailing[0] means "no trailing consonant".
var trailing = [trailingCount]rune{
	0, 'ㄱ', 'ㄲ', 'ㄳ', 'ㄴ', 'ㄵ', 'ㄶ', 'ㄷ', 'ㄹ', 'ㄺ',
	'ㄻ', 'ㄼ', 'ㄽ', 'ㄾ', 'ㄿ', 'ㅀ', 'ㅁ', 'ㅂ', 'ㅄ', 'ㅅ',
	'ㅆ', 'ㅇ', 'ㅈ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

// IsSyllable reports whether r is a precomposed Hangul syllable.
func IsSyllable(r rune) bool {
	return r >= syllableBase && r <= syllableLast
}

// IsHangul reports whether r belongs to Hangul Syllables, Hangul Jamo
// or Hangul Compatibility Jamo.
func IsHangul(r rune) bool {
	switch {
	case IsSyllable(r):
		return true
	case r >= 0x1100 && r <= 0x11FF:
		return true
	case r >= 0x3130 && r <= 0x318F:
		return true
	default:
		return false
	}
}

// ContainsHangul reports whether text has at least one Hangul rune.
func ContainsHangul(text string) bool {
	for _, r := range text {
		if IsHangul(r) {
			return true
		}
	}
	return false
}

// Decompose expands every syllable into its jamo sequence; other runes pass through.
func Decompose(text string) string {
	var b strings.Builder
	b.Grow(len(text) * 2)
	for _, r := range text {
		if !IsSyllable(r) {
			b.WriteRune(r)
			continue
		}
		offset := int(r - syllableBase)
		b.WriteRune(leading[offset/leadingStride])
		b.WriteRune(vowels[(offset%leadingStride)/trailingCount])
		if t := trailing[offset%trailingCount]; t != 0 {
			b.WriteRune(t)
		}
	}
	return b.String()
}

// LeadingComponents replaces every syllable by its leading consonant; other runes pass through.
func LeadingComponents(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if IsSyllable(r) {
			b.WriteRune(leading[int(r-syllableBase)/leadingStride])
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Similarity scores how well query matches target. Matching is case-insensitive.
// An empty query scores 0.
func Similarity(query, target string) float64 {
	q := strings.ToLower(query)
	if q == "" {
		return 0
	}
	t := strings.ToLower(target)

	var score float64
	if strings.Contains(t, q) {
		score += LiteralScore
	}
	if strings.Contains(Decompose(t), Decompose(q)) {
		score += DecomposedScore
	}
	if strings.Contains(LeadingComponents(t), LeadingComponents(q)) {
		score += LeadingScore
	}

	present := 0
	for _, r := range q {
		if strings.ContainsRune(t, r) {
			present++
		}
	}
	score += PartialScore * float64(present) / float64(utf8.RuneCountInString(q))

	return score
}
