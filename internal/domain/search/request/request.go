package request

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/foldex/internal/domain/record/kind"
)

// Search parameter limits.
const (
	// MaxQueryLength is the number of runes kept from a search query.
	MaxQueryLength = 1024
	DefaultLimit   = 20
	MaxLimit       = 100
)

// Request is a validated search query.
type Request struct {
	query       string
	kinds       kind.Filter
	category    string
	limit       int
	scriptAware bool
}

// New normalizes search parameters.
// The query is trimmed, cut to MaxQueryLength runes and may be empty (an empty query matches nothing).
// Defaults: limit=20, clamped to 100.
func New(
	query string,
	kinds kind.Filter,
	category string,
	limit int,
	scriptAware bool,
) Request {
	query = truncate(strings.TrimSpace(query), MaxQueryLength)
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Request{
		query:       query,
		kinds:       kinds,
		category:    category,
		limit:       limit,
		scriptAware: scriptAware,
	}
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return strings.TrimSpace(s[:pos])
		}
		i++
	}
	return s
}

// Query returns the trimmed search text.
func (r *Request) Query() string { return r.query }

// Kinds returns the kind post-filter.
func (r *Request) Kinds() kind.Filter { return r.kinds }

// Category returns the exact-match category post-filter (empty disables it).
func (r *Request) Category() string { return r.category }

// Limit returns the maximum results to return.
func (r *Request) Limit() int { return r.limit }

// ScriptAware reports whether Hangul queries may take the jamo-aware route.
func (r *Request) ScriptAware() bool { return r.scriptAware }

// IsEmpty reports whether there is nothing to search for.
func (r *Request) IsEmpty() bool { return r.query == "" }

// Key is a stable identity of the request, used for memoizing results.
func (r *Request) Key() string {
	return fmt.Sprintf("%s\x00%s\x00%s\x00%d\x00%t",
		strings.ToLower(r.query), r.kinds, r.category, r.limit, r.scriptAware)
}
