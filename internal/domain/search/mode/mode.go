package mode

import "github.com/kailas-cloud/foldex/internal/domain/hangul"

// Mode is the query route selected for a search.
type Mode string

// Search mode constants.
const (
	// General runs the prefix index and the fuzzy matcher.
	General Mode = "general"
	// ScriptAware runs the fuzzy matcher plus jamo-aware similarity over every record.
	ScriptAware Mode = "script_aware"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == General || m == ScriptAware
}

// Select picks the route for query. Hangul queries take the script-aware route
// unless the caller opted out.
func Select(query string, scriptAware bool) Mode {
	if scriptAware && hangul.ContainsHangul(query) {
		return ScriptAware
	}
	return General
}
