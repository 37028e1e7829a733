package search

import (
	"fmt"
	"strings"

	"github.com/thebyteslayer/sodium/pkg/cache"
)

// Mode selects which fields of an entry the query list must match.
type Mode int

const (
	ModeKey Mode = iota
	ModeValue
	ModeKeyOrValue
	ModeKeyAndValue
)

// ParseMode parses a mode expression. Accepted forms, after trimming and
// lower-casing: "key", "value", "key or value", "key and value".
func ParseMode(input string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "key":
		return ModeKey, nil
	case "value":
		return ModeValue, nil
	case "key or value":
		return ModeKeyOrValue, nil
	case "key and value":
		return ModeKeyAndValue, nil
	default:
		return 0, fmt.Errorf("Invalid search type: %s. Valid types are: key, value, key or value, key and value", input)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeKey:
		return "key"
	case ModeValue:
		return "value"
	case ModeKeyOrValue:
		return "key or value"
	case ModeKeyAndValue:
		return "key and value"
	default:
		return "unknown"
	}
}

// Engine runs substring searches over the cache's current key set.
type Engine struct {
	cache *cache.Cache
}

// NewEngine creates a search engine over c.
func NewEngine(c *cache.Cache) *Engine {
	return &Engine{cache: c}
}

// Search returns the keys whose entry matches every query under mode.
// Matching is case-insensitive substring containment over the lower-cased
// forms. Result order follows the cache's enumeration order and is not
// stable. Cost is O(|keys| * total query length); no index is maintained.
func (e *Engine) Search(mode Mode, queries []string) []string {
	lowered := make([]string, len(queries))
	for i, q := range queries {
		lowered[i] = strings.ToLower(q)
	}

	matches := make([]string, 0)
	for _, key := range e.cache.Keys() {
		var include bool
		switch mode {
		case ModeKey:
			include = containsAll(strings.ToLower(key), lowered)
		case ModeValue:
			include = e.valueContainsAll(key, lowered)
		case ModeKeyOrValue:
			include = containsAll(strings.ToLower(key), lowered) || e.valueContainsAll(key, lowered)
		case ModeKeyAndValue:
			include = containsAll(strings.ToLower(key), lowered) && e.valueContainsAll(key, lowered)
		}
		if include {
			matches = append(matches, key)
		}
	}
	return matches
}

// valueContainsAll fetches the value for key and tests it against every
// query. A key deleted between the snapshot and the fetch is a miss and
// simply doesn't match.
func (e *Engine) valueContainsAll(key string, queries []string) bool {
	value, err := e.cache.Get(key)
	if err != nil {
		return false
	}
	return containsAll(strings.ToLower(value), queries)
}

func containsAll(haystack string, queries []string) bool {
	for _, q := range queries {
		if !strings.Contains(haystack, q) {
			return false
		}
	}
	return true
}
