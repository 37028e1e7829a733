package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thebyteslayer/sodium/pkg/search"
)

func TestParseLegacy(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Command
	}{
		{name: "set", input: "SET foo bar", expected: Set{Key: "foo", Value: "bar"}},
		{name: "set lowercase verb", input: "set foo bar", expected: Set{Key: "foo", Value: "bar"}},
		{name: "set collapses whitespace", input: "SET foo the   quick  brown", expected: Set{Key: "foo", Value: "the quick brown"}},
		{name: "set quoted value keeps spaces", input: `SET foo "the  quick  brown"`, expected: Set{Key: "foo", Value: "the  quick  brown"}},
		{name: "set quoted preserves embedded quotes", input: `SET foo "say "hi" now"`, expected: Set{Key: "foo", Value: `say "hi" now`}},
		{name: "get", input: "GET foo", expected: Get{Key: "foo"}},
		{name: "del", input: "DEL foo", expected: Delete{Key: "foo"}},
		{name: "delete alias", input: "DELETE foo", expected: Delete{Key: "foo"}},
		{name: "keys upper", input: "KEYS", expected: Keys{}},
		{name: "keys lower", input: "keys", expected: Keys{}},
		{name: "surrounding whitespace", input: "  GET foo  ", expected: Get{Key: "foo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cmd)
		})
	}
}

func TestParseLegacyErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty line", input: ""},
		{name: "unknown verb", input: "PING foo"},
		{name: "set missing value", input: "SET foo"},
		{name: "set missing everything", input: "SET"},
		{name: "get missing key", input: "GET"},
		{name: "del missing key", input: "DEL"},
		{name: "keys with argument", input: "KEYS foo"},
		{name: "invalid key leading hyphen", input: "SET -ab x"},
		{name: "invalid key consecutive hyphens", input: "SET a--b x"},
		{name: "invalid key on get", input: "GET a..b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			var parseErr *ParseError
			assert.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestParseFunction(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Command
	}{
		{name: "set", input: `set("k1", "hello world")`, expected: Set{Key: "k1", Value: "hello world"}},
		{name: "set unquoted args", input: `set(k1, hello)`, expected: Set{Key: "k1", Value: "hello"}},
		{name: "set value with comma inside quotes", input: `set("k1", "a, b")`, expected: Set{Key: "k1", Value: "a, b"}},
		{name: "get", input: `get("k1")`, expected: Get{Key: "k1"}},
		{name: "delete", input: `delete("k1")`, expected: Delete{Key: "k1"}},
		{name: "del alias", input: `del("k1")`, expected: Delete{Key: "k1"}},
		{name: "keys", input: `keys()`, expected: Keys{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cmd)
		})
	}
}

func TestParseFunctionErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "unknown function", input: `ping("k")`},
		{name: "set one argument", input: `set("k")`},
		{name: "set three arguments", input: `set("a", "b", "c")`},
		{name: "get empty args", input: `get()`},
		{name: "keys with argument", input: `keys("x")`},
		{name: "unclosed quote", input: `set("k1, "v")`},
		{name: "unclosed bracket", input: `search("key", ["a", "b")`},
		{name: "invalid key", input: `set("a--b", "v")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestParseSearch(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		mode    search.Mode
		queries []string
	}{
		{name: "key single query", input: `search("key", "fruit")`, mode: search.ModeKey, queries: []string{"fruit"}},
		{name: "value single query", input: `search("value", "brown")`, mode: search.ModeValue, queries: []string{"brown"}},
		{name: "value array", input: `search("value", ["brown", "quick"])`, mode: search.ModeValue, queries: []string{"brown", "quick"}},
		{name: "key or value", input: `search("key" or "value", "x")`, mode: search.ModeKeyOrValue, queries: []string{"x"}},
		{name: "key and value", input: `search("key" and "value", "x")`, mode: search.ModeKeyAndValue, queries: []string{"x"}},
		{name: "key and value with array", input: `search("key" and "value", ["a", "b"])`, mode: search.ModeKeyAndValue, queries: []string{"a", "b"}},
		{name: "operator word inside quoted query", input: `search("key", "salt and pepper")`, mode: search.ModeKey, queries: []string{"salt and pepper"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := Parse(tt.input)
			require.NoError(t, err)
			searchCmd, ok := cmd.(Search)
			require.True(t, ok, "expected Search, got %T", cmd)
			assert.Equal(t, tt.mode, searchCmd.Mode)
			assert.Equal(t, tt.queries, searchCmd.Queries)
		})
	}
}

func TestParseSearchErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "no arguments", input: `search()`},
		{name: "one argument", input: `search("key")`},
		{name: "invalid mode term", input: `search("keys", "x")`},
		{name: "compound invalid term", input: `search("key" and "values", "x")`},
		{name: "missing comma after compound mode", input: `search("key" and "value" "x")`},
		{name: "empty query", input: `search("key", "")`},
		{name: "empty array", input: `search("key", [])`},
		{name: "empty query in array", input: `search("key", ["a", ""])`},
		{name: "unquoted compound term", input: `search(key and "value", "x")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			assert.Error(t, err)
		})
	}
}

// Both surface syntaxes must produce identical commands wherever both exist.
func TestGrammarEquivalence(t *testing.T) {
	pairs := []struct {
		name     string
		legacy   string
		function string
	}{
		{name: "set", legacy: `SET k1 "hello world"`, function: `set("k1", "hello world")`},
		{name: "get", legacy: "GET k1", function: `get("k1")`},
		{name: "del", legacy: "DEL k1", function: `del("k1")`},
		{name: "keys", legacy: "KEYS", function: "keys()"},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			legacyCmd, err := Parse(tt.legacy)
			require.NoError(t, err)
			functionCmd, err := Parse(tt.function)
			require.NoError(t, err)
			assert.Equal(t, legacyCmd, functionCmd)
		})
	}
}
