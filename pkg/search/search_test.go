package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thebyteslayer/sodium/pkg/cache"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
		wantErr  bool
	}{
		{input: "key", expected: ModeKey},
		{input: "value", expected: ModeValue},
		{input: "key or value", expected: ModeKeyOrValue},
		{input: "key and value", expected: ModeKeyAndValue},
		{input: "  KEY  ", expected: ModeKey},
		{input: "Key And Value", expected: ModeKeyAndValue},
		{input: "keys", wantErr: true},
		{input: "value and key", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ParseMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mode)
		})
	}
}

func seeded() *Engine {
	c := cache.New()
	c.Set("fruit_apple", "red")
	c.Set("fruit_berry", "blue")
	c.Set("vegetable", "green")
	c.Set("x_key", "has x")
	c.Set("other", "x present")
	return NewEngine(c)
}

func TestSearchKeyMode(t *testing.T) {
	e := seeded()
	assert.ElementsMatch(t, []string{"fruit_apple", "fruit_berry"}, e.Search(ModeKey, []string{"fruit"}))
}

func TestSearchValueMode(t *testing.T) {
	e := seeded()
	assert.ElementsMatch(t, []string{"fruit_berry"}, e.Search(ModeValue, []string{"blue"}))
}

func TestSearchValueModeMultipleQueries(t *testing.T) {
	c := cache.New()
	c.Set("k1", "the quick brown")
	c.Set("k2", "brown fox")
	e := NewEngine(c)

	assert.ElementsMatch(t, []string{"k1"}, e.Search(ModeValue, []string{"brown", "quick"}))
}

func TestSearchKeyOrValue(t *testing.T) {
	e := seeded()
	assert.ElementsMatch(t, []string{"x_key", "other"}, e.Search(ModeKeyOrValue, []string{"x"}))
}

func TestSearchKeyAndValue(t *testing.T) {
	e := seeded()
	assert.ElementsMatch(t, []string{"x_key"}, e.Search(ModeKeyAndValue, []string{"x"}))
}

func TestSearchCaseInsensitive(t *testing.T) {
	c := cache.New()
	c.Set("FruitApple", "DarkRed")
	e := NewEngine(c)

	assert.ElementsMatch(t, []string{"FruitApple"}, e.Search(ModeKey, []string{"FRUITAP"}))
	assert.ElementsMatch(t, []string{"FruitApple"}, e.Search(ModeValue, []string{"darkred"}))
}

func TestSearchNoMatches(t *testing.T) {
	e := seeded()
	assert.Empty(t, e.Search(ModeKey, []string{"nomatch"}))
}

func TestSearchEmptyCache(t *testing.T) {
	e := NewEngine(cache.New())
	assert.Empty(t, e.Search(ModeKeyOrValue, []string{"anything"}))
}

// Every result must be a member of the current key set.
func TestSearchSubsetOfKeys(t *testing.T) {
	c := cache.New()
	c.Set("alpha", "beta")
	c.Set("beta", "alpha")
	c.Set("gamma", "delta")
	e := NewEngine(c)

	keys := make(map[string]bool)
	for _, k := range c.Keys() {
		keys[k] = true
	}

	for _, mode := range []Mode{ModeKey, ModeValue, ModeKeyOrValue, ModeKeyAndValue} {
		for _, result := range e.Search(mode, []string{"a"}) {
			assert.True(t, keys[result], "mode %s returned non-member %q", mode, result)
		}
	}
}
