package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *parsedLine
	}{
		{
			name:     "set",
			input:    "localhost:1123 set foo bar",
			expected: &parsedLine{verb: "set", address: "localhost:1123", key: "foo", value: "bar"},
		},
		{
			name:     "set multiword value",
			input:    "localhost:1123 set foo hello brave world",
			expected: &parsedLine{verb: "set", address: "localhost:1123", key: "foo", value: "hello brave world"},
		},
		{
			name:     "set quoted value",
			input:    `localhost:1123 set foo "hello  world"`,
			expected: &parsedLine{verb: "set", address: "localhost:1123", key: "foo", value: "hello  world"},
		},
		{
			name:     "get",
			input:    "localhost:1123 get foo",
			expected: &parsedLine{verb: "get", address: "localhost:1123", key: "foo"},
		},
		{
			name:     "del",
			input:    "localhost:1123 del foo",
			expected: &parsedLine{verb: "del", address: "localhost:1123", key: "foo"},
		},
		{
			name:     "keys",
			input:    "localhost:1123 keys",
			expected: &parsedLine{verb: "keys", address: "localhost:1123"},
		},
		{name: "empty", input: "", expected: nil},
		{name: "address only", input: "localhost:1123", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLine(tt.input))
		})
	}
}

func TestParseLineUsageErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		errMsg string
	}{
		{name: "set missing value", input: "addr set foo", errMsg: "Usage: addr set <key> <value>"},
		{name: "get extra args", input: "addr get foo bar", errMsg: "Usage: addr get <key>"},
		{name: "del missing key", input: "addr del", errMsg: "Usage: addr del <key>"},
		{name: "keys extra args", input: "addr keys now", errMsg: "Usage: addr keys"},
		{name: "unknown verb", input: "addr frob foo", errMsg: "Unknown command: frob"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := parseLine(tt.input)
			require.NotNil(t, line)
			assert.Equal(t, tt.errMsg, line.errMsg)
		})
	}
}
