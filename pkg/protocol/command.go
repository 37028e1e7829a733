package protocol

import (
	"fmt"

	"github.com/thebyteslayer/sodium/pkg/search"
)

// Command is the tagged result of parsing one request line. The concrete
// types below are the only implementations.
type Command interface {
	command()
}

// Set inserts or replaces a key.
type Set struct {
	Key   string
	Value string
}

// Get reads a key.
type Get struct {
	Key string
}

// Delete removes a key.
type Delete struct {
	Key string
}

// Keys enumerates the current key set.
type Keys struct{}

// Search scans the key set with an AND-of-substrings predicate.
type Search struct {
	Mode    search.Mode
	Queries []string
}

func (Set) command()    {}
func (Get) command()    {}
func (Delete) command() {}
func (Keys) command()   {}
func (Search) command() {}

// ParseError describes a request line the grammar rejects. The message is
// what the client sees after the "ERROR: " prefix when surfaced directly.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}

func errf(format string, args ...interface{}) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...)}
}
