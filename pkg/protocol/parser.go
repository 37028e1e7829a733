package protocol

import (
	"strings"

	"github.com/thebyteslayer/sodium/pkg/search"
)

// Parse turns one request line into a Command. Two surface syntaxes share
// the same validators: a line equal (case-insensitively) to "keys" or any
// line containing '(' and ending with ')' is parsed as function-call syntax,
// everything else as the legacy space-separated syntax.
func Parse(input string) (Command, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, errf("Empty command")
	}

	if strings.EqualFold(input, "keys") {
		return Keys{}, nil
	}

	if isFunctionSyntax(input) {
		return parseFunction(input)
	}
	return parseLegacy(input)
}

func isFunctionSyntax(input string) bool {
	return strings.Contains(input, "(") && strings.HasSuffix(input, ")")
}

// --- legacy syntax: SET key value..., GET key, DEL key, KEYS ---

func parseLegacy(input string) (Command, error) {
	verb, rest := input, ""
	if pos := strings.IndexByte(input, ' '); pos >= 0 {
		verb, rest = input[:pos], strings.TrimSpace(input[pos+1:])
	}

	switch strings.ToUpper(verb) {
	case "SET":
		key, value, err := parseSetArgs(rest)
		if err != nil {
			return nil, err
		}
		if err := ValidateKey(key); err != nil {
			return nil, err
		}
		return Set{Key: key, Value: value}, nil
	case "GET":
		if rest == "" {
			return nil, errf("GET command requires exactly one key")
		}
		if err := ValidateKey(rest); err != nil {
			return nil, err
		}
		return Get{Key: rest}, nil
	case "DEL", "DELETE":
		if rest == "" {
			return nil, errf("DEL command requires exactly one key")
		}
		if err := ValidateKey(rest); err != nil {
			return nil, err
		}
		return Delete{Key: rest}, nil
	case "KEYS":
		if rest != "" {
			return nil, errf("KEYS command takes no arguments")
		}
		return Keys{}, nil
	default:
		return nil, errf("Unknown command: %s. Supported commands: SET, GET, DEL, KEYS", verb)
	}
}

// parseSetArgs splits "key value..." for the legacy SET. A remainder that
// begins and ends with '"' has the outer quotes stripped verbatim (no
// escapes); otherwise the remainder is whitespace-collapsed.
func parseSetArgs(args string) (string, string, error) {
	if args == "" {
		return "", "", errf("SET command requires key and value")
	}

	pos := strings.IndexByte(args, ' ')
	if pos < 0 {
		return "", "", errf("SET command requires key and value")
	}
	key := args[:pos]
	rest := strings.TrimSpace(args[pos+1:])
	if rest == "" {
		return "", "", errf("SET command requires key and value")
	}

	var value string
	if strings.HasPrefix(rest, `"`) && strings.HasSuffix(rest, `"`) && len(rest) >= 2 {
		value = rest[1 : len(rest)-1]
	} else {
		value = strings.Join(strings.Fields(rest), " ")
	}
	return key, value, nil
}

// --- function-call syntax: set("k", "v"), get("k"), keys(), search(...) ---

func parseFunction(input string) (Command, error) {
	open := strings.IndexByte(input, '(')
	if open < 0 {
		return nil, errf("Invalid function syntax")
	}

	name := strings.TrimSpace(input[:open])
	argsStr := input[open+1 : len(input)-1]

	switch strings.ToLower(name) {
	case "set":
		key, value, err := parseTwoArgs(argsStr)
		if err != nil {
			return nil, err
		}
		if err := ValidateKey(key); err != nil {
			return nil, err
		}
		return Set{Key: key, Value: value}, nil
	case "get":
		key, err := parseSingleArg(argsStr)
		if err != nil {
			return nil, err
		}
		if err := ValidateKey(key); err != nil {
			return nil, err
		}
		return Get{Key: key}, nil
	case "delete", "del":
		key, err := parseSingleArg(argsStr)
		if err != nil {
			return nil, err
		}
		if err := ValidateKey(key); err != nil {
			return nil, err
		}
		return Delete{Key: key}, nil
	case "keys":
		if strings.TrimSpace(argsStr) != "" {
			return nil, errf("keys() takes no arguments")
		}
		return Keys{}, nil
	case "search":
		mode, queries, err := parseSearchArgs(argsStr)
		if err != nil {
			return nil, err
		}
		return Search{Mode: mode, Queries: queries}, nil
	default:
		return nil, errf("Unknown function: %s. Supported functions: set, get, delete/del, keys, search", name)
	}
}

func parseSingleArg(argsStr string) (string, error) {
	argsStr = strings.TrimSpace(argsStr)
	if argsStr == "" {
		return "", errf("Function requires an argument")
	}
	return unquote(argsStr), nil
}

func parseTwoArgs(argsStr string) (string, string, error) {
	argsStr = strings.TrimSpace(argsStr)
	if argsStr == "" {
		return "", "", errf("Function requires 2 arguments")
	}

	args, err := splitArgs(argsStr)
	if err != nil {
		return "", "", err
	}
	if len(args) != 2 {
		return "", "", errf("Function requires 2 arguments, got %d", len(args))
	}

	return unquote(args[0]), unquote(args[1]), nil
}

// splitArgs splits on commas outside of two nesting contexts: double-quoted
// strings (a quote toggles the context, no escapes) and square-bracketed
// array literals (depth counter).
func splitArgs(argsStr string) ([]string, error) {
	var args []string
	var current strings.Builder
	inQuotes := false
	brackets := 0

	for _, ch := range argsStr {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
			current.WriteRune(ch)
		case ch == '[' && !inQuotes:
			brackets++
			current.WriteRune(ch)
		case ch == ']' && !inQuotes:
			brackets--
			current.WriteRune(ch)
		case ch == ',' && !inQuotes && brackets == 0:
			args = append(args, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}

	if inQuotes {
		return nil, errf("Unclosed quote in arguments")
	}
	if brackets != 0 {
		return nil, errf("Unclosed bracket in arguments")
	}

	if last := strings.TrimSpace(current.String()); last != "" {
		args = append(args, last)
	}
	return args, nil
}

// unquote strips one outer pair of double quotes when the token both starts
// and ends with '"'; otherwise the token is taken verbatim after trimming.
func unquote(s string) string {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, `"`) && strings.HasSuffix(trimmed, `"`) && len(trimmed) >= 2 {
		return trimmed[1 : len(trimmed)-1]
	}
	return trimmed
}

// --- search arguments ---

// parseSearchArgs handles both the simple form search("key", <queries>) and
// the compound form search("key" and "value", <queries>), where the operator
// is located by a scan that respects quote context.
func parseSearchArgs(argsStr string) (search.Mode, []string, error) {
	argsStr = strings.TrimSpace(argsStr)
	if argsStr == "" {
		return 0, nil, errf("Search requires 2 arguments")
	}

	for _, op := range []string{"or", "and"} {
		token := " " + op + " "
		pos := findOperator(argsStr, token)
		if pos < 0 {
			continue
		}
		left := strings.TrimSpace(argsStr[:pos])
		right := strings.TrimSpace(argsStr[pos+len(token):])

		modeExpr, err := parseModeParts(left, right, op)
		if err != nil {
			return 0, nil, err
		}
		mode, err := search.ParseMode(modeExpr)
		if err != nil {
			return 0, nil, &ParseError{Message: err.Error()}
		}
		queries, err := parseQueriesAfterOperator(right)
		if err != nil {
			return 0, nil, err
		}
		return mode, queries, nil
	}

	args, err := splitArgs(argsStr)
	if err != nil {
		return 0, nil, err
	}
	if len(args) != 2 {
		return 0, nil, errf("Search requires 2 arguments")
	}

	modeTerm := unquote(args[0])
	if modeTerm != "key" && modeTerm != "value" {
		return 0, nil, errf(`Use search("key" or "value", "query") or search("key" and "value", "query") syntax`)
	}
	mode, err := search.ParseMode(modeTerm)
	if err != nil {
		return 0, nil, &ParseError{Message: err.Error()}
	}

	queries, err := parseQueryArgument(args[1])
	if err != nil {
		return 0, nil, err
	}
	return mode, queries, nil
}

// findOperator locates the first occurrence of operator outside of quotes.
func findOperator(s, operator string) int {
	inQuotes := false
	for i := 0; i < len(s); i++ {
		if s[i] == '"' {
			inQuotes = !inQuotes
		} else if !inQuotes && strings.HasPrefix(s[i:], operator) {
			return i
		}
	}
	return -1
}

// parseModeParts validates the quoted terms on both sides of the operator
// and rebuilds the mode expression ("key and value" etc.).
func parseModeParts(left, right, op string) (string, error) {
	leftTerm, err := firstQuotedTerm(left)
	if err != nil {
		return "", err
	}

	comma := commaOutsideQuotes(right)
	if comma < 0 {
		return "", errf("Missing comma after search type")
	}
	rightTerm, err := firstQuotedTerm(strings.TrimSpace(right[:comma]))
	if err != nil {
		return "", err
	}

	if !isSearchTerm(leftTerm) || !isSearchTerm(rightTerm) {
		return "", errf(`Search type must be "key" or "value"`)
	}
	return leftTerm + " " + op + " " + rightTerm, nil
}

func parseQueriesAfterOperator(right string) ([]string, error) {
	comma := commaOutsideQuotes(right)
	if comma < 0 {
		return nil, errf("Missing comma after search type")
	}
	return parseQueryArgument(strings.TrimSpace(right[comma+1:]))
}

// parseQueryArgument accepts a single quoted query or a bracketed array of
// them. At least one non-empty query is required.
func parseQueryArgument(arg string) ([]string, error) {
	arg = strings.TrimSpace(arg)

	if strings.HasPrefix(arg, "[") && strings.HasSuffix(arg, "]") {
		content := strings.TrimSpace(arg[1 : len(arg)-1])
		if content == "" {
			return nil, errf("Empty array not allowed")
		}

		elements, err := splitArrayElements(content)
		if err != nil {
			return nil, err
		}

		queries := make([]string, 0, len(elements))
		for _, element := range elements {
			query := unquote(element)
			if query == "" {
				return nil, errf("Empty query not allowed")
			}
			queries = append(queries, query)
		}
		if len(queries) == 0 {
			return nil, errf("At least one query required")
		}
		return queries, nil
	}

	query := unquote(arg)
	if query == "" {
		return nil, errf("Empty query not allowed")
	}
	return []string{query}, nil
}

func splitArrayElements(content string) ([]string, error) {
	var elements []string
	var current strings.Builder
	inQuotes := false

	for _, ch := range content {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
			current.WriteRune(ch)
		case ch == ',' && !inQuotes:
			if element := strings.TrimSpace(current.String()); element != "" {
				elements = append(elements, element)
			}
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}

	if inQuotes {
		return nil, errf("Unclosed quote in array")
	}

	if element := strings.TrimSpace(current.String()); element != "" {
		elements = append(elements, element)
	}
	return elements, nil
}

// firstQuotedTerm extracts the contents of the first quoted token in s.
func firstQuotedTerm(s string) (string, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, `"`) {
		if end := strings.IndexByte(s[1:], '"'); end >= 0 {
			return s[1 : 1+end], nil
		}
	}
	return "", errf("Expected quoted term")
}

func commaOutsideQuotes(s string) int {
	inQuotes := false
	for i := 0; i < len(s); i++ {
		if s[i] == '"' {
			inQuotes = !inQuotes
		} else if s[i] == ',' && !inQuotes {
			return i
		}
	}
	return -1
}

func isSearchTerm(term string) bool {
	return term == "key" || term == "value"
}
