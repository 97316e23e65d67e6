package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrNoJSON = errors.New("no JSON object in reply")

// ExtractJSON decodes the first JSON object found in reply into v. The object
// may be wrapped in markdown fences or surrounded by prose.
func ExtractJSON(reply string, v any) error {
	s := strings.TrimSpace(reply)
	if err := json.Unmarshal([]byte(s), v); err == nil {
		return nil
	}

	if i := strings.Index(s, "```"); i >= 0 {
		rest := s[i+3:]
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			rest = rest[nl+1:]
		}
		if j := strings.Index(rest, "```"); j >= 0 {
			if err := json.Unmarshal([]byte(strings.TrimSpace(rest[:j])), v); err == nil {
				return nil
			}
		}
	}

	for start := strings.IndexByte(s, '{'); start >= 0; {
		if end := matchBrace(s, start); end > start {
			if err := json.Unmarshal([]byte(s[start:end+1]), v); err == nil {
				return nil
			}
		}
		next := strings.IndexByte(s[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return ErrNoJSON
}

// matchBrace returns the index of the brace closing the one at start, or -1.
func matchBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
