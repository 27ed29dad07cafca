// Package extract turns raw text returned by a language model into a
// validated JSON object. Models frequently wrap valid JSON in prose or
// markdown fencing, or omit a requested field; the ordered fallback here
// recovers the common cases without silently accepting malformed structure.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Sentinel errors for extraction failures.
var (
	// ErrNoJSONObject indicates no parse strategy found a valid JSON object.
	ErrNoJSONObject = errors.New("no parseable JSON object in model output")

	// ErrMissingKey indicates a syntactically valid object was found but a
	// required top-level key is absent.
	ErrMissingKey = errors.New("required key missing from model output")
)

// maxExcerptLen bounds the diagnostic excerpt carried on extraction errors
// so failure payloads stay small no matter how much text the model produced.
const maxExcerptLen = 500

// Error is the typed failure returned by Extract. It wraps one of the
// sentinel errors above and carries a bounded excerpt of the raw text for
// diagnostics, never the full text.
type Error struct {
	Reason  error
	Excerpt string
}

func (e *Error) Error() string {
	return fmt.Sprintf("extraction failed: %v (excerpt: %q)", e.Reason, e.Excerpt)
}

func (e *Error) Unwrap() error {
	return e.Reason
}

// fencedBlockRegex matches the first triple-backtick block, optionally
// tagged as json, capturing its interior.
var fencedBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*\n?(.*?)```")

// Extract parses rawText into a JSON object and verifies that every key in
// requiredKeys is present at the top level. Strategies are attempted in
// order, each only if the previous failed to produce a valid object:
//
//  1. parse rawText directly as a JSON object
//  2. parse the interior of the first fenced code block
//  3. parse the first balanced {...} substring (brace matching, so nested
//     objects are tolerated)
//
// The first successfully parsed object is final: if it is missing a required
// key the whole extraction fails rather than falling through to a later
// strategy, since a valid-but-incomplete object means the model ignored the
// prompt, not that a better object is hiding elsewhere in the text.
//
// Extract is deterministic: the same rawText always yields the same result.
func Extract(rawText string, requiredKeys []string) (map[string]json.RawMessage, error) {
	obj, found := parseObject(strings.TrimSpace(rawText))

	if !found {
		if interior, ok := fencedInterior(rawText); ok {
			obj, found = parseObject(interior)
		}
	}

	if !found {
		if candidate, ok := firstBalancedObject(rawText); ok {
			obj, found = parseObject(candidate)
		}
	}

	if !found {
		return nil, &Error{Reason: ErrNoJSONObject, Excerpt: excerpt(rawText)}
	}

	for _, key := range requiredKeys {
		if _, ok := obj[key]; !ok {
			return nil, &Error{
				Reason:  fmt.Errorf("%w: %q", ErrMissingKey, key),
				Excerpt: excerpt(rawText),
			}
		}
	}

	return obj, nil
}

// parseObject attempts to unmarshal s as a single JSON object.
func parseObject(s string) (map[string]json.RawMessage, bool) {
	if s == "" || s[0] != '{' {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// fencedInterior returns the interior of the first triple-backtick block.
func fencedInterior(s string) (string, bool) {
	match := fencedBlockRegex.FindStringSubmatch(s)
	if match == nil {
		return "", false
	}
	return strings.TrimSpace(match[1]), true
}

// firstBalancedObject scans s for the first '{' that opens a balanced,
// parseable object. Brace depth is tracked outside of string literals, with
// backslash escapes honored, so objects containing braces in string values
// are matched correctly. Candidates that balance but fail to parse are
// skipped and the scan resumes at the next '{'.
func firstBalancedObject(s string) (string, bool) {
	for start := strings.IndexByte(s, '{'); start >= 0; {
		if end := matchBrace(s, start); end >= 0 {
			candidate := s[start : end+1]
			if _, ok := parseObject(candidate); ok {
				return candidate, true
			}
		}

		next := strings.IndexByte(s[start+1:], '{')
		if next < 0 {
			return "", false
		}
		start += 1 + next
	}
	return "", false
}

// matchBrace returns the index of the brace closing the one at start, or -1
// if the braces never balance before the end of s.
func matchBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// excerpt truncates raw to the bounded diagnostic length.
func excerpt(raw string) string {
	if len(raw) <= maxExcerptLen {
		return raw
	}
	return raw[:maxExcerptLen]
}
