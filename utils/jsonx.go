package utils

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSON is returned when no balanced JSON value could be found in a
// provider response.
var ErrNoJSON = errors.New("no JSON value found in text")

// ExtractJSON returns the first balanced JSON object or array embedded in
// text. Provider responses are often wrapped in prose or markdown code
// fences; the scan skips everything outside the value, so fences need no
// special handling and backticks inside string values stay intact.
func ExtractJSON(text string) (string, error) {
	objStart := strings.IndexByte(text, '{')
	arrStart := strings.IndexByte(text, '[')
	start := objStart
	if start == -1 || (arrStart != -1 && arrStart < start) {
		start = arrStart
	}
	if start == -1 {
		return "", ErrNoJSON
	}

	open := text[start]
	var closing byte = '}'
	if open == '[' {
		closing = ']'
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch c {
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}
	return "", ErrNoJSON
}

// UnmarshalExtracted extracts the first balanced JSON value from text and
// unmarshals it into v. Callers validate the decoded shape themselves and
// substitute their named fallback on any error.
func UnmarshalExtracted(text string, v any) error {
	raw, err := ExtractJSON(text)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), v)
}
