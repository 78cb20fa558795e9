package captions

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// headerToken is the format marker that opens a WebVTT file
const headerToken = "WEBVTT"

// timingSeparator splits the start and end timestamps of a cue
const timingSeparator = "-->"

// Parse extracts the spoken text from a caption track payload. Structural
// lines (the WEBVTT header, cue indices, timestamp ranges, blank separators)
// are dropped; the remaining lines are joined, in order, into a single
// space-separated string.
func Parse(payload []byte) (string, error) {
	if !utf8.Valid(payload) {
		return "", fmt.Errorf("caption payload is not valid UTF-8")
	}

	var spoken []string

	for _, line := range strings.Split(string(payload), "\n") {
		line = strings.TrimSpace(line)

		// Skip empty lines, the WEBVTT header, cue numbers, and timestamps
		if line == "" || line == headerToken {
			continue
		}
		if isDigits(line) {
			continue
		}
		if strings.Contains(line, timingSeparator) {
			continue
		}

		// Otherwise, it's actual subtitle text
		spoken = append(spoken, line)
	}

	return strings.Join(spoken, " "), nil
}

// isDigits reports whether the line consists solely of decimal digits
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
