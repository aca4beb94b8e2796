package snippet

import "fmt"

// MalformedMarkerError reports a marker payload that does not follow the
// path:start:end grammar.
type MalformedMarkerError struct {
	Payload string
	Reason  string
}

func (e *MalformedMarkerError) Error() string {
	return fmt.Sprintf("malformed snippet marker %q: %s", e.Payload, e.Reason)
}

// PatternNotFoundError reports a glob or regex line spec with no matching
// line in its search window.
type PatternNotFoundError struct {
	File    string
	Which   string // "start" or "end"
	Pattern string
}

func (e *PatternNotFoundError) Error() string {
	return fmt.Sprintf("%s pattern %s not found in %s", e.Which, e.Pattern, e.File)
}

// LineOutOfRangeError reports a resolved line outside the source file's
// bounds, or an end line that precedes the start line.
type LineOutOfRangeError struct {
	File  string
	Which string // "start", "end" or "range"
	Line  int
	Total int

	// Before is the start line when the end line resolved before it.
	Before int
}

func (e *LineOutOfRangeError) Error() string {
	if e.Before > 0 {
		return fmt.Sprintf("end line %d precedes start line %d in %s", e.Line, e.Before, e.File)
	}

	if e.File == "" {
		return fmt.Sprintf("%s line %d out of range (file has %d lines)", e.Which, e.Line, e.Total)
	}

	return fmt.Sprintf("%s line %d out of range in %s (file has %d lines)", e.Which, e.Line, e.File, e.Total)
}
