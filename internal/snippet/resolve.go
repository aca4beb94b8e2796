package snippet

// Range is a 1-based, end-exclusive span of source lines.
type Range struct {
	Start int
	End   int
}

// Len returns the number of lines in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Resolve computes the concrete line range the address names within lines.
//
// The start spec is searched from line 1; the end spec is searched from the
// line after the resolved start, regardless of how the start was obtained.
// Matches are first-match-in-forward-scan with no backtracking. When the
// address carries a trailing +, the matched end line is included.
func (a *Address) Resolve(lines []string) (Range, error) {
	start, err := a.Start.resolve(a, "start", lines, 1)
	if err != nil {
		return Range{}, err
	}

	end, err := a.End.resolve(a, "end", lines, start+1)
	if err != nil {
		return Range{}, err
	}

	if a.InclusiveEnd {
		end++
	}

	if end < start {
		return Range{}, &LineOutOfRangeError{File: a.Path, Which: "end", Line: end, Before: start}
	}

	if end > len(lines)+1 {
		return Range{}, &LineOutOfRangeError{File: a.Path, Which: "end", Line: end - 1, Total: len(lines)}
	}

	return Range{Start: start, End: end}, nil
}

// Extract returns the lines in r verbatim. It re-checks the bounds so a
// stale range can never slice past the file.
func Extract(lines []string, r Range) ([]string, error) {
	if r.Start < 1 || r.End < r.Start || r.End > len(lines)+1 {
		return nil, &LineOutOfRangeError{Which: "range", Line: r.Start, Total: len(lines)}
	}

	return lines[r.Start-1 : r.End-1], nil
}
