package patcher

import (
	"strings"
	"unicode"
)

// normalizeLineForMatching trims a line and collapses internal whitespace
// runs to a single space.
func normalizeLineForMatching(line string) string {
	return strings.Join(strings.Fields(line), " ")
}

// containsLoose reports whether marker occurs in content once whitespace
// runs on both sides are collapsed.
func containsLoose(content, marker string) bool {
	m := normalizeLineForMatching(marker)
	if m == "" {
		return false
	}
	return strings.Contains(normalizeLineForMatching(content), m)
}

type lineSpan struct {
	start, end int // byte offsets; end excludes the newline
}

func splitLineSpans(s string) []lineSpan {
	var spans []lineSpan
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			spans = append(spans, lineSpan{start, i})
			start = i + 1
		}
	}
	return append(spans, lineSpan{start, len(s)})
}

// matchBlockEnds finds every non-overlapping occurrence of the anchor's lines
// in content and returns, for each, the offset just past the last matched
// line's content. Blank lines on either side are ignored and whitespace is
// compared normalized.
func matchBlockEnds(content, anchor string) []int {
	var block []string
	for _, line := range strings.Split(anchor, "\n") {
		if n := normalizeLineForMatching(line); n != "" {
			block = append(block, n)
		}
	}
	if len(block) == 0 {
		return nil
	}

	var filtered []string
	var spans []lineSpan
	for _, span := range splitLineSpans(content) {
		if n := normalizeLineForMatching(content[span.start:span.end]); n != "" {
			filtered = append(filtered, n)
			spans = append(spans, span)
		}
	}

	var ends []int
	for i := 0; i <= len(filtered)-len(block); {
		match := true
		for j := range block {
			if filtered[i+j] != block[j] {
				match = false
				break
			}
		}
		if !match {
			i++
			continue
		}
		last := spans[i+len(block)-1]
		line := strings.TrimRightFunc(content[last.start:last.end], unicode.IsSpace)
		ends = append(ends, last.start+len(line))
		i += len(block)
	}
	return ends
}
