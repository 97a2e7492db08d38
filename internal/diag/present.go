package diag

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mpvl/unique"
	"golang.org/x/text/width"

	"github.com/folidity-lang/folidity/internal/source"
)

// Present renders every report in insertion order, with a source excerpt
// and a caret/underline aligned to the span using display-width aware
// column counting so multi-byte identifiers underline correctly.
func Present(w io.Writer, src, filename string, reports []Report) {
	for _, r := range reports {
		presentOne(w, src, filename, r, 0)
	}
}

func presentOne(w io.Writer, src, filename string, r Report, depth int) {
	indent := strings.Repeat("  ", depth)
	line, col := source.LineCol(src, r.Span.Start)
	fmt.Fprintf(w, "%s%s: %s: %s:%d:%d: %s\n", indent, r.Level, r.Kind, filename, line, col, r.Message)

	if depth == 0 {
		if excerpt := sourceExcerpt(src, r.Span); excerpt != "" {
			fmt.Fprintf(w, "%s\n", excerpt)
		}
	}

	for _, n := range r.Notes {
		presentOne(w, src, filename, n, depth+1)
	}
}

// sourceExcerpt renders the line containing span.Start plus a display-width
// aligned underline covering the span.
func sourceExcerpt(src string, span source.Span) string {
	if !span.IsValid() {
		return ""
	}
	lineStart := strings.LastIndexByte(src[:span.Start], '\n') + 1
	lineEndRel := strings.IndexByte(src[span.Start:], '\n')
	lineEnd := len(src)
	if lineEndRel >= 0 {
		lineEnd = span.Start + lineEndRel
	}
	line := src[lineStart:lineEnd]

	prefixWidth := displayWidth(src[lineStart:span.Start])
	spanWidth := displayWidth(span.Slice(src))
	if spanWidth == 0 {
		spanWidth = 1
	}
	return line + "\n" + strings.Repeat(" ", prefixWidth) + strings.Repeat("^", spanWidth)
}

// displayWidth sums the terminal display width of s, treating East-Asian
// wide/fullwidth runes as two columns.
func displayWidth(s string) int {
	total := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			total += 2
		default:
			total++
		}
	}
	return total
}

// uint32Slice adapts a []uint32 to unique.Interface (sort.Interface plus
// Truncate), the shape mpvl/unique expects for a sort-then-dedupe pass.
type uint32Slice struct{ p *[]uint32 }

func (s uint32Slice) Len() int           { return len(*s.p) }
func (s uint32Slice) Less(i, j int) bool { return (*s.p)[i] < (*s.p)[j] }
func (s uint32Slice) Swap(i, j int)      { (*s.p)[i], (*s.p)[j] = (*s.p)[j], (*s.p)[i] }
func (s uint32Slice) Truncate(n int)     { *s.p = (*s.p)[:n] }

// DedupeTagIDs sorts and removes duplicate constraint-tag ids, used when
// reporting an unsat core that references the same tag through more than
// one symbolic-use edge.
func DedupeTagIDs(ids []uint32) []uint32 {
	sort.Sort(uint32Slice{&ids})
	unique.Unique(uint32Slice{&ids})
	return ids
}
