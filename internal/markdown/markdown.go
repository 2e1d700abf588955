// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markdown converts Markdown text into an HTML fragment.
//
// Conversion is a single forward pass over the input lines. Each line is
// classified into a block construct (heading, paragraph, list item, fenced
// code line, blockquote line) by a fixed precedence order; paragraph lines
// additionally go through the inline rule list (see InlineRules). The
// package performs no I/O and Convert never fails.
package markdown

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	fence           = "```"
	maxHeadingLevel = 6
)

var orderedPrefix = regexp.MustCompile(`^(\d+)\.`)

// Convert translates markdown into an HTML fragment. It is total: any
// input, including the empty string, yields a (possibly empty) result.
func Convert(markdown string) string {
	var (
		out strings.Builder
		st  scanState
	)
	for _, line := range splitLines(markdown) {
		st = st.step(line, &out)
	}
	st.finish(&out)
	return out.String()
}

// splitLines splits on line feeds and drops a trailing carriage return
// from each line. A final empty line produced by a terminating newline is
// dropped so it does not leak into an unterminated code block.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// step classifies one line, appends its HTML to out and returns the state
// for the next line.
func (st scanState) step(line string, out *strings.Builder) scanState {
	// Inside a fence every line is literal until the closing fence.
	if st.block == blockCode {
		if strings.HasPrefix(line, fence) {
			return st.close(out)
		}
		out.WriteString(line)
		out.WriteByte('\n')
		return st
	}

	if strings.HasPrefix(line, ">") {
		if st.block != blockQuote {
			st = st.close(out)
			out.WriteString("<blockquote>\n")
			st.block = blockQuote
		}
		fmt.Fprintf(out, "  <p>%s</p>\n", strings.TrimSpace(line[1:]))
		return st
	}
	if st.block == blockQuote {
		st = st.close(out)
	}

	if strings.HasPrefix(line, fence) {
		st = st.close(out)
		writeCodeOpen(out, line)
		st.block = blockCode
		return st
	}

	if strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "- ") {
		st = st.openList(listUnordered, out)
		return st.writeItem(out, "<li>"+strings.TrimSpace(line[2:])+"</li>")
	}

	if i := strings.Index(line, "!["); i >= 0 {
		region := line[i+1:]
		fmt.Fprintf(out, `<img src="%s" alt="%s">`+"\n", between(region, "(", ")"), between(region, "[", "]"))
		return st
	}

	if strings.Contains(line, "[") && strings.Contains(line, "](") {
		fmt.Fprintf(out, `<a href="%s">%s</a>`+"\n", between(line, "](", ")"), between(line, "[", "]"))
		return st
	}

	if m := orderedPrefix.FindStringSubmatch(line); m != nil {
		st = st.openList(listOrdered, out)
		text := strings.TrimSpace(line[len(m[0]):])
		return st.writeItem(out, fmt.Sprintf(`<li value="%s">%s</li>`, m[1], text))
	}

	if st.block == blockList {
		st = st.close(out)
	}

	if strings.HasPrefix(line, "#") {
		writeHeading(out, line)
		return st
	}

	if text := strings.TrimSpace(line); text != "" {
		fmt.Fprintf(out, "<p>%s</p>\n", ApplyInline(text))
	}
	return st
}

// writeCodeOpen emits the opening structure of a code block. A fence with
// an info string ("```go") tags the code element with its language.
func writeCodeOpen(out *strings.Builder, line string) {
	info := strings.Fields(line[len(fence):])
	if len(info) == 0 {
		out.WriteString("<pre><code>")
		return
	}
	fmt.Fprintf(out, `<pre><code class="language-%s">`, info[0])
}

// writeHeading emits a heading whose level is the length of the text before
// the first space, capped at six.
func writeHeading(out *strings.Builder, line string) {
	prefix, text, _ := strings.Cut(line, " ")
	level := min(utf8.RuneCountInString(prefix), maxHeadingLevel)
	fmt.Fprintf(out, "<h%d>%s</h%d>\n", level, text, level)
}

// between returns the text after the first left delimiter in s up to the
// next right delimiter. A missing left yields ""; a missing right yields
// the rest of s.
func between(s, left, right string) string {
	i := strings.Index(s, left)
	if i < 0 {
		return ""
	}
	rest := s[i+len(left):]
	if j := strings.Index(rest, right); j >= 0 {
		return rest[:j]
	}
	return rest
}
