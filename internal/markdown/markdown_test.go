// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "blank lines only",
			input: "\n\n   \n",
			want:  "",
		},
		{
			name:  "heading and paragraph",
			input: "# Title\n\nSome **bold** text.\n",
			want:  "<h1>Title</h1>\n<p>Some <b>bold</b> text.</p>\n",
		},
		{
			name:  "blank line separates paragraphs",
			input: "one\n\ntwo\n",
			want:  "<p>one</p>\n<p>two</p>\n",
		},
		{
			name:  "unordered list",
			input: "- a\n- b\n",
			want:  "<ul>\n  <li>a</li>\n  <li>b</li>\n</ul>\n",
		},
		{
			name:  "asterisk list items",
			input: "* a\n* b",
			want:  "<ul>\n  <li>a</li>\n  <li>b</li>\n</ul>\n",
		},
		{
			name:  "ordered list keeps explicit numbers",
			input: "5. five\n",
			want:  "<ol>\n  <li value=\"5\">five</li>\n</ol>\n",
		},
		{
			name:  "ordered list with non-sequential numbers",
			input: "1. a\n7. b\n",
			want:  "<ol>\n  <li value=\"1\">a</li>\n  <li value=\"7\">b</li>\n</ol>\n",
		},
		{
			name:  "ordered item text keeps later dots",
			input: "3. ship v1.2.0 today",
			want:  "<ol>\n  <li value=\"3\">ship v1.2.0 today</li>\n</ol>\n",
		},
		{
			name:  "list kind change closes previous list",
			input: "- a\n1. b\n",
			want:  "<ul>\n  <li>a</li>\n</ul>\n<ol>\n  <li value=\"1\">b</li>\n</ol>\n",
		},
		{
			name:  "paragraph terminates list",
			input: "- a\ntext\n",
			want:  "<ul>\n  <li>a</li>\n</ul>\n<p>text</p>\n",
		},
		{
			name:  "heading terminates list",
			input: "- a\n# H\n",
			want:  "<ul>\n  <li>a</li>\n</ul>\n<h1>H</h1>\n",
		},
		{
			name:  "blank line terminates list",
			input: "- a\n\n- b\n",
			want:  "<ul>\n  <li>a</li>\n</ul>\n<ul>\n  <li>b</li>\n</ul>\n",
		},
		{
			name:  "image does not terminate list",
			input: "- a\n![alt](img.png)\n- b\n",
			want:  "<ul>\n  <li>a</li>\n<img src=\"img.png\" alt=\"alt\">\n  <li>b</li>\n</ul>\n",
		},
		{
			name:  "double asterisk line is a paragraph",
			input: "**bold** start",
			want:  "<p><b>bold</b> start</p>\n",
		},
		{
			name:  "fenced code block",
			input: "```\nline one\n  indented\n```\n",
			want:  "<pre><code>line one\n  indented\n</code></pre>\n",
		},
		{
			name:  "fence with language",
			input: "```go\nfmt.Println()\n```\n",
			want:  "<pre><code class=\"language-go\">fmt.Println()\n</code></pre>\n",
		},
		{
			name:  "code content is literal",
			input: "```\n**x** # h\n- item\n```",
			want:  "<pre><code>**x** # h\n- item\n</code></pre>\n",
		},
		{
			name:  "blank lines inside code are kept",
			input: "```\na\n\nb\n```\n",
			want:  "<pre><code>a\n\nb\n</code></pre>\n",
		},
		{
			name:  "unterminated fence is closed",
			input: "```\ncode\n",
			want:  "<pre><code>code\n</code></pre>\n",
		},
		{
			name:  "quote marker inside fence is code",
			input: "```\n> not a quote\n",
			want:  "<pre><code>> not a quote\n</code></pre>\n",
		},
		{
			name:  "fence terminates list",
			input: "- a\n```\nx\n```\n",
			want:  "<ul>\n  <li>a</li>\n</ul>\n<pre><code>x\n</code></pre>\n",
		},
		{
			name:  "blockquote",
			input: "> a\n>b\nafter\n",
			want:  "<blockquote>\n  <p>a</p>\n  <p>b</p>\n</blockquote>\n<p>after</p>\n",
		},
		{
			name:  "unterminated blockquote is closed",
			input: "> q",
			want:  "<blockquote>\n  <p>q</p>\n</blockquote>\n",
		},
		{
			name:  "blockquote after list closes the list first",
			input: "- a\n> q\n",
			want:  "<ul>\n  <li>a</li>\n</ul>\n<blockquote>\n  <p>q</p>\n</blockquote>\n",
		},
		{
			name:  "line after blockquote is classified normally",
			input: "> q\n- a\n",
			want:  "<blockquote>\n  <p>q</p>\n</blockquote>\n<ul>\n  <li>a</li>\n</ul>\n",
		},
		{
			name:  "fence right after blockquote",
			input: "> q\n```\nx\n```",
			want:  "<blockquote>\n  <p>q</p>\n</blockquote>\n<pre><code>x\n</code></pre>\n",
		},
		{
			name:  "image",
			input: "![a cat](cat.png)",
			want:  "<img src=\"cat.png\" alt=\"a cat\">\n",
		},
		{
			name:  "image with surrounding text",
			input: "look ![logo](/img/logo.svg) here",
			want:  "<img src=\"/img/logo.svg\" alt=\"logo\">\n",
		},
		{
			name:  "link keeps only the first match",
			input: "see [Go](https://go.dev) and [x](y)",
			want:  "<a href=\"https://go.dev\">Go</a>\n",
		},
		{
			name:  "heading text is not inline formatted",
			input: "## **raw**",
			want:  "<h2>**raw**</h2>\n",
		},
		{
			name:  "heading without space",
			input: "#Title",
			want:  "<h6></h6>\n",
		},
		{
			name:  "crlf endings",
			input: "# T\r\n\r\ntext\r\n",
			want:  "<h1>T</h1>\n<p>text</p>\n",
		},
		{
			name:  "paragraph is trimmed",
			input: "   padded   ",
			want:  "<p>padded</p>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Convert(tt.input))
		})
	}
}

func TestConvertHeadingLevelClamp(t *testing.T) {
	for k := 1; k <= 9; k++ {
		t.Run(fmt.Sprintf("%d hashes", k), func(t *testing.T) {
			level := min(k, 6)
			input := strings.Repeat("#", k) + " Heading text"
			want := fmt.Sprintf("<h%d>Heading text</h%d>\n", level, level)
			assert.Equal(t, want, Convert(input))
		})
	}
}

func TestConvertNestedEmphasisIsNotDoubleWrapped(t *testing.T) {
	got := Convert("**_x_**")

	assert.Equal(t, "<p><b><i>x</i></b></p>\n", got)
	assert.Equal(t, 1, strings.Count(got, "<b>"))
	assert.NotContains(t, got, "*")
	assert.NotContains(t, got, "<i></i>")
}

func TestConvertListStructure(t *testing.T) {
	got := Convert("- a\n- b\n")

	assert.Equal(t, 1, strings.Count(got, "<ul>"))
	assert.Equal(t, 1, strings.Count(got, "</ul>"))
	assert.Equal(t, 2, strings.Count(got, "<li>"))
	assert.Less(t, strings.Index(got, "<li>a</li>"), strings.Index(got, "<li>b</li>"))
}

func TestConvertCRLFMatchesLF(t *testing.T) {
	lf := "# Doc\n\n- one\n- two\n\n> quote\n\n```\ncode\n```\n\nplain *text*\n"
	crlf := strings.ReplaceAll(lf, "\n", "\r\n")

	assert.Equal(t, Convert(lf), Convert(crlf))
}

func TestConvertClosesEveryOpenContext(t *testing.T) {
	tests := []struct {
		input string
		close string
	}{
		{"- a", "</ul>\n"},
		{"1. a", "</ol>\n"},
		{"```\nx", "</code></pre>\n"},
		{"> q", "</blockquote>\n"},
	}
	for _, tt := range tests {
		got := Convert(tt.input)
		assert.True(t, strings.HasSuffix(got, tt.close), "%q -> %q", tt.input, got)
		assert.Equal(t, 1, strings.Count(got, tt.close), "%q -> %q", tt.input, got)
	}
}

func TestConvertMalformedInputDoesNotPanic(t *testing.T) {
	inputs := []string{
		"![",
		"![alt",
		"![](",
		"!)(][",
		"[x](",
		"](",
		"[",
		"#",
		"# ",
		"1.",
		"- ",
		"* ",
		">",
		"```",
		"``````",
		"**unterminated",
		"~~",
		"`",
		"\r",
		"\r\n\r\n",
		"\x00\xff",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { Convert(in) }, "input %q", in)
	}
}

func TestConvertMalformedImage(t *testing.T) {
	assert.Equal(t, "<img src=\"\" alt=\"alt\">\n", Convert("![alt"))
	assert.Equal(t, "<img src=\"pic.png\" alt=\"\">\n", Convert("![](pic.png)"))
}

func TestConvertIsSafeForConcurrentUse(t *testing.T) {
	input := "# T\n\n- a\n- b\n\n```\ncode\n```\n\n> q\n\n**bold**\n"
	want := Convert(input)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Convert(input)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		require.Equal(t, want, got)
	}
}

func TestScanStateStep(t *testing.T) {
	tests := []struct {
		name      string
		state     scanState
		line      string
		wantState scanState
		wantOut   string
	}{
		{
			name:      "first unordered item opens list",
			state:     scanState{},
			line:      "- a",
			wantState: scanState{block: blockList, list: listUnordered},
			wantOut:   "<ul>\n  <li>a</li>\n",
		},
		{
			name:      "second item continues list",
			state:     scanState{block: blockList, list: listUnordered},
			line:      "- b",
			wantState: scanState{block: blockList, list: listUnordered},
			wantOut:   "  <li>b</li>\n",
		},
		{
			name:      "closing fence",
			state:     scanState{block: blockCode},
			line:      "```",
			wantState: scanState{},
			wantOut:   "</code></pre>\n",
		},
		{
			name:      "opening fence",
			state:     scanState{},
			line:      "```sh",
			wantState: scanState{block: blockCode},
			wantOut:   "<pre><code class=\"language-sh\">",
		},
		{
			name:      "text after blockquote",
			state:     scanState{block: blockQuote},
			line:      "text",
			wantState: scanState{},
			wantOut:   "</blockquote>\n<p>text</p>\n",
		},
		{
			name:      "blank line in list",
			state:     scanState{block: blockList, list: listOrdered},
			line:      "",
			wantState: scanState{},
			wantOut:   "</ol>\n",
		},
		{
			name:      "link inside list keeps list open",
			state:     scanState{block: blockList, list: listOrdered},
			line:      "[a](b)",
			wantState: scanState{block: blockList, list: listOrdered},
			wantOut:   "<a href=\"b\">a</a>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			got := tt.state.step(tt.line, &out)
			assert.Equal(t, tt.wantState, got)
			assert.Equal(t, tt.wantOut, out.String())
		})
	}
}

func TestBetween(t *testing.T) {
	tests := []struct {
		s, left, right, want string
	}{
		{"[text](url)", "[", "]", "text"},
		{"[text](url)", "](", ")", "url"},
		{"no delimiters", "[", "]", ""},
		{"[unclosed", "[", "]", "unclosed"},
		{"]before[after]", "[", "]", "after"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, between(tt.s, tt.left, tt.right), "between(%q, %q, %q)", tt.s, tt.left, tt.right)
	}
}
