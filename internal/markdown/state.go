// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import "strings"

// block identifies the block context open across lines. Contexts never
// nest, so a single value covers list, code and blockquote.
type block int

const (
	blockNone block = iota
	blockList
	blockCode
	blockQuote
)

type listKind int

const (
	listUnordered listKind = iota + 1
	listOrdered
)

// scanState is the state carried from one line to the next. It is a plain
// value: step returns the successor rather than mutating shared state.
type scanState struct {
	block block
	list  listKind // meaningful only when block == blockList
	first bool     // next list item is the first of its list
}

// openList ensures a list of the given kind is open, closing a list of the
// other kind first.
func (st scanState) openList(kind listKind, out *strings.Builder) scanState {
	if st.block == blockList && st.list == kind {
		return st
	}
	st = st.close(out)
	if kind == listOrdered {
		out.WriteString("<ol>")
	} else {
		out.WriteString("<ul>")
	}
	return scanState{block: blockList, list: kind, first: true}
}

// writeItem appends a list item. The first item breaks the line after the
// opening tag; every item is indented and newline terminated.
func (st scanState) writeItem(out *strings.Builder, item string) scanState {
	if st.first {
		out.WriteByte('\n')
		st.first = false
	}
	out.WriteString("  ")
	out.WriteString(item)
	out.WriteByte('\n')
	return st
}

// close emits the closing tag of the open context, if any, and returns
// the empty state.
func (st scanState) close(out *strings.Builder) scanState {
	switch st.block {
	case blockList:
		if st.list == listOrdered {
			out.WriteString("</ol>\n")
		} else {
			out.WriteString("</ul>\n")
		}
	case blockCode:
		out.WriteString("</code></pre>\n")
	case blockQuote:
		out.WriteString("</blockquote>\n")
	}
	return scanState{}
}

// finish closes whatever is still open at end of input.
func (st scanState) finish(out *strings.Builder) {
	st.close(out)
}
