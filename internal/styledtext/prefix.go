package styledtext

import "strings"

// LinePrefixer forwards spans to another sink, inserting a plain-text
// prefix after every line break. The first line is not prefixed; callers
// write their own lead-in (indent plus bullet) before switching to the
// prefixer for the remainder of a node's text.
type LinePrefixer struct {
	next    Sink
	prefix  string
	pending bool
}

func NewLinePrefixer(next Sink, prefix string) *LinePrefixer {
	return &LinePrefixer{next: next, prefix: prefix}
}

func (p *LinePrefixer) Span(st Style, text string) {
	for text != "" {
		if p.pending {
			p.next.Span(Normal, p.prefix)
			p.pending = false
		}
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			p.next.Span(st, text)
			return
		}
		p.next.Span(st, text[:i+1])
		p.pending = true
		text = text[i+1:]
	}
}
