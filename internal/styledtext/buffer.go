package styledtext

import "strings"

// Span is one recorded run of same-styled text.
type Span struct {
	Style Style
	Text  string
}

// Buffer records spans for later replay into another sink. Each report
// section accumulates into its own Buffer and is assembled at the end.
type Buffer struct {
	spans []Span
}

func (b *Buffer) Span(st Style, text string) {
	if text == "" {
		return
	}
	b.spans = append(b.spans, Span{Style: st, Text: text})
}

// HasContent reports whether any text was written. Sections with no
// content are omitted from the report entirely.
func (b *Buffer) HasContent() bool {
	return len(b.spans) > 0
}

// WriteTo replays the recorded spans through the writer.
func (b *Buffer) WriteTo(w *Writer) {
	for _, s := range b.spans {
		w.WithStyle(s.Style).Text(s.Text)
	}
}

// WriteToStyled replays the recorded spans, substituting def for spans
// recorded in the Normal style.
func (b *Buffer) WriteToStyled(w *Writer, def Style) {
	for _, s := range b.spans {
		st := s.Style
		if st == Normal {
			st = def
		}
		w.WithStyle(st).Text(s.Text)
	}
}

// String returns the plain text content with styles dropped.
func (b *Buffer) String() string {
	var sb strings.Builder
	for _, s := range b.spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}
