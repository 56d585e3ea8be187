package styledtext

import "fmt"

// Style is a semantic emphasis category. Sinks decide how (or whether) a
// style is rendered; nothing above the sink layer knows about color codes.
type Style uint8

const (
	Normal Style = iota
	Failure
	Info
	UserInput
	Description
	Header
)

func (s Style) String() string {
	switch s {
	case Normal:
		return "normal"
	case Failure:
		return "failure"
	case Info:
		return "info"
	case UserInput:
		return "user-input"
	case Description:
		return "description"
	case Header:
		return "header"
	default:
		return fmt.Sprintf("style(%d)", uint8(s))
	}
}

// Sink consumes styled text spans. Implementations: Buffer (records),
// LinePrefixer (middleware), ConsoleSink (writes ANSI).
type Sink interface {
	Span(st Style, text string)
}

// Writer is the producer side: it tracks a current style and offers
// formatting helpers over a Sink.
type Writer struct {
	sink Sink
	cur  Style
}

func NewWriter(sink Sink) *Writer {
	return &Writer{sink: sink, cur: Normal}
}

// Style switches the writer's current style for subsequent Text calls.
func (w *Writer) Style(st Style) *Writer {
	w.cur = st
	return w
}

// WithStyle returns a writer over the same sink that writes in the given
// style without disturbing the receiver's current style.
func (w *Writer) WithStyle(st Style) *Writer {
	return &Writer{sink: w.sink, cur: st}
}

func (w *Writer) Text(text string) *Writer {
	if text != "" {
		w.sink.Span(w.cur, text)
	}
	return w
}

func (w *Writer) Format(format string, args ...any) *Writer {
	return w.Text(fmt.Sprintf(format, args...))
}

func (w *Writer) Println() *Writer {
	w.sink.Span(w.cur, "\n")
	return w
}
