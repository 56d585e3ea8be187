package failure

import (
	"io"
	"strings"
)

// Fprint writes the complete failure chain without pruning or dedup: one
// header per node, description lines indented, every cause introduced
// with "Caused by:". This is the raw representation used for the
// Exception section and for envelope descriptions.
func Fprint(w io.Writer, f *Failure) {
	if f == nil {
		return
	}
	printNode(w, f, "")
}

// Sprint is Fprint into a string.
func Sprint(f *Failure) string {
	var sb strings.Builder
	Fprint(&sb, f)
	return sb.String()
}

func printNode(w io.Writer, f *Failure, heading string) {
	io.WriteString(w, heading)
	io.WriteString(w, headerLine(f))
	io.WriteString(w, "\n")
	if f.Description != "" {
		for _, line := range strings.Split(strings.TrimRight(f.Description, "\n"), "\n") {
			io.WriteString(w, "  ")
			io.WriteString(w, line)
			io.WriteString(w, "\n")
		}
	}
	for _, c := range f.Causes {
		printNode(w, c, "Caused by: ")
	}
}

func headerLine(f *Failure) string {
	msg := f.DisplayMessage()
	if f.Kind == "" {
		return msg
	}
	if msg == "" {
		return f.Kind
	}
	return f.Kind + ": " + msg
}
