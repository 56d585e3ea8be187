package report

import (
	"fmt"
	"strings"

	"flare/internal/failure"
	"flare/internal/styledtext"
)

// failureDetails accumulates one report entry: a buffer per section plus
// the failure currently being appended. The visitor re-points failure at
// each direct cause as it descends, so the stack trace at the end renders
// the last visited cause rather than the context wrapper.
type failureDetails struct {
	failure *failure.Failure

	summary    styledtext.Buffer
	details    styledtext.Buffer
	location   styledtext.Buffer
	resolution styledtext.Buffer
	stackTrace styledtext.Buffer

	fullException bool
}

func (d *failureDetails) appendDetails() {
	renderStyledError(d.failure, styledtext.NewWriter(&d.details))
}

// renderStackTrace fills the Exception section, best-effort: a panic
// while capturing the representation drops the section silently instead
// of failing the report.
func (d *failureDetails) renderStackTrace() {
	if !d.fullException {
		return
	}
	defer func() {
		_ = recover()
	}()
	text := strings.TrimRight(failure.Sprint(d.failure), "\n")
	styledtext.NewWriter(&d.stackTrace).Text(text)
}

// renderStyledError writes a node's text: the custom styled rendering if
// the node carries one, otherwise the resolved display text.
func renderStyledError(f *failure.Failure, w *styledtext.Writer) {
	if f.Render != nil && safeRender(f, w) {
		return
	}
	w.Text(displayText(f))
}

func safeRender(f *failure.Failure, w *styledtext.Writer) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	f.Render(w)
	return true
}

// displayText is a node's full rendered text: message, then the problem
// block if any problems are attached, then the diagnostic-count line for
// compilation failures. Blank results fall back to the kind plus the
// no-error-message marker.
func displayText(f *failure.Failure) string {
	var b strings.Builder
	b.WriteString(f.DisplayMessage())
	if len(f.Problems) > 0 {
		if block := renderProblems(f.Problems); block != "" {
			b.WriteString("\n")
			b.WriteString(block)
		}
		if f.CompilationFailure && f.DiagnosticCounts != "" {
			b.WriteString("\n")
			b.WriteString(f.DiagnosticCounts)
		}
	}
	if s := b.String(); strings.TrimSpace(s) != "" {
		return s
	}
	return fmt.Sprintf("%s %s", f.Kind, noErrorMessage)
}

// isUsefulMessage reports whether a message is worth printing standalone.
func isUsefulMessage(msg string) bool {
	return strings.TrimSpace(msg) != "" && !strings.HasSuffix(msg, noErrorMessage)
}

// renderProblems arranges the problems attached to one failure into a
// single text block, one label per line.
func renderProblems(ps []failure.Problem) string {
	var lines []string
	for _, p := range ps {
		if strings.TrimSpace(p.Label) != "" {
			lines = append(lines, p.Label)
		}
	}
	return strings.Join(lines, "\n")
}
