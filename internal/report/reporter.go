// Package report turns a failure tree into a sectioned console report:
// Where, What went wrong, Try, Exception is. The pipeline is
// single-threaded, operates on an immutable tree, and never lets an
// error escape past its entry points; rendering degrades by omitting
// detail instead of failing the report.
package report

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"flare/internal/config"
	"flare/internal/failure"
	"flare/internal/styledtext"
)

const (
	noErrorMessage       = "(no error message)"
	resolutionLinePrefix = "> "
	entryDivider         = "=============================================================================="
)

// linePrefixPad aligns continuation lines under the bullet content column.
var linePrefixPad = strings.Repeat(" ", runewidth.StringWidth(resolutionLinePrefix))

// Reporter renders failure reports into a styled text sink.
type Reporter struct {
	sink styledtext.Sink
	cfg  config.Report
}

func New(sink styledtext.Sink, cfg config.Report) *Reporter {
	return &Reporter{sink: sink, cfg: cfg}
}

// ReportError classifies a raw error and reports it. A nil error is a
// no-op.
func (r *Reporter) ReportError(err error) {
	r.ReportFailure(failure.Classify(err))
}

// ReportFailure renders the report for an already-built failure tree.
// A nil failure is a no-op. A root with more than one direct cause
// renders as a numbered multi-failure report.
func (r *Reporter) ReportFailure(f *failure.Failure) {
	if f == nil {
		return
	}
	if len(f.Causes) > 1 {
		r.renderMultiple(f)
	} else {
		r.renderSingle(f)
	}
}

func (r *Reporter) renderSingle(f *failure.Failure) {
	out := styledtext.NewWriter(r.sink)
	d := r.constructDetails("Build", f)

	out.Println()
	out.WithStyle(styledtext.Failure).Text("FAILURE: ")
	d.summary.WriteToStyled(out, styledtext.Failure)
	out.Println()

	writeFailureDetails(out, d)
}

func (r *Reporter) renderMultiple(f *failure.Failure) {
	out := styledtext.NewWriter(r.sink)

	out.Println()
	out.WithStyle(styledtext.Failure).Format("FAILURE: %s", headlineMessage(f))
	out.Println()

	for i, cause := range f.Causes {
		d := r.constructDetails("Task", cause)

		out.Println()
		out.WithStyle(styledtext.Failure).Format("%d: ", i+1)
		d.summary.WriteToStyled(out, styledtext.Failure)
		out.Println()
		out.Text("-----------")

		writeFailureDetails(out, d)

		out.Text(entryDivider).Println()
	}
}

func (r *Reporter) constructDetails(granularity string, f *failure.Failure) *failureDetails {
	d := &failureDetails{
		failure:       f,
		fullException: r.cfg.Stacktrace != config.StacktraceHide,
	}
	styledtext.NewWriter(&d.summary).Format("%s failed with an exception.", granularity)

	r.fillInResolution(d)

	if f.ContextAware {
		v := &formattingVisitor{
			details: d,
			printed: make(map[string]struct{}),
		}
		v.accept(f.Causes)
		if f.Location != "" {
			styledtext.NewWriter(&d.location).Text(f.Location)
		}
	} else {
		d.appendDetails()
	}
	d.renderStackTrace()
	return d
}

// headlineMessage is the multi-failure headline; panic-safe like every
// message resolution in this package.
func headlineMessage(f *failure.Failure) string {
	return f.DisplayMessage()
}

func writeFailureDetails(out *styledtext.Writer, d *failureDetails) {
	writeSection(&d.location, out, "* Where:")
	writeSection(&d.details, out, "* What went wrong:")
	writeSection(&d.resolution, out, "* Try:")
	writeSection(&d.stackTrace, out, "* Exception is:")
}

func writeSection(buf *styledtext.Buffer, out *styledtext.Writer, title string) {
	if !buf.HasContent() {
		return
	}
	out.Println()
	out.Text(title).Println()
	buf.WriteTo(out)
	out.Println()
}
