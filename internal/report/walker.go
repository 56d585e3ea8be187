package report

import (
	"strings"

	"flare/internal/failure"
	"flare/internal/styledtext"
)

// formattingVisitor walks a context-aware failure's cause graph and
// appends the pruned causal sequence to the What-went-wrong buffer.
// Accumulators: the printed set (keyed by structural identity), the
// presentation depth, and the suppressed duplicate-branch tally.
type formattingVisitor struct {
	details    *failureDetails
	printed    map[string]struct{}
	depth      int
	suppressed int
}

func (v *formattingVisitor) accept(causes []*failure.Failure) {
	for _, cause := range causes {
		v.visitCause(cause)
		v.visitCauses(cause)
	}
	v.endVisiting()
}

// visitCause renders a direct cause of the reported failure. Direct
// causes are always shown; pruning applies only below them.
func (v *formattingVisitor) visitCause(cause *failure.Failure) {
	v.details.failure = cause
	v.details.appendDetails()
}

func (v *formattingVisitor) visitCauses(f *failure.Failure) {
	if len(f.Causes) == 0 {
		return
	}
	v.depth++
	for _, cause := range f.Causes {
		v.visitContextual(cause)
	}
	v.depth--
}

// visitContextual prints the nearest contextual node within the branch
// and recurses into it; a branch with no contextual node prints only its
// head as the direct cause of the last contextual failure.
func (v *formattingVisitor) visitContextual(f *failure.Failure) {
	if next := findNearestContextual(f); next != nil {
		v.node(next)
		v.visitCauses(next)
	} else {
		v.node(f)
	}
}

// node prints a candidate node unless a structurally identical node (or
// one reachable from it) was already printed. A suppressed duplicate
// branch is tallied only when its leaf has no causes of its own.
func (v *formattingVisitor) node(f *failure.Failure) {
	if v.shouldBePrinted(f) {
		v.printed[f.Key()] = struct{}{}
		if len(f.Causes) == 0 || isUsefulMessage(displayText(f)) {
			renderStyledError(f, v.linePrefixedOutput())
		}
	} else if len(f.Causes) == 0 {
		v.suppressed++
	}
}

// shouldBePrinted walks the transitive closure of f's causes (and, for
// context-aware nodes, their flattened reportable causes) looking for an
// already-printed node; finding one suppresses the whole branch.
func (v *formattingVisitor) shouldBePrinted(f *failure.Failure) bool {
	if len(v.printed) == 0 {
		return true
	}
	queue := []*failure.Failure{f}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		if _, ok := v.printed[curr.Key()]; ok {
			return false
		}
		queue = append(queue, curr.Causes...)
		if curr.ContextAware {
			queue = append(queue, reportableCauses(curr)...)
		}
	}
	return true
}

func (v *formattingVisitor) endVisiting() {
	if v.suppressed == 0 {
		return
	}
	out := v.linePrefixedOutput()
	if v.suppressed > 1 {
		out.Format("There are %d more failures with identical causes.", v.suppressed)
	} else {
		out.Text("There is 1 more failure with an identical cause.")
	}
}

// linePrefixedOutput starts a fresh line at the current depth: indent,
// bullet marker, and a prefixer that keeps continuation lines aligned
// under the bullet content column.
func (v *formattingVisitor) linePrefixedOutput() *styledtext.Writer {
	w := styledtext.NewWriter(&v.details.details)
	w.Println()
	indent := depthIndent(v.depth - 1)
	w.Text(indent)
	w.Style(styledtext.Info).Text(resolutionLinePrefix).Style(styledtext.Normal)
	return styledtext.NewWriter(styledtext.NewLinePrefixer(&v.details.details, indent+linePrefixPad))
}

func depthIndent(levels int) string {
	if levels < 1 {
		return ""
	}
	return strings.Repeat("   ", levels)
}

// findNearestContextual follows a single-cause chain to the nearest node
// that renders standalone; nil when the whole chain is pass-through.
func findNearestContextual(f *failure.Failure) *failure.Failure {
	if f == nil {
		return nil
	}
	if f.IsContextual() {
		return f
	}
	if len(f.Causes) == 0 {
		return nil
	}
	// Not contextual, so at most one cause.
	return findNearestContextual(f.Causes[0])
}

// reportableCauses flattens the contextual walk of a failure's causes
// into the node sequence the visitor would print for it.
func reportableCauses(f *failure.Failure) []*failure.Failure {
	var acc []*failure.Failure
	for _, cause := range f.Causes {
		appendReportable(cause, &acc)
	}
	return acc
}

func appendReportable(f *failure.Failure, acc *[]*failure.Failure) {
	if next := findNearestContextual(f); next != nil {
		*acc = append(*acc, next)
		for _, cause := range next.Causes {
			appendReportable(cause, acc)
		}
	} else {
		*acc = append(*acc, f)
	}
}
