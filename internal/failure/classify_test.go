package failure

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

type hintedErr struct{ msg string }

func (e hintedErr) Error() string         { return e.msg }
func (e hintedErr) Resolutions() []string { return []string{"try again"} }

type contextualErr struct{ cause error }

func (e contextualErr) Error() string      { return "contextual wrapper" }
func (e contextualErr) Unwrap() error      { return e.cause }
func (e contextualErr) ContextualFailure() {}

type foreignErr struct{}

func (foreignErr) Error() string      { return "thrown by a plugin" }
func (foreignErr) NonFrameworkCause() {}

type compileErr struct{}

func (compileErr) Error() string { return "compilation failed" }
func (compileErr) DiagnosticCounts() string {
	return "2 errors, 1 warning"
}
func (compileErr) FailureProblems() []Problem {
	return []Problem{{Label: "syntax error at build.fl:3", Solutions: []string{"Fix the syntax"}}}
}

type locatedErr struct{}

func (locatedErr) Error() string           { return "script blew up" }
func (locatedErr) FailureLocation() string { return "build file 'build.fl' line: 7" }
func (locatedErr) ContextAware()           {}

func TestClassifyNil(t *testing.T) {
	if f := Classify(nil); f != nil {
		t.Fatalf("nil error must classify to nil, got %+v", f)
	}
}

func TestClassifyWrappedChain(t *testing.T) {
	base := errors.New("boom")
	f := Classify(fmt.Errorf("loading settings: %w", base))

	if f.Message != "loading settings: boom" {
		t.Fatalf("unexpected root message %q", f.Message)
	}
	if len(f.Causes) != 1 || f.Causes[0].Message != "boom" {
		t.Fatalf("unexpected causes: %+v", f.Causes)
	}
	if len(f.Causes[0].Causes) != 0 {
		t.Fatalf("leaf must have no causes: %+v", f.Causes[0].Causes)
	}
}

func TestClassifyJoinedErrorsBecomeMultiCause(t *testing.T) {
	f := Classify(errors.Join(errors.New("first"), errors.New("second")))
	if len(f.Causes) != 2 {
		t.Fatalf("expected 2 causes, got %d", len(f.Causes))
	}
	if f.Causes[0].Message != "first" || f.Causes[1].Message != "second" {
		t.Fatalf("cause order must be preserved: %+v", f.Causes)
	}
	if !f.IsContextual() {
		t.Fatal("multi-cause node must be contextual")
	}
}

func TestClassifyCapabilities(t *testing.T) {
	f := Classify(contextualErr{cause: hintedErr{msg: "inner"}})
	if !f.Contextual {
		t.Fatal("contextual marker not honored")
	}
	inner := f.Causes[0]
	if len(inner.Resolutions) != 1 || inner.Resolutions[0] != "try again" {
		t.Fatalf("resolution provider not honored: %+v", inner.Resolutions)
	}

	if g := Classify(foreignErr{}); !g.NonFramework {
		t.Fatal("non-framework marker not honored")
	}

	c := Classify(compileErr{})
	if !c.CompilationFailure || c.DiagnosticCounts != "2 errors, 1 warning" {
		t.Fatalf("compilation capability not honored: %+v", c)
	}
	if len(c.Problems) != 1 || c.Problems[0].Solutions[0] != "Fix the syntax" {
		t.Fatalf("problems not attached: %+v", c.Problems)
	}

	l := Classify(locatedErr{})
	if !l.ContextAware || l.Location != "build file 'build.fl' line: 7" {
		t.Fatalf("location capability not honored: %+v", l)
	}
}

func TestSprintPrintsFullChain(t *testing.T) {
	f := &Failure{
		Kind:        "buildError",
		Message:     "top",
		Description: "at step one\nat step two",
		Causes: []*Failure{{
			Kind:    "ioError",
			Message: "bottom",
		}},
	}
	expected := "buildError: top\n" +
		"  at step one\n" +
		"  at step two\n" +
		"Caused by: ioError: bottom\n"
	if got := Sprint(f); got != expected {
		t.Fatalf("unexpected chain print:\nwant:\n%s\ngot:\n%s", expected, got)
	}
}

func TestDisplayMessageRecoversFromPanic(t *testing.T) {
	f := &Failure{Kind: "badError", Original: panicMessageErr{}}
	got := f.DisplayMessage()
	if !strings.Contains(got, "Unable to get message for failure of type badError") {
		t.Fatalf("missing fallback message, got %q", got)
	}
}

type panicMessageErr struct{}

func (panicMessageErr) Error() string { panic("broken error") }
