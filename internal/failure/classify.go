package failure

import (
	"errors"
	"fmt"

	"flare/internal/styledtext"
)

// Capability interfaces probed by Classify. Error values from the build
// tool implement these to influence how their failures are reported; the
// results are baked into the Failure node so nothing downstream needs
// type introspection.

// ContextualError marks errors that always render standalone.
type ContextualError interface {
	error
	ContextualFailure()
}

// ContextAwareError marks wrappers whose causes are walked by the
// formatting visitor instead of rendering the wrapper itself.
type ContextAwareError interface {
	error
	ContextAware()
}

// NonFrameworkError marks causes thrown by code outside the build tool.
type NonFrameworkError interface {
	error
	NonFrameworkCause()
}

// ResolutionProvider contributes suggested actions for the Try section.
type ResolutionProvider interface {
	error
	Resolutions() []string
}

// ProblemProvider attaches structured diagnostics to the failure.
type ProblemProvider interface {
	error
	FailureProblems() []Problem
}

// CompilationFailedError exposes a diagnostic-count summary appended
// after the problem block.
type CompilationFailedError interface {
	error
	DiagnosticCounts() string
}

// LocatedError resolves to a source location for the Where section.
type LocatedError interface {
	error
	FailureLocation() string
}

// StyledError renders its own styled message text.
type StyledError interface {
	error
	RenderStyled(*styledtext.Writer)
}

// BuildDefinitionFreeError marks errors raised before any build
// definition was found; build-definition-dependent tips are withheld.
type BuildDefinitionFreeError interface {
	error
	NoBuildDefinition()
}

// DetailedError carries a longer description (stack-derived or similar)
// independent of the message.
type DetailedError interface {
	error
	ErrorDetails() string
}

// Classify normalizes a raw error into an immutable Failure tree. Single
// causes come from Unwrap() error, multiple causes from Unwrap() []error
// (order preserved; the first-listed cause is primary). Returns nil for a
// nil error.
func Classify(err error) *Failure {
	if err == nil {
		return nil
	}
	f := &Failure{
		Kind:     fmt.Sprintf("%T", err),
		Message:  safeErrorText(err),
		Original: err,
	}
	if _, ok := err.(ContextualError); ok {
		f.Contextual = true
	}
	if _, ok := err.(ContextAwareError); ok {
		f.ContextAware = true
	}
	if _, ok := err.(NonFrameworkError); ok {
		f.NonFramework = true
	}
	if _, ok := err.(BuildDefinitionFreeError); ok {
		f.SuppressBuildDefinitionTips = true
	}
	if rp, ok := err.(ResolutionProvider); ok {
		f.Resolutions = append([]string(nil), rp.Resolutions()...)
	}
	if pp, ok := err.(ProblemProvider); ok {
		f.Problems = append([]Problem(nil), pp.FailureProblems()...)
	}
	if cf, ok := err.(CompilationFailedError); ok {
		f.CompilationFailure = true
		f.DiagnosticCounts = cf.DiagnosticCounts()
	}
	if le, ok := err.(LocatedError); ok {
		f.Location = le.FailureLocation()
	}
	if de, ok := err.(DetailedError); ok {
		f.Description = de.ErrorDetails()
	}
	if se, ok := err.(StyledError); ok {
		f.Render = se.RenderStyled
	}

	if multi, ok := err.(interface{ Unwrap() []error }); ok {
		for _, cause := range multi.Unwrap() {
			if c := Classify(cause); c != nil {
				f.Causes = append(f.Causes, c)
			}
		}
	} else if cause := errors.Unwrap(err); cause != nil {
		f.Causes = append(f.Causes, Classify(cause))
	}
	return f
}

// safeErrorText guards against panicking Error implementations at
// classification time; DisplayMessage synthesizes the fallback later.
func safeErrorText(err error) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()
	return err.Error()
}
