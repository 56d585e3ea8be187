// Package failure models causal failure trees and their classification
// from raw Go errors. Nodes are built once, bottom-up, and never mutated
// afterwards; identity is structural (see Key), not by pointer.
package failure

import (
	"fmt"

	"flare/internal/styledtext"
)

// Problem is a structured diagnostic attached to one failure node.
// It has no lifecycle of its own.
type Problem struct {
	Label     string
	Solutions []string
}

// Failure is one node of a causal failure tree.
//
// The capability flags are resolved exactly once, at classification time.
// The reporting pipeline never inspects error types; everything it needs
// to know about the original error is carried here.
type Failure struct {
	Message     string
	Description string
	Kind        string // opaque tag for the original error's type
	Location    string

	Problems []Problem
	Causes   []*Failure

	// Contextual marks a node that is always rendered standalone rather
	// than collapsed into a pass-through chain. A node with more than one
	// cause is contextual regardless of this flag.
	Contextual bool
	// ContextAware marks a wrapper whose causes should be walked by the
	// formatting visitor instead of rendering the wrapper itself.
	ContextAware bool
	// NonFramework marks a cause thrown by code outside the build tool.
	NonFramework bool
	// CompilationFailure enables the diagnostic-counts suffix.
	CompilationFailure bool
	DiagnosticCounts   string

	// Resolutions carries suggested actions contributed by the original
	// error (resolution providers and resolution-aware hints).
	Resolutions []string
	// SuppressBuildDefinitionTips withholds tips that only make sense
	// when a build definition was found.
	SuppressBuildDefinitionTips bool

	// Render, when set, replaces the default message rendering.
	Render func(*styledtext.Writer)

	// Original is the error this node was classified from, if any. Kept
	// only for lazy message resolution; never compared or re-inspected.
	Original error

	key string
}

// IsContextual reports whether the node renders standalone: either it was
// annotated contextual at classification time or it is a branching point.
func (f *Failure) IsContextual() bool {
	return f.Contextual || len(f.Causes) > 1
}

// DisplayMessage resolves the node's display message. It falls back to
// the original error's text when no message was recorded, and never
// panics: a panicking Error implementation degrades to a synthesized
// message naming the failure's type and the secondary error.
func (f *Failure) DisplayMessage() (msg string) {
	defer func() {
		if r := recover(); r != nil {
			msg = fmt.Sprintf("Unable to get message for failure of type %s due to %v", f.Kind, r)
		}
	}()
	if f.Message != "" {
		return f.Message
	}
	if f.Original != nil {
		return f.Original.Error()
	}
	return ""
}

// Count returns the number of nodes in the tree rooted at f.
func (f *Failure) Count() int {
	n := 1
	for _, c := range f.Causes {
		n += c.Count()
	}
	return n
}
