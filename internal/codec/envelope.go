// Package codec serializes failure trees into protocol-neutral envelopes
// for transport across process boundaries. Envelopes carry everything the
// reporting pipeline needs, including the capability flags resolved at
// classification time; only the in-process bits (custom renderers, the
// original error value) are dropped.
package codec

import (
	"errors"
	"fmt"
	"io"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"flare/internal/failure"
)

// Schema version of the envelope format. Bump when the payload changes
// incompatibly.
const envelopeSchemaVersion uint16 = 1

// ErrSchemaMismatch indicates an envelope written by an incompatible
// flare version.
var ErrSchemaMismatch = errors.New("envelope schema mismatch")

// ProblemPayload mirrors failure.Problem on the wire.
type ProblemPayload struct {
	Label     string   `msgpack:"label"`
	Solutions []string `msgpack:"solutions"`
}

// Envelope is the wire form of one failure node. The root envelope also
// records the schema version and the total node count for quick stats
// without walking the tree.
type Envelope struct {
	Schema uint16 `msgpack:"schema"`
	Nodes  uint32 `msgpack:"nodes"`

	Message     string `msgpack:"message"`
	Description string `msgpack:"description"`
	Kind        string `msgpack:"kind"`
	Location    string `msgpack:"location"`

	Contextual         bool   `msgpack:"contextual"`
	ContextAware       bool   `msgpack:"context_aware"`
	NonFramework       bool   `msgpack:"non_framework"`
	CompilationFailure bool   `msgpack:"compilation_failure"`
	DiagnosticCounts   string `msgpack:"diagnostic_counts"`
	SuppressTips       bool   `msgpack:"suppress_tips"`

	Resolutions []string         `msgpack:"resolutions"`
	Problems    []ProblemPayload `msgpack:"problems"`
	Causes      []*Envelope      `msgpack:"causes"`
}

// FromFailure converts a failure tree into its wire form. The root
// envelope's description is filled with the full unpruned printer output
// when the node carries none of its own.
func FromFailure(f *failure.Failure) (*Envelope, error) {
	if f == nil {
		return nil, errors.New("nil failure")
	}
	env := fromNode(f)
	env.Schema = envelopeSchemaVersion
	nodes, err := safecast.Conv[uint32](f.Count())
	if err != nil {
		return nil, fmt.Errorf("node count: %w", err)
	}
	env.Nodes = nodes
	if env.Description == "" {
		env.Description = failure.Sprint(f)
	}
	return env, nil
}

func fromNode(f *failure.Failure) *Envelope {
	env := &Envelope{
		Message:            f.DisplayMessage(),
		Description:        f.Description,
		Kind:               f.Kind,
		Location:           f.Location,
		Contextual:         f.Contextual,
		ContextAware:       f.ContextAware,
		NonFramework:       f.NonFramework,
		CompilationFailure: f.CompilationFailure,
		DiagnosticCounts:   f.DiagnosticCounts,
		SuppressTips:       f.SuppressBuildDefinitionTips,
		Resolutions:        append([]string(nil), f.Resolutions...),
	}
	for _, p := range f.Problems {
		env.Problems = append(env.Problems, ProblemPayload{
			Label:     p.Label,
			Solutions: append([]string(nil), p.Solutions...),
		})
	}
	for _, c := range f.Causes {
		env.Causes = append(env.Causes, fromNode(c))
	}
	return env
}

// Failure rebuilds the in-memory tree from an envelope.
func (e *Envelope) Failure() *failure.Failure {
	if e == nil {
		return nil
	}
	f := &failure.Failure{
		Message:                     e.Message,
		Description:                 e.Description,
		Kind:                        e.Kind,
		Location:                    e.Location,
		Contextual:                  e.Contextual,
		ContextAware:                e.ContextAware,
		NonFramework:                e.NonFramework,
		CompilationFailure:          e.CompilationFailure,
		DiagnosticCounts:            e.DiagnosticCounts,
		SuppressBuildDefinitionTips: e.SuppressTips,
		Resolutions:                 append([]string(nil), e.Resolutions...),
	}
	for _, p := range e.Problems {
		f.Problems = append(f.Problems, failure.Problem{
			Label:     p.Label,
			Solutions: append([]string(nil), p.Solutions...),
		})
	}
	for _, c := range e.Causes {
		f.Causes = append(f.Causes, c.Failure())
	}
	return f
}

// Encode writes a failure tree as a msgpack envelope.
func Encode(w io.Writer, f *failure.Failure) error {
	env, err := FromFailure(f)
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(w).Encode(env); err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	return nil
}

// Decode reads one envelope and validates its schema version.
func Decode(r io.Reader) (*Envelope, error) {
	var env Envelope
	if err := msgpack.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Schema != envelopeSchemaVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchemaMismatch, env.Schema, envelopeSchemaVersion)
	}
	return &env, nil
}
