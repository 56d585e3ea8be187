package codec

import (
	"bytes"
	"errors"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"flare/internal/failure"
)

func sampleTree() *failure.Failure {
	return &failure.Failure{
		Message:      "Build failed",
		Kind:         "buildError",
		ContextAware: true,
		Location:     "build file 'build.fl' line: 7",
		Causes: []*failure.Failure{{
			Message:            "compilation failed",
			Kind:               "compileError",
			CompilationFailure: true,
			DiagnosticCounts:   "2 errors",
			Problems: []failure.Problem{
				{Label: "syntax error", Solutions: []string{"Fix the syntax"}},
			},
			Causes: []*failure.Failure{{
				Message:      "bad token",
				Kind:         "lexError",
				NonFramework: true,
				Resolutions:  []string{"try again"},
			}},
		}},
	}
}

func TestEnvelopeRoundtrip(t *testing.T) {
	src := sampleTree()

	var buf bytes.Buffer
	if err := Encode(&buf, src); err != nil {
		t.Fatalf("encode: %v", err)
	}
	env, err := Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if env.Nodes != 3 {
		t.Fatalf("expected 3 nodes, got %d", env.Nodes)
	}
	if env.Description == "" {
		t.Fatal("root description must carry the full chain print")
	}

	got := env.Failure()
	if !failure.Equal(src, got) {
		t.Fatalf("roundtrip changed structure:\nwant %s\ngot  %s", src.Key(), got.Key())
	}
	cause := got.Causes[0]
	if !cause.CompilationFailure || cause.DiagnosticCounts != "2 errors" {
		t.Fatalf("compilation flags lost: %+v", cause)
	}
	if len(cause.Problems) != 1 || cause.Problems[0].Solutions[0] != "Fix the syntax" {
		t.Fatalf("problems lost: %+v", cause.Problems)
	}
	leaf := cause.Causes[0]
	if !leaf.NonFramework || leaf.Resolutions[0] != "try again" {
		t.Fatalf("leaf capabilities lost: %+v", leaf)
	}
	if !got.ContextAware || got.Location != src.Location {
		t.Fatalf("root capabilities lost: %+v", got)
	}
}

func TestDecodeRejectsWrongSchema(t *testing.T) {
	var buf bytes.Buffer
	stale := &Envelope{Schema: envelopeSchemaVersion + 1, Message: "old"}
	if err := msgpack.NewEncoder(&buf).Encode(stale); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := Decode(&buf); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
}

func TestFromFailureRejectsNil(t *testing.T) {
	if _, err := FromFailure(nil); err == nil {
		t.Fatal("nil failure must not encode")
	}
}
