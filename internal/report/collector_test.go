package report

import (
	"strings"
	"testing"

	"flare/internal/config"
	"flare/internal/failure"
)

func TestResolutionDedupKeepsFirstOccurrence(t *testing.T) {
	root := &failure.Failure{
		Message:      "Build failed",
		Kind:         "buildError",
		ContextAware: true,
		Causes: []*failure.Failure{{
			Message:  "first",
			Kind:     "aError",
			Problems: []failure.Problem{{Solutions: []string{"Check the wiring", "Fix the syntax"}}},
			Causes: []*failure.Failure{{
				Message:  "second",
				Kind:     "bError",
				Problems: []failure.Problem{{Solutions: []string{"Fix the syntax"}}},
			}},
		}},
	}

	got := renderToString(quietConfig(), root)
	want := "\n* Try:\n> Check the wiring\n> Fix the syntax\n"
	if !strings.Contains(got, want) {
		t.Fatalf("unexpected Try section:\nwant fragment:\n%s\n\ngot:\n%s", want, got)
	}
	if n := strings.Count(got, "Fix the syntax"); n != 1 {
		t.Fatalf("duplicate solution must appear once, got %d:\n%s", n, got)
	}
}

func TestResolutionsCollectedFromUnprintedBranches(t *testing.T) {
	// The collector sees the whole tree, independent of what the walker
	// chose to show: the suppressed duplicate still contributes nothing
	// new, but a provider hint deep in a pass-through chain does.
	leaf := &failure.Failure{
		Message:     "deep",
		Kind:        "deepError",
		Resolutions: []string{"Re-run the sync task"},
	}
	head := &failure.Failure{Message: "head", Kind: "headError", Causes: []*failure.Failure{leaf}}
	root := contextRoot(head)

	got := renderToString(quietConfig(), root)
	if !strings.Contains(got, "> Re-run the sync task") {
		t.Fatalf("hint from unprinted node missing:\n%s", got)
	}
}

func TestMultiLineResolutionReindented(t *testing.T) {
	root := &failure.Failure{
		Message:     "Build failed",
		Kind:        "buildError",
		Resolutions: []string{"line one\nline two"},
	}
	got := renderToString(quietConfig(), root)
	if !strings.Contains(got, "> line one\n   line two") {
		t.Fatalf("continuation line not aligned under bullet content:\n%s", got)
	}
}

func TestGenericTipsSuppressedByNonFrameworkCause(t *testing.T) {
	cfg := config.Report{
		LogLevel:   config.LogQuiet,
		Stacktrace: config.StacktraceHide,
		HelpURL:    "https://help.flare.build",
	}
	root := &failure.Failure{
		Message: "Build failed",
		Kind:    "buildError",
		Causes: []*failure.Failure{{
			Message:      "user plugin blew up",
			Kind:         "pluginError",
			NonFramework: true,
		}},
	}

	got := renderToString(cfg, root)
	for _, tip := range []string{"--stacktrace", "--debug", "Get more help"} {
		if strings.Contains(got, tip) {
			t.Fatalf("generic tip %q must be suppressed for non-framework causes:\n%s", tip, got)
		}
	}
	// The insights tip is not a generic resolution and survives.
	if !strings.Contains(got, "> Run with --insights to get full insights.") {
		t.Fatalf("insights tip should still render:\n%s", got)
	}
}

func TestGenericTipsSuppressedByProblemSolutions(t *testing.T) {
	cfg := config.Report{
		LogLevel:   config.LogQuiet,
		Stacktrace: config.StacktraceHide,
		Insights:   true,
		HelpURL:    "https://help.flare.build",
	}
	root := &failure.Failure{
		Message:  "Build failed",
		Kind:     "buildError",
		Problems: []failure.Problem{{Solutions: []string{"Do the concrete thing"}}},
	}

	got := renderToString(cfg, root)
	want := "\n* Try:\n> Do the concrete thing\n"
	if !strings.Contains(got, want) {
		t.Fatalf("unexpected Try section:\nwant fragment:\n%s\n\ngot:\n%s", want, got)
	}
	for _, tip := range []string{"--stacktrace", "--debug", "Get more help"} {
		if strings.Contains(got, tip) {
			t.Fatalf("generic tip %q must be suppressed when a solution exists:\n%s", tip, got)
		}
	}
}

func TestInfoTipOmittedAtInfoLevel(t *testing.T) {
	cfg := quietConfig()
	cfg.LogLevel = config.LogInfo
	root := &failure.Failure{Message: "Build failed", Kind: "buildError"}

	got := renderToString(cfg, root)
	if !strings.Contains(got, "> Run with --debug option to get more log output.") {
		t.Fatalf("debug tip missing at info level:\n%s", got)
	}
	if strings.Contains(got, "--info") {
		t.Fatalf("--info alternative must be omitted when already at info:\n%s", got)
	}
}

func TestLogTipOmittedAtDebugLevel(t *testing.T) {
	root := &failure.Failure{Message: "Build failed", Kind: "buildError"}
	got := renderToString(quietConfig(), root)
	if strings.Contains(got, "more log output") {
		t.Fatalf("log tip must be omitted at debug level:\n%s", got)
	}
}

func TestInsightsTipRespectsSuppressionAndPlugin(t *testing.T) {
	cfg := quietConfig()
	cfg.Insights = false

	suppressed := &failure.Failure{
		Message:                     "no build definition",
		Kind:                        "startupError",
		SuppressBuildDefinitionTips: true,
	}
	if got := renderToString(cfg, suppressed); strings.Contains(got, "--insights") {
		t.Fatalf("insights tip must honor build-definition suppression:\n%s", got)
	}

	plain := &failure.Failure{Message: "Build failed", Kind: "buildError"}
	if got := renderToString(cfg, plain); !strings.Contains(got, "> Run with --insights to get full insights.") {
		t.Fatalf("insights tip missing:\n%s", got)
	}

	cfg.Insights = true
	if got := renderToString(cfg, plain); strings.Contains(got, "--insights") {
		t.Fatalf("insights tip must be withheld when the plugin is active:\n%s", got)
	}
}

func TestStacktraceTipOmittedWhenExceptionShown(t *testing.T) {
	cfg := quietConfig()
	cfg.Stacktrace = config.StacktraceAlways
	root := &failure.Failure{Message: "Build failed", Kind: "buildError"}

	got := renderToString(cfg, root)
	if strings.Contains(got, "--stacktrace") {
		t.Fatalf("stacktrace tip must be omitted when the exception renders:\n%s", got)
	}
	if !strings.Contains(got, "* Exception is:") {
		t.Fatalf("exception section missing in always mode:\n%s", got)
	}
}
