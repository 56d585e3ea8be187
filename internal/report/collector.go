package report

import (
	"strings"

	"flare/internal/config"
	"flare/internal/failure"
	"flare/internal/styledtext"
)

// resolutionContext accumulates Try-section bullets. Each bullet gets the
// "> " marker; multi-line resolution text is re-indented so continuation
// lines align under the first line's content column.
type resolutionContext struct {
	resolution *styledtext.Buffer
	// missingBuild withholds tips that require a build definition.
	missingBuild bool
}

func (c *resolutionContext) appendResolution(write func(*styledtext.Writer)) {
	w := styledtext.NewWriter(c.resolution)
	if c.resolution.HasContent() {
		w.Println()
	}
	w.Style(styledtext.Info).Text(resolutionLinePrefix).Style(styledtext.Normal)
	write(w)
}

// fillInResolution assembles the Try section: collected resolutions from
// the whole tree first, then the generic tips that remain eligible.
func (r *Reporter) fillInResolution(d *failureDetails) {
	ctx := &resolutionContext{
		resolution:   &d.resolution,
		missingBuild: d.failure.SuppressBuildDefinitionTips,
	}

	seen := make(map[string]struct{})
	for _, res := range collectResolutions(d.failure) {
		if _, ok := seen[res]; ok {
			continue
		}
		seen[res] = struct{}{}
		text := reindentResolution(res)
		ctx.appendResolution(func(w *styledtext.Writer) {
			w.Text(text)
		})
	}

	generic := shouldDisplayGenericResolutions(d.failure)

	if !d.fullException && generic {
		ctx.appendResolution(func(w *styledtext.Writer) {
			runWithOption(w, "stacktrace", " option to get the stack trace.")
		})
	}

	logLevel := r.cfg.LogLevel
	if logLevel != config.LogDebug && generic {
		ctx.appendResolution(func(w *styledtext.Writer) {
			w.Text("Run with ")
			if logLevel.CoarserThan(config.LogInfo) {
				w.WithStyle(styledtext.UserInput).Text("--info")
				w.Text(" or ")
			}
			w.WithStyle(styledtext.UserInput).Text("--debug")
			w.Text(" option to get more log output.")
		})
	}

	if !ctx.missingBuild && !r.cfg.Insights {
		ctx.appendResolution(func(w *styledtext.Writer) {
			runWithOption(w, "insights", " to get full insights.")
		})
	}

	if generic {
		helpURL := r.cfg.HelpURL
		ctx.appendResolution(func(w *styledtext.Writer) {
			w.Text("Get more help at ")
			w.WithStyle(styledtext.UserInput).Text(helpURL)
			w.Text(".")
		})
	}
}

// shouldDisplayGenericResolutions is false when a non-framework cause
// anywhere in the ancestry already explains the failure, or when any
// attached problem already carries a concrete solution.
func shouldDisplayGenericResolutions(f *failure.Failure) bool {
	return !hasNonFrameworkCauseAncestry(f) && !hasProblemsWithSolutions(f)
}

// hasNonFrameworkCauseAncestry walks the transitive causes looking for a
// node marked as thrown outside the build tool.
func hasNonFrameworkCauseAncestry(f *failure.Failure) bool {
	queue := append([]*failure.Failure(nil), f.Causes...)
	for len(queue) > 0 {
		cause := queue[0]
		queue = queue[1:]
		if cause.NonFramework {
			return true
		}
		queue = append(queue, cause.Causes...)
	}
	return false
}

func hasProblemsWithSolutions(f *failure.Failure) bool {
	for _, p := range f.Problems {
		if len(p.Solutions) > 0 {
			return true
		}
	}
	for _, cause := range f.Causes {
		if hasProblemsWithSolutions(cause) {
			return true
		}
	}
	return false
}

// collectResolutions gathers suggested actions depth-first from the whole
// tree, independent of what the walker chose to print: the node's own
// resolution hints first, then its problems' solutions, then each cause.
func collectResolutions(f *failure.Failure) []string {
	var out []string
	out = append(out, f.Resolutions...)
	for _, p := range f.Problems {
		out = append(out, p.Solutions...)
	}
	for _, cause := range f.Causes {
		out = append(out, collectResolutions(cause)...)
	}
	return out
}

// reindentResolution aligns continuation lines of a multi-line resolution
// under the bullet prefix.
func reindentResolution(res string) string {
	return strings.Join(strings.Split(res, "\n"), "\n "+linePrefixPad)
}

func runWithOption(w *styledtext.Writer, option, text string) {
	w.Text("Run with ")
	w.WithStyle(styledtext.UserInput).Format("--%s", option)
	w.Text(text)
}
