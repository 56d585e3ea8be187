package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"flare/internal/codec"
	"flare/internal/config"
	"flare/internal/failure"
	"flare/internal/observ"
	"flare/internal/report"
	"flare/internal/styledtext"
)

var renderCmd = &cobra.Command{
	Use:   "render [flags] <failure.flr>...",
	Short: "Render reports from serialized failure envelopes",
	Long:  `Render reads one or more msgpack failure envelopes produced by a build run and prints the deduplicated failure report for each`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().String("config", "", "path to flare.toml (defaults to ./flare.toml when present)")
	renderCmd.Flags().String("log-level", "", "log level the build ran at (quiet|warn|lifecycle|info|debug)")
	renderCmd.Flags().String("stacktrace", "", "stacktrace mode (hide|always|full)")
	renderCmd.Flags().Bool("insights", false, "treat the insights plugin as already active")
	renderCmd.Flags().Int("jobs", 0, "max parallel envelope decodes (0=auto)")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := resolveReportConfig(cmd)
	if err != nil {
		return err
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	timer := observ.NewTimer()

	// Decode in parallel, print strictly in argument order.
	decodePhase := timer.Begin("decode")
	failures := make([]*failure.Failure, len(args))
	nodes := make([]uint32, len(args))
	var g errgroup.Group
	g.SetLimit(jobs)
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			env, err := decodeEnvelopeFile(path)
			if err != nil {
				return err
			}
			failures[i] = env.Failure()
			nodes[i] = env.Nodes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	var totalNodes uint64
	for _, n := range nodes {
		totalNodes += uint64(n)
	}
	timer.End(decodePhase, fmt.Sprintf("%d envelopes, %d nodes", len(args), totalNodes))

	renderPhase := timer.Begin("render")
	sink := styledtext.NewConsoleSink(cmd.OutOrStdout(), colorEnabled(cmd))
	reporter := report.New(sink, cfg)
	for _, f := range failures {
		reporter.ReportFailure(f)
	}
	timer.End(renderPhase, "")

	if showTimings {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	return nil
}

func decodeEnvelopeFile(path string) (*codec.Envelope, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer fh.Close()
	env, err := codec.Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return env, nil
}

// resolveReportConfig loads flare.toml (if any) and applies flag
// overrides on top.
func resolveReportConfig(cmd *cobra.Command) (config.Report, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Report{}, fmt.Errorf("failed to get config flag: %w", err)
	}

	cfg := config.Default()
	switch {
	case path != "":
		if cfg, err = config.Load(path); err != nil {
			return config.Report{}, err
		}
	default:
		if _, statErr := os.Stat("flare.toml"); statErr == nil {
			if cfg, err = config.Load("flare.toml"); err != nil {
				return config.Report{}, err
			}
		}
	}

	if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); quiet {
		cfg.LogLevel = config.LogQuiet
	}
	if cmd.Flags().Changed("log-level") {
		raw, _ := cmd.Flags().GetString("log-level")
		lvl, err := config.ParseLogLevel(raw)
		if err != nil {
			return config.Report{}, err
		}
		cfg.LogLevel = lvl
	}
	if cmd.Flags().Changed("stacktrace") {
		raw, _ := cmd.Flags().GetString("stacktrace")
		mode, err := config.ParseStacktraceMode(raw)
		if err != nil {
			return config.Report{}, err
		}
		cfg.Stacktrace = mode
	}
	if cmd.Flags().Changed("insights") {
		cfg.Insights, _ = cmd.Flags().GetBool("insights")
	}
	return cfg, nil
}

// colorEnabled resolves the persistent --color flag against the output
// terminal.
func colorEnabled(cmd *cobra.Command) bool {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		out, ok := cmd.OutOrStdout().(*os.File)
		return ok && isTerminal(out)
	}
}
