// Package config holds the logging and verbosity settings the reporter
// consumes but does not own. Values come from flare.toml with CLI flag
// overrides on top.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	// ErrUnknownLogLevel indicates an unrecognized log_level value.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrUnknownStacktraceMode indicates an unrecognized stacktrace value.
	ErrUnknownStacktraceMode = errors.New("unknown stacktrace mode")
)

// LogLevel orders verbosity from finest to coarsest.
type LogLevel int

const (
	LogDebug LogLevel = iota
	LogInfo
	LogLifecycle
	LogWarn
	LogQuiet
)

// CoarserThan reports whether l shows less output than other.
func (l LogLevel) CoarserThan(other LogLevel) bool {
	return l > other
}

func (l LogLevel) String() string {
	switch l {
	case LogDebug:
		return "debug"
	case LogInfo:
		return "info"
	case LogLifecycle:
		return "lifecycle"
	case LogWarn:
		return "warn"
	case LogQuiet:
		return "quiet"
	default:
		return fmt.Sprintf("loglevel(%d)", int(l))
	}
}

func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LogDebug, nil
	case "info":
		return LogInfo, nil
	case "lifecycle":
		return LogLifecycle, nil
	case "warn", "warning":
		return LogWarn, nil
	case "quiet":
		return LogQuiet, nil
	default:
		return LogLifecycle, fmt.Errorf("%w: %q", ErrUnknownLogLevel, s)
	}
}

// StacktraceMode controls the Exception section and the stacktrace tip.
type StacktraceMode int

const (
	// StacktraceHide omits the Exception section (default).
	StacktraceHide StacktraceMode = iota
	// StacktraceAlways renders the Exception section.
	StacktraceAlways
	// StacktraceFull renders the Exception section without truncation.
	StacktraceFull
)

func (m StacktraceMode) String() string {
	switch m {
	case StacktraceHide:
		return "hide"
	case StacktraceAlways:
		return "always"
	case StacktraceFull:
		return "full"
	default:
		return fmt.Sprintf("stacktrace(%d)", int(m))
	}
}

func ParseStacktraceMode(s string) (StacktraceMode, error) {
	switch strings.ToLower(s) {
	case "hide", "internal":
		return StacktraceHide, nil
	case "always":
		return StacktraceAlways, nil
	case "full":
		return StacktraceFull, nil
	default:
		return StacktraceHide, fmt.Errorf("%w: %q", ErrUnknownStacktraceMode, s)
	}
}

const defaultHelpURL = "https://help.flare.build"

// Report is the resolved reporter configuration.
type Report struct {
	LogLevel   LogLevel
	Stacktrace StacktraceMode
	// Insights reports whether the insights/telemetry plugin is already
	// active; the insights tip is withheld when it is.
	Insights bool
	HelpURL  string
}

func Default() Report {
	return Report{
		LogLevel:   LogLifecycle,
		Stacktrace: StacktraceHide,
		HelpURL:    defaultHelpURL,
	}
}

// File mirrors the flare.toml layout.
type File struct {
	Report ReportSection `toml:"report"`
}

// ReportSection is the [report] table of flare.toml.
type ReportSection struct {
	LogLevel   string `toml:"log_level"`
	Stacktrace string `toml:"stacktrace"`
	Insights   bool   `toml:"insights"`
	HelpURL    string `toml:"help_url"`
}

// Load reads a flare.toml and resolves it against defaults.
func Load(path string) (Report, error) {
	var file File
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return Report{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return file.Report.Resolve()
}

// Resolve validates the section and fills defaults for unset values.
func (s ReportSection) Resolve() (Report, error) {
	cfg := Default()
	if s.LogLevel != "" {
		lvl, err := ParseLogLevel(s.LogLevel)
		if err != nil {
			return Report{}, err
		}
		cfg.LogLevel = lvl
	}
	if s.Stacktrace != "" {
		mode, err := ParseStacktraceMode(s.Stacktrace)
		if err != nil {
			return Report{}, err
		}
		cfg.Stacktrace = mode
	}
	cfg.Insights = s.Insights
	if s.HelpURL != "" {
		cfg.HelpURL = s.HelpURL
	}
	return cfg, nil
}
