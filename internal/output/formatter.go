package output

import (
	"io"
	"time"
)

// Format represents the output format type
type Format string

const (
	// FormatTable outputs data in a table format (kubectl-style)
	FormatTable Format = "table"
	// FormatJSON outputs data in JSON format
	FormatJSON Format = "json"
	// FormatYAML outputs data in YAML format
	FormatYAML Format = "yaml"
)

// TaskResult is one named operation's outcome, as rendered by the
// multi-result formatters. Provisioning and optimization commands produce
// one per repository or step.
type TaskResult struct {
	// Name identifies the repository or step
	Name string

	// Data holds operation-specific detail for successful results
	Data interface{}

	// Err is the failure, if any
	Err error

	// Duration is how long the operation took
	Duration time.Duration
}

// Formatter defines the interface for output formatting
// All formatters must implement both single-item and result-list output
type Formatter interface {
	// Format outputs a single data item to the writer
	Format(w io.Writer, data interface{}) error

	// FormatResults outputs a list of task results to the writer
	FormatResults(w io.Writer, results []TaskResult) error
}

// Option is a functional option for configuring formatters
type Option func(*Options)

// Options holds configuration for formatters
type Options struct {
	// NoColor disables color output
	NoColor bool

	// NoHeaders disables table headers
	NoHeaders bool

	// Wide enables wide output with additional columns
	Wide bool
}

// WithNoColor disables color output
func WithNoColor(noColor bool) Option {
	return func(o *Options) {
		o.NoColor = noColor
	}
}

// WithNoHeaders disables table headers
func WithNoHeaders(noHeaders bool) Option {
	return func(o *Options) {
		o.NoHeaders = noHeaders
	}
}

// WithWide enables wide output
func WithWide(wide bool) Option {
	return func(o *Options) {
		o.Wide = wide
	}
}

// NewFormatter creates a new formatter based on the specified format
func NewFormatter(format Format, opts ...Option) Formatter {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	switch format {
	case FormatJSON:
		return NewJSONFormatter(options)
	case FormatYAML:
		return NewYAMLFormatter(options)
	case FormatTable:
		fallthrough
	default:
		return NewTableFormatter(options)
	}
}

// ParseFormat maps a flag value to a Format, defaulting to table
func ParseFormat(s string) Format {
	switch s {
	case "json":
		return FormatJSON
	case "yaml":
		return FormatYAML
	default:
		return FormatTable
	}
}

// Summary aggregates a result list
type Summary struct {
	// Total is the number of results
	Total int

	// Successful counts results without an error
	Successful int

	// Failed counts results with an error
	Failed int

	// AvgDuration is the mean operation duration
	AvgDuration time.Duration
}

// Summarize computes counts and the average duration over results
func Summarize(results []TaskResult) Summary {
	s := Summary{Total: len(results)}
	if s.Total == 0 {
		return s
	}

	var total time.Duration
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
		} else {
			s.Successful++
		}
		total += r.Duration
	}
	s.AvgDuration = total / time.Duration(s.Total)

	return s
}
