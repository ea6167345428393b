// Package config binds option strings from either the CLI or the MCP tool
// collaborator into an analysis.Request, with warn-and-fallback enum
// validation: an unrecognized algorithm or format name logs a warning and
// falls back to a sane default instead of returning an error. (The CLI's
// analyze command rejects unknown --algorithm and --format values itself,
// before these parsers run.)
package config

import (
	"log/slog"
	"strings"

	"jvmcg/internal/analysis"
	"jvmcg/internal/render"
)

// Options is the raw, string-typed option bag collected from either
// collaborator before validation.
type Options struct {
	Paths             []string
	Algorithm         string
	OutputFormat      string
	EntrySpecs        []string
	IncludePrefixes   []string
	ExcludePrefixes   []string
	ExcludeJDK        bool
	ExpandEntryPoints bool
	Verbose           bool
}

// ParseAlgorithm validates a raw algorithm string, defaulting to CHA and
// logging a warning on anything unrecognized.
func ParseAlgorithm(logger *slog.Logger, raw string) analysis.Algorithm {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "cha":
		return analysis.CHA
	case "rta":
		return analysis.RTA
	default:
		logger.Warn("unknown algorithm, using CHA", "algorithm", raw, "supported", "cha, rta")
		return analysis.CHA
	}
}

// ParseOutputFormat validates a raw format string, defaulting to text.
func ParseOutputFormat(logger *slog.Logger, raw string) render.Format {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "txt", "text":
		return render.FormatText
	case "csv":
		return render.FormatCSV
	case "json":
		return render.FormatJSON
	case "dot", "graphviz":
		return render.FormatDOT
	default:
		logger.Warn("unknown output format, using text", "format", raw, "supported", "text, csv, json, dot")
		return render.FormatText
	}
}

// SplitCommaList splits every element of raw on commas and trims
// whitespace, dropping empty entries — the comma-separable option
// convention used throughout the CLI's list-valued flags.
func SplitCommaList(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// ToRequest builds an analysis.Request from validated options.
func (o Options) ToRequest(logger *slog.Logger) analysis.Request {
	return analysis.Request{
		Paths:             o.Paths,
		Algorithm:         ParseAlgorithm(logger, o.Algorithm),
		EntrySpecs:        SplitCommaList(o.EntrySpecs),
		IncludePrefixes:   SplitCommaList(o.IncludePrefixes),
		ExcludePrefixes:   SplitCommaList(o.ExcludePrefixes),
		ExcludeJDK:        o.ExcludeJDK,
		ExpandEntryPoints: o.ExpandEntryPoints,
		Verbose:           o.Verbose,
	}
}
