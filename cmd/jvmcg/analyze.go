package main

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"jvmcg/internal/analysis"
	"jvmcg/internal/config"
	"jvmcg/internal/obslog"
	"jvmcg/internal/render"
)

var (
	flagAlgorithm         string
	flagFormat            string
	flagEntry             []string
	flagInclude           []string
	flagExclude           []string
	flagExcludeJDK        bool
	flagExpandEntryPoints bool
	flagOutputFile        string
	flagLogFile           string
	flagVerbose           bool
	flagQuiet             bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [paths...]",
	Short: "Build and print a call graph over the given class files, jars, or directories",
	Args:  cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		validAlgorithms := []string{"cha", "rta", ""}
		if !slices.Contains(validAlgorithms, flagAlgorithm) {
			return fmt.Errorf("invalid algorithm %q: valid options are cha, rta", flagAlgorithm)
		}
		validFormats := []string{"text", "txt", "csv", "json", "dot", "graphviz", ""}
		if !slices.Contains(validFormats, flagFormat) {
			return fmt.Errorf("invalid format %q: valid options are text, csv, json, dot", flagFormat)
		}
		return nil
	},
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&flagAlgorithm, "algorithm", "cha", "call-graph algorithm: cha or rta")
	f.StringVar(&flagFormat, "format", "text", "output format: text, csv, json, or dot")
	f.StringSliceVar(&flagEntry, "entry", nil, "explicit entry-point specs, comma-separable")
	f.StringSliceVar(&flagInclude, "package", nil, "fqn-prefix include filter, comma-separable")
	f.StringSliceVar(&flagExclude, "exclude-package", nil, "fqn-prefix exclude filter, comma-separable")
	f.BoolVar(&flagExcludeJDK, "exclude-jdk", false, "exclude JDK packages from analysis")
	f.BoolVar(&flagExpandEntryPoints, "expand-entry-points", false, "also treat interface-implementation methods as entry points")
	f.StringVarP(&flagOutputFile, "output", "o", "", "write result to this file instead of stdout")
	f.StringVar(&flagLogFile, "log-file", "", "additionally write JSONL diagnostics to this file")
	f.BoolVarP(&flagVerbose, "verbose", "v", false, "enable diagnostic logging and verbose output sections")
	f.BoolVarP(&flagQuiet, "quiet", "q", false, "turn off --verbose debug logging; info and warning messages are still logged")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	logger, cleanup, err := obslog.Setup(flagLogFile, flagVerbose && !flagQuiet)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer cleanup()

	opts := config.Options{
		Paths:             args,
		Algorithm:         flagAlgorithm,
		EntrySpecs:        flagEntry,
		IncludePrefixes:   flagInclude,
		ExcludePrefixes:   flagExclude,
		ExcludeJDK:        flagExcludeJDK,
		ExpandEntryPoints: flagExpandEntryPoints,
		Verbose:           flagVerbose,
	}
	req := opts.ToRequest(logger)

	result, err := analysis.Analyze(context.Background(), logger, req)
	if err != nil {
		var ae *analysis.AnalysisError
		if ok := asAnalysisError(err, &ae); ok {
			fmt.Fprintf(os.Stderr, "%s: %s\n", ae.Kind, ae.Message)
			os.Exit(1)
		}
		return err
	}

	format := config.ParseOutputFormat(logger, flagFormat)

	out := cmd.OutOrStdout()
	if flagOutputFile != "" {
		f, err := os.Create(flagOutputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	return render.Render(out, result, format, flagVerbose)
}

func asAnalysisError(err error, target **analysis.AnalysisError) bool {
	ae, ok := err.(*analysis.AnalysisError)
	if ok {
		*target = ae
	}
	return ok
}
