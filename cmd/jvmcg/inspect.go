package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"jvmcg/internal/analysis"
	"jvmcg/internal/config"
	"jvmcg/internal/inspector"
	"jvmcg/internal/obslog"
)

var (
	inspectAlgorithm  string
	inspectEntry      []string
	inspectInclude    []string
	inspectExclude    []string
	inspectExcludeJDK bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [paths...]",
	Short: "Build a call graph and browse it interactively in the terminal",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, cleanup, err := obslog.Setup("", false)
		if err != nil {
			return fmt.Errorf("setting up logging: %w", err)
		}
		defer cleanup()

		opts := config.Options{
			Paths:           args,
			Algorithm:       inspectAlgorithm,
			EntrySpecs:      inspectEntry,
			IncludePrefixes: inspectInclude,
			ExcludePrefixes: inspectExclude,
			ExcludeJDK:      inspectExcludeJDK,
		}
		result, err := analysis.Analyze(context.Background(), logger, opts.ToRequest(logger))
		if err != nil {
			return err
		}
		return inspector.Run(result)
	},
}

func init() {
	f := inspectCmd.Flags()
	f.StringVar(&inspectAlgorithm, "algorithm", "cha", "call-graph algorithm: cha or rta")
	f.StringSliceVar(&inspectEntry, "entry", nil, "explicit entry-point specs, comma-separable")
	f.StringSliceVar(&inspectInclude, "package", nil, "fqn-prefix include filter, comma-separable")
	f.StringSliceVar(&inspectExclude, "exclude-package", nil, "fqn-prefix exclude filter, comma-separable")
	f.BoolVar(&inspectExcludeJDK, "exclude-jdk", false, "exclude JDK packages from analysis")
}
