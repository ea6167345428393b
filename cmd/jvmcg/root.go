package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jvmcg",
	Short: "Static call-graph analyzer for compiled JVM class files",
	Long:  "jvmcg parses .class/.jar/.war artifacts and builds an inter-procedural call graph using class-hierarchy or rapid-type analysis.",
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(inspectCmd)
}
