// Package mcpserver exposes the analyzer as a Model Context Protocol tool:
// one "analyze_callgraph" tool taking the same option surface as the CLI,
// returning the rendered output as text content.
package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"jvmcg/internal/analysis"
	"jvmcg/internal/config"
	"jvmcg/internal/render"
)

// toolRequest mirrors the JSON shape accepted by the analyze_callgraph
// tool, unmarshaled from request.Params.Arguments.
type toolRequest struct {
	Paths           []string `json:"paths"`
	Algorithm       string   `json:"algorithm"`
	Format          string   `json:"format"`
	EntrySpecs      []string `json:"entrySpecs"`
	IncludePrefixes []string `json:"includePrefixes"`
	ExcludePrefixes []string `json:"excludePrefixes"`
	ExcludeJDK      bool     `json:"excludeJdk"`
	ExpandEntries   bool     `json:"expandEntryPoints"`
	Verbose         bool     `json:"verbose"`
}

// New builds the MCP server with the analyze_callgraph tool registered.
func New(logger *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("jvmcg-mcp", "1.0.0")

	s.AddTool(mcp.Tool{
		Name:        "analyze_callgraph",
		Description: "Build an inter-procedural call graph over compiled JVM class files (.class/.jar/.war) using CHA or RTA",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"paths": map[string]interface{}{
					"type":        "array",
					"items":       map[string]string{"type": "string"},
					"description": "Filesystem paths to class files, jars/wars, or directories",
				},
				"algorithm": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"cha", "rta"},
					"description": "Call-graph construction algorithm",
				},
				"format": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"text", "csv", "json", "dot"},
					"description": "Output serialization format",
				},
				"entrySpecs": map[string]interface{}{
					"type":        "array",
					"items":       map[string]string{"type": "string"},
					"description": "Explicit entry-point specs (simpleName.method, fqn.method, or bare method name); omit for main-method discovery",
				},
				"includePrefixes": map[string]interface{}{
					"type":  "array",
					"items": map[string]string{"type": "string"},
				},
				"excludePrefixes": map[string]interface{}{
					"type":  "array",
					"items": map[string]string{"type": "string"},
				},
				"excludeJdk": map[string]interface{}{
					"type":        "boolean",
					"description": "Exclude java./javax./sun. and related JDK packages",
				},
				"expandEntryPoints": map[string]interface{}{
					"type":        "boolean",
					"description": "Additionally treat interface-implementation methods reachable from discovered entry points as entry points",
				},
				"verbose": map[string]interface{}{
					"type": "boolean",
				},
			},
			Required: []string{"paths"},
		},
	}, handler(logger))

	return s
}

func handler(logger *slog.Logger) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsBytes, err := json.Marshal(request.Params.Arguments)
		if err != nil {
			return errorResult(fmt.Sprintf("marshaling arguments: %v", err)), nil
		}

		var req toolRequest
		if err := json.Unmarshal(argsBytes, &req); err != nil {
			return errorResult(fmt.Sprintf("parsing arguments: %v", err)), nil
		}
		if len(req.Paths) == 0 {
			return errorResult("paths is required"), nil
		}

		opts := config.Options{
			Paths:             req.Paths,
			Algorithm:         req.Algorithm,
			EntrySpecs:        req.EntrySpecs,
			IncludePrefixes:   req.IncludePrefixes,
			ExcludePrefixes:   req.ExcludePrefixes,
			ExcludeJDK:        req.ExcludeJDK,
			ExpandEntryPoints: req.ExpandEntries,
			Verbose:           req.Verbose,
		}
		analyzeReq := opts.ToRequest(logger)

		result, err := analysis.Analyze(ctx, logger, analyzeReq)
		if err != nil {
			var ae *analysis.AnalysisError
			if asAnalysisError(err, &ae) {
				return errorResult(fmt.Sprintf("%s: %s", ae.Kind, ae.Message)), nil
			}
			return errorResult(err.Error()), nil
		}

		format := config.ParseOutputFormat(logger, req.Format)
		var buf bytes.Buffer
		if err := render.Render(&buf, result, format, req.Verbose); err != nil {
			return errorResult(fmt.Sprintf("rendering result: %v", err)), nil
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{mcp.NewTextContent(buf.String())},
		}, nil
	}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent("Error: " + msg)},
		IsError: true,
	}
}

func asAnalysisError(err error, target **analysis.AnalysisError) bool {
	ae, ok := err.(*analysis.AnalysisError)
	if ok {
		*target = ae
	}
	return ok
}

// Serve runs the server over stdio, blocking until the stdio session ends.
// ctx is not passed to the server and does not stop it.
func Serve(ctx context.Context, logger *slog.Logger) error {
	s := New(logger)
	logger.Info("starting jvmcg MCP server (stdio transport)")
	return server.ServeStdio(s)
}
