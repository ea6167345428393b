// Package analysis is the single entry point that orchestrates enumeration,
// loading, hierarchy construction, entry-point resolution, call-graph
// construction, and result collection as one invocation, owning the
// top-level error taxonomy.
package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"jvmcg/internal/callgraph"
	"jvmcg/internal/collect"
	"jvmcg/internal/entrypoint"
	"jvmcg/internal/enumerate"
	"jvmcg/internal/filter"
	"jvmcg/internal/hierarchy"
	"jvmcg/internal/loader"
	"jvmcg/internal/model"
)

// Algorithm selects the call-graph construction variant.
type Algorithm string

const (
	CHA Algorithm = "CHA"
	RTA Algorithm = "RTA"
)

// ErrorKind tags an AnalysisError. Only ErrHierarchyCycle is ever returned
// as a fatal error from Analyze; the other kinds are logged by the
// components that raise them and never bubble up.
type ErrorKind string

const (
	ErrHierarchyCycle ErrorKind = "HierarchyCycle"
)

// AnalysisError is the single fatal-error shape the Facade surfaces.
type AnalysisError struct {
	Kind    ErrorKind
	Message string
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Request configures one analysis invocation.
type Request struct {
	Paths             []string
	Algorithm         Algorithm
	EntrySpecs        []string
	IncludePrefixes   []string
	ExcludePrefixes   []string
	ExcludeJDK        bool
	ExpandEntryPoints bool // opt-in interface-implementation entry expansion
	Verbose           bool
}

// Analyze runs the full pipeline — enumeration, loading, hierarchy
// construction, filtering, entry-point resolution, call-graph construction,
// and result collection — and returns the resulting AnalysisResult, or an
// AnalysisError if a fatal condition (only HierarchyCycle) occurs.
func Analyze(ctx context.Context, logger *slog.Logger, req Request) (*model.AnalysisResult, error) {
	if logger == nil {
		logger = slog.Default()
	}

	units, err := enumerate.Enumerate(ctx, logger, req.Paths)
	if err != nil {
		return nil, err
	}

	loadRes, err := loader.Load(ctx, logger, units)
	if err != nil {
		return nil, err
	}

	h := hierarchy.New()
	for _, c := range loadRes.Classes {
		h.Add(c)
	}
	if err := h.Freeze(); err != nil {
		var cycErr *hierarchy.CycleError
		if asCycleErr(err, &cycErr) {
			return nil, &AnalysisError{Kind: ErrHierarchyCycle, Message: cycErr.Error()}
		}
		return nil, err
	}

	f := filter.New(filter.Options{
		ExcludeJDK:      req.ExcludeJDK,
		IncludePrefixes: req.IncludePrefixes,
		ExcludePrefixes: req.ExcludePrefixes,
	})

	specs := entrypoint.ParseSpecs(req.EntrySpecs)
	entries := entrypoint.Resolve(h, f, specs)
	if req.ExpandEntryPoints {
		entries = entrypoint.ExpandWithImplementations(h, f, entries)
	}
	if len(entries) == 0 {
		logger.Warn("no entry points found; proceeding with empty call graph")
	}

	var dispatcher callgraph.Dispatcher
	switch req.Algorithm {
	case RTA:
		dispatcher = callgraph.NewRTADispatcher(h)
	default:
		dispatcher = callgraph.NewCHADispatcher(h)
	}
	edges := callgraph.Build(h, dispatcher, entries)

	result := collect.Collect(h, f, edges)
	if len(entries) > 0 && len(result.Classes) == 0 {
		logger.Info("filter configuration admits no classes; result is empty")
	}
	return result, nil
}

func asCycleErr(err error, target **hierarchy.CycleError) bool {
	ce, ok := err.(*hierarchy.CycleError)
	if ok {
		*target = ce
	}
	return ok
}
