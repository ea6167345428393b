// Package callgraph implements a shared FIFO-worklist driver over a
// pluggable Dispatcher, with CHA and RTA variants differing only in how a
// call site's targets are resolved.
package callgraph

import (
	"jvmcg/internal/hierarchy"
	"jvmcg/internal/model"
)

// Dispatcher resolves one call site's currently-known targets and observes
// reachable methods as the driver processes them. CHA's dispatcher is
// stateless; RTA's tracks instantiated types and can unlock additional
// edges as new types become reachable.
type Dispatcher interface {
	Dispatch(source model.MethodRef, cs model.CallSite) []model.MethodRef
	// Observe is invoked once per method as the driver first processes it.
	// It returns edges newly unlocked as a side effect of this method
	// becoming reachable (RTA: a constructor making a type instantiated
	// resolves previously pending candidate edges). CHA always returns nil.
	Observe(m model.MethodRef) []model.CallEdge
}

// Build runs the shared worklist driver over entries using dispatcher, and
// returns the discovered call edges in first-seen order.
func Build(h *hierarchy.Hierarchy, dispatcher Dispatcher, entries []model.MethodRef) []model.CallEdge {
	reachable := make(map[model.MethodRef]bool, len(entries))
	edgeSeen := make(map[model.CallEdge]bool)
	var edges []model.CallEdge
	var worklist []model.MethodRef

	push := func(m model.MethodRef) {
		if !reachable[m] {
			reachable[m] = true
			worklist = append(worklist, m)
		}
	}
	addEdge := func(e model.CallEdge) {
		if edgeSeen[e] {
			return
		}
		edgeSeen[e] = true
		edges = append(edges, e)
		push(e.Target)
	}

	for _, e := range entries {
		push(e)
	}

	for i := 0; i < len(worklist); i++ {
		m := worklist[i]
		md, ok := h.MethodDecl(m)
		if !ok {
			continue
		}
		for _, cs := range md.CallSites {
			for _, target := range dispatcher.Dispatch(m, cs) {
				addEdge(model.CallEdge{Source: m, Target: target})
			}
		}
		for _, e := range dispatcher.Observe(m) {
			addEdge(e)
		}
	}
	return edges
}
