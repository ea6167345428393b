// Package collect turns the frozen Type Hierarchy and the constructed call
// edges into the externally observable AnalysisResult, applying the Name
// Filter and lexicographic ordering, never re-ordering edges.
package collect

import (
	"sort"

	"jvmcg/internal/filter"
	"jvmcg/internal/hierarchy"
	"jvmcg/internal/model"
)

// Collect builds the AnalysisResult from h and edges (in constructor
// first-seen order), admitting only classes/methods/edges the filter
// accepts.
func Collect(h *hierarchy.Hierarchy, f *filter.Filter, edges []model.CallEdge) *model.AnalysisResult {
	res := &model.AnalysisResult{}

	for _, c := range h.All() { // h.All is already lexicographic by FQN
		if !f.Admits(c.FQN) {
			continue
		}
		res.Classes = append(res.Classes, model.ClassInfo{FQN: c.FQN, Kind: c.Kind})

		methods := make([]model.MethodDecl, len(c.Methods))
		copy(methods, c.Methods)
		sort.Slice(methods, func(i, j int) bool {
			if methods[i].Name != methods[j].Name {
				return methods[i].Name < methods[j].Name
			}
			return methods[i].Descriptor < methods[j].Descriptor
		})
		for _, m := range methods {
			if m.IsSynthetic {
				continue
			}
			res.Methods = append(res.Methods, model.MethodInfo{
				OwnerFQN:   m.OwnerFQN,
				Name:       m.Name,
				Descriptor: m.Descriptor,
				Visibility: m.Visibility,
				IsStatic:   m.IsStatic,
			})
		}
	}

	for _, e := range edges {
		if f.AdmitsEdge(e.Source.OwnerFQN, e.Target.OwnerFQN) {
			res.CallEdges = append(res.CallEdges, e)
		}
	}

	return res
}
