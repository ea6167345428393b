package callgraph

import (
	"jvmcg/internal/hierarchy"
	"jvmcg/internal/model"
)

// pendingCandidate is a call site waiting on one candidate type to become
// instantiated before its target can be resolved.
type pendingCandidate struct {
	source   model.MethodRef
	name     string
	desc     string
	declared string // declared owner, retained only for diagnostics
}

// RTADispatcher implements Rapid Type Analysis: STATIC/SPECIAL
// behave as in CHA; VIRTUAL/INTERFACE are filtered to candidate dynamic
// types whose constructor has been observed reachable so far. Candidates
// not yet instantiated are parked in pending, keyed by the type whose
// instantiation would unlock them, and resolved the moment Observe reports
// that type's constructor became reachable.
type RTADispatcher struct {
	h            *hierarchy.Hierarchy
	instantiated map[string]bool
	pending      map[string][]pendingCandidate
}

// NewRTADispatcher builds an RTA dispatcher over h with an empty
// instantiated-types set.
func NewRTADispatcher(h *hierarchy.Hierarchy) *RTADispatcher {
	return &RTADispatcher{
		h:            h,
		instantiated: make(map[string]bool),
		pending:      make(map[string][]pendingCandidate),
	}
}

func (d *RTADispatcher) Dispatch(source model.MethodRef, cs model.CallSite) []model.MethodRef {
	switch cs.Kind {
	case model.CallStatic, model.CallSpecial:
		if ref, ok := d.h.ResolveStatic(cs.DeclaredTarget); ok {
			return []model.MethodRef{ref}
		}
		return nil
	case model.CallVirtual:
		candidates := append([]string{cs.DeclaredTarget.OwnerFQN}, d.h.Subtypes(cs.DeclaredTarget.OwnerFQN)...)
		return d.dispatchCandidates(source, cs.DeclaredTarget, candidates)
	case model.CallInterface:
		return d.dispatchCandidates(source, cs.DeclaredTarget, d.h.Implementors(cs.DeclaredTarget.OwnerFQN))
	default:
		return nil
	}
}

func (d *RTADispatcher) dispatchCandidates(source model.MethodRef, declared model.MethodRef, candidateTypes []string) []model.MethodRef {
	var out []model.MethodRef
	for _, t := range candidateTypes {
		if d.instantiated[t] {
			if ref, ok := d.h.ResolveOnType(t, declared.Name, declared.Descriptor); ok {
				out = append(out, ref)
			}
			continue
		}
		// Only park a pending candidate if the type could ever actually
		// resolve the method — otherwise every future instantiation of an
		// unrelated subtype would trigger a wasted resolution attempt.
		if _, ok := d.h.ResolveOnType(t, declared.Name, declared.Descriptor); ok {
			d.pending[t] = append(d.pending[t], pendingCandidate{
				source: source, name: declared.Name, desc: declared.Descriptor, declared: declared.OwnerFQN,
			})
		}
	}
	return out
}

// Observe marks m's owner as instantiated when m is a constructor, and
// resolves every call site pending on that type becoming instantiated.
func (d *RTADispatcher) Observe(m model.MethodRef) []model.CallEdge {
	if m.Name != "<init>" {
		return nil
	}
	if d.instantiated[m.OwnerFQN] {
		return nil
	}
	d.instantiated[m.OwnerFQN] = true

	pending := d.pending[m.OwnerFQN]
	delete(d.pending, m.OwnerFQN)
	if len(pending) == 0 {
		return nil
	}
	var edges []model.CallEdge
	for _, p := range pending {
		if ref, ok := d.h.ResolveOnType(m.OwnerFQN, p.name, p.desc); ok {
			edges = append(edges, model.CallEdge{Source: p.source, Target: ref})
		}
	}
	return edges
}
