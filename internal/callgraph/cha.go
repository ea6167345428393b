package callgraph

import (
	"jvmcg/internal/hierarchy"
	"jvmcg/internal/model"
)

// CHADispatcher implements Class-Hierarchy Analysis dispatch:
// STATIC/SPECIAL resolve against the exact declared owner; VIRTUAL/INTERFACE
// yield every possible dynamic-dispatch target the class hierarchy alone
// admits, with no regard to whether any such type is ever instantiated.
type CHADispatcher struct {
	h *hierarchy.Hierarchy
}

// NewCHADispatcher builds a CHA dispatcher over h.
func NewCHADispatcher(h *hierarchy.Hierarchy) *CHADispatcher {
	return &CHADispatcher{h: h}
}

func (d *CHADispatcher) Dispatch(_ model.MethodRef, cs model.CallSite) []model.MethodRef {
	switch cs.Kind {
	case model.CallStatic, model.CallSpecial:
		if ref, ok := d.h.ResolveStatic(cs.DeclaredTarget); ok {
			return []model.MethodRef{ref}
		}
		return nil
	case model.CallVirtual:
		return d.virtualTargets(cs.DeclaredTarget)
	case model.CallInterface:
		return d.interfaceTargets(cs.DeclaredTarget)
	default:
		return nil
	}
}

// virtualTargets yields resolve_virtual on the declared owner and on every
// transitive subtype of the declared owner that declares a matching method.
func (d *CHADispatcher) virtualTargets(declared model.MethodRef) []model.MethodRef {
	var out []model.MethodRef
	seen := make(map[model.MethodRef]bool)
	add := func(ref model.MethodRef, ok bool) {
		if ok && !seen[ref] {
			seen[ref] = true
			out = append(out, ref)
		}
	}
	add(d.h.ResolveVirtual(declared.OwnerFQN, declared.Name, declared.Descriptor))
	for _, sub := range d.h.Subtypes(declared.OwnerFQN) {
		add(d.h.ResolveOnType(sub, declared.Name, declared.Descriptor))
	}
	return out
}

// interfaceTargets yields resolve_virtual over every concrete implementor
// of the declared interface.
func (d *CHADispatcher) interfaceTargets(declared model.MethodRef) []model.MethodRef {
	var out []model.MethodRef
	seen := make(map[model.MethodRef]bool)
	for _, impl := range d.h.Implementors(declared.OwnerFQN) {
		if ref, ok := d.h.ResolveOnType(impl, declared.Name, declared.Descriptor); ok && !seen[ref] {
			seen[ref] = true
			out = append(out, ref)
		}
	}
	return out
}

// Observe is a no-op for CHA: the hierarchy alone determines dispatch, with
// no state to update as methods become reachable.
func (d *CHADispatcher) Observe(model.MethodRef) []model.CallEdge { return nil }
