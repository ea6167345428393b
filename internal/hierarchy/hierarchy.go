// Package hierarchy implements a frozen, queryable view over every loaded
// class/interface, supporting supertype, subtype, and dispatch-resolution
// queries used by the call-graph constructor and entry-point resolver.
package hierarchy

import (
	"fmt"
	"sort"
	"sync"

	"jvmcg/internal/model"
)

// CycleError reports a supertype cycle detected at Freeze, a fatal condition
// since dispatch resolution assumes an acyclic supertype graph.
type CycleError struct {
	Cycle []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("hierarchy cycle detected: %v", e.Cycle)
}

// Hierarchy is the frozen type graph. It is built with a sequence of Add
// calls followed by one Freeze call; all query methods require a frozen
// hierarchy and are safe for concurrent use afterward (they only read, or
// populate memoized caches guarded by sync.Once/sync.Map).
type Hierarchy struct {
	classes map[string]*model.ClassDecl
	frozen  bool

	// subtypes[x] is every class that directly or transitively extends or
	// implements x. Computed once, lazily, in one forward sweep over
	// classes.
	subtypesOnce sync.Once
	subtypes     map[string]map[string]struct{}

	allSupers   sync.Map // FQN -> []string, memoized per query
	methodIndex map[string]map[string]*model.MethodDecl // ownerFQN -> signature -> decl
}

func methodSig(name, descriptor string) string { return name + descriptor }

// New creates an empty, unfrozen Hierarchy.
func New() *Hierarchy {
	return &Hierarchy{classes: make(map[string]*model.ClassDecl)}
}

// Add registers one loaded class. Calling Add after Freeze panics — it
// indicates a programming error in the caller, not a data problem.
func (h *Hierarchy) Add(c *model.ClassDecl) {
	if h.frozen {
		panic("hierarchy: Add called after Freeze")
	}
	if _, exists := h.classes[c.FQN]; exists {
		return // first-wins: the loader already resolved duplicate-type policy
	}
	h.classes[c.FQN] = c
}

// Freeze finalizes the hierarchy and checks for supertype cycles. Classes
// referencing a supertype/interface FQN that was never Added (an unresolved
// external reference, e.g. a JDK type that was filtered out of the input
// set) are treated as leaves of the hierarchy: the edge is recorded but
// contributes no node of its own.
func (h *Hierarchy) Freeze() error {
	if h.frozen {
		return nil
	}
	if cyc := h.findCycle(); cyc != nil {
		return &CycleError{Cycle: cyc}
	}
	h.frozen = true
	h.methodIndex = make(map[string]map[string]*model.MethodDecl, len(h.classes))
	for fqn, c := range h.classes {
		idx := make(map[string]*model.MethodDecl, len(c.Methods))
		for i := range c.Methods {
			m := &c.Methods[i]
			idx[methodSig(m.Name, m.Descriptor)] = m
		}
		h.methodIndex[fqn] = idx
	}
	return nil
}

func (h *Hierarchy) findCycle() []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(h.classes))
	var path []string

	var visit func(fqn string) []string
	visit = func(fqn string) []string {
		color[fqn] = gray
		path = append(path, fqn)
		for _, sup := range h.directSupertypes(fqn) {
			if _, ok := h.classes[sup]; !ok {
				continue // external leaf, not part of any cycle we can detect
			}
			switch color[sup] {
			case white:
				if cyc := visit(sup); cyc != nil {
					return cyc
				}
			case gray:
				return append(append([]string{}, path...), sup)
			}
		}
		path = path[:len(path)-1]
		color[fqn] = black
		return nil
	}

	fqns := h.sortedFQNs()
	for _, fqn := range fqns {
		if color[fqn] == white {
			if cyc := visit(fqn); cyc != nil {
				return cyc
			}
		}
	}
	return nil
}

func (h *Hierarchy) sortedFQNs() []string {
	fqns := make([]string, 0, len(h.classes))
	for fqn := range h.classes {
		fqns = append(fqns, fqn)
	}
	sort.Strings(fqns)
	return fqns
}

// Get returns the class declaration for fqn, if loaded.
func (h *Hierarchy) Get(fqn string) (*model.ClassDecl, bool) {
	c, ok := h.classes[fqn]
	return c, ok
}

// MethodDecl looks up the declared method identified by ref, by exact
// owner/name/descriptor — an O(1) alternative to scanning ClassDecl.Methods,
// backed by the index built at Freeze.
func (h *Hierarchy) MethodDecl(ref model.MethodRef) (*model.MethodDecl, bool) {
	idx, ok := h.methodIndex[ref.OwnerFQN]
	if !ok {
		return nil, false
	}
	m, ok := idx[methodSig(ref.Name, ref.Descriptor)]
	return m, ok
}

// All returns every loaded class, in lexicographic FQN order.
func (h *Hierarchy) All() []*model.ClassDecl {
	fqns := h.sortedFQNs()
	out := make([]*model.ClassDecl, 0, len(fqns))
	for _, fqn := range fqns {
		out = append(out, h.classes[fqn])
	}
	return out
}

func (h *Hierarchy) directSupertypes(fqn string) []string {
	c, ok := h.classes[fqn]
	if !ok {
		return nil
	}
	out := make([]string, 0, 1+len(c.DirectlyImplemented))
	if c.SuperFQN != "" {
		out = append(out, c.SuperFQN)
	}
	out = append(out, c.DirectlyImplemented...)
	return out
}

// DirectSupertypes returns fqn's immediate superclass (if any) and directly
// implemented interfaces.
func (h *Hierarchy) DirectSupertypes(fqn string) []string {
	return append([]string(nil), h.directSupertypes(fqn)...)
}

// AllSupertypes returns every class/interface fqn transitively extends or
// implements, memoized per FQN after first computation.
func (h *Hierarchy) AllSupertypes(fqn string) []string {
	if cached, ok := h.allSupers.Load(fqn); ok {
		return cached.([]string)
	}
	seen := make(map[string]struct{})
	var order []string
	var walk func(string)
	walk = func(cur string) {
		for _, sup := range h.directSupertypes(cur) {
			if _, ok := seen[sup]; ok {
				continue
			}
			seen[sup] = struct{}{}
			order = append(order, sup)
			walk(sup)
		}
	}
	walk(fqn)
	h.allSupers.Store(fqn, order)
	return order
}

// ensureSubtypes builds the full subtypes index in one forward sweep: for
// every class, walk its supertype chain and register it as a subtype of
// each ancestor. Runs once, lazily, on first Subtypes/Implementors call.
func (h *Hierarchy) ensureSubtypes() {
	h.subtypesOnce.Do(func() {
		idx := make(map[string]map[string]struct{}, len(h.classes))
		for _, fqn := range h.sortedFQNs() {
			for _, sup := range h.AllSupertypes(fqn) {
				set, ok := idx[sup]
				if !ok {
					set = make(map[string]struct{})
					idx[sup] = set
				}
				set[fqn] = struct{}{}
			}
		}
		h.subtypes = idx
	})
}

// Subtypes returns every class/interface that directly or transitively
// extends or implements fqn, in lexicographic order. fqn itself is not
// included.
func (h *Hierarchy) Subtypes(fqn string) []string {
	h.ensureSubtypes()
	set := h.subtypes[fqn]
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Implementors returns every concrete (non-interface, non-abstract) subtype
// of fqn — the set a virtual/interface call site could actually dispatch to
// at runtime if fqn's declared type is exactly the dispatch owner.
func (h *Hierarchy) Implementors(fqn string) []string {
	subs := h.Subtypes(fqn)
	out := make([]string, 0, len(subs))
	for _, s := range subs {
		c := h.classes[s]
		if c.Kind == model.KindClass {
			out = append(out, s)
		}
	}
	return out
}

// ResolveStatic resolves a static or special (constructor/super/private)
// call: the target method must be declared exactly on ownerFQN.
func (h *Hierarchy) ResolveStatic(ref model.MethodRef) (model.MethodRef, bool) {
	idx, ok := h.methodIndex[ref.OwnerFQN]
	if !ok {
		return model.MethodRef{}, false
	}
	if _, ok := idx[methodSig(ref.Name, ref.Descriptor)]; !ok {
		return model.MethodRef{}, false
	}
	return ref, true
}

// ResolveSpecial is an alias for ResolveStatic: invokespecial targets
// (constructors, super-calls, private methods) are resolved identically —
// no virtual dispatch, exact declared owner only.
func (h *Hierarchy) ResolveSpecial(ref model.MethodRef) (model.MethodRef, bool) {
	return h.ResolveStatic(ref)
}

// ResolveVirtual resolves a virtual method lookup starting at declaredOwner
// and walking up the superclass chain. Only when declaredOwner is itself an
// interface and the chain yields nothing are its supertypes' (interface
// default) methods searched; a class owner never falls back to interfaces —
// ResolveOnType does that from a receiver type directly. Returns the
// MethodRef of the type that actually declares the method.
func (h *Hierarchy) ResolveVirtual(declaredOwner, name, descriptor string) (model.MethodRef, bool) {
	return h.resolveUpSuperChain(declaredOwner, name, descriptor)
}

// ResolveOnType resolves name/descriptor starting at receiverType itself and
// walking its full supertype chain (superclasses first by construction
// order, then interfaces) — used to resolve a method against a concrete
// implementor type discovered via Implementors.
func (h *Hierarchy) ResolveOnType(receiverType, name, descriptor string) (model.MethodRef, bool) {
	sig := methodSig(name, descriptor)
	if idx, ok := h.methodIndex[receiverType]; ok {
		if m, ok := idx[sig]; ok {
			return m.Ref(), true
		}
	}
	for _, sup := range h.AllSupertypes(receiverType) {
		if idx, ok := h.methodIndex[sup]; ok {
			if m, ok := idx[sig]; ok {
				return m.Ref(), true
			}
		}
	}
	return model.MethodRef{}, false
}

func (h *Hierarchy) resolveUpSuperChain(owner, name, descriptor string) (model.MethodRef, bool) {
	sig := methodSig(name, descriptor)
	cur := owner
	for cur != "" {
		if idx, ok := h.methodIndex[cur]; ok {
			if m, ok := idx[sig]; ok {
				return m.Ref(), true
			}
			cur = h.classes[cur].SuperFQN
			continue
		}
		break
	}
	// Nothing found walking superclasses. Only an interface owner falls
	// through to its implemented interfaces' default methods; a class
	// owner with no declaring superclass simply has no target.
	if c, ok := h.classes[owner]; !ok || c.Kind != model.KindInterface {
		return model.MethodRef{}, false
	}
	for _, sup := range h.AllSupertypes(owner) {
		if idx, ok := h.methodIndex[sup]; ok {
			if m, ok := idx[sig]; ok {
				return m.Ref(), true
			}
		}
	}
	return model.MethodRef{}, false
}
