// Package entrypoint resolves the initial reachable-method set handed to
// the call-graph constructor, found either by scanning for
// `public static main(String[])` or by matching user-supplied specs.
package entrypoint

import (
	"strings"

	"jvmcg/internal/classfile"
	"jvmcg/internal/filter"
	"jvmcg/internal/hierarchy"
	"jvmcg/internal/model"
)

// ParseSpecs splits comma-separated entry-point specs, trimming whitespace
// and dropping empty entries.
func ParseSpecs(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Resolve returns the entry-point method set. specs empty selects default
// (main-method discovery) mode; non-empty selects explicit mode. Both modes
// restrict their search to classes admitted by f.
func Resolve(h *hierarchy.Hierarchy, f *filter.Filter, specs []string) []model.MethodRef {
	if len(specs) == 0 {
		return resolveDefault(h, f)
	}
	return resolveExplicit(h, f, specs)
}

func resolveDefault(h *hierarchy.Hierarchy, f *filter.Filter) []model.MethodRef {
	var out []model.MethodRef
	for _, c := range h.All() {
		if !f.Admits(c.FQN) {
			continue
		}
		for _, m := range c.Methods {
			if isMainMethod(m) {
				out = append(out, m.Ref())
			}
		}
	}
	return out
}

func isMainMethod(m model.MethodDecl) bool {
	if m.Name != "main" || m.IsAbstract || m.Visibility != model.Public || !m.IsStatic {
		return false
	}
	n, err := classfile.ParamCount(m.Descriptor)
	return err == nil && n == 1
}

func resolveExplicit(h *hierarchy.Hierarchy, f *filter.Filter, specs []string) []model.MethodRef {
	var out []model.MethodRef
	seen := make(map[model.MethodRef]bool)
	for _, spec := range specs {
		className, methodName := splitSpec(spec)
		for _, c := range h.All() {
			if !f.Admits(c.FQN) {
				continue
			}
			if !classMatches(c.FQN, className) {
				continue
			}
			for _, m := range c.Methods {
				if m.Name != methodName || m.IsAbstract {
					continue
				}
				ref := m.Ref()
				if !seen[ref] {
					seen[ref] = true
					out = append(out, ref)
				}
			}
		}
	}
	return out
}

// splitSpec splits a spec into (className, methodName). className is ""
// for a bare methodName spec, matching any admitted class.
func splitSpec(spec string) (className, methodName string) {
	idx := strings.LastIndex(spec, ".")
	if idx < 0 {
		return "", spec
	}
	return spec[:idx], spec[idx+1:]
}

// classMatches implements the two class-matching forms an entry spec can
// take: fully.qualified.ClassName matches fqn exactly; simpleName matches
// fqn exactly or as its trailing simple-name component. A bare methodName spec
// (className == "") matches every class.
func classMatches(fqn, className string) bool {
	if className == "" {
		return true
	}
	if fqn == className {
		return true
	}
	return strings.HasSuffix(fqn, "."+className)
}

// ExpandWithImplementations is an opt-in post-processing pass: for every
// resolved entry point, find the interfaces its declaring class directly
// implements, and add every public, non-abstract, non-constructor method of
// every admitted concrete implementor of those interfaces as an additional
// entry point. This recovers reachability for the common plugin/handler
// shape where main() only ever touches a registry and the real entry
// surface is the interface implementations it dispatches to.
func ExpandWithImplementations(h *hierarchy.Hierarchy, f *filter.Filter, entries []model.MethodRef) []model.MethodRef {
	seen := make(map[model.MethodRef]bool, len(entries))
	out := make([]model.MethodRef, 0, len(entries))
	for _, e := range entries {
		if !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}

	for _, e := range entries {
		c, ok := h.Get(e.OwnerFQN)
		if !ok {
			continue
		}
		for _, ifaceFQN := range c.DirectlyImplemented {
			if !f.Admits(ifaceFQN) {
				continue
			}
			iface, ok := h.Get(ifaceFQN)
			if !ok || iface.Kind != model.KindInterface {
				continue
			}
			for _, implFQN := range h.Implementors(ifaceFQN) {
				if !f.Admits(implFQN) {
					continue
				}
				impl, ok := h.Get(implFQN)
				if !ok {
					continue
				}
				for _, m := range impl.Methods {
					if !isExpandableImplMethod(m) {
						continue
					}
					ref := m.Ref()
					if !seen[ref] {
						seen[ref] = true
						out = append(out, ref)
					}
				}
			}
		}
	}
	return out
}

func isExpandableImplMethod(m model.MethodDecl) bool {
	return m.Visibility == model.Public && !m.IsAbstract && m.Name != "<init>" && m.Name != "<clinit>"
}
