package hierarchy_test

import (
	"sort"
	"testing"

	"jvmcg/internal/hierarchy"
	"jvmcg/internal/model"
)

func decl(fqn string, kind model.ClassKind, super string, ifaces ...string) *model.ClassDecl {
	return &model.ClassDecl{FQN: fqn, Kind: kind, SuperFQN: super, DirectlyImplemented: ifaces}
}

func withMethod(c *model.ClassDecl, name, descriptor string, abstract bool) *model.ClassDecl {
	c.Methods = append(c.Methods, model.MethodDecl{
		OwnerFQN: c.FQN, Name: name, Descriptor: descriptor, IsAbstract: abstract,
	})
	return c
}

func TestSupertypesAndSubtypes(t *testing.T) {
	h := hierarchy.New()
	h.Add(decl("a.Animal", model.KindAbstractClass, ""))
	h.Add(decl("a.Dog", model.KindClass, "a.Animal"))
	h.Add(decl("a.Puppy", model.KindClass, "a.Dog"))
	h.Add(decl("a.Cat", model.KindClass, "a.Animal"))

	if err := h.Freeze(); err != nil {
		t.Fatalf("Freeze: %v", err)
	}

	supers := h.AllSupertypes("a.Puppy")
	if len(supers) != 2 {
		t.Fatalf("AllSupertypes(Puppy) = %v, want [Dog Animal]", supers)
	}

	subs := h.Subtypes("a.Animal")
	sort.Strings(subs)
	want := []string{"a.Cat", "a.Dog", "a.Puppy"}
	if len(subs) != len(want) {
		t.Fatalf("Subtypes(Animal) = %v, want %v", subs, want)
	}
	for i := range want {
		if subs[i] != want[i] {
			t.Errorf("Subtypes(Animal)[%d] = %q, want %q", i, subs[i], want[i])
		}
	}
}

func TestImplementorsExcludesAbstract(t *testing.T) {
	h := hierarchy.New()
	h.Add(decl("a.Shape", model.KindInterface, ""))
	h.Add(decl("a.AbstractShape", model.KindAbstractClass, "", "a.Shape"))
	h.Add(decl("a.Circle", model.KindClass, "a.AbstractShape"))
	h.Add(decl("a.Square", model.KindClass, "a.AbstractShape"))

	if err := h.Freeze(); err != nil {
		t.Fatalf("Freeze: %v", err)
	}

	impls := h.Implementors("a.Shape")
	sort.Strings(impls)
	want := []string{"a.Circle", "a.Square"}
	if len(impls) != 2 || impls[0] != want[0] || impls[1] != want[1] {
		t.Errorf("Implementors(Shape) = %v, want %v", impls, want)
	}
}

func TestCycleDetection(t *testing.T) {
	h := hierarchy.New()
	h.Add(decl("a.A", model.KindClass, "a.B"))
	h.Add(decl("a.B", model.KindClass, "a.A"))

	err := h.Freeze()
	if err == nil {
		t.Fatal("expected cycle error")
	}
	var cycErr *hierarchy.CycleError
	if !asCycleError(err, &cycErr) {
		t.Fatalf("error is not *CycleError: %v", err)
	}
}

func asCycleError(err error, target **hierarchy.CycleError) bool {
	ce, ok := err.(*hierarchy.CycleError)
	if ok {
		*target = ce
	}
	return ok
}

func TestResolveVirtualWalksSuperChain(t *testing.T) {
	h := hierarchy.New()
	base := decl("a.Base", model.KindClass, "")
	withMethod(base, "greet", "()V", false)
	h.Add(base)
	h.Add(decl("a.Derived", model.KindClass, "a.Base"))

	if err := h.Freeze(); err != nil {
		t.Fatalf("Freeze: %v", err)
	}

	ref, ok := h.ResolveVirtual("a.Derived", "greet", "()V")
	if !ok {
		t.Fatal("expected resolution via superclass")
	}
	if ref.OwnerFQN != "a.Base" {
		t.Errorf("OwnerFQN = %q, want a.Base", ref.OwnerFQN)
	}
}

func TestResolveVirtualPrefersOverride(t *testing.T) {
	h := hierarchy.New()
	base := decl("a.Base", model.KindClass, "")
	withMethod(base, "greet", "()V", false)
	h.Add(base)
	derived := decl("a.Derived", model.KindClass, "a.Base")
	withMethod(derived, "greet", "()V", false)
	h.Add(derived)

	if err := h.Freeze(); err != nil {
		t.Fatalf("Freeze: %v", err)
	}

	ref, ok := h.ResolveVirtual("a.Derived", "greet", "()V")
	if !ok || ref.OwnerFQN != "a.Derived" {
		t.Errorf("ResolveVirtual = %+v, %v, want owner a.Derived", ref, ok)
	}
}

func TestResolveVirtualClassOwnerDoesNotFallBackToInterfaceDefault(t *testing.T) {
	h := hierarchy.New()
	iface := decl("a.Greeter", model.KindInterface, "")
	withMethod(iface, "greet", "()V", false)
	h.Add(iface)
	h.Add(decl("a.Impl", model.KindClass, "", "a.Greeter"))

	if err := h.Freeze(); err != nil {
		t.Fatalf("Freeze: %v", err)
	}

	// a.Impl never overrides greet and is a class, not an interface, so
	// ResolveVirtual on the class itself must not fall back to the
	// interface's default method — only ResolveOnType does that, for a
	// concrete receiver type discovered via Implementors.
	if ref, ok := h.ResolveVirtual("a.Impl", "greet", "()V"); ok {
		t.Errorf("ResolveVirtual(a.Impl) = %+v, ok=true, want not found", ref)
	}
}

func TestResolveVirtualInterfaceOwnerFallsBackToImplementedInterfaceDefault(t *testing.T) {
	h := hierarchy.New()
	base := decl("a.Base", model.KindInterface, "")
	withMethod(base, "greet", "()V", false)
	h.Add(base)
	h.Add(decl("a.Sub", model.KindInterface, "", "a.Base"))

	if err := h.Freeze(); err != nil {
		t.Fatalf("Freeze: %v", err)
	}

	// a.Sub is itself an interface with no super chain of its own, so the
	// nominal-owner-is-an-interface fallback applies.
	ref, ok := h.ResolveVirtual("a.Sub", "greet", "()V")
	if !ok || ref.OwnerFQN != "a.Base" {
		t.Errorf("ResolveVirtual(a.Sub) = %+v, %v, want a.Base, true", ref, ok)
	}
}

func TestResolveOnTypeFindsInterfaceDefault(t *testing.T) {
	h := hierarchy.New()
	iface := decl("a.Greeter", model.KindInterface, "")
	withMethod(iface, "greet", "()V", false)
	h.Add(iface)
	h.Add(decl("a.Impl", model.KindClass, "", "a.Greeter"))

	if err := h.Freeze(); err != nil {
		t.Fatalf("Freeze: %v", err)
	}

	ref, ok := h.ResolveOnType("a.Impl", "greet", "()V")
	if !ok || ref.OwnerFQN != "a.Greeter" {
		t.Errorf("ResolveOnType = %+v, %v", ref, ok)
	}
}

func TestResolveStaticExactOwnerOnly(t *testing.T) {
	h := hierarchy.New()
	c := decl("a.Util", model.KindClass, "")
	withMethod(c, "helper", "()V", false)
	h.Add(c)
	h.Add(decl("a.Other", model.KindClass, ""))

	if err := h.Freeze(); err != nil {
		t.Fatalf("Freeze: %v", err)
	}

	if _, ok := h.ResolveStatic(model.MethodRef{OwnerFQN: "a.Other", Name: "helper", Descriptor: "()V"}); ok {
		t.Error("ResolveStatic should not find method on unrelated class")
	}
	if ref, ok := h.ResolveStatic(model.MethodRef{OwnerFQN: "a.Util", Name: "helper", Descriptor: "()V"}); !ok || ref.OwnerFQN != "a.Util" {
		t.Errorf("ResolveStatic = %+v, %v", ref, ok)
	}
}

func TestExternalSupertypeIsLeafNotCycle(t *testing.T) {
	h := hierarchy.New()
	h.Add(decl("a.App", model.KindClass, "java.lang.Object"))

	if err := h.Freeze(); err != nil {
		t.Fatalf("unexpected cycle error for external supertype: %v", err)
	}
	supers := h.AllSupertypes("a.App")
	if len(supers) != 1 || supers[0] != "java.lang.Object" {
		t.Errorf("AllSupertypes = %v", supers)
	}
}
