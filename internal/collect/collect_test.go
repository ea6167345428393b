package collect_test

import (
	"testing"

	"jvmcg/internal/collect"
	"jvmcg/internal/filter"
	"jvmcg/internal/hierarchy"
	"jvmcg/internal/model"
)

func decl(fqn string, kind model.ClassKind) *model.ClassDecl {
	return &model.ClassDecl{FQN: fqn, Kind: kind}
}

func TestCollectOrdersClassesAndMethodsLexicographically(t *testing.T) {
	h := hierarchy.New()
	b := decl("a.B", model.KindClass)
	b.Methods = []model.MethodDecl{
		{OwnerFQN: "a.B", Name: "zeta", Descriptor: "()V"},
		{OwnerFQN: "a.B", Name: "alpha", Descriptor: "(I)V"},
		{OwnerFQN: "a.B", Name: "alpha", Descriptor: "()V"},
	}
	h.Add(b)
	h.Add(decl("a.A", model.KindClass))
	if err := h.Freeze(); err != nil {
		t.Fatal(err)
	}

	res := collect.Collect(h, filter.New(filter.Options{}), nil)
	if len(res.Classes) != 2 || res.Classes[0].FQN != "a.A" || res.Classes[1].FQN != "a.B" {
		t.Errorf("Classes = %v", res.Classes)
	}
	if len(res.Methods) != 3 {
		t.Fatalf("Methods = %v", res.Methods)
	}
	if res.Methods[0].Descriptor != "()V" || res.Methods[1].Descriptor != "(I)V" || res.Methods[2].Name != "zeta" {
		t.Errorf("Methods not in (name, descriptor) order: %v", res.Methods)
	}
}

func TestCollectSkipsSyntheticMethods(t *testing.T) {
	h := hierarchy.New()
	c := decl("a.C", model.KindClass)
	c.Methods = []model.MethodDecl{
		{OwnerFQN: "a.C", Name: "real", Descriptor: "()V"},
		{OwnerFQN: "a.C", Name: "access$000", Descriptor: "()V", IsSynthetic: true},
	}
	h.Add(c)
	if err := h.Freeze(); err != nil {
		t.Fatal(err)
	}

	res := collect.Collect(h, filter.New(filter.Options{}), nil)
	if len(res.Methods) != 1 || res.Methods[0].Name != "real" {
		t.Errorf("Methods = %v, want only 'real'", res.Methods)
	}
}

func TestCollectFiltersClassesAndDualEndpointEdges(t *testing.T) {
	h := hierarchy.New()
	h.Add(decl("com.example.App", model.KindClass))
	h.Add(decl("java.lang.Object", model.KindClass))
	if err := h.Freeze(); err != nil {
		t.Fatal(err)
	}

	f := filter.New(filter.Options{ExcludeJDK: true})
	edges := []model.CallEdge{
		{
			Source: model.MethodRef{OwnerFQN: "com.example.App", Name: "run", Descriptor: "()V"},
			Target: model.MethodRef{OwnerFQN: "java.lang.Object", Name: "toString", Descriptor: "()Ljava/lang/String;"},
		},
		{
			Source: model.MethodRef{OwnerFQN: "com.example.App", Name: "run", Descriptor: "()V"},
			Target: model.MethodRef{OwnerFQN: "com.example.App", Name: "helper", Descriptor: "()V"},
		},
	}

	res := collect.Collect(h, f, edges)
	if len(res.Classes) != 1 || res.Classes[0].FQN != "com.example.App" {
		t.Errorf("Classes = %v, want only com.example.App", res.Classes)
	}
	if len(res.CallEdges) != 1 || res.CallEdges[0].Target.Name != "helper" {
		t.Errorf("CallEdges = %v, want only the edge to helper", res.CallEdges)
	}
}

func TestCollectPreservesEdgeOrderAndDoesNotReorder(t *testing.T) {
	h := hierarchy.New()
	h.Add(decl("a.A", model.KindClass))
	if err := h.Freeze(); err != nil {
		t.Fatal(err)
	}
	edges := []model.CallEdge{
		{Source: model.MethodRef{OwnerFQN: "a.A", Name: "z", Descriptor: "()V"}, Target: model.MethodRef{OwnerFQN: "a.A", Name: "y", Descriptor: "()V"}},
		{Source: model.MethodRef{OwnerFQN: "a.A", Name: "y", Descriptor: "()V"}, Target: model.MethodRef{OwnerFQN: "a.A", Name: "x", Descriptor: "()V"}},
	}
	res := collect.Collect(h, filter.New(filter.Options{}), edges)
	if len(res.CallEdges) != 2 || res.CallEdges[0].Source.Name != "z" || res.CallEdges[1].Source.Name != "y" {
		t.Errorf("CallEdges reordered: %v", res.CallEdges)
	}
}
