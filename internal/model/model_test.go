package model_test

import (
	"testing"

	"jvmcg/internal/model"
)

func TestMethodRefIsUsableAsMapKey(t *testing.T) {
	seen := map[model.MethodRef]bool{}
	a := model.MethodRef{OwnerFQN: "a.A", Name: "run", Descriptor: "()V"}
	b := model.MethodRef{OwnerFQN: "a.A", Name: "run", Descriptor: "()V"}
	seen[a] = true
	if !seen[b] {
		t.Fatal("equal MethodRef values did not collide as map keys")
	}
}

func TestMethodDeclRef(t *testing.T) {
	m := model.MethodDecl{OwnerFQN: "a.A", Name: "run", Descriptor: "()V"}
	want := model.MethodRef{OwnerFQN: "a.A", Name: "run", Descriptor: "()V"}
	if got := m.Ref(); got != want {
		t.Errorf("Ref() = %+v, want %+v", got, want)
	}
}

func TestClassKindString(t *testing.T) {
	cases := []struct {
		k    model.ClassKind
		want string
	}{
		{model.KindClass, "CLASS"},
		{model.KindInterface, "INTERFACE"},
		{model.KindAbstractClass, "ABSTRACT_CLASS"},
		{model.ClassKind(99), "UNKNOWN"},
	}
	for _, c := range cases {
		if got := c.k.String(); got != c.want {
			t.Errorf("ClassKind(%d).String() = %q, want %q", c.k, got, c.want)
		}
	}
}

func TestVisibilityString(t *testing.T) {
	cases := []struct {
		v    model.Visibility
		want string
	}{
		{model.Public, "PUBLIC"},
		{model.Protected, "PROTECTED"},
		{model.Package, "PACKAGE"},
		{model.Private, "PRIVATE"},
		{model.Visibility(99), "UNKNOWN"},
	}
	for _, c := range cases {
		if got := c.v.String(); got != c.want {
			t.Errorf("Visibility(%d).String() = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestCallKindString(t *testing.T) {
	cases := []struct {
		k    model.CallKind
		want string
	}{
		{model.CallStatic, "STATIC"},
		{model.CallVirtual, "VIRTUAL"},
		{model.CallInterface, "INTERFACE"},
		{model.CallSpecial, "SPECIAL"},
		{model.CallKind(99), "UNKNOWN"},
	}
	for _, c := range cases {
		if got := c.k.String(); got != c.want {
			t.Errorf("CallKind(%d).String() = %q, want %q", c.k, got, c.want)
		}
	}
}
