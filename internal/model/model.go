// Package model holds the data shapes shared by every stage of the
// analysis pipeline: ClassDecl/MethodDecl as loaded from bytecode,
// MethodRef/CallEdge as produced by the call-graph constructor, and
// AnalysisResult as the externally observable artifact. All types here
// are immutable after construction; nothing in this package mutates a
// value once built.
package model

// ClassKind distinguishes the three declaration shapes the hierarchy cares
// about. Enum and record types are represented as CLASS (or ABSTRACT_CLASS
// when the class file marks them abstract), and annotation types, which
// carry the interface flag, as INTERFACE — the analyzer has no dispatch
// rule that needs to tell them apart.
type ClassKind uint8

const (
	KindClass ClassKind = iota
	KindInterface
	KindAbstractClass
)

func (k ClassKind) String() string {
	switch k {
	case KindClass:
		return "CLASS"
	case KindInterface:
		return "INTERFACE"
	case KindAbstractClass:
		return "ABSTRACT_CLASS"
	default:
		return "UNKNOWN"
	}
}

// Visibility mirrors the four JVM member access levels.
type Visibility uint8

const (
	Public Visibility = iota
	Protected
	Package
	Private
)

func (v Visibility) String() string {
	switch v {
	case Public:
		return "PUBLIC"
	case Protected:
		return "PROTECTED"
	case Package:
		return "PACKAGE"
	case Private:
		return "PRIVATE"
	default:
		return "UNKNOWN"
	}
}

// CallKind is one of the four JVM dispatch flavors recorded on a CallSite.
// invokedynamic call sites carry no statically resolvable target and are
// dropped during loading (see internal/loader) rather than represented here.
type CallKind uint8

const (
	CallStatic CallKind = iota
	CallVirtual
	CallInterface
	CallSpecial
)

func (k CallKind) String() string {
	switch k {
	case CallStatic:
		return "STATIC"
	case CallVirtual:
		return "VIRTUAL"
	case CallInterface:
		return "INTERFACE"
	case CallSpecial:
		return "SPECIAL"
	default:
		return "UNKNOWN"
	}
}

// MethodRef is a symbolic (owner, name, descriptor) triple. It is a value
// type so it works directly as a map key and needs no pointer-identity
// tricks to compare across pipeline stages.
type MethodRef struct {
	OwnerFQN   string
	Name       string
	Descriptor string
}

// CallSite is one invocation instruction inside a method body.
type CallSite struct {
	Kind           CallKind
	DeclaredTarget MethodRef
	BytecodeOffset int
}

// MethodDecl is one declared method, constructor (`<init>`), or class
// initializer (`<clinit>`).
type MethodDecl struct {
	OwnerFQN    string
	Name        string
	Descriptor  string
	Visibility  Visibility
	IsStatic    bool
	IsAbstract  bool
	IsSynthetic bool
	CallSites   []CallSite
}

// Ref returns this method's identity as a MethodRef.
func (m *MethodDecl) Ref() MethodRef {
	return MethodRef{OwnerFQN: m.OwnerFQN, Name: m.Name, Descriptor: m.Descriptor}
}

// ClassDecl is one loaded type.
type ClassDecl struct {
	FQN                 string
	Kind                ClassKind
	SuperFQN            string // "" for java.lang.Object and superclass-less interfaces
	DirectlyImplemented []string
	Methods             []MethodDecl
	Origin              string // origin description, for diagnostics only
}

// CallEdge is one directed method-to-method edge in the constructed graph.
type CallEdge struct {
	Source MethodRef
	Target MethodRef
}

// ClassInfo and MethodInfo are the summary shapes emitted in AnalysisResult,
// deliberately narrower than ClassDecl/MethodDecl since they are the
// externally observable artifact, not the internal working state.
type ClassInfo struct {
	FQN  string
	Kind ClassKind
}

type MethodInfo struct {
	OwnerFQN   string
	Name       string
	Descriptor string
	Visibility Visibility
	IsStatic   bool
}

// AnalysisResult is the return value of one analysis invocation.
type AnalysisResult struct {
	Classes   []ClassInfo
	Methods   []MethodInfo
	CallEdges []CallEdge
}
