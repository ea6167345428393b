// Package loader turns parsed class files (internal/classfile) into the
// shared domain model (internal/model), resolving duplicate-type collisions
// first-wins and dropping unresolvable invokedynamic call sites.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"jvmcg/internal/classfile"
	"jvmcg/internal/enumerate"
	"jvmcg/internal/model"
)

// Result is the outcome of loading one set of enumerated units.
type Result struct {
	Classes  []*model.ClassDecl // in first-seen (sequence) order
	Warnings []string
}

type parseOutcome struct {
	decl *model.ClassDecl
	warn string
}

// Load parses every unit and converts it into a model.ClassDecl. Parsing and
// conversion are CPU-bound and independent per unit, so they fan out over a
// bounded errgroup.Group; the first-wins duplicate-FQN resolution that
// follows is a second, sequential pass over the results in the order of
// units (ascending Seq for Enumerate's output; Seq itself is not read), so
// the outcome is identical regardless of which goroutine finishes
// parsing first. Units that fail to parse are reported as warnings and
// skipped rather than aborting the whole load.
func Load(ctx context.Context, logger *slog.Logger, units []enumerate.Unit) (*Result, error) {
	outcomes := make([]parseOutcome, len(units))
	g, gctx := errgroup.WithContext(ctx)
	if n := runtime.GOMAXPROCS(0); n > 1 {
		g.SetLimit(n)
	} else {
		g.SetLimit(1)
	}

	for i, u := range units {
		i, u := i, u
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = parseUnit(u)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return &Result{}, err
	}

	seen := make(map[string]bool, len(units))
	res := &Result{}
	for i, o := range outcomes {
		if o.warn != "" {
			res.Warnings = append(res.Warnings, o.warn)
			logger.Warn("skipping malformed unit", "origin", units[i].Origin)
		}
		if o.decl == nil {
			continue
		}
		if seen[o.decl.FQN] {
			msg := fmt.Sprintf("duplicate type %s (origin %s), keeping first-seen definition", o.decl.FQN, o.decl.Origin)
			res.Warnings = append(res.Warnings, msg)
			logger.Info("duplicate type encountered", "fqn", o.decl.FQN, "origin", o.decl.Origin)
			continue
		}
		seen[o.decl.FQN] = true
		res.Classes = append(res.Classes, o.decl)
	}
	return res, nil
}

func parseUnit(u enumerate.Unit) parseOutcome {
	cf, err := classfile.Parse(u.Origin, u.Data)
	if err != nil {
		return parseOutcome{warn: fmt.Sprintf("malformed class unit %s: %v", u.Origin, err)}
	}
	decl, err := convert(cf)
	if err != nil {
		return parseOutcome{warn: fmt.Sprintf("malformed class unit %s: %v", u.Origin, err)}
	}
	return parseOutcome{decl: decl}
}

func convert(cf *classfile.ClassFile) (*model.ClassDecl, error) {
	name, err := cf.Name()
	if err != nil {
		return nil, err
	}
	super, err := cf.SuperName()
	if err != nil {
		return nil, err
	}
	ifaces, err := cf.InterfaceNames()
	if err != nil {
		return nil, err
	}

	decl := &model.ClassDecl{
		FQN:                 name,
		Kind:                classKind(cf.AccessFlags),
		SuperFQN:            super,
		DirectlyImplemented: ifaces,
		Origin:              cf.Origin,
	}

	for _, m := range cf.Methods {
		decl.Methods = append(decl.Methods, convertMethod(name, m))
	}
	return decl, nil
}

func classKind(flags classfile.AccessFlags) model.ClassKind {
	switch {
	case flags.Has(classfile.AccInterface):
		return model.KindInterface
	case flags.Has(classfile.AccAbstract):
		return model.KindAbstractClass
	default:
		return model.KindClass
	}
}

func visibility(flags classfile.AccessFlags) model.Visibility {
	switch {
	case flags.Has(classfile.AccPublic):
		return model.Public
	case flags.Has(classfile.AccProtected):
		return model.Protected
	case flags.Has(classfile.AccPrivate):
		return model.Private
	default:
		return model.Package
	}
}

func convertMethod(ownerFQN string, m classfile.Method) model.MethodDecl {
	decl := model.MethodDecl{
		OwnerFQN:    ownerFQN,
		Name:        m.Name,
		Descriptor:  m.Descriptor,
		Visibility:  visibility(m.AccessFlags),
		IsStatic:    m.AccessFlags.Has(classfile.AccStatic),
		IsAbstract:  m.AccessFlags.Has(classfile.AccAbstract),
		IsSynthetic: m.AccessFlags.Has(classfile.AccSynthetic),
	}
	for _, cs := range m.CallSites {
		// invokedynamic call sites have no statically resolvable target
		// (the real target is decided at a bootstrap-method linkage site
		// this analyzer does not evaluate) and are dropped here, per
		// model.CallKind's documented scope.
		if cs.Kind == classfile.InvokeDynamic {
			continue
		}
		decl.CallSites = append(decl.CallSites, model.CallSite{
			Kind:           convertCallKind(cs.Kind),
			DeclaredTarget: model.MethodRef(cs.DeclaredTarget),
			BytecodeOffset: cs.BytecodeOffset,
		})
	}
	return decl
}

func convertCallKind(k classfile.InvokeKind) model.CallKind {
	switch k {
	case classfile.InvokeStatic:
		return model.CallStatic
	case classfile.InvokeInterface:
		return model.CallInterface
	case classfile.InvokeSpecial:
		return model.CallSpecial
	default:
		return model.CallVirtual
	}
}
