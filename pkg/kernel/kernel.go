// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package kernel wraps an SMT solver (Z3) with the sorts and
// uninterpreted relations described by the domain model: Module,
// Component, License and Constraint, plus the ModuleComponent,
// ComponentLicense and *Constraint relations between them.
package kernel

import (
	"github.com/aclements/go-z3/z3"
)

// Kind identifies one of the four nameable domain sorts.
type Kind uint8

// The four sorts the domain model is built from.
const (
	ModuleKind Kind = iota
	ComponentKind
	LicenseKind
	ConstraintKind
)

// String renders a Kind for diagnostics.
func (k Kind) String() string {
	switch k {
	case ModuleKind:
		return "Module"
	case ComponentKind:
		return "Component"
	case LicenseKind:
		return "License"
	case ConstraintKind:
		return "Constraint"
	default:
		return "?"
	}
}

// Kernel wraps a Z3 context and solver together with the domain sorts,
// the make(id) constructors for each, and the uninterpreted relations
// between them. A Kernel is built once by the Knowledge Loader and then
// driven through transient push/check/pop cycles by the Checker.
type Kernel struct {
	ctx    *z3.Context
	solver *z3.Solver

	module    z3.Sort
	component z3.Sort
	license   z3.Sort
	cnstrSort z3.Sort

	moduleMake    z3.FuncDecl
	componentMake z3.FuncDecl
	licenseMake   z3.FuncDecl
	cnstrMake     z3.FuncDecl

	moduleComponent   z3.FuncDecl
	componentLicense  z3.FuncDecl
	moduleConstraint  z3.FuncDecl
	componentCnstr    z3.FuncDecl
	licenseConstraint z3.FuncDecl

	// nextConstraintID is this Kernel's private id allocator. Replaces the
	// source's process-wide counter (see DESIGN.md) with one scoped to a
	// single Kernel, since ids are only ever compared within one SMT context.
	nextConstraintID int
}

// New constructs a fresh Kernel with its own Z3 context and solver, and
// declares the four domain sorts and five relations.
func New() *Kernel {
	cfg := z3.NewConfig()
	ctx := z3.NewContext(cfg)

	return newFromContext(ctx)
}

func newFromContext(ctx *z3.Context) *Kernel {
	k := &Kernel{ctx: ctx}

	k.module, k.moduleMake = declareIDSort(ctx, "Module")
	k.component, k.componentMake = declareIDSort(ctx, "Component")
	k.license, k.licenseMake = declareIDSort(ctx, "License")
	k.cnstrSort, k.cnstrMake = declareIDSort(ctx, "Constraint")

	boolSort := ctx.BoolSort()

	k.moduleComponent = ctx.FuncDecl("ModuleComponent", []z3.Sort{k.module, k.component}, boolSort)
	k.componentLicense = ctx.FuncDecl("ComponentLicense", []z3.Sort{k.component, k.license}, boolSort)
	k.moduleConstraint = ctx.FuncDecl("ModuleConstraint", []z3.Sort{k.module, k.cnstrSort}, boolSort)
	k.componentCnstr = ctx.FuncDecl("ComponentConstraint", []z3.Sort{k.component, k.cnstrSort}, boolSort)
	k.licenseConstraint = ctx.FuncDecl("LicenseConstraint", []z3.Sort{k.license, k.cnstrSort}, boolSort)

	k.solver = z3.NewSolver(ctx)

	return k
}

// declareIDSort builds the single-constructor "make(id: int)" datatype
// sort the design calls for: every value of the sort is nameable by an
// integer, so equality on the sort is integer equality.
func declareIDSort(ctx *z3.Context, name string) (z3.Sort, z3.FuncDecl) {
	dt := ctx.DatatypeSort(name)
	dt.AddConstructor("make", []string{"id"}, []z3.Sort{ctx.IntSort()})

	sort, ctors := dt.Build()

	return sort, ctors[0]
}

// Context returns the underlying Z3 context, for constructing atoms that
// the Constraint Builder needs direct access to (e.g. Int constants for
// the `id` field of a make(id) application).
func (k *Kernel) Context() *z3.Context { return k.ctx }

// Sort returns the datatype sort backing the given Kind.
func (k *Kernel) Sort(kind Kind) z3.Sort {
	switch kind {
	case ModuleKind:
		return k.module
	case ComponentKind:
		return k.component
	case LicenseKind:
		return k.license
	default:
		return k.cnstrSort
	}
}

// AllocConstraintID returns the next constraint id for this Kernel. Each
// scope.property maps to exactly one id for the lifetime of the Kernel
// (invariant, spec.md §3).
func (k *Kernel) AllocConstraintID() int {
	id := k.nextConstraintID
	k.nextConstraintID++

	return id
}

// MakeConstant builds the constant make(id) of the given sort.
func (k *Kernel) MakeConstant(kind Kind, id int) z3.Value {
	idVal := k.ctx.Int(id, k.ctx.IntSort())

	switch kind {
	case ModuleKind:
		return k.moduleMake.Apply(idVal)
	case ComponentKind:
		return k.componentMake.Apply(idVal)
	case LicenseKind:
		return k.licenseMake.Apply(idVal)
	default:
		return k.cnstrMake.Apply(idVal)
	}
}

// Const declares a free (universally-quantifiable) constant of the given
// sort and name, used as the bound variable in a ForAll or as a push
// frame's concrete subject constant.
func (k *Kernel) Const(name string, kind Kind) z3.Value {
	return k.ctx.Const(name, k.Sort(kind))
}

// ModuleComponent returns the term ModuleComponent(m, c).
func (k *Kernel) ModuleComponent(m, c z3.Value) z3.Bool {
	return k.moduleComponent.Apply(m, c).(z3.Bool)
}

// ComponentLicense returns the term ComponentLicense(c, l).
func (k *Kernel) ComponentLicense(c, l z3.Value) z3.Bool {
	return k.componentLicense.Apply(c, l).(z3.Bool)
}

// ModuleConstraint returns the term ModuleConstraint(m, k).
func (k *Kernel) ModuleConstraint(m, cnstr z3.Value) z3.Bool {
	return k.moduleConstraint.Apply(m, cnstr).(z3.Bool)
}

// ComponentConstraint returns the term ComponentConstraint(c, k).
func (k *Kernel) ComponentConstraint(c, cnstr z3.Value) z3.Bool {
	return k.componentCnstr.Apply(c, cnstr).(z3.Bool)
}

// LicenseConstraint returns the term LicenseConstraint(l, k).
func (k *Kernel) LicenseConstraint(l, cnstr z3.Value) z3.Bool {
	return k.licenseConstraint.Apply(l, cnstr).(z3.Bool)
}

// Assert adds fact to the solver. When tag is non-empty, the asserted
// formula is `tag ⟹ fact`, and the boolean variable named tag can then
// be used to enable/disable the fact via Check's assumptions. Tags
// collide-by-name with rule ids by design (spec.md §4.1).
func (k *Kernel) Assert(fact z3.Bool, tag string) {
	if tag != "" {
		tagVar := k.ctx.Const(tag, k.ctx.BoolSort()).(z3.Bool)
		fact = tagVar.Implies(fact)
	}

	k.solver.Assert(fact)
}

// ForAll quantifies body universally over the given bound constants.
func (k *Kernel) ForAll(vars []z3.Value, body z3.Bool) z3.Bool {
	return k.ctx.ForAll(vars, body)
}

// Bool returns (or declares) the boolean assumption variable named tag.
func (k *Kernel) Bool(tag string) z3.Bool {
	return k.ctx.Const(tag, k.ctx.BoolSort()).(z3.Bool)
}

// Push saves the current solver state so it can be restored with Pop.
func (k *Kernel) Push() { k.solver.Push() }

// Pop restores the solver state saved by the matching Push.
func (k *Kernel) Pop() { k.solver.Pop() }

// CheckResult is the three-valued outcome of a solver check.
type CheckResult uint8

// The three possible outcomes of Check.
const (
	Unsat CheckResult = iota
	Sat
	Unknown
)

// Check determines satisfiability of the solver's assertions together
// with the given boolean assumptions.
func (k *Kernel) Check(assumptions []z3.Bool) CheckResult {
	sat, err := k.solver.CheckAssumptions(assumptions...)
	if err != nil {
		return Unknown
	}

	if sat {
		return Sat
	}

	return Unsat
}

// UnsatCore returns the subset of the last Check's assumptions that
// participated in the unsatisfiability proof.
func (k *Kernel) UnsatCore() []z3.Bool {
	return k.solver.UnsatCore()
}

// Eval completes the last model for an unassigned variable and returns
// the boolean value of term under it.
func (k *Kernel) Eval(term z3.Bool) bool {
	model := k.solver.Model()
	return model.EvalBool(term, true)
}

// Fork produces an independent Kernel on a fresh solver context, with
// all current assertions translated across bit-equivalently. The
// returned Kernel shares nothing mutable with its parent: it is safe to
// drive from a different thread so long as the parent is not touched
// concurrently (spec.md §5).
func (k *Kernel) Fork() *Kernel {
	newCtx := z3.NewContext(z3.NewConfig())
	nk := newFromContext(newCtx)
	nk.nextConstraintID = k.nextConstraintID

	for _, a := range k.solver.Assertions() {
		nk.solver.Assert(a.Translate(newCtx).(z3.Bool))
	}

	return nk
}
