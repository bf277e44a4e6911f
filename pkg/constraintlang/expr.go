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
package constraintlang

import (
	"fmt"

	"github.com/aclements/go-z3/z3"
	"github.com/trustsource/legalcheck/pkg/sexp"
)

// ExprError is a parse failure in the expression grammar, returned by
// ParseExpr for the one expression it was given. The knowledge loader
// compiles rules and obligations from CNF/DNF lists and does not call
// ParseExpr.
type ExprError struct {
	Text string
	Err  error
}

func (e *ExprError) Error() string {
	return fmt.Sprintf("malformed expression %q: %s", e.Text, e.Err)
}

func (e *ExprError) Unwrap() error { return e.Err }

// ParseExpr compiles a single textual boolean expression into a kernel
// term. The grammar is a small s-expression language over the operators
// `and`, `or`, `not`, `implies`, `if-then-else`, the literals `true` /
// `false`, and dotted-key atoms `Module.X`, `Component.Y`, `License.Z`
// (the last accepted by the grammar even though the engine's own rules
// never emit one -- spec.md §9). A bare, unqualified symbol is treated
// as a component-scoped reference, mirroring the source's CONST token
// rule which goes through makeComponentCnstrExpr unconditionally.
func (b *Builder) ParseExpr(text string, l z3.Value) (z3.Bool, error) {
	term, err := sexp.Parse(text)
	if err != nil {
		return z3.Bool{}, &ExprError{text, err}
	} else if term == nil {
		return z3.Bool{}, &ExprError{text, fmt.Errorf("empty expression")}
	}

	result, err := b.evalExprTerm(term, l)
	if err != nil {
		return z3.Bool{}, &ExprError{text, err}
	}

	return result, nil
}

func (b *Builder) evalExprTerm(term sexp.SExp, l z3.Value) (z3.Bool, error) {
	ctx := b.k.Context()

	switch t := term.(type) {
	case *sexp.Symbol:
		switch t.Value {
		case "true":
			return ctx.BoolVal(true), nil
		case "false":
			return ctx.BoolVal(false), nil
		default:
			return b.scopedAtom(t.Value, l), nil
		}
	case *sexp.List:
		return b.evalExprList(t, l)
	default:
		return z3.Bool{}, fmt.Errorf("unsupported expression term")
	}
}

// scopedAtom dispatches a single atom token to the correctly-scoped
// builder based on its "Scope." prefix; a token with no recognised
// prefix is a bare CONST, built as a component constraint per the
// source grammar's CONST rule.
func (b *Builder) scopedAtom(token string, l z3.Value) z3.Bool {
	switch {
	case hasScopePrefix(token, "License"):
		return b.MakeLicenseCnstr(token, l)
	case hasScopePrefix(token, "Module"):
		return b.MakeModuleCnstr(token, nil)
	case hasScopePrefix(token, "Component"):
		return b.MakeComponentCnstr(token, nil)
	default:
		return b.MakeComponentCnstr(token, nil)
	}
}

func hasScopePrefix(token, scope string) bool {
	body := token
	if len(body) > 0 && body[0] == '!' {
		body = body[1:]
	}

	return len(body) > len(scope) && body[:len(scope)+1] == scope+"."
}

func (b *Builder) evalExprList(l *sexp.List, lic z3.Value) (z3.Bool, error) {
	if len(l.Elements) == 0 {
		return z3.Bool{}, fmt.Errorf("empty list")
	}

	head, ok := l.Elements[0].(*sexp.Symbol)
	if !ok {
		return z3.Bool{}, fmt.Errorf("expected operator symbol")
	}

	args := l.Elements[1:]

	switch head.Value {
	case "not":
		if len(args) != 1 {
			return z3.Bool{}, fmt.Errorf("'not' takes exactly one argument")
		}

		arg, err := b.evalExprTerm(args[0], lic)
		if err != nil {
			return z3.Bool{}, err
		}

		return arg.Not(), nil

	case "and":
		return b.evalExprVariadic(args, lic, true)

	case "or":
		return b.evalExprVariadic(args, lic, false)

	case "implies":
		if len(args) != 2 {
			return z3.Bool{}, fmt.Errorf("'implies' takes exactly two arguments")
		}

		lhs, err := b.evalExprTerm(args[0], lic)
		if err != nil {
			return z3.Bool{}, err
		}

		rhs, err := b.evalExprTerm(args[1], lic)
		if err != nil {
			return z3.Bool{}, err
		}

		return lhs.Implies(rhs), nil

	case "if-then-else":
		if len(args) != 3 {
			return z3.Bool{}, fmt.Errorf("'if-then-else' takes exactly three arguments")
		}

		cond, err := b.evalExprTerm(args[0], lic)
		if err != nil {
			return z3.Bool{}, err
		}

		then, err := b.evalExprTerm(args[1], lic)
		if err != nil {
			return z3.Bool{}, err
		}

		els, err := b.evalExprTerm(args[2], lic)
		if err != nil {
			return z3.Bool{}, err
		}

		return cond.IfThenElse(then, els).(z3.Bool), nil

	default:
		return z3.Bool{}, fmt.Errorf("unknown operator %q", head.Value)
	}
}

func (b *Builder) evalExprVariadic(args []sexp.SExp, l z3.Value, conjunction bool) (z3.Bool, error) {
	ctx := b.k.Context()
	result := ctx.BoolVal(conjunction)

	for i, arg := range args {
		term, err := b.evalExprTerm(arg, l)
		if err != nil {
			return z3.Bool{}, err
		}

		if i == 0 {
			result = term
			continue
		}

		if conjunction {
			result = result.And(term)
		} else {
			result = result.Or(term)
		}
	}

	return result, nil
}
