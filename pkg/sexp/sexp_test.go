package sexp

import (
	"reflect"
	"testing"
)

// ============================================================================
// Positive Tests
// ============================================================================

func TestSexp_Empty(t *testing.T) {
	CheckOk(t, nil, "")
}

func TestSexp_EmptyList(t *testing.T) {
	e1 := List{nil}
	CheckOk(t, &e1, "()")
}

func TestSexp_NestedEmptyList(t *testing.T) {
	e1 := List{nil}
	e2 := List{[]SExp{&e1}}
	CheckOk(t, &e2, "(())")
}

func TestSexp_BareSymbol(t *testing.T) {
	e1 := Symbol{"Component.dist_obj"}
	CheckOk(t, &e1, "Component.dist_obj")
}

func TestSexp_NegatedSymbol(t *testing.T) {
	e1 := Symbol{"!Module.distributed"}
	CheckOk(t, &e1, "!Module.distributed")
}

func TestSexp_SingleSymbolList(t *testing.T) {
	e1 := Symbol{"true"}
	e2 := List{[]SExp{&e1}}
	CheckOk(t, &e2, "(true)")
}

func TestSexp_OperatorWithArg(t *testing.T) {
	e1 := Symbol{"not"}
	e2 := Symbol{"Component.src_disclosed"}
	e3 := List{[]SExp{&e1, &e2}}
	CheckOk(t, &e3, "(not Component.src_disclosed)")
}

func TestSexp_NestedOperator(t *testing.T) {
	e1 := Symbol{"and"}
	e2 := Symbol{"Component.dist_obj"}
	e3 := Symbol{"not"}
	e4 := Symbol{"Component.src_disclosed"}
	e5 := List{[]SExp{&e3, &e4}}
	e6 := List{[]SExp{&e1, &e2, &e5}}
	CheckOk(t, &e6, "(and Component.dist_obj (not Component.src_disclosed))")
}

func TestSexp_CommentsAreSkipped(t *testing.T) {
	e1 := Symbol{"true"}
	CheckOk(t, &e1, "; a leading comment\ntrue")
}

// ============================================================================
// Negative Tests
// ============================================================================

func TestSexp_Err_UnexpectedCloseAtStart(t *testing.T) {
	CheckErr(t, ")")
}

func TestSexp_Err_TrailingCloseParen(t *testing.T) {
	CheckErr(t, "())")
}

func TestSexp_Err_UnbalancedAfterSymbol(t *testing.T) {
	CheckErr(t, "(Component.dist_obj))")
}

func TestSexp_Err_UnterminatedList(t *testing.T) {
	CheckErr(t, "(and Component.dist_obj")
}

// ============================================================================
// Helpers
// ============================================================================

func CheckOk(t *testing.T, want SExp, input string) {
	got, err := Parse(input)

	if err != nil {
		t.Error(err)
	} else if !reflect.DeepEqual(want, got) {
		t.Errorf("%s != %s", want, got)
	}
}

func CheckErr(t *testing.T, input string) {
	_, err := Parse(input)

	if err == nil {
		t.Errorf("input should not have parsed: %q", input)
	}
}
