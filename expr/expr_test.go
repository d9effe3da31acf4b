package expr_test

import (
	"testing"

	. "github.com/leftmike/setsession/expr"
)

func TestExpr(t *testing.T) {
	cases := []struct {
		e Expr
		s string
	}{
		{
			e: &Binary{
				Op:    DivideOp,
				Left:  &Unary{Op: NegateOp, Expr: Int64Literal(123)},
				Right: Int64Literal(456),
			},
			s: "((- 123) / 456)"},
		{
			e: &Call{
				Name: "abc",
				Args: []Expr{
					&Unary{Op: NegateOp, Expr: Int64Literal(123)},
					Param{Num: 3},
					StringLiteral("ana"),
					&Binary{Op: AddOp,
						Left:  Ref{"def", "ghi"},
						Right: Int64Literal(789),
					},
				},
			},
			s: "abc((- 123), ?3, 'ana', (def.ghi + 789))",
		},
		{
			e: &Unary{Op: NoOp, Expr: True()},
			s: "true",
		},
		{
			e: Ref{},
			s: "",
		},
	}

	for _, c := range cases {
		if c.e.String() != c.s {
			t.Errorf("%q.String() != %q", c.e.String(), c.s)
		}
	}
}

func TestHasRef(t *testing.T) {
	cases := []struct {
		e      Expr
		hasRef bool
	}{
		{e: Nil(), hasRef: false},
		{e: Param{Num: 0}, hasRef: false},
		{e: &Call{Name: "concat", Args: []Expr{StringLiteral("ban"), Param{Num: 0}}}},
		{e: Ref{"col"}, hasRef: true},
		{e: &Binary{Op: ConcatOp, Left: Ref{"col"}, Right: StringLiteral("x")}, hasRef: true},
		{e: &Unary{Op: NoOp, Expr: Ref{"tbl", "col"}}, hasRef: true},
		{
			e: &Call{Name: "upper",
				Args: []Expr{&Unary{Op: NegateOp, Expr: Int64Literal(1)}, Ref{"col"}}},
			hasRef: true,
		},
	}

	for _, c := range cases {
		if c.e.HasRef() != c.hasRef {
			t.Errorf("%s.HasRef() got %v want %v", c.e, c.e.HasRef(), c.hasRef)
		}
	}
}
