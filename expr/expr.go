package expr

import (
	"fmt"

	"github.com/leftmike/setsession/sql"
)

type Expr interface {
	fmt.Stringer

	// HasRef reports whether the expression contains a Ref anywhere.
	HasRef() bool
}

type Op int

const (
	AddOp Op = iota
	AndOp
	ConcatOp
	DivideOp
	EqualOp
	GreaterEqualOp
	GreaterThanOp
	LessEqualOp
	LessThanOp
	ModuloOp
	MultiplyOp
	NegateOp
	NoOp
	NotEqualOp
	NotOp
	OrOp
	SubtractOp
)

var ops = [...]struct {
	name       string
	precedence int
}{
	AddOp:          {"+", 7},
	AndOp:          {"AND", 2},
	ConcatOp:       {"||", 10},
	DivideOp:       {"/", 8},
	EqualOp:        {"==", 4},
	GreaterEqualOp: {">=", 5},
	GreaterThanOp:  {">", 5},
	LessEqualOp:    {"<=", 5},
	LessThanOp:     {"<", 5},
	ModuloOp:       {"%", 8},
	MultiplyOp:     {"*", 8},
	NegateOp:       {"-", 9},
	NoOp:           {"", 11},
	NotEqualOp:     {"!=", 4},
	NotOp:          {"NOT", 3},
	OrOp:           {"OR", 1},
	SubtractOp:     {"-", 7},
}

func (op Op) Precedence() int {
	return ops[op].precedence
}

func (op Op) String() string {
	return ops[op].name
}

type Literal struct {
	Value sql.Value
}

func (l *Literal) String() string {
	return sql.Format(l.Value)
}


func (_ *Literal) HasRef() bool {
	return false
}

func Nil() *Literal {
	return &Literal{nil}
}

func True() *Literal {
	return &Literal{sql.BoolValue(true)}
}

func False() *Literal {
	return &Literal{sql.BoolValue(false)}
}

func Int64Literal(i int64) *Literal {
	return &Literal{sql.Int64Value(i)}
}

func Float64Literal(f float64) *Literal {
	return &Literal{sql.Float64Value(f)}
}

func StringLiteral(s string) *Literal {
	return &Literal{sql.StringValue(s)}
}

type Unary struct {
	Op   Op
	Expr Expr
}

func (u *Unary) String() string {
	if ops[u.Op].name == "" {
		return u.Expr.String()
	}
	return fmt.Sprintf("(%s %s)", ops[u.Op].name, u.Expr)
}


func (u *Unary) HasRef() bool {
	return u.Expr.HasRef()
}

type Binary struct {
	Op    Op
	Left  Expr
	Right Expr
}

func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, ops[b.Op].name, b.Right)
}


func (b *Binary) HasRef() bool {
	return b.Left.HasRef() || b.Right.HasRef()
}

// Ref is a reference to a column; it can never be reduced to a constant.
type Ref []string

func (r Ref) String() string {
	if len(r) == 0 {
		return ""
	}
	s := r[0]
	for i := 1; i < len(r); i++ {
		s += fmt.Sprintf(".%s", r[i])
	}
	return s
}


func (_ Ref) HasRef() bool {
	return true
}

type Call struct {
	Name string
	Args []Expr
}

func (c *Call) String() string {
	s := fmt.Sprintf("%s(", c.Name)
	for i, a := range c.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	s += ")"
	return s
}


func (c *Call) HasRef() bool {
	for _, a := range c.Args {
		if a.HasRef() {
			return true
		}
	}
	return false
}

// Param is a positional bind parameter; Num is zero based.
type Param struct {
	Num int
}

func (p Param) String() string {
	return fmt.Sprintf("?%d", p.Num)
}


func (_ Param) HasRef() bool {
	return false
}
