package expr

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/leftmike/setsession/sql"
)

// Eval reduces e to a single constant value. Parameters referenced by e are taken from
// params by position.
func Eval(e Expr, params []*Literal) (sql.Value, error) {
	switch e := e.(type) {
	case *Literal:
		return e.Value, nil
	case Param:
		if e.Num < 0 || e.Num >= len(params) {
			return nil, sql.Errorf(sql.ParameterIndexOutOfRange,
				"parameter index %d out of range; %d parameters supplied", e.Num, len(params))
		}
		if params[e.Num] == nil {
			return nil, nil
		}
		return params[e.Num].Value, nil
	case *Unary:
		if e.Op == NoOp {
			return Eval(e.Expr, params)
		}
		args, err := evalArgs([]Expr{e.Expr}, params)
		if err != nil {
			return nil, err
		}
		return applyCall(opFuncs[e.Op], args)
	case *Binary:
		args, err := evalArgs([]Expr{e.Left, e.Right}, params)
		if err != nil {
			return nil, err
		}
		return applyCall(opFuncs[e.Op], args)
	case *Call:
		// Arguments are evaluated before the function is looked up, so the first failure in
		// left to right order is the one reported.
		args, err := evalArgs(e.Args, params)
		if err != nil {
			return nil, err
		}
		cf, ok := idFuncs[strings.ToLower(e.Name)]
		if !ok {
			return nil, sql.Errorf(sql.ExpressionNotConstant, "function \"%s\" not found",
				e.Name)
		}
		if len(args) < int(cf.minArgs) {
			return nil, sql.Errorf(sql.ExpressionNotConstant,
				"function \"%s\": minimum %d arguments got %d", e.Name, cf.minArgs, len(args))
		}
		if len(args) > int(cf.maxArgs) {
			return nil, sql.Errorf(sql.ExpressionNotConstant,
				"function \"%s\": maximum %d arguments got %d", e.Name, cf.maxArgs, len(args))
		}
		return applyCall(cf, args)
	case Ref:
		return nil, sql.Errorf(sql.ExpressionNotConstant,
			"expected a constant expression; got reference %s", e)
	default:
		panic(fmt.Sprintf("missing case for expr: %#v", e))
	}
}

func evalArgs(exprs []Expr, params []*Literal) ([]sql.Value, error) {
	args := make([]sql.Value, len(exprs))
	for i, a := range exprs {
		var err error
		args[i], err = Eval(a, params)
		if err != nil {
			return nil, err
		}
	}
	return args, nil
}

func applyCall(cf *callFunc, args []sql.Value) (sql.Value, error) {
	for _, a := range args {
		if a == nil && !cf.handleNull {
			return nil, nil
		}
	}
	return cf.fn(args)
}

type callFunc struct {
	fn         func(args []sql.Value) (sql.Value, error)
	minArgs    int16
	maxArgs    int16
	name       string
	handleNull bool
}

var (
	opFuncs = map[Op]*callFunc{
		AddOp:          {fn: addCall, minArgs: 2, maxArgs: 2},
		AndOp:          {fn: andCall, minArgs: 2, maxArgs: 2},
		ConcatOp:       {fn: concatCall, minArgs: 2, maxArgs: 2, handleNull: true},
		DivideOp:       {fn: divideCall, minArgs: 2, maxArgs: 2},
		EqualOp:        {fn: equalCall, minArgs: 2, maxArgs: 2},
		GreaterEqualOp: {fn: greaterEqualCall, minArgs: 2, maxArgs: 2},
		GreaterThanOp:  {fn: greaterThanCall, minArgs: 2, maxArgs: 2},
		LessEqualOp:    {fn: lessEqualCall, minArgs: 2, maxArgs: 2},
		LessThanOp:     {fn: lessThanCall, minArgs: 2, maxArgs: 2},
		ModuloOp:       {fn: moduloCall, minArgs: 2, maxArgs: 2},
		MultiplyOp:     {fn: multiplyCall, minArgs: 2, maxArgs: 2},
		NegateOp:       {fn: negateCall, minArgs: 1, maxArgs: 1},
		NotEqualOp:     {fn: notEqualCall, minArgs: 2, maxArgs: 2},
		NotOp:          {fn: notCall, minArgs: 1, maxArgs: 1},
		OrOp:           {fn: orCall, minArgs: 2, maxArgs: 2},
		SubtractOp:     {fn: subtractCall, minArgs: 2, maxArgs: 2},
	}

	// Only pure scalar functions belong here: the result must depend on nothing but the
	// arguments.
	idFuncs = map[string]*callFunc{
		"abs": {fn: absCall, minArgs: 1, maxArgs: 1},
		"concat": {fn: concatCall, minArgs: 2, maxArgs: math.MaxInt16,
			handleNull: true},
		"length": {fn: lengthCall, minArgs: 1, maxArgs: 1},
		"lower":  {fn: lowerCall, minArgs: 1, maxArgs: 1},
		"substr": {fn: substrCall, minArgs: 2, maxArgs: 3},
		"trim":   {fn: trimCall, minArgs: 1, maxArgs: 1},
		"upper":  {fn: upperCall, minArgs: 1, maxArgs: 1},
	}
)

func init() {
	for op, cf := range opFuncs {
		if op == NegateOp {
			cf.name = "negate"
		} else {
			cf.name = fmt.Sprintf("\"%s\"", op)
		}

		if op == NegateOp || op == NotOp {
			if cf.minArgs != 1 || cf.maxArgs != 1 {
				panic(fmt.Sprintf("opFuncs[%s]: minArgs != 1 || maxArgs != 1", op))
			}
		} else {
			if cf.minArgs != 2 || cf.maxArgs != 2 {
				panic(fmt.Sprintf("opFuncs[%s]: minArgs != 2 || maxArgs != 2", op))
			}
		}
	}

	for nam, cf := range idFuncs {
		cf.name = nam
		if cf.minArgs < 0 || cf.maxArgs < cf.minArgs {
			panic(fmt.Sprintf("idFuncs[%s]: minArgs < 0 || maxArgs < minArgs", nam))
		}
	}
}

func typeError(want string, v sql.Value) error {
	return sql.Errorf(sql.TypeMismatch, "want %s got %s", want, sql.Format(v))
}

func numFunc(a0 sql.Value, a1 sql.Value, ifn func(i0, i1 sql.Int64Value) (sql.Value, error),
	ffn func(f0, f1 sql.Float64Value) sql.Value) (sql.Value, error) {

	switch a0 := a0.(type) {
	case sql.Float64Value:
		switch a1 := a1.(type) {
		case sql.Float64Value:
			return ffn(a0, a1), nil
		case sql.Int64Value:
			return ffn(a0, sql.Float64Value(a1)), nil
		}
	case sql.Int64Value:
		switch a1 := a1.(type) {
		case sql.Float64Value:
			return ffn(sql.Float64Value(a0), a1), nil
		case sql.Int64Value:
			return ifn(a0, a1)
		}
	default:
		return nil, typeError("number", a0)
	}
	return nil, typeError("number", a1)
}

func overflowError(op string) error {
	return sql.Errorf(sql.TypeMismatch, "bigint out of range: %s", op)
}

func stringArg(v sql.Value) (string, error) {
	if s, ok := v.(sql.StringValue); ok {
		return string(s), nil
	}
	return "", typeError("string", v)
}

func int64Arg(v sql.Value) (int64, error) {
	if i, ok := v.(sql.Int64Value); ok {
		return int64(i), nil
	}
	return 0, typeError("integer", v)
}

func boolArgs(args []sql.Value) (sql.BoolValue, sql.BoolValue, error) {
	a0, ok := args[0].(sql.BoolValue)
	if !ok {
		return false, false, typeError("boolean", args[0])
	}
	a1, ok := args[1].(sql.BoolValue)
	if !ok {
		return false, false, typeError("boolean", args[1])
	}
	return a0, a1, nil
}

func compareArgs(args []sql.Value) (int, error) {
	cmp, err := args[0].Compare(args[1])
	if err != nil {
		return 0, sql.Errorf(sql.TypeMismatch, "%s", err)
	}
	return cmp, nil
}

func addCall(args []sql.Value) (sql.Value, error) {
	return numFunc(args[0], args[1],
		func(i0, i1 sql.Int64Value) (sql.Value, error) {
			r := i0 + i1
			if (i1 > 0 && r < i0) || (i1 < 0 && r > i0) {
				return nil, overflowError(fmt.Sprintf("%d + %d", i0, i1))
			}
			return r, nil
		},
		func(f0, f1 sql.Float64Value) sql.Value {
			return f0 + f1
		})
}

func andCall(args []sql.Value) (sql.Value, error) {
	a0, a1, err := boolArgs(args)
	if err != nil {
		return nil, err
	}
	return a0 && a1, nil
}

func concatCall(args []sql.Value) (sql.Value, error) {
	var b strings.Builder
	for _, a := range args {
		if a == nil {
			continue
		}
		switch v := a.(type) {
		case sql.BoolValue, sql.Float64Value, sql.Int64Value:
			b.WriteString(v.String())
		case sql.StringValue:
			b.WriteString(string(v))
		default:
			panic(fmt.Sprintf("unexpected type for sql.Value: %T: %v", v, v))
		}
	}
	return sql.StringValue(b.String()), nil
}

func divideCall(args []sql.Value) (sql.Value, error) {
	if i, ok := args[1].(sql.Int64Value); ok && i == 0 {
		return nil, sql.Errorf(sql.ExpressionNotConstant, "division by zero")
	}
	return numFunc(args[0], args[1],
		func(i0, i1 sql.Int64Value) (sql.Value, error) {
			if i0 == math.MinInt64 && i1 == -1 {
				return nil, overflowError(fmt.Sprintf("%d / %d", i0, i1))
			}
			return i0 / i1, nil
		},
		func(f0, f1 sql.Float64Value) sql.Value {
			return f0 / f1
		})
}

func equalCall(args []sql.Value) (sql.Value, error) {
	cmp, err := compareArgs(args)
	if err != nil {
		return nil, err
	}
	return sql.BoolValue(cmp == 0), nil
}

func greaterEqualCall(args []sql.Value) (sql.Value, error) {
	cmp, err := compareArgs(args)
	if err != nil {
		return nil, err
	}
	return sql.BoolValue(cmp >= 0), nil
}

func greaterThanCall(args []sql.Value) (sql.Value, error) {
	cmp, err := compareArgs(args)
	if err != nil {
		return nil, err
	}
	return sql.BoolValue(cmp > 0), nil
}

func lessEqualCall(args []sql.Value) (sql.Value, error) {
	cmp, err := compareArgs(args)
	if err != nil {
		return nil, err
	}
	return sql.BoolValue(cmp <= 0), nil
}

func lessThanCall(args []sql.Value) (sql.Value, error) {
	cmp, err := compareArgs(args)
	if err != nil {
		return nil, err
	}
	return sql.BoolValue(cmp < 0), nil
}

func moduloCall(args []sql.Value) (sql.Value, error) {
	i0, err := int64Arg(args[0])
	if err != nil {
		return nil, err
	}
	i1, err := int64Arg(args[1])
	if err != nil {
		return nil, err
	}
	if i1 == 0 {
		return nil, sql.Errorf(sql.ExpressionNotConstant, "division by zero")
	}
	return sql.Int64Value(i0 % i1), nil
}

func multiplyCall(args []sql.Value) (sql.Value, error) {
	return numFunc(args[0], args[1],
		func(i0, i1 sql.Int64Value) (sql.Value, error) {
			r := i0 * i1
			if i0 != 0 && (r/i0 != i1 || (i0 == -1 && i1 == math.MinInt64)) {
				return nil, overflowError(fmt.Sprintf("%d * %d", i0, i1))
			}
			return r, nil
		},
		func(f0, f1 sql.Float64Value) sql.Value {
			return f0 * f1
		})
}

func negateCall(args []sql.Value) (sql.Value, error) {
	switch a0 := args[0].(type) {
	case sql.Float64Value:
		return -a0, nil
	case sql.Int64Value:
		if a0 == math.MinInt64 {
			return nil, overflowError(fmt.Sprintf("-(%d)", a0))
		}
		return -a0, nil
	}
	return nil, typeError("number", args[0])
}

func notEqualCall(args []sql.Value) (sql.Value, error) {
	cmp, err := compareArgs(args)
	if err != nil {
		return nil, err
	}
	return sql.BoolValue(cmp != 0), nil
}

func notCall(args []sql.Value) (sql.Value, error) {
	if a0, ok := args[0].(sql.BoolValue); ok {
		return !a0, nil
	}
	return nil, typeError("boolean", args[0])
}

func orCall(args []sql.Value) (sql.Value, error) {
	a0, a1, err := boolArgs(args)
	if err != nil {
		return nil, err
	}
	return a0 || a1, nil
}

func subtractCall(args []sql.Value) (sql.Value, error) {
	return numFunc(args[0], args[1],
		func(i0, i1 sql.Int64Value) (sql.Value, error) {
			r := i0 - i1
			if (i1 > 0 && r > i0) || (i1 < 0 && r < i0) {
				return nil, overflowError(fmt.Sprintf("%d - %d", i0, i1))
			}
			return r, nil
		},
		func(f0, f1 sql.Float64Value) sql.Value {
			return f0 - f1
		})
}

func absCall(args []sql.Value) (sql.Value, error) {
	switch a0 := args[0].(type) {
	case sql.Float64Value:
		if a0 < 0 {
			return -a0, nil
		}
		return a0, nil
	case sql.Int64Value:
		if a0 == math.MinInt64 {
			return nil, overflowError(fmt.Sprintf("abs(%d)", a0))
		}
		if a0 < 0 {
			return -a0, nil
		}
		return a0, nil
	}
	return nil, typeError("number", args[0])
}

func lengthCall(args []sql.Value) (sql.Value, error) {
	s, err := stringArg(args[0])
	if err != nil {
		return nil, err
	}
	return sql.Int64Value(utf8.RuneCountInString(s)), nil
}

func lowerCall(args []sql.Value) (sql.Value, error) {
	s, err := stringArg(args[0])
	if err != nil {
		return nil, err
	}
	return sql.StringValue(strings.ToLower(s)), nil
}

func upperCall(args []sql.Value) (sql.Value, error) {
	s, err := stringArg(args[0])
	if err != nil {
		return nil, err
	}
	return sql.StringValue(strings.ToUpper(s)), nil
}

func trimCall(args []sql.Value) (sql.Value, error) {
	s, err := stringArg(args[0])
	if err != nil {
		return nil, err
	}
	return sql.StringValue(strings.TrimSpace(s)), nil
}

// substr(s, start [, length]) with start counting from 1; a negative start counts back from
// the end of s.
func substrCall(args []sql.Value) (sql.Value, error) {
	s, err := stringArg(args[0])
	if err != nil {
		return nil, err
	}
	start, err := int64Arg(args[1])
	if err != nil {
		return nil, err
	}
	r := []rune(s)
	n := int64(len(r))
	length := n
	if len(args) == 3 {
		length, err = int64Arg(args[2])
		if err != nil {
			return nil, err
		}
	}

	if start < 0 {
		start = n + start + 1
	}
	if start < 1 || start > n || length <= 0 {
		return sql.StringValue(""), nil
	}
	end := n
	if length < n-(start-1) {
		end = start - 1 + length
	}
	return sql.StringValue(string(r[start-1 : end])), nil
}
