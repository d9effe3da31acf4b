package sql

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	NullString  = "NULL"
	TrueString  = "true"
	FalseString = "false"
)

type Value interface {
	fmt.Stringer

	// return -1 if v1 < v2
	// return 0 if v1 == v2
	// return 1 if v1 > v2
	Compare(v2 Value) (int, error)
}

type BoolValue bool

func (b BoolValue) String() string {
	if b {
		return TrueString
	}
	return FalseString
}

func (b1 BoolValue) Compare(v2 Value) (int, error) {
	if b2, ok := v2.(BoolValue); ok {
		if b1 {
			if b2 {
				return 0, nil
			}
			return 1, nil
		} else {
			if b2 {
				return -1, nil
			}
			return 0, nil
		}
	}
	return 0, fmt.Errorf("want boolean got %v", v2)
}

type Int64Value int64

func (i Int64Value) String() string {
	return strconv.FormatInt(int64(i), 10)
}

func (i1 Int64Value) Compare(v2 Value) (int, error) {
	switch v2 := v2.(type) {
	case Int64Value:
		if i1 < v2 {
			return -1, nil
		} else if i1 > v2 {
			return 1, nil
		}
		return 0, nil
	case Float64Value:
		if Float64Value(i1) < v2 {
			return -1, nil
		} else if Float64Value(i1) > v2 {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("want number got %v", v2)
}

type Float64Value float64

func (d Float64Value) String() string {
	return strconv.FormatFloat(float64(d), 'g', -1, 64)
}

func (d1 Float64Value) Compare(v2 Value) (int, error) {
	switch v2 := v2.(type) {
	case Int64Value:
		if d1 < Float64Value(v2) {
			return -1, nil
		} else if d1 > Float64Value(v2) {
			return 1, nil
		}
		return 0, nil
	case Float64Value:
		if d1 < v2 {
			return -1, nil
		} else if d1 > v2 {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("want number got %v", v2)
}

type StringValue string

func (s StringValue) String() string {
	return fmt.Sprintf("'%s'", strings.ReplaceAll(string(s), "'", "''"))
}

func (s1 StringValue) Compare(v2 Value) (int, error) {
	if s2, ok := v2.(StringValue); ok {
		return strings.Compare(string(s1), string(s2)), nil
	}
	return 0, fmt.Errorf("want string got %v", v2)
}

func Format(v Value) string {
	if v == nil {
		return NullString
	}

	return v.String()
}

// TypeName returns the SQL name of the runtime type of v; it is used in error messages.
func TypeName(v Value) string {
	switch v.(type) {
	case nil:
		return "unknown"
	case BoolValue:
		return "boolean"
	case Int64Value:
		return "bigint"
	case Float64Value:
		return "double"
	case StringValue:
		return "varchar"
	default:
		panic(fmt.Sprintf("unexpected type for sql.Value: %T: %v", v, v))
	}
}
