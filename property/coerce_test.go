package property_test

import (
	"errors"
	"testing"

	"github.com/leftmike/setsession/property"
	"github.com/leftmike/setsession/sql"
)

const mustBePositive = "property must be positive"

func validatePositive(v sql.Value) error {
	if v.(sql.Int64Value) < 0 {
		return errors.New(mustBePositive)
	}
	return nil
}

func TestCoerce(t *testing.T) {
	boolProp := &property.Metadata{Name: "b", Type: property.BooleanType}
	intProp := &property.Metadata{Name: "i", Type: property.IntegerType}
	bigintProp := &property.Metadata{Name: "bi", Type: property.BigintType}
	doubleProp := &property.Metadata{Name: "d", Type: property.DoubleType}
	varcharProp := &property.Metadata{Name: "v", Type: property.VarcharType}
	positiveProp := &property.Metadata{Name: "positive_property", Type: property.IntegerType,
		Validator: validatePositive}
	sizeProp := &property.Metadata{Name: "size_property",
		Type: property.EnumType("SMALL", "MEDIUM", "LARGE")}

	cases := []struct {
		md   *property.Metadata
		v    sql.Value
		s    string
		kind sql.ErrorKind
		msg  string
	}{
		{md: boolProp, v: sql.BoolValue(true), s: "true"},
		{md: boolProp, v: sql.StringValue("false"), s: "false"},
		{md: boolProp, v: sql.StringValue("TRUE"), s: "true"},
		{md: boolProp, v: sql.StringValue("yes"), kind: sql.TypeMismatch},
		{md: boolProp, v: sql.Int64Value(1), kind: sql.TypeMismatch},

		{md: intProp, v: sql.Int64Value(-12), s: "-12"},
		{md: intProp, v: sql.StringValue("42"), s: "42"},
		{md: intProp, v: sql.StringValue("abc"), kind: sql.TypeMismatch,
			msg: "session property i: 'abc' is not a valid integer value"},
		{md: intProp, v: sql.Int64Value(1 << 40), kind: sql.TypeMismatch,
			msg: "session property i: 1099511627776 is out of range for integer"},
		{md: intProp, v: sql.Float64Value(1.5), kind: sql.TypeMismatch,
			msg: "session property i: expected integer value; got double 1.5"},
		{md: intProp, v: nil, kind: sql.TypeMismatch,
			msg: "session property i: value must not be null"},

		{md: bigintProp, v: sql.Int64Value(1 << 40), s: "1099511627776"},
		{md: bigintProp, v: sql.StringValue("-7"), s: "-7"},
		{md: bigintProp, v: sql.StringValue("7.5"), kind: sql.TypeMismatch},

		{md: doubleProp, v: sql.Float64Value(2.5), s: "2.5"},
		{md: doubleProp, v: sql.Int64Value(3), s: "3"},
		{md: doubleProp, v: sql.StringValue("0.125"), s: "0.125"},
		{md: doubleProp, v: sql.StringValue("x"), kind: sql.TypeMismatch},
		{md: doubleProp, v: sql.BoolValue(true), kind: sql.TypeMismatch},

		{md: varcharProp, v: sql.StringValue("baz"), s: "baz"},
		{md: varcharProp, v: sql.StringValue(""), s: ""},
		{md: varcharProp, v: sql.Int64Value(5), kind: sql.TypeMismatch,
			msg: "session property v: expected varchar value; got bigint 5"},

		{md: positiveProp, v: sql.Int64Value(0), s: "0"},
		{md: positiveProp, v: sql.Int64Value(2), s: "2"},
		{md: positiveProp, v: sql.StringValue("2"), s: "2"},
		{md: positiveProp, v: sql.Int64Value(-1), kind: sql.InvalidPropertyValue,
			msg: mustBePositive},
		{md: positiveProp, v: sql.StringValue("x"), kind: sql.TypeMismatch},

		{md: sizeProp, v: sql.StringValue("MEDIUM"), s: "MEDIUM"},
		{md: sizeProp, v: sql.StringValue("XL"), kind: sql.InvalidEnumValue,
			msg: "Invalid value [XL]. Valid values: [SMALL, MEDIUM, LARGE]"},
		{md: sizeProp, v: sql.StringValue("small"), kind: sql.InvalidEnumValue,
			msg: "Invalid value [small]. Valid values: [SMALL, MEDIUM, LARGE]"},
		{md: sizeProp, v: sql.Int64Value(1), kind: sql.TypeMismatch},
	}

	for _, c := range cases {
		s, err := property.Coerce(c.md, c.v)
		if c.kind != sql.UnknownError {
			if err == nil {
				t.Errorf("Coerce(%s, %s) did not fail", c.md.Name, sql.Format(c.v))
			} else if sql.KindOf(err) != c.kind {
				t.Errorf("Coerce(%s, %s) failed with %s (%s) want %s", c.md.Name,
					sql.Format(c.v), err, sql.KindOf(err), c.kind)
			} else if c.msg != "" && err.Error() != c.msg {
				t.Errorf("Coerce(%s, %s) got %q want %q", c.md.Name, sql.Format(c.v), err,
					c.msg)
			}
			continue
		}
		if err != nil {
			t.Errorf("Coerce(%s, %s) failed with %s", c.md.Name, sql.Format(c.v), err)
		} else if s != c.s {
			t.Errorf("Coerce(%s, %s) got %s want %s", c.md.Name, sql.Format(c.v), s, c.s)
		}
	}
}

func TestCanonicalRoundTrip(t *testing.T) {
	cases := []struct {
		md *property.Metadata
		v  sql.Value
	}{
		{&property.Metadata{Name: "b", Type: property.BooleanType}, sql.BoolValue(false)},
		{&property.Metadata{Name: "i", Type: property.IntegerType}, sql.Int64Value(-2147483648)},
		{&property.Metadata{Name: "d", Type: property.DoubleType}, sql.Float64Value(1e-7)},
		{&property.Metadata{Name: "d", Type: property.DoubleType}, sql.Float64Value(1.0 / 3)},
		{&property.Metadata{Name: "v", Type: property.VarcharType}, sql.StringValue("a'b")},
	}

	for _, c := range cases {
		s1, err := property.Coerce(c.md, c.v)
		if err != nil {
			t.Fatalf("Coerce(%s, %s) failed with %s", c.md.Name, sql.Format(c.v), err)
		}
		s2, err := property.Coerce(c.md, sql.StringValue(s1))
		if err != nil {
			t.Errorf("Coerce(%s, %q) failed with %s", c.md.Name, s1, err)
		} else if s1 != s2 {
			t.Errorf("Coerce(%s, %q) got %s", c.md.Name, s1, s2)
		}
	}
}

func TestValidators(t *testing.T) {
	md := &property.Metadata{Name: "r", Type: property.IntegerType,
		Validator: property.Range(sql.Int64Value(1), sql.Int64Value(10), "")}

	if _, err := property.Coerce(md, sql.Int64Value(1)); err != nil {
		t.Errorf("Coerce(r, 1) failed with %s", err)
	}
	_, err := property.Coerce(md, sql.Int64Value(0))
	if err == nil || err.Error() != "value must be at least 1" {
		t.Errorf("Coerce(r, 0) got %v", err)
	}
	_, err = property.Coerce(md, sql.Int64Value(11))
	if err == nil || err.Error() != "value must be at most 10" {
		t.Errorf("Coerce(r, 11) got %v", err)
	}

	md = &property.Metadata{Name: "p", Type: property.DoubleType,
		Validator: property.Range(sql.Int64Value(0), nil, mustBePositive)}
	_, err = property.Coerce(md, sql.Float64Value(-0.5))
	if err == nil || err.Error() != mustBePositive ||
		sql.KindOf(err) != sql.InvalidPropertyValue {

		t.Errorf("Coerce(p, -0.5) got %v", err)
	}

	md = &property.Metadata{Name: "dflt", Type: property.IntegerType,
		Default: sql.StringValue("0010")}
	if s, ok := md.DefaultString(); !ok || s != "10" {
		t.Errorf("DefaultString() got %s %v want 10 true", s, ok)
	}
	md = &property.Metadata{Name: "none", Type: property.IntegerType}
	if _, ok := md.DefaultString(); ok {
		t.Errorf("DefaultString() got true want false")
	}
}
