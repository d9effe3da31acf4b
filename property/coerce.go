package property

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/leftmike/setsession/sql"
)

// Coerce converts v to the declared type of md, runs the validator of md (if any) on the
// converted value, and returns the canonical string form of the value.
func Coerce(md *Metadata, v sql.Value) (string, error) {
	tv, s, err := convert(md, v)
	if err != nil {
		return "", err
	}
	if md.Validator != nil {
		err = md.Validator(tv)
		if err != nil {
			return "", &sql.Error{Kind: sql.InvalidPropertyValue, Message: err.Error()}
		}
	}
	return s, nil
}

func typeMismatch(md *Metadata, v sql.Value) error {
	if v == nil {
		return sql.Errorf(sql.TypeMismatch, "session property %s: value must not be null",
			md.Name)
	}
	return sql.Errorf(sql.TypeMismatch, "session property %s: expected %s value; got %s %s",
		md.Name, md.Type.Kind, sql.TypeName(v), sql.Format(v))
}

func invalidText(md *Metadata, s string) error {
	return sql.Errorf(sql.TypeMismatch, "session property %s: '%s' is not a valid %s value",
		md.Name, s, md.Type.Kind)
}

func convert(md *Metadata, v sql.Value) (sql.Value, string, error) {
	switch md.Type.Kind {
	case Boolean:
		switch v := v.(type) {
		case sql.BoolValue:
			return v, strconv.FormatBool(bool(v)), nil
		case sql.StringValue:
			b, err := strconv.ParseBool(string(v))
			if err != nil {
				return nil, "", invalidText(md, string(v))
			}
			return sql.BoolValue(b), strconv.FormatBool(b), nil
		}
	case Integer:
		switch v := v.(type) {
		case sql.Int64Value:
			if v < math.MinInt32 || v > math.MaxInt32 {
				return nil, "", sql.Errorf(sql.TypeMismatch,
					"session property %s: %d is out of range for integer", md.Name, int64(v))
			}
			return v, strconv.FormatInt(int64(v), 10), nil
		case sql.StringValue:
			i, err := strconv.ParseInt(string(v), 10, 32)
			if err != nil {
				return nil, "", invalidText(md, string(v))
			}
			return sql.Int64Value(i), strconv.FormatInt(i, 10), nil
		}
	case Bigint:
		switch v := v.(type) {
		case sql.Int64Value:
			return v, strconv.FormatInt(int64(v), 10), nil
		case sql.StringValue:
			i, err := strconv.ParseInt(string(v), 10, 64)
			if err != nil {
				return nil, "", invalidText(md, string(v))
			}
			return sql.Int64Value(i), strconv.FormatInt(i, 10), nil
		}
	case Double:
		switch v := v.(type) {
		case sql.Float64Value:
			return v, strconv.FormatFloat(float64(v), 'g', -1, 64), nil
		case sql.Int64Value:
			return sql.Float64Value(v), strconv.FormatFloat(float64(v), 'g', -1, 64), nil
		case sql.StringValue:
			f, err := strconv.ParseFloat(string(v), 64)
			if err != nil {
				return nil, "", invalidText(md, string(v))
			}
			return sql.Float64Value(f), strconv.FormatFloat(f, 'g', -1, 64), nil
		}
	case Varchar:
		if s, ok := v.(sql.StringValue); ok {
			return s, string(s), nil
		}
	case Enum:
		if s, ok := v.(sql.StringValue); ok {
			for _, variant := range md.Type.Variants {
				if variant == string(s) {
					return s, variant, nil
				}
			}
			return nil, "", sql.Errorf(sql.InvalidEnumValue,
				"Invalid value [%s]. Valid values: [%s]", string(s),
				strings.Join(md.Type.Variants, ", "))
		}
	default:
		panic(fmt.Sprintf("expected a valid property type; got %v", md.Type.Kind))
	}

	return nil, "", typeMismatch(md, v)
}
