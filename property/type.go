package property

import (
	"fmt"
	"strings"
)

type Kind int

const (
	Boolean Kind = iota
	Integer
	Bigint
	Double
	Varchar
	Enum
)

var kindNames = [...]string{
	Boolean: "boolean",
	Integer: "integer",
	Bigint:  "bigint",
	Double:  "double",
	Varchar: "varchar",
	Enum:    "enum",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Type is the declared type of a session property. Variants is only used by Enum and lists
// the valid values in declaration order.
type Type struct {
	Kind     Kind
	Variants []string
}

var (
	BooleanType = Type{Kind: Boolean}
	IntegerType = Type{Kind: Integer}
	BigintType  = Type{Kind: Bigint}
	DoubleType  = Type{Kind: Double}
	VarcharType = Type{Kind: Varchar}
)

func EnumType(variants ...string) Type {
	return Type{Kind: Enum, Variants: variants}
}

func (t Type) String() string {
	if t.Kind == Enum {
		return fmt.Sprintf("enum(%s)", strings.Join(t.Variants, ", "))
	}
	return t.Kind.String()
}

// ParseType converts the name of a type, as used in property declarations, into a Type.
func ParseType(s string, variants []string) (Type, error) {
	switch strings.ToLower(s) {
	case "boolean", "bool":
		return BooleanType, nil
	case "integer", "int":
		return IntegerType, nil
	case "bigint":
		return BigintType, nil
	case "double":
		return DoubleType, nil
	case "varchar", "string":
		return VarcharType, nil
	case "enum":
		if len(variants) == 0 {
			return Type{}, fmt.Errorf("enum type requires at least one value")
		}
		seen := map[string]struct{}{}
		for _, v := range variants {
			if _, ok := seen[v]; ok {
				return Type{}, fmt.Errorf("enum type has duplicate value %s", v)
			}
			seen[v] = struct{}{}
		}
		return EnumType(variants...), nil
	}
	return Type{}, fmt.Errorf("unknown type %s", s)
}
