package property

import (
	"github.com/leftmike/setsession/sql"
)

// Validator checks a value after it has been converted to the declared type of a property.
// The message of a returned error is shown to the user as is.
type Validator func(v sql.Value) error

// Metadata describes a session property. It must not be modified once it has been added to
// a Registry.
type Metadata struct {
	Name        string
	Description string
	Type        Type
	Default     sql.Value // nil if the property has no default
	Validator   Validator
	Hidden      bool
}

// DefaultString returns the canonical form of the default value, if there is one.
func (md *Metadata) DefaultString() (string, bool) {
	if md.Default == nil {
		return "", false
	}
	s, err := Coerce(md, md.Default)
	if err != nil {
		return "", false
	}
	return s, true
}
