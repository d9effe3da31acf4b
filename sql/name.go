package sql

import (
	"fmt"
)

// QualifiedName names a session property: either a system property, or a property which
// belongs to a catalog.
type QualifiedName struct {
	Catalog  string
	Property string
}

func (qn QualifiedName) String() string {
	if qn.Catalog == "" {
		return qn.Property
	}
	return fmt.Sprintf("%s.%s", qn.Catalog, qn.Property)
}

func (qn QualifiedName) IsQualified() bool {
	return qn.Catalog != ""
}

// MakeQualifiedName builds a name from one or two parts.
func MakeQualifiedName(parts ...string) (QualifiedName, error) {
	switch len(parts) {
	case 1:
		if parts[0] != "" {
			return QualifiedName{Property: parts[0]}, nil
		}
	case 2:
		if parts[0] != "" && parts[1] != "" {
			return QualifiedName{Catalog: parts[0], Property: parts[1]}, nil
		}
	}
	return QualifiedName{}, fmt.Errorf("invalid session property name: %v", parts)
}
