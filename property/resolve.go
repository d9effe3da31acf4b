package property

import (
	"github.com/leftmike/setsession/sql"
)

// Resolve finds the metadata for qn and returns it along with the key used to store the value
// of the property in a session.
func Resolve(lkup Lookup, qn sql.QualifiedName) (*Metadata, string, error) {
	var md *Metadata
	var ok bool

	if qn.IsQualified() {
		if !lkup.CatalogExists(qn.Catalog) {
			return nil, "", sql.Errorf(sql.CatalogNotFound, "catalog %s does not exist",
				qn.Catalog)
		}
		md, ok = lkup.LookupCatalogProperty(qn.Catalog, qn.Property)
	} else {
		md, ok = lkup.LookupSystemProperty(qn.Property)
	}
	if !ok {
		return nil, "", sql.Errorf(sql.PropertyNotFound, "session property %s does not exist", qn)
	}
	return md, qn.String(), nil
}
