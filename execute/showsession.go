package execute

import (
	"github.com/leftmike/setsession/property"
)

// PropertyGetter is the part of a session which SHOW SESSION reads.
type PropertyGetter interface {
	Property(key string) (string, bool)
}

type ShowSession struct {
	Hidden bool
}

func (stmt *ShowSession) String() string {
	if stmt.Hidden {
		return "SHOW SESSION ALL"
	}
	return "SHOW SESSION"
}

func (_ *ShowSession) Columns() []string {
	return []string{"name", "value", "default", "type", "description"}
}

func showRow(key string, md *property.Metadata, pg PropertyGetter) []string {
	def, _ := md.DefaultString()
	val, ok := pg.Property(key)
	if !ok {
		val = def
	}
	return []string{key, val, def, md.Type.String(), md.Description}
}

// Rows returns one row per property: system properties first, then the properties of each
// catalog; hidden properties are only included if stmt.Hidden is set.
func (stmt *ShowSession) Rows(reg *property.Registry, pg PropertyGetter) [][]string {
	var rows [][]string
	for _, md := range reg.SystemProperties() {
		if md.Hidden && !stmt.Hidden {
			continue
		}
		rows = append(rows, showRow(md.Name, md, pg))
	}

	for _, catalog := range reg.Catalogs() {
		for _, md := range reg.CatalogProperties(catalog) {
			if md.Hidden && !stmt.Hidden {
				continue
			}
			rows = append(rows, showRow(catalog+"."+md.Name, md, pg))
		}
	}
	return rows
}
