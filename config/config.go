package config

import (
	"io/ioutil"

	"github.com/hashicorp/hcl"
	"github.com/pkg/errors"

	"github.com/leftmike/setsession/property"
	"github.com/leftmike/setsession/sql"
)

/*
A config file declares session properties and may set other top level variables:

	log-level = "debug"

	property "query_max_memory" {
		type = "varchar"
		default = "20GB"
	}

	catalog "foo" {
		property "positive_property" {
			type = "integer"
			min = 0
			message = "property must be positive"
		}
	}
*/

type propertyDecl struct {
	Name        string      `hcl:",key"`
	Type        string      `hcl:"type"`
	Description string      `hcl:"description"`
	Default     interface{} `hcl:"default"`
	Hidden      bool        `hcl:"hidden"`
	Values      []string    `hcl:"values"`
	Min         interface{} `hcl:"min"`
	Max         interface{} `hcl:"max"`
	Message     string      `hcl:"message"`
	Unused      []string    `hcl:",unusedKeys"`
}

type catalogDecl struct {
	Name     string         `hcl:",key"`
	Property []propertyDecl `hcl:"property"`
	Unused   []string       `hcl:",unusedKeys"`
}

type file struct {
	Property []propertyDecl `hcl:"property"`
	Catalog  []catalogDecl  `hcl:"catalog"`
}

// Load adds the session properties declared in src to reg. The remaining top level
// variables are returned. If src is not valid, reg is not changed.
func Load(reg *property.Registry, src string) (map[string]interface{}, error) {
	var f file
	err := hcl.Decode(&f, src)
	if err != nil {
		return nil, errors.Wrap(err, "config")
	}

	scratch := property.NewRegistry()
	for _, pd := range f.Property {
		md, err := pd.metadata()
		if err != nil {
			return nil, errors.Wrap(err, "config")
		}
		if _, ok := reg.LookupSystemProperty(md.Name); ok {
			return nil, errors.Errorf("config: property %s already registered", md.Name)
		}
		err = scratch.AddSystemProperty(md)
		if err != nil {
			return nil, errors.Wrap(err, "config")
		}
	}

	for _, cd := range f.Catalog {
		if cd.Name == "" {
			return nil, errors.Errorf("config: catalog missing name")
		}
		if len(cd.Unused) > 0 {
			return nil, errors.Errorf("config: catalog %s: unexpected %v", cd.Name, cd.Unused)
		}

		scratch.AddCatalog(cd.Name)
		for _, pd := range cd.Property {
			md, err := pd.metadata()
			if err != nil {
				return nil, errors.Wrapf(err, "config: catalog %s", cd.Name)
			}
			if _, ok := reg.LookupCatalogProperty(cd.Name, md.Name); ok {
				return nil, errors.Errorf("config: catalog %s: property %s already registered",
					cd.Name, md.Name)
			}
			err = scratch.AddCatalogProperties(cd.Name, md)
			if err != nil {
				return nil, errors.Wrap(err, "config")
			}
		}
	}

	var vars map[string]interface{}
	err = hcl.Decode(&vars, src)
	if err != nil {
		return nil, errors.Wrap(err, "config")
	}
	delete(vars, "property")
	delete(vars, "catalog")

	err = merge(reg, scratch)
	if err != nil {
		return nil, errors.Wrap(err, "config")
	}
	return vars, nil
}

// merge adds everything in scratch to reg; none of it may already be in reg.
func merge(reg, scratch *property.Registry) error {
	for _, md := range scratch.SystemProperties() {
		err := reg.AddSystemProperty(md)
		if err != nil {
			return err
		}
	}
	for _, catalog := range scratch.Catalogs() {
		reg.AddCatalog(catalog)
		err := reg.AddCatalogProperties(catalog, scratch.CatalogProperties(catalog)...)
		if err != nil {
			return err
		}
	}
	return nil
}

// LoadFile reads filename and calls Load with its contents.
func LoadFile(reg *property.Registry, filename string) (map[string]interface{}, error) {
	b, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "config")
	}
	return Load(reg, string(b))
}

func (pd propertyDecl) metadata() (*property.Metadata, error) {
	if pd.Name == "" {
		return nil, errors.Errorf("property missing name")
	}
	if len(pd.Unused) > 0 {
		return nil, errors.Errorf("property %s: unexpected %v", pd.Name, pd.Unused)
	}
	if pd.Type == "" {
		return nil, errors.Errorf("property %s: missing type", pd.Name)
	}
	typ, err := property.ParseType(pd.Type, pd.Values)
	if err != nil {
		return nil, errors.Wrapf(err, "property %s", pd.Name)
	}
	if typ.Kind != property.Enum && len(pd.Values) > 0 {
		return nil, errors.Errorf("property %s: values is only allowed for enum",
			pd.Name)
	}

	md := &property.Metadata{
		Name:        pd.Name,
		Description: pd.Description,
		Type:        typ,
		Hidden:      pd.Hidden,
	}
	if pd.Default != nil {
		md.Default, err = toValue(pd.Default)
		if err != nil {
			return nil, errors.Wrapf(err, "property %s: default", pd.Name)
		}
	}

	if pd.Min != nil || pd.Max != nil {
		switch typ.Kind {
		case property.Integer, property.Bigint, property.Double:
		default:
			return nil, errors.Errorf("property %s: min and max require a numeric type",
				pd.Name)
		}

		var min, max sql.Value
		if pd.Min != nil {
			min, err = toNumber(pd.Min)
			if err != nil {
				return nil, errors.Wrapf(err, "property %s: min", pd.Name)
			}
		}
		if pd.Max != nil {
			max, err = toNumber(pd.Max)
			if err != nil {
				return nil, errors.Wrapf(err, "property %s: max", pd.Name)
			}
		}
		md.Validator = property.Range(min, max, pd.Message)
	} else if pd.Message != "" {
		return nil, errors.Errorf("property %s: message requires min or max", pd.Name)
	}

	return md, nil
}

func toValue(v interface{}) (sql.Value, error) {
	switch v := v.(type) {
	case bool:
		return sql.BoolValue(v), nil
	case int:
		return sql.Int64Value(v), nil
	case int64:
		return sql.Int64Value(v), nil
	case float64:
		return sql.Float64Value(v), nil
	case string:
		return sql.StringValue(v), nil
	}
	return nil, errors.Errorf("unexpected value %v", v)
}

func toNumber(v interface{}) (sql.Value, error) {
	switch v := v.(type) {
	case int:
		return sql.Int64Value(v), nil
	case int64:
		return sql.Int64Value(v), nil
	case float64:
		return sql.Float64Value(v), nil
	}
	return nil, errors.Errorf("expected a number; got %v", v)
}
