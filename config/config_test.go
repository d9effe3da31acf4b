package config_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/leftmike/setsession/config"
	"github.com/leftmike/setsession/property"
	"github.com/leftmike/setsession/sql"
	"github.com/leftmike/setsession/system"
)

const fooCatalog = `
log-level = "debug"

property "foo" {
	type = "varchar"
	description = "test property"
	default = "foo_default"
}

property "internal" {
	type = "boolean"
	default = true
	hidden = true
}

catalog "foo" {
	property "bar" {
		type = "varchar"
		description = "test property"
	}

	property "positive_property" {
		type = "integer"
		description = "property that should be positive"
		min = 0
		message = "property must be positive"
	}

	property "size_property" {
		type = "enum"
		description = "size enum property"
		values = ["SMALL", "MEDIUM", "LARGE"]
		default = "MEDIUM"
	}

	property "ratio" {
		type = "double"
		min = 0
		max = 1.5
	}
}

catalog "empty" {}
`

func TestLoad(t *testing.T) {
	reg := property.NewRegistry()
	vars, err := config.Load(reg, fooCatalog)
	if err != nil {
		t.Fatalf("Load() failed with %s", err)
	}
	if len(vars) != 1 || vars["log-level"] != "debug" {
		t.Errorf("Load() got %v for variables", vars)
	}

	cases := []struct {
		catalog string
		name    string
		typ     string
		def     string
		hidden  bool
	}{
		{name: "foo", typ: "varchar", def: "foo_default"},
		{name: "internal", typ: "boolean", def: "true", hidden: true},
		{catalog: "foo", name: "bar", typ: "varchar"},
		{catalog: "foo", name: "positive_property", typ: "integer"},
		{catalog: "foo", name: "size_property", typ: "enum(SMALL, MEDIUM, LARGE)",
			def: "MEDIUM"},
		{catalog: "foo", name: "ratio", typ: "double"},
	}

	for _, c := range cases {
		var md *property.Metadata
		var ok bool
		if c.catalog == "" {
			md, ok = reg.LookupSystemProperty(c.name)
		} else {
			md, ok = reg.LookupCatalogProperty(c.catalog, c.name)
		}
		if !ok {
			t.Errorf("Lookup(%s, %s) failed", c.catalog, c.name)
			continue
		}
		if md.Type.String() != c.typ {
			t.Errorf("Lookup(%s, %s).Type got %s want %s", c.catalog, c.name, md.Type, c.typ)
		}
		def, _ := md.DefaultString()
		if def != c.def {
			t.Errorf("Lookup(%s, %s).DefaultString() got %s want %s", c.catalog, c.name, def,
				c.def)
		}
		if md.Hidden != c.hidden {
			t.Errorf("Lookup(%s, %s).Hidden got %v want %v", c.catalog, c.name, md.Hidden,
				c.hidden)
		}
	}

	if !reg.CatalogExists("empty") {
		t.Errorf("CatalogExists(empty) got false want true")
	}
	if len(reg.CatalogProperties("empty")) != 0 {
		t.Errorf("CatalogProperties(empty) got %v want none", reg.CatalogProperties("empty"))
	}

	positive, _ := reg.LookupCatalogProperty("foo", "positive_property")
	ratio, _ := reg.LookupCatalogProperty("foo", "ratio")
	validations := []struct {
		md  *property.Metadata
		v   sql.Value
		msg string
	}{
		{md: positive, v: sql.Int64Value(0)},
		{md: positive, v: sql.Int64Value(2)},
		{md: positive, v: sql.Int64Value(-1), msg: "property must be positive"},
		{md: ratio, v: sql.Float64Value(1.5)},
		{md: ratio, v: sql.Float64Value(2), msg: "value must be at most 1.5"},
		{md: ratio, v: sql.Float64Value(-0.5), msg: "value must be at least 0"},
	}

	for _, c := range validations {
		_, err := property.Coerce(c.md, c.v)
		if c.msg == "" {
			if err != nil {
				t.Errorf("Coerce(%s, %s) failed with %s", c.md.Name, c.v, err)
			}
		} else if err == nil {
			t.Errorf("Coerce(%s, %s) did not fail", c.md.Name, c.v)
		} else if err.Error() != c.msg {
			t.Errorf("Coerce(%s, %s) got %s want %s", c.md.Name, c.v, err, c.msg)
		}
	}
}

func TestLoadFail(t *testing.T) {
	fails := []string{
		`property "a" {`,
		`property "a" {}`,
		`property "a" { type = "unknown" }`,
		`property "a" { type = "enum" }`,
		`property "a" { type = "enum" values = ["X", "X"] }`,
		`property "a" { type = "varchar" values = ["X"] }`,
		`property "a" { type = "varchar" min = 1 }`,
		`property "a" { type = "integer" message = "must be positive" }`,
		`property "a" { type = "integer" min = "zero" }`,
		`property "a" { type = "integer" default = "abc" }`,
		`property "a" { type = "integer" default = 1 } property "a" { type = "integer" }`,
		`property "a" { type = "boolean" color = "red" }`,
		`catalog "c" { property "a" { type = "enum" values = ["X"] default = "Y" } }`,
		`catalog "c" { owner = "me" }`,
	}

	for _, f := range fails {
		_, err := config.Load(property.NewRegistry(), f)
		if err == nil {
			t.Errorf("Load(%q) did not fail", f)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "config_test")
	if err != nil {
		t.Fatalf("TempDir() failed with %s", err)
	}
	defer os.RemoveAll(dir)

	filename := filepath.Join(dir, "setsession.hcl")
	err = ioutil.WriteFile(filename, []byte(fooCatalog), 0666)
	if err != nil {
		t.Fatalf("WriteFile(%s) failed with %s", filename, err)
	}

	reg := property.NewRegistry()
	_, err = config.LoadFile(reg, filename)
	if err != nil {
		t.Fatalf("LoadFile(%s) failed with %s", filename, err)
	}
	if _, ok := reg.LookupCatalogProperty("foo", "size_property"); !ok {
		t.Errorf("LookupCatalogProperty(foo, size_property) failed")
	}

	_, err = config.LoadFile(property.NewRegistry(), filepath.Join(dir, "missing.hcl"))
	if err == nil {
		t.Errorf("LoadFile(missing.hcl) did not fail")
	}
}

func TestLoadErrorMessage(t *testing.T) {
	cases := []struct {
		src string
		msg string
	}{
		{
			src: `
catalog "c" {
	property "a" {
		type = "unknown"
	}
}`,
			msg: "config: catalog c: property a: unknown type unknown",
		},
		{
			src: `
property "a" {
	type = "varchar"
	min = 1
}`,
			msg: "config: property a: min and max require a numeric type",
		},
		{
			src: `
property "a" {
	type = "integer"
	min = "zero"
}`,
			msg: "config: property a: min: expected a number; got zero",
		},
	}

	for _, c := range cases {
		_, err := config.Load(property.NewRegistry(), c.src)
		if err == nil {
			t.Errorf("Load(%s) did not fail", c.src)
		} else if err.Error() != c.msg {
			t.Errorf("Load(%s) got %s want %s", c.src, err, c.msg)
		}
	}
}

func TestLoadSystemRegistry(t *testing.T) {
	reg := system.NewRegistry()
	_, err := config.Load(reg, `
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
`)
	if err != nil {
		t.Fatalf("Load() failed with %s", err)
	}
	if _, ok := reg.LookupSystemProperty("query_max_memory"); !ok {
		t.Errorf("LookupSystemProperty(query_max_memory) failed")
	}
	if _, ok := reg.LookupCatalogProperty("foo", "positive_property"); !ok {
		t.Errorf("LookupCatalogProperty(foo, positive_property) failed")
	}

	_, err = config.Load(reg, `
catalog "foo" {
	property "positive_property" {
		type = "integer"
	}
}
`)
	want := "config: catalog foo: property positive_property already registered"
	if err == nil {
		t.Errorf("Load(foo.positive_property) did not fail")
	} else if err.Error() != want {
		t.Errorf("Load(foo.positive_property) got %s want %s", err, want)
	}
}

func TestLoadFailUnchanged(t *testing.T) {
	cases := []string{
		`
catalog "extra" {
	property "ok" {
		type = "varchar"
	}
	property "bad" {
		type = "unknown"
	}
}
`,
		`
property "extra" {
	type = "varchar"
}

property "query_max_run_time" {
	type = "varchar"
	default = "100d"
}
`,
		`
property "extra" {
	type = "varchar"
}

catalog "extra" {
	property "bad" {
		type = "integer"
		default = "abc"
	}
}
`,
	}

	for _, src := range cases {
		reg := system.NewRegistry()
		want := len(reg.SystemProperties())

		_, err := config.Load(reg, src)
		if err == nil {
			t.Errorf("Load(%s) did not fail", src)
			continue
		}
		if got := len(reg.SystemProperties()); got != want {
			t.Errorf("Load(%s) got %d system properties want %d", src, got, want)
		}
		if _, ok := reg.LookupSystemProperty("extra"); ok {
			t.Errorf("Load(%s) added system property extra", src)
		}
		if reg.CatalogExists("extra") {
			t.Errorf("Load(%s) added catalog extra", src)
		}
	}
}
