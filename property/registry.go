package property

import (
	"fmt"
	"sort"

	"github.com/google/btree"
)

const btreeDegree = 8

type item struct {
	md *Metadata
}

func (it item) Less(than btree.Item) bool {
	return it.md.Name < than.(item).md.Name
}

// Lookup is how session property metadata is found; Registry implements it.
type Lookup interface {
	LookupSystemProperty(name string) (*Metadata, bool)
	LookupCatalogProperty(catalog, name string) (*Metadata, bool)
	CatalogExists(catalog string) bool
}

// Registry holds the system session properties and the session properties of each catalog.
// Properties within a namespace are kept ordered by name. A Registry is built before it is
// used; it is not safe to add properties while other goroutines are looking them up.
type Registry struct {
	system   *btree.BTree
	catalogs map[string]*btree.BTree
}

func NewRegistry() *Registry {
	return &Registry{
		system:   btree.New(btreeDegree),
		catalogs: map[string]*btree.BTree{},
	}
}

func addProperty(ns *btree.BTree, md *Metadata) error {
	if md.Name == "" {
		return fmt.Errorf("property: missing name")
	}
	if md.Type.Kind == Enum && len(md.Type.Variants) == 0 {
		return fmt.Errorf("property: %s: enum type requires at least one value", md.Name)
	}
	if ns.Has(item{md}) {
		return fmt.Errorf("property: %s already registered", md.Name)
	}
	if md.Default != nil {
		if _, err := Coerce(md, md.Default); err != nil {
			return fmt.Errorf("property: %s: invalid default: %s", md.Name, err)
		}
	}
	ns.ReplaceOrInsert(item{md})
	return nil
}

func (reg *Registry) AddSystemProperty(md *Metadata) error {
	return addProperty(reg.system, md)
}

// AddCatalog registers a catalog; it is not an error if the catalog is already registered.
func (reg *Registry) AddCatalog(catalog string) {
	if _, ok := reg.catalogs[catalog]; !ok {
		reg.catalogs[catalog] = btree.New(btreeDegree)
	}
}

func (reg *Registry) AddCatalogProperties(catalog string, mds ...*Metadata) error {
	reg.AddCatalog(catalog)
	ns := reg.catalogs[catalog]
	for _, md := range mds {
		err := addProperty(ns, md)
		if err != nil {
			return fmt.Errorf("%s (catalog %s)", err, catalog)
		}
	}
	return nil
}

func lookup(ns *btree.BTree, name string) (*Metadata, bool) {
	it := ns.Get(item{&Metadata{Name: name}})
	if it == nil {
		return nil, false
	}
	return it.(item).md, true
}

func (reg *Registry) LookupSystemProperty(name string) (*Metadata, bool) {
	return lookup(reg.system, name)
}

func (reg *Registry) LookupCatalogProperty(catalog, name string) (*Metadata, bool) {
	ns, ok := reg.catalogs[catalog]
	if !ok {
		return nil, false
	}
	return lookup(ns, name)
}

func (reg *Registry) CatalogExists(catalog string) bool {
	_, ok := reg.catalogs[catalog]
	return ok
}

func list(ns *btree.BTree) []*Metadata {
	mds := make([]*Metadata, 0, ns.Len())
	ns.Ascend(
		func(it btree.Item) bool {
			mds = append(mds, it.(item).md)
			return true
		})
	return mds
}

// SystemProperties returns the system properties ordered by name.
func (reg *Registry) SystemProperties() []*Metadata {
	return list(reg.system)
}

// Catalogs returns the names of the registered catalogs in sorted order.
func (reg *Registry) Catalogs() []string {
	catalogs := make([]string, 0, len(reg.catalogs))
	for catalog := range reg.catalogs {
		catalogs = append(catalogs, catalog)
	}
	sort.Strings(catalogs)
	return catalogs
}

// CatalogProperties returns the properties of catalog ordered by name.
func (reg *Registry) CatalogProperties(catalog string) []*Metadata {
	ns, ok := reg.catalogs[catalog]
	if !ok {
		return nil
	}
	return list(ns)
}
