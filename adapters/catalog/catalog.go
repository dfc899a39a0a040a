package catalog

import (
	"fmt"

	"distviz/domain/distribution"
	"distviz/internal/errors"
	"distviz/ports"
)

var _ ports.Catalog = (*Catalog)(nil)

// Catalog is the static registry of distribution families, built once and read-only afterwards
type Catalog struct {
	byClass map[distribution.Class]map[string]*distribution.Descriptor
	order   map[distribution.Class][]string
}

// New builds the catalog from the declared continuous and discrete tables
func New() (*Catalog, error) {
	docs, err := loadDocs(docsYAML)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		byClass: make(map[distribution.Class]map[string]*distribution.Descriptor),
		order:   make(map[distribution.Class][]string),
	}

	tables := map[distribution.Class][]distribution.Definition{
		distribution.Continuous: continuousDefinitions(),
		distribution.Discrete:   discreteDefinitions(),
	}
	for _, class := range distribution.Classes {
		c.byClass[class] = make(map[string]*distribution.Descriptor)
		for _, def := range tables[class] {
			def.Class = class
			if _, dup := c.byClass[class][def.Name]; dup {
				return nil, errors.InternalError(fmt.Sprintf("duplicate %s distribution %q", class, def.Name))
			}
			d := distribution.NewDescriptor(def)
			d.Doc = docs[def.Name]
			c.byClass[class][def.Name] = d
			c.order[class] = append(c.order[class], def.Name)
		}
	}

	return c, nil
}

// MustNew is New for process start-up paths that cannot continue without a catalog
func MustNew() *Catalog {
	c, err := New()
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup resolves a family by class and name
func (c *Catalog) Lookup(class distribution.Class, name string) (*distribution.Descriptor, error) {
	families, ok := c.byClass[class]
	if !ok {
		return nil, errors.NotFound(fmt.Sprintf("distribution class %q", class))
	}
	d, ok := families[name]
	if !ok {
		return nil, errors.NotFound(fmt.Sprintf("%s distribution %q", class, name))
	}
	return d, nil
}

// Names lists the families of a class in declaration order
func (c *Catalog) Names(class distribution.Class) []string {
	names := make([]string, len(c.order[class]))
	copy(names, c.order[class])
	return names
}

// All returns every descriptor of a class in declaration order
func (c *Catalog) All(class distribution.Class) []*distribution.Descriptor {
	out := make([]*distribution.Descriptor, 0, len(c.order[class]))
	for _, name := range c.order[class] {
		out = append(out, c.byClass[class][name])
	}
	return out
}
