package ports

import "distviz/domain/distribution"

// Catalog is the read-only registry of distribution families
type Catalog interface {
	// Lookup returns the family registered under class and name, or a NOT_FOUND error
	Lookup(class distribution.Class, name string) (*distribution.Descriptor, error)

	// Names lists the family names of a class in display order
	Names(class distribution.Class) []string

	// All lists the families of a class in display order
	All(class distribution.Class) []*distribution.Descriptor
}
