// Package descriptors provides the default family of descriptor kinds.
// Importing it registers every kind in resources.DefaultKinds.
package descriptors

import "github.com/omnipathdb/resctl/runtime/resources"

type kind struct {
	typeName string
	ctor     resources.Constructor
}

var kinds = []kind{
	{"EnzymeSubstrateResource", NewEnzymeSubstrate},
	{"InteractionResource", NewInteraction},
	{"ComplexResource", NewComplex},
	{"AnnotationResource", NewAnnotation},
	{"IntercellResource", NewIntercell},
}

func init() {
	if err := Register(resources.DefaultKinds); err != nil {
		panic(err)
	}
}

// Register adds every kind of this family to table.
func Register(table *resources.KindTable) error {
	for _, k := range kinds {
		if err := table.Register(k.typeName, k.ctor); err != nil {
			return err
		}
	}
	return nil
}
