package descriptors

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/omnipathdb/resctl/runtime/resources"
)

// DefaultTaxID is the NCBI taxonomy id assumed when a resource declares none (human).
const DefaultTaxID = 9606

// Base carries the arguments every descriptor kind accepts.
type Base struct {
	ResourceName string           `mapstructure:"name" json:"name"`
	InputMethod  string           `mapstructure:"input_method" json:"input_method"`
	InputArgs    map[string]any   `mapstructure:"input_args" json:"input_args,omitempty"`
	NcbiTaxID    int              `mapstructure:"ncbi_tax_id" json:"ncbi_tax_id"`
	Attrs        resources.Record `mapstructure:"resource_attrs" json:"-"`

	// Extra holds declared arguments the kind does not know about.
	Extra map[string]any `mapstructure:",remain" json:"extra,omitempty"`
}

// Name returns the resource name.
func (b *Base) Name() string { return b.ResourceName }

// ResourceAttrs returns the full record of the resource.
func (b *Base) ResourceAttrs() resources.Record { return b.Attrs }

// Method returns the dotted path of the function loading the data.
func (b *Base) Method() string { return b.InputMethod }

func (b *Base) validate() error {
	if b.ResourceName == "" {
		return fmt.Errorf("missing required argument %q", resources.NameKey)
	}
	if b.InputMethod == "" {
		return fmt.Errorf("missing required argument %q", "input_method")
	}
	if b.NcbiTaxID == 0 {
		b.NcbiTaxID = DefaultTaxID
	}
	return nil
}

// EnzymeSubstrateResource describes a source of enzyme-substrate relationships
// (kinase-substrate, phosphatase-substrate and similar PTM data).
type EnzymeSubstrateResource struct {
	Base             `mapstructure:",squash"`
	SubstrateIDTypes []string `mapstructure:"substrate_id_types" json:"substrate_id_types,omitempty"`
}

func (*EnzymeSubstrateResource) Category() string { return "enzyme_substrate" }

// InteractionResource describes a source of molecular interactions.
type InteractionResource struct {
	Base     `mapstructure:",squash"`
	Directed bool `mapstructure:"is_directed" json:"is_directed"`
	Signed   bool `mapstructure:"is_signed" json:"is_signed"`
}

func (*InteractionResource) Category() string { return "interaction" }

// ComplexResource describes a source of protein complexes.
type ComplexResource struct {
	Base          `mapstructure:",squash"`
	Stoichiometry bool `mapstructure:"stoichiometry" json:"stoichiometry"`
}

func (*ComplexResource) Category() string { return "complex" }

// AnnotationResource describes a source of entity annotations.
type AnnotationResource struct {
	Base       `mapstructure:",squash"`
	EntityType string `mapstructure:"entity_type" json:"entity_type"`
}

func (*AnnotationResource) Category() string { return "annotation" }

// IntercellResource describes a source of intercellular communication roles.
type IntercellResource struct {
	Base `mapstructure:",squash"`
	Role string `mapstructure:"role" json:"role,omitempty"`
}

func (*IntercellResource) Category() string { return "intercell" }

// NewEnzymeSubstrate builds an EnzymeSubstrateResource.
func NewEnzymeSubstrate(args resources.Spec) (resources.Descriptor, error) {
	d := &EnzymeSubstrateResource{}
	if err := decode(args, d, &d.Base); err != nil {
		return nil, err
	}
	return d, nil
}

// NewInteraction builds an InteractionResource.
func NewInteraction(args resources.Spec) (resources.Descriptor, error) {
	d := &InteractionResource{}
	if err := decode(args, d, &d.Base); err != nil {
		return nil, err
	}
	return d, nil
}

// NewComplex builds a ComplexResource.
func NewComplex(args resources.Spec) (resources.Descriptor, error) {
	d := &ComplexResource{}
	if err := decode(args, d, &d.Base); err != nil {
		return nil, err
	}
	return d, nil
}

// NewAnnotation builds an AnnotationResource. Entity type defaults to protein.
func NewAnnotation(args resources.Spec) (resources.Descriptor, error) {
	d := &AnnotationResource{}
	if err := decode(args, d, &d.Base); err != nil {
		return nil, err
	}
	if d.EntityType == "" {
		d.EntityType = "protein"
	}
	return d, nil
}

// NewIntercell builds an IntercellResource.
func NewIntercell(args resources.Spec) (resources.Descriptor, error) {
	d := &IntercellResource{}
	if err := decode(args, d, &d.Base); err != nil {
		return nil, err
	}
	return d, nil
}

// decode maps args onto out and validates the shared arguments in base,
// which must be embedded in out.
func decode(args resources.Spec, out any, base *Base) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(map[string]any(args)); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return base.validate()
}
