package metadata

// AnnotationKind discriminates the annotation variants.
type AnnotationKind int

const (
	KindIndex AnnotationKind = iota
	KindProperty
	KindEmbedded
	KindID
	KindExclude
	KindObjectType
	KindNestedType
)

// String returns the string representation of the annotation kind
func (k AnnotationKind) String() string {
	switch k {
	case KindIndex:
		return "index"
	case KindProperty:
		return "property"
	case KindEmbedded:
		return "embedded"
	case KindID:
		return "id"
	case KindExclude:
		return "exclude"
	case KindObjectType:
		return "object_type"
	case KindNestedType:
		return "nested_type"
	default:
		return "unknown"
	}
}

// Annotation is the tagged union over all annotation variants. Use Kind for
// dispatch or a type switch at the use site.
type Annotation interface {
	Kind() AnnotationKind
}

// IndexAnnotation marks a class as a top-level document type. At most one
// per indexable type.
type IndexAnnotation struct {
	Alias        string // explicit index alias; snake_case of class name when empty
	DefaultIndex bool
	Settings     map[string]interface{}
	TypeName     string // wire type name; snake_case of class name when empty
}

func (*IndexAnnotation) Kind() AnnotationKind { return KindIndex }

// PropertyAnnotation maps a scalar or complex field.
type PropertyAnnotation struct {
	Name                string // explicit wire name; snake_case of field name when empty
	Type                string // search-engine field type
	Fields              map[string]interface{} // multi-field sub-mappings
	Analyzer            string
	SearchAnalyzer      string
	SearchQuoteAnalyzer string
	Settings            map[string]interface{}
}

func (*PropertyAnnotation) Kind() AnnotationKind { return KindProperty }

// EmbeddedAnnotation references another mapped type. Multiple distinguishes a
// single nested object from a collection of them.
type EmbeddedAnnotation struct {
	Name     string
	Class    *TypeDescriptor
	Multiple bool
}

func (*EmbeddedAnnotation) Kind() AnnotationKind { return KindEmbedded }

// IDAnnotation marks the document identifier meta field.
type IDAnnotation struct {
	Name     string
	Settings map[string]interface{}
}

func (*IDAnnotation) Kind() AnnotationKind { return KindID }

// ExcludeAnnotation omits a wire field from the given serialization context.
type ExcludeAnnotation struct {
	Name    string
	Context string
}

func (*ExcludeAnnotation) Kind() AnnotationKind { return KindExclude }

// ObjectTypeAnnotation marks an embeddable class stored as "object".
type ObjectTypeAnnotation struct{}

func (*ObjectTypeAnnotation) Kind() AnnotationKind { return KindObjectType }

// NestedTypeAnnotation marks an embeddable class stored as "nested".
type NestedTypeAnnotation struct{}

func (*NestedTypeAnnotation) Kind() AnnotationKind { return KindNestedType }
