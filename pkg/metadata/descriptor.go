// Package metadata defines the type descriptors and annotations the mapping
// engine consumes, along with property enumeration and accessor resolution.
// Descriptors are produced once by an external reflection provider and are
// immutable from the engine's point of view.
package metadata

// Visibility classifies how a declared field can be reached.
type Visibility int

const (
	VisibilityPublic Visibility = iota
	VisibilityProtected
	VisibilityPrivate
	VisibilityStatic
	VisibilityAbstract
)

// String returns the string representation of the visibility
func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityProtected:
		return "protected"
	case VisibilityPrivate:
		return "private"
	case VisibilityStatic:
		return "static"
	case VisibilityAbstract:
		return "abstract"
	default:
		return "unknown"
	}
}

// TypeDescriptor is an opaque handle to a mapped class: its name, declared
// properties, inheritance parent and method set. The engine only reads it.
type TypeDescriptor struct {
	Name        string // short class name
	Namespace   string // qualifier, empty for root types
	Parent      *TypeDescriptor
	Trait       bool // traits are never indexable
	Properties  []*PropertyDescriptor
	Methods     []string
	Annotations []Annotation // class-level annotations
}

// FullName returns the namespace-qualified class name.
func (t *TypeDescriptor) FullName() string {
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "." + t.Name
}

// HasMethod reports whether the class declares a method with the exact name.
// Method sets are small; a linear scan beats maintaining a lookup map.
func (t *TypeDescriptor) HasMethod(name string) bool {
	for _, m := range t.Methods {
		if m == name {
			return true
		}
	}
	return false
}

// PropertyDescriptor describes one declared field of a class.
type PropertyDescriptor struct {
	Name        string // declared field identifier
	Visibility  Visibility
	Type        string       // declared scalar type ("string", "bool", ...)
	Annotations []Annotation // property-level annotations
}

// IsBoolean reports whether the declared type is boolean. Boolean fields
// additionally accept Is-form getters during accessor resolution.
func (p *PropertyDescriptor) IsBoolean() bool {
	return p.Type == "bool" || p.Type == "boolean"
}
