package metadata

// Reader supplies annotation instances for classes and properties. The
// annotation syntax itself is parsed elsewhere; the engine only interprets
// the typed annotation values a Reader hands back.
type Reader interface {
	// ClassAnnotation returns the class-level annotation of the given kind,
	// or nil when the class does not carry one.
	ClassAnnotation(t *TypeDescriptor, kind AnnotationKind) Annotation

	// PropertyAnnotations returns all annotations attached to a property,
	// in declaration order.
	PropertyAnnotations(p *PropertyDescriptor) []Annotation

	// PropertyAnnotation returns the first property-level annotation of the
	// given kind, or nil.
	PropertyAnnotation(p *PropertyDescriptor, kind AnnotationKind) Annotation
}

// StaticReader reads annotations stored directly on the descriptors. It is
// the default Reader for providers that attach parsed annotations while
// building TypeDescriptors.
type StaticReader struct{}

// NewStaticReader creates a new static reader
func NewStaticReader() *StaticReader {
	return &StaticReader{}
}

// ClassAnnotation returns the first class-level annotation of the given kind.
func (r *StaticReader) ClassAnnotation(t *TypeDescriptor, kind AnnotationKind) Annotation {
	for _, a := range t.Annotations {
		if a.Kind() == kind {
			return a
		}
	}
	return nil
}

// PropertyAnnotations returns the property's annotations in declaration order.
func (r *StaticReader) PropertyAnnotations(p *PropertyDescriptor) []Annotation {
	return p.Annotations
}

// PropertyAnnotation returns the first property annotation of the given kind.
func (r *StaticReader) PropertyAnnotation(p *PropertyDescriptor, kind AnnotationKind) Annotation {
	for _, a := range p.Annotations {
		if a.Kind() == kind {
			return a
		}
	}
	return nil
}

// StorageModeOf resolves the storage mode of an embeddable class from its
// ObjectType/NestedType marker. An embeddable target must declare exactly one;
// a class with neither fails with InvalidEmbeddableError.
func StorageModeOf(r Reader, t *TypeDescriptor) (string, error) {
	if r.ClassAnnotation(t, KindObjectType) != nil {
		return "object", nil
	}
	if r.ClassAnnotation(t, KindNestedType) != nil {
		return "nested", nil
	}
	return "", &InvalidEmbeddableError{Class: t.FullName()}
}
