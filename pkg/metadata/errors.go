package metadata

import "fmt"

// NoAccessorFoundError is returned when no accessor naming convention matches
// a field. A private field with no accessor cannot be read or written, so the
// condition is fatal for that field's mapping.
type NoAccessorFoundError struct {
	Class string
	Field string
}

func (e *NoAccessorFoundError) Error() string {
	return fmt.Sprintf("no accessor found for field %s of class %s", e.Field, e.Class)
}

// MissingAccessorError is returned by strict pair resolution when a specific
// expected accessor method is absent.
type MissingAccessorError struct {
	Class  string
	Method string
}

func (e *MissingAccessorError) Error() string {
	return fmt.Sprintf("class %s must declare method %s", e.Class, e.Method)
}

// InvalidEmbeddableError is returned when an embedded field's target class
// carries neither an ObjectType nor a NestedType marker.
type InvalidEmbeddableError struct {
	Class string
}

func (e *InvalidEmbeddableError) Error() string {
	return fmt.Sprintf("embeddable class %s must declare an object or nested storage mode", e.Class)
}

// InvalidFieldVisibilityError is returned for field visibilities the engine
// cannot classify (static, abstract).
type InvalidFieldVisibilityError struct {
	Class      string
	Field      string
	Visibility Visibility
}

func (e *InvalidFieldVisibilityError) Error() string {
	return fmt.Sprintf("field %s of class %s has unsupported visibility %s", e.Field, e.Class, e.Visibility)
}

// CyclicEmbeddingError is returned when embedded types form a cycle. The
// metadata graph must be acyclic for recursive resolution to terminate.
type CyclicEmbeddingError struct {
	Class string
}

func (e *CyclicEmbeddingError) Error() string {
	return fmt.Sprintf("cyclic embedding detected at class %s", e.Class)
}
