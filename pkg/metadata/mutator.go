package metadata

import (
	"strings"

	"github.com/searchmap/searchmap/internal/util/strcase"
)

// Accessor resolution is an ordered, pure string-matching policy over the
// class's declared method set. First match wins; no convention matching is
// a static authoring defect and fails loudly.

// GetterFor resolves the getter method name for a field. Conventions, in
// order: a method named exactly like the field, Get<Name>, Is<Name>; when the
// field name contains a word separator, the Get/Is forms are retried with the
// camelCase conversion of the name.
func GetterFor(t *TypeDescriptor, field string) (string, error) {
	candidates := []string{
		field,
		"Get" + strcase.UpperFirst(field),
		"Is" + strcase.UpperFirst(field),
	}
	if hasSeparator(field) {
		camel := strcase.ToCamelCase(field)
		candidates = append(candidates,
			"Get"+strcase.UpperFirst(camel),
			"Is"+strcase.UpperFirst(camel),
		)
	}

	for _, name := range candidates {
		if t.HasMethod(name) {
			return name, nil
		}
	}
	return "", &NoAccessorFoundError{Class: t.FullName(), Field: field}
}

// SetterFor resolves the setter method name for a field: Set<Name>, retried
// with the camelCase conversion when the field name contains a separator.
func SetterFor(t *TypeDescriptor, field string) (string, error) {
	candidates := []string{"Set" + strcase.UpperFirst(field)}
	if hasSeparator(field) {
		candidates = append(candidates, "Set"+strcase.UpperFirst(strcase.ToCamelCase(field)))
	}

	for _, name := range candidates {
		if t.HasMethod(name) {
			return name, nil
		}
	}
	return "", &NoAccessorFoundError{Class: t.FullName(), Field: field}
}

// MutatorPair holds the resolved accessor pair for a non-public field.
type MutatorPair struct {
	Getter string
	Setter string
}

// ResolveMutatorPair is the strict variant used during alias resolution: both
// getter and setter must exist together. Boolean fields additionally accept
// the Is<Name> getter form. Either missing half fails with
// MissingAccessorError naming the exact expected method.
func ResolveMutatorPair(t *TypeDescriptor, p *PropertyDescriptor) (MutatorPair, error) {
	getter, err := resolveStrictGetter(t, p)
	if err != nil {
		return MutatorPair{}, err
	}

	setter := "Set" + pascalName(p.Name)
	if !t.HasMethod(setter) {
		return MutatorPair{}, &MissingAccessorError{Class: t.FullName(), Method: setter}
	}

	return MutatorPair{Getter: getter, Setter: setter}, nil
}

// ResolveStrictGetter resolves only the getter half under strict rules. Used
// for identifier fields, which are read but never written back.
func ResolveStrictGetter(t *TypeDescriptor, p *PropertyDescriptor) (string, error) {
	return resolveStrictGetter(t, p)
}

func resolveStrictGetter(t *TypeDescriptor, p *PropertyDescriptor) (string, error) {
	name := pascalName(p.Name)

	getter := "Get" + name
	if t.HasMethod(getter) {
		return getter, nil
	}
	if p.IsBoolean() {
		if isForm := "Is" + name; t.HasMethod(isForm) {
			return isForm, nil
		}
	}
	return "", &MissingAccessorError{Class: t.FullName(), Method: getter}
}

// pascalName normalizes a field identifier into the accessor suffix form.
func pascalName(field string) string {
	if hasSeparator(field) {
		field = strcase.ToCamelCase(field)
	}
	return strcase.UpperFirst(field)
}

func hasSeparator(field string) bool {
	return strings.ContainsAny(field, "_-")
}
