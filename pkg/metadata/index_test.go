package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertiesOf_InheritanceShadowing(t *testing.T) {
	parent := &TypeDescriptor{
		Name: "Person",
		Properties: []*PropertyDescriptor{
			{Name: "name", Type: "string"},
			{Name: "age", Type: "int"},
		},
	}
	child := &TypeDescriptor{
		Name:   "Employee",
		Parent: parent,
		Properties: []*PropertyDescriptor{
			{Name: "name", Type: "text"}, // shadows Person.name
			{Name: "salary", Type: "float"},
		},
	}

	ix := NewIndex()
	props := ix.PropertiesOf(child)

	require.Len(t, props, 3)

	// Child fields first, then unshadowed ancestor fields.
	assert.Equal(t, "name", props[0].Name)
	assert.Equal(t, "text", props[0].Type, "child declaration shadows the parent's")
	assert.Equal(t, "salary", props[1].Name)
	assert.Equal(t, "age", props[2].Name)
}

func TestPropertiesOf_RecursesToRootAncestor(t *testing.T) {
	root := &TypeDescriptor{
		Name:       "Base",
		Properties: []*PropertyDescriptor{{Name: "id", Type: "string"}},
	}
	mid := &TypeDescriptor{
		Name:       "Middle",
		Parent:     root,
		Properties: []*PropertyDescriptor{{Name: "label", Type: "string"}},
	}
	leaf := &TypeDescriptor{
		Name:       "Leaf",
		Parent:     mid,
		Properties: []*PropertyDescriptor{{Name: "value", Type: "string"}},
	}

	ix := NewIndex()
	props := ix.PropertiesOf(leaf)

	require.Len(t, props, 3)
	assert.Equal(t, "value", props[0].Name)
	assert.Equal(t, "label", props[1].Name)
	assert.Equal(t, "id", props[2].Name)
}

func TestPropertiesOf_Memoized(t *testing.T) {
	desc := &TypeDescriptor{
		Name:       "Doc",
		Properties: []*PropertyDescriptor{{Name: "title", Type: "string"}},
	}

	ix := NewIndex()
	first := ix.PropertiesOf(desc)

	// Mutating the descriptor after the first call must not change the
	// memoized result.
	desc.Properties = append(desc.Properties, &PropertyDescriptor{Name: "extra"})

	second := ix.PropertiesOf(desc)
	require.Len(t, second, 1)
	assert.Equal(t, first, second)

	ix.Clear()
	assert.Len(t, ix.PropertiesOf(desc), 2)
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "app.Post", (&TypeDescriptor{Name: "Post", Namespace: "app"}).FullName())
	assert.Equal(t, "Post", (&TypeDescriptor{Name: "Post"}).FullName())
}
