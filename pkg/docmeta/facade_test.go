package docmeta

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/searchmap/searchmap/pkg/cache"
	"github.com/searchmap/searchmap/pkg/metadata"
)

func newTestFacade() *Facade {
	return New(metadata.NewStaticReader(), cache.NewMemoryCache(), Config{})
}

// blogPost returns an indexable fixture with an identifier, a private field
// and an embedded collection.
func blogPost() *metadata.TypeDescriptor {
	comment := &metadata.TypeDescriptor{
		Name:        "Comment",
		Namespace:   "blog",
		Annotations: []metadata.Annotation{&metadata.NestedTypeAnnotation{}},
		Properties: []*metadata.PropertyDescriptor{
			{Name: "message", Type: "string", Annotations: []metadata.Annotation{
				&metadata.PropertyAnnotation{Type: "text"},
			}},
		},
	}

	return &metadata.TypeDescriptor{
		Name:      "Post",
		Namespace: "blog",
		Methods:   []string{"GetId", "GetTitle", "SetTitle"},
		Annotations: []metadata.Annotation{
			&metadata.IndexAnnotation{
				DefaultIndex: true,
				Settings:     map[string]interface{}{"number_of_shards": 1},
			},
		},
		Properties: []*metadata.PropertyDescriptor{
			{Name: "id", Type: "string", Visibility: metadata.VisibilityPrivate, Annotations: []metadata.Annotation{
				&metadata.IDAnnotation{Name: "_id"},
			}},
			{Name: "title", Type: "string", Visibility: metadata.VisibilityPrivate, Annotations: []metadata.Annotation{
				&metadata.PropertyAnnotation{Type: "text"},
			}},
			{Name: "comments", Annotations: []metadata.Annotation{
				&metadata.EmbeddedAnnotation{Class: comment, Multiple: true},
			}},
		},
	}
}

func TestIndexAliasOf(t *testing.T) {
	f := newTestFacade()

	assert.Equal(t, "post", f.IndexAliasOf(blogPost()), "defaults to snake_case of the class name")

	explicit := &metadata.TypeDescriptor{
		Name:        "Post",
		Annotations: []metadata.Annotation{&metadata.IndexAnnotation{Alias: "blog_posts"}},
	}
	assert.Equal(t, "blog_posts", f.IndexAliasOf(explicit))

	assert.Equal(t, "", f.IndexAliasOf(&metadata.TypeDescriptor{Name: "Plain"}))
}

func TestIsDefaultIndex(t *testing.T) {
	f := newTestFacade()

	assert.True(t, f.IsDefaultIndex(blogPost()))
	assert.False(t, f.IsDefaultIndex(&metadata.TypeDescriptor{Name: "Plain"}))
}

func TestIndexMetadataOf(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()

	md, err := f.IndexMetadataOf(ctx, blogPost())
	require.NoError(t, err)
	require.False(t, md.Empty())

	assert.Equal(t, map[string]interface{}{"number_of_shards": 1}, md.Settings)

	tm, ok := md.Mappings["post"]
	require.True(t, ok, "mappings are keyed by the wire type name")
	assert.Equal(t, []string{"title", "comments"}, tm.Properties.Keys())

	require.NotNil(t, md.Aliases)
	assert.Equal(t, "post", md.Aliases.Type)
	assert.Equal(t, "blog", md.Aliases.Namespace)
	assert.Equal(t, "Post", md.Aliases.Class)
	assert.Contains(t, md.Aliases.MetaFields, "_id")

	idRec, ok := md.Aliases.Aliases.Get("_id")
	require.True(t, ok)
	assert.True(t, idRec.Identifier)
	assert.Equal(t, "GetId", idRec.Getter)

	titleRec, ok := md.Aliases.Aliases.Get("title")
	require.True(t, ok)
	assert.Equal(t, "GetTitle", titleRec.Getter)
	assert.Equal(t, "SetTitle", titleRec.Setter)
}

func TestIndexMetadataOf_ExplicitTypeName(t *testing.T) {
	f := newTestFacade()

	desc := &metadata.TypeDescriptor{
		Name:        "Post",
		Annotations: []metadata.Annotation{&metadata.IndexAnnotation{TypeName: "article"}},
	}

	md, err := f.IndexMetadataOf(context.Background(), desc)
	require.NoError(t, err)
	assert.Contains(t, md.Mappings, "article")
}

func TestIndexMetadataOf_NonIndexable(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()

	// A class without an Index annotation yields empty metadata, no error.
	md, err := f.IndexMetadataOf(ctx, &metadata.TypeDescriptor{Name: "Plain"})
	require.NoError(t, err)
	assert.True(t, md.Empty())
	assert.Nil(t, md.Settings)
	assert.Nil(t, md.Aliases)

	// So does a trait, even if annotated.
	trait := &metadata.TypeDescriptor{
		Name:        "Timestamped",
		Trait:       true,
		Annotations: []metadata.Annotation{&metadata.IndexAnnotation{}},
	}
	md, err = f.IndexMetadataOf(ctx, trait)
	require.NoError(t, err)
	assert.True(t, md.Empty())
}

func TestPropertyMetadataOf(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()

	table, err := f.PropertyMetadataOf(ctx, blogPost())
	require.NoError(t, err)

	rec, ok := table.Get("comments")
	require.True(t, ok)
	assert.True(t, rec.Embedded)
	require.NotNil(t, rec.Aliases)
	_, ok = rec.Aliases.Get("message")
	assert.True(t, ok)

	// Trait yields an empty table.
	table, err = f.PropertyMetadataOf(ctx, &metadata.TypeDescriptor{Name: "T", Trait: true})
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestDocumentNamespaceFor(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()

	_, err := f.IndexMetadataOf(ctx, blogPost())
	require.NoError(t, err)

	ns, err := f.DocumentNamespaceFor(ctx, "post")
	require.NoError(t, err)
	assert.Equal(t, "blog", ns)

	ns, err = f.DocumentNamespaceFor(ctx, "unknown")
	require.NoError(t, err)
	assert.Equal(t, "", ns)
}

func TestIsIndexable(t *testing.T) {
	f := newTestFacade()

	assert.True(t, f.IsIndexable(blogPost()))
	assert.False(t, f.IsIndexable(&metadata.TypeDescriptor{Name: "Plain"}))
}
