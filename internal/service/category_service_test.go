package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillblog/quill/internal/domain"
	"github.com/quillblog/quill/internal/port"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Tech", "tech"},
		{"spaces", "Web Development", "web-development"},
		{"mixed punctuation", "Go & Friends!", "go-friends"},
		{"collapsed separators", "a  -  b", "a-b"},
		{"leading and trailing", " -hello- ", "hello"},
		{"digits kept", "Top 10 Tips", "top-10-tips"},
		{"nothing usable", "!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestCategoryCreate_Validation(t *testing.T) {
	svc := NewCategoryService(newFakeCategories(), newFakePosts())
	ctx := context.Background()

	for _, name := range []string{"", "  ", "x", strings.Repeat("a", 101), "!!!"} {
		_, err := svc.Create(ctx, name)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr, "name %q", name)
	}
}

func TestCategoryCreate_GeneratesSlug(t *testing.T) {
	svc := NewCategoryService(newFakeCategories(), newFakePosts())

	cat, err := svc.Create(context.Background(), "Web Development")
	require.NoError(t, err)
	assert.Equal(t, "Web Development", cat.Name)
	assert.Equal(t, "web-development", cat.Slug)
}

func TestCategoryCreate_DuplicateName(t *testing.T) {
	cats := newFakeCategories(&domain.Category{Name: "Tech", Slug: "tech"})
	svc := NewCategoryService(cats, newFakePosts())

	_, err := svc.Create(context.Background(), "Tech")
	assert.ErrorIs(t, err, port.ErrDuplicate)
}

func TestCategoryCreate_SlugConflictSuffix(t *testing.T) {
	// distinct name, same slug: "Go Lang" vs existing "go-lang"
	cats := newFakeCategories(&domain.Category{Name: "Go-Lang", Slug: "go-lang"})
	svc := NewCategoryService(cats, newFakePosts())

	cat, err := svc.Create(context.Background(), "Go  Lang")
	require.NoError(t, err)
	assert.Equal(t, "go-lang-1", cat.Slug)
}

func TestCategoryPosts_UnknownCategory(t *testing.T) {
	svc := NewCategoryService(newFakeCategories(), newFakePosts())

	_, err := svc.Posts(context.Background(), 42)
	assert.ErrorIs(t, err, port.ErrCategoryNotFound)
}

func TestCategoryPosts_OnlyPublished(t *testing.T) {
	catID := int64(1)
	cats := newFakeCategories(&domain.Category{Name: "Tech", Slug: "tech"})
	posts := newFakePosts(
		&domain.Post{Title: "live", AuthorID: 1, CategoryID: &catID, Status: domain.PostStatusPublished},
		&domain.Post{Title: "hidden", AuthorID: 1, CategoryID: &catID, Status: domain.PostStatusDraft},
	)
	svc := NewCategoryService(cats, posts)

	got, err := svc.Posts(context.Background(), catID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "live", got[0].Title)
}

func TestCategoryDelete_Strategies(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown strategy", func(t *testing.T) {
		svc := NewCategoryService(newFakeCategories(&domain.Category{Name: "Tech", Slug: "tech"}), newFakePosts())
		_, err := svc.Delete(ctx, 1, "explode", nil)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("reassign without target", func(t *testing.T) {
		svc := NewCategoryService(newFakeCategories(&domain.Category{Name: "Tech", Slug: "tech"}), newFakePosts())
		_, err := svc.Delete(ctx, 1, "reassign", nil)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("reassign to missing target", func(t *testing.T) {
		svc := NewCategoryService(newFakeCategories(&domain.Category{Name: "Tech", Slug: "tech"}), newFakePosts())
		target := int64(99)
		_, err := svc.Delete(ctx, 1, "reassign", &target)
		assert.ErrorIs(t, err, port.ErrCategoryNotFound)
	})

	t.Run("default reassign_null", func(t *testing.T) {
		cats := newFakeCategories(&domain.Category{Name: "Tech", Slug: "tech"})
		svc := NewCategoryService(cats, newFakePosts())
		_, err := svc.Delete(ctx, 1, "", nil)
		require.NoError(t, err)
		_, err = svc.Get(ctx, 1)
		assert.ErrorIs(t, err, port.ErrCategoryNotFound)
	})
}
