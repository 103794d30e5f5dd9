package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/quillblog/quill/internal/domain"
	"github.com/quillblog/quill/internal/port"
)

// CategoryService handles category CRUD. Mutations are admin-only; that is
// enforced at the middleware layer.
type CategoryService struct {
	categories port.CategoryStore
	posts      port.PostStore
}

// NewCategoryService constructs a CategoryService.
func NewCategoryService(categories port.CategoryStore, posts port.PostStore) *CategoryService {
	return &CategoryService{categories: categories, posts: posts}
}

// Slugify lowercases the name, drops everything but letters, digits, spaces
// and hyphens, and collapses separators into single hyphens.
func Slugify(name string) string {
	name = strings.ToLower(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLower(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '-':
			b.WriteRune('-')
		}
	}
	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}

// Create validates the name, generates a unique slug and persists the
// category. Slug collisions resolve by appending -1, -2, ...
func (s *CategoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Msg: "Category name is required"}
	}
	if len(name) < 2 {
		return nil, &ValidationError{Msg: "Category name must be at least 2 characters long"}
	}
	if len(name) > 100 {
		return nil, &ValidationError{Msg: "Category name cannot exceed 100 characters"}
	}

	slug := Slugify(name)
	if slug == "" {
		return nil, &ValidationError{Msg: "Invalid category name. Please use alphanumeric characters"}
	}

	exists, err := s.categories.CategoryNameExists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("check category exists: %w", err)
	}
	if exists {
		return nil, port.ErrDuplicate
	}

	base := slug
	for i := 1; ; i++ {
		taken, err := s.categories.SlugExists(ctx, slug)
		if err != nil {
			return nil, fmt.Errorf("check slug: %w", err)
		}
		if !taken {
			break
		}
		if i > 100 {
			return nil, fmt.Errorf("could not generate unique slug for %q", name)
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}

	cat, err := s.categories.CreateCategory(ctx, name, slug)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	slog.Info("category created", "category_id", cat.ID, "slug", cat.Slug)
	return cat, nil
}

// Get returns one category with its post counts.
func (s *CategoryService) Get(ctx context.Context, id int64) (*domain.Category, error) {
	return s.categories.FindCategoryByID(ctx, id)
}

// List returns all categories with post counts.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.ListCategories(ctx)
}

// Posts returns the published posts of a category.
func (s *CategoryService) Posts(ctx context.Context, id int64) ([]domain.Post, error) {
	if _, err := s.categories.FindCategoryByID(ctx, id); err != nil {
		return nil, err
	}
	return s.posts.ListPostsByCategory(ctx, id)
}

// Delete removes a category, handling its posts per strategy:
// "reassign_null" (default) uncategorizes them, "reassign" moves them to
// newCategoryID, "force_delete" deletes them.
func (s *CategoryService) Delete(ctx context.Context, id int64, strategy string, newCategoryID *int64) (int, error) {
	if strategy == "" {
		strategy = "reassign_null"
	}
	switch strategy {
	case "reassign_null", "force_delete":
	case "reassign":
		if newCategoryID == nil || *newCategoryID <= 0 {
			return 0, &ValidationError{Msg: "New category ID required for reassignment strategy"}
		}
		if _, err := s.categories.FindCategoryByID(ctx, *newCategoryID); err != nil {
			return 0, err
		}
	default:
		return 0, &ValidationError{Msg: "Unknown deletion strategy"}
	}

	affected, err := s.categories.DeleteCategory(ctx, id, strategy, newCategoryID)
	if err != nil {
		return 0, err
	}
	slog.Info("category deleted", "category_id", id, "strategy", strategy, "posts_affected", affected)
	return affected, nil
}
