package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/quillblog/quill/internal/domain"
	"github.com/quillblog/quill/internal/port"
)

const categoryColumns = `c.id, c.name, c.slug, c.created_at,
	(SELECT COUNT(*) FROM posts WHERE category_id = c.id AND status = 'published'),
	(SELECT COUNT(*) FROM posts WHERE category_id = c.id)`

// CreateCategory inserts a category and returns it with post counts.
func (s *Store) CreateCategory(ctx context.Context, name, slug string) (*domain.Category, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO categories (name, slug) VALUES ($1, $2) RETURNING id`,
		name, slug,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, port.ErrDuplicate
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return s.FindCategoryByID(ctx, id)
}

// FindCategoryByID returns a category with its post counts.
func (s *Store) FindCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories c WHERE c.id = $1`

	var c domain.Category
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.PublishedPostsCount, &c.TotalPostsCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// ListCategories returns all categories with post counts, by name.
func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories c ORDER BY c.name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.PublishedPostsCount, &c.TotalPostsCount); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// CategoryNameExists reports whether a category with the name exists.
func (s *Store) CategoryNameExists(ctx context.Context, name string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM categories WHERE name = $1 LIMIT 1`, name,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check category exists: %w", err)
	}
	return true, nil
}

// SlugExists reports whether a slug is taken.
func (s *Store) SlugExists(ctx context.Context, slug string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM categories WHERE slug = $1 LIMIT 1`, slug).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check slug exists: %w", err)
	}
	return true, nil
}

// DeleteCategory removes a category inside one transaction, handling its
// posts per strategy.
func (s *Store) DeleteCategory(ctx context.Context, id int64, strategy string, newCategoryID *int64) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var affected int64
	switch strategy {
	case "force_delete":
		res, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE category_id = $1`, id)
		if err != nil {
			return 0, fmt.Errorf("delete category posts: %w", err)
		}
		affected, _ = res.RowsAffected()
	case "reassign":
		res, err := tx.ExecContext(ctx, `UPDATE posts SET category_id = $1 WHERE category_id = $2`, newCategoryID, id)
		if err != nil {
			return 0, fmt.Errorf("reassign category posts: %w", err)
		}
		affected, _ = res.RowsAffected()
	default: // reassign_null
		res, err := tx.ExecContext(ctx, `UPDATE posts SET category_id = NULL WHERE category_id = $1`, id)
		if err != nil {
			return 0, fmt.Errorf("uncategorize posts: %w", err)
		}
		affected, _ = res.RowsAffected()
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, port.ErrCategoryNotFound
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return int(affected), nil
}
