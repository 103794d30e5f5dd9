package port

import (
	"context"

	"github.com/quillblog/quill/internal/domain"
)

// CredentialStore persists user records. The auth core only ever reads it.
type CredentialStore interface {
	FindUserByID(ctx context.Context, id int64) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateUser(ctx context.Context, u *domain.User) (*domain.User, error)
	CountUsersByRole(ctx context.Context, role string) (int, error)
	UserExists(ctx context.Context, username, email string) (bool, error)
}

// OwnershipStore answers post-ownership questions for authorization
// decisions. Lookups are always issued fresh, never cached.
type OwnershipStore interface {
	FindPostAuthor(ctx context.Context, postID int64) (int64, error)
	PostExists(ctx context.Context, postID int64) (bool, error)
	FindPostOwner(ctx context.Context, postID int64) (*domain.PostOwner, error)
}

// PostStore persists posts.
type PostStore interface {
	OwnershipStore
	CreatePost(ctx context.Context, p *domain.Post) (*domain.Post, error)
	FindPostByID(ctx context.Context, id int64) (*domain.Post, error)
	ListPosts(ctx context.Context) ([]domain.Post, error)
	ListPostsByCategory(ctx context.Context, categoryID int64) ([]domain.Post, error)
	UpdatePost(ctx context.Context, p *domain.Post) (*domain.Post, error)
	DeletePost(ctx context.Context, id int64) error
}

// CategoryStore persists categories.
type CategoryStore interface {
	CreateCategory(ctx context.Context, name, slug string) (*domain.Category, error)
	FindCategoryByID(ctx context.Context, id int64) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CategoryNameExists(ctx context.Context, name string) (bool, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	// DeleteCategory removes a category inside one transaction, handling its
	// posts per strategy: "reassign_null", "reassign" (to newCategoryID) or
	// "force_delete".
	DeleteCategory(ctx context.Context, id int64, strategy string, newCategoryID *int64) (affectedPosts int, err error)
}

// CommentStore persists comments.
type CommentStore interface {
	CreateComment(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	FindCommentByID(ctx context.Context, id int64) (*domain.Comment, error)
	ListCommentsByPost(ctx context.Context, postID int64) ([]domain.Comment, error)
	HasRecentDuplicateComment(ctx context.Context, postID, userID int64, comment string) (bool, error)
	UpdateComment(ctx context.Context, id int64, comment string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, id int64) error
}

// LikeStore persists post likes.
type LikeStore interface {
	CreateLike(ctx context.Context, postID, userID int64) (*domain.Like, error)
	DeleteLike(ctx context.Context, postID, userID int64) error
	CountLikes(ctx context.Context, postID int64) (int, error)
	ListRecentLikes(ctx context.Context, postID int64, limit int) ([]domain.Like, error)
}

// AuditStore persists and lists audit records.
type AuditStore interface {
	AuditWriter
	ListAuditLogs(ctx context.Context, limit int, action string) ([]domain.AuditLog, error)
}

// AuditWriter defines how audit records are persisted.
type AuditWriter interface {
	WriteAudit(userID, action, resource, resourceID, details, ip, userAgent string) error
}
