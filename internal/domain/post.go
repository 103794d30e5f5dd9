package domain

import "time"

// Post statuses.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// Post represents a blog post.
type Post struct {
	ID         int64     `json:"id"           db:"id"`
	AuthorID   int64     `json:"author_id"    db:"author_id"`
	CategoryID *int64    `json:"category_id"  db:"category_id"`
	Title      string    `json:"title"        db:"title"`
	Content    string    `json:"content"      db:"content"`
	Status     string    `json:"status"       db:"status"`
	ImageURL   string    `json:"image_url,omitempty" db:"image_url"`
	CreatedAt  time.Time `json:"created_at"   db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"   db:"updated_at"`

	// Denormalized fields populated on reads.
	AuthorName   string `json:"author_name,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
	LikeCount    int    `json:"like_count"`
	CommentCount int    `json:"comment_count"`
}

// PostOwner is the stored owner of a post, fetched fresh for every
// authorization decision.
type PostOwner struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// DisplayName returns the owner's username, falling back to the email local-part.
func (o *PostOwner) DisplayName() string {
	return displayName(o.Username, o.Email)
}
