package domain

import "time"

// Category groups posts under a unique name and URL slug.
type Category struct {
	ID        int64     `json:"id"         db:"id"`
	Name      string    `json:"name"       db:"name"`
	Slug      string    `json:"slug"       db:"slug"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	PublishedPostsCount int `json:"published_posts_count"`
	TotalPostsCount     int `json:"total_posts_count"`
}
