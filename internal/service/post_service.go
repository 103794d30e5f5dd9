package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/quillblog/quill/internal/domain"
	"github.com/quillblog/quill/internal/port"
)

// PostService handles post CRUD. Authorization happens before these calls,
// in the auth core; the service only enforces content rules.
type PostService struct {
	posts      port.PostStore
	categories port.CategoryStore
	media      port.MediaStore
	folder     string
}

// NewPostService constructs a PostService. media may be nil when no upload
// backend is configured.
func NewPostService(posts port.PostStore, categories port.CategoryStore, media port.MediaStore, folder string) *PostService {
	return &PostService{posts: posts, categories: categories, media: media, folder: folder}
}

// CreateInput are the fields accepted when creating or updating a post.
type CreateInput struct {
	Title      string
	Content    string
	CategoryID *int64
	Status     string
	Image      io.Reader // optional
	ImageName  string
}

// Create validates and persists a new post owned by authorID.
func (s *PostService) Create(ctx context.Context, authorID int64, in CreateInput) (*domain.Post, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" || content == "" {
		return nil, &ValidationError{Msg: "Title and content are required"}
	}

	status := in.Status
	if status == "" {
		status = domain.PostStatusPublished
	}
	if status != domain.PostStatusDraft && status != domain.PostStatusPublished {
		return nil, &ValidationError{Msg: "Status must be draft or published"}
	}

	if in.CategoryID != nil {
		if _, err := s.categories.FindCategoryByID(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
	}

	var imageURL string
	if in.Image != nil {
		if s.media == nil {
			return nil, &ValidationError{Msg: "Image uploads are not configured"}
		}
		url, err := s.media.Upload(ctx, in.ImageName, in.Image, s.folder)
		if err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
		imageURL = url
	}

	post, err := s.posts.CreatePost(ctx, &domain.Post{
		AuthorID:   authorID,
		CategoryID: in.CategoryID,
		Title:      title,
		Content:    content,
		Status:     status,
		ImageURL:   imageURL,
	})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	slog.Info("post created", "post_id", post.ID, "author_id", authorID)
	return post, nil
}

// Get returns a single post.
func (s *PostService) Get(ctx context.Context, id int64) (*domain.Post, error) {
	return s.posts.FindPostByID(ctx, id)
}

// List returns all posts, newest first.
func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	return s.posts.ListPosts(ctx)
}

// Update validates and applies changes to an existing post. Ownership has
// already been established by the authorizer.
func (s *PostService) Update(ctx context.Context, id int64, in CreateInput) (*domain.Post, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" || content == "" {
		return nil, &ValidationError{Msg: "Title and content are required"}
	}

	post, err := s.posts.FindPostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	post.Title = title
	post.Content = content
	if in.CategoryID != nil {
		if _, err := s.categories.FindCategoryByID(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		post.CategoryID = in.CategoryID
	}
	if in.Status != "" {
		if in.Status != domain.PostStatusDraft && in.Status != domain.PostStatusPublished {
			return nil, &ValidationError{Msg: "Status must be draft or published"}
		}
		post.Status = in.Status
	}

	updated, err := s.posts.UpdatePost(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return updated, nil
}

// Delete removes a post; comments and likes cascade at the schema level.
func (s *PostService) Delete(ctx context.Context, id int64) error {
	if err := s.posts.DeletePost(ctx, id); err != nil {
		return err
	}
	slog.Info("post deleted", "post_id", id)
	return nil
}
