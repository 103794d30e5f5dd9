package service

import (
	"context"
	"time"

	"github.com/quillblog/quill/internal/domain"
	"github.com/quillblog/quill/internal/port"
)

// fakeUsers is an in-memory port.CredentialStore.
type fakeUsers struct {
	users  map[int64]*domain.User
	nextID int64
}

var _ port.CredentialStore = (*fakeUsers)(nil)

func newFakeUsers(users ...*domain.User) *fakeUsers {
	f := &fakeUsers{users: map[int64]*domain.User{}}
	for _, u := range users {
		f.nextID++
		if u.ID == 0 {
			u.ID = f.nextID
		}
		cpy := *u
		f.users[u.ID] = &cpy
	}
	return f
}

func (f *fakeUsers) FindUserByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, port.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUsers) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, port.ErrUserNotFound
}

func (f *fakeUsers) CreateUser(_ context.Context, u *domain.User) (*domain.User, error) {
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	cpy := *u
	f.users[u.ID] = &cpy
	c := *u
	return &c, nil
}

func (f *fakeUsers) CountUsersByRole(_ context.Context, role string) (int, error) {
	n := 0
	for _, u := range f.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (f *fakeUsers) UserExists(_ context.Context, username, email string) (bool, error) {
	for _, u := range f.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// fakePosts is an in-memory port.PostStore.
type fakePosts struct {
	posts  map[int64]*domain.Post
	nextID int64
}

var _ port.PostStore = (*fakePosts)(nil)

func newFakePosts(posts ...*domain.Post) *fakePosts {
	f := &fakePosts{posts: map[int64]*domain.Post{}}
	for _, p := range posts {
		f.nextID++
		if p.ID == 0 {
			p.ID = f.nextID
		}
		cpy := *p
		f.posts[p.ID] = &cpy
	}
	return f
}

func (f *fakePosts) CreatePost(_ context.Context, p *domain.Post) (*domain.Post, error) {
	f.nextID++
	p.ID = f.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cpy := *p
	f.posts[p.ID] = &cpy
	c := *p
	return &c, nil
}

func (f *fakePosts) FindPostByID(_ context.Context, id int64) (*domain.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, port.ErrPostNotFound
	}
	c := *p
	return &c, nil
}

func (f *fakePosts) ListPosts(_ context.Context) ([]domain.Post, error) {
	var out []domain.Post
	for _, p := range f.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePosts) ListPostsByCategory(_ context.Context, categoryID int64) ([]domain.Post, error) {
	var out []domain.Post
	for _, p := range f.posts {
		if p.CategoryID != nil && *p.CategoryID == categoryID && p.Status == domain.PostStatusPublished {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePosts) UpdatePost(_ context.Context, p *domain.Post) (*domain.Post, error) {
	if _, ok := f.posts[p.ID]; !ok {
		return nil, port.ErrPostNotFound
	}
	cpy := *p
	f.posts[p.ID] = &cpy
	c := *p
	return &c, nil
}

func (f *fakePosts) DeletePost(_ context.Context, id int64) error {
	if _, ok := f.posts[id]; !ok {
		return port.ErrPostNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePosts) FindPostAuthor(_ context.Context, postID int64) (int64, error) {
	p, ok := f.posts[postID]
	if !ok {
		return 0, port.ErrPostNotFound
	}
	return p.AuthorID, nil
}

func (f *fakePosts) PostExists(_ context.Context, postID int64) (bool, error) {
	_, ok := f.posts[postID]
	return ok, nil
}

func (f *fakePosts) FindPostOwner(_ context.Context, postID int64) (*domain.PostOwner, error) {
	p, ok := f.posts[postID]
	if !ok {
		return nil, port.ErrPostNotFound
	}
	return &domain.PostOwner{ID: p.AuthorID, Username: p.AuthorName}, nil
}

// fakeCategories is an in-memory port.CategoryStore.
type fakeCategories struct {
	cats   map[int64]*domain.Category
	nextID int64
}

var _ port.CategoryStore = (*fakeCategories)(nil)

func newFakeCategories(cats ...*domain.Category) *fakeCategories {
	f := &fakeCategories{cats: map[int64]*domain.Category{}}
	for _, c := range cats {
		f.nextID++
		if c.ID == 0 {
			c.ID = f.nextID
		}
		cpy := *c
		f.cats[c.ID] = &cpy
	}
	return f
}

func (f *fakeCategories) CreateCategory(_ context.Context, name, slug string) (*domain.Category, error) {
	f.nextID++
	c := &domain.Category{ID: f.nextID, Name: name, Slug: slug, CreatedAt: time.Now()}
	f.cats[c.ID] = c
	cpy := *c
	return &cpy, nil
}

func (f *fakeCategories) FindCategoryByID(_ context.Context, id int64) (*domain.Category, error) {
	c, ok := f.cats[id]
	if !ok {
		return nil, port.ErrCategoryNotFound
	}
	cpy := *c
	return &cpy, nil
}

func (f *fakeCategories) ListCategories(_ context.Context) ([]domain.Category, error) {
	var out []domain.Category
	for _, c := range f.cats {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCategories) CategoryNameExists(_ context.Context, name string) (bool, error) {
	for _, c := range f.cats {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCategories) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, c := range f.cats {
		if c.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCategories) DeleteCategory(_ context.Context, id int64, _ string, _ *int64) (int, error) {
	if _, ok := f.cats[id]; !ok {
		return 0, port.ErrCategoryNotFound
	}
	delete(f.cats, id)
	return 0, nil
}

// fakeComments is an in-memory port.CommentStore.
type fakeComments struct {
	comments map[int64]*domain.Comment
	nextID   int64
}

var _ port.CommentStore = (*fakeComments)(nil)

func newFakeComments() *fakeComments {
	return &fakeComments{comments: map[int64]*domain.Comment{}}
}

func (f *fakeComments) CreateComment(_ context.Context, c *domain.Comment) (*domain.Comment, error) {
	f.nextID++
	c.ID = f.nextID
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cpy := *c
	f.comments[c.ID] = &cpy
	out := *c
	return &out, nil
}

func (f *fakeComments) FindCommentByID(_ context.Context, id int64) (*domain.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, port.ErrCommentNotFound
	}
	cpy := *c
	return &cpy, nil
}

func (f *fakeComments) ListCommentsByPost(_ context.Context, postID int64) ([]domain.Comment, error) {
	var out []domain.Comment
	for _, c := range f.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeComments) HasRecentDuplicateComment(_ context.Context, postID, userID int64, comment string) (bool, error) {
	for _, c := range f.comments {
		if c.PostID == postID && c.UserID == userID && c.Comment == comment && time.Since(c.CreatedAt) < time.Minute {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeComments) UpdateComment(_ context.Context, id int64, comment string) (*domain.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, port.ErrCommentNotFound
	}
	c.Comment = comment
	c.UpdatedAt = time.Now()
	cpy := *c
	return &cpy, nil
}

func (f *fakeComments) DeleteComment(_ context.Context, id int64) error {
	if _, ok := f.comments[id]; !ok {
		return port.ErrCommentNotFound
	}
	delete(f.comments, id)
	return nil
}

// fakeLikes is an in-memory port.LikeStore.
type fakeLikes struct {
	likes  map[int64]*domain.Like
	nextID int64
}

var _ port.LikeStore = (*fakeLikes)(nil)

func newFakeLikes() *fakeLikes {
	return &fakeLikes{likes: map[int64]*domain.Like{}}
}

func (f *fakeLikes) CreateLike(_ context.Context, postID, userID int64) (*domain.Like, error) {
	for _, l := range f.likes {
		if l.PostID == postID && l.UserID == userID {
			return nil, port.ErrDuplicate
		}
	}
	f.nextID++
	l := &domain.Like{ID: f.nextID, PostID: postID, UserID: userID, CreatedAt: time.Now()}
	f.likes[l.ID] = l
	cpy := *l
	return &cpy, nil
}

func (f *fakeLikes) DeleteLike(_ context.Context, postID, userID int64) error {
	for id, l := range f.likes {
		if l.PostID == postID && l.UserID == userID {
			delete(f.likes, id)
			return nil
		}
	}
	return port.ErrLikeNotFound
}

func (f *fakeLikes) CountLikes(_ context.Context, postID int64) (int, error) {
	n := 0
	for _, l := range f.likes {
		if l.PostID == postID {
			n++
		}
	}
	return n, nil
}

func (f *fakeLikes) ListRecentLikes(_ context.Context, postID int64, limit int) ([]domain.Like, error) {
	var out []domain.Like
	for _, l := range f.likes {
		if l.PostID == postID && len(out) < limit {
			out = append(out, *l)
		}
	}
	return out, nil
}
