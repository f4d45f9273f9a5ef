// Package mock provides in-memory implementations of the repository
// interfaces for tests. A single Store backs all entity repositories so
// cross-entity behavior (comment counts, visibility via category state,
// cascade deletes) mirrors the SQL implementations.
package mock

import (
	"context"
	"sort"
	"sync"
	"time"

	"blogicum/app/models"
	"blogicum/app/repositories"
)

// Store holds all entities behind one lock.
type Store struct {
	mutex sync.RWMutex

	posts      map[int]*models.Post
	comments   map[int]*models.Comment
	categories map[int]*models.Category
	locations  map[int]*models.Location
	users      map[int]*models.User

	nextPostID     int
	nextCommentID  int
	nextCategoryID int
	nextLocationID int
	nextUserID     int

	// Now is the clock used for visibility filtering; tests may pin it.
	Now func() time.Time
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		posts:          make(map[int]*models.Post),
		comments:       make(map[int]*models.Comment),
		categories:     make(map[int]*models.Category),
		locations:      make(map[int]*models.Location),
		users:          make(map[int]*models.User),
		nextPostID:     1,
		nextCommentID:  1,
		nextCategoryID: 1,
		nextLocationID: 1,
		nextUserID:     1,
		Now:            time.Now,
	}
}

// Posts returns the post repository view of the store.
func (s *Store) Posts() repositories.PostRepository { return &postRepo{s} }

// Comments returns the comment repository view of the store.
func (s *Store) Comments() repositories.CommentRepository { return &commentRepo{s} }

// Categories returns the category repository view of the store.
func (s *Store) Categories() repositories.CategoryRepository { return &categoryRepo{s} }

// Locations returns the location repository view of the store.
func (s *Store) Locations() repositories.LocationRepository { return &locationRepo{s} }

// Users returns the user repository view of the store.
func (s *Store) Users() repositories.UserRepository { return &userRepo{s} }

func (s *Store) commentCount(postID int) int {
	count := 0
	for _, c := range s.comments {
		if c.PostID == postID {
			count++
		}
	}
	return count
}

// annotated returns a copy of the post with relations and comment count
// attached, mirroring what the SQL joins produce.
func (s *Store) annotated(p *models.Post) *models.Post {
	out := *p
	if cat, ok := s.categories[p.CategoryID]; ok {
		c := *cat
		out.Category = &c
	}
	if loc, ok := s.locations[p.LocationID]; ok {
		l := *loc
		out.Location = &l
	}
	if u, ok := s.users[p.AuthorID]; ok {
		a := *u
		out.Author = &a
	}
	out.CommentCount = s.commentCount(p.ID)
	return &out
}

func (s *Store) matches(p *models.Post, filter repositories.PostFilter) bool {
	if filter.AuthorID != 0 && p.AuthorID != filter.AuthorID {
		return false
	}
	if filter.CategoryID != 0 && p.CategoryID != filter.CategoryID {
		return false
	}
	if filter.OnlyVisible {
		if !p.IsPublished {
			return false
		}
		if cat, ok := s.categories[p.CategoryID]; !ok || !cat.IsPublished {
			return false
		}
		if p.PubDate.After(s.Now()) {
			return false
		}
	}
	return true
}

func (s *Store) filtered(filter repositories.PostFilter) []*models.Post {
	var posts []*models.Post
	for _, p := range s.posts {
		if s.matches(p, filter) {
			posts = append(posts, p)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].PubDate.Equal(posts[j].PubDate) {
			return posts[i].ID < posts[j].ID
		}
		return posts[i].PubDate.After(posts[j].PubDate)
	})
	return posts
}

// postRepo implements repositories.PostRepository.
type postRepo struct{ s *Store }

func (r *postRepo) Create(_ context.Context, post *models.Post) error {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	post.ID = r.s.nextPostID
	r.s.nextPostID++
	if post.CreatedAt.IsZero() {
		post.CreatedAt = r.s.Now()
	}
	stored := *post
	r.s.posts[post.ID] = &stored
	return nil
}

func (r *postRepo) GetByID(_ context.Context, id int) (*models.Post, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	post, exists := r.s.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return r.s.annotated(post), nil
}

func (r *postRepo) List(_ context.Context, filter repositories.PostFilter, limit, offset int) ([]*models.Post, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	posts := r.s.filtered(filter)
	if offset >= len(posts) {
		return nil, nil
	}
	end := offset + limit
	if end > len(posts) {
		end = len(posts)
	}
	out := make([]*models.Post, 0, end-offset)
	for _, p := range posts[offset:end] {
		out = append(out, r.s.annotated(p))
	}
	return out, nil
}

func (r *postRepo) Count(_ context.Context, filter repositories.PostFilter) (int, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()
	return len(r.s.filtered(filter)), nil
}

func (r *postRepo) Update(_ context.Context, post *models.Post) error {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	existing, exists := r.s.posts[post.ID]
	if !exists {
		return repositories.ErrNotFound
	}
	updated := *post
	updated.AuthorID = existing.AuthorID
	updated.CreatedAt = existing.CreatedAt
	r.s.posts[post.ID] = &updated
	return nil
}

func (r *postRepo) Delete(_ context.Context, id int) error {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	if _, exists := r.s.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(r.s.posts, id)
	for cid, c := range r.s.comments {
		if c.PostID == id {
			delete(r.s.comments, cid)
		}
	}
	return nil
}

// commentRepo implements repositories.CommentRepository.
type commentRepo struct{ s *Store }

func (r *commentRepo) Create(_ context.Context, comment *models.Comment) error {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	comment.ID = r.s.nextCommentID
	r.s.nextCommentID++
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = r.s.Now()
	}
	stored := *comment
	r.s.comments[comment.ID] = &stored
	return nil
}

func (r *commentRepo) GetByPost(_ context.Context, id, postID int) (*models.Comment, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	comment, exists := r.s.comments[id]
	if !exists || comment.PostID != postID {
		return nil, repositories.ErrNotFound
	}
	out := *comment
	if u, ok := r.s.users[comment.AuthorID]; ok {
		a := *u
		out.Author = &a
	}
	return &out, nil
}

func (r *commentRepo) ListByPost(_ context.Context, postID int) ([]*models.Comment, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	var comments []*models.Comment
	for _, c := range r.s.comments {
		if c.PostID == postID {
			out := *c
			if u, ok := r.s.users[c.AuthorID]; ok {
				a := *u
				out.Author = &a
			}
			comments = append(comments, &out)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].ID < comments[j].ID
		}
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (r *commentRepo) Update(_ context.Context, comment *models.Comment) error {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	existing, exists := r.s.comments[comment.ID]
	if !exists {
		return repositories.ErrNotFound
	}
	existing.Text = comment.Text
	return nil
}

func (r *commentRepo) Delete(_ context.Context, id int) error {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	if _, exists := r.s.comments[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(r.s.comments, id)
	return nil
}

// categoryRepo implements repositories.CategoryRepository.
type categoryRepo struct{ s *Store }

func (r *categoryRepo) Create(_ context.Context, category *models.Category) error {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	for _, c := range r.s.categories {
		if c.Slug == category.Slug {
			return repositories.ErrDuplicate
		}
	}
	category.ID = r.s.nextCategoryID
	r.s.nextCategoryID++
	if category.CreatedAt.IsZero() {
		category.CreatedAt = r.s.Now()
	}
	stored := *category
	r.s.categories[category.ID] = &stored
	return nil
}

func (r *categoryRepo) GetBySlug(_ context.Context, slug string) (*models.Category, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	for _, c := range r.s.categories {
		if c.Slug == slug {
			out := *c
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *categoryRepo) ListPublished(_ context.Context) ([]*models.Category, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	var categories []*models.Category
	for _, c := range r.s.categories {
		if c.IsPublished {
			out := *c
			categories = append(categories, &out)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Title < categories[j].Title })
	return categories, nil
}

// locationRepo implements repositories.LocationRepository.
type locationRepo struct{ s *Store }

func (r *locationRepo) Create(_ context.Context, location *models.Location) error {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	location.ID = r.s.nextLocationID
	r.s.nextLocationID++
	if location.CreatedAt.IsZero() {
		location.CreatedAt = r.s.Now()
	}
	stored := *location
	r.s.locations[location.ID] = &stored
	return nil
}

func (r *locationRepo) ListPublished(_ context.Context) ([]*models.Location, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	var locations []*models.Location
	for _, l := range r.s.locations {
		if l.IsPublished {
			out := *l
			locations = append(locations, &out)
		}
	}
	sort.Slice(locations, func(i, j int) bool { return locations[i].Name < locations[j].Name })
	return locations, nil
}

// userRepo implements repositories.UserRepository.
type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, user *models.User) error {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	for _, u := range r.s.users {
		if u.Username == user.Username {
			return repositories.ErrDuplicate
		}
	}
	user.ID = r.s.nextUserID
	r.s.nextUserID++
	if user.JoinedAt.IsZero() {
		user.JoinedAt = r.s.Now()
	}
	stored := *user
	r.s.users[user.ID] = &stored
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	user, exists := r.s.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	out := *user
	return &out, nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	for _, u := range r.s.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *userRepo) Update(_ context.Context, user *models.User) error {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	existing, exists := r.s.users[user.ID]
	if !exists {
		return repositories.ErrNotFound
	}
	for _, u := range r.s.users {
		if u.ID != user.ID && u.Username == user.Username {
			return repositories.ErrDuplicate
		}
	}
	existing.Username = user.Username
	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.Email = user.Email
	return nil
}
