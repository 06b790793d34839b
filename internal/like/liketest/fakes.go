// Package liketest provides in-memory stand-ins for the like workflow's collaborators.
package liketest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tair/article-likes/internal/like/domain"
)

type pair struct {
	articleID uint
	userID    uint
}

// MemoryRepository is a domain.LikeRepository kept in a map. It enforces the
// (article, user) uniqueness the database index provides.
type MemoryRepository struct {
	mu      sync.Mutex
	nextID  uint
	byPair  map[pair]domain.Like
	Creates int
	Deletes int
	Err     error // returned by every call when set
}

// NewMemoryRepository creates an empty repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byPair: make(map[pair]domain.Like)}
}

// Mutations returns how many creates and deletes reached the store
func (m *MemoryRepository) Mutations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Creates + m.Deletes
}

// Len returns the number of stored likes
func (m *MemoryRepository) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byPair)
}

func (m *MemoryRepository) FindByArticleAndUser(_ context.Context, articleID, userID uint) (*domain.Like, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	like, ok := m.byPair[pair{articleID, userID}]
	if !ok {
		return nil, nil
	}
	return &like, nil
}

func (m *MemoryRepository) FindByArticle(_ context.Context, articleID uint, limit, offset int) ([]domain.Like, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	likes := []domain.Like{}
	for _, l := range m.byPair {
		if l.ArticleID == articleID {
			likes = append(likes, l)
		}
	}
	sort.Slice(likes, func(i, j int) bool { return likes[i].ID < likes[j].ID })

	if offset < 0 {
		offset = 0
	}
	if offset >= len(likes) {
		return []domain.Like{}, nil
	}
	likes = likes[offset:]
	if limit > 0 && limit < len(likes) {
		likes = likes[:limit]
	}
	return likes, nil
}

func (m *MemoryRepository) CountByArticle(_ context.Context, articleID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	var n int64
	for _, l := range m.byPair {
		if l.ArticleID == articleID {
			n++
		}
	}
	return n, nil
}

func (m *MemoryRepository) Create(_ context.Context, like *domain.Like) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	key := pair{like.ArticleID, like.UserID}
	if _, ok := m.byPair[key]; ok {
		return domain.NewConflictError(domain.MsgAlreadyLiked)
	}
	m.nextID++
	m.Creates++
	like.ID = m.nextID
	like.CreatedAt = time.Now()

	stored := *like
	stored.Article, stored.User = nil, nil
	m.byPair[key] = stored
	return nil
}

func (m *MemoryRepository) Delete(_ context.Context, like *domain.Like) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	key := pair{like.ArticleID, like.UserID}
	stored, ok := m.byPair[key]
	if !ok || stored.ID != like.ID {
		return domain.NewNotFoundError(domain.MsgLikeNotFound)
	}
	m.Deletes++
	delete(m.byPair, key)
	return nil
}

// Articles is a domain.ArticleFinder over a fixed set of articles
type Articles struct {
	Items map[uint]domain.Article
	Err   error
	Calls int
}

// NewArticles returns a finder that knows the given IDs
func NewArticles(ids ...uint) *Articles {
	a := &Articles{Items: make(map[uint]domain.Article)}
	for _, id := range ids {
		a.Items[id] = domain.Article{ID: id, Title: "article"}
	}
	return a
}

func (a *Articles) FindArticle(_ context.Context, id uint) (*domain.Article, error) {
	a.Calls++
	if a.Err != nil {
		return nil, a.Err
	}
	article, ok := a.Items[id]
	if !ok {
		return nil, nil
	}
	return &article, nil
}

// Users is a domain.UserFinder over a fixed set of users
type Users struct {
	Items map[uint]domain.User
	Err   error
	Calls int
}

// NewUsers returns a finder that knows the given IDs
func NewUsers(ids ...uint) *Users {
	u := &Users{Items: make(map[uint]domain.User)}
	for _, id := range ids {
		u.Items[id] = domain.User{ID: id, Username: "user"}
	}
	return u
}

func (u *Users) FindUser(_ context.Context, id uint) (*domain.User, error) {
	u.Calls++
	if u.Err != nil {
		return nil, u.Err
	}
	user, ok := u.Items[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}
