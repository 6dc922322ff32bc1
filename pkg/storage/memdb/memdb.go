package memdb

import (
	"context"
	"sort"
	"sync"

	"github.com/gofrs/uuid"

	"blog/pkg/storage"
)

// Store is an in-memory storage implementation used in development mode and
// in tests. A single mutex guards the post map; per-request handlers share
// no other state.
type Store struct {
	mu    sync.Mutex
	posts map[uuid.UUID]storage.Post
}

func New() *Store {
	db := Store{
		posts: make(map[uuid.UUID]storage.Post),
	}

	return &db
}

func (db *Store) AddPost(ctx context.Context, post storage.Post) (storage.Post, error) {
	if post.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			return storage.Post{}, err
		}
		post.ID = id
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	db.posts[post.ID] = post

	return post, nil
}

func (db *Store) Posts(ctx context.Context) ([]storage.Post, error) {
	db.mu.Lock()
	allPosts := make([]storage.Post, 0, len(db.posts))
	for _, post := range db.posts {
		allPosts = append(allPosts, post)
	}
	db.mu.Unlock()

	sort.Slice(allPosts, func(i, j int) bool {
		return allPosts[i].Created.Before(allPosts[j].Created)
	})

	return allPosts, nil
}

func (db *Store) Post(ctx context.Context, id uuid.UUID) (storage.Post, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	post, ok := db.posts[id]
	if !ok {
		return storage.Post{}, storage.ErrPostNotFound
	}

	return post, nil
}

func (db *Store) UpdatePost(ctx context.Context, id uuid.UUID, upd storage.PostUpdate) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	post, ok := db.posts[id]
	if !ok {
		return storage.ErrPostNotFound
	}

	db.posts[id] = upd.Apply(post)

	return nil
}

func (db *Store) DeletePost(ctx context.Context, id uuid.UUID) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.posts[id]; !ok {
		return storage.ErrPostNotFound
	}

	delete(db.posts, id)

	return nil
}

func (db *Store) Count(ctx context.Context) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return int64(len(db.posts)), nil
}
