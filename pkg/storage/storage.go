package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid"
)

var (
	ErrConnectDB       = fmt.Errorf("unable to establish DB connection")
	ErrDBNotResponding = fmt.Errorf("DB not responding")

	ErrPostNotFound = fmt.Errorf("post not found")
)

// ValidationError reports every invalid or missing post field at once,
// so a client can fix all of them in a single round trip.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid post fields: " + strings.Join(e.Fields, ", ")
}

type Author struct {
	FirstName string `bson:"first_name" json:"firstName"`
	LastName  string `bson:"last_name" json:"lastName"`
}

type Post struct {
	ID      uuid.UUID `bson:"_id" json:"id"`
	Author  Author    `bson:"author" json:"author"`
	Title   string    `bson:"title" json:"title"`
	Content string    `bson:"content" json:"content"`
	Created time.Time `bson:"created" json:"created"`
}

// NewPost validates the given fields and assembles a Post. Title and both
// author name parts must be non-empty; content may be empty. A zero created
// time defaults to the current time. The post ID is left unset, the storage
// assigns it on insertion.
func NewPost(author Author, title, content string, created time.Time) (Post, error) {
	var bad []string
	if strings.TrimSpace(title) == "" {
		bad = append(bad, "title")
	}
	if strings.TrimSpace(author.FirstName) == "" {
		bad = append(bad, "author.firstName")
	}
	if strings.TrimSpace(author.LastName) == "" {
		bad = append(bad, "author.lastName")
	}
	if len(bad) > 0 {
		return Post{}, &ValidationError{Fields: bad}
	}

	if created.IsZero() {
		created = time.Now()
	}

	return Post{Author: author, Title: title, Content: content, Created: created}, nil
}

// AuthorName returns the display form of the post author: first and last
// name trimmed and joined with a single space.
func (p Post) AuthorName() string {
	return strings.TrimSpace(p.Author.FirstName) + " " + strings.TrimSpace(p.Author.LastName)
}

// PostUpdate describes a partial update: nil fields are left untouched on
// the target post.
type PostUpdate struct {
	Title   *string
	Content *string
	Author  *Author
}

// IsEmpty reports whether the update carries no fields at all. An empty
// update is valid and amounts to a no-op.
func (u PostUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil && u.Author == nil
}

// Validate checks the fields present in the update against the same rules
// NewPost applies on creation.
func (u PostUpdate) Validate() error {
	var bad []string
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		bad = append(bad, "title")
	}
	if u.Author != nil {
		if strings.TrimSpace(u.Author.FirstName) == "" {
			bad = append(bad, "author.firstName")
		}
		if strings.TrimSpace(u.Author.LastName) == "" {
			bad = append(bad, "author.lastName")
		}
	}
	if len(bad) > 0 {
		return &ValidationError{Fields: bad}
	}

	return nil
}

// Apply overlays the fields present in the update onto the given post and
// returns the result.
func (u PostUpdate) Apply(post Post) Post {
	if u.Title != nil {
		post.Title = *u.Title
	}
	if u.Content != nil {
		post.Content = *u.Content
	}
	if u.Author != nil {
		post.Author = *u.Author
	}

	return post
}

type Storage interface {
	AddPost(ctx context.Context, post Post) (Post, error)
	Posts(ctx context.Context) ([]Post, error)
	Post(ctx context.Context, id uuid.UUID) (Post, error)
	UpdatePost(ctx context.Context, id uuid.UUID, upd PostUpdate) error
	DeletePost(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
