package api

import (
	"encoding/json"
	"io"
	"time"

	"github.com/gofrs/uuid"

	"blog/pkg/storage"
)

// PostView is the read-side representation of a post. The author appears as
// a flattened "First Last" display string here, unlike the structured
// object accepted on write.
type PostView struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Author  string    `json:"author"`
	Created time.Time `json:"created"`
}

func newPostView(post storage.Post) PostView {
	return PostView{
		ID:      post.ID,
		Title:   post.Title,
		Content: post.Content,
		Author:  post.AuthorName(),
		Created: post.Created,
	}
}

// postPayload is the wire shape of create and update request bodies.
// Pointer fields distinguish absent keys from present-but-empty values.
// Unknown keys are ignored.
type postPayload struct {
	Title   *string         `json:"title"`
	Author  *storage.Author `json:"author"`
	Content *string         `json:"content"`
	Created *time.Time      `json:"created"`
}

// decodePostPayload reads a postPayload from the request body. A JSON type
// mismatch is reported as a ValidationError naming the offending field.
func decodePostPayload(r io.Reader) (postPayload, error) {
	var p postPayload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		if typeErr, ok := err.(*json.UnmarshalTypeError); ok && typeErr.Field != "" {
			return postPayload{}, &storage.ValidationError{Fields: []string{typeErr.Field}}
		}
		return postPayload{}, err
	}

	return p, nil
}

// toPost builds a validated post from a create payload. Absent title or
// author fields are reported alongside invalid ones, so the error lists
// every problem at once.
func (p postPayload) toPost() (storage.Post, error) {
	var (
		title   string
		content string
		author  storage.Author
		created time.Time
	)

	if p.Title != nil {
		title = *p.Title
	}
	if p.Content != nil {
		content = *p.Content
	}
	if p.Author != nil {
		author = *p.Author
	}
	if p.Created != nil {
		created = *p.Created
	}

	return storage.NewPost(author, title, content, created)
}

// toUpdate builds a validated partial update from an update payload. Only
// the keys present in the body are carried over; an empty body yields an
// empty, valid update.
func (p postPayload) toUpdate() (storage.PostUpdate, error) {
	upd := storage.PostUpdate{
		Title:   p.Title,
		Content: p.Content,
		Author:  p.Author,
	}
	if err := upd.Validate(); err != nil {
		return storage.PostUpdate{}, err
	}

	return upd, nil
}
