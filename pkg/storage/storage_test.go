package storage

import (
	"errors"
	"slices"
	"testing"
	"time"
)

func TestNewPost(t *testing.T) {
	tests := []struct {
		name    string
		author  Author
		title   string
		content string
		wantBad []string
	}{
		{
			name:   "valid post",
			author: Author{FirstName: "Ada", LastName: "Lovelace"},
			title:  "Hello",
		},
		{
			name:    "valid post with content",
			author:  Author{FirstName: "Ada", LastName: "Lovelace"},
			title:   "Hello",
			content: "World",
		},
		{
			name:    "missing title",
			author:  Author{FirstName: "Ada", LastName: "Lovelace"},
			wantBad: []string{"title"},
		},
		{
			name:    "blank title",
			author:  Author{FirstName: "Ada", LastName: "Lovelace"},
			title:   "   ",
			wantBad: []string{"title"},
		},
		{
			name:    "missing last name",
			author:  Author{FirstName: "Ada"},
			title:   "Hello",
			wantBad: []string{"author.lastName"},
		},
		{
			name:    "everything missing",
			wantBad: []string{"title", "author.firstName", "author.lastName"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post, err := NewPost(tt.author, tt.title, tt.content, time.Time{})
			if len(tt.wantBad) == 0 {
				if err != nil {
					t.Fatalf("unexpected error creating post: %v", err)
				}
				if post.Title != tt.title {
					t.Errorf("want title %q, got title %q", tt.title, post.Title)
				}
				if post.Content != tt.content {
					t.Errorf("want content %q, got content %q", tt.content, post.Content)
				}
				if post.Created.IsZero() {
					t.Errorf("post created has zero time value")
				}
				return
			}

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("want ValidationError, got %v", err)
			}
			if !slices.Equal(vErr.Fields, tt.wantBad) {
				t.Errorf("want invalid fields %v, got invalid fields %v", tt.wantBad, vErr.Fields)
			}
		})
	}
}

func TestNewPost_keepsSuppliedCreated(t *testing.T) {
	created := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	post, err := NewPost(Author{FirstName: "Ada", LastName: "Lovelace"}, "Hello", "", created)
	if err != nil {
		t.Fatalf("unexpected error creating post: %v", err)
	}
	if !post.Created.Equal(created) {
		t.Errorf("want created %v, got created %v", created, post.Created)
	}
}

func TestPost_AuthorName(t *testing.T) {
	tests := []struct {
		name   string
		author Author
		want   string
	}{
		{name: "plain", author: Author{FirstName: "Ada", LastName: "Lovelace"}, want: "Ada Lovelace"},
		{name: "padded names", author: Author{FirstName: " Ada ", LastName: " Lovelace "}, want: "Ada Lovelace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Post{Author: tt.author}.AuthorName()
			if got != tt.want {
				t.Errorf("want author name %q, got author name %q", tt.want, got)
			}
		})
	}
}

func TestPostUpdate_Validate(t *testing.T) {
	title := "Hello2"
	blank := "  "

	tests := []struct {
		name    string
		upd     PostUpdate
		wantBad []string
	}{
		{name: "empty update", upd: PostUpdate{}},
		{name: "title only", upd: PostUpdate{Title: &title}},
		{name: "blank title", upd: PostUpdate{Title: &blank}, wantBad: []string{"title"}},
		{
			name:    "partial author",
			upd:     PostUpdate{Author: &Author{FirstName: "Ada"}},
			wantBad: []string{"author.lastName"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.upd.Validate()
			if len(tt.wantBad) == 0 {
				if err != nil {
					t.Errorf("unexpected error validating update: %v", err)
				}
				return
			}

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("want ValidationError, got %v", err)
			}
			if !slices.Equal(vErr.Fields, tt.wantBad) {
				t.Errorf("want invalid fields %v, got invalid fields %v", tt.wantBad, vErr.Fields)
			}
		})
	}
}

func TestPostUpdate_Apply(t *testing.T) {
	post := Post{
		Author:  Author{FirstName: "Ada", LastName: "Lovelace"},
		Title:   "Hello",
		Content: "World",
		Created: time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
	}

	title := "Hello2"
	got := PostUpdate{Title: &title}.Apply(post)
	if got.Title != title {
		t.Errorf("want title %q, got title %q", title, got.Title)
	}
	if got.Content != post.Content {
		t.Errorf("want content %q, got content %q", post.Content, got.Content)
	}
	if got.Author != post.Author {
		t.Errorf("want author %+v, got author %+v", post.Author, got.Author)
	}
	if !got.Created.Equal(post.Created) {
		t.Errorf("want created %v, got created %v", post.Created, got.Created)
	}

	// Applying the same update twice yields the same state.
	again := PostUpdate{Title: &title}.Apply(got)
	if again != got {
		t.Errorf("want post\n%+v\n\ngot post\n%+v\n", got, again)
	}
}
