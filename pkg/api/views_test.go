package api

import (
	"errors"
	"strings"
	"testing"
	"time"

	"blog/pkg/storage"
)

func TestDecodePostPayload(t *testing.T) {
	payload, err := decodePostPayload(strings.NewReader(
		`{"title": "Hello", "author": {"firstName": "Ada", "lastName": "Lovelace"}, "unknown": true}`,
	))
	if err != nil {
		t.Fatalf("unexpected error decoding payload: %v", err)
	}

	if payload.Title == nil || *payload.Title != "Hello" {
		t.Errorf("want title %q, got title %v", "Hello", payload.Title)
	}
	if payload.Author == nil || payload.Author.FirstName != "Ada" {
		t.Errorf("want author first name %q, got author %v", "Ada", payload.Author)
	}
	if payload.Content != nil {
		t.Errorf("want absent content, got content %q", *payload.Content)
	}
}

func TestDecodePostPayload_typeMismatch(t *testing.T) {
	_, err := decodePostPayload(strings.NewReader(`{"title": 42}`))

	var vErr *storage.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if len(vErr.Fields) != 1 || vErr.Fields[0] != "title" {
		t.Errorf("want invalid fields %v, got invalid fields %v", []string{"title"}, vErr.Fields)
	}
}

func TestPostPayload_toPost(t *testing.T) {
	title := "Hello"
	content := "World"
	created := time.Date(2025, 1, 12, 10, 22, 13, 0, time.UTC)
	author := storage.Author{FirstName: "Ada", LastName: "Lovelace"}

	post, err := postPayload{
		Title:   &title,
		Author:  &author,
		Content: &content,
		Created: &created,
	}.toPost()
	if err != nil {
		t.Fatalf("unexpected error building post: %v", err)
	}

	if post.Title != title {
		t.Errorf("want title %q, got title %q", title, post.Title)
	}
	if post.Content != content {
		t.Errorf("want content %q, got content %q", content, post.Content)
	}
	if post.Author != author {
		t.Errorf("want author %+v, got author %+v", author, post.Author)
	}
	if !post.Created.Equal(created) {
		t.Errorf("want created %v, got created %v", created, post.Created)
	}
}

func TestPostPayload_toPost_missingFields(t *testing.T) {
	content := "World"

	_, err := postPayload{Content: &content}.toPost()

	var vErr *storage.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}

	want := []string{"title", "author.firstName", "author.lastName"}
	if len(vErr.Fields) != len(want) {
		t.Fatalf("want invalid fields %v, got invalid fields %v", want, vErr.Fields)
	}
	for i, field := range want {
		if vErr.Fields[i] != field {
			t.Errorf("want invalid field %q at index %d, got %q", field, i, vErr.Fields[i])
		}
	}
}

func TestPostPayload_toUpdate(t *testing.T) {
	title := "Hello2"

	upd, err := postPayload{Title: &title}.toUpdate()
	if err != nil {
		t.Fatalf("unexpected error building update: %v", err)
	}
	if upd.Title == nil || *upd.Title != title {
		t.Errorf("want update title %q, got update title %v", title, upd.Title)
	}
	if upd.Content != nil || upd.Author != nil {
		t.Errorf("want absent content and author, got update %+v", upd)
	}

	empty, err := postPayload{}.toUpdate()
	if err != nil {
		t.Fatalf("unexpected error building empty update: %v", err)
	}
	if !empty.IsEmpty() {
		t.Errorf("want empty update, got update %+v", empty)
	}
}

func TestNewPostView(t *testing.T) {
	post, err := storage.NewPost(
		storage.Author{FirstName: "Ada", LastName: "Lovelace"},
		"Hello",
		"World",
		time.Date(2025, 1, 12, 10, 22, 13, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("unexpected error creating post: %v", err)
	}

	view := newPostView(post)
	if view.Author != "Ada Lovelace" {
		t.Errorf("want view author %q, got view author %q", "Ada Lovelace", view.Author)
	}
	if view.Title != post.Title {
		t.Errorf("want view title %q, got view title %q", post.Title, view.Title)
	}
	if view.Content != post.Content {
		t.Errorf("want view content %q, got view content %q", post.Content, view.Content)
	}
	if !view.Created.Equal(post.Created) {
		t.Errorf("want view created %v, got view created %v", post.Created, view.Created)
	}
}
