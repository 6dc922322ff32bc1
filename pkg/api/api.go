package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gofrs/uuid"
	"github.com/gorilla/mux"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"blog/pkg/storage"
)

type API struct {
	ServiceName string

	r  *mux.Router
	db storage.Storage
	kw *kafka.Writer
}

func New(name string, db storage.Storage, kafkaWriter *kafka.Writer) *API {
	api := API{
		ServiceName: name,
		r:           mux.NewRouter(),
		db:          db,
		kw:          kafkaWriter,
	}
	api.endpoints()

	return &api
}

func (api *API) Router() *mux.Router {
	return api.r
}

func (api *API) endpoints() {
	api.r.Use(api.requestIDMiddleware)
	api.r.Use(api.headerMiddleware)

	if api.kw != nil {
		api.r.Use(api.loggingMiddleware(api.kw))
	}

	api.r.HandleFunc("/posts", api.postsHandler).Methods(http.MethodGet)
	api.r.HandleFunc("/posts", api.createPostHandler).Methods(http.MethodPost)
	api.r.HandleFunc("/posts/{id}", api.postDetailedHandler).Methods(http.MethodGet)
	api.r.HandleFunc("/posts/{id}", api.updatePostHandler).Methods(http.MethodPut)
	api.r.HandleFunc("/posts/{id}", api.deletePostHandler).Methods(http.MethodDelete)
}

func (api *API) postsHandler(w http.ResponseWriter, r *http.Request) {
	reqID := GetRequestID(r.Context())
	sID := shorten(reqID)

	posts, err := api.db.Posts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		log.Errorf("[postsHandler][%s] Posts() returned error: %v", sID, err)
		return
	}

	views := make([]PostView, 0, len(posts))
	for _, post := range posts {
		views = append(views, newPostView(post))
	}

	if err := json.NewEncoder(w).Encode(views); err != nil {
		log.Errorf("[postsHandler][%s] failed to encode response data: %v", sID, err)
		return
	}

	log.Debugf("[postsHandler][%s] response sent to: %v", sID, r.RemoteAddr)
}

func (api *API) postDetailedHandler(w http.ResponseWriter, r *http.Request) {
	reqID := GetRequestID(r.Context())
	sID := shorten(reqID)

	id, err := uuid.FromString(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid post ID")
		log.Debugf("[postDetailedHandler][%s] failed to parse post ID: %v", sID, err)
		return
	}

	post, err := api.db.Post(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrPostNotFound) {
			writeError(w, http.StatusNotFound, "Post not found")
			log.Debugf("[postDetailedHandler][%s] post ID:%v not found", sID, id)
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		log.Errorf("[postDetailedHandler][%s] post ID:%v: %v", sID, id, err)
		return
	}

	if err := json.NewEncoder(w).Encode(newPostView(post)); err != nil {
		log.Errorf("[postDetailedHandler][%s] failed to encode post data: %v", sID, err)
		return
	}

	log.Debugf("[postDetailedHandler][%s] response sent to: %v", sID, r.RemoteAddr)
}

func (api *API) createPostHandler(w http.ResponseWriter, r *http.Request) {
	reqID := GetRequestID(r.Context())
	sID := shorten(reqID)

	payload, err := decodePostPayload(r.Body)
	defer r.Body.Close()
	if err != nil {
		badRequest(w, err)
		log.Debugf("[createPostHandler][%s] failed to decode request body: %v", sID, err)
		return
	}

	post, err := payload.toPost()
	if err != nil {
		badRequest(w, err)
		log.Debugf("[createPostHandler][%s] invalid create payload: %v", sID, err)
		return
	}

	post, err = api.db.AddPost(r.Context(), post)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		log.Errorf("[createPostHandler][%s] AddPost() returned error: %v", sID, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(newPostView(post)); err != nil {
		log.Errorf("[createPostHandler][%s] failed to encode post data: %v", sID, err)
		return
	}

	log.Debugf("[createPostHandler][%s] post ID:%v created", sID, post.ID)
}

func (api *API) updatePostHandler(w http.ResponseWriter, r *http.Request) {
	reqID := GetRequestID(r.Context())
	sID := shorten(reqID)

	id, err := uuid.FromString(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid post ID")
		log.Debugf("[updatePostHandler][%s] failed to parse post ID: %v", sID, err)
		return
	}

	payload, err := decodePostPayload(r.Body)
	defer r.Body.Close()
	if err != nil {
		badRequest(w, err)
		log.Debugf("[updatePostHandler][%s] failed to decode request body: %v", sID, err)
		return
	}

	upd, err := payload.toUpdate()
	if err != nil {
		badRequest(w, err)
		log.Debugf("[updatePostHandler][%s] invalid update payload: %v", sID, err)
		return
	}

	err = api.db.UpdatePost(r.Context(), id, upd)
	if err != nil {
		if errors.Is(err, storage.ErrPostNotFound) {
			writeError(w, http.StatusNotFound, "Post not found")
			log.Debugf("[updatePostHandler][%s] post ID:%v not found", sID, id)
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		log.Errorf("[updatePostHandler][%s] UpdatePost() returned error: %v", sID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	log.Debugf("[updatePostHandler][%s] post ID:%v updated", sID, id)
}

func (api *API) deletePostHandler(w http.ResponseWriter, r *http.Request) {
	reqID := GetRequestID(r.Context())
	sID := shorten(reqID)

	id, err := uuid.FromString(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid post ID")
		log.Debugf("[deletePostHandler][%s] failed to parse post ID: %v", sID, err)
		return
	}

	err = api.db.DeletePost(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrPostNotFound) {
			writeError(w, http.StatusNotFound, "Post not found")
			log.Debugf("[deletePostHandler][%s] post ID:%v not found", sID, id)
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		log.Errorf("[deletePostHandler][%s] DeletePost() returned error: %v", sID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	log.Debugf("[deletePostHandler][%s] post ID:%v deleted", sID, id)
}

// badRequest sends a 400 response. Validation errors carry the offending
// field list in the details array; other decode errors get a generic body.
func badRequest(w http.ResponseWriter, err error) {
	var vErr *storage.ValidationError
	if errors.As(err, &vErr) {
		writeError(w, http.StatusBadRequest, "Invalid post payload", vErr.Fields...)
		return
	}
	writeError(w, http.StatusBadRequest, "Malformed request body")
}

// GetRequestID extracts the request ID from the context.
// It returns the request ID as a string if present, otherwise returns an empty string.
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(RequestIDKey).(string); ok {
		return v
	}
	return ""
}

// shorten truncates a string to 6 characters if it is longer than 6, appends '...' at the end,
// otherwise it returns the string unchanged.
func shorten(s string) string {
	if len(s) > 6 {
		return s[:6] + "..."
	}
	return s
}
