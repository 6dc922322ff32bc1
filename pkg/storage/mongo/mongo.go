package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blog/pkg/storage"
)

const collPosts = "posts"

type Storage struct {
	client *mongo.Client
	dbName string
}

func New(ctx context.Context, conf *Config) (*Storage, error) {
	client, err := mongo.Connect(ctx, conf.Options())
	if err != nil {
		return nil, err
	}

	s := Storage{client: client, dbName: conf.DBName}
	s.createCollection(ctx, collPosts)

	return &s, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Storage) Close(ctx context.Context) {
	s.client.Disconnect(ctx)
}

func (s *Storage) posts() *mongo.Collection {
	return s.client.Database(s.dbName).Collection(collPosts)
}

// AddPost inserts a new post and returns the stored entity. If the post's ID
// or Created timestamp are zero values, they are assigned here.
func (s *Storage) AddPost(ctx context.Context, post storage.Post) (storage.Post, error) {
	if post.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			return storage.Post{}, err
		}
		post.ID = id
	}

	if post.Created.IsZero() {
		post.Created = time.Now()
	}

	if _, err := s.posts().InsertOne(ctx, post); err != nil {
		return storage.Post{}, err
	}

	return post, nil
}

// Posts returns all stored posts sorted by Created ascending. An empty
// collection yields an empty slice, not an error.
func (s *Storage) Posts(ctx context.Context) ([]storage.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created", Value: 1}})

	cur, err := s.posts().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	posts := []storage.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}

	return posts, nil
}

// Post returns the post with the given ID, or storage.ErrPostNotFound when
// no document matches.
func (s *Storage) Post(ctx context.Context, id uuid.UUID) (storage.Post, error) {
	var post storage.Post
	err := s.posts().FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return storage.Post{}, storage.ErrPostNotFound
		}
		return storage.Post{}, err
	}

	return post, nil
}

// UpdatePost sets only the fields present in upd on the post with the given
// ID. An empty update still verifies the post exists. Returns
// storage.ErrPostNotFound when the ID does not resolve.
func (s *Storage) UpdatePost(ctx context.Context, id uuid.UUID, upd storage.PostUpdate) error {
	set := bson.M{}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Content != nil {
		set["content"] = *upd.Content
	}
	if upd.Author != nil {
		set["author"] = *upd.Author
	}

	if len(set) == 0 {
		cnt, err := s.posts().CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if cnt == 0 {
			return storage.ErrPostNotFound
		}
		return nil
	}

	res, err := s.posts().UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return storage.ErrPostNotFound
	}

	return nil
}

// DeletePost removes the post with the given ID. Deleting an unknown ID is
// storage.ErrPostNotFound, not a silent success.
func (s *Storage) DeletePost(ctx context.Context, id uuid.UUID) error {
	res, err := s.posts().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return storage.ErrPostNotFound
	}

	return nil
}

// Count returns the number of live post documents.
func (s *Storage) Count(ctx context.Context) (int64, error) {
	return s.posts().CountDocuments(ctx, bson.M{})
}

// createCollection creates a collection with the given name in the database if it doesn't already exist.
func (s *Storage) createCollection(ctx context.Context, collName string) error {
	collExists, err := collectionExists(ctx, s.client.Database(s.dbName), collName)
	if err != nil {
		return err
	}

	if !collExists {
		err := s.client.Database(s.dbName).CreateCollection(ctx, collName)
		if err != nil {
			return err
		}
	}

	return nil
}

// collectionExists checks if a collection with the given name exists in the database.
func collectionExists(ctx context.Context, db *mongo.Database, collName string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return false, err
	}

	for _, name := range names {
		if name == collName {
			return true, nil
		}
	}

	return false, nil
}
