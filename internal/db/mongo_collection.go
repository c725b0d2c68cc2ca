package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var byID = bson.D{{Key: "_id", Value: 1}}

type mongoCollection[T any, PT document[T]] struct {
	coll *mongo.Collection
}

func newMongoCollection[T any, PT document[T]](coll *mongo.Collection) *mongoCollection[T, PT] {
	return &mongoCollection[T, PT]{coll: coll}
}

func (c *mongoCollection[T, PT]) FindAll(ctx context.Context) ([]T, error) {
	cursor, err := c.coll.Find(ctx, bson.D{}, options.Find().SetSort(byID))
	if err != nil {
		return nil, err
	}
	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *mongoCollection[T, PT]) FindOne(ctx context.Context, field string, value any) (*T, error) {
	var doc T
	err := c.coll.FindOne(ctx, bson.D{{Key: field, Value: value}}, options.FindOne().SetSort(byID)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (c *mongoCollection[T, PT]) Insert(ctx context.Context, doc *T) error {
	batch := []T{*doc}
	if err := prepare[T, PT](batch); err != nil {
		return err
	}
	if _, err := c.coll.InsertOne(ctx, &batch[0]); err != nil {
		return translateMongoError(err)
	}
	*doc = batch[0]
	return nil
}

// InsertMany performs an ordered insert. Mongo has no cross-document
// atomicity here: documents before a failing one stay written.
func (c *mongoCollection[T, PT]) InsertMany(ctx context.Context, docs []T) error {
	if len(docs) == 0 {
		return nil
	}
	if err := prepare[T, PT](docs); err != nil {
		return err
	}
	items := make([]any, len(docs))
	for i := range docs {
		items[i] = &docs[i]
	}
	_, err := c.coll.InsertMany(ctx, items)
	return translateMongoError(err)
}

func (c *mongoCollection[T, PT]) Count(ctx context.Context) (int64, error) {
	return c.coll.CountDocuments(ctx, bson.D{})
}

func translateMongoError(err error) error {
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}
