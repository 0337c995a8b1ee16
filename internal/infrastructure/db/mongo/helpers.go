package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// deleteByID removes a single document, returning notFound when nothing matched.
func deleteByID(ctx context.Context, coll *mongo.Collection, id string, notFound error) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete from %s: %w", coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return notFound
	}
	return nil
}

func count(ctx context.Context, coll *mongo.Collection) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", coll.Name(), err)
	}
	return n, nil
}

// pull removes value from the array field of the document with the given id.
func pull(ctx context.Context, coll *mongo.Collection, id, field, value string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	vid, err := objectID(value)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := coll.UpdateByID(ctx, oid, bson.M{"$pull": bson.M{field: vid}}); err != nil {
		return fmt.Errorf("pull %s from %s: %w", field, coll.Name(), err)
	}
	return nil
}

// aggregate runs pipeline on coll and decodes every result into out.
func aggregate(ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline, out any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("aggregate %s: %w", coll.Name(), err)
	}
	if err := cur.All(ctx, out); err != nil {
		return fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	return nil
}
