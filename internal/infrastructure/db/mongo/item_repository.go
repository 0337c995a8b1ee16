package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stockpanel/admin-api/internal/core/domain"
)

type ItemRepository struct {
	coll *mongo.Collection
}

func NewItemRepository(db *mongo.Database) *ItemRepository {
	return &ItemRepository{coll: db.Collection(collectionItems)}
}

type itemDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Stock     primitive.ObjectID `bson:"stock"`
	Name      string             `bson:"name"`
	Quantity  int                `bson:"quantity"`
	Price     float64            `bson:"price"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d *itemDoc) toDomain() domain.Item {
	return domain.Item{
		ID:        d.ID.Hex(),
		Stock:     d.Stock.Hex(),
		Name:      d.Name,
		Quantity:  d.Quantity,
		Price:     d.Price,
		CreatedAt: d.CreatedAt,
	}
}

type stockRefDoc struct {
	ID primitive.ObjectID `bson:"_id"`
}

// itemViewDoc is the shape produced by itemViewPipeline.
type itemViewDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Stock     []stockRefDoc      `bson:"stock"`
	Name      string             `bson:"name"`
	Quantity  int                `bson:"quantity"`
	Price     float64            `bson:"price"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d *itemViewDoc) toDomain() *domain.ItemView {
	out := &domain.ItemView{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Quantity:  d.Quantity,
		Price:     d.Price,
		CreatedAt: d.CreatedAt,
	}
	if len(d.Stock) > 0 {
		out.Stock = &domain.StockRef{ID: d.Stock[0].ID.Hex()}
	}
	return out
}

func (r *ItemRepository) List(ctx context.Context) ([]*domain.ItemView, error) {
	return r.views(ctx, bson.M{})
}

func (r *ItemRepository) Search(ctx context.Context, query string) ([]*domain.ItemView, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	return r.views(ctx, bson.M{"name": pattern})
}

func (r *ItemRepository) views(ctx context.Context, match bson.M) ([]*domain.ItemView, error) {
	var docs []itemViewDoc
	if err := aggregate(ctx, r.coll, itemViewPipeline(match), &docs); err != nil {
		return nil, err
	}

	out := make([]*domain.ItemView, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id string) (*domain.Item, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc itemDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("find item: %w", err)
	}
	item := doc.toDomain()
	return &item, nil
}

func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, id, domain.ErrItemNotFound)
}

func (r *ItemRepository) DeleteByStocks(ctx context.Context, stockIDs []string) (int64, error) {
	if len(stockIDs) == 0 {
		return 0, nil
	}
	oids, err := objectIDs(stockIDs)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"stock": bson.M{"$in": oids}})
	if err != nil {
		return 0, fmt.Errorf("delete stock items: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *ItemRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.coll)
}
