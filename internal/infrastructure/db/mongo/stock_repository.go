package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stockpanel/admin-api/internal/core/domain"
)

type StockRepository struct {
	coll *mongo.Collection
}

func NewStockRepository(db *mongo.Database) *StockRepository {
	return &StockRepository{coll: db.Collection(collectionStocks)}
}

type stockDoc struct {
	ID      primitive.ObjectID   `bson:"_id"`
	Account primitive.ObjectID   `bson:"account"`
	Items   []primitive.ObjectID `bson:"items"`
}

type stockDetailDoc struct {
	ID      primitive.ObjectID `bson:"_id"`
	Account primitive.ObjectID `bson:"account"`
	Items   []itemDoc          `bson:"items"`
}

func (d *stockDetailDoc) toDomain() *domain.StockDetail {
	out := &domain.StockDetail{
		ID:      d.ID.Hex(),
		Account: d.Account.Hex(),
		Items:   make([]domain.Item, len(d.Items)),
	}
	for i := range d.Items {
		out.Items[i] = d.Items[i].toDomain()
	}
	return out
}

func (r *StockRepository) ListDetails(ctx context.Context) ([]*domain.StockDetail, error) {
	var docs []stockDetailDoc
	if err := aggregate(ctx, r.coll, stockDetailPipeline(bson.M{}), &docs); err != nil {
		return nil, err
	}

	out := make([]*domain.StockDetail, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

func (r *StockRepository) FindByID(ctx context.Context, id string) (*domain.Stock, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc stockDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStockNotFound
		}
		return nil, fmt.Errorf("find stock: %w", err)
	}
	return &domain.Stock{ID: doc.ID.Hex(), Account: doc.Account.Hex(), Items: hexes(doc.Items)}, nil
}

func (r *StockRepository) FindDetail(ctx context.Context, id string) (*domain.StockDetail, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var docs []stockDetailDoc
	if err := aggregate(ctx, r.coll, stockDetailPipeline(bson.M{"_id": oid}), &docs); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, domain.ErrStockNotFound
	}
	return docs[0].toDomain(), nil
}

func (r *StockRepository) IDsByAccount(ctx context.Context, accountID string) ([]string, error) {
	oid, err := objectID(accountID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cur, err := r.coll.Find(ctx, bson.M{"account": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("find account stocks: %w", err)
	}

	var rows []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode account stocks: %w", err)
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID.Hex()
	}
	return ids, nil
}

func (r *StockRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, id, domain.ErrStockNotFound)
}

func (r *StockRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	oids, err := objectIDs(ids)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return 0, fmt.Errorf("delete stocks: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *StockRepository) PullItem(ctx context.Context, stockID, itemID string) error {
	return pull(ctx, r.coll, stockID, "items", itemID)
}

func (r *StockRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.coll)
}
