package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stockpanel/admin-api/internal/core/domain"
)

type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(collectionAccounts)}
}

type accountDoc struct {
	ID       primitive.ObjectID   `bson:"_id"`
	Name     string               `bson:"name"`
	Plan     string               `bson:"plan"`
	Owner    primitive.ObjectID   `bson:"owner"`
	Managers []primitive.ObjectID `bson:"managers"`
	Stocks   []primitive.ObjectID `bson:"stocks"`
}

func (d *accountDoc) toDomain() *domain.Account {
	return &domain.Account{
		ID:       d.ID.Hex(),
		Name:     d.Name,
		Plan:     domain.Plan(d.Plan),
		Owner:    d.Owner.Hex(),
		Managers: hexes(d.Managers),
		Stocks:   hexes(d.Stocks),
	}
}

// accountDetailDoc is the shape produced by accountDetailPipeline. $lookup
// always yields arrays, so the owner arrives as zero or one users.
type accountDetailDoc struct {
	ID       primitive.ObjectID `bson:"_id"`
	Name     string             `bson:"name"`
	Plan     string             `bson:"plan"`
	Owner    []userDoc          `bson:"owner"`
	Managers []userDoc          `bson:"managers"`
	Stocks   []stockDetailDoc   `bson:"stocks"`
}

func (d *accountDetailDoc) toDomain() *domain.AccountDetail {
	out := &domain.AccountDetail{
		ID:       d.ID.Hex(),
		Name:     d.Name,
		Plan:     domain.Plan(d.Plan),
		Managers: make([]domain.User, len(d.Managers)),
		Stocks:   make([]domain.StockDetail, len(d.Stocks)),
	}
	if len(d.Owner) > 0 {
		out.Owner = &domain.OwnerRef{ID: d.Owner[0].ID.Hex(), Email: d.Owner[0].Email}
	}
	for i := range d.Managers {
		out.Managers[i] = d.Managers[i].toDomain()
	}
	for i := range d.Stocks {
		out.Stocks[i] = *d.Stocks[i].toDomain()
	}
	return out
}

func (r *AccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find accounts: %w", err)
	}
	var docs []accountDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}

	out := make([]*domain.Account, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc accountDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AccountRepository) FindDetail(ctx context.Context, id string) (*domain.AccountDetail, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var docs []accountDetailDoc
	if err := aggregate(ctx, r.coll, accountDetailPipeline(oid), &docs); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, domain.ErrAccountNotFound
	}
	return docs[0].toDomain(), nil
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, id, domain.ErrAccountNotFound)
}

func (r *AccountRepository) CountByOwner(ctx context.Context, userID string) (int64, error) {
	oid, err := objectID(userID)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"owner": oid})
	if err != nil {
		return 0, fmt.Errorf("count owned accounts: %w", err)
	}
	return n, nil
}

func (r *AccountRepository) CountByPlan(ctx context.Context) (map[domain.Plan]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$plan", "n": bson.M{"$sum": 1}}}},
	}

	var rows []struct {
		Plan string `bson:"_id"`
		N    int64  `bson:"n"`
	}
	if err := aggregate(ctx, r.coll, pipeline, &rows); err != nil {
		return nil, err
	}

	out := make(map[domain.Plan]int64, len(rows))
	for _, row := range rows {
		out[domain.Plan(row.Plan)] = row.N
	}
	return out, nil
}

// PullManager removes userID from the managers of every account.
func (r *AccountRepository) PullManager(ctx context.Context, userID string) error {
	oid, err := objectID(userID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = r.coll.UpdateMany(ctx, bson.M{"managers": oid}, bson.M{"$pull": bson.M{"managers": oid}})
	if err != nil {
		return fmt.Errorf("pull manager: %w", err)
	}
	return nil
}

func (r *AccountRepository) PullStock(ctx context.Context, accountID, stockID string) error {
	return pull(ctx, r.coll, accountID, "stocks", stockID)
}

func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.coll)
}
