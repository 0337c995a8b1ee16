package mongo

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// lookupItems replaces the "items" id array of a stock with the item documents.
func lookupItems() bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from":         collectionItems,
		"localField":   "items",
		"foreignField": "_id",
		"as":           "items",
	}}}
}

// lookupStocksWithItems replaces the "stocks" id array of an account with the
// stock documents, each with its items populated.
func lookupStocksWithItems() bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from": collectionStocks,
		"let":  bson.M{"stockIds": bson.M{"$ifNull": bson.A{"$stocks", bson.A{}}}},
		"pipeline": mongo.Pipeline{
			{{Key: "$match", Value: bson.M{"$expr": bson.M{"$in": bson.A{"$_id", "$$stockIds"}}}}},
			lookupItems(),
		},
		"as": "stocks",
	}}}
}

// lookupUsers replaces field, an id or id array, with the matching users.
func lookupUsers(field string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from":         collectionUsers,
		"localField":   field,
		"foreignField": "_id",
		"as":           field,
	}}}
}

// lookupStockRef replaces the "stock" id of an item with a one-element array
// holding only the stock _id, or an empty array when the stock is gone.
func lookupStockRef() bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from": collectionStocks,
		"let":  bson.M{"stockId": "$stock"},
		"pipeline": mongo.Pipeline{
			{{Key: "$match", Value: bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$stockId"}}}}},
			{{Key: "$project", Value: bson.M{"_id": 1}}},
		},
		"as": "stock",
	}}}
}

// accountDetailPipeline resolves owner (email only), managers and
// stocks→items for a single account.
func accountDetailPipeline(id primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": id}}},
		{{Key: "$limit", Value: 1}},
		lookupUsers("owner"),
		lookupUsers("managers"),
		lookupStocksWithItems(),
	}
}

func stockDetailPipeline(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		lookupItems(),
	}
}

func itemViewPipeline(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		lookupStockRef(),
	}
}
