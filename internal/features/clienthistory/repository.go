package clienthistory

import (
	"context"
	"time"

	"go-procure/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ClientHistoryRepository interface {
	Create(ctx context.Context, history *ClientHistory) error
	FindByClient(ctx context.Context, clientID primitive.ObjectID) ([]HistoryPopulated, error)
}

type ClientHistoryRepositoryImpl struct {
	collection *mongo.Collection
}

func NewClientHistoryRepository(db *database.MongodbDB) ClientHistoryRepository {
	return &ClientHistoryRepositoryImpl{
		collection: db.DB.Collection("clienthistories"),
	}
}

func (r *ClientHistoryRepositoryImpl) Create(ctx context.Context, history *ClientHistory) error {
	history.CreatedAt = time.Now()
	history.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, history)
	if err != nil {
		return err
	}

	history.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *ClientHistoryRepositoryImpl) FindByClient(ctx context.Context, clientID primitive.ObjectID) ([]HistoryPopulated, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"clientId": clientID}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from": "clients", "localField": "clientId", "foreignField": "_id", "as": "client",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$client",
			"preserveNullAndEmptyArrays": true,
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"enquiryStatus": 1,
			"createdAt":     1,
			"updatedAt":     1,
			"client._id":    1,
			"client.name":   1,
			"client.email":  1,
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var history []HistoryPopulated
	if err := cursor.All(ctx, &history); err != nil {
		return nil, err
	}
	return history, nil
}
