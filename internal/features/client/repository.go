package client

import (
	"context"
	"regexp"
	"time"

	"go-procure/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ClientRepository interface {
	Create(ctx context.Context, client *Client) error
	FindPage(ctx context.Context, search string, skip, limit int64) ([]ClientPopulated, int64, error)
	FindByIDPopulated(ctx context.Context, id primitive.ObjectID) (*ClientPopulated, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*Client, error)
	FindByEmail(ctx context.Context, email string) (*Client, error)
	FindByEmailExcluding(ctx context.Context, email string, exclude primitive.ObjectID) (*Client, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	EnsureIndexes(ctx context.Context) error
}

type ClientRepositoryImpl struct {
	collection *mongo.Collection
}

func NewClientRepository(db *database.MongodbDB) ClientRepository {
	return &ClientRepositoryImpl{
		collection: db.DB.Collection("clients"),
	}
}

func (r *ClientRepositoryImpl) Create(ctx context.Context, client *Client) error {
	client.CreatedAt = time.Now()
	client.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, client)
	if err != nil {
		return err
	}

	client.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *ClientRepositoryImpl) FindPage(ctx context.Context, search string, skip, limit int64) ([]ClientPopulated, int64, error) {
	filter := bson.M{}
	if search != "" {
		regex := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		filter = bson.M{"$or": bson.A{
			bson.M{"name": bson.M{"$regex": regex}},
			bson.M{"companyName": bson.M{"$regex": regex}},
			bson.M{"email": bson.M{"$regex": regex}},
			bson.M{"phoneNo": bson.M{"$regex": regex}},
		}}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	pipeline := append(mongo.Pipeline{
		bson.D{{Key: "$match", Value: filter}},
		bson.D{{Key: "$sort", Value: bson.M{"createdAt": -1}}},
		bson.D{{Key: "$skip", Value: skip}},
		bson.D{{Key: "$limit", Value: limit}},
	}, populateStages()...)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var clients []ClientPopulated
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

func (r *ClientRepositoryImpl) FindByIDPopulated(ctx context.Context, id primitive.ObjectID) (*ClientPopulated, error) {
	pipeline := append(mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": id}}},
	}, populateStages()...)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var clients []ClientPopulated
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return &clients[0], nil
}

// populateStages joins product, subcategory and supplier display fields,
// mirroring the populate calls on client reads.
func populateStages() mongo.Pipeline {
	unwind := func(path string) bson.D {
		return bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       path,
			"preserveNullAndEmptyArrays": true,
		}}}
	}
	return mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.M{
			"from": "products", "localField": "product", "foreignField": "_id", "as": "product",
		}}},
		unwind("$product"),
		bson.D{{Key: "$lookup", Value: bson.M{
			"from": "subcategories", "localField": "subCategory", "foreignField": "_id", "as": "subCategory",
		}}},
		unwind("$subCategory"),
		bson.D{{Key: "$lookup", Value: bson.M{
			"from": "suppliers", "localField": "supplier", "foreignField": "_id", "as": "supplier",
		}}},
		unwind("$supplier"),
		bson.D{{Key: "$project", Value: bson.M{
			"name":                 1,
			"companyName":          1,
			"phoneNo":              1,
			"email":                1,
			"createdAt":            1,
			"updatedAt":            1,
			"product._id":          1,
			"product.ItemCode":     1,
			"product.ProductName":  1,
			"subCategory._id":      1,
			"subCategory.name":     1,
			"supplier._id":         1,
			"supplier.companyName": 1,
		}}},
	}
}

func (r *ClientRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*Client, error) {
	var client Client
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepositoryImpl) FindByEmail(ctx context.Context, email string) (*Client, error) {
	var client Client
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepositoryImpl) FindByEmailExcluding(ctx context.Context, email string, exclude primitive.ObjectID) (*Client, error) {
	filter := bson.M{"email": email, "_id": bson.M{"$ne": exclude}}
	var client Client
	if err := r.collection.FindOne(ctx, filter).Decode(&client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepositoryImpl) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	return err
}

func (r *ClientRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *ClientRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}
