package subcategory

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

type SubCategoryRepository interface {
	Create(ctx context.Context, sub *SubCategory) error
	FindAll(ctx context.Context) ([]SubCategory, error)
	FindPage(ctx context.Context, skip, limit int64) ([]SubCategory, int64, error)
	FindByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]SubCategory, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*SubCategory, error)
	FindByNameCI(ctx context.Context, name string, categoryID primitive.ObjectID) (*SubCategory, error)
	Search(ctx context.Context, pattern string, limit int64) ([]SubCategory, error)
	ResolveOrCreate(ctx context.Context, name string, categoryID primitive.ObjectID) (primitive.ObjectID, bool, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	EnsureIndexes(ctx context.Context) error
}

type SubCategoryRepositoryImpl struct {
	collection *mongo.Collection
}

func NewSubCategoryRepository(db *database.MongodbDB) SubCategoryRepository {
	return &SubCategoryRepositoryImpl{
		collection: db.DB.Collection("subcategories"),
	}
}

func (r *SubCategoryRepositoryImpl) Create(ctx context.Context, sub *SubCategory) error {
	sub.CreatedAt = time.Now()
	sub.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, sub)
	if err != nil {
		return err
	}

	sub.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *SubCategoryRepositoryImpl) FindAll(ctx context.Context) ([]SubCategory, error) {
	opts := options.Find().SetSort(bson.M{"name": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subs []SubCategory
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *SubCategoryRepositoryImpl) FindPage(ctx context.Context, skip, limit int64) ([]SubCategory, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSkip(skip).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var subs []SubCategory
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

func (r *SubCategoryRepositoryImpl) FindByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]SubCategory, error) {
	opts := options.Find().SetSort(bson.M{"name": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"categoryId": categoryID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subs []SubCategory
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *SubCategoryRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*SubCategory, error) {
	var sub SubCategory
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubCategoryRepositoryImpl) FindByNameCI(ctx context.Context, name string, categoryID primitive.ObjectID) (*SubCategory, error) {
	filter := bson.M{
		"name": bson.M{"$regex": primitive.Regex{
			Pattern: "^" + regexp.QuoteMeta(name) + "$",
			Options: "i",
		}},
		"categoryId": categoryID,
	}

	var sub SubCategory
	if err := r.collection.FindOne(ctx, filter).Decode(&sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubCategoryRepositoryImpl) Search(ctx context.Context, pattern string, limit int64) ([]SubCategory, error) {
	filter := bson.M{"name": bson.M{"$regex": primitive.Regex{Pattern: pattern, Options: "i"}}}
	opts := options.Find().SetSort(bson.M{"name": 1}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subs []SubCategory
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// ResolveOrCreate returns the id of the subcategory with the given name under
// the category, creating it when absent. A duplicate-key error from a
// concurrent create is resolved by re-reading the winner.
func (r *SubCategoryRepositoryImpl) ResolveOrCreate(ctx context.Context, name string, categoryID primitive.ObjectID) (primitive.ObjectID, bool, error) {
	existing, err := r.FindByNameCI(ctx, name, categoryID)
	if err == nil {
		return existing.ID, false, nil
	}
	if err != mongo.ErrNoDocuments {
		return primitive.NilObjectID, false, err
	}

	sub := &SubCategory{Name: name, CategoryID: categoryID}
	if err := r.Create(ctx, sub); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			winner, findErr := r.FindByNameCI(ctx, name, categoryID)
			if findErr != nil {
				return primitive.NilObjectID, false, findErr
			}
			return winner.ID, false, nil
		}
		return primitive.NilObjectID, false, err
	}
	return sub.ID, true, nil
}

func (r *SubCategoryRepositoryImpl) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	return err
}

func (r *SubCategoryRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *SubCategoryRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}, {Key: "categoryId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "categoryId", Value: 1}},
		},
	})
	return err
}
