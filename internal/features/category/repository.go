package category

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

type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	FindAll(ctx context.Context) ([]Category, error)
	FindPage(ctx context.Context, search string, skip, limit int64) ([]Category, int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*Category, error)
	FindByNameCI(ctx context.Context, name string) (*Category, error)
	FindByNameCIExcluding(ctx context.Context, name string, exclude primitive.ObjectID) (*Category, error)
	Search(ctx context.Context, pattern string) ([]Category, error)
	ResolveOrCreate(ctx context.Context, name string) (primitive.ObjectID, bool, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	SetSubCategoryIds(ctx context.Context, id primitive.ObjectID, subIds []primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	EnsureIndexes(ctx context.Context) error
}

type CategoryRepositoryImpl struct {
	collection *mongo.Collection
}

func NewCategoryRepository(db *database.MongodbDB) CategoryRepository {
	return &CategoryRepositoryImpl{
		collection: db.DB.Collection("categories"),
	}
}

func (r *CategoryRepositoryImpl) Create(ctx context.Context, category *Category) error {
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, category)
	if err != nil {
		return err
	}

	category.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *CategoryRepositoryImpl) FindAll(ctx context.Context) ([]Category, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepositoryImpl) FindPage(ctx context.Context, search string, skip, limit int64) ([]Category, int64, error) {
	filter := bson.M{}
	if search != "" {
		regex := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		filter = bson.M{"$or": bson.A{
			bson.M{"name": bson.M{"$regex": regex}},
			bson.M{"description": bson.M{"$regex": regex}},
		}}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var categories []Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

func (r *CategoryRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*Category, error) {
	var category Category
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepositoryImpl) FindByNameCI(ctx context.Context, name string) (*Category, error) {
	return r.findCI(ctx, name, bson.M{})
}

func (r *CategoryRepositoryImpl) FindByNameCIExcluding(ctx context.Context, name string, exclude primitive.ObjectID) (*Category, error) {
	return r.findCI(ctx, name, bson.M{"_id": bson.M{"$ne": exclude}})
}

func (r *CategoryRepositoryImpl) findCI(ctx context.Context, name string, extra bson.M) (*Category, error) {
	filter := bson.M{"name": bson.M{"$regex": primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(name) + "$",
		Options: "i",
	}}}
	for k, v := range extra {
		filter[k] = v
	}

	var category Category
	if err := r.collection.FindOne(ctx, filter).Decode(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepositoryImpl) Search(ctx context.Context, pattern string) ([]Category, error) {
	regex := primitive.Regex{Pattern: pattern, Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"name": bson.M{"$regex": regex}},
		bson.M{"description": bson.M{"$regex": regex}},
	}}

	opts := options.Find().
		SetProjection(bson.M{"name": 1, "categoryImagePath": 1, "description": 1}).
		SetSort(bson.M{"name": 1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ResolveOrCreate returns the id of the category with the given name,
// creating one with no image when absent. A duplicate-key error from a
// concurrent create is resolved by re-reading the winner.
func (r *CategoryRepositoryImpl) ResolveOrCreate(ctx context.Context, name string) (primitive.ObjectID, bool, error) {
	existing, err := r.FindByNameCI(ctx, name)
	if err == nil {
		return existing.ID, false, nil
	}
	if err != mongo.ErrNoDocuments {
		return primitive.NilObjectID, false, err
	}

	category := &Category{Name: name, CategoryImagePath: nil}
	if err := r.Create(ctx, category); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			winner, findErr := r.FindByNameCI(ctx, name)
			if findErr != nil {
				return primitive.NilObjectID, false, findErr
			}
			return winner.ID, false, nil
		}
		return primitive.NilObjectID, false, err
	}
	return category.ID, true, nil
}

func (r *CategoryRepositoryImpl) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	return err
}

func (r *CategoryRepositoryImpl) SetSubCategoryIds(ctx context.Context, id primitive.ObjectID, subIds []primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"subCategoryId": subIds, "updatedAt": time.Now()}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *CategoryRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// EnsureIndexes creates the unique name index the import race resolution
// relies on.
func (r *CategoryRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}
