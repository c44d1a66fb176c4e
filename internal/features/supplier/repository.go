package supplier

import (
	"context"
	"time"

	"go-procure/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SupplierRepository interface {
	Create(ctx context.Context, supplier *Supplier) error
	FindAll(ctx context.Context, skip, limit int64) ([]Supplier, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*Supplier, error)
	FindByEmail(ctx context.Context, email string) (*Supplier, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*Supplier, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*Supplier, error)
	Count(ctx context.Context) (int64, error)
	FindByFirstName(ctx context.Context, pattern string, skip, limit int64) ([]SupplierWithRefs, int64, error)
	FindSlim(ctx context.Context, skip, limit int64) ([]SupplierSlim, error)
	FindSlimByCompanyName(ctx context.Context, pattern string) ([]SupplierSlim, error)
}

type SupplierRepositoryImpl struct {
	collection *mongo.Collection
}

func NewSupplierRepository(db *database.MongodbDB) SupplierRepository {
	return &SupplierRepositoryImpl{
		collection: db.DB.Collection("suppliers"),
	}
}

func (r *SupplierRepositoryImpl) Create(ctx context.Context, supplier *Supplier) error {
	supplier.CreatedAt = time.Now()
	supplier.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, supplier)
	if err != nil {
		return err
	}

	supplier.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *SupplierRepositoryImpl) FindAll(ctx context.Context, skip, limit int64) ([]Supplier, error) {
	opts := options.Find().SetSkip(skip).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var suppliers []Supplier
	if err := cursor.All(ctx, &suppliers); err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (r *SupplierRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*Supplier, error) {
	var supplier Supplier
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&supplier); err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *SupplierRepositoryImpl) FindByEmail(ctx context.Context, email string) (*Supplier, error) {
	var supplier Supplier
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&supplier); err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *SupplierRepositoryImpl) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*Supplier, error) {
	fields["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated Supplier
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *SupplierRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) (*Supplier, error) {
	var deleted Supplier
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted); err != nil {
		return nil, err
	}
	return &deleted, nil
}

func (r *SupplierRepositoryImpl) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// FindByFirstName resolves the referenced category/subcategory/product names
// in a single aggregation instead of per-document population.
func (r *SupplierRepositoryImpl) FindByFirstName(ctx context.Context, pattern string, skip, limit int64) ([]SupplierWithRefs, int64, error) {
	filter := bson.M{"firstName": bson.M{"$regex": primitive.Regex{Pattern: pattern, Options: "i"}}}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$skip", Value: skip}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "categories",
			"localField":   "productCategories",
			"foreignField": "_id",
			"as":           "categoryDocs",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "subcategories",
			"localField":   "productSubCategories",
			"foreignField": "_id",
			"as":           "subCategoryDocs",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "products",
			"localField":   "products",
			"foreignField": "_id",
			"as":           "productDocs",
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var suppliers []SupplierWithRefs
	if err := cursor.All(ctx, &suppliers); err != nil {
		return nil, 0, err
	}
	return suppliers, total, nil
}

func (r *SupplierRepositoryImpl) FindSlim(ctx context.Context, skip, limit int64) ([]SupplierSlim, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1, "companyName": 1, "companyType": 1, "companyLogo": 1}).
		SetSort(bson.M{"companyName": 1}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var suppliers []SupplierSlim
	if err := cursor.All(ctx, &suppliers); err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (r *SupplierRepositoryImpl) FindSlimByCompanyName(ctx context.Context, pattern string) ([]SupplierSlim, error) {
	filter := bson.M{"companyName": bson.M{"$regex": primitive.Regex{Pattern: pattern, Options: "i"}}}
	opts := options.Find().SetProjection(bson.M{"_id": 1, "companyName": 1, "companyType": 1, "companyLogo": 1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var suppliers []SupplierSlim
	if err := cursor.All(ctx, &suppliers); err != nil {
		return nil, err
	}
	return suppliers, nil
}
