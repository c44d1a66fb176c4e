package product

import (
	"context"
	"time"

	"go-procure/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindAll(ctx context.Context, skip, limit int64) ([]Product, error)
	Count(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*ProductWithSupplier, error)
	FindByItemCode(ctx context.Context, itemCode string) (*Product, error)
	FindByQuery(ctx context.Context, pattern string, skip, limit int64) ([]ProductWithSupplier, int64, error)
	FindByCategoryName(ctx context.Context, pattern string, skip, limit int64) ([]ProductWithSupplier, int64, error)
	FindBySubCategoryName(ctx context.Context, pattern string, skip, limit int64) ([]ProductWithSupplier, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*Product, error)
	EnsureIndexes(ctx context.Context) error
}

type ProductRepositoryImpl struct {
	collection *mongo.Collection
}

func NewProductRepository(db *database.MongodbDB) ProductRepository {
	return &ProductRepositoryImpl{
		collection: db.DB.Collection("products"),
	}
}

func (r *ProductRepositoryImpl) Create(ctx context.Context, product *Product) error {
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		return err
	}

	product.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *ProductRepositoryImpl) FindAll(ctx context.Context, skip, limit int64) ([]Product, error) {
	opts := options.Find().SetSkip(skip).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepositoryImpl) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *ProductRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*ProductWithSupplier, error) {
	products, err := r.aggregateWithSupplier(ctx, bson.M{"_id": id}, 0, 1)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return &products[0], nil
}

func (r *ProductRepositoryImpl) FindByItemCode(ctx context.Context, itemCode string) (*Product, error) {
	var product Product
	if err := r.collection.FindOne(ctx, bson.M{"ItemCode": itemCode}).Decode(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepositoryImpl) FindByQuery(ctx context.Context, pattern string, skip, limit int64) ([]ProductWithSupplier, int64, error) {
	regex := primitive.Regex{Pattern: pattern, Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"ProductName": bson.M{"$regex": regex}},
		bson.M{"ItemCode": bson.M{"$regex": regex}},
	}}
	return r.pageWithSupplier(ctx, filter, skip, limit)
}

func (r *ProductRepositoryImpl) FindByCategoryName(ctx context.Context, pattern string, skip, limit int64) ([]ProductWithSupplier, int64, error) {
	filter := bson.M{"Category.CategoryName": bson.M{
		"$regex": primitive.Regex{Pattern: pattern, Options: "i"},
	}}
	return r.pageWithSupplier(ctx, filter, skip, limit)
}

func (r *ProductRepositoryImpl) FindBySubCategoryName(ctx context.Context, pattern string, skip, limit int64) ([]ProductWithSupplier, int64, error) {
	filter := bson.M{"SubCategory.SubCategoryName": bson.M{
		"$regex": primitive.Regex{Pattern: pattern, Options: "i"},
	}}
	return r.pageWithSupplier(ctx, filter, skip, limit)
}

func (r *ProductRepositoryImpl) pageWithSupplier(ctx context.Context, filter bson.M, skip, limit int64) ([]ProductWithSupplier, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	products, err := r.aggregateWithSupplier(ctx, filter, skip, limit)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// aggregateWithSupplier joins the supplier's company name onto each product,
// mirroring a populate on supplierId.
func (r *ProductRepositoryImpl) aggregateWithSupplier(ctx context.Context, filter bson.M, skip, limit int64) ([]ProductWithSupplier, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: filter}},
		bson.D{{Key: "$skip", Value: skip}},
		bson.D{{Key: "$limit", Value: limit}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "suppliers",
			"localField":   "supplierId",
			"foreignField": "_id",
			"as":           "supplier",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$supplier",
			"preserveNullAndEmptyArrays": true,
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"ProductName":          1,
			"ItemCode":             1,
			"Category":             1,
			"SubCategory":          1,
			"Unit":                 1,
			"createdAt":            1,
			"updatedAt":            1,
			"supplier._id":         1,
			"supplier.companyName": 1,
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []ProductWithSupplier
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepositoryImpl) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*Product, error) {
	fields["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Product
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *ProductRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) (*Product, error) {
	var deleted Product
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted); err != nil {
		return nil, err
	}
	return &deleted, nil
}

// EnsureIndexes creates the unique item code index the import pipeline's
// duplicate checks rely on, plus the name lookups used by search.
func (r *ProductRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ItemCode", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "Category.CategoryName", Value: 1}}},
		{Keys: bson.D{{Key: "SubCategory.SubCategoryName", Value: 1}}},
		{Keys: bson.D{{Key: "ProductName", Value: 1}, {Key: "ItemCode", Value: 1}}},
	})
	return err
}
