package search

import (
	"context"

	"go-procure/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SearchRepository interface {
	Search(ctx context.Context, filter bson.M, skip, limit int64) ([]SearchRow, int64, error)
	FindSupplierIDs(ctx context.Context, pattern string) ([]primitive.ObjectID, error)
}

type SearchRepositoryImpl struct {
	products  *mongo.Collection
	suppliers *mongo.Collection
}

func NewSearchRepository(db *database.MongodbDB) SearchRepository {
	return &SearchRepositoryImpl{
		products:  db.DB.Collection("products"),
		suppliers: db.DB.Collection("suppliers"),
	}
}

type searchDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	ProductName string             `bson:"ProductName"`
	ItemCode    string             `bson:"ItemCode"`
	Category    struct {
		CategoryName string `bson:"CategoryName"`
	} `bson:"Category"`
	SubCategory struct {
		SubCategoryName string `bson:"SubCategoryName"`
	} `bson:"SubCategory"`
	Supplier *struct {
		ID            primitive.ObjectID `bson:"_id"`
		CompanyName   string             `bson:"companyName"`
		ContactNumber string             `bson:"contactNumber"`
		Email         string             `bson:"email"`
	} `bson:"supplier"`
}

// Search runs a product filter with the supplier contact details joined and
// flattens the results into response rows.
func (r *SearchRepositoryImpl) Search(ctx context.Context, filter bson.M, skip, limit int64) ([]SearchRow, int64, error) {
	total, err := r.products.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

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
			"ProductName":            1,
			"ItemCode":               1,
			"Category.CategoryName":  1,
			"SubCategory.SubCategoryName": 1,
			"supplier._id":           1,
			"supplier.companyName":   1,
			"supplier.contactNumber": 1,
			"supplier.email":         1,
		}}},
	}

	cursor, err := r.products.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var docs []searchDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	rows := make([]SearchRow, 0, len(docs))
	for _, doc := range docs {
		row := SearchRow{
			ProductID:       doc.ID.Hex(),
			ProductName:     doc.ProductName,
			ItemCode:        doc.ItemCode,
			CategoryName:    doc.Category.CategoryName,
			SubCategoryName: doc.SubCategory.SubCategoryName,
		}
		if doc.Supplier != nil {
			row.SupplierID = doc.Supplier.ID.Hex()
			row.SupplierName = doc.Supplier.CompanyName
			row.SupplierContactNumber = doc.Supplier.ContactNumber
			row.SupplierEmailID = doc.Supplier.Email
		}
		rows = append(rows, row)
	}
	return rows, total, nil
}

// FindSupplierIDs returns the ids of suppliers whose company or contact name
// matches the pattern.
func (r *SearchRepositoryImpl) FindSupplierIDs(ctx context.Context, pattern string) ([]primitive.ObjectID, error) {
	regex := primitive.Regex{Pattern: pattern, Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"companyName": bson.M{"$regex": regex}},
		bson.M{"firstName": bson.M{"$regex": regex}},
		bson.M{"lastName": bson.M{"$regex": regex}},
	}}

	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.suppliers.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	return ids, nil
}
