package banner

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

type BannerRepository interface {
	Create(ctx context.Context, banner *Banner) error
	FindPage(ctx context.Context, search string, skip, limit int64) ([]Banner, int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*Banner, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*Banner, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type BannerRepositoryImpl struct {
	collection *mongo.Collection
}

func NewBannerRepository(db *database.MongodbDB) BannerRepository {
	return &BannerRepositoryImpl{
		collection: db.DB.Collection("banners"),
	}
}

func (r *BannerRepositoryImpl) Create(ctx context.Context, banner *Banner) error {
	banner.CreatedAt = time.Now()
	banner.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, banner)
	if err != nil {
		return err
	}

	banner.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *BannerRepositoryImpl) FindPage(ctx context.Context, search string, skip, limit int64) ([]Banner, int64, error) {
	filter := bson.M{}
	if search != "" {
		regex := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		filter = bson.M{"$or": bson.A{
			bson.M{"description": bson.M{"$regex": regex}},
			bson.M{"bannerImage": bson.M{"$regex": regex}},
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

	var banners []Banner
	if err := cursor.All(ctx, &banners); err != nil {
		return nil, 0, err
	}
	return banners, total, nil
}

func (r *BannerRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*Banner, error) {
	var banner Banner
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&banner); err != nil {
		return nil, err
	}
	return &banner, nil
}

func (r *BannerRepositoryImpl) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*Banner, error) {
	fields["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Banner
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *BannerRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
