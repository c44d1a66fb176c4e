package search

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNoSuppliers is returned when a supplier-name search matches nothing.
var ErrNoSuppliers = errors.New("no suppliers found with the given name")

type SearchService interface {
	Global(ctx context.Context, query string, page, limit int64) ([]SearchRow, int64, error)
	ByProductName(ctx context.Context, query string, page, limit int64) ([]SearchRow, int64, error)
	ByItemCode(ctx context.Context, query string, page, limit int64) ([]SearchRow, int64, error)
	ByCategoryName(ctx context.Context, query string, page, limit int64) ([]SearchRow, int64, error)
	BySubCategoryName(ctx context.Context, query string, page, limit int64) ([]SearchRow, int64, error)
	BySupplierName(ctx context.Context, query string, page, limit int64) ([]SearchRow, int64, error)
}

type SearchServiceImpl struct {
	SearchRepo SearchRepository
}

func NewSearchService(searchRepo SearchRepository) SearchService {
	return &SearchServiceImpl{SearchRepo: searchRepo}
}

func regexFilter(field, query string) bson.M {
	return bson.M{field: bson.M{"$regex": primitive.Regex{
		Pattern: regexp.QuoteMeta(query),
		Options: "i",
	}}}
}

func (s *SearchServiceImpl) Global(ctx context.Context, query string, page, limit int64) ([]SearchRow, int64, error) {
	regex := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"ProductName": bson.M{"$regex": regex}},
		bson.M{"Category.CategoryName": bson.M{"$regex": regex}},
		bson.M{"SubCategory.SubCategoryName": bson.M{"$regex": regex}},
		bson.M{"ItemCode": bson.M{"$regex": regex}},
	}}
	return s.SearchRepo.Search(ctx, filter, (page-1)*limit, limit)
}

func (s *SearchServiceImpl) ByProductName(ctx context.Context, query string, page, limit int64) ([]SearchRow, int64, error) {
	return s.SearchRepo.Search(ctx, regexFilter("ProductName", query), (page-1)*limit, limit)
}

// ByItemCode anchors the pattern at the start so "IC1" matches IC1xxx but
// not xxIC1.
func (s *SearchServiceImpl) ByItemCode(ctx context.Context, query string, page, limit int64) ([]SearchRow, int64, error) {
	filter := bson.M{"ItemCode": bson.M{"$regex": primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(query),
		Options: "i",
	}}}
	return s.SearchRepo.Search(ctx, filter, (page-1)*limit, limit)
}

func (s *SearchServiceImpl) ByCategoryName(ctx context.Context, query string, page, limit int64) ([]SearchRow, int64, error) {
	return s.SearchRepo.Search(ctx, regexFilter("Category.CategoryName", query), (page-1)*limit, limit)
}

func (s *SearchServiceImpl) BySubCategoryName(ctx context.Context, query string, page, limit int64) ([]SearchRow, int64, error) {
	filter := bson.M{}
	if query != "" {
		filter = regexFilter("SubCategory.SubCategoryName", query)
	}
	return s.SearchRepo.Search(ctx, filter, (page-1)*limit, limit)
}

func (s *SearchServiceImpl) BySupplierName(ctx context.Context, query string, page, limit int64) ([]SearchRow, int64, error) {
	ids, err := s.SearchRepo.FindSupplierIDs(ctx, regexp.QuoteMeta(query))
	if err != nil {
		return nil, 0, err
	}
	if len(ids) == 0 {
		return nil, 0, ErrNoSuppliers
	}

	filter := bson.M{"supplierId": bson.M{"$in": ids}}
	return s.SearchRepo.Search(ctx, filter, (page-1)*limit, limit)
}
