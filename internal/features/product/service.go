package product

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("product not found")

type ProductService interface {
	List(ctx context.Context, page, limit int64) ([]Product, int64, error)
	Get(ctx context.Context, id primitive.ObjectID) (*ProductWithSupplier, error)
	Create(ctx context.Context, product *Product) (*Product, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*Product, error)
	Search(ctx context.Context, query string, page, limit int64) ([]ProductWithSupplier, int64, error)
	ByCategory(ctx context.Context, name string, page, limit int64) ([]ProductWithSupplier, int64, error)
	BySubCategory(ctx context.Context, name string, page, limit int64) ([]ProductWithSupplier, int64, error)
}

type ProductServiceImpl struct {
	ProductRepo ProductRepository
}

func NewProductService(productRepo ProductRepository) ProductService {
	return &ProductServiceImpl{ProductRepo: productRepo}
}

func (s *ProductServiceImpl) List(ctx context.Context, page, limit int64) ([]Product, int64, error) {
	total, err := s.ProductRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	products, err := s.ProductRepo.FindAll(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (s *ProductServiceImpl) Get(ctx context.Context, id primitive.ObjectID) (*ProductWithSupplier, error) {
	product, err := s.ProductRepo.FindByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	return product, err
}

func (s *ProductServiceImpl) Create(ctx context.Context, product *Product) (*Product, error) {
	if err := s.ProductRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductServiceImpl) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*Product, error) {
	updated, err := s.ProductRepo.Update(ctx, id, fields)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	return updated, err
}

func (s *ProductServiceImpl) Delete(ctx context.Context, id primitive.ObjectID) (*Product, error) {
	deleted, err := s.ProductRepo.Delete(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	return deleted, err
}

func (s *ProductServiceImpl) Search(ctx context.Context, query string, page, limit int64) ([]ProductWithSupplier, int64, error) {
	return s.ProductRepo.FindByQuery(ctx, regexp.QuoteMeta(query), (page-1)*limit, limit)
}

func (s *ProductServiceImpl) ByCategory(ctx context.Context, name string, page, limit int64) ([]ProductWithSupplier, int64, error) {
	return s.ProductRepo.FindByCategoryName(ctx, regexp.QuoteMeta(name), (page-1)*limit, limit)
}

func (s *ProductServiceImpl) BySubCategory(ctx context.Context, name string, page, limit int64) ([]ProductWithSupplier, int64, error) {
	return s.ProductRepo.FindBySubCategoryName(ctx, regexp.QuoteMeta(name), (page-1)*limit, limit)
}
