package banner

import (
	"context"
	"errors"

	"go-procure/internal/features/category"
	"go-procure/internal/features/supplier"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("banner not found")

// HomeData is the combined homepage payload: a banner page plus the full
// category and supplier lists.
type HomeData struct {
	Banners      []Banner
	TotalBanners int64
	Categories   []category.Category
	Suppliers    []supplier.Supplier
}

type BannerService interface {
	List(ctx context.Context, search string, page, limit int64) ([]Banner, int64, error)
	Get(ctx context.Context, id primitive.ObjectID) (*Banner, error)
	Create(ctx context.Context, banner *Banner) (*Banner, error)
	Update(ctx context.Context, id primitive.ObjectID, description, image string) (*Banner, *Banner, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*Banner, error)
	Home(ctx context.Context, page, limit int64) (*HomeData, error)
}

type BannerServiceImpl struct {
	BannerRepo   BannerRepository
	CategoryRepo category.CategoryRepository
	SupplierRepo supplier.SupplierRepository
}

func NewBannerService(
	bannerRepo BannerRepository,
	categoryRepo category.CategoryRepository,
	supplierRepo supplier.SupplierRepository,
) BannerService {
	return &BannerServiceImpl{
		BannerRepo:   bannerRepo,
		CategoryRepo: categoryRepo,
		SupplierRepo: supplierRepo,
	}
}

func (s *BannerServiceImpl) List(ctx context.Context, search string, page, limit int64) ([]Banner, int64, error) {
	return s.BannerRepo.FindPage(ctx, search, (page-1)*limit, limit)
}

func (s *BannerServiceImpl) Get(ctx context.Context, id primitive.ObjectID) (*Banner, error) {
	banner, err := s.BannerRepo.FindByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	return banner, err
}

func (s *BannerServiceImpl) Create(ctx context.Context, banner *Banner) (*Banner, error) {
	if err := s.BannerRepo.Create(ctx, banner); err != nil {
		return nil, err
	}
	return banner, nil
}

// Update changes the description and, when image is non-empty, the banner
// image. It returns the previous document as well so the caller can remove
// the replaced file.
func (s *BannerServiceImpl) Update(ctx context.Context, id primitive.ObjectID, description, image string) (*Banner, *Banner, error) {
	previous, err := s.BannerRepo.FindByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	fields := bson.M{}
	if description != "" {
		fields["description"] = description
	}
	if image != "" {
		fields["bannerImage"] = image
	}

	updated, err := s.BannerRepo.Update(ctx, id, fields)
	if err != nil {
		return nil, nil, err
	}
	return updated, previous, nil
}

func (s *BannerServiceImpl) Delete(ctx context.Context, id primitive.ObjectID) (*Banner, error) {
	banner, err := s.BannerRepo.FindByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.BannerRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return banner, nil
}

func (s *BannerServiceImpl) Home(ctx context.Context, page, limit int64) (*HomeData, error) {
	banners, total, err := s.BannerRepo.FindPage(ctx, "", (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	categories, err := s.CategoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	suppliers, err := s.SupplierRepo.FindAll(ctx, 0, 0)
	if err != nil {
		return nil, err
	}

	return &HomeData{
		Banners:      banners,
		TotalBanners: total,
		Categories:   categories,
		Suppliers:    suppliers,
	}, nil
}
