package subcategory

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound         = errors.New("subcategory not found")
	ErrNameExists       = errors.New("subcategory already exists for this category")
	ErrCategoryNotFound = errors.New("category not found")
)

// CategoryChecker reports whether the owning category exists. Implemented by
// an adapter over the category repository.
type CategoryChecker interface {
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type SubCategoryService interface {
	Create(ctx context.Context, categoryID primitive.ObjectID, name, description string) (*SubCategory, error)
	ListPage(ctx context.Context, page, limit int64) ([]SubCategory, int64, error)
	ListByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]SubCategory, error)
	Update(ctx context.Context, id primitive.ObjectID, name, description string) (*SubCategory, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*SubCategory, error)
}

type SubCategoryServiceImpl struct {
	SubCategoryRepo SubCategoryRepository
	Categories      CategoryChecker
}

func NewSubCategoryService(subCategoryRepo SubCategoryRepository, categories CategoryChecker) SubCategoryService {
	return &SubCategoryServiceImpl{
		SubCategoryRepo: subCategoryRepo,
		Categories:      categories,
	}
}

func (s *SubCategoryServiceImpl) checkCategory(ctx context.Context, categoryID primitive.ObjectID) error {
	exists, err := s.Categories.Exists(ctx, categoryID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrCategoryNotFound
	}
	return nil
}

func (s *SubCategoryServiceImpl) Create(ctx context.Context, categoryID primitive.ObjectID, name, description string) (*SubCategory, error) {
	name = strings.TrimSpace(name)

	if err := s.checkCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	if _, err := s.SubCategoryRepo.FindByNameCI(ctx, name, categoryID); err == nil {
		return nil, ErrNameExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	sub := &SubCategory{
		Name:        name,
		Description: strings.TrimSpace(description),
		CategoryID:  categoryID,
	}
	if err := s.SubCategoryRepo.Create(ctx, sub); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrNameExists
		}
		return nil, err
	}
	return sub, nil
}

func (s *SubCategoryServiceImpl) ListPage(ctx context.Context, page, limit int64) ([]SubCategory, int64, error) {
	return s.SubCategoryRepo.FindPage(ctx, (page-1)*limit, limit)
}

func (s *SubCategoryServiceImpl) ListByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]SubCategory, error) {
	if err := s.checkCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.SubCategoryRepo.FindByCategory(ctx, categoryID)
}

// Update applies name and description individually; empty values leave the
// stored field untouched.
func (s *SubCategoryServiceImpl) Update(ctx context.Context, id primitive.ObjectID, name, description string) (*SubCategory, error) {
	existing, err := s.SubCategoryRepo.FindByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	fields := bson.M{}
	if name = strings.TrimSpace(name); name != "" {
		if other, err := s.SubCategoryRepo.FindByNameCI(ctx, name, existing.CategoryID); err == nil && other.ID != id {
			return nil, ErrNameExists
		} else if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		fields["name"] = name
	}
	if description = strings.TrimSpace(description); description != "" {
		fields["description"] = description
	}

	if len(fields) > 0 {
		if err := s.SubCategoryRepo.Update(ctx, id, fields); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, ErrNameExists
			}
			return nil, err
		}
	}
	return s.SubCategoryRepo.FindByID(ctx, id)
}

func (s *SubCategoryServiceImpl) Delete(ctx context.Context, id primitive.ObjectID) (*SubCategory, error) {
	sub, err := s.SubCategoryRepo.FindByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.SubCategoryRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return sub, nil
}
