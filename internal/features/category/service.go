package category

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound   = errors.New("category not found")
	ErrNameExists = errors.New("category already exists")
)

// SubCategoryLinker resolves a subcategory name under a category, creating it
// when absent. Implemented by the subcategory repository and injected through
// an adapter to keep the packages decoupled.
type SubCategoryLinker interface {
	ResolveOrCreate(ctx context.Context, name string, categoryID primitive.ObjectID) (primitive.ObjectID, bool, error)
}

type AddCategoryInput struct {
	Name          string
	Description   string
	SubCategories []string
}

type UpdateCategoryInput struct {
	Name        string
	Description string
	ImagePath   *string
}

type CategoryService interface {
	Add(ctx context.Context, input AddCategoryInput) (*Category, error)
	CreateWithImage(ctx context.Context, name, description string, imagePath *string) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	ListPage(ctx context.Context, search string, page, limit int64) ([]Category, int64, error)
	Get(ctx context.Context, id primitive.ObjectID) (*Category, error)
	Search(ctx context.Context, query string) ([]Category, error)
	Update(ctx context.Context, id primitive.ObjectID, input UpdateCategoryInput) (*Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*Category, error)
}

type CategoryServiceImpl struct {
	CategoryRepo CategoryRepository
	SubCategories SubCategoryLinker
}

func NewCategoryService(categoryRepo CategoryRepository, subCategories SubCategoryLinker) CategoryService {
	return &CategoryServiceImpl{
		CategoryRepo:  categoryRepo,
		SubCategories: subCategories,
	}
}

// Add creates a category together with its named subcategories. Subcategory
// names are resolved case-insensitively under the new category, so repeats in
// the request collapse to a single document.
func (s *CategoryServiceImpl) Add(ctx context.Context, input AddCategoryInput) (*Category, error) {
	name := strings.TrimSpace(input.Name)

	if _, err := s.CategoryRepo.FindByNameCI(ctx, name); err == nil {
		return nil, ErrNameExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	category := &Category{
		Name:        name,
		Description: input.Description,
	}
	if err := s.CategoryRepo.Create(ctx, category); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrNameExists
		}
		return nil, err
	}

	var subIds []primitive.ObjectID
	seen := make(map[primitive.ObjectID]struct{})
	for _, subName := range input.SubCategories {
		subName = strings.TrimSpace(subName)
		if subName == "" {
			continue
		}
		subId, _, err := s.SubCategories.ResolveOrCreate(ctx, subName, category.ID)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[subId]; ok {
			continue
		}
		seen[subId] = struct{}{}
		subIds = append(subIds, subId)
	}

	if len(subIds) > 0 {
		if err := s.CategoryRepo.SetSubCategoryIds(ctx, category.ID, subIds); err != nil {
			return nil, err
		}
		category.SubCategoryIds = subIds
	}
	return category, nil
}

func (s *CategoryServiceImpl) CreateWithImage(ctx context.Context, name, description string, imagePath *string) (*Category, error) {
	name = strings.TrimSpace(name)

	if _, err := s.CategoryRepo.FindByNameCI(ctx, name); err == nil {
		return nil, ErrNameExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	category := &Category{
		Name:              name,
		Description:       description,
		CategoryImagePath: imagePath,
	}
	if err := s.CategoryRepo.Create(ctx, category); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrNameExists
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryServiceImpl) List(ctx context.Context) ([]Category, error) {
	return s.CategoryRepo.FindAll(ctx)
}

func (s *CategoryServiceImpl) ListPage(ctx context.Context, search string, page, limit int64) ([]Category, int64, error) {
	return s.CategoryRepo.FindPage(ctx, search, (page-1)*limit, limit)
}

func (s *CategoryServiceImpl) Get(ctx context.Context, id primitive.ObjectID) (*Category, error) {
	category, err := s.CategoryRepo.FindByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	return category, err
}

func (s *CategoryServiceImpl) Search(ctx context.Context, query string) ([]Category, error) {
	return s.CategoryRepo.Search(ctx, regexp.QuoteMeta(query))
}

func (s *CategoryServiceImpl) Update(ctx context.Context, id primitive.ObjectID, input UpdateCategoryInput) (*Category, error) {
	name := strings.TrimSpace(input.Name)

	if name != "" {
		if _, err := s.CategoryRepo.FindByNameCIExcluding(ctx, name, id); err == nil {
			return nil, ErrNameExists
		} else if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
	}

	fields := bson.M{}
	if name != "" {
		fields["name"] = name
	}
	if input.Description != "" {
		fields["description"] = input.Description
	}
	if input.ImagePath != nil {
		fields["categoryImagePath"] = *input.ImagePath
	}

	if err := s.CategoryRepo.Update(ctx, id, fields); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrNameExists
		}
		return nil, err
	}

	updated, err := s.CategoryRepo.FindByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	return updated, err
}

func (s *CategoryServiceImpl) Delete(ctx context.Context, id primitive.ObjectID) (*Category, error) {
	category, err := s.CategoryRepo.FindByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.CategoryRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return category, nil
}
