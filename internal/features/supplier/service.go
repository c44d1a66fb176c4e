package supplier

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound         = errors.New("supplier not found")
	ErrEmailExists      = errors.New("email already exists")
	ErrBadContactNumber = errors.New("contact number must be in the format: XXX XXXXXXXXX")
)

var contactNumberPattern = regexp.MustCompile(`^\d{3} \d{8}$`)

type CreateSupplierInput struct {
	FirstName     string
	LastName      string
	Email         string
	CompanyName   string
	CompanyType   string
	CompanyLogo   *string
	OfficeAddress string
	ContactNumber string
}

type UpdateSupplierInput struct {
	FirstName            string
	OfficeAddress        string
	ContactNumber        string
	Email                string
	ProductCategories    []primitive.ObjectID
	ProductSubCategories []primitive.ObjectID
}

type SupplierService interface {
	List(ctx context.Context, page, limit int64) ([]Supplier, int64, error)
	Get(ctx context.Context, id primitive.ObjectID) (*Supplier, error)
	Create(ctx context.Context, input CreateSupplierInput) (*Supplier, error)
	Update(ctx context.Context, id primitive.ObjectID, input UpdateSupplierInput) (*Supplier, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*Supplier, error)
	SearchByName(ctx context.Context, name string, page, limit int64) ([]SupplierWithRefs, int64, error)
	ListSlim(ctx context.Context, page, limit int64) ([]SupplierSlim, int64, error)
	SearchSlim(ctx context.Context, query string) ([]SupplierSlim, error)
}

type SupplierServiceImpl struct {
	SupplierRepo SupplierRepository
}

func NewSupplierService(supplierRepo SupplierRepository) SupplierService {
	return &SupplierServiceImpl{SupplierRepo: supplierRepo}
}

func (s *SupplierServiceImpl) List(ctx context.Context, page, limit int64) ([]Supplier, int64, error) {
	suppliers, err := s.SupplierRepo.FindAll(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.SupplierRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return suppliers, total, nil
}

func (s *SupplierServiceImpl) Get(ctx context.Context, id primitive.ObjectID) (*Supplier, error) {
	supplier, err := s.SupplierRepo.FindByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	return supplier, err
}

func (s *SupplierServiceImpl) Create(ctx context.Context, input CreateSupplierInput) (*Supplier, error) {
	if input.ContactNumber != "" && !contactNumberPattern.MatchString(input.ContactNumber) {
		return nil, ErrBadContactNumber
	}

	if _, err := s.SupplierRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	supplier := &Supplier{
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Email:         input.Email,
		CompanyName:   input.CompanyName,
		CompanyType:   input.CompanyType,
		CompanyLogo:   input.CompanyLogo,
		OfficeAddress: input.OfficeAddress,
		ContactNumber: input.ContactNumber,
	}

	if err := s.SupplierRepo.Create(ctx, supplier); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return supplier, nil
}

func (s *SupplierServiceImpl) Update(ctx context.Context, id primitive.ObjectID, input UpdateSupplierInput) (*Supplier, error) {
	fields := bson.M{
		"firstName":     input.FirstName,
		"officeAddress": input.OfficeAddress,
		"contactNumber": input.ContactNumber,
		"email":         input.Email,
	}
	if input.ProductCategories != nil {
		fields["productCategories"] = input.ProductCategories
	}
	if input.ProductSubCategories != nil {
		fields["productSubCategories"] = input.ProductSubCategories
	}

	updated, err := s.SupplierRepo.Update(ctx, id, fields)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	return updated, err
}

func (s *SupplierServiceImpl) Delete(ctx context.Context, id primitive.ObjectID) (*Supplier, error) {
	deleted, err := s.SupplierRepo.Delete(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	return deleted, err
}

func (s *SupplierServiceImpl) SearchByName(ctx context.Context, name string, page, limit int64) ([]SupplierWithRefs, int64, error) {
	return s.SupplierRepo.FindByFirstName(ctx, regexp.QuoteMeta(name), (page-1)*limit, limit)
}

func (s *SupplierServiceImpl) ListSlim(ctx context.Context, page, limit int64) ([]SupplierSlim, int64, error) {
	suppliers, err := s.SupplierRepo.FindSlim(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.SupplierRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return suppliers, total, nil
}

func (s *SupplierServiceImpl) SearchSlim(ctx context.Context, query string) ([]SupplierSlim, error) {
	return s.SupplierRepo.FindSlimByCompanyName(ctx, regexp.QuoteMeta(query))
}
