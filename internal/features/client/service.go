package client

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
	ErrNotFound       = errors.New("client not found")
	ErrMissingFields  = errors.New("all fields (name, companyName, phoneNo, email) are required")
	ErrBadEmail       = errors.New("invalid email format")
	ErrEmailExists    = errors.New("client with this email already exists")
	ErrBadProduct     = errors.New("invalid product id")
	ErrBadSubCategory = errors.New("invalid subcategory id")
	ErrBadSupplier    = errors.New("invalid supplier id")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ReferenceChecker reports whether a referenced document exists. Adapters
// over the product, subcategory and supplier repositories satisfy it.
type ReferenceChecker interface {
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// References bundles the checkers for the three optional client links.
type References struct {
	Products      ReferenceChecker
	SubCategories ReferenceChecker
	Suppliers     ReferenceChecker
}

type ClientInput struct {
	Name        string
	CompanyName string
	PhoneNo     string
	Email       string
	Product     *primitive.ObjectID
	SubCategory *primitive.ObjectID
	Supplier    *primitive.ObjectID
}

type ClientService interface {
	List(ctx context.Context, search string, page, limit int64) ([]ClientPopulated, int64, error)
	Get(ctx context.Context, id primitive.ObjectID) (*ClientPopulated, error)
	Create(ctx context.Context, input ClientInput) (*ClientPopulated, error)
	Update(ctx context.Context, id primitive.ObjectID, input ClientInput) (*ClientPopulated, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ClientServiceImpl struct {
	ClientRepo ClientRepository
	Refs       References
}

func NewClientService(clientRepo ClientRepository, refs References) ClientService {
	return &ClientServiceImpl{
		ClientRepo: clientRepo,
		Refs:       refs,
	}
}

func (s *ClientServiceImpl) List(ctx context.Context, search string, page, limit int64) ([]ClientPopulated, int64, error) {
	return s.ClientRepo.FindPage(ctx, search, (page-1)*limit, limit)
}

func (s *ClientServiceImpl) Get(ctx context.Context, id primitive.ObjectID) (*ClientPopulated, error) {
	client, err := s.ClientRepo.FindByIDPopulated(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	return client, err
}

func (s *ClientServiceImpl) Create(ctx context.Context, input ClientInput) (*ClientPopulated, error) {
	normalized, err := s.validate(ctx, &input)
	if err != nil {
		return nil, err
	}

	if _, err := s.ClientRepo.FindByEmail(ctx, normalized.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	if err := s.ClientRepo.Create(ctx, normalized); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return s.ClientRepo.FindByIDPopulated(ctx, normalized.ID)
}

func (s *ClientServiceImpl) Update(ctx context.Context, id primitive.ObjectID, input ClientInput) (*ClientPopulated, error) {
	if _, err := s.ClientRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	normalized, err := s.validate(ctx, &input)
	if err != nil {
		return nil, err
	}

	if _, err := s.ClientRepo.FindByEmailExcluding(ctx, normalized.Email, id); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	fields := bson.M{
		"name":        normalized.Name,
		"companyName": normalized.CompanyName,
		"phoneNo":     normalized.PhoneNo,
		"email":       normalized.Email,
		"product":     normalized.Product,
		"subCategory": normalized.SubCategory,
		"supplier":    normalized.Supplier,
	}
	if err := s.ClientRepo.Update(ctx, id, fields); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return s.ClientRepo.FindByIDPopulated(ctx, id)
}

func (s *ClientServiceImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.ClientRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}
	return s.ClientRepo.Delete(ctx, id)
}

// validate checks required fields, email shape and referenced documents,
// returning a trimmed, lowercase-email client ready to persist.
func (s *ClientServiceImpl) validate(ctx context.Context, input *ClientInput) (*Client, error) {
	name := strings.TrimSpace(input.Name)
	companyName := strings.TrimSpace(input.CompanyName)
	phoneNo := strings.TrimSpace(input.PhoneNo)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if name == "" || companyName == "" || phoneNo == "" || email == "" {
		return nil, ErrMissingFields
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrBadEmail
	}

	if err := s.checkRef(ctx, s.Refs.Products, input.Product, ErrBadProduct); err != nil {
		return nil, err
	}
	if err := s.checkRef(ctx, s.Refs.SubCategories, input.SubCategory, ErrBadSubCategory); err != nil {
		return nil, err
	}
	if err := s.checkRef(ctx, s.Refs.Suppliers, input.Supplier, ErrBadSupplier); err != nil {
		return nil, err
	}

	return &Client{
		Name:        name,
		CompanyName: companyName,
		PhoneNo:     phoneNo,
		Email:       email,
		Product:     input.Product,
		SubCategory: input.SubCategory,
		Supplier:    input.Supplier,
	}, nil
}

func (s *ClientServiceImpl) checkRef(ctx context.Context, checker ReferenceChecker, id *primitive.ObjectID, missing error) error {
	if id == nil {
		return nil
	}
	exists, err := checker.Exists(ctx, *id)
	if err != nil {
		return err
	}
	if !exists {
		return missing
	}
	return nil
}
