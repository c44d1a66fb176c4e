package user

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go-procure/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrBadUsername        = errors.New("Username must be alphanumeric and between 3 to 20 characters long and without any space.")
	ErrBadEmail           = errors.New("Invalid email format")
	ErrBadPassword        = errors.New("Password must be 8-15 characters long, contain at least one uppercase letter, one lowercase letter, one number, and one special character.")
	ErrBadRole            = errors.New(`Role must be either "Admin" or "Sales"`)
	ErrBadPhone           = errors.New(`Phone number must be in the format "+974 xxxxxxxx"`)
	ErrEmailExists        = errors.New("User with this email already exists")
	ErrUsernameExists     = errors.New("Username is already taken")
	ErrEmailInUse         = errors.New("Email is already in use")
	ErrInvalidCredentials = errors.New("Invalid email or password")
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]{3,20}$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern    = regexp.MustCompile(`^\+974 \d{8}$`)
)

// validPassword enforces the password policy: 8-15 characters with at least
// one lowercase letter, one uppercase letter, one digit and one special
// character.
func validPassword(password string) bool {
	if len(password) < 8 || len(password) > 15 {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune("!@#$%^&*", r):
			special = true
		}
	}
	return lower && upper && digit && special
}

type SignupInput struct {
	Username    string
	Email       string
	Password    string
	Role        string
	PhoneNumber string
}

type UpdateUserInput struct {
	Username    string
	Email       string
	Password    string
	Role        string
	PhoneNumber string
}

type UserService interface {
	Signup(ctx context.Context, input SignupInput) (*User, string, error)
	Login(ctx context.Context, email, password string) (string, error)
	List(ctx context.Context, emailFilter, sortField string, sortAsc bool, page, perPage int64) ([]User, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, input UpdateUserInput) (*User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type UserServiceImpl struct {
	UserRepo UserRepository
}

func NewUserService(userRepo UserRepository) UserService {
	return &UserServiceImpl{UserRepo: userRepo}
}

func (s *UserServiceImpl) Signup(ctx context.Context, input SignupInput) (*User, string, error) {
	if !usernamePattern.MatchString(input.Username) {
		return nil, "", ErrBadUsername
	}
	if !emailPattern.MatchString(input.Email) {
		return nil, "", ErrBadEmail
	}
	if !validPassword(input.Password) {
		return nil, "", ErrBadPassword
	}
	if !ValidRole(input.Role) {
		return nil, "", ErrBadRole
	}
	if !phonePattern.MatchString(input.PhoneNumber) {
		return nil, "", ErrBadPhone
	}

	if _, err := s.UserRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, "", ErrEmailExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, "", err
	}
	if _, err := s.UserRepo.FindByUsername(ctx, input.Username); err == nil {
		return nil, "", ErrUsernameExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &User{
		Username:    input.Username,
		Email:       input.Email,
		Password:    string(hashed),
		Role:        input.Role,
		PhoneNumber: input.PhoneNumber,
	}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, "", ErrEmailExists
		}
		return nil, "", err
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *UserServiceImpl) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.UserRepo.FindByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return utils.GenerateToken(user.ID, user.Role)
}

func (s *UserServiceImpl) List(ctx context.Context, emailFilter, sortField string, sortAsc bool, page, perPage int64) ([]User, int64, error) {
	return s.UserRepo.FindPage(ctx, emailFilter, sortField, sortAsc, (page-1)*perPage, perPage)
}

func (s *UserServiceImpl) Update(ctx context.Context, id primitive.ObjectID, input UpdateUserInput) (*User, error) {
	if _, err := s.UserRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	fields := bson.M{}

	if input.Username != "" {
		if !usernamePattern.MatchString(input.Username) {
			return nil, ErrBadUsername
		}
		if other, err := s.UserRepo.FindByUsername(ctx, input.Username); err == nil && other.ID != id {
			return nil, ErrUsernameExists
		} else if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		fields["username"] = input.Username
	}

	if input.Email != "" {
		if !emailPattern.MatchString(input.Email) {
			return nil, ErrBadEmail
		}
		if other, err := s.UserRepo.FindByEmail(ctx, input.Email); err == nil && other.ID != id {
			return nil, ErrEmailInUse
		} else if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		fields["email"] = input.Email
	}

	if input.Role != "" {
		if !ValidRole(input.Role) {
			return nil, ErrBadRole
		}
		fields["role"] = input.Role
	}

	if input.PhoneNumber != "" {
		if !phonePattern.MatchString(input.PhoneNumber) {
			return nil, ErrBadPhone
		}
		fields["phoneNumber"] = input.PhoneNumber
	}

	if input.Password != "" {
		if !validPassword(input.Password) {
			return nil, ErrBadPassword
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		fields["password"] = string(hashed)
	}

	updated, err := s.UserRepo.Update(ctx, id, fields)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	return updated, err
}

func (s *UserServiceImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.UserRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}
	return s.UserRepo.Delete(ctx, id)
}
