package user

import (
	"context"
	"errors"
	"testing"

	"go-procure/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	byEmail    map[string]*User
	byUsername map[string]*User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		byEmail:    make(map[string]*User),
		byUsername: make(map[string]*User),
	}
}

func (m *mockUserRepo) Create(ctx context.Context, user *User) error {
	user.ID = primitive.NewObjectID()
	m.byEmail[user.Email] = user
	m.byUsername[user.Username] = user
	return nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*User, error) {
	if u, ok := m.byUsername[username]; ok {
		return u, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockUserRepo) FindPage(ctx context.Context, emailFilter, sortField string, sortAsc bool, skip, limit int64) ([]User, int64, error) {
	return nil, 0, nil
}

func (m *mockUserRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*User, error) {
	u, err := m.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v, ok := fields["username"]; ok {
		u.Username = v.(string)
	}
	if v, ok := fields["email"]; ok {
		u.Email = v.(string)
	}
	if v, ok := fields["role"]; ok {
		u.Role = v.(string)
	}
	if v, ok := fields["phoneNumber"]; ok {
		u.PhoneNumber = v.(string)
	}
	return u, nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }
func (m *mockUserRepo) EnsureIndexes(ctx context.Context) error                 { return nil }

func validSignup() SignupInput {
	return SignupInput{
		Username:    "adminuser",
		Email:       "admin@example.com",
		Password:    "Secret1!pass",
		Role:        "Admin",
		PhoneNumber: "+974 12345678",
	}
}

func TestSignupValidation(t *testing.T) {
	utils.SetSecret("test-secret")

	tests := []struct {
		name    string
		mutate  func(*SignupInput)
		wantErr error
	}{
		{"valid", func(in *SignupInput) {}, nil},
		{"short username", func(in *SignupInput) { in.Username = "ab" }, ErrBadUsername},
		{"username with space", func(in *SignupInput) { in.Username = "ad min" }, ErrBadUsername},
		{"bad email", func(in *SignupInput) { in.Email = "not-an-email" }, ErrBadEmail},
		{"password too short", func(in *SignupInput) { in.Password = "Ab1!" }, ErrBadPassword},
		{"password no upper", func(in *SignupInput) { in.Password = "secret1!pass" }, ErrBadPassword},
		{"password no special", func(in *SignupInput) { in.Password = "Secret1pass" }, ErrBadPassword},
		{"bad role", func(in *SignupInput) { in.Role = "Manager" }, ErrBadRole},
		{"bad phone", func(in *SignupInput) { in.PhoneNumber = "+974 1234" }, ErrBadPhone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewUserService(newMockUserRepo())

			input := validSignup()
			tt.mutate(&input)

			user, token, err := service.Signup(context.Background(), input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr == nil {
				if user == nil || token == "" {
					t.Errorf("expected user and token, got user=%v token=%q", user, token)
				}
				if user.Password == input.Password {
					t.Error("password stored in plain text")
				}
			}
		})
	}
}

func TestSignupDuplicates(t *testing.T) {
	utils.SetSecret("test-secret")
	repo := newMockUserRepo()
	service := NewUserService(repo)

	if _, _, err := service.Signup(context.Background(), validSignup()); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}

	dupEmail := validSignup()
	dupEmail.Username = "otheruser"
	if _, _, err := service.Signup(context.Background(), dupEmail); !errors.Is(err, ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}

	dupUsername := validSignup()
	dupUsername.Email = "other@example.com"
	if _, _, err := service.Signup(context.Background(), dupUsername); !errors.Is(err, ErrUsernameExists) {
		t.Errorf("expected ErrUsernameExists, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	utils.SetSecret("test-secret")
	repo := newMockUserRepo()
	service := NewUserService(repo)

	hashed, err := bcrypt.GenerateFromPassword([]byte("Secret1!pass"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatal(err)
	}
	repo.byEmail["admin@example.com"] = &User{
		ID:       primitive.NewObjectID(),
		Username: "adminuser",
		Email:    "admin@example.com",
		Password: string(hashed),
		Role:     "Admin",
	}

	token, err := service.Login(context.Background(), "admin@example.com", "Secret1!pass")
	if err != nil {
		t.Fatalf("expected login to succeed, got %v", err)
	}
	if token == "" {
		t.Error("expected a token")
	}

	if _, err := service.Login(context.Background(), "admin@example.com", "WrongPass1!"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := service.Login(context.Background(), "missing@example.com", "Secret1!pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}
