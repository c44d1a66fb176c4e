package subcategory

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type mockSubCategoryRepo struct {
	byID map[primitive.ObjectID]*SubCategory
}

func newMockSubCategoryRepo() *mockSubCategoryRepo {
	return &mockSubCategoryRepo{byID: make(map[primitive.ObjectID]*SubCategory)}
}

func (m *mockSubCategoryRepo) Create(ctx context.Context, sub *SubCategory) error {
	sub.ID = primitive.NewObjectID()
	copied := *sub
	m.byID[sub.ID] = &copied
	return nil
}

func (m *mockSubCategoryRepo) FindAll(ctx context.Context) ([]SubCategory, error) {
	out := make([]SubCategory, 0, len(m.byID))
	for _, s := range m.byID {
		out = append(out, *s)
	}
	return out, nil
}

func (m *mockSubCategoryRepo) FindPage(ctx context.Context, skip, limit int64) ([]SubCategory, int64, error) {
	all, _ := m.FindAll(ctx)
	return all, int64(len(all)), nil
}

func (m *mockSubCategoryRepo) FindByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]SubCategory, error) {
	var out []SubCategory
	for _, s := range m.byID {
		if s.CategoryID == categoryID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockSubCategoryRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*SubCategory, error) {
	s, ok := m.byID[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *s
	return &copied, nil
}

func (m *mockSubCategoryRepo) FindByNameCI(ctx context.Context, name string, categoryID primitive.ObjectID) (*SubCategory, error) {
	for _, s := range m.byID {
		if s.CategoryID == categoryID && strings.EqualFold(s.Name, name) {
			copied := *s
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockSubCategoryRepo) Search(ctx context.Context, pattern string, limit int64) ([]SubCategory, error) {
	return nil, nil
}

func (m *mockSubCategoryRepo) ResolveOrCreate(ctx context.Context, name string, categoryID primitive.ObjectID) (primitive.ObjectID, bool, error) {
	if s, err := m.FindByNameCI(ctx, name, categoryID); err == nil {
		return s.ID, false, nil
	}
	s := &SubCategory{Name: name, CategoryID: categoryID}
	_ = m.Create(ctx, s)
	return s.ID, true, nil
}

func (m *mockSubCategoryRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	s, ok := m.byID[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if name, ok := fields["name"].(string); ok {
		s.Name = name
	}
	if desc, ok := fields["description"].(string); ok {
		s.Description = desc
	}
	return nil
}

func (m *mockSubCategoryRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(m.byID, id)
	return nil
}

func (m *mockSubCategoryRepo) EnsureIndexes(ctx context.Context) error { return nil }

type mockCategoryChecker struct {
	known map[primitive.ObjectID]bool
}

func (m *mockCategoryChecker) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return m.known[id], nil
}

func newTestService(categoryIDs ...primitive.ObjectID) (SubCategoryService, *mockSubCategoryRepo) {
	repo := newMockSubCategoryRepo()
	known := make(map[primitive.ObjectID]bool)
	for _, id := range categoryIDs {
		known[id] = true
	}
	return NewSubCategoryService(repo, &mockCategoryChecker{known: known}), repo
}

func TestCreateSubcategory(t *testing.T) {
	categoryID := primitive.NewObjectID()
	svc, _ := newTestService(categoryID)
	ctx := context.Background()

	sub, err := svc.Create(ctx, categoryID, " Valves ", " Ball and gate ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sub.Name != "Valves" || sub.Description != "Ball and gate" {
		t.Errorf("got %q / %q, want trimmed values", sub.Name, sub.Description)
	}

	if _, err := svc.Create(ctx, categoryID, "valves", ""); !errors.Is(err, ErrNameExists) {
		t.Fatalf("err = %v, want ErrNameExists", err)
	}
}

func TestCreateSubcategoryUnknownCategory(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Create(context.Background(), primitive.NewObjectID(), "Valves", "")
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("err = %v, want ErrCategoryNotFound", err)
	}
}

func TestSameNameUnderDifferentCategories(t *testing.T) {
	catA := primitive.NewObjectID()
	catB := primitive.NewObjectID()
	svc, _ := newTestService(catA, catB)
	ctx := context.Background()

	if _, err := svc.Create(ctx, catA, "Fittings", ""); err != nil {
		t.Fatalf("Create under first category: %v", err)
	}
	if _, err := svc.Create(ctx, catB, "Fittings", ""); err != nil {
		t.Fatalf("Create under second category: %v", err)
	}
}

func TestUpdateSubcategoryPartial(t *testing.T) {
	categoryID := primitive.NewObjectID()
	svc, _ := newTestService(categoryID)
	ctx := context.Background()

	created, _ := svc.Create(ctx, categoryID, "Valves", "Original")

	updated, err := svc.Update(ctx, created.ID, "", "Updated text")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Valves" {
		t.Errorf("Name = %q, want unchanged", updated.Name)
	}
	if updated.Description != "Updated text" {
		t.Errorf("Description = %q", updated.Description)
	}

	other, _ := svc.Create(ctx, categoryID, "Pipes", "")
	if _, err := svc.Update(ctx, other.ID, "VALVES", ""); !errors.Is(err, ErrNameExists) {
		t.Fatalf("err = %v, want ErrNameExists", err)
	}
}

func TestDeleteSubcategory(t *testing.T) {
	categoryID := primitive.NewObjectID()
	svc, repo := newTestService(categoryID)
	ctx := context.Background()

	created, _ := svc.Create(ctx, categoryID, "Valves", "")
	if _, err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(repo.byID) != 0 {
		t.Errorf("repo still holds %d documents", len(repo.byID))
	}
	if _, err := svc.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}
