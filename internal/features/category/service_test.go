package category

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type mockCategoryRepo struct {
	byID    map[primitive.ObjectID]*Category
	subsSet map[primitive.ObjectID][]primitive.ObjectID
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{
		byID:    make(map[primitive.ObjectID]*Category),
		subsSet: make(map[primitive.ObjectID][]primitive.ObjectID),
	}
}

func (m *mockCategoryRepo) Create(ctx context.Context, category *Category) error {
	category.ID = primitive.NewObjectID()
	copied := *category
	m.byID[category.ID] = &copied
	return nil
}

func (m *mockCategoryRepo) FindAll(ctx context.Context) ([]Category, error) {
	out := make([]Category, 0, len(m.byID))
	for _, c := range m.byID {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockCategoryRepo) FindPage(ctx context.Context, search string, skip, limit int64) ([]Category, int64, error) {
	all, _ := m.FindAll(ctx)
	return all, int64(len(all)), nil
}

func (m *mockCategoryRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*Category, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *c
	copied.SubCategoryIds = m.subsSet[id]
	return &copied, nil
}

func (m *mockCategoryRepo) FindByNameCI(ctx context.Context, name string) (*Category, error) {
	for _, c := range m.byID {
		if strings.EqualFold(c.Name, name) {
			copied := *c
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockCategoryRepo) FindByNameCIExcluding(ctx context.Context, name string, exclude primitive.ObjectID) (*Category, error) {
	for id, c := range m.byID {
		if id != exclude && strings.EqualFold(c.Name, name) {
			copied := *c
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockCategoryRepo) Search(ctx context.Context, pattern string) ([]Category, error) {
	return nil, nil
}

func (m *mockCategoryRepo) ResolveOrCreate(ctx context.Context, name string) (primitive.ObjectID, bool, error) {
	if c, err := m.FindByNameCI(ctx, name); err == nil {
		return c.ID, false, nil
	}
	c := &Category{Name: name}
	_ = m.Create(ctx, c)
	return c.ID, true, nil
}

func (m *mockCategoryRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	c, ok := m.byID[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if name, ok := fields["name"].(string); ok {
		c.Name = name
	}
	if desc, ok := fields["description"].(string); ok {
		c.Description = desc
	}
	if img, ok := fields["categoryImagePath"].(string); ok {
		c.CategoryImagePath = &img
	}
	return nil
}

func (m *mockCategoryRepo) SetSubCategoryIds(ctx context.Context, id primitive.ObjectID, subIds []primitive.ObjectID) error {
	m.subsSet[id] = subIds
	return nil
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(m.byID, id)
	return nil
}

func (m *mockCategoryRepo) EnsureIndexes(ctx context.Context) error { return nil }

// mockLinker resolves subcategory names case-insensitively per category,
// like the compound unique index does.
type mockLinker struct {
	ids map[string]primitive.ObjectID
}

func newMockLinker() *mockLinker {
	return &mockLinker{ids: make(map[string]primitive.ObjectID)}
}

func (m *mockLinker) ResolveOrCreate(ctx context.Context, name string, categoryID primitive.ObjectID) (primitive.ObjectID, bool, error) {
	key := categoryID.Hex() + "/" + strings.ToLower(name)
	if id, ok := m.ids[key]; ok {
		return id, false, nil
	}
	id := primitive.NewObjectID()
	m.ids[key] = id
	return id, true, nil
}

func TestAddCategoryWithSubcategories(t *testing.T) {
	repo := newMockCategoryRepo()
	svc := NewCategoryService(repo, newMockLinker())

	created, err := svc.Add(context.Background(), AddCategoryInput{
		Name:          "Plumbing",
		Description:   "Pipes and fittings",
		SubCategories: []string{"Valves", "valves", " Pipes ", ""},
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if created.Name != "Plumbing" {
		t.Errorf("Name = %q", created.Name)
	}
	if len(created.SubCategoryIds) != 2 {
		t.Fatalf("SubCategoryIds = %d, want 2 (case repeats and blanks collapse)", len(created.SubCategoryIds))
	}

	stored, err := repo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if len(stored.SubCategoryIds) != 2 {
		t.Errorf("stored SubCategoryIds = %d, want 2", len(stored.SubCategoryIds))
	}
}

func TestAddCategoryDuplicateName(t *testing.T) {
	repo := newMockCategoryRepo()
	svc := NewCategoryService(repo, newMockLinker())

	if _, err := svc.Add(context.Background(), AddCategoryInput{Name: "Hardware"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	_, err := svc.Add(context.Background(), AddCategoryInput{Name: "hardware"})
	if !errors.Is(err, ErrNameExists) {
		t.Fatalf("err = %v, want ErrNameExists", err)
	}
}

func TestUpdateCategoryNameConflict(t *testing.T) {
	repo := newMockCategoryRepo()
	svc := NewCategoryService(repo, newMockLinker())
	ctx := context.Background()

	first, _ := svc.Add(ctx, AddCategoryInput{Name: "Electrical"})
	second, _ := svc.Add(ctx, AddCategoryInput{Name: "Hardware"})

	_, err := svc.Update(ctx, second.ID, UpdateCategoryInput{Name: "electrical"})
	if !errors.Is(err, ErrNameExists) {
		t.Fatalf("err = %v, want ErrNameExists", err)
	}

	// Renaming to its own name is allowed.
	updated, err := svc.Update(ctx, first.ID, UpdateCategoryInput{Name: "Electrical", Description: "Cables"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Description != "Cables" {
		t.Errorf("Description = %q", updated.Description)
	}
}

func TestDeleteCategory(t *testing.T) {
	repo := newMockCategoryRepo()
	svc := NewCategoryService(repo, newMockLinker())
	ctx := context.Background()

	created, _ := svc.Add(ctx, AddCategoryInput{Name: "Safety"})

	deleted, err := svc.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted.Name != "Safety" {
		t.Errorf("deleted.Name = %q", deleted.Name)
	}

	if _, err := svc.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}
