package product

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type mockProductRepo struct {
	byItemCode map[string]*Product
	failCreate map[string]error
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{
		byItemCode: make(map[string]*Product),
		failCreate: make(map[string]error),
	}
}

func (m *mockProductRepo) Create(ctx context.Context, p *Product) error {
	if err, ok := m.failCreate[p.ItemCode]; ok {
		return err
	}
	p.ID = primitive.NewObjectID()
	m.byItemCode[p.ItemCode] = p
	return nil
}

func (m *mockProductRepo) FindByItemCode(ctx context.Context, itemCode string) (*Product, error) {
	if p, ok := m.byItemCode[itemCode]; ok {
		return p, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockProductRepo) FindAll(ctx context.Context, skip, limit int64) ([]Product, error) {
	return nil, nil
}
func (m *mockProductRepo) Count(ctx context.Context) (int64, error) { return 0, nil }
func (m *mockProductRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*ProductWithSupplier, error) {
	return nil, mongo.ErrNoDocuments
}
func (m *mockProductRepo) FindByQuery(ctx context.Context, pattern string, skip, limit int64) ([]ProductWithSupplier, int64, error) {
	return nil, 0, nil
}
func (m *mockProductRepo) FindByCategoryName(ctx context.Context, pattern string, skip, limit int64) ([]ProductWithSupplier, int64, error) {
	return nil, 0, nil
}
func (m *mockProductRepo) FindBySubCategoryName(ctx context.Context, pattern string, skip, limit int64) ([]ProductWithSupplier, int64, error) {
	return nil, 0, nil
}
func (m *mockProductRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*Product, error) {
	return nil, mongo.ErrNoDocuments
}
func (m *mockProductRepo) Delete(ctx context.Context, id primitive.ObjectID) (*Product, error) {
	return nil, mongo.ErrNoDocuments
}
func (m *mockProductRepo) EnsureIndexes(ctx context.Context) error { return nil }

type mockCategoryResolver struct {
	existing map[string]primitive.ObjectID
	created  int
}

func (m *mockCategoryResolver) ResolveOrCreate(ctx context.Context, name string) (primitive.ObjectID, bool, error) {
	key := strings.ToLower(name)
	if id, ok := m.existing[key]; ok {
		return id, false, nil
	}
	id := primitive.NewObjectID()
	m.existing[key] = id
	m.created++
	return id, true, nil
}

type mockSubCategoryResolver struct {
	existing map[string]primitive.ObjectID
	created  int
}

func (m *mockSubCategoryResolver) ResolveOrCreate(ctx context.Context, name string, categoryID primitive.ObjectID) (primitive.ObjectID, bool, error) {
	key := strings.ToLower(name) + "/" + categoryID.Hex()
	if id, ok := m.existing[key]; ok {
		return id, false, nil
	}
	id := primitive.NewObjectID()
	m.existing[key] = id
	m.created++
	return id, true, nil
}

func newTestImporter(repo *mockProductRepo) (*BulkImporter, *mockCategoryResolver, *mockSubCategoryResolver) {
	cats := &mockCategoryResolver{existing: make(map[string]primitive.ObjectID)}
	subs := &mockSubCategoryResolver{existing: make(map[string]primitive.ObjectID)}
	return NewBulkImporter(repo, cats, subs, zap.NewNop()), cats, subs
}

func row(name, code, unit, group, brand, desc string) RowRecord {
	return RowRecord{
		"Product Name": name,
		"Item Code*":   code,
		"Unit*":        unit,
		"Group":        group,
		"Brand":        brand,
		"Description":  desc,
	}
}

func TestImportDuplicateItemCodeInFile(t *testing.T) {
	repo := newMockProductRepo()
	importer, _, _ := newTestImporter(repo)

	rows := []RowRecord{
		row("Bolt A", "IC1", "pcs", "Hardware", "Acme", "d"),
		row("Bolt B", "IC1", "pcs", "Hardware", "Acme", "d"),
	}

	result := importer.Run(context.Background(), rows, primitive.NewObjectID())

	if result.SuccessCount != 1 {
		t.Errorf("expected successCount 1, got %d", result.SuccessCount)
	}
	if result.DuplicateItemCount != 1 {
		t.Errorf("expected duplicateItemCount 1, got %d", result.DuplicateItemCount)
	}
	if len(result.SuccessfulUploads) != 1 || result.SuccessfulUploads[0].Row != 1 {
		t.Errorf("expected row 1 in successfulUploads, got %+v", result.SuccessfulUploads)
	}
	if len(result.Errors) != 1 || result.Errors[0].Row != 2 {
		t.Fatalf("expected one error for row 2, got %+v", result.Errors)
	}
	if want := "Duplicate Item Code* found in Excel file: IC1"; result.Errors[0].Error != want {
		t.Errorf("expected error %q, got %q", want, result.Errors[0].Error)
	}
}

func TestImportMissingUnit(t *testing.T) {
	repo := newMockProductRepo()
	importer, _, _ := newTestImporter(repo)

	rows := []RowRecord{
		row("Bolt A", "IC1", "", "Hardware", "Acme", "d"),
	}

	result := importer.Run(context.Background(), rows, primitive.NewObjectID())

	if result.SuccessCount != 0 || len(result.SuccessfulUploads) != 0 {
		t.Errorf("expected no successes, got %+v", result.SuccessfulUploads)
	}
	if len(result.MissingFields) != 1 {
		t.Fatalf("expected one missingFields entry, got %+v", result.MissingFields)
	}
	entry := result.MissingFields[0]
	if entry.Row != 1 || len(entry.MissingFields) != 1 || entry.MissingFields[0] != "Unit*" {
		t.Errorf("expected row 1 missing [Unit*], got %+v", entry)
	}
	if want := "Total Failed : 1"; result.RejectLabel() != want {
		t.Errorf("expected rejectCount %q, got %q", want, result.RejectLabel())
	}
}

func TestImportMissingFieldsCountedPerField(t *testing.T) {
	repo := newMockProductRepo()
	importer, _, _ := newTestImporter(repo)

	rows := []RowRecord{
		row("", "IC1", "", "Hardware", "Acme", "d"),
	}

	result := importer.Run(context.Background(), rows, primitive.NewObjectID())

	// Two absent fields on one row count twice in the failed total.
	if want := "Total Failed : 2"; result.RejectLabel() != want {
		t.Errorf("expected rejectCount %q, got %q", want, result.RejectLabel())
	}
	if len(result.MissingFields) != 1 {
		t.Fatalf("expected one missingFields entry, got %+v", result.MissingFields)
	}
}

func TestImportDuplicateInStore(t *testing.T) {
	repo := newMockProductRepo()
	existing := &Product{ProductName: "Original Bolt", ItemCode: "IC1"}
	repo.byItemCode["IC1"] = existing

	importer, _, _ := newTestImporter(repo)

	rows := []RowRecord{
		row("Bolt A", "IC1", "pcs", "Hardware", "Acme", "d"),
	}

	result := importer.Run(context.Background(), rows, primitive.NewObjectID())

	if result.SuccessCount != 0 {
		t.Errorf("expected no successes, got %d", result.SuccessCount)
	}
	if result.DuplicateItemCount != 1 {
		t.Errorf("expected duplicateItemCount 1, got %d", result.DuplicateItemCount)
	}
	if want := "Duplicate Item Code* found in database: IC1"; len(result.Errors) != 1 || result.Errors[0].Error != want {
		t.Errorf("expected error %q, got %+v", want, result.Errors)
	}
	if repo.byItemCode["IC1"].ProductName != "Original Bolt" {
		t.Errorf("stored product was modified: %+v", repo.byItemCode["IC1"])
	}
}

func TestImportCategoryCount(t *testing.T) {
	repo := newMockProductRepo()
	importer, cats, subs := newTestImporter(repo)
	cats.existing["hardware"] = primitive.NewObjectID()

	rows := []RowRecord{
		row("Bolt A", "IC1", "pcs", "Hardware", "Acme", "d"),
		row("Pipe B", "IC2", "pcs", "Plumbing", "Acme", "d"),
		row("Pipe C", "IC3", "pcs", "Plumbing", "Acme", "d"),
		row("Pipe D", "IC4", "pcs", "plumbing", "Acme", "d"),
	}

	result := importer.Run(context.Background(), rows, primitive.NewObjectID())

	// Hardware pre-exists; Plumbing (case-insensitively) is the only new group.
	if result.CategoryCount != 1 {
		t.Errorf("expected categoryCount 1, got %d", result.CategoryCount)
	}
	if cats.created != 1 {
		t.Errorf("expected one category created, got %d", cats.created)
	}
	// One Acme per distinct category.
	if result.SubCategoryCount != 2 || subs.created != 2 {
		t.Errorf("expected 2 subcategories created, got count=%d created=%d", result.SubCategoryCount, subs.created)
	}
	if result.SuccessCount != 4 {
		t.Errorf("expected 4 successes, got %d", result.SuccessCount)
	}
}

func TestImportZeroValidRows(t *testing.T) {
	repo := newMockProductRepo()
	importer, _, _ := newTestImporter(repo)

	rows := []RowRecord{
		row("", "", "", "", "", ""),
		row("Bolt A", "", "pcs", "Hardware", "Acme", ""),
	}

	result := importer.Run(context.Background(), rows, primitive.NewObjectID())

	if result.SuccessCount != 0 {
		t.Errorf("expected successCount 0, got %d", result.SuccessCount)
	}
	rowsSeen := make(map[int]bool)
	for _, mf := range result.MissingFields {
		rowsSeen[mf.Row] = true
	}
	for _, e := range result.Errors {
		rowsSeen[e.Row] = true
	}
	for want := 1; want <= len(rows); want++ {
		if !rowsSeen[want] {
			t.Errorf("row %d missing from both missingFields and errors", want)
		}
	}
}

func TestImportRoundTrip(t *testing.T) {
	repo := newMockProductRepo()
	importer, _, _ := newTestImporter(repo)

	rows := []RowRecord{
		row("Bolt A", "IC1", "pcs", "Hardware", "Acme", "d"),
		row("Bolt B", "IC2", "pcs", "Hardware", "Acme", "d"),
		row("Bolt C", "IC3", "pcs", "Hardware", "Acme", "d"),
	}

	first := importer.Run(context.Background(), rows, primitive.NewObjectID())
	if first.SuccessCount != 3 || first.DuplicateItemCount != 0 {
		t.Fatalf("first import: expected 3 successes, got %+v", first)
	}

	second := importer.Run(context.Background(), rows, primitive.NewObjectID())
	if second.SuccessCount != 0 {
		t.Errorf("second import: expected 0 successes, got %d", second.SuccessCount)
	}
	if second.DuplicateItemCount != 3 {
		t.Errorf("second import: expected 3 duplicates, got %d", second.DuplicateItemCount)
	}
}

func TestImportStoreErrorNotInRejectLabel(t *testing.T) {
	repo := newMockProductRepo()
	repo.failCreate["IC2"] = errors.New("document failed validation")
	importer, _, _ := newTestImporter(repo)

	rows := []RowRecord{
		row("Bolt A", "IC1", "pcs", "Hardware", "Acme", "d"),
		row("Bolt B", "IC2", "pcs", "Hardware", "Acme", "d"),
	}

	result := importer.Run(context.Background(), rows, primitive.NewObjectID())

	if result.SuccessCount != 1 {
		t.Errorf("expected successCount 1, got %d", result.SuccessCount)
	}
	if len(result.Errors) != 1 || result.Errors[0].Error != "document failed validation" {
		t.Errorf("expected store error recorded, got %+v", result.Errors)
	}
	// Store write failures appear in errors but are not summed into the
	// failed total.
	if want := "Total Failed : 0"; result.RejectLabel() != want {
		t.Errorf("expected rejectCount %q, got %q", want, result.RejectLabel())
	}
}
