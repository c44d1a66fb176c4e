package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// RowRecord is one parsed spreadsheet line keyed by trimmed column header.
type RowRecord map[string]string

// requiredFields are the spreadsheet columns every row must fill, named as
// the source tool writes them.
var requiredFields = []string{"Product Name", "Item Code*", "Unit*", "Group", "Brand", "Description"}

type RowSuccess struct {
	Row         int    `json:"row"`
	ProductName string `json:"productName"`
}

type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type RowMissingFields struct {
	Row           int      `json:"row"`
	MissingFields []string `json:"missingFields"`
}

// ImportResult accumulates per-row outcomes across one bulk upload. It is
// owned by a single import run and returned once at the end.
type ImportResult struct {
	SuccessfulUploads []RowSuccess       `json:"successfulUploads"`
	Errors            []RowError         `json:"errors"`
	MissingFields     []RowMissingFields `json:"missingFields"`
	SuccessCount      int                `json:"successCount"`
	DuplicateItemCount int               `json:"duplicateItemCount"`
	CategoryCount      int               `json:"categoryCount"`
	SubCategoryCount   int               `json:"subCategoryCount"`

	missingFieldCount int
}

// RejectLabel reports the failed total as duplicates plus missing fields.
// Rows that failed only at the store write are listed in Errors but not
// summed here, matching the established report format.
func (r *ImportResult) RejectLabel() string {
	return fmt.Sprintf("Total Failed : %d", r.DuplicateItemCount+r.missingFieldCount)
}

// CategoryResolver maps a category name to its id, creating the category
// when absent. The bool reports whether a new category was created.
type CategoryResolver interface {
	ResolveOrCreate(ctx context.Context, name string) (primitive.ObjectID, bool, error)
}

// SubCategoryResolver does the same for a subcategory scoped to a category.
type SubCategoryResolver interface {
	ResolveOrCreate(ctx context.Context, name string, categoryID primitive.ObjectID) (primitive.ObjectID, bool, error)
}

// BulkImporter runs the spreadsheet import: parse, validate, resolve
// category/subcategory references, insert products, aggregate outcomes.
type BulkImporter struct {
	Products      ProductRepository
	Categories    CategoryResolver
	SubCategories SubCategoryResolver
	Logger        *zap.Logger
}

func NewBulkImporter(products ProductRepository, categories CategoryResolver, subCategories SubCategoryResolver, logger *zap.Logger) *BulkImporter {
	return &BulkImporter{
		Products:      products,
		Categories:    categories,
		SubCategories: subCategories,
		Logger:        logger,
	}
}

// ParseSheet reads the first sheet of an Excel file into ordered row records.
// Header cells and values are trimmed; rows keep their original order.
func ParseSheet(path string) ([]RowRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	records := make([]RowRecord, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		record := RowRecord{}
		for i, header := range headers {
			if header == "" {
				continue
			}
			value := ""
			if i < len(cells) {
				value = strings.TrimSpace(cells[i])
			}
			record[header] = value
		}
		records = append(records, record)
	}
	return records, nil
}

// ImportFile parses the file and runs the import. A parse failure is
// batch-fatal; everything past that point is row-local.
func (imp *BulkImporter) ImportFile(ctx context.Context, path string, supplierID primitive.ObjectID) (*ImportResult, error) {
	rows, err := ParseSheet(path)
	if err != nil {
		return nil, err
	}
	return imp.Run(ctx, rows, supplierID), nil
}

// Run processes rows in file order. Rows are independent except for the
// in-batch item code set: the first occurrence of a code wins, later ones
// are rejected.
func (imp *BulkImporter) Run(ctx context.Context, rows []RowRecord, supplierID primitive.ObjectID) *ImportResult {
	result := &ImportResult{
		SuccessfulUploads: []RowSuccess{},
		Errors:            []RowError{},
		MissingFields:     []RowMissingFields{},
	}
	itemCodes := make(map[string]struct{})

	for index, row := range rows {
		rowNo := index + 1

		var missing []string
		for _, field := range requiredFields {
			if row[field] == "" {
				missing = append(missing, field)
				result.missingFieldCount++
			}
		}
		if len(missing) > 0 {
			result.MissingFields = append(result.MissingFields, RowMissingFields{Row: rowNo, MissingFields: missing})
			result.Errors = append(result.Errors, RowError{
				Row:   rowNo,
				Error: fmt.Sprintf("Missing fields: %s", strings.Join(missing, ", ")),
			})
			continue
		}

		itemCode := row["Item Code*"]
		productName := row["Product Name"]
		unit := row["Unit*"]
		group := row["Group"]
		brand := row["Brand"]
		description := row["Description"]

		if _, seen := itemCodes[itemCode]; seen {
			result.Errors = append(result.Errors, RowError{
				Row:   rowNo,
				Error: fmt.Sprintf("Duplicate Item Code* found in Excel file: %s", itemCode),
			})
			result.DuplicateItemCount++
			continue
		}
		itemCodes[itemCode] = struct{}{}

		_, err := imp.Products.FindByItemCode(ctx, itemCode)
		if err == nil {
			result.Errors = append(result.Errors, RowError{
				Row:   rowNo,
				Error: fmt.Sprintf("Duplicate Item Code* found in database: %s", itemCode),
			})
			result.DuplicateItemCount++
			continue
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			result.Errors = append(result.Errors, RowError{Row: rowNo, Error: err.Error()})
			continue
		}

		categoryID, createdCategory, err := imp.Categories.ResolveOrCreate(ctx, group)
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: rowNo, Error: err.Error()})
			continue
		}
		if createdCategory {
			imp.Logger.Info("new category added", zap.String("name", group))
			result.CategoryCount++
		}

		subCategoryID, createdSub, err := imp.SubCategories.ResolveOrCreate(ctx, brand, categoryID)
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: rowNo, Error: err.Error()})
			continue
		}
		if createdSub {
			imp.Logger.Info("new subcategory added", zap.String("name", brand))
			result.SubCategoryCount++
		}

		// Embeds the spreadsheet names, not the stored entity names.
		newProduct := &Product{
			ProductName: productName,
			ItemCode:    itemCode,
			Category: CategoryRef{
				CategoryID:   categoryID,
				CategoryName: group,
			},
			SubCategory: SubCategoryRef{
				SubCategoryID:   subCategoryID,
				SubCategoryName: brand,
				CategoryID:      categoryID,
			},
			Unit:        unit,
			Description: description,
			SupplierID:  supplierID,
		}

		if err := imp.Products.Create(ctx, newProduct); err != nil {
			imp.Logger.Error("error saving product",
				zap.Int("row", rowNo),
				zap.String("itemCode", itemCode),
				zap.Error(err))
			result.Errors = append(result.Errors, RowError{Row: rowNo, Error: err.Error()})
			continue
		}

		result.SuccessfulUploads = append(result.SuccessfulUploads, RowSuccess{Row: rowNo, ProductName: productName})
		result.SuccessCount++
	}

	return result
}
