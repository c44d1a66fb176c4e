package product

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go-procure/internal/config"
	"go-procure/internal/features/category"
	"go-procure/internal/features/subcategory"
	"go-procure/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ProductController struct {
	ProductService  ProductService
	Importer        *BulkImporter
	CategoryRepo    category.CategoryRepository
	SubCategoryRepo subcategory.SubCategoryRepository
	Config          *config.Config
	Logger          *zap.Logger
}

func NewProductController(
	productService ProductService,
	importer *BulkImporter,
	categoryRepo category.CategoryRepository,
	subCategoryRepo subcategory.SubCategoryRepository,
	config *config.Config,
	logger *zap.Logger,
) *ProductController {
	return &ProductController{
		ProductService:  productService,
		Importer:        importer,
		CategoryRepo:    categoryRepo,
		SubCategoryRepo: subCategoryRepo,
		Config:          config,
		Logger:          logger,
	}
}

type createProductRequest struct {
	ProductName string          `json:"ProductName"`
	ItemCode    string          `json:"ItemCode"`
	Unit        string          `json:"Unit"`
	Description string          `json:"Description"`
	Category    *CategoryRef    `json:"Category"`
	SubCategory *SubCategoryRef `json:"SubCategory"`
	SupplierID  string          `json:"supplierId"`
}

type updateProductRequest struct {
	ProductName string          `json:"ProductName"`
	ItemCode    string          `json:"ItemCode"`
	Unit        string          `json:"Unit"`
	Description string          `json:"Description"`
	Category    *CategoryRef    `json:"Category"`
	SubCategory *SubCategoryRef `json:"SubCategory"`
}

// UploadBulkProducts godoc
// @Summary Bulk import products from an Excel file
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Param supplierId path string true "Owning supplier id"
// @Param excelFile formData file true "Spreadsheet with the required columns"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/admin/products/bulk-upload/{supplierId} [post]
func (ctrl *ProductController) UploadBulkProducts(c *fiber.Ctx) error {
	file, err := c.FormFile("excelFile")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Please upload an Excel file."})
	}

	supplierID, err := primitive.ObjectIDFromHex(c.Params("supplierId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid supplierId"})
	}

	if err := os.MkdirAll(ctrl.Config.UploadPath, 0o755); err != nil {
		ctrl.Logger.Error("error preparing upload directory", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error processing the Excel file."})
	}

	filePath := filepath.Join(ctrl.Config.UploadPath,
		fmt.Sprintf("bulk_%d_%s", time.Now().UnixNano(), filepath.Base(file.Filename)))
	if err := c.SaveFile(file, filePath); err != nil {
		ctrl.Logger.Error("error storing uploaded file", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error processing the Excel file."})
	}
	// The transient file is removed whatever the outcome.
	defer os.Remove(filePath)

	result, err := ctrl.Importer.ImportFile(c.UserContext(), filePath, supplierID)
	if err != nil {
		ctrl.Logger.Error("error processing the excel file", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error processing the Excel file."})
	}

	return c.JSON(fiber.Map{
		"message":            "Bulk products upload completed.",
		"successfulUploads":  result.SuccessfulUploads,
		"errors":             result.Errors,
		"successCount":       result.SuccessCount,
		"rejectCount":        result.RejectLabel(),
		"duplicateItemCount": result.DuplicateItemCount,
		"categoryCount":      result.CategoryCount,
		"subCategoryCount":   result.SubCategoryCount,
		"missingFields":      result.MissingFields,
	})
}

func (ctrl *ProductController) CreateProduct(c *fiber.Ctx) error {
	var req createProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request body"})
	}

	if req.Category == nil || req.Category.CategoryID.IsZero() ||
		req.SubCategory == nil || req.SubCategory.SubCategoryID.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Category & Subcategory are required",
		})
	}

	supplierID, err := primitive.ObjectIDFromHex(req.SupplierID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid supplierId"})
	}

	product, err := ctrl.ProductService.Create(c.UserContext(), &Product{
		ProductName: req.ProductName,
		ItemCode:    req.ItemCode,
		Unit:        req.Unit,
		Description: req.Description,
		Category:    *req.Category,
		SubCategory: *req.SubCategory,
		SupplierID:  supplierID,
	})
	if err != nil {
		ctrl.Logger.Error("product create error", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Product created successfully",
		"data":    product,
	})
}

func (ctrl *ProductController) UpdateProduct(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
	}

	var req updateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request body"})
	}

	fields := bson.M{}
	if req.ProductName != "" {
		fields["ProductName"] = req.ProductName
	}
	if req.ItemCode != "" {
		fields["ItemCode"] = req.ItemCode
	}
	if req.Unit != "" {
		fields["Unit"] = req.Unit
	}
	if req.Description != "" {
		fields["Description"] = req.Description
	}
	if req.Category != nil {
		fields["Category"] = req.Category
	}
	if req.SubCategory != nil {
		fields["SubCategory"] = req.SubCategory
	}

	updated, err := ctrl.ProductService.Update(c.UserContext(), id, fields)
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product updated",
		"data":    updated,
	})
}

func (ctrl *ProductController) GetProducts(c *fiber.Ctx) error {
	page := int64(c.QueryInt("page", 1))
	limit := int64(c.QueryInt("limit", 10))

	products, total, err := ctrl.ProductService.List(c.UserContext(), page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"pagination": fiber.Map{
			"totalElements": total,
			"page":          page,
			"limit":         limit,
		},
		"data": fiber.Map{"products": products},
	})
}

func (ctrl *ProductController) GetProductById(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
	}

	product, err := ctrl.ProductService.Get(c.UserContext(), id)
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error fetching product", "error": err.Error()})
	}

	return c.JSON(fiber.Map{"product": product})
}

func (ctrl *ProductController) GetProductsByQuery(c *fiber.Ctx) error {
	page := int64(c.QueryInt("page", 1))
	limit := int64(c.QueryInt("limit", 10))

	products, total, err := ctrl.ProductService.Search(c.UserContext(), c.Query("q"), page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error fetching products", "error": err.Error()})
	}
	if len(products) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "No products found"})
	}

	totalPages := (total + limit - 1) / limit
	return c.JSON(fiber.Map{
		"currentPage":   page,
		"totalPages":    totalPages,
		"totalProducts": total,
		"products":      products,
	})
}

func (ctrl *ProductController) GetProductsByCategory(c *fiber.Ctx) error {
	return ctrl.nameFiltered(c, c.Params("category"), ctrl.ProductService.ByCategory,
		"No products found for the specified category", "Error fetching products by category")
}

func (ctrl *ProductController) GetProductsBySubcategory(c *fiber.Ctx) error {
	return ctrl.nameFiltered(c, c.Params("subcategory"), ctrl.ProductService.BySubCategory,
		"No products found for the specified subcategory", "Error fetching products by subcategory")
}

type nameQuery func(ctx context.Context, name string, page, limit int64) ([]ProductWithSupplier, int64, error)

func (ctrl *ProductController) nameFiltered(c *fiber.Ctx, name string, query nameQuery, emptyMsg, errMsg string) error {
	page := int64(c.QueryInt("page", 1))
	limit := int64(c.QueryInt("limit", 10))

	products, total, err := query(c.UserContext(), name, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": errMsg, "error": err.Error()})
	}
	if len(products) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": emptyMsg})
	}

	result := make([]fiber.Map, 0, len(products))
	for _, p := range products {
		result = append(result, fiber.Map{
			"id":          p.ID,
			"ProductName": p.ProductName,
			"ItemCode":    p.ItemCode,
			"Category":    p.Category,
			"SubCategory": p.SubCategory,
			"Unit":        p.Unit,
			"supplierId":  p.Supplier,
			"createdAt":   utils.FormatIST(p.CreatedAt),
			"updatedAt":   utils.FormatIST(p.UpdatedAt),
		})
	}

	totalPages := (total + limit - 1) / limit
	return c.JSON(fiber.Map{
		"currentPage":   page,
		"totalPages":    totalPages,
		"totalProducts": total,
		"products":      result,
	})
}

func (ctrl *ProductController) DeleteProduct(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
	}

	if _, err := ctrl.ProductService.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error deleting product", "error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

// GetAllCategories returns the id+name picker list; an empty catalog is a
// 200 with an empty array.
func (ctrl *ProductController) GetAllCategories(c *fiber.Ctx) error {
	categories, err := ctrl.CategoryRepo.FindAll(c.UserContext())
	if err != nil {
		ctrl.Logger.Error("error fetching categories", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error fetching categories", "error": err.Error()})
	}

	result := make([]category.CategorySlim, 0, len(categories))
	for _, cat := range categories {
		result = append(result, category.CategorySlim{ID: cat.ID, Name: cat.Name})
	}
	return c.JSON(fiber.Map{"categories": result})
}

func (ctrl *ProductController) GetAllSubCategories(c *fiber.Ctx) error {
	subCategories, err := ctrl.SubCategoryRepo.FindAll(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error fetching subcategories", "error": err.Error()})
	}
	if len(subCategories) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "No subcategories found"})
	}
	return c.JSON(fiber.Map{"subCategories": subCategories})
}

func (ctrl *ProductController) GetSubcategoriesByCategory(c *fiber.Ctx) error {
	categoryID, err := primitive.ObjectIDFromHex(c.Params("categoryId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Category ID is required"})
	}

	subCategories, err := ctrl.SubCategoryRepo.FindByCategory(c.UserContext(), categoryID)
	if err != nil {
		ctrl.Logger.Error("error fetching subcategories by category", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error fetching subcategories", "error": err.Error()})
	}
	return c.JSON(fiber.Map{"subCategories": subCategories})
}
