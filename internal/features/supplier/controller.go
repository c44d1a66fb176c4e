package supplier

import (
	"errors"

	common_models "go-procure/internal/common/models"
	"go-procure/internal/upload"
	"go-procure/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SupplierController struct {
	SupplierService SupplierService
	Images          *upload.ImageStore
}

func NewSupplierController(supplierService SupplierService, images *upload.ImageStore) *SupplierController {
	return &SupplierController{
		SupplierService: supplierService,
		Images:          images,
	}
}

type createSupplierRequest struct {
	Name          string `json:"name"`
	OfficeAddress string `json:"officeAddress"`
	CompanyName   string `json:"companyName"`
	ContactNumber string `json:"contactNumber"`
	Email         string `json:"email"`
}

type updateSupplierRequest struct {
	Name                 string   `json:"name"`
	OfficeAddress        string   `json:"officeAddress"`
	ContactNumber        string   `json:"contactNumber"`
	Email                string   `json:"email"`
	ProductCategories    []string `json:"productCategories"`
	ProductSubCategories []string `json:"productSubCategories"`
}

// GetAllSuppliers godoc
// @Summary List suppliers
// @Tags suppliers
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} common_models.Envelope
// @Router /api/admin/suppliers [get]
func (ctrl *SupplierController) GetAllSuppliers(c *fiber.Ctx) error {
	page := int64(c.QueryInt("page", 1))
	limit := int64(c.QueryInt("limit", 10))

	suppliers, total, err := ctrl.SupplierService.List(c.UserContext(), page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(common_models.Envelope{
			Code: 500, Error: true, Message: "Error fetching suppliers",
		})
	}

	result := make([]fiber.Map, 0, len(suppliers))
	for _, s := range suppliers {
		result = append(result, fiber.Map{
			"id":            s.ID,
			"firstName":     orDefault(s.FirstName, "N/A"),
			"lastName":      orDefault(s.LastName, "N/A"),
			"companyName":   s.CompanyName,
			"companyType":   s.CompanyType,
			"companyLogo":   s.CompanyLogo,
			"officeAddress": orDefault(s.OfficeAddress, "Not available"),
			"contactNumber": orDefault(s.ContactNumber, "Not available"),
			"email":         orDefault(s.Email, "Not available"),
			"createdAt":     utils.FormatIST(s.CreatedAt),
			"updatedAt":     utils.FormatIST(s.UpdatedAt),
		})
	}

	pagination := common_models.NewPagination(total, page, limit, len(suppliers))
	return c.JSON(common_models.Envelope{
		Code:       200,
		Message:    "Suppliers fetched successfully",
		Pagination: &pagination,
		Data:       fiber.Map{"suppliers": result},
	})
}

func (ctrl *SupplierController) GetSupplierById(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Supplier not found"})
	}

	supplier, err := ctrl.SupplierService.Get(c.UserContext(), id)
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Supplier not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error fetching supplier", "error": err.Error()})
	}

	return c.JSON(supplier)
}

// CreateSupplier godoc
// @Summary Create supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/admin/suppliers [post]
func (ctrl *SupplierController) CreateSupplier(c *fiber.Ctx) error {
	var req createSupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	supplier, err := ctrl.SupplierService.Create(c.UserContext(), CreateSupplierInput{
		FirstName:     req.Name,
		Email:         req.Email,
		CompanyName:   req.CompanyName,
		OfficeAddress: req.OfficeAddress,
		ContactNumber: req.ContactNumber,
	})
	if errors.Is(err, ErrEmailExists) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Email already exists. Please use a different email."})
	}
	if errors.Is(err, ErrBadContactNumber) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Contact number must be in the format: XXX XXXXXXXXX"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error creating supplier", "error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Supplier created successfully",
		"supplier": supplier,
	})
}

// InsertSupplier handles the multipart variant with a required company logo.
func (ctrl *SupplierController) InsertSupplier(c *fiber.Ctx) error {
	firstName := c.FormValue("firstName")
	lastName := c.FormValue("lastName")
	email := c.FormValue("email")
	companyName := c.FormValue("companyName")
	companyType := c.FormValue("companyType")
	officeAddress := c.FormValue("officeAddress")
	contactNumber := c.FormValue("contactNumber")

	logoFile, fileErr := c.FormFile("companyLogo")
	if firstName == "" || email == "" || companyName == "" || contactNumber == "" || fileErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "All required fields must be provided"})
	}

	logoURL, err := ctrl.Images.Save(c, logoFile, "cmpLogos", "logo", false)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if lastName == "" {
		lastName = " "
	}

	supplier, err := ctrl.SupplierService.Create(c.UserContext(), CreateSupplierInput{
		FirstName:     firstName,
		LastName:      lastName,
		Email:         email,
		CompanyName:   companyName,
		CompanyType:   companyType,
		CompanyLogo:   &logoURL,
		OfficeAddress: officeAddress,
		ContactNumber: contactNumber,
	})
	if errors.Is(err, ErrBadContactNumber) {
		ctrl.Images.Delete(logoURL)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Contact number must be in the format: XXX XXXXXXXXX"})
	}
	if errors.Is(err, ErrEmailExists) {
		ctrl.Images.Delete(logoURL)
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Email must be unique"})
	}
	if err != nil {
		ctrl.Images.Delete(logoURL)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error creating supplier", "error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Supplier created successfully",
		"supplier": supplier,
	})
}

func (ctrl *SupplierController) UpdateSupplier(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Supplier not found"})
	}

	var req updateSupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	input := UpdateSupplierInput{
		FirstName:     req.Name,
		OfficeAddress: req.OfficeAddress,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
	}
	if req.ProductCategories != nil {
		input.ProductCategories = toObjectIDs(req.ProductCategories)
	}
	if req.ProductSubCategories != nil {
		input.ProductSubCategories = toObjectIDs(req.ProductSubCategories)
	}

	updated, err := ctrl.SupplierService.Update(c.UserContext(), id, input)
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Supplier not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error updating supplier", "error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message":  "Supplier updated successfully",
		"supplier": updated,
	})
}

func (ctrl *SupplierController) DeleteSupplier(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Supplier not found"})
	}

	deleted, err := ctrl.SupplierService.Delete(c.UserContext(), id)
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Supplier not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error deleting supplier", "error": err.Error()})
	}

	if deleted.CompanyLogo != nil {
		ctrl.Images.Delete(*deleted.CompanyLogo)
	}

	return c.JSON(fiber.Map{
		"message":  "Supplier deleted successfully",
		"supplier": deleted,
	})
}

// GetSuppliersByName returns suppliers matching the name with populated
// category/subcategory/product names.
func (ctrl *SupplierController) GetSuppliersByName(c *fiber.Ctx) error {
	name := c.Query("name")
	page := int64(c.QueryInt("page", 1))
	limit := int64(c.QueryInt("limit", 5))

	suppliers, total, err := ctrl.SupplierService.SearchByName(c.UserContext(), name, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error fetching suppliers"})
	}
	if len(suppliers) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "No suppliers found"})
	}

	result := make([]fiber.Map, 0, len(suppliers))
	for _, s := range suppliers {
		categories := make([]string, 0, len(s.CategoryDocs))
		for _, cat := range s.CategoryDocs {
			categories = append(categories, cat.Name)
		}
		subCategories := make([]string, 0, len(s.SubCategoryDocs))
		for _, sub := range s.SubCategoryDocs {
			subCategories = append(subCategories, sub.Name)
		}
		products := make([]string, 0, len(s.ProductDocs))
		for _, p := range s.ProductDocs {
			products = append(products, p.ProductName)
		}

		result = append(result, fiber.Map{
			"id":                   s.ID,
			"name":                 s.FirstName,
			"productCategories":    categories,
			"productSubCategories": subCategories,
			"products":             products,
		})
	}

	totalPages := (total + limit - 1) / limit
	return c.JSON(fiber.Map{
		"currentPage":    page,
		"totalPages":     totalPages,
		"countPage":      len(suppliers),
		"totalSuppliers": total,
		"suppliers":      result,
	})
}

// GetSuppliers returns the slim list used by dropdowns and logo grids.
func (ctrl *SupplierController) GetSuppliers(c *fiber.Ctx) error {
	page := int64(c.QueryInt("page", 1))
	limit := int64(c.QueryInt("limit", 10))

	suppliers, total, err := ctrl.SupplierService.ListSlim(c.UserContext(), page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error fetching suppliers", "error": err.Error()})
	}

	pagination := common_models.NewPagination(total, page, limit, len(suppliers))
	return c.JSON(fiber.Map{
		"data":       fiber.Map{"suppliers": suppliers},
		"pagination": pagination,
	})
}

func (ctrl *SupplierController) GetSuppliersByQuery(c *fiber.Ctx) error {
	suppliers, err := ctrl.SupplierService.SearchSlim(c.UserContext(), c.Query("q"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error fetching suppliers", "error": err.Error()})
	}
	if len(suppliers) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "No suppliers found"})
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{"suppliers": suppliers},
	})
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func toObjectIDs(hexes []string) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		if id, err := primitive.ObjectIDFromHex(h); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
