package subcategory

import (
	"errors"

	common_models "go-procure/internal/common/models"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SubCategoryController struct {
	SubCategoryService SubCategoryService
}

func NewSubCategoryController(subCategoryService SubCategoryService) *SubCategoryController {
	return &SubCategoryController{SubCategoryService: subCategoryService}
}

type subCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AddSubcategory godoc
// @Summary Create subcategory under a category
// @Tags subcategories
// @Accept json
// @Produce json
// @Param categoryId path string true "Category ID"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/admin/sub/categories/{categoryId}/subcategories [post]
func (ctrl *SubCategoryController) AddSubcategory(c *fiber.Ctx) error {
	categoryID, err := primitive.ObjectIDFromHex(c.Params("categoryId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Category not found"})
	}

	var req subCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Name is required"})
	}

	sub, err := ctrl.SubCategoryService.Create(c.UserContext(), categoryID, req.Name, req.Description)
	if errors.Is(err, ErrCategoryNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Category not found"})
	}
	if errors.Is(err, ErrNameExists) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Subcategory already exists for this category"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Subcategory created successfully",
		"subcategory": sub,
	})
}

func (ctrl *SubCategoryController) GetSubcategoriesByCategory(c *fiber.Ctx) error {
	categoryID, err := primitive.ObjectIDFromHex(c.Params("categoryId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Category not found"})
	}

	subs, err := ctrl.SubCategoryService.ListByCategory(c.UserContext(), categoryID)
	if errors.Is(err, ErrCategoryNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Category not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}
	if subs == nil {
		subs = []SubCategory{}
	}
	return c.JSON(subs)
}

// GetAllSubcategories godoc
// @Summary List subcategories with pagination
// @Tags subcategories
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} common_models.Envelope
// @Router /api/admin/sub/subcategories [get]
func (ctrl *SubCategoryController) GetAllSubcategories(c *fiber.Ctx) error {
	page := int64(c.QueryInt("page", 1))
	limit := int64(c.QueryInt("limit", 10))

	subs, total, err := ctrl.SubCategoryService.ListPage(c.UserContext(), page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(common_models.Envelope{
			Code: 500, Error: true, Message: "Failed to retrieve subcategories",
		})
	}

	pagination := common_models.NewPagination(total, page, limit, len(subs))
	if len(subs) == 0 {
		return c.JSON(common_models.Envelope{
			Code:       200,
			Message:    "No subcategories found",
			Pagination: &pagination,
			Data:       []SubCategory{},
		})
	}

	return c.JSON(common_models.Envelope{
		Code:       200,
		Message:    "Subcategories fetched successfully",
		Pagination: &pagination,
		Data:       fiber.Map{"subcategories": subs},
	})
}

func (ctrl *SubCategoryController) UpdateSubcategory(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("subcategoryId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Subcategory not found"})
	}

	var req subCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	updated, err := ctrl.SubCategoryService.Update(c.UserContext(), id, req.Name, req.Description)
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Subcategory not found"})
	}
	if errors.Is(err, ErrNameExists) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Subcategory already exists for this category"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	return c.JSON(fiber.Map{
		"message":     "Subcategory updated successfully",
		"subcategory": updated,
	})
}

func (ctrl *SubCategoryController) DeleteSubcategory(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("subcategoryId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Subcategory not found"})
	}

	_, err = ctrl.SubCategoryService.Delete(c.UserContext(), id)
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Subcategory not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	return c.JSON(fiber.Map{"message": "Subcategory deleted successfully"})
}
