package category

import (
	"errors"
	"strings"

	common_models "go-procure/internal/common/models"
	"go-procure/internal/upload"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CategoryController struct {
	CategoryService CategoryService
	Images          *upload.ImageStore
}

func NewCategoryController(categoryService CategoryService, images *upload.ImageStore) *CategoryController {
	return &CategoryController{
		CategoryService: categoryService,
		Images:          images,
	}
}

type addCategoryRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	SubCategories []string `json:"subCategories"`
}

type updateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AddCategory godoc
// @Summary Create category with named subcategories
// @Tags categories
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/admin/cat/categories [post]
func (ctrl *CategoryController) AddCategory(c *fiber.Ctx) error {
	var req addCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Category name is required"})
	}

	category, err := ctrl.CategoryService.Add(c.UserContext(), AddCategoryInput{
		Name:          req.Name,
		Description:   req.Description,
		SubCategories: req.SubCategories,
	})
	if errors.Is(err, ErrNameExists) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Category already exists"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error creating category", "error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Category created successfully",
		"category": category,
	})
}

// CreateCategory handles the multipart variant with a category image.
func (ctrl *CategoryController) CreateCategory(c *fiber.Ctx) error {
	name := c.FormValue("name")
	description := c.FormValue("description")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Category name is required"})
	}

	var imagePath *string
	if file, err := c.FormFile("categoryImage"); err == nil {
		url, err := ctrl.Images.Save(c, file, "categories", "category", false)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		imagePath = &url
	}

	category, err := ctrl.CategoryService.CreateWithImage(c.UserContext(), name, description, imagePath)
	if errors.Is(err, ErrNameExists) {
		if imagePath != nil {
			ctrl.Images.Delete(*imagePath)
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Category with this name already exists"})
	}
	if err != nil {
		if imagePath != nil {
			ctrl.Images.Delete(*imagePath)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error creating category", "error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Category created successfully",
		"category": category,
	})
}

// GetAllCategories godoc
// @Summary List categories with pagination and optional search
// @Tags categories
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param search query string false "Name or description filter"
// @Success 200 {object} common_models.Envelope
// @Router /api/admin/cat/category [get]
func (ctrl *CategoryController) GetAllCategories(c *fiber.Ctx) error {
	page := int64(c.QueryInt("page", 1))
	limit := int64(c.QueryInt("limit", 10))
	search := c.Query("search")

	categories, total, err := ctrl.CategoryService.ListPage(c.UserContext(), search, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(common_models.Envelope{
			Code: 500, Error: true, Message: "Error fetching categories",
		})
	}

	pagination := common_models.NewPagination(total, page, limit, len(categories))
	return c.JSON(common_models.Envelope{
		Code:       200,
		Message:    "Categories fetched successfully",
		Pagination: &pagination,
		Data:       fiber.Map{"categories": categories},
	})
}

// GetCategories returns every category without pagination, newest first.
func (ctrl *CategoryController) GetCategories(c *fiber.Ctx) error {
	categories, err := ctrl.CategoryService.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve categories"})
	}
	return c.JSON(categories)
}

func (ctrl *CategoryController) GetQueryCategories(c *fiber.Ctx) error {
	categories, err := ctrl.CategoryService.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve categories"})
	}
	if len(categories) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "No categories found"})
	}
	return c.JSON(categories)
}

func (ctrl *CategoryController) GetCategoryById(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Category not found"})
	}

	category, err := ctrl.CategoryService.Get(c.UserContext(), id)
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Category not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error fetching category", "error": err.Error()})
	}
	return c.JSON(category)
}

func (ctrl *CategoryController) UpdateCategory(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Category not found"})
	}

	var req updateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Category name is required"})
	}

	updated, err := ctrl.CategoryService.Update(c.UserContext(), id, UpdateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if errors.Is(err, ErrNameExists) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Category with this name already exists"})
	}
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Category not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error updating category", "error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message":  "Category updated successfully",
		"category": updated,
	})
}

// UpdateCategoryWithImage replaces the category image when a new file is
// attached, removing the previous one from disk.
func (ctrl *CategoryController) UpdateCategoryWithImage(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Category not found"})
	}

	existing, err := ctrl.CategoryService.Get(c.UserContext(), id)
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Category not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error fetching category", "error": err.Error()})
	}

	input := UpdateCategoryInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
	}
	if strings.TrimSpace(input.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Category name is required"})
	}

	var newImage string
	if file, fileErr := c.FormFile("categoryImage"); fileErr == nil {
		newImage, err = ctrl.Images.Save(c, file, "categories", "category", false)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		input.ImagePath = &newImage
	}

	updated, err := ctrl.CategoryService.Update(c.UserContext(), id, input)
	if errors.Is(err, ErrNameExists) {
		if newImage != "" {
			ctrl.Images.Delete(newImage)
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Category with this name already exists"})
	}
	if err != nil {
		if newImage != "" {
			ctrl.Images.Delete(newImage)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error updating category", "error": err.Error()})
	}

	if newImage != "" && existing.CategoryImagePath != nil {
		ctrl.Images.Delete(*existing.CategoryImagePath)
	}

	return c.JSON(fiber.Map{
		"message":  "Category updated successfully",
		"category": updated,
	})
}

func (ctrl *CategoryController) DeleteCategory(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Category not found"})
	}

	deleted, err := ctrl.CategoryService.Delete(c.UserContext(), id)
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Category not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error deleting category", "error": err.Error()})
	}

	if deleted.CategoryImagePath != nil {
		ctrl.Images.Delete(*deleted.CategoryImagePath)
	}

	return c.JSON(fiber.Map{
		"message":  "Category deleted successfully",
		"category": deleted,
	})
}
