package banner

import (
	"errors"
	"fmt"
	"path"
	"strings"

	common_models "go-procure/internal/common/models"
	"go-procure/internal/config"
	"go-procure/internal/upload"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BannerController struct {
	BannerService BannerService
	Images        *upload.ImageStore
	Config        *config.Config
}

func NewBannerController(bannerService BannerService, images *upload.ImageStore, config *config.Config) *BannerController {
	return &BannerController{
		BannerService: bannerService,
		Images:        images,
		Config:        config,
	}
}

// absolutizeImage turns a stored image path into a public URL. Empty paths
// and the literal string "undefined" left behind by older clients map to nil.
func absolutizeImage(baseURL, subdir, imagePath string) *string {
	if imagePath == "" || imagePath == "undefined" {
		return nil
	}
	if strings.HasPrefix(imagePath, "http") {
		return &imagePath
	}
	full := fmt.Sprintf("%s/images/%s/%s", baseURL, subdir, path.Base(imagePath))
	return &full
}

func (ctrl *BannerController) bannerImageURL(imagePath string) string {
	if url := absolutizeImage(ctrl.Config.BaseURL, "bannerImage", imagePath); url != nil {
		return *url
	}
	return imagePath
}

// GetBanners godoc
// @Summary List banners with pagination and optional search
// @Tags banners
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param q query string false "Description filter"
// @Success 200 {object} common_models.Envelope
// @Router /api/home/admin/banner [get]
func (ctrl *BannerController) GetBanners(c *fiber.Ctx) error {
	page := int64(c.QueryInt("page", 1))
	limit := int64(c.QueryInt("limit", 10))

	banners, total, err := ctrl.BannerService.List(c.UserContext(), c.Query("q"), page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(common_models.Envelope{
			Code: 500, Error: true, Message: "Internal server error",
		})
	}

	formatted := make([]fiber.Map, 0, len(banners))
	for _, b := range banners {
		formatted = append(formatted, fiber.Map{
			"_id":         b.ID,
			"description": b.Description,
			"bannerImage": ctrl.bannerImageURL(b.BannerImage),
			"categoryId":  b.CategoryID,
			"supplierId":  b.SupplierID,
			"createdAt":   b.CreatedAt,
			"updatedAt":   b.UpdatedAt,
		})
	}

	pagination := common_models.NewPagination(total, page, limit, len(banners))
	return c.JSON(common_models.Envelope{
		Code:       200,
		Pagination: &pagination,
		Data:       formatted,
	})
}

func (ctrl *BannerController) GetBannerById(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(common_models.Envelope{
			Code: 404, Error: true, Message: "Banner not found",
		})
	}

	banner, err := ctrl.BannerService.Get(c.UserContext(), id)
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(common_models.Envelope{
			Code: 404, Error: true, Message: "Banner not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(common_models.Envelope{
			Code: 500, Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(common_models.Envelope{
		Code: 200,
		Data: fiber.Map{
			"_id":         banner.ID,
			"description": banner.Description,
			"bannerImage": ctrl.bannerImageURL(banner.BannerImage),
			"categoryId":  banner.CategoryID,
			"supplierId":  banner.SupplierID,
			"createdAt":   banner.CreatedAt,
			"updatedAt":   banner.UpdatedAt,
		},
	})
}

func (ctrl *BannerController) CreateBanner(c *fiber.Ctx) error {
	description := c.FormValue("description")
	file, fileErr := c.FormFile("bannerImage")
	if description == "" || fileErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(common_models.Envelope{
			Code: 400, Error: true, Message: "Description and image are required",
		})
	}

	imageURL, err := ctrl.Images.Save(c, file, "bannerImage", "banner", true)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(common_models.Envelope{
			Code: 400, Error: true, Message: err.Error(),
		})
	}

	banner, err := ctrl.BannerService.Create(c.UserContext(), &Banner{
		BannerImage: imageURL,
		Description: description,
	})
	if err != nil {
		ctrl.Images.Delete(imageURL)
		return c.Status(fiber.StatusInternalServerError).JSON(common_models.Envelope{
			Code: 500, Error: true, Message: "Error creating banner",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(common_models.Envelope{
		Code:    201,
		Message: "Banner created successfully",
		Data:    banner,
	})
}

func (ctrl *BannerController) UpdateBanner(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(common_models.Envelope{
			Code: 404, Error: true, Message: "Banner not found",
		})
	}

	var newImage string
	if file, fileErr := c.FormFile("bannerImage"); fileErr == nil {
		newImage, err = ctrl.Images.Save(c, file, "bannerImage", "banner", true)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(common_models.Envelope{
				Code: 400, Error: true, Message: err.Error(),
			})
		}
	}

	updated, previous, err := ctrl.BannerService.Update(c.UserContext(), id, c.FormValue("description"), newImage)
	if errors.Is(err, ErrNotFound) {
		if newImage != "" {
			ctrl.Images.Delete(newImage)
		}
		return c.Status(fiber.StatusNotFound).JSON(common_models.Envelope{
			Code: 404, Error: true, Message: "Banner not found",
		})
	}
	if err != nil {
		if newImage != "" {
			ctrl.Images.Delete(newImage)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(common_models.Envelope{
			Code: 500, Error: true, Message: "Error updating banner",
		})
	}

	if newImage != "" && previous.BannerImage != "" {
		ctrl.Images.Delete(previous.BannerImage)
	}

	return c.JSON(common_models.Envelope{
		Code:    200,
		Message: "Banner updated successfully",
		Data:    updated,
	})
}

func (ctrl *BannerController) DeleteBanner(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(common_models.Envelope{
			Code: 404, Error: true, Message: "Banner not found",
		})
	}

	deleted, err := ctrl.BannerService.Delete(c.UserContext(), id)
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(common_models.Envelope{
			Code: 404, Error: true, Message: "Banner not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(common_models.Envelope{
			Code: 500, Error: true, Message: "Error deleting banner",
		})
	}

	ctrl.Images.Delete(deleted.BannerImage)

	return c.JSON(common_models.Envelope{
		Code:    200,
		Message: "Banner deleted successfully",
	})
}

// GetAllData returns the combined homepage payload: paginated banners plus
// all categories and suppliers, with image paths absolutized.
func (ctrl *BannerController) GetAllData(c *fiber.Ctx) error {
	page := int64(c.QueryInt("page", 1))
	limit := int64(c.QueryInt("limit", 10))

	home, err := ctrl.BannerService.Home(c.UserContext(), page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(common_models.Envelope{
			Code: 500, Error: true, Message: "Internal server error",
		})
	}

	bannerList := make([]fiber.Map, 0, len(home.Banners))
	for _, b := range home.Banners {
		bannerList = append(bannerList, fiber.Map{
			"id":          b.ID,
			"description": b.Description,
			"bannerImage": ctrl.bannerImageURL(b.BannerImage),
		})
	}

	categoryList := make([]fiber.Map, 0, len(home.Categories))
	for _, cat := range home.Categories {
		var imagePath string
		if cat.CategoryImagePath != nil {
			imagePath = *cat.CategoryImagePath
		}
		categoryList = append(categoryList, fiber.Map{
			"id":                cat.ID,
			"name":              cat.Name,
			"categoryImagePath": absolutizeImage(ctrl.Config.BaseURL, "categoryImage", imagePath),
		})
	}

	supplierList := make([]fiber.Map, 0, len(home.Suppliers))
	for _, s := range home.Suppliers {
		name := s.FirstName
		if name == "" {
			name = s.CompanyName
		}
		var logo string
		if s.CompanyLogo != nil {
			logo = *s.CompanyLogo
		}
		supplierList = append(supplierList, fiber.Map{
			"id":          s.ID,
			"name":        name,
			"companyLogo": absolutizeImage(ctrl.Config.BaseURL, "cmpLogo", logo),
		})
	}

	pagination := common_models.NewPagination(home.TotalBanners, page, limit, len(bannerList))
	return c.JSON(common_models.Envelope{
		Code:       200,
		Pagination: &pagination,
		Data: fiber.Map{
			"banners":    bannerList,
			"categories": categoryList,
			"suppliers":  supplierList,
		},
	})
}
