package user

import (
	"errors"
	"strings"
	"time"

	common_models "go-procure/internal/common/models"
	"go-procure/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserController struct {
	UserService UserService
}

func NewUserController(userService UserService) *UserController {
	return &UserController{UserService: userService}
}

type signupRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phoneNumber"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phoneNumber"`
}

// Signup godoc
// @Summary Register a backoffice user
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/admin/users [post]
func (ctrl *UserController) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	user, token, err := ctrl.UserService.Signup(c.UserContext(), SignupInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		if isValidationError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"code": 500, "error": true, "message": "Server error",
		})
	}

	return c.JSON(fiber.Map{
		"code":      200,
		"error":     false,
		"message":   user.Email + " successfully added.",
		"token":     token,
		"createdAt": utils.FormatIST(user.CreatedAt),
		"updatedAt": utils.FormatIST(user.UpdatedAt),
	})
}

func (ctrl *UserController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	token, err := ctrl.UserService.Login(c.UserContext(), req.Email, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code": 400, "error": true, "message": "Invalid email or password",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"code": 500, "error": true, "message": "Server error",
		})
	}

	return c.JSON(fiber.Map{
		"code":    200,
		"error":   false,
		"message": "Login successful",
		"data": fiber.Map{
			"token":     token,
			"loginTime": utils.FormatIST(time.Now()),
		},
	})
}

// GetUsers godoc
// @Summary List users with optional email filter and sorting
// @Tags users
// @Produce json
// @Param email query string false "Email filter"
// @Param sortBy query string false "field:asc or field:desc"
// @Param page query int false "Page"
// @Param perPage query int false "Page size"
// @Success 200 {object} common_models.Envelope
// @Router /api/admin/users [get]
func (ctrl *UserController) GetUsers(c *fiber.Ctx) error {
	page := int64(c.QueryInt("page", 1))
	perPage := int64(c.QueryInt("perPage", 10))

	sortField, sortAsc := parseSortBy(c.Query("sortBy"))

	users, total, err := ctrl.UserService.List(c.UserContext(), c.Query("email"), sortField, sortAsc, page, perPage)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(common_models.Envelope{
			Code: 500, Error: true, Message: "Server error",
		})
	}

	pagination := common_models.NewPagination(total, page, perPage, len(users))
	return c.JSON(common_models.Envelope{
		Code:       200,
		Message:    "Users fetched successfully",
		Pagination: &pagination,
		Data:       fiber.Map{"users": users},
	})
}

func (ctrl *UserController) UpdateUser(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	updated, err := ctrl.UserService.Update(c.UserContext(), id, UpdateUserInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		PhoneNumber: req.PhoneNumber,
	})
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}
	if err != nil {
		if isValidationError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update user, please try again later"})
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user": fiber.Map{
			"id":          updated.ID,
			"username":    updated.Username,
			"email":       updated.Email,
			"role":        updated.Role,
			"phoneNumber": updated.PhoneNumber,
			"updatedAt":   utils.FormatIST(updated.UpdatedAt),
		},
	})
}

func (ctrl *UserController) DeleteUser(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}

	if err := ctrl.UserService.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to delete user, please try again later"})
	}

	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrBadUsername),
		errors.Is(err, ErrBadEmail),
		errors.Is(err, ErrBadPassword),
		errors.Is(err, ErrBadRole),
		errors.Is(err, ErrBadPhone),
		errors.Is(err, ErrEmailExists),
		errors.Is(err, ErrUsernameExists),
		errors.Is(err, ErrEmailInUse):
		return true
	}
	return false
}

// parseSortBy splits a "field:order" query value; order defaults to
// ascending.
func parseSortBy(sortBy string) (string, bool) {
	if sortBy == "" {
		return "", true
	}
	parts := strings.SplitN(sortBy, ":", 2)
	if len(parts) == 2 && parts[1] == "desc" {
		return parts[0], false
	}
	return parts[0], true
}
