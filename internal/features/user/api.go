package user

import (
	"go-procure/internal/config"
	"go-procure/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type UserApi struct {
	UserController *UserController
	Config         *config.Config
}

func NewUserApi(userController *UserController, config *config.Config) *UserApi {
	return &UserApi{
		UserController: userController,
		Config:         config,
	}
}

func (api *UserApi) Setup(app *fiber.App) {
	auth := middleware.AuthMiddleware(api.Config.SkipAuth)

	// Login and signup issue the tokens, so they sit outside the auth guard.
	// Auth is attached per route because POST and GET on /users differ here.
	app.Post("/api/admin/login", api.UserController.Login)
	app.Post("/api/admin/users", api.UserController.Signup)

	app.Get("/api/admin/users", auth, api.UserController.GetUsers)
	app.Put("/api/admin/users/:id", auth, api.UserController.UpdateUser)
	app.Delete("/api/admin/users/:id", auth, api.UserController.DeleteUser)
}
