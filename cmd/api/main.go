package main

import (
	"context"
	"errors"
	"fmt"
	common_api "go-procure/internal/common/api"
	"go-procure/internal/config"
	"go-procure/internal/database"
	"go-procure/internal/features/banner"
	"go-procure/internal/features/category"
	"go-procure/internal/features/client"
	"go-procure/internal/features/clienthistory"
	"go-procure/internal/features/product"
	"go-procure/internal/features/search"
	"go-procure/internal/features/subcategory"
	"go-procure/internal/features/supplier"
	"go-procure/internal/features/system"
	"go-procure/internal/features/user"
	"go-procure/internal/logger"
	"go-procure/internal/middleware"
	"go-procure/internal/sweeper"
	"go-procure/internal/upload"
	"go-procure/pkg/utils"
	"log"
	"time"

	_ "go-procure/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             25 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Use custom CORS middleware
	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),    // Cast to Interface
		fx.ResultTags(`group:"routes"`), // Add to Group
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	log.Printf("Registering %d routes...\n", len(routes))
	for i, route := range routes {
		log.Printf("Setting up route %d: %T\n", i+1, route)
		route.Setup(app)
	}
	log.Println("All routes registered successfully")
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			utils.SetSecret(cfg.JWTSecret)
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// InitializeIndexes ensures that necessary database indexes are created
func InitializeIndexes(
	lc fx.Lifecycle,
	categoryRepo category.CategoryRepository,
	subCategoryRepo subcategory.SubCategoryRepository,
	productRepo product.ProductRepository,
	clientRepo client.ClientRepository,
	userRepo user.UserRepository,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				// Use a background context with timeout for index creation
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := categoryRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure category indexes: %v", err)
				}
				if err := subCategoryRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure subcategory indexes: %v", err)
				}
				if err := productRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure product indexes: %v", err)
				}
				if err := clientRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure client indexes: %v", err)
				}
				if err := userRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure user indexes: %v", err)
				}
			}()
			return nil
		},
	})
}

// productRefChecker adapts the product repository to the existence check the
// client service needs.
type productRefChecker struct {
	repo product.ProductRepository
}

func (a *productRefChecker) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	_, err := a.repo.FindByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

type categoryRefChecker struct {
	repo category.CategoryRepository
}

func (a *categoryRefChecker) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	_, err := a.repo.FindByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

type subCategoryRefChecker struct {
	repo subcategory.SubCategoryRepository
}

func (a *subCategoryRefChecker) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	_, err := a.repo.FindByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

type supplierRefChecker struct {
	repo supplier.SupplierRepository
}

func (a *supplierRefChecker) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	_, err := a.repo.FindByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// @title           Procurement Catalog API
// @version         1.0
// @description     Supplier, product catalog and bulk import backend built with Fiber and Uber Fx.

// @host            localhost:5000
// @BasePath        /
func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Shared image storage
			upload.NewImageStore,

			// Initialize Repository
			supplier.NewSupplierRepository,
			category.NewCategoryRepository,
			subcategory.NewSubCategoryRepository,
			product.NewProductRepository,
			client.NewClientRepository,
			clienthistory.NewClientHistoryRepository,
			banner.NewBannerRepository,
			user.NewUserRepository,
			search.NewSearchRepository,

			supplier.NewSupplierService,
			category.NewCategoryService,
			subcategory.NewSubCategoryService,
			product.NewProductService,
			product.NewBulkImporter,
			client.NewClientService,
			banner.NewBannerService,
			user.NewUserService,
			search.NewSearchService,

			// Interface Adapters to break circular dependencies and satisfy Fx
			func(r subcategory.SubCategoryRepository) category.SubCategoryLinker { return r },
			func(r category.CategoryRepository) subcategory.CategoryChecker {
				return &categoryRefChecker{repo: r}
			},
			func(r category.CategoryRepository) product.CategoryResolver { return r },
			func(r subcategory.SubCategoryRepository) product.SubCategoryResolver { return r },
			func(p product.ProductRepository, sc subcategory.SubCategoryRepository, sp supplier.SupplierRepository) client.References {
				return client.References{
					Products:      &productRefChecker{repo: p},
					SubCategories: &subCategoryRefChecker{repo: sc},
					Suppliers:     &supplierRefChecker{repo: sp},
				}
			},

			// Initialize Controller
			supplier.NewSupplierController,
			category.NewCategoryController,
			subcategory.NewSubCategoryController,
			product.NewProductController,
			client.NewClientController,
			clienthistory.NewClientHistoryController,
			banner.NewBannerController,
			user.NewUserController,
			search.NewSearchController,

			// Background upload cleanup
			sweeper.NewSweeper,

			// Initialize API Routes
			AsRoute(supplier.NewSupplierApi),
			AsRoute(category.NewCategoryApi),
			AsRoute(subcategory.NewSubCategoryApi),
			AsRoute(product.NewProductApi),
			AsRoute(client.NewClientApi),
			AsRoute(clienthistory.NewClientHistoryApi),
			AsRoute(banner.NewBannerApi),
			AsRoute(user.NewUserApi),
			AsRoute(search.NewSearchApi),
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewStaticApi),
			AsRoute(system.NewSwaggerApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			func(lc fx.Lifecycle, s *sweeper.Sweeper) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return s.Start()
					},
					OnStop: func(ctx context.Context) error {
						s.Stop()
						return nil
					},
				})
			},
			InitializeIndexes,
		),
	)

	app.Run()
}
