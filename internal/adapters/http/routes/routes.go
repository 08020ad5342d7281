package routes

import (
	"time"

	"assettrack/internal/adapters/http/handlers"
	"assettrack/internal/adapters/http/middleware"
	"assettrack/internal/adapters/persistence/models"
	"assettrack/internal/adapters/persistence/repositories"
	"assettrack/internal/config"
	"assettrack/internal/core/domain"
	"assettrack/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	txManager := repositories.NewTxManager(db)
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	branchRepo := repositories.NewMasterRepository[models.Branch](db)
	categoryRepo := repositories.NewMasterRepository[models.Category](db)
	departmentRepo := repositories.NewMasterRepository[models.Department](db)
	employeeRepo := repositories.NewEmployeeRepository(db)
	productRepo := repositories.NewProductRepository(db)
	assignmentRepo := repositories.NewAssignmentRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg.JWT)
	userService := services.NewUserService(userRepo, refreshTokenRepo)

	branchService := services.NewMasterService(branchRepo, services.MasterServiceConfig[models.Branch]{
		Make: func(name, description string) *models.Branch {
			return &models.Branch{Name: name}
		},
		NotFoundErr: domain.ErrBranchNotFound,
		DepChecks: []services.DependencyCheck{
			{Label: "products", Count: productRepo.CountLiveByBranch},
			{Label: "employees", Count: employeeRepo.CountLiveByBranch},
		},
	})
	categoryService := services.NewMasterService(categoryRepo, services.MasterServiceConfig[models.Category]{
		Make: func(name, description string) *models.Category {
			return &models.Category{Name: name, Description: description}
		},
		NotFoundErr: domain.ErrCategoryNotFound,
		DepChecks: []services.DependencyCheck{
			{Label: "products", Count: productRepo.CountLiveByCategory},
		},
	})
	departmentService := services.NewMasterService(departmentRepo, services.MasterServiceConfig[models.Department]{
		Make: func(name, description string) *models.Department {
			return &models.Department{Name: name, Description: description}
		},
		NotFoundErr: domain.ErrDepartmentNotFound,
		DepChecks: []services.DependencyCheck{
			{Label: "products", Count: productRepo.CountLiveByDepartment},
		},
	})

	employeeService := services.NewEmployeeService(employeeRepo, branchRepo, assignmentRepo)
	productService := services.NewProductService(productRepo, categoryRepo, branchRepo, departmentRepo, assignmentRepo)
	assignmentService := services.NewAssignmentService(txManager, assignmentRepo, productRepo, employeeRepo)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	masterHandler := handlers.NewMasterHandler(branchService, categoryService, departmentService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	productHandler := handlers.NewProductHandler(productService, cfg)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	auth := middleware.AuthMiddleware(cfg)

	// Auth routes
	authRoutes := apiV1.Group("/auth")
	authRoutes.Use(middleware.NoCacheHeaders())
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/refresh", authHandler.Refresh)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/me", auth, authHandler.Me)
	authRoutes.Post("/logout-all", auth, authHandler.LogoutAll)

	// User management routes
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(auth)
	userRoutes.Get("/", middleware.RoleMiddleware(cfg.Authz.UserAdmin...), userHandler.List)
	userRoutes.Post("/", middleware.RoleMiddleware(cfg.Authz.UserAdmin...), userHandler.Create)
	userRoutes.Get("/:id", middleware.RoleMiddleware(cfg.Authz.UserAdmin...), userHandler.Get)
	userRoutes.Put("/:id", userHandler.Update)
	userRoutes.Delete("/:id", middleware.RoleMiddleware(cfg.Authz.UserDelete...), userHandler.Delete)

	// Master data routes (public cached reads, gated writes)
	masterWrite := middleware.RoleMiddleware(cfg.Authz.MasterWrite...)
	masterCache := middleware.CacheControl(5 * time.Minute)
	for _, g := range []struct {
		path   string
		list   fiber.Handler
		get    fiber.Handler
		create fiber.Handler
		update fiber.Handler
		remove fiber.Handler
	}{
		{"/branches", masterHandler.ListBranches, masterHandler.GetBranch, masterHandler.CreateBranch, masterHandler.UpdateBranch, masterHandler.DeleteBranch},
		{"/categories", masterHandler.ListCategories, masterHandler.GetCategory, masterHandler.CreateCategory, masterHandler.UpdateCategory, masterHandler.DeleteCategory},
		{"/departments", masterHandler.ListDepartments, masterHandler.GetDepartment, masterHandler.CreateDepartment, masterHandler.UpdateDepartment, masterHandler.DeleteDepartment},
	} {
		group := apiV1.Group(g.path)
		group.Get("/", masterCache, g.list)
		group.Get("/:id", masterCache, g.get)
		group.Post("/", auth, masterWrite, g.create)
		group.Put("/:id", auth, masterWrite, g.update)
		group.Delete("/:id", auth, masterWrite, g.remove)
	}

	// Employee routes
	employeeRoutes := apiV1.Group("/employees")
	employeeRoutes.Use(auth)
	employeeRoutes.Get("/", employeeHandler.List)
	employeeRoutes.Get("/:id", employeeHandler.Get)
	employeeRoutes.Get("/:id/assignments", assignmentHandler.ListByEmployee)
	employeeRoutes.Post("/", masterWrite, employeeHandler.Create)
	employeeRoutes.Put("/:id", masterWrite, employeeHandler.Update)
	employeeRoutes.Delete("/:id", masterWrite, employeeHandler.Delete)

	// Product routes
	productWrite := middleware.RoleMiddleware(cfg.Authz.ProductWrite...)
	productRoutes := apiV1.Group("/products")
	productRoutes.Use(auth)
	productRoutes.Get("/", productHandler.List)
	productRoutes.Get("/assigned", productHandler.ListAssigned)
	productRoutes.Get("/:id", productHandler.Get)
	productRoutes.Get("/:id/qrcode", productHandler.QRCode)
	productRoutes.Get("/:id/assignments", assignmentHandler.ListByProduct)
	productRoutes.Post("/", productWrite, productHandler.Create)
	productRoutes.Put("/:id", productWrite, productHandler.Update)
	productRoutes.Delete("/:id", productWrite, productHandler.Delete)

	// Assignment routes
	assignmentWrite := middleware.RoleMiddleware(cfg.Authz.AssignmentWrite...)
	assignmentRoutes := apiV1.Group("/assignments")
	assignmentRoutes.Use(auth)
	assignmentRoutes.Get("/active", assignmentHandler.ListActive)
	assignmentRoutes.Get("/history", assignmentHandler.ListHistory)
	assignmentRoutes.Get("/employee/:id", assignmentHandler.ListByEmployee)
	assignmentRoutes.Get("/product/:id", assignmentHandler.ListByProduct)
	assignmentRoutes.Get("/:id", assignmentHandler.Get)
	assignmentRoutes.Post("/assign", assignmentWrite, assignmentHandler.Assign)
	assignmentRoutes.Post("/bulk-assign", assignmentWrite, assignmentHandler.BulkAssign)
	assignmentRoutes.Post("/return/:id", assignmentWrite, assignmentHandler.Return)
	assignmentRoutes.Put("/:id", assignmentWrite, assignmentHandler.Update)

	// Dashboard routes
	dashboardRoutes := apiV1.Group("/dashboard")
	dashboardRoutes.Use(auth)
	dashboardRoutes.Get("/", dashboardHandler.Summary)
}
