package main

import (
	"context"
	"log"
	"os"

	_ "digiwave-backend/api/swagger" // swagger docs
	"digiwave-backend/internal/database"
	"digiwave-backend/internal/document"
	"digiwave-backend/internal/handler"
	"digiwave-backend/internal/middleware"
	"digiwave-backend/internal/repository"
	"digiwave-backend/internal/service"
	"digiwave-backend/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           DigiWave Agency API
// @version         1.0
// @description     Business administration API for a digital agency: quotations, projects, payments, attendance, leaves, hosting and reports.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "postgres"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Permission middleware needs direct DB access for its cache
	middleware.InitPermissionMiddleware(db)

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	quotationRepo := repository.NewQuotationRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)
	hostingRepo := repository.NewHostingRepository(db)
	lookupRepo := repository.NewLookupRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	roleRepo := repository.NewRoleRepository(db)

	auditService := service.NewAuditService(auditRepo)
	userService := service.NewUserService(userRepo)
	roleService := service.NewRoleService(roleRepo, txManager)
	quotationService := service.NewQuotationService(
		quotationRepo,
		txManager,
		auditService,
		wsHub,
		document.NewPDFRenderer(),
		document.NewPrintRenderer(),
	)
	projectService := service.NewProjectService(projectRepo, lookupRepo, txManager, auditService, wsHub)
	paymentService := service.NewPaymentService(paymentRepo, projectRepo, auditService, wsHub)
	attendanceService := service.NewAttendanceService(attendanceRepo, userRepo)
	leaveService := service.NewLeaveService(leaveRepo, txManager, auditService, wsHub)
	hostingService := service.NewHostingService(hostingRepo, projectRepo)
	lookupService := service.NewLookupService(lookupRepo)
	taskService := service.NewTaskService(taskRepo, projectRepo, wsHub)
	documentService := service.NewDocumentService(documentRepo, projectRepo)
	statisticsService := service.NewStatisticsService(projectRepo, quotationRepo, paymentRepo, leaveRepo, hostingRepo)
	reportService := service.NewReportService(attendanceRepo, paymentRepo)

	// Seed built-in roles and permissions
	if err := roleService.SeedDefaultRolesAndPermissions(context.Background()); err != nil {
		log.Println("WARNING: Failed to seed roles and permissions:", err)
	}

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleService)
	quotationHandler := handler.NewQuotationHandler(quotationService)
	projectHandler := handler.NewProjectHandler(projectService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	leaveHandler := handler.NewLeaveHandler(leaveService)
	hostingHandler := handler.NewHostingHandler(hostingService)
	lookupHandler := handler.NewLookupHandler(lookupService)
	taskHandler := handler.NewTaskHandler(taskService)
	documentHandler := handler.NewDocumentHandler(documentService)
	auditHandler := handler.NewAuditHandler(auditService)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService)
	reportHandler := handler.NewReportHandler(reportService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	userHandler.RegisterRoutes(router.Group(""))
	roleHandler.RegisterRoutes(router.Group(""))
	quotationHandler.RegisterRoutes(router.Group(""))
	projectHandler.RegisterRoutes(router.Group(""))
	paymentHandler.RegisterRoutes(router.Group(""))
	attendanceHandler.RegisterRoutes(router.Group(""))
	leaveHandler.RegisterRoutes(router.Group(""))
	hostingHandler.RegisterRoutes(router.Group(""))
	lookupHandler.RegisterRoutes(router.Group(""))
	taskHandler.RegisterRoutes(router.Group(""))
	documentHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))
	statisticsHandler.RegisterRoutes(router.Group(""))
	reportHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
