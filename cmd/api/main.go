package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/hengrui/sitecms-backend/docs"
	"github.com/hengrui/sitecms-backend/internal/config"
	"github.com/hengrui/sitecms-backend/internal/handler"
	"github.com/hengrui/sitecms-backend/internal/middleware"
	"github.com/hengrui/sitecms-backend/internal/migration"
	"github.com/hengrui/sitecms-backend/internal/repository"
	"github.com/hengrui/sitecms-backend/internal/routes"
	"github.com/hengrui/sitecms-backend/internal/service"
	pkgcache "github.com/hengrui/sitecms-backend/pkg/cache"
	"github.com/hengrui/sitecms-backend/pkg/jwt"
	pkglogger "github.com/hengrui/sitecms-backend/pkg/logger"
	pkgredis "github.com/hengrui/sitecms-backend/pkg/redis"
	pkgstorage "github.com/hengrui/sitecms-backend/pkg/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	mysqldriver "github.com/go-sql-driver/mysql"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// @title           Hengrui Site CMS API
// @version         1.0
// @description     Marketing site backend with versioned content and approval workflow
//
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Authorization header using the Bearer scheme. Example: "Bearer {token}"

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.GetLogger().Info().
		Str("env", env).
		Strs("env_files", dotenvFiles).
		Msg("starting")

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.LogResolved()

	// MySQL
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	pkglogger.GetLogger().Info().Msg("connected to MySQL")

	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	if err := migration.SeedAdminUser(db, cfg.Admin); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Msg("admin seed failed")
	}

	// Redis (optional: cache and rate limiting degrade gracefully)
	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
	)
	if err != nil {
		pkglogger.GetLogger().Warn().Err(err).Msg("Redis unavailable, continuing without cache")
		redisClient = nil
	} else {
		pkglogger.GetLogger().Info().Msg("connected to Redis")
	}
	cacheService := pkgcache.NewService(redisClient)

	// S3-compatible storage
	var s3Client *pkgstorage.S3Client
	if cfg.Storage.Enabled && cfg.Storage.Bucket != "" {
		s3Client, err = pkgstorage.NewS3Client(pkgstorage.S3Config{
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			Bucket:          cfg.Storage.Bucket,
			CDNURL:          cfg.Storage.CDNURL,
			BasePath:        cfg.Storage.BasePath,
			ForcePathStyle:  cfg.Storage.ForcePathStyle,
		})
		if err != nil {
			pkglogger.GetLogger().Warn().Err(err).Msg("S3 storage init failed, continuing without uploads")
			s3Client = nil
		}
	}

	jwtManager := jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiresInHours)*time.Hour)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	pageRepo := repository.NewPageContentRepository(db)
	versionRepo := repository.NewContentVersionRepository(db)
	approvalRepo := repository.NewContentApprovalRepository(db)
	productRepo := repository.NewProductRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)

	// Services
	auditService := service.NewAuditService(db)
	roleService := service.NewRoleService(userRepo)
	contentService := service.NewContentService(versionRepo, approvalRepo, pageRepo, roleService, auditService)
	pageService := service.NewPageContentService(pageRepo, contentService, cacheService)
	productService := service.NewProductService(productRepo, cacheService)
	inquiryService := service.NewInquiryService(inquiryRepo, auditService)
	authService := service.NewAuthService(userRepo, jwtManager, auditService)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	pageHandler := handler.NewPageContentHandler(pageService)
	contentHandler := handler.NewContentHandler(contentService)
	productHandler := handler.NewProductHandler(productService)
	inquiryHandler := handler.NewInquiryHandler(inquiryService)
	uploadHandler := handler.NewUploadHandler(s3Client, auditService)
	auditHandler := handler.NewAuditHandler(auditService)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	// CORS
	allowOrigins := cfg.CORS.AllowOrigins
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     splitAndTrim(allowOrigins, ","),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Remaining"},
		MaxAge:           86400,
	}))

	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	if redisClient != nil && cfg.RateLimit.Enabled && !cfg.IsDevelopment() {
		limitCfg := middleware.DefaultRateLimitConfig()
		if cfg.RateLimit.RequestsPerMinute > 0 {
			limitCfg.RequestsPerMinute = cfg.RateLimit.RequestsPerMinute
		}
		router.Use(middleware.RateLimit(redisClient, limitCfg))
	}

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": cfg.App.Name,
			"time":    time.Now().Unix(),
		})
	})

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.Setup(
		router,
		authHandler,
		pageHandler,
		contentHandler,
		productHandler,
		inquiryHandler,
		uploadHandler,
		auditHandler,
		jwtManager,
		roleService,
		redisClient,
	)

	if sqlDB, err := db.DB(); err == nil {
		middleware.SetDBConnectionsActive(float64(sqlDB.Stats().OpenConnections))
	}

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	pkglogger.GetLogger().Info().Str("addr", addr).Msg("listening")
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// initDB opens the MySQL connection and configures the pool
func initDB(cfg *config.Config) (*gorm.DB, error) {
	mysqlCfg, err := mysqldriver.ParseDSN(cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	logMode := gormlogger.Warn
	if cfg.IsDevelopment() {
		logMode = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(mysqlCfg.FormatDSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logMode),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	return db, nil
}

// splitAndTrim splits a string by delimiter and trims spaces
func splitAndTrim(s, delimiter string) []string {
	var parts []string
	for _, part := range strings.Split(s, delimiter) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
