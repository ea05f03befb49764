package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"grievance/backend/internal/api/handler"
	"grievance/backend/internal/api/middleware"
	"grievance/backend/internal/auth"
	"grievance/backend/internal/config"
	"grievance/backend/internal/media"
	"grievance/backend/internal/models"
	"grievance/backend/internal/report"
	"grievance/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Report{},
		&models.Media{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting Grievance Backend...")

	cfg := config.Load()

	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	mediaStore, err := media.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to prepare upload directory: %v", err)
	}

	authSvc := auth.NewService(s, cfg.JWTSecret, cfg.TokenTTL)
	reportSvc := report.NewService(s, mediaStore, cfg.AggregateCacheTTL)

	r := gin.Default()
	r.Use(middleware.BodyLimit(cfg.MaxUploadBytes))
	h := handler.NewHandler(authSvc, reportSvc, mediaStore)

	// Public surface
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/submit-complain", h.SubmitComplain)
	r.GET("/user-complaints", h.UserComplaints)
	r.GET("/complaint-media", h.ComplaintMedia)
	r.GET("/all-complaints", h.AllComplaints)
	r.GET("/heatmap-data", h.HeatmapData)
	r.GET("/department-summary", h.DepartmentSummary)
	r.GET("/uploads/:filename", h.ServeUpload)

	// Admin surface, bearer-token gated
	admin := r.Group("/admin", middleware.Auth(authSvc), middleware.RequireAdmin())
	admin.GET("/reports", h.AdminReports)
	admin.PUT("/reports/:id", h.UpdateReport)
	admin.DELETE("/reports/:id", h.DeleteReport)
	admin.POST("/reports/:id/verify", h.VerifyReport)

	server := &http.Server{
		Addr:           cfg.HTTPAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
