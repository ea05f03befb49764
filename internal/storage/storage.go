package storage

import (
	"context"
	"errors"
	"log"
	"time"

	"grievance/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ReportFilter narrows report listings. Zero values mean "no constraint".
type ReportFilter struct {
	Department string
	Status     string
	UserID     uint
}

type Storage interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) error

	CreateReport(report *models.Report) error
	GetReportByID(id uint) (*models.Report, error)
	UpdateReport(report *models.Report) error
	DeleteReport(id uint) error
	ListReports(filter ReportFilter) ([]models.Report, error)

	CreateMedia(media *models.Media) error
	MediaForReport(reportID uint) ([]models.Media, error)
	DeleteMediaForReport(reportID uint) error

	CachedAggregate(key string) ([]byte, bool)
	StoreAggregate(key string, data []byte, ttl time.Duration)
	InvalidateAggregates()
}

// Cache keys for the aggregation endpoints. Every report write drops both.
const (
	CacheKeyHeatmap           = "cache:heatmap"
	CacheKeyDepartmentSummary = "cache:department_summary"
)

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor. Redis may be nil (the admin CLI runs
// without it); cache calls then become no-ops.
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

func (s *Service) CreateUser(user *models.User) error {
	return s.DB.Create(user).Error
}

// GetUserByID returns (nil, nil) when no such user exists.
func (s *Service) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail returns (nil, nil) when no such user exists.
func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) UpdateUser(user *models.User) error {
	return s.DB.Save(user).Error
}

func (s *Service) CreateReport(report *models.Report) error {
	if report.Status == "" {
		report.Status = models.StatusPending
	}
	if err := s.DB.Create(report).Error; err != nil {
		log.Printf("ERROR: Failed to create report %q: %v", report.Title, err)
		return err
	}
	s.InvalidateAggregates()
	return nil
}

// GetReportByID returns (nil, nil) when no such report exists. The owning
// user is preloaded for the joined listing shapes.
func (s *Service) GetReportByID(id uint) (*models.Report, error) {
	var report models.Report
	err := s.DB.Preload("User").First(&report, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *Service) UpdateReport(report *models.Report) error {
	if err := s.DB.Save(report).Error; err != nil {
		return err
	}
	s.InvalidateAggregates()
	return nil
}

func (s *Service) DeleteReport(id uint) error {
	if err := s.DB.Delete(&models.Report{}, id).Error; err != nil {
		return err
	}
	s.InvalidateAggregates()
	return nil
}

// ListReports returns reports newest-first with submitters preloaded.
func (s *Service) ListReports(filter ReportFilter) ([]models.Report, error) {
	var reports []models.Report
	query := s.DB.Preload("User")
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if err := query.Order("date_created desc").Find(&reports).Error; err != nil {
		log.Printf("ERROR: Failed to list reports: %v", err)
		return nil, err
	}
	return reports, nil
}

func (s *Service) CreateMedia(media *models.Media) error {
	return s.DB.Create(media).Error
}

func (s *Service) MediaForReport(reportID uint) ([]models.Media, error) {
	var media []models.Media
	err := s.DB.Where("complain_id = ?", reportID).Order("upload_date asc").Find(&media).Error
	if err != nil {
		return nil, err
	}
	return media, nil
}

func (s *Service) DeleteMediaForReport(reportID uint) error {
	return s.DB.Where("complain_id = ?", reportID).Delete(&models.Media{}).Error
}

// CachedAggregate fetches a cached aggregation payload from Redis.
func (s *Service) CachedAggregate(key string) ([]byte, bool) {
	if s.Redis == nil {
		return nil, false
	}
	data, err := s.Redis.Get(s.Ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		log.Printf("WARN: Redis get %s failed: %v", key, err)
		return nil, false
	}
	return data, true
}

// StoreAggregate caches an aggregation payload. Failures are logged and
// ignored; the cache is an optimization, not a source of truth.
func (s *Service) StoreAggregate(key string, data []byte, ttl time.Duration) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Set(s.Ctx, key, data, ttl).Err(); err != nil {
		log.Printf("WARN: Redis set %s failed: %v", key, err)
	}
}

// InvalidateAggregates drops every cached aggregation after a report write.
func (s *Service) InvalidateAggregates() {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(s.Ctx, CacheKeyHeatmap, CacheKeyDepartmentSummary).Err(); err != nil {
		log.Printf("WARN: Redis cache invalidation failed: %v", err)
	}
}
