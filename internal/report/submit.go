// Package report provides the core logic for the report lifecycle:
// submission with optional attachments, admin verification and state
// transitions, and filtered/aggregated retrieval.
package report

import (
	"io"
	"log"
	"time"

	"grievance/backend/internal/apperr"
	"grievance/backend/internal/media"
	"grievance/backend/internal/models"
	"grievance/backend/internal/storage"
)

// MediaStore is the slice of the media store the report service needs.
// *media.Store satisfies it.
type MediaStore interface {
	Save(filename string, src io.Reader) (storedName, path string, err error)
	Remove(storedName string) error
}

// Service handles the business logic for reports.
type Service struct {
	Storage  storage.Storage
	Media    MediaStore
	CacheTTL time.Duration
}

// NewService creates a new report service.
func NewService(s storage.Storage, m MediaStore, cacheTTL time.Duration) *Service {
	return &Service{Storage: s, Media: m, CacheTTL: cacheTTL}
}

// SubmitInput carries a new report plus its optional attachment.
type SubmitInput struct {
	UserID      uint
	Title       string
	Description string
	Location    string
	Address     string
	Pincode     string
	Department  string

	// ImageName/Image describe the optional upload. Image is only read when
	// ImageName is non-empty.
	ImageName string
	Image     io.Reader
}

// SubmitResult reports the created record. MediaError is set when the report
// was created but its attachment was rejected or failed to persist; the
// report itself is never rolled back for an attachment failure.
type SubmitResult struct {
	ReportID   uint
	Code       string
	MediaError error
}

// Submit validates and files a new report, then attaches the image if one
// was supplied.
func (s *Service) Submit(in SubmitInput) (*SubmitResult, error) {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"title", in.Title},
		{"description", in.Description},
		{"location_name", in.Location},
		{"address", in.Address},
		{"pincode", in.Pincode},
		{"department", in.Department},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if in.UserID == 0 {
		missing = append(missing, "user_id")
	}
	if len(missing) > 0 {
		return nil, apperr.Validation(missing...)
	}

	user, err := s.Storage.GetUserByID(in.UserID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}

	report := &models.Report{
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Address:     in.Address,
		Pincode:     in.Pincode,
		Department:  in.Department,
		Status:      models.StatusPending,
		DateCreated: time.Now(),
		UserID:      in.UserID,
	}
	if err := s.Storage.CreateReport(report); err != nil {
		return nil, apperr.Storage(err)
	}

	result := &SubmitResult{ReportID: report.ID, Code: report.Code()}
	if in.ImageName != "" {
		result.MediaError = s.attachImage(report, in.ImageName, in.Image)
	}
	return result, nil
}

// attachImage persists the upload and links it to the report. Any failure
// here leaves the already-committed report untouched.
func (s *Service) attachImage(report *models.Report, filename string, src io.Reader) error {
	if !media.AllowedFile(filename) {
		return apperr.UnsupportedMedia("file type not allowed")
	}

	storedName, path, err := s.Media.Save(filename, src)
	if err != nil {
		return apperr.Storage(err)
	}

	row := &models.Media{
		Filename:   filename,
		StoredName: storedName,
		FilePath:   path,
		UploadDate: time.Now(),
		UserID:     report.UserID,
		ComplainID: report.ID,
	}
	if err := s.Storage.CreateMedia(row); err != nil {
		if rmErr := s.Media.Remove(storedName); rmErr != nil {
			log.Printf("WARN: Failed to remove orphaned media file %s: %v", storedName, rmErr)
		}
		return apperr.Storage(err)
	}

	report.ImageURL = "/uploads/" + storedName
	if err := s.Storage.UpdateReport(report); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

// MediaForReport lists the attachment rows for a report. An unknown report
// id yields an empty list, matching the query surface after a cascade delete.
func (s *Service) MediaForReport(reportID uint) ([]models.Media, error) {
	rows, err := s.Storage.MediaForReport(reportID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return rows, nil
}
