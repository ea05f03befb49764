package report

import (
	"log"
	"time"

	"grievance/backend/internal/apperr"
	"grievance/backend/internal/models"
)

// DefaultAuthority is recorded when a verifying admin names no authority.
const DefaultAuthority = "Unknown Authority"

// UpdateFields is the subset of report fields an admin may edit. Nil
// pointers leave the field untouched.
type UpdateFields struct {
	Status      *string
	Department  *string
	Title       *string
	Description *string
	AssignedTo  *string
}

// requireAdmin resolves the caller and rejects non-admins. A missing caller
// is treated the same as an unprivileged one.
func (s *Service) requireAdmin(adminID uint) (*models.User, error) {
	user, err := s.Storage.GetUserByID(adminID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if user == nil || !user.IsAdmin() {
		return nil, apperr.Forbidden("admin role required")
	}
	return user, nil
}

// Update applies an admin edit to a report. Status changes must follow the
// transition table; other fields are overwritten as given.
func (s *Service) Update(reportID, adminID uint, fields UpdateFields) (*models.Report, error) {
	if _, err := s.requireAdmin(adminID); err != nil {
		return nil, err
	}

	report, err := s.Storage.GetReportByID(reportID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if report == nil {
		return nil, apperr.NotFound("report not found")
	}

	if fields.Status != nil {
		if !models.ValidStatus(*fields.Status) {
			return nil, apperr.InvalidValue("status")
		}
		if !models.CanTransition(report.Status, *fields.Status) {
			return nil, apperr.InvalidValue("status")
		}
		report.Status = *fields.Status
	}
	if fields.Department != nil {
		report.Department = *fields.Department
	}
	if fields.Title != nil {
		report.Title = *fields.Title
	}
	if fields.Description != nil {
		report.Description = *fields.Description
	}
	if fields.AssignedTo != nil {
		report.AssignedTo = *fields.AssignedTo
	}

	if err := s.Storage.UpdateReport(report); err != nil {
		return nil, apperr.Storage(err)
	}
	return report, nil
}

// VerifyAndForward marks a report verified and forwards it to an external
// authority. Re-invoking overwrites the previous verification; the status
// always lands on Forwarded.
func (s *Service) VerifyAndForward(reportID, adminID uint, authorityName, notes string) (*models.Report, error) {
	admin, err := s.requireAdmin(adminID)
	if err != nil {
		return nil, err
	}

	report, err := s.Storage.GetReportByID(reportID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if report == nil {
		return nil, apperr.NotFound("report not found")
	}

	if authorityName == "" {
		authorityName = DefaultAuthority
	}
	now := time.Now()
	report.IsVerified = true
	report.VerifiedAt = &now
	report.VerifiedBy = admin.ID
	report.ForwardedTo = authorityName
	report.VerificationNotes = notes
	report.Status = models.StatusForwarded

	if err := s.Storage.UpdateReport(report); err != nil {
		return nil, apperr.Storage(err)
	}
	return report, nil
}

// Delete removes a report and cascades over its media. File unlinks are
// best-effort: a failed unlink is logged and the delete continues.
func (s *Service) Delete(reportID, adminID uint) error {
	if _, err := s.requireAdmin(adminID); err != nil {
		return err
	}

	report, err := s.Storage.GetReportByID(reportID)
	if err != nil {
		return apperr.Storage(err)
	}
	if report == nil {
		return apperr.NotFound("report not found")
	}

	rows, err := s.Storage.MediaForReport(reportID)
	if err != nil {
		return apperr.Storage(err)
	}
	for _, row := range rows {
		if err := s.Media.Remove(row.StoredName); err != nil {
			log.Printf("WARN: Failed to remove media file %s for report %d: %v", row.StoredName, reportID, err)
		}
	}
	if err := s.Storage.DeleteMediaForReport(reportID); err != nil {
		return apperr.Storage(err)
	}
	if err := s.Storage.DeleteReport(reportID); err != nil {
		return apperr.Storage(err)
	}
	return nil
}
