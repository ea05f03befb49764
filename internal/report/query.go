package report

import (
	"encoding/json"
	"strings"
	"time"

	"grievance/backend/internal/apperr"
	"grievance/backend/internal/config"
	"grievance/backend/internal/geo"
	"grievance/backend/internal/storage"
)

// SubmitterView identifies the user who filed a report in admin listings.
type SubmitterView struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AdminView is the full report shape shown on the admin surface.
type AdminView struct {
	ID                uint           `json:"id"`
	Code              string         `json:"code"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	Department        string         `json:"department"`
	Status            string         `json:"status"`
	Location          string         `json:"location"`
	Address           string         `json:"address"`
	Pincode           string         `json:"pincode"`
	DateCreated       string         `json:"date_created"`
	ImageURL          string         `json:"image_url"`
	AssignedTo        string         `json:"assigned_to"`
	IsVerified        bool           `json:"is_verified"`
	ForwardedTo       string         `json:"forwarded_to"`
	VerifiedAt        *string        `json:"verified_at"`
	VerificationNotes string         `json:"verification_notes"`
	User              *SubmitterView `json:"user"`
}

// OwnerView is the self-service shape a citizen sees for their own reports.
type OwnerView struct {
	ID          uint   `json:"id"`
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Department  string `json:"department"`
	Status      string `json:"status"`
	Location    string `json:"location"`
	DateCreated string `json:"date_created"`
	ImageURL    string `json:"image_url"`
	MediaCount  int    `json:"media_count"`
}

// PublicView is the joined shape for the shared complaint board.
type PublicView struct {
	ID          uint   `json:"id"`
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Department  string `json:"department"`
	Status      string `json:"status"`
	Location    string `json:"location"`
	DateCreated string `json:"date_created"`
	ImageURL    string `json:"image_url"`
	UserName    string `json:"user_name"`
}

// DepartmentStats rolls up report counts for one department.
type DepartmentStats struct {
	Total      int    `json:"total"`
	Resolved   int    `json:"resolved"`
	InProgress int    `json:"in_progress"`
	Pending    int    `json:"pending"`
	Color      string `json:"color"`
}

// HeatmapPoint is a (lat, lng, intensity) triple.
type HeatmapPoint [3]float64

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// AdminReports lists reports for the admin surface, newest first.
func (s *Service) AdminReports(filter storage.ReportFilter) ([]AdminView, error) {
	reports, err := s.Storage.ListReports(filter)
	if err != nil {
		return nil, apperr.Storage(err)
	}

	views := make([]AdminView, 0, len(reports))
	for i := range reports {
		r := &reports[i]
		view := AdminView{
			ID:                r.ID,
			Code:              r.Code(),
			Title:             r.Title,
			Description:       r.Description,
			Department:        r.Department,
			Status:            r.Status,
			Location:          r.Location,
			Address:           r.Address,
			Pincode:           r.Pincode,
			DateCreated:       formatTime(r.DateCreated),
			ImageURL:          r.ImageURL,
			AssignedTo:        r.AssignedTo,
			IsVerified:        r.IsVerified,
			ForwardedTo:       r.ForwardedTo,
			VerificationNotes: r.VerificationNotes,
		}
		if r.VerifiedAt != nil {
			ts := formatTime(*r.VerifiedAt)
			view.VerifiedAt = &ts
		}
		if r.User != nil {
			view.User = &SubmitterView{ID: r.User.ID, Name: r.User.Name, Email: r.User.Email}
		}
		views = append(views, view)
	}
	return views, nil
}

// UserReports lists a citizen's own reports with attachment counts.
func (s *Service) UserReports(userID uint) ([]OwnerView, error) {
	reports, err := s.Storage.ListReports(storage.ReportFilter{UserID: userID})
	if err != nil {
		return nil, apperr.Storage(err)
	}

	views := make([]OwnerView, 0, len(reports))
	for i := range reports {
		r := &reports[i]
		rows, err := s.Storage.MediaForReport(r.ID)
		if err != nil {
			return nil, apperr.Storage(err)
		}
		views = append(views, OwnerView{
			ID:          r.ID,
			Code:        r.Code(),
			Title:       r.Title,
			Description: r.Description,
			Department:  r.Department,
			Status:      r.Status,
			Location:    r.Location,
			DateCreated: formatTime(r.DateCreated),
			ImageURL:    r.ImageURL,
			MediaCount:  len(rows),
		})
	}
	return views, nil
}

// AllReports lists every report joined with the submitter's display name.
func (s *Service) AllReports() ([]PublicView, error) {
	reports, err := s.Storage.ListReports(storage.ReportFilter{})
	if err != nil {
		return nil, apperr.Storage(err)
	}

	views := make([]PublicView, 0, len(reports))
	for i := range reports {
		r := &reports[i]
		name := "Unknown User"
		if r.User != nil {
			name = r.User.Name
		}
		views = append(views, PublicView{
			ID:          r.ID,
			Code:        r.Code(),
			Title:       r.Title,
			Description: r.Description,
			Department:  r.Department,
			Status:      r.Status,
			Location:    r.Location,
			DateCreated: formatTime(r.DateCreated),
			ImageURL:    r.ImageURL,
			UserName:    name,
		})
	}
	return views, nil
}

// DepartmentSummary rolls up counts per department. Statuses other than
// Resolved and In Progress land in the pending bucket.
func (s *Service) DepartmentSummary(filter storage.ReportFilter) (map[string]DepartmentStats, error) {
	cacheable := filter == storage.ReportFilter{}
	if cacheable {
		if data, ok := s.Storage.CachedAggregate(storage.CacheKeyDepartmentSummary); ok {
			summary := map[string]DepartmentStats{}
			if err := json.Unmarshal(data, &summary); err == nil {
				return summary, nil
			}
		}
	}

	reports, err := s.Storage.ListReports(filter)
	if err != nil {
		return nil, apperr.Storage(err)
	}

	summary := map[string]DepartmentStats{}
	for i := range reports {
		r := &reports[i]
		stats := summary[r.Department]
		if stats.Color == "" {
			stats.Color = config.DepartmentColor(r.Department)
		}
		stats.Total++
		switch strings.ToLower(r.Status) {
		case "resolved":
			stats.Resolved++
		case "in progress":
			stats.InProgress++
		default:
			stats.Pending++
		}
		summary[r.Department] = stats
	}

	if cacheable {
		if data, err := json.Marshal(summary); err == nil {
			s.Storage.StoreAggregate(storage.CacheKeyDepartmentSummary, data, s.CacheTTL)
		}
	}
	return summary, nil
}

// Heatmap buckets reports onto gazetteer coordinates. Locations the
// gazetteer does not know are excluded from the output.
func (s *Service) Heatmap() ([]HeatmapPoint, error) {
	if data, ok := s.Storage.CachedAggregate(storage.CacheKeyHeatmap); ok {
		var points []HeatmapPoint
		if err := json.Unmarshal(data, &points); err == nil {
			return points, nil
		}
	}

	reports, err := s.Storage.ListReports(storage.ReportFilter{})
	if err != nil {
		return nil, apperr.Storage(err)
	}

	counts := map[geo.Point]int{}
	for i := range reports {
		if p, ok := geo.Lookup(reports[i].Location); ok {
			counts[p]++
		}
	}

	points := make([]HeatmapPoint, 0, len(counts))
	for p, count := range counts {
		points = append(points, HeatmapPoint{p.Lat, p.Lng, geo.Intensity(count)})
	}

	if data, err := json.Marshal(points); err == nil {
		s.Storage.StoreAggregate(storage.CacheKeyHeatmap, data, s.CacheTTL)
	}
	return points, nil
}
