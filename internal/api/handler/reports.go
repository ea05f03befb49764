package handler

import (
	"net/http"
	"strconv"

	"grievance/backend/internal/apperr"
	"grievance/backend/internal/report"

	"github.com/gin-gonic/gin"
)

// SubmitComplain files a new report from a multipart form with an optional
// `image` file. An attachment failure does not fail the report; it is
// surfaced as media_error alongside the 201.
func (h *Handler) SubmitComplain(c *gin.Context) {
	userID, _ := strconv.ParseUint(c.PostForm("user_id"), 10, 64)

	in := report.SubmitInput{
		UserID:      uint(userID),
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Location:    c.PostForm("location_name"),
		Address:     c.PostForm("address"),
		Pincode:     c.PostForm("pincode"),
		Department:  c.PostForm("department"),
	}

	fileHeader, err := c.FormFile("image")
	if err == nil && fileHeader != nil && fileHeader.Filename != "" {
		file, openErr := fileHeader.Open()
		if openErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable image upload"})
			return
		}
		defer file.Close()
		in.ImageName = fileHeader.Filename
		in.Image = file
	}

	result, err := h.Reports.Submit(in)
	if err != nil {
		respondError(c, err)
		return
	}

	body := gin.H{
		"message":     "Report created successfully",
		"complain_id": result.ReportID,
		"code":        result.Code,
	}
	if result.MediaError != nil {
		// Only the classified message goes out; Error() would append the
		// wrapped internal cause.
		msg := "attachment failed"
		if e := apperr.As(result.MediaError); e != nil {
			msg = e.Message
		}
		body["media_error"] = msg
	}
	c.JSON(http.StatusCreated, body)
}

// UserComplaints lists the requesting user's own reports.
func (h *Handler) UserComplaints(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 64)
	if err != nil || userID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields", "fields": []string{"user_id"}})
		return
	}

	views, err := h.Reports.UserReports(uint(userID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"complaints": views})
}

// ComplaintMedia lists the media rows attached to one report.
func (h *Handler) ComplaintMedia(c *gin.Context) {
	complainID, err := strconv.ParseUint(c.Query("complain_id"), 10, 64)
	if err != nil || complainID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields", "fields": []string{"complain_id"}})
		return
	}

	rows, err := h.Reports.MediaForReport(uint(complainID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"media": rows})
}

// AllComplaints lists every report joined with the submitter's name.
func (h *Handler) AllComplaints(c *gin.Context) {
	views, err := h.Reports.AllReports()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"complaints": views})
}

// HeatmapData returns the gazetteer-bucketed (lat, lng, intensity) triples.
func (h *Handler) HeatmapData(c *gin.Context) {
	points, err := h.Reports.Heatmap()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"heatmapData": points})
}

// DepartmentSummary returns per-department status rollups with display colors.
func (h *Handler) DepartmentSummary(c *gin.Context) {
	summary, err := h.Reports.DepartmentSummary(listFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ServeUpload streams a stored attachment. The media store rejects any
// filename that could escape the upload directory.
func (h *Handler) ServeUpload(c *gin.Context) {
	path, err := h.Media.Resolve(c.Param("filename"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filename"})
		return
	}
	c.File(path)
}
