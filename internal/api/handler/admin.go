package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"grievance/backend/internal/api/middleware"
	"grievance/backend/internal/report"
	"grievance/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

func listFilter(c *gin.Context) storage.ReportFilter {
	return storage.ReportFilter{
		Department: c.Query("department"),
		Status:     c.Query("status"),
	}
}

func reportID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return 0, false
	}
	return uint(id), true
}

// AdminReports lists every report with verification and submitter fields,
// optionally filtered by department and status.
func (h *Handler) AdminReports(c *gin.Context) {
	views, err := h.Reports.AdminReports(listFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"complaints": views})
}

type updateReportRequest struct {
	Status      *string `json:"status"`
	Department  *string `json:"department"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	AssignedTo  *string `json:"assigned_to"`
}

// UpdateReport applies an admin edit to any subset of the mutable fields.
func (h *Handler) UpdateReport(c *gin.Context) {
	id, ok := reportID(c)
	if !ok {
		return
	}
	var req updateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.Reports.Update(id, middleware.CallerID(c), report.UpdateFields{
		Status:      req.Status,
		Department:  req.Department,
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Report updated successfully",
		"report": gin.H{
			"id":          updated.ID,
			"code":        updated.Code(),
			"status":      updated.Status,
			"department":  updated.Department,
			"title":       updated.Title,
			"assigned_to": updated.AssignedTo,
		},
	})
}

type verifyReportRequest struct {
	AuthorityName string `json:"authority_name"`
	Notes         string `json:"notes"`
}

// VerifyReport marks a report verified and forwards it to an authority.
func (h *Handler) VerifyReport(c *gin.Context) {
	id, ok := reportID(c)
	if !ok {
		return
	}
	// Both fields are optional, so a body-less request means all defaults.
	var req verifyReportRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	verified, err := h.Reports.VerifyAndForward(id, middleware.CallerID(c), req.AuthorityName, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Report verified and forwarded to " + verified.ForwardedTo,
		"report": gin.H{
			"id":           verified.ID,
			"code":         verified.Code(),
			"status":       verified.Status,
			"forwarded_to": verified.ForwardedTo,
			"is_verified":  verified.IsVerified,
		},
	})
}

// DeleteReport removes a report and cascades over its media rows and files.
func (h *Handler) DeleteReport(c *gin.Context) {
	id, ok := reportID(c)
	if !ok {
		return
	}
	if err := h.Reports.Delete(id, middleware.CallerID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Report deleted successfully"})
}
