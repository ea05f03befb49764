package handler

import (
	"log"
	"net/http"

	"grievance/backend/internal/apperr"
	"grievance/backend/internal/auth"
	"grievance/backend/internal/media"
	"grievance/backend/internal/report"

	"github.com/gin-gonic/gin"
)

// Handler wires the HTTP surface to the auth and report services.
type Handler struct {
	Auth    *auth.Service
	Reports *report.Service
	Media   *media.Store
}

func NewHandler(authSvc *auth.Service, reports *report.Service, mediaStore *media.Store) *Handler {
	return &Handler{Auth: authSvc, Reports: reports, Media: mediaStore}
}

// respondError converts a classified error into the JSON error body. Raw
// internal error text never reaches the client.
func respondError(c *gin.Context, err error) {
	e := apperr.As(err)
	if e == nil {
		log.Printf("ERROR: unclassified failure on %s: %v", c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if e.Kind == apperr.KindStorage {
		log.Printf("ERROR: storage failure on %s: %v", c.FullPath(), e.Err)
	}
	body := gin.H{"error": e.Message}
	if len(e.Fields) > 0 {
		body["fields"] = e.Fields
	}
	c.JSON(e.HTTPStatus(), body)
}
