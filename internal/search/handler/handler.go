// Package handler exposes the search context over HTTP.
package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"leadscout_backend/internal/pdf"
	"leadscout_backend/internal/search/export"
	"leadscout_backend/internal/search/service"
	"leadscout_backend/internal/search/transport"
	"leadscout_backend/platform/httpkit"
	"leadscout_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"

	// clientIDHeader scopes history per browser profile. Anonymous clients
	// share the default bucket.
	clientIDHeader  = "X-Client-ID"
	defaultClientID = "default"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes mounts the search routes. searchLimit applies only to the
// search operation itself; history and exports stay on the global limiter.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, searchLimit gin.HandlerFunc) {
	rg.POST("", searchLimit, h.Search)
	rg.GET("/history", h.History)
	rg.DELETE("/history", h.ClearHistory)
	rg.POST("/export/csv", h.ExportCSV)
	rg.POST("/export/pdf", h.ExportPDF)
}

func (h *Handler) Search(c *gin.Context) {
	var req transport.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	resp, err := h.svc.Search(c.Request.Context(), clientID(c), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) History(c *gin.Context) {
	entries := h.svc.History(c.Request.Context(), clientID(c))
	httpkit.OK(c, transport.HistoryResponse{Entries: entries})
}

func (h *Handler) ClearHistory(c *gin.Context) {
	if err := h.svc.ClearHistory(c.Request.Context(), clientID(c)); err != nil {
		httpkit.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ExportCSV(c *gin.Context) {
	req, ok := h.bindExport(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.CSVFilename))
	c.Status(http.StatusOK)
	if err := export.WriteCSV(c.Writer, req.Leads); err != nil {
		// Headers are already out; all we can do is abort the stream.
		c.Abort()
	}
}

func (h *Handler) ExportPDF(c *gin.Context) {
	req, ok := h.bindExport(c)
	if !ok {
		return
	}

	doc, err := h.svc.ExportPDF(c.Request.Context(), req.Leads)
	if httpkit.HandleError(c, err) {
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, pdf.PDFFilename))
	c.Data(http.StatusOK, "application/pdf", doc)
}

func (h *Handler) bindExport(c *gin.Context) (transport.ExportRequest, bool) {
	var req transport.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return req, false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return req, false
	}
	return req, true
}

func clientID(c *gin.Context) string {
	id := strings.TrimSpace(c.GetHeader(clientIDHeader))
	if id == "" {
		return defaultClientID
	}
	return id
}
