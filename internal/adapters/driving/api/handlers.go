package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/lexview/internal/adapters/driven/fixture"
	"github.com/custodia-labs/lexview/internal/core/domain"
	"github.com/custodia-labs/lexview/internal/core/ports/driving"
	"github.com/custodia-labs/lexview/internal/logger"
	"github.com/custodia-labs/lexview/internal/renderers/html"
)

// pageTitle heads the browser pages.
const pageTitle = "lexview"

// Handler serves the annotation endpoints.
type Handler struct {
	svc driving.AnnotationService
}

// NewHandler creates a handler over svc.
func NewHandler(svc driving.AnnotationService) *Handler {
	return &Handler{svc: svc}
}

// RenderEntitiesRequest is the body of POST /api/render/entities.
type RenderEntitiesRequest struct {
	Text  string            `json:"text"`
	Spans []domain.TextSpan `json:"spans"`
}

// RenderSummaryRequest is the body of POST /api/render/summary. Sections
// may be a list of {name, text} or an object, whose key order is kept.
type RenderSummaryRequest struct {
	Sections json.RawMessage `json:"sections"`
}

// AnnotateRequest is the body of POST /api/annotate.
type AnnotateRequest struct {
	Text string `json:"text"`
}

// ViewResponse describes one rendered view.
type ViewResponse struct {
	ID          string `json:"id"`
	Format      string `json:"format"`
	Markup      string `json:"markup"`
	MaxHeightPx int    `json:"max_height_px"`
}

// EntitiesResponse is the result of an entities render.
type EntitiesResponse struct {
	View        ViewResponse            `json:"view"`
	Segments    []domain.LabeledSegment `json:"segments"`
	Diagnostics []domain.Diagnostic     `json:"diagnostics"`
}

// SummaryResponse is the result of a summary render.
type SummaryResponse struct {
	View     ViewResponse     `json:"view"`
	Sections []domain.Section `json:"sections"`
}

// AnnotateResponse carries both views.
type AnnotateResponse struct {
	Spans    []domain.TextSpan `json:"spans"`
	Entities EntitiesResponse  `json:"entities"`
	Summary  SummaryResponse   `json:"summary"`
}

// HealthCheck reports liveness.
func (h *Handler) HealthCheck(c *gin.Context) {
	RespondOK(c, gin.H{"status": "ok"})
}

// RenderEntities handles POST /api/render/entities.
func (h *Handler) RenderEntities(c *gin.Context) {
	var req RenderEntitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, CodeInvalidRequest, err)
		return
	}

	RespondOK(c, entitiesResponse(h.svc.RenderEntities(req.Text, req.Spans)))
}

// RenderSummary handles POST /api/render/summary.
func (h *Handler) RenderSummary(c *gin.Context) {
	var req RenderSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, CodeInvalidRequest, err)
		return
	}

	sections, err := fixture.DecodeSections(req.Sections)
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeInvalidRequest, err)
		return
	}

	RespondOK(c, summaryResponse(h.svc.RenderSummary(sections)))
}

// Annotate handles POST /api/annotate.
func (h *Handler) Annotate(c *gin.Context) {
	var req AnnotateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, CodeInvalidRequest, err)
		return
	}

	ann, err := h.svc.Annotate(c.Request.Context(), req.Text)
	if err != nil {
		status, code := statusFor(err)
		logger.Warn("Annotate failed: %v", err)
		RespondError(c, status, code, err)
		return
	}

	RespondOK(c, AnnotateResponse{
		Spans:    nonNil(ann.Spans),
		Entities: entitiesResponse(ann.Entities),
		Summary:  summaryResponse(ann.Summary),
	})
}

// Index serves the paste form.
func (h *Handler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html.Form(pageTitle, "/annotate", "")))
}

// AnnotateForm handles the form post and answers with a page holding both
// views.
func (h *Handler) AnnotateForm(c *gin.Context) {
	text := c.PostForm("text")

	ann, err := h.svc.Annotate(c.Request.Context(), text)
	if err != nil {
		status, _ := statusFor(err)
		logger.Warn("Annotate failed: %v", err)
		c.Data(status, "text/plain; charset=utf-8", []byte(fmt.Sprintf("annotate failed: %v\n", err)))
		return
	}

	page := html.Page(pageTitle,
		html.PageSection{Heading: "Entities", View: ann.Entities.View},
		html.PageSection{Heading: "Summary", View: ann.Summary.View},
	)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

func viewResponse(v domain.RenderedView) ViewResponse {
	return ViewResponse{
		ID:          v.ID(),
		Format:      string(v.Format),
		Markup:      v.Markup.String(),
		MaxHeightPx: v.MaxHeightPx,
	}
}

func entitiesResponse(view domain.EntitiesView) EntitiesResponse {
	return EntitiesResponse{
		View:        viewResponse(view.View),
		Segments:    nonNil(view.Segments),
		Diagnostics: nonNil(view.Diagnostics),
	}
}

func summaryResponse(view domain.SummaryView) SummaryResponse {
	return SummaryResponse{
		View:     viewResponse(view.View),
		Sections: nonNil([]domain.Section(view.Sections)),
	}
}

// nonNil keeps empty lists as [] rather than null in JSON.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
