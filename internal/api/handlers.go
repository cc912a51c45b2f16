package api

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"wireframe_ai_server/internal/export"
	"wireframe_ai_server/internal/recents"
	"wireframe_ai_server/internal/session"
	"wireframe_ai_server/internal/storage"
	"wireframe_ai_server/internal/wireframe"
)

// WireframeSavedFunc is called after a wireframe was saved.
type WireframeSavedFunc func(name, description, html string)

// APIHandler holds dependencies for API endpoints.
type APIHandler struct {
	sessions   *session.Service
	wireframes *storage.WireframeStore
	drafts     *storage.DraftStore
	exporter   *export.Exporter
	recents    *recents.List

	onWireframeSaved WireframeSavedFunc
}

// NewAPIHandler initializes a new API handler with its dependencies.
// A nil onSaved falls back to recording the save in the recents list.
func NewAPIHandler(
	sessions *session.Service,
	wireframes *storage.WireframeStore,
	drafts *storage.DraftStore,
	exporter *export.Exporter,
	recentList *recents.List,
	onSaved WireframeSavedFunc,
) *APIHandler {
	if onSaved == nil && recentList != nil {
		onSaved = recentList.OnWireframeSaved
	}
	return &APIHandler{
		sessions:         sessions,
		wireframes:       wireframes,
		drafts:           drafts,
		exporter:         exporter,
		recents:          recentList,
		onWireframeSaved: onSaved,
	}
}

// --- Structs for API Requests/Responses ---

type CreateSessionResponse struct {
	SessionID string          `json:"sessionId"`
	State     wireframe.State `json:"state"`
}

type UpdateContentRequest struct {
	// HTML may legitimately be empty (a cleared preview), so it is not required.
	HTML string `json:"html"`
}

type PromptRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type AddPagesRequest struct {
	Pages    []wireframe.Page `json:"pages" binding:"required"`
	Generate bool             `json:"generate"`
}

type AddPagesResponse struct {
	Result wireframe.ReconcileResult `json:"result"`
	State  wireframe.State           `json:"state"`
}

type SwitchPageResponse struct {
	Result        wireframe.SwitchResult `json:"result"`
	ActiveContent string                 `json:"activeContent"`
}

type ExportRequest struct {
	Name string `json:"name" binding:"max=100"`
}

type SaveWireframeRequest struct {
	SessionID   string `json:"sessionId" binding:"required"`
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description" binding:"max=2000"`
}

// respondError maps service errors onto HTTP statuses. fallback is used for
// errors with no specific mapping, e.g. a failed upstream AI call.
func respondError(c *gin.Context, err error, fallback int) {
	var verr *wireframe.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
	case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, session.ErrUnknownPage), errors.Is(err, sql.ErrNoRows):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, session.ErrGenerationInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, session.ErrGenerationCancelled):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "cancelled": true})
	case errors.Is(err, session.ErrNothingToRefine):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, session.ErrGeneratorUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "generation timed out"})
	default:
		log.Printf("Error handling %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(fallback, gin.H{"error": http.StatusText(fallback)})
	}
}

func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return false
	}
	return true
}

// GET /health
func (h *APIHandler) Health(c *gin.Context) {
	status := gin.H{"status": "ok"}
	if h.wireframes != nil {
		if err := h.wireframes.Ping(c.Request.Context()); err != nil {
			log.Printf("WARN: health check database ping failed: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
			return
		}
		status["database"] = "ok"
	}
	c.JSON(http.StatusOK, status)
}

// GET /placeholder?name=&kind=
func (h *APIHandler) RenderPlaceholder(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required", "field": "name"})
		return
	}
	html := wireframe.Placeholder(name, wireframe.ParseKind(c.Query("kind")))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
