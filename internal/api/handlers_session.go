package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"wireframe_ai_server/internal/session"
	"wireframe_ai_server/internal/wireframe"
)

// PageDraft is the unsent state of the add-pages form.
type PageDraft struct {
	Pages    []wireframe.Page `json:"pages"`
	Generate bool             `json:"generate"`
}

// POST /session
func (h *APIHandler) CreateSession(c *gin.Context) {
	sess := h.sessions.Create()
	state, err := h.sessions.Snapshot(sess.ID, false)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusCreated, CreateSessionResponse{SessionID: sess.ID, State: state})
}

// GET /session/:id?content=true
func (h *APIHandler) GetSession(c *gin.Context) {
	state, err := h.sessions.Snapshot(c.Param("id"), c.Query("content") == "true")
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, state)
}

// DELETE /session/:id
func (h *APIHandler) DeleteSession(c *gin.Context) {
	id := c.Param("id")
	if err := h.sessions.Delete(id); err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	if h.drafts != nil {
		scope, key := session.DraftLocation(id)
		if err := h.drafts.Clear(c.Request.Context(), scope, key); err != nil {
			log.Printf("WARN: failed to clear draft of deleted session %s: %v", id, err)
		}
	}
	c.Status(http.StatusNoContent)
}

// PUT /session/:id/content
func (h *APIHandler) UpdateContent(c *gin.Context) {
	var req UpdateContentRequest
	if !bindJSON(c, &req) {
		return
	}
	state, err := h.sessions.UpdateContent(c.Param("id"), req.HTML)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, state)
}

// POST /session/:id/generate
func (h *APIHandler) GenerateWireframe(c *gin.Context) {
	var req PromptRequest
	if !bindJSON(c, &req) {
		return
	}
	state, err := h.sessions.Generate(c.Request.Context(), c.Param("id"), req.Prompt)
	if err != nil {
		respondError(c, err, http.StatusBadGateway)
		return
	}
	c.JSON(http.StatusOK, state)
}

// POST /session/:id/refine
func (h *APIHandler) RefineWireframe(c *gin.Context) {
	var req PromptRequest
	if !bindJSON(c, &req) {
		return
	}
	state, err := h.sessions.Refine(c.Request.Context(), c.Param("id"), req.Prompt)
	if err != nil {
		respondError(c, err, http.StatusBadGateway)
		return
	}
	c.JSON(http.StatusOK, state)
}

// POST /session/:id/pages
func (h *APIHandler) AddPages(c *gin.Context) {
	var req AddPagesRequest
	if !bindJSON(c, &req) {
		return
	}
	id := c.Param("id")
	res, err := h.sessions.AddPages(c.Request.Context(), id, req.Pages, req.Generate)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	state, err := h.sessions.Snapshot(id, false)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, AddPagesResponse{Result: res, State: state})
}

// POST /session/:id/pages/:pageId/activate
func (h *APIHandler) ActivatePage(c *gin.Context) {
	res, html, err := h.sessions.SwitchPage(c.Param("id"), c.Param("pageId"))
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, SwitchPageResponse{Result: res, ActiveContent: html})
}

// POST /session/:id/stop
func (h *APIHandler) StopGeneration(c *gin.Context) {
	stopped, err := h.sessions.Stop(c.Param("id"))
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stopped": stopped})
}

// GET /session/:id/messages
func (h *APIHandler) GetMessages(c *gin.Context) {
	msgs, err := h.sessions.Messages(c.Param("id"))
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// GET /session/:id/draft
func (h *APIHandler) GetDraft(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.sessions.Snapshot(id, false); err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	var draft PageDraft
	scope, key := session.DraftLocation(id)
	found, err := h.drafts.Get(c.Request.Context(), scope, key, &draft)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"found": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"found": true, "draft": draft})
}

// PUT /session/:id/draft
func (h *APIHandler) SaveDraft(c *gin.Context) {
	id := c.Param("id")
	var draft PageDraft
	if !bindJSON(c, &draft) {
		return
	}
	if _, err := h.sessions.Snapshot(id, false); err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	scope, key := session.DraftLocation(id)
	if err := h.drafts.Put(c.Request.Context(), scope, key, draft); err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusNoContent)
}

// DELETE /session/:id/draft
func (h *APIHandler) ClearDraft(c *gin.Context) {
	scope, key := session.DraftLocation(c.Param("id"))
	if err := h.drafts.Clear(c.Request.Context(), scope, key); err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /session/:id/export
func (h *APIHandler) ExportSession(c *gin.Context) {
	var req ExportRequest
	// The body is optional.
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	pages, err := h.sessions.Export(c.Param("id"))
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	if len(pages) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session has no content to export"})
		return
	}
	name := req.Name
	if name == "" {
		name = "wireframe"
	}
	res, err := h.exporter.ExportPages(c.Request.Context(), name, pages)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusCreated, res)
}
