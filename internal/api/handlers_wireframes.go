package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"wireframe_ai_server/internal/recents"
	"wireframe_ai_server/internal/storage"
)

// POST /wireframes
// Saves the active content of a session under a name.
func (h *APIHandler) SaveWireframe(c *gin.Context) {
	var req SaveWireframeRequest
	if !bindJSON(c, &req) {
		return
	}
	state, err := h.sessions.Snapshot(req.SessionID, false)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	if state.ActiveContent == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session has no content to save", "field": "sessionId"})
		return
	}

	w := &storage.SavedWireframe{
		Name:        req.Name,
		Description: req.Description,
		HTML:        state.ActiveContent,
		PageCount:   len(state.Pages),
	}
	if err := h.wireframes.Save(c.Request.Context(), w); err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	log.Printf("Info: saved wireframe %q (%s) from session %s", w.Name, w.ID, req.SessionID)

	if h.onWireframeSaved != nil {
		h.onWireframeSaved(w.Name, w.Description, w.HTML)
	}
	c.JSON(http.StatusCreated, w)
}

// GET /wireframes
func (h *APIHandler) ListWireframes(c *gin.Context) {
	list, err := h.wireframes.List(c.Request.Context())
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []storage.SavedWireframe{}
	}
	c.JSON(http.StatusOK, gin.H{"wireframes": list})
}

// GET /wireframes/:wireframeId
func (h *APIHandler) GetWireframe(c *gin.Context) {
	w, err := h.wireframes.Get(c.Request.Context(), c.Param("wireframeId"))
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, w)
}

// GET /wireframes/recent
func (h *APIHandler) RecentWireframes(c *gin.Context) {
	entries := []recents.Entry{}
	if h.recents != nil {
		entries = h.recents.Entries()
	}
	c.JSON(http.StatusOK, gin.H{"recent": entries})
}
