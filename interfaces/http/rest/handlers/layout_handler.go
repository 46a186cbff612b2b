package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/nibzard/beautiful-mermaid/application/services"
	"github.com/nibzard/beautiful-mermaid/domain/layout"
	"github.com/nibzard/beautiful-mermaid/pkg/common"
	"github.com/nibzard/beautiful-mermaid/pkg/geometry"
)

// LayoutHandler handles position export/import and bulk mutation
type LayoutHandler struct {
	scenes *services.SceneService
	logger *zap.Logger
}

// NewLayoutHandler creates a new layout handler
func NewLayoutHandler(scenes *services.SceneService, logger *zap.Logger) *LayoutHandler {
	return &LayoutHandler{scenes: scenes, logger: logger}
}

// ExportLayout handles GET /scenes/{sceneID}/layout
func (h *LayoutHandler) ExportLayout(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	common.RespondJSON(w, http.StatusOK, sess.ExportRecord())
}

// ImportLayout handles PUT /scenes/{sceneID}/layout. A malformed record
// is treated as "no saved layout", not an error that disturbs the
// scene.
func (h *LayoutHandler) ImportLayout(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}
	rec, valid := layout.Decode(raw)
	if !valid {
		h.logger.Debug("import ignored malformed layout record")
		common.RespondJSON(w, http.StatusOK, map[string]bool{"applied": false})
		return
	}
	sess.ImportRecord(rec)
	common.RespondJSON(w, http.StatusOK, map[string]bool{"applied": true})
}

// SetPositionsRequest carries a bulk identifier-to-position mapping
type SetPositionsRequest struct {
	Positions map[string]geometry.Point `json:"positions" validate:"required"`
}

// SetPositions handles PUT /scenes/{sceneID}/positions. Identifiers
// not present in the scene graph are silently ignored.
func (h *LayoutHandler) SetPositions(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req SetPositionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Positions == nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	sess.SetPositions(req.Positions)
	common.RespondJSON(w, http.StatusOK, map[string]bool{"applied": true})
}

// ResetPositions handles POST /scenes/{sceneID}/positions/reset
func (h *LayoutHandler) ResetPositions(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	sess.ResetPositions()
	common.RespondJSON(w, http.StatusOK, map[string]bool{"reset": true})
}

func (h *LayoutHandler) session(w http.ResponseWriter, r *http.Request) (*services.Session, bool) {
	sh := SceneHandler{scenes: h.scenes, logger: h.logger}
	return sh.session(w, r)
}
