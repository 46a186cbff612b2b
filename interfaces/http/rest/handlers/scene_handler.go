// Package handlers exposes the scene engine over HTTP: the transport
// for the external input-event and persistence collaborators.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/nibzard/beautiful-mermaid/application/services"
	"github.com/nibzard/beautiful-mermaid/application/tracker"
	"github.com/nibzard/beautiful-mermaid/pkg/common"
	apperrors "github.com/nibzard/beautiful-mermaid/pkg/errors"
	"github.com/nibzard/beautiful-mermaid/pkg/utils"
)

// SceneHandler handles scene session HTTP requests
type SceneHandler struct {
	scenes *services.SceneService
	logger *zap.Logger
}

// NewSceneHandler creates a new scene handler
func NewSceneHandler(scenes *services.SceneService, logger *zap.Logger) *SceneHandler {
	return &SceneHandler{scenes: scenes, logger: logger}
}

// CreateSceneRequest represents the request body for creating a scene
// session
type CreateSceneRequest struct {
	Document  string `json:"document" validate:"required"`
	Namespace string `json:"namespace,omitempty" validate:"omitempty,max=100"`
}

// NodeView is the wire shape of a reconstructed node
type NodeView struct {
	ID     string  `json:"id"`
	Label  string  `json:"label,omitempty"`
	Shape  string  `json:"shape"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// EdgeView is the wire shape of a reconstructed edge
type EdgeView struct {
	ID     string `json:"id"`
	Source string `json:"source,omitempty"`
	Target string `json:"target,omitempty"`
	Label  string `json:"label,omitempty"`
}

// GroupView is the wire shape of a reconstructed group
type GroupView struct {
	ID      string   `json:"id"`
	Label   string   `json:"label,omitempty"`
	Members []string `json:"members"`
}

// SceneView is the wire shape of a scene session
type SceneView struct {
	SessionID string      `json:"sessionId"`
	Family    string      `json:"family"`
	Nodes     []NodeView  `json:"nodes"`
	Edges     []EdgeView  `json:"edges"`
	Groups    []GroupView `json:"groups"`
}

// CreateScene handles POST /scenes
func (h *SceneHandler) CreateScene(w http.ResponseWriter, r *http.Request) {
	var req CreateSceneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	sess, err := h.scenes.CreateScene(r.Context(), req.Document, req.Namespace)
	if err != nil {
		h.logger.Warn("scene creation failed", zap.Error(err))
		common.RespondError(w, apperrors.StatusOf(err), "UNPARSEABLE", err.Error())
		return
	}
	common.RespondJSON(w, http.StatusCreated, sceneView(sess))
}

// GetScene handles GET /scenes/{sceneID}
func (h *SceneHandler) GetScene(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	common.RespondJSON(w, http.StatusOK, sceneView(sess))
}

// GetSVG handles GET /scenes/{sceneID}/svg
func (h *SceneHandler) GetSVG(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(sess.SVG()))
}

// DeleteScene handles DELETE /scenes/{sceneID}
func (h *SceneHandler) DeleteScene(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	h.scenes.Remove(sess.ID)
	common.RespondJSON(w, http.StatusOK, map[string]string{"deleted": sess.ID})
}

// DragStartRequest targets one node for a gesture
type DragStartRequest struct {
	NodeID string `json:"nodeId" validate:"required"`
}

// DragStart handles POST /scenes/{sceneID}/drag/start
func (h *SceneHandler) DragStart(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req DragStartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}
	switch err := sess.StartDrag(req.NodeID); {
	case errors.Is(err, tracker.ErrDragActive):
		common.RespondError(w, http.StatusConflict, "DRAG_ACTIVE", err.Error())
	case errors.Is(err, tracker.ErrUnknownNode):
		common.RespondError(w, http.StatusNotFound, "UNKNOWN_NODE", err.Error())
	case err != nil:
		common.RespondError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
	default:
		common.RespondJSON(w, http.StatusOK, map[string]string{"dragging": req.NodeID})
	}
}

// DragMoveRequest carries one movement tick
type DragMoveRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DragMove handles POST /scenes/{sceneID}/drag/move
func (h *SceneHandler) DragMove(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req DragMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}
	if err := sess.DragTo(req.X, req.Y); err != nil {
		common.RespondError(w, http.StatusConflict, "NO_DRAG", err.Error())
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]bool{"applied": true})
}

// DragEnd handles POST /scenes/{sceneID}/drag/end
func (h *SceneHandler) DragEnd(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := sess.EndDrag(); err != nil {
		common.RespondError(w, http.StatusConflict, "NO_DRAG", err.Error())
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]bool{"polished": true})
}

func (h *SceneHandler) session(w http.ResponseWriter, r *http.Request) (*services.Session, bool) {
	id := chi.URLParam(r, "sceneID")
	sess, ok := h.scenes.Get(id)
	if !ok {
		common.RespondError(w, http.StatusNotFound, "UNKNOWN_SCENE", "Scene session not found")
		return nil, false
	}
	return sess, true
}

func sceneView(sess *services.Session) SceneView {
	g := sess.Graph()
	view := SceneView{
		SessionID: sess.ID,
		Family:    string(g.Family),
		Nodes:     make([]NodeView, 0, len(g.Nodes)),
		Edges:     make([]EdgeView, 0, len(g.Edges)),
		Groups:    make([]GroupView, 0, len(g.Groups)),
	}
	for _, n := range g.Nodes {
		w, h := n.Size()
		view.Nodes = append(view.Nodes, NodeView{
			ID:     string(n.ID()),
			Label:  n.Label(),
			Shape:  string(n.Shape()),
			X:      n.Position().X,
			Y:      n.Position().Y,
			Width:  w,
			Height: h,
		})
	}
	for _, e := range g.Edges {
		ev := EdgeView{ID: e.ID(), Source: string(e.SourceID), Target: string(e.TargetID)}
		if e.Label != nil {
			ev.Label = e.Label.Text
		}
		view.Edges = append(view.Edges, ev)
	}
	for _, grp := range g.Groups {
		gv := GroupView{ID: grp.ID(), Label: grp.Label(), Members: make([]string, 0, len(grp.Members()))}
		for _, m := range grp.Members() {
			gv.Members = append(gv.Members, string(m))
		}
		view.Groups = append(view.Groups, gv)
	}
	return view
}
