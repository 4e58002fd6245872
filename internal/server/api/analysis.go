package api

import (
	"net/http"

	"github.com/ayusman/vision3/internal/analysis"
	"github.com/ayusman/vision3/internal/joint"
	"github.com/ayusman/vision3/internal/posture"
)

// PostureHandler handles POST /api/posture with a POSTURE_SYNC payload.
type PostureHandler struct {
	service *analysis.Service
}

// NewPostureHandler creates a new PostureHandler with the given service.
func NewPostureHandler(s *analysis.Service) *PostureHandler {
	return &PostureHandler{service: s}
}

// ServeHTTP implements the http.Handler interface.
func (h *PostureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req analysis.PostureRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Unlike the streaming channel, the request/response API rejects bad views.
	if _, err := posture.ParseView(req.View); err != nil {
		writeError(w, http.StatusBadRequest, "View must be side, front or back")
		return
	}
	if len(req.Landmarks) == 0 {
		writeError(w, http.StatusBadRequest, "Landmarks are required")
		return
	}

	writeJSON(w, http.StatusOK, h.service.Posture(req))
}

// JointsHandler handles POST /api/joints with a JOINT_ANALYSIS payload.
type JointsHandler struct {
	service *analysis.Service
}

// NewJointsHandler creates a new JointsHandler with the given service.
func NewJointsHandler(s *analysis.Service) *JointsHandler {
	return &JointsHandler{service: s}
}

// ServeHTTP implements the http.Handler interface. Individual measurements that cannot
// be computed come back with a null angle and do not fail the request.
func (h *JointsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req analysis.JointRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	writeJSON(w, http.StatusOK, h.service.Joints(r.Context(), req))
}

// RangesHandler handles GET /api/ranges.
type RangesHandler struct{}

// NewRangesHandler creates a new RangesHandler.
func NewRangesHandler() *RangesHandler {
	return &RangesHandler{}
}

type rangesResponse struct {
	Joints []joint.Entry `json:"joints"`
}

// ServeHTTP implements the http.Handler interface.
func (h *RangesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, rangesResponse{Joints: joint.Catalog()})
}
