package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xelth-com/sapmockgo/internal/middleware"
	"github.com/xelth-com/sapmockgo/internal/models"
)

// ExecuteRequest is the generic dispatch payload for POST /api/execute
type ExecuteRequest struct {
	Operation  string                 `json:"operation"`
	Parameters map[string]interface{} `json:"parameters"`
}

// execute handles POST /api/execute, routing a named operation
func (r *Router) execute(w http.ResponseWriter, req *http.Request) {
	var body ExecuteRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondBadRequest(w, models.CodeRequestUnexpected, "Invalid request payload")
		return
	}
	token := middleware.TokenFromContext(req.Context())

	respondResult(w, r.sim.Execute(req.Context(), body.Operation, body.Parameters, token))
}

// getState handles GET /api/state
func (r *Router) getState(w http.ResponseWriter, req *http.Request) {
	token := middleware.TokenFromContext(req.Context())
	respondResult(w, r.sim.GetState(req.Context(), token))
}

// reset handles POST /api/reset
func (r *Router) reset(w http.ResponseWriter, req *http.Request) {
	token := middleware.TokenFromContext(req.Context())
	respondResult(w, r.sim.Reset(req.Context(), token))
}
