package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/xelth-com/sapmockgo/internal/middleware"
	"github.com/xelth-com/sapmockgo/internal/models"
)

// checkAvailability handles GET /api/materials/{id}/availability?plant=...
func (r *Router) checkAvailability(w http.ResponseWriter, req *http.Request) {
	materialID := mux.Vars(req)["id"]
	plant := req.URL.Query().Get("plant")
	token := middleware.TokenFromContext(req.Context())

	respondResult(w, r.sim.CheckMaterialAvailability(req.Context(), token, materialID, plant))
}

// createMaterialMaster handles POST /api/materials
func (r *Router) createMaterialMaster(w http.ResponseWriter, req *http.Request) {
	var mat models.Material
	if err := json.NewDecoder(req.Body).Decode(&mat); err != nil {
		respondBadRequest(w, models.CodeMatCreateUnexpected, "Invalid request payload")
		return
	}
	token := middleware.TokenFromContext(req.Context())

	respondResult(w, r.sim.CreateMaterialMaster(req.Context(), token, mat))
}
