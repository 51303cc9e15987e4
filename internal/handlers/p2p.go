package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/xelth-com/sapmockgo/internal/middleware"
	"github.com/xelth-com/sapmockgo/internal/models"
	"github.com/xelth-com/sapmockgo/internal/services/p2p"
)

// createPurchaseRequisition handles POST /api/purchase-requisitions
func (r *Router) createPurchaseRequisition(w http.ResponseWriter, req *http.Request) {
	var in p2p.CreatePRInput
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondBadRequest(w, models.CodePRUnexpected, "Invalid request payload")
		return
	}
	token := middleware.TokenFromContext(req.Context())

	respondResult(w, r.sim.CreatePurchaseRequisition(req.Context(), token, in))
}

// cancelPurchaseRequisition handles POST /api/purchase-requisitions/{number}/cancel
func (r *Router) cancelPurchaseRequisition(w http.ResponseWriter, req *http.Request) {
	prNumber := mux.Vars(req)["number"]
	token := middleware.TokenFromContext(req.Context())

	respondResult(w, r.sim.CancelPurchaseRequisition(req.Context(), token, prNumber))
}

// createPurchaseOrder handles POST /api/purchase-orders
func (r *Router) createPurchaseOrder(w http.ResponseWriter, req *http.Request) {
	var in p2p.CreatePOInput
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondBadRequest(w, models.CodePOUnexpected, "Invalid request payload")
		return
	}
	token := middleware.TokenFromContext(req.Context())

	respondResult(w, r.sim.CreatePurchaseOrder(req.Context(), token, in))
}

// checkDocumentStatus handles GET /api/documents/{type}/{number}/status
func (r *Router) checkDocumentStatus(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	token := middleware.TokenFromContext(req.Context())

	respondResult(w, r.sim.CheckDocumentStatus(req.Context(), token, vars["number"], vars["type"]))
}
