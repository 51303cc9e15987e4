package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/xelth-com/sapmockgo/internal/middleware"
	"github.com/xelth-com/sapmockgo/internal/models"
	"github.com/xelth-com/sapmockgo/internal/simulator"
	"github.com/xelth-com/sapmockgo/internal/websocket"
)

// Router wraps the mux router and the simulator
type Router struct {
	*mux.Router
	sim *simulator.Simulator
	hub *websocket.Hub
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(sim *simulator.Simulator, hub *websocket.Hub) *Router {
	r := &Router{
		Router: mux.NewRouter(),
		sim:    sim,
		hub:    hub,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Auth routes
	authRoutes := r.PathPrefix("/auth").Subrouter()
	authRoutes.HandleFunc("/login", r.login).Methods("POST")

	// API routes (protected)
	api := r.PathPrefix("/api").Subrouter()
	api.Use(func(next http.Handler) http.Handler {
		return middleware.AuthMiddleware(sim.Gate(), next)
	})

	api.HandleFunc("/execute", r.execute).Methods("POST")

	// Material routes
	api.HandleFunc("/materials", r.createMaterialMaster).Methods("POST")
	api.HandleFunc("/materials/{id}/availability", r.checkAvailability).Methods("GET")

	// Document flow routes
	api.HandleFunc("/purchase-requisitions", r.createPurchaseRequisition).Methods("POST")
	api.HandleFunc("/purchase-requisitions/{number}/cancel", r.cancelPurchaseRequisition).Methods("POST")
	api.HandleFunc("/purchase-orders", r.createPurchaseOrder).Methods("POST")
	api.HandleFunc("/documents/{type}/{number}/status", r.checkDocumentStatus).Methods("GET")
	api.HandleFunc("/documents/po/{number}/printout", r.printPurchaseOrder).Methods("GET")

	// Session state routes
	api.HandleFunc("/state", r.getState).Methods("GET")
	api.HandleFunc("/reset", r.reset).Methods("POST")

	// Event feed
	if hub != nil {
		r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
			websocket.ServeWS(hub, w, req)
		})
	}

	return r
}

// healthCheck returns the health status of the simulator
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"server": "sapmock",
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondResult sends a Result envelope. Enveloped responses always use 200;
// the envelope, not the transport status, carries the outcome.
func respondResult(w http.ResponseWriter, resp models.Response) {
	respondJSON(w, http.StatusOK, resp)
}

// respondBadRequest sends an enveloped transport-level failure
func respondBadRequest(w http.ResponseWriter, code, message string) {
	respondJSON(w, http.StatusBadRequest, models.ErrorResponse(code, message))
}
