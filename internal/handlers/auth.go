package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xelth-com/sapmockgo/internal/auth"
	"github.com/xelth-com/sapmockgo/internal/models"
)

// login handles authentication and token issuance
func (r *Router) login(w http.ResponseWriter, req *http.Request) {
	var creds auth.Credentials
	if err := json.NewDecoder(req.Body).Decode(&creds); err != nil {
		respondBadRequest(w, models.CodeAuthInvalidCredentials, "Invalid request payload")
		return
	}

	respondResult(w, r.sim.Authenticate(req.Context(), creds))
}
