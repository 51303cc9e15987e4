package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/xelth-com/sapmockgo/internal/models"
	"github.com/xelth-com/sapmockgo/internal/services/printer"
)

// printPurchaseOrder handles GET /api/documents/po/{number}/printout
func (r *Router) printPurchaseOrder(w http.ResponseWriter, req *http.Request) {
	poNumber := mux.Vars(req)["number"]

	po, pr, mat, ok := r.sim.PurchaseOrderDocuments(poNumber)
	if !ok {
		respondJSON(w, http.StatusNotFound, models.ErrorResponse(models.CodeDocNotFound,
			fmt.Sprintf("Document %s not found", poNumber)))
		return
	}

	pdfBytes, err := printer.GeneratePOPrintout(po, pr, mat)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, models.ErrorResponse(models.CodeDocUnexpected,
			"Printout generation failed: "+err.Error()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%s.pdf", poNumber))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}
