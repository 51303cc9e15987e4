package p2p

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/xelth-com/sapmockgo/internal/models"
	"github.com/xelth-com/sapmockgo/internal/services/material"
)

// CreatePRInput is the createPurchaseRequisition payload.
type CreatePRInput struct {
	MaterialID   string  `json:"material_id"`
	Plant        string  `json:"plant"`
	Quantity     float64 `json:"quantity"`
	DeliveryDate string  `json:"delivery_date"`
}

// CreatePOInput is the createPurchaseOrder payload. DeliveryDate overrides the
// requisition's date when set.
type CreatePOInput struct {
	PRNumber     string `json:"pr_number"`
	VendorID     string `json:"vendor_id"`
	DeliveryDate string `json:"delivery_date,omitempty"`
}

// Engine owns the purchase requisition and purchase order stores and their
// state machine. All mutation happens under a single mutex: sequence
// allocation, store insert and status transition form one indivisible step,
// which keeps "at most one PO per PR" and "no duplicate identifiers" true
// under concurrent callers.
type Engine struct {
	ledger         *material.Service
	allowPastDates bool

	mu           sync.Mutex
	prs          map[string]models.PurchaseRequisition
	pos          map[string]models.PurchaseOrder
	prSeq        int
	poSeq        int
	validVendors map[string]struct{}
}

// NewEngine creates an empty document flow engine backed by the given ledger.
func NewEngine(ledger *material.Service, allowPastDates bool) *Engine {
	return &Engine{
		ledger:         ledger,
		allowPastDates: allowPastDates,
		prs:            make(map[string]models.PurchaseRequisition),
		pos:            make(map[string]models.PurchaseOrder),
		validVendors:   map[string]struct{}{"VENDOR001": {}},
	}
}

// parseDeliveryDate accepts a plain date or a full timestamp.
func parseDeliveryDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// CreatePurchaseRequisition validates input against the material ledger and
// stores a new requisition in status CREATED. Stock is checked but not
// reserved; no quantity is decremented here.
func (e *Engine) CreatePurchaseRequisition(ctx context.Context, in CreatePRInput) models.Response {
	var missing []string
	if in.MaterialID == "" {
		missing = append(missing, "material_id")
	}
	if in.Plant == "" {
		missing = append(missing, "plant")
	}
	if in.DeliveryDate == "" {
		missing = append(missing, "delivery_date")
	}
	if len(missing) > 0 {
		return models.ErrorResponseDetails(models.CodePRMissingFields,
			"Missing required fields", map[string]interface{}{"missing_fields": missing})
	}

	if in.Quantity <= 0 {
		return models.ErrorResponse(models.CodePRInvalidQuantity, "Quantity must be greater than zero")
	}

	if !e.ledger.IsValidPlant(in.Plant) {
		return models.ErrorResponse(models.CodePRPlantNotFound,
			fmt.Sprintf("Plant %s not found", in.Plant))
	}

	deliveryDate, err := parseDeliveryDate(in.DeliveryDate)
	if err != nil {
		return models.ErrorResponse(models.CodePRInvalidDate,
			fmt.Sprintf("Invalid delivery date: %s", in.DeliveryDate))
	}
	if !e.allowPastDates && deliveryDate.Before(time.Now().UTC().Truncate(24*time.Hour)) {
		return models.ErrorResponse(models.CodePRInvalidDate,
			fmt.Sprintf("Delivery date %s is in the past", in.DeliveryDate))
	}

	check := e.ledger.CheckAvailability(ctx, in.MaterialID, in.Plant)
	if !check.Success {
		return models.ErrorResponseDetails(models.CodePRMaterialCheck, check.Error.Message,
			map[string]interface{}{"material_error_code": check.Error.Code})
	}

	available, _ := check.Data["unrestricted_stock"].(float64)
	if in.Quantity > available {
		return models.ErrorResponseDetails(models.CodePRInsufficientStock,
			fmt.Sprintf("Insufficient stock for %s at %s", in.MaterialID, in.Plant),
			map[string]interface{}{"requested": in.Quantity, "available": available})
	}

	e.mu.Lock()
	e.prSeq++
	prNumber := fmt.Sprintf("PR%010d", e.prSeq)
	if _, exists := e.prs[prNumber]; exists {
		e.mu.Unlock()
		panic(fmt.Sprintf("p2p: PR number %s already allocated", prNumber))
	}
	e.prs[prNumber] = models.PurchaseRequisition{
		PRNumber:     prNumber,
		MaterialID:   in.MaterialID,
		Plant:        in.Plant,
		Quantity:     in.Quantity,
		DeliveryDate: deliveryDate,
		Status:       models.PRStatusCreated,
		CreatedAt:    time.Now().UTC(),
	}
	e.mu.Unlock()

	log.Printf("Purchase Requisition created: %s", prNumber)

	return models.SuccessResponse(map[string]interface{}{
		"pr_number": prNumber,
		"status":    string(models.PRStatusCreated),
	})
}

// CreatePurchaseOrder converts a requisition in status CREATED into an order.
// The existence check, vendor check, duplicate-order guard, number allocation
// and status transition all run inside one critical section.
func (e *Engine) CreatePurchaseOrder(ctx context.Context, in CreatePOInput) models.Response {
	var missing []string
	if in.PRNumber == "" {
		missing = append(missing, "pr_number")
	}
	if in.VendorID == "" {
		missing = append(missing, "vendor_id")
	}
	if len(missing) > 0 {
		return models.ErrorResponseDetails(models.CodePOMissingFields,
			"Missing required fields", map[string]interface{}{"missing_fields": missing})
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	pr, ok := e.prs[in.PRNumber]
	if !ok {
		return models.ErrorResponse(models.CodePOPRNotFound,
			fmt.Sprintf("PR %s not found", in.PRNumber))
	}

	if _, ok := e.validVendors[in.VendorID]; !ok {
		return models.ErrorResponse(models.CodePOVendorNotFound,
			fmt.Sprintf("Vendor %s not found", in.VendorID))
	}

	if pr.Status != models.PRStatusCreated {
		msg := fmt.Sprintf("PR %s is already ordered", in.PRNumber)
		if pr.Status == models.PRStatusCancelled {
			msg = fmt.Sprintf("PR %s is cancelled", in.PRNumber)
		}
		return models.ErrorResponseDetails(models.CodePOAlreadyOrdered, msg,
			map[string]interface{}{"current_status": string(pr.Status)})
	}

	deliveryDate := pr.DeliveryDate
	if in.DeliveryDate != "" {
		parsed, err := parseDeliveryDate(in.DeliveryDate)
		if err != nil {
			return models.ErrorResponse(models.CodePOMissingFields,
				fmt.Sprintf("Invalid delivery date: %s", in.DeliveryDate))
		}
		deliveryDate = parsed
	}

	e.poSeq++
	poNumber := fmt.Sprintf("PO%010d", e.poSeq)
	if _, exists := e.pos[poNumber]; exists {
		panic(fmt.Sprintf("p2p: PO number %s already allocated", poNumber))
	}

	e.pos[poNumber] = models.PurchaseOrder{
		PONumber:     poNumber,
		PRNumber:     pr.PRNumber,
		VendorID:     in.VendorID,
		MaterialID:   pr.MaterialID,
		Plant:        pr.Plant,
		Quantity:     pr.Quantity,
		DeliveryDate: deliveryDate,
		Status:       models.POStatusCreated,
		CreatedAt:    time.Now().UTC(),
	}

	pr.Status = models.PRStatusOrdered
	e.prs[pr.PRNumber] = pr

	log.Printf("Purchase Order created: %s", poNumber)

	return models.SuccessResponse(map[string]interface{}{
		"po_number": poNumber,
		"status":    string(models.POStatusCreated),
	})
}

// CancelPurchaseRequisition moves a requisition from CREATED to CANCELLED.
// ORDERED and CANCELLED are terminal.
func (e *Engine) CancelPurchaseRequisition(ctx context.Context, prNumber string) models.Response {
	if prNumber == "" {
		return models.ErrorResponse(models.CodePRNotFound, "PR number is required")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	pr, ok := e.prs[prNumber]
	if !ok {
		return models.ErrorResponse(models.CodePRNotFound,
			fmt.Sprintf("PR %s not found", prNumber))
	}
	if pr.Status != models.PRStatusCreated {
		return models.ErrorResponseDetails(models.CodePRNotCancellable,
			fmt.Sprintf("PR %s cannot be cancelled in status %s", prNumber, pr.Status),
			map[string]interface{}{"current_status": string(pr.Status)})
	}

	pr.Status = models.PRStatusCancelled
	e.prs[prNumber] = pr

	log.Printf("Purchase Requisition cancelled: %s", prNumber)

	return models.SuccessResponse(map[string]interface{}{
		"pr_number": prNumber,
		"status":    string(models.PRStatusCancelled),
	})
}

// CheckDocumentStatus reports the status of a PR or PO. Read-only.
func (e *Engine) CheckDocumentStatus(ctx context.Context, documentNumber, documentType string) models.Response {
	docType := models.DocumentType(strings.ToUpper(documentType))

	e.mu.Lock()
	defer e.mu.Unlock()

	var status string
	var createdAt time.Time
	switch docType {
	case models.DocumentTypePR:
		pr, ok := e.prs[documentNumber]
		if !ok {
			return models.ErrorResponse(models.CodeDocNotFound,
				fmt.Sprintf("Document %s not found", documentNumber))
		}
		status, createdAt = string(pr.Status), pr.CreatedAt
	case models.DocumentTypePO:
		po, ok := e.pos[documentNumber]
		if !ok {
			return models.ErrorResponse(models.CodeDocNotFound,
				fmt.Sprintf("Document %s not found", documentNumber))
		}
		status, createdAt = string(po.Status), po.CreatedAt
	default:
		return models.ErrorResponse(models.CodeDocInvalidType,
			fmt.Sprintf("Invalid document type: %s", documentType))
	}

	return models.SuccessResponse(map[string]interface{}{
		"document_number": documentNumber,
		"document_type":   string(docType),
		"status":          status,
		"created_at":      createdAt.Format(time.RFC3339),
	})
}

// State returns a deep-copied snapshot of both document stores. Mutating the
// snapshot cannot affect the engine.
func (e *Engine) State() models.SessionState {
	e.mu.Lock()
	defer e.mu.Unlock()

	state := models.SessionState{
		PurchaseRequisitions: make(map[string]models.PurchaseRequisition, len(e.prs)),
		PurchaseOrders:       make(map[string]models.PurchaseOrder, len(e.pos)),
	}
	for num, pr := range e.prs {
		state.PurchaseRequisitions[num] = pr
	}
	for num, po := range e.pos {
		state.PurchaseOrders[num] = po
	}
	return state
}

// Reset clears both stores and restarts the number sequences.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.prs = make(map[string]models.PurchaseRequisition)
	e.pos = make(map[string]models.PurchaseOrder)
	e.prSeq = 0
	e.poSeq = 0
	e.mu.Unlock()

	log.Printf("P2P state reset")
}
