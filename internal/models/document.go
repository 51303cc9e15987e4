package models

import "time"

// PRStatus is the lifecycle state of a purchase requisition.
type PRStatus string

const (
	PRStatusCreated   PRStatus = "CREATED"
	PRStatusOrdered   PRStatus = "ORDERED"
	PRStatusCancelled PRStatus = "CANCELLED"
)

// POStatus is the lifecycle state of a purchase order. PROCESSED is reserved
// for goods-receipt extensions; nothing transitions into it yet.
type POStatus string

const (
	POStatusCreated   POStatus = "CREATED"
	POStatusProcessed POStatus = "PROCESSED"
)

// DocumentType selects a document store in status lookups.
type DocumentType string

const (
	DocumentTypePR DocumentType = "PR"
	DocumentTypePO DocumentType = "PO"
)

// PurchaseRequisition is an internal request to procure a material quantity.
// Only Status mutates after creation, and only through engine transitions.
type PurchaseRequisition struct {
	PRNumber     string    `json:"pr_number"`
	MaterialID   string    `json:"material_id"`
	Plant        string    `json:"plant"`
	Quantity     float64   `json:"quantity"`
	DeliveryDate time.Time `json:"delivery_date"`
	Status       PRStatus  `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// PurchaseOrder commits a vendor to fulfilling exactly one requisition.
type PurchaseOrder struct {
	PONumber     string    `json:"po_number"`
	PRNumber     string    `json:"pr_number"`
	VendorID     string    `json:"vendor_id"`
	MaterialID   string    `json:"material_id"`
	Plant        string    `json:"plant"`
	Quantity     float64   `json:"quantity"`
	DeliveryDate time.Time `json:"delivery_date"`
	Status       POStatus  `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// SessionState is a point-in-time snapshot of the document stores.
type SessionState struct {
	PurchaseRequisitions map[string]PurchaseRequisition `json:"purchase_requisitions"`
	PurchaseOrders       map[string]PurchaseOrder       `json:"purchase_orders"`
}
