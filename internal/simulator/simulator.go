package simulator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/xelth-com/sapmockgo/internal/auth"
	"github.com/xelth-com/sapmockgo/internal/config"
	"github.com/xelth-com/sapmockgo/internal/models"
	"github.com/xelth-com/sapmockgo/internal/services/material"
	"github.com/xelth-com/sapmockgo/internal/services/p2p"
	"github.com/xelth-com/sapmockgo/internal/websocket"
)

// Event types pushed to the websocket feed.
const (
	EventMaterialCreated = "material.created"
	EventPRCreated       = "pr.created"
	EventPRCancelled     = "pr.cancelled"
	EventPOCreated       = "po.created"
	EventStateReset      = "state.reset"
)

// Simulator wires the access gate, material ledger and document flow engine
// behind a uniform operation boundary. Every operation except authenticate
// requires a valid token while REQUIRE_AUTH is on.
type Simulator struct {
	cfg    *config.Config
	gate   *auth.Gate
	ledger *material.Service
	engine *p2p.Engine
	hub    *websocket.Hub
}

// New creates a simulator with the default material seed.
func New(cfg *config.Config) *Simulator {
	return NewWithSeed(cfg, nil)
}

// NewWithSeed creates a simulator whose ledger is pre-populated from seed.
func NewWithSeed(cfg *config.Config, seed map[string]models.Material) *Simulator {
	ledger := material.NewService(seed)
	return &Simulator{
		cfg:    cfg,
		gate:   auth.NewGate(cfg),
		ledger: ledger,
		engine: p2p.NewEngine(ledger, cfg.AllowPastDeliveryDates),
	}
}

// SetHub attaches an event hub. Without one, events are dropped.
func (s *Simulator) SetHub(hub *websocket.Hub) {
	s.hub = hub
}

// Gate exposes the access gate for HTTP middleware.
func (s *Simulator) Gate() *auth.Gate {
	return s.gate
}

func (s *Simulator) publish(eventType string, data map[string]interface{}) {
	if s.hub != nil {
		s.hub.Publish(eventType, data)
	}
}

// authError maps a gate failure to its envelope code.
func authError(err error) models.Response {
	if errors.Is(err, auth.ErrTokenExpired) {
		return models.ErrorResponse(models.CodeAuthExpiredToken, "Token has expired")
	}
	return models.ErrorResponse(models.CodeAuthInvalidToken, "Invalid or expired token")
}

// Authenticate issues a session token. The only ungated operation.
func (s *Simulator) Authenticate(ctx context.Context, creds auth.Credentials) models.Response {
	return s.gate.Authenticate(ctx, creds)
}

// CheckMaterialAvailability gates and forwards to the material ledger.
func (s *Simulator) CheckMaterialAvailability(ctx context.Context, token, materialID, plant string) models.Response {
	if err := s.gate.Authorize(ctx, token); err != nil {
		return authError(err)
	}
	return s.ledger.CheckAvailability(ctx, materialID, plant)
}

// CreateMaterialMaster gates and forwards to the material ledger.
func (s *Simulator) CreateMaterialMaster(ctx context.Context, token string, mat models.Material) models.Response {
	if err := s.gate.Authorize(ctx, token); err != nil {
		return authError(err)
	}
	resp := s.ledger.CreateMaterialMaster(ctx, mat)
	if resp.Success {
		s.publish(EventMaterialCreated, resp.Data)
	}
	return resp
}

// CreatePurchaseRequisition gates and forwards to the document flow engine.
func (s *Simulator) CreatePurchaseRequisition(ctx context.Context, token string, in p2p.CreatePRInput) models.Response {
	if err := s.gate.Authorize(ctx, token); err != nil {
		return authError(err)
	}
	resp := s.engine.CreatePurchaseRequisition(ctx, in)
	if resp.Success {
		s.publish(EventPRCreated, resp.Data)
	}
	return resp
}

// CreatePurchaseOrder gates and forwards to the document flow engine.
func (s *Simulator) CreatePurchaseOrder(ctx context.Context, token string, in p2p.CreatePOInput) models.Response {
	if err := s.gate.Authorize(ctx, token); err != nil {
		return authError(err)
	}
	resp := s.engine.CreatePurchaseOrder(ctx, in)
	if resp.Success {
		s.publish(EventPOCreated, resp.Data)
	}
	return resp
}

// CancelPurchaseRequisition gates and forwards to the document flow engine.
func (s *Simulator) CancelPurchaseRequisition(ctx context.Context, token, prNumber string) models.Response {
	if err := s.gate.Authorize(ctx, token); err != nil {
		return authError(err)
	}
	resp := s.engine.CancelPurchaseRequisition(ctx, prNumber)
	if resp.Success {
		s.publish(EventPRCancelled, resp.Data)
	}
	return resp
}

// CheckDocumentStatus gates and forwards to the document flow engine.
func (s *Simulator) CheckDocumentStatus(ctx context.Context, token, documentNumber, documentType string) models.Response {
	if err := s.gate.Authorize(ctx, token); err != nil {
		return authError(err)
	}
	return s.engine.CheckDocumentStatus(ctx, documentNumber, documentType)
}

// GetState gates and returns a deep-copied snapshot of the document stores.
func (s *Simulator) GetState(ctx context.Context, token string) models.Response {
	if err := s.gate.Authorize(ctx, token); err != nil {
		return authError(err)
	}
	state := s.engine.State()
	return models.SuccessResponse(map[string]interface{}{
		"purchase_requisitions": state.PurchaseRequisitions,
		"purchase_orders":       state.PurchaseOrders,
	})
}

// State returns the raw snapshot, for in-process callers and tests.
func (s *Simulator) State() models.SessionState {
	return s.engine.State()
}

// PurchaseOrderDocuments resolves a PO with its PR and material master, for
// printout rendering.
func (s *Simulator) PurchaseOrderDocuments(poNumber string) (models.PurchaseOrder, models.PurchaseRequisition, models.Material, bool) {
	state := s.engine.State()
	po, ok := state.PurchaseOrders[poNumber]
	if !ok {
		return models.PurchaseOrder{}, models.PurchaseRequisition{}, models.Material{}, false
	}
	pr := state.PurchaseRequisitions[po.PRNumber]
	mat, _ := s.ledger.Material(po.MaterialID)
	return po, pr, mat, true
}

// Reset clears the document stores, restarts the number sequences, revokes
// every token and restores the ledger seed.
func (s *Simulator) Reset(ctx context.Context, token string) models.Response {
	if err := s.gate.Authorize(ctx, token); err != nil {
		return authError(err)
	}
	s.engine.Reset()
	s.ledger.Reset()
	s.gate.Reset()
	s.publish(EventStateReset, nil)

	log.Printf("Simulator state reset")

	return models.SuccessResponse(map[string]interface{}{
		"message": "Simulator state reset",
	})
}

// bind converts loosely-typed operation parameters into a request struct.
func bind(params map[string]interface{}, out interface{}) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func stringParam(params map[string]interface{}, key string) string {
	v, _ := params[key].(string)
	return v
}

// Execute dispatches a named operation with loosely-typed parameters, the
// generic entry point mirrored by POST /api/execute.
func (s *Simulator) Execute(ctx context.Context, operation string, params map[string]interface{}, token string) models.Response {
	if params == nil {
		params = map[string]interface{}{}
	}

	switch operation {
	case "authenticate":
		var creds auth.Credentials
		if err := bind(params, &creds); err != nil {
			return models.ErrorResponse(models.CodeRequestUnexpected, "Request execution failed: "+err.Error())
		}
		return s.Authenticate(ctx, creds)

	case "checkMaterialAvailability":
		return s.CheckMaterialAvailability(ctx, token,
			stringParam(params, "material_id"), stringParam(params, "plant"))

	case "createMaterialMaster":
		var mat models.Material
		if err := bind(params, &mat); err != nil {
			return models.ErrorResponse(models.CodeRequestUnexpected, "Request execution failed: "+err.Error())
		}
		return s.CreateMaterialMaster(ctx, token, mat)

	case "createPurchaseRequisition":
		var in p2p.CreatePRInput
		if err := bind(params, &in); err != nil {
			return models.ErrorResponse(models.CodeRequestUnexpected, "Request execution failed: "+err.Error())
		}
		return s.CreatePurchaseRequisition(ctx, token, in)

	case "createPurchaseOrder":
		var in p2p.CreatePOInput
		if err := bind(params, &in); err != nil {
			return models.ErrorResponse(models.CodeRequestUnexpected, "Request execution failed: "+err.Error())
		}
		return s.CreatePurchaseOrder(ctx, token, in)

	case "cancelPurchaseRequisition":
		return s.CancelPurchaseRequisition(ctx, token, stringParam(params, "pr_number"))

	case "checkDocumentStatus":
		return s.CheckDocumentStatus(ctx, token,
			stringParam(params, "document_number"), stringParam(params, "document_type"))

	case "getState":
		return s.GetState(ctx, token)

	case "reset":
		return s.Reset(ctx, token)

	default:
		return models.ErrorResponse(models.CodeUnsupportedOperation,
			fmt.Sprintf("Unsupported operation: %s", operation))
	}
}
