package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/xelth-com/sapmockgo/internal/config"
	"github.com/xelth-com/sapmockgo/internal/models"
	"github.com/xelth-com/sapmockgo/internal/simulator"
)

func testRouter() *Router {
	cfg := &config.Config{
		JWTSecret:   "test-secret-key-12345",
		TokenExpiry: time.Hour,
		RequireAuth: true,
	}
	return NewRouter(simulator.New(cfg), nil)
}

func doJSON(t *testing.T, router *Router, method, path, token string, body interface{}) (*httptest.ResponseRecorder, models.Response) {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp models.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON response (%d): %s", rec.Code, rec.Body.String())
	}
	return rec, resp
}

func login(t *testing.T, router *Router) string {
	t.Helper()
	rec, resp := doJSON(t, router, "POST", "/auth/login", "", map[string]string{
		"username": "test_user",
		"password": "test_password",
	})
	if rec.Code != http.StatusOK || !resp.Success {
		t.Fatalf("Login failed (%d): %+v", rec.Code, resp.Error)
	}
	return resp.Data["token"].(string)
}

func TestHealthCheck(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
}

func TestUnauthorizedRequests(t *testing.T) {
	router := testRouter()

	// No token
	rec, resp := doJSON(t, router, "GET", "/api/state", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != models.CodeAuthInvalidToken {
		t.Errorf("Expected AUTH002 envelope, got %+v", resp)
	}

	// Garbage token
	rec, _ = doJSON(t, router, "GET", "/api/state", "garbage", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for garbage token, got %d", rec.Code)
	}

	// Malformed header
	req := httptest.NewRequest("GET", "/api/state", nil)
	req.Header.Set("Authorization", "garbage")
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req)
	if rec2.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for malformed header, got %d", rec2.Code)
	}
}

func TestLoginRejectsBadPayload(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest("POST", "/auth/login", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}

	_, resp := doJSON(t, router, "POST", "/auth/login", "", map[string]string{"username": "u"})
	if resp.Success || resp.Error.Code != models.CodeAuthInvalidCredentials {
		t.Errorf("Expected AUTH001, got %+v", resp)
	}
}

func TestEndToEndFlow(t *testing.T) {
	router := testRouter()
	token := login(t, router)

	// Availability
	rec, resp := doJSON(t, router, "GET", "/api/materials/MAT001/availability?plant=PLANT_1", token, nil)
	if rec.Code != http.StatusOK || !resp.Success {
		t.Fatalf("Availability failed (%d): %+v", rec.Code, resp.Error)
	}
	if resp.Data["unrestricted_stock"] != 1000.0 || resp.Data["storage_location"] != "A01" {
		t.Errorf("Unexpected availability payload: %+v", resp.Data)
	}

	// Unknown material travels as an enveloped failure over 200.
	rec, resp = doJSON(t, router, "GET", "/api/materials/INVALID/availability?plant=PLANT_1", token, nil)
	if rec.Code != http.StatusOK || resp.Success {
		t.Fatalf("Expected enveloped failure, got %d %+v", rec.Code, resp)
	}
	if resp.Error.Code != models.CodeMatAvailMaterialNotFound {
		t.Errorf("Expected MAT_AVAIL_002, got %s", resp.Error.Code)
	}

	// PR
	_, resp = doJSON(t, router, "POST", "/api/purchase-requisitions", token, map[string]interface{}{
		"material_id":   "MAT001",
		"plant":         "PLANT_1",
		"quantity":      100,
		"delivery_date": "2030-01-15",
	})
	if !resp.Success {
		t.Fatalf("PR creation failed: %+v", resp.Error)
	}
	prNumber := resp.Data["pr_number"].(string)

	// PO
	_, resp = doJSON(t, router, "POST", "/api/purchase-orders", token, map[string]string{
		"pr_number": prNumber,
		"vendor_id": "VENDOR001",
	})
	if !resp.Success {
		t.Fatalf("PO creation failed: %+v", resp.Error)
	}
	poNumber := resp.Data["po_number"].(string)

	// Duplicate PO
	_, resp = doJSON(t, router, "POST", "/api/purchase-orders", token, map[string]string{
		"pr_number": prNumber,
		"vendor_id": "VENDOR001",
	})
	if resp.Success || resp.Error.Code != models.CodePOAlreadyOrdered {
		t.Errorf("Expected PO003, got %+v", resp)
	}

	// Document status
	_, resp = doJSON(t, router, "GET", "/api/documents/PR/"+prNumber+"/status", token, nil)
	if !resp.Success || resp.Data["status"] != "ORDERED" {
		t.Errorf("Unexpected PR status: %+v", resp)
	}

	// State
	_, resp = doJSON(t, router, "GET", "/api/state", token, nil)
	if !resp.Success {
		t.Fatalf("getState failed: %+v", resp.Error)
	}
	prs, ok := resp.Data["purchase_requisitions"].(map[string]interface{})
	if !ok || len(prs) != 1 {
		t.Errorf("Expected 1 PR in state, got %+v", resp.Data["purchase_requisitions"])
	}

	// Printout
	req := httptest.NewRequest("GET", "/api/documents/po/"+poNumber+"/printout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	printRec := httptest.NewRecorder()
	router.ServeHTTP(printRec, req)
	if printRec.Code != http.StatusOK {
		t.Fatalf("Printout failed: %d %s", printRec.Code, printRec.Body.String())
	}
	if ct := printRec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Expected application/pdf, got %s", ct)
	}
	if printRec.Body.Len() == 0 {
		t.Error("Printout should not be empty")
	}

	// Reset
	_, resp = doJSON(t, router, "POST", "/api/reset", token, nil)
	if !resp.Success {
		t.Fatalf("Reset failed: %+v", resp.Error)
	}

	// Token was revoked by reset.
	rec, _ = doJSON(t, router, "GET", "/api/state", token, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 after reset, got %d", rec.Code)
	}
}

func TestExecuteEndpoint(t *testing.T) {
	router := testRouter()
	token := login(t, router)

	_, resp := doJSON(t, router, "POST", "/api/execute", token, map[string]interface{}{
		"operation": "checkMaterialAvailability",
		"parameters": map[string]interface{}{
			"material_id": "MAT001",
			"plant":       "PLANT_1",
		},
	})
	if !resp.Success {
		t.Fatalf("Dispatch failed: %+v", resp.Error)
	}
	if resp.Data["unrestricted_stock"] != 1000.0 {
		t.Errorf("Expected 1000.0, got %v", resp.Data["unrestricted_stock"])
	}

	_, resp = doJSON(t, router, "POST", "/api/execute", token, map[string]interface{}{
		"operation": "meltServer",
	})
	if resp.Success || resp.Error.Code != models.CodeUnsupportedOperation {
		t.Errorf("Expected OPERATION_001, got %+v", resp)
	}
}

func TestPrintoutUnknownPO(t *testing.T) {
	router := testRouter()
	token := login(t, router)

	req := httptest.NewRequest("GET", "/api/documents/po/PO9999999999/printout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}
