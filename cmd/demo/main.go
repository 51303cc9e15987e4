package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/xelth-com/sapmockgo/internal/auth"
	"github.com/xelth-com/sapmockgo/internal/config"
	"github.com/xelth-com/sapmockgo/internal/models"
	"github.com/xelth-com/sapmockgo/internal/services/p2p"
	"github.com/xelth-com/sapmockgo/internal/simulator"
)

func dump(label string, resp models.Response) {
	raw, _ := json.MarshalIndent(resp, "", "  ")
	log.Printf("%s:\n%s", label, raw)
}

// Scripted run through the procure-to-pay flow against an in-process
// simulator: authenticate, availability check, PR, PO, duplicate-PO guard.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	sim := simulator.New(cfg)
	ctx := context.Background()

	authResp := sim.Authenticate(ctx, auth.Credentials{
		Username: "test_user",
		Password: "test_password",
	})
	dump("Authentication", authResp)
	if !authResp.Success {
		log.Fatalf("Authentication failed: %s", authResp.Error.Message)
	}
	token, _ := authResp.Data["token"].(string)

	dump("Material availability", sim.CheckMaterialAvailability(ctx, token, "MAT001", "PLANT_1"))

	prResp := sim.CreatePurchaseRequisition(ctx, token, p2p.CreatePRInput{
		MaterialID:   "MAT001",
		Plant:        "PLANT_1",
		Quantity:     100,
		DeliveryDate: "2030-01-15",
	})
	dump("PR creation", prResp)
	if !prResp.Success {
		log.Fatalf("PR creation failed: %s", prResp.Error.Message)
	}
	prNumber, _ := prResp.Data["pr_number"].(string)

	dump("PO creation", sim.CreatePurchaseOrder(ctx, token, p2p.CreatePOInput{
		PRNumber: prNumber,
		VendorID: "VENDOR001",
	}))

	// Second order against the same requisition must be rejected.
	dump("Duplicate PO attempt", sim.CreatePurchaseOrder(ctx, token, p2p.CreatePOInput{
		PRNumber: prNumber,
		VendorID: "VENDOR001",
	}))

	dump("Session state", sim.GetState(ctx, token))
}
