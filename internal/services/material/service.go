package material

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/xelth-com/sapmockgo/internal/models"
)

// Service owns the material master records and per-plant stock of a session.
type Service struct {
	mu          sync.RWMutex
	materials   map[string]models.Material
	seed        map[string]models.Material
	validPlants map[string]struct{}
}

// NewService creates a ledger pre-populated from seed. A nil seed loads the
// default materials so downstream flow tests always have a valid reference.
func NewService(seed map[string]models.Material) *Service {
	if seed == nil {
		seed = DefaultSeed()
	}
	s := &Service{
		seed:        seed,
		validPlants: map[string]struct{}{"PLANT_1": {}},
	}
	s.loadSeed()
	return s
}

func (s *Service) loadSeed() {
	s.materials = make(map[string]models.Material, len(s.seed))
	for id, mat := range s.seed {
		s.materials[id] = mat.Copy()
	}
}

// DefaultSeed returns the built-in material master data.
func DefaultSeed() map[string]models.Material {
	return map[string]models.Material{
		"MAT001": {
			MaterialID:  "MAT001",
			Description: "Raw Material A",
			Type:        "RAW",
			BaseUnit:    "KG",
			PlantData: map[string]models.PlantStock{
				"PLANT_1": {StorageLocation: "A01", UnrestrictedStock: 1000.0},
			},
			Valuation: models.Valuation{
				StandardPrice: decimal.NewFromFloat(10.00),
				PriceUnit:     1,
				Currency:      "USD",
			},
		},
		"MAT002": {
			MaterialID:  "MAT002",
			Description: "Finished Product B",
			Type:        "FINISHED",
			BaseUnit:    "EA",
			PlantData: map[string]models.PlantStock{
				"PLANT_1": {StorageLocation: "A02", UnrestrictedStock: 500.0},
			},
			Valuation: models.Valuation{
				StandardPrice: decimal.NewFromFloat(25.00),
				PriceUnit:     1,
				Currency:      "USD",
			},
		},
	}
}

// CheckAvailability reports the unrestricted stock of a material at a plant.
// Read-only.
func (s *Service) CheckAvailability(ctx context.Context, materialID, plant string) models.Response {
	if materialID == "" || plant == "" {
		return models.ErrorResponse(models.CodeMatAvailInvalidInput, "Invalid material ID or plant code")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	mat, ok := s.materials[materialID]
	if !ok {
		return models.ErrorResponse(models.CodeMatAvailMaterialNotFound,
			fmt.Sprintf("Material %s not found", materialID))
	}

	stock, ok := mat.PlantData[plant]
	if !ok {
		return models.ErrorResponse(models.CodeMatAvailPlantNotFound,
			fmt.Sprintf("Material %s not configured for plant %s", materialID, plant))
	}

	log.Printf("Material availability checked: %s at %s", materialID, plant)

	return models.SuccessResponse(map[string]interface{}{
		"material_id":        materialID,
		"plant":              plant,
		"description":        mat.Description,
		"base_unit":          mat.BaseUnit,
		"unrestricted_stock": stock.UnrestrictedStock,
		"storage_location":   stock.StorageLocation,
		"valuation":          mat.Valuation,
	})
}

// CreateMaterialMaster inserts a new material record. Re-creation of an
// existing identifier is rejected, never merged.
func (s *Service) CreateMaterialMaster(ctx context.Context, mat models.Material) models.Response {
	if mat.MaterialID == "" {
		return models.ErrorResponse(models.CodeMatCreateMissingID, "Missing material ID")
	}

	var missing []string
	if mat.Description == "" {
		missing = append(missing, "description")
	}
	if mat.Type == "" {
		missing = append(missing, "type")
	}
	if mat.BaseUnit == "" {
		missing = append(missing, "base_unit")
	}
	if len(missing) > 0 {
		return models.ErrorResponseDetails(models.CodeMatCreateMissingFields,
			"Missing required fields", map[string]interface{}{"missing_fields": missing})
	}

	for plant, stock := range mat.PlantData {
		if _, ok := s.validPlants[plant]; !ok {
			return models.ErrorResponse(models.CodeMatCreateInvalidPlant,
				fmt.Sprintf("Invalid plant %s in plant_data", plant))
		}
		if stock.UnrestrictedStock < 0 {
			return models.ErrorResponse(models.CodeMatCreateNegativeStock,
				fmt.Sprintf("Negative unrestricted stock for plant %s", plant))
		}
	}

	record := mat.Copy()
	if len(record.PlantData) == 0 {
		record.PlantData = map[string]models.PlantStock{
			"PLANT_1": {StorageLocation: "A01", UnrestrictedStock: 0.0},
		}
	}
	if record.Valuation.Currency == "" {
		record.Valuation = models.Valuation{
			StandardPrice: decimal.Zero,
			PriceUnit:     1,
			Currency:      "USD",
		}
	}

	s.mu.Lock()
	if _, exists := s.materials[mat.MaterialID]; exists {
		s.mu.Unlock()
		return models.ErrorResponse(models.CodeMatCreateDuplicate,
			fmt.Sprintf("Material %s already exists", mat.MaterialID))
	}
	s.materials[mat.MaterialID] = record
	s.mu.Unlock()

	log.Printf("Material master created: %s", mat.MaterialID)

	return models.SuccessResponse(map[string]interface{}{
		"material_id": mat.MaterialID,
		"message":     "Material master created successfully",
	})
}

// Material returns a deep copy of a material record, for components that need
// master data without going through the availability contract.
func (s *Service) Material(materialID string) (models.Material, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	mat, ok := s.materials[materialID]
	if !ok {
		return models.Material{}, false
	}
	return mat.Copy(), true
}

// IsValidPlant reports whether a plant code belongs to the configured set.
func (s *Service) IsValidPlant(plant string) bool {
	_, ok := s.validPlants[plant]
	return ok
}

// Reset restores the ledger to its construction-time seed.
func (s *Service) Reset() {
	s.mu.Lock()
	s.loadSeed()
	s.mu.Unlock()
}
