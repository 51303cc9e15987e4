package models

import "github.com/shopspring/decimal"

// PlantStock holds per-plant stock data for a material.
type PlantStock struct {
	StorageLocation   string  `json:"storage_location"`
	UnrestrictedStock float64 `json:"unrestricted_stock"`
}

// Valuation carries the accounting view of a material. Prices are decimals,
// never floats.
type Valuation struct {
	StandardPrice decimal.Decimal `json:"standard_price"`
	PriceUnit     int             `json:"price_unit"`
	Currency      string          `json:"currency"`
}

// Material is a material master record. PlantData maps plant code to the
// stock kept at that plant.
type Material struct {
	MaterialID  string                `json:"material_id"`
	Description string                `json:"description"`
	Type        string                `json:"type"`
	BaseUnit    string                `json:"base_unit"`
	PlantData   map[string]PlantStock `json:"plant_data"`
	Valuation   Valuation             `json:"valuation_data"`
}

// Copy returns a deep copy so ledger snapshots never alias internal state.
func (m Material) Copy() Material {
	out := m
	out.PlantData = make(map[string]PlantStock, len(m.PlantData))
	for plant, stock := range m.PlantData {
		out.PlantData[plant] = stock
	}
	return out
}
