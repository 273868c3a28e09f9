package domain

import (
	"time"

	"github.com/google/uuid"
)

type Material struct {
	ID                uuid.UUID  `json:"id" db:"material_id"`
	ProjectID         uuid.UUID  `json:"project_id" db:"project_id"`
	Name              string     `json:"name" db:"name"`
	Unit              string     `json:"unit" db:"unit"`
	Quantity          float64    `json:"quantity" db:"quantity"`
	LowStockThreshold float64    `json:"low_stock_threshold" db:"low_stock_threshold"`
	UnitCost          *float64   `json:"unit_cost,omitempty" db:"unit_cost"`
	Supplier          *string    `json:"supplier,omitempty" db:"supplier"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt         *time.Time `json:"-" db:"deleted_at"`
}

// IsLowStock reports whether the quantity has crossed the low-stock threshold.
func (m *Material) IsLowStock() bool {
	return m.Quantity <= m.LowStockThreshold
}

// IsOutOfStock reports whether the material is fully depleted.
func (m *Material) IsOutOfStock() bool {
	return m.Quantity <= 0
}

type CreateMaterialInput struct {
	Name              string   `json:"name" validate:"required,min=2"`
	Unit              string   `json:"unit" validate:"required"`
	Quantity          float64  `json:"quantity" validate:"gte=0"`
	LowStockThreshold float64  `json:"low_stock_threshold" validate:"gte=0"`
	UnitCost          *float64 `json:"unit_cost,omitempty"`
	Supplier          *string  `json:"supplier,omitempty"`
}

type UpdateMaterialInput struct {
	Name              *string  `json:"name,omitempty" validate:"omitempty,min=2"`
	Unit              *string  `json:"unit,omitempty"`
	LowStockThreshold *float64 `json:"low_stock_threshold,omitempty" validate:"omitempty,gte=0"`
	UnitCost          *float64 `json:"unit_cost,omitempty"`
	Supplier          **string `json:"supplier,omitempty"`
}

type AdjustStockInput struct {
	// Delta is added to the current quantity; negative values consume stock.
	Delta float64 `json:"delta" validate:"required"`
}
