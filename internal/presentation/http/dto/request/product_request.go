package request

import "github.com/google/uuid"

// BundleComponentRequest is one component line of a bundle definition
type BundleComponentRequest struct {
	ComponentID uuid.UUID `json:"component_id" binding:"required"`
	Quantity    int       `json:"quantity" binding:"required,min=1"`
}

// CreateProductRequest is the create product payload. Price is a decimal
// amount; it is converted to cents at the boundary.
type CreateProductRequest struct {
	CategoryID  *uuid.UUID               `json:"category_id"`
	Number      string                   `json:"number" binding:"required"`
	Name        string                   `json:"name" binding:"required"`
	Description *string                  `json:"description"`
	Price       float64                  `json:"price" binding:"required,gte=0"`
	Stock       int                      `json:"stock" binding:"gte=0"`
	StockAlert  int                      `json:"stock_alert" binding:"gte=0"`
	IsBundle    bool                     `json:"is_bundle"`
	Components  []BundleComponentRequest `json:"components"`
}

// UpdateProductRequest is the update product payload
type UpdateProductRequest struct {
	CategoryID  *uuid.UUID `json:"category_id"`
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Price       *float64   `json:"price"`
	Stock       *int       `json:"stock"`
	StockAlert  *int       `json:"stock_alert"`
}

// CreateCategoryRequest is the create category payload
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}
