package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/peakers/pos-api/internal/application/service"
	"github.com/peakers/pos-api/internal/presentation/http/dto/response"
	"github.com/peakers/pos-api/pkg/pagination"
)

// MaterialHandler handles material-related HTTP requests
type MaterialHandler struct {
	materialService *service.MaterialService
}

// NewMaterialHandler creates a new material handler
func NewMaterialHandler(materialService *service.MaterialService) *MaterialHandler {
	return &MaterialHandler{materialService: materialService}
}

// List handles listing materials
func (h *MaterialHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	materials, pg, err := h.materialService.ListMaterials(c.Request.Context(), *userID, PaginationFromQuery(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Materials retrieved successfully",
		pagination.NewPaginatedResult(materials, pg))
}

// Create handles creating a material
func (h *MaterialHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		SupplierID *uuid.UUID `json:"supplier_id"`
		Name       string     `json:"name" binding:"required"`
		Quantity   int        `json:"quantity" binding:"gte=0"`
		Cost       float64    `json:"cost" binding:"gte=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	material, err := h.materialService.CreateMaterial(c.Request.Context(), &service.CreateMaterialInput{
		UserID:     *userID,
		SupplierID: req.SupplierID,
		Name:       req.Name,
		Quantity:   req.Quantity,
		Cost:       req.Cost,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Material created successfully", material)
}

// Get handles retrieving a single material
func (h *MaterialHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid material ID")
		return
	}

	material, err := h.materialService.GetMaterial(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Material retrieved successfully", material)
}

// Update handles updating a material
func (h *MaterialHandler) Update(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid material ID")
		return
	}

	var req struct {
		SupplierID *uuid.UUID `json:"supplier_id"`
		Name       *string    `json:"name"`
		Quantity   *int       `json:"quantity"`
		Cost       *float64   `json:"cost"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	material, err := h.materialService.UpdateMaterial(c.Request.Context(), id, &service.UpdateMaterialInput{
		SupplierID: req.SupplierID,
		Name:       req.Name,
		Quantity:   req.Quantity,
		Cost:       req.Cost,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Material updated successfully", material)
}

// Adjust applies a signed quantity delta to a material
func (h *MaterialHandler) Adjust(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid material ID")
		return
	}

	var req struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	material, err := h.materialService.AdjustQuantity(c.Request.Context(), id, req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Material quantity adjusted successfully", material)
}

// Delete handles deleting a material
func (h *MaterialHandler) Delete(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid material ID")
		return
	}

	if err := h.materialService.DeleteMaterial(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
