package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/peakers/pos-api/internal/application/service"
	"github.com/peakers/pos-api/internal/domain/repository"
	"github.com/peakers/pos-api/internal/presentation/http/dto/request"
	"github.com/peakers/pos-api/internal/presentation/http/dto/response"
	"github.com/peakers/pos-api/pkg/pagination"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create handles creating a product or bundle
func (h *ProductHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.CreateProductInput{
		UserID:      *userID,
		CategoryID:  req.CategoryID,
		Number:      req.Number,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		StockAlert:  req.StockAlert,
		IsBundle:    req.IsBundle,
	}
	for _, comp := range req.Components {
		input.Components = append(input.Components, service.BundleComponentInput{
			ComponentID: comp.ComponentID,
			Quantity:    comp.Quantity,
		})
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Get handles retrieving a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	params := &repository.ProductFilterParams{
		Pagination: PaginationFromQuery(c),
		Search:     c.Query("search"),
		LowStock:   c.Query("low_stock") == "true",
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}
	if categoryIDStr := c.Query("category_id"); categoryIDStr != "" {
		if categoryID, err := uuid.Parse(categoryIDStr); err == nil {
			params.CategoryID = &categoryID
		}
	}

	products, pg, err := h.productService.ListProducts(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully",
		pagination.NewPaginatedResult(products, pg))
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, &service.UpdateProductInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		StockAlert:  req.StockAlert,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// LowStock lists products at or below their alert level
func (h *ProductHandler) LowStock(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	products, err := h.productService.GetLowStock(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock products retrieved successfully", products)
}

// CreateCategory handles creating a category
func (h *ProductHandler) CreateCategory(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	category, err := h.productService.CreateCategory(c.Request.Context(), *userID, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Category created successfully", category)
}

// ListCategories handles listing categories
func (h *ProductHandler) ListCategories(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	categories, pg, err := h.productService.ListCategories(c.Request.Context(), *userID, PaginationFromQuery(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Categories retrieved successfully",
		pagination.NewPaginatedResult(categories, pg))
}

// DeleteCategory handles deleting a category
func (h *ProductHandler) DeleteCategory(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.productService.DeleteCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
