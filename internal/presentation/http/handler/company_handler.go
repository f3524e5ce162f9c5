package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/peakers/pos-api/internal/application/service"
	"github.com/peakers/pos-api/internal/presentation/http/dto/response"
)

// CompanyHandler exposes the merchant details for receipt headers
type CompanyHandler struct {
	companyService *service.CompanyService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyService *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// Get returns the authenticated user's company details
func (h *CompanyHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	details, err := h.companyService.GetCompany(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Company details retrieved successfully", details)
}

// Update updates the authenticated user's company details
func (h *CompanyHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Name    *string `json:"company"`
		Phone   *string `json:"company_phone"`
		Address *string `json:"company_address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	details, err := h.companyService.UpdateCompany(c.Request.Context(), *userID, &service.UpdateCompanyInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Company details updated successfully", details)
}
