package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/peakers/pos-api/internal/application/service"
	"github.com/peakers/pos-api/internal/presentation/http/dto/response"
	"github.com/peakers/pos-api/pkg/pagination"
)

// ExpenseHandler handles expense-related HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// List handles listing expenses
func (h *ExpenseHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	expenses, pg, err := h.expenseService.ListExpenses(c.Request.Context(), *userID, PaginationFromQuery(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Expenses retrieved successfully",
		pagination.NewPaginatedResult(expenses, pg))
}

// Create handles recording an expense
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Name        string     `json:"name" binding:"required"`
		Description *string    `json:"description"`
		Amount      float64    `json:"amount" binding:"required,gte=0"`
		IncurredAt  *time.Time `json:"incurred_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), &service.CreateExpenseInput{
		UserID:      *userID,
		Name:        req.Name,
		Description: req.Description,
		Amount:      req.Amount,
		IncurredAt:  req.IncurredAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Expense recorded successfully", expense)
}

// Get handles retrieving a single expense
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	expense, err := h.expenseService.GetExpense(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense retrieved successfully", expense)
}

// Delete handles deleting an expense
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
