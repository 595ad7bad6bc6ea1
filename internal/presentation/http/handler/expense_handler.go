package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rihlahq/rihla-api/internal/application/service"
	"github.com/rihlahq/rihla-api/internal/presentation/http/dto/request"
	"github.com/rihlahq/rihla-api/internal/presentation/http/dto/response"
	"github.com/rihlahq/rihla-api/pkg/pagination"
)

// ExpenseHandler handles expense HTTP requests, including the payment
// ledger sub-resource.
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// List handles listing expenses
func (h *ExpenseHandler) List(c *gin.Context) {
	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	search := c.Query("search")

	result, err := h.expenseService.ListExpenses(c.Request.Context(), params, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Expenses retrieved successfully", result)
}

// Create handles creating an expense
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req request.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), &service.CreateExpenseInput{
		Title:    req.Title,
		Category: req.Category,
		Amount:   req.Amount,
		Notes:    req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Expense created successfully", expense)
}

// Get handles getting a single expense
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
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

// Update handles updating an expense
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	var req request.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), &service.UpdateExpenseInput{
		ID:       id,
		Title:    req.Title,
		Category: req.Category,
		Amount:   req.Amount,
		Notes:    req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense updated successfully", expense)
}

// Delete handles deleting an expense
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// AddPayment handles appending a payment to the expense's ledger
func (h *ExpenseHandler) AddPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	input, ok := bindPayment(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.AddPayment(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment added successfully", expense)
}

// UpdatePayment handles editing a payment in the expense's ledger
func (h *ExpenseHandler) UpdatePayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid expense ID")
		return
	}
	paymentID, err := uuid.Parse(c.Param("payment_id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	input, ok := bindPayment(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.UpdatePayment(c.Request.Context(), id, paymentID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment updated successfully", expense)
}

// DeletePayment handles removing a payment from the expense's ledger
func (h *ExpenseHandler) DeletePayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid expense ID")
		return
	}
	paymentID, err := uuid.Parse(c.Param("payment_id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	expense, err := h.expenseService.DeletePayment(c.Request.Context(), id, paymentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment deleted successfully", expense)
}
