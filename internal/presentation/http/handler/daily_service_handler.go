package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rihlahq/rihla-api/internal/application/service"
	"github.com/rihlahq/rihla-api/internal/presentation/http/dto/request"
	"github.com/rihlahq/rihla-api/internal/presentation/http/dto/response"
	"github.com/rihlahq/rihla-api/pkg/pagination"
)

// DailyServiceHandler handles daily service HTTP requests, including the
// payment ledger sub-resource.
type DailyServiceHandler struct {
	dailyServiceService *service.DailyServiceService
}

// NewDailyServiceHandler creates a new daily service handler
func NewDailyServiceHandler(dailyServiceService *service.DailyServiceService) *DailyServiceHandler {
	return &DailyServiceHandler{dailyServiceService: dailyServiceService}
}

// List handles listing daily services
func (h *DailyServiceHandler) List(c *gin.Context) {
	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	search := c.Query("search")

	result, err := h.dailyServiceService.ListDailyServices(c.Request.Context(), params, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Daily services retrieved successfully", result)
}

// Create handles creating a daily service
func (h *DailyServiceHandler) Create(c *gin.Context) {
	var req request.CreateDailyServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	svc, err := h.dailyServiceService.CreateDailyService(c.Request.Context(), &service.CreateDailyServiceInput{
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		ServiceDate:  req.ServiceDate,
		Items:        req.Items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Daily service created successfully", svc)
}

// Get handles getting a single daily service
func (h *DailyServiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	svc, err := h.dailyServiceService.GetDailyService(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily service retrieved successfully", svc)
}

// Update handles updating a daily service
func (h *DailyServiceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	var req request.UpdateDailyServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	svc, err := h.dailyServiceService.UpdateDailyService(c.Request.Context(), &service.UpdateDailyServiceInput{
		ID:           id,
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		ServiceDate:  req.ServiceDate,
		Items:        req.Items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily service updated successfully", svc)
}

// Delete handles deleting a daily service
func (h *DailyServiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	if err := h.dailyServiceService.DeleteDailyService(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// AddPayment handles appending a payment to the service's ledger
func (h *DailyServiceHandler) AddPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	input, ok := bindPayment(c)
	if !ok {
		return
	}

	svc, err := h.dailyServiceService.AddPayment(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment added successfully", svc)
}

// UpdatePayment handles editing a payment in the service's ledger
func (h *DailyServiceHandler) UpdatePayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid service ID")
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

	svc, err := h.dailyServiceService.UpdatePayment(c.Request.Context(), id, paymentID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment updated successfully", svc)
}

// DeletePayment handles removing a payment from the service's ledger
func (h *DailyServiceHandler) DeletePayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid service ID")
		return
	}
	paymentID, err := uuid.Parse(c.Param("payment_id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	svc, err := h.dailyServiceService.DeletePayment(c.Request.Context(), id, paymentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment deleted successfully", svc)
}
