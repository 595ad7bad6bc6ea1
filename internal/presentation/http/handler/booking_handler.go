package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rihlahq/rihla-api/internal/application/service"
	"github.com/rihlahq/rihla-api/internal/domain/repository"
	"github.com/rihlahq/rihla-api/internal/presentation/http/dto/request"
	"github.com/rihlahq/rihla-api/internal/presentation/http/dto/response"
	"github.com/rihlahq/rihla-api/pkg/pagination"
)

// BookingHandler handles booking HTTP requests, including the payment
// ledger sub-resource.
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// List handles listing bookings
func (h *BookingHandler) List(c *gin.Context) {
	var filter request.BookingFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.BookingFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		FullyPaid: filter.FullyPaid,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}

	if filter.ProgramID != "" {
		programID, err := uuid.Parse(filter.ProgramID)
		if err == nil {
			params.ProgramID = &programID
		}
	}

	result, err := h.bookingService.ListBookings(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Bookings retrieved successfully", result)
}

// Create handles creating a booking
func (h *BookingHandler) Create(c *gin.Context) {
	var req request.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	programID, err := uuid.Parse(req.ProgramID)
	if err != nil {
		response.BadRequest(c, "Invalid program ID")
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), &service.CreateBookingInput{
		ProgramID:      programID,
		CustomerName:   req.CustomerName,
		PassportNumber: req.PassportNumber,
		Phone:          req.Phone,
		PackageName:    req.PackageName,
		Selection:      req.Selection,
		SellingPrice:   req.SellingPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Booking created successfully", booking)
}

// Get handles getting a single booking
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Booking retrieved successfully", booking)
}

// Update handles updating a booking
func (h *BookingHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid booking ID")
		return
	}

	var req request.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	booking, err := h.bookingService.UpdateBooking(c.Request.Context(), &service.UpdateBookingInput{
		ID:             id,
		CustomerName:   req.CustomerName,
		PassportNumber: req.PassportNumber,
		Phone:          req.Phone,
		PackageName:    req.PackageName,
		Selection:      req.Selection,
		SellingPrice:   req.SellingPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Booking updated successfully", booking)
}

// Delete handles deleting a booking
func (h *BookingHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid booking ID")
		return
	}

	if err := h.bookingService.DeleteBooking(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// AddPayment handles appending a payment to the booking's ledger
func (h *BookingHandler) AddPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid booking ID")
		return
	}

	input, ok := bindPayment(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.AddPayment(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment added successfully", booking)
}

// UpdatePayment handles editing a payment in the booking's ledger
func (h *BookingHandler) UpdatePayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid booking ID")
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

	booking, err := h.bookingService.UpdatePayment(c.Request.Context(), id, paymentID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment updated successfully", booking)
}

// DeletePayment handles removing a payment from the booking's ledger
func (h *BookingHandler) DeletePayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid booking ID")
		return
	}
	paymentID, err := uuid.Parse(c.Param("payment_id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	booking, err := h.bookingService.DeletePayment(c.Request.Context(), id, paymentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment deleted successfully", booking)
}

// bindPayment binds and converts a payment request body. Returns false when
// the response has already been written.
func bindPayment(c *gin.Context) (*service.PaymentInput, bool) {
	var req request.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return nil, false
	}

	input := &service.PaymentInput{
		Amount:        req.Amount,
		Currency:      req.Currency,
		Method:        req.Method,
		ChequeNumber:  req.ChequeNumber,
		BankName:      req.BankName,
		ChequeDueDate: req.ChequeDueDate,
		Note:          req.Note,
	}
	if req.PaidAt != nil {
		input.PaidAt = *req.PaidAt
	}
	return input, true
}
