package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rihlahq/rihla-api/internal/application/service"
	"github.com/rihlahq/rihla-api/internal/presentation/http/dto/response"
	"github.com/xuri/excelize/v2"
)

// TransferHandler handles spreadsheet export and import HTTP requests
type TransferHandler struct {
	transferService *service.TransferService
	maxUploadSize   int64
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(transferService *service.TransferService, maxUploadSize int64) *TransferHandler {
	return &TransferHandler{
		transferService: transferService,
		maxUploadSize:   maxUploadSize,
	}
}

// ExportTemplate streams the booking template workbook built from the
// tenant's current catalog
func (h *TransferHandler) ExportTemplate(c *gin.Context) {
	f, err := h.transferService.ExportTemplate(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="bookings-template.xlsx"`)
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

// Import parses an uploaded template and creates bookings from its rows
func (h *TransferHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "A file upload named 'file' is required")
		return
	}
	if fileHeader.Size > h.maxUploadSize {
		response.BadRequest(c, "File exceeds the maximum upload size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Could not read uploaded file")
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		response.BadRequest(c, "Uploaded file is not a valid workbook")
		return
	}
	defer f.Close()

	summary, err := h.transferService.Import(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Import completed", summary)
}
