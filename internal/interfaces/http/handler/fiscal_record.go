package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	fiscalapp "github.com/propdesk/backend/internal/application/fiscal"
	"github.com/propdesk/backend/internal/domain/fiscal"
	"github.com/propdesk/backend/internal/domain/shared"
)

// RecordService is the record lifecycle as the HTTP layer uses it
type RecordService interface {
	ComputeFiscalAmounts(req fiscalapp.ComputeAmountsRequest) (fiscal.FiscalAmounts, error)
	CreateRecord(ctx context.Context, req fiscalapp.CreateRecordRequest) (*fiscalapp.RecordResponse, error)
	UpdateRecord(ctx context.Context, id uuid.UUID, req fiscalapp.UpdateRecordRequest) (*fiscalapp.RecordResponse, error)
	CreateCreditNote(ctx context.Context, originalID uuid.UUID, req fiscalapp.CreateCreditNoteRequest) (*fiscalapp.RecordResponse, error)
	ChangeStatus(ctx context.Context, id uuid.UUID, req fiscalapp.ChangeStatusRequest) (*fiscalapp.RecordResponse, error)
	GetRecord(ctx context.Context, id uuid.UUID) (*fiscalapp.RecordResponse, error)
	ListRecords(ctx context.Context, filter fiscalapp.RecordListFilter) ([]fiscalapp.RecordResponse, int64, error)
}

// FiscalRecordHandler handles issued invoices, received invoices, expenses
// and their credit notes.
type FiscalRecordHandler struct {
	BaseHandler
	service RecordService
}

// NewFiscalRecordHandler creates a new FiscalRecordHandler
func NewFiscalRecordHandler(service RecordService) *FiscalRecordHandler {
	return &FiscalRecordHandler{service: service}
}

// ComputeAmounts previews base, VAT, withholding and total without saving
// @Summary      Compute fiscal amounts
// @Description  Preview base, VAT, withholding and total for the given inputs, prorated by days when proportional
// @Tags         fiscal-records
// @Accept       json
// @Produce      json
// @Param        request body fiscalapp.ComputeAmountsRequest true "Amount inputs"
// @Success      200 {object} dto.Response{data=fiscal.FiscalAmounts}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /fiscal/amounts [post]
func (h *FiscalRecordHandler) ComputeAmounts(c *gin.Context) {
	var req fiscalapp.ComputeAmountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	amounts, err := h.service.ComputeFiscalAmounts(req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, amounts)
}

// Create creates a fiscal record
// @Summary      Create fiscal record
// @Description  Create an issued invoice, received invoice or expense. Proportional records and split owners are expanded into one record per owner
// @Tags         fiscal-records
// @Accept       json
// @Produce      json
// @Param        request body fiscalapp.CreateRecordRequest true "Record details"
// @Success      201 {object} dto.Response{data=fiscalapp.RecordResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /fiscal/records [post]
func (h *FiscalRecordHandler) Create(c *gin.Context) {
	var req fiscalapp.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	record, err := h.service.CreateRecord(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, record)
}

// Get returns one record
// @Summary      Get fiscal record by ID
// @Description  Retrieve a fiscal record by its ID
// @Tags         fiscal-records
// @Produce      json
// @Param        id path string true "Record ID" format(uuid)
// @Success      200 {object} dto.Response{data=fiscalapp.RecordResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /fiscal/records/{id} [get]
func (h *FiscalRecordHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	record, err := h.service.GetRecord(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// List returns a page of records
// @Summary      List fiscal records
// @Description  Retrieve a paginated list of fiscal records with filtering
// @Tags         fiscal-records
// @Produce      json
// @Param        kind query string false "Record kind" Enums(ISSUED, RECEIVED, EXPENSE)
// @Param        status query string false "Status" Enums(PENDING, COLLECTED, PAID, DISPUTED)
// @Param        property_id query string false "Property ID" format(uuid)
// @Param        owner_id query string false "Owner ID" format(uuid)
// @Param        is_credit_note query boolean false "Credit notes only"
// @Param        from_date query string false "From date" format(date)
// @Param        to_date query string false "To date" format(date)
// @Param        order_by query string false "Order by field" default(record_date)
// @Param        order_dir query string false "Order direction" Enums(asc, desc)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]fiscalapp.RecordResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /fiscal/records [get]
func (h *FiscalRecordHandler) List(c *gin.Context) {
	var filter fiscalapp.RecordListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindError(c, err)
		return
	}

	records, total, err := h.service.ListRecords(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	defaults := shared.DefaultFilter()
	page, pageSize := filter.Page, filter.PageSize
	if page <= 0 {
		page = defaults.Page
	}
	if pageSize <= 0 {
		pageSize = defaults.PageSize
	}
	h.SuccessWithMeta(c, records, total, page, pageSize)
}

// Update applies a partial update; absent fields are unchanged
// @Summary      Update fiscal record
// @Description  Partially update a fiscal record and recompute its amounts
// @Tags         fiscal-records
// @Accept       json
// @Produce      json
// @Param        id path string true "Record ID" format(uuid)
// @Param        request body fiscalapp.UpdateRecordRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=fiscalapp.RecordResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /fiscal/records/{id} [put]
func (h *FiscalRecordHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req fiscalapp.UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	record, err := h.service.UpdateRecord(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// CreateCreditNote reverses a record with a negated credit note
// @Summary      Create credit note
// @Description  Issue a credit note negating the amounts of an existing record
// @Tags         fiscal-records
// @Accept       json
// @Produce      json
// @Param        id path string true "Record ID" format(uuid)
// @Param        request body fiscalapp.CreateCreditNoteRequest false "Credit note details"
// @Success      201 {object} dto.Response{data=fiscalapp.RecordResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /fiscal/records/{id}/credit-notes [post]
func (h *FiscalRecordHandler) CreateCreditNote(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req fiscalapp.CreateCreditNoteRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.HandleBindError(c, err)
			return
		}
	}

	record, err := h.service.CreateCreditNote(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, record)
}

// ChangeStatus collects, pays, disputes or reopens a record
// @Summary      Change record status
// @Description  Collect, pay, dispute or reopen a fiscal record
// @Tags         fiscal-records
// @Accept       json
// @Produce      json
// @Param        id path string true "Record ID" format(uuid)
// @Param        request body fiscalapp.ChangeStatusRequest true "Status action"
// @Success      200 {object} dto.Response{data=fiscalapp.RecordResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /fiscal/records/{id}/status [post]
func (h *FiscalRecordHandler) ChangeStatus(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req fiscalapp.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	record, err := h.service.ChangeStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}
