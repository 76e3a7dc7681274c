package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	fiscalapp "github.com/propdesk/backend/internal/application/fiscal"
	"github.com/propdesk/backend/internal/domain/fiscal"
)

// ReportLocationHeader carries the archive URL of an exported book
const ReportLocationHeader = "X-Report-Location"

// ReportService is the reporting surface as the HTTP layer uses it
type ReportService interface {
	GenerateLedger(ctx context.Context, book fiscal.BookType, period fiscal.PeriodFilter) (*fiscal.Ledger, error)
	GenerateOwnerSummary(ctx context.Context, period fiscal.PeriodFilter) (*fiscal.OwnerSummaryReport, error)
	GenerateLiquidation(ctx context.Context, period fiscal.PeriodFilter) (*fiscalapp.LiquidationReport, error)
	GenerateAnnualStatistics(ctx context.Context, year int) (*fiscal.AnnualStatistics, error)
	ExportLedger(ctx context.Context, book fiscal.BookType, period fiscal.PeriodFilter) (*fiscalapp.ExportResult, error)
}

// PeriodQuery selects a year, optionally narrowed to a quarter or a month
type PeriodQuery struct {
	Year    int  `form:"year" binding:"required"`
	Quarter *int `form:"quarter"`
	Month   *int `form:"month"`
}

// ToFilter converts the query to a domain period filter
func (q PeriodQuery) ToFilter() fiscal.PeriodFilter {
	return fiscal.PeriodFilter{Year: q.Year, Quarter: q.Quarter, Month: q.Month}
}

// YearQuery selects a calendar year
type YearQuery struct {
	Year int `form:"year" binding:"required"`
}

// FiscalReportHandler serves VAT books, owner summaries, liquidations and
// annual statistics.
type FiscalReportHandler struct {
	BaseHandler
	service ReportService
}

// NewFiscalReportHandler creates a new FiscalReportHandler
func NewFiscalReportHandler(service ReportService) *FiscalReportHandler {
	return &FiscalReportHandler{service: service}
}

// Ledger returns the charged or supported VAT book
// @Summary      Get VAT book
// @Description  Build the VAT charged or VAT supported book for a period
// @Tags         fiscal-reports
// @Produce      json
// @Param        book path string true "VAT book" Enums(charged, supported)
// @Param        year query int true "Year"
// @Param        quarter query int false "Quarter" minimum(1) maximum(4)
// @Param        month query int false "Month" minimum(1) maximum(12)
// @Success      200 {object} dto.Response{data=fiscal.Ledger}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /fiscal/ledgers/{book} [get]
func (h *FiscalReportHandler) Ledger(c *gin.Context) {
	book := fiscal.BookType(strings.ToUpper(c.Param("book")))
	var q PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.HandleBindError(c, err)
		return
	}

	ledger, err := h.service.GenerateLedger(c.Request.Context(), book, q.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ledger)
}

// ExportLedger downloads the VAT book as a workbook
// @Summary      Export VAT book
// @Description  Download the VAT book as an Excel workbook. The archive URL is returned in X-Report-Location when archiving is enabled
// @Tags         fiscal-reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        book path string true "VAT book" Enums(charged, supported)
// @Param        year query int true "Year"
// @Param        quarter query int false "Quarter" minimum(1) maximum(4)
// @Param        month query int false "Month" minimum(1) maximum(12)
// @Success      200 {file} file
// @Header       200 {string} X-Report-Location "Archive URL"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /fiscal/ledgers/{book}/export [get]
func (h *FiscalReportHandler) ExportLedger(c *gin.Context) {
	book := fiscal.BookType(strings.ToUpper(c.Param("book")))
	var q PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.HandleBindError(c, err)
		return
	}

	result, err := h.service.ExportLedger(c.Request.Context(), book, q.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if result.Location != "" {
		c.Header(ReportLocationHeader, result.Location)
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

// OwnerSummary distributes the period's records among co-owners
// @Summary      Get owner summary
// @Description  Distribute the period's income, expenses and VAT among co-owners by ownership share
// @Tags         fiscal-reports
// @Produce      json
// @Param        year query int true "Year"
// @Param        quarter query int false "Quarter" minimum(1) maximum(4)
// @Param        month query int false "Month" minimum(1) maximum(12)
// @Success      200 {object} dto.Response{data=fiscal.OwnerSummaryReport}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /fiscal/reports/owner-summary [get]
func (h *FiscalReportHandler) OwnerSummary(c *gin.Context) {
	var q PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.HandleBindError(c, err)
		return
	}

	report, err := h.service.GenerateOwnerSummary(c.Request.Context(), q.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// Liquidation settles charged against deductible VAT for the period
// @Summary      Get VAT liquidation
// @Description  Settle VAT charged against deductible VAT supported for a period
// @Tags         fiscal-reports
// @Produce      json
// @Param        year query int true "Year"
// @Param        quarter query int false "Quarter" minimum(1) maximum(4)
// @Param        month query int false "Month" minimum(1) maximum(12)
// @Success      200 {object} dto.Response{data=fiscalapp.LiquidationReport}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /fiscal/reports/liquidation [get]
func (h *FiscalReportHandler) Liquidation(c *gin.Context) {
	var q PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.HandleBindError(c, err)
		return
	}

	report, err := h.service.GenerateLiquidation(c.Request.Context(), q.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// AnnualStatistics returns the quarterly breakdown of a year
// @Summary      Get annual statistics
// @Description  Quarterly breakdown of income, expenses and VAT for a year
// @Tags         fiscal-reports
// @Produce      json
// @Param        year query int true "Year"
// @Success      200 {object} dto.Response{data=fiscal.AnnualStatistics}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /fiscal/reports/annual-statistics [get]
func (h *FiscalReportHandler) AnnualStatistics(c *gin.Context) {
	var q YearQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.HandleBindError(c, err)
		return
	}

	stats, err := h.service.GenerateAnnualStatistics(c.Request.Context(), q.Year)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
