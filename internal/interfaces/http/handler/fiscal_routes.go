package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/propdesk/backend/internal/interfaces/http/router"
)

// FiscalRoutes creates the route group for the fiscal endpoints
func FiscalRoutes(records *FiscalRecordHandler, reports *FiscalReportHandler, mw ...gin.HandlerFunc) *router.DomainGroup {
	group := router.NewDomainGroup("fiscal", "/fiscal")
	group.Use(mw...)

	group.POST("/amounts", records.ComputeAmounts)

	group.POST("/records", records.Create)
	group.GET("/records", records.List)
	group.GET("/records/:id", records.Get)
	group.PUT("/records/:id", records.Update)
	group.POST("/records/:id/credit-notes", records.CreateCreditNote)
	group.POST("/records/:id/status", records.ChangeStatus)

	group.GET("/ledgers/:book", reports.Ledger)
	group.GET("/ledgers/:book/export", reports.ExportLedger)

	group.GET("/reports/owner-summary", reports.OwnerSummary)
	group.GET("/reports/liquidation", reports.Liquidation)
	group.GET("/reports/annual-statistics", reports.AnnualStatistics)

	return group
}
