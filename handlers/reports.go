package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/poultrytrade/ledger_backend/models"
	"github.com/poultrytrade/ledger_backend/models/reports"
)

func DailyReport(c *gin.Context) {
	date, ok := queryDate(c, "date")
	if !ok {
		return
	}
	report, err := reports.GetDailyReport(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func PeriodReport(c *gin.Context) {
	start, end, ok := queryDateRange(c)
	if !ok {
		return
	}
	report, err := reports.GetPeriodReport(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// PeriodReportExcel streams the period report as an xlsx download.
func PeriodReportExcel(c *gin.Context) {
	start, end, ok := queryDateRange(c)
	if !ok {
		return
	}
	report, err := reports.GetPeriodReport(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	file, err := reports.BuildPeriodReportExcel(report)
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+reports.PeriodReportFilename()+`"`)
	if err := file.Write(c.Writer); err != nil {
		respondError(c, err)
	}
}

func ExpenseReport(c *gin.Context) {
	start, end, ok := queryDateRange(c)
	if !ok {
		return
	}
	var category *models.ExpenseCategory
	if raw := c.Query("category"); raw != "" {
		cat := models.ExpenseCategory(raw)
		if !cat.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense category"})
			return
		}
		category = &cat
	}
	report, err := reports.GetExpenseReport(c.Request.Context(), start, end, category)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func CustomerReport(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	start, end, ok := queryDateRange(c)
	if !ok {
		return
	}
	report, err := reports.GetCustomerReport(c.Request.Context(), id, start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func SalesAnalyticsReport(c *gin.Context) {
	start, end, ok := queryDateRange(c)
	if !ok {
		return
	}
	report, err := reports.GetSalesAnalytics(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
