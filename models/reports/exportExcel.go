package reports

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// BuildPeriodReportExcel renders the period report as a workbook:
// summary figures, expense categories, then the customer breakdown.
func BuildPeriodReportExcel(report *PeriodReportResponse) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Sheet1"
	if _, err := f.NewSheet(sheet); err != nil {
		return nil, err
	}

	f.SetCellValue(sheet, "A1", "Period")
	f.SetCellValue(sheet, "B1", report.StartDate+" - "+report.EndDate)

	summary := []struct {
		label string
		value string
	}{
		{"Purchases Kg", report.PurchasesKg.String()},
		{"Purchases Cost", report.PurchasesCost.String()},
		{"Sales Kg", report.SalesKg.String()},
		{"Sales Revenue", report.SalesRevenue.String()},
		{"Profit", report.Profit.String()},
		{"Cash Received", report.CashReceived.String()},
		{"Borrow", report.Borrow.String()},
		{"Expenses Total", report.ExpensesTotal.String()},
	}
	row := 3
	for _, s := range summary {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), s.label)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), s.value)
		row++
	}

	row++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Expense Category")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "Total")
	row++
	for _, c := range report.ExpensesByCategory {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), string(c.Category))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), c.Total.String())
		row++
	}

	row++
	headers := []string{"Customer", "Kg", "Revenue", "Profit", "Running Balance"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}
	row++
	for _, c := range report.CustomerBreakdown {
		values := []string{c.CustomerName, c.Kg.String(), c.Revenue.String(), c.Profit.String(), c.RunningBalance.String()}
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return nil, err
			}
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	return f, nil
}

// PeriodReportFilename returns a unique attachment name for a period
// report download.
func PeriodReportFilename() string {
	return fmt.Sprintf("period_report_%s.xlsx", uuid.NewString())
}
