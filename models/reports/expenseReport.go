package reports

import (
	"context"
	"sort"
	"time"

	"github.com/poultrytrade/ledger_backend/models"
	"github.com/poultrytrade/ledger_backend/utils"
	"github.com/shopspring/decimal"
)

type DateTotal struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

type ExpenseReportResponse struct {
	StartDate   string                  `json:"start_date,omitempty"`
	EndDate     string                  `json:"end_date,omitempty"`
	Category    *models.ExpenseCategory `json:"category,omitempty"`
	TotalAmount decimal.Decimal         `json:"total_amount"`
	ByCategory  []CategoryTotal         `json:"by_category"`
	ByDate      []DateTotal             `json:"by_date"`
}

func computeExpenseReport(expenses []*models.Expense) (decimal.Decimal, []CategoryTotal, []DateTotal) {
	total := models.ZeroAmount
	byDate := map[string]decimal.Decimal{}
	for _, e := range expenses {
		total = total.Add(e.Amount)
		key := e.Date.Format(utils.DateLayout)
		current, ok := byDate[key]
		if !ok {
			current = models.ZeroAmount
		}
		byDate[key] = current.Add(e.Amount)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	dateTotals := make([]DateTotal, 0, len(dates))
	for _, d := range dates {
		dateTotals = append(dateTotals, DateTotal{Date: d, Total: byDate[d]})
	}

	return total, expensesByCategory(expenses), dateTotals
}

// GetExpenseReport builds the expense report; the date range and
// category filter are both optional.
func GetExpenseReport(ctx context.Context, start, end *time.Time, category *models.ExpenseCategory) (*ExpenseReportResponse, error) {
	if category != nil && !category.Valid() {
		return nil, utils.NewValidationError("invalid expense category")
	}

	expenses, err := models.FindExpenses(ctx, start, end, category)
	if err != nil {
		return nil, err
	}

	total, byCategory, byDate := computeExpenseReport(expenses)

	report := &ExpenseReportResponse{
		Category:    category,
		TotalAmount: total,
		ByCategory:  byCategory,
		ByDate:      byDate,
	}
	if start != nil {
		report.StartDate = utils.DateOnly(*start).Format(utils.DateLayout)
	}
	if end != nil {
		report.EndDate = utils.DateOnly(*end).Format(utils.DateLayout)
	}
	return report, nil
}
