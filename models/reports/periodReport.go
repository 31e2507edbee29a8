package reports

import (
	"context"
	"time"

	"github.com/poultrytrade/ledger_backend/models"
	"github.com/poultrytrade/ledger_backend/utils"
	"github.com/shopspring/decimal"
)

type CategoryTotal struct {
	Category models.ExpenseCategory `json:"category"`
	Total    decimal.Decimal        `json:"total"`
}

type CustomerPeriodBreakdown struct {
	CustomerId     int             `json:"customer_id"`
	CustomerName   string          `json:"customer_name"`
	Kg             decimal.Decimal `json:"kg"`
	Revenue        decimal.Decimal `json:"revenue"`
	Profit         decimal.Decimal `json:"profit"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}

type PeriodReportResponse struct {
	StartDate          string                    `json:"start_date"`
	EndDate            string                    `json:"end_date"`
	PurchasesKg        decimal.Decimal           `json:"purchases_kg"`
	PurchasesCost      decimal.Decimal           `json:"purchases_cost"`
	SalesKg            decimal.Decimal           `json:"sales_kg"`
	SalesRevenue       decimal.Decimal           `json:"sales_revenue"`
	Profit             decimal.Decimal           `json:"profit"`
	CashReceived       decimal.Decimal           `json:"cash_received"`
	Borrow             decimal.Decimal           `json:"borrow"`
	ExpensesTotal      decimal.Decimal           `json:"expenses_total"`
	ExpensesByCategory []CategoryTotal           `json:"expenses_by_category"`
	CustomerBreakdown  []CustomerPeriodBreakdown `json:"customer_breakdown"`
}

// expensesByCategory lists every category, zero-filled when absent.
func expensesByCategory(expenses []*models.Expense) []CategoryTotal {
	totals := make([]CategoryTotal, 0, len(models.ExpenseCategories()))
	index := map[models.ExpenseCategory]int{}
	for _, category := range models.ExpenseCategories() {
		index[category] = len(totals)
		totals = append(totals, CategoryTotal{Category: category, Total: models.ZeroAmount})
	}
	for _, e := range expenses {
		if idx, ok := index[e.Category]; ok {
			totals[idx].Total = totals[idx].Total.Add(e.Amount)
		}
	}
	return totals
}

func computePeriodReport(start, end time.Time, purchases []*models.Purchase, sales []*models.Sale,
	expenses []*models.Expense, runningBalances map[int]decimal.Decimal) *PeriodReportResponse {

	report := &PeriodReportResponse{
		StartDate:         start.Format(utils.DateLayout),
		EndDate:           end.Format(utils.DateLayout),
		PurchasesKg:       models.ZeroAmount,
		PurchasesCost:     models.ZeroAmount,
		SalesKg:           models.ZeroAmount,
		SalesRevenue:      models.ZeroAmount,
		Profit:            models.ZeroAmount,
		CashReceived:      models.ZeroAmount,
		ExpensesTotal:     models.ZeroAmount,
		CustomerBreakdown: []CustomerPeriodBreakdown{},
	}

	for _, p := range purchases {
		report.PurchasesKg = report.PurchasesKg.Add(p.Kg)
		report.PurchasesCost = report.PurchasesCost.Add(p.TotalCost())
	}

	customerIndex := map[int]int{}
	for _, s := range sales {
		report.SalesKg = report.SalesKg.Add(s.Kg)
		report.SalesRevenue = report.SalesRevenue.Add(s.TotalAmount())
		report.CashReceived = report.CashReceived.Add(s.AmountReceived)
		report.Profit = report.Profit.Add(s.Profit())

		idx, ok := customerIndex[s.CustomerId]
		if !ok {
			idx = len(report.CustomerBreakdown)
			customerIndex[s.CustomerId] = idx
			name := ""
			if s.Customer != nil {
				name = s.Customer.Name
			}
			balance := models.ZeroAmount
			if b, ok := runningBalances[s.CustomerId]; ok {
				balance = b
			}
			report.CustomerBreakdown = append(report.CustomerBreakdown, CustomerPeriodBreakdown{
				CustomerId:     s.CustomerId,
				CustomerName:   name,
				Kg:             models.ZeroAmount,
				Revenue:        models.ZeroAmount,
				Profit:         models.ZeroAmount,
				RunningBalance: balance,
			})
		}
		report.CustomerBreakdown[idx].Kg = report.CustomerBreakdown[idx].Kg.Add(s.Kg)
		report.CustomerBreakdown[idx].Revenue = report.CustomerBreakdown[idx].Revenue.Add(s.TotalAmount())
		report.CustomerBreakdown[idx].Profit = report.CustomerBreakdown[idx].Profit.Add(s.Profit())
	}
	report.Borrow = report.SalesRevenue.Sub(report.CashReceived)

	for _, e := range expenses {
		report.ExpensesTotal = report.ExpensesTotal.Add(e.Amount)
	}
	report.ExpensesByCategory = expensesByCategory(expenses)

	return report
}

// GetPeriodReport builds the range report. Both bounds are required.
func GetPeriodReport(ctx context.Context, start, end *time.Time) (*PeriodReportResponse, error) {
	if start == nil || end == nil {
		return nil, utils.NewValidationError("start_date and end_date are required")
	}
	startDate := utils.DateOnly(*start)
	endDate := utils.DateOnly(*end)

	purchases, err := models.FindPurchasesByDateRange(ctx, &startDate, &endDate)
	if err != nil {
		return nil, err
	}
	sales, err := models.FindSalesByDateRange(ctx, &startDate, &endDate)
	if err != nil {
		return nil, err
	}
	expenses, err := models.FindExpenses(ctx, &startDate, &endDate, nil)
	if err != nil {
		return nil, err
	}

	// current running balance of every customer in the window, for
	// context next to the period figures
	runningBalances := map[int]decimal.Decimal{}
	for _, s := range sales {
		if _, ok := runningBalances[s.CustomerId]; ok {
			continue
		}
		customer := s.Customer
		if customer == nil {
			customer, err = models.GetCustomer(ctx, s.CustomerId)
			if err != nil {
				return nil, err
			}
		}
		balance, err := models.GetCustomerRunningBalance(ctx, customer)
		if err != nil {
			return nil, err
		}
		runningBalances[s.CustomerId] = balance
	}

	return computePeriodReport(startDate, endDate, purchases, sales, expenses, runningBalances), nil
}
