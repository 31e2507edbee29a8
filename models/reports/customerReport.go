package reports

import (
	"context"
	"time"

	"github.com/poultrytrade/ledger_backend/models"
	"github.com/poultrytrade/ledger_backend/utils"
	"github.com/shopspring/decimal"
)

type CustomerSummary struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}

type CustomerReportResponse struct {
	Customer         CustomerSummary `json:"customer"`
	StartDate        string          `json:"start_date,omitempty"`
	EndDate          string          `json:"end_date,omitempty"`
	TotalSalesAmount decimal.Decimal `json:"total_sales_amount"`
	TotalPayments    decimal.Decimal `json:"total_payments"`
	TotalKg          decimal.Decimal `json:"total_kg"`
	Outstanding      decimal.Decimal `json:"outstanding"`
}

func computeCustomerReport(sales []*models.Sale, payments []*models.Payment) (totalSales, totalPayments, totalKg decimal.Decimal) {
	totalSales = models.ZeroAmount
	totalPayments = models.ZeroAmount
	totalKg = models.ZeroAmount
	for _, s := range sales {
		totalSales = totalSales.Add(s.TotalAmount())
		totalKg = totalKg.Add(s.Kg)
	}
	for _, p := range payments {
		totalPayments = totalPayments.Add(p.Amount)
	}
	return totalSales, totalPayments, totalKg
}

// GetCustomerReport summarises one customer over an optional window.
// Returns a not-found error for an unknown customer id.
func GetCustomerReport(ctx context.Context, customerId int, start, end *time.Time) (*CustomerReportResponse, error) {
	customer, err := models.GetCustomer(ctx, customerId)
	if err != nil {
		return nil, err
	}

	sales, err := models.FindSalesByCustomer(ctx, customerId, start, end)
	if err != nil {
		return nil, err
	}
	payments, err := models.FindPaymentsByCustomer(ctx, customerId, start, end)
	if err != nil {
		return nil, err
	}
	runningBalance, err := models.GetCustomerRunningBalance(ctx, customer)
	if err != nil {
		return nil, err
	}

	totalSales, totalPayments, totalKg := computeCustomerReport(sales, payments)

	report := &CustomerReportResponse{
		Customer: CustomerSummary{
			ID:             customer.ID,
			Name:           customer.Name,
			OpeningBalance: customer.OpeningBalance,
			RunningBalance: runningBalance,
		},
		TotalSalesAmount: totalSales,
		TotalPayments:    totalPayments,
		TotalKg:          totalKg,
		Outstanding:      totalSales.Sub(totalPayments),
	}
	if start != nil {
		report.StartDate = utils.DateOnly(*start).Format(utils.DateLayout)
	}
	if end != nil {
		report.EndDate = utils.DateOnly(*end).Format(utils.DateLayout)
	}
	return report, nil
}
