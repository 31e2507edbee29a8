package reports

import (
	"context"
	"time"

	"github.com/poultrytrade/ledger_backend/models"
	"github.com/poultrytrade/ledger_backend/utils"
	"github.com/shopspring/decimal"
)

type VehicleBreakdown struct {
	Vehicle string          `json:"vehicle"`
	Kg      decimal.Decimal `json:"kg"`
	Cost    decimal.Decimal `json:"cost"`
	Count   int             `json:"count"`
}

type DailyReportResponse struct {
	Date               string             `json:"date"`
	PurchasesKg        decimal.Decimal    `json:"purchases_kg"`
	PurchasesCost      decimal.Decimal    `json:"purchases_cost"`
	PurchasesByVehicle []VehicleBreakdown `json:"purchases_by_vehicle"`
	SalesKg            decimal.Decimal    `json:"sales_kg"`
	SalesRevenue       decimal.Decimal    `json:"sales_revenue"`
	Profit             decimal.Decimal    `json:"profit"`
	CashReceived       decimal.Decimal    `json:"cash_received"`
	CashFromSales      decimal.Decimal    `json:"cash_from_sales"`
	CashFromPayments   decimal.Decimal    `json:"cash_from_payments"`
	Borrow             decimal.Decimal    `json:"borrow"`
	ExpensesTotal      decimal.Decimal    `json:"expenses_total"`
	ClosingStock       decimal.Decimal    `json:"closing_stock"`
}

// computeDailyReport folds one day's transactions. closing stock uses
// the lifetime kg totals, not the day's: it is a physical inventory
// figure.
func computeDailyReport(date time.Time, purchases []*models.Purchase, sales []*models.Sale,
	payments []*models.Payment, expenses []*models.Expense,
	lifetimePurchasedKg, lifetimeSoldKg decimal.Decimal) *DailyReportResponse {

	report := &DailyReportResponse{
		Date:               date.Format(utils.DateLayout),
		PurchasesKg:        models.ZeroAmount,
		PurchasesCost:      models.ZeroAmount,
		PurchasesByVehicle: []VehicleBreakdown{},
		SalesKg:            models.ZeroAmount,
		SalesRevenue:       models.ZeroAmount,
		Profit:             models.ZeroAmount,
		CashFromSales:      models.ZeroAmount,
		CashFromPayments:   models.ZeroAmount,
		ExpensesTotal:      models.ZeroAmount,
	}

	vehicleIndex := map[string]int{}
	for _, p := range purchases {
		report.PurchasesKg = report.PurchasesKg.Add(p.Kg)
		report.PurchasesCost = report.PurchasesCost.Add(p.TotalCost())

		vehicle := p.VehicleNumber
		if vehicle == "" {
			vehicle = "Not Specified"
		}
		idx, ok := vehicleIndex[vehicle]
		if !ok {
			idx = len(report.PurchasesByVehicle)
			vehicleIndex[vehicle] = idx
			report.PurchasesByVehicle = append(report.PurchasesByVehicle, VehicleBreakdown{
				Vehicle: vehicle,
				Kg:      models.ZeroAmount,
				Cost:    models.ZeroAmount,
			})
		}
		report.PurchasesByVehicle[idx].Kg = report.PurchasesByVehicle[idx].Kg.Add(p.Kg)
		report.PurchasesByVehicle[idx].Cost = report.PurchasesByVehicle[idx].Cost.Add(p.TotalCost())
		report.PurchasesByVehicle[idx].Count++
	}

	for _, s := range sales {
		report.SalesKg = report.SalesKg.Add(s.Kg)
		report.SalesRevenue = report.SalesRevenue.Add(s.TotalAmount())
		report.CashFromSales = report.CashFromSales.Add(s.AmountReceived)
		report.Profit = report.Profit.Add(s.Profit())
	}
	report.Borrow = report.SalesRevenue.Sub(report.CashFromSales)

	for _, p := range payments {
		report.CashFromPayments = report.CashFromPayments.Add(p.Amount)
	}
	report.CashReceived = report.CashFromSales.Add(report.CashFromPayments)

	for _, e := range expenses {
		report.ExpensesTotal = report.ExpensesTotal.Add(e.Amount)
	}

	report.ClosingStock = lifetimePurchasedKg.Sub(lifetimeSoldKg)

	return report
}

// GetDailyReport builds the report for one date, defaulting to the
// current date.
func GetDailyReport(ctx context.Context, date *time.Time) (*DailyReportResponse, error) {
	reportDate := utils.DateOnly(time.Now())
	if date != nil {
		reportDate = utils.DateOnly(*date)
	}

	purchases, err := models.FindPurchasesByDateRange(ctx, &reportDate, &reportDate)
	if err != nil {
		return nil, err
	}
	sales, err := models.FindSalesByDateRange(ctx, &reportDate, &reportDate)
	if err != nil {
		return nil, err
	}
	payments, err := models.FindPaymentsByDateRange(ctx, &reportDate, &reportDate)
	if err != nil {
		return nil, err
	}
	expenses, err := models.FindExpenses(ctx, &reportDate, &reportDate, nil)
	if err != nil {
		return nil, err
	}
	lifetimePurchasedKg, err := models.TotalPurchasedKg(ctx)
	if err != nil {
		return nil, err
	}
	lifetimeSoldKg, err := models.TotalSoldKg(ctx)
	if err != nil {
		return nil, err
	}

	return computeDailyReport(reportDate, purchases, sales, payments, expenses,
		lifetimePurchasedKg, lifetimeSoldKg), nil
}
