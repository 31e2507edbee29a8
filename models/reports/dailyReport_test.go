package reports

import (
	"testing"
	"time"

	"github.com/poultrytrade/ledger_backend/models"
	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date literal %q: %v", s, err)
	}
	return v
}

func TestComputeDailyReport(t *testing.T) {
	date := day(t, "2026-04-01")
	purchases := []*models.Purchase{
		{VehicleNumber: "YGN-1234", Kg: dec(t, "100"), CostRatePerKg: dec(t, "4")},
		{VehicleNumber: "YGN-1234", Kg: dec(t, "50"), CostRatePerKg: dec(t, "4")},
		{VehicleNumber: "", Kg: dec(t, "20"), CostRatePerKg: dec(t, "5")},
	}
	sales := []*models.Sale{
		{Kg: dec(t, "80"), SaleRatePerKg: dec(t, "6"), CostRateSnapshot: dec(t, "4"), AmountReceived: dec(t, "300")},
	}
	payments := []*models.Payment{
		{Amount: dec(t, "120")},
	}
	expenses := []*models.Expense{
		{Category: models.ExpenseCategoryPetrol, Amount: dec(t, "25")},
	}

	report := computeDailyReport(date, purchases, sales, payments, expenses,
		dec(t, "5000"), dec(t, "4200"))

	if report.Date != "2026-04-01" {
		t.Fatalf("Date = %s", report.Date)
	}
	if !report.PurchasesKg.Equal(dec(t, "170")) {
		t.Fatalf("PurchasesKg = %s, want 170", report.PurchasesKg)
	}
	if !report.PurchasesCost.Equal(dec(t, "700")) {
		t.Fatalf("PurchasesCost = %s, want 700", report.PurchasesCost)
	}
	if !report.SalesRevenue.Equal(dec(t, "480")) {
		t.Fatalf("SalesRevenue = %s, want 480", report.SalesRevenue)
	}
	if !report.Profit.Equal(dec(t, "160")) {
		t.Fatalf("Profit = %s, want 160", report.Profit)
	}
	if !report.CashFromSales.Equal(dec(t, "300")) {
		t.Fatalf("CashFromSales = %s, want 300", report.CashFromSales)
	}
	if !report.CashFromPayments.Equal(dec(t, "120")) {
		t.Fatalf("CashFromPayments = %s, want 120", report.CashFromPayments)
	}
	if !report.CashReceived.Equal(dec(t, "420")) {
		t.Fatalf("CashReceived = %s, want 420", report.CashReceived)
	}
	if !report.Borrow.Equal(dec(t, "180")) {
		t.Fatalf("Borrow = %s, want 180", report.Borrow)
	}
	if !report.ExpensesTotal.Equal(dec(t, "25")) {
		t.Fatalf("ExpensesTotal = %s, want 25", report.ExpensesTotal)
	}
}

func TestComputeDailyReportVehicleBreakdown(t *testing.T) {
	date := day(t, "2026-04-01")
	purchases := []*models.Purchase{
		{VehicleNumber: "YGN-1234", Kg: dec(t, "100"), CostRatePerKg: dec(t, "4")},
		{VehicleNumber: "", Kg: dec(t, "20"), CostRatePerKg: dec(t, "5")},
		{VehicleNumber: "YGN-1234", Kg: dec(t, "30"), CostRatePerKg: dec(t, "4")},
	}

	report := computeDailyReport(date, purchases, nil, nil, nil, dec(t, "0"), dec(t, "0"))

	if len(report.PurchasesByVehicle) != 2 {
		t.Fatalf("got %d vehicle groups, want 2", len(report.PurchasesByVehicle))
	}
	first := report.PurchasesByVehicle[0]
	if first.Vehicle != "YGN-1234" || !first.Kg.Equal(dec(t, "130")) || first.Count != 2 {
		t.Fatalf("first group = %+v", first)
	}
	second := report.PurchasesByVehicle[1]
	if second.Vehicle != "Not Specified" || !second.Kg.Equal(dec(t, "20")) || second.Count != 1 {
		t.Fatalf("second group = %+v", second)
	}
}

// Closing stock is a lifetime inventory figure; it must reflect the
// totals passed in, not the day's own movement.
func TestComputeDailyReportClosingStockIsLifetime(t *testing.T) {
	date := day(t, "2026-04-01")
	purchases := []*models.Purchase{
		{Kg: dec(t, "10"), CostRatePerKg: dec(t, "1")},
	}

	report := computeDailyReport(date, purchases, nil, nil, nil,
		dec(t, "9000"), dec(t, "8500"))

	if !report.ClosingStock.Equal(dec(t, "500")) {
		t.Fatalf("ClosingStock = %s, want 500", report.ClosingStock)
	}
}

func TestComputeDailyReportEmptyDay(t *testing.T) {
	date := day(t, "2026-04-01")

	report := computeDailyReport(date, nil, nil, nil, nil, dec(t, "0"), dec(t, "0"))

	if !report.SalesRevenue.Equal(models.ZeroAmount) {
		t.Fatalf("SalesRevenue = %s, want 0", report.SalesRevenue)
	}
	if !report.Borrow.Equal(models.ZeroAmount) {
		t.Fatalf("Borrow = %s, want 0", report.Borrow)
	}
	if report.PurchasesByVehicle == nil || len(report.PurchasesByVehicle) != 0 {
		t.Fatalf("PurchasesByVehicle = %v, want empty slice", report.PurchasesByVehicle)
	}
}
