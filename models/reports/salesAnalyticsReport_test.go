package reports

import (
	"fmt"
	"testing"

	"github.com/poultrytrade/ledger_backend/models"
)

func TestComputeSalesAnalyticsEmptyRange(t *testing.T) {
	report := computeSalesAnalytics(day(t, "2026-04-01"), day(t, "2026-04-30"), nil)

	if report.Message != "No sales found for the selected date range" {
		t.Fatalf("Message = %q", report.Message)
	}
	if !report.TotalKgsSold.Equal(models.ZeroAmount) {
		t.Fatalf("TotalKgsSold = %s, want 0", report.TotalKgsSold)
	}
	if !report.AverageRatePerKg.Equal(models.ZeroAmount) {
		t.Fatalf("AverageRatePerKg = %s, want 0", report.AverageRatePerKg)
	}
	if report.TotalSalesCount != 0 {
		t.Fatalf("TotalSalesCount = %d, want 0", report.TotalSalesCount)
	}
	if len(report.DailyBreakdown) != 0 || len(report.TopCustomers) != 0 {
		t.Fatalf("breakdowns not empty: %v %v", report.DailyBreakdown, report.TopCustomers)
	}
}

func TestComputeSalesAnalyticsTotals(t *testing.T) {
	sales := []*models.Sale{
		{CustomerId: 1, Date: day(t, "2026-04-01"),
			Kg: dec(t, "100"), SaleRatePerKg: dec(t, "6"), CostRateSnapshot: dec(t, "4")},
		{CustomerId: 1, Date: day(t, "2026-04-02"),
			Kg: dec(t, "60"), SaleRatePerKg: dec(t, "5"), CostRateSnapshot: dec(t, "4")},
	}

	report := computeSalesAnalytics(day(t, "2026-04-01"), day(t, "2026-04-30"), sales)

	if report.Message != "" {
		t.Fatalf("Message = %q, want empty", report.Message)
	}
	if !report.TotalKgsSold.Equal(dec(t, "160")) {
		t.Fatalf("TotalKgsSold = %s, want 160", report.TotalKgsSold)
	}
	if !report.TotalSalePrice.Equal(dec(t, "900")) {
		t.Fatalf("TotalSalePrice = %s, want 900", report.TotalSalePrice)
	}
	if report.TotalSalesCount != 2 {
		t.Fatalf("TotalSalesCount = %d, want 2", report.TotalSalesCount)
	}
	// 900 / 160 = 5.625
	if !report.AverageRatePerKg.Equal(dec(t, "5.625")) {
		t.Fatalf("AverageRatePerKg = %s, want 5.625", report.AverageRatePerKg)
	}
	if !report.TotalProfit.Equal(dec(t, "260")) {
		t.Fatalf("TotalProfit = %s, want 260", report.TotalProfit)
	}
	if len(report.DailyBreakdown) != 2 {
		t.Fatalf("got %d days, want 2", len(report.DailyBreakdown))
	}
}

// Customers with equal revenue keep their first-encountered order.
func TestTopCustomersStableTies(t *testing.T) {
	sales := []*models.Sale{
		{CustomerId: 5, Customer: &models.Customer{ID: 5, Name: "Hla Hla"}, Date: day(t, "2026-04-01"),
			Kg: dec(t, "10"), SaleRatePerKg: dec(t, "10")},
		{CustomerId: 3, Customer: &models.Customer{ID: 3, Name: "Mya Mya"}, Date: day(t, "2026-04-01"),
			Kg: dec(t, "10"), SaleRatePerKg: dec(t, "10")},
		{CustomerId: 7, Customer: &models.Customer{ID: 7, Name: "Zaw Zaw"}, Date: day(t, "2026-04-01"),
			Kg: dec(t, "50"), SaleRatePerKg: dec(t, "10")},
	}

	report := computeSalesAnalytics(day(t, "2026-04-01"), day(t, "2026-04-30"), sales)

	if len(report.TopCustomers) != 3 {
		t.Fatalf("got %d top customers, want 3", len(report.TopCustomers))
	}
	if report.TopCustomers[0].CustomerId != 7 {
		t.Fatalf("top customer = %d, want 7", report.TopCustomers[0].CustomerId)
	}
	// 5 and 3 tie at 100; 5 appeared first in the input.
	if report.TopCustomers[1].CustomerId != 5 || report.TopCustomers[2].CustomerId != 3 {
		t.Fatalf("tie order = %d, %d, want 5, 3",
			report.TopCustomers[1].CustomerId, report.TopCustomers[2].CustomerId)
	}
}

func TestTopCustomersLimitedToTen(t *testing.T) {
	var sales []*models.Sale
	for i := 1; i <= 14; i++ {
		sales = append(sales, &models.Sale{
			CustomerId: i,
			Customer:   &models.Customer{ID: i, Name: fmt.Sprintf("Customer %d", i)},
			Date:       day(t, "2026-04-01"),
			Kg:         dec(t, "10"),
			// distinct revenue per customer so the cut is deterministic
			SaleRatePerKg: dec(t, fmt.Sprintf("%d", i)),
		})
	}

	report := computeSalesAnalytics(day(t, "2026-04-01"), day(t, "2026-04-30"), sales)

	if len(report.TopCustomers) != 10 {
		t.Fatalf("got %d top customers, want 10", len(report.TopCustomers))
	}
	if report.TopCustomers[0].CustomerId != 14 {
		t.Fatalf("top customer = %d, want 14", report.TopCustomers[0].CustomerId)
	}
	if report.TopCustomers[9].CustomerId != 5 {
		t.Fatalf("last ranked customer = %d, want 5", report.TopCustomers[9].CustomerId)
	}
}
