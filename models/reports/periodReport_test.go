package reports

import (
	"testing"

	"github.com/poultrytrade/ledger_backend/models"
	"github.com/shopspring/decimal"
)

func TestExpensesByCategoryZeroFills(t *testing.T) {
	expenses := []*models.Expense{
		{Category: models.ExpenseCategoryFeed, Amount: dec(t, "100")},
		{Category: models.ExpenseCategoryFeed, Amount: dec(t, "50")},
		{Category: models.ExpenseCategoryPetrol, Amount: dec(t, "30")},
	}

	totals := expensesByCategory(expenses)

	if len(totals) != len(models.ExpenseCategories()) {
		t.Fatalf("got %d categories, want %d", len(totals), len(models.ExpenseCategories()))
	}
	byCategory := map[models.ExpenseCategory]decimal.Decimal{}
	for _, ct := range totals {
		byCategory[ct.Category] = ct.Total
	}
	if !byCategory[models.ExpenseCategoryFeed].Equal(dec(t, "150")) {
		t.Fatalf("feed = %s, want 150", byCategory[models.ExpenseCategoryFeed])
	}
	if !byCategory[models.ExpenseCategoryPetrol].Equal(dec(t, "30")) {
		t.Fatalf("petrol = %s, want 30", byCategory[models.ExpenseCategoryPetrol])
	}
	if !byCategory[models.ExpenseCategorySalary].Equal(models.ZeroAmount) {
		t.Fatalf("salary = %s, want 0", byCategory[models.ExpenseCategorySalary])
	}
	if !byCategory[models.ExpenseCategoryVanRepair].Equal(models.ZeroAmount) {
		t.Fatalf("van_repair = %s, want 0", byCategory[models.ExpenseCategoryVanRepair])
	}
}

func TestExpensesByCategoryOrderIsFixed(t *testing.T) {
	totals := expensesByCategory(nil)
	for i, category := range models.ExpenseCategories() {
		if totals[i].Category != category {
			t.Fatalf("position %d: got %s, want %s", i, totals[i].Category, category)
		}
	}
}

func TestComputePeriodReport(t *testing.T) {
	start := day(t, "2026-04-01")
	end := day(t, "2026-04-30")
	purchases := []*models.Purchase{
		{Kg: dec(t, "300"), CostRatePerKg: dec(t, "4"), AmountPaid: dec(t, "1000")},
	}
	sales := []*models.Sale{
		{CustomerId: 1, Customer: &models.Customer{ID: 1, Name: "Aye Aye"},
			Kg: dec(t, "100"), SaleRatePerKg: dec(t, "6"), CostRateSnapshot: dec(t, "4"), AmountReceived: dec(t, "500")},
		{CustomerId: 2, Customer: &models.Customer{ID: 2, Name: "Mg Mg"},
			Kg: dec(t, "50"), SaleRatePerKg: dec(t, "6"), CostRateSnapshot: dec(t, "4"), AmountReceived: dec(t, "300")},
		{CustomerId: 1, Customer: &models.Customer{ID: 1, Name: "Aye Aye"},
			Kg: dec(t, "20"), SaleRatePerKg: dec(t, "7"), CostRateSnapshot: dec(t, "4"), AmountReceived: dec(t, "0")},
	}
	expenses := []*models.Expense{
		{Category: models.ExpenseCategorySalary, Amount: dec(t, "200")},
	}
	balances := map[int]decimal.Decimal{
		1: dec(t, "340"),
		2: dec(t, "0"),
	}

	report := computePeriodReport(start, end, purchases, sales, expenses, balances)

	if report.StartDate != "2026-04-01" || report.EndDate != "2026-04-30" {
		t.Fatalf("range = %s..%s", report.StartDate, report.EndDate)
	}
	if !report.PurchasesCost.Equal(dec(t, "1200")) {
		t.Fatalf("PurchasesCost = %s, want 1200", report.PurchasesCost)
	}
	if !report.SalesRevenue.Equal(dec(t, "1040")) {
		t.Fatalf("SalesRevenue = %s, want 1040", report.SalesRevenue)
	}
	if !report.CashReceived.Equal(dec(t, "800")) {
		t.Fatalf("CashReceived = %s, want 800", report.CashReceived)
	}
	if !report.Borrow.Equal(dec(t, "240")) {
		t.Fatalf("Borrow = %s, want 240", report.Borrow)
	}
	if !report.ExpensesTotal.Equal(dec(t, "200")) {
		t.Fatalf("ExpensesTotal = %s, want 200", report.ExpensesTotal)
	}

	if len(report.CustomerBreakdown) != 2 {
		t.Fatalf("got %d customers, want 2", len(report.CustomerBreakdown))
	}
	first := report.CustomerBreakdown[0]
	if first.CustomerId != 1 || first.CustomerName != "Aye Aye" {
		t.Fatalf("first customer = %+v", first)
	}
	if !first.Kg.Equal(dec(t, "120")) {
		t.Fatalf("first customer kg = %s, want 120", first.Kg)
	}
	if !first.Revenue.Equal(dec(t, "740")) {
		t.Fatalf("first customer revenue = %s, want 740", first.Revenue)
	}
	if !first.RunningBalance.Equal(dec(t, "340")) {
		t.Fatalf("first customer balance = %s, want 340", first.RunningBalance)
	}
}

func TestComputePeriodReportEmptyWindow(t *testing.T) {
	report := computePeriodReport(day(t, "2026-04-01"), day(t, "2026-04-30"), nil, nil, nil, nil)

	if !report.SalesRevenue.Equal(models.ZeroAmount) {
		t.Fatalf("SalesRevenue = %s, want 0", report.SalesRevenue)
	}
	if len(report.CustomerBreakdown) != 0 {
		t.Fatalf("CustomerBreakdown = %v, want empty", report.CustomerBreakdown)
	}
	if len(report.ExpensesByCategory) != len(models.ExpenseCategories()) {
		t.Fatalf("got %d categories, want all zero-filled", len(report.ExpensesByCategory))
	}
}
