package models_test

import (
	"testing"

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

func TestPurchaseDerivedAmounts(t *testing.T) {
	p := &models.Purchase{
		Kg:            dec(t, "120.500"),
		CostRatePerKg: dec(t, "3.250"),
		AmountPaid:    dec(t, "200.000"),
	}

	if got := p.TotalCost(); !got.Equal(dec(t, "391.625")) {
		t.Fatalf("TotalCost = %s, want 391.625", got)
	}
	if got := p.BorrowAmount(); !got.Equal(dec(t, "191.625")) {
		t.Fatalf("BorrowAmount = %s, want 191.625", got)
	}
}

func TestSaleDerivedAmounts(t *testing.T) {
	s := &models.Sale{
		Kg:               dec(t, "10.000"),
		SaleRatePerKg:    dec(t, "5.500"),
		CostRateSnapshot: dec(t, "4.200"),
		AmountReceived:   dec(t, "30.000"),
	}

	if got := s.TotalAmount(); !got.Equal(dec(t, "55.000")) {
		t.Fatalf("TotalAmount = %s, want 55.000", got)
	}
	if got := s.BorrowAmount(); !got.Equal(dec(t, "25.000")) {
		t.Fatalf("BorrowAmount = %s, want 25.000", got)
	}
	if got := s.Profit(); !got.Equal(dec(t, "13.000")) {
		t.Fatalf("Profit = %s, want 13.000", got)
	}
}

// A product of two 3dp inputs can carry up to 6 fractional digits; the
// stored figure must come back to 3dp with the half-away-from-zero
// rule, for negative results too.
func TestAmountRounding(t *testing.T) {
	s := &models.Sale{
		Kg:            dec(t, "1.500"),
		SaleRatePerKg: dec(t, "0.335"),
	}
	if got := s.TotalAmount(); !got.Equal(dec(t, "0.503")) {
		t.Fatalf("TotalAmount = %s, want 0.503", got)
	}

	loss := &models.Sale{
		Kg:               dec(t, "1.500"),
		SaleRatePerKg:    dec(t, "0.000"),
		CostRateSnapshot: dec(t, "0.335"),
	}
	if got := loss.Profit(); !got.Equal(dec(t, "-0.503")) {
		t.Fatalf("Profit = %s, want -0.503", got)
	}
}

// Profit uses the snapshot taken at sale time; it must not involve
// AmountReceived or any later rate.
func TestProfitIgnoresReceivedAmount(t *testing.T) {
	s := &models.Sale{
		Kg:               dec(t, "7.000"),
		SaleRatePerKg:    dec(t, "3.000"),
		CostRateSnapshot: dec(t, "2.000"),
	}
	want := dec(t, "7.000")

	s.AmountReceived = dec(t, "0.000")
	if got := s.Profit(); !got.Equal(want) {
		t.Fatalf("Profit = %s, want %s", got, want)
	}
	s.AmountReceived = dec(t, "21.000")
	if got := s.Profit(); !got.Equal(want) {
		t.Fatalf("Profit after full receipt = %s, want %s", got, want)
	}
}

func TestCustomerRunningBalance(t *testing.T) {
	customer := &models.Customer{OpeningBalance: dec(t, "1000.000")}
	sales := []*models.Sale{
		{Kg: dec(t, "100.000"), SaleRatePerKg: dec(t, "5.000")}, // 500
	}
	payments := []*models.Payment{
		{Amount: dec(t, "200.000")},
	}
	deductions := []*models.CustomerDeduction{
		{Amount: dec(t, "50.000")},
	}

	got := models.CustomerRunningBalance(customer, sales, payments, deductions)
	if !got.Equal(dec(t, "1250.000")) {
		t.Fatalf("CustomerRunningBalance = %s, want 1250.000", got)
	}
}

func TestCustomerRunningBalanceNoActivity(t *testing.T) {
	customer := &models.Customer{OpeningBalance: dec(t, "75.500")}
	got := models.CustomerRunningBalance(customer, nil, nil, nil)
	if !got.Equal(dec(t, "75.500")) {
		t.Fatalf("CustomerRunningBalance = %s, want 75.500", got)
	}
}

func TestSupplierRunningBalance(t *testing.T) {
	supplier := &models.Supplier{OpeningBalance: dec(t, "0.000")}
	purchases := []*models.Purchase{
		{
			Kg:            dec(t, "200.000"),
			CostRatePerKg: dec(t, "5.000"), // total 1000
			AmountPaid:    dec(t, "400.000"),
		},
	}
	payments := []*models.SupplierPayment{
		{Amount: dec(t, "100.000")},
	}

	got := models.SupplierRunningBalance(supplier, purchases, payments)
	if !got.Equal(dec(t, "500.000")) {
		t.Fatalf("SupplierRunningBalance = %s, want 500.000", got)
	}
}

// Over-payment leaves the balance negative rather than clamped.
func TestRunningBalanceCanGoNegative(t *testing.T) {
	customer := &models.Customer{OpeningBalance: dec(t, "0.000")}
	payments := []*models.Payment{{Amount: dec(t, "120.000")}}

	got := models.CustomerRunningBalance(customer, nil, payments, nil)
	if !got.Equal(dec(t, "-120.000")) {
		t.Fatalf("CustomerRunningBalance = %s, want -120.000", got)
	}
}
