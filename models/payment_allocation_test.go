package models

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func d(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return v
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date literal %q: %v", s, err)
	}
	return v
}

func saleOn(t *testing.T, id int, date, kg, rate, received string) *Sale {
	t.Helper()
	return &Sale{
		ID:             id,
		Date:           day(t, date),
		Kg:             d(t, kg),
		SaleRatePerKg:  d(t, rate),
		AmountReceived: d(t, received),
	}
}

func TestOrderSalesForAllocation(t *testing.T) {
	paymentDate := day(t, "2026-03-02")
	sales := []*Sale{
		saleOn(t, 1, "2026-03-01", "10", "1", "0"),
		saleOn(t, 4, "2026-03-02", "10", "1", "0"),
		saleOn(t, 3, "2026-03-02", "10", "1", "0"),
		saleOn(t, 2, "2026-02-28", "10", "1", "0"),
	}

	ordered := orderSalesForAllocation(paymentDate, sales)

	wantIds := []int{3, 4, 2, 1}
	if len(ordered) != len(wantIds) {
		t.Fatalf("got %d sales, want %d", len(ordered), len(wantIds))
	}
	for i, want := range wantIds {
		if ordered[i].ID != want {
			t.Fatalf("position %d: got sale %d, want %d", i, ordered[i].ID, want)
		}
	}
}

func TestOrderSalesForAllocationDoesNotMutateInput(t *testing.T) {
	paymentDate := day(t, "2026-03-02")
	sales := []*Sale{
		saleOn(t, 2, "2026-03-01", "10", "1", "0"),
		saleOn(t, 1, "2026-03-02", "10", "1", "0"),
	}

	orderSalesForAllocation(paymentDate, sales)

	if sales[0].ID != 2 || sales[1].ID != 1 {
		t.Fatalf("input slice was reordered: %d, %d", sales[0].ID, sales[1].ID)
	}
}

// Same-date sales settle first, then older debts oldest first. Two
// open sales on an earlier date (borrows 50 and 30) plus one on the
// payment's date (borrow 40): a 70 payment clears the same-date sale,
// then puts the remaining 30 toward the oldest.
func TestPlanAllocationSameDateFirst(t *testing.T) {
	paymentDate := day(t, "2026-03-02")
	sales := []*Sale{
		saleOn(t, 1, "2026-03-01", "50", "1", "0"), // borrow 50
		saleOn(t, 2, "2026-03-01", "30", "1", "0"), // borrow 30
		saleOn(t, 3, "2026-03-02", "40", "1", "0"), // borrow 40, same date
	}

	ordered := orderSalesForAllocation(paymentDate, sales)
	plan := planAllocation(d(t, "70"), ordered)

	if len(plan) != 2 {
		t.Fatalf("got %d allocations, want 2", len(plan))
	}
	if plan[0].Sale.ID != 3 || !plan[0].Amount.Equal(d(t, "40")) {
		t.Fatalf("first allocation: sale %d amount %s, want sale 3 amount 40", plan[0].Sale.ID, plan[0].Amount)
	}
	if plan[1].Sale.ID != 1 || !plan[1].Amount.Equal(d(t, "30")) {
		t.Fatalf("second allocation: sale %d amount %s, want sale 1 amount 30", plan[1].Sale.ID, plan[1].Amount)
	}
}

func TestPlanAllocationSkipsSettledSales(t *testing.T) {
	sales := []*Sale{
		saleOn(t, 1, "2026-03-01", "20", "1", "20"), // fully settled
		saleOn(t, 2, "2026-03-01", "30", "1", "10"), // borrow 20
	}

	plan := planAllocation(d(t, "15"), sales)

	if len(plan) != 1 {
		t.Fatalf("got %d allocations, want 1", len(plan))
	}
	if plan[0].Sale.ID != 2 || !plan[0].Amount.Equal(d(t, "15")) {
		t.Fatalf("allocation: sale %d amount %s, want sale 2 amount 15", plan[0].Sale.ID, plan[0].Amount)
	}
}

// A payment larger than the customer's total debt settles everything
// and the surplus stays unapplied.
func TestPlanAllocationSurplusUnapplied(t *testing.T) {
	sales := []*Sale{
		saleOn(t, 1, "2026-03-01", "50", "1", "0"),
		saleOn(t, 2, "2026-03-01", "70", "1", "0"),
	}

	plan := planAllocation(d(t, "200"), sales)

	total := ZeroAmount
	for _, a := range plan {
		total = total.Add(a.Amount)
	}
	if !total.Equal(d(t, "120")) {
		t.Fatalf("allocated total = %s, want 120", total)
	}
}

func TestPlanAllocationNoOpenSales(t *testing.T) {
	if plan := planAllocation(d(t, "100"), nil); len(plan) != 0 {
		t.Fatalf("got %d allocations for no sales, want 0", len(plan))
	}
}

func TestMarkAllocatedTransitionsOnce(t *testing.T) {
	p := &Payment{AllocationState: AllocationStateUnallocated}

	if err := p.markAllocated(); err != nil {
		t.Fatalf("first markAllocated: %v", err)
	}
	if p.AllocationState != AllocationStateAllocated {
		t.Fatalf("state = %s, want %s", p.AllocationState, AllocationStateAllocated)
	}
	if err := p.markAllocated(); err == nil {
		t.Fatal("second markAllocated should fail")
	}
}

// An already allocated payment never re-runs allocation, no matter how
// many times it is saved.
func TestAllocateToSalesIdempotent(t *testing.T) {
	p := &Payment{
		CustomerId:      1,
		Amount:          d(t, "100"),
		AllocationState: AllocationStateAllocated,
	}

	if err := p.AllocateToSales(context.Background()); err != nil {
		t.Fatalf("AllocateToSales on allocated payment: %v", err)
	}
}
