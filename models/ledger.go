package models

import (
	"github.com/shopspring/decimal"
)

// Ledger math. Every derived monetary figure in the system is computed
// here from stored inputs; nothing below touches the database. Related
// records are always passed in explicitly by the caller.
//
// All quantities carry 3 fractional digits. A product of two 3dp
// values is rounded back to 3dp with round-half-away-from-zero
// (decimal.Round); the same rule applies everywhere.

// ZeroAmount is the canonical 3dp zero, used whenever an aggregate has
// no matching rows.
var ZeroAmount = decimal.New(0, -3)

func roundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(3)
}

// TotalCost is kg * cost_rate_per_kg.
func (p *Purchase) TotalCost() decimal.Decimal {
	return roundAmount(p.Kg.Mul(p.CostRatePerKg))
}

// BorrowAmount is the unpaid portion of this purchase, owed to the
// supplier.
func (p *Purchase) BorrowAmount() decimal.Decimal {
	return p.TotalCost().Sub(p.AmountPaid)
}

// TotalAmount is kg * sale_rate_per_kg.
func (s *Sale) TotalAmount() decimal.Decimal {
	return roundAmount(s.Kg.Mul(s.SaleRatePerKg))
}

// BorrowAmount is the unpaid portion of this sale.
func (s *Sale) BorrowAmount() decimal.Decimal {
	return s.TotalAmount().Sub(s.AmountReceived)
}

// Profit uses the cost rate frozen onto the sale at creation time, so
// later cost changes never alter it.
func (s *Sale) Profit() decimal.Decimal {
	return roundAmount(s.Kg.Mul(s.SaleRatePerKg.Sub(s.CostRateSnapshot)))
}

// CustomerRunningBalance is what the customer currently owes:
// opening balance plus all sales, minus payments and deductions.
func CustomerRunningBalance(c *Customer, sales []*Sale, payments []*Payment, deductions []*CustomerDeduction) decimal.Decimal {
	balance := c.OpeningBalance
	for _, s := range sales {
		balance = balance.Add(s.TotalAmount())
	}
	for _, p := range payments {
		balance = balance.Sub(p.Amount)
	}
	for _, d := range deductions {
		balance = balance.Sub(d.Amount)
	}
	return balance
}

// SupplierRunningBalance is what the business currently owes the
// supplier: opening balance plus purchase costs, minus per-purchase
// amounts paid and standalone supplier payments.
func SupplierRunningBalance(s *Supplier, purchases []*Purchase, payments []*SupplierPayment) decimal.Decimal {
	balance := s.OpeningBalance
	for _, p := range purchases {
		balance = balance.Add(p.TotalCost())
		balance = balance.Sub(p.AmountPaid)
	}
	for _, sp := range payments {
		balance = balance.Sub(sp.Amount)
	}
	return balance
}
