package models

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/poultrytrade/ledger_backend/config"
	"github.com/poultrytrade/ledger_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

type Payment struct {
	ID         int             `gorm:"primary_key" json:"id"`
	Date       time.Time       `gorm:"type:date;index;not null" json:"date" binding:"required"`
	CustomerId int             `gorm:"index;not null" json:"customer_id" binding:"required"`
	Customer   *Customer       `json:"customer,omitempty"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"amount" binding:"required"`
	Method     PaymentMethod   `gorm:"size:20;not null;default:'cash'" json:"method"`
	Note       string          `gorm:"type:text" json:"note"`
	// AllocationState moves Unallocated -> Allocated exactly once;
	// no other transition exists.
	AllocationState AllocationState `gorm:"size:20;not null;default:'Unallocated'" json:"allocation_state"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewPayment struct {
	Date       time.Time       `json:"date" binding:"required"`
	CustomerId int             `json:"customer_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Method     PaymentMethod   `json:"method"`
	Note       string          `json:"note"`
}

func (p *Payment) markAllocated() error {
	if p.AllocationState != AllocationStateUnallocated {
		return errors.New("payment is already allocated")
	}
	p.AllocationState = AllocationStateAllocated
	return nil
}

func (input *NewPayment) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[Payment](ctx, id); err != nil {
			return err
		}
	}
	if err := utils.ValidateResourceId[Customer](ctx, input.CustomerId); err != nil {
		return errors.New("customer not found")
	}
	if !input.Amount.IsPositive() {
		return utils.NewValidationError("amount must be greater than zero")
	}
	if input.Method != "" && !input.Method.Valid() {
		return utils.NewValidationError("invalid payment method")
	}
	return nil
}

// CreatePayment stores the payment and immediately allocates it
// against the customer's outstanding sales.
func CreatePayment(ctx context.Context, input *NewPayment) (*Payment, error) {
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	method := input.Method
	if method == "" {
		method = PaymentMethodCash
	}
	payment := Payment{
		Date:            utils.DateOnly(input.Date),
		CustomerId:      input.CustomerId,
		Amount:          input.Amount,
		Method:          method,
		Note:            input.Note,
		AllocationState: AllocationStateUnallocated,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&payment).Error; err != nil {
		return nil, err
	}

	if err := payment.AllocateToSales(ctx); err != nil {
		return nil, err
	}
	return &payment, nil
}

// UpdatePayment edits a payment's recorded fields. A payment that has
// already been allocated keeps its allocations; editing does not
// reverse them. Allocation runs again only while the payment is still
// Unallocated.
func UpdatePayment(ctx context.Context, id int, input *NewPayment) (*Payment, error) {
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	payment, err := utils.FetchModel[Payment](ctx, id)
	if err != nil {
		return nil, err
	}

	payment.Date = utils.DateOnly(input.Date)
	payment.CustomerId = input.CustomerId
	payment.Amount = input.Amount
	if input.Method != "" {
		payment.Method = input.Method
	}
	payment.Note = input.Note

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(payment).Error; err != nil {
		return nil, err
	}

	if err := payment.AllocateToSales(ctx); err != nil {
		return nil, err
	}
	return payment, nil
}

func DeletePayment(ctx context.Context, id int) error {
	payment, err := utils.FetchModel[Payment](ctx, id)
	if err != nil {
		return err
	}
	db := config.GetDB()
	return db.WithContext(ctx).Delete(payment).Error
}

func GetPayment(ctx context.Context, id int) (*Payment, error) {
	return utils.FetchModel[Payment](ctx, id, "Customer")
}

func FindPaymentsByDateRange(ctx context.Context, start, end *time.Time) ([]*Payment, error) {
	db := config.GetDB()
	query := db.WithContext(ctx).Preload("Customer").Order("date DESC, created_at DESC")
	if start != nil {
		query = query.Where("date >= ?", utils.DateOnly(*start))
	}
	if end != nil {
		query = query.Where("date <= ?", utils.DateOnly(*end))
	}
	var payments []*Payment
	if err := query.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func FindPaymentsByCustomer(ctx context.Context, customerId int, start, end *time.Time) ([]*Payment, error) {
	db := config.GetDB()
	query := db.WithContext(ctx).Where("customer_id = ?", customerId).Order("date, id")
	if start != nil {
		query = query.Where("date >= ?", utils.DateOnly(*start))
	}
	if end != nil {
		query = query.Where("date <= ?", utils.DateOnly(*end))
	}
	var payments []*Payment
	if err := query.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

type saleAllocation struct {
	Sale   *Sale
	Amount decimal.Decimal
}

// orderSalesForAllocation sorts candidates with a single stable sort:
// sales dated the payment's own date come first (in creation order),
// then everything else oldest first.
func orderSalesForAllocation(paymentDate time.Time, sales []*Sale) []*Sale {
	ordered := make([]*Sale, len(sales))
	copy(ordered, sales)
	sort.SliceStable(ordered, func(i, j int) bool {
		si, sj := ordered[i], ordered[j]
		groupOf := func(s *Sale) int {
			if s.Date.Equal(paymentDate) {
				return 0
			}
			return 1
		}
		gi, gj := groupOf(si), groupOf(sj)
		if gi != gj {
			return gi < gj
		}
		if !si.Date.Equal(sj.Date) {
			return si.Date.Before(sj.Date)
		}
		return si.ID < sj.ID
	})
	return ordered
}

// planAllocation walks the ordered candidates and decides how much of
// the payment each open sale absorbs. It stops once the payment is
// exhausted; any surplus is simply left unapplied.
func planAllocation(amount decimal.Decimal, ordered []*Sale) []saleAllocation {
	remaining := amount
	var plan []saleAllocation
	for _, sale := range ordered {
		if !remaining.IsPositive() {
			break
		}
		debt := sale.BorrowAmount()
		if !debt.IsPositive() {
			continue
		}
		allocation := decimal.Min(remaining, debt)
		plan = append(plan, saleAllocation{Sale: sale, Amount: allocation})
		remaining = remaining.Sub(allocation)
	}
	return plan
}

// AllocateToSales distributes the payment across the customer's open
// sales, same-date sales first, then oldest debts. Idempotent: a
// payment already in the Allocated state is a no-op. The sale reads
// and writes happen inside one transaction with the rows locked, so
// two payments for the same customer cannot settle the same debt
// twice.
func (p *Payment) AllocateToSales(ctx context.Context) error {
	if p.AllocationState == AllocationStateAllocated {
		return nil
	}

	release, err := utils.CustomerAllocationLock(ctx, p.CustomerId, "models", "AllocateToSales")
	if err != nil {
		return err
	}
	defer release()

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var sales []*Sale
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("customer_id = ?", p.CustomerId).
		Order("date, id").
		Find(&sales).Error; err != nil {
		tx.Rollback()
		return err
	}

	ordered := orderSalesForAllocation(p.Date, sales)
	for _, alloc := range planAllocation(p.Amount, ordered) {
		alloc.Sale.AmountReceived = alloc.Sale.AmountReceived.Add(alloc.Amount)
		if err := tx.Model(alloc.Sale).
			Update("amount_received", alloc.Sale.AmountReceived).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := p.markAllocated(); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Model(p).Update("allocation_state", p.AllocationState).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
