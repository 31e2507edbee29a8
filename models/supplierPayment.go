package models

import (
	"context"
	"errors"
	"time"

	"github.com/poultrytrade/ledger_backend/config"
	"github.com/poultrytrade/ledger_backend/utils"
	"github.com/shopspring/decimal"
)

// SupplierPayment is a plain ledger entry against a supplier balance.
// Supplier debt is tracked per purchase, so there is no allocation
// step here.
type SupplierPayment struct {
	ID         int             `gorm:"primary_key" json:"id"`
	Date       time.Time       `gorm:"type:date;index;not null" json:"date" binding:"required"`
	SupplierId int             `gorm:"index;not null" json:"supplier_id" binding:"required"`
	Supplier   *Supplier       `json:"supplier,omitempty"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"amount" binding:"required"`
	Method     PaymentMethod   `gorm:"size:20;not null;default:'cash'" json:"method"`
	Note       string          `gorm:"type:text" json:"note"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewSupplierPayment struct {
	Date       time.Time       `json:"date" binding:"required"`
	SupplierId int             `json:"supplier_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Method     PaymentMethod   `json:"method"`
	Note       string          `json:"note"`
}

func (input *NewSupplierPayment) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[SupplierPayment](ctx, id); err != nil {
			return err
		}
	}
	if err := utils.ValidateResourceId[Supplier](ctx, input.SupplierId); err != nil {
		return errors.New("supplier not found")
	}
	if !input.Amount.IsPositive() {
		return utils.NewValidationError("amount must be greater than zero")
	}
	if input.Method != "" && !input.Method.Valid() {
		return utils.NewValidationError("invalid payment method")
	}
	return nil
}

func CreateSupplierPayment(ctx context.Context, input *NewSupplierPayment) (*SupplierPayment, error) {
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	method := input.Method
	if method == "" {
		method = PaymentMethodCash
	}
	payment := SupplierPayment{
		Date:       utils.DateOnly(input.Date),
		SupplierId: input.SupplierId,
		Amount:     input.Amount,
		Method:     method,
		Note:       input.Note,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func UpdateSupplierPayment(ctx context.Context, id int, input *NewSupplierPayment) (*SupplierPayment, error) {
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	payment, err := utils.FetchModel[SupplierPayment](ctx, id)
	if err != nil {
		return nil, err
	}

	payment.Date = utils.DateOnly(input.Date)
	payment.SupplierId = input.SupplierId
	payment.Amount = input.Amount
	if input.Method != "" {
		payment.Method = input.Method
	}
	payment.Note = input.Note

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(payment).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

func DeleteSupplierPayment(ctx context.Context, id int) error {
	payment, err := utils.FetchModel[SupplierPayment](ctx, id)
	if err != nil {
		return err
	}
	db := config.GetDB()
	return db.WithContext(ctx).Delete(payment).Error
}

func GetSupplierPayment(ctx context.Context, id int) (*SupplierPayment, error) {
	return utils.FetchModel[SupplierPayment](ctx, id, "Supplier")
}

func FindSupplierPaymentsByDateRange(ctx context.Context, start, end *time.Time) ([]*SupplierPayment, error) {
	db := config.GetDB()
	query := db.WithContext(ctx).Preload("Supplier").Order("date DESC, created_at DESC")
	if start != nil {
		query = query.Where("date >= ?", utils.DateOnly(*start))
	}
	if end != nil {
		query = query.Where("date <= ?", utils.DateOnly(*end))
	}
	var payments []*SupplierPayment
	if err := query.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func FindSupplierPaymentsBySupplier(ctx context.Context, supplierId int, start, end *time.Time) ([]*SupplierPayment, error) {
	db := config.GetDB()
	query := db.WithContext(ctx).Where("supplier_id = ?", supplierId).Order("date, id")
	if start != nil {
		query = query.Where("date >= ?", utils.DateOnly(*start))
	}
	if end != nil {
		query = query.Where("date <= ?", utils.DateOnly(*end))
	}
	var payments []*SupplierPayment
	if err := query.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
