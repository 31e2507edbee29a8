package models

import (
	"context"
	"errors"
	"time"

	"github.com/poultrytrade/ledger_backend/config"
	"github.com/poultrytrade/ledger_backend/utils"
	"github.com/shopspring/decimal"
)

// CustomerDeduction reduces what a customer owes without cash moving:
// returns, discounts, damaged goods.
type CustomerDeduction struct {
	ID            int             `gorm:"primary_key" json:"id"`
	Date          time.Time       `gorm:"type:date;index;not null" json:"date" binding:"required"`
	CustomerId    int             `gorm:"index;not null" json:"customer_id" binding:"required"`
	Customer      *Customer       `json:"customer,omitempty"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"amount" binding:"required"`
	DeductionType DeductionType   `gorm:"size:20;not null;default:'other'" json:"deduction_type"`
	Note          string          `gorm:"type:text" json:"note"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewCustomerDeduction struct {
	Date          time.Time       `json:"date" binding:"required"`
	CustomerId    int             `json:"customer_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	DeductionType DeductionType   `json:"deduction_type"`
	Note          string          `json:"note"`
}

func (input *NewCustomerDeduction) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[CustomerDeduction](ctx, id); err != nil {
			return err
		}
	}
	if err := utils.ValidateResourceId[Customer](ctx, input.CustomerId); err != nil {
		return errors.New("customer not found")
	}
	if !input.Amount.IsPositive() {
		return utils.NewValidationError("amount must be greater than zero")
	}
	if input.DeductionType != "" && !input.DeductionType.Valid() {
		return utils.NewValidationError("invalid deduction type")
	}
	return nil
}

func CreateCustomerDeduction(ctx context.Context, input *NewCustomerDeduction) (*CustomerDeduction, error) {
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	deductionType := input.DeductionType
	if deductionType == "" {
		deductionType = DeductionTypeOther
	}
	deduction := CustomerDeduction{
		Date:          utils.DateOnly(input.Date),
		CustomerId:    input.CustomerId,
		Amount:        input.Amount,
		DeductionType: deductionType,
		Note:          input.Note,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&deduction).Error; err != nil {
		return nil, err
	}
	return &deduction, nil
}

func UpdateCustomerDeduction(ctx context.Context, id int, input *NewCustomerDeduction) (*CustomerDeduction, error) {
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	deduction, err := utils.FetchModel[CustomerDeduction](ctx, id)
	if err != nil {
		return nil, err
	}

	deduction.Date = utils.DateOnly(input.Date)
	deduction.CustomerId = input.CustomerId
	deduction.Amount = input.Amount
	if input.DeductionType != "" {
		deduction.DeductionType = input.DeductionType
	}
	deduction.Note = input.Note

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(deduction).Error; err != nil {
		return nil, err
	}
	return deduction, nil
}

func DeleteCustomerDeduction(ctx context.Context, id int) error {
	deduction, err := utils.FetchModel[CustomerDeduction](ctx, id)
	if err != nil {
		return err
	}
	db := config.GetDB()
	return db.WithContext(ctx).Delete(deduction).Error
}

func GetCustomerDeduction(ctx context.Context, id int) (*CustomerDeduction, error) {
	return utils.FetchModel[CustomerDeduction](ctx, id, "Customer")
}

func FindDeductionsByDateRange(ctx context.Context, start, end *time.Time) ([]*CustomerDeduction, error) {
	db := config.GetDB()
	query := db.WithContext(ctx).Preload("Customer").Order("date DESC, created_at DESC")
	if start != nil {
		query = query.Where("date >= ?", utils.DateOnly(*start))
	}
	if end != nil {
		query = query.Where("date <= ?", utils.DateOnly(*end))
	}
	var deductions []*CustomerDeduction
	if err := query.Find(&deductions).Error; err != nil {
		return nil, err
	}
	return deductions, nil
}

func FindDeductionsByCustomer(ctx context.Context, customerId int, start, end *time.Time) ([]*CustomerDeduction, error) {
	db := config.GetDB()
	query := db.WithContext(ctx).Where("customer_id = ?", customerId).Order("date, id")
	if start != nil {
		query = query.Where("date >= ?", utils.DateOnly(*start))
	}
	if end != nil {
		query = query.Where("date <= ?", utils.DateOnly(*end))
	}
	var deductions []*CustomerDeduction
	if err := query.Find(&deductions).Error; err != nil {
		return nil, err
	}
	return deductions, nil
}
