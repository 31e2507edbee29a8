package models

import (
	"context"
	"time"

	"github.com/poultrytrade/ledger_backend/config"
	"github.com/poultrytrade/ledger_backend/utils"
	"github.com/shopspring/decimal"
)

type Expense struct {
	ID        int             `gorm:"primary_key" json:"id"`
	Date      time.Time       `gorm:"type:date;index;not null" json:"date" binding:"required"`
	Category  ExpenseCategory `gorm:"size:20;index;not null" json:"category" binding:"required"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"amount" binding:"required"`
	Note      string          `gorm:"type:text" json:"note"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewExpense struct {
	Date     time.Time       `json:"date" binding:"required"`
	Category ExpenseCategory `json:"category" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Note     string          `json:"note"`
}

func (input *NewExpense) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[Expense](ctx, id); err != nil {
			return err
		}
	}
	if !input.Category.Valid() {
		return utils.NewValidationError("invalid expense category")
	}
	if !input.Amount.IsPositive() {
		return utils.NewValidationError("amount must be greater than zero")
	}
	return nil
}

func CreateExpense(ctx context.Context, input *NewExpense) (*Expense, error) {
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	expense := Expense{
		Date:     utils.DateOnly(input.Date),
		Category: input.Category,
		Amount:   input.Amount,
		Note:     input.Note,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&expense).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func UpdateExpense(ctx context.Context, id int, input *NewExpense) (*Expense, error) {
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	expense, err := utils.FetchModel[Expense](ctx, id)
	if err != nil {
		return nil, err
	}

	expense.Date = utils.DateOnly(input.Date)
	expense.Category = input.Category
	expense.Amount = input.Amount
	expense.Note = input.Note

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(expense).Error; err != nil {
		return nil, err
	}
	return expense, nil
}

func DeleteExpense(ctx context.Context, id int) error {
	expense, err := utils.FetchModel[Expense](ctx, id)
	if err != nil {
		return err
	}
	db := config.GetDB()
	return db.WithContext(ctx).Delete(expense).Error
}

func GetExpense(ctx context.Context, id int) (*Expense, error) {
	return utils.FetchModel[Expense](ctx, id)
}

func FindExpenses(ctx context.Context, start, end *time.Time, category *ExpenseCategory) ([]*Expense, error) {
	db := config.GetDB()
	query := db.WithContext(ctx).Order("date DESC, created_at DESC")
	if start != nil {
		query = query.Where("date >= ?", utils.DateOnly(*start))
	}
	if end != nil {
		query = query.Where("date <= ?", utils.DateOnly(*end))
	}
	if category != nil {
		query = query.Where("category = ?", *category)
	}
	var expenses []*Expense
	if err := query.Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}
