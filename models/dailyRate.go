package models

import (
	"context"
	"time"

	"github.com/poultrytrade/ledger_backend/config"
	"github.com/poultrytrade/ledger_backend/utils"
	"github.com/shopspring/decimal"
)

// DailyRate holds the default pricing hints for one day. Advisory
// only, never enforced on transactions.
type DailyRate struct {
	ID              int             `gorm:"primary_key" json:"id"`
	Date            time.Time       `gorm:"type:date;uniqueIndex;not null" json:"date" binding:"required"`
	DefaultCostRate decimal.Decimal `gorm:"type:decimal(10,3);default:0" json:"default_cost_rate"`
	DefaultSaleRate decimal.Decimal `gorm:"type:decimal(10,3);default:0" json:"default_sale_rate"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewDailyRate struct {
	Date            time.Time       `json:"date" binding:"required"`
	DefaultCostRate decimal.Decimal `json:"default_cost_rate"`
	DefaultSaleRate decimal.Decimal `json:"default_sale_rate"`
}

func (input *NewDailyRate) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[DailyRate](ctx, id); err != nil {
			return err
		}
	}
	if input.DefaultCostRate.IsNegative() || input.DefaultSaleRate.IsNegative() {
		return utils.NewValidationError("rates must not be negative")
	}
	if err := utils.ValidateUnique[DailyRate](ctx, "date", utils.DateOnly(input.Date), id); err != nil {
		return err
	}
	return nil
}

func CreateDailyRate(ctx context.Context, input *NewDailyRate) (*DailyRate, error) {
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	rate := DailyRate{
		Date:            utils.DateOnly(input.Date),
		DefaultCostRate: input.DefaultCostRate,
		DefaultSaleRate: input.DefaultSaleRate,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&rate).Error; err != nil {
		return nil, err
	}
	return &rate, nil
}

func UpdateDailyRate(ctx context.Context, id int, input *NewDailyRate) (*DailyRate, error) {
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	rate, err := utils.FetchModel[DailyRate](ctx, id)
	if err != nil {
		return nil, err
	}

	rate.Date = utils.DateOnly(input.Date)
	rate.DefaultCostRate = input.DefaultCostRate
	rate.DefaultSaleRate = input.DefaultSaleRate

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(rate).Error; err != nil {
		return nil, err
	}
	return rate, nil
}

func DeleteDailyRate(ctx context.Context, id int) error {
	rate, err := utils.FetchModel[DailyRate](ctx, id)
	if err != nil {
		return err
	}
	db := config.GetDB()
	return db.WithContext(ctx).Delete(rate).Error
}

func GetDailyRate(ctx context.Context, id int) (*DailyRate, error) {
	return utils.FetchModel[DailyRate](ctx, id)
}

func FindDailyRatesByDateRange(ctx context.Context, start, end *time.Time) ([]*DailyRate, error) {
	db := config.GetDB()
	query := db.WithContext(ctx).Order("date DESC")
	if start != nil {
		query = query.Where("date >= ?", utils.DateOnly(*start))
	}
	if end != nil {
		query = query.Where("date <= ?", utils.DateOnly(*end))
	}
	var rates []*DailyRate
	if err := query.Find(&rates).Error; err != nil {
		return nil, err
	}
	return rates, nil
}
