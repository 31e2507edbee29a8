package models

import (
	"context"
	"errors"
	"time"

	"github.com/poultrytrade/ledger_backend/config"
	"github.com/poultrytrade/ledger_backend/utils"
	"github.com/shopspring/decimal"
)

type Sale struct {
	ID            int             `gorm:"primary_key" json:"id"`
	Date          time.Time       `gorm:"type:date;index;not null" json:"date" binding:"required"`
	CustomerId    int             `gorm:"index;not null" json:"customer_id" binding:"required"`
	Customer      *Customer       `json:"customer,omitempty"`
	Kg            decimal.Decimal `gorm:"type:decimal(10,3);not null" json:"kg" binding:"required"`
	SaleRatePerKg decimal.Decimal `gorm:"type:decimal(10,3);default:0" json:"sale_rate_per_kg"`
	// CostRateSnapshot is frozen at creation time and never
	// recalculated from DailyRate.
	CostRateSnapshot decimal.Decimal `gorm:"type:decimal(10,3);default:0" json:"cost_rate_snapshot"`
	AmountReceived   decimal.Decimal `gorm:"type:decimal(12,3);default:0" json:"amount_received"`
	Note             string          `gorm:"type:text" json:"note"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewSale struct {
	Date             time.Time       `json:"date" binding:"required"`
	CustomerId       int             `json:"customer_id" binding:"required"`
	Kg               decimal.Decimal `json:"kg" binding:"required"`
	SaleRatePerKg    decimal.Decimal `json:"sale_rate_per_kg"`
	CostRateSnapshot decimal.Decimal `json:"cost_rate_snapshot"`
	AmountReceived   decimal.Decimal `json:"amount_received"`
	Note             string          `json:"note"`
}

func (input *NewSale) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[Sale](ctx, id); err != nil {
			return err
		}
	}
	if err := utils.ValidateResourceId[Customer](ctx, input.CustomerId); err != nil {
		return errors.New("customer not found")
	}
	if !input.Kg.IsPositive() {
		return utils.NewValidationError("kg must be greater than zero")
	}
	if input.SaleRatePerKg.IsNegative() {
		return utils.NewValidationError("sale rate must not be negative")
	}
	if input.CostRateSnapshot.IsNegative() {
		return utils.NewValidationError("cost rate snapshot must not be negative")
	}
	if input.AmountReceived.IsNegative() {
		return utils.NewValidationError("amount received must not be negative")
	}
	total := input.Kg.Mul(input.SaleRatePerKg).Round(3)
	if input.AmountReceived.GreaterThan(total) {
		return utils.NewValidationError("amount received must not exceed the sale total")
	}
	return nil
}

func CreateSale(ctx context.Context, input *NewSale) (*Sale, error) {
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	sale := Sale{
		Date:             utils.DateOnly(input.Date),
		CustomerId:       input.CustomerId,
		Kg:               input.Kg,
		SaleRatePerKg:    input.SaleRatePerKg,
		CostRateSnapshot: input.CostRateSnapshot,
		AmountReceived:   input.AmountReceived,
		Note:             input.Note,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&sale).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func UpdateSale(ctx context.Context, id int, input *NewSale) (*Sale, error) {
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	sale, err := utils.FetchModel[Sale](ctx, id)
	if err != nil {
		return nil, err
	}

	sale.Date = utils.DateOnly(input.Date)
	sale.CustomerId = input.CustomerId
	sale.Kg = input.Kg
	sale.SaleRatePerKg = input.SaleRatePerKg
	// snapshot stays frozen; direct edits of the other fields are
	// allowed
	sale.AmountReceived = input.AmountReceived
	sale.Note = input.Note

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(sale).Error; err != nil {
		return nil, err
	}
	return sale, nil
}

func DeleteSale(ctx context.Context, id int) error {
	sale, err := utils.FetchModel[Sale](ctx, id)
	if err != nil {
		return err
	}
	db := config.GetDB()
	return db.WithContext(ctx).Delete(sale).Error
}

func GetSale(ctx context.Context, id int) (*Sale, error) {
	return utils.FetchModel[Sale](ctx, id, "Customer")
}

func FindSalesByDateRange(ctx context.Context, start, end *time.Time) ([]*Sale, error) {
	db := config.GetDB()
	query := db.WithContext(ctx).Preload("Customer").Order("date, id")
	if start != nil {
		query = query.Where("date >= ?", utils.DateOnly(*start))
	}
	if end != nil {
		query = query.Where("date <= ?", utils.DateOnly(*end))
	}
	var sales []*Sale
	if err := query.Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

func FindSalesByCustomer(ctx context.Context, customerId int, start, end *time.Time) ([]*Sale, error) {
	db := config.GetDB()
	query := db.WithContext(ctx).Where("customer_id = ?", customerId).Order("date, id")
	if start != nil {
		query = query.Where("date >= ?", utils.DateOnly(*start))
	}
	if end != nil {
		query = query.Where("date <= ?", utils.DateOnly(*end))
	}
	var sales []*Sale
	if err := query.Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// TotalSoldKg sums sold weight over the whole history.
func TotalSoldKg(ctx context.Context) (decimal.Decimal, error) {
	db := config.GetDB()
	var total decimal.Decimal
	err := db.WithContext(ctx).Model(&Sale{}).
		Select("COALESCE(SUM(kg), 0)").
		Scan(&total).Error
	if err != nil {
		return ZeroAmount, err
	}
	return total, nil
}
