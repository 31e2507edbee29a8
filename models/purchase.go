package models

import (
	"context"
	"errors"
	"time"

	"github.com/poultrytrade/ledger_backend/config"
	"github.com/poultrytrade/ledger_backend/utils"
	"github.com/shopspring/decimal"
)

type Purchase struct {
	ID            int             `gorm:"primary_key" json:"id"`
	Date          time.Time       `gorm:"type:date;index;not null" json:"date" binding:"required"`
	SupplierId    int             `gorm:"index;not null" json:"supplier_id" binding:"required"`
	Supplier      *Supplier       `json:"supplier,omitempty"`
	VehicleNumber string          `gorm:"size:50" json:"vehicle_number"`
	Kg            decimal.Decimal `gorm:"type:decimal(10,3);not null" json:"kg" binding:"required"`
	CostRatePerKg decimal.Decimal `gorm:"type:decimal(10,3);default:0" json:"cost_rate_per_kg"`
	AmountPaid    decimal.Decimal `gorm:"type:decimal(12,3);default:0" json:"amount_paid"`
	Note          string          `gorm:"type:text" json:"note"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewPurchase struct {
	Date          time.Time       `json:"date" binding:"required"`
	SupplierId    int             `json:"supplier_id" binding:"required"`
	VehicleNumber string          `json:"vehicle_number"`
	Kg            decimal.Decimal `json:"kg" binding:"required"`
	CostRatePerKg decimal.Decimal `json:"cost_rate_per_kg"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Note          string          `json:"note"`
}

func (input *NewPurchase) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[Purchase](ctx, id); err != nil {
			return err
		}
	}
	if err := utils.ValidateResourceId[Supplier](ctx, input.SupplierId); err != nil {
		return errors.New("supplier not found")
	}
	if !input.Kg.IsPositive() {
		return utils.NewValidationError("kg must be greater than zero")
	}
	if input.CostRatePerKg.IsNegative() {
		return utils.NewValidationError("cost rate must not be negative")
	}
	if input.AmountPaid.IsNegative() {
		return utils.NewValidationError("amount paid must not be negative")
	}
	return nil
}

func CreatePurchase(ctx context.Context, input *NewPurchase) (*Purchase, error) {
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	purchase := Purchase{
		Date:          utils.DateOnly(input.Date),
		SupplierId:    input.SupplierId,
		VehicleNumber: input.VehicleNumber,
		Kg:            input.Kg,
		CostRatePerKg: input.CostRatePerKg,
		AmountPaid:    input.AmountPaid,
		Note:          input.Note,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&purchase).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

func UpdatePurchase(ctx context.Context, id int, input *NewPurchase) (*Purchase, error) {
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	purchase, err := utils.FetchModel[Purchase](ctx, id)
	if err != nil {
		return nil, err
	}

	purchase.Date = utils.DateOnly(input.Date)
	purchase.SupplierId = input.SupplierId
	purchase.VehicleNumber = input.VehicleNumber
	purchase.Kg = input.Kg
	purchase.CostRatePerKg = input.CostRatePerKg
	purchase.AmountPaid = input.AmountPaid
	purchase.Note = input.Note

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(purchase).Error; err != nil {
		return nil, err
	}
	return purchase, nil
}

func DeletePurchase(ctx context.Context, id int) error {
	purchase, err := utils.FetchModel[Purchase](ctx, id)
	if err != nil {
		return err
	}
	db := config.GetDB()
	return db.WithContext(ctx).Delete(purchase).Error
}

func GetPurchase(ctx context.Context, id int) (*Purchase, error) {
	return utils.FetchModel[Purchase](ctx, id, "Supplier")
}

func FindPurchasesByDateRange(ctx context.Context, start, end *time.Time) ([]*Purchase, error) {
	db := config.GetDB()
	query := db.WithContext(ctx).Preload("Supplier").Order("date DESC, created_at DESC")
	if start != nil {
		query = query.Where("date >= ?", utils.DateOnly(*start))
	}
	if end != nil {
		query = query.Where("date <= ?", utils.DateOnly(*end))
	}
	var purchases []*Purchase
	if err := query.Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

func FindPurchasesBySupplier(ctx context.Context, supplierId int, start, end *time.Time) ([]*Purchase, error) {
	db := config.GetDB()
	query := db.WithContext(ctx).Where("supplier_id = ?", supplierId).Order("date, id")
	if start != nil {
		query = query.Where("date >= ?", utils.DateOnly(*start))
	}
	if end != nil {
		query = query.Where("date <= ?", utils.DateOnly(*end))
	}
	var purchases []*Purchase
	if err := query.Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// TotalPurchasedKg sums purchased weight over the whole history; the
// daily report's closing stock is lifetime figures on purpose.
func TotalPurchasedKg(ctx context.Context) (decimal.Decimal, error) {
	db := config.GetDB()
	var total decimal.Decimal
	err := db.WithContext(ctx).Model(&Purchase{}).
		Select("COALESCE(SUM(kg), 0)").
		Scan(&total).Error
	if err != nil {
		return ZeroAmount, err
	}
	return total, nil
}
