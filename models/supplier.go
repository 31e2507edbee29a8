package models

import (
	"context"
	"time"

	"github.com/poultrytrade/ledger_backend/config"
	"github.com/poultrytrade/ledger_backend/utils"
	"github.com/shopspring/decimal"
)

type Supplier struct {
	ID             int             `gorm:"primary_key" json:"id"`
	Name           string          `gorm:"size:255;uniqueIndex;not null" json:"name" binding:"required"`
	Phone          string          `gorm:"size:20" json:"phone"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(12,3);default:0" json:"opening_balance"`
	IsActive       *bool           `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewSupplier struct {
	Name           string          `json:"name" binding:"required"`
	Phone          string          `json:"phone"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	IsActive       *bool           `json:"is_active"`
}

func (input *NewSupplier) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[Supplier](ctx, id); err != nil {
			return err
		}
	}
	if err := utils.ValidateUnique[Supplier](ctx, "name", input.Name, id); err != nil {
		return err
	}
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return utils.NewValidationError("phone number is not valid")
		}
	}
	if input.OpeningBalance.IsNegative() {
		return utils.NewValidationError("opening balance must not be negative")
	}
	return nil
}

func CreateSupplier(ctx context.Context, input *NewSupplier) (*Supplier, error) {
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	isActive := input.IsActive
	if isActive == nil {
		isActive = utils.NewTrue()
	}
	supplier := Supplier{
		Name:           input.Name,
		Phone:          input.Phone,
		OpeningBalance: input.OpeningBalance,
		IsActive:       isActive,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&supplier).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func UpdateSupplier(ctx context.Context, id int, input *NewSupplier) (*Supplier, error) {
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	supplier, err := utils.FetchModel[Supplier](ctx, id)
	if err != nil {
		return nil, err
	}

	supplier.Name = input.Name
	supplier.Phone = input.Phone
	supplier.OpeningBalance = input.OpeningBalance
	if input.IsActive != nil {
		supplier.IsActive = input.IsActive
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(supplier).Error; err != nil {
		return nil, err
	}
	return supplier, nil
}

func DeleteSupplier(ctx context.Context, id int) error {
	supplier, err := utils.FetchModel[Supplier](ctx, id)
	if err != nil {
		return err
	}

	count, err := utils.ResourceCountWhere[Purchase](ctx, "supplier_id = ?", id)
	if err != nil {
		return err
	}
	if count > 0 {
		return utils.NewValidationError("supplier has purchases and cannot be deleted")
	}
	count, err = utils.ResourceCountWhere[SupplierPayment](ctx, "supplier_id = ?", id)
	if err != nil {
		return err
	}
	if count > 0 {
		return utils.NewValidationError("supplier has payments and cannot be deleted")
	}

	db := config.GetDB()
	return db.WithContext(ctx).Delete(supplier).Error
}

func GetSupplier(ctx context.Context, id int) (*Supplier, error) {
	return utils.FetchModel[Supplier](ctx, id)
}

func ListSuppliers(ctx context.Context) ([]*Supplier, error) {
	db := config.GetDB()
	var suppliers []*Supplier
	if err := db.WithContext(ctx).Order("name").Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

func GetSupplierRunningBalance(ctx context.Context, supplier *Supplier) (decimal.Decimal, error) {
	purchases, err := FindPurchasesBySupplier(ctx, supplier.ID, nil, nil)
	if err != nil {
		return ZeroAmount, err
	}
	payments, err := FindSupplierPaymentsBySupplier(ctx, supplier.ID, nil, nil)
	if err != nil {
		return ZeroAmount, err
	}
	return SupplierRunningBalance(supplier, purchases, payments), nil
}
