package models

import (
	"context"
	"time"

	"github.com/poultrytrade/ledger_backend/config"
	"github.com/poultrytrade/ledger_backend/utils"
	"github.com/shopspring/decimal"
)

type Customer struct {
	ID             int             `gorm:"primary_key" json:"id"`
	Name           string          `gorm:"size:255;uniqueIndex;not null" json:"name" binding:"required"`
	Phone          string          `gorm:"size:20" json:"phone"`
	Address        string          `gorm:"type:text" json:"address"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(12,3);default:0" json:"opening_balance"`
	IsActive       *bool           `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewCustomer struct {
	Name           string          `json:"name" binding:"required"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	IsActive       *bool           `json:"is_active"`
}

// validate input for both create & update. (id = 0 for create)
func (input *NewCustomer) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[Customer](ctx, id); err != nil {
			return err
		}
	}
	// validate unique name
	if err := utils.ValidateUnique[Customer](ctx, "name", input.Name, id); err != nil {
		return err
	}
	// validate phone
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

func CreateCustomer(ctx context.Context, input *NewCustomer) (*Customer, error) {
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	isActive := input.IsActive
	if isActive == nil {
		isActive = utils.NewTrue()
	}
	customer := Customer{
		Name:           input.Name,
		Phone:          input.Phone,
		Address:        input.Address,
		OpeningBalance: input.OpeningBalance,
		IsActive:       isActive,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func UpdateCustomer(ctx context.Context, id int, input *NewCustomer) (*Customer, error) {
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	customer, err := utils.FetchModel[Customer](ctx, id)
	if err != nil {
		return nil, err
	}

	customer.Name = input.Name
	customer.Phone = input.Phone
	customer.Address = input.Address
	customer.OpeningBalance = input.OpeningBalance
	if input.IsActive != nil {
		customer.IsActive = input.IsActive
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer refuses to remove a customer that still owns sales,
// payments or deductions, to keep the ledger recomputable.
func DeleteCustomer(ctx context.Context, id int) error {
	customer, err := utils.FetchModel[Customer](ctx, id)
	if err != nil {
		return err
	}

	for _, check := range []struct {
		count func() (int64, error)
		what  string
	}{
		{func() (int64, error) { return utils.ResourceCountWhere[Sale](ctx, "customer_id = ?", id) }, "sales"},
		{func() (int64, error) { return utils.ResourceCountWhere[Payment](ctx, "customer_id = ?", id) }, "payments"},
		{func() (int64, error) { return utils.ResourceCountWhere[CustomerDeduction](ctx, "customer_id = ?", id) }, "deductions"},
	} {
		count, err := check.count()
		if err != nil {
			return err
		}
		if count > 0 {
			return utils.NewValidationError("customer has " + check.what + " and cannot be deleted")
		}
	}

	db := config.GetDB()
	return db.WithContext(ctx).Delete(customer).Error
}

func GetCustomer(ctx context.Context, id int) (*Customer, error) {
	return utils.FetchModel[Customer](ctx, id)
}

func ListCustomers(ctx context.Context) ([]*Customer, error) {
	db := config.GetDB()
	var customers []*Customer
	if err := db.WithContext(ctx).Order("name").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// GetCustomerRunningBalance loads the customer's ledger entries and
// folds them; the balance itself is never stored.
func GetCustomerRunningBalance(ctx context.Context, customer *Customer) (decimal.Decimal, error) {
	sales, err := FindSalesByCustomer(ctx, customer.ID, nil, nil)
	if err != nil {
		return ZeroAmount, err
	}
	payments, err := FindPaymentsByCustomer(ctx, customer.ID, nil, nil)
	if err != nil {
		return ZeroAmount, err
	}
	deductions, err := FindDeductionsByCustomer(ctx, customer.ID, nil, nil)
	if err != nil {
		return ZeroAmount, err
	}
	return CustomerRunningBalance(customer, sales, payments, deductions), nil
}
