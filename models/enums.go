package models

type PaymentMethod string

const (
	PaymentMethodCash  PaymentMethod = "cash"
	PaymentMethodBank  PaymentMethod = "bank"
	PaymentMethodOther PaymentMethod = "other"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBank, PaymentMethodOther:
		return true
	}
	return false
}

type ExpenseCategory string

const (
	ExpenseCategoryVanRepair ExpenseCategory = "van_repair"
	ExpenseCategoryFeed      ExpenseCategory = "feed"
	ExpenseCategorySalary    ExpenseCategory = "salary"
	ExpenseCategoryPetrol    ExpenseCategory = "petrol"
	ExpenseCategoryOther     ExpenseCategory = "other"
)

// ExpenseCategories returns every category in a fixed order. Report
// breakdowns list all of them, zero-filled when absent.
func ExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{
		ExpenseCategoryVanRepair,
		ExpenseCategoryFeed,
		ExpenseCategorySalary,
		ExpenseCategoryPetrol,
		ExpenseCategoryOther,
	}
}

func (c ExpenseCategory) Valid() bool {
	for _, known := range ExpenseCategories() {
		if c == known {
			return true
		}
	}
	return false
}

type DeductionType string

const (
	DeductionTypeReturn   DeductionType = "return"
	DeductionTypeDiscount DeductionType = "discount"
	DeductionTypeDamage   DeductionType = "damage"
	DeductionTypeOther    DeductionType = "other"
)

func (t DeductionType) Valid() bool {
	switch t {
	case DeductionTypeReturn, DeductionTypeDiscount, DeductionTypeDamage, DeductionTypeOther:
		return true
	}
	return false
}

// AllocationState is a two-state machine on Payment. The only legal
// transition is Unallocated -> Allocated, performed by the allocator.
type AllocationState string

const (
	AllocationStateUnallocated AllocationState = "Unallocated"
	AllocationStateAllocated   AllocationState = "Allocated"
)
