package models

import "github.com/poultrytrade/ledger_backend/config"

// Migrate creates/updates every table.
func Migrate() error {
	db := config.GetDB()
	return db.AutoMigrate(
		&User{},
		&Customer{},
		&Supplier{},
		&DailyRate{},
		&Purchase{},
		&Sale{},
		&Payment{},
		&SupplierPayment{},
		&Expense{},
		&CustomerDeduction{},
	)
}
