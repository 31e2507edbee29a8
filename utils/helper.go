package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bsm/redislock"
	"github.com/go-playground/validator/v10"
	"github.com/poultrytrade/ledger_backend/config"
	"github.com/ttacon/libphonenumber"
)

var CountryCode = "MM"

const DateLayout = "2006-01-02"

func ValidatePhoneNumber(phoneNumber, countryCode string) error {
	p, err := libphonenumber.Parse(phoneNumber, countryCode)
	if err != nil {
		return err
	}

	if !libphonenumber.IsValidNumber(p) {
		return fmt.Errorf("phone number is not valid")
	}

	return nil
}

func ProcessValidationErrors(err error) map[string]string {
	validationErrors := err.(validator.ValidationErrors)

	errorResponse := make(map[string]string)

	for _, ve := range validationErrors {
		errorResponse[ve.Field()] = ve.Tag()
	}

	return errorResponse
}

func NewTrue() *bool {
	b := true
	return &b
}

// ParseDate parses a YYYY-MM-DD calendar date. Transaction dates carry
// no time component.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, NewValidationError("date is required")
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, NewValidationError("invalid date format, use YYYY-MM-DD")
	}
	return t, nil
}

// DateOnly truncates a timestamp to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CustomerAllocationLock serialises payment allocation per customer so
// two payments cannot race to settle the same sale's remaining debt.
// Returns a release func. When Redis is not configured it is a no-op
// and the allocator relies on the database row locks alone.
func CustomerAllocationLock(ctx context.Context, customerId int, moduleName string, functionName string) (func(), error) {
	locker := config.GetRedisLock()
	if locker == nil {
		return func() {}, nil
	}
	logger := config.GetLogger()

	lockKey := fmt.Sprintf("allocation:customer:%d", customerId)
	lock, err := locker.Obtain(ctx, lockKey, 30*time.Second, nil)
	if err == redislock.ErrNotObtained {
		config.LogError(logger, moduleName, functionName, "could not obtain allocation lock", customerId, err)
		return nil, errors.New("another allocation is in progress for this customer")
	} else if err != nil {
		config.LogError(logger, moduleName, functionName, "error obtaining allocation lock", customerId, err)
		return nil, err
	}

	return func() {
		_ = lock.Release(ctx)
	}, nil
}
