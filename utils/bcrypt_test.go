package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	t.Setenv("BCRYPT_COST", "4")

	hashed, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := ComparePassword(string(hashed), "secret123"); err != nil {
		t.Fatalf("compare with correct password: %v", err)
	}
	if err := ComparePassword(string(hashed), "wrong"); err == nil {
		t.Fatal("compare with wrong password succeeded")
	}
}

func TestBcryptCostFromEnv(t *testing.T) {
	t.Setenv("BCRYPT_COST", "4")
	hashed, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	cost, err := bcrypt.Cost(hashed)
	if err != nil {
		t.Fatalf("read cost: %v", err)
	}
	if cost != 4 {
		t.Fatalf("cost = %d, want 4", cost)
	}
}

func TestBcryptCostClampsAndDefaults(t *testing.T) {
	t.Setenv("BCRYPT_COST", "")
	if got := bcryptCost(); got != bcrypt.DefaultCost {
		t.Fatalf("unset cost = %d, want default %d", got, bcrypt.DefaultCost)
	}
	t.Setenv("BCRYPT_COST", "not-a-number")
	if got := bcryptCost(); got != bcrypt.DefaultCost {
		t.Fatalf("garbage cost = %d, want default %d", got, bcrypt.DefaultCost)
	}
	t.Setenv("BCRYPT_COST", "1")
	if got := bcryptCost(); got != bcrypt.MinCost {
		t.Fatalf("low cost = %d, want min %d", got, bcrypt.MinCost)
	}
	t.Setenv("BCRYPT_COST", "99")
	if got := bcryptCost(); got != bcrypt.MaxCost {
		t.Fatalf("high cost = %d, want max %d", got, bcrypt.MaxCost)
	}
}
