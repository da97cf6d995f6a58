package domain

import (
	"errors"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Message: "trades file is required"}
	if err.Error() != "trades file is required" {
		t.Errorf("Error() = %q, want %q", err.Error(), "trades file is required")
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	errs := []error{
		ErrClientNotFound,
		ErrHoldingNotFound,
		ErrInsufficientFunds,
		ErrInsufficientHoldings,
		ErrNoFile,
		ErrNoOrders,
	}
	for i := 0; i < len(errs); i++ {
		for j := i + 1; j < len(errs); j++ {
			if errors.Is(errs[i], errs[j]) {
				t.Errorf("sentinel errors %d and %d should be distinct", i, j)
			}
		}
	}
}
