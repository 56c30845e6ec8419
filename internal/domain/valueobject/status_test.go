package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContractStatus(t *testing.T) {
	s, err := NewContractStatus("ACTIVE")
	require.NoError(t, err)
	assert.True(t, s.Equal(ContractStatusActive))
	assert.False(t, s.IsTerminal())

	for _, terminal := range []ContractStatus{ContractStatusCompleted, ContractStatusCancelled} {
		assert.True(t, terminal.IsTerminal(), terminal.String())
	}
	// DEFAULTED contracts still see collections activity.
	assert.False(t, ContractStatusDefaulted.IsTerminal())
	assert.False(t, ContractStatusSuspended.IsTerminal())

	_, err = NewContractStatus("FROZEN")
	assert.Error(t, err)
}

func TestInstallmentStatus_IsAllocatable(t *testing.T) {
	allocatable := []InstallmentStatus{InstallmentStatusDue, InstallmentStatusOverdue, InstallmentStatusPartiallyPaid}
	for _, s := range allocatable {
		assert.True(t, s.IsAllocatable(), s.String())
	}

	notAllocatable := []InstallmentStatus{InstallmentStatusPending, InstallmentStatusPaid, InstallmentStatusSkipped, InstallmentStatusWrittenOff}
	for _, s := range notAllocatable {
		assert.False(t, s.IsAllocatable(), s.String())
	}
}

func TestPaymentStatus(t *testing.T) {
	s, err := NewPaymentStatus("COMPLETED")
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", s.String())

	_, err = NewPaymentStatus("completed")
	assert.Error(t, err)
}

func TestProductRoundTrip(t *testing.T) {
	for _, code := range []string{"PAY_IN_4", "PAY_IN_30", "PAY_IN_FULL", "FINANCING"} {
		p, err := NewProduct(code)
		require.NoError(t, err)
		assert.Equal(t, code, p.String())
		assert.False(t, p.IsZero())
	}

	_, err := NewProduct("LAYAWAY")
	assert.ErrorIs(t, err, ErrInvalidProduct)
	assert.True(t, Product{}.IsZero())
}
