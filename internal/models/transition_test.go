package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCanTransitionRedemption exercises the full redemption matrix.
func TestCanTransitionRedemption(t *testing.T) {
	all := []RedemptionStatus{
		RedemptionStatusPending,
		RedemptionStatusApproved,
		RedemptionStatusDispatched,
		RedemptionStatusCompleted,
		RedemptionStatusRejected,
	}
	legal := map[RedemptionStatus][]RedemptionStatus{
		RedemptionStatusPending:    {RedemptionStatusApproved, RedemptionStatusRejected},
		RedemptionStatusApproved:   {RedemptionStatusDispatched},
		RedemptionStatusDispatched: {RedemptionStatusCompleted},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, next := range legal[from] {
				if next == to {
					want = true
				}
			}
			assert.Equal(t, want, CanTransitionRedemption(from, to), "%s -> %s", from, to)
		}
	}
}

// TestCanTransitionWithdrawal exercises the full withdrawal matrix; only
// pending has outgoing edges.
func TestCanTransitionWithdrawal(t *testing.T) {
	all := []WithdrawalStatus{
		WithdrawalStatusPending,
		WithdrawalStatusApproved,
		WithdrawalStatusRejected,
	}

	for _, from := range all {
		for _, to := range all {
			want := from == WithdrawalStatusPending &&
				(to == WithdrawalStatusApproved || to == WithdrawalStatusRejected)
			assert.Equal(t, want, CanTransitionWithdrawal(from, to), "%s -> %s", from, to)
		}
	}
}

// TestTransition_UnknownStatus verifies garbage statuses never pass.
func TestTransition_UnknownStatus(t *testing.T) {
	assert.False(t, CanTransitionRedemption("bogus", RedemptionStatusApproved))
	assert.False(t, CanTransitionRedemption(RedemptionStatusPending, "bogus"))
	assert.False(t, CanTransitionWithdrawal("bogus", WithdrawalStatusApproved))
	assert.False(t, CanTransitionWithdrawal(WithdrawalStatusPending, "bogus"))
}
