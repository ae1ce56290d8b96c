package statemachine

import (
	"testing"

	"studio-akira-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name  string
		from  models.OrderStatus
		to    models.OrderStatus
		actor string
		ok    bool
	}{
		{"admin approves pending", models.StatusPending, models.StatusApproved, "admin", true},
		{"admin rejects pending", models.StatusPending, models.StatusRejected, "admin", true},
		{"customer cancels pending", models.StatusPending, models.StatusCancelled, "customer", true},
		{"customer cannot approve", models.StatusPending, models.StatusApproved, "customer", false},
		{"manufacturer starts production", models.StatusApproved, models.StatusInProduction, "manufacturer", true},
		{"manufacturer cannot skip to packaged", models.StatusApproved, models.StatusPackaged, "manufacturer", false},
		{"manufacturer readies packaging", models.StatusInProduction, models.StatusReadyForPackaging, "manufacturer", true},
		{"manufacturer packages", models.StatusReadyForPackaging, models.StatusPackaged, "manufacturer", true},
		{"delivery ships packaged", models.StatusPackaged, models.StatusShipped, "delivery", true},
		{"delivery delivers shipped", models.StatusShipped, models.StatusDelivered, "delivery", true},
		{"delivery cannot ship pending", models.StatusPending, models.StatusShipped, "delivery", false},
		{"customer cannot cancel shipped", models.StatusShipped, models.StatusCancelled, "customer", false},
		{"nothing leaves delivered", models.StatusDelivered, models.StatusPending, "admin", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransition(tt.from, tt.to, tt.actor)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidTransitionsFrom(t *testing.T) {
	nexts := ValidTransitionsFrom(models.StatusPending)
	require.Len(t, nexts, 3)
	assert.Contains(t, nexts, models.StatusApproved)
	assert.Contains(t, nexts, models.StatusRejected)
	assert.Contains(t, nexts, models.StatusCancelled)

	assert.Empty(t, ValidTransitionsFrom(models.StatusDelivered))
	assert.Empty(t, ValidTransitionsFrom(models.StatusCancelled))
	assert.Empty(t, ValidTransitionsFrom(models.StatusRejected))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(models.StatusDelivered))
	assert.True(t, IsTerminal(models.StatusCancelled))
	assert.True(t, IsTerminal(models.StatusRejected))
	assert.False(t, IsTerminal(models.StatusPending))
	assert.False(t, IsTerminal(models.StatusPackaged))
}

func TestTransitionErrorNamesValidNextStates(t *testing.T) {
	err := CanTransition(models.StatusPending, models.StatusShipped, "delivery")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pending")
	assert.Contains(t, err.Error(), "approved")
}
