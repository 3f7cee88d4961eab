package accessgate

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate_NoReflinkGrantsBasic(t *testing.T) {
	gate := NewGate(NewMemoryReflinkService(), zerolog.Nop())

	validation, err := gate.ValidateContext(context.Background(), "session-1", "")
	require.NoError(t, err)
	assert.True(t, validation.Valid)
	assert.Equal(t, AccessBasic, validation.AccessLevel)
	assert.Nil(t, validation.RemainingBudget)
}

func TestGate_UnknownReflinkRejected(t *testing.T) {
	gate := NewGate(NewMemoryReflinkService(), zerolog.Nop())

	validation, err := gate.ValidateContext(context.Background(), "session-1", "ref_nope")
	require.NoError(t, err)
	assert.False(t, validation.Valid)
	assert.Equal(t, "reflink not found", validation.Reason)
}

func TestGate_ExpiredReflinkRejected(t *testing.T) {
	svc := NewMemoryReflinkService()
	svc.Add(Reflink{
		ID:          "rl-1",
		Code:        "ref_expired",
		AccessLevel: AccessPremium,
		ExpiresAt:   time.Now().Add(-time.Hour),
	})
	gate := NewGate(svc, zerolog.Nop())

	validation, err := gate.ValidateContext(context.Background(), "session-1", "ref_expired")
	require.NoError(t, err)
	assert.False(t, validation.Valid)
	assert.Equal(t, "reflink expired", validation.Reason)
}

func TestGate_ValidReflinkCarriesLevelAndBudget(t *testing.T) {
	svc := NewMemoryReflinkService()
	svc.Add(Reflink{
		ID:             "rl-2",
		Code:           "ref_premium01",
		AccessLevel:    AccessPremium,
		TokenBudget:    1000,
		WelcomeMessage: "welcome back",
	})
	gate := NewGate(svc, zerolog.Nop())

	validation, err := gate.ValidateContext(context.Background(), "session-1", "ref_premium01")
	require.NoError(t, err)
	assert.True(t, validation.Valid)
	assert.Equal(t, AccessPremium, validation.AccessLevel)
	require.NotNil(t, validation.RemainingBudget)
	assert.Equal(t, int64(1000), validation.RemainingBudget.TokensRemaining)
	assert.Equal(t, "welcome back", validation.WelcomeMessage)
}

func TestGate_ExhaustedBudgetRejected(t *testing.T) {
	svc := NewMemoryReflinkService()
	svc.Add(Reflink{
		ID:          "rl-3",
		Code:        "ref_spent001",
		AccessLevel: AccessPremium,
		TokenBudget: 100,
	})
	require.NoError(t, svc.TrackUsage(context.Background(), "ref_spent001", UsageEvent{
		Type:   UsageLLMRequest,
		Tokens: 100,
	}))

	gate := NewGate(svc, zerolog.Nop())
	validation, err := gate.ValidateContext(context.Background(), "session-1", "ref_spent001")
	require.NoError(t, err)
	assert.False(t, validation.Valid)
	assert.Equal(t, "reflink budget exhausted", validation.Reason)
}

func TestMemoryReflinkService_TrackUsage(t *testing.T) {
	svc := NewMemoryReflinkService()
	svc.Add(Reflink{
		ID:          "rl-4",
		Code:        "ref_budget01",
		AccessLevel: AccessLimited,
		TokenBudget: 500,
		CostBudget:  2.0,
	})

	require.NoError(t, svc.TrackUsage(context.Background(), "ref_budget01", UsageEvent{
		Type:   UsageVoiceGeneration,
		Tokens: 200,
		Cost:   0.5,
	}))

	validation, err := svc.ValidateReflinkWithBudget(context.Background(), "ref_budget01")
	require.NoError(t, err)
	require.True(t, validation.Valid)
	assert.Equal(t, int64(300), validation.BudgetStatus.TokensRemaining)
	assert.InDelta(t, 1.5, validation.BudgetStatus.CostRemaining, 1e-9)
	assert.False(t, validation.BudgetStatus.Exhausted)

	events := svc.Events("ref_budget01")
	require.Len(t, events, 1)
	assert.Equal(t, UsageVoiceGeneration, events[0].Type)

	assert.Error(t, svc.TrackUsage(context.Background(), "ref_missing", UsageEvent{}))
}
