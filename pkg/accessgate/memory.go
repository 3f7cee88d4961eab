package accessgate

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryReflinkService is an in-process ReflinkService and UsageTracker.
// It backs tests and single-node deployments; durable deployments swap in
// a persistent implementation behind the same interfaces.
type MemoryReflinkService struct {
	mu       sync.RWMutex
	reflinks map[string]Reflink
	tokens   map[string]int64
	cost     map[string]float64
	events   map[string][]UsageEvent
	now      func() time.Time
}

// NewMemoryReflinkService creates an empty in-memory reflink service.
func NewMemoryReflinkService() *MemoryReflinkService {
	return &MemoryReflinkService{
		reflinks: make(map[string]Reflink),
		tokens:   make(map[string]int64),
		cost:     make(map[string]float64),
		events:   make(map[string][]UsageEvent),
		now:      time.Now,
	}
}

// Add registers a reflink. The reflink is addressable both by ID and code.
func (s *MemoryReflinkService) Add(r Reflink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reflinks[r.Code] = r
	if r.ID != "" && r.ID != r.Code {
		s.reflinks[r.ID] = r
	}
}

// ValidateReflinkWithBudget implements ReflinkService.
func (s *MemoryReflinkService) ValidateReflinkWithBudget(_ context.Context, code string) (ReflinkValidation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reflinks[code]
	if !ok {
		return ReflinkValidation{Valid: false, Reason: "reflink not found"}, nil
	}
	if !r.ExpiresAt.IsZero() && s.now().After(r.ExpiresAt) {
		return ReflinkValidation{Valid: false, Reason: "reflink expired"}, nil
	}

	budget := s.budgetLocked(r)
	return ReflinkValidation{
		Valid:          true,
		Reflink:        &r,
		BudgetStatus:   &budget,
		WelcomeMessage: r.WelcomeMessage,
	}, nil
}

// TrackUsage implements UsageTracker.
func (s *MemoryReflinkService) TrackUsage(_ context.Context, reflinkID string, ev UsageEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reflinks[reflinkID]; !ok {
		return fmt.Errorf("unknown reflink: %s", reflinkID)
	}

	key := s.canonicalKeyLocked(reflinkID)
	s.tokens[key] += ev.Tokens
	s.cost[key] += ev.Cost
	s.events[key] = append(s.events[key], ev)
	return nil
}

// Events returns the usage events tracked against a reflink.
func (s *MemoryReflinkService) Events(reflinkID string) []UsageEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := s.canonicalKeyLocked(reflinkID)
	out := make([]UsageEvent, len(s.events[key]))
	copy(out, s.events[key])
	return out
}

func (s *MemoryReflinkService) budgetLocked(r Reflink) BudgetStatus {
	key := r.ID
	if key == "" {
		key = r.Code
	}

	tokensRemaining := r.TokenBudget - s.tokens[key]
	costRemaining := r.CostBudget - s.cost[key]

	exhausted := false
	if r.TokenBudget > 0 && tokensRemaining <= 0 {
		exhausted = true
	}
	if r.CostBudget > 0 && costRemaining <= 0 {
		exhausted = true
	}

	return BudgetStatus{
		TokensRemaining: tokensRemaining,
		CostRemaining:   costRemaining,
		Exhausted:       exhausted,
	}
}

func (s *MemoryReflinkService) canonicalKeyLocked(reflinkID string) string {
	if r, ok := s.reflinks[reflinkID]; ok && r.ID != "" {
		return r.ID
	}
	return reflinkID
}
