package accessgate

import (
	"context"
	"time"
)

// Reflink is a shareable access token carrying an access tier and a
// consumable usage budget.
type Reflink struct {
	ID             string      `json:"id"`
	Code           string      `json:"code"`
	AccessLevel    AccessLevel `json:"access_level"`
	ExpiresAt      time.Time   `json:"expires_at"`
	TokenBudget    int64       `json:"token_budget"`
	CostBudget     float64     `json:"cost_budget"`
	WelcomeMessage string      `json:"welcome_message,omitempty"`
}

// BudgetStatus is the remaining budget on a reflink at validation time.
type BudgetStatus struct {
	TokensRemaining int64   `json:"tokensRemaining"`
	CostRemaining   float64 `json:"costRemaining"`
	Exhausted       bool    `json:"exhausted"`
}

// ReflinkValidation is the outcome of validating a reflink code.
type ReflinkValidation struct {
	Valid          bool
	Reflink        *Reflink
	BudgetStatus   *BudgetStatus
	WelcomeMessage string
	Reason         string
}

// ReflinkService validates reflink codes and reports budget status.
// Durable reflink state lives behind this boundary.
type ReflinkService interface {
	ValidateReflinkWithBudget(ctx context.Context, code string) (ReflinkValidation, error)
}
