package accessgate

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// ContextValidation is the resolved access decision for one call.
type ContextValidation struct {
	Valid           bool
	AccessLevel     AccessLevel
	RemainingBudget *BudgetStatus
	WelcomeMessage  string
	Reason          string
}

// ContextValidator resolves a (sessionID, reflinkID) pair into an access
// decision. The dispatcher consults it once per call.
type ContextValidator interface {
	ValidateContext(ctx context.Context, sessionID, reflinkID string) (ContextValidation, error)
}

// Gate is the default ContextValidator. Without a reflink a caller gets
// basic access; with one, the reflink service decides.
type Gate struct {
	reflinks ReflinkService
	logger   zerolog.Logger
}

// NewGate creates a Gate backed by the given reflink service.
func NewGate(reflinks ReflinkService, logger zerolog.Logger) *Gate {
	return &Gate{
		reflinks: reflinks,
		logger:   logger.With().Str("component", "accessgate").Logger(),
	}
}

// ValidateContext implements ContextValidator.
func (g *Gate) ValidateContext(ctx context.Context, sessionID, reflinkID string) (ContextValidation, error) {
	if reflinkID == "" {
		return ContextValidation{
			Valid:       true,
			AccessLevel: AccessBasic,
		}, nil
	}

	if g.reflinks == nil {
		return ContextValidation{}, fmt.Errorf("reflink service is not configured")
	}

	validation, err := g.reflinks.ValidateReflinkWithBudget(ctx, reflinkID)
	if err != nil {
		return ContextValidation{}, fmt.Errorf("reflink validation failed: %w", err)
	}

	if !validation.Valid {
		reason := validation.Reason
		if reason == "" {
			reason = "reflink is not valid"
		}
		g.logger.Warn().
			Str("session_id", sessionID).
			Str("reflink_id", reflinkID).
			Str("reason", reason).
			Msg("Reflink rejected")
		return ContextValidation{Valid: false, Reason: reason}, nil
	}

	if validation.BudgetStatus != nil && validation.BudgetStatus.Exhausted {
		g.logger.Warn().
			Str("session_id", sessionID).
			Str("reflink_id", reflinkID).
			Msg("Reflink budget exhausted")
		return ContextValidation{Valid: false, Reason: "reflink budget exhausted"}, nil
	}

	level := AccessBasic
	if validation.Reflink != nil && validation.Reflink.AccessLevel.Valid() {
		level = validation.Reflink.AccessLevel
	}

	return ContextValidation{
		Valid:           true,
		AccessLevel:     level,
		RemainingBudget: validation.BudgetStatus,
		WelcomeMessage:  validation.WelcomeMessage,
	}, nil
}
