package handlers

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/arvell/portico/pkg/dispatch"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// submitContactForm validates and forwards a contact message. The sink is
// called exactly once; a failed submission must not be retried blindly.
func (h *handlerSet) submitContactForm(ctx context.Context, _ dispatch.ExecutionContext, args map[string]interface{}) (interface{}, error) {
	msg := ContactMessage{
		Name:    strings.TrimSpace(stringArg(args, "name")),
		Email:   strings.TrimSpace(stringArg(args, "email")),
		Subject: strings.TrimSpace(stringArg(args, "subject")),
		Message: strings.TrimSpace(stringArg(args, "message")),
	}

	if msg.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if !emailPattern.MatchString(msg.Email) {
		return nil, fmt.Errorf("invalid email address: %q", msg.Email)
	}
	if msg.Message == "" {
		return nil, fmt.Errorf("message is required")
	}

	if err := h.deps.Contact.Submit(ctx, msg); err != nil {
		return nil, fmt.Errorf("contact submission failed: %w", err)
	}

	return map[string]interface{}{
		"submitted": true,
	}, nil
}
