package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/docchat-labs/docchat-cli/internal/core/ports/driven"
)

// pingTimeout bounds connectivity checks against remote providers.
const pingTimeout = 5 * time.Second

// ValidateLLMService checks that the chat provider is reachable with
// the configured credentials. A nil service passes validation; it
// means no provider is configured.
func ValidateLLMService(svc driven.LLMService) error {
	if svc == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		return fmt.Errorf("LLM provider %s unreachable: %w", svc.ModelName(), err)
	}
	return nil
}
