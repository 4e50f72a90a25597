package assistant

import (
	"github.com/voyara/backend/internal/domain/providers"
	"github.com/voyara/backend/internal/infrastructure/clients/vega"
	"github.com/voyara/backend/pkg/config"
)

// NewProvider selects the assistant implementation from configuration.
// "remote" requires a base URL; anything else falls back to the scripted
// provider.
func NewProvider(cfg *config.AssistantConfig) providers.AssistantProvider {
	if cfg.Provider == "remote" && cfg.BaseURL != "" {
		return NewRemoteProvider(vega.NewHTTPClient(cfg.BaseURL, cfg.Timeout))
	}
	return NewScriptedProvider()
}
