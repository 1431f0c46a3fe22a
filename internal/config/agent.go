package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/helpbot/pkg/log"
)

// AgentConfig points the client at the hosted answering service. The agent ID
// is fixed per deployment; the default is the shared support agent.
type AgentConfig struct {
	BaseURL string `env:"HELPBOT_AGENT_URL,notEmpty" envDefault:"https://agents.helpbot.dev"`
	AgentID string `env:"HELPBOT_AGENT_ID,notEmpty" envDefault:"support-general"`
	APIKey  string `env:"HELPBOT_AGENT_API_KEY"`
}

func NewAgentConfig(ctx context.Context) *AgentConfig {
	c := &AgentConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Agent config")
	}
	return c
}
