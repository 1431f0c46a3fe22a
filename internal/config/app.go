package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/helpbot/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"HELPBOT_RUNTIME_PATH" envDefault:".helpbot"`

	// Sidebar defaults to visible; can be switched off for narrow terminals.
	ShowSidebar bool `env:"HELPBOT_SHOW_SIDEBAR" envDefault:"true"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	if filepath.IsAbs(c.RuntimePath) {
		return c.RuntimePath
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, c.RuntimePath)
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.GetRuntimePath(), "helpbot.db")
}
