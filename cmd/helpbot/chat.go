package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/helpbot/internal/config"
	"github.com/sandevgo/helpbot/internal/providers/agent"
	"github.com/sandevgo/helpbot/internal/service/chat"
	"github.com/sandevgo/helpbot/internal/storage/sqlite"
	"github.com/sandevgo/helpbot/internal/transport/tui"
	"github.com/sandevgo/helpbot/pkg/log"
	"github.com/sandevgo/helpbot/pkg/srv"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the support chat",
	Long:  `Loads local conversation history and opens the interactive chat surface.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// The TUI owns the terminal, so logs go to a file under the runtime dir.
		runtimePath := config.GetRuntimePath()
		if err := os.MkdirAll(runtimePath, 0755); err != nil {
			return err
		}
		ctx, flushLog, err := log.NewContextWithFileLogger(ctx, debug || config.IsDebug(), filepath.Join(runtimePath, "helpbot.log"))
		if err != nil {
			return err
		}
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting helpbot")

		initEnv(ctx, runtimePath)

		ctx, done := context.WithCancel(ctx)
		defer done()

		services, err := newChatServices(ctx, done)
		if err != nil {
			return err
		}

		srv.StartServices(ctx, services)
		srv.ShutdownServices(ctx, services)

		logger.Info().Msg("helpbot closed")
		return nil
	},
}

func newChatServices(ctx context.Context, done context.CancelFunc) ([]srv.Service, error) {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	agentCfg := config.NewAgentConfig(ctx)

	// 2. Storage
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		return nil, err
	}
	services = append(services, srv.NewCleanup(db.Close))

	store := chat.NewStore(sqlite.NewConversationsRepo(db))
	if err := store.Load(ctx); err != nil {
		return nil, err
	}

	// 3. Answering service client
	client := agent.NewClient(agentCfg)
	svc := chat.NewService(store, client)

	// 4. Chat surface
	services = append(services, tui.NewTransport(ctx, svc, appCfg.ShowSidebar, done))

	logger.Debug().Str("agent", agentCfg.AgentID).Msg("chat services ready")
	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		return
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return
	}
	logger.Debug().Str("path", envFile).Msg("loaded .env file")
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
