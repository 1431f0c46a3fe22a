package main

import (
	"fmt"
	"os"

	"github.com/sandevgo/helpbot/internal/config"
	"github.com/sandevgo/helpbot/internal/storage/sqlite"
	"github.com/sandevgo/helpbot/pkg/log"
	"github.com/sandevgo/helpbot/pkg/snapshot"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <snapshot.json>",
	Short: "Replace conversation history from a JSON snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		convs, err := snapshot.Decode(data)
		if err != nil {
			return fmt.Errorf("invalid snapshot: %w", err)
		}

		appCfg := config.NewAppConfig(ctx)
		db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := sqlite.NewConversationsRepo(db).Replace(ctx, convs); err != nil {
			return err
		}

		log.FromCtx(ctx).Info().Int("conversations", len(convs)).Msg("history imported")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
