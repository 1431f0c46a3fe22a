package main

import (
	"os"

	"github.com/sandevgo/helpbot/internal/config"
	"github.com/sandevgo/helpbot/internal/storage/sqlite"
	"github.com/sandevgo/helpbot/pkg/log"
	"github.com/sandevgo/helpbot/pkg/snapshot"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write conversation history as a JSON snapshot",
	Long:  `Serializes the full local conversation list (timestamps in RFC3339) to stdout or a file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		appCfg := config.NewAppConfig(ctx)
		db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
		if err != nil {
			return err
		}
		defer db.Close()

		// Read the repository directly; exporting must not write anything,
		// not even the welcome conversation a fresh store opens with.
		convs, err := sqlite.NewConversationsRepo(db).LoadAll(ctx)
		if err != nil {
			return err
		}

		data, err := snapshot.Encode(convs)
		if err != nil {
			return err
		}

		if exportOutput == "" || exportOutput == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(exportOutput, data, 0644); err != nil {
			return err
		}
		log.FromCtx(ctx).Info().Str("path", exportOutput).Msg("snapshot written")
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "-", "output file ('-' for stdout)")
	rootCmd.AddCommand(exportCmd)
}
