package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"procurement.GO/config"
	"procurement.GO/core/logger"
)

var rootCmd = &cobra.Command{
	Use:           "procurement",
	Short:         "Purchase order lifecycle and receiving service tools",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute registers custom commands and runs the CLI.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// bootstrap loads the app config and opens the logger and database.
func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg := config.LoadAppConfig()
	zaplog, err := logger.NewZapLog(cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("logger: %w", err)
	}
	db, err := config.NewDB()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("database connection failed: %w", err)
	}
	return cfg, zaplog, db, nil
}
