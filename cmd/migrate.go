package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/spf13/cobra"

	"procurement.GO/config"
	"procurement.GO/migrations"
	"procurement.GO/model"
)

var migrateSteps int

// migrateURL turns the go-sql-driver DSN into a golang-migrate database URL.
func migrateURL(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return "mysql://" + dsn + sep + "multiStatements=true"
}

func newMigrator() (*migrate.Migrate, error) {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, err
	}
	return migrate.NewWithSourceInstance("iofs", src, migrateURL(config.MySQLDSN()))
}

var migrateCmd = &cobra.Command{
	Use:       "db:migrate [up|down|version]",
	Short:     "Apply the embedded MySQL migrations",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "version"},
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newMigrator()
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		defer m.Close()

		action := "up"
		if len(args) == 1 {
			action = args[0]
		}
		switch action {
		case "up":
			err = m.Up()
		case "down":
			err = m.Steps(-migrateSteps)
		case "version":
			v, dirty, verr := m.Version()
			if errors.Is(verr, migrate.ErrNilVersion) {
				fmt.Fprintln(cmd.OutOrStdout(), "No migrations applied")
				return nil
			}
			if verr != nil {
				return verr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Version %d (dirty=%t)\n", v, dirty)
			return nil
		}
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Fprintln(cmd.OutOrStdout(), "No change")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Migrate %s done\n", action)
		return nil
	},
}

var autoMigrateCmd = &cobra.Command{
	Use:   "db:automigrate",
	Short: "Create or update tables through GORM (SQLite dev databases)",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.NewDB()
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		if err := model.AutoMigrate(db); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "AutoMigrate done")
		return nil
	},
}

func init() {
	migrateCmd.Flags().IntVar(&migrateSteps, "steps", 1, "Number of migrations to roll back with down")
	rootCmd.AddCommand(migrateCmd, autoMigrateCmd)
}
