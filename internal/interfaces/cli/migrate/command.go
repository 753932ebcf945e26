// Package migrate provides the CLI commands for managing database
// migrations.
package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"numbers/internal/infrastructure/config"
	"numbers/internal/infrastructure/database"
	"numbers/internal/infrastructure/migration"
	"numbers/internal/shared/logger"
)

var (
	env   string
	name  string
	steps int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Run migrations, roll them back, inspect status, or create new migration files.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func initEnv() (string, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return "", fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return "", fmt.Errorf("failed to initialize database: %w", err)
	}

	scriptsPath, err := filepath.Abs("./internal/infrastructure/migration/scripts")
	if err != nil {
		return "", fmt.Errorf("failed to get scripts path: %w", err)
	}

	return scriptsPath, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	scriptsPath, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	strategy := migration.NewGolangMigrateStrategy(scriptsPath)
	return strategy.Migrate(database.Get())
}

func runDown(cmd *cobra.Command, args []string) error {
	scriptsPath, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	strategy := migration.NewGolangMigrateStrategy(scriptsPath)
	return strategy.MigrateDown(database.Get(), steps)
}

func runStatus(cmd *cobra.Command, args []string) error {
	scriptsPath, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	strategy := migration.NewGolangMigrateStrategy(scriptsPath)
	version, dirty, err := strategy.GetVersion(database.Get())
	if err != nil {
		return err
	}

	fmt.Printf("version: %d dirty: %t\n", version, dirty)
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	scriptsPath, err := filepath.Abs("./internal/infrastructure/migration/scripts")
	if err != nil {
		return fmt.Errorf("failed to get scripts path: %w", err)
	}

	generator := migration.NewGenerator(scriptsPath)
	return generator.CreateMigration(name)
}
