package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sismaterial/helpdesk/internal/domain/ticket"
	"github.com/sismaterial/helpdesk/internal/domain/user"
	"github.com/sismaterial/helpdesk/internal/infrastructure/database"
	"github.com/sismaterial/helpdesk/internal/infrastructure/migration"
	"github.com/sismaterial/helpdesk/internal/infrastructure/persistence/jsonstore"
	"github.com/sismaterial/helpdesk/internal/interfaces/cli/common"
	"github.com/sismaterial/helpdesk/internal/shared/db"
)

var (
	env         string
	configPath  string
	steps       int
	usersFile   string
	ticketsFile string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage the SQL schema and import the legacy JSON stores into the SQL backend.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newImportCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the database schema up to date.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version and status of the database.`,
		RunE:  runStatus,
	}
}

func newImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import legacy JSON stores",
		Long: `Copy users and tickets from the legacy JSON files into the SQL backend.
Tickets keep their numbers and order; records that already exist are skipped.`,
		RunE: runImport,
	}

	cmd.Flags().StringVar(&usersFile, "users", "", "Legacy users file (e.g. data/dados_cadastrais.json)")
	cmd.Flags().StringVar(&ticketsFile, "tickets", "", "Legacy tickets file (e.g. data/tickets.json)")

	return cmd
}

// initEnv loads configuration and connects to the SQL database.
func initEnv(command string) (*common.Env, func(), error) {
	e, err := common.Setup(env, configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := e.RequireSQL(command); err != nil {
		return nil, nil, err
	}
	closeDB, err := e.OpenDatabase()
	if err != nil {
		return nil, nil, err
	}
	return e, closeDB, nil
}

func gooseStrategy(e *common.Env) (*migration.GooseStrategy, error) {
	return migration.NewGooseStrategy(e.Config.Storage.Driver, e.Logger)
}

func runUp(cmd *cobra.Command, args []string) error {
	e, closeDB, err := initEnv("migrate up")
	if err != nil {
		return err
	}
	defer closeDB()

	log := e.Logger
	log.Infow("running up migrations", "environment", env)

	strategy, err := gooseStrategy(e)
	if err != nil {
		return err
	}
	if err := migration.NewManagerWithStrategy(strategy, log).Migrate(database.Get()); err != nil {
		return err
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	e, closeDB, err := initEnv("migrate down")
	if err != nil {
		return err
	}
	defer closeDB()

	log := e.Logger
	log.Infow("running down migrations", "environment", env, "steps", steps)

	strategy, err := gooseStrategy(e)
	if err != nil {
		return err
	}
	if err := strategy.MigrateDown(database.Get(), steps); err != nil {
		log.Errorw("down migration failed", "error", err)
		return fmt.Errorf("down migration failed: %w", err)
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	e, closeDB, err := initEnv("migrate status")
	if err != nil {
		return err
	}
	defer closeDB()

	strategy, err := gooseStrategy(e)
	if err != nil {
		return err
	}

	version, err := strategy.GetVersion(database.Get())
	if err != nil {
		e.Logger.Errorw("failed to get migration version", "error", err)
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nMigration Status:\n")
	fmt.Fprintf(out, "  Environment:     %s\n", env)
	fmt.Fprintf(out, "  Driver:          %s\n", e.Config.Storage.Driver)
	fmt.Fprintf(out, "  Current Version: %d\n", version)

	if err := strategy.Status(database.Get()); err != nil {
		e.Logger.Errorw("failed to get detailed status", "error", err)
		return fmt.Errorf("failed to get detailed status: %w", err)
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	if usersFile == "" && ticketsFile == "" {
		return fmt.Errorf("nothing to import: pass --users and/or --tickets")
	}

	e, closeDB, err := initEnv("migrate import")
	if err != nil {
		return err
	}
	defer closeDB()

	target, err := e.Stores()
	if err != nil {
		return err
	}
	restorer, ok := target.Tickets.(migration.TicketRestorer)
	if !ok {
		return fmt.Errorf("ticket store %T cannot restore numbered tickets", target.Tickets)
	}

	var (
		sourceUsers   user.Repository
		sourceTickets ticket.Repository
	)
	if usersFile != "" {
		sourceUsers = jsonstore.NewUserStore(usersFile, e.Logger.Named("jsonstore.user"))
	}
	if ticketsFile != "" {
		sourceTickets = jsonstore.NewTicketStore(ticketsFile, e.Logger.Named("jsonstore.ticket"))
	}

	result, err := migration.NewImporter(
		sourceUsers, sourceTickets, target.Users, restorer,
		db.NewTransactionManager(database.Get()), e.Logger,
	).Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Users:   %d imported, %d skipped\nTickets: %d imported, %d skipped\n",
		result.UsersImported, result.UsersSkipped, result.TicketsImported, result.TicketsSkipped)
	return nil
}
