package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sismaterial/helpdesk/internal/interfaces/cli/migrate"
	"github.com/sismaterial/helpdesk/internal/interfaces/cli/server"
	"github.com/sismaterial/helpdesk/internal/interfaces/cli/user"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "helpdesk",
		Short:        "Helpdesk - support ticket portal",
		Long:         `Helpdesk serves the ticket portal and its JSON API, and manages users and the SQL schema.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		user.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
