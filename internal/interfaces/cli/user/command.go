// Package user manages portal accounts from the command line.
package user

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sismaterial/helpdesk/internal/application/user/dto"
	"github.com/sismaterial/helpdesk/internal/application/user/usecases"
	"github.com/sismaterial/helpdesk/internal/infrastructure/auth"
	"github.com/sismaterial/helpdesk/internal/infrastructure/database"
	"github.com/sismaterial/helpdesk/internal/infrastructure/permission"
	"github.com/sismaterial/helpdesk/internal/interfaces/cli/common"
	"github.com/sismaterial/helpdesk/internal/shared/authorization"
)

var (
	env        string
	configPath string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage portal users",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(newAddCommand(), newListCommand())
	return cmd
}

func newAddCommand() *cobra.Command {
	var email, name, password, role string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a user",
		Long:  `Register a user in the configured store. Use --role suporte for support staff.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, closeDB, err := initEnv()
			if err != nil {
				return err
			}
			defer closeDB()

			stores, err := e.Stores()
			if err != nil {
				return err
			}

			var roles usecases.RoleSyncer
			if db := database.Get(); db != nil {
				enforcer, err := permission.NewEnforcer(db, e.Logger.Named("permission"))
				if err != nil {
					return err
				}
				roles = enforcer
			}

			hasher := auth.NewBcryptPasswordHasher(e.Config.Auth.Password.BcryptCost)
			uc := usecases.NewRegisterUserUseCase(stores.Users, hasher, roles, e.Logger.Named("usecase.register_user"))

			created, err := uc.Execute(cmd.Context(), usecases.RegisterUserCommand{
				Email:    email,
				Name:     name,
				Password: password,
				Role:     role,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "registered %s <%s> as %s\n", created.Name, created.Email, created.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&password, "password", "", "Initial password (required)")
	cmd.Flags().StringVar(&role, "role", authorization.RoleUser.String(), "Role: usuario or suporte")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newListCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered users",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, closeDB, err := initEnv()
			if err != nil {
				return err
			}
			defer closeDB()

			stores, err := e.Stores()
			if err != nil {
				return err
			}

			users, err := usecases.NewListUsersUseCase(stores.Users, e.Logger.Named("usecase.list_users")).Execute(cmd.Context())
			if err != nil {
				return err
			}
			return printUsers(cmd.OutOrStdout(), users, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table, yaml or json")
	return cmd
}

func initEnv() (*common.Env, func(), error) {
	e, err := common.Setup(env, configPath)
	if err != nil {
		return nil, nil, err
	}
	closeDB, err := e.OpenDatabase()
	if err != nil {
		return nil, nil, err
	}
	return e, closeDB, nil
}

func printUsers(w io.Writer, users []dto.UserDTO, output string) error {
	switch output {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(users); err != nil {
			return fmt.Errorf("failed to encode users: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(users)
	case "table", "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "EMAIL\tNAME\tROLE")
		for _, u := range users {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", u.Email, u.Name, u.Role)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}
