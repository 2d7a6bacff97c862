package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"bookstore-api/internal/domains/account"
	"bookstore-api/internal/domains/account/model"
	accountRepo "bookstore-api/internal/domains/account/repository"
	infradb "bookstore-api/internal/infrastructure/database"
	"bookstore-api/pkg/container"
	"bookstore-api/pkg/database"
)

// flagKeys maps command flags onto config keys so flags win over env and file
var flagKeys = map[string]string{
	"port":              "app_port",
	"db-driver":         "db_driver",
	"admin-password":    "seed_admin_password",
	"customer-password": "seed_customer_password",
}

func bindCommandFlags(cmd *cobra.Command) error {
	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || err != nil {
			return
		}
		err = v.BindPFlag(key, f)
	})
	return err
}

// ========================================
// serve
// ========================================

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		c, err := container.NewContainer(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize container: %w", err)
		}
		defer c.Cleanup()

		if serveMigrate {
			if err := infradb.Migrate(ctx, c.DB); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
		}

		return Serve(ctx, c)
	},
}

// ========================================
// migrate
// ========================================

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema (idempotent)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd.Context(), func(ctx context.Context, db database.DB) error {
			if err := infradb.Migrate(ctx, db); err != nil {
				return err
			}
			log.Info().Str("driver", cfg.Database.Driver).Msg("[MIGRATE] Schema is up to date")
			return nil
		})
	},
}

// ========================================
// seed
// ========================================

// seedAccount is an account the seed command guarantees
type seedAccount struct {
	email    string
	password string
	role     model.Role
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the default administrator and customer accounts when absent",
	RunE: func(cmd *cobra.Command, args []string) error {
		accounts := []seedAccount{
			{"admin@bookstore.com", cfg.Seed.AdminPassword, model.RoleAdministrator},
			{"customer1@gmail.com", cfg.Seed.CustomerPassword, model.RoleCustomer},
			{"customer2@gmail.com", cfg.Seed.CustomerPassword, model.RoleCustomer},
		}

		return withDatabase(cmd.Context(), func(ctx context.Context, db database.DB) error {
			if err := infradb.Migrate(ctx, db); err != nil {
				return err
			}
			return seedAccounts(ctx, newAccountRepo(db), accounts)
		})
	},
}

// seedAccounts creates missing accounts and (re)grants their role
func seedAccounts(ctx context.Context, repo account.Repository, accounts []seedAccount) error {
	for _, s := range accounts {
		a, err := repo.FindByEmail(ctx, s.email)
		switch {
		case errors.Is(err, model.ErrAccountNotFound):
			if s.password == "" {
				return fmt.Errorf("no seed password configured for %s", s.email)
			}
			if a, err = repo.Create(ctx, s.email, s.password); err != nil {
				return fmt.Errorf("create %s: %w", s.email, err)
			}
			log.Info().Str("email", a.Email).Msg("[SEED] Account created")
		case err != nil:
			return fmt.Errorf("find %s: %w", s.email, err)
		}

		if err := repo.AssignRoles(ctx, a.ID, s.role); err != nil {
			return fmt.Errorf("assign %s to %s: %w", s.role, s.email, err)
		}
	}
	return nil
}

// ========================================
// accounts create
// ========================================

var (
	newAccountEmail string
	newAccountRoles []string
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Administrative account management",
}

var accountsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account and grant it roles; the password is read from the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		policy := model.PasswordPolicy{
			MinLength: cfg.Auth.PasswordMinLength,
			MaxLength: cfg.Auth.PasswordMaxLength,
		}

		return withDatabase(cmd.Context(), func(ctx context.Context, db database.DB) error {
			a, err := createAccount(ctx, newAccountRepo(db), policy, newAccountEmail, password, newAccountRoles)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", a.Email, a.ID)
			return nil
		})
	},
}

// createAccount validates like registration, then grants the given roles
func createAccount(ctx context.Context, repo account.Repository, policy model.PasswordPolicy, email, password string, roleNames []string) (*model.Account, error) {
	roles := make([]model.Role, 0, len(roleNames))
	for _, name := range roleNames {
		r, err := model.ParseRole(name)
		if err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}

	req := model.RegisterRequest{Email: email, Password: password}
	if err := req.Validate(policy); err != nil {
		return nil, err
	}

	a, err := repo.Create(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	if len(roles) > 0 {
		if err := repo.AssignRoles(ctx, a.ID, roles...); err != nil {
			return nil, err
		}
		a.Roles = roles
	}
	return a, nil
}

// readPassword prompts without echo on a terminal, otherwise reads one line
func readPassword(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ========================================
// helpers
// ========================================

func withDatabase(ctx context.Context, fn func(ctx context.Context, db database.DB) error) error {
	db, err := container.OpenDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(ctx, db)
}

func newAccountRepo(db database.DB) account.Repository {
	return accountRepo.NewSQLRepository(db, account.NewBcryptHasher(cfg.Auth.BcryptCost))
}

func init() {
	serveCmd.Flags().String("port", "", "HTTP port (overrides APP_PORT)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "create the schema before serving")

	rootCmd.PersistentFlags().String("db-driver", "", "database driver: postgres or sqlite (overrides DB_DRIVER)")

	seedCmd.Flags().String("admin-password", "", "password for admin@bookstore.com (overrides SEED_ADMIN_PASSWORD)")
	seedCmd.Flags().String("customer-password", "", "password for the seeded customers (overrides SEED_CUSTOMER_PASSWORD)")

	accountsCreateCmd.Flags().StringVar(&newAccountEmail, "email", "", "account email")
	accountsCreateCmd.Flags().StringSliceVar(&newAccountRoles, "role", nil, "role to grant (repeatable): Administrator, Customer")
	_ = accountsCreateCmd.MarkFlagRequired("email")
	accountsCmd.AddCommand(accountsCreateCmd)
}
