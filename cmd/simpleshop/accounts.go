package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/haatos/simple-shop/internal/access"
	"github.com/haatos/simple-shop/internal/service"
	"github.com/haatos/simple-shop/internal/settings"
	"github.com/haatos/simple-shop/internal/store"
	"github.com/spf13/cobra"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Inspect and moderate accounts",
}

var accountsListCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List accounts, optionally filtered by name or email",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		return withAccountService(func(svc *service.AccountService, _ *store.AccountSQLStore) error {
			accounts, err := svc.ListAccounts(cmd.Context(), operator(), query)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEMAIL\tNAME\tROLE\tBANNED")
			for _, a := range accounts {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n", a.AccountID, a.Email, a.Name, a.RoleID.ToString(), a.Banned)
			}
			return w.Flush()
		})
	},
}

func init() {
	accountsCmd.AddCommand(accountsListCmd)
	for _, action := range []access.AccountAction{access.Promote, access.Demote, access.Ban, access.Unban} {
		accountsCmd.AddCommand(newAccountActionCmd(action))
	}
}

func newAccountActionCmd(action access.AccountAction) *cobra.Command {
	return &cobra.Command{
		Use:   action.String() + " <email>",
		Short: fmt.Sprintf("Apply %s to the account with the given email", action),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAccountService(func(svc *service.AccountService, s *store.AccountSQLStore) error {
				target, err := s.ReadAccountByEmail(cmd.Context(), access.NormalizeEmail(args[0]))
				if err != nil {
					return fmt.Errorf("account %s: %w", args[0], err)
				}
				a, err := svc.ApplyAccountAction(cmd.Context(), operator(), target.AccountID, action)
				if err != nil {
					return err
				}
				fmt.Printf("%s: role=%s banned=%t\n", a.Email, a.RoleID.ToString(), a.Banned)
				return nil
			})
		},
	}
}

// operator is the super admin identity used by command line moderation.
func operator() *store.Account {
	return &store.Account{
		Email:  settings.Settings.SuperAdminEmail,
		RoleID: access.SuperAdmin,
	}
}

func withAccountService(fn func(*service.AccountService, *store.AccountSQLStore) error) error {
	rdb, rwdb, err := openDatabases()
	if err != nil {
		return err
	}
	defer rdb.Close()
	defer rwdb.Close()

	s := store.NewAccountSQLStore(rdb, rwdb)
	svc := service.NewAccountService(
		s,
		settings.Settings.SuperAdminEmail,
		settings.Settings.AdminKey,
		0,
	)
	return fn(svc, s)
}
