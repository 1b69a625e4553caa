package main

import (
	"database/sql"

	"github.com/haatos/simple-shop/internal"
	"github.com/haatos/simple-shop/internal/settings"
	"github.com/haatos/simple-shop/internal/store"
	"github.com/spf13/cobra"
)

func main() {
	cobra.CheckErr(rootCmd.Execute())
}

var rootCmd = &cobra.Command{
	Use:          "simpleshop",
	Short:        "Storefront API with tiered admin access",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		settings.ReadDotenv(internal.DotEnvPath)
		settings.Settings = settings.NewSettings()
		internal.InitializeConfiguration()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, accountsCmd)
}

// openDatabases returns the read pool and the single-writer pool with every
// migration applied.
func openDatabases() (*sql.DB, *sql.DB, error) {
	rdb := store.InitDatabase(true)
	rwdb := store.InitDatabase(false)
	if err := store.RunMigrations(rwdb, settings.Settings.DBDriver); err != nil {
		rdb.Close()
		rwdb.Close()
		return nil, nil, err
	}
	return rdb, rwdb, nil
}
