package main

import (
	"log"

	"github.com/haatos/simple-shop/internal/settings"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		rdb, rwdb, err := openDatabases()
		if err != nil {
			return err
		}
		defer rdb.Close()
		defer rwdb.Close()
		log.Printf("%s database is up to date\n", settings.Settings.DBDriver)
		return nil
	},
}
