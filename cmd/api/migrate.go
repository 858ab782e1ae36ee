package main

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded schema migrations and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := loadRuntime()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		_, closeStore, err := openStore(cmd.Context(), cfg, logger, true)
		if err != nil {
			return err
		}
		closeStore()
		return nil
	},
}
