package main

import (
	"log"

	"github.com/luizverissimo/desafio-ignite-nodejs-02/config"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the meals table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(afero.NewOsFs(), configFile)
			if err != nil {
				return err
			}
			db, err := config.OpenDB(cfg.DB)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			if err := config.Migrate(db); err != nil {
				return err
			}
			log.Printf("migrated %s database", cfg.DB.Driver)
			return nil
		},
	}
}
