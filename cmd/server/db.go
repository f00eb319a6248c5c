// cmd/server/db.go
package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/juggernaut03/kalakritBackend/internal/database"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database maintenance commands",
}

// kalakriti db init
var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create collections, validators and indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := boot()
		if err != nil {
			return err
		}

		ctx := context.Background()
		db, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		defer database.Close(ctx, db)

		if err := database.Initialize(ctx, db); err != nil {
			return err
		}
		logrus.WithField("database", cfg.Database.Name).Info("Database initialized")
		return nil
	},
}

func init() {
	dbCmd.AddCommand(dbInitCmd)
}
