package cmd

import (
	"log"

	"github.com/space458/gallery-backend/config"
	"github.com/space458/gallery-backend/database"
	"github.com/space458/gallery-backend/database/repo/accounts"
	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migration",
	Run: func(cmd *cobra.Command, args []string) {
		runMigrate()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate() {
	config.InitConfig()
	cfg := config.Get()

	provider, err := database.NewGormProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer provider.Close()

	log.Printf("Migrating database, database type: %s", provider.Name())

	if err := database.AutoMigrateAll(provider); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}

	accountsRepo := accounts.NewRepository(provider.DB())
	password, err := accountsRepo.CreateDefaultAdminUser()
	if err != nil {
		log.Fatalf("Failed to create default admin user: %v", err)
	}
	if password != "" {
		log.Printf("Created default admin user 'admin' with password: %s", password)
	}

	log.Println("Migration completed.")
}
