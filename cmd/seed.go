/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"fmt"
	"log"

	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/config"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/database"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/directory"
	"github.com/spf13/cobra"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the user directory",
	Long: `Load users from the configured seed file into the user directory.
Existing users with the same ID are updated in place, so the command
is safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. 加载配置
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		seedFile, _ := cmd.Flags().GetString("file")
		if seedFile == "" {
			seedFile = cfg.Directory.SeedFile
		}

		// 2. 读取种子文件
		users, err := directory.LoadSeedFile(seedFile)
		if err != nil {
			return fmt.Errorf("failed to load seed file: %w", err)
		}

		// 3. 连接数据库并写入
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect database: %w", err)
		}
		defer func() {
			sqlDB, _ := db.DB()
			if sqlDB != nil {
				sqlDB.Close()
			}
		}()

		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		if err := directory.Seed(db, users); err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}

		log.Printf("Seeded %d users from %s", len(users), seedFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().String("config", "", "Config file path (default: search in current directory, ./config, or $HOME/.riskmanager)")
	seedCmd.Flags().String("file", "", "Seed file path (default: from directory.seed_file config)")
}
