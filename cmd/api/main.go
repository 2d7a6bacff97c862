package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bookstore-api/internal/config"
	"bookstore-api/pkg/logger"
)

var (
	cfgFile string
	envFile string

	// populated by the root PersistentPreRunE
	v   *viper.Viper
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "bookstore-api",
	Short:         "Bookstore catalog API",
	Long:          `Bookstore API serves the author and book catalog with JWT role based access.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file loaded before reading the environment")

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, accountsCmd)
}

// loadConfig: .env -> viper (defaults, config file, env, flags) -> Config
func loadConfig(cmd *cobra.Command) error {
	if err := config.LoadEnvFiles(envFile); err != nil {
		return err
	}

	v = config.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
	}
	if err := bindCommandFlags(cmd); err != nil {
		return err
	}

	var err error
	cfg, err = config.Load(v)
	if err != nil {
		return err
	}

	logger.Init(cfg.App.Environment, cfg.Log.Level)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
