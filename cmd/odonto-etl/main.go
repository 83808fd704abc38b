// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the odonto-etl CLI, which imports
// ControleODONTO schedule reports into the clinic database.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the odonto-etl CLI.
var rootCmd = &cobra.Command{
	Use:   "odonto-etl",
	Short: "Import ControleODONTO schedule reports into the clinic database",
	Long: `odonto-etl reads the appointment schedule PDFs exported by ControleODONTO,
classifies each report line into one of ten appointment fields, derives the
consultation type catalog from the observations, and appends consultation
types and consultations to the clinic database.

Use "run" for a full import, "extract" and "classify" to inspect what the
reports yield, and "export" to write the classified records as CSV.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./odonto-etl.yaml or ~/.config/odonto-etl/config.yaml)")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets", "directory of credential files (db-host, db-user, db-password, db-name)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")
}

func initConfig() {
	envFile, _ := rootCmd.PersistentFlags().GetString("env-file")
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "warning: loading %s: %v\n", envFile, err)
		}
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("odonto-etl")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "odonto-etl"))
		}
	}

	viper.SetEnvPrefix("ODONTO_ETL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
