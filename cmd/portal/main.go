// Command portal runs the grievance portal HTTP API.
//
// @title                       Grievance Portal API
// @version                     1.0
// @description                 Citizen grievance filing, tracking and officer triage.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	_ "github.com/hp-grievance/portal/docs"
)

const programName = "portal"

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var globalFlags = struct {
	envFile string
}{}

func main() {
	rootCmd := &cobra.Command{
		Use:           programName,
		Short:         "Public grievance portal API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnvFile(globalFlags.envFile)
		},
	}

	rootCmd.PersistentFlags().
		StringVar(&globalFlags.envFile, "env-file", ".env", "optional dotenv file loaded before reading the environment")

	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(versionCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", programName, err)
		os.Exit(1)
	}
}

// loadEnvFile loads path into the environment. A missing file is not an
// error; variables already set are never overridden.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
