// Command inventory runs the Golden Hive inventory API and its admin tasks.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var envFile string

var rootCmd = &cobra.Command{
	Use:           "inventory",
	Short:         "Golden Hive inventory service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file read before the environment")

	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routesCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)

	// Client
	rootCmd.AddCommand(productsCmd)
}
