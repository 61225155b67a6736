package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "editoriactl",
	Short: "Editoria content-management server CLI",
	Long: `editoriactl manages the Editoria server: run it, migrate its
database schema, and inspect its configuration.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
