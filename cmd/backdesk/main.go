package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "backdesk",
	Short: "Admin backend with a generic query engine and Firestore index provisioning",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: $BACKDESK_CONFIG, then ./backdesk.yaml)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(indexesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
