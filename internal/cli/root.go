package cli

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "licensetracker",
	Short: "Municipal software license tracker",
	Long: `licensetracker serves the software license tracking API.

It tracks software records, their vendors, departments and support
contacts, and user satisfaction comments, behind JWT authentication.`,
	Version: "0.1.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
}
