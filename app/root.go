// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "auth-service",
	Short: "auth-service issues, validates and revokes access tokens",
	Long: `auth-service is an authentication and authorization service:
it manages users, roles and fine-grained permissions, issues and
revokes access tokens, records per-user activity history and enforces
per-identity rate limits.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
