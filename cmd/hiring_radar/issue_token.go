package main

import (
	"fmt"
	"os"

	"github.com/jonathan/hiring-radar/internal/config"
	"github.com/jonathan/hiring-radar/internal/server"
	"github.com/spf13/cobra"
)

var issueTokenCmd = &cobra.Command{
	Use:   "issue-token",
	Short: "Issue a bearer token for the REST API",
	Long:  "Signs a token with JWT_SECRET for the named API client. Expiry comes from JWT_EXPIRATION_HOURS (default 24).",
	RunE:  runIssueToken,
}

var issueTokenSubject string

func init() {
	issueTokenCmd.Flags().StringVarP(&issueTokenSubject, "subject", "s", "", "Name of the API client the token is for (required)")

	if err := issueTokenCmd.MarkFlagRequired("subject"); err != nil {
		panic(fmt.Sprintf("failed to mark subject flag as required: %v", err))
	}

	rootCmd.AddCommand(issueTokenCmd)
}

func runIssueToken(_ *cobra.Command, _ []string) error {
	cfg, err := config.NewJWTConfig()
	if err != nil {
		return err
	}
	token, err := server.NewJWTService(cfg).GenerateToken(issueTokenSubject)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(os.Stdout, token)
	return nil
}
