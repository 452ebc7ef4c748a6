package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/server"
)

var issueTokenCmd = &cobra.Command{
	Use:   "issue-token",
	Short: "Mint a bearer token for the HTTP API",
	Long:  "Signs a token with JWT_SECRET that expires after JWT_EXPIRATION_HOURS (default 24).",
	RunE:  runIssueToken,
}

var issueTokenClientID string

func init() {
	issueTokenCmd.Flags().StringVar(&issueTokenClientID, "client-id", "", "Client UUID to embed in the token (default: random)")
	rootCmd.AddCommand(issueTokenCmd)
}

func runIssueToken(cmd *cobra.Command, _ []string) error {
	jwtCfg, err := config.TokenConfigFromEnv()
	if err != nil {
		return err
	}

	clientID := uuid.New()
	if issueTokenClientID != "" {
		if clientID, err = uuid.Parse(issueTokenClientID); err != nil {
			return fmt.Errorf("invalid --client-id: %w", err)
		}
	}

	token, err := server.NewJWTService(jwtCfg).GenerateToken(clientID)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
