package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/analysis"
	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing /v1/analyze and /v1/tailor.

The port, CORS origins and cache size come from RESUME_TAILOR_PORT,
RESUME_TAILOR_CORS_ORIGINS and RESUME_TAILOR_CACHE_SIZE. Setting JWT_SECRET
requires a bearer token (see issue-token) on every /v1 request. RATE_LIMIT_*
variables tune per-client rate limits.`,
	RunE: runServe,
}

var (
	servePort       int
	serveTokenizer  string
	serveVocabulary string
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides RESUME_TAILOR_PORT)")
	serveCmd.Flags().StringVar(&serveTokenizer, "tokenizer", string(analysis.StrategyTreebank), "Tokenizer: treebank or whitespace")
	serveCmd.Flags().StringVar(&serveVocabulary, "vocabulary", "", "Path to a YAML skill vocabulary")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	env, err := config.NewServerConfig()
	if err != nil {
		return err
	}

	cfg := server.ConfigFromEnv(env)
	if servePort != 0 {
		cfg.Port = servePort
	}
	cfg.Tokenizer = analysis.Strategy(serveTokenizer)
	if cfg.Vocabulary, err = loadVocabulary(serveVocabulary); err != nil {
		return err
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
